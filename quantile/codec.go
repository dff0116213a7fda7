package quantile

import (
	"encoding/binary"
	"io"

	"golang.org/x/xerrors"
)

// Encode writes s in a deterministic binary layout:
//
//	summary := element(min) | element(max) | list<element>(unbuffered)
//	         | int32_be(buffer_count) | buffer_count x buffer
//	buffer  := int32_be(level) | int64_be(weight) | list<element>(elements)
//
// Buffers are written in s's level-ordered iteration order; Decode restores
// them into the same structure, since level order is recoverable from the
// per-buffer level field alone. offsetJitter is never written: it is
// per-Summary rounding-bias state, not part of the summary's logical value.
// Determinism of the whole encoding holds iff codec itself is deterministic.
//
// Encoding an empty Summary is rejected with ErrCodec: element(min) and
// element(max) have no value to encode when a Summary has never seen input.
func Encode(w io.Writer, s *Summary, codec Codec) error {
	if s.IsEmpty() {
		return xerrors.Errorf("cannot encode an empty summary: %w", ErrCodec)
	}

	if err := codec.Encode(w, s.min); err != nil {
		return wrapCodec("encode min", err)
	}
	if err := codec.Encode(w, s.max); err != nil {
		return wrapCodec("encode max", err)
	}
	if err := encodeList(w, codec, s.unbuffered); err != nil {
		return err
	}

	if err := binary.Write(w, binary.BigEndian, int32(s.buffers.Len())); err != nil {
		return wrapIO("encode buffer count", err)
	}
	for _, b := range s.buffers.items {
		if err := encodeBuffer(w, codec, b); err != nil {
			return err
		}
	}
	return nil
}

// Decode reconstructs a Summary from the layout Encode writes, using params
// and order for the new Summary's configuration (these are not themselves
// part of the wire format: the comparator travels symbolically, via
// whatever identifier the framework attaches out of band). The returned
// Summary is a fresh mutable peer: its offsetJitter
// starts at zero, since it was never serialized.
func Decode(r io.Reader, params Parameters, order Ordering, codec Codec) (*Summary, error) {
	s := NewSummary(params, order)

	min, err := codec.Decode(r)
	if err != nil {
		return nil, wrapCodec("decode min", err)
	}
	max, err := codec.Decode(r)
	if err != nil {
		return nil, wrapCodec("decode max", err)
	}
	s.min, s.hasMin = min, true
	s.max, s.hasMax = max, true

	unbuffered, err := decodeList(r, codec)
	if err != nil {
		return nil, err
	}
	s.unbuffered = unbuffered

	var bufferCount int32
	if err := binary.Read(r, binary.BigEndian, &bufferCount); err != nil {
		return nil, wrapIO("decode buffer count", err)
	}
	if bufferCount < 0 {
		return nil, xerrors.Errorf("negative buffer count %d: %w", bufferCount, ErrCodec)
	}

	for i := int32(0); i < bufferCount; i++ {
		b, err := decodeBuffer(r, codec)
		if err != nil {
			return nil, err
		}
		s.buffers.insert(b)
	}

	return s, nil
}

func encodeBuffer(w io.Writer, codec Codec, b Buffer) error {
	if err := binary.Write(w, binary.BigEndian, int32(b.Level)); err != nil {
		return wrapIO("encode buffer level", err)
	}
	if err := binary.Write(w, binary.BigEndian, int64(b.Weight)); err != nil {
		return wrapIO("encode buffer weight", err)
	}
	return encodeList(w, codec, b.Elements)
}

func decodeBuffer(r io.Reader, codec Codec) (Buffer, error) {
	var level int32
	if err := binary.Read(r, binary.BigEndian, &level); err != nil {
		return Buffer{}, wrapIO("decode buffer level", err)
	}
	var weight int64
	if err := binary.Read(r, binary.BigEndian, &weight); err != nil {
		return Buffer{}, wrapIO("decode buffer weight", err)
	}
	if weight < 0 {
		return Buffer{}, xerrors.Errorf("negative buffer weight %d: %w", weight, ErrCodec)
	}
	elements, err := decodeList(r, codec)
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{Level: uint32(level), Weight: uint64(weight), Elements: elements}, nil
}

// encodeList writes an int32-BE element count followed by each element in
// turn, via codec -- the length prefix and per-element encoding are left
// to the element codec's discretion elsewhere; fixed here at a uniform
// int32 count for every list<element> site (unbuffered and per-buffer
// elements alike).
func encodeList(w io.Writer, codec Codec, vs []interface{}) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(vs))); err != nil {
		return wrapIO("encode list length", err)
	}
	for i, v := range vs {
		if err := codec.Encode(w, v); err != nil {
			return wrapCodec("encode list element", xerrors.Errorf("index %d: %w", i, err))
		}
	}
	return nil
}

func decodeList(r io.Reader, codec Codec) ([]interface{}, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, wrapIO("decode list length", err)
	}
	if n < 0 {
		return nil, xerrors.Errorf("negative list length %d: %w", n, ErrCodec)
	}

	vs := make([]interface{}, n)
	for i := range vs {
		v, err := codec.Decode(r)
		if err != nil {
			return nil, wrapCodec("decode list element", xerrors.Errorf("index %d: %w", i, err))
		}
		vs[i] = v
	}
	return vs, nil
}
