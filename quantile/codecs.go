package quantile

import (
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/xerrors"
)

// Int64Codec encodes int64 elements as a fixed-width big-endian 8-byte
// value. One of the concrete element codecs the enclosing framework
// supplies for a given element type.
type Int64Codec struct{}

// Encode implements Codec.
func (Int64Codec) Encode(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.BigEndian, v.(int64))
}

// Decode implements Codec.
func (Int64Codec) Decode(r io.Reader) (interface{}, error) {
	var v int64
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Float64Codec encodes float64 elements as their IEEE-754 bit pattern,
// big-endian.
type Float64Codec struct{}

// Encode implements Codec.
func (Float64Codec) Encode(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.BigEndian, math.Float64bits(v.(float64)))
}

// Decode implements Codec.
func (Float64Codec) Decode(r io.Reader) (interface{}, error) {
	var bits uint64
	if err := binary.Read(r, binary.BigEndian, &bits); err != nil {
		return nil, err
	}
	return math.Float64frombits(bits), nil
}

// StringCodec encodes string elements as an int32-BE byte-length prefix
// followed by the raw UTF-8 bytes.
type StringCodec struct{}

// Encode implements Codec.
func (StringCodec) Encode(w io.Writer, v interface{}) error {
	s := v.(string)
	if err := binary.Write(w, binary.BigEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// Decode implements Codec.
func (StringCodec) Decode(r io.Reader) (interface{}, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, xerrors.Errorf("negative string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return string(buf), nil
}
