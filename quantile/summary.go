// Package quantile implements a mergeable, bounded-memory approximate
// quantile summary over an ordered element domain, following the
// Manku-Rajagopalan-Lindsay ("MRL98") "New Algorithm" for approximate
// medians and quantiles in one pass with limited memory.
//
// A Summary ingests elements one at a time via AddInput, may absorb another
// Summary's state via Merge, and on demand emits a fixed-size sorted list
// of approximate quantiles via ExtractOutput. It is designed to be shipped
// between workers of a distributed aggregation framework: Encode/Decode
// give it a deterministic wire format, and Ordering lets a comparator
// travel as a symbolic name rather than executable code.
//
// The package owns only the summary data structure itself -- the
// surrounding windowing, sharding, and element-coder plumbing of whatever
// pipeline embeds it are out of scope (see shard and agent).
package quantile

import "sort"

// Summary is the accumulator: running min/max, an unbuffered
// insertion-order tail, and a level-ordered multiset of Buffers. A Summary
// is a single-owner mutable value; it is not internally synchronized.
type Summary struct {
	params Parameters
	order  Ordering

	hasMin bool
	hasMax bool
	min    interface{}
	max    interface{}

	unbuffered []interface{}
	buffers    bufferList

	// offsetJitter alternates between 0 and 2 across even-weight collapses.
	// It is per-Summary mutable state and is deliberately not serialized by
	// Encode: correctness does not depend on reproducing it across a
	// ser/de boundary.
	offsetJitter int
}

// NewSummary returns an empty Summary configured with params and ordered by
// order.
func NewSummary(params Parameters, order Ordering) *Summary {
	return &Summary{params: params, order: order}
}

// Params returns the Parameters this Summary was constructed with.
func (s *Summary) Params() Parameters { return s.params }

// Order returns the Ordering this Summary was constructed with.
func (s *Summary) Order() Ordering { return s.order }

// IsEmpty reports whether no elements have ever been added to s.
func (s *Summary) IsEmpty() bool {
	return len(s.unbuffered) == 0 && s.buffers.Len() == 0
}

// Min returns the exact minimum of every ingested element, and false if s
// is empty.
func (s *Summary) Min() (interface{}, bool) { return s.min, s.hasMin }

// Max returns the exact maximum of every ingested element, and false if s
// is empty.
func (s *Summary) Max() (interface{}, bool) { return s.max, s.hasMax }

func (s *Summary) updateExtrema(v interface{}) {
	if !s.hasMin || s.order.Less(v, s.min) {
		s.min = v
		s.hasMin = true
	}
	if !s.hasMax || s.order.Less(s.max, v) {
		s.max = v
		s.hasMax = true
	}
}

// AddInput ingests one element. Once the unbuffered tail
// reaches bufferSize it is sorted, wrapped as a fresh level-0 weight-1
// Buffer, and the buffer budget is restored by collapsing if needed.
func (s *Summary) AddInput(v interface{}) {
	s.updateExtrema(v)

	s.unbuffered = append(s.unbuffered, v)
	if uint64(len(s.unbuffered)) < s.params.bufferSize {
		return
	}

	flushed := s.unbuffered
	s.unbuffered = nil
	sort.Slice(flushed, func(i, j int) bool { return s.order.Less(flushed[i], flushed[j]) })

	s.buffers.insert(Buffer{Level: 0, Weight: 1, Elements: flushed})
	s.collapseIfNeeded()
}

// Merge absorbs other's state into s. other is left unmodified. Merging
// two Summaries in either order produces approximately but not bitwise
// equal results: jitter state and unbuffered replay order both differ.
func (s *Summary) Merge(other *Summary) {
	if other.IsEmpty() {
		return
	}

	if other.hasMin {
		s.updateExtrema(other.min)
	}
	if other.hasMax {
		s.updateExtrema(other.max)
	}

	// Replay other's unbuffered tail through the single-element path
	// before absorbing its buffers, so that extrema and any mid-merge
	// flush happen in a well-defined order.
	for _, v := range other.unbuffered {
		s.AddInput(v)
	}

	for _, b := range other.buffers.items {
		elements := make([]interface{}, len(b.Elements))
		copy(elements, b.Elements)
		s.buffers.insert(Buffer{Level: b.Level, Weight: b.Weight, Elements: elements})
	}

	s.collapseIfNeeded()
}

// ExtractOutput returns min, numQuantiles-2 interior approximate quantiles,
// and max, or nil if s is empty.
func (s *Summary) ExtractOutput() []interface{} {
	if s.IsEmpty() {
		return nil
	}

	all := make([]Buffer, 0, s.buffers.Len()+1)
	all = append(all, s.buffers.items...)

	totalCount := uint64(len(s.unbuffered))
	for _, b := range s.buffers.items {
		totalCount += s.params.bufferSize * b.Weight
	}

	if len(s.unbuffered) > 0 {
		remainder := make([]interface{}, len(s.unbuffered))
		copy(remainder, s.unbuffered)
		sort.Slice(remainder, func(i, j int) bool { return s.order.Less(remainder[i], remainder[j]) })
		all = append(all, Buffer{Level: 0, Weight: 1, Elements: remainder})
	}

	n := int(s.params.numQuantiles)
	step := float64(totalCount) / float64(n-1)
	offset := float64(totalCount-1) / float64(n-1)

	interior := interpolate(all, n-2, step, offset, s.order)

	// min and max are always prepended/appended regardless of whether the
	// interior interpolation already produced them -- for small inputs
	// (N < numQuantiles) this can duplicate an endpoint, a deliberate
	// quirk rather than an oversight.
	result := make([]interface{}, 0, n)
	result = append(result, s.min)
	result = append(result, interior...)
	result = append(result, s.max)
	return result
}
