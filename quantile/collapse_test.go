package quantile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJitterOffsetOddAlwaysRoundsUp(t *testing.T) {
	s := &Summary{}
	assert.Equal(t, 2.0, s.jitterOffset(3))
	assert.Equal(t, 3.0, s.jitterOffset(5))
}

func TestJitterOffsetAlternatesOnEvenWeights(t *testing.T) {
	s := &Summary{}

	// offsetJitter starts at 0, so the first even call
	// yields offset 2, the next yields 0, and so on.
	first := s.jitterOffset(4) // (4+2)/2 = 3
	second := s.jitterOffset(4) // (4+0)/2 = 2
	third := s.jitterOffset(4) // (4+2)/2 = 3 again

	assert.Equal(t, 3.0, first)
	assert.Equal(t, 2.0, second)
	assert.Equal(t, 3.0, third)
}

// smallParams returns Parameters with a tiny bufferSize/numBuffers so tests
// can force a Collapse deterministically without ingesting huge inputs.
func smallParams(numQuantiles uint32, bufferSize uint64, numBuffers uint32) Parameters {
	return Parameters{
		numQuantiles:   numQuantiles,
		epsilon:        1,
		maxNumElements: bufferSize * uint64(numBuffers),
		bufferSize:     bufferSize,
		numBuffers:     numBuffers,
	}
}

func TestCollapseRestoresBufferBudget(t *testing.T) {
	params := smallParams(5, 4, 2)
	s := NewSummary(params, Int64Order)

	// Three level-0 buffers of 4 elements each exceed numBuffers=2, so a
	// Collapse must fire by the time all 12 elements are in.
	for i := int64(1); i <= 12; i++ {
		s.AddInput(i)
	}

	assert.LessOrEqual(t, s.buffers.Len(), int(params.NumBuffers()))

	// Every non-remainder buffer still has exactly bufferSize elements.
	for _, b := range s.buffers.items {
		assert.Len(t, b.Elements, int(params.BufferSize()))
	}
}

func TestCollapsePreservesTotalWeight(t *testing.T) {
	params := smallParams(5, 4, 2)
	s := NewSummary(params, Int64Order)

	for i := int64(1); i <= 16; i++ {
		s.AddInput(i)
	}

	var total uint64
	for _, b := range s.buffers.items {
		total += uint64(len(b.Elements)) * b.Weight
	}
	total += uint64(len(s.unbuffered))

	assert.EqualValues(t, 16, total)
}
