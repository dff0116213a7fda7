package quantile

import (
	"math"

	"golang.org/x/xerrors"
)

// DefaultMaxNumElements is the default maxNumElements.
const DefaultMaxNumElements uint64 = 1000000000

// Parameters bundles a Summary's immutable configuration: the output list
// size, the requested error bound, the input size the bound is guaranteed
// for, and the bufferSize/numBuffers derived from them.
type Parameters struct {
	numQuantiles   uint32
	epsilon        float64
	maxNumElements uint64
	bufferSize     uint64
	numBuffers     uint32
}

// NumQuantiles returns the configured output list size, including endpoints.
func (p Parameters) NumQuantiles() uint32 { return p.numQuantiles }

// Epsilon returns the configured error bound.
func (p Parameters) Epsilon() float64 { return p.epsilon }

// MaxNumElements returns the input size the error bound is guaranteed for.
func (p Parameters) MaxNumElements() uint64 { return p.maxNumElements }

// BufferSize returns the derived buffer capacity k.
func (p Parameters) BufferSize() uint64 { return p.bufferSize }

// NumBuffers returns the derived buffer budget b.
func (p Parameters) NumBuffers() uint32 { return p.numBuffers }

// NewParameters derives bufferSize (k) and numBuffers (b) from
// (numQuantiles, epsilon, maxNumElements).
func NewParameters(numQuantiles uint32, epsilon float64, maxNumElements uint64) (Parameters, error) {
	if numQuantiles < 2 {
		return Parameters{}, xerrors.Errorf("numQuantiles must be >= 2, got %d: %w", numQuantiles, ErrInvalidParameters)
	}
	if epsilon <= 0 || epsilon > 1 {
		return Parameters{}, xerrors.Errorf("epsilon must be in (0, 1], got %v: %w", epsilon, ErrInvalidParameters)
	}
	if maxNumElements < 1 {
		return Parameters{}, xerrors.Errorf("maxNumElements must be >= 1, got %d: %w", maxNumElements, ErrInvalidParameters)
	}

	b := deriveNumBuffers(epsilon, maxNumElements)
	k := deriveBufferSize(maxNumElements, b)

	if b < 2 {
		return Parameters{}, xerrors.Errorf("derived numBuffers %d < 2: %w", b, ErrInvalidParameters)
	}
	if k < 2 {
		return Parameters{}, xerrors.Errorf("derived bufferSize %d < 2: %w", k, ErrInvalidParameters)
	}

	return Parameters{
		numQuantiles:   numQuantiles,
		epsilon:        epsilon,
		maxNumElements: maxNumElements,
		bufferSize:     k,
		numBuffers:     b,
	}, nil
}

// NewDefaultParameters uses epsilon = 1/numQuantiles and
// maxNumElements = DefaultMaxNumElements.
func NewDefaultParameters(numQuantiles uint32) (Parameters, error) {
	if numQuantiles < 2 {
		return Parameters{}, xerrors.Errorf("numQuantiles must be >= 2, got %d: %w", numQuantiles, ErrInvalidParameters)
	}
	return NewParameters(numQuantiles, 1/float64(numQuantiles), DefaultMaxNumElements)
}

// NewParametersForMaxElements re-derives Parameters for a new
// maxNumElements while keeping p's epsilon, rather than overriding epsilon
// too.
func NewParametersForMaxElements(p Parameters, maxNumElements uint64) (Parameters, error) {
	return NewParameters(p.numQuantiles, p.epsilon, maxNumElements)
}

// deriveNumBuffers reproduces the reference algorithm's
// "b = 2; while (b-2)*2^(b-2) < eps*N { b++ }; b--" derivation exactly,
// including its documented off-by-one. Given the epsilon > 0 and
// maxNumElements >= 1 this package itself enforces in NewParameters, the
// while loop always runs at least once and b never drops below 2, so the
// clamp below is a documented safety net for a b = 1 corner case rather
// than a path this package can reach on its own.
func deriveNumBuffers(epsilon float64, maxNumElements uint64) uint32 {
	target := epsilon * float64(maxNumElements)

	b := uint32(2)
	for (float64(b-2) * math.Pow(2, float64(b-2))) < target {
		b++
	}
	b--

	if b < 2 {
		b = 2
	}
	return b
}

// deriveBufferSize computes k = max(2, ceil(maxNumElements / 2^(b-1))).
func deriveBufferSize(maxNumElements uint64, b uint32) uint64 {
	denom := math.Pow(2, float64(b-1))
	k := uint64(math.Ceil(float64(maxNumElements) / denom))
	if k < 2 {
		k = 2
	}
	return k
}
