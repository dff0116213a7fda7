package shard

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segmentio/approxquantile/quantile"
)

func newTestRouter(t *testing.T) *Router {
	params, err := quantile.NewDefaultParameters(5)
	require.NoError(t, err)
	return NewRouter(params, quantile.Int64Order)
}

func TestRouterOpensAccumulatorPerKey(t *testing.T) {
	r := newTestRouter(t)

	r.AddInput("a", int64(1))
	r.AddInput("b", int64(2))
	r.AddInput("a", int64(3))

	keys := r.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestRouterFlushExtractsPerKeyOutput(t *testing.T) {
	r := newTestRouter(t)
	for _, v := range []int64{1, 2, 3, 4, 5} {
		r.AddInput("only", v)
	}

	out := r.Flush()
	require.Contains(t, out, "only")

	got := make([]int64, len(out["only"]))
	for i, v := range out["only"] {
		got[i] = v.(int64)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)
}

func TestRouterMergeCombinesDisjointKeys(t *testing.T) {
	r1 := newTestRouter(t)
	r2 := newTestRouter(t)

	r1.AddInput("x", int64(10))
	r2.AddInput("y", int64(20))

	r1.Merge(r2)

	keys := r1.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"x", "y"}, keys)
}

func TestRouterMergeCombinesSharedKey(t *testing.T) {
	r1 := newTestRouter(t)
	r2 := newTestRouter(t)

	for i := int64(1); i <= 500; i++ {
		r1.AddInput("shared", i)
	}
	for i := int64(501); i <= 1000; i++ {
		r2.AddInput("shared", i)
	}

	r1.Merge(r2)

	out := r1.Flush()["shared"]
	require.Len(t, out, 5)
	assert.EqualValues(t, 1, out[0])
	assert.EqualValues(t, 1000, out[len(out)-1])
}

func TestIndexIsDeterministicAndInRange(t *testing.T) {
	for _, key := range []string{"alpha", "beta", "gamma", ""} {
		idx := Index(key, 8)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
		assert.Equal(t, idx, Index(key, 8))
	}
}

func TestIndexWithSingleShardIsAlwaysZero(t *testing.T) {
	assert.Equal(t, 0, Index("anything", 1))
	assert.Equal(t, 0, Index("anything", 0))
}

func TestIndexDistributesAcrossShards(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		key := string(rune('a' + i%26))
		seen[Index(key, 4)] = true
	}
	assert.Greater(t, len(seen), 1)
}
