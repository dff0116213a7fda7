package quantile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalOrderings(t *testing.T) {
	assert.True(t, Int64Order.Less(int64(1), int64(2)))
	assert.False(t, Int64Order.Less(int64(2), int64(1)))
	assert.Equal(t, "int64", Int64Order.Name())

	assert.True(t, Float64Order.Less(1.5, 2.5))
	assert.Equal(t, "float64", Float64Order.Name())

	assert.True(t, StringOrder.Less("a", "b"))
	assert.Equal(t, "string", StringOrder.Name())
}

func TestReverseFlipsComparisons(t *testing.T) {
	r := Reverse(Int64Order)
	assert.True(t, r.Less(int64(2), int64(1)))
	assert.False(t, r.Less(int64(1), int64(2)))
	assert.Equal(t, "reverse:int64", r.Name())
}

func TestOrderingByNameRecoversBuiltins(t *testing.T) {
	o, ok := OrderingByName("int64")
	assert.True(t, ok)
	assert.Equal(t, Int64Order, o)

	_, ok = OrderingByName("no-such-ordering")
	assert.False(t, ok)
}
