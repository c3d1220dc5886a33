package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/bitset"
)

func TestBitSet_SetGetClear(t *testing.T) {
	var b bitset.BitSet
	assert.False(t, b.Get(0))
	assert.True(t, b.IsEmpty())

	b.Set(3)
	b.Set(64)
	b.Set(200)
	assert.True(t, b.Get(3))
	assert.True(t, b.Get(64))
	assert.True(t, b.Get(200))
	assert.False(t, b.Get(4))
	assert.False(t, b.Get(10_000))
	assert.Equal(t, 3, b.Cardinality())
	assert.Equal(t, 201, b.Len())

	b.Clear(64)
	b.Clear(10_000) // beyond storage is a no-op
	assert.False(t, b.Get(64))
	assert.Equal(t, []int{3, 200}, b.Indices())
}

func TestBitSet_NegativeIndexPanics(t *testing.T) {
	b := bitset.New(8)
	assert.Panics(t, func() { b.Set(-1) })
	assert.Panics(t, func() { b.Get(-1) })
	assert.Panics(t, func() { b.NextSetBit(-2) })
}

func TestBitSet_NextSetBit(t *testing.T) {
	b := bitset.Of(1, 63, 64, 130)
	var got []int
	for i := b.NextSetBit(0); i >= 0; i = b.NextSetBit(i + 1) {
		got = append(got, i)
	}
	assert.Equal(t, []int{1, 63, 64, 130}, got)
	assert.Equal(t, -1, b.NextSetBit(131))
	assert.Equal(t, -1, bitset.New(0).NextSetBit(0))
}

func TestBitSet_NextClearBit(t *testing.T) {
	b := bitset.Range(0, 70)
	assert.Equal(t, 70, b.NextClearBit(0))
	b.Clear(5)
	assert.Equal(t, 5, b.NextClearBit(0))
	assert.Equal(t, 70, b.NextClearBit(6))
}

func TestBitSet_SetAlgebra(t *testing.T) {
	a := bitset.Of(1, 2, 3, 100)
	b := bitset.Of(2, 3, 4)

	u := a.Clone()
	u.Or(b)
	assert.Equal(t, []int{1, 2, 3, 4, 100}, u.Indices())

	i := a.Clone()
	i.And(b)
	assert.Equal(t, []int{2, 3}, i.Indices())

	d := a.Clone()
	d.AndNot(b)
	assert.Equal(t, []int{1, 100}, d.Indices())

	// originals untouched
	assert.Equal(t, []int{1, 2, 3, 100}, a.Indices())
	assert.True(t, i.IsSubsetOf(a))
	assert.False(t, a.IsSubsetOf(b))
	assert.True(t, a.Intersects(b))
	assert.False(t, d.Intersects(b))
}

func TestBitSet_RangeAndComplement(t *testing.T) {
	r := bitset.Range(60, 135)
	assert.Equal(t, 75, r.Cardinality())
	assert.True(t, r.Get(60))
	assert.True(t, r.Get(134))
	assert.False(t, r.Get(135))

	c := bitset.Of(0, 2).Complement(5)
	assert.Equal(t, []int{1, 3, 4}, c.Indices())
}

func TestBitSet_EqualIgnoresTrailingZeroWords(t *testing.T) {
	a := bitset.Of(1)
	b := bitset.New(1024)
	b.Set(1)
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	b.Set(900)
	assert.False(t, a.Equal(b))
}

func TestBitSet_ResetAndCopy(t *testing.T) {
	a := bitset.Of(5, 70)
	b := bitset.Of(1, 2, 3, 300)
	b.Copy(a)
	require.True(t, a.Equal(b))
	b.Reset()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "{5, 70}", a.String())
}

func TestBitSet_AllStopsEarly(t *testing.T) {
	b := bitset.Of(1, 2, 3, 4)
	var seen []int
	for i := range b.All() {
		if i == 3 {
			break
		}
		seen = append(seen, i)
	}
	assert.Equal(t, []int{1, 2}, seen)
}
