package compute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/validity"
)

func TestRowMask_IsDisjoint(t *testing.T) {
	r := NewRowMask(mask.NewTrue(10), 5) // [5, 15)
	require.True(t, r.IsDisjoint(0, 5))
	require.True(t, r.IsDisjoint(15, 20))
	require.False(t, r.IsDisjoint(0, 6))
	require.False(t, r.IsDisjoint(14, 20))
}

func TestRowMask_AndRowMask_Aligned(t *testing.T) {
	lhs := NewRowMask(mask.FromIndices(10, []int{0, 2, 4, 6, 8}), 0)
	rhs := NewRowMask(mask.FromIndices(10, []int{0, 1, 4, 5, 8}), 0)

	out := lhs.AndRowMask(rhs)
	require.Equal(t, 0, out.Begin())
	require.Equal(t, 10, out.End())
	require.Equal(t, []int{0, 4, 8}, out.Mask().Indices())
}

func TestRowMask_AndRowMask_Disjoint(t *testing.T) {
	lhs := NewRowMask(mask.NewTrue(5), 0) // [0, 5)
	rhs := NewRowMask(mask.NewTrue(5), 10) // [10, 15)

	out := lhs.AndRowMask(rhs)
	require.Equal(t, 0, out.Begin())
	require.Equal(t, 15, out.End())
	require.Equal(t, 0, out.TrueCount())
}

func TestRowMask_AndRowMask_PartialOverlap(t *testing.T) {
	lhs := NewRowMask(mask.FromIndices(10, []int{0, 5, 9}), 0) // [0,10) true at 0,5,9
	rhs := NewRowMask(mask.FromIndices(10, []int{0, 5, 9}), 5) // [5,15) true at abs 5,10,14

	out := lhs.AndRowMask(rhs)
	require.Equal(t, 0, out.Begin())
	require.Equal(t, 15, out.End())
	// absolute true rows of lhs: {0,5,9}; of rhs: {5+0,5+5,5+9} = {5,10,14}
	// intersection: {5}
	require.Equal(t, []int{5}, out.Mask().Indices())
}

func TestRowMask_Slice(t *testing.T) {
	r := NewRowMask(mask.FromIndices(10, []int{0, 3, 7}), 5) // absolute [5,15), true at 5,8,12
	sliced := r.Slice(6, 10)
	require.Equal(t, 6, sliced.Begin())
	require.Equal(t, 10, sliced.End())
	require.Equal(t, []int{2}, sliced.Mask().Indices()) // abs 8 = Begin 6 + 2
}

func TestRowMask_Shift(t *testing.T) {
	r := NewRowMask(mask.NewTrue(3), 10)
	shifted := r.Shift(4)
	require.Equal(t, 6, shifted.Begin())
	require.Equal(t, 9, shifted.End())
}

func TestRowMask_Shift_PanicsPastBegin(t *testing.T) {
	r := NewRowMask(mask.NewTrue(3), 2)
	require.Panics(t, func() { r.Shift(5) })
}

func TestRowMask_FilterArray(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3, 4)
	r := NewRowMask(mask.FromIndices(4, []int{1, 3}), 0)

	out := FilterArray(r, a)
	require.Equal(t, 2, out.Len())
	require.Equal(t, int64(2), out.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(4), out.ScalarAt(1).AsPValue().AsI64())
}

func TestRowMask_FilterArray_AllFalse(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3)
	r := NewRowMask(mask.NewFalse(3), 0)
	require.Nil(t, FilterArray(r, a))
}

func TestRowMask_FilterArray_AllTrueReturnsSameArray(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3)
	r := NewRowMask(mask.NewTrue(3), 0)
	out := FilterArray(r, a)
	require.Same(t, a, out)
}
