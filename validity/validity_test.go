package validity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
)

func TestValidity_StaticStates(t *testing.T) {
	require.Equal(t, dtype.NonNullable, NonNullable().Nullability())
	require.Equal(t, dtype.Nullable, AllValid().Nullability())
	require.Equal(t, dtype.Nullable, AllInvalid().Nullability())

	require.Equal(t, 0, NonNullable().NullCount(10))
	require.Equal(t, 0, AllValid().NullCount(10))
	require.Equal(t, 10, AllInvalid().NullCount(10))
}

func TestValidity_FromMask(t *testing.T) {
	m := mask.FromIndices(5, []int{0, 2, 4})
	v := FromMask(m)

	require.True(t, v.IsValid(0))
	require.False(t, v.IsValid(1))
	require.True(t, v.IsValid(2))
	require.Equal(t, 2, v.NullCount(5))
}

func TestValidity_Slice(t *testing.T) {
	m := mask.FromIndices(10, []int{0, 2, 4, 6, 8})
	v := FromMask(m)

	sub := v.Slice(2, 6) // rows 2,3,4,5 -> valid at 2,4 (local 0,2)
	require.True(t, sub.IsValid(0))
	require.False(t, sub.IsValid(1))
	require.True(t, sub.IsValid(2))
}

func TestValidity_Take(t *testing.T) {
	m := mask.FromIndices(5, []int{1, 3})
	v := FromMask(m)

	taken := v.Take([]int{0, 1, 3, 4})
	require.False(t, taken.IsValid(0))
	require.True(t, taken.IsValid(1))
	require.True(t, taken.IsValid(2))
	require.False(t, taken.IsValid(3))
}

func TestValidity_And(t *testing.T) {
	a := FromMask(mask.FromIndices(5, []int{0, 1, 2}))
	b := FromMask(mask.FromIndices(5, []int{1, 2, 3}))

	and := a.And(b, 5)
	require.False(t, and.IsValid(0))
	require.True(t, and.IsValid(1))
	require.True(t, and.IsValid(2))
	require.False(t, and.IsValid(3))
}

func TestValidity_Mask(t *testing.T) {
	v := AllValid()
	toNull := mask.FromIndices(5, []int{2})

	masked := v.Mask(toNull)
	require.True(t, masked.IsValid(0))
	require.False(t, masked.IsValid(2))
}

func TestValidity_ToLogical(t *testing.T) {
	require.Equal(t, 5, NonNullable().ToLogical(5).TrueCount())
	require.Equal(t, 0, AllInvalid().ToLogical(5).TrueCount())
}
