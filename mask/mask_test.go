package mask

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMask_TrueFalse(t *testing.T) {
	tm := NewTrue(10)
	require.Equal(t, 10, tm.TrueCount())
	require.Equal(t, 0, tm.FalseCount())
	require.Equal(t, 1.0, tm.Selectivity())

	fm := NewFalse(10)
	require.Equal(t, 0, fm.TrueCount())
	require.Equal(t, 0.0, fm.Selectivity())
}

func TestMask_FromIndicesConversions(t *testing.T) {
	m := FromIndices(10, []int{1, 2, 3, 7})
	require.Equal(t, 4, m.TrueCount())

	bits := m.Bits()
	require.True(t, bitsetGet(bits, 1))
	require.False(t, bitsetGet(bits, 0))

	slices := m.Slices()
	require.Equal(t, []Slice{{1, 4}, {7, 8}}, slices)
}

func TestMask_FromSlicesConversions(t *testing.T) {
	m := FromSlices(10, []Slice{{2, 5}, {8, 9}})
	require.Equal(t, 4, m.TrueCount())

	idx := m.Indices()
	require.Equal(t, []int{2, 3, 4, 8}, idx)
}

func TestMask_FromBitsConversions(t *testing.T) {
	bits := newBitset(8)
	bitsetSet(bits, 0)
	bitsetSet(bits, 3)
	m := FromBits(bits, 8)

	require.Equal(t, []int{0, 3}, m.Indices())
	require.Equal(t, []Slice{{0, 1}, {3, 4}}, m.Slices())
}

func TestMask_First(t *testing.T) {
	m := FromIndices(10, []int{4, 5})
	v, ok := m.First()
	require.True(t, ok)
	require.Equal(t, 4, v)

	_, ok = NewFalse(5).First()
	require.False(t, ok)

	v, ok = NewTrue(5).First()
	require.True(t, ok)
	require.Equal(t, 0, v)
}

func TestMask_Slice(t *testing.T) {
	m := FromIndices(10, []int{1, 2, 3, 7})
	sub := m.Slice(2, 4) // positions [2,6) -> 2,3 survive, shifted by -2
	require.Equal(t, []int{0, 1}, sub.Indices())
}

func TestMask_FromIntersectionIndices(t *testing.T) {
	m := FromIntersectionIndices(10, []int{1, 2, 3, 5}, []int{2, 3, 4})
	require.Equal(t, []int{2, 3}, m.Indices())
}

func TestMask_IterSelectsBySelectivity(t *testing.T) {
	dense := NewTrue(100)
	it := dense.Iter()
	count := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	require.Equal(t, 100, count)

	sparse := FromIndices(100, []int{1, 50, 99})
	it2 := sparse.Iter()
	var got []int
	for {
		v, ok := it2.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{1, 50, 99}, got)
}

func TestMask_FromIndicesPanicsOnUnsorted(t *testing.T) {
	require.Panics(t, func() { FromIndices(10, []int{3, 1}) })
}

func TestMask_FromSlicesPanicsOnOverlap(t *testing.T) {
	require.Panics(t, func() { FromSlices(10, []Slice{{0, 5}, {3, 7}}) })
}
