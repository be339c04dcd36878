package compute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/compressed"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

func primitiveI32(valid validity.Validity, vs ...int32) *array.Primitive {
	raw := buffer.New(vs).AsBytes()
	cp := make([]byte, len(raw))
	copy(cp, raw)

	return array.NewPrimitive(dtype.I32, buffer.New(cp), len(vs), valid)
}

func primitiveU8(valid validity.Validity, vs ...uint8) *array.Primitive {
	raw := buffer.New(vs).AsBytes()
	cp := make([]byte, len(raw))
	copy(cp, raw)

	return array.NewPrimitive(dtype.U8, buffer.New(cp), len(vs), valid)
}

func pv(i int32) scalar.PValue { return scalar.PValueI32(i) }

func TestSlice_PropagatesInexactStats(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3, 4, 5)
	a.Stats().Set(stats.Min, stats.Exact(scalar.Primitive(pv(1), dtype.NonNullable)))
	a.Stats().Set(stats.IsSorted, stats.Exact(scalar.Bool(true, dtype.NonNullable)))

	out := Slice(a, 1, 4)
	require.Equal(t, 3, out.Len())
	require.Equal(t, int64(2), out.ScalarAt(0).AsPValue().AsI64())

	minStat, ok := out.Stats().Get(stats.Min)
	require.True(t, ok)
	require.False(t, minStat.IsExact())

	sortedStat, ok := out.Stats().Get(stats.IsSorted)
	require.True(t, ok)
	require.True(t, sortedStat.IsExact())
}

func TestTake_GenericGather(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 10, 20, 30, 40)
	out := Take(a, []int{3, 0, 0})
	require.Equal(t, 3, out.Len())
	require.Equal(t, int64(40), out.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(10), out.ScalarAt(1).AsPValue().AsI64())
	require.Equal(t, int64(10), out.ScalarAt(2).AsPValue().AsI64())
}

func TestTake_OutOfBoundsPanics(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3)
	require.Panics(t, func() { Take(a, []int{5}) })
}

func TestTake_DictNativeDispatch(t *testing.T) {
	codes := primitiveU8(validity.AllValid(), 0, 1, 0, 2)
	values := primitiveI32(validity.AllValid(), 100, 200, 300)
	d := compressed.NewDict(codes, values, validity.AllValid())

	out := Take(d, []int{3, 2})
	require.IsType(t, &compressed.Dict{}, out)
	require.Equal(t, int64(300), out.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(100), out.ScalarAt(1).AsPValue().AsI64())
}

func TestIndicesFromArray_NullSentinel(t *testing.T) {
	idx := primitiveI32(validity.FromMask(mask.FromIndices(3, []int{0, 2})), 5, 0, 7)
	got := IndicesFromArray(idx)
	require.Equal(t, []int{5, -1, 7}, got)
}

func TestTakeNullable_NullRowsFromSentinel(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3)
	out := TakeNullable(a, []int{2, -1, 0})
	require.True(t, out.IsValid(0))
	require.False(t, out.IsValid(1))
	require.True(t, out.IsValid(2))
	require.Equal(t, int64(3), out.ScalarAt(0).AsPValue().AsI64())
}

func TestFilter_GenericGather(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 3, 4, 5)
	m := mask.FromIndices(5, []int{1, 3, 4})
	out := Filter(a, m)
	require.Equal(t, 3, out.Len())
	require.Equal(t, int64(2), out.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(4), out.ScalarAt(1).AsPValue().AsI64())
	require.Equal(t, int64(5), out.ScalarAt(2).AsPValue().AsI64())
}

func TestFilter_RunEndNativeDispatch(t *testing.T) {
	values := primitiveI32(validity.AllValid(), 1, 5)
	re := compressed.NewRunEnd(dtype.Primitive(dtype.I32, dtype.NonNullable), []int{2, 4}, values, validity.AllValid())

	m := mask.FromIndices(4, []int{0, 2, 3})
	out := Filter(re, m)
	require.IsType(t, &compressed.RunEnd{}, out)
	require.Equal(t, 3, out.Len())
	require.Equal(t, int64(1), out.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(5), out.ScalarAt(1).AsPValue().AsI64())
	require.Equal(t, int64(5), out.ScalarAt(2).AsPValue().AsI64())
}

func TestScalarAt_BoundsChecked(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 7, 8)
	require.Equal(t, int64(8), ScalarAt(a, 1).AsPValue().AsI64())
	require.Panics(t, func() { ScalarAt(a, 2) })
}

func TestCanonicalize_PreservesAllStats(t *testing.T) {
	fill := scalar.Primitive(pv(9), dtype.NonNullable)
	c := compressed.NewConstant(fill, 4)
	c.Stats().Set(stats.IsConstant, stats.Exact(scalar.Bool(true, dtype.NonNullable)))
	c.Stats().Set(stats.Min, stats.Exact(fill))

	out := Canonicalize(c)
	require.Equal(t, 4, out.Len())
	for i := 0; i < 4; i++ {
		require.Equal(t, int64(9), out.ScalarAt(i).AsPValue().AsI64())
	}

	minStat, ok := out.Stats().Get(stats.Min)
	require.True(t, ok)
	require.True(t, minStat.IsExact())
}

func TestCompare_Eq(t *testing.T) {
	left := primitiveI32(validity.AllValid(), 1, 2, 3)
	right := primitiveI32(validity.AllValid(), 1, 5, 3)

	out := Compare(left, right, Eq)
	b, ok := out.(*array.Bool)
	require.True(t, ok)
	require.True(t, b.ValueAt(0))
	require.False(t, b.ValueAt(1))
	require.True(t, b.ValueAt(2))
}

func TestCompare_NullPropagation(t *testing.T) {
	left := primitiveI32(validity.FromMask(mask.FromIndices(2, []int{0})), 1, 2)
	right := primitiveI32(validity.AllValid(), 1, 2)

	out := Compare(left, right, Lt)
	require.True(t, out.IsValid(0))
	require.False(t, out.IsValid(1))
}

func TestCompare_DecimalSignAware(t *testing.T) {
	neg := scalar.Decimal([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 10, 0, dtype.NonNullable) // -1
	pos := scalar.Decimal([]byte{0x00, 0x00, 0x00, 0x01}, 10, 0, dtype.NonNullable) // 1

	require.Equal(t, -1, compareScalars(neg, pos))
	require.Equal(t, 1, compareScalars(pos, neg))
	require.Equal(t, 0, compareScalars(neg, neg))
}

func TestCastScalarOK_OutOfRangeFails(t *testing.T) {
	_, ok := CastScalarOK(scalar.PValueI32(256), dtype.U8)
	require.False(t, ok)

	v, ok := CastScalarOK(scalar.PValueI32(9), dtype.U8)
	require.True(t, ok)
	require.Equal(t, uint64(9), v.AsU64())
}

func TestCastScalarOK_NegativeToUnsignedFails(t *testing.T) {
	_, ok := CastScalarOK(scalar.PValueI32(-1), dtype.U8)
	require.False(t, ok)
}

func TestCast_Basic(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 2, 300)
	out := Cast(a, dtype.U8)
	require.Equal(t, 3, out.Len())
	require.Equal(t, uint64(1), out.ScalarAt(0).AsPValue().AsU64())
}

func TestSearchSorted_FoundAndNotFound(t *testing.T) {
	a := primitiveU8(validity.AllValid(), 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9)

	res := SearchSorted(a, scalar.PValueI32(3), Left)
	require.True(t, res.Found)
	require.Equal(t, 3, res.Index)

	res = SearchSorted(a, scalar.PValueI32(9), Left)
	require.True(t, res.Found)
	require.Equal(t, 9, res.Index)

	res = SearchSorted(a, scalar.PValueI32(9), Right)
	require.True(t, res.Found)
	require.Equal(t, 12, res.Index)
}

func TestSearchSorted_OutOfRangeCastFails(t *testing.T) {
	a := primitiveU8(validity.AllValid(), 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9)

	res := SearchSorted(a, scalar.PValueI32(256), Left)
	require.False(t, res.Found)
	require.Equal(t, a.Len(), res.Index)
}

func TestSearchSorted_NullsSortGreatest(t *testing.T) {
	valid := validity.FromMask(mask.FromIndices(4, []int{0, 1, 2}))
	a := primitiveI32(valid, 1, 2, 3, 0)

	res := SearchSorted(a, scalar.PValueI32(3), Right)
	require.Equal(t, 3, res.Index)
}

func TestSearchSortedMany(t *testing.T) {
	a := primitiveI32(validity.AllValid(), 1, 3, 5, 7)
	results := SearchSortedMany(a, []scalar.PValue{scalar.PValueI32(5), scalar.PValueI32(4)}, Left)
	require.True(t, results[0].Found)
	require.Equal(t, 2, results[0].Index)
	require.False(t, results[1].Found)
	require.Equal(t, 2, results[1].Index)
}
