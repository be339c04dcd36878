package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/scalar"
)

func TestStatsSet_SetGetClear(t *testing.T) {
	s := StatsSet{}
	s.Set(NullCount, Exact(intScalar(3)))

	v, ok := s.Get(NullCount)
	require.True(t, ok)
	require.True(t, v.IsExact())
	require.Equal(t, int64(3), v.Value().AsPValue().AsI64())

	s.Clear(NullCount)
	_, ok = s.Get(NullCount)
	require.False(t, ok)
}

func TestStatsSet_ExactNeverDowngrades(t *testing.T) {
	s := StatsSet{}
	s.Set(Min, Exact(intScalar(1)))
	s.Set(Min, Inexact(intScalar(0)))

	v, _ := s.Get(Min)
	require.True(t, v.IsExact())
	require.Equal(t, int64(1), v.Value().AsPValue().AsI64())
}

func TestStatsSet_KeepInexactStats(t *testing.T) {
	s := StatsSet{}
	s.Set(Min, Exact(intScalar(1)))
	s.Set(Max, Exact(intScalar(9)))
	s.Set(IsSorted, Exact(boolScalar(true)))

	kept := s.KeepInexactStats([]Stat{Min, Max, NullCount})
	v, ok := kept.Get(Min)
	require.True(t, ok)
	require.False(t, v.IsExact())

	_, ok = kept.Get(IsSorted)
	require.False(t, ok)
}

func TestStatsSet_Nulls(t *testing.T) {
	s := Nulls(5)
	v, ok := s.Get(NullCount)
	require.True(t, ok)
	require.Equal(t, int64(5), v.Value().AsPValue().AsI64())

	c, _ := s.Get(IsConstant)
	require.True(t, c.Value().AsBool())
}

func TestStatsSet_Constant(t *testing.T) {
	s := Constant(scalar.Primitive(scalar.PValueI32(7), false), 10)
	mn, _ := s.Get(Min)
	mx, _ := s.Get(Max)
	require.Equal(t, int64(7), mn.Value().AsPValue().AsI64())
	require.Equal(t, int64(7), mx.Value().AsPValue().AsI64())
}

func TestStatsSet_MergeOrderedPreservesSortedness(t *testing.T) {
	left := StatsSet{}
	left.Set(IsSorted, Exact(boolScalar(true)))
	left.Set(Max, Exact(intScalar(5)))

	right := StatsSet{}
	right.Set(IsSorted, Exact(boolScalar(true)))
	right.Set(Min, Exact(intScalar(10)))

	merged := left.MergeOrdered(right)
	v, ok := merged.Get(IsSorted)
	require.True(t, ok)
	require.True(t, v.Value().AsBool())
	require.True(t, v.IsExact())
}

func TestStatsSet_MergeOrderedBreaksOnBoundaryViolation(t *testing.T) {
	left := StatsSet{}
	left.Set(IsSorted, Exact(boolScalar(true)))
	left.Set(Max, Exact(intScalar(100)))

	right := StatsSet{}
	right.Set(IsSorted, Exact(boolScalar(true)))
	right.Set(Min, Exact(intScalar(10)))

	merged := left.MergeOrdered(right)
	v, _ := merged.Get(IsSorted)
	require.False(t, v.Value().AsBool())
}

func TestStatsSet_MergeUnorderedDropsSortedness(t *testing.T) {
	left := StatsSet{}
	left.Set(IsSorted, Exact(boolScalar(true)))
	right := StatsSet{}
	right.Set(IsSorted, Exact(boolScalar(true)))

	merged := left.MergeUnordered(right)
	_, ok := merged.Get(IsSorted)
	require.False(t, ok)
}

func TestStatsSet_MergeAdditive(t *testing.T) {
	left := StatsSet{}
	left.Set(NullCount, Exact(intScalar(2)))
	right := StatsSet{}
	right.Set(NullCount, Inexact(intScalar(3)))

	merged := left.MergeOrdered(right)
	v, ok := merged.Get(NullCount)
	require.True(t, ok)
	require.Equal(t, int64(5), v.Value().AsPValue().AsI64())
	require.False(t, v.IsExact())
}

func TestStat_IsCommutative(t *testing.T) {
	require.False(t, IsSorted.IsCommutative())
	require.False(t, IsStrictSorted.IsCommutative())
	require.True(t, Min.IsCommutative())
}
