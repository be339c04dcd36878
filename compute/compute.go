// Package compute implements the kernels that operate on any Array
// regardless of physical encoding: slice, take, filter, scalar_at,
// search_sorted, compare, cast, and canonicalize. Take and Filter first
// check for a cheaper native kernel on the concrete encoding
// (*compressed.Dict.Take, *compressed.RunEnd.FilterRuns) via a type
// switch, then fall back to a generic ScalarAt loop materialized via
// array.Materialize.
//
// compute depends on compressed and array; compressed never depends on
// compute, so the type switch lives here rather than behind an
// interface compressed would need to implement — Go interfaces require
// exact, non-covariant method signatures, and each native kernel returns
// its own concrete encoding type.
package compute

import (
	"fmt"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
)

func checkIndex(i, length int) {
	if i < 0 || i >= length {
		panic(fmt.Sprintf("compute: index %d out of bounds for length %d", i, length))
	}
}

func checkRange(start, end, length int) {
	if start < 0 || end < start || end > length {
		panic(fmt.Sprintf("compute: invalid range [%d,%d) for length %d", start, end, length))
	}
}

// gather builds a fresh canonical Array holding arr.ScalarAt(idx) for
// each idx in indices, in order. This is the fallback every kernel uses
// when arr exposes no cheaper native path.
func gather(arr array.Array, indices []int) array.Array {
	return array.Materialize(arr.DType(), len(indices), func(i int) scalar.Scalar {
		return arr.ScalarAt(indices[i])
	})
}

// propagateSliceStats copies the stats that survive a slice/filter kernel
// from src, downgrading them to Inexact, plus keeps IsConstant/IsSorted/
// IsStrictSorted as Exact when src already had them Exact (a sub-range of
// a constant or sorted array is itself constant or sorted).
func propagateSliceStats(src *stats.StatsSet, dst *stats.StatsSet) {
	inexact := src.KeepInexactStats([]stats.Stat{stats.Min, stats.Max, stats.NullCount, stats.UncompressedSizeInBytes})
	for _, st := range []stats.Stat{stats.Min, stats.Max, stats.NullCount, stats.UncompressedSizeInBytes} {
		if v, ok := inexact.Get(st); ok {
			dst.Set(st, v)
		}
	}
	for _, st := range []stats.Stat{stats.IsConstant, stats.IsSorted, stats.IsStrictSorted} {
		if v, ok := src.Get(st); ok && v.IsExact() {
			dst.Set(st, v)
		}
	}
}
