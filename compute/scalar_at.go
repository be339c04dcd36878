package compute

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
)

// ScalarAt extracts row i of arr. Every encoding already implements this
// natively as part of the Array vtable; this wrapper exists so call sites
// that reach for "the compute kernel for X" find one for every verb, and
// so bounds-checking is centralized and panics with a consistent message.
func ScalarAt(arr array.Array, i int) scalar.Scalar {
	checkIndex(i, arr.Len())

	return arr.ScalarAt(i)
}

// allStats enumerates every stat carried by a StatsSet; stats has no
// public iteration API beyond Get-by-key, so copying a whole set walks
// this fixed list.
var allStats = []stats.Stat{
	stats.Min, stats.Max, stats.Sum, stats.NullCount, stats.NaNCount,
	stats.IsConstant, stats.IsSorted, stats.IsStrictSorted, stats.UncompressedSizeInBytes,
}

func copyAllStats(src *stats.StatsSet, dst *stats.StatsSet) {
	for _, st := range allStats {
		if v, ok := src.Get(st); ok {
			dst.Set(st, v)
		}
	}
}

// Canonicalize decodes arr into one of the eight canonical encodings,
// preserving length, dtype, and every stat the source already carried —
// canonicalization is size- and dtype-preserving, so no precision needs
// downgrading.
func Canonicalize(arr array.Array) array.Array {
	out := arr.Canonicalize()
	copyAllStats(arr.Stats(), out.Stats())

	return out
}
