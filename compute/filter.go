package compute

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/compressed"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
)

// Filter keeps only the rows of arr selected by m (true positions), in
// order; the result has length m.TrueCount().
//
// RunEnd is the only encoding with a filter kernel cheaper than decoding
// every row: FilterRuns rewrites run boundaries directly, so a filter
// over a long constant run costs O(runs) rather than O(rows).
func Filter(arr array.Array, m mask.Mask) array.Array {
	if m.Len() != arr.Len() {
		panic("compute: mask length must match array length")
	}

	if r, ok := arr.(*compressed.RunEnd); ok {
		return r.FilterRuns(m)
	}

	indices := m.Indices()
	out := array.Materialize(arr.DType(), len(indices), func(i int) scalar.Scalar {
		return arr.ScalarAt(indices[i])
	})
	propagateSliceStats(arr.Stats(), out.Stats())

	return out
}
