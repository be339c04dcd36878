package compute

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/compressed"
	"github.com/arloliu/vortex/scalar"
)

// Take gathers arr's rows at indices, in order, producing an array of
// length len(indices). Out-of-bounds indices panic.
//
// Dict is the only encoding with a take kernel cheaper than a generic
// gather: taking rows only needs to reorder the small code array, never
// touching the (potentially much larger) value table.
func Take(arr array.Array, indices []int) array.Array {
	for _, idx := range indices {
		checkIndex(idx, arr.Len())
	}

	if d, ok := arr.(*compressed.Dict); ok {
		return d.Take(indices)
	}

	out := gather(arr, indices)
	propagateSliceStats(arr.Stats(), out.Stats())

	return out
}

// IndicesFromArray reads an integer Array into a []int, turning a null
// entry into the sentinel -1 so TakeNullable can null out that output
// row instead of gathering an invalid position.
func IndicesFromArray(indices array.Array) []int {
	out := make([]int, indices.Len())
	for i := range out {
		if !indices.IsValid(i) {
			out[i] = -1

			continue
		}
		out[i] = int(indices.ScalarAt(i).AsPValue().AsU64())
	}

	return out
}

// TakeNullable behaves like Take, but indices may hold the -1 sentinel
// produced by IndicesFromArray for a null index, which yields a null row
// in the output rather than gathering an invalid position: "take from
// NonNullable with a nullable indices array yields AllValid" unless at
// least one index is actually null, in which case the result is
// nullable.
func TakeNullable(arr array.Array, indices []int) array.Array {
	dt := arr.DType().WithNullability(true)

	return array.Materialize(dt, len(indices), func(i int) scalar.Scalar {
		if indices[i] < 0 {
			return scalar.Null(dt)
		}
		checkIndex(indices[i], arr.Len())

		return arr.ScalarAt(indices[i])
	})
}
