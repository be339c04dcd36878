package compressed

import (
	"fmt"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingRunEnd identifies the RunEnd compressed encoding.
const EncodingRunEnd array.Encoding = "vortex.runend"

// RunEnd stores a run-length encoded column as strictly increasing run
// ends plus one value per run: row i's logical value is
// values[find_physical_index(i)], grounded on
// encodings/runend/src/compute.rs. Validity is tracked separately from
// run structure, so a row inside a run can still be null on its own.
type RunEnd struct {
	dt     dtype.DType
	ends   []int
	values array.Array
	valid  validity.Validity
	st     stats.StatsSet
}

// NewRunEnd creates a RunEnd array. ends must be strictly increasing with
// len(ends) == values.Len(); the logical length is ends[len(ends)-1].
func NewRunEnd(dt dtype.DType, ends []int, values array.Array, valid validity.Validity) *RunEnd {
	if len(ends) != values.Len() {
		panic("compressed: RunEnd ends/values length mismatch")
	}
	for i := 1; i < len(ends); i++ {
		if ends[i] <= ends[i-1] {
			panic(fmt.Sprintf("compressed: RunEnd ends must be strictly increasing, got %v", ends))
		}
	}

	return &RunEnd{dt: dt, ends: ends, values: values, valid: valid}
}

func (r *RunEnd) DType() dtype.DType          { return r.dt }
func (r *RunEnd) Encoding() array.Encoding    { return EncodingRunEnd }
func (r *RunEnd) Validity() validity.Validity { return r.valid }
func (r *RunEnd) Stats() *stats.StatsSet      { return &r.st }
func (r *RunEnd) IsValid(i int) bool          { return r.valid.IsValid(i) }

func (r *RunEnd) Len() int {
	if len(r.ends) == 0 {
		return 0
	}

	return r.ends[len(r.ends)-1]
}

// Ends returns the run-end boundaries.
func (r *RunEnd) Ends() []int { return r.ends }

// Values returns the per-run values array.
func (r *RunEnd) Values() array.Array { return r.values }

// FindPhysicalIndex returns the run index containing logical row i: the
// smallest index such that ends[index] > i.
func (r *RunEnd) FindPhysicalIndex(i int) int {
	return binarySearchFirstGreater(r.ends, i)
}

// FindPhysicalIndices bulk-resolves many logical indices to run indices
// in a single forward pass rather than one binary search per index.
// indices must be sorted ascending.
func (r *RunEnd) FindPhysicalIndices(indices []int) []int {
	out := make([]int, len(indices))
	run := 0
	for i, idx := range indices {
		for run < len(r.ends) && r.ends[run] <= idx {
			run++
		}
		out[i] = run
	}

	return out
}

func (r *RunEnd) ScalarAt(i int) scalar.Scalar {
	if !r.IsValid(i) {
		return scalar.Null(r.dt)
	}

	return r.values.ScalarAt(r.FindPhysicalIndex(i))
}

// SliceArray trims the run boundaries to the requested logical range
// without decoding, clamping the first and last surviving runs to the
// new bounds.
func (r *RunEnd) SliceArray(start, end int) array.Array {
	checkRange(start, end, r.Len())
	if start == end {
		return NewRunEnd(r.dt, nil, r.values.SliceArray(0, 0), r.valid.Slice(start, end))
	}

	firstRun := r.FindPhysicalIndex(start)
	lastRun := r.FindPhysicalIndex(end - 1)

	newEnds := make([]int, lastRun-firstRun+1)
	for k := firstRun; k <= lastRun; k++ {
		e := r.ends[k]
		if e > end {
			e = end
		}
		newEnds[k-firstRun] = e - start
	}

	return NewRunEnd(r.dt, newEnds, r.values.SliceArray(firstRun, lastRun+1), r.valid.Slice(start, end))
}

// FilterRuns applies m (len(m) == r.Len()) to r, rewriting ends so that
// each surviving run with at least one kept row contributes one output
// value and a new cumulative end. Validity is filtered in lock-step.
func (r *RunEnd) FilterRuns(m mask.Mask) *RunEnd {
	var newEnds []int
	var keptRuns []int
	cumulative := 0
	prevEnd := 0
	for run, end := range r.ends {
		count := m.Slice(prevEnd, end-prevEnd).TrueCount()
		if count > 0 {
			cumulative += count
			newEnds = append(newEnds, cumulative)
			keptRuns = append(keptRuns, run)
		}
		prevEnd = end
	}

	newValues := gatherRows(r.values, keptRuns)

	return NewRunEnd(r.dt, newEnds, newValues, r.valid.Filter(m))
}

func (r *RunEnd) Canonicalize() array.Array {
	return array.Materialize(r.dt, r.Len(), func(i int) scalar.Scalar { return r.ScalarAt(i) })
}

// gatherRows builds a new array.Array holding a.ScalarAt(idx) for each
// idx in indices, in order — the shared helper every compressed encoding
// uses to materialize a reordered/filtered child without depending on the
// compute package (which depends on compressed, not the reverse).
func gatherRows(a array.Array, indices []int) array.Array {
	return array.Materialize(a.DType(), len(indices), func(i int) scalar.Scalar {
		return a.ScalarAt(indices[i])
	})
}
