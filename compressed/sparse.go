package compressed

import (
	"sort"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingSparse identifies the Sparse compressed encoding.
const EncodingSparse array.Encoding = "vortex.sparse"

// Sparse represents a column where one value (commonly null) dominates:
// every row not listed in indices equals fill, and indices/values carry
// the exceptions. Intended for columns where the dominant value covers
// the large majority of rows.
type Sparse struct {
	length  int
	fill    scalar.Scalar
	indices []int // sorted, unique, in [0, length)
	values  array.Array
	st      stats.StatsSet
}

// NewSparse creates a Sparse array. indices must be sorted and unique,
// with len(indices) == values.Len().
func NewSparse(length int, fill scalar.Scalar, indices []int, values array.Array) *Sparse {
	if len(indices) != values.Len() {
		panic("compressed: Sparse indices/values length mismatch")
	}

	return &Sparse{length: length, fill: fill, indices: indices, values: values}
}

func (s *Sparse) DType() dtype.DType { return s.fill.DType() }
func (s *Sparse) Len() int           { return s.length }
func (s *Sparse) Encoding() array.Encoding { return EncodingSparse }
func (s *Sparse) Stats() *stats.StatsSet   { return &s.st }

func (s *Sparse) locate(i int) (int, bool) {
	pos := sort.SearchInts(s.indices, i)
	if pos < len(s.indices) && s.indices[pos] == i {
		return pos, true
	}

	return 0, false
}

func (s *Sparse) IsValid(i int) bool {
	if pos, ok := s.locate(i); ok {
		return s.values.IsValid(pos)
	}

	return !s.fill.IsNull()
}

func (s *Sparse) Validity() validity.Validity {
	if s.fill.IsNull() && len(s.indices) == 0 {
		return validity.AllInvalid()
	}
	valid := make([]int, 0, s.length)
	for i := 0; i < s.length; i++ {
		if s.IsValid(i) {
			valid = append(valid, i)
		}
	}
	if len(valid) == s.length {
		return validity.AllValid()
	}

	return validity.FromMask(mask.FromIndices(s.length, valid))
}

func (s *Sparse) ScalarAt(i int) scalar.Scalar {
	if pos, ok := s.locate(i); ok {
		return s.values.ScalarAt(pos)
	}

	return s.fill
}

// SliceArray restricts indices/values to the logical sub-range,
// rebasing surviving indices by -start.
func (s *Sparse) SliceArray(start, end int) array.Array {
	checkRange(start, end, s.length)
	lo := sort.SearchInts(s.indices, start)
	hi := sort.SearchInts(s.indices, end)

	newIndices := make([]int, hi-lo)
	for k := lo; k < hi; k++ {
		newIndices[k-lo] = s.indices[k] - start
	}

	return NewSparse(end-start, s.fill, newIndices, s.values.SliceArray(lo, hi))
}

func (s *Sparse) Canonicalize() array.Array {
	return array.Materialize(s.DType(), s.length, func(i int) scalar.Scalar { return s.ScalarAt(i) })
}

// Fill returns the dominant fill value.
func (s *Sparse) Fill() scalar.Scalar { return s.fill }

// Indices returns the sorted positions holding an explicit value.
func (s *Sparse) Indices() []int { return s.indices }

// Values returns the explicit values aligned with Indices.
func (s *Sparse) Values() array.Array { return s.values }
