package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// List is the canonical encoding for a List DType: a single flat child
// array holding every element of every row back to back, plus
// length+1 offsets delimiting each row's slice of the child, plus
// Validity.
type List struct {
	base
	offsets []int32
	values  Array
}

// NewList creates a List array. offsets must have length+1 entries,
// non-decreasing, with offsets[length] == values.Len().
func NewList(element dtype.DType, offsets []int32, values Array, valid validity.Validity) *List {
	length := len(offsets) - 1
	if length < 0 {
		panic("array: List offsets must have at least one entry")
	}
	if int(offsets[length]) != values.Len() {
		panic("array: List final offset must equal values length")
	}

	return &List{
		base:    newBase(dtype.List(element, valid.Nullability()), length, valid),
		offsets: offsets,
		values:  values,
	}
}

func (l *List) Encoding() Encoding { return EncodingList }

// Values returns the flat child array holding every row's elements.
func (l *List) Values() Array { return l.values }

// Offsets returns the length+1 delimiting offsets into Values.
func (l *List) Offsets() []int32 { return l.offsets }

// RowRange returns the [start, end) range into Values for row i.
func (l *List) RowRange(i int) (int, int) {
	return int(l.offsets[i]), int(l.offsets[i+1])
}

func (l *List) ScalarAt(i int) scalar.Scalar {
	if !l.IsValid(i) {
		return scalar.Null(l.dt)
	}
	start, end := l.RowRange(i)
	elems := make([]scalar.Scalar, 0, end-start)
	for r := start; r < end; r++ {
		elems = append(elems, l.values.ScalarAt(r))
	}

	return scalar.List(l.dt.Element(), elems, l.dt.Nullability())
}

func (l *List) SliceArray(start, end int) Array {
	sliceOffsets := make([]int32, end-start+1)
	origin := l.offsets[start]
	for i := start; i <= end; i++ {
		sliceOffsets[i-start] = l.offsets[i] - origin
	}
	childValues := l.values.SliceArray(int(origin), int(l.offsets[end]))

	return NewList(l.dt.Element(), sliceOffsets, childValues, l.valid.Slice(start, end))
}

func (l *List) Canonicalize() Array {
	return NewList(l.dt.Element(), l.offsets, l.values.Canonicalize(), l.valid)
}
