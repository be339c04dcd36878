package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Bool is the canonical encoding for a Bool DType: a packed bitset of
// values plus a Validity lattice value.
type Bool struct {
	base
	values mask.Mask // true bit means the logical value is true
}

// NewBool creates a Bool array from a mask.Mask of values and a Validity.
func NewBool(values mask.Mask, valid validity.Validity) *Bool {
	return &Bool{base: newBase(dtype.Bool(valid.Nullability()), values.Len(), valid), values: values}
}

func (b *Bool) Encoding() Encoding { return EncodingBool }

// ValueAt returns the raw boolean value at row i, ignoring validity.
func (b *Bool) ValueAt(i int) bool {
	return b.values.Slice(i, 1).TrueCount() == 1
}

func (b *Bool) ScalarAt(i int) scalar.Scalar {
	if !b.IsValid(i) {
		return scalar.Null(b.dt)
	}

	return scalar.Bool(b.ValueAt(i), b.dt.Nullability())
}

func (b *Bool) SliceArray(start, end int) Array {
	return NewBool(b.values.Slice(start, end-start), b.valid.Slice(start, end))
}

func (b *Bool) Canonicalize() Array { return b }

// Values returns the underlying boolean mask.
func (b *Bool) Values() mask.Mask { return b.values }
