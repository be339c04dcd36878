package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// Null is the canonical encoding for an array whose DType is Null: every
// row is null by construction, with no validity or data buffer at all.
type Null struct {
	base
}

// NewNull creates a Null array of the given length.
func NewNull(length int) *Null {
	n := &Null{base: newBase(dtype.Null(), length, validity.AllInvalid())}
	n.st = stats.Nulls(length)

	return n
}

func (n *Null) Encoding() Encoding { return EncodingNull }

func (n *Null) ScalarAt(i int) scalar.Scalar {
	_ = i

	return scalar.Null(dtype.Null())
}

func (n *Null) SliceArray(start, end int) Array {
	return NewNull(end - start)
}

func (n *Null) Canonicalize() Array { return n }
