package compressed

import (
	"fmt"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingConstant identifies the Constant compressed encoding.
const EncodingConstant array.Encoding = "vortex.constant"

// Constant is the degenerate encoding for a column whose every row holds
// the same scalar (possibly null): all kernels are O(1). A cascading
// compressor should only ever choose Constant at the top level of a
// column, never from a sampled sub-array, to avoid a sample that happens
// to be uniform masking a non-constant column.
type Constant struct {
	value  scalar.Scalar
	length int
	st     stats.StatsSet
}

// NewConstant creates a Constant array repeating value length times.
func NewConstant(value scalar.Scalar, length int) *Constant {
	c := &Constant{value: value, length: length}
	c.st = stats.Constant(value, length)

	return c
}

func (c *Constant) DType() dtype.DType { return c.value.DType() }

func (c *Constant) Len() int             { return c.length }
func (c *Constant) Encoding() array.Encoding { return EncodingConstant }
func (c *Constant) Stats() *stats.StatsSet   { return &c.st }

func (c *Constant) Validity() validity.Validity {
	if c.value.IsNull() {
		return validity.AllInvalid()
	}

	return validity.AllValid()
}

func (c *Constant) IsValid(i int) bool {
	checkIndex(i, c.length)

	return !c.value.IsNull()
}

func (c *Constant) ScalarAt(i int) scalar.Scalar {
	checkIndex(i, c.length)

	return c.value
}

func (c *Constant) SliceArray(start, end int) array.Array {
	checkRange(start, end, c.length)

	return NewConstant(c.value, end-start)
}

func (c *Constant) Canonicalize() array.Array {
	return array.Materialize(c.DType(), c.length, func(i int) scalar.Scalar { return c.value })
}

// Value returns the repeated scalar.
func (c *Constant) Value() scalar.Scalar { return c.value }

func checkIndex(i, length int) {
	if i < 0 || i >= length {
		panic(fmt.Sprintf("compressed: index %d out of bounds for length %d", i, length))
	}
}

func checkRange(start, end, length int) {
	if start < 0 || end > length || start > end {
		panic(fmt.Sprintf("compressed: invalid range [%d, %d) for length %d", start, end, length))
	}
}
