package compressed

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingDict identifies the Dict compressed encoding.
const EncodingDict array.Encoding = "vortex.dict"

// Dict stores a distinct-values table plus one integer code per row:
// row i's logical value is values[codes[i]]. codes is itself compressed
// recursively, typically RunEnd then BitPacked over small code ranges.
// Validity is independent of the code/value tables, consistent with
// RunEnd's own independent-validity design.
type Dict struct {
	codes  array.Array // integer codes
	values array.Array // distinct value table
	valid  validity.Validity
	st     stats.StatsSet
}

// NewDict creates a Dict array. codes must hold non-negative integers in
// [0, values.Len()).
func NewDict(codes, values array.Array, valid validity.Validity) *Dict {
	return &Dict{codes: codes, values: values, valid: valid}
}

func (d *Dict) DType() dtype.DType          { return d.values.DType().WithNullability(d.valid.Nullability()) }
func (d *Dict) Len() int                    { return d.codes.Len() }
func (d *Dict) Encoding() array.Encoding    { return EncodingDict }
func (d *Dict) Validity() validity.Validity { return d.valid }
func (d *Dict) Stats() *stats.StatsSet      { return &d.st }
func (d *Dict) IsValid(i int) bool          { return d.valid.IsValid(i) }

// Codes returns the per-row code array.
func (d *Dict) Codes() array.Array { return d.codes }

// Values returns the distinct-value table.
func (d *Dict) Values() array.Array { return d.values }

func (d *Dict) codeAt(i int) int {
	return int(d.codes.ScalarAt(i).AsPValue().AsU64())
}

func (d *Dict) ScalarAt(i int) scalar.Scalar {
	if !d.IsValid(i) {
		return scalar.Null(d.DType())
	}

	return d.values.ScalarAt(d.codeAt(i))
}

func (d *Dict) SliceArray(start, end int) array.Array {
	return NewDict(d.codes.SliceArray(start, end), d.values, d.valid.Slice(start, end))
}

// Take gathers rows by index, producing a fresh code array (Dict's
// native take kernel rather than falling back through Canonicalize).
func (d *Dict) Take(indices []int) array.Array {
	newCodes := gatherRows(d.codes, indices)
	newValid := d.valid.Take(indices)

	return NewDict(newCodes, d.values, newValid)
}

func (d *Dict) Canonicalize() array.Array {
	return array.Materialize(d.DType(), d.Len(), func(i int) scalar.Scalar { return d.ScalarAt(i) })
}
