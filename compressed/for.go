package compressed

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingFoR identifies the Frame-of-Reference compressed encoding.
const EncodingFoR array.Encoding = "vortex.for"

// FoR (Frame-of-Reference) stores encoded = values - reference, where
// reference is the array's minimum and encoded is therefore always
// non-negative, letting the inner encoded array compose a BitPacked
// layer over a narrower range than the original values.
type FoR struct {
	pt        dtype.PType
	reference scalar.PValue
	encoded   array.Array // non-negative values in reference's unsigned domain
	st        stats.StatsSet
}

// NewFoR creates a FoR array. encoded must hold non-negative values in
// the unsigned counterpart of pt; reference is added back on decode.
func NewFoR(pt dtype.PType, reference scalar.PValue, encoded array.Array) *FoR {
	return &FoR{pt: pt, reference: reference, encoded: encoded}
}

func (f *FoR) DType() dtype.DType          { return dtype.Primitive(f.pt, f.encoded.DType().Nullability()) }
func (f *FoR) Len() int                    { return f.encoded.Len() }
func (f *FoR) Encoding() array.Encoding    { return EncodingFoR }
func (f *FoR) Validity() validity.Validity { return f.encoded.Validity() }
func (f *FoR) Stats() *stats.StatsSet      { return &f.st }
func (f *FoR) IsValid(i int) bool          { return f.encoded.IsValid(i) }

// Reference returns the frame-of-reference value subtracted from every
// element at encode time.
func (f *FoR) Reference() scalar.PValue { return f.reference }

// Encoded returns the inner non-negative, recursively compressed array.
func (f *FoR) Encoded() array.Array { return f.encoded }

func (f *FoR) ScalarAt(i int) scalar.Scalar {
	if !f.IsValid(i) {
		return scalar.Null(f.DType())
	}
	delta := f.encoded.ScalarAt(i).AsPValue()
	actual := decodeReference(f.pt, f.reference, delta)

	return scalar.Primitive(actual, f.encoded.DType().Nullability())
}

// decodeReference adds delta back onto reference in pt's domain. Integer
// arithmetic is performed in a signed 64-bit accumulator, sufficient for
// every PType narrower than 64 bits; for 64-bit types it wraps exactly
// like native two's-complement addition.
func decodeReference(pt dtype.PType, reference, delta scalar.PValue) scalar.PValue {
	sum := uint64(reference.AsI64()) + delta.AsU64()

	return pvalueFromU64(pt, sum)
}

func (f *FoR) SliceArray(start, end int) array.Array {
	return NewFoR(f.pt, f.reference, f.encoded.SliceArray(start, end))
}

func (f *FoR) Canonicalize() array.Array {
	return array.Materialize(f.DType(), f.Len(), func(i int) scalar.Scalar { return f.ScalarAt(i) })
}
