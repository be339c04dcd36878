package compressed

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingZigZag identifies the ZigZag compressed encoding.
const EncodingZigZag array.Encoding = "vortex.zigzag"

// ZigZag maps a signed integer domain onto an unsigned one via
// (n << 1) ^ (n >> (bits-1)) so that small-magnitude negative values pack
// as small unsigned values, then delegates storage to a recursively
// compressed inner array over the unsigned domain.
type ZigZag struct {
	signedPT dtype.PType
	encoded  array.Array // unsigned counterpart of signedPT
	st       stats.StatsSet
}

// NewZigZag creates a ZigZag array over an already zigzag-encoded inner
// array.
func NewZigZag(signedPT dtype.PType, encoded array.Array) *ZigZag {
	return &ZigZag{signedPT: signedPT, encoded: encoded}
}

// ZigZagEncode maps a signed value to its unsigned zigzag encoding.
func ZigZagEncode(n int64, bits int) uint64 {
	return uint64((n << 1) ^ (n >> uint(bits-1)))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func (z *ZigZag) DType() dtype.DType        { return dtype.Primitive(z.signedPT, z.encoded.DType().Nullability()) }
func (z *ZigZag) Len() int                  { return z.encoded.Len() }
func (z *ZigZag) Encoding() array.Encoding  { return EncodingZigZag }
func (z *ZigZag) Validity() validity.Validity { return z.encoded.Validity() }
func (z *ZigZag) Stats() *stats.StatsSet      { return &z.st }
func (z *ZigZag) IsValid(i int) bool          { return z.encoded.IsValid(i) }

// Encoded returns the inner unsigned, recursively compressed array.
func (z *ZigZag) Encoded() array.Array { return z.encoded }

func (z *ZigZag) ScalarAt(i int) scalar.Scalar {
	if !z.IsValid(i) {
		return scalar.Null(z.DType())
	}
	u := z.encoded.ScalarAt(i).AsPValue().AsU64()
	signed := ZigZagDecode(u)

	return scalar.Primitive(pvalueFromU64(z.signedPT, uint64(signed)), z.encoded.DType().Nullability())
}

func (z *ZigZag) SliceArray(start, end int) array.Array {
	return NewZigZag(z.signedPT, z.encoded.SliceArray(start, end))
}

func (z *ZigZag) Canonicalize() array.Array {
	return array.Materialize(z.DType(), z.Len(), func(i int) scalar.Scalar { return z.ScalarAt(i) })
}
