package compressed

import (
	"fmt"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/internal/bitpack"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingBitPacked identifies the BitPacked compressed encoding.
const EncodingBitPacked array.Encoding = "vortex.bitpacked"

// BitPacked packs non-negative integer values into bitWidth bits per
// value using the FastLanes-style 1024-element micro-block layout.
// Values whose bit width exceeds bitWidth are carried in a Patches
// sidecar rather than truncated.
type BitPacked struct {
	pt       dtype.PType
	length   int
	valid    validity.Validity
	bitWidth int
	packed   []byte
	patches  bitpack.Patches
	st       stats.StatsSet
}

// EncodeBitPacked packs values (interpreted as non-negative magnitudes of
// pt) at bitWidth bits per value, extracting any out-of-range value into
// the Patches sidecar. pt must be an unsigned integer PType.
func EncodeBitPacked(pt dtype.PType, values []uint64, valid validity.Validity, bitWidth int) *BitPacked {
	if !pt.IsUnsignedInt() {
		panic("compressed: BitPacked requires an unsigned integer PType")
	}
	if bitWidth < 0 || bitWidth >= pt.BitWidth() {
		panic(fmt.Sprintf("compressed: BitPacked bit width %d must be < native width %d", bitWidth, pt.BitWidth()))
	}

	masked, patches := bitpack.Split(values, bitWidth)
	packed := bitpack.PackBlocked(masked, bitWidth)

	return &BitPacked{pt: pt, length: len(values), valid: valid, bitWidth: bitWidth, packed: packed, patches: patches}
}

// ChooseBitWidth selects the bit width in [0, pt.BitWidth()-1] minimizing
// packed size plus patch overhead for values.
func ChooseBitWidth(pt dtype.PType, values []uint64) int {
	return bitpack.ChooseWidth(values, pt.BitWidth()-1, pt.ByteWidth())
}

func (b *BitPacked) DType() dtype.DType         { return dtype.Primitive(b.pt, b.valid.Nullability()) }
func (b *BitPacked) Len() int                   { return b.length }
func (b *BitPacked) Encoding() array.Encoding   { return EncodingBitPacked }
func (b *BitPacked) Validity() validity.Validity { return b.valid }
func (b *BitPacked) Stats() *stats.StatsSet      { return &b.st }
func (b *BitPacked) IsValid(i int) bool          { return b.valid.IsValid(i) }

// BitWidth returns the packed bit width.
func (b *BitPacked) BitWidth() int { return b.bitWidth }

// Patches returns the exception sidecar.
func (b *BitPacked) Patches() bitpack.Patches { return b.patches }

// valueAt returns the decoded uint64 magnitude at logical row i, applying
// any patch override.
func (b *BitPacked) valueAt(i int) uint64 {
	if idx, ok := searchPatchIndex(b.patches.Indices, i); ok {
		return b.patches.Values[idx]
	}

	return bitpack.ReadAt(b.packed, b.bitWidth, i)
}

func searchPatchIndex(indices []int, target int) (int, bool) {
	lo, hi := 0, len(indices)
	for lo < hi {
		mid := (lo + hi) / 2
		if indices[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(indices) && indices[lo] == target {
		return lo, true
	}

	return 0, false
}

func (b *BitPacked) ScalarAt(i int) scalar.Scalar {
	if !b.IsValid(i) {
		return scalar.Null(b.DType())
	}

	return scalar.Primitive(pvalueFromU64(b.pt, b.valueAt(i)), b.valid.Nullability())
}

// SliceArray returns the logical sub-range without repacking: BitPacked
// keeps the same packed buffer, offsetting every read by start via a
// thin shifted view.
func (b *BitPacked) SliceArray(start, end int) array.Array {
	checkRange(start, end, b.length)

	return &shiftedBitPacked{BitPacked: b, offset: start, length: end - start, valid: b.valid.Slice(start, end)}
}

// shiftedBitPacked represents a logical sub-range [offset, offset+length)
// of a BitPacked array without copying or repacking the backing buffer.
type shiftedBitPacked struct {
	*BitPacked
	offset int
	length int
	valid  validity.Validity
}

func (s *shiftedBitPacked) Len() int                    { return s.length }
func (s *shiftedBitPacked) Validity() validity.Validity { return s.valid }
func (s *shiftedBitPacked) IsValid(i int) bool          { return s.valid.IsValid(i) }

func (s *shiftedBitPacked) ScalarAt(i int) scalar.Scalar {
	if !s.valid.IsValid(i) {
		return scalar.Null(s.BitPacked.DType())
	}

	return scalar.Primitive(pvalueFromU64(s.pt, s.valueAt(s.offset+i)), s.valid.Nullability())
}

func (s *shiftedBitPacked) SliceArray(start, end int) array.Array {
	checkRange(start, end, s.length)

	return &shiftedBitPacked{
		BitPacked: s.BitPacked,
		offset:    s.offset + start,
		length:    end - start,
		valid:     s.valid.Slice(start, end),
	}
}

func (s *shiftedBitPacked) Canonicalize() array.Array {
	return array.Materialize(s.BitPacked.DType(), s.length, func(i int) scalar.Scalar { return s.ScalarAt(i) })
}

func (s *shiftedBitPacked) Stats() *stats.StatsSet { return new(stats.StatsSet) }

func (b *BitPacked) Canonicalize() array.Array {
	return array.Materialize(b.DType(), b.length, func(i int) scalar.Scalar { return b.ScalarAt(i) })
}
