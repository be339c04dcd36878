// Package compressed implements the eight compressed array encodings
// that compose over canonical or other compressed children: Constant,
// Chunked, BitPacked, FoR, ZigZag, RunEnd, Dict, and Sparse. Every type
// here implements array.Array, so compute kernels can treat a compressed
// array exactly like a canonical one, either through one of the optional
// native-kernel interfaces in the compute package or by falling back to
// Canonicalize.
//
// BitPacked is grounded on the FastLanes block-of-1024 layout
// (encodings/fastlanes/src/bitpacking/compress.rs in the retrieved
// sources) but packs sequentially rather than across SIMD lanes; see
// internal/bitpack for the substitution rationale. RunEnd is grounded on
// encodings/runend/src/compute.rs's find_physical_index binary search.
package compressed

import (
	"math"

	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
)

// pvalueFromU64 reconstructs a scalar.PValue of the given PType from its
// raw bit pattern, the compressed encodings' equivalent of the array
// package's decodePValue but operating on a uint64 rather than a byte
// buffer, since bit-packed/FoR/ZigZag domains are naturally uint64-sized.
func pvalueFromU64(pt dtype.PType, bits uint64) scalar.PValue {
	switch pt {
	case dtype.U8:
		return scalar.PValueU8(uint8(bits))
	case dtype.U16:
		return scalar.PValueU16(uint16(bits))
	case dtype.U32:
		return scalar.PValueU32(uint32(bits))
	case dtype.U64:
		return scalar.PValueU64(bits)
	case dtype.I8:
		return scalar.PValueI8(int8(bits))
	case dtype.I16:
		return scalar.PValueI16(int16(bits))
	case dtype.I32:
		return scalar.PValueI32(int32(bits))
	case dtype.I64:
		return scalar.PValueI64(int64(bits))
	case dtype.F16:
		return scalar.PValueF16(dtype.Float16(bits))
	case dtype.F32:
		return scalar.PValueF32(math.Float32frombits(uint32(bits)))
	case dtype.F64:
		return scalar.PValueF64(math.Float64frombits(bits))
	default:
		panic("compressed: unknown ptype")
	}
}

// binarySearchFirstGreater returns the smallest index in ends (strictly
// increasing) such that ends[index] > target, used by RunEnd's physical
// index lookup.
func binarySearchFirstGreater(ends []int, target int) int {
	lo, hi := 0, len(ends)
	for lo < hi {
		mid := (lo + hi) / 2
		if ends[mid] > target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}
