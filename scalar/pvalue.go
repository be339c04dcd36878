// Package scalar implements the tagged scalar value: a (DType, value) pair
// used for single-element results of compute kernels (scalar_at, min/max
// stats, search_sorted targets) and for Constant-encoded arrays.
package scalar

import (
	"fmt"
	"math"

	"github.com/arloliu/vortex/dtype"
)

// PValue is a tagged numeric value carrying any of the eleven physical
// types. Comparison and equality are defined numerically across variants
// of the same category (integer vs. float), matching the cross-width
// PType lattice: a PValue holding U8(5) compares equal to one holding
// I64(5).
type PValue struct {
	ptype dtype.PType
	bits  uint64 // raw bit pattern, reinterpreted per ptype on access
}

func newPValue(p dtype.PType, bits uint64) PValue {
	return PValue{ptype: p, bits: bits}
}

func PValueU8(v uint8) PValue   { return newPValue(dtype.U8, uint64(v)) }
func PValueU16(v uint16) PValue { return newPValue(dtype.U16, uint64(v)) }
func PValueU32(v uint32) PValue { return newPValue(dtype.U32, uint64(v)) }
func PValueU64(v uint64) PValue { return newPValue(dtype.U64, v) }
func PValueI8(v int8) PValue    { return newPValue(dtype.I8, uint64(uint8(v))) }
func PValueI16(v int16) PValue  { return newPValue(dtype.I16, uint64(uint16(v))) }
func PValueI32(v int32) PValue  { return newPValue(dtype.I32, uint64(uint32(v))) }
func PValueI64(v int64) PValue  { return newPValue(dtype.I64, uint64(v)) }
func PValueF16(v dtype.Float16) PValue { return newPValue(dtype.F16, uint64(v)) }
func PValueF32(v float32) PValue       { return newPValue(dtype.F32, uint64(math.Float32bits(v))) }
func PValueF64(v float64) PValue       { return newPValue(dtype.F64, math.Float64bits(v)) }

// PType returns the physical type tag of the value.
func (v PValue) PType() dtype.PType { return v.ptype }

// AsU64 upcasts the value to uint64. Negative signed values and
// out-of-range floats wrap/truncate per Go conversion rules, matching the
// "lossless upcast, checked elsewhere" contract: callers who need a
// checked conversion should compare AsF64() against the reconstructed
// value themselves.
func (v PValue) AsU64() uint64 {
	switch v.ptype {
	case dtype.U8:
		return uint64(uint8(v.bits))
	case dtype.U16:
		return uint64(uint16(v.bits))
	case dtype.U32:
		return uint64(uint32(v.bits))
	case dtype.U64:
		return v.bits
	case dtype.I8:
		return uint64(int64(int8(v.bits)))
	case dtype.I16:
		return uint64(int64(int16(v.bits)))
	case dtype.I32:
		return uint64(int64(int32(v.bits)))
	case dtype.I64:
		return uint64(int64(v.bits))
	case dtype.F16:
		return uint64(dtype.Float16(v.bits).ToFloat32())
	case dtype.F32:
		return uint64(math.Float32frombits(uint32(v.bits)))
	case dtype.F64:
		return uint64(math.Float64frombits(v.bits))
	default:
		panic(fmt.Sprintf("scalar: unknown ptype %v", v.ptype))
	}
}

// AsI64 downcasts/upcasts the value to int64.
func (v PValue) AsI64() int64 {
	switch v.ptype {
	case dtype.U8, dtype.U16, dtype.U32, dtype.U64:
		return int64(v.AsU64())
	case dtype.I8:
		return int64(int8(v.bits))
	case dtype.I16:
		return int64(int16(v.bits))
	case dtype.I32:
		return int64(int32(v.bits))
	case dtype.I64:
		return int64(v.bits)
	case dtype.F16:
		return int64(dtype.Float16(v.bits).ToFloat32())
	case dtype.F32:
		return int64(math.Float32frombits(uint32(v.bits)))
	case dtype.F64:
		return int64(math.Float64frombits(v.bits))
	default:
		panic(fmt.Sprintf("scalar: unknown ptype %v", v.ptype))
	}
}

// AsF64 widens the value to float64.
func (v PValue) AsF64() float64 {
	switch v.ptype {
	case dtype.F16:
		return float64(dtype.Float16(v.bits).ToFloat32())
	case dtype.F32:
		return float64(math.Float32frombits(uint32(v.bits)))
	case dtype.F64:
		return math.Float64frombits(v.bits)
	case dtype.I8, dtype.I16, dtype.I32, dtype.I64:
		return float64(v.AsI64())
	default:
		return float64(v.AsU64())
	}
}

// IsNaN reports whether v holds a NaN float value. Integer variants are
// never NaN.
func (v PValue) IsNaN() bool {
	switch v.ptype {
	case dtype.F16:
		return dtype.Float16(v.bits).IsNaN()
	case dtype.F32:
		return math.IsNaN(float64(math.Float32frombits(uint32(v.bits))))
	case dtype.F64:
		return math.IsNaN(math.Float64frombits(v.bits))
	default:
		return false
	}
}

// Equal compares v and other numerically, matching PValue's cross-variant
// equality: values of different physical types but the same numeric
// quantity are equal, e.g. U8(5) == I64(5).
func (v PValue) Equal(other PValue) bool {
	if v.ptype.IsFloat() || other.ptype.IsFloat() {
		return totalEqFloat(v, other)
	}
	if v.ptype.IsSignedInt() || other.ptype.IsSignedInt() {
		return v.AsI64() == other.AsI64()
	}

	return v.AsU64() == other.AsU64()
}

// totalEqFloat implements total-order float equality: NaN equals NaN.
func totalEqFloat(a, b PValue) bool {
	if a.IsNaN() && b.IsNaN() {
		return true
	}
	if a.IsNaN() != b.IsNaN() {
		return false
	}

	return a.AsF64() == b.AsF64()
}

// Compare returns -1, 0, or 1 according to total-order comparison: NaN is
// ordered above all finite values and equal to itself, matching the
// PType-level float total-compare contract.
func (v PValue) Compare(other PValue) int {
	if v.ptype.IsFloat() || other.ptype.IsFloat() {
		return totalCompareFloat(v, other)
	}
	if v.ptype.IsSignedInt() || other.ptype.IsSignedInt() {
		a, b := v.AsI64(), other.AsI64()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}

	a, b := v.AsU64(), other.AsU64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func totalCompareFloat(a, b PValue) int {
	aNaN, bNaN := a.IsNaN(), b.IsNaN()
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}

	af, bf := a.AsF64(), b.AsF64()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

// Reinterpret bit-reinterprets v as the given PType of equal byte width,
// e.g. reinterpreting an I32 as a U32 without numeric conversion. It
// returns ok=false if the byte widths differ.
func (v PValue) Reinterpret(p dtype.PType) (PValue, bool) {
	if v.ptype.ByteWidth() != p.ByteWidth() {
		return PValue{}, false
	}

	return newPValue(p, v.bits), true
}
