package compute

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
)

// Cast converts arr to the target PType, decoding through canonical form.
// CastScalarOK reports, for a single value, whether the conversion is
// lossless; Cast
// itself always produces a value (out-of-range floats/ints saturate or
// wrap per Go's own numeric conversion rules), matching the "implicit
// cast, caller checks losslessness separately" contract used by
// search_sorted's failed-cast path.
func Cast(arr array.Array, target dtype.PType) array.Array {
	dt := dtype.Primitive(target, arr.DType().Nullability())

	return array.Materialize(dt, arr.Len(), func(i int) scalar.Scalar {
		if !arr.IsValid(i) {
			return scalar.Null(dt)
		}

		return scalar.Primitive(castPValue(arr.ScalarAt(i).AsPValue(), target), dt.Nullability())
	})
}

// CastScalarOK casts a single scalar target to pt, reporting ok=false
// when the value cannot be represented exactly at pt — used by
// search_sorted to detect when a search target is out of the sorted
// array's representable range, in which case the result must be
// NotFound(len) rather than a silently wrapped comparison.
func CastScalarOK(v scalar.PValue, pt dtype.PType) (scalar.PValue, bool) {
	if pt.IsUnsignedInt() {
		if v.PType().IsSignedInt() && v.AsI64() < 0 {
			return scalar.PValue{}, false
		}
		if v.AsF64() > float64(pt.MaxValueAsU64()) {
			return scalar.PValue{}, false
		}

		return castPValue(v, pt), true
	}
	if pt.IsSignedInt() {
		maxSigned := int64(pt.MaxValueAsU64())
		minSigned := -maxSigned - 1
		f := v.AsF64()
		if f > float64(maxSigned) || f < float64(minSigned) {
			return scalar.PValue{}, false
		}

		return castPValue(v, pt), true
	}

	return castPValue(v, pt), true
}

func castPValue(v scalar.PValue, target dtype.PType) scalar.PValue {
	switch {
	case target.IsFloat():
		return floatPValue(target, v.AsF64())
	case target.IsSignedInt():
		return signedPValue(target, v.AsI64())
	default:
		return unsignedPValue(target, v.AsU64())
	}
}

func floatPValue(target dtype.PType, f float64) scalar.PValue {
	switch target {
	case dtype.F32:
		return scalar.PValueF32(float32(f))
	case dtype.F64:
		return scalar.PValueF64(f)
	default:
		return scalar.PValueF32(float32(f))
	}
}

func signedPValue(target dtype.PType, i int64) scalar.PValue {
	switch target {
	case dtype.I8:
		return scalar.PValueI8(int8(i))
	case dtype.I16:
		return scalar.PValueI16(int16(i))
	case dtype.I32:
		return scalar.PValueI32(int32(i))
	default:
		return scalar.PValueI64(i)
	}
}

func unsignedPValue(target dtype.PType, u uint64) scalar.PValue {
	switch target {
	case dtype.U8:
		return scalar.PValueU8(uint8(u))
	case dtype.U16:
		return scalar.PValueU16(uint16(u))
	case dtype.U32:
		return scalar.PValueU32(uint32(u))
	default:
		return scalar.PValueU64(u)
	}
}
