package scalar

import (
	"fmt"

	"github.com/arloliu/vortex/dtype"
)

// Kind identifies which variant of the Scalar sum type is active, mirroring
// dtype.Kind but with Primitive split out from Decimal since they carry
// different Go payload types.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindPrimitive
	KindDecimal
	KindBuffer
	KindString
	KindList
	KindStruct
)

// Scalar is a single (DType, value) pair: the result of a scalar_at
// compute kernel, a Constant array's fill value, or a min/max stat.
// A Scalar may itself be null, independent of whatever value its payload
// fields happen to hold.
type Scalar struct {
	dt     dtype.DType
	isNull bool

	kind Kind
	b    bool
	p    PValue
	dec  []byte // decimal stored as its two's-complement big-endian bytes
	buf  []byte
	str  string
	list []Scalar
	flds map[string]Scalar
}

// Null returns a null Scalar of the given DType.
func Null(dt dtype.DType) Scalar {
	return Scalar{dt: dt, isNull: true, kind: kindOf(dt)}
}

// Bool returns a non-null Bool Scalar.
func Bool(v bool, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.Bool(n), kind: KindBool, b: v}
}

// Primitive returns a non-null Primitive Scalar wrapping v.
func Primitive(v PValue, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.Primitive(v.PType(), n), kind: KindPrimitive, p: v}
}

// Decimal returns a non-null Decimal Scalar. unscaled holds the two's
// complement big-endian encoding of the unscaled integer value.
func Decimal(unscaled []byte, precision, scale int32, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.Decimal(precision, scale, n), kind: KindDecimal, dec: unscaled}
}

// Bytes returns a non-null Binary Scalar.
func Bytes(v []byte, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.Binary(n), kind: KindBuffer, buf: v}
}

// String returns a non-null Utf8 Scalar.
func String(v string, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.Utf8(n), kind: KindString, str: v}
}

// List returns a non-null List Scalar.
func List(element dtype.DType, values []Scalar, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.List(element, n), kind: KindList, list: values}
}

// Struct returns a non-null Struct Scalar.
func Struct(fields []dtype.Field, values map[string]Scalar, n dtype.Nullability) Scalar {
	return Scalar{dt: dtype.Struct(fields, n), kind: KindStruct, flds: values}
}

func kindOf(dt dtype.DType) Kind {
	switch dt.Kind() {
	case dtype.KindNull:
		return KindNull
	case dtype.KindBool:
		return KindBool
	case dtype.KindPrimitive:
		return KindPrimitive
	case dtype.KindDecimal:
		return KindDecimal
	case dtype.KindBinary:
		return KindBuffer
	case dtype.KindUtf8:
		return KindString
	case dtype.KindList:
		return KindList
	case dtype.KindStruct:
		return KindStruct
	default:
		return KindNull
	}
}

// DType returns the logical type of s.
func (s Scalar) DType() dtype.DType { return s.dt }

// IsNull reports whether s holds SQL-null.
func (s Scalar) IsNull() bool { return s.isNull }

// AsBool returns the Bool payload. It panics if s is not a Bool Scalar.
func (s Scalar) AsBool() bool {
	s.mustBeKind(KindBool)

	return s.b
}

// AsPValue returns the Primitive payload. It panics if s is not a
// Primitive Scalar.
func (s Scalar) AsPValue() PValue {
	s.mustBeKind(KindPrimitive)

	return s.p
}

// AsDecimalUnscaled returns the raw unscaled two's-complement bytes of a
// Decimal Scalar. It panics if s is not a Decimal Scalar.
func (s Scalar) AsDecimalUnscaled() []byte {
	s.mustBeKind(KindDecimal)

	return s.dec
}

// AsBytes returns the Binary payload. It panics if s is not a Binary
// Scalar.
func (s Scalar) AsBytes() []byte {
	s.mustBeKind(KindBuffer)

	return s.buf
}

// AsString returns the Utf8 payload. It panics if s is not a Utf8 Scalar.
func (s Scalar) AsString() string {
	s.mustBeKind(KindString)

	return s.str
}

// AsList returns the List payload. It panics if s is not a List Scalar.
func (s Scalar) AsList() []Scalar {
	s.mustBeKind(KindList)

	return s.list
}

// AsStruct returns the Struct payload keyed by field name. It panics if s
// is not a Struct Scalar.
func (s Scalar) AsStruct() map[string]Scalar {
	s.mustBeKind(KindStruct)

	return s.flds
}

func (s Scalar) mustBeKind(k Kind) {
	if s.kind != k {
		panic(fmt.Sprintf("scalar: expected kind %d, got %d", k, s.kind))
	}
}

// Equal reports whether s and other are structurally and numerically
// equal, including matching null-ness. DType nullability is ignored, only
// shape and value matter, mirroring dtype.EqualIgnoreNullability.
func (s Scalar) Equal(other Scalar) bool {
	if s.isNull != other.isNull {
		return false
	}
	if s.isNull {
		return s.dt.EqualIgnoreNullability(other.dt)
	}
	if s.kind != other.kind {
		return false
	}

	switch s.kind {
	case KindNull:
		return true
	case KindBool:
		return s.b == other.b
	case KindPrimitive:
		return s.p.Equal(other.p)
	case KindDecimal:
		return bytesEqual(s.dec, other.dec)
	case KindBuffer:
		return bytesEqual(s.buf, other.buf)
	case KindString:
		return s.str == other.str
	case KindList:
		if len(s.list) != len(other.list) {
			return false
		}
		for i := range s.list {
			if !s.list[i].Equal(other.list[i]) {
				return false
			}
		}

		return true
	case KindStruct:
		if len(s.flds) != len(other.flds) {
			return false
		}
		for name, v := range s.flds {
			ov, ok := other.flds[name]
			if !ok || !v.Equal(ov) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// String renders a human-readable form of s, mainly for debugging and test
// failure output.
func (s Scalar) String() string {
	if s.isNull {
		return "null"
	}

	switch s.kind {
	case KindBool:
		return fmt.Sprintf("%v", s.b)
	case KindPrimitive:
		return fmt.Sprintf("%v", s.p.AsF64())
	case KindString:
		return s.str
	case KindBuffer:
		return fmt.Sprintf("%x", s.buf)
	case KindDecimal:
		return fmt.Sprintf("%x", s.dec)
	case KindList:
		return fmt.Sprintf("%v", s.list)
	case KindStruct:
		return fmt.Sprintf("%v", s.flds)
	default:
		return "<null>"
	}
}
