// Package dtype implements the logical type lattice and the physical type
// lattice described in the core data model: DType carries shape and
// nullability; PType carries in-memory physical layout for Primitive and
// Decimal DTypes.
package dtype

import (
	"fmt"
	"strings"
)

// Nullability is a two-valued flag on every DType.
type Nullability bool

const (
	NonNullable Nullability = false
	Nullable    Nullability = true
)

func (n Nullability) String() string {
	if n == Nullable {
		return "?"
	}

	return ""
}

// Kind identifies which variant of the DType sum type a value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindPrimitive
	KindDecimal
	KindUtf8
	KindBinary
	KindStruct
	KindList
	KindExtension
)

// Field is one named, typed member of a Struct DType.
type Field struct {
	Name string
	Type DType
}

// DType is the logical type of an Array or Scalar. It is a small sum type
// over Kind; only the fields relevant to the active Kind are meaningful.
type DType struct {
	kind        Kind
	nullability Nullability

	// Primitive / Decimal
	ptype     PType
	precision int32
	scale     int32

	// Utf8 / Binary: no extra fields.

	// Struct
	fields []Field

	// List
	element *DType

	// Extension
	extID       string
	storage     *DType
	extMetadata []byte
}

// Null returns the Null DType. It has no nullability flag of its own: a
// Null-typed array is "all rows are null" by definition.
func Null() DType { return DType{kind: KindNull} }

// Bool returns a Bool DType with the given nullability.
func Bool(n Nullability) DType { return DType{kind: KindBool, nullability: n} }

// Primitive returns a Primitive DType over the given physical type.
func Primitive(p PType, n Nullability) DType {
	return DType{kind: KindPrimitive, ptype: p, nullability: n}
}

// Decimal returns a Decimal DType with the given precision and scale.
// precision must be in [1, 76] and scale in [0, precision]; neither this
// constructor nor array.NewDecimal validates it.
func Decimal(precision, scale int32, n Nullability) DType {
	return DType{kind: KindDecimal, precision: precision, scale: scale, nullability: n}
}

// Utf8 returns a Utf8 (string) DType.
func Utf8(n Nullability) DType { return DType{kind: KindUtf8, nullability: n} }

// Binary returns a Binary (bytes) DType.
func Binary(n Nullability) DType { return DType{kind: KindBinary, nullability: n} }

// Struct returns a Struct DType over the given ordered fields.
func Struct(fields []Field, n Nullability) DType {
	return DType{kind: KindStruct, fields: fields, nullability: n}
}

// List returns a List DType over the given element type.
func List(element DType, n Nullability) DType {
	return DType{kind: KindList, element: &element, nullability: n}
}

// Extension returns an Extension DType identified by id, storing its
// values physically as storage.
func Extension(id string, storage DType, metadata []byte, n Nullability) DType {
	return DType{kind: KindExtension, extID: id, storage: &storage, extMetadata: metadata, nullability: n}
}

func (d DType) Kind() Kind               { return d.kind }
func (d DType) Nullability() Nullability { return d.nullability }
func (d DType) IsNullable() bool         { return d.nullability == Nullable }

// PType returns the physical type of a Primitive DType. It panics for
// every other kind, Decimal included (a Decimal array's storage PType is
// held by the array, not the DType).
func (d DType) PType() PType {
	switch d.kind {
	case KindPrimitive:
		return d.ptype
	default:
		panic(fmt.Sprintf("dtype: PType() called on %s DType", d.kind))
	}
}

// DecimalPrecisionScale returns the (precision, scale) of a Decimal DType.
// It panics if d is not Decimal.
func (d DType) DecimalPrecisionScale() (int32, int32) {
	if d.kind != KindDecimal {
		panic("dtype: DecimalPrecisionScale() called on non-Decimal DType")
	}

	return d.precision, d.scale
}

// Fields returns the ordered fields of a Struct DType. It panics if d is
// not Struct.
func (d DType) Fields() []Field {
	if d.kind != KindStruct {
		panic("dtype: Fields() called on non-Struct DType")
	}

	return d.fields
}

// Element returns the element DType of a List DType. It panics if d is
// not List.
func (d DType) Element() DType {
	if d.kind != KindList {
		panic("dtype: Element() called on non-List DType")
	}

	return *d.element
}

// ExtensionID returns the opaque identifier of an Extension DType. It
// panics if d is not Extension.
func (d DType) ExtensionID() string {
	if d.kind != KindExtension {
		panic("dtype: ExtensionID() called on non-Extension DType")
	}

	return d.extID
}

// ExtensionStorage returns the physical storage DType of an Extension
// DType. It panics if d is not Extension.
func (d DType) ExtensionStorage() DType {
	if d.kind != KindExtension {
		panic("dtype: ExtensionStorage() called on non-Extension DType")
	}

	return *d.storage
}

// ExtensionMetadata returns the opaque metadata blob of an Extension
// DType. It panics if d is not Extension.
func (d DType) ExtensionMetadata() []byte {
	if d.kind != KindExtension {
		panic("dtype: ExtensionMetadata() called on non-Extension DType")
	}

	return d.extMetadata
}

// WithNullability returns a copy of d with nullability set to n. For Null,
// this is a no-op since Null has no nullability flag.
func (d DType) WithNullability(n Nullability) DType {
	if d.kind == KindNull {
		return d
	}
	d.nullability = n

	return d
}

// Equal reports whether d and other have identical shape and nullability.
func (d DType) Equal(other DType) bool {
	return d.EqualIgnoreNullability(other) && d.nullability == other.nullability
}

// EqualIgnoreNullability reports whether d and other have identical shape,
// disregarding the nullability flag at every level.
func (d DType) EqualIgnoreNullability(other DType) bool {
	if d.kind != other.kind {
		return false
	}

	switch d.kind {
	case KindNull, KindBool, KindUtf8, KindBinary:
		return true
	case KindPrimitive:
		return d.ptype == other.ptype
	case KindDecimal:
		return d.precision == other.precision && d.scale == other.scale
	case KindStruct:
		if len(d.fields) != len(other.fields) {
			return false
		}
		for i, f := range d.fields {
			of := other.fields[i]
			if f.Name != of.Name || !f.Type.EqualIgnoreNullability(of.Type) {
				return false
			}
		}

		return true
	case KindList:
		return d.element.EqualIgnoreNullability(*other.element)
	case KindExtension:
		return d.extID == other.extID && d.storage.EqualIgnoreNullability(*other.storage)
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindPrimitive:
		return "primitive"
	case KindDecimal:
		return "decimal"
	case KindUtf8:
		return "utf8"
	case KindBinary:
		return "binary"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	case KindExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// String renders the canonical display form of d, e.g. "i32", "utf8?",
// "decimal(19,2)", "struct<a: i32, b: utf8?>".
func (d DType) String() string {
	switch d.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool" + d.nullability.String()
	case KindPrimitive:
		return d.ptype.String() + d.nullability.String()
	case KindDecimal:
		return fmt.Sprintf("decimal(%d,%d)%s", d.precision, d.scale, d.nullability.String())
	case KindUtf8:
		return "utf8" + d.nullability.String()
	case KindBinary:
		return "binary" + d.nullability.String()
	case KindStruct:
		parts := make([]string, len(d.fields))
		for i, f := range d.fields {
			parts[i] = f.Name + ": " + f.Type.String()
		}

		return "struct<" + strings.Join(parts, ", ") + ">" + d.nullability.String()
	case KindList:
		return "list<" + d.element.String() + ">" + d.nullability.String()
	case KindExtension:
		return d.extID + "(" + d.storage.String() + ")" + d.nullability.String()
	default:
		return "unknown"
	}
}
