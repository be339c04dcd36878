package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Struct is the canonical encoding for a Struct DType: one child Array per
// field, all sharing the parent's length, plus the parent's own Validity
// (a struct row can be null independent of its fields' own validity).
type Struct struct {
	base
	names    []string
	children []Array
}

// NewStruct creates a Struct array. All children must have length equal
// to length.
func NewStruct(names []string, children []Array, length int, valid validity.Validity) *Struct {
	if len(names) != len(children) {
		panic("array: Struct names/children length mismatch")
	}
	fields := make([]dtype.Field, len(names))
	for i, n := range names {
		if children[i].Len() != length {
			panic("array: Struct child length mismatch")
		}
		fields[i] = dtype.Field{Name: n, Type: children[i].DType()}
	}

	return &Struct{
		base:     newBase(dtype.Struct(fields, valid.Nullability()), length, valid),
		names:    names,
		children: children,
	}
}

func (s *Struct) Encoding() Encoding { return EncodingStruct }

// Field returns the child array for the named field, or nil if absent.
func (s *Struct) Field(name string) Array {
	for i, n := range s.names {
		if n == name {
			return s.children[i]
		}
	}

	return nil
}

// FieldAt returns the child array at the given ordinal.
func (s *Struct) FieldAt(i int) Array { return s.children[i] }

// Names returns the field names in declaration order.
func (s *Struct) Names() []string { return s.names }

func (s *Struct) ScalarAt(i int) scalar.Scalar {
	if !s.IsValid(i) {
		return scalar.Null(s.dt)
	}
	values := make(map[string]scalar.Scalar, len(s.names))
	for idx, n := range s.names {
		values[n] = s.children[idx].ScalarAt(i)
	}

	return scalar.Struct(s.dt.Fields(), values, s.dt.Nullability())
}

func (s *Struct) SliceArray(start, end int) Array {
	sliced := make([]Array, len(s.children))
	for i, c := range s.children {
		sliced[i] = c.SliceArray(start, end)
	}

	return NewStruct(s.names, sliced, end-start, s.valid.Slice(start, end))
}

func (s *Struct) Canonicalize() Array {
	children := make([]Array, len(s.children))
	for i, c := range s.children {
		children[i] = c.Canonicalize()
	}

	return NewStruct(s.names, children, s.ln, s.valid)
}
