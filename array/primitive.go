package array

import (
	"fmt"

	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Primitive is the canonical encoding for a Primitive DType: a single
// aligned buffer of fixed-width values of the array's PType, plus
// Validity. The buffer is stored as raw bytes and reinterpreted per-PType
// on access, mirroring NumericRawEncoder's direct memory-layout
// encode/decode (encoding/numeric_raw.go) adapted from a wire-encode step
// to an in-memory zero-copy buffer view.
type Primitive struct {
	base
	raw buffer.Buffer[byte]
}

// NewPrimitive creates a Primitive array over raw, which must hold
// length*p.ByteWidth() bytes in native layout.
func NewPrimitive(p dtype.PType, raw buffer.Buffer[byte], length int, valid validity.Validity) *Primitive {
	if raw.Len() != length*p.ByteWidth() {
		panic(fmt.Sprintf("array: primitive buffer length %d does not match %d elements of width %d",
			raw.Len(), length, p.ByteWidth()))
	}

	return &Primitive{base: newBase(dtype.Primitive(p, valid.Nullability()), length, valid), raw: raw}
}

func (p *Primitive) Encoding() Encoding { return EncodingPrimitive }

// PType returns the physical type of the array's elements.
func (p *Primitive) PType() dtype.PType { return p.dt.PType() }

// Buffer returns the raw backing buffer.
func (p *Primitive) Buffer() buffer.Buffer[byte] { return p.raw }

// PValueAt returns the raw numeric value at row i, ignoring validity.
func (p *Primitive) PValueAt(i int) scalar.PValue {
	pt := p.PType()
	width := pt.ByteWidth()
	off := i * width
	bytesAt := p.raw.Slice(off, off+width)

	return decodePValue(pt, bytesAt)
}

func decodePValue(pt dtype.PType, raw buffer.Buffer[byte]) scalar.PValue {
	switch pt {
	case dtype.U8:
		return scalar.PValueU8(raw.At(0))
	case dtype.I8:
		return scalar.PValueI8(int8(raw.At(0)))
	case dtype.U16:
		return scalar.PValueU16(buffer.ReinterpretBuffer[uint16](raw).At(0))
	case dtype.I16:
		return scalar.PValueI16(buffer.ReinterpretBuffer[int16](raw).At(0))
	case dtype.U32:
		return scalar.PValueU32(buffer.ReinterpretBuffer[uint32](raw).At(0))
	case dtype.I32:
		return scalar.PValueI32(buffer.ReinterpretBuffer[int32](raw).At(0))
	case dtype.U64:
		return scalar.PValueU64(buffer.ReinterpretBuffer[uint64](raw).At(0))
	case dtype.I64:
		return scalar.PValueI64(buffer.ReinterpretBuffer[int64](raw).At(0))
	case dtype.F16:
		return scalar.PValueF16(dtype.Float16(buffer.ReinterpretBuffer[uint16](raw).At(0)))
	case dtype.F32:
		return scalar.PValueF32(buffer.ReinterpretBuffer[float32](raw).At(0))
	case dtype.F64:
		return scalar.PValueF64(buffer.ReinterpretBuffer[float64](raw).At(0))
	default:
		panic(fmt.Sprintf("array: unknown ptype %v", pt))
	}
}

func (p *Primitive) ScalarAt(i int) scalar.Scalar {
	if !p.IsValid(i) {
		return scalar.Null(p.dt)
	}

	return scalar.Primitive(p.PValueAt(i), p.dt.Nullability())
}

func (p *Primitive) SliceArray(start, end int) Array {
	width := p.PType().ByteWidth()

	return NewPrimitive(p.PType(), p.raw.Slice(start*width, end*width), end-start, p.valid.Slice(start, end))
}

func (p *Primitive) Canonicalize() Array { return p }
