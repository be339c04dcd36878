package array

import (
	"fmt"

	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Materialize builds a canonical Array of length rows from dt by calling
// at(i) for every row, used to decode any compressed encoding's
// Canonicalize into one of the eight canonical shapes. It generalizes the
// append_to_builder compute kernel: rather than a separate streaming
// builder type, compressed encodings (BitPacked, FoR and RunEnd
// included) materialize directly via repeated scalar_at.
func Materialize(dt dtype.DType, length int, at func(i int) scalar.Scalar) Array {
	switch dt.Kind() {
	case dtype.KindNull:
		return NewNull(length)
	case dtype.KindBool:
		return materializeBool(dt, length, at)
	case dtype.KindPrimitive:
		return materializePrimitive(dt, length, at)
	case dtype.KindUtf8, dtype.KindBinary:
		return materializeVarBin(dt, length, at)
	case dtype.KindStruct:
		return materializeStruct(dt, length, at)
	case dtype.KindList:
		return materializeList(dt, length, at)
	case dtype.KindExtension:
		return materializeExtension(dt, length, at)
	default:
		panic(fmt.Sprintf("array: Materialize: unsupported kind %v", dt.Kind()))
	}
}

func materializeBool(dt dtype.DType, length int, at func(int) scalar.Scalar) Array {
	validIdx := make([]int, 0, length)
	trueIdx := make([]int, 0, length)
	for i := 0; i < length; i++ {
		s := at(i)
		if !s.IsNull() {
			validIdx = append(validIdx, i)
			if s.AsBool() {
				trueIdx = append(trueIdx, i)
			}
		}
	}
	vd := validity.AllValid()
	if len(validIdx) != length {
		vd = validity.FromMask(mask.FromIndices(length, validIdx))
	}

	return NewBool(mask.FromIndices(length, trueIdx), vd)
}

func materializePrimitive(dt dtype.DType, length int, at func(int) scalar.Scalar) Array {
	pt := dt.PType()
	width := pt.ByteWidth()
	raw := make([]byte, length*width)
	validIdx := make([]int, 0, length)
	for i := 0; i < length; i++ {
		s := at(i)
		if s.IsNull() {
			continue
		}
		validIdx = append(validIdx, i)
		encodePValue(raw[i*width:(i+1)*width], s.AsPValue())
	}
	vd := validity.AllValid()
	if len(validIdx) != length {
		vd = validity.FromMask(mask.FromIndices(length, validIdx))
	}

	return NewPrimitive(pt, buffer.New(raw), length, vd)
}

func encodePValue(dst []byte, v scalar.PValue) {
	pt := v.PType()
	switch pt {
	case dtype.U8, dtype.I8:
		dst[0] = byte(v.AsU64())
	case dtype.U16, dtype.I16, dtype.F16:
		put16(dst, uint16(v.AsU64()))
	case dtype.U32, dtype.I32, dtype.F32:
		put32(dst, uint32(v.AsU64()))
	case dtype.U64, dtype.I64, dtype.F64:
		put64(dst, v.AsU64())
	default:
		panic(fmt.Sprintf("array: encodePValue: unknown ptype %v", pt))
	}
}

func put16(dst []byte, v uint16) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
}

func put32(dst []byte, v uint32) {
	for i := 0; i < 4; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func put64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func materializeVarBin(dt dtype.DType, length int, at func(int) scalar.Scalar) Array {
	views := make([]View, length)
	var data []byte
	validIdx := make([]int, 0, length)
	isUtf8 := dt.Kind() == dtype.KindUtf8
	for i := 0; i < length; i++ {
		s := at(i)
		if s.IsNull() {
			continue
		}
		validIdx = append(validIdx, i)
		var raw []byte
		if isUtf8 {
			raw = []byte(s.AsString())
		} else {
			raw = s.AsBytes()
		}
		if len(raw) <= maxInlineLen {
			views[i] = MakeInlineView(raw)
		} else {
			views[i] = MakeRefView(raw, 0, uint32(len(data)))
			data = append(data, raw...)
		}
	}
	vd := validity.AllValid()
	if len(validIdx) != length {
		vd = validity.FromMask(mask.FromIndices(length, validIdx))
	}

	return NewVarBinView(views, [][]byte{data}, isUtf8, vd)
}

func materializeStruct(dt dtype.DType, length int, at func(int) scalar.Scalar) Array {
	fields := dt.Fields()
	names := make([]string, len(fields))
	children := make([]Array, len(fields))
	validIdx := make([]int, 0, length)
	for fi, f := range fields {
		names[fi] = f.Name
		fi := fi
		f := f
		children[fi] = Materialize(f.Type, length, func(i int) scalar.Scalar {
			s := at(i)
			if s.IsNull() {
				return scalar.Null(f.Type)
			}

			return s.AsStruct()[f.Name]
		})
	}
	for i := 0; i < length; i++ {
		if !at(i).IsNull() {
			validIdx = append(validIdx, i)
		}
	}
	vd := validity.AllValid()
	if len(validIdx) != length {
		vd = validity.FromMask(mask.FromIndices(length, validIdx))
	}

	return NewStruct(names, children, length, vd)
}

func materializeList(dt dtype.DType, length int, at func(int) scalar.Scalar) Array {
	offsets := make([]int32, length+1)
	var flat []scalar.Scalar
	validIdx := make([]int, 0, length)
	for i := 0; i < length; i++ {
		s := at(i)
		offsets[i] = int32(len(flat))
		if s.IsNull() {
			continue
		}
		validIdx = append(validIdx, i)
		flat = append(flat, s.AsList()...)
	}
	offsets[length] = int32(len(flat))

	values := Materialize(dt.Element(), len(flat), func(i int) scalar.Scalar { return flat[i] })
	vd := validity.AllValid()
	if len(validIdx) != length {
		vd = validity.FromMask(mask.FromIndices(length, validIdx))
	}

	return NewList(dt.Element(), offsets, values, vd)
}

func materializeExtension(dt dtype.DType, length int, at func(int) scalar.Scalar) Array {
	storage := Materialize(dt.ExtensionStorage(), length, at)

	return NewExtension(dt.ExtensionID(), storage, dt.ExtensionMetadata())
}
