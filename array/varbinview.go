package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// maxInlineLen is the longest value stored directly inside a View rather
// than referenced into a data buffer, matching the original's
// Inlined/Ref union discriminant (Inlined.MAX_INLINED_SIZE = 12).
const maxInlineLen = 12

// View is one 16-byte-equivalent descriptor: either the inlined bytes of
// a short value, or a (size, 4-byte prefix, buffer index, offset)
// reference into one of the array's data buffers, mirroring the
// original's Inlined{size, data}/Ref{size, prefix, buffer_index, offset}
// union. Go has no safe union type, so the two cases are modeled as
// separate fields instead of the original's byte-for-byte reinterpreted
// union; size/semantics are otherwise identical. Prefix is populated only
// for referenced views (Inline already holds the leading bytes for
// inlined ones) and lets callers compare/sort referenced views without
// dereferencing the backing buffer.
type View struct {
	Size   uint32
	Inline [maxInlineLen]byte
	Prefix [4]byte
	Buffer uint32
	Offset uint32
}

// IsInline reports whether the view's bytes are stored inline.
func (v View) IsInline() bool { return int(v.Size) <= maxInlineLen }

// MakeInlineView constructs a View for a value of at most maxInlineLen
// bytes.
func MakeInlineView(value []byte) View {
	var v View
	v.Size = uint32(len(value))
	copy(v.Inline[:], value)

	return v
}

// MakeRefView constructs a View referencing bufferIdx at [offset,
// offset+len(value)), deriving the view's size and 4-byte prefix from
// value. value must be longer than maxInlineLen; callers with shorter
// values should use MakeInlineView instead.
func MakeRefView(value []byte, bufferIdx, offset uint32) View {
	v := View{Size: uint32(len(value)), Buffer: bufferIdx, Offset: offset}
	copy(v.Prefix[:], value)

	return v
}

// VarBinView is the canonical encoding for Utf8 and Binary DTypes: an
// array of fixed-size Views plus a set of backing data buffers that long
// values reference into, grounded on
// vortex-array/src/arrays/varbinview/mod.rs's BinaryView/Inlined/Ref
// layout.
type VarBinView struct {
	base
	views   []View
	buffers [][]byte
	isUtf8  bool
}

// NewVarBinView creates a VarBinView array. isUtf8 selects between the
// Utf8 and Binary DType.
func NewVarBinView(views []View, buffers [][]byte, isUtf8 bool, valid validity.Validity) *VarBinView {
	var dt dtype.DType
	if isUtf8 {
		dt = dtype.Utf8(valid.Nullability())
	} else {
		dt = dtype.Binary(valid.Nullability())
	}

	return &VarBinView{
		base:    newBase(dt, len(views), valid),
		views:   views,
		buffers: buffers,
		isUtf8:  isUtf8,
	}
}

func (vb *VarBinView) Encoding() Encoding { return EncodingVarBinView }

// BytesAt returns the raw bytes for row i, ignoring validity.
func (vb *VarBinView) BytesAt(i int) []byte {
	v := vb.views[i]
	if v.IsInline() {
		return v.Inline[:v.Size]
	}

	return vb.buffers[v.Buffer][v.Offset : v.Offset+v.Size]
}

func (vb *VarBinView) ScalarAt(i int) scalar.Scalar {
	if !vb.IsValid(i) {
		return scalar.Null(vb.dt)
	}
	raw := vb.BytesAt(i)
	if vb.isUtf8 {
		return scalar.String(string(raw), vb.dt.Nullability())
	}

	return scalar.Bytes(raw, vb.dt.Nullability())
}

func (vb *VarBinView) SliceArray(start, end int) Array {
	return NewVarBinView(vb.views[start:end], vb.buffers, vb.isUtf8, vb.valid.Slice(start, end))
}

func (vb *VarBinView) Canonicalize() Array { return vb }

// MergeVarBinViews concatenates several VarBinView arrays (e.g. the
// sliced sub-ranges of a Chunked column) into one, rebasing each part's
// non-inline views to point into the merged buffer list rather than
// copying string bytes. All parts must share isUtf8 and nullability.
func MergeVarBinViews(parts ...*VarBinView) *VarBinView {
	if len(parts) == 0 {
		panic("array: MergeVarBinViews requires at least one part")
	}

	totalViews := 0
	totalBuffers := 0
	for _, p := range parts {
		totalViews += len(p.views)
		totalBuffers += len(p.buffers)
	}

	views := make([]View, 0, totalViews)
	buffers := make([][]byte, 0, totalBuffers)
	validIdx := make([]int, 0, totalViews)
	offset := 0

	for _, p := range parts {
		bufferBase := uint32(len(buffers))
		buffers = append(buffers, p.buffers...)
		for i, v := range p.views {
			if !v.IsInline() {
				v.Buffer += bufferBase
			}
			views = append(views, v)
			if p.IsValid(i) {
				validIdx = append(validIdx, offset+i)
			}
		}
		offset += len(p.views)
	}

	valid := validity.AllValid()
	if len(validIdx) != len(views) {
		valid = validity.FromMask(mask.FromIndices(len(views), validIdx))
	}

	return NewVarBinView(views, buffers, parts[0].isUtf8, valid)
}
