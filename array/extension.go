package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
)

// Extension is the canonical encoding for an Extension DType: it carries
// no data of its own, instead wrapping a storage Array whose DType the
// extension reinterprets under an opaque ID and metadata blob (e.g. a
// "timestamp_us" extension stored as an I64 Primitive).
type Extension struct {
	base
	storage Array
}

// NewExtension wraps storage under the given extension id and metadata.
func NewExtension(id string, storage Array, metadata []byte) *Extension {
	dt := dtype.Extension(id, storage.DType(), metadata, storage.DType().Nullability())

	return &Extension{base: newBase(dt, storage.Len(), storage.Validity()), storage: storage}
}

func (e *Extension) Encoding() Encoding { return EncodingExtension }

// Storage returns the wrapped array.
func (e *Extension) Storage() Array { return e.storage }

func (e *Extension) ScalarAt(i int) scalar.Scalar {
	return e.storage.ScalarAt(i)
}

func (e *Extension) SliceArray(start, end int) Array {
	return NewExtension(e.dt.ExtensionID(), e.storage.SliceArray(start, end), e.dt.ExtensionMetadata())
}

func (e *Extension) Canonicalize() Array {
	return NewExtension(e.dt.ExtensionID(), e.storage.Canonicalize(), e.dt.ExtensionMetadata())
}
