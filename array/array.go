// Package array implements the Array vtable abstraction and the eight
// canonical (uncompressed) encodings: Null, Bool, Primitive, Decimal,
// Struct, List, VarBinView, and Extension. Every compressed encoding in
// the compressed package also implements Array, decoding itself into one
// of these eight canonical shapes on demand via Canonicalize.
//
// The struct layout here — one Go struct per physical encoding, an
// embedded base carrying the shared DType/length/validity/stats fields,
// decode-on-demand accessors — is grounded on the blob.NumericBlob /
// blob.TextBlob split (blob/numeric_blob.go, blob/text_blob.go): one
// struct per physical layout sharing a common embedded header.
package array

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// Encoding identifies the physical layout of an Array. Canonical
// encodings are named "vortex.<kind>"; compressed encodings (defined in
// the compressed package) use their own "vortex.<codec>" names, since
// Encoding is just an opaque comparable tag rather than a closed enum —
// this lets the compressed package add encodings without this package
// needing to know about them.
type Encoding string

const (
	EncodingNull       Encoding = "vortex.null"
	EncodingBool       Encoding = "vortex.bool"
	EncodingPrimitive  Encoding = "vortex.primitive"
	EncodingDecimal    Encoding = "vortex.decimal"
	EncodingStruct     Encoding = "vortex.struct"
	EncodingList       Encoding = "vortex.list"
	EncodingVarBinView Encoding = "vortex.varbinview"
	EncodingExtension  Encoding = "vortex.extension"
)

// Array is the vtable every encoding (canonical or compressed)
// implements. Compute kernels in the compute package dispatch on
// Encoding() for a fast path and fall back to Canonicalize otherwise.
type Array interface {
	// DType returns the logical type of the array.
	DType() dtype.DType
	// Len returns the number of logical rows.
	Len() int
	// Encoding identifies the physical layout.
	Encoding() Encoding
	// Validity returns the nullability lattice value for this array.
	Validity() validity.Validity
	// Stats returns the mutable statistics cache for this array.
	Stats() *stats.StatsSet
	// IsValid reports whether row i is non-null.
	IsValid(i int) bool
	// ScalarAt extracts row i as a Scalar. Implementations return a null
	// Scalar of the correct DType when !IsValid(i).
	ScalarAt(i int) scalar.Scalar
	// SliceArray returns the logical sub-range [start, end) as a new
	// Array, preserving Encoding and DType.
	SliceArray(start, end int) Array
	// Canonicalize decodes the array into one of the eight canonical
	// encodings, a no-op identity for arrays that already are canonical.
	Canonicalize() Array
}

// base holds the fields every encoding shares: the logical type, row
// count, nullability lattice value, and the mutable stats cache.
// Canonicalize, the stats cache, and the base/dtype/len/validity group
// mirror the embedded blobBase shape, generalized from time-series
// metrics to arbitrary columnar rows.
type base struct {
	dt    dtype.DType
	ln    int
	valid validity.Validity
	st    stats.StatsSet
}

func newBase(dt dtype.DType, length int, valid validity.Validity) base {
	return base{dt: dt, ln: length, valid: valid}
}

func (b *base) DType() dtype.DType           { return b.dt }
func (b *base) Len() int                     { return b.ln }
func (b *base) Validity() validity.Validity  { return b.valid }
func (b *base) Stats() *stats.StatsSet       { return &b.st }
func (b *base) IsValid(i int) bool           { return b.valid.IsValid(i) }
