package btrblocks

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/compressed"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/internal/bitpack"
	"github.com/arloliu/vortex/internal/options"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Compressor runs the cascading codec selector over a column: sample
// statistics, estimate each candidate scheme's size, pick the cheapest
// one clearing Config.MinRatio, and recurse into its sub-arrays up to
// Config.AllowedCascading levels.
type Compressor struct {
	cfg Config
}

// NewCompressor builds a Compressor from DefaultConfig adjusted by opts.
func NewCompressor(opts ...options.Option[*Config]) (*Compressor, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Compressor{cfg: cfg}, nil
}

// Compress picks and applies the best cascading encoding for arr,
// returning arr itself (SchemeUncompressed) if nothing clears the
// configured minimum ratio.
func (c *Compressor) Compress(arr array.Array) array.Array {
	return c.compressRec(arr, c.cfg.AllowedCascading, map[Scheme]bool{}, true)
}

type candidate struct {
	scheme Scheme
	arr    array.Array
	size   int
}

func (c *Compressor) compressRec(arr array.Array, cascadeLeft int, stack map[Scheme]bool, topLevel bool) array.Array {
	length := arr.Len()
	if length == 0 {
		return arr
	}

	bundle := computeStatsBundle(arr, c.cfg.SampleSize)
	baseline := sizeGenericUncompressed(arr, bundle)

	var best *candidate
	consider := func(scheme Scheme, built array.Array, size int) {
		if built == nil || c.cfg.isExcluded(scheme) || stack[scheme] {
			return
		}
		ratio := float64(baseline) / float64(maxInt(size, 1))
		if ratio < c.cfg.MinRatio || size >= baseline {
			return
		}
		if best == nil || size < best.size {
			best = &candidate{scheme: scheme, arr: built, size: size}
		}
	}

	// Constant is only ever considered at the top level and only after a
	// full-array verification pass: a sampled "looks constant" must never
	// be trusted on its own.
	if topLevel && bundle.isConstant && verifyConstant(arr, bundle.constantValue) {
		consider(SchemeConstant, compressed.NewConstant(bundle.constantValue, length), sizeConstant(byteWidthOf(arr.DType())))
	}

	if cascadeLeft > 0 {
		if bundle.isIntegerPT {
			pt := bundle.pt
			switch {
			case bundle.minIsNegative:
				if zz, size, ok := c.buildZigZag(arr, pt, length, cascadeLeft, stack); ok {
					consider(SchemeZigZag, zz, size)
				}
			default:
				if !bundle.minIsZero {
					if fr, size, ok := c.buildFoR(arr, pt, bundle, length, cascadeLeft, stack); ok {
						consider(SchemeFoR, fr, size)
					}
				}
				if pt.IsUnsignedInt() {
					if bp, size, ok := c.buildBitPack(arr, pt, length); ok {
						consider(SchemeBitPack, bp, size)
					}
				}
			}
		}

		if re, size, ok := c.buildRunEnd(arr, bundle, length, cascadeLeft, stack); ok {
			consider(SchemeRunEnd, re, size)
		}
		if sp, size, ok := c.buildSparse(arr, bundle, length, cascadeLeft, stack); ok {
			consider(SchemeSparse, sp, size)
		}
		if dc, size, ok := c.buildDict(arr, bundle, length, cascadeLeft, stack); ok {
			consider(SchemeDict, dc, size)
		}
	}

	if best == nil {
		return arr
	}

	return best.arr
}

// recurse compresses child at a reduced cascade depth, marking applied
// on the compose stack when applied forbids self-nesting (Dict, RunEnd,
// Sparse, ZigZag).
func (c *Compressor) recurse(child array.Array, cascadeLeft int, stack map[Scheme]bool, applied Scheme) array.Array {
	if cascadeLeft <= 0 {
		return child
	}
	next := make(map[Scheme]bool, len(stack)+1)
	for k, v := range stack {
		next[k] = v
	}
	if applied.selfNestingForbidden() {
		next[applied] = true
	}

	return c.compressRec(child, cascadeLeft-1, next, false)
}

func verifyConstant(arr array.Array, value scalar.Scalar) bool {
	for i := 0; i < arr.Len(); i++ {
		if !arr.ScalarAt(i).Equal(value) {
			return false
		}
	}

	return true
}

func sizeGenericUncompressed(arr array.Array, bundle statsBundle) int {
	length := arr.Len()
	if bundle.isIntegerPT {
		return sizeUncompressed(bundle.pt, length, bundle.nullCount)
	}

	return byteWidthOf(arr.DType())*length + validityBytes(length)
}

func byteWidthOf(dt dtype.DType) int {
	switch dt.Kind() {
	case dtype.KindPrimitive:
		return dt.PType().ByteWidth()
	case dtype.KindBool:
		return 1
	default:
		// Variable-width and nested dtypes (VarBinView, Struct, List,
		// Extension) have no fixed per-row cost; 8 bytes is a
		// conservative stand-in used only to compare candidate sizes
		// against each other, never surfaced to a caller.
		return 8
	}
}

// buildBitPack packs arr's rows (interpreted as non-negative pt
// magnitudes) at the bit width ChooseWidth selects, rejecting the
// scheme if that width equals pt's native width (no savings).
func (c *Compressor) buildBitPack(arr array.Array, pt dtype.PType, length int) (array.Array, int, bool) {
	values := make([]uint64, length)
	for i := 0; i < length; i++ {
		if arr.IsValid(i) {
			values[i] = arr.ScalarAt(i).AsPValue().AsU64()
		}
	}

	width, numPatches := chooseBitWidthCost(values, pt.BitWidth()-1, pt.ByteWidth())
	if width >= pt.BitWidth() {
		return nil, 0, false
	}

	bp := compressed.EncodeBitPacked(pt, values, arr.Validity(), width)
	size := sizeBitPack(width, length, numPatches, pt.ByteWidth())

	return bp, size, true
}

// buildFoR subtracts bundle.min from every row and recursively
// compresses the resulting non-negative offsets, typically landing on
// BitPacked. Rejected when the minimum is already zero (no reference to
// subtract) or the offset range doesn't save at least a byte per value.
func (c *Compressor) buildFoR(arr array.Array, pt dtype.PType, bundle statsBundle, length, cascadeLeft int, stack map[Scheme]bool) (array.Array, int, bool) {
	maxOffset := offsetOf(pt, bundle.max, bundle.min)
	bitsNeeded := bitpack.BitsRequired(maxOffset)
	if pt.BitWidth()-bitsNeeded < 8 {
		return nil, 0, false
	}

	unsignedPT := pt.ToUnsigned()
	offsets := make([]uint64, length)
	for i := 0; i < length; i++ {
		if !arr.IsValid(i) {
			continue
		}
		offsets[i] = offsetOf(pt, arr.ScalarAt(i).AsPValue(), bundle.min)
	}

	innerRaw := primitiveArrayFromU64(unsignedPT, offsets, arr.Validity())
	inner := c.recurse(innerRaw, cascadeLeft, stack, SchemeFoR)
	fr := compressed.NewFoR(pt, bundle.min, inner)
	size := estimateSize(inner) + 8 // + reference scalar overhead

	return fr, size, true
}

// offsetOf computes v - reference in pt's domain as a non-negative
// uint64, signed or unsigned as appropriate.
func offsetOf(pt dtype.PType, v, reference scalar.PValue) uint64 {
	if pt.IsSignedInt() {
		return uint64(v.AsI64() - reference.AsI64())
	}

	return v.AsU64() - reference.AsU64()
}

// buildZigZag maps every row onto the unsigned domain and recursively
// compresses the result, only offered when the column's sampled minimum
// is negative.
func (c *Compressor) buildZigZag(arr array.Array, pt dtype.PType, length, cascadeLeft int, stack map[Scheme]bool) (array.Array, int, bool) {
	unsignedPT := pt.ToUnsigned()
	bits := pt.BitWidth()
	values := make([]uint64, length)
	for i := 0; i < length; i++ {
		if !arr.IsValid(i) {
			continue
		}
		values[i] = compressed.ZigZagEncode(arr.ScalarAt(i).AsPValue().AsI64(), bits)
	}

	innerRaw := primitiveArrayFromU64(unsignedPT, values, arr.Validity())
	inner := c.recurse(innerRaw, cascadeLeft, stack, SchemeZigZag)
	zz := compressed.NewZigZag(pt, inner)

	return zz, estimateSize(inner), true
}

// buildRunEnd collapses consecutive equal rows (nulls included, compared
// by the shared IsNull+Equal notion of "same value" used for stats
// sampling) into runs, rejected below Config.RunEndMinAverageRunLength.
func (c *Compressor) buildRunEnd(arr array.Array, bundle statsBundle, length, cascadeLeft int, stack map[Scheme]bool) (array.Array, int, bool) {
	if bundle.averageRunLength < c.cfg.RunEndMinAverageRunLength {
		return nil, 0, false
	}

	var ends []int
	var values []scalar.Scalar
	runVal := arr.ScalarAt(0)
	for i := 1; i <= length; i++ {
		if i == length || !runEqual(arr.ScalarAt(i), runVal) {
			ends = append(ends, i)
			values = append(values, runVal)
			if i < length {
				runVal = arr.ScalarAt(i)
			}
		}
	}
	if len(ends) == 0 {
		return nil, 0, false
	}

	valuesArr := array.Materialize(arr.DType(), len(values), func(i int) scalar.Scalar { return values[i] })
	inner := c.recurse(valuesArr, cascadeLeft, stack, SchemeRunEnd)
	re := compressed.NewRunEnd(arr.DType(), ends, inner, arr.Validity())
	size := len(ends)*4 + estimateSize(inner)

	return re, size, true
}

// buildSparse picks a dominant fill value (the null value when
// null-dominant, else the most frequent non-null sampled value) and
// stores only the exceptions, rejected below Config.SparseMinDominance.
func (c *Compressor) buildSparse(arr array.Array, bundle statsBundle, length, cascadeLeft int, stack map[Scheme]bool) (array.Array, int, bool) {
	nullDominance := 0.0
	if bundle.sampled > 0 {
		nullDominance = float64(bundle.nullCount) / float64(bundle.sampled)
	}

	var fill scalar.Scalar
	switch {
	case nullDominance >= c.cfg.SparseMinDominance:
		fill = scalar.Null(arr.DType())
	case bundle.topFreq >= c.cfg.SparseMinDominance:
		fill = bundle.topValue
	default:
		return nil, 0, false
	}

	var indices []int
	var values []scalar.Scalar
	for i := 0; i < length; i++ {
		v := arr.ScalarAt(i)
		if scalarEqualsFill(v, fill) {
			continue
		}
		indices = append(indices, i)
		values = append(values, v)
	}

	valuesArr := array.Materialize(arr.DType(), len(values), func(i int) scalar.Scalar { return values[i] })
	inner := c.recurse(valuesArr, cascadeLeft, stack, SchemeSparse)
	sp := compressed.NewSparse(length, fill, indices, inner)
	size := len(indices)*4 + estimateSize(inner)

	return sp, size, true
}

func scalarEqualsFill(v, fill scalar.Scalar) bool {
	if fill.IsNull() {
		return v.IsNull()
	}
	if v.IsNull() {
		return false
	}

	return v.Equal(fill)
}

// buildDict builds a first-seen distinct-value table and a bit-packed
// code per row, recursively compressing the code array (typically
// landing on RunEnd then BitPack).
func (c *Compressor) buildDict(arr array.Array, bundle statsBundle, length, cascadeLeft int, stack map[Scheme]bool) (array.Array, int, bool) {
	codeOf := make(map[string]int, bundle.distinctNonNull)
	var values []scalar.Scalar
	codes := make([]uint64, length)
	for i := 0; i < length; i++ {
		if !arr.IsValid(i) {
			continue
		}
		v := arr.ScalarAt(i)
		key := v.String()
		code, ok := codeOf[key]
		if !ok {
			code = len(values)
			codeOf[key] = code
			values = append(values, v)
		}
		codes[i] = uint64(code)
	}
	if len(values) == 0 || len(values) == length {
		// Nothing repeats: a dictionary would cost strictly more than
		// the raw column (table as large as the column, plus codes).
		return nil, 0, false
	}

	codeWidth := bitpack.BitsRequired(uint64(maxInt(len(values)-1, 0)))
	codePT := smallestUnsignedPType(codeWidth)
	codesArr := primitiveArrayFromU64(codePT, codes, validity.NonNullable())
	compressedCodes := c.recurse(codesArr, cascadeLeft, stack, SchemeDict)

	valuesArr := array.Materialize(arr.DType().WithNullability(dtype.NonNullable), len(values), func(i int) scalar.Scalar { return values[i] })
	dc := compressed.NewDict(compressedCodes, valuesArr, arr.Validity())
	size := sizeDict(len(values), length, byteWidthOf(arr.DType()))

	return dc, size, true
}

func smallestUnsignedPType(bits int) dtype.PType {
	switch {
	case bits <= 8:
		return dtype.U8
	case bits <= 16:
		return dtype.U16
	case bits <= 32:
		return dtype.U32
	default:
		return dtype.U64
	}
}

// primitiveArrayFromU64 builds a canonical Primitive array of pt holding
// values in native little-endian byte layout, used to feed a compressed
// encoding's sub-array (FoR/ZigZag offsets, Dict codes) back into
// compressRec for further cascading.
func primitiveArrayFromU64(pt dtype.PType, values []uint64, valid validity.Validity) array.Array {
	width := pt.ByteWidth()
	raw := make([]byte, len(values)*width)
	for i, v := range values {
		for b := 0; b < width; b++ {
			raw[i*width+b] = byte(v >> (8 * uint(b)))
		}
	}

	return array.NewPrimitive(pt, buffer.New(raw), len(values), valid)
}

// estimateSize recursively estimates the serialized size of a
// (possibly compressed) array built by this compressor, used to compare
// a container scheme's total cost once its sub-arrays are compressed.
func estimateSize(arr array.Array) int {
	switch a := arr.(type) {
	case *compressed.Constant:
		return sizeConstant(byteWidthOf(a.DType()))
	case *compressed.BitPacked:
		return sizeBitPack(a.BitWidth(), a.Len(), a.Patches().Len(), byteWidthOf(a.DType()))
	case *compressed.FoR:
		return estimateSize(a.Encoded()) + 8
	case *compressed.ZigZag:
		return estimateSize(a.Encoded())
	case *compressed.Dict:
		return estimateSize(a.Codes()) + estimateSize(a.Values())
	case *compressed.RunEnd:
		return len(a.Ends())*4 + estimateSize(a.Values())
	case *compressed.Sparse:
		return len(a.Indices())*4 + estimateSize(a.Values())
	case *array.Primitive:
		return sizeUncompressed(a.PType(), a.Len(), a.Validity().NullCount(a.Len()))
	default:
		return byteWidthOf(arr.DType())*arr.Len() + validityBytes(arr.Len())
	}
}
