package btrblocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/compressed"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

func primitiveI32(valid validity.Validity, vs ...int32) *array.Primitive {
	raw := buffer.New(vs).AsBytes()
	cp := make([]byte, len(raw))
	copy(cp, raw)

	return array.NewPrimitive(dtype.I32, buffer.New(cp), len(vs), valid)
}

func primitiveU32(valid validity.Validity, vs ...uint32) *array.Primitive {
	raw := buffer.New(vs).AsBytes()
	cp := make([]byte, len(raw))
	copy(cp, raw)

	return array.NewPrimitive(dtype.U32, buffer.New(cp), len(vs), valid)
}

// decodeAll decodes every row of arr into a slice of int64, for
// comparing against the original input regardless of which scheme the
// compressor picked.
func decodeAll(t *testing.T, arr array.Array) []int64 {
	t.Helper()
	out := make([]int64, arr.Len())
	for i := range out {
		require.True(t, arr.IsValid(i), "row %d unexpectedly null", i)
		out[i] = arr.ScalarAt(i).AsPValue().AsI64()
	}

	return out
}

func TestCompress_ConstantColumn(t *testing.T) {
	vs := make([]int32, 200)
	for i := range vs {
		vs[i] = 7
	}
	a := primitiveI32(validity.AllValid(), vs...)

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	_, ok := out.(*compressed.Constant)
	require.True(t, ok, "expected Constant, got %T", out)
	require.Equal(t, 200, out.Len())
	for i := 0; i < out.Len(); i++ {
		require.Equal(t, int64(7), out.ScalarAt(i).AsPValue().AsI64())
	}
}

func TestCompress_BitPackUnsignedColumn(t *testing.T) {
	vs := make([]uint32, 0, 4096)
	for i := 0; i < 4096; i++ {
		vs = append(vs, uint32(i%500))
	}
	a := primitiveU32(validity.AllValid(), vs...)

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	require.NotEqual(t, array.EncodingPrimitive, out.Encoding())
	want := make([]int64, len(vs))
	for i, v := range vs {
		want[i] = int64(v)
	}
	require.Equal(t, want, decodeAll(t, out))
}

func TestCompress_FoRColumnWithLargeOffset(t *testing.T) {
	const base = 1_000_000
	vs := make([]int32, 2048)
	for i := range vs {
		vs[i] = base + int32(i%64)
	}
	a := primitiveI32(validity.AllValid(), vs...)

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	fr, ok := out.(*compressed.FoR)
	require.True(t, ok, "expected FoR, got %T", out)
	require.Equal(t, int64(base), fr.Reference().AsI64())

	want := make([]int64, len(vs))
	for i, v := range vs {
		want[i] = int64(v)
	}
	require.Equal(t, want, decodeAll(t, out))
}

func TestCompress_ZigZagColumnWithNegatives(t *testing.T) {
	vs := make([]int32, 2048)
	for i := range vs {
		vs[i] = int32(i%200) - 100
	}
	a := primitiveI32(validity.AllValid(), vs...)

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	_, ok := out.(*compressed.ZigZag)
	require.True(t, ok, "expected ZigZag, got %T", out)

	want := make([]int64, len(vs))
	for i, v := range vs {
		want[i] = int64(v)
	}
	require.Equal(t, want, decodeAll(t, out))
}

func TestCompress_RunEndColumn(t *testing.T) {
	vs := make([]int32, 0, 4000)
	for run := 0; run < 40; run++ {
		for i := 0; i < 100; i++ {
			vs = append(vs, int32(run))
		}
	}
	a := primitiveI32(validity.AllValid(), vs...)

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	_, ok := out.(*compressed.RunEnd)
	require.True(t, ok, "expected RunEnd, got %T", out)

	want := make([]int64, len(vs))
	for i, v := range vs {
		want[i] = int64(v)
	}
	require.Equal(t, want, decodeAll(t, out))
}

func TestCompress_SparseNullDominant(t *testing.T) {
	length := 2000
	validIdx := []int{5, 123, 999, 1500}
	validSet := make(map[int]bool, len(validIdx))
	for _, i := range validIdx {
		validSet[i] = true
	}

	vs := make([]int32, length)
	for _, i := range validIdx {
		vs[i] = int32(i)
	}

	a := primitiveI32(validity.FromMask(mask.FromIndices(length, validIdx)), vs...)

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	sp, ok := out.(*compressed.Sparse)
	require.True(t, ok, "expected Sparse, got %T", out)
	require.True(t, sp.Fill().IsNull())

	for i := 0; i < length; i++ {
		if validSet[i] {
			require.True(t, out.IsValid(i))
			require.Equal(t, int64(i), out.ScalarAt(i).AsPValue().AsI64())
		} else {
			require.False(t, out.IsValid(i))
		}
	}
}

func TestCompress_DictLowCardinality(t *testing.T) {
	cities := []string{"NYC", "SF", "LA", "CHI"}
	length := 2000
	vs := make([]scalar.Scalar, length)
	for i := range vs {
		vs[i] = scalar.String(cities[i%len(cities)], dtype.NonNullable)
	}
	a := array.Materialize(dtype.Utf8(dtype.NonNullable), length, func(i int) scalar.Scalar { return vs[i] })

	c, err := NewCompressor()
	require.NoError(t, err)
	out := c.Compress(a)

	dc, ok := out.(*compressed.Dict)
	require.True(t, ok, "expected Dict, got %T", out)
	require.LessOrEqual(t, dc.Values().Len(), len(cities))

	for i := 0; i < length; i++ {
		require.Equal(t, cities[i%len(cities)], out.ScalarAt(i).AsString())
	}
}

func TestCompress_UncompressibleFallsBackToUncompressed(t *testing.T) {
	// Distinct, non-negative, non-run, non-sparse, non-dictionary-sized
	// values: nothing should beat leaving the column as-is.
	vs := []int32{1, 2, 4, 8, 16, 32, 64, 128, 256, 512}
	a := primitiveI32(validity.AllValid(), vs...)

	c, err := NewCompressor(WithMinRatio(1000))
	require.NoError(t, err)
	out := c.Compress(a)

	require.Equal(t, array.EncodingPrimitive, out.Encoding())
}

func TestCompress_ExcludedSchemeIsNeverChosen(t *testing.T) {
	vs := make([]int32, 0, 4000)
	for run := 0; run < 40; run++ {
		for i := 0; i < 100; i++ {
			vs = append(vs, int32(run))
		}
	}
	a := primitiveI32(validity.AllValid(), vs...)

	c, err := NewCompressor(WithExcludedSchemes(SchemeRunEnd))
	require.NoError(t, err)
	out := c.Compress(a)

	require.NotEqual(t, "vortex.runend", string(out.Encoding()))
}
