package dtype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPType_Widths(t *testing.T) {
	cases := []struct {
		p          PType
		byteWidth  int
		bitWidth   int
		isUnsigned bool
		isSigned   bool
		isFloat    bool
	}{
		{U8, 1, 8, true, false, false},
		{U16, 2, 16, true, false, false},
		{U32, 4, 32, true, false, false},
		{U64, 8, 64, true, false, false},
		{I8, 1, 8, false, true, false},
		{I16, 2, 16, false, true, false},
		{I32, 4, 32, false, true, false},
		{I64, 8, 64, false, true, false},
		{F16, 2, 16, false, false, true},
		{F32, 4, 32, false, false, true},
		{F64, 8, 64, false, false, true},
	}

	for _, c := range cases {
		t.Run(c.p.String(), func(t *testing.T) {
			require.Equal(t, c.byteWidth, c.p.ByteWidth())
			require.Equal(t, c.bitWidth, c.p.BitWidth())
			require.Equal(t, c.isUnsigned, c.p.IsUnsignedInt())
			require.Equal(t, c.isSigned, c.p.IsSignedInt())
			require.Equal(t, c.isFloat, c.p.IsFloat())
			require.Equal(t, c.isUnsigned || c.isSigned, c.p.IsInt())
		})
	}
}

func TestPType_ToSignedUnsigned(t *testing.T) {
	require.Equal(t, I8, U8.ToSigned())
	require.Equal(t, I16, U16.ToSigned())
	require.Equal(t, I32, U32.ToSigned())
	require.Equal(t, I64, U64.ToSigned())
	require.Equal(t, I32, I32.ToSigned())
	require.Equal(t, F32, F32.ToSigned())

	require.Equal(t, U8, I8.ToUnsigned())
	require.Equal(t, U16, I16.ToUnsigned())
	require.Equal(t, U32, I32.ToUnsigned())
	require.Equal(t, U64, I64.ToUnsigned())
	require.Equal(t, U32, U32.ToUnsigned())
	require.Equal(t, F64, F64.ToUnsigned())
}

func TestPType_MaxValueAsU64(t *testing.T) {
	require.Equal(t, uint64(0xFF), U8.MaxValueAsU64())
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), U64.MaxValueAsU64())
	require.Equal(t, uint64(0x7FFFFFFFFFFFFFFF), I64.MaxValueAsU64())
	require.Equal(t, uint64(65504), F16.MaxValueAsU64())
}

func TestFloat16_RoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 42.0, -42.0, 65504}
	for _, v := range values {
		f16 := Float16FromFloat32(v)
		require.InDelta(t, v, f16.ToFloat32(), 0.01)
	}
}

func TestFloat16_NaN(t *testing.T) {
	f16 := Float16FromFloat32(float32(0x7FC00000)) // not really a NaN bit trick, just exercise path
	_ = f16
	nan := Float16(0x7E00)
	require.True(t, nan.IsNaN())
	require.False(t, Float16(0x3C00).IsNaN()) // 1.0
}
