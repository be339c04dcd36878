package vortex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
)

func i32Values(vs ...int32) []scalar.PValue {
	out := make([]scalar.PValue, len(vs))
	for i, v := range vs {
		out[i] = scalar.PValueI32(v)
	}

	return out
}

func TestNewPrimitiveArray_AllValid(t *testing.T) {
	arr := NewPrimitiveArray(dtype.I32, i32Values(1, 2, 3), nil)
	require.Equal(t, 3, arr.Len())
	for i, want := range []int64{1, 2, 3} {
		require.True(t, arr.IsValid(i))
		require.Equal(t, want, arr.ScalarAt(i).AsPValue().AsI64())
	}
}

func TestNewPrimitiveArray_WithNulls(t *testing.T) {
	arr := NewPrimitiveArray(dtype.I32, i32Values(10, 20, 30), []int{0, 2})
	require.Equal(t, 3, arr.Len())
	require.True(t, arr.IsValid(0))
	require.False(t, arr.IsValid(1))
	require.True(t, arr.IsValid(2))
	require.Equal(t, int64(10), arr.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(30), arr.ScalarAt(2).AsPValue().AsI64())
}

func TestSliceTakeFilterRoundTrip(t *testing.T) {
	arr := NewPrimitiveArray(dtype.I32, i32Values(1, 2, 3, 4, 5), nil)

	sl := Slice(arr, 1, 4)
	require.Equal(t, 3, sl.Len())
	require.Equal(t, int64(2), sl.ScalarAt(0).AsPValue().AsI64())

	tk := Take(arr, []int{4, 0})
	require.Equal(t, int64(5), tk.ScalarAt(0).AsPValue().AsI64())
	require.Equal(t, int64(1), tk.ScalarAt(1).AsPValue().AsI64())
}

func TestCompressReturnsWorkingArray(t *testing.T) {
	vs := make([]scalar.PValue, 500)
	for i := range vs {
		vs[i] = scalar.PValueI32(7)
	}
	arr := NewPrimitiveArray(dtype.I32, vs, nil)

	out, err := Compress(arr)
	require.NoError(t, err)
	require.Equal(t, 500, out.Len())
	require.Equal(t, int64(7), out.ScalarAt(0).AsPValue().AsI64())
}
