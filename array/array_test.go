package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/validity"
)

func TestNull_AllInvalid(t *testing.T) {
	n := NewNull(5)
	require.Equal(t, 5, n.Len())
	require.False(t, n.IsValid(0))
	require.True(t, n.ScalarAt(0).IsNull())

	sub := n.SliceArray(1, 3)
	require.Equal(t, 2, sub.Len())
}

func TestBool_ValuesAndSlice(t *testing.T) {
	m := mask.FromIndices(5, []int{0, 2, 4})
	b := NewBool(m, validity.AllValid())

	require.True(t, b.ValueAt(0))
	require.False(t, b.ValueAt(1))
	require.Equal(t, true, b.ScalarAt(2).AsBool())

	sub := b.SliceArray(1, 4).(*Bool)
	require.False(t, sub.ValueAt(0))
	require.True(t, sub.ValueAt(1))
}

func TestPrimitive_I32RoundTrip(t *testing.T) {
	data := []int32{10, 20, 30, 40}
	raw := buffer.New(data).AsBytes()
	p := NewPrimitive(dtype.I32, buffer.New(raw), 4, validity.AllValid())

	require.Equal(t, int64(20), p.ScalarAt(1).AsPValue().AsI64())

	sub := p.SliceArray(1, 3).(*Primitive)
	require.Equal(t, int64(30), sub.PValueAt(1).AsI64())
}

func TestPrimitive_NullRow(t *testing.T) {
	data := []int64{1, 2, 3}
	raw := buffer.New(data).AsBytes()
	v := validity.FromMask(mask.FromIndices(3, []int{0, 2}))
	p := NewPrimitive(dtype.I64, buffer.New(raw), 3, v)

	require.True(t, p.ScalarAt(1).IsNull())
	require.False(t, p.ScalarAt(0).IsNull())
}

func TestDecimal_UnscaledRoundTrip(t *testing.T) {
	data := []int64{12345, -500}
	raw := buffer.New(data).AsBytes()
	d := NewDecimal(dtype.I64, 10, 2, buffer.New(raw), 2, validity.AllValid())

	require.Equal(t, int64(12345), d.UnscaledAt(0).AsI64())
	require.Equal(t, int64(-500), d.UnscaledAt(1).AsI64())
}

func TestStruct_FieldsAndScalarAt(t *testing.T) {
	a := NewPrimitive(dtype.I32, buffer.New(buffer.New([]int32{1, 2}).AsBytes()), 2, validity.AllValid())
	bmask := mask.FromIndices(2, []int{1})
	b := NewBool(bmask, validity.AllValid())

	s := NewStruct([]string{"a", "b"}, []Array{a, b}, 2, validity.AllValid())
	require.Equal(t, a, s.Field("a"))

	sc := s.ScalarAt(1)
	require.Equal(t, int64(2), sc.AsStruct()["a"].AsPValue().AsI64())
	require.True(t, sc.AsStruct()["b"].AsBool())
}

func TestList_RowRangeAndScalarAt(t *testing.T) {
	values := NewPrimitive(dtype.I32, buffer.New(buffer.New([]int32{1, 2, 3, 4, 5}).AsBytes()), 5, validity.AllValid())
	offsets := []int32{0, 2, 2, 5}
	l := NewList(dtype.Primitive(dtype.I32, validity.NonNullable().Nullability()), offsets, values, validity.AllValid())

	require.Equal(t, 3, l.Len())
	row0 := l.ScalarAt(0).AsList()
	require.Len(t, row0, 2)
	row1 := l.ScalarAt(1).AsList()
	require.Len(t, row1, 0)
}

func TestVarBinView_InlineAndRef(t *testing.T) {
	buf := []byte("this is a long string that exceeds inline size")
	views := []View{
		MakeInlineView([]byte("short")),
		MakeRefView(buf, 0, 0),
	}
	vb := NewVarBinView(views, [][]byte{buf}, true, validity.AllValid())

	require.Equal(t, "short", vb.ScalarAt(0).AsString())
	require.Equal(t, string(buf), vb.ScalarAt(1).AsString())
}

func TestExtension_WrapsStorage(t *testing.T) {
	storage := NewPrimitive(dtype.I64, buffer.New(buffer.New([]int64{100}).AsBytes()), 1, validity.AllValid())
	ext := NewExtension("timestamp_us", storage, []byte("tz=UTC"))

	require.Equal(t, "timestamp_us", ext.DType().ExtensionID())
	require.Equal(t, int64(100), ext.ScalarAt(0).AsPValue().AsI64())
}
