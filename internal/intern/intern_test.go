package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_InternDeduplicates(t *testing.T) {
	tbl := New()
	a := tbl.Intern("alpha")
	b := tbl.Intern("beta")
	a2 := tbl.Intern("alpha")

	require.Equal(t, a, a2)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, tbl.Len())
}

func TestTable_ValueRoundTrip(t *testing.T) {
	tbl := New()
	code := tbl.Intern("gamma")
	require.Equal(t, "gamma", tbl.Value(code))
}

func TestTable_NoCollisionByDefault(t *testing.T) {
	tbl := New()
	tbl.Intern("a")
	tbl.Intern("b")
	require.False(t, tbl.HasCollision())
}
