package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_Deterministic(t *testing.T) {
	require.Equal(t, ID("hello"), ID("hello"))
	require.NotEqual(t, ID("hello"), ID("world"))
}

func TestBytesID_MatchesID(t *testing.T) {
	require.Equal(t, ID("hello"), BytesID([]byte("hello")))
}
