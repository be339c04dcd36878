package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		name     string
		ct       CompressionType
		expected string
	}{
		{"none", CompressionNone, "none"},
		{"zstd", CompressionZstd, "zstd"},
		{"s2", CompressionS2, "s2"},
		{"lz4", CompressionLZ4, "lz4"},
		{"unknown", CompressionType(0xFF), "CompressionType(255)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.ct.String())
		})
	}
}

func TestCreateCodec_InvalidType(t *testing.T) {
	_, err := CreateCodec(CompressionType(0xFF), "test")
	require.Error(t, err)
}

func TestGetCodec_UnsupportedType(t *testing.T) {
	_, err := GetCodec(CompressionType(0xFF))
	require.Error(t, err)
}

func allCodecs(t *testing.T) map[string]Codec {
	t.Helper()

	return map[string]Codec{
		"NoOp": NewNoOpCodec(),
		"S2":   NewS2Codec(),
		"LZ4":  NewLZ4Codec(),
		"Zstd": NewZstdCodec(),
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"small_text", []byte("Hello, Vortex!")},
		{"repeated_pattern", bytes.Repeat([]byte("ABCD"), 200)},
		{"binary_data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{"single_byte", []byte{0x42}},
		{
			"medium_payload",
			bytes.Repeat([]byte("column chunk payload with varied bytes 0123456789"), 256),
		},
	}

	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_HighlyCompressibleData(t *testing.T) {
	original := make([]byte, 1<<20)

	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(original)
			require.NoError(t, err)

			if name != "NoOp" {
				require.Less(t, len(compressed), len(original)/10)
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, original, decompressed)
		})
	}
}

func TestS2Codec_InvalidData(t *testing.T) {
	codec := NewS2Codec()
	_, err := codec.Decompress([]byte("this is not s2-compressed data"))
	require.Error(t, err)
}

func TestZstdCodec_InvalidData(t *testing.T) {
	codec := NewZstdCodec()
	_, err := codec.Decompress([]byte("this is not zstd-compressed data"))
	require.Error(t, err)
}
