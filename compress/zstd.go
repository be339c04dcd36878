package compress

// ZstdCodec offers the best compression ratio of the built-in codecs, at
// the cost of slower compression; good for cold, rarely-read columns.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
