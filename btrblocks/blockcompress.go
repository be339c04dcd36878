package btrblocks

import "github.com/arloliu/vortex/compress"

// blockCodecOrder lists the candidate block codecs CompressBuffer
// tries, in the order BtrBlocks favors them: S2 and LZ4 are cheap, zstd
// trades CPU for ratio and goes last so a faster win is preferred when
// sizes tie.
var blockCodecOrder = []compress.CompressionType{
	compress.CompressionS2,
	compress.CompressionLZ4,
	compress.CompressionZstd,
}

// BlockCompressResult is the outcome of CompressBuffer's generic-bytes
// compression: the codec that best shrank a canonical buffer, or
// compress.CompressionNone with the input returned unchanged when
// nothing cleared Config.MinRatio.
type BlockCompressResult struct {
	Type compress.CompressionType
	Data []byte
}

// CompressBuffer runs every candidate block codec over raw — a
// canonicalized buffer such as a Primitive backing buffer or a
// VarBinView data buffer — and keeps whichever compresses it the most,
// provided the ratio clears Config.MinRatio. It is a standalone
// "BlockCompress" utility: Compress never calls it, and none of the
// structural schemes falls back to it.
func (c *Compressor) CompressBuffer(raw []byte) BlockCompressResult {
	result := BlockCompressResult{Type: compress.CompressionNone, Data: raw}
	if len(raw) == 0 {
		return result
	}

	bestSize := len(raw)
	for _, ct := range blockCodecOrder {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			continue
		}

		out, err := codec.Compress(raw)
		if err != nil {
			continue
		}

		ratio := float64(len(raw)) / float64(maxInt(len(out), 1))
		if ratio >= c.cfg.MinRatio && len(out) < bestSize {
			result = BlockCompressResult{Type: ct, Data: out}
			bestSize = len(out)
		}
	}

	return result
}

// DecompressBuffer reverses CompressBuffer's choice of codec.
func (c *Compressor) DecompressBuffer(res BlockCompressResult) ([]byte, error) {
	if res.Type == compress.CompressionNone {
		return res.Data, nil
	}

	codec, err := compress.GetCodec(res.Type)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(res.Data)
}
