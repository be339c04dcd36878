// Package btrblocks implements a cascading compressor: a rule-based
// codec selector that samples a column's statistics, estimates an
// expected compression ratio for each candidate scheme, and picks the
// best one above a minimum threshold, recursing into composed
// sub-arrays up to a configured cascade depth.
//
// Candidate schemes are Constant, BitPacked, FoR, ZigZag, Dict, RunEnd,
// and Sparse. Generic block compression of raw bytes (CompressBuffer) is a
// separate utility that Compress does not call. Config, built with the
// package's functional options, tunes the cascade depth, the minimum
// acceptable ratio, and per-scheme cut-offs.
package btrblocks
