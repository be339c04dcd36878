// Package vortex provides a columnar, immutable in-memory array engine:
// a small set of canonical encodings (Null, Bool, Primitive, Decimal,
// Struct, List, VarBinView, Extension), a parallel set of compressed
// encodings that decode lazily (Constant, Chunked, BitPacked, FoR,
// ZigZag, RunEnd, Dict, Sparse), and a compute layer that dispatches
// kernels across whichever encoding an array happens to be in.
//
// # Core Features
//
//   - Type-tagged scalars and physical values with cross-width numeric
//     coercion and NaN-aware total ordering
//   - A four-state validity lattice (non-nullable, all-valid, all-invalid,
//     per-row) built on a tri-representation boolean mask
//   - Precision-tagged statistics (exact vs. inexact) that never silently
//     downgrade once proven exact
//   - A cascading cost-based compressor (package btrblocks) that picks
//     the cheapest encoding clearing a minimum compression ratio,
//     recursing into its own sub-arrays up to a configured depth
//   - Generic-bytes block compression (package compress: zstd, s2, lz4)
//     through the standalone btrblocks CompressBuffer utility, separate
//     from the structural cascade that Compress runs
//
// # Basic Usage
//
// Building a primitive array and compressing it:
//
//	import "github.com/arloliu/vortex"
//	import "github.com/arloliu/vortex/dtype"
//	import "github.com/arloliu/vortex/scalar"
//
//	vals := []scalar.PValue{scalar.PValueI32(1), scalar.PValueI32(1), scalar.PValueI32(2)}
//	arr := vortex.NewPrimitiveArray(dtype.I32, vals, nil)
//	packed, err := vortex.Compress(arr)
//
// Running a compute kernel against whatever encoding the array is in:
//
//	sliced := vortex.Slice(packed, 1, 4)
//	taken := vortex.Take(packed, []int{0, 2, 4})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// array, compute, and btrblocks packages, simplifying the most common
// use cases. For advanced usage and fine-grained control (custom
// validity, custom compressor Config, direct construction of a specific
// compressed encoding) use those packages directly.
package vortex

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/btrblocks"
	"github.com/arloliu/vortex/compute"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/internal/options"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Op re-exports compute.Op so callers comparing arrays don't need a
// second import for the six elementwise operators.
type Op = compute.Op

const (
	Lt    = compute.Lt
	Lte   = compute.Lte
	Eq    = compute.Eq
	NotEq = compute.NotEq
	Gte   = compute.Gte
	Gt    = compute.Gt
)

// Side re-exports compute.Side, the search_sorted boundary selector.
type Side = compute.Side

const (
	Left  = compute.Left
	Right = compute.Right
)

// NewPrimitiveArray builds a canonical Primitive array of pt holding
// values. validIdx lists the valid rows: when it is non-nil the array is
// nullable and every row it does not list is null; nil means a
// non-nullable array with every row valid. This is the common-case constructor; for Decimal, Struct,
// List, VarBinView or Extension arrays, or for an existing Validity
// value (a lazily-materialized per-row mask, or all-invalid), use
// array.Materialize or the array package's encoding-specific
// constructors directly.
func NewPrimitiveArray(pt dtype.PType, values []scalar.PValue, validIdx []int) array.Array {
	length := len(values)
	dt := dtype.Primitive(pt, dtype.NonNullable)
	valid := validity.NonNullable()
	if validIdx != nil {
		dt = dtype.Primitive(pt, dtype.Nullable)
		valid = validity.FromMask(mask.FromIndices(length, validIdx))
	}

	return array.Materialize(dt, length, func(i int) scalar.Scalar {
		if validIdx != nil && !valid.IsValid(i) {
			return scalar.Null(dt)
		}

		return scalar.Primitive(values[i], dt.Nullability())
	})
}

// Slice returns the contiguous sub-range [start, end) of arr without
// copying its backing storage where the encoding allows it.
func Slice(arr array.Array, start, end int) array.Array { return compute.Slice(arr, start, end) }

// Take gathers the rows at indices into a new array. An out-of-bounds
// index panics.
func Take(arr array.Array, indices []int) array.Array { return compute.Take(arr, indices) }

// Filter keeps only the rows where m is true, compacting the result.
func Filter(arr array.Array, m mask.Mask) array.Array { return compute.Filter(arr, m) }

// Compare evaluates left <op> right elementwise into a Bool array, null
// wherever either operand is null.
func Compare(left, right array.Array, op Op) array.Array { return compute.Compare(left, right, op) }

// Cast converts arr's Primitive values to target's physical type.
// Out-of-range values wrap or saturate per Go's numeric conversion rules;
// no error is reported.
func Cast(arr array.Array, target dtype.PType) array.Array { return compute.Cast(arr, target) }

// ScalarAt reads the value at row i as a Scalar.
func ScalarAt(arr array.Array, i int) scalar.Scalar { return compute.ScalarAt(arr, i) }

// Canonicalize fully decodes arr into one of the eight canonical
// encodings, recursively decoding any compressed children.
func Canonicalize(arr array.Array) array.Array { return compute.Canonicalize(arr) }

// SearchSorted finds target's insertion point in a sorted arr.
func SearchSorted(arr array.Array, target scalar.PValue, side Side) compute.SearchResult {
	return compute.SearchSorted(arr, target, side)
}

// Compress runs the cascading compressor over arr with DefaultConfig
// adjusted by opts, returning whichever encoding cleared the minimum
// compression ratio, or arr unchanged if nothing did.
func Compress(arr array.Array, opts ...options.Option[*btrblocks.Config]) (array.Array, error) {
	c, err := btrblocks.NewCompressor(opts...)
	if err != nil {
		return nil, err
	}

	return c.Compress(arr), nil
}
