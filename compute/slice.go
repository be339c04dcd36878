package compute

import "github.com/arloliu/vortex/array"

// Slice returns the logical sub-range [start, end) of arr. Every
// encoding's SliceArray is already required to preserve dtype and run in
// O(log n) where the physical layout allows it (BitPacked/RunEnd/Chunked
// all implement this natively); this kernel is a thin wrapper that
// additionally re-derives the result's stats from the source rather than
// leaving whatever stats SliceArray happened to carry over, since the
// exact propagation rule (Min/Max/NullCount/UncompressedSizeInBytes
// become Inexact; IsConstant/IsSorted/IsStrictSorted survive Exact) is a
// compute-layer policy, not an encoding concern.
func Slice(arr array.Array, start, end int) array.Array {
	checkRange(start, end, arr.Len())
	out := arr.SliceArray(start, end)
	propagateSliceStats(arr.Stats(), out.Stats())

	return out
}
