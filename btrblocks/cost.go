package btrblocks

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/internal/bitpack"
)

// validityBytes returns the size in bytes of a bitmap covering length
// rows, the cost every estimate below adds when the source column is
// nullable and not already all-valid/all-invalid.
func validityBytes(length int) int {
	return (length + 7) / 8
}

// sizeUncompressed estimates the byte size of an uncompressed Primitive
// column of length rows at pt's native width, including a validity
// bitmap when the column has any nulls.
func sizeUncompressed(pt dtype.PType, length, nullCount int) int {
	size := length * pt.ByteWidth()
	if nullCount > 0 {
		size += validityBytes(length)
	}

	return size
}

// sizeBitPack implements the packed-size cost function: ceil(bit_width*len/8)
// plus one (byteWidth+4)-byte patch entry per exception.
func sizeBitPack(bitWidth, length, numPatches, byteWidth int) int {
	packed := (bitWidth*length + 7) / 8

	return packed + numPatches*(byteWidth+4)
}

// chooseBitWidthCost evaluates sizeBitPack for every candidate bit width
// in [0, maxWidth] against a cumulative-frequency table built from the
// exact bits-required histogram of values, returning the minimizing
// width and its exception count — the same cost function
// internal/bitpack.ChooseWidth already implements; cost.go exposes it
// under the btrblocks-specific signature the compressor calls so the
// estimate and the actual EncodeBitPacked call agree.
func chooseBitWidthCost(values []uint64, maxWidth, byteWidth int) (width int, numPatches int) {
	width = bitpack.ChooseWidth(values, maxWidth, byteWidth)
	for _, v := range values {
		if bitpack.BitsRequired(v) > width {
			numPatches++
		}
	}

	return width, numPatches
}

// sizeRunEnd estimates a RunEnd column's serialized size: numRuns
// 4-byte end markers plus numRuns values of byteWidth bytes each.
func sizeRunEnd(numRuns, byteWidth int) int {
	return numRuns * (4 + byteWidth)
}

// sizeDict estimates a Dict column's serialized size: the distinct-value
// table plus a bit-packed code per row sized to the smallest width that
// can index the table.
func sizeDict(distinct, length, byteWidth int) int {
	codeWidth := bitpack.BitsRequired(uint64(maxInt(distinct-1, 0)))
	codes := (codeWidth*length + 7) / 8

	return distinct*byteWidth + codes
}

// sizeSparse estimates a Sparse column's serialized size: one 4-byte
// index plus one byteWidth-byte value per exception.
func sizeSparse(numExceptions, byteWidth int) int {
	return numExceptions * (4 + byteWidth)
}

// sizeConstant is the near-zero cost of storing a single repeated scalar
// plus a length, independent of column length.
func sizeConstant(byteWidth int) int {
	return byteWidth + 8
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
