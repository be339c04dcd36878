package compressed

import (
	"fmt"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/stats"
	"github.com/arloliu/vortex/validity"
)

// EncodingChunked identifies the Chunked compressed encoding.
const EncodingChunked array.Encoding = "vortex.chunked"

// Chunked is an ordered sequence of equi-dtype children concatenated
// logically end to end. ScalarAt is a binary search over a prefix sum of
// chunk lengths, grounded on vortex-array/src/array/chunked/mod.rs.
type Chunked struct {
	dt     dtype.DType
	chunks []array.Array
	prefix []int // len(chunks)+1, prefix[k] = sum of lengths of chunks[:k]
	st     stats.StatsSet
}

// NewChunked creates a Chunked array over chunks, all of which must share
// dt (ignoring nullability).
func NewChunked(dt dtype.DType, chunks []array.Array) *Chunked {
	prefix := make([]int, len(chunks)+1)
	for i, c := range chunks {
		if !c.DType().EqualIgnoreNullability(dt) {
			panic(fmt.Sprintf("compressed: Chunked child %d dtype %s does not match %s", i, c.DType(), dt))
		}
		prefix[i+1] = prefix[i] + c.Len()
	}

	return &Chunked{dt: dt, chunks: chunks, prefix: prefix}
}

func (c *Chunked) DType() dtype.DType        { return c.dt }
func (c *Chunked) Len() int                  { return c.prefix[len(c.prefix)-1] }
func (c *Chunked) Encoding() array.Encoding  { return EncodingChunked }
func (c *Chunked) Stats() *stats.StatsSet    { return &c.st }

// Chunks returns the child arrays in order.
func (c *Chunked) Chunks() []array.Array { return c.chunks }

// locate returns the chunk index holding logical row i and the row's
// offset within that chunk.
func (c *Chunked) locate(i int) (int, int) {
	// prefix is strictly non-decreasing; find the last prefix <= i.
	lo, hi := 0, len(c.chunks)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.prefix[mid+1] <= i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo, i - c.prefix[lo]
}

// Validity materializes the per-row validity of every chunk concatenated
// together, since Chunked itself stores no independent validity layer —
// nullability is entirely a property of its children.
func (c *Chunked) Validity() validity.Validity {
	length := c.Len()
	allValid := true
	valid := make([]int, 0, length)
	for i := 0; i < length; i++ {
		if c.IsValid(i) {
			valid = append(valid, i)
		} else {
			allValid = false
		}
	}
	if allValid {
		return validity.AllValid()
	}

	return validity.FromMask(mask.FromIndices(length, valid))
}

func (c *Chunked) IsValid(i int) bool {
	chunkIdx, local := c.locate(i)

	return c.chunks[chunkIdx].IsValid(local)
}

func (c *Chunked) ScalarAt(i int) scalar.Scalar {
	chunkIdx, local := c.locate(i)

	return c.chunks[chunkIdx].ScalarAt(local)
}

func (c *Chunked) SliceArray(start, end int) array.Array {
	checkRange(start, end, c.Len())
	if start == end {
		return NewChunked(c.dt, nil)
	}

	firstChunk, firstLocal := c.locate(start)
	lastChunk, lastLocal := c.locate(end - 1)

	if firstChunk == lastChunk {
		return NewChunked(c.dt, []array.Array{c.chunks[firstChunk].SliceArray(firstLocal, lastLocal+1)})
	}

	sliced := make([]array.Array, 0, lastChunk-firstChunk+1)
	sliced = append(sliced, c.chunks[firstChunk].SliceArray(firstLocal, c.chunks[firstChunk].Len()))
	for idx := firstChunk + 1; idx < lastChunk; idx++ {
		sliced = append(sliced, c.chunks[idx])
	}
	sliced = append(sliced, c.chunks[lastChunk].SliceArray(0, lastLocal+1))

	return NewChunked(c.dt, sliced)
}

// Canonicalize concatenates every chunk's canonical form into a single
// canonical array, preallocating exact capacity from the sum of child
// lengths, grounded on vortex-array/src/array/chunked/canonical.rs.
func (c *Chunked) Canonicalize() array.Array {
	total := c.Len()

	return array.Materialize(c.dt, total, func(i int) scalar.Scalar { return c.ScalarAt(i) })
}
