// Package mask implements the tri-representation selection set used
// throughout the compute kernels: a Mask can be held as a packed bitset,
// a sorted list of true indices, or a sorted list of non-overlapping true
// ranges, converting lazily and caching the result.
package mask

import (
	"fmt"
	"sort"
	"sync"
)

// selectivityThreshold is the selectivity above which Iter prefers
// iterating slices over indices, matching Arrow Rust's choice (itself
// based on Kohn et al., "Efficient Execution of Selections", 2021).
const selectivityThreshold = 0.8

// Slice is a half-open contiguous range [Start, End) of true positions.
type Slice struct {
	Start, End int
}

type maskInner struct {
	len         int
	trueCount   int
	selectivity float64

	hasBits    bool
	bits       []uint64
	bitsOnce   sync.Once

	hasIndices bool
	indices    []int
	idxOnce    sync.Once

	hasSlices bool
	slices    []Slice
	sliOnce   sync.Once

	firstOnce sync.Once
	first     int
	hasFirst  bool
}

// Mask is a cheap-to-copy handle onto a shared, immutable selection set.
type Mask struct {
	inner *maskInner
}

func newBitset(length int) []uint64 {
	return make([]uint64, (length+63)/64)
}

func bitsetGet(bits []uint64, i int) bool {
	return bits[i/64]&(uint64(1)<<uint(i%64)) != 0
}

func bitsetSet(bits []uint64, i int) {
	bits[i/64] |= uint64(1) << uint(i%64)
}

func countSetBits(bits []uint64, length int) int {
	count := 0
	for i := 0; i < length; i++ {
		if bitsetGet(bits, i) {
			count++
		}
	}

	return count
}

// NewTrue creates a Mask of the given length where every position is true.
func NewTrue(length int) Mask {
	return Mask{inner: &maskInner{len: length, trueCount: length, selectivity: selectivityOf(length, length)}}
}

// NewFalse creates a Mask of the given length where every position is
// false.
func NewFalse(length int) Mask {
	return Mask{inner: &maskInner{len: length, trueCount: 0, selectivity: 0}}
}

func selectivityOf(trueCount, length int) float64 {
	if length == 0 {
		return 0
	}

	return float64(trueCount) / float64(length)
}

// FromBits creates a Mask from a packed bitset of the given length. bits
// must have at least (length+63)/64 elements.
func FromBits(bits []uint64, length int) Mask {
	trueCount := countSetBits(bits, length)

	return Mask{inner: &maskInner{
		len: length, trueCount: trueCount, selectivity: selectivityOf(trueCount, length),
		hasBits: true, bits: bits,
	}}
}

// FromIndices creates a Mask from a sorted, in-bounds slice of true
// indices. It panics if indices is not sorted or contains an index out of
// range.
func FromIndices(length int, indices []int) Mask {
	if !sort.IntsAreSorted(indices) {
		panic("mask: indices must be sorted")
	}
	if len(indices) > 0 && indices[len(indices)-1] >= length {
		panic(fmt.Sprintf("mask: indices must be in bounds (len=%d)", length))
	}

	return Mask{inner: &maskInner{
		len: length, trueCount: len(indices), selectivity: selectivityOf(len(indices), length),
		hasIndices: true, indices: indices,
	}}
}

// FromSlices creates a Mask from a sorted, non-overlapping list of true
// ranges. It panics if the ranges are malformed.
func FromSlices(length int, slices []Slice) Mask {
	checkSlices(length, slices)

	return fromSlicesUnchecked(length, slices)
}

func fromSlicesUnchecked(length int, slices []Slice) Mask {
	trueCount := 0
	for _, s := range slices {
		trueCount += s.End - s.Start
	}

	return Mask{inner: &maskInner{
		len: length, trueCount: trueCount, selectivity: selectivityOf(trueCount, length),
		hasSlices: true, slices: slices,
	}}
}

func checkSlices(length int, slices []Slice) {
	for _, s := range slices {
		if s.Start >= s.End || s.End > length {
			panic(fmt.Sprintf("mask: invalid slice %v for length %d", s, length))
		}
	}
	for i := 1; i < len(slices); i++ {
		prev, cur := slices[i-1], slices[i]
		if prev.Start >= cur.Start {
			panic(fmt.Sprintf("mask: slices must be sorted, got %v and %v", prev, cur))
		}
		if prev.End > cur.Start {
			panic(fmt.Sprintf("mask: slices must be non-overlapping, got %v and %v", prev, cur))
		}
	}
}

// FromIntersectionIndices builds a Mask over the intersection of two
// sorted index sequences, a merge-join over two already-sorted index
// lists.
func FromIntersectionIndices(length int, lhs, rhs []int) Mask {
	intersection := make([]int, 0, min(len(lhs), len(rhs)))
	i, j := 0, 0
	for i < len(lhs) && j < len(rhs) {
		switch {
		case lhs[i] < rhs[j]:
			i++
		case lhs[i] > rhs[j]:
			j++
		default:
			intersection = append(intersection, lhs[i])
			i++
			j++
		}
	}

	return FromIndices(length, intersection)
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// Len returns the length of the mask's domain.
func (m Mask) Len() int { return m.inner.len }

// TrueCount returns the number of true positions.
func (m Mask) TrueCount() int { return m.inner.trueCount }

// FalseCount returns the number of false positions.
func (m Mask) FalseCount() int { return m.inner.len - m.inner.trueCount }

// Selectivity returns the fraction of positions that are true.
func (m Mask) Selectivity() float64 { return m.inner.selectivity }

// Bits returns the packed bitset representation, computing and caching it
// from whichever representation is already available if necessary.
func (m Mask) Bits() []uint64 {
	in := m.inner
	in.bitsOnce.Do(func() {
		if in.hasBits {
			return
		}
		bits := newBitset(in.len)
		if in.trueCount == in.len {
			for i := range bits {
				bits[i] = ^uint64(0)
			}
		} else if in.hasIndices {
			for _, idx := range in.indices {
				bitsetSet(bits, idx)
			}
		} else if in.hasSlices {
			for _, s := range in.slices {
				for i := s.Start; i < s.End; i++ {
					bitsetSet(bits, i)
				}
			}
		}
		in.bits = bits
		in.hasBits = true
	})

	return in.bits
}

// Indices returns the sorted true-index representation, computing and
// caching it if necessary.
func (m Mask) Indices() []int {
	in := m.inner
	in.idxOnce.Do(func() {
		if in.hasIndices {
			return
		}
		if in.trueCount == 0 {
			in.indices = []int{}
			in.hasIndices = true

			return
		}
		if in.trueCount == in.len {
			indices := make([]int, in.len)
			for i := range indices {
				indices[i] = i
			}
			in.indices = indices
			in.hasIndices = true

			return
		}
		if in.hasBits {
			indices := make([]int, 0, in.trueCount)
			for i := 0; i < in.len; i++ {
				if bitsetGet(in.bits, i) {
					indices = append(indices, i)
				}
			}
			in.indices = indices
			in.hasIndices = true

			return
		}
		if in.hasSlices {
			indices := make([]int, 0, in.trueCount)
			for _, s := range in.slices {
				for i := s.Start; i < s.End; i++ {
					indices = append(indices, i)
				}
			}
			in.indices = indices
			in.hasIndices = true
		}
	})

	return in.indices
}

// Slices returns the sorted contiguous-range representation, computing and
// caching it if necessary.
func (m Mask) Slices() []Slice {
	in := m.inner
	in.sliOnce.Do(func() {
		if in.hasSlices {
			return
		}
		if in.trueCount == in.len {
			in.slices = []Slice{{Start: 0, End: in.len}}
			in.hasSlices = true

			return
		}
		if in.hasBits {
			in.slices = slicesFromBits(in.bits, in.len)
			in.hasSlices = true

			return
		}
		if in.hasIndices {
			in.slices = slicesFromIndices(in.indices)
			in.hasSlices = true
		}
	})

	return in.slices
}

func slicesFromBits(bits []uint64, length int) []Slice {
	var slices []Slice
	inRun := false
	start := 0
	for i := 0; i < length; i++ {
		set := bitsetGet(bits, i)
		switch {
		case set && !inRun:
			start = i
			inRun = true
		case !set && inRun:
			slices = append(slices, Slice{Start: start, End: i})
			inRun = false
		}
	}
	if inRun {
		slices = append(slices, Slice{Start: start, End: length})
	}

	return slices
}

func slicesFromIndices(indices []int) []Slice {
	if len(indices) == 0 {
		return nil
	}
	slices := make([]Slice, 0, len(indices))
	start, prev := indices[0], indices[0]
	for _, cur := range indices[1:] {
		if cur != prev+1 {
			slices = append(slices, Slice{Start: start, End: prev + 1})
			start = cur
		}
		prev = cur
	}
	slices = append(slices, Slice{Start: start, End: prev + 1})

	return slices
}

// First returns the first true position, if any.
func (m Mask) First() (int, bool) {
	in := m.inner
	in.firstOnce.Do(func() {
		switch {
		case in.trueCount == 0:
			in.hasFirst = false
		case in.trueCount == in.len:
			in.first, in.hasFirst = 0, true
		case in.hasBits:
			for i := 0; i < in.len; i++ {
				if bitsetGet(in.bits, i) {
					in.first, in.hasFirst = i, true

					return
				}
			}
		case in.hasIndices:
			if len(in.indices) > 0 {
				in.first, in.hasFirst = in.indices[0], true
			}
		case in.hasSlices:
			if len(in.slices) > 0 {
				in.first, in.hasFirst = in.slices[0].Start, true
			}
		}
	})

	return in.first, in.hasFirst
}

// Slice returns the sub-mask covering [offset, offset+length).
func (m Mask) Slice(offset, length int) Mask {
	in := m.inner
	if in.trueCount == 0 {
		return NewFalse(length)
	}
	if in.trueCount == in.len {
		return NewTrue(length)
	}

	end := offset + length

	if in.hasBits {
		bits := newBitset(length)
		for i := 0; i < length; i++ {
			if bitsetGet(in.bits, offset+i) {
				bitsetSet(bits, i)
			}
		}

		return FromBits(bits, length)
	}

	if in.hasIndices {
		sliced := make([]int, 0)
		for _, idx := range in.indices {
			if idx < offset {
				continue
			}
			if idx >= end {
				break
			}
			sliced = append(sliced, idx-offset)
		}

		return FromIndices(length, sliced)
	}

	if in.hasSlices {
		sliced := make([]Slice, 0)
		for _, s := range in.slices {
			if s.End <= offset {
				continue
			}
			if s.Start >= end {
				break
			}
			start := s.Start
			if start < offset {
				start = offset
			}
			stop := s.End
			if stop > end {
				stop = end
			}
			sliced = append(sliced, Slice{Start: start - offset, End: stop - offset})
		}

		return fromSlicesUnchecked(length, sliced)
	}

	panic("mask: no representation found")
}

// Iterator yields true positions, choosing the cheaper of index or slice
// iteration based on Iter's selectivity heuristic.
type Iterator struct {
	indices []int
	slices  []Slice
	i       int
	pos     int
	inSlice bool
}

// Iter returns the best iterator for m given its selectivity: above the
// threshold, slices are cheaper to walk; below it, indices are.
func (m Mask) Iter() *Iterator {
	if m.Selectivity() > selectivityThreshold {
		return &Iterator{slices: m.Slices()}
	}

	return &Iterator{indices: m.Indices()}
}

// Next returns the next true position and true, or (0, false) when
// exhausted.
func (it *Iterator) Next() (int, bool) {
	if it.slices != nil {
		for it.i < len(it.slices) {
			s := it.slices[it.i]
			if !it.inSlice {
				it.pos = s.Start
				it.inSlice = true
			}
			if it.pos < s.End {
				v := it.pos
				it.pos++

				return v, true
			}
			it.i++
			it.inSlice = false
		}

		return 0, false
	}

	if it.i < len(it.indices) {
		v := it.indices[it.i]
		it.i++

		return v, true
	}

	return 0, false
}
