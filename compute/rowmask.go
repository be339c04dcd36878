package compute

import (
	"fmt"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/mask"
)

// RowMask captures a set of selected rows within a [begin, end) range of a
// larger logical row space, used by a scan layer to carry row selections
// across files/layouts without committing to absolute row numbers until
// an array is actually sliced or filtered. Grounded on row_mask.rs.
type RowMask struct {
	m     mask.Mask
	begin int
}

// NewRowMask wraps m as a RowMask starting at begin; end is begin+m.Len().
func NewRowMask(m mask.Mask, begin int) RowMask {
	return RowMask{m: m, begin: begin}
}

// NewValidBetween returns a RowMask selecting every row in [begin, end).
func NewValidBetween(begin, end int) RowMask {
	return RowMask{m: mask.NewTrue(end - begin), begin: begin}
}

// NewInvalidBetween returns a RowMask selecting no row in [begin, end).
func NewInvalidBetween(begin, end int) RowMask {
	return RowMask{m: mask.NewFalse(end - begin), begin: begin}
}

// FromBoolArray builds a RowMask from a Bool array over [begin, begin+len):
// true-valued rows are selected; null rows are treated as unselected.
func FromBoolArray(arr array.Array, begin int) RowMask {
	length := arr.Len()
	valid := make([]int, 0, length)
	for i := 0; i < length; i++ {
		if arr.IsValid(i) && arr.ScalarAt(i).AsBool() {
			valid = append(valid, i)
		}
	}

	return RowMask{m: mask.FromIndices(length, valid), begin: begin}
}

// FromIndexArray builds a RowMask from an integer array whose values are
// interpreted as the selected row offsets within [begin, end).
func FromIndexArray(arr array.Array, begin, end int) RowMask {
	length := end - begin
	indices := make([]int, arr.Len())
	for i := range indices {
		indices[i] = int(arr.ScalarAt(i).AsPValue().AsU64())
	}

	return RowMask{m: mask.FromIndices(length, indices), begin: begin}
}

// Begin returns the absolute row offset of the mask's first position.
func (r RowMask) Begin() int { return r.begin }

// End returns Begin() + Len().
func (r RowMask) End() int { return r.begin + r.m.Len() }

// Len returns the number of rows spanned by the mask's range.
func (r RowMask) Len() int { return r.m.Len() }

// TrueCount returns the number of selected rows.
func (r RowMask) TrueCount() int { return r.m.TrueCount() }

// IsAllFalse reports whether no row is selected.
func (r RowMask) IsAllFalse() bool { return r.m.TrueCount() == 0 }

// Mask returns the underlying mask, whose true positions are relative to
// Begin(), not to absolute row 0.
func (r RowMask) Mask() mask.Mask { return r.m }

// IsDisjoint reports whether r shares no row with [begin, end). This may
// return false negatives (report overlap when none exists after
// accounting for which rows within the range are actually true) but
// never a false positive, since it only compares ranges, not bits.
func (r RowMask) IsDisjoint(begin, end int) bool {
	return r.End() <= begin || end <= r.Begin()
}

// Slice restricts r to [begin, end), intersected with r's own range.
func (r RowMask) Slice(begin, end int) RowMask {
	rangeBegin := maxInt(r.begin, begin)
	rangeEnd := minInt(r.End(), end)
	if rangeBegin == r.begin && rangeEnd == r.End() {
		return r
	}

	return RowMask{m: r.m.Slice(rangeBegin-r.begin, rangeEnd-rangeBegin), begin: rangeBegin}
}

// AndRowMask intersects r with other, aligning their absolute ranges and
// returning a RowMask over the union of both ranges whose true positions
// are the intersection (a row true in only one input is false in the
// result, since it falls outside that input's actual selection).
func (r RowMask) AndRowMask(other RowMask) RowMask {
	if other.TrueCount() == other.Len() && r.begin == other.begin && r.End() == other.End() {
		return r
	}
	if r.begin == other.begin && r.End() == other.End() {
		return RowMask{m: mask.FromIntersectionIndices(r.m.Len(), r.m.Indices(), other.m.Indices()), begin: r.begin}
	}
	if r.End() <= other.begin || r.begin >= other.End() {
		return NewInvalidBetween(minInt(r.begin, other.begin), maxInt(r.End(), other.End()))
	}

	outBegin := minInt(r.begin, other.begin)
	outEnd := maxInt(r.End(), other.End())
	outLen := outEnd - outBegin

	shift := func(indices []int, from int) []int {
		out := make([]int, len(indices))
		for i, idx := range indices {
			out[i] = idx + from - outBegin
		}

		return out
	}

	lhs := shift(r.m.Indices(), r.begin)
	rhs := shift(other.m.Indices(), other.begin)

	return RowMask{m: mask.FromIntersectionIndices(outLen, lhs, rhs), begin: outBegin}
}

// FilterArray applies r to arr, which must index the same logical range
// as r (arr's row 0 corresponds to r.Begin()). Returns nil if every row
// is unselected.
func FilterArray(r RowMask, arr array.Array) array.Array {
	if r.TrueCount() == 0 {
		return nil
	}
	if r.TrueCount() == r.Len() {
		return arr
	}

	return Filter(arr, r.m)
}

// Shift returns r with its range moved down by offset. It panics if
// offset exceeds r.Begin().
func (r RowMask) Shift(offset int) RowMask {
	if r.begin < offset {
		panic(fmt.Sprintf("compute: cannot shift RowMask beginning at %d by %d", r.begin, offset))
	}

	return RowMask{m: r.m, begin: r.begin - offset}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
