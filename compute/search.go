package compute

import (
	"sort"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/scalar"
)

// Side selects which boundary search_sorted resolves to on a run of
// equal values.
type Side uint8

const (
	// Left returns the first position i with array[i] >= target.
	Left Side = iota
	// Right returns the first position i with array[i] > target.
	Right
)

// SearchResult is the outcome of SearchSorted: either the target's exact
// position (Found) or the insertion point that preserves sort order
// (NotFound).
type SearchResult struct {
	Index int
	Found bool
}

// SearchSorted locates target within arr, which must already be sorted
// ascending by the nullable-values-sort-greatest convention: null rows
// compare as larger than every non-null value. Casting target to arr's
// PType is implicit; if the cast would lose information (e.g. target
// exceeds every representable value), SearchSorted reports NotFound at
// arr.Len() rather than comparing against a wrapped value.
func SearchSorted(arr array.Array, target scalar.PValue, side Side) SearchResult {
	pt := arr.DType().PType()
	cast, ok := CastScalarOK(target, pt)
	if !ok {
		return SearchResult{Index: arr.Len(), Found: false}
	}

	n := arr.Len()
	idx := sort.Search(n, func(i int) bool {
		if !arr.IsValid(i) {
			return true // nulls sort greatest: every null is >= any cast target
		}
		cmp := arr.ScalarAt(i).AsPValue().Compare(cast)
		if side == Left {
			return cmp >= 0
		}

		return cmp > 0
	})

	var found bool
	if side == Left {
		found = idx < n && arr.IsValid(idx) && arr.ScalarAt(idx).AsPValue().Compare(cast) == 0
	} else {
		found = idx > 0 && arr.IsValid(idx-1) && arr.ScalarAt(idx-1).AsPValue().Compare(cast) == 0
	}

	return SearchResult{Index: idx, Found: found}
}

// SearchSortedMany resolves many targets against arr by calling
// SearchSorted once per target, returning the results in target order.
func SearchSortedMany(arr array.Array, targets []scalar.PValue, side Side) []SearchResult {
	out := make([]SearchResult, len(targets))
	for i, t := range targets {
		out[i] = SearchSorted(arr, t, side)
	}

	return out
}
