// Package validity implements the four-state nullability lattice shared
// by every canonical array: an array is either statically non-nullable,
// statically all-valid or all-invalid, or carries an explicit per-row
// validity selection.
//
// The per-row case is represented as a mask.Mask rather than a generic
// array, since a validity bitmap is exactly the tri-representation
// selection set mask already models; this keeps validity free of a
// circular dependency on the array package while reusing its lazy
// buffer/indices/slices conversions.
package validity

import (
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
)

// Kind identifies which of the four Validity states is active.
type Kind uint8

const (
	KindNonNullable Kind = iota
	KindAllValid
	KindAllInvalid
	KindArray
)

// Validity carries the nullability state of an array.
type Validity struct {
	kind Kind
	arr  mask.Mask // valid set when kind == KindArray: true bit means valid
}

// NonNullable returns the static "no row can ever be null" state.
func NonNullable() Validity { return Validity{kind: KindNonNullable} }

// AllValid returns the static "every row happens to be valid" state.
func AllValid() Validity { return Validity{kind: KindAllValid} }

// AllInvalid returns the static "every row happens to be null" state.
func AllInvalid() Validity { return Validity{kind: KindAllInvalid} }

// FromMask returns a per-row Validity where true bits in m mark valid rows.
func FromMask(m mask.Mask) Validity { return Validity{kind: KindArray, arr: m} }

// Kind returns which state v is in.
func (v Validity) Kind() Kind { return v.kind }

// Nullability reports the logical Nullability implied by v: only
// NonNullable itself maps to dtype.NonNullable, every other state
// (including AllValid, which could still observe a null after a mutation)
// maps to dtype.Nullable.
func (v Validity) Nullability() dtype.Nullability {
	if v.kind == KindNonNullable {
		return dtype.NonNullable
	}

	return dtype.Nullable
}

// NullCount returns the number of null rows across a domain of the given
// length.
func (v Validity) NullCount(length int) int {
	switch v.kind {
	case KindNonNullable, KindAllValid:
		return 0
	case KindAllInvalid:
		return length
	default:
		return length - v.arr.TrueCount()
	}
}

// IsValid reports whether row i is valid.
func (v Validity) IsValid(i int) bool {
	switch v.kind {
	case KindNonNullable, KindAllValid:
		return true
	case KindAllInvalid:
		return false
	default:
		return bitAt(v.arr, i)
	}
}

func bitAt(m mask.Mask, i int) bool {
	sub := m.Slice(i, 1)

	return sub.TrueCount() == 1
}

// IsNull reports whether row i is null.
func (v Validity) IsNull(i int) bool { return !v.IsValid(i) }

// AllValidBool reports whether every row is valid.
func (v Validity) AllValidBool(length int) bool {
	switch v.kind {
	case KindNonNullable, KindAllValid:
		return true
	case KindAllInvalid:
		return length == 0
	default:
		return v.arr.TrueCount() == length
	}
}

// AllInvalidBool reports whether every row is null.
func (v Validity) AllInvalidBool(length int) bool {
	switch v.kind {
	case KindNonNullable:
		return length == 0
	case KindAllValid:
		return length == 0
	case KindAllInvalid:
		return true
	default:
		return v.arr.TrueCount() == 0
	}
}

// Slice returns the validity of the sub-range [start, stop).
func (v Validity) Slice(start, stop int) Validity {
	if v.kind != KindArray {
		return v
	}

	return FromMask(v.arr.Slice(start, stop-start))
}

// Take returns the validity of the rows selected by indices, in order.
// An out-of-range take index is the caller's responsibility to avoid;
// Take does not bounds-check against the original length beyond what
// mask.FromIndices itself enforces via its own domain length.
func (v Validity) Take(indices []int) Validity {
	switch v.kind {
	case KindNonNullable, KindAllValid, KindAllInvalid:
		return v
	default:
		kept := make([]int, 0, len(indices))
		for i, idx := range indices {
			if v.IsValid(idx) {
				kept = append(kept, i)
			}
		}

		return FromMask(mask.FromIndices(len(indices), kept))
	}
}

// Filter keeps only the rows selected by m, matching the semantics of the
// compute filter kernel: the result has length m.TrueCount().
func (v Validity) Filter(m mask.Mask) Validity {
	if v.kind != KindArray {
		return v
	}

	it := m.Iter()
	kept := make([]int, 0, m.TrueCount())
	out := 0
	for {
		idx, ok := it.Next()
		if !ok {
			break
		}
		if v.IsValid(idx) {
			kept = append(kept, out)
		}
		out++
	}

	return FromMask(mask.FromIndices(m.TrueCount(), kept))
}

// And returns the logical AND of v and other over a domain of the given
// length: a row is valid in the result only if valid in both.
func (v Validity) And(other Validity, length int) Validity {
	if v.kind == KindNonNullable && other.kind == KindNonNullable {
		return NonNullable()
	}
	if v.AllValidBool(length) && other.AllValidBool(length) {
		return AllValid()
	}

	valid := make([]int, 0, length)
	for i := 0; i < length; i++ {
		if v.IsValid(i) && other.IsValid(i) {
			valid = append(valid, i)
		}
	}

	return FromMask(mask.FromIndices(length, valid))
}

// Mask sets to invalid any row selected by m (true bits in m mark rows to
// null out). The result is always nullable and has the same length as v.
func (v Validity) Mask(m mask.Mask) Validity {
	if m.TrueCount() == 0 {
		if v.kind == KindNonNullable {
			return AllValid()
		}

		return v
	}
	if m.TrueCount() == m.Len() {
		return AllInvalid()
	}

	valid := make([]int, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		stillValid := v.IsValid(i) && !bitAt(m, i)
		if stillValid {
			valid = append(valid, i)
		}
	}

	return FromMask(mask.FromIndices(m.Len(), valid))
}

// ToLogical converts v to its canonical mask.Mask representation over a
// domain of the given length.
func (v Validity) ToLogical(length int) mask.Mask {
	switch v.kind {
	case KindNonNullable, KindAllValid:
		return mask.NewTrue(length)
	case KindAllInvalid:
		return mask.NewFalse(length)
	default:
		return v.arr
	}
}
