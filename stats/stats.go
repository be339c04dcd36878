// Package stats implements the precision-tagged statistics set attached
// to every canonical array: a partial map from Stat to a Precision-tagged
// scalar value, with ordered and unordered merge for combining stats
// across two disjoint arrays.
package stats

import (
	"github.com/arloliu/vortex/scalar"
)

// Stat identifies one of the nine statistics tracked per array.
type Stat uint8

const (
	Min Stat = iota
	Max
	Sum
	NullCount
	NaNCount
	IsConstant
	IsSorted
	IsStrictSorted
	UncompressedSizeInBytes

	statCardinality
)

func (s Stat) String() string {
	switch s {
	case Min:
		return "min"
	case Max:
		return "max"
	case Sum:
		return "sum"
	case NullCount:
		return "null_count"
	case NaNCount:
		return "nan_count"
	case IsConstant:
		return "is_constant"
	case IsSorted:
		return "is_sorted"
	case IsStrictSorted:
		return "is_strict_sorted"
	case UncompressedSizeInBytes:
		return "uncompressed_size_in_bytes"
	default:
		return "unknown"
	}
}

// IsCommutative reports whether a stat is safe to merge order-independently.
// IsSorted and IsStrictSorted depend on the concatenation order of the two
// arrays' values, so they are dropped by MergeUnordered.
func (s Stat) IsCommutative() bool {
	return s != IsSorted && s != IsStrictSorted
}

// Precision tags a value as either an exact measurement or a valid
// over-approximation (Min/Inexact is a lower bound, Max/Inexact an upper
// bound, IsConstant/Inexact(false) means "may not be constant").
type Precision struct {
	value   scalar.Scalar
	isExact bool
}

// Exact wraps v as an exactly-known value.
func Exact(v scalar.Scalar) Precision { return Precision{value: v, isExact: true} }

// Inexact wraps v as a valid over-approximation.
func Inexact(v scalar.Scalar) Precision { return Precision{value: v, isExact: false} }

// Value returns the wrapped scalar, regardless of precision.
func (p Precision) Value() scalar.Scalar { return p.value }

// IsExact reports whether p is an exact measurement.
func (p Precision) IsExact() bool { return p.isExact }

// ToInexact downgrades p to Inexact, keeping the same value. Downgrading
// an already-Inexact value is a no-op.
func (p Precision) ToInexact() Precision { return Precision{value: p.value, isExact: false} }

type entry struct {
	stat  Stat
	value Precision
}

// StatsSet is a partial map from Stat to Precision, preserving insertion
// order so that stat propagation produces bytewise-identical output for
// identical input.
type StatsSet struct {
	entries []entry
}

// Get returns the value stored for stat, if any.
func (s *StatsSet) Get(stat Stat) (Precision, bool) {
	for _, e := range s.entries {
		if e.stat == stat {
			return e.value, true
		}
	}

	return Precision{}, false
}

// Set stores value for stat, overwriting any existing entry.
//
// Writers must not downgrade an Exact value to Inexact: the cached
// Precision is monotonic. Set enforces this by keeping the existing
// Exact value when the caller attempts to write an Inexact one over it.
func (s *StatsSet) Set(stat Stat, value Precision) {
	for i, e := range s.entries {
		if e.stat == stat {
			if e.value.IsExact() && !value.IsExact() {
				return
			}
			s.entries[i].value = value

			return
		}
	}
	s.entries = append(s.entries, entry{stat: stat, value: value})
}

// Clear removes stat from the set.
func (s *StatsSet) Clear(stat Stat) {
	out := s.entries[:0]
	for _, e := range s.entries {
		if e.stat != stat {
			out = append(out, e)
		}
	}
	s.entries = out
}

// Len returns the number of stats currently stored.
func (s *StatsSet) Len() int { return len(s.entries) }

// Empty reports whether the set is empty.
func (s *StatsSet) Empty() bool { return len(s.entries) == 0 }

// KeepInexactStats returns a new StatsSet containing only the named
// stats, each downgraded to Inexact — the propagation rule used by slice
// and other kernels that can no longer guarantee exactness for stats
// such as Min, Max, NullCount, and UncompressedSizeInBytes.
func (s *StatsSet) KeepInexactStats(keep []Stat) StatsSet {
	out := StatsSet{}
	for _, e := range s.entries {
		for _, k := range keep {
			if e.stat == k {
				out.Set(e.stat, e.value.ToInexact())

				break
			}
		}
	}

	return out
}

// Nulls returns the StatsSet implied by an array whose dtype is Null:
// every row is null by definition.
func Nulls(length int) StatsSet {
	s := StatsSet{}
	s.Set(NullCount, Exact(intScalar(int64(length))))
	if length > 0 {
		s.Set(IsConstant, Exact(boolScalar(true)))
		s.Set(IsSorted, Exact(boolScalar(true)))
		s.Set(IsStrictSorted, Exact(boolScalar(length < 2)))
	}

	return s
}

// Constant returns the StatsSet implied by a Constant-encoded array of
// the given fill value repeated length times.
func Constant(fill scalar.Scalar, length int) StatsSet {
	s := StatsSet{}
	if length > 0 {
		s.Set(IsConstant, Exact(boolScalar(true)))
		s.Set(IsSorted, Exact(boolScalar(true)))
		s.Set(IsStrictSorted, Exact(boolScalar(length <= 1)))
	}

	nullCount := int64(0)
	if fill.IsNull() {
		nullCount = int64(length)
	}
	s.Set(NullCount, Exact(intScalar(nullCount)))

	if !fill.IsNull() {
		s.Set(Min, Exact(fill))
		s.Set(Max, Exact(fill))
	}

	return s
}

func intScalar(v int64) scalar.Scalar {
	return scalar.Primitive(scalar.PValueI64(v), false)
}

func boolScalar(v bool) scalar.Scalar {
	return scalar.Bool(v, false)
}
