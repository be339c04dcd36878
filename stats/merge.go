package stats

import "github.com/arloliu/vortex/scalar"

// MergeOrdered merges other into s under the assumption that other
// represents a disjoint array appended after the array s represents
// (e.g. combining two Chunked children in order). Sortedness survives
// the merge when the boundary values respect order.
func (s StatsSet) MergeOrdered(other StatsSet) StatsSet {
	// Sortedness depends on self's original Max and other's original Min,
	// so it must be computed before mergeMin/mergeMax overwrite them.
	s.mergeOrderedSortedness(IsSorted, other, false)
	s.mergeOrderedSortedness(IsStrictSorted, other, true)

	s.mergeMin(other)
	s.mergeMax(other)
	s.mergeSum(other)
	s.mergeNullCount(other)
	s.mergeNaNCount(other)
	s.mergeUncompressedSize(other)
	s.mergeIsConstant(other)

	return s
}

// MergeUnordered merges other into s with no assumption about relative
// position: non-commutative stats (IsSorted, IsStrictSorted) are dropped
// entirely from the result, matching the original's "unreachable: not
// commutative" branch.
func (s StatsSet) MergeUnordered(other StatsSet) StatsSet {
	s.Clear(IsSorted)
	s.Clear(IsStrictSorted)

	s.mergeMin(other)
	s.mergeMax(other)
	s.mergeSum(other)
	s.mergeNullCount(other)
	s.mergeNaNCount(other)
	s.mergeUncompressedSize(other)
	s.mergeIsConstant(other)

	return s
}

func (s *StatsSet) mergeMin(other StatsSet) {
	mergeBound(s, other, Min, func(a, b scalar.Scalar) bool { return a.AsPValue().Compare(b.AsPValue()) <= 0 })
}

func (s *StatsSet) mergeMax(other StatsSet) {
	mergeBound(s, other, Max, func(a, b scalar.Scalar) bool { return a.AsPValue().Compare(b.AsPValue()) >= 0 })
}

// mergeBound combines two Precision<Scalar> values for a min/max-like
// stat: prefer keeps the winning side's value; either input Precision
// being Inexact taints the result to Inexact.
func mergeBound(s *StatsSet, other StatsSet, stat Stat, prefer func(a, b scalar.Scalar) bool) {
	ov, ok := other.Get(stat)
	if !ok {
		s.Clear(stat)

		return
	}
	sv, ok := s.Get(stat)
	if !ok {
		s.Set(stat, ov)

		return
	}

	winner := sv.Value()
	if !prefer(sv.Value(), ov.Value()) {
		winner = ov.Value()
	}
	exact := sv.IsExact() && ov.IsExact()

	if exact {
		s.Set(stat, Exact(winner))
	} else {
		s.forceSet(stat, Inexact(winner))
	}
}

// forceSet bypasses the Exact-never-downgrades guard in Set: used
// internally by merge, where "tainting to Inexact because the other
// operand was Inexact" is the documented merge semantic, not a writer
// downgrading its own measurement.
func (s *StatsSet) forceSet(stat Stat, value Precision) {
	for i, e := range s.entries {
		if e.stat == stat {
			s.entries[i].value = value

			return
		}
	}
	s.entries = append(s.entries, entry{stat: stat, value: value})
}

func (s *StatsSet) mergeSum(other StatsSet) {
	mergeAdditive(s, other, Sum)
}

func (s *StatsSet) mergeNullCount(other StatsSet) {
	mergeAdditive(s, other, NullCount)
}

func (s *StatsSet) mergeNaNCount(other StatsSet) {
	mergeAdditive(s, other, NaNCount)
}

func (s *StatsSet) mergeUncompressedSize(other StatsSet) {
	mergeAdditive(s, other, UncompressedSizeInBytes)
}

func mergeAdditive(s *StatsSet, other StatsSet, stat Stat) {
	ov, ok := other.Get(stat)
	if !ok {
		s.Clear(stat)

		return
	}
	sv, ok := s.Get(stat)
	if !ok {
		s.Clear(stat)

		return
	}

	sum := sv.Value().AsPValue().AsI64() + ov.Value().AsPValue().AsI64()
	exact := sv.IsExact() && ov.IsExact()
	result := intScalar(sum)
	if exact {
		s.Set(stat, Exact(result))
	} else {
		s.forceSet(stat, Inexact(result))
	}
}

func (s *StatsSet) mergeIsConstant(other StatsSet) {
	ov, ok := other.Get(IsConstant)
	if !ok {
		s.Clear(IsConstant)

		return
	}
	sv, ok := s.Get(IsConstant)
	if !ok {
		s.Clear(IsConstant)

		return
	}

	// Both sides constant is only jointly constant if their values also
	// agree, which callers determine before calling merge by comparing
	// Min/Max; here we can only combine the boolean flags themselves.
	result := sv.Value().AsBool() && ov.Value().AsBool()
	exact := sv.IsExact() && ov.IsExact()
	if exact {
		s.Set(IsConstant, Exact(boolScalar(result)))
	} else {
		s.forceSet(IsConstant, Inexact(boolScalar(result)))
	}
}

// mergeOrderedSortedness merges IsSorted/IsStrictSorted under append
// semantics: the merged array is sorted only if both halves were sorted
// AND the boundary between them also respects order (self's Max <= (or <
// for strict) other's Min).
func (s *StatsSet) mergeOrderedSortedness(stat Stat, other StatsSet, strict bool) {
	ov, ok := other.Get(stat)
	if !ok {
		s.Clear(stat)

		return
	}
	sv, ok := s.Get(stat)
	if !ok {
		s.Clear(stat)

		return
	}
	if !sv.Value().AsBool() || !ov.Value().AsBool() {
		s.Set(stat, Exact(boolScalar(false)))

		return
	}

	boundaryOK := true
	selfMax, hasMax := s.Get(Max)
	otherMin, hasMin := other.Get(Min)
	if hasMax && hasMin {
		cmp := selfMax.Value().AsPValue().Compare(otherMin.Value().AsPValue())
		if strict {
			boundaryOK = cmp < 0
		} else {
			boundaryOK = cmp <= 0
		}
	}

	exact := sv.IsExact() && ov.IsExact() && (!hasMax || selfMax.IsExact()) && (!hasMin || otherMin.IsExact())
	result := boolScalar(boundaryOK)
	if exact {
		s.Set(stat, Exact(result))
	} else {
		s.forceSet(stat, Inexact(result))
	}
}
