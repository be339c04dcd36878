package btrblocks

import (
	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
)

// statsBundle is the sampled stat collection the compressor computes
// once per candidate column: min, max, min-is-negative, min-is-zero,
// average run length, distinct value count, null count, and the
// dominant (top) value's frequency.
type statsBundle struct {
	sampled   int // number of rows actually scanned (<= length)
	length    int
	nullCount int

	distinctNonNull int
	isConstant      bool
	constantValue   scalar.Scalar

	averageRunLength float64

	topValue scalar.Scalar
	topFreq  float64 // fraction of non-null sampled rows equal to topValue

	isIntegerPT   bool
	pt            dtype.PType
	min, max      scalar.PValue
	minIsNegative bool
	minIsZero     bool
}

// integerPType reports whether dt is a Primitive DType over an integer
// PType, and returns that PType.
func integerPType(dt dtype.DType) (dtype.PType, bool) {
	if dt.Kind() != dtype.KindPrimitive {
		return 0, false
	}
	pt := dt.PType()

	return pt, pt.IsInt()
}

// sampleIndices returns up to max row indices covering [0, length),
// scanning every row when length <= max and otherwise striding evenly —
// the "sampling" §4.6 point 2 calls for when estimating container
// schemes on large columns.
func sampleIndices(length, max int) []int {
	if length <= max {
		idx := make([]int, length)
		for i := range idx {
			idx[i] = i
		}

		return idx
	}

	idx := make([]int, max)
	step := float64(length) / float64(max)
	for i := range idx {
		idx[i] = int(float64(i) * step)
	}

	return idx
}

// computeStatsBundle scans (or samples) arr and returns its statsBundle.
func computeStatsBundle(arr array.Array, sampleSize int) statsBundle {
	length := arr.Len()
	idx := sampleIndices(length, sampleSize)
	b := statsBundle{length: length, sampled: len(idx)}

	pt, isInt := integerPType(arr.DType())
	b.isIntegerPT = isInt
	b.pt = pt

	distinct := map[string]int{}
	var prev scalar.Scalar
	havePrev := false
	runCount := 0

	var firstNonNull scalar.Scalar
	haveFirstNonNull := false
	allEqualNonNull := true
	nonNullCount := 0
	haveMinMax := false

	for _, i := range idx {
		v := arr.ScalarAt(i)
		if v.IsNull() {
			b.nullCount++
		} else {
			nonNullCount++
			if !haveFirstNonNull {
				firstNonNull = v
				haveFirstNonNull = true
			} else if allEqualNonNull && !v.Equal(firstNonNull) {
				allEqualNonNull = false
			}
			distinct[v.String()]++

			if isInt {
				pv := v.AsPValue()
				if !haveMinMax {
					b.min, b.max = pv, pv
					haveMinMax = true
				} else {
					if pv.Compare(b.min) < 0 {
						b.min = pv
					}
					if pv.Compare(b.max) > 0 {
						b.max = pv
					}
				}
			}
		}

		if havePrev && !runEqual(prev, v) {
			runCount++
		}
		prev, havePrev = v, true
	}
	if havePrev {
		runCount++
	}
	if runCount > 0 {
		b.averageRunLength = float64(len(idx)) / float64(runCount)
	}

	b.isConstant = b.nullCount == 0 && nonNullCount > 0 && allEqualNonNull
	if b.isConstant {
		b.constantValue = firstNonNull
	} else if nonNullCount == 0 && b.nullCount == len(idx) && len(idx) > 0 {
		b.isConstant = true
		b.constantValue = scalar.Null(arr.DType())
	}

	b.distinctNonNull = len(distinct)

	topCount := 0
	var topKey string
	for k, c := range distinct {
		if c > topCount {
			topCount, topKey = c, k
		}
	}
	if nonNullCount > 0 {
		b.topFreq = float64(topCount) / float64(nonNullCount)
		b.topValue = firstNonNull
		for _, i := range idx {
			if v := arr.ScalarAt(i); !v.IsNull() && v.String() == topKey {
				b.topValue = v

				break
			}
		}
	}

	if isInt {
		b.minIsNegative = pt.IsSignedInt() && b.min.AsI64() < 0
		b.minIsZero = !b.minIsNegative && b.min.AsU64() == 0
	}

	return b
}

// runEqual reports whether two adjacent scalars (possibly null) belong
// to the same run: both null, or both non-null and equal.
func runEqual(a, b scalar.Scalar) bool {
	if a.IsNull() != b.IsNull() {
		return false
	}
	if a.IsNull() {
		return true
	}

	return a.Equal(b)
}
