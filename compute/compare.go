package compute

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/arloliu/vortex/array"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/mask"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Op identifies one of the six elementwise comparison operators.
type Op uint8

const (
	Lt Op = iota
	Lte
	Eq
	NotEq
	Gte
	Gt
)

// Compare evaluates left <op> right elementwise, producing a Bool array
// of the same length. A result row is null iff either operand row is
// null, matching scalar_at's own null-propagation contract. Compare sets
// no statistics on its result; in particular an all-null result carries
// no IsConstant.
func Compare(left, right array.Array, op Op) array.Array {
	if left.Len() != right.Len() {
		panic("compute: Compare operands must have equal length")
	}

	length := left.Len()
	valid := make([]int, 0, length)
	bits := make([]bool, length)
	for i := 0; i < length; i++ {
		if !left.IsValid(i) || !right.IsValid(i) {
			continue
		}
		valid = append(valid, i)
		cmp := compareScalars(left.ScalarAt(i), right.ScalarAt(i))
		bits[i] = applyOp(op, cmp)
	}

	values := mask.FromIndices(length, trueIndices(bits, valid))
	var v validity.Validity
	if len(valid) == length {
		v = validity.AllValid()
	} else {
		v = validity.FromMask(mask.FromIndices(length, valid))
	}

	return array.NewBool(values, v)
}

func trueIndices(bits []bool, valid []int) []int {
	out := make([]int, 0, len(valid))
	for _, i := range valid {
		if bits[i] {
			out = append(out, i)
		}
	}

	return out
}

func applyOp(op Op, cmp int) bool {
	switch op {
	case Lt:
		return cmp < 0
	case Lte:
		return cmp <= 0
	case Eq:
		return cmp == 0
	case NotEq:
		return cmp != 0
	case Gte:
		return cmp >= 0
	case Gt:
		return cmp > 0
	default:
		panic(fmt.Sprintf("compute: unknown Op %d", op))
	}
}

// compareScalars orders two non-null scalars of the same comparison
// domain: numerically for Primitive/Decimal-as-bytes, lexicographically
// for String/Buffer. List and Struct have no defined order.
func compareScalars(a, b scalar.Scalar) int {
	switch a.DType().Kind() {
	case dtype.KindPrimitive:
		return a.AsPValue().Compare(b.AsPValue())
	case dtype.KindBool:
		return boolCompare(a.AsBool(), b.AsBool())
	case dtype.KindUtf8:
		return stringsCompare(a.AsString(), b.AsString())
	case dtype.KindBinary:
		return bytes.Compare(a.AsBytes(), b.AsBytes())
	case dtype.KindDecimal:
		return twosComplementBigEndian(a.AsDecimalUnscaled()).Cmp(twosComplementBigEndian(b.AsDecimalUnscaled()))
	default:
		panic(fmt.Sprintf("compute: comparison not defined for kind %v", a.DType().Kind()))
	}
}

// twosComplementBigEndian decodes a two's-complement big-endian byte
// slice (as stored by scalar.Decimal) into a signed big.Int, since
// bytes.Compare alone orders negative and positive unscaled values
// backwards (a negative value's sign byte has its high bit set).
func twosComplementBigEndian(raw []byte) *big.Int {
	v := new(big.Int).SetBytes(raw)
	if len(raw) > 0 && raw[0]&0x80 != 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(len(raw)*8))
		v.Sub(v, full)
	}

	return v
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

func stringsCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
