package array

import (
	"fmt"

	"github.com/arloliu/vortex/buffer"
	"github.com/arloliu/vortex/dtype"
	"github.com/arloliu/vortex/scalar"
	"github.com/arloliu/vortex/validity"
)

// Decimal is the canonical encoding for a Decimal DType: an unscaled
// integer buffer of the given PType plus (precision, scale) and Validity.
// Storage is limited to the 8- to 64-bit integer PTypes; 128- and 256-bit
// unscaled storage is not supported.
type Decimal struct {
	base
	unscaled  buffer.Buffer[byte]
	storagePT dtype.PType
}

// NewDecimal creates a Decimal array. storagePT must be an integer PType
// wide enough to hold the unscaled value (I8/I16/I32/I64).
func NewDecimal(storagePT dtype.PType, precision, scale int32, unscaled buffer.Buffer[byte], length int, valid validity.Validity) *Decimal {
	if !storagePT.IsInt() {
		panic("array: Decimal storage PType must be an integer type")
	}
	if unscaled.Len() != length*storagePT.ByteWidth() {
		panic(fmt.Sprintf("array: decimal buffer length %d does not match %d elements of width %d",
			unscaled.Len(), length, storagePT.ByteWidth()))
	}

	return &Decimal{
		base:      newBase(dtype.Decimal(precision, scale, valid.Nullability()), length, valid),
		unscaled:  unscaled,
		storagePT: storagePT,
	}
}

func (d *Decimal) Encoding() Encoding { return EncodingDecimal }

// StoragePType returns the integer PType backing the unscaled buffer.
func (d *Decimal) StoragePType() dtype.PType { return d.storagePT }

// UnscaledAt returns the raw unscaled integer at row i as a PValue,
// ignoring validity.
func (d *Decimal) UnscaledAt(i int) scalar.PValue {
	width := d.storagePT.ByteWidth()
	off := i * width

	return decodePValue(d.storagePT, d.unscaled.Slice(off, off+width))
}

func (d *Decimal) ScalarAt(i int) scalar.Scalar {
	if !d.IsValid(i) {
		return scalar.Null(d.dt)
	}
	precision, scale := d.dt.DecimalPrecisionScale()
	width := d.storagePT.ByteWidth()
	off := i * width
	raw := d.unscaled.Slice(off, off+width).Raw()
	be := make([]byte, len(raw))
	for j, b := range raw {
		be[len(raw)-1-j] = b
	}

	return scalar.Decimal(be, precision, scale, d.dt.Nullability())
}

func (d *Decimal) SliceArray(start, end int) Array {
	width := d.storagePT.ByteWidth()
	precision, scale := d.dt.DecimalPrecisionScale()

	return NewDecimal(d.storagePT, precision, scale,
		d.unscaled.Slice(start*width, end*width), end-start, d.valid.Slice(start, end))
}

func (d *Decimal) Canonicalize() Array { return d }
