package btrblocks

// Scheme identifies one of the codecs the cascading compressor may
// choose between for a given column or sub-array.
type Scheme uint8

const (
	// SchemeUncompressed leaves the column as an uncompressed Primitive
	// array: the fallback when no candidate clears MinRatio.
	SchemeUncompressed Scheme = iota
	// SchemeConstant replaces a single-valued column with compressed.Constant.
	SchemeConstant
	// SchemeBitPack packs values into a reduced bit width via compressed.BitPacked.
	SchemeBitPack
	// SchemeFoR subtracts the column minimum before bit-packing via compressed.FoR.
	SchemeFoR
	// SchemeZigZag maps signed values onto the unsigned domain via compressed.ZigZag.
	SchemeZigZag
	// SchemeDict replaces repeated values with a code/value table via compressed.Dict.
	SchemeDict
	// SchemeRunEnd collapses runs of identical values via compressed.RunEnd.
	SchemeRunEnd
	// SchemeSparse stores only the exceptions to a dominant fill value via compressed.Sparse.
	SchemeSparse
)

// String renders the scheme's canonical name, used in Config's excludes
// list and in test failure output.
func (s Scheme) String() string {
	switch s {
	case SchemeUncompressed:
		return "uncompressed"
	case SchemeConstant:
		return "constant"
	case SchemeBitPack:
		return "bitpack"
	case SchemeFoR:
		return "for"
	case SchemeZigZag:
		return "zigzag"
	case SchemeDict:
		return "dict"
	case SchemeRunEnd:
		return "runend"
	case SchemeSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// selfNestingForbidden reports whether s may not be chosen again while
// already present on the compose stack: Dict, RunEnd, Sparse and ZigZag
// may not nest within themselves.
func (s Scheme) selfNestingForbidden() bool {
	switch s {
	case SchemeDict, SchemeRunEnd, SchemeSparse, SchemeZigZag:
		return true
	default:
		return false
	}
}
