// Package litpush maps an already-parsed integer or float literal plus
// its type suffix (the "u32" in "42u32") to the correctly concretely-
// typed Op0 append on a DynSegment.
//
// Lexing and parsing the literal token itself — recognizing "42u32" as
// the digits "42" and the suffix "u32" — stays outside this package,
// matching the front-end collaborator the specification excludes; what
// is in scope here is the small dispatch table from a already-identified
// suffix to the concrete Go numeric type DynSegment.Op0 must be
// instantiated with, since Go generics require that type at the call
// site and a literal's suffix is only known as a runtime string until
// this package's Push resolves it.
package litpush

import (
	"fmt"

	"github.com/segmentrt/segment/pkg/dynseg"
)

// Suffix names one of the concrete scalar types a literal may carry.
type Suffix string

// Recognized suffixes, matching Rust's integer/float literal suffixes.
const (
	U8  Suffix = "u8"
	U16 Suffix = "u16"
	U32 Suffix = "u32"
	U64 Suffix = "u64"
	I8  Suffix = "i8"
	I16 Suffix = "i16"
	I32 Suffix = "i32"
	I64 Suffix = "i64"
	F32 Suffix = "f32"
	F64 Suffix = "f64"
)

// Push appends a nullary operation to seg that produces the literal
// value, concretely typed per suffix. value carries the literal's
// magnitude. Float suffixes (F32, F64) are rejected with an error; float
// literals go through PushFloat.
func Push(seg *dynseg.Segment, value int64, suffix Suffix) error {
	switch suffix {
	case U8:
		return dynseg.Op0(seg, func() uint8 { return uint8(value) })
	case U16:
		return dynseg.Op0(seg, func() uint16 { return uint16(value) })
	case U32:
		return dynseg.Op0(seg, func() uint32 { return uint32(value) })
	case U64:
		return dynseg.Op0(seg, func() uint64 { return uint64(value) })
	case I8:
		return dynseg.Op0(seg, func() int8 { return int8(value) })
	case I16:
		return dynseg.Op0(seg, func() int16 { return int16(value) })
	case I32:
		return dynseg.Op0(seg, func() int32 { return int32(value) })
	case I64:
		return dynseg.Op0(seg, func() int64 { return value })
	default:
		return fmt.Errorf("litpush: %q is not an integer suffix", suffix)
	}
}

// PushFloat appends a nullary operation producing a floating-point
// literal, concretely typed per suffix (F32 or F64).
func PushFloat(seg *dynseg.Segment, value float64, suffix Suffix) error {
	switch suffix {
	case F32:
		return dynseg.Op0(seg, func() float32 { return float32(value) })
	case F64:
		return dynseg.Op0(seg, func() float64 { return value })
	default:
		return fmt.Errorf("litpush: %q is not a float suffix", suffix)
	}
}
