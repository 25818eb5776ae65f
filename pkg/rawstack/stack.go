// Package rawstack implements RawStack: a LIFO byte buffer that pushes and
// pops values of arbitrary static type with natural alignment, encoding
// inserted padding as a self-synchronizing sentinel so that an arity- and
// type-erased pop (driven by a recorded bool, not by inspecting memory) can
// recover the exact byte length the buffer had before the push.
//
// Go's garbage collector will not scan a []byte for interior pointers, so a
// value whose representation contains a pointer (string, slice, map,
// interface, or a struct/array built from any of those) cannot be written
// into the buffer as raw bytes without risking collection of its referent
// out from under it. Such values are instead boxed into a side arena
// (Stack.objects) and the buffer holds only an 8-byte, 8-byte-aligned
// handle — see Footprint. Scalar, pointer-free types (the common case:
// ints, floats, bools, fixed arrays of them) are written natively at their
// real size and alignment, exactly as the spec describes.
package rawstack

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"github.com/segmentrt/segment/pkg/align"
	"github.com/segmentrt/segment/pkg/rawbuf"
)

const (
	sentinelByte  byte = 0x01
	handleSize         = unsafe.Sizeof(uint64(0))
	handleAlign        = unsafe.Alignof(uint64(0))
)

// Stack is a RawStack: a byte buffer holding values with natural alignment,
// plus padding sentinel bytes, plus a side arena for pointer-containing
// payloads.
type Stack struct {
	buf     *rawbuf.Buffer
	objects []any
}

// New creates an empty RawStack whose backing buffer's base is aligned to
// baseAlignment. baseAlignment must be at least the alignment of every
// type that will be pushed (RawSegment.Call computes this as it builds the
// op list; see pkg/rawseg).
func New(baseAlignment uintptr) *Stack {
	if baseAlignment == 0 {
		baseAlignment = 1
	}
	return &Stack{buf: rawbuf.WithBaseAlignment(baseAlignment)}
}

// Len returns the current logical byte length of the stack.
func (s *Stack) Len() int { return s.buf.Len() }

// Footprint reports the (size, alignment) RawStack uses to lay out a value
// of type T: its natural (unsafe.Sizeof, unsafe.Alignof) if T is pointer-
// free, or (8, 8) — the size and alignment of the side-arena handle — if
// T contains a pointer. DynSegment calls this to keep its shadow
// stack_byte_index in lock-step with what RawStack will actually do.
func Footprint[T any]() (size, alignment uintptr) {
	var zero T
	if containsPointers(reflect.TypeOf(&zero).Elem()) {
		return handleSize, handleAlign
	}
	return unsafe.Sizeof(zero), unsafe.Alignof(zero)
}

// FootprintOf is the reflect.Type-driven twin of Footprint, for callers
// that only know a value's type dynamically — DynSegment's join2 (§4.6),
// which bridges a fragment's statically-typed result back onto a
// dynamically-typed parent shadow stack without ever naming that result
// type in Go source.
func FootprintOf(t reflect.Type) (size, alignment uintptr) {
	if containsPointers(t) {
		return handleSize, handleAlign
	}
	return t.Size(), uintptr(t.Align())
}

func containsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.Slice, reflect.String, reflect.UnsafePointer:
		return true
	case reflect.Array:
		return t.Len() > 0 && containsPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Push pushes v onto the stack with T's natural alignment, writing the
// 0x01-terminated zero-run padding sentinel (§3.2) if the current length
// was not already aligned. It reports whether padding was inserted; the
// caller (DynSegment, or a hand-written raw0 closure) must pass that same
// bool back into Pop/Drop.
func Push[T any](s *Stack, v T) bool {
	size, alignment := Footprint[T]()
	before := uintptr(s.buf.Len())
	aligned := align.Up(before, alignment)
	padded := aligned != before

	if padded {
		padLen := int(aligned - before)
		s.buf.Reserve(padLen)
		s.buf.SetLen(s.buf.Len() + padLen)
		b := s.buf.Bytes()
		b[int(before)] = sentinelByte
		for i := int(before) + 1; i < int(before)+padLen; i++ {
			b[i] = 0x00
		}
	}

	s.buf.Reserve(int(size))
	s.buf.SetLen(int(aligned) + int(size))
	writeAt(s, v, int(aligned))
	return padded
}

// Pop removes and returns the value of type T at the top of the stack,
// given whether its push recorded padding. The behavior is unspecified
// (and will corrupt the stack) if T or padded does not match the actual
// top entry — this mirrors the unsafe contract of the original design;
// callers that can't trust padded/T statically (DynSegment, RawSegment)
// are responsible for tracking the correct values.
func Pop[T any](s *Stack, padded bool) T {
	size, _ := Footprint[T]()
	valueOffset := s.buf.Len() - int(size)
	v := readAt[T](s, valueOffset)
	s.buf.Truncate(valueOffset)
	if padded {
		consumePaddingSentinel(s.buf)
	}
	return v
}

// Drop removes and discards the value of type T at the top of the stack,
// releasing its side-arena slot (if any) so the garbage collector can
// reclaim it without waiting for the whole Stack to die. Used by
// DynSegment's drop-on-error unwind (§4.6) and by pure-destructor ops.
func Drop[T any](s *Stack, padded bool) {
	size, _ := Footprint[T]()
	valueOffset := s.buf.Len() - int(size)

	var zero T
	if containsPointers(reflect.TypeOf(&zero).Elem()) {
		idx := binary.LittleEndian.Uint64(s.buf.Bytes()[valueOffset:])
		s.objects[idx] = nil
	}

	s.buf.Truncate(valueOffset)
	if padded {
		consumePaddingSentinel(s.buf)
	}
}

// DropDynamic is the reflect.Type-driven twin of Drop, used by the same
// callers as FootprintOf: it knows only t's runtime shape, not a static
// Go type parameter, so it cannot read or assert the value — it only
// needs to discard the right number of bytes (and release the side-arena
// slot, if t is pointer-containing) to keep the stack's bookkeeping in
// sync.
func DropDynamic(s *Stack, t reflect.Type, padded bool) {
	size, _ := FootprintOf(t)
	valueOffset := s.buf.Len() - int(size)

	if containsPointers(t) {
		idx := binary.LittleEndian.Uint64(s.buf.Bytes()[valueOffset:])
		s.objects[idx] = nil
	}

	s.buf.Truncate(valueOffset)
	if padded {
		consumePaddingSentinel(s.buf)
	}
}

// consumePaddingSentinel scans backward from the current top of buf,
// skipping 0x00 padding bytes, and truncates past the one 0x01 sentinel
// byte that terminates the run (§3.2, §4.3). After it returns, buf's
// length equals the length the stack had immediately before the padded
// push (invariant I2).
func consumePaddingSentinel(buf *rawbuf.Buffer) {
	i := buf.Len() - 1
	for i >= 0 && buf.At(i) == 0x00 {
		i--
	}
	// buf.At(i) == sentinelByte: the byte at i is the 0x01 sentinel itself.
	buf.Truncate(i)
}

func writeAt[T any](s *Stack, v T, offset int) {
	if unsafe.Sizeof(v) == 0 {
		// A zero-sized type (e.g. struct{}) occupies no bytes, so there is
		// nothing to index into — not even a valid empty-slice index once
		// offset reaches the buffer's unallocated end.
		return
	}
	if containsPointers(reflect.TypeOf(&v).Elem()) {
		idx := len(s.objects)
		s.objects = append(s.objects, v)
		binary.LittleEndian.PutUint64(s.buf.Bytes()[offset:], uint64(idx))
		return
	}
	dst := unsafe.Pointer(&s.buf.Bytes()[offset])
	*(*T)(dst) = v
}

func readAt[T any](s *Stack, offset int) T {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return zero
	}
	if containsPointers(reflect.TypeOf(&zero).Elem()) {
		idx := binary.LittleEndian.Uint64(s.buf.Bytes()[offset:])
		return s.objects[idx].(T)
	}
	src := unsafe.Pointer(&s.buf.Bytes()[offset])
	return *(*T)(src)
}
