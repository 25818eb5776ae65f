// Package rawseq implements RawSequence: append-only heterogeneous storage
// for the operation closures a segment is built from.
//
// The spec's Rust original packs each closure's captured state directly
// into an aligned byte buffer, since an `Fn` closure there is just a
// compiler-generated struct of its captures and can be memcpy'd. A Go
// closure is not representable that way — copying a func value's bytes
// out of the runtime's closure representation is unsound, and a []byte
// buffer is invisible to the garbage collector's pointer scanner, so the
// closure (and whatever it captured) could be collected while still
// referenced only from inside the buffer.
//
// RawSequence instead stores each closure boxed in a records slice (GC-
// visible, safe to copy, safe to drop) and uses the aligned byte buffer
// purely for the position/cursor bookkeeping the spec's invariant I3
// describes: every push advances the cursor by the aligned footprint of
// one record, and At/DropAt walk that same cursor back. Since every value
// ever pushed here is a func (always pointer-containing, see
// rawstack.Footprint), the footprint is always the 8-byte/8-byte-aligned
// handle size — the buffer degenerates to a flat run of handles, which is
// the faithful Go shape of "pack closures back to back with alignment."
package rawseq

import (
	"encoding/binary"
	"fmt"

	"github.com/segmentrt/segment/pkg/align"
	"github.com/segmentrt/segment/pkg/rawbuf"
	"github.com/segmentrt/segment/pkg/rawstack"
)

// MaxAlignment is the largest alignment a pushed value may declare (§4.2,
// §5). Push panics on violation since it is an internal precondition,
// not a user-facing error path. Every closure stored here has the 8-byte
// handle footprint, so the bound is not reached through pkg/dynseg, whose
// own Limits check (segerr.ErrBuilderLimit) applies to operation result
// types rather than to closures.
const MaxAlignment = 4096

// Sequence is a RawSequence.
type Sequence struct {
	buf     *rawbuf.Buffer
	records []any
}

// New creates an empty RawSequence with a 4096-byte base alignment.
func New() *Sequence {
	return &Sequence{buf: rawbuf.WithBaseAlignment(MaxAlignment)}
}

// Len returns the current cursor position (equivalently: the logical
// length of the bookkeeping buffer).
func (s *Sequence) Len() int { return s.buf.Len() }

// Push appends value (typically a func closure) to the sequence and
// returns the position it was stored at, to be passed to At or DropAt.
func Push[T any](s *Sequence, value T) (position int) {
	size, alignment := rawstack.Footprint[T]()
	if alignment > MaxAlignment {
		panic(fmt.Sprintf("rawseq: alignment %d exceeds MaxAlignment %d", alignment, MaxAlignment))
	}
	before := uintptr(s.buf.Len())
	aligned := align.Up(before, alignment)
	padLen := int(aligned - before)

	s.buf.Reserve(padLen + int(size))
	s.buf.SetLen(int(aligned) + int(size))

	idx := uint64(len(s.records))
	s.records = append(s.records, value)
	binary.LittleEndian.PutUint64(s.buf.Bytes()[int(aligned):], idx)
	return int(aligned)
}

// At reads the value of type T stored at position (as returned by Push)
// and returns it along with the cursor position immediately after it.
// The caller must pass the same T that was pushed at that position.
func At[T any](s *Sequence, position int) (T, int) {
	idx, next := handleAt(s, position)
	return s.records[idx].(T), next
}

// DropAt clears the record at position, releasing it for garbage
// collection, and returns the cursor position immediately after it.
func DropAt(s *Sequence, position int) int {
	idx, next := handleAt(s, position)
	s.records[idx] = nil
	return next
}

// handleSize is the byte footprint of every record's bookkeeping handle.
// Every T ever pushed here is a func closure, which rawstack.Footprint
// always reports as an 8-byte, 8-byte-aligned boxed handle.
const handleSize = 8

func handleAt(s *Sequence, position int) (idx uint64, next int) {
	idx = binary.LittleEndian.Uint64(s.buf.Bytes()[position:])
	next = position + handleSize
	return idx, next
}
