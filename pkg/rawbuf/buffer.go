// Package rawbuf implements a growable byte buffer whose logical base
// address is aligned to a caller-chosen power of two, without requiring a
// specialized allocator.
//
// The trick: allocate align-1 extra bytes, then expose the buffer starting
// at the first base-aligned byte inside that allocation (startOffset).
// Growth always re-derives startOffset from the new allocation, so the
// alignment guarantee survives reserve/truncate.
package rawbuf

import (
	"fmt"
	"unsafe"

	"github.com/segmentrt/segment/pkg/align"
)

// Buffer is an AlignedByteBuffer: a byte buffer whose externally visible
// base (Ptr()) is aligned to baseAlignment.
type Buffer struct {
	raw          []byte
	startOffset  int
	length       int
	baseAlignment uintptr
}

// WithBaseAlignment allocates nothing and records the base alignment.
// baseAlignment must be a power of two (checked lazily, on first growth).
func WithBaseAlignment(baseAlignment uintptr) *Buffer {
	return &Buffer{baseAlignment: baseAlignment}
}

// WithBaseAlignmentAndCapacity allocates capacity+baseAlignment-1 bytes up
// front and initializes the logical length to 0.
func WithBaseAlignmentAndCapacity(baseAlignment uintptr, capacity int) *Buffer {
	b := &Buffer{baseAlignment: baseAlignment}
	b.allocate(capacity)
	return b
}

func (b *Buffer) allocate(capacity int) {
	if !align.IsPowerOfTwo(b.baseAlignment) {
		panic(fmt.Sprintf("rawbuf: base alignment %d is not a power of two", b.baseAlignment))
	}
	raw := make([]byte, capacity+int(b.baseAlignment)-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	aligned := align.Up(base, b.baseAlignment)
	b.raw = raw
	b.startOffset = int(aligned - base)
}

// capacity returns the number of bytes available from startOffset onward
// in the current allocation.
func (b *Buffer) capacity() int {
	if b.raw == nil {
		return 0
	}
	return len(b.raw) - b.startOffset
}

// Len returns the logical length of the buffer.
func (b *Buffer) Len() int { return b.length }

// Reserve ensures at least `additional` more bytes are available beyond
// Len(), growing (and re-aligning) the backing allocation if necessary.
func (b *Buffer) Reserve(additional int) {
	need := b.length + additional
	if need <= b.capacity() {
		return
	}
	newCap := need
	if 2*b.capacity() > newCap {
		newCap = 2 * b.capacity()
	}
	old := b.raw
	oldStart := b.startOffset
	oldLen := b.length
	b.allocate(newCap)
	if old != nil {
		copy(b.raw[b.startOffset:], old[oldStart:oldStart+oldLen])
	}
	b.length = oldLen
}

// SetLen sets the logical length to n. The caller must have initialized
// every byte in [old length, n) before any subsequent read; growing the
// length alone does not zero the new region.
func (b *Buffer) SetLen(n int) {
	if n > b.capacity() {
		panic("rawbuf: SetLen beyond capacity")
	}
	b.length = n
}

// Truncate shrinks the logical length to n. It is a no-op if n >= Len().
func (b *Buffer) Truncate(n int) {
	if n < b.length {
		b.length = n
	}
}

// Ptr returns the base-aligned pointer to byte 0 of the logical buffer.
// It is nil if the buffer has never been grown.
func (b *Buffer) Ptr() unsafe.Pointer {
	if b.raw == nil {
		return nil
	}
	return unsafe.Pointer(&b.raw[b.startOffset])
}

// Bytes returns the logical contents as a slice (len == Len()). The slice
// aliases the buffer's storage and is only valid until the next Reserve.
func (b *Buffer) Bytes() []byte {
	if b.raw == nil {
		return nil
	}
	return b.raw[b.startOffset : b.startOffset+b.length]
}

// At returns the byte at logical offset i.
func (b *Buffer) At(i int) byte {
	return b.raw[b.startOffset+i]
}
