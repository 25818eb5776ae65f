// Package segerr defines the error taxonomy shared by every layer of the
// segment runtime: the dynamic builder (pkg/dynseg), the typed facade
// (pkg/segment), and their supporting stack/sequence primitives.
//
// Each sentinel below identifies one error *kind*. Callers that need to
// distinguish kinds use errors.Is against these sentinels; the wrapped
// detail (type names, arity, stack position) is for humans, not control
// flow.
package segerr

import (
	"errors"
	"fmt"
	"reflect"
)

// Builder-time errors: returned from DynSegment/Segment append methods.
// The segment is left unmodified when one of these is returned.
var (
	// ErrStackTypeMismatch is returned when the top N shadow-stack entries
	// do not match the types an appended operation expects.
	ErrStackTypeMismatch = errors.New("segment: stack type mismatch")

	// ErrStackUnderflow is returned when an operation needs more values
	// than the shadow stack currently holds.
	ErrStackUnderflow = errors.New("segment: stack underflow")

	// ErrJoinShapeError is returned by Join2 when a fragment takes
	// arguments, does not produce exactly one value, or the two
	// fragments' result types disagree.
	ErrJoinShapeError = errors.New("segment: join shape error")

	// ErrBuilderLimit is returned when an appended operation's result type
	// has a footprint alignment above the configured limit (4096 bytes by
	// default), or when an append would grow the shadow stack past the
	// configured depth (see dynseg.Limits).
	ErrBuilderLimit = errors.New("segment: builder limit exceeded")
)

// Call-time errors: returned from DynSegment.Call0/1/2 and Segment.Call.
var (
	// ErrArityMismatch is returned when a CallN is invoked against a
	// segment declared with a different argument count.
	ErrArityMismatch = errors.New("segment: arity mismatch")

	// ErrArgumentTypeMismatch is returned when a call argument's type
	// does not match the type the segment was built against.
	ErrArgumentTypeMismatch = errors.New("segment: argument type mismatch")

	// ErrUnconsumedStack is returned when a call finishes with more (or
	// fewer) than the one value the declared result type requires.
	ErrUnconsumedStack = errors.New("segment: unconsumed stack value(s)")

	// ErrUserError wraps an error a fallible (opNr) operation closure
	// returned, surfaced to the caller verbatim via Unwrap.
	ErrUserError = errors.New("segment: operation failed")
)

// StackTypeMismatch wraps ErrStackTypeMismatch with the expected and
// actual types at the given shadow-stack depth (0 = top).
func StackTypeMismatch(depth int, want, got reflect.Type) error {
	return fmt.Errorf("%w: at depth %d, want %s, got %s", ErrStackTypeMismatch, depth, typeName(want), typeName(got))
}

// StackUnderflow wraps ErrStackUnderflow with how many values an
// operation needed versus how many the shadow stack held.
func StackUnderflow(need, have int) error {
	return fmt.Errorf("%w: need %d value(s), have %d", ErrStackUnderflow, need, have)
}

// JoinShapeError wraps ErrJoinShapeError with a human-readable reason
// (e.g. "then-fragment takes arguments", "result types disagree").
func JoinShapeError(reason string) error {
	return fmt.Errorf("%w: %s", ErrJoinShapeError, reason)
}

// BuilderLimit wraps ErrBuilderLimit with the offending alignment and the
// configured limit.
func BuilderLimit(alignment, limit uintptr) error {
	return fmt.Errorf("%w: alignment %d exceeds limit %d", ErrBuilderLimit, alignment, limit)
}

// StackDepthLimit wraps ErrBuilderLimit with the shadow-stack depth an
// append would have produced and the configured limit (dynseg.Limits'
// MaxStackDepth).
func StackDepthLimit(depth, limit int) error {
	return fmt.Errorf("%w: stack depth %d exceeds limit %d", ErrBuilderLimit, depth, limit)
}

// ArityMismatch wraps ErrArityMismatch with the segment's declared arity
// versus the arity of the CallN invoked against it.
func ArityMismatch(declared, called int) error {
	return fmt.Errorf("%w: segment declared with %d argument(s), called with %d", ErrArityMismatch, declared, called)
}

// ArgumentTypeMismatch wraps ErrArgumentTypeMismatch with the argument's
// position, its declared type, and the type actually supplied.
func ArgumentTypeMismatch(position int, want, got reflect.Type) error {
	return fmt.Errorf("%w: argument %d, want %s, got %s", ErrArgumentTypeMismatch, position, typeName(want), typeName(got))
}

// UnconsumedStack wraps ErrUnconsumedStack with how many values remained
// (or were missing) when the call's declared result type required
// exactly one.
func UnconsumedStack(remaining int) error {
	return fmt.Errorf("%w: %d value(s) remain on the stack", ErrUnconsumedStack, remaining)
}

// UserError wraps cause (the error an operation closure returned) so
// callers can errors.Is(err, ErrUserError) while errors.Unwrap recovers
// the original cause via fmt.Errorf's %w chaining.
func UserError(cause error) error {
	return fmt.Errorf("%w: %w", ErrUserError, cause)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}
