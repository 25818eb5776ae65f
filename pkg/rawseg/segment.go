// Package rawseg implements RawSegment: the ordered list of operations a
// segment executes, and the machinery to run them.
//
// Each pushed operation becomes a dispatcher — a function value whose
// signature is (sequence, cursor, stack) -> (nextCursor, err), exactly
// the Operation type the spec's raw_segment.rs defines — paired with the
// user closure itself, stored type-erased in the companion RawSequence
// (pkg/rawseq). PushOp1/PushOp2/PushOp3 are Go generic functions, so the
// compiler produces a dispatcher body per (T, U, V, R) instantiation
// actually used; the padding flags are not type parameters but bool
// values the dispatcher closure captures at append time. The dispatch
// itself is a direct call through a func value — no interface-method
// indirection, no runtime type switch in the hot loop.
package rawseg

import (
	"github.com/segmentrt/segment/pkg/rawseq"
	"github.com/segmentrt/segment/pkg/rawstack"
	"github.com/segmentrt/segment/pkg/seglog"
)

func execLog() *seglog.Logger { return seglog.Default().Module("exec") }
func joinLog() *seglog.Logger { return seglog.Default().Module("join2") }

// dispatch reads one operation's closure from seq at cursor, drives it
// against stack, and returns the cursor position immediately after the
// closure (§3.3, invariant I3).
type dispatch func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error)

// Segment is a RawSegment: ops plus the storage backing them.
type Segment struct {
	ops           []dispatch
	storage       *rawseq.Sequence
	baseAlignment uintptr
}

// New creates an empty RawSegment.
func New() *Segment {
	return &Segment{storage: rawseq.New()}
}

// BaseAlignment returns the largest alignment recorded across every
// result type pushed so far (and, after RawCond, across both joined
// branches). Call uses this to size the RawStack it executes against.
func (s *Segment) BaseAlignment() uintptr { return s.baseAlignment }

// EnsureBaseAlignment raises BaseAlignment to at least a. Used by the
// builder (pkg/dynseg) when joining fragments, whose own base alignments
// must also be accommodated by the parent's runtime stack (invariant I8).
func (s *Segment) EnsureBaseAlignment(a uintptr) {
	if a > s.baseAlignment {
		s.baseAlignment = a
	}
}

func ensureResultAlignment[R any](s *Segment) {
	_, a := rawstack.Footprint[R]()
	s.EnsureBaseAlignment(a)
}

// PushOp0 appends a nullary operation: at run time it calls f and pushes
// the result.
func PushOp0[R any](s *Segment, f func() R) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func() R](seq, cursor)
		rawstack.Push(stack, fn())
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// PushOp1 appends a unary operation: at run time it pops T (with the
// given padding) and pushes f(t).
func PushOp1[T, R any](s *Segment, f func(T) R, paddedT bool) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(T) R](seq, cursor)
		t := rawstack.Pop[T](stack, paddedT)
		rawstack.Push(stack, fn(t))
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// PushOp2 appends a binary operation. At run time it pops u (top) then t
// (second from top, the order arguments were pushed in) and pushes
// f(t, u) — binary ops consume right-then-left.
func PushOp2[T, U, R any](s *Segment, f func(T, U) R, paddedT, paddedU bool) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(T, U) R](seq, cursor)
		u := rawstack.Pop[U](stack, paddedU)
		t := rawstack.Pop[T](stack, paddedT)
		rawstack.Push(stack, fn(t, u))
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// PushOp3 appends a ternary operation, symmetric with PushOp2: it pops v,
// then u, then t, and pushes f(t, u, v).
func PushOp3[T, U, V, R any](s *Segment, f func(T, U, V) R, paddedT, paddedU, paddedV bool) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(T, U, V) R](seq, cursor)
		v := rawstack.Pop[V](stack, paddedV)
		u := rawstack.Pop[U](stack, paddedU)
		t := rawstack.Pop[T](stack, paddedT)
		rawstack.Push(stack, fn(t, u, v))
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// Raw0 is the escape hatch for operations that manipulate the live stack
// directly rather than through fixed-arity pop/push (conditional joins,
// fallible nullary operations that must unwind prior values on error).
func Raw0[R any](s *Segment, f func(*rawstack.Stack) (R, error)) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(*rawstack.Stack) (R, error)](seq, cursor)
		r, err := fn(stack)
		if err != nil {
			return next, err
		}
		rawstack.Push(stack, r)
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// Raw1 is the fallible-unary escape hatch: it pops T (with the given
// padding), hands it and the live stack to f, and pushes the result only
// on success.
func Raw1[T, R any](s *Segment, f func(T, *rawstack.Stack) (R, error), paddedT bool) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(T, *rawstack.Stack) (R, error)](seq, cursor)
		t := rawstack.Pop[T](stack, paddedT)
		r, err := fn(t, stack)
		if err != nil {
			return next, err
		}
		rawstack.Push(stack, r)
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// Raw2 is the fallible-binary escape hatch, symmetric with Raw1: it pops
// u (top) then t, hands both and the live stack to f, and pushes the
// result only on success.
func Raw2[T, U, R any](s *Segment, f func(T, U, *rawstack.Stack) (R, error), paddedT, paddedU bool) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(T, U, *rawstack.Stack) (R, error)](seq, cursor)
		u := rawstack.Pop[U](stack, paddedU)
		t := rawstack.Pop[T](stack, paddedT)
		r, err := fn(t, u, stack)
		if err != nil {
			return next, err
		}
		rawstack.Push(stack, r)
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// Raw3 is the fallible-ternary escape hatch, symmetric with Raw2.
func Raw3[T, U, V, R any](s *Segment, f func(T, U, V, *rawstack.Stack) (R, error), paddedT, paddedU, paddedV bool) {
	rawseq.Push(s.storage, f)
	s.ops = append(s.ops, func(seq *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		fn, next := rawseq.At[func(T, U, V, *rawstack.Stack) (R, error)](seq, cursor)
		v := rawstack.Pop[V](stack, paddedV)
		u := rawstack.Pop[U](stack, paddedU)
		t := rawstack.Pop[T](stack, paddedT)
		r, err := fn(t, u, v, stack)
		if err != nil {
			return next, err
		}
		rawstack.Push(stack, r)
		return next, nil
	})
	ensureResultAlignment[R](s)
}

// RawCond appends a conditional-join dispatcher (§4.6 join2): at run time
// it pops a bool (with the recorded padding) off the live stack, then
// runs either then or els against that same stack. Neither branch's
// result type is named here — each branch already knows how to push its
// own result via its own internal (monomorphized) ops, so the live
// buffer ends up correct regardless of what that type is. This is what
// lets a dynamically-typed builder (pkg/dynseg) bridge a fragment's
// statically-typed result back onto its shadow stack without Go ever
// needing a generic type parameter for it.
func RawCond(s *Segment, paddedCond bool, then, els *Segment) {
	s.ops = append(s.ops, func(_ *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		cond := rawstack.Pop[bool](stack, paddedCond)
		branch, taken := els, "else"
		if cond {
			branch, taken = then, "then"
		}
		joinLog().Debug("join branch taken", "branch", taken)
		if err := Run(branch, stack); err != nil {
			joinLog().Error("join branch failed", "branch", taken, "err", err)
			return cursor, err
		}
		return cursor, nil
	})
	s.EnsureBaseAlignment(then.BaseAlignment())
	s.EnsureBaseAlignment(els.BaseAlignment())
}

// Drop1 appends a pure-destructor operation: it pops and discards T,
// producing no replacement value. Used by dynseg.Drop1 to discard a
// value explicitly; the builder's drop-on-error unwind calls
// rawstack.Drop through its drop thunks instead.
func Drop1[T any](s *Segment, paddedT bool) {
	s.ops = append(s.ops, func(_ *rawseq.Sequence, cursor int, stack *rawstack.Stack) (int, error) {
		rawstack.Drop[T](stack, paddedT)
		return cursor, nil
	})
}

// Run executes every queued op against an already-initialized stack,
// advancing the sequence cursor from 0 to the sequence's end. It is used
// both by Call0/1/2 (against a freshly built stack) and by a join
// dispatcher (against the live parent stack, per §4.6).
func Run(s *Segment, stack *rawstack.Stack) error {
	log := execLog()
	log.Debug("run start", "ops", len(s.ops))
	cursor := 0
	for i, op := range s.ops {
		next, err := op(s.storage, cursor, stack)
		if err != nil {
			log.Error("run failed", "op_index", i, "err", err)
			return err
		}
		cursor = next
	}
	log.Debug("run end", "ops", len(s.ops))
	return nil
}

// Call0 builds a fresh RawStack sized to BaseAlignment, runs every op,
// and pops the single remaining value as R. The result is the sole
// content of the stack, hence always at the (aligned) bottom — so the
// final pop never carries padding (§4.4).
func Call0[R any](s *Segment) (R, error) {
	stack := rawstack.New(s.baseAlignment)
	if err := Run(s, stack); err != nil {
		var zero R
		return zero, err
	}
	return rawstack.Pop[R](stack, false), nil
}

// Call1 pushes arg, runs every op, and pops the result as R.
func Call1[A, R any](s *Segment, arg A) (R, error) {
	stack := rawstack.New(s.baseAlignment)
	rawstack.Push(stack, arg)
	if err := Run(s, stack); err != nil {
		var zero R
		return zero, err
	}
	return rawstack.Pop[R](stack, false), nil
}

// Call2 pushes a then b (left-to-right), runs every op, and pops the
// result as R.
func Call2[A, B, R any](s *Segment, a A, b B) (R, error) {
	stack := rawstack.New(s.baseAlignment)
	rawstack.Push(stack, a)
	rawstack.Push(stack, b)
	if err := Run(s, stack); err != nil {
		var zero R
		return zero, err
	}
	return rawstack.Pop[R](stack, false), nil
}

// Call3 pushes a, b, then c (left-to-right), runs every op, and pops the
// result as R.
func Call3[A, B, C, R any](s *Segment, a A, b B, c C) (R, error) {
	stack := rawstack.New(s.baseAlignment)
	rawstack.Push(stack, a)
	rawstack.Push(stack, b)
	rawstack.Push(stack, c)
	if err := Run(s, stack); err != nil {
		var zero R
		return zero, err
	}
	return rawstack.Pop[R](stack, false), nil
}
