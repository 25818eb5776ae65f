// Package dynseg implements DynSegment: the runtime builder that appends
// operations to a RawSegment (pkg/rawseg) while tracking a parallel
// shadow stack of types, padding flags, and drop thunks, so that a
// mismatched append is rejected before it ever touches the executable,
// and a failing operation can unwind every value that is live beneath
// it.
//
// Each append method (Op0, Op1, Op2, Op3, and their fallible Op*r
// counterparts) is itself a generic Go function, the same way the
// original's op1::<T, R>(f: impl Fn(T) -> R) is generic: the concrete
// types are fixed at the call site, so the RawSegment push underneath it
// is fully monomorphized. What is tracked dynamically — here, with
// reflect.Type standing in for the original's TypeId — is only the
// *shape* of the stack between appends: which types are where, so the
// next append can be validated without running anything.
package dynseg

import (
	"reflect"

	"github.com/segmentrt/segment/pkg/align"
	"github.com/segmentrt/segment/pkg/rawseg"
	"github.com/segmentrt/segment/pkg/rawstack"
	"github.com/segmentrt/segment/pkg/seglog"
	"github.com/segmentrt/segment/pkg/segerr"
)

// Limits bounds what a Segment builder will accept. A zero field leaves
// that limit unenforced, so the zero value accepts everything;
// DefaultLimits is what New0..New3 use.
type Limits struct {
	// MaxClosureAlignment is the largest footprint alignment a pushed
	// result type may declare (mirrors rawseq.MaxAlignment; kept here too
	// so callers can tighten it per Segment without touching the shared
	// constant). 0 means unbounded.
	MaxClosureAlignment uintptr

	// MaxStackDepth is the largest number of live entries the shadow
	// stack may hold at once. 0 means unbounded.
	MaxStackDepth int
}

// DefaultLimits matches rawseq.MaxAlignment and leaves the stack depth
// unbounded.
var DefaultLimits = Limits{MaxClosureAlignment: 4096, MaxStackDepth: 0}

// builderLog returns the builder subsystem's logger. Resolved on each
// call (rather than cached) so a seglog.SetDefault after package init
// still takes effect.
func builderLog() *seglog.Logger { return seglog.Default().Module("builder") }

// shadowEntry is one live value on the builder's model of the run-time
// stack: its type, whether its push recorded padding, and the thunk that
// removes exactly that value from a real *rawstack.Stack (§3.1, I1).
type shadowEntry struct {
	typ    reflect.Type
	padded bool
	drop   func(*rawstack.Stack)
}

// Segment is a DynSegment: a RawSegment under construction, plus the
// shadow-stack bookkeeping that validates each append.
type Segment struct {
	raw            *rawseg.Segment
	argumentIDs    []reflect.Type
	stackIDs       []shadowEntry
	stackByteIndex uintptr
	limits         Limits
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(&zero).Elem()
}

func dropThunk[T any](padded bool) func(*rawstack.Stack) {
	return func(s *rawstack.Stack) { rawstack.Drop[T](s, padded) }
}

// pushShadowUnchecked records a new top-of-stack entry of type T,
// computing its padded flag from the builder's running stackByteIndex
// exactly as a real Push would from the run-time buffer's length (§4.6
// step 5), without consulting s.limits. Used to seed the initial
// argument stack (New1/New2/New3), whose types are fixed by the caller
// rather than by a dynamically appended operation.
func pushShadowUnchecked[T any](s *Segment) {
	size, alignment := rawstack.Footprint[T]()
	aligned := align.Up(s.stackByteIndex, alignment)
	padded := aligned != s.stackByteIndex
	s.stackByteIndex = aligned + size
	s.stackIDs = append(s.stackIDs, shadowEntry{
		typ:    typeOf[T](),
		padded: padded,
		drop:   dropThunk[T](padded),
	})
}

// pushShadow is pushShadowUnchecked plus s.limits enforcement: it rejects
// a result type whose footprint alignment exceeds MaxClosureAlignment,
// or an append that would grow the shadow stack past MaxStackDepth,
// before the entry is ever recorded (§4.6 op append, "validated before
// forwarding"). It is used to record every operation's result (Op0..Op3,
// Op0r..Op3r); Join2 performs the same two checks inline.
func pushShadow[T any](s *Segment) error {
	_, alignment := rawstack.Footprint[T]()
	if s.limits.MaxClosureAlignment != 0 && alignment > s.limits.MaxClosureAlignment {
		err := segerr.BuilderLimit(alignment, s.limits.MaxClosureAlignment)
		builderLog().Error("op rejected: alignment exceeds limit", "type", typeOf[T](), "alignment", alignment, "limit", s.limits.MaxClosureAlignment)
		return err
	}
	depth := len(s.stackIDs) + 1
	if s.limits.MaxStackDepth != 0 && depth > s.limits.MaxStackDepth {
		err := segerr.StackDepthLimit(depth, s.limits.MaxStackDepth)
		builderLog().Error("op rejected: stack depth exceeds limit", "depth", depth, "limit", s.limits.MaxStackDepth)
		return err
	}
	pushShadowUnchecked[T](s)
	builderLog().Debug("op appended", "type", typeOf[T](), "stack_depth", len(s.stackIDs))
	return nil
}

func newSegment(limits Limits) *Segment {
	return &Segment{raw: rawseg.New(), limits: limits}
}

// New0 builds an argument-less DynSegment.
func New0() *Segment { return New0With(DefaultLimits) }

// New0With is New0 with explicit Limits.
func New0With(limits Limits) *Segment { return newSegment(limits) }

// New1 builds a DynSegment taking one argument of type A, which becomes
// the initial (sole, deepest) shadow-stack entry.
func New1[A any]() *Segment { return New1With[A](DefaultLimits) }

// New1With is New1 with explicit Limits.
func New1With[A any](limits Limits) *Segment {
	s := newSegment(limits)
	s.argumentIDs = []reflect.Type{typeOf[A]()}
	pushShadowUnchecked[A](s)
	return s
}

// New2 builds a DynSegment taking two arguments (A, B), pushed left to
// right so A is deepest and B is on top — the same order Call2 pushes
// them in at run time.
func New2[A, B any]() *Segment { return New2With[A, B](DefaultLimits) }

// New2With is New2 with explicit Limits.
func New2With[A, B any](limits Limits) *Segment {
	s := newSegment(limits)
	s.argumentIDs = []reflect.Type{typeOf[A](), typeOf[B]()}
	pushShadowUnchecked[A](s)
	pushShadowUnchecked[B](s)
	return s
}

// New3 builds a DynSegment taking three arguments (A, B, C), pushed left
// to right.
func New3[A, B, C any]() *Segment { return New3With[A, B, C](DefaultLimits) }

// New3With is New3 with explicit Limits.
func New3With[A, B, C any](limits Limits) *Segment {
	s := newSegment(limits)
	s.argumentIDs = []reflect.Type{typeOf[A](), typeOf[B](), typeOf[C]()}
	pushShadowUnchecked[A](s)
	pushShadowUnchecked[B](s)
	pushShadowUnchecked[C](s)
	return s
}

// NewFragment builds a zero-argument child fragment that inherits
// parent's current stackByteIndex (§6: "new_fragment(parent) -> zero-arg
// child fragment inheriting parent's byte index"), so a fragment built
// for Join2 computes padding exactly as if it ran where the join will
// actually splice it in.
func NewFragment(parent *Segment) *Segment {
	s := newSegment(parent.limits)
	s.stackByteIndex = parent.stackByteIndex
	return s
}

// Describe returns a short human-readable disassembly of the segment's
// argument types and current shadow stack, top first. It is a debugging
// convenience, not part of the executable contract.
func (s *Segment) Describe() string {
	out := "args("
	for i, t := range s.argumentIDs {
		if i > 0 {
			out += ", "
		}
		out += t.String()
	}
	out += ") stack["
	for i := len(s.stackIDs) - 1; i >= 0; i-- {
		if i != len(s.stackIDs)-1 {
			out += ", "
		}
		e := s.stackIDs[i]
		out += e.typ.String()
		if e.padded {
			out += "(padded)"
		}
	}
	out += "]"
	return out
}

func snapshotDropThunks(entries []shadowEntry) []func(*rawstack.Stack) {
	thunks := make([]func(*rawstack.Stack), len(entries))
	for i, e := range entries {
		thunks[len(entries)-1-i] = e.drop
	}
	return thunks
}

func unwind(stack *rawstack.Stack, thunks []func(*rawstack.Stack)) {
	for _, th := range thunks {
		th(stack)
	}
}

// Op0 appends a nullary operation producing R, rejecting it (without
// forwarding to RawSegment) if R's footprint would violate s.limits.
func Op0[R any](s *Segment, f func() R) error {
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.PushOp0(s.raw, f)
	return nil
}

// Op0r appends a fallible nullary operation. On failure it unwinds every
// value currently live on the shadow stack (in LIFO order) before
// returning segerr.ErrUserError wrapping the closure's error (§4.6
// fallible append, invariant I7).
func Op0r[R any](s *Segment, f func() (R, error)) error {
	thunks := snapshotDropThunks(s.stackIDs)
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.Raw0(s.raw, func(stack *rawstack.Stack) (R, error) {
		r, err := f()
		if err != nil {
			builderLog().Debug("op failed, unwinding", "stack_depth", len(thunks))
			unwind(stack, thunks)
			var zero R
			return zero, segerr.UserError(err)
		}
		return r, nil
	})
	return nil
}

func popOneShadow[T any](s *Segment) error {
	if len(s.stackIDs) < 1 {
		err := segerr.StackUnderflow(1, len(s.stackIDs))
		builderLog().Error("op rejected: stack underflow", "err", err)
		return err
	}
	top := s.stackIDs[len(s.stackIDs)-1]
	want := typeOf[T]()
	if top.typ != want {
		err := segerr.StackTypeMismatch(0, want, top.typ)
		builderLog().Error("op rejected: type mismatch", "err", err)
		return err
	}
	return nil
}

// Op1 appends a unary operation, validating that the shadow stack's top
// entry is T before forwarding to RawSegment (§4.6 op append steps 1-5).
func Op1[T, R any](s *Segment, f func(T) R) error {
	if err := popOneShadow[T](s); err != nil {
		return err
	}
	paddedT := s.stackIDs[len(s.stackIDs)-1].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-1]
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.PushOp1(s.raw, f, paddedT)
	return nil
}

// Op1r is the fallible unary variant of Op1.
func Op1r[T, R any](s *Segment, f func(T) (R, error)) error {
	if err := popOneShadow[T](s); err != nil {
		return err
	}
	paddedT := s.stackIDs[len(s.stackIDs)-1].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-1]
	thunks := snapshotDropThunks(s.stackIDs)
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.Raw1(s.raw, func(t T, stack *rawstack.Stack) (R, error) {
		r, err := f(t)
		if err != nil {
			builderLog().Debug("op failed, unwinding", "stack_depth", len(thunks))
			unwind(stack, thunks)
			var zero R
			return zero, segerr.UserError(err)
		}
		return r, nil
	}, paddedT)
	return nil
}

func popTwoShadow[T, U any](s *Segment) error {
	if len(s.stackIDs) < 2 {
		err := segerr.StackUnderflow(2, len(s.stackIDs))
		builderLog().Error("op rejected: stack underflow", "err", err)
		return err
	}
	top := s.stackIDs[len(s.stackIDs)-1]
	second := s.stackIDs[len(s.stackIDs)-2]
	wantU, wantT := typeOf[U](), typeOf[T]()
	if top.typ != wantU {
		err := segerr.StackTypeMismatch(0, wantU, top.typ)
		builderLog().Error("op rejected: type mismatch", "err", err)
		return err
	}
	if second.typ != wantT {
		err := segerr.StackTypeMismatch(1, wantT, second.typ)
		builderLog().Error("op rejected: type mismatch", "err", err)
		return err
	}
	return nil
}

// Op2 appends a binary operation. Per §4.4 ordering, the top of the
// shadow stack is U (the right/most-recent operand) and the entry below
// it is T.
func Op2[T, U, R any](s *Segment, f func(T, U) R) error {
	if err := popTwoShadow[T, U](s); err != nil {
		return err
	}
	paddedU := s.stackIDs[len(s.stackIDs)-1].padded
	paddedT := s.stackIDs[len(s.stackIDs)-2].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-2]
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.PushOp2(s.raw, f, paddedT, paddedU)
	return nil
}

// Op2r is the fallible binary variant of Op2.
func Op2r[T, U, R any](s *Segment, f func(T, U) (R, error)) error {
	if err := popTwoShadow[T, U](s); err != nil {
		return err
	}
	paddedU := s.stackIDs[len(s.stackIDs)-1].padded
	paddedT := s.stackIDs[len(s.stackIDs)-2].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-2]
	thunks := snapshotDropThunks(s.stackIDs)
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.Raw2(s.raw, func(t T, u U, stack *rawstack.Stack) (R, error) {
		r, err := f(t, u)
		if err != nil {
			builderLog().Debug("op failed, unwinding", "stack_depth", len(thunks))
			unwind(stack, thunks)
			var zero R
			return zero, segerr.UserError(err)
		}
		return r, nil
	}, paddedT, paddedU)
	return nil
}

func popThreeShadow[T, U, V any](s *Segment) error {
	if len(s.stackIDs) < 3 {
		err := segerr.StackUnderflow(3, len(s.stackIDs))
		builderLog().Error("op rejected: stack underflow", "err", err)
		return err
	}
	top := s.stackIDs[len(s.stackIDs)-1]
	mid := s.stackIDs[len(s.stackIDs)-2]
	bot := s.stackIDs[len(s.stackIDs)-3]
	wantV, wantU, wantT := typeOf[V](), typeOf[U](), typeOf[T]()
	if top.typ != wantV {
		err := segerr.StackTypeMismatch(0, wantV, top.typ)
		builderLog().Error("op rejected: type mismatch", "err", err)
		return err
	}
	if mid.typ != wantU {
		err := segerr.StackTypeMismatch(1, wantU, mid.typ)
		builderLog().Error("op rejected: type mismatch", "err", err)
		return err
	}
	if bot.typ != wantT {
		err := segerr.StackTypeMismatch(2, wantT, bot.typ)
		builderLog().Error("op rejected: type mismatch", "err", err)
		return err
	}
	return nil
}

// Op3 appends a ternary operation, symmetric with Op2: top is V, then U,
// then T.
func Op3[T, U, V, R any](s *Segment, f func(T, U, V) R) error {
	if err := popThreeShadow[T, U, V](s); err != nil {
		return err
	}
	paddedV := s.stackIDs[len(s.stackIDs)-1].padded
	paddedU := s.stackIDs[len(s.stackIDs)-2].padded
	paddedT := s.stackIDs[len(s.stackIDs)-3].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-3]
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.PushOp3(s.raw, f, paddedT, paddedU, paddedV)
	return nil
}

// Op3r is the fallible ternary variant of Op3.
func Op3r[T, U, V, R any](s *Segment, f func(T, U, V) (R, error)) error {
	if err := popThreeShadow[T, U, V](s); err != nil {
		return err
	}
	paddedV := s.stackIDs[len(s.stackIDs)-1].padded
	paddedU := s.stackIDs[len(s.stackIDs)-2].padded
	paddedT := s.stackIDs[len(s.stackIDs)-3].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-3]
	thunks := snapshotDropThunks(s.stackIDs)
	if err := pushShadow[R](s); err != nil {
		return err
	}
	rawseg.Raw3(s.raw, func(t T, u U, v V, stack *rawstack.Stack) (R, error) {
		r, err := f(t, u, v)
		if err != nil {
			builderLog().Debug("op failed, unwinding", "stack_depth", len(thunks))
			unwind(stack, thunks)
			var zero R
			return zero, segerr.UserError(err)
		}
		return r, nil
	}, paddedT, paddedU, paddedV)
	return nil
}

// Drop1 appends a pure-destructor operation for T, matching RawSegment's
// escape hatch of the same name; exposed here so a builder-level client
// can explicitly discard an unconsumed value rather than letting
// UnconsumedStack fail the call.
func Drop1[T any](s *Segment) error {
	if err := popOneShadow[T](s); err != nil {
		return err
	}
	paddedT := s.stackIDs[len(s.stackIDs)-1].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-1]
	rawseg.Drop1[T](s.raw, paddedT)
	return nil
}

// Join2 appends a conditional join (§4.6): it pops a bool from the
// shadow stack, requires then and els to each be argument-less and
// produce exactly one value of the same type, and appends a single
// dispatcher that at run time runs whichever fragment the live bool
// selects against the same live stack. then and els must not be used
// (appended to or called) after this — ownership of their RawSegment
// passes to the parent's op list.
func Join2(s *Segment, then, els *Segment) error {
	if err := popOneShadow[bool](s); err != nil {
		return err
	}
	if len(then.argumentIDs) != 0 || len(els.argumentIDs) != 0 {
		err := segerr.JoinShapeError("fragment takes arguments")
		builderLog().Error("join rejected", "err", err)
		return err
	}
	if len(then.stackIDs) != 1 || len(els.stackIDs) != 1 {
		err := segerr.JoinShapeError("fragment does not produce exactly one value")
		builderLog().Error("join rejected", "err", err)
		return err
	}
	thenResult, elseResult := then.stackIDs[0], els.stackIDs[0]
	if thenResult.typ != elseResult.typ {
		err := segerr.JoinShapeError("branch result types disagree: " + thenResult.typ.String() + " vs " + elseResult.typ.String())
		builderLog().Error("join rejected", "err", err)
		return err
	}

	size, alignment := rawstack.FootprintOf(thenResult.typ)
	if s.limits.MaxClosureAlignment != 0 && alignment > s.limits.MaxClosureAlignment {
		err := segerr.BuilderLimit(alignment, s.limits.MaxClosureAlignment)
		builderLog().Error("join rejected: alignment exceeds limit", "type", thenResult.typ, "alignment", alignment, "limit", s.limits.MaxClosureAlignment)
		return err
	}
	depth := len(s.stackIDs)
	if s.limits.MaxStackDepth != 0 && depth > s.limits.MaxStackDepth {
		err := segerr.StackDepthLimit(depth, s.limits.MaxStackDepth)
		builderLog().Error("join rejected: stack depth exceeds limit", "depth", depth, "limit", s.limits.MaxStackDepth)
		return err
	}

	condPadded := s.stackIDs[len(s.stackIDs)-1].padded
	s.stackIDs = s.stackIDs[:len(s.stackIDs)-1]

	rawseg.RawCond(s.raw, condPadded, then.raw, els.raw)

	aligned := align.Up(s.stackByteIndex, alignment)
	padded := aligned != s.stackByteIndex
	s.stackByteIndex = aligned + size
	resultType := thenResult.typ
	s.stackIDs = append(s.stackIDs, shadowEntry{
		typ:    resultType,
		padded: padded,
		drop:   func(stack *rawstack.Stack) { rawstack.DropDynamic(stack, resultType, padded) },
	})
	builderLog().Debug("join appended", "type", resultType, "stack_depth", len(s.stackIDs))
	return nil
}

func execLog() *seglog.Logger { return seglog.Default().Module("exec") }

// Call0 validates a zero-argument, single-result contract and delegates
// to the underlying RawSegment (§4.6 invocation).
func Call0[R any](s *Segment) (R, error) {
	var zero R
	if len(s.argumentIDs) != 0 {
		return zero, segerr.ArityMismatch(len(s.argumentIDs), 0)
	}
	if err := checkFinalStack[R](s); err != nil {
		return zero, err
	}
	log := execLog()
	log.Debug("call start", "arity", 0)
	r, err := rawseg.Call0[R](s.raw)
	if err != nil {
		log.Error("call failed", "err", err)
		return zero, err
	}
	log.Debug("call end", "arity", 0)
	return r, nil
}

// Call1 validates a one-argument contract and delegates to RawSegment.
func Call1[A, R any](s *Segment, arg A) (R, error) {
	var zero R
	if len(s.argumentIDs) != 1 {
		return zero, segerr.ArityMismatch(len(s.argumentIDs), 1)
	}
	if want := s.argumentIDs[0]; want != typeOf[A]() {
		return zero, segerr.ArgumentTypeMismatch(0, want, typeOf[A]())
	}
	if err := checkFinalStack[R](s); err != nil {
		return zero, err
	}
	log := execLog()
	log.Debug("call start", "arity", 1)
	r, err := rawseg.Call1[A, R](s.raw, arg)
	if err != nil {
		log.Error("call failed", "err", err)
		return zero, err
	}
	log.Debug("call end", "arity", 1)
	return r, nil
}

// Call2 validates a two-argument contract and delegates to RawSegment.
func Call2[A, B, R any](s *Segment, a A, b B) (R, error) {
	var zero R
	if len(s.argumentIDs) != 2 {
		return zero, segerr.ArityMismatch(len(s.argumentIDs), 2)
	}
	if want := s.argumentIDs[0]; want != typeOf[A]() {
		return zero, segerr.ArgumentTypeMismatch(0, want, typeOf[A]())
	}
	if want := s.argumentIDs[1]; want != typeOf[B]() {
		return zero, segerr.ArgumentTypeMismatch(1, want, typeOf[B]())
	}
	if err := checkFinalStack[R](s); err != nil {
		return zero, err
	}
	log := execLog()
	log.Debug("call start", "arity", 2)
	r, err := rawseg.Call2[A, B, R](s.raw, a, b)
	if err != nil {
		log.Error("call failed", "err", err)
		return zero, err
	}
	log.Debug("call end", "arity", 2)
	return r, nil
}

// Call3 validates a three-argument contract and delegates to RawSegment.
func Call3[A, B, C, R any](s *Segment, a A, b B, c C) (R, error) {
	var zero R
	if len(s.argumentIDs) != 3 {
		return zero, segerr.ArityMismatch(len(s.argumentIDs), 3)
	}
	if want := s.argumentIDs[0]; want != typeOf[A]() {
		return zero, segerr.ArgumentTypeMismatch(0, want, typeOf[A]())
	}
	if want := s.argumentIDs[1]; want != typeOf[B]() {
		return zero, segerr.ArgumentTypeMismatch(1, want, typeOf[B]())
	}
	if want := s.argumentIDs[2]; want != typeOf[C]() {
		return zero, segerr.ArgumentTypeMismatch(2, want, typeOf[C]())
	}
	if err := checkFinalStack[R](s); err != nil {
		return zero, err
	}
	log := execLog()
	log.Debug("call start", "arity", 3)
	r, err := rawseg.Call3[A, B, C, R](s.raw, a, b, c)
	if err != nil {
		log.Error("call failed", "err", err)
		return zero, err
	}
	log.Debug("call end", "arity", 3)
	return r, nil
}

// ArgumentIDs returns a copy of the segment's declared argument types, in
// argument order. Used by pkg/segment's TryFrom conversions (§4.7).
func (s *Segment) ArgumentIDs() []reflect.Type {
	out := make([]reflect.Type, len(s.argumentIDs))
	copy(out, s.argumentIDs)
	return out
}

// FinalStackTypes returns the types currently on the shadow stack, top
// last. A segment ready to Call0/1/2/3 with result R has either zero
// entries (R is the zero-sized unit type) or exactly one entry matching
// R. Used by pkg/segment's TryFrom conversions.
func (s *Segment) FinalStackTypes() []reflect.Type {
	out := make([]reflect.Type, len(s.stackIDs))
	for i, e := range s.stackIDs {
		out[i] = e.typ
	}
	return out
}

// checkFinalStack validates that the shadow stack holds exactly the one
// value R's call expects. R's Go analogue of the original's unit type
// "()" is struct{} (zero-sized): a segment declared to return struct{}
// legitimately finishes with nothing on the stack, matching §8's "zero-
// op DynSegment::new::<()>().call0::<()>() returns Ok(())".
func checkFinalStack[R any](s *Segment) error {
	want := typeOf[R]()
	if want.Size() == 0 {
		if len(s.stackIDs) != 0 {
			return segerr.UnconsumedStack(len(s.stackIDs))
		}
		return nil
	}
	if len(s.stackIDs) != 1 {
		return segerr.UnconsumedStack(len(s.stackIDs))
	}
	if got := s.stackIDs[0].typ; want != got {
		return segerr.StackTypeMismatch(0, want, got)
	}
	return nil
}
