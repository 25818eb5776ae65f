// Package segment implements the statically-typed facade over DynSegment
// (pkg/dynseg): Segment0[R] through Segment3[A, B, C, R] wrap a built
// DynSegment and expose a Call that is checked by the Go compiler against
// R (and the argument types), rather than only at run time.
//
// The original's Segment<Args, Stack> tracks the *entire* shadow stack
// shape through the type system: each op<k> call returns a Segment whose
// Stack type parameter the compiler has advanced to match, so a
// downstream op<k> is rejected at compile time if it doesn't fit. That
// relies on Rust's const generics letting List::PushFront/Reverse compute
// a new *type* from an old one at each call site. Go generics cannot
// return a type from a function — there is no way to write a method
// whose return type is "Cons[R, Tail-of-Stack]" when Stack is only known
// through an interface constraint — so a chain of .Op1().Op2()... cannot
// carry a compile-time-advancing stack shape the way the original does.
// This is exactly the case the design notes anticipate ("an
// implementation language without that facility may omit the typed
// facade entirely and rely on DynSegment alone").
//
// Rather than drop the facade, this package keeps the part of it that
// Go *can* express soundly: a result (and, for arity > 0, argument) type
// fixed in the wrapper's own type parameters, checked by the compiler at
// every Call site, with TryFrom performing the one-time dynamic-to-
// static validation §4.7 describes — using pkg/typelist to describe and
// compare the expected final stack shape, which is the facade's only
// structural use of a type list once per-op chaining is out of scope.
// Building up the underlying DynSegment (the Op0/Op1/... chain itself)
// is done through pkg/dynseg directly, exactly as the original's own
// DynSegment does internally.
package segment

import (
	"reflect"

	"github.com/segmentrt/segment/pkg/dynseg"
	"github.com/segmentrt/segment/pkg/segerr"
	"github.com/segmentrt/segment/pkg/typelist"
)

// resultShape returns the typelist.List describing what a segment
// returning R must leave on its shadow stack: empty for the zero-sized
// "unit" result (struct{}), a single R entry otherwise.
func resultShape[R any]() typelist.List {
	var zero R
	if reflect.TypeOf(&zero).Elem().Size() == 0 {
		return typelist.Nil{}
	}
	return typelist.Cons[R, typelist.Nil]{}
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(&zero).Elem()
}

func argTypes0() []reflect.Type { return nil }

func argTypes1[A any]() []reflect.Type { return []reflect.Type{typeOf[A]()} }

func argTypes2[A, B any]() []reflect.Type { return []reflect.Type{typeOf[A](), typeOf[B]()} }

func argTypes3[A, B, C any]() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B](), typeOf[C]()}
}

// Segment0 is the typed facade for an argument-less segment returning R.
type Segment0[R any] struct{ dyn *dynseg.Segment }

// New0 starts a new Segment0 builder.
func New0[R any]() *Segment0[R] { return &Segment0[R]{dyn: dynseg.New0()} }

// Dyn exposes the underlying DynSegment so callers can append ops via
// pkg/dynseg's Op0/Op0r/... (the chain itself is built dynamically;
// Segment only guards the entry and exit points).
func (s *Segment0[R]) Dyn() *dynseg.Segment { return s.dyn }

// Call validates and invokes the segment, returning R.
func (s *Segment0[R]) Call() (R, error) { return dynseg.Call0[R](s.dyn) }

// TryFrom0 converts an already-built DynSegment into a Segment0[R],
// validating that it declares zero arguments and a final stack shape
// matching R (§4.7).
func TryFrom0[R any](d *dynseg.Segment) (*Segment0[R], error) {
	if err := validateArgs(d, argTypes0()); err != nil {
		return nil, err
	}
	if err := validateResult[R](d); err != nil {
		return nil, err
	}
	return &Segment0[R]{dyn: d}, nil
}

// Segment1 is the typed facade for a one-argument segment.
type Segment1[A, R any] struct{ dyn *dynseg.Segment }

// New1 starts a new Segment1 builder.
func New1[A, R any]() *Segment1[A, R] { return &Segment1[A, R]{dyn: dynseg.New1[A]()} }

// Dyn exposes the underlying DynSegment.
func (s *Segment1[A, R]) Dyn() *dynseg.Segment { return s.dyn }

// Call validates and invokes the segment with arg, returning R.
func (s *Segment1[A, R]) Call(arg A) (R, error) { return dynseg.Call1[A, R](s.dyn, arg) }

// TryFrom1 converts an already-built DynSegment into a Segment1[A, R].
func TryFrom1[A, R any](d *dynseg.Segment) (*Segment1[A, R], error) {
	if err := validateArgs(d, argTypes1[A]()); err != nil {
		return nil, err
	}
	if err := validateResult[R](d); err != nil {
		return nil, err
	}
	return &Segment1[A, R]{dyn: d}, nil
}

// Segment2 is the typed facade for a two-argument segment.
type Segment2[A, B, R any] struct{ dyn *dynseg.Segment }

// New2 starts a new Segment2 builder.
func New2[A, B, R any]() *Segment2[A, B, R] {
	return &Segment2[A, B, R]{dyn: dynseg.New2[A, B]()}
}

// Dyn exposes the underlying DynSegment.
func (s *Segment2[A, B, R]) Dyn() *dynseg.Segment { return s.dyn }

// Call validates and invokes the segment with (a, b), returning R.
func (s *Segment2[A, B, R]) Call(a A, b B) (R, error) { return dynseg.Call2[A, B, R](s.dyn, a, b) }

// TryFrom2 converts an already-built DynSegment into a Segment2[A, B, R].
func TryFrom2[A, B, R any](d *dynseg.Segment) (*Segment2[A, B, R], error) {
	if err := validateArgs(d, argTypes2[A, B]()); err != nil {
		return nil, err
	}
	if err := validateResult[R](d); err != nil {
		return nil, err
	}
	return &Segment2[A, B, R]{dyn: d}, nil
}

// Segment3 is the typed facade for a three-argument segment — the
// extended arity pkg/callable and pkg/dynseg both support beyond the
// distilled contract's arity-2 ceiling.
type Segment3[A, B, C, R any] struct{ dyn *dynseg.Segment }

// New3 starts a new Segment3 builder.
func New3[A, B, C, R any]() *Segment3[A, B, C, R] {
	return &Segment3[A, B, C, R]{dyn: dynseg.New3[A, B, C]()}
}

// Dyn exposes the underlying DynSegment.
func (s *Segment3[A, B, C, R]) Dyn() *dynseg.Segment { return s.dyn }

// Call validates and invokes the segment with (a, b, c), returning R.
func (s *Segment3[A, B, C, R]) Call(a A, b B, c C) (R, error) {
	return dynseg.Call3[A, B, C, R](s.dyn, a, b, c)
}

// TryFrom3 converts an already-built DynSegment into a Segment3.
func TryFrom3[A, B, C, R any](d *dynseg.Segment) (*Segment3[A, B, C, R], error) {
	if err := validateArgs(d, argTypes3[A, B, C]()); err != nil {
		return nil, err
	}
	if err := validateResult[R](d); err != nil {
		return nil, err
	}
	return &Segment3[A, B, C, R]{dyn: d}, nil
}

func validateArgs(d *dynseg.Segment, want []reflect.Type) error {
	got := d.ArgumentIDs()
	if len(got) != len(want) {
		return segerr.ArityMismatch(len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w {
			return segerr.ArgumentTypeMismatch(i, w, got[i])
		}
	}
	return nil
}

func validateResult[R any](d *dynseg.Segment) error {
	want := resultShape[R]()
	got := d.FinalStackTypes()
	if !typelist.Equal(want, got) {
		return segerr.UnconsumedStack(len(got))
	}
	return nil
}
