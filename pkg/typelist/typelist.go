// Package typelist implements the cons-cell type list used to describe a
// segment's argument tuple and its current stack shape.
//
// Rust's const generics let the original express List::Reverse,
// List::PushFront, and friends as type-level functions: the compiler
// computes a new *type* from an old one. Go generics cannot return a type
// from a function, and interfaces have no associated-type projections, so
// a cons list here cannot be walked and rebuilt purely at the type level
// the way the spec's Rust original does (§4.5's "repr(C) tail-first"
// layout exists solely to make that type-level append cheap in Rust; Go
// has no analogous cost to optimize away, since List values here carry no
// runtime payload of their own — see below).
//
// Instead, List is a phantom marker type: Cons[H, T] and Nil carry no
// fields, and their only job is to let pkg/segment's generic Segment
// types describe "what's on the stack" in a way the Go compiler checks at
// each call site. The *value* of that description — the ordered slice of
// reflect.Type — is produced on demand by Types(), and that is what
// pkg/segment actually compares against a DynSegment's runtime-tracked
// type ids.
package typelist

import "reflect"

// List is a type-level cons list: Nil (empty) or Cons[H, T].
type List interface {
	// Types returns this list's element types, head first.
	Types() []reflect.Type
	// Len returns the number of elements.
	Len() int
}

// Nil is the empty type list.
type Nil struct{}

// Types implements List.
func (Nil) Types() []reflect.Type { return nil }

// Len implements List.
func (Nil) Len() int { return 0 }

// Cons is a cons cell: H is the head (top-of-stack) type, Tail the rest.
type Cons[H any, Tail List] struct{}

// Types implements List: the head's reflect.Type followed by the tail's.
func (Cons[H, Tail]) Types() []reflect.Type {
	var tail Tail
	var zero H
	headType := reflect.TypeOf(&zero).Elem()
	return append([]reflect.Type{headType}, tail.Types()...)
}

// Len implements List.
func (Cons[H, Tail]) Len() int {
	var tail Tail
	return 1 + tail.Len()
}

// Head returns the reflect.Type of l's head element, or nil if l is Nil.
func Head(l List) reflect.Type {
	types := l.Types()
	if len(types) == 0 {
		return nil
	}
	return types[0]
}

// Reverse returns l's element types in reverse (tail-to-head) order.
func Reverse(l List) []reflect.Type {
	types := l.Types()
	out := make([]reflect.Type, len(types))
	for i, t := range types {
		out[len(types)-1-i] = t
	}
	return out
}

// At returns the reflect.Type at index i (0 = head), or nil if out of
// range. An optional convenience per §4.5.
func At(l List, i int) reflect.Type {
	types := l.Types()
	if i < 0 || i >= len(types) {
		return nil
	}
	return types[i]
}

// Take returns the first n element types (or fewer, if l is shorter). An
// optional convenience per §4.5.
func Take(l List, n int) []reflect.Type {
	types := l.Types()
	if n > len(types) {
		n = len(types)
	}
	return types[:n]
}

// Equal reports whether l's element types match ids exactly, in order.
// Used by Segment.TryFrom to validate a DynSegment's final stack type ids
// against a statically-declared List.
func Equal(l List, ids []reflect.Type) bool {
	types := l.Types()
	if len(types) != len(ids) {
		return false
	}
	for i := range types {
		if types[i] != ids[i] {
			return false
		}
	}
	return true
}
