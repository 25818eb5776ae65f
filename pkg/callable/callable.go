// Package callable defines the uniform call(args) surface every typed
// segment satisfies, independent of whether it was built from
// pkg/segment's typed facade or assembled by hand over pkg/dynseg.
//
// The original's Callable trait is generic over an argument tuple; Go
// has no tuple types, so the arities are spelled out individually here —
// the same accommodation pkg/segment and pkg/dynseg already make, and
// one the spec extends through arity 3 rather than stopping at 2.
package callable

// Callable0 is satisfied by any argument-less segment returning R.
type Callable0[R any] interface {
	Call() (R, error)
}

// Callable1 is satisfied by any one-argument segment returning R.
type Callable1[A, R any] interface {
	Call(A) (R, error)
}

// Callable2 is satisfied by any two-argument segment returning R.
type Callable2[A, B, R any] interface {
	Call(A, B) (R, error)
}

// Callable3 is satisfied by any three-argument segment returning R.
type Callable3[A, B, C, R any] interface {
	Call(A, B, C) (R, error)
}

// Invoke0 runs any Callable0 through a single uniform entry point — a
// thin adapter for host code that holds a Callable0 value rather than a
// concrete *segment.Segment0.
func Invoke0[R any](c Callable0[R]) (R, error) { return c.Call() }

// Invoke1 is Invoke0's one-argument counterpart.
func Invoke1[A, R any](c Callable1[A, R], a A) (R, error) { return c.Call(a) }

// Invoke2 is Invoke0's two-argument counterpart.
func Invoke2[A, B, R any](c Callable2[A, B, R], a A, b B) (R, error) { return c.Call(a, b) }

// Invoke3 is Invoke0's three-argument counterpart.
func Invoke3[A, B, C, R any](fn Callable3[A, B, C, R], a A, b B, c C) (R, error) {
	return fn.Call(a, b, c)
}
