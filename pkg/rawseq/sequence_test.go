package rawseq

import "testing"

func TestPushAtOrderPreserved(t *testing.T) {
	s := New()

	p0 := Push(s, func() uint32 { return 100 })
	p1 := Push(s, func() uint32 { return 200 })
	p2 := Push(s, func() float64 { return 42.0 })
	p3 := Push(s, func() string { return "Hello, world!" })

	f0, next := At[func() uint32](s, p0)
	if next != p1 {
		t.Errorf("cursor after record 0 = %d, want %d", next, p1)
	}
	if f0() != 100 {
		t.Errorf("record 0 () = %d, want 100", f0())
	}

	f1, next := At[func() uint32](s, p1)
	if next != p2 {
		t.Errorf("cursor after record 1 = %d, want %d", next, p2)
	}
	if f1() != 200 {
		t.Errorf("record 1 () = %d, want 200", f1())
	}

	f2, next := At[func() float64](s, p2)
	if next != p3 {
		t.Errorf("cursor after record 2 = %d, want %d", next, p3)
	}
	if f2() != 42.0 {
		t.Errorf("record 2 () = %v, want 42.0", f2())
	}

	f3, _ := At[func() string](s, p3)
	if f3() != "Hello, world!" {
		t.Errorf("record 3 () = %q, want %q", f3(), "Hello, world!")
	}
}

func TestDropAtClearsRecordAndAdvancesCursor(t *testing.T) {
	s := New()
	p0 := Push(s, func() int { return 1 })
	p1 := Push(s, func() int { return 2 })

	next := DropAt(s, p0)
	if next != p1 {
		t.Errorf("DropAt cursor = %d, want %d", next, p1)
	}

	v, _ := At[func() int](s, p1)
	if v() != 2 {
		t.Errorf("record after DropAt() = %d, want 2", v())
	}
}
