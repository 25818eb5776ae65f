package align

import "testing"

func TestUp(t *testing.T) {
	cases := []struct {
		length, alignment uintptr
		want              uintptr
	}{
		{0, 1, 0},
		{0, 8, 0},
		{1, 8, 8},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 4096, 4096},
	}
	for _, c := range cases {
		got := Up(c.length, c.alignment)
		if got != c.want {
			t.Errorf("Up(%d, %d) = %d, want %d", c.length, c.alignment, got, c.want)
		}
		if got < c.length {
			t.Errorf("Up(%d, %d) = %d, want >= %d", c.length, c.alignment, got, c.length)
		}
		if got%c.alignment != 0 {
			t.Errorf("Up(%d, %d) = %d, not a multiple of %d", c.length, c.alignment, got, c.alignment)
		}
		if got-c.length >= c.alignment {
			t.Errorf("Up(%d, %d) = %d, overshoots by a full alignment", c.length, c.alignment, got)
		}
	}
}

func TestUpPanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Up(0, 3) did not panic")
		}
	}()
	Up(0, 3)
}

func TestIsPowerOfTwo(t *testing.T) {
	yes := []uintptr{1, 2, 4, 8, 16, 4096}
	no := []uintptr{0, 3, 5, 6, 7, 4095}
	for _, n := range yes {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range no {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}
