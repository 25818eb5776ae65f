package dynseg

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/segmentrt/segment/pkg/segerr"
)

func TestArithmeticChainNoArgs(t *testing.T) {
	s := New0()
	if err := Op0(s, func() uint32 { return 30 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0(s, func() uint32 { return 12 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op2(s, func(x, y uint32) uint32 { return x + y }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}
	if err := Op0(s, func() uint32 { return 100 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0(s, func() uint32 { return 10 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op3(s, func(x, y, z uint32) uint32 { return x + y - z }); err != nil {
		t.Fatalf("Op3() error = %v", err)
	}
	if err := Op1(s, func(x uint32) string { return fmt.Sprintf("result: %d", x) }); err != nil {
		t.Fatalf("Op1() error = %v", err)
	}

	got, err := Call0[string](s)
	if err != nil {
		t.Fatalf("Call0() error = %v", err)
	}
	if got != "result: 132" {
		t.Errorf("Call0() = %q, want %q", got, "result: 132")
	}
}

func TestArithmeticChainWithArgument(t *testing.T) {
	s := New1[uint32]()
	if err := Op0(s, func() uint32 { return 12 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op2(s, func(x, y uint32) uint32 { return x + y }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}
	if err := Op0(s, func() uint32 { return 100 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0(s, func() uint32 { return 10 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op3(s, func(x, y, z uint32) uint32 { return x + y - z }); err != nil {
		t.Fatalf("Op3() error = %v", err)
	}
	if err := Op1(s, func(x uint32) string { return fmt.Sprintf("result: %d", x) }); err != nil {
		t.Fatalf("Op1() error = %v", err)
	}

	got, err := Call1[uint32, string](s, 30)
	if err != nil {
		t.Fatalf("Call1() error = %v", err)
	}
	if got != "result: 132" {
		t.Errorf("Call1() = %q, want %q", got, "result: 132")
	}
}

func TestDropOnErrorUnwindsLiveValues(t *testing.T) {
	s := New0()
	if err := Op0(s, func() int { return 7 }); err != nil { // a live value the failing op must unwind
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0r(s, func() (uint32, error) {
		return 0, errors.New("boom")
	}); err != nil {
		t.Fatalf("Op0r() error = %v", err)
	}
	if err := Op2(s, func(a int, b uint32) uint32 { return uint32(a) + b }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}

	_, err := Call0[uint32](s)
	if err == nil {
		t.Fatalf("Call0() error = nil, want non-nil")
	}
	if !errors.Is(err, segerr.ErrUserError) {
		t.Errorf("Call0() error = %v, want wrapping ErrUserError", err)
	}
	if want := "boom"; !strings.Contains(err.Error(), want) {
		t.Errorf("Call0() error = %q, want it to mention %q", err.Error(), want)
	}
}

func TestTypeMismatchAtBuild(t *testing.T) {
	s := New0()
	if err := Op0(s, func() uint32 { return 1 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	err := Op1(s, func(x string) string { return x })
	if !errors.Is(err, segerr.ErrStackTypeMismatch) {
		t.Errorf("Op1() error = %v, want ErrStackTypeMismatch", err)
	}
}

func TestConditionalJoinConstantBranches(t *testing.T) {
	// Scenario 5: root pushes true, pushes false, ANDs them (-> false),
	// then joins on that; the else branch (2) must win.
	s := New0()
	if err := Op0(s, func() bool { return true }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0(s, func() bool { return false }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op2(s, func(x, y bool) bool { return x && y }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}

	then := NewFragment(s)
	if err := Op0(then, func() uint32 { return 42 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	els := NewFragment(s)
	if err := Op0(els, func() uint32 { return 2 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	if err := Join2(s, then, els); err != nil {
		t.Fatalf("Join2() error = %v", err)
	}

	got, err := Call0[uint32](s)
	if err != nil {
		t.Fatalf("Call0() error = %v", err)
	}
	if got != 2 {
		t.Errorf("Call0() = %d, want 2", got)
	}
}

func TestMixedTypeTwoArgResult(t *testing.T) {
	s := New2[uint32, string]()
	if err := Op1(s, func(str string) uint32 {
		var n uint32
		fmt.Sscanf(str, "%d", &n)
		return n
	}); err != nil {
		t.Fatalf("Op1() error = %v", err)
	}
	if err := Op2(s, func(x, y uint32) uint32 { return x + y }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}
	if err := Op1(s, func(x uint32) string { return fmt.Sprintf("%d", x) }); err != nil {
		t.Fatalf("Op1() error = %v", err)
	}

	got, err := Call2[uint32, string, string](s, 1, "2")
	if err != nil {
		t.Fatalf("Call2() error = %v", err)
	}
	if got != "3" {
		t.Errorf("Call2() = %q, want %q", got, "3")
	}
}

func TestZeroOpZeroArgSegmentReturnsOk(t *testing.T) {
	s := New0()
	_, err := Call0[struct{}](s)
	if err != nil {
		t.Fatalf("Call0() error = %v, want nil", err)
	}
}

func TestArityMismatchAtCall(t *testing.T) {
	s := New1[uint32]()
	Op1(s, func(x uint32) uint32 { return x })
	_, err := Call0[uint32](s)
	if !errors.Is(err, segerr.ErrArityMismatch) {
		t.Errorf("Call0() error = %v, want ErrArityMismatch", err)
	}
}

func TestArgumentTypeMismatchAtCall(t *testing.T) {
	s := New1[uint32]()
	Op1(s, func(x uint32) uint32 { return x })
	_, err := Call1[string, uint32](s, "nope")
	if !errors.Is(err, segerr.ErrArgumentTypeMismatch) {
		t.Errorf("Call1() error = %v, want ErrArgumentTypeMismatch", err)
	}
}

func TestUnconsumedStackAtCall(t *testing.T) {
	s := New0()
	if err := Op0(s, func() uint32 { return 1 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0(s, func() uint32 { return 2 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	_, err := Call0[uint32](s)
	if !errors.Is(err, segerr.ErrUnconsumedStack) {
		t.Errorf("Call0() error = %v, want ErrUnconsumedStack", err)
	}
}

func TestJoinShapeErrorOnArgfulFragment(t *testing.T) {
	s := New0()
	if err := Op0(s, func() bool { return true }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	then := New1[uint32]()
	if err := Op1(then, func(x uint32) uint32 { return x }); err != nil {
		t.Fatalf("Op1() error = %v", err)
	}

	els := NewFragment(s)
	if err := Op0(els, func() uint32 { return 2 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	err := Join2(s, then, els)
	if !errors.Is(err, segerr.ErrJoinShapeError) {
		t.Errorf("Join2() error = %v, want ErrJoinShapeError", err)
	}
}

func TestPaddingAcrossU8ThenU64(t *testing.T) {
	s := New0()
	if err := Op0(s, func() uint8 { return 7 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op0(s, func() uint64 { return 0x1122334455667788 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	if err := Op2(s, func(a uint8, b uint64) uint64 { return uint64(a) + b }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}
	got, err := Call0[uint64](s)
	if err != nil {
		t.Fatalf("Call0() error = %v", err)
	}
	if got != 0x1122334455667788+7 {
		t.Errorf("Call0() = %#x, want %#x", got, uint64(0x1122334455667788+7))
	}
}

func TestDescribeReportsArgsAndStack(t *testing.T) {
	s := New1[uint32]()
	if err := Op0(s, func() string { return "x" }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	desc := s.Describe()
	if desc == "" {
		t.Fatalf("Describe() = %q, want non-empty", desc)
	}
}

func TestMaxClosureAlignmentRejectsOverAlignedResult(t *testing.T) {
	s := New0With(Limits{MaxClosureAlignment: 4, MaxStackDepth: 0})
	if err := Op0(s, func() uint32 { return 1 }); err != nil {
		t.Fatalf("Op0() error = %v, want nil (uint32 fits the 4-byte limit)", err)
	}
	err := Op0(s, func() uint64 { return 2 })
	if !errors.Is(err, segerr.ErrBuilderLimit) {
		t.Errorf("Op0() error = %v, want ErrBuilderLimit", err)
	}
}

func TestMaxStackDepthRejectsDeepening(t *testing.T) {
	s := New0With(Limits{MaxClosureAlignment: DefaultLimits.MaxClosureAlignment, MaxStackDepth: 1})
	if err := Op0(s, func() uint32 { return 1 }); err != nil {
		t.Fatalf("Op0() error = %v, want nil (first push within depth 1)", err)
	}
	err := Op0(s, func() uint32 { return 2 })
	if !errors.Is(err, segerr.ErrBuilderLimit) {
		t.Errorf("Op0() error = %v, want ErrBuilderLimit", err)
	}
}

func TestMaxStackDepthAppliesToJoinResult(t *testing.T) {
	s := New0With(Limits{MaxClosureAlignment: DefaultLimits.MaxClosureAlignment, MaxStackDepth: 1})
	if err := Op0(s, func() bool { return true }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	then := NewFragment(s)
	if err := Op0(then, func() uint32 { return 1 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}
	els := NewFragment(s)
	if err := Op0(els, func() uint32 { return 2 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	// The bool is popped and the joined result pushed, so the net depth
	// (1) stays within the limit.
	if err := Join2(s, then, els); err != nil {
		t.Fatalf("Join2() error = %v, want nil", err)
	}
}
