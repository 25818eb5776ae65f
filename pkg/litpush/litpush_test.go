package litpush

import (
	"testing"

	"github.com/segmentrt/segment/pkg/dynseg"
)

func TestPushU32ThenCallRoundTrips(t *testing.T) {
	s := dynseg.New0()
	if err := Push(s, 42, U32); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	got, err := dynseg.Call0[uint32](s)
	if err != nil {
		t.Fatalf("Call0() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Call0() = %d, want 42", got)
	}
}

func TestPushFloatF64RoundTrips(t *testing.T) {
	s := dynseg.New0()
	if err := PushFloat(s, 3.5, F64); err != nil {
		t.Fatalf("PushFloat() error = %v", err)
	}
	got, err := dynseg.Call0[float64](s)
	if err != nil {
		t.Fatalf("Call0() error = %v", err)
	}
	if got != 3.5 {
		t.Errorf("Call0() = %v, want 3.5", got)
	}
}

func TestPushRejectsNonIntegerSuffix(t *testing.T) {
	s := dynseg.New0()
	if err := Push(s, 1, F32); err == nil {
		t.Fatalf("Push() error = nil, want non-nil")
	}
}

func TestMixedWidthLiteralsChainThroughOp2(t *testing.T) {
	s := dynseg.New0()
	if err := Push(s, 7, U8); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := Push(s, 1000, U64); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := dynseg.Op2(s, func(a uint8, b uint64) uint64 { return uint64(a) + b }); err != nil {
		t.Fatalf("Op2() error = %v", err)
	}
	got, err := dynseg.Call0[uint64](s)
	if err != nil {
		t.Fatalf("Call0() error = %v", err)
	}
	if got != 1007 {
		t.Errorf("Call0() = %d, want 1007", got)
	}
}
