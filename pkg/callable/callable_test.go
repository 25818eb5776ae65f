package callable

import (
	"testing"

	"github.com/segmentrt/segment/pkg/dynseg"
	"github.com/segmentrt/segment/pkg/segment"
)

func TestInvoke1AdaptsSegment1(t *testing.T) {
	s := segment.New1[uint32, uint32]()
	if err := dynseg.Op1(s.Dyn(), func(x uint32) uint32 { return x + 1 }); err != nil {
		t.Fatalf("Op1() error = %v", err)
	}

	var c Callable1[uint32, uint32] = s
	got, err := Invoke1[uint32, uint32](c, 41)
	if err != nil {
		t.Fatalf("Invoke1() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Invoke1() = %d, want 42", got)
	}
}

func TestInvoke0AdaptsSegment0(t *testing.T) {
	s := segment.New0[uint32]()
	if err := dynseg.Op0(s.Dyn(), func() uint32 { return 7 }); err != nil {
		t.Fatalf("Op0() error = %v", err)
	}

	var c Callable0[uint32] = s
	got, err := Invoke0[uint32](c)
	if err != nil {
		t.Fatalf("Invoke0() error = %v", err)
	}
	if got != 7 {
		t.Errorf("Invoke0() = %d, want 7", got)
	}
}
