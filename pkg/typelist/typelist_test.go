package typelist

import (
	"reflect"
	"testing"
)

func TestConsTypesHeadFirst(t *testing.T) {
	l := Cons[uint32, Cons[bool, Nil]]{}
	got := l.Types()
	want := []reflect.Type{reflect.TypeOf(uint32(0)), reflect.TypeOf(false)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestHeadAndReverse(t *testing.T) {
	l := Cons[uint32, Cons[bool, Nil]]{}
	if h := Head(l); h != reflect.TypeOf(uint32(0)) {
		t.Errorf("Head() = %v, want uint32", h)
	}
	rev := Reverse(l)
	want := []reflect.Type{reflect.TypeOf(false), reflect.TypeOf(uint32(0))}
	if !reflect.DeepEqual(rev, want) {
		t.Errorf("Reverse() = %v, want %v", rev, want)
	}
}

func TestAtAndTake(t *testing.T) {
	l := Cons[uint32, Cons[bool, Cons[string, Nil]]]{}
	if at := At(l, 1); at != reflect.TypeOf(false) {
		t.Errorf("At(1) = %v, want bool", at)
	}
	if at := At(l, 5); at != nil {
		t.Errorf("At(5) = %v, want nil", at)
	}
	take := Take(l, 2)
	want := []reflect.Type{reflect.TypeOf(uint32(0)), reflect.TypeOf(false)}
	if !reflect.DeepEqual(take, want) {
		t.Errorf("Take(2) = %v, want %v", take, want)
	}
}

func TestEqual(t *testing.T) {
	l := Cons[uint32, Cons[bool, Nil]]{}
	ids := []reflect.Type{reflect.TypeOf(uint32(0)), reflect.TypeOf(false)}
	if !Equal(l, ids) {
		t.Error("Equal() = false, want true")
	}
	if Equal(l, []reflect.Type{reflect.TypeOf(uint32(0))}) {
		t.Error("Equal() = true for mismatched length, want false")
	}
}

func TestNilListIsEmpty(t *testing.T) {
	var n Nil
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
	if Head(n) != nil {
		t.Errorf("Head() = %v, want nil", Head(n))
	}
}
