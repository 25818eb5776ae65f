package segerr

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestStackTypeMismatchWrapsSentinelAndDetail(t *testing.T) {
	err := StackTypeMismatch(1, reflect.TypeOf(uint32(0)), reflect.TypeOf(""))
	if !errors.Is(err, ErrStackTypeMismatch) {
		t.Fatalf("errors.Is(%v, ErrStackTypeMismatch) = false", err)
	}
	if !strings.Contains(err.Error(), "uint32") || !strings.Contains(err.Error(), "string") {
		t.Errorf("error message missing type detail: %v", err)
	}
}

func TestUserErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := UserError(cause)

	if !errors.Is(err, ErrUserError) {
		t.Fatalf("errors.Is(%v, ErrUserError) = false", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(%v, cause) = false, want true", err)
	}
}

func TestArityMismatchMessage(t *testing.T) {
	err := ArityMismatch(2, 1)
	if !errors.Is(err, ErrArityMismatch) {
		t.Fatalf("errors.Is(%v, ErrArityMismatch) = false", err)
	}
	if !strings.Contains(err.Error(), "2") || !strings.Contains(err.Error(), "1") {
		t.Errorf("error message missing arity detail: %v", err)
	}
}

func TestJoinShapeErrorCarriesReason(t *testing.T) {
	err := JoinShapeError("branches disagree")
	if !errors.Is(err, ErrJoinShapeError) {
		t.Fatalf("errors.Is(%v, ErrJoinShapeError) = false", err)
	}
	if !strings.Contains(err.Error(), "branches disagree") {
		t.Errorf("error message missing reason: %v", err)
	}
}
