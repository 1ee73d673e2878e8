package theory

import (
	"errors"
	"testing"
)

func TestWrapExternalNilIsNil(t *testing.T) {
	if got := wrapExternal("find", nil); got != nil {
		t.Fatalf("wrapExternal(op, nil) = %v, want nil", got)
	}
}

func TestWrapExternalAnnotatesAndPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	wrapped := wrapExternal("assert_bound", cause)
	if wrapped == nil {
		t.Fatal("expected a non-nil wrapped error")
	}
	if got := wrapped.Error(); got == cause.Error() {
		t.Fatalf("expected wrapExternal to annotate the message, got unchanged %q", got)
	}
	type causer interface{ Cause() error }
	c, ok := wrapped.(causer)
	if !ok {
		t.Fatal("expected the wrapped error to expose Cause() (github.com/pkg/errors)")
	}
	if c.Cause() != cause {
		t.Fatalf("Cause() = %v, want the original error", c.Cause())
	}
}

func TestErrorKindsFormatArgs(t *testing.T) {
	err := ErrUnsupportedRegex.New("backreference")
	if err == nil {
		t.Fatal("expected a non-nil error")
	}
	want := "unsupported regex expression: backreference"
	if got := err.Error(); got != want {
		t.Errorf("ErrUnsupportedRegex.New(...) = %q, want %q", got, want)
	}
	if !ErrUnsupportedRegex.Is(err) {
		t.Error("expected ErrUnsupportedRegex.Is to recognize its own instance")
	}
}
