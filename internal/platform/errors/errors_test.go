package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("write: %w", New(CodeTargetTooSmall, "target too small"))
	if !HasCode(err, CodeTargetTooSmall) {
		t.Fatal("expected wrapped error to match its code")
	}
	if HasCode(err, CodeWriteFailed) {
		t.Fatal("expected different code not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(CodeWriteFailed, "write payload", io.ErrShortWrite)
	if !stderrors.Is(err, io.ErrShortWrite) {
		t.Fatal("expected cause to be reachable")
	}
	if got, want := err.Error(), "write payload: short write"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestErrorRendersMetadataSorted(t *testing.T) {
	err := WithMetadata(CodeConfigInvalid, "invalid range", map[string]string{
		"min":   "5",
		"field": "stars",
		"max":   "1",
	})
	want := "invalid range (field=stars, max=1, min=5)"
	if got := err.Error(); got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(io.EOF); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
	err := fmt.Errorf("outer: %w", New(CodeInsufficientSpace, "disk full"))
	if got := GetCode(err); got != CodeInsufficientSpace {
		t.Fatalf("code = %q, want %q", got, CodeInsufficientSpace)
	}
}

func TestCodeClass(t *testing.T) {
	tests := []struct {
		code Code
		want Class
	}{
		{CodeConfigInvalid, ClassConfig},
		{CodeUnknownPreset, ClassConfig},
		{CodeTargetTooSmall, ClassIO},
		{CodeSizeMismatch, ClassIO},
		{CodeSchemaUnsupported, ClassIO},
		{CodeInsufficientSpace, ClassResource},
		{CodeSparseUnsupported, ClassResource},
		{CodeSeedUnavailable, ClassInternal},
		{CodeUnknown, ClassInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Class(); got != tt.want {
			t.Fatalf("%s class = %q, want %q", tt.code, got, tt.want)
		}
	}
}
