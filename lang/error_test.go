package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	wrapped := ErrBadQuotes.Wrap(io.ErrUnexpectedEOF).With(slog.String("lhs", `a."b`))

	if !errors.Is(wrapped, ErrBadQuotes) {
		t.Error("wrapped error does not match its sentinel")
	}

	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Error("wrapped error does not match its cause")
	}

	if errors.Is(wrapped, ErrEmptyKey) {
		t.Error("wrapped error matches an unrelated sentinel")
	}

	if errors.Is(ErrBadQuotes, wrapped) {
		t.Error("sentinel matches an error derived from it")
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", NewError("boom"), "boom"},
		{"message and cause", NewError("boom").Wrap(io.EOF), "boom: EOF"},
		{"cause only", WrapError(io.EOF), "EOF"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_With(t *testing.T) {
	base := ErrReadInput.With(slog.String("file", "a.unit"))
	more := base.With(slog.Int("line", 3))

	if len(base.Attrs()) != 1 || len(more.Attrs()) != 2 {
		t.Errorf("attrs = %d, %d; want 1, 2", len(base.Attrs()), len(more.Attrs()))
	}

	if len(ErrReadInput.Attrs()) != 0 {
		t.Error("With modified the sentinel")
	}

	if WrapError(more) != more {
		t.Error("WrapError did not return the existing *Error")
	}

	v := more.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue() kind = %v, want group", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}

	for _, k := range []string{"error", "file", "line"} {
		if !keys[k] {
			t.Errorf("LogValue() missing %q", k)
		}
	}
}
