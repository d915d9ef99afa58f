package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestE_NilError(t *testing.T) {
	if err := E("op", Invalid, nil); err != nil {
		t.Errorf("E() with nil error = %v, want nil", err)
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op and wrapped error",
			err:  &Error{Op: "registry.Lookup", Kind: NotFound, Err: errors.New("entry not found")},
			want: "registry.Lookup: entry not found",
		},
		{
			name: "no op",
			err:  &Error{Kind: Invalid, Err: errors.New("bad input")},
			want: "bad input",
		},
		{
			name: "no wrapped error",
			err:  &Error{Op: "registry.Register"},
			want: "registry.Register",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "wrapped kind", err: E("op", Conflict, base), want: Conflict},
		{name: "double wrapped", err: fmt.Errorf("outer: %w", E("op", Exhausted, base)), want: Exhausted},
		{name: "plain error", err: base, want: Unknown},
		{name: "nil", err: nil, want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpOf(t *testing.T) {
	if got := OpOf(E("registry.Register", Invalid, errors.New("x"))); got != "registry.Register" {
		t.Errorf("OpOf() = %q, want registry.Register", got)
	}
	if got := OpOf(errors.New("plain")); got != "" {
		t.Errorf("OpOf() on plain error = %q, want empty", got)
	}
}

func TestUnwrap(t *testing.T) {
	base := errors.New("base")
	err := E("op", NotFound, base)
	if !errors.Is(err, base) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Unknown, "Unknown"},
		{NotFound, "NotFound"},
		{Conflict, "Conflict"},
		{Invalid, "Invalid"},
		{Unavailable, "Unavailable"},
		{Exhausted, "Exhausted"},
		{Internal, "Internal"},
		{Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
