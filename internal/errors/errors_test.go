package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidArgument, "module name is required")
	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}

	if customErr.Code != CodeInvalidArgument {
		t.Errorf("Expected code %s, got %s", CodeInvalidArgument, customErr.Code)
	}

	if got, want := err.Error(), "INVALID_ARGUMENT: module name is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("exit status 1")
	wrappedErr := Wrap(CodeAborted, "install dependencies", originalErr)

	var customErr *E
	if !errors.As(wrappedErr, &customErr) {
		t.Fatal("Wrapped error should be of type *E")
	}

	if customErr.Op != "install dependencies" {
		t.Errorf("Expected operation %q, got %q", "install dependencies", customErr.Op)
	}

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Wrapped error should match original error")
	}

	if got, want := wrappedErr.Error(), "ABORTED: install dependencies: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapf(t *testing.T) {
	originalErr := errors.New("not found")
	wrappedErr := Wrapf(CodeUnavailable, "resolve nest", originalErr, "binary %s", "nest")

	if got, want := wrappedErr.Error(), "UNAVAILABLE: resolve nest: binary nest: not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapNested(t *testing.T) {
	inner := Wrap(CodeAborted, "npm", errors.New("exit status 1"))
	outer := Wrap(CodeAborted, "install dependencies", inner)

	if got, want := outer.Error(), "ABORTED: install dependencies: npm: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	mixed := Wrap(CodeInternal, "run", inner)
	if CodeOf(mixed) != CodeInternal {
		t.Errorf("CodeOf() = %s, want outermost code", CodeOf(mixed))
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"coded", Wrap(CodeAborted, "/bin/nest", errors.New("exit status 3")), "/bin/nest: exit status 3"},
		{"nested", Wrap(CodeAborted, "generate modules", New(CodeNotFound, "missing")), "generate modules: missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.err); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "custom error with code",
			err:      New(CodeInvalidArgument, "test"),
			expected: CodeInvalidArgument,
		},
		{
			name:     "wrapped error with code",
			err:      Wrap(CodeNotFound, "op", errors.New("test")),
			expected: CodeNotFound,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := CodeOf(tt.err)
			if code != tt.expected {
				t.Errorf("Expected code %q, got %q", tt.expected, code)
			}
			if tt.expected != "" && !IsCode(tt.err, tt.expected) {
				t.Errorf("IsCode(%v, %q) = false", tt.err, tt.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(CodeInternal, "operation", originalErr)

	if errors.Unwrap(wrappedErr) != originalErr {
		t.Error("Unwrap should return original error")
	}
}
