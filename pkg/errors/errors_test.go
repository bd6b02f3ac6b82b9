package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"bare", New(ErrCodeNotFound, "package %q", "leftpad"), `NOT_FOUND: package "leftpad"`},
		{"wrapped", Wrap(ErrCodeNetwork, errors.New("dial tcp: refused"), "GET %s", "registry"), "NETWORK_ERROR: GET registry: dial tcp: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeParse, cause, "decode packument")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestIs(t *testing.T) {
	notFound := New(ErrCodeNotFound, "no profile")
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"nil", nil, ErrCodeNotFound, false},
		{"plain error", errors.New("boom"), ErrCodeNotFound, false},
		{"direct match", notFound, ErrCodeNotFound, true},
		{"direct mismatch", notFound, ErrCodeTimeout, false},
		{"fmt wrapped", fmt.Errorf("lookup alice: %w", notFound), ErrCodeNotFound, true},
		{"inner code", Wrap(ErrCodeUpstreamStatus, notFound, "collaborators"), ErrCodeNotFound, true},
		{"outer code", Wrap(ErrCodeUpstreamStatus, notFound, "collaborators"), ErrCodeUpstreamStatus, true},
		{"cause is plain", Wrap(ErrCodeNetwork, errors.New("reset"), "x"), ErrCodeTimeout, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeTimeout, "deadline"), ErrCodeTimeout},
		{"outermost wins", Wrap(ErrCodeUpstreamStatus, New(ErrCodeNotFound, "x"), "y"), ErrCodeUpstreamStatus},
		{"through fmt", fmt.Errorf("ctx: %w", New(ErrCodeParse, "bad json")), ErrCodeParse},
		{"uncoded", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	_, err := SanitizeIdentifier("package", "!!!")
	if err == nil {
		t.Fatal("expected an error for an all-invalid identifier")
	}
	if got := UserMessage(err); got == err.Error() {
		t.Errorf("UserMessage should drop the code prefix, got %q", got)
	}
	if got := UserMessage(errors.New("raw")); got != "raw" {
		t.Errorf("UserMessage(plain) = %q, want raw", got)
	}
}

func TestRateLimitedError(t *testing.T) {
	tests := []struct {
		retryAfter int
		want       string
	}{
		{0, "rate limited"},
		{42, "rate limited: retry after 42 seconds"},
	}
	for _, tt := range tests {
		err := &RateLimitedError{RetryAfter: tt.retryAfter}
		if got := err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if err.Code() != ErrCodeRateLimited {
			t.Errorf("Code() = %s", err.Code())
		}
	}
}
