package errors

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"express", "express"},
		{"../../etc", "....etc"},
		{"@babel/core", "babelcore"},
		{"lodash.merge", "lodash.merge"},
		{"my_pkg-2", "my_pkg-2"},
		{"a b\tc\n", "abc"},
		{"évil", "vil"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, in := range []string{"../../etc", "@scope/pkg", "x?y=z#frag"} {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	got, err := SanitizeIdentifier("package name", "left-pad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "left-pad" {
		t.Errorf("got %q, want %q", got, "left-pad")
	}

	_, err = SanitizeIdentifier("package name", "///")
	if !Is(err, ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
