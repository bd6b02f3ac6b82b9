package errors

import "regexp"

// unsafeChars matches everything outside the identifier alphabet shared by
// npm package names and GitHub logins/repositories.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Sanitize removes every character outside [A-Za-z0-9_.-] from s.
//
// Sanitized values are safe to interpolate into outbound URLs and to use as
// cache keys. Sanitize is idempotent, so layers may apply it independently:
//
//	Sanitize("../../etc") // "....etc"
//	Sanitize("@babel/core") // "babelcore"
func Sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "")
}

// SanitizeIdentifier sanitizes s and rejects values that are empty afterwards.
// what names the identifier in the returned error (e.g. "package name").
func SanitizeIdentifier(what, s string) (string, error) {
	clean := Sanitize(s)
	if clean == "" {
		return "", New(ErrCodeInvalidInput, "%s %q has no valid characters", what, s)
	}
	return clean, nil
}
