// Package errors classifies the failures tipjar's upstream clients produce.
//
// Every client failure carries a [Code] so callers can branch on the kind of
// failure without string matching. Codes nest: a wrapped NOT_FOUND inside an
// UPSTREAM_STATUS still satisfies [Is] for both.
//
//	NETWORK_ERROR, TIMEOUT   transport failed or the deadline passed
//	UPSTREAM_STATUS          unexpected HTTP status
//	PARSE_ERROR              body was not the JSON shape we expected
//	NOT_FOUND                404, or a profile that does not exist
//	INVALID_INPUT            identifier empty after [Sanitize]
//	RATE_LIMITED             GitHub quota exhausted
//
// The funding resolver swallows all of these. They reach users only as CLI
// exit messages for invalid input.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"

	ErrCodeNetwork        Code = "NETWORK_ERROR"
	ErrCodeTimeout        Code = "TIMEOUT"
	ErrCodeUpstreamStatus Code = "UPSTREAM_STATUS"
	ErrCodeParse          Code = "PARSE_ERROR"
	ErrCodeRateLimited    Code = "RATE_LIMITED"
	ErrCodeInternal       Code = "INTERNAL_ERROR"
)

// Error is a coded failure with an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage is the message of the outermost *Error without its code
// prefix or cause. Uncoded errors are returned verbatim.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError reports an exhausted upstream quota. RetryAfter is in
// seconds and zero when unknown.
type RateLimitedError struct {
	RetryAfter int
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
