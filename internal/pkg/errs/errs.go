package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error in this package unwraps to exactly one of them,
// so callers classify failures with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")

	ErrForbidden         = errors.New("forbidden")
	ErrIllegalTransition = errors.New("illegal transition")
	ErrIneligibleDriver  = errors.New("ineligible driver")
	ErrConflict          = errors.New("conflict")

	// ErrMalformedInput groups the value errors. ValueIsRequiredError,
	// ValueIsInvalidError and ValueIsOutOfRangeError all match it.
	ErrMalformedInput = errors.New("malformed input")
)

// sanitize renders a value on a single line so user supplied input cannot
// break log lines or response bodies.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}
