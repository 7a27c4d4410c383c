// Package common defines shared constants and the error taxonomy used across
// the authkeeper client layers. Callers should use errors.Is for sentinel
// values and errors.As for the typed errors.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the backend rejected the bearer token on an
	// authenticated call (missing, expired or invalid).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable means a transport-level failure: timeout, DNS, refused
	// connection. The request may never have reached the backend.
	ErrUnavailable = errors.New("server unavailable")
)

// FieldError reports a client-side validation failure for a single input
// field. It is returned before any network call is made.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewFieldError constructs a FieldError for the given field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// StateError reports a password-recovery transition attempted out of order.
// It indicates a caller bug rather than bad user input, so it is a distinct
// type that should never be swallowed silently.
type StateError struct {
	Expected string
	Actual   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("recovery flow in state %q, expected %q", e.Actual, e.Expected)
}

// RemoteError carries a backend business rejection (duplicate email, wrong
// password, wrong OTP). Detail is surfaced to the caller verbatim.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server rejected request (HTTP %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server rejected request (HTTP %d)", e.StatusCode)
}
