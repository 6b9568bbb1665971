package api

import (
	"errors"
	"fmt"
	"strings"
)

// AuthError indicates that the backend rejected the session token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ErrNotFound is returned when the backend reports a missing resource,
// typically an item deleted by another session.
var ErrNotFound = errors.New("not found")

// FieldError is a single structured validation failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the structured field-level details returned by
// the backend when a submission is rejected. Client-side validation
// produces the same type so both surface identically.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// fallbackMessage is shown when a failure carries no usable detail.
const fallbackMessage = "something went wrong, please try again"

// Message extracts a human-readable message from an operation error,
// falling back to a generic string when the error chain has nothing
// better to offer.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *serverError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return fallbackMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}

// serverError is a non-2xx response without structured validation detail.
type serverError struct {
	Status  int
	Message string
}

func (e *serverError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}
