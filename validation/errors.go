// Package validation contains the error type used when input to the client
// or the fixture factory is missing or invalid. Validation errors are always
// raised locally, before any remote call is made.
package validation

import (
	"errors"
	"strings"
)

// Error represents an error where input is missing or invalid.
type Error struct {
	// Field is the name of the offending input, may be empty.
	Field string
	msg   string
}

func (e *Error) Error() string {
	return e.msg
}

// New creates a new validation error for the given field.
func New(field string, msg string) *Error {
	return &Error{Field: field, msg: msg}
}

// Is checks if the error is or wraps a validation error.
func Is(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// RequireText returns err if value is empty or only whitespace.
func RequireText(value string, err error) error {
	if strings.TrimSpace(value) == "" {
		return err
	}

	return nil
}
