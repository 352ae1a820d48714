package streams

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/levelfourab/xd-go/validation"
)

// ErrNameRequired is used when a stream name is required but not provided.
var ErrNameRequired = validation.New("name", "stream name is required")

// ErrDefinitionRequired is used when a stream definition is required but not
// provided.
var ErrDefinitionRequired = validation.New("definition", "stream definition is required")

// IsValidationError checks if the error was caused by invalid input.
func IsValidationError(err error) bool {
	return validation.Is(err)
}

// ConflictError is returned when creating a stream with a name that already
// exists on the server.
type ConflictError struct {
	// Name of the stream that already exists.
	Name string
	// Message is the message reported by the server.
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return "stream " + strconv.Quote(e.Name) + " already exists: " + e.Message
	}

	return "stream " + strconv.Quote(e.Name) + " already exists"
}

func (e *ConflictError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok
}

// IsConflict checks if the error is or wraps a [*ConflictError].
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// TransportError is returned when the server could not be reached or
// responded with an unexpected status.
type TransportError struct {
	// Op is the operation that failed, such as "create" or "list".
	Op string
	// StatusCode is the HTTP status returned by the server, zero if no
	// response was received.
	StatusCode int
	// Message is the message reported by the server, if any.
	Message string
	// Err is the underlying error, if any.
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s streams: server responded %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s streams: server responded %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s streams: %s", e.Op, e.Err)
	}

	return e.Op + " streams: transport failure"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// IsTransportError checks if the error is or wraps a [*TransportError].
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
