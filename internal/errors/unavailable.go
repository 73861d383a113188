package errors

import (
	"errors"
	"fmt"
)

// ErrUnavailable is matched by errors.Is for any UnavailableError.
var ErrUnavailable = errors.New("record store unavailable")

// UnavailableError reports that the database file could not be opened when the
// store was initialized. A store in this state never recovers on its own.
type UnavailableError struct {
	Path  string
	Cause error
}

func (e *UnavailableError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("record store unavailable (%s)", e.Path)
	}
	return fmt.Sprintf("record store unavailable (%s): %v", e.Path, e.Cause)
}

// Unwrap exposes the initialization failure.
func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrUnavailable) match.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// NewUnavailableError creates an UnavailableError for the given database path.
func NewUnavailableError(path string, cause error) *UnavailableError {
	return &UnavailableError{Path: path, Cause: cause}
}

// IsUnavailableError reports whether err is an UnavailableError (even when wrapped).
func IsUnavailableError(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}
