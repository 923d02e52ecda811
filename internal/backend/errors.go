package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any 401 regardless of the endpoint's own
// error body. Callers match on it to trigger re-authentication flows; the
// message is part of that contract.
var ErrUnauthorized = errors.New("Unauthorized, try logging in again")

// StatusError is any other non-2xx backend response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP Error %d", e.StatusCode)
}

// ValidationError is a client-side precondition failure caught before any
// network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is the distinguished 401 error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation reports whether err is a client-side precondition failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func statusError(code int) error {
	if code == 401 {
		return ErrUnauthorized
	}
	return &StatusError{StatusCode: code}
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}
