// Package errors defines web typed application errors.
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/auditgate/portal/internal/backend"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// FromBackend converts a backend client error into a typed web error,
// preserving the backend's user-facing message.
func FromBackend(err error) error {
	if err == nil {
		return nil
	}
	if backend.IsUnauthorized(err) {
		return Error{Kind: KindUnauthorized, Message: err.Error()}
	}
	if backend.IsValidation(err) {
		return Error{Kind: KindInvalidInput, Message: err.Error()}
	}
	var statusErr *backend.StatusError
	if stderrors.As(err, &statusErr) {
		kind := KindUnavailable
		if statusErr.StatusCode == http.StatusNotFound {
			kind = KindNotFound
		}
		return Error{Kind: kind, Message: err.Error()}
	}
	return Error{Kind: KindUnavailable, Message: err.Error()}
}

// KindOf extracts the Kind from an error, defaulting to unknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// IsUnauthorized reports whether the error maps to a 401.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
