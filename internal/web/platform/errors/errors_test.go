package errors

import (
	"net/http"
	"testing"

	"github.com/auditgate/portal/internal/backend"
)

func TestFromBackendMapsUnauthorized(t *testing.T) {
	t.Parallel()

	err := FromBackend(backend.ErrUnauthorized)
	if !IsUnauthorized(err) {
		t.Fatalf("kind = %s", KindOf(err))
	}
	if err.Error() != "Unauthorized, try logging in again" {
		t.Fatalf("message = %q", err.Error())
	}
	if got := HTTPStatus(err); got != http.StatusUnauthorized {
		t.Fatalf("status = %d", got)
	}
}

func TestFromBackendMapsStatusErrors(t *testing.T) {
	t.Parallel()

	err := FromBackend(&backend.StatusError{StatusCode: http.StatusNotFound})
	if got := KindOf(err); got != KindNotFound {
		t.Fatalf("kind = %s", got)
	}

	err = FromBackend(&backend.StatusError{StatusCode: http.StatusBadGateway})
	if got := KindOf(err); got != KindUnavailable {
		t.Fatalf("kind = %s", got)
	}
	if err.Error() != "HTTP Error 502" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestFromBackendMapsValidation(t *testing.T) {
	t.Parallel()

	err := FromBackend(&backend.ValidationError{Message: "summary must not be empty"})
	if got := HTTPStatus(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d", got)
	}
	if err.Error() != "summary must not be empty" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestHTTPStatusDefaults(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("status = %d", got)
	}
	if got := HTTPStatus(E(KindForbidden, "no")); got != http.StatusForbidden {
		t.Fatalf("status = %d", got)
	}
}
