package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/platform/sessioncookie"
)

func newTestHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return handler
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "auditor-1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestNewServerRequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Config{}); err == nil {
		t.Fatal("expected error for missing http address")
	}
}

func TestHandlerServesHealth(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, Config{})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("status = %d body = %q", rr.Code, rr.Body.String())
	}
}

func TestHandlerRedirectsAnonymousAppRequest(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, Config{Dependencies: modules.Dependencies{
		LoginURL: "https://auth.example.com/login",
	}})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "https://auth.example.com/login" {
		t.Fatalf("location = %q", got)
	}
}

func TestHandlerTreatsExpiredSessionAsSignedOut(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, Config{})
	req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	req.AddCookie(&http.Cookie{
		Name:  sessioncookie.Name,
		Value: signedToken(t, time.Now().Add(-time.Hour)),
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/login" {
		t.Fatalf("location = %q", got)
	}
}

func TestViewerResolverWithoutSessionProvider(t *testing.T) {
	t.Parallel()

	resolve := viewerResolver(modules.Dependencies{})
	viewer := resolve(httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))
	if viewer.DisplayName != "" || viewer.IsAuditor {
		t.Fatalf("viewer = %+v", viewer)
	}
}
