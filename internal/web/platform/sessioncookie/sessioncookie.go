// Package sessioncookie centralizes web session cookie behavior.
//
// The auth service issues the session as a JWT cookie. The portal never
// verifies the signature (it has no key material); it only inspects the
// expiry claim to skip doomed backend calls. The backend remains the
// authority on token validity.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Name is the canonical session cookie name shared with the auth service.
const Name = "ag_session"

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Expired reports whether the token carries an expiry claim in the past.
// Opaque or malformed tokens report false; they are forwarded as-is and the
// backend rejects them with a 401 if needed.
func Expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil || parsed == nil {
		return false
	}
	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(now)
}

// Clear expires the session cookie for the current request context.
func Clear(w http.ResponseWriter) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
