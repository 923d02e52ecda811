// Package authctx carries the browser session credential through contexts so
// backend clients can forward it on outbound calls.
package authctx

import (
	"context"
	"strings"
)

type tokenKey struct{}

// WithSessionToken returns a context carrying the session cookie value.
func WithSessionToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

// SessionToken extracts the session cookie value, or "" when absent.
func SessionToken(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
