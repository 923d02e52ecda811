package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// WaitlistClient posts signup requests to the waitlist service.
type WaitlistClient struct {
	http *resty.Client
}

// Join registers an email address on the product waitlist.
func (c *WaitlistClient) Join(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return validationError("email is required")
	}
	body := map[string]string{"email": email}
	_, err := call(ctx, c.http, http.MethodPost, "/", body)
	return err
}
