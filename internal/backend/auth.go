package backend

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/auditgate/portal/internal/audit"
)

// AuthClient reads the authenticated identity from the auth service.
type AuthClient struct {
	http *resty.Client
}

type userEnvelope struct {
	User audit.User `json:"user"`
}

// CurrentUser resolves the session cookie to a user record.
func (c *AuthClient) CurrentUser(ctx context.Context) (audit.User, error) {
	payload, err := callJSON[userEnvelope](ctx, c.http, http.MethodGet, "/api/data/user", nil)
	if err != nil {
		return audit.User{}, err
	}
	return payload.User, nil
}
