package landing

import (
	"context"
	"strings"

	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
)

// WaitlistGateway posts waitlist signups to the backend.
type WaitlistGateway interface {
	Join(ctx context.Context, email string) error
}

type service struct {
	waitlist WaitlistGateway
}

func newService(gateway WaitlistGateway) service {
	return service{waitlist: gateway}
}

func (s service) joinWaitlist(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.E(apperrors.KindInvalidInput, "enter a valid email address")
	}
	if s.waitlist == nil {
		return apperrors.E(apperrors.KindUnavailable, "waitlist is not available right now")
	}
	return s.waitlist.Join(ctx, email)
}
