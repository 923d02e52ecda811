package landing

import (
	"context"

	"github.com/auditgate/portal/internal/backend"
	"github.com/auditgate/portal/internal/web/modules"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
)

type backendGateway struct {
	waitlist *backend.WaitlistClient
}

func newBackendGateway(deps modules.Dependencies) WaitlistGateway {
	if deps.Backend == nil {
		return nil
	}
	return backendGateway{waitlist: deps.Backend.Waitlist}
}

func (g backendGateway) Join(ctx context.Context, email string) error {
	if g.waitlist == nil {
		return apperrors.E(apperrors.KindUnavailable, "waitlist is not available right now")
	}
	if err := g.waitlist.Join(ctx, email); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}
