package dashboard

import (
	"context"
	"errors"

	"github.com/auditgate/portal/internal/session"
)

var errUnreachable = errors.New("connection refused")

type fakeDirectory struct {
	snapshot      session.Snapshot
	refreshResult session.Result
	refreshCalls  int

	// afterRefresh replaces the snapshot once Refresh runs, mimicking the
	// provider populating its cache.
	afterRefresh *session.Snapshot
}

func (f *fakeDirectory) Snapshot() session.Snapshot {
	return f.snapshot
}

func (f *fakeDirectory) Refresh(context.Context) session.Result {
	f.refreshCalls++
	if f.afterRefresh != nil {
		f.snapshot = *f.afterRefresh
	}
	return f.refreshResult
}
