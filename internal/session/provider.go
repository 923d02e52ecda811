// Package session holds the process-wide view of who the current user is
// and which audits exist. Screens read snapshots; the only way to change
// the state is a full refresh.
package session

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/backend"
)

// UserSource resolves the session to an identity.
type UserSource interface {
	CurrentUser(ctx context.Context) (audit.User, error)
}

// ReportSource lists the audits visible to the session.
type ReportSource interface {
	ListReports(ctx context.Context) ([]audit.Report, error)
}

// Snapshot is a point-in-time, read-only copy of the provider state.
type Snapshot struct {
	User          audit.User
	Authenticated bool
	Reports       []audit.Report
	Loading       bool
}

// Result reports how a refresh ended. Unauthorized asks the caller to send
// the browser back to the entry screen; any other failure is surfaced as a
// notification while the app degrades to a no-data state.
type Result struct {
	Unauthorized bool
	Err          error
}

// Provider caches the user and report list. Overlapping Refresh calls are
// deliberately not serialized: the data is read-mostly and the last response
// to settle wins, with a manual refresh as the user's recourse.
type Provider struct {
	users   UserSource
	reports ReportSource
	logger  hclog.Logger

	mu            sync.Mutex
	user          audit.User
	authenticated bool
	list          []audit.Report
	inflight      int
}

// NewProvider wires the provider to its two backend sources.
func NewProvider(users UserSource, reports ReportSource, logger hclog.Logger) *Provider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Provider{users: users, reports: reports, logger: logger}
}

// Refresh fetches the user profile and then the report list. Both fetches
// run outside the lock; state is written only once the outcome is known, so
// a racing refresh overwrites rather than interleaves.
func (p *Provider) Refresh(ctx context.Context) Result {
	p.mu.Lock()
	p.inflight++
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inflight--
		p.mu.Unlock()
	}()

	user, err := p.users.CurrentUser(ctx)
	if err != nil {
		p.clear()
		unauthorized := backend.IsUnauthorized(err)
		if unauthorized {
			p.logger.Info("session expired, sending user back to entry")
		} else {
			p.logger.Error("session refresh failed fetching user", "error", err)
		}
		return Result{Unauthorized: unauthorized, Err: err}
	}

	reports, err := p.reports.ListReports(ctx)
	if err != nil {
		p.clear()
		unauthorized := backend.IsUnauthorized(err)
		if !unauthorized {
			p.logger.Error("session refresh failed fetching reports", "error", err)
		}
		return Result{Unauthorized: unauthorized, Err: err}
	}

	p.mu.Lock()
	p.user = user
	p.authenticated = true
	p.list = reports
	p.mu.Unlock()
	return Result{}
}

// Snapshot returns a copy of the current state.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		User:          p.user,
		Authenticated: p.authenticated,
		Reports:       append([]audit.Report(nil), p.list...),
		Loading:       p.inflight > 0,
	}
}

// Report looks up one cached report by id.
func (p *Provider) Report(reportID int64) (audit.Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, report := range p.list {
		if report.ID == reportID {
			return report, true
		}
	}
	return audit.Report{}, false
}

func (p *Provider) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = audit.User{}
	p.authenticated = false
	p.list = nil
}
