package dashboard

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/session"
	"github.com/auditgate/portal/internal/web/platform/flash"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

// SessionDirectory is the slice of the session provider the dashboard reads.
type SessionDirectory interface {
	Snapshot() session.Snapshot
	Refresh(ctx context.Context) session.Result
}

type handlers struct {
	modulehandler.Base

	directory SessionDirectory
	loginURL  string
	logger    hclog.Logger
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	snapshot := h.directory.Snapshot()
	if !snapshot.Authenticated {
		result := h.directory.Refresh(h.RequestContext(r))
		if result.Unauthorized {
			httpx.WriteRedirect(w, r, h.entryLocation())
			return
		}
		if result.Err != nil {
			h.logger.Warn("dashboard is rendering without session data", "error", result.Err)
			flash.Write(w, r, flash.NoticeError("Could not reach the audit services. Showing what we have."))
		}
		snapshot = h.directory.Snapshot()
	}

	view := buildDashboardView(snapshot.Reports)
	header := &webtemplates.AppMainHeader{
		Title:    "Dashboard",
		Subtitle: greeting(snapshot),
	}
	h.WritePage(w, r, "Dashboard", http.StatusOK, header, webtemplates.AppMainLayoutOptions{Wide: true}, webtemplates.DashboardPage(view))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) entryLocation() string {
	if h.loginURL != "" {
		return h.loginURL
	}
	return routepath.Login
}

func greeting(snapshot session.Snapshot) string {
	if snapshot.User.Name == "" {
		return "Your audit engagements at a glance."
	}
	return "Welcome back, " + snapshot.User.Name + "."
}
