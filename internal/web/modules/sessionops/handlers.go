package sessionops

import (
	"context"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/session"
	"github.com/auditgate/portal/internal/web/platform/flash"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/platform/sessioncookie"
	"github.com/auditgate/portal/internal/web/routepath"
)

// SessionDirectory is the slice of the session provider this module drives.
type SessionDirectory interface {
	Refresh(ctx context.Context) session.Result
}

type handlers struct {
	modulehandler.Base

	directory SessionDirectory
	loginURL  string
	logger    hclog.Logger
}

// handleRefresh re-fetches the user and report list on demand. Because
// overlapping refreshes are last-to-settle-wins, this is also the user's
// recourse after a racing refresh left stale data on screen.
func (h handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	result := h.directory.Refresh(h.RequestContext(r))
	if result.Unauthorized {
		sessioncookie.Clear(w)
		httpx.WriteRedirect(w, r, h.entryLocation())
		return
	}
	if result.Err != nil {
		h.logger.Warn("manual session refresh failed", "error", result.Err)
		flash.Write(w, r, flash.NoticeError("Refresh failed. The audit services did not respond."))
		httpx.WriteRedirect(w, r, returnLocation(r))
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Session refreshed."))
	httpx.WriteRedirect(w, r, returnLocation(r))
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

// returnLocation sends the browser back where it came from, but only for
// same-app paths; anything else lands on the dashboard.
func returnLocation(r *http.Request) string {
	referer := strings.TrimSpace(r.Header.Get("Referer"))
	if strings.HasPrefix(referer, routepath.AppPrefix) {
		return referer
	}
	if referer != "" {
		if idx := strings.Index(referer, routepath.AppPrefix); idx > 0 {
			return referer[idx:]
		}
	}
	return routepath.AppDashboard
}
