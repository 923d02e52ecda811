package landing

import (
	"net/http"
	"strings"

	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/platform/flash"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	"github.com/auditgate/portal/internal/web/platform/pagerender"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

type handlers struct {
	service  service
	loginURL string
}

func newHandlers(s service, deps modules.Dependencies) handlers {
	return handlers{service: s, loginURL: strings.TrimSpace(deps.LoginURL)}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	pagerender.WritePublicPage(w, r, "AuditGate", http.StatusOK, webtemplates.LandingPage())
}

func (h handlers) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Write(w, r, flash.NoticeError("could not read the form submission"))
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	if err := h.service.joinWaitlist(httpx.RequestContext(r), r.PostFormValue("email")); err != nil {
		flash.Write(w, r, flash.NoticeError(err.Error()))
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("You are on the list. We will be in touch."))
	httpx.WriteRedirect(w, r, routepath.Root)
}

// handleLogin forwards the browser to the auth service's entry screen. The
// portal never renders credentials itself.
func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	location := h.loginURL
	if location == "" {
		location = routepath.Root
	}
	httpx.WriteRedirect(w, r, location)
}

func (h handlers) handleError(w http.ResponseWriter, r *http.Request) {
	cause := strings.TrimSpace(r.URL.Query().Get(routepath.ErrorCauseQueryKey))
	pagerender.WritePublicPage(w, r, "Error", http.StatusOK, webtemplates.ErrorPage(cause))
}
