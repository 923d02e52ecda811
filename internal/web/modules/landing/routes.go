package landing

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.Waitlist, h.handleWaitlist)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Error, h.handleError)
}
