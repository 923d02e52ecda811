package sessionops

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.AppSessionRefresh, h.handleRefresh)
	mux.HandleFunc(routepath.SessionPrefix+"{rest...}", h.handleNotFound)
}
