package dashboard

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDashboard, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.DashboardPrefix+"{rest...}", h.handleNotFound)
}
