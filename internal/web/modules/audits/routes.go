package audits

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAudits, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuditsPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAuditPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppAuditTogglePattern, h.handleToggle)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAuditFunctionsPattern, h.handleFunctions)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppAuditFlowsPattern, h.handleCreateFlow)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppAuditScanPattern, h.handleScan)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAuditProgressPattern, h.handleProgress)
	mux.HandleFunc(routepath.AuditsPrefix+"{rest...}", h.handleNotFound)
}
