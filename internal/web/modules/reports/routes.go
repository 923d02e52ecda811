package reports

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppReportPattern, h.handleShow)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppReportSummaryPattern, h.handleSummary)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppReportFindingsPattern, h.handleCreateFinding)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppReportFindingPattern, h.handleUpdateFinding)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppReportFindingDeletePattern, h.handleDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppReportFindingDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppReportSubmitPattern, h.handleSubmitConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppReportSubmitPattern, h.handleSubmit)
	mux.HandleFunc(routepath.ReportsPrefix+"{rest...}", h.handleNotFound)
}
