package reports

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/audit/editor"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
	"github.com/auditgate/portal/internal/web/platform/flash"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

type handlers struct {
	modulehandler.Base

	service *service
	logger  hclog.Logger
}

func (h handlers) handleShow(w http.ResponseWriter, r *http.Request) {
	reportID, ok := h.reportID(w, r)
	if !ok {
		return
	}
	e, err := h.service.open(h.RequestContext(r), reportID)
	if err != nil {
		switch {
		case apperrors.KindOf(err) == apperrors.KindNotFound:
			httpx.WriteRedirect(w, r, routepath.Error+"?"+routepath.ErrorCauseQueryKey+"="+url.QueryEscape("Report not found"))
		case apperrors.IsUnauthorized(err):
			flash.Write(w, r, flash.NoticeError(err.Error()))
			httpx.WriteRedirect(w, r, routepath.AppDashboard)
		default:
			h.WriteError(w, r, err)
		}
		return
	}
	h.renderReport(w, r, e)
}

func (h handlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	reportID, e, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "could not read the form submission"))
		return
	}
	if err := h.service.saveSummary(h.RequestContext(r), e, r.PostFormValue("summary")); err != nil {
		h.mutationFailed(w, r, reportID, err)
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Summary saved."))
	httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
}

func (h handlers) handleCreateFinding(w http.ResponseWriter, r *http.Request) {
	reportID, e, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "could not read the form submission"))
		return
	}
	draft := draftFromForm(r)
	if err := h.service.createFinding(h.RequestContext(r), e, draft); err != nil {
		h.mutationFailed(w, r, reportID, err)
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Finding added."))
	httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
}

func (h handlers) handleUpdateFinding(w http.ResponseWriter, r *http.Request) {
	reportID, e, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	findingID, ok := h.findingID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "could not read the form submission"))
		return
	}
	draft := draftFromForm(r)
	draft.AuditorResponse = r.PostFormValue("auditor_response")
	draft.Status = audit.FindingStatus(r.PostFormValue("status"))
	if err := h.service.updateFinding(h.RequestContext(r), e, findingID, draft); err != nil {
		h.mutationFailed(w, r, reportID, err)
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Finding saved."))
	httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	reportID, e, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	findingID, ok := h.findingID(w, r)
	if !ok {
		return
	}
	finding, ok := e.Finding(findingID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
		return
	}
	dialog := webtemplates.ConfirmDialog(
		"Delete finding \""+finding.Title+"\"? This cannot be undone.",
		routepath.AppReportFindingDelete(reportID, findingID),
		routepath.AppReport(reportID),
		nil,
	)
	h.writeDialog(w, r, "Delete finding", dialog)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	reportID, e, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	findingID, ok := h.findingID(w, r)
	if !ok {
		return
	}
	if err := h.service.deleteFinding(h.RequestContext(r), e, findingID); err != nil {
		h.mutationFailed(w, r, reportID, err)
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Finding deleted."))
	httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
}

func (h handlers) handleSubmitConfirm(w http.ResponseWriter, r *http.Request) {
	reportID, _, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	status := audit.ReportStatus(r.URL.Query().Get("status"))
	prompt := ""
	switch status {
	case audit.StatusNeedDevRemediation:
		prompt = "Hand the report back and request remediation from the developer?"
	case audit.StatusDevRemediated:
		prompt = "Mark the report as remediated and hand it back?"
	default:
		httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
		return
	}
	dialog := webtemplates.ConfirmDialog(
		prompt,
		routepath.AppReportSubmit(reportID),
		routepath.AppReport(reportID),
		map[string]string{"status": string(status)},
	)
	h.writeDialog(w, r, "Submit report", dialog)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reportID, e, ok := h.editorForMutation(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "could not read the form submission"))
		return
	}
	status := audit.ReportStatus(r.PostFormValue("status"))
	if err := h.service.submit(h.RequestContext(r), e, status); err != nil {
		h.mutationFailed(w, r, reportID, err)
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Report submitted."))
	httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) renderReport(w http.ResponseWriter, r *http.Request, e *editor.Editor) {
	report := e.Report()
	view := buildReportView(report)
	header := &webtemplates.AppMainHeader{Title: report.RepoShortName(), Subtitle: "Audit report"}
	h.WritePage(w, r, report.RepoShortName(), http.StatusOK, header, webtemplates.AppMainLayoutOptions{}, webtemplates.ReportPage(view))
}

// editorForMutation resolves the report's shadow. Without one the browser is
// sent to the report screen, whose GET establishes the shadow first.
func (h handlers) editorForMutation(w http.ResponseWriter, r *http.Request) (int64, *editor.Editor, bool) {
	reportID, ok := h.reportID(w, r)
	if !ok {
		return 0, nil, false
	}
	e, ok := h.service.lookup(reportID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
		return 0, nil, false
	}
	return reportID, e, true
}

func (h handlers) mutationFailed(w http.ResponseWriter, r *http.Request, reportID int64, err error) {
	h.logger.Warn("report mutation failed", "report_id", reportID, "error", err)
	flash.Write(w, r, flash.NoticeError(err.Error()))
	httpx.WriteRedirect(w, r, routepath.AppReport(reportID))
}

func (h handlers) writeDialog(w http.ResponseWriter, r *http.Request, title string, dialog templ.Component) {
	if httpx.IsHTMXRequest(r) {
		var buf bytes.Buffer
		if err := dialog.Render(httpx.RequestContext(r), &buf); err != nil {
			h.WriteError(w, r, err)
			return
		}
		_ = httpx.WriteHTML(w, http.StatusOK, buf.String())
		return
	}
	h.WritePage(w, r, title, http.StatusOK, &webtemplates.AppMainHeader{Title: title}, webtemplates.AppMainLayoutOptions{}, dialog)
}

func (h handlers) reportID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("reportID"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteNotFound(w, r)
		return 0, false
	}
	return id, true
}

func (h handlers) findingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("findingID"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteNotFound(w, r)
		return 0, false
	}
	return id, true
}

func draftFromForm(r *http.Request) editor.FindingDraft {
	return editor.FindingDraft{
		Title:          r.PostFormValue("title"),
		Severity:       audit.ParseSeverity(r.PostFormValue("severity")),
		Explanation:    r.PostFormValue("explanation"),
		Recommendation: r.PostFormValue("recommendation"),
	}
}
