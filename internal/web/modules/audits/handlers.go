package audits

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/audit/workflow"
	"github.com/auditgate/portal/internal/platform/authctx"
	"github.com/auditgate/portal/internal/session"
	module "github.com/auditgate/portal/internal/web/module"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
	"github.com/auditgate/portal/internal/web/platform/flash"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

// SessionDirectory is the slice of the session provider the audit list reads.
type SessionDirectory interface {
	Snapshot() session.Snapshot
	Refresh(ctx context.Context) session.Result
}

type handlers struct {
	modulehandler.Base

	service      *service
	directory    SessionDirectory
	loginURL     string
	logger       hclog.Logger
	resolveToken module.ResolveSessionToken
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	snapshot := h.snapshotOrRefresh(w, r)
	if snapshot == nil {
		return
	}
	activeStatus := r.URL.Query().Get("status")
	view := buildListView(snapshot.Reports, activeStatus)
	header := &webtemplates.AppMainHeader{Title: "Audits", Subtitle: "Every engagement visible to your session."}
	h.WritePage(w, r, "Audits", http.StatusOK, header, webtemplates.AppMainLayoutOptions{Wide: true}, webtemplates.AuditsPage(view))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	wf, report, err := h.service.openAudit(h.RequestContext(r), auditID)
	if err != nil {
		switch {
		case apperrors.KindOf(err) == apperrors.KindNotFound:
			httpx.WriteRedirect(w, r, routepath.Error+"?"+routepath.ErrorCauseQueryKey+"="+url.QueryEscape("Audit not found"))
			return
		case report.ID != 0 && report.Status != audit.StatusQueue:
			httpx.WriteRedirect(w, r, routepath.AppReport(report.ID))
			return
		case apperrors.IsUnauthorized(err):
			flash.Write(w, r, flash.NoticeError(err.Error()))
			httpx.WriteRedirect(w, r, routepath.AppDashboard)
			return
		case wf == nil:
			h.WriteError(w, r, err)
			return
		default:
			// scope or flow fetch failed; show the screen with what we have
			h.logger.Warn("audit detail degraded", "audit_id", auditID, "error", err)
			flash.Write(w, r, flash.NoticeError("Could not load the flow list. Refresh to retry."))
		}
	}

	kind := workflow.ParseKindFilter(r.URL.Query().Get("kind"))
	query := r.URL.Query().Get("q")
	if isFlowListSwap(r) {
		h.writeFragment(w, r, webtemplates.FlowListFragment(buildFlowSelectionView(wf, kind, query)))
		return
	}
	view := buildDetailView(wf, report, kind, query, h.service.now())
	header := &webtemplates.AppMainHeader{Title: report.RepoShortName(), Subtitle: "Select flows and start the AI scan."}
	h.WritePage(w, r, report.RepoShortName(), http.StatusOK, header, webtemplates.AppMainLayoutOptions{Wide: true}, webtemplates.AuditDetailPage(view))
}

func (h handlers) handleToggle(w http.ResponseWriter, r *http.Request) {
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	wf, ok := h.service.lookup(auditID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "could not read the form submission"))
		return
	}
	name := r.PostFormValue("flow")
	if _, err := wf.Toggle(name); err != nil {
		flash.Write(w, r, flash.NoticeError(err.Error()))
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	kind := workflow.ParseKindFilter(r.PostFormValue("kind"))
	query := r.PostFormValue("q")
	if httpx.IsHTMXRequest(r) {
		h.writeFragment(w, r, webtemplates.FlowListFragment(buildFlowSelectionView(wf, kind, query)))
		return
	}
	httpx.WriteRedirect(w, r, detailLocation(auditID, kind, query))
}

func (h handlers) handleFunctions(w http.ResponseWriter, r *http.Request) {
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	wf, ok := h.service.lookup(auditID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	if err := h.service.ensureFunctions(h.RequestContext(r), wf); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeFragment(w, r, webtemplates.FunctionCatalogFragment(buildFlowSelectionView(wf, workflow.FilterAll, "")))
}

func (h handlers) handleCreateFlow(w http.ResponseWriter, r *http.Request) {
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	wf, ok := h.service.lookup(auditID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "could not read the form submission"))
		return
	}
	name := r.PostFormValue("name")
	signatures := r.PostForm["signature"]
	if err := h.service.createFlow(h.RequestContext(r), wf, name, signatures); err != nil {
		flash.Write(w, r, flash.NoticeError(err.Error()))
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	flash.Write(w, r, flash.NoticeSuccess("Custom flow created."))
	httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
}

func (h handlers) handleScan(w http.ResponseWriter, r *http.Request) {
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	wf, ok := h.service.lookup(auditID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	if err := h.service.startScan(h.submitContext(r), wf); err != nil {
		flash.Write(w, r, flash.NoticeError(err.Error()))
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
}

func (h handlers) handleProgress(w http.ResponseWriter, r *http.Request) {
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	wf, ok := h.service.lookup(auditID)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AppAudit(auditID))
		return
	}
	progressURL := routepath.AppAuditProgress(auditID)
	switch wf.Phase() {
	case workflow.PhaseScanAcknowledged:
		h.writeFragment(w, r, webtemplates.ScanProgressFragment(progressURL, 100, true))
	case workflow.PhaseScanRequested:
		h.writeFragment(w, r, webtemplates.ScanProgressFragment(progressURL, wf.Progress(h.service.now()), false))
	default:
		h.writeFragment(w, r, webtemplates.ScanFailedFragment(routepath.AppAudit(auditID), h.service.scanError(auditID)))
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// snapshotOrRefresh returns the session snapshot, refreshing a cold session
// first. A nil return means a redirect was already written.
func (h handlers) snapshotOrRefresh(w http.ResponseWriter, r *http.Request) *session.Snapshot {
	snapshot := h.directory.Snapshot()
	if !snapshot.Authenticated {
		result := h.directory.Refresh(h.RequestContext(r))
		if result.Unauthorized {
			httpx.WriteRedirect(w, r, h.entryLocation())
			return nil
		}
		if result.Err != nil {
			h.logger.Warn("audit list is rendering without session data", "error", result.Err)
			flash.Write(w, r, flash.NoticeError("Could not reach the audit services. Showing what we have."))
		}
		snapshot = h.directory.Snapshot()
	}
	return &snapshot
}

func (h handlers) auditID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("auditID"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteNotFound(w, r)
		return 0, false
	}
	return id, true
}

// submitContext builds a context for the background scan submission. The
// request context dies with the response, so only the session token carries
// over.
func (h handlers) submitContext(r *http.Request) context.Context {
	ctx := context.Background()
	if h.resolveToken == nil {
		return ctx
	}
	if token := h.resolveToken(r); token != "" {
		ctx = authctx.WithSessionToken(ctx, token)
	}
	return ctx
}

func (h handlers) writeFragment(w http.ResponseWriter, r *http.Request, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		h.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, buf.String())
}

func (h handlers) entryLocation() string {
	if h.loginURL != "" {
		return h.loginURL
	}
	return routepath.Login
}

func isFlowListSwap(r *http.Request) bool {
	return httpx.IsHTMXRequest(r) && r.Header.Get("HX-Target") == "flow-list"
}

func detailLocation(auditID int64, kind workflow.KindFilter, query string) string {
	location := routepath.AppAudit(auditID)
	values := url.Values{}
	if kind != workflow.FilterAll {
		values.Set("kind", string(kind))
	}
	if query != "" {
		values.Set("q", query)
	}
	if encoded := values.Encode(); encoded != "" {
		location += "?" + encoded
	}
	return location
}
