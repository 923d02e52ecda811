package audits

import (
	"net/url"
	"time"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/audit/workflow"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

func buildListView(reports []audit.Report, activeStatus string) webtemplates.AuditListView {
	view := webtemplates.AuditListView{
		Tabs: buildTabs(reports, activeStatus),
	}
	for _, report := range reports {
		if activeStatus != "" && string(report.Status) != activeStatus {
			continue
		}
		view.Rows = append(view.Rows, auditRow(report))
	}
	return view
}

func buildTabs(reports []audit.Report, activeStatus string) []webtemplates.AuditTabView {
	counts := make(map[audit.ReportStatus]int)
	for _, report := range reports {
		counts[report.Status]++
	}
	tabs := []webtemplates.AuditTabView{{
		Label:  "All",
		URL:    routepath.AppAudits,
		Count:  len(reports),
		Active: activeStatus == "",
	}}
	for _, status := range audit.ReportStatuses() {
		tabs = append(tabs, webtemplates.AuditTabView{
			Label:  status.Label(),
			URL:    routepath.AppAudits + "?status=" + url.QueryEscape(string(status)),
			Count:  counts[status],
			Active: activeStatus == string(status),
		})
	}
	return tabs
}

// auditRow links queued audits to the flow-selection screen and everything
// else to its report.
func auditRow(report audit.Report) webtemplates.AuditRowView {
	rowURL := routepath.AppReport(report.ID)
	if report.Status == audit.StatusQueue {
		rowURL = routepath.AppAudit(report.ID)
	}
	return webtemplates.AuditRowView{
		URL:          rowURL,
		RepoName:     report.RepoShortName(),
		ClientName:   report.ClientName(),
		Status:       report.Status,
		CreatedLabel: report.CreatedAt.Format("Jan 2, 2006"),
		FindingCount: len(report.Findings),
		Paid:         report.Paid,
	}
}

// buildFlowSelectionView maps the fragment slice of the screen. It needs no
// report, so HTMX swap handlers use it directly.
func buildFlowSelectionView(wf *workflow.Workflow, kind workflow.KindFilter, query string) webtemplates.FlowSelectionView {
	auditID := wf.AuditID()
	view := webtemplates.FlowSelectionView{
		FilterKind:  string(kind),
		FilterQuery: query,

		SelectedCount:   wf.SelectedCount(),
		FunctionsLoaded: wf.FunctionsLoaded(),

		ToggleURL:    routepath.AppAuditFlowsToggle(auditID),
		FlowsURL:     routepath.AppAuditFlows(auditID),
		FunctionsURL: routepath.AppAuditFunctions(auditID),
	}
	for _, flow := range wf.Filter(kind, query) {
		view.Flows = append(view.Flows, flowRow(wf, flow))
	}
	for _, fn := range wf.Functions() {
		view.Functions = append(view.Functions, webtemplates.FunctionOptionView{
			Signature: fn.Signature,
			Name:      fn.Name,
			FilePath:  fn.FilePath,
		})
	}
	return view
}

func buildDetailView(wf *workflow.Workflow, report audit.Report, kind workflow.KindFilter, query string, now time.Time) webtemplates.AuditDetailView {
	auditID := wf.AuditID()
	scope := wf.Scope()
	phase := wf.Phase()
	return webtemplates.AuditDetailView{
		AuditID:         auditID,
		RepoName:        report.RepoShortName(),
		InScopeFiles:    scope.InScopeFiles,
		OutOfScopeFiles: scope.OutOfScopeFiles,

		FlowSelectionView: buildFlowSelectionView(wf, kind, query),

		ScanRequested:    phase == workflow.PhaseScanRequested,
		ScanAcknowledged: phase == workflow.PhaseScanAcknowledged,
		Progress:         wf.Progress(now),

		ScanURL:     routepath.AppAuditScan(auditID),
		ProgressURL: routepath.AppAuditProgress(auditID),
		SelfURL:     routepath.AppAudit(auditID),
	}
}

func flowRow(wf *workflow.Workflow, flow audit.Flow) webtemplates.FlowRowView {
	row := webtemplates.FlowRowView{
		Name:     flow.Name,
		FilePath: flow.FilePath,
		Kind:     flow.Kind,
		Selected: wf.IsSelected(flow.Name),
	}
	for _, fn := range flow.Functions {
		row.FunctionNames = append(row.FunctionNames, fn.Name)
	}
	return row
}
