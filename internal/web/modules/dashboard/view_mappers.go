package dashboard

import (
	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

const recentLimit = 5

func buildDashboardView(reports []audit.Report) webtemplates.DashboardView {
	view := webtemplates.DashboardView{TotalAudits: len(reports)}
	for _, report := range reports {
		switch report.Status {
		case audit.StatusQueue:
			view.QueuedCount++
		case audit.StatusAIReview, audit.StatusAuditorReview:
			view.InReviewCount++
		case audit.StatusDone:
			view.CompletedCount++
		}
		high, medium, low := report.SeverityTally()
		view.HighCount += high
		view.MediumCount += medium
		view.LowCount += low
	}
	for i, report := range reports {
		if i == recentLimit {
			break
		}
		view.Recent = append(view.Recent, auditRow(report))
	}
	return view
}

// auditRow links queued audits to the flow-selection screen and everything
// else to its report.
func auditRow(report audit.Report) webtemplates.AuditRowView {
	url := routepath.AppReport(report.ID)
	if report.Status == audit.StatusQueue {
		url = routepath.AppAudit(report.ID)
	}
	return webtemplates.AuditRowView{
		URL:          url,
		RepoName:     report.RepoShortName(),
		ClientName:   report.ClientName(),
		Status:       report.Status,
		CreatedLabel: report.CreatedAt.Format("Jan 2, 2006"),
		FindingCount: len(report.Findings),
		Paid:         report.Paid,
	}
}
