package reports

import (
	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/web/routepath"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

// editableStatuses are the lifecycle stages where the auditor may change the
// report. Everything else renders read-only.
func isEditable(status audit.ReportStatus) bool {
	switch status {
	case audit.StatusAuditorReview, audit.StatusNeedDevRemediation, audit.StatusDevRemediated:
		return true
	}
	return false
}

func buildReportView(report audit.Report) webtemplates.ReportView {
	high, medium, low := report.SeverityTally()
	view := webtemplates.ReportView{
		ReportID:     report.ID,
		RepoName:     report.RepoShortName(),
		ClientName:   report.ClientName(),
		Status:       report.Status,
		CreatedLabel: report.CreatedAt.Format("Jan 2, 2006"),
		HighCount:    high,
		MediumCount:  medium,
		LowCount:     low,

		Summary:    report.Summary,
		SummaryURL: routepath.AppReportSummary(report.ID),

		CreateFindingURL: routepath.AppReportFindings(report.ID),
		SubmitURL:        routepath.AppReportSubmit(report.ID),
		Editable:         isEditable(report.Status),
	}
	for _, finding := range report.Findings {
		view.Findings = append(view.Findings, findingView(report.ID, finding))
	}
	return view
}

func findingView(reportID int64, finding audit.Finding) webtemplates.FindingView {
	return webtemplates.FindingView{
		ID:              finding.ID,
		Title:           finding.Title,
		Severity:        finding.Severity,
		Explanation:     finding.Explanation,
		Recommendation:  finding.Recommendation,
		DevComment:      finding.DevComment,
		AuditorResponse: finding.AuditorResponse,
		Status:          finding.Status,
		UpdateURL:       routepath.AppReportFinding(reportID, finding.ID),
		DeleteURL:       routepath.AppReportFindingDelete(reportID, finding.ID),
	}
}
