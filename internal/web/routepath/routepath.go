// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"strconv"
)

const (
	Root     = "/"
	Login    = "/login"
	Waitlist = "/waitlist"
	Error    = "/error"
	Health   = "/up"

	AppPrefix       = "/app/"
	AppDashboard    = "/app/dashboard"
	DashboardPrefix = "/app/dashboard/"

	AppAudits    = "/app/audits"
	AuditsPrefix = "/app/audits/"

	AppAuditPattern          = AuditsPrefix + "{auditID}"
	AppAuditTogglePattern    = AuditsPrefix + "{auditID}/flows/toggle"
	AppAuditFunctionsPattern = AuditsPrefix + "{auditID}/functions"
	AppAuditFlowsPattern     = AuditsPrefix + "{auditID}/flows"
	AppAuditScanPattern      = AuditsPrefix + "{auditID}/scan"
	AppAuditProgressPattern  = AuditsPrefix + "{auditID}/progress"

	ReportsPrefix                 = AuditsPrefix + "reports/"
	AppReportPattern              = ReportsPrefix + "{reportID}"
	AppReportSummaryPattern       = ReportsPrefix + "{reportID}/summary"
	AppReportFindingsPattern      = ReportsPrefix + "{reportID}/findings"
	AppReportFindingPattern       = ReportsPrefix + "{reportID}/findings/{findingID}"
	AppReportFindingDeletePattern = ReportsPrefix + "{reportID}/findings/{findingID}/delete"
	AppReportSubmitPattern        = ReportsPrefix + "{reportID}/submit"

	SessionPrefix     = "/app/session/"
	AppSessionRefresh = "/app/session/refresh"

	// ErrorCauseQueryKey carries a human-readable cause to the error screen.
	ErrorCauseQueryKey = "cause"
)

// AppAudit returns the audit detail route.
func AppAudit(auditID int64) string {
	return AuditsPrefix + strconv.FormatInt(auditID, 10)
}

// AppAuditFlowsToggle returns the flow selection toggle route.
func AppAuditFlowsToggle(auditID int64) string {
	return AppAudit(auditID) + "/flows/toggle"
}

// AppAuditFunctions returns the function catalog route.
func AppAuditFunctions(auditID int64) string {
	return AppAudit(auditID) + "/functions"
}

// AppAuditFlows returns the custom flow creation route.
func AppAuditFlows(auditID int64) string {
	return AppAudit(auditID) + "/flows"
}

// AppAuditScan returns the scan submission route.
func AppAuditScan(auditID int64) string {
	return AppAudit(auditID) + "/scan"
}

// AppAuditProgress returns the polled scan progress route.
func AppAuditProgress(auditID int64) string {
	return AppAudit(auditID) + "/progress"
}

// AppReport returns the read-only report route.
func AppReport(reportID int64) string {
	return ReportsPrefix + strconv.FormatInt(reportID, 10)
}

// AppReportSummary returns the summary update route.
func AppReportSummary(reportID int64) string {
	return AppReport(reportID) + "/summary"
}

// AppReportFindings returns the finding creation route.
func AppReportFindings(reportID int64) string {
	return AppReport(reportID) + "/findings"
}

// AppReportFinding returns the finding update route.
func AppReportFinding(reportID, findingID int64) string {
	return AppReportFindings(reportID) + "/" + strconv.FormatInt(findingID, 10)
}

// AppReportFindingDelete returns the finding delete confirmation route.
func AppReportFindingDelete(reportID, findingID int64) string {
	return AppReportFinding(reportID, findingID) + "/delete"
}

// AppReportSubmit returns the report submission route.
func AppReportSubmit(reportID int64) string {
	return AppReport(reportID) + "/submit"
}
