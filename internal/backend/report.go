package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/auditgate/portal/internal/audit"
)

// ReportClient talks to the report service: the audit list, report details,
// summaries, findings, and submission.
type ReportClient struct {
	http *resty.Client
}

// FindingInput carries the auditor-authored fields for a new finding. The
// backend assigns the id and the initial NOT_MITIGATED status.
type FindingInput struct {
	Title          string
	Severity       audit.Severity
	Explanation    string
	Recommendation string
}

// FindingUpdate carries the full editable field set for an existing finding.
type FindingUpdate struct {
	Title           string
	Severity        audit.Severity
	Explanation     string
	Recommendation  string
	AuditorResponse string
	Status          audit.FindingStatus
}

// ListReports fetches every report visible to the session's auditor.
func (c *ReportClient) ListReports(ctx context.Context) ([]audit.Report, error) {
	return callJSON[[]audit.Report](ctx, c.http, http.MethodGet, "/", nil)
}

// ReportDetails fetches one report with its findings.
func (c *ReportClient) ReportDetails(ctx context.Context, reportID int64) (audit.Report, error) {
	if reportID <= 0 {
		return audit.Report{}, validationError("report id is required")
	}
	return callJSON[audit.Report](ctx, c.http, http.MethodGet, fmt.Sprintf("/details/%d", reportID), nil)
}

// UpdateSummary replaces the report's executive summary.
func (c *ReportClient) UpdateSummary(ctx context.Context, reportID int64, summary string) error {
	if reportID <= 0 {
		return validationError("report id is required")
	}
	if strings.TrimSpace(summary) == "" {
		return validationError("summary must not be empty")
	}
	body := map[string]string{"summary": summary}
	_, err := call(ctx, c.http, http.MethodPatch, fmt.Sprintf("/%d/summary", reportID), body)
	return err
}

// CreateFinding adds a finding to a report and returns the stored record,
// including the server-assigned id and status. Missing severity defaults to
// medium before the request is sent.
func (c *ReportClient) CreateFinding(ctx context.Context, reportID int64, input FindingInput) (audit.Finding, error) {
	if reportID <= 0 {
		return audit.Finding{}, validationError("report id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return audit.Finding{}, validationError("finding title must not be empty")
	}
	if strings.TrimSpace(input.Explanation) == "" {
		return audit.Finding{}, validationError("finding explanation must not be empty")
	}
	if strings.TrimSpace(input.Recommendation) == "" {
		return audit.Finding{}, validationError("finding recommendation must not be empty")
	}
	body := map[string]any{
		"title":          input.Title,
		"severity":       audit.ParseSeverity(string(input.Severity)),
		"explanation":    input.Explanation,
		"recommendation": input.Recommendation,
	}
	return callJSON[audit.Finding](ctx, c.http, http.MethodPost, fmt.Sprintf("/%d/findings", reportID), body)
}

// UpdateFinding replaces the editable fields of an existing finding.
func (c *ReportClient) UpdateFinding(ctx context.Context, findingID int64, update FindingUpdate) error {
	if findingID <= 0 {
		return validationError("finding id is required")
	}
	if strings.TrimSpace(update.Title) == "" {
		return validationError("finding title must not be empty")
	}
	if strings.TrimSpace(update.Explanation) == "" {
		return validationError("finding explanation must not be empty")
	}
	if strings.TrimSpace(update.Recommendation) == "" {
		return validationError("finding recommendation must not be empty")
	}
	status := update.Status
	if !status.Valid() {
		status = audit.FindingNotMitigated
	}
	body := map[string]any{
		"title":            update.Title,
		"severity":         audit.ParseSeverity(string(update.Severity)),
		"explanation":      update.Explanation,
		"recommendation":   update.Recommendation,
		"auditor_response": update.AuditorResponse,
		"status":           status,
	}
	_, err := call(ctx, c.http, http.MethodPatch, fmt.Sprintf("/findings/%d", findingID), body)
	return err
}

// DeleteFinding removes a finding permanently.
func (c *ReportClient) DeleteFinding(ctx context.Context, findingID int64) error {
	if findingID <= 0 {
		return validationError("finding id is required")
	}
	_, err := call(ctx, c.http, http.MethodDelete, fmt.Sprintf("/findings/%d", findingID), nil)
	return err
}

// SubmitReport hands the report back to the developer with one of the two
// remediation outcomes.
func (c *ReportClient) SubmitReport(ctx context.Context, reportID int64, status audit.ReportStatus) error {
	if reportID <= 0 {
		return validationError("report id is required")
	}
	if status != audit.StatusNeedDevRemediation && status != audit.StatusDevRemediated {
		return validationError("submission status must be a remediation outcome")
	}
	body := map[string]audit.ReportStatus{"status": status}
	_, err := call(ctx, c.http, http.MethodPatch, fmt.Sprintf("/%d/submit", reportID), body)
	return err
}
