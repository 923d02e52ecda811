// Package editor maintains the local shadow copy of a report while an
// auditor edits its summary and findings. Mutations apply only after the
// corresponding backend call succeeded; the shadow never reloads wholesale.
package editor

import (
	"errors"
	"strings"
	"sync"

	"github.com/auditgate/portal/internal/audit"
)

var (
	ErrEmptySummary   = errors.New("summary must not be empty")
	ErrMissingFields  = errors.New("title, explanation, and recommendation are required")
	ErrUnknownFinding = errors.New("finding is not part of this report")
)

// FindingDraft is the auditor-authored field set. Create ignores the
// response and status fields; update applies all of them.
type FindingDraft struct {
	Title           string
	Severity        audit.Severity
	Explanation     string
	Recommendation  string
	AuditorResponse string
	Status          audit.FindingStatus
}

// Validate checks the required fields shared by create and update.
func (d FindingDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" ||
		strings.TrimSpace(d.Explanation) == "" ||
		strings.TrimSpace(d.Recommendation) == "" {
		return ErrMissingFields
	}
	return nil
}

// Editor wraps one report's shadow copy. Safe for concurrent use.
type Editor struct {
	mu     sync.Mutex
	report audit.Report
}

// New takes the fetched report as the initial shadow.
func New(report audit.Report) *Editor {
	return &Editor{report: report}
}

// Report returns a copy of the current shadow.
func (e *Editor) Report() audit.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	report := e.report
	report.Findings = append([]audit.Finding(nil), e.report.Findings...)
	return report
}

// ValidateSummary rejects blank drafts before any network call.
func ValidateSummary(draft string) error {
	if strings.TrimSpace(draft) == "" {
		return ErrEmptySummary
	}
	return nil
}

// SetSummary updates the shadow after a confirmed save.
func (e *Editor) SetSummary(summary string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.report.Summary = summary
}

// AddFinding appends the server-stored record to the shadow list.
func (e *Editor) AddFinding(finding audit.Finding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.report.Findings = append(e.report.Findings, finding)
}

// UpdateFinding replaces the editable fields of one finding in place.
func (e *Editor) UpdateFinding(findingID int64, draft FindingDraft) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.report.Findings {
		if e.report.Findings[i].ID != findingID {
			continue
		}
		f := &e.report.Findings[i]
		f.Title = draft.Title
		f.Severity = audit.ParseSeverity(string(draft.Severity))
		f.Explanation = draft.Explanation
		f.Recommendation = draft.Recommendation
		f.AuditorResponse = draft.AuditorResponse
		if draft.Status.Valid() {
			f.Status = draft.Status
		}
		return nil
	}
	return ErrUnknownFinding
}

// RemoveFinding drops exactly the finding with the given id.
func (e *Editor) RemoveFinding(findingID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.report.Findings {
		if e.report.Findings[i].ID != findingID {
			continue
		}
		e.report.Findings = append(e.report.Findings[:i], e.report.Findings[i+1:]...)
		return nil
	}
	return ErrUnknownFinding
}

// Finding returns one finding from the shadow by id.
func (e *Editor) Finding(findingID int64) (audit.Finding, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, finding := range e.report.Findings {
		if finding.ID == findingID {
			return finding, true
		}
	}
	return audit.Finding{}, false
}

// SetStatus records the submitted status on the shadow. Re-submission with
// the same status is not prevented here; the backend owns transition
// legality.
func (e *Editor) SetStatus(status audit.ReportStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.report.Status = status
}
