// Package audit defines the domain model shared by the portal: reports,
// findings, flows, and the status vocabulary owned by the backend services.
package audit

import (
	"strings"
	"time"
)

// ReportStatus tracks an audit through intake, scanning, review,
// remediation, and completion.
type ReportStatus string

const (
	StatusQueue              ReportStatus = "QUEUE"
	StatusAIReview           ReportStatus = "AI_REVIEW"
	StatusAuditorReview      ReportStatus = "AUDITOR_REVIEW"
	StatusNeedDevRemediation ReportStatus = "NEED_DEV_REMEDIATION"
	StatusDevRemediated      ReportStatus = "DEV_REMEDIATED"
	StatusDone               ReportStatus = "DONE"
)

// ReportStatuses lists all statuses in lifecycle order.
func ReportStatuses() []ReportStatus {
	return []ReportStatus{
		StatusQueue,
		StatusAIReview,
		StatusAuditorReview,
		StatusNeedDevRemediation,
		StatusDevRemediated,
		StatusDone,
	}
}

// Valid reports whether the status is one of the six known values.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusQueue, StatusAIReview, StatusAuditorReview,
		StatusNeedDevRemediation, StatusDevRemediated, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable badge text for a status.
func (s ReportStatus) Label() string {
	switch s {
	case StatusQueue:
		return "In Queue"
	case StatusAIReview:
		return "AI Review"
	case StatusAuditorReview:
		return "Auditor Review"
	case StatusNeedDevRemediation:
		return "Needs Remediation"
	case StatusDevRemediated:
		return "Dev Remediated"
	case StatusDone:
		return "Completed"
	default:
		return "In Queue"
	}
}

// ValidTransition reports whether a status change follows the lifecycle
// chain. The chain is monotonic except for the remediation branch, where an
// auditor and a developer may alternate between NEED_DEV_REMEDIATION and
// DEV_REMEDIATED. The backend remains the authority; the portal mirrors the
// chain to reject impossible handbacks before the round-trip.
func ValidTransition(from, to ReportStatus) bool {
	switch from {
	case StatusQueue:
		return to == StatusAIReview
	case StatusAIReview:
		return to == StatusAuditorReview
	case StatusAuditorReview:
		return to == StatusNeedDevRemediation || to == StatusDevRemediated
	case StatusNeedDevRemediation:
		return to == StatusDevRemediated || to == StatusDone
	case StatusDevRemediated:
		return to == StatusNeedDevRemediation || to == StatusDone
	default:
		return false
	}
}

// Severity classifies a finding. The enumeration is closed.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity normalizes a severity string; unknown or empty values
// default to medium, matching finding-creation defaults.
func ParseSeverity(raw string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityLow:
		return SeverityLow
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// FindingStatus is the tri-state mitigation lifecycle of a finding.
type FindingStatus string

const (
	FindingNotMitigated        FindingStatus = "NOT_MITIGATED"
	FindingPartiallyMitigated  FindingStatus = "PARTIALLY_MITIGATED"
	FindingMitigationConfirmed FindingStatus = "MITIGATION_CONFIRMED"
)

// Valid reports whether the mitigation status is a known value.
func (s FindingStatus) Valid() bool {
	switch s {
	case FindingNotMitigated, FindingPartiallyMitigated, FindingMitigationConfirmed:
		return true
	}
	return false
}

// Label returns the human-readable badge text for a mitigation status.
func (s FindingStatus) Label() string {
	switch s {
	case FindingPartiallyMitigated:
		return "Partially Mitigated"
	case FindingMitigationConfirmed:
		return "Mitigation Confirmed"
	default:
		return "Not Mitigated"
	}
}

// User is the auth-service identity, read-only from the portal's viewpoint.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsAuditor bool   `json:"isAuditor"`
}

// Finding is one identified issue within a report.
type Finding struct {
	ID              int64         `json:"id"`
	ReportID        int64         `json:"reportId"`
	Title           string        `json:"title"`
	Severity        Severity      `json:"severity"`
	Explanation     string        `json:"explanation"`
	Recommendation  string        `json:"recommendation"`
	Status          FindingStatus `json:"status"`
	DevComment      string        `json:"dev_comment"`
	AuditorResponse string        `json:"auditor_response"`
}

// Report is the central aggregate: one audit engagement over one repository.
// The report service owns the lifecycle; the portal holds transient copies.
type Report struct {
	ID              int64        `json:"id"`
	RepositoryID    int64        `json:"repository_id"`
	Summary         string       `json:"summary"`
	Status          ReportStatus `json:"status"`
	Progress        int          `json:"progress"`
	Paid            bool         `json:"paid"`
	OutOfScopeFiles []string     `json:"out_of_scope_files"`
	CreatedAt       time.Time    `json:"created_at"`
	Username        string       `json:"username"`
	RepoURL         string       `json:"repo_url"`
	RepoName        string       `json:"repo_name"`
	Findings        []Finding    `json:"findings"`
}

// RepoShortName derives a display name from the repository URL when the
// denormalized repo name is absent.
func (r Report) RepoShortName() string {
	if name := strings.TrimSpace(r.RepoName); name != "" {
		return name
	}
	trimmed := strings.TrimRight(strings.TrimSpace(r.RepoURL), "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// ClientName resolves the client display name, falling back to the URL's
// owner segment when no username is denormalized onto the report.
func (r Report) ClientName() string {
	if name := strings.TrimSpace(r.Username); name != "" {
		return name
	}
	parts := strings.Split(strings.TrimSpace(r.RepoURL), "/")
	if len(parts) > 3 {
		return parts[3]
	}
	return ""
}

// SeverityTally counts findings per severity bucket.
func (r Report) SeverityTally() (high, medium, low int) {
	for _, finding := range r.Findings {
		switch finding.Severity {
		case SeverityHigh:
			high++
		case SeverityLow:
			low++
		default:
			medium++
		}
	}
	return high, medium, low
}

// FlowKind distinguishes the two flow variants sharing one shape.
type FlowKind string

const (
	FlowCustom FlowKind = "custom"
	FlowTest   FlowKind = "test"
)

// FlowFunction is one step in an execution path, identified by its
// signature; immutable from the portal's viewpoint.
type FlowFunction struct {
	Signature string `json:"function_signature"`
	Name      string `json:"function_name"`
	FilePath  string `json:"file_path"`
}

// Flow is a named, ordered sequence of function references describing an
// execution path to analyze. Custom flows carry a numeric id; test flows are
// identified by name. The function list preserves insertion order because it
// represents a call sequence.
type Flow struct {
	Kind      FlowKind       `json:"type"`
	ID        int64          `json:"id,omitempty"`
	Name      string         `json:"name"`
	FilePath  string         `json:"file_path,omitempty"`
	Functions []FlowFunction `json:"flow"`
}

// Scope is the derived in/out file partition computed for one audit;
// fetched once per audit and never mutated here.
type Scope struct {
	InScopeFiles    []string `json:"in_scope_files"`
	OutOfScopeFiles []string `json:"out_of_scope_files"`
}
