package editor

import (
	"errors"
	"testing"

	"github.com/auditgate/portal/internal/audit"
)

func sampleReport() audit.Report {
	return audit.Report{
		ID:      3,
		Status:  audit.StatusAuditorReview,
		Summary: "initial pass",
		Findings: []audit.Finding{
			{ID: 11, Title: "Reentrancy", Severity: audit.SeverityHigh, Status: audit.FindingNotMitigated},
			{ID: 12, Title: "Unchecked return", Severity: audit.SeverityLow, Status: audit.FindingNotMitigated},
		},
	}
}

func TestValidateSummaryRejectsBlank(t *testing.T) {
	t.Parallel()

	if err := ValidateSummary("   \n\t"); !errors.Is(err, ErrEmptySummary) {
		t.Fatalf("err = %v", err)
	}
	if err := ValidateSummary("looks fine"); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	t.Parallel()

	e := New(sampleReport())
	e.SetSummary("revised after remediation review")
	if got := e.Report().Summary; got != "revised after remediation review" {
		t.Fatalf("summary = %q", got)
	}
	if got := len(e.Report().Findings); got != 2 {
		t.Fatalf("findings disturbed, len = %d", got)
	}
}

func TestFindingDraftValidation(t *testing.T) {
	t.Parallel()

	draft := FindingDraft{Title: "t", Explanation: " ", Recommendation: "r"}
	if err := draft.Validate(); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("err = %v", err)
	}
	draft.Explanation = "external call before state update"
	if err := draft.Validate(); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestAddFindingAppends(t *testing.T) {
	t.Parallel()

	e := New(sampleReport())
	e.AddFinding(audit.Finding{ID: 13, Title: "Integer overflow", Status: audit.FindingNotMitigated})
	findings := e.Report().Findings
	if len(findings) != 3 || findings[2].ID != 13 {
		t.Fatalf("findings = %+v", findings)
	}
}

func TestUpdateFindingAppliesFullFieldSet(t *testing.T) {
	t.Parallel()

	e := New(sampleReport())
	err := e.UpdateFinding(11, FindingDraft{
		Title:           "Reentrancy in withdraw",
		Severity:        audit.SeverityMedium,
		Explanation:     "state written after transfer",
		Recommendation:  "reorder the writes",
		AuditorResponse: "fix verified on branch",
		Status:          audit.FindingMitigationConfirmed,
	})
	if err != nil {
		t.Fatal(err)
	}
	updated, ok := e.Finding(11)
	if !ok {
		t.Fatal("finding missing")
	}
	if updated.Title != "Reentrancy in withdraw" || updated.Severity != audit.SeverityMedium {
		t.Fatalf("finding = %+v", updated)
	}
	if updated.AuditorResponse != "fix verified on branch" || updated.Status != audit.FindingMitigationConfirmed {
		t.Fatalf("finding = %+v", updated)
	}

	if err := e.UpdateFinding(99, FindingDraft{}); !errors.Is(err, ErrUnknownFinding) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoveFindingExactID(t *testing.T) {
	t.Parallel()

	e := New(sampleReport())
	if err := e.RemoveFinding(11); err != nil {
		t.Fatal(err)
	}
	findings := e.Report().Findings
	if len(findings) != 1 || findings[0].ID != 12 {
		t.Fatalf("findings = %+v", findings)
	}
	if err := e.RemoveFinding(11); !errors.Is(err, ErrUnknownFinding) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestSetStatusShadowsSubmission(t *testing.T) {
	t.Parallel()

	e := New(sampleReport())
	e.SetStatus(audit.StatusNeedDevRemediation)
	if got := e.Report().Status; got != audit.StatusNeedDevRemediation {
		t.Fatalf("status = %s", got)
	}
	// re-submission with the same status is allowed; the backend arbitrates
	e.SetStatus(audit.StatusNeedDevRemediation)
	if got := e.Report().Status; got != audit.StatusNeedDevRemediation {
		t.Fatalf("status = %s", got)
	}
}

func TestRegistryReplacesStaleShadow(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if _, ok := registry.Lookup(3); ok {
		t.Fatal("unexpected editor")
	}
	first := New(sampleReport())
	registry.Store(3, first)
	second := New(sampleReport())
	registry.Store(3, second)
	got, ok := registry.Lookup(3)
	if !ok || got != second {
		t.Fatal("stale editor survived Store")
	}
	registry.Drop(3)
	if _, ok := registry.Lookup(3); ok {
		t.Fatal("editor survived Drop")
	}
}
