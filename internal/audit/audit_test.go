package audit

import "testing"

func TestValidTransitionChain(t *testing.T) {
	t.Parallel()

	allowed := [][2]ReportStatus{
		{StatusQueue, StatusAIReview},
		{StatusAIReview, StatusAuditorReview},
		{StatusAuditorReview, StatusNeedDevRemediation},
		{StatusAuditorReview, StatusDevRemediated},
		{StatusNeedDevRemediation, StatusDevRemediated},
		{StatusNeedDevRemediation, StatusDone},
		{StatusDevRemediated, StatusNeedDevRemediation},
		{StatusDevRemediated, StatusDone},
	}
	for _, pair := range allowed {
		if !ValidTransition(pair[0], pair[1]) {
			t.Fatalf("transition %s -> %s should be allowed", pair[0], pair[1])
		}
	}
}

func TestValidTransitionRejectsBackwards(t *testing.T) {
	t.Parallel()

	rejected := [][2]ReportStatus{
		{StatusAIReview, StatusQueue},
		{StatusAuditorReview, StatusAIReview},
		{StatusDone, StatusDevRemediated},
		{StatusQueue, StatusDone},
		{StatusDone, StatusQueue},
	}
	for _, pair := range rejected {
		if ValidTransition(pair[0], pair[1]) {
			t.Fatalf("transition %s -> %s should be rejected", pair[0], pair[1])
		}
	}
}

func TestRemediationBranchAlternates(t *testing.T) {
	t.Parallel()

	if !ValidTransition(StatusNeedDevRemediation, StatusDevRemediated) {
		t.Fatal("remediation -> remediated should be allowed")
	}
	if !ValidTransition(StatusDevRemediated, StatusNeedDevRemediation) {
		t.Fatal("remediated -> remediation should be allowed")
	}
}

func TestParseSeverityDefaultsToMedium(t *testing.T) {
	t.Parallel()

	cases := map[string]Severity{
		"low":      SeverityLow,
		"HIGH":     SeverityHigh,
		" medium ": SeverityMedium,
		"":         SeverityMedium,
		"critical": SeverityMedium,
	}
	for raw, want := range cases {
		if got := ParseSeverity(raw); got != want {
			t.Fatalf("ParseSeverity(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestStatusLabels(t *testing.T) {
	t.Parallel()

	if got := StatusQueue.Label(); got != "In Queue" {
		t.Fatalf("StatusQueue.Label() = %q", got)
	}
	if got := StatusDone.Label(); got != "Completed" {
		t.Fatalf("StatusDone.Label() = %q", got)
	}
	if got := FindingNotMitigated.Label(); got != "Not Mitigated" {
		t.Fatalf("FindingNotMitigated.Label() = %q", got)
	}
	if got := FindingStatus("bogus").Label(); got != "Not Mitigated" {
		t.Fatalf("unknown mitigation label = %q", got)
	}
}

func TestReportNames(t *testing.T) {
	t.Parallel()

	report := Report{RepoURL: "https://github.com/acme/vault-core"}
	if got := report.RepoShortName(); got != "vault-core" {
		t.Fatalf("RepoShortName = %q", got)
	}
	if got := report.ClientName(); got != "acme" {
		t.Fatalf("ClientName = %q", got)
	}

	report.Username = "acme-dev"
	report.RepoName = "vault"
	if got := report.RepoShortName(); got != "vault" {
		t.Fatalf("RepoShortName with RepoName = %q", got)
	}
	if got := report.ClientName(); got != "acme-dev" {
		t.Fatalf("ClientName with Username = %q", got)
	}
}

func TestSeverityTally(t *testing.T) {
	t.Parallel()

	report := Report{Findings: []Finding{
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
		{Severity: SeverityLow},
		{Severity: Severity("")},
	}}
	high, medium, low := report.SeverityTally()
	if high != 2 || medium != 2 || low != 1 {
		t.Fatalf("tally = %d/%d/%d", high, medium, low)
	}
}
