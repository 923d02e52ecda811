package reports

import (
	"context"
	"sync"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/backend"
)

type fakeGateway struct {
	mu sync.Mutex

	report    audit.Report
	reportErr error

	nextFindingID int64

	summaries   []string
	created     []backend.FindingInput
	updated     map[int64]backend.FindingUpdate
	deleted     []int64
	submissions []audit.ReportStatus
}

func newFakeGateway(report audit.Report) *fakeGateway {
	return &fakeGateway{
		report:        report,
		nextFindingID: 900,
		updated:       make(map[int64]backend.FindingUpdate),
	}
}

func (f *fakeGateway) ReportDetails(context.Context, int64) (audit.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reportErr != nil {
		return audit.Report{}, f.reportErr
	}
	return f.report, nil
}

func (f *fakeGateway) UpdateSummary(_ context.Context, _ int64, summary string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, summary)
	return nil
}

func (f *fakeGateway) CreateFinding(_ context.Context, reportID int64, input backend.FindingInput) (audit.Finding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	f.nextFindingID++
	return audit.Finding{
		ID:             f.nextFindingID,
		ReportID:       reportID,
		Title:          input.Title,
		Severity:       audit.ParseSeverity(string(input.Severity)),
		Explanation:    input.Explanation,
		Recommendation: input.Recommendation,
		Status:         audit.FindingNotMitigated,
	}, nil
}

func (f *fakeGateway) UpdateFinding(_ context.Context, findingID int64, update backend.FindingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[findingID] = update
	return nil
}

func (f *fakeGateway) DeleteFinding(_ context.Context, findingID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, findingID)
	return nil
}

func (f *fakeGateway) SubmitReport(_ context.Context, _ int64, status audit.ReportStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, status)
	return nil
}
