package reports

import (
	"context"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/audit/editor"
	"github.com/auditgate/portal/internal/backend"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
)

// Gateway is the backend surface the report editor depends on.
type Gateway interface {
	ReportDetails(ctx context.Context, reportID int64) (audit.Report, error)
	UpdateSummary(ctx context.Context, reportID int64, summary string) error
	CreateFinding(ctx context.Context, reportID int64, input backend.FindingInput) (audit.Finding, error)
	UpdateFinding(ctx context.Context, findingID int64, update backend.FindingUpdate) error
	DeleteFinding(ctx context.Context, findingID int64) error
	SubmitReport(ctx context.Context, reportID int64, status audit.ReportStatus) error
}

type service struct {
	gateway  Gateway
	registry *editor.Registry
}

func newService(gateway Gateway, registry *editor.Registry) *service {
	return &service{gateway: gateway, registry: registry}
}

// open fetches the report and replaces any stale shadow from an earlier
// visit. Mutating routes use lookup instead so edits keep accumulating on
// the same shadow.
func (s *service) open(ctx context.Context, reportID int64) (*editor.Editor, error) {
	report, err := s.gateway.ReportDetails(ctx, reportID)
	if err != nil {
		return nil, err
	}
	e := editor.New(report)
	if !isEditable(report.Status) {
		// read-only screens keep no shadow; lookups on mutation routes fail
		// and redirect back to the report
		s.registry.Drop(reportID)
		return e, nil
	}
	s.registry.Store(reportID, e)
	return e, nil
}

func (s *service) lookup(reportID int64) (*editor.Editor, bool) {
	return s.registry.Lookup(reportID)
}

func (s *service) saveSummary(ctx context.Context, e *editor.Editor, summary string) error {
	if err := editor.ValidateSummary(summary); err != nil {
		return apperrors.E(apperrors.KindInvalidInput, err.Error())
	}
	report := e.Report()
	if err := s.gateway.UpdateSummary(ctx, report.ID, summary); err != nil {
		return err
	}
	e.SetSummary(summary)
	return nil
}

func (s *service) createFinding(ctx context.Context, e *editor.Editor, draft editor.FindingDraft) error {
	if err := draft.Validate(); err != nil {
		return apperrors.E(apperrors.KindInvalidInput, err.Error())
	}
	report := e.Report()
	stored, err := s.gateway.CreateFinding(ctx, report.ID, backend.FindingInput{
		Title:          draft.Title,
		Severity:       draft.Severity,
		Explanation:    draft.Explanation,
		Recommendation: draft.Recommendation,
	})
	if err != nil {
		return err
	}
	e.AddFinding(stored)
	return nil
}

func (s *service) updateFinding(ctx context.Context, e *editor.Editor, findingID int64, draft editor.FindingDraft) error {
	if err := draft.Validate(); err != nil {
		return apperrors.E(apperrors.KindInvalidInput, err.Error())
	}
	if _, ok := e.Finding(findingID); !ok {
		return apperrors.E(apperrors.KindNotFound, editor.ErrUnknownFinding.Error())
	}
	if err := s.gateway.UpdateFinding(ctx, findingID, backend.FindingUpdate{
		Title:           draft.Title,
		Severity:        draft.Severity,
		Explanation:     draft.Explanation,
		Recommendation:  draft.Recommendation,
		AuditorResponse: draft.AuditorResponse,
		Status:          draft.Status,
	}); err != nil {
		return err
	}
	return e.UpdateFinding(findingID, draft)
}

func (s *service) deleteFinding(ctx context.Context, e *editor.Editor, findingID int64) error {
	if _, ok := e.Finding(findingID); !ok {
		return apperrors.E(apperrors.KindNotFound, editor.ErrUnknownFinding.Error())
	}
	if err := s.gateway.DeleteFinding(ctx, findingID); err != nil {
		return err
	}
	return e.RemoveFinding(findingID)
}

func (s *service) submit(ctx context.Context, e *editor.Editor, status audit.ReportStatus) error {
	if status != audit.StatusNeedDevRemediation && status != audit.StatusDevRemediated {
		return apperrors.E(apperrors.KindInvalidInput, "pick a remediation outcome")
	}
	report := e.Report()
	if !audit.ValidTransition(report.Status, status) {
		return apperrors.E(apperrors.KindInvalidInput, "the report cannot move to that status")
	}
	if err := s.gateway.SubmitReport(ctx, report.ID, status); err != nil {
		return err
	}
	e.SetStatus(status)
	return nil
}
