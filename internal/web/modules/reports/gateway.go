package reports

import (
	"context"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/backend"
	"github.com/auditgate/portal/internal/web/modules"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
)

type backendGateway struct {
	report *backend.ReportClient
}

func newBackendGateway(deps modules.Dependencies) Gateway {
	if deps.Backend == nil {
		return nil
	}
	return backendGateway{report: deps.Backend.Report}
}

func (g backendGateway) ReportDetails(ctx context.Context, reportID int64) (audit.Report, error) {
	report, err := g.report.ReportDetails(ctx, reportID)
	if err != nil {
		return audit.Report{}, apperrors.FromBackend(err)
	}
	return report, nil
}

func (g backendGateway) UpdateSummary(ctx context.Context, reportID int64, summary string) error {
	if err := g.report.UpdateSummary(ctx, reportID, summary); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}

func (g backendGateway) CreateFinding(ctx context.Context, reportID int64, input backend.FindingInput) (audit.Finding, error) {
	finding, err := g.report.CreateFinding(ctx, reportID, input)
	if err != nil {
		return audit.Finding{}, apperrors.FromBackend(err)
	}
	return finding, nil
}

func (g backendGateway) UpdateFinding(ctx context.Context, findingID int64, update backend.FindingUpdate) error {
	if err := g.report.UpdateFinding(ctx, findingID, update); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}

func (g backendGateway) DeleteFinding(ctx context.Context, findingID int64) error {
	if err := g.report.DeleteFinding(ctx, findingID); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}

func (g backendGateway) SubmitReport(ctx context.Context, reportID int64, status audit.ReportStatus) error {
	if err := g.report.SubmitReport(ctx, reportID, status); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}
