package audits

import (
	"context"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/backend"
	"github.com/auditgate/portal/internal/web/modules"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
)

type backendGateway struct {
	report *backend.ReportClient
	flow   *backend.FlowClient
}

func newBackendGateway(deps modules.Dependencies) Gateway {
	if deps.Backend == nil {
		return nil
	}
	return backendGateway{report: deps.Backend.Report, flow: deps.Backend.Flow}
}

func (g backendGateway) ReportDetails(ctx context.Context, reportID int64) (audit.Report, error) {
	report, err := g.report.ReportDetails(ctx, reportID)
	if err != nil {
		return audit.Report{}, apperrors.FromBackend(err)
	}
	return report, nil
}

func (g backendGateway) AuditScope(ctx context.Context, auditID int64) (audit.Scope, error) {
	scope, err := g.flow.AuditScope(ctx, auditID)
	if err != nil {
		return audit.Scope{}, apperrors.FromBackend(err)
	}
	return scope, nil
}

func (g backendGateway) ListFlows(ctx context.Context, repositoryID int64) ([]audit.Flow, error) {
	flows, err := g.flow.ListFlows(ctx, repositoryID)
	if err != nil {
		return nil, apperrors.FromBackend(err)
	}
	return flows, nil
}

func (g backendGateway) ListFunctions(ctx context.Context, repositoryID int64) ([]audit.FlowFunction, error) {
	functions, err := g.flow.ListFunctions(ctx, repositoryID)
	if err != nil {
		return nil, apperrors.FromBackend(err)
	}
	return functions, nil
}

func (g backendGateway) CreateCustomFlow(ctx context.Context, repositoryID int64, name string, functions []audit.FlowFunction) error {
	if err := g.flow.CreateCustomFlow(ctx, repositoryID, name, functions); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}

func (g backendGateway) SubmitScan(ctx context.Context, repositoryID int64, flowIDs []int64, testNames []string) error {
	if err := g.flow.SubmitScan(ctx, repositoryID, flowIDs, testNames); err != nil {
		return apperrors.FromBackend(err)
	}
	return nil
}
