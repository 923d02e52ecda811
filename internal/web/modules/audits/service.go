package audits

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/audit/workflow"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
)

// Gateway is the backend surface the audit screens depend on.
type Gateway interface {
	ReportDetails(ctx context.Context, reportID int64) (audit.Report, error)
	AuditScope(ctx context.Context, auditID int64) (audit.Scope, error)
	ListFlows(ctx context.Context, repositoryID int64) ([]audit.Flow, error)
	ListFunctions(ctx context.Context, repositoryID int64) ([]audit.FlowFunction, error)
	CreateCustomFlow(ctx context.Context, repositoryID int64, name string, functions []audit.FlowFunction) error
	SubmitScan(ctx context.Context, repositoryID int64, flowIDs []int64, testNames []string) error
}

type service struct {
	gateway  Gateway
	registry *workflow.Registry
	now      func() time.Time

	mu         sync.Mutex
	scanErrors map[int64]string
}

func newService(gateway Gateway, registry *workflow.Registry) *service {
	return &service{
		gateway:    gateway,
		registry:   registry,
		now:        time.Now,
		scanErrors: make(map[int64]string),
	}
}

// openAudit resolves the audit, enforces the entry guard, and returns a
// loaded workflow. Only queued audits get the flow-selection screen; anything
// further along belongs to its report.
func (s *service) openAudit(ctx context.Context, auditID int64) (*workflow.Workflow, audit.Report, error) {
	report, err := s.gateway.ReportDetails(ctx, auditID)
	if err != nil {
		return nil, audit.Report{}, err
	}
	if report.Status != audit.StatusQueue {
		// the audit left the queue; any selection state is dead
		s.registry.Drop(auditID)
		return nil, report, apperrors.E(apperrors.KindInvalidInput, "audit is no longer queued")
	}
	wf := s.registry.Obtain(auditID, report.RepositoryID)
	if wf.Phase() == workflow.PhaseNotLoaded {
		if err := s.load(ctx, wf); err != nil {
			return wf, report, err
		}
	}
	return wf, report, nil
}

// load fetches the scope and flow list for a workflow. A failure leaves the
// workflow in whatever phase it was; the caller decides how to degrade.
func (s *service) load(ctx context.Context, wf *workflow.Workflow) error {
	scope, err := s.gateway.AuditScope(ctx, wf.AuditID())
	if err != nil {
		return err
	}
	flows, err := s.gateway.ListFlows(ctx, wf.RepositoryID())
	if err != nil {
		return err
	}
	wf.Load(scope, flows)
	return nil
}

func (s *service) lookup(auditID int64) (*workflow.Workflow, bool) {
	return s.registry.Lookup(auditID)
}

// ensureFunctions fetches the function catalog once per workflow lifetime.
func (s *service) ensureFunctions(ctx context.Context, wf *workflow.Workflow) error {
	if wf.FunctionsLoaded() {
		return nil
	}
	functions, err := s.gateway.ListFunctions(ctx, wf.RepositoryID())
	if err != nil {
		return err
	}
	wf.SetFunctions(functions)
	return nil
}

// createFlow resolves the posted signatures against the catalog, preserving
// the posted order because a flow is a call sequence, then re-fetches the
// flow list so the new flow appears with its backend id.
func (s *service) createFlow(ctx context.Context, wf *workflow.Workflow, name string, signatures []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.E(apperrors.KindInvalidInput, "give the flow a name")
	}
	if err := s.ensureFunctions(ctx, wf); err != nil {
		return err
	}
	catalog := make(map[string]audit.FlowFunction)
	for _, fn := range wf.Functions() {
		catalog[fn.Signature] = fn
	}
	functions := make([]audit.FlowFunction, 0, len(signatures))
	for _, signature := range signatures {
		if fn, ok := catalog[signature]; ok {
			functions = append(functions, fn)
		}
	}
	if len(functions) == 0 {
		return apperrors.E(apperrors.KindInvalidInput, "pick at least one function for the flow")
	}
	if err := s.gateway.CreateCustomFlow(ctx, wf.RepositoryID(), name, functions); err != nil {
		return err
	}
	flows, err := s.gateway.ListFlows(ctx, wf.RepositoryID())
	if err != nil {
		return err
	}
	wf.Load(wf.Scope(), flows)
	return nil
}

// startScan validates the selection, moves the workflow into the requested
// phase, and submits in the background so the browser can poll the simulated
// indicator. The submit context must outlive the request; the caller builds
// it from the session token alone.
func (s *service) startScan(submitCtx context.Context, wf *workflow.Workflow) error {
	if err := wf.BeginScan(s.now()); err != nil {
		return err
	}
	s.setScanError(wf.AuditID(), "")
	flowIDs, testNames := wf.PartitionSelection()
	go func() {
		if err := s.gateway.SubmitScan(submitCtx, wf.RepositoryID(), flowIDs, testNames); err != nil {
			s.setScanError(wf.AuditID(), err.Error())
			wf.RevertToSelection()
			return
		}
		wf.AcknowledgeScan()
	}()
	return nil
}

func (s *service) setScanError(auditID int64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		delete(s.scanErrors, auditID)
		return
	}
	s.scanErrors[auditID] = message
}

func (s *service) scanError(auditID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanErrors[auditID]
}
