package audits

import (
	"context"
	"sync"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/session"
)

type scanCall struct {
	repositoryID int64
	flowIDs      []int64
	testNames    []string
}

type fakeGateway struct {
	mu sync.Mutex

	report  audit.Report
	scope   audit.Scope
	flows   []audit.Flow
	catalog []audit.FlowFunction

	reportErr error
	scopeErr  error
	flowsErr  error
	scanErr   error

	functionCalls int
	createdFlows  []audit.Flow
	scans         []scanCall
	scanDone      chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{scanDone: make(chan struct{}, 8)}
}

func (f *fakeGateway) ReportDetails(context.Context, int64) (audit.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reportErr != nil {
		return audit.Report{}, f.reportErr
	}
	return f.report, nil
}

func (f *fakeGateway) AuditScope(context.Context, int64) (audit.Scope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scopeErr != nil {
		return audit.Scope{}, f.scopeErr
	}
	return f.scope, nil
}

func (f *fakeGateway) ListFlows(context.Context, int64) ([]audit.Flow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flowsErr != nil {
		return nil, f.flowsErr
	}
	return append([]audit.Flow(nil), f.flows...), nil
}

func (f *fakeGateway) ListFunctions(context.Context, int64) ([]audit.FlowFunction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.functionCalls++
	return append([]audit.FlowFunction(nil), f.catalog...), nil
}

func (f *fakeGateway) CreateCustomFlow(_ context.Context, _ int64, name string, functions []audit.FlowFunction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := audit.Flow{
		Kind:      audit.FlowCustom,
		ID:        int64(100 + len(f.createdFlows)),
		Name:      name,
		Functions: functions,
	}
	f.createdFlows = append(f.createdFlows, created)
	f.flows = append([]audit.Flow{created}, f.flows...)
	return nil
}

func (f *fakeGateway) SubmitScan(_ context.Context, repositoryID int64, flowIDs []int64, testNames []string) error {
	f.mu.Lock()
	err := f.scanErr
	if err == nil {
		f.scans = append(f.scans, scanCall{
			repositoryID: repositoryID,
			flowIDs:      append([]int64(nil), flowIDs...),
			testNames:    append([]string(nil), testNames...),
		})
	}
	f.mu.Unlock()
	f.scanDone <- struct{}{}
	return err
}

func (f *fakeGateway) scanCalls() []scanCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scanCall(nil), f.scans...)
}

type fakeDirectory struct {
	snapshot      session.Snapshot
	refreshResult session.Result
	refreshCalls  int
}

func (f *fakeDirectory) Snapshot() session.Snapshot {
	return f.snapshot
}

func (f *fakeDirectory) Refresh(context.Context) session.Result {
	f.refreshCalls++
	return f.refreshResult
}
