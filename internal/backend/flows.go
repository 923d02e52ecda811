package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/auditgate/portal/internal/audit"
)

// FlowClient talks to the static-analysis service: execution flows, the
// function catalog, scope, and scan requests.
type FlowClient struct {
	http *resty.Client
}

// customFlowWire and testFlowWire mirror the service's two flow shapes. The
// "flow_funtions" field name matches the wire contract as served.
type customFlowWire struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	FilePath  string               `json:"file_path"`
	Functions []audit.FlowFunction `json:"flow_funtions"`
}

type testFlowWire struct {
	Name      string               `json:"name"`
	FilePath  string               `json:"file_path"`
	Functions []audit.FlowFunction `json:"flow"`
}

type flowsEnvelope struct {
	Data struct {
		CustomFlows []customFlowWire `json:"custom_flows"`
		TestFlows   []testFlowWire   `json:"test_flows"`
	} `json:"data"`
}

// ListFlows fetches both flow variants for a repository and normalizes them
// into one tagged list, custom flows first, each preserving its own order.
func (c *FlowClient) ListFlows(ctx context.Context, repositoryID int64) ([]audit.Flow, error) {
	if repositoryID <= 0 {
		return nil, validationError("repository id is required")
	}
	payload, err := callJSON[flowsEnvelope](ctx, c.http, http.MethodGet, fmt.Sprintf("/flow/all/%d", repositoryID), nil)
	if err != nil {
		return nil, err
	}
	flows := make([]audit.Flow, 0, len(payload.Data.CustomFlows)+len(payload.Data.TestFlows))
	for _, f := range payload.Data.CustomFlows {
		flows = append(flows, audit.Flow{
			Kind:      audit.FlowCustom,
			ID:        f.ID,
			Name:      f.Name,
			FilePath:  f.FilePath,
			Functions: f.Functions,
		})
	}
	for _, f := range payload.Data.TestFlows {
		flows = append(flows, audit.Flow{
			Kind:      audit.FlowTest,
			Name:      f.Name,
			FilePath:  f.FilePath,
			Functions: f.Functions,
		})
	}
	return flows, nil
}

// ListFunctions fetches the repository's full function catalog.
func (c *FlowClient) ListFunctions(ctx context.Context, repositoryID int64) ([]audit.FlowFunction, error) {
	if repositoryID <= 0 {
		return nil, validationError("repository id is required")
	}
	payload, err := callJSON[struct {
		Data []audit.FlowFunction `json:"data"`
	}](ctx, c.http, http.MethodGet, fmt.Sprintf("/functions/%d", repositoryID), nil)
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CreateCustomFlow stores a named, ordered function sequence as a new custom
// flow for the repository.
func (c *FlowClient) CreateCustomFlow(ctx context.Context, repositoryID int64, name string, functions []audit.FlowFunction) error {
	if repositoryID <= 0 {
		return validationError("repository id is required")
	}
	if strings.TrimSpace(name) == "" {
		return validationError("flow name must not be empty")
	}
	if len(functions) == 0 {
		return validationError("a flow needs at least one function")
	}
	body := map[string]any{
		"name": name,
		"flow": functions,
	}
	_, err := call(ctx, c.http, http.MethodPost, fmt.Sprintf("/flow/custom/%d", repositoryID), body)
	return err
}

// SubmitScan requests analysis of the selected flows. Custom flows travel as
// ids, test flows as names; both arrays are always present in the payload
// even when one side is empty.
func (c *FlowClient) SubmitScan(ctx context.Context, repositoryID int64, flowIDs []int64, testNames []string) error {
	if repositoryID <= 0 {
		return validationError("repository id is required")
	}
	if len(flowIDs)+len(testNames) == 0 {
		return validationError("select at least one flow to scan")
	}
	if flowIDs == nil {
		flowIDs = []int64{}
	}
	if testNames == nil {
		testNames = []string{}
	}
	body := map[string]any{
		"flow_id":   flowIDs,
		"test_name": testNames,
	}
	_, err := call(ctx, c.http, http.MethodPost, fmt.Sprintf("/scan/%d", repositoryID), body)
	return err
}

// AuditScope fetches the in/out file partition computed for an audit.
func (c *FlowClient) AuditScope(ctx context.Context, auditID int64) (audit.Scope, error) {
	if auditID <= 0 {
		return audit.Scope{}, validationError("audit id is required")
	}
	payload, err := callJSON[struct {
		Data audit.Scope `json:"data"`
	}](ctx, c.http, http.MethodGet, fmt.Sprintf("/scope/%d", auditID), nil)
	if err != nil {
		return audit.Scope{}, err
	}
	scope := payload.Data
	if scope.InScopeFiles == nil {
		scope.InScopeFiles = []string{}
	}
	if scope.OutOfScopeFiles == nil {
		scope.OutOfScopeFiles = []string{}
	}
	return scope, nil
}
