package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/platform/authctx"
	"github.com/auditgate/portal/internal/platform/config"
)

func newTestServices(t *testing.T, handler http.Handler) (*Services, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := Config{
		AuthBaseURL:     server.URL,
		ReportBaseURL:   server.URL,
		FlowBaseURL:     server.URL,
		WaitlistBaseURL: server.URL,
		HTTPClient:      config.DefaultHTTPClient(),
	}
	return New(cfg, nil), server
}

func TestUnauthorizedMessageIsUniform(t *testing.T) {
	t.Parallel()

	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	ctx := context.Background()

	calls := []struct {
		name string
		run  func() error
	}{
		{"CurrentUser", func() error { _, err := services.Auth.CurrentUser(ctx); return err }},
		{"ListReports", func() error { _, err := services.Report.ListReports(ctx); return err }},
		{"ReportDetails", func() error { _, err := services.Report.ReportDetails(ctx, 1); return err }},
		{"UpdateSummary", func() error { return services.Report.UpdateSummary(ctx, 1, "s") }},
		{"CreateFinding", func() error {
			_, err := services.Report.CreateFinding(ctx, 1, FindingInput{Title: "t", Explanation: "e", Recommendation: "r"})
			return err
		}},
		{"UpdateFinding", func() error {
			return services.Report.UpdateFinding(ctx, 1, FindingUpdate{Title: "t", Explanation: "e", Recommendation: "r"})
		}},
		{"DeleteFinding", func() error { return services.Report.DeleteFinding(ctx, 1) }},
		{"SubmitReport", func() error { return services.Report.SubmitReport(ctx, 1, audit.StatusDevRemediated) }},
		{"ListFlows", func() error { _, err := services.Flow.ListFlows(ctx, 1); return err }},
		{"ListFunctions", func() error { _, err := services.Flow.ListFunctions(ctx, 1); return err }},
		{"SubmitScan", func() error { return services.Flow.SubmitScan(ctx, 1, []int64{1}, nil) }},
		{"AuditScope", func() error { _, err := services.Flow.AuditScope(ctx, 1); return err }},
		{"Join", func() error { return services.Waitlist.Join(ctx, "a@b.c") }},
	}
	for _, tc := range calls {
		err := tc.run()
		require.Error(t, err, tc.name)
		assert.True(t, IsUnauthorized(err), tc.name)
		assert.Equal(t, "Unauthorized, try logging in again", err.Error(), tc.name)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	t.Parallel()

	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := services.Report.ListReports(context.Background())
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "HTTP Error 502", err.Error())
}

func TestSessionCookieForwarded(t *testing.T) {
	t.Parallel()

	var gotToken atomic.Value
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			gotToken.Store(cookie.Value)
		}
		_, _ = w.Write([]byte(`{"user":{"id":7}}`))
	}))

	ctx := authctx.WithSessionToken(context.Background(), "tok-xyz")
	user, err := services.Auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "tok-xyz", gotToken.Load())
}

func TestListFlowsNormalizes(t *testing.T) {
	t.Parallel()

	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flow/all/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{
			"custom_flows":[
				{"id":7,"name":"deposit path","file_path":"src/vault.go","flow_funtions":[
					{"function_signature":"Deposit(uint256)","function_name":"Deposit","file_path":"src/vault.go"},
					{"function_signature":"transfer(address,uint256)","function_name":"transfer","file_path":"src/token.go"}
				]},
				{"id":9,"name":"withdraw path","flow_funtions":[]}
			],
			"test_flows":[
				{"name":"reentrancy_check","file_path":"test/reentrancy.t.go","flow":[
					{"function_signature":"testReenter()","function_name":"testReenter","file_path":"test/reentrancy.t.go"}
				]}
			]}}`))
	}))

	flows, err := services.Flow.ListFlows(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, flows, 3)

	assert.Equal(t, audit.FlowCustom, flows[0].Kind)
	assert.Equal(t, int64(7), flows[0].ID)
	assert.Equal(t, "deposit path", flows[0].Name)
	require.Len(t, flows[0].Functions, 2)
	assert.Equal(t, "Deposit", flows[0].Functions[0].Name)
	assert.Equal(t, "transfer", flows[0].Functions[1].Name)

	assert.Equal(t, audit.FlowCustom, flows[1].Kind)
	assert.Equal(t, audit.FlowTest, flows[2].Kind)
	assert.Equal(t, "reentrancy_check", flows[2].Name)
	assert.Zero(t, flows[2].ID)
}

func TestListFlowsCustomsAlwaysPrecedeTests(t *testing.T) {
	t.Parallel()

	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"custom_flows":[],"test_flows":[{"name":"only_test","flow":[]}]}}`))
	}))

	flows, err := services.Flow.ListFlows(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, audit.FlowTest, flows[0].Kind)
}

func TestSubmitScanPayloadCarriesBothArrays(t *testing.T) {
	t.Parallel()

	var body map[string]json.RawMessage
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusOK)
	}))

	err := services.Flow.SubmitScan(context.Background(), 5, []int64{7}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[7]`, string(body["flow_id"]))
	assert.JSONEq(t, `[]`, string(body["test_name"]))
}

func TestSubmitScanRejectsEmptySelection(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))

	err := services.Flow.SubmitScan(context.Background(), 5, nil, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, calls.Load())
}

func TestCreateFindingDefaultsSeverity(t *testing.T) {
	t.Parallel()

	var body map[string]any
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		_, _ = w.Write([]byte(`{"id":11,"title":"Reentrancy","severity":"medium","status":"NOT_MITIGATED"}`))
	}))

	finding, err := services.Report.CreateFinding(context.Background(), 3, FindingInput{
		Title:          "Reentrancy",
		Explanation:    "external call before state update",
		Recommendation: "apply checks-effects-interactions",
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", body["severity"])
	assert.Equal(t, int64(11), finding.ID)
	assert.Equal(t, audit.FindingNotMitigated, finding.Status)
}

func TestCreateFindingValidationSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))

	_, err := services.Report.CreateFinding(context.Background(), 3, FindingInput{Title: "  "})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	err = services.Report.SubmitReport(context.Background(), 3, audit.StatusDone)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	assert.Zero(t, calls.Load())
}

func TestAuditScopeNeverReturnsNilSlices(t *testing.T) {
	t.Parallel()

	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))

	scope, err := services.Flow.AuditScope(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, scope.InScopeFiles)
	assert.NotNil(t, scope.OutOfScopeFiles)
}

func TestWaitlistJoinPostsEmail(t *testing.T) {
	t.Parallel()

	var body map[string]string
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusCreated)
	}))

	require.NoError(t, services.Waitlist.Join(context.Background(), " dev@example.com "))
	assert.Equal(t, "dev@example.com", body["email"])
}
