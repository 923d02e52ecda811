package reports

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/auditgate/portal/internal/audit"
	"github.com/auditgate/portal/internal/audit/editor"
	"github.com/auditgate/portal/internal/web/modules"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
	"github.com/auditgate/portal/internal/web/platform/flash"
)

const testReportID = int64(12)

func reviewReport() audit.Report {
	return audit.Report{
		ID:        testReportID,
		RepoName:  "vault-core",
		Username:  "acme",
		Status:    audit.StatusAuditorReview,
		Summary:   "Initial pass complete.",
		CreatedAt: time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC),
		Findings: []audit.Finding{
			{
				ID:             501,
				ReportID:       testReportID,
				Title:          "Reentrancy in withdraw",
				Severity:       audit.SeverityHigh,
				Explanation:    "External call before state update.",
				Recommendation: "Apply checks-effects-interactions.",
				Status:         audit.FindingNotMitigated,
			},
		},
	}
}

func newTestModule(t *testing.T, gateway Gateway) (*http.ServeMux, *editor.Registry) {
	t.Helper()
	registry := editor.NewRegistry()
	m := NewWithGateway(gateway, modules.Dependencies{Editors: registry})
	mount, err := m.Mount()
	if err != nil {
		t.Fatal(err)
	}
	mux, ok := mount.Handler.(*http.ServeMux)
	if !ok {
		t.Fatal("mount handler is not a mux")
	}
	return mux, registry
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func postForm(mux *http.ServeMux, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestShowRendersEditableReport(t *testing.T) {
	t.Parallel()

	mux, _ := newTestModule(t, newFakeGateway(reviewReport()))
	rr := get(mux, "/app/audits/reports/12")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		"Reentrancy in withdraw",
		"Save summary",
		"Save finding",
		"Add finding",
		"Request remediation",
		"Mark remediated",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestShowRendersCompletedReportReadOnly(t *testing.T) {
	t.Parallel()

	report := reviewReport()
	report.Status = audit.StatusDone
	mux, _ := newTestModule(t, newFakeGateway(report))
	body := get(mux, "/app/audits/reports/12").Body.String()

	if !strings.Contains(body, "Reentrancy in withdraw") {
		t.Fatal("finding missing")
	}
	for _, marker := range []string{"Save summary", "Save finding", "Add finding", "Request remediation"} {
		if strings.Contains(body, marker) {
			t.Fatalf("completed report must not offer %q", marker)
		}
	}
}

func TestReadOnlyReportKeepsNoShadow(t *testing.T) {
	t.Parallel()

	report := reviewReport()
	report.Status = audit.StatusDone
	gateway := newFakeGateway(report)
	mux, registry := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	if _, ok := registry.Lookup(testReportID); ok {
		t.Fatal("read-only report left a shadow behind")
	}
	rr := postForm(mux, "/app/audits/reports/12/summary", url.Values{"summary": {"too late"}})
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(gateway.summaries) != 0 {
		t.Fatalf("read-only mutation reached the gateway: %v", gateway.summaries)
	}
}

func TestShowMissingReportRedirectsToErrorScreen(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(audit.Report{})
	gateway.reportErr = apperrors.E(apperrors.KindNotFound, "HTTP Error 404")
	mux, _ := newTestModule(t, gateway)
	rr := get(mux, "/app/audits/reports/12")

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/error?cause=Report+not+found" {
		t.Fatalf("location = %q", got)
	}
}

func TestSummarySaveUpdatesShadow(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, registry := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	rr := postForm(mux, "/app/audits/reports/12/summary", url.Values{"summary": {"All findings verified."}})
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(gateway.summaries) != 1 || gateway.summaries[0] != "All findings verified." {
		t.Fatalf("summaries = %v", gateway.summaries)
	}
	e, _ := registry.Lookup(testReportID)
	if got := e.Report().Summary; got != "All findings verified." {
		t.Fatalf("shadow summary = %q", got)
	}
}

func TestBlankSummaryRejectedWithoutNetwork(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, _ := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	rr := postForm(mux, "/app/audits/reports/12/summary", url.Values{"summary": {"   "}})
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(gateway.summaries) != 0 {
		t.Fatalf("blank summary reached the gateway: %v", gateway.summaries)
	}
	if !hasFlashCookie(rr) {
		t.Fatal("missing flash cookie")
	}
}

func TestCreateFindingDefaultsSeverityAndGrowsShadow(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, registry := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	form := url.Values{
		"title":          {"Unchecked return value"},
		"explanation":    {"Transfer result ignored."},
		"recommendation": {"Check the boolean result."},
	}
	rr := postForm(mux, "/app/audits/reports/12/findings", form)
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(gateway.created) != 1 {
		t.Fatalf("created = %v", gateway.created)
	}
	if gateway.created[0].Severity != audit.SeverityMedium {
		t.Fatalf("severity = %q", gateway.created[0].Severity)
	}
	e, _ := registry.Lookup(testReportID)
	if got := len(e.Report().Findings); got != 2 {
		t.Fatalf("shadow findings = %d", got)
	}
}

func TestCreateFindingValidationSkipsNetwork(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, _ := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	form := url.Values{"title": {"Missing pieces"}}
	rr := postForm(mux, "/app/audits/reports/12/findings", form)
	if len(gateway.created) != 0 {
		t.Fatalf("invalid finding reached the gateway: %v", gateway.created)
	}
	if !hasFlashCookie(rr) {
		t.Fatal("missing flash cookie")
	}
}

func TestUpdateFindingAppliesFullFieldSet(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, registry := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	form := url.Values{
		"title":            {"Reentrancy in withdraw"},
		"severity":         {"high"},
		"explanation":      {"External call before state update."},
		"recommendation":   {"Apply checks-effects-interactions."},
		"auditor_response": {"Mutex added in commit abc123, partially effective."},
		"status":           {string(audit.FindingPartiallyMitigated)},
	}
	rr := postForm(mux, "/app/audits/reports/12/findings/501", form)
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	update, ok := gateway.updated[501]
	if !ok {
		t.Fatal("update never reached the gateway")
	}
	if update.AuditorResponse == "" || update.Status != audit.FindingPartiallyMitigated {
		t.Fatalf("update = %+v", update)
	}
	e, _ := registry.Lookup(testReportID)
	finding, _ := e.Finding(501)
	if finding.Status != audit.FindingPartiallyMitigated {
		t.Fatalf("shadow status = %q", finding.Status)
	}
}

func TestDeleteFindingRequiresConfirmation(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, registry := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	confirmReq := httptest.NewRequest(http.MethodGet, "/app/audits/reports/12/findings/501/delete", nil)
	confirmReq.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, confirmReq)

	body := rr.Body.String()
	if !strings.Contains(body, "Delete finding") || !strings.Contains(body, "Confirm") {
		t.Fatalf("confirmation dialog missing: %q", body)
	}
	if len(gateway.deleted) != 0 {
		t.Fatal("confirmation must not delete")
	}

	postForm(mux, "/app/audits/reports/12/findings/501/delete", url.Values{})
	if len(gateway.deleted) != 1 || gateway.deleted[0] != 501 {
		t.Fatalf("deleted = %v", gateway.deleted)
	}
	e, _ := registry.Lookup(testReportID)
	if got := len(e.Report().Findings); got != 0 {
		t.Fatalf("shadow findings = %d", got)
	}

	// the second delete finds nothing and must not call the backend again
	rr = postForm(mux, "/app/audits/reports/12/findings/501/delete", url.Values{})
	if len(gateway.deleted) != 1 {
		t.Fatalf("deleted twice: %v", gateway.deleted)
	}
	if !hasFlashCookie(rr) {
		t.Fatal("missing flash cookie")
	}
}

func TestSubmitReportConfirmThenSubmit(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, registry := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	confirmReq := httptest.NewRequest(http.MethodGet, "/app/audits/reports/12/submit?status=NEED_DEV_REMEDIATION", nil)
	confirmReq.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, confirmReq)
	if !strings.Contains(rr.Body.String(), "request remediation") {
		t.Fatalf("confirmation dialog missing: %q", rr.Body.String())
	}
	if len(gateway.submissions) != 0 {
		t.Fatal("confirmation must not submit")
	}

	postForm(mux, "/app/audits/reports/12/submit", url.Values{"status": {"NEED_DEV_REMEDIATION"}})
	if len(gateway.submissions) != 1 || gateway.submissions[0] != audit.StatusNeedDevRemediation {
		t.Fatalf("submissions = %v", gateway.submissions)
	}
	e, _ := registry.Lookup(testReportID)
	if got := e.Report().Status; got != audit.StatusNeedDevRemediation {
		t.Fatalf("shadow status = %q", got)
	}
}

func TestSubmitRejectsNonRemediationStatus(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(reviewReport())
	mux, _ := newTestModule(t, gateway)
	get(mux, "/app/audits/reports/12")

	rr := postForm(mux, "/app/audits/reports/12/submit", url.Values{"status": {"DONE"}})
	if len(gateway.submissions) != 0 {
		t.Fatalf("submissions = %v", gateway.submissions)
	}
	if !hasFlashCookie(rr) {
		t.Fatal("missing flash cookie")
	}
}

func hasFlashCookie(rr *httptest.ResponseRecorder) bool {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flash.CookieName && cookie.MaxAge >= 0 && cookie.Value != "" {
			return true
		}
	}
	return false
}
