// Package backend wraps the four auditor-platform services behind typed
// clients with uniform error semantics. Wrappers never mutate shared state;
// each call is one network operation with the browser session cookie
// forwarded, and there are no automatic retries.
package backend

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/platform/authctx"
	"github.com/auditgate/portal/internal/platform/config"
	"github.com/auditgate/portal/internal/platform/logging"
)

// SessionCookieName is the browser cookie forwarded to every service.
const SessionCookieName = "ag_session"

// Config locates the backend services. Base URLs come from environment
// configuration, one per service.
type Config struct {
	AuthBaseURL     string
	ReportBaseURL   string
	FlowBaseURL     string
	WaitlistBaseURL string
	HTTPClient      config.HTTPClient
}

// Services bundles one typed client per backend service.
type Services struct {
	Auth     *AuthClient
	Report   *ReportClient
	Flow     *FlowClient
	Waitlist *WaitlistClient
}

// New builds all service clients from shared tuning and logging.
func New(cfg Config, logger hclog.Logger) *Services {
	return &Services{
		Auth:     &AuthClient{http: newRestyClient(cfg.AuthBaseURL, cfg.HTTPClient, logger)},
		Report:   &ReportClient{http: newRestyClient(cfg.ReportBaseURL, cfg.HTTPClient, logger)},
		Flow:     &FlowClient{http: newRestyClient(cfg.FlowBaseURL, cfg.HTTPClient, logger)},
		Waitlist: &WaitlistClient{http: newRestyClient(cfg.WaitlistBaseURL, cfg.HTTPClient, logger)},
	}
}

func newRestyClient(baseURL string, tuning config.HTTPClient, logger hclog.Logger) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(tuning.Timeout).
		SetDebug(tuning.Debug).
		SetHeader("Accept", "application/json")
	if logger != nil {
		client.SetLogger(logging.NewRestyAdapter(logger))
	}
	if !tuning.TLSVerify() {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if tuning.Proxy != "" {
		client.SetProxy(tuning.Proxy)
	}
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := authctx.SessionToken(req.Context()); token != "" {
			req.SetCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		}
		return nil
	})
	return client
}

// call executes one request and maps non-2xx statuses to the shared error
// taxonomy. Network failures propagate as-is.
func call(ctx context.Context, client *resty.Client, method, path string, body any) (*resty.Response, error) {
	req := client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode())
	}
	return resp, nil
}

func callJSON[T any](ctx context.Context, client *resty.Client, method, path string, body any) (T, error) {
	var out T
	resp, err := call(ctx, client, method, path, body)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, err
	}
	return out, nil
}
