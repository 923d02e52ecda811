// Package web wires the auditor portal service from environment
// configuration and runs it.
package web

import (
	"context"
	"fmt"
	"time"

	"github.com/auditgate/portal/internal/audit/editor"
	"github.com/auditgate/portal/internal/audit/workflow"
	"github.com/auditgate/portal/internal/backend"
	"github.com/auditgate/portal/internal/platform/config"
	"github.com/auditgate/portal/internal/platform/logging"
	"github.com/auditgate/portal/internal/platform/otel"
	"github.com/auditgate/portal/internal/session"
	"github.com/auditgate/portal/internal/web"
	"github.com/auditgate/portal/internal/web/modules"
)

const (
	serviceName         = "auditgate-portal"
	otelShutdownTimeout = 5 * time.Second
)

// Config holds the web command configuration, loaded from AUDITGATE_*
// environment variables.
type Config struct {
	HTTPAddr           string `env:"AUDITGATE_HTTP_ADDR" envDefault:"localhost:8080"`
	AuthServiceURL     string `env:"AUDITGATE_AUTH_SERVICE_URL" envDefault:"http://localhost:8084"`
	ReportServiceURL   string `env:"AUDITGATE_REPORT_SERVICE_URL" envDefault:"http://localhost:8085"`
	FlowServiceURL     string `env:"AUDITGATE_FLOW_SERVICE_URL" envDefault:"http://localhost:8086"`
	WaitlistServiceURL string `env:"AUDITGATE_WAITLIST_SERVICE_URL" envDefault:"http://localhost:8087"`

	// LoginURL overrides the sign-in destination when the auth service's
	// browser entry point lives on another origin.
	LoginURL string `env:"AUDITGATE_LOGIN_URL"`

	LogLevel             string `env:"AUDITGATE_LOG_LEVEL" envDefault:"info"`
	HTTPClientConfigPath string `env:"AUDITGATE_HTTP_CLIENT_CONFIG"`
	TrustForwardedProto  bool   `env:"AUDITGATE_TRUST_FORWARDED_PROTO"`
}

// ParseConfig loads the command configuration from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the portal web server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(serviceName, cfg.LogLevel)

	shutdown, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	tuning, err := config.LoadHTTPClient(cfg.HTTPClientConfigPath)
	if err != nil {
		return err
	}

	services := backend.New(backend.Config{
		AuthBaseURL:     cfg.AuthServiceURL,
		ReportBaseURL:   cfg.ReportServiceURL,
		FlowBaseURL:     cfg.FlowServiceURL,
		WaitlistBaseURL: cfg.WaitlistServiceURL,
		HTTPClient:      tuning,
	}, logger)

	server, err := web.NewServer(web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Dependencies: modules.Dependencies{
			Session:   session.NewProvider(services.Auth, services.Report, logger),
			Backend:   services,
			Workflows: workflow.NewRegistry(),
			Editors:   editor.NewRegistry(),
			LoginURL:  cfg.LoginURL,
			Logger:    logger,
		},
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
