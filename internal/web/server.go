// Package web composes the auditor portal HTTP surface: public screens,
// the protected /app/ modules, and the middleware stack around them.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	module "github.com/auditgate/portal/internal/web/module"
	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/modules/audits"
	"github.com/auditgate/portal/internal/web/modules/dashboard"
	"github.com/auditgate/portal/internal/web/modules/landing"
	"github.com/auditgate/portal/internal/web/modules/reports"
	"github.com/auditgate/portal/internal/web/modules/sessionops"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	"github.com/auditgate/portal/internal/web/platform/observability"
	"github.com/auditgate/portal/internal/web/platform/requestmeta"
	"github.com/auditgate/portal/internal/web/platform/sessioncookie"
	"github.com/auditgate/portal/internal/web/routepath"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Config defines the inputs for the portal web server.
type Config struct {
	HTTPAddr string

	// TrustForwardedProto enables X-Forwarded-Proto for scheme resolution
	// when the portal runs behind a TLS-terminating proxy.
	TrustForwardedProto bool

	Dependencies modules.Dependencies
}

// Server hosts the portal HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// DefaultPublicModules returns the modules served without a session.
func DefaultPublicModules(deps modules.Dependencies) []module.Module {
	return []module.Module{
		landing.New(deps),
	}
}

// DefaultProtectedModules returns the modules mounted under the
// authenticated /app/ surface.
func DefaultProtectedModules(deps modules.Dependencies) []module.Module {
	return []module.Module{
		dashboard.New(deps),
		audits.New(deps),
		reports.New(deps),
		sessionops.New(deps),
	}
}

// NewHandler assembles the composed portal handler with its middleware
// stack. The session cookie gates the /app/ surface; tokens with a readable
// expiry in the past are treated as absent so doomed backend calls are
// skipped.
func NewHandler(cfg Config) (http.Handler, error) {
	deps := cfg.Dependencies
	if deps.ResolveViewer == nil {
		deps.ResolveViewer = viewerResolver(deps)
	}
	if deps.ResolveSessionToken == nil {
		deps.ResolveSessionToken = resolveSessionToken
	}

	root, err := Compose(ComposeInput{
		AuthRequired:        signedInResolver(),
		LoginURL:            loginLocation(deps),
		PublicModules:       DefaultPublicModules(deps),
		ProtectedModules:    DefaultProtectedModules(deps),
		RequestSchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	return httpx.Chain(root,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(log.Default()),
	), nil
}

// NewServer builds a configured portal server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends. On
// cancellation it performs a bounded shutdown so in-flight requests drain
// before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("auditor portal listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources without draining in-flight requests.
func (s *Server) Close() error {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}

func signedInResolver() func(*http.Request) bool {
	return func(r *http.Request) bool {
		token, ok := sessioncookie.Read(r)
		if !ok {
			return false
		}
		return !sessioncookie.Expired(token, time.Now())
	}
}

func viewerResolver(deps modules.Dependencies) module.ResolveViewer {
	return func(*http.Request) module.Viewer {
		if deps.Session == nil {
			return module.Viewer{}
		}
		snapshot := deps.Session.Snapshot()
		if !snapshot.Authenticated {
			return module.Viewer{}
		}
		return module.Viewer{
			DisplayName: snapshot.User.Name,
			Email:       snapshot.User.Email,
			IsAuditor:   snapshot.User.IsAuditor,
		}
	}
}

func resolveSessionToken(r *http.Request) string {
	token, _ := sessioncookie.Read(r)
	return token
}

func loginLocation(deps modules.Dependencies) string {
	if strings.TrimSpace(deps.LoginURL) != "" {
		return deps.LoginURL
	}
	return routepath.Login
}
