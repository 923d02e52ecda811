// Package audits serves the audit list and the flow-selection screen for
// queued audits: scope display, flow toggling, custom flow creation, and
// AI scan submission with its polled progress indicator.
package audits

import (
	"net/http"

	"github.com/auditgate/portal/internal/audit/workflow"
	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/routepath"
)

// Module provides the audit screens.
type Module struct {
	handlers handlers
}

// New builds the audits module from shared dependencies.
func New(deps modules.Dependencies) Module {
	return NewWithGateway(newBackendGateway(deps), deps.Session, deps)
}

// NewWithGateway builds the module with an explicit gateway and session
// directory; used by tests.
func NewWithGateway(gateway Gateway, directory SessionDirectory, deps modules.Dependencies) Module {
	registry := deps.Workflows
	if registry == nil {
		registry = workflow.NewRegistry()
	}
	return Module{handlers: handlers{
		Base:         modulehandler.NewBase(deps.ResolveViewer, deps.ResolveSessionToken),
		service:      newService(gateway, registry),
		directory:    directory,
		loginURL:     deps.LoginURL,
		logger:       deps.LoggerOrDefault().Named("audits"),
		resolveToken: deps.ResolveSessionToken,
	}}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "audits" }

// Healthy reports whether the audits module has an operational gateway.
func (m Module) Healthy() bool {
	return m.handlers.service != nil && m.handlers.service.gateway != nil
}

// Mount wires the audit route handlers.
func (m Module) Mount() (modules.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, m.handlers)
	return modules.Mount{Prefix: routepath.AuditsPrefix, Handler: mux}, nil
}
