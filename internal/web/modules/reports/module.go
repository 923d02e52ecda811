// Package reports serves the report editor: executive summary, finding
// authoring with confirmation-gated deletes, and handing the report back to
// the developer.
package reports

import (
	"net/http"

	"github.com/auditgate/portal/internal/audit/editor"
	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/routepath"
)

// Module provides the report screens.
type Module struct {
	handlers handlers
}

// New builds the reports module from shared dependencies.
func New(deps modules.Dependencies) Module {
	return NewWithGateway(newBackendGateway(deps), deps)
}

// NewWithGateway builds the module with an explicit gateway; used by tests.
func NewWithGateway(gateway Gateway, deps modules.Dependencies) Module {
	registry := deps.Editors
	if registry == nil {
		registry = editor.NewRegistry()
	}
	return Module{handlers: handlers{
		Base:    modulehandler.NewBase(deps.ResolveViewer, deps.ResolveSessionToken),
		service: newService(gateway, registry),
		logger:  deps.LoggerOrDefault().Named("reports"),
	}}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "reports" }

// Healthy reports whether the reports module has an operational gateway.
func (m Module) Healthy() bool {
	return m.handlers.service != nil && m.handlers.service.gateway != nil
}

// Mount wires the report route handlers.
func (m Module) Mount() (modules.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, m.handlers)
	return modules.Mount{Prefix: routepath.ReportsPrefix, Handler: mux}, nil
}
