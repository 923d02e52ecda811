// Package landing serves the public marketing page, the waitlist signup,
// the login redirect, and the standalone error screen.
package landing

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/routepath"
)

// Module provides the public web surface.
type Module struct {
	handlers handlers
}

// New builds the landing module from shared dependencies.
func New(deps modules.Dependencies) Module {
	return Module{handlers: newHandlers(newService(newBackendGateway(deps)), deps)}
}

// NewWithGateway builds the module with an explicit gateway; used by tests.
func NewWithGateway(gateway WaitlistGateway, deps modules.Dependencies) Module {
	return Module{handlers: newHandlers(newService(gateway), deps)}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Healthy reports whether the landing module has an operational waitlist
// gateway.
func (m Module) Healthy() bool {
	return m.handlers.service.waitlist != nil
}

// Mount wires the public route handlers.
func (m Module) Mount() (modules.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, m.handlers)
	return modules.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
