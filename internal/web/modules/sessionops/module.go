// Package sessionops serves manual session maintenance: the refresh action
// exposed in the app navigation.
package sessionops

import (
	"net/http"

	"github.com/auditgate/portal/internal/web/modules"
	"github.com/auditgate/portal/internal/web/platform/modulehandler"
	"github.com/auditgate/portal/internal/web/routepath"
)

// Module provides session maintenance routes.
type Module struct {
	handlers handlers
}

// New builds the session module from shared dependencies.
func New(deps modules.Dependencies) Module {
	return NewWithDirectory(deps.Session, deps)
}

// NewWithDirectory builds the module with an explicit session directory;
// used by tests.
func NewWithDirectory(directory SessionDirectory, deps modules.Dependencies) Module {
	return Module{handlers: handlers{
		Base:      modulehandler.NewBase(deps.ResolveViewer, deps.ResolveSessionToken),
		directory: directory,
		loginURL:  deps.LoginURL,
		logger:    deps.LoggerOrDefault().Named("session"),
	}}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "session" }

// Healthy reports whether the session module has a session directory.
func (m Module) Healthy() bool {
	return m.handlers.directory != nil
}

// Mount wires the session route handlers.
func (m Module) Mount() (modules.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, m.handlers)
	return modules.Mount{Prefix: routepath.SessionPrefix, Handler: mux}, nil
}
