// Package modules defines web module registry helpers.
package modules

import (
	"github.com/hashicorp/go-hclog"

	"github.com/auditgate/portal/internal/audit/editor"
	"github.com/auditgate/portal/internal/audit/workflow"
	"github.com/auditgate/portal/internal/backend"
	"github.com/auditgate/portal/internal/session"
	module "github.com/auditgate/portal/internal/web/module"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the backend clients, shared state, and request-scoped
// resolvers required to compose the web module registry. Modules receive the
// whole struct at construction and keep only the narrow slices they use.
type Dependencies struct {
	Session   *session.Provider
	Backend   *backend.Services
	Workflows *workflow.Registry
	Editors   *editor.Registry

	// LoginURL is the auth service's browser entry point.
	LoginURL string

	Logger hclog.Logger

	ResolveViewer       module.ResolveViewer
	ResolveSessionToken module.ResolveSessionToken
}

// LoggerOrDefault returns a usable logger even when none was configured.
func (d Dependencies) LoggerOrDefault() hclog.Logger {
	if d.Logger == nil {
		return hclog.NewNullLogger()
	}
	return d.Logger
}
