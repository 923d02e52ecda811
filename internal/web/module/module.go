// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Viewer contains user-facing chrome data for authenticated app pages.
type Viewer struct {
	DisplayName string
	Email       string
	IsAuditor   bool
}

// ResolveViewer resolves app chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveSignedIn reports whether the request carries a usable session.
type ResolveSignedIn func(*http.Request) bool

// ResolveSessionToken extracts the raw session token for backend forwarding.
type ResolveSessionToken func(*http.Request) string

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
