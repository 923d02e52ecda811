// Package modulehandler provides a composable base for protected web module
// handlers.
//
// Protected modules (those mounted under /app/) share common handler
// infrastructure for session resolution, page rendering, and error handling.
// This package extracts that shared scaffold so modules embed it rather than
// duplicating it.
package modulehandler

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/platform/authctx"
	module "github.com/auditgate/portal/internal/web/module"
	"github.com/auditgate/portal/internal/web/platform/pagerender"
	"github.com/auditgate/portal/internal/web/platform/weberror"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

// Base carries the shared request-scoped resolvers used by protected module
// handlers. Embed this in module handler structs to get standard session
// resolution, page rendering, and error writing without duplicating
// boilerplate.
type Base struct {
	resolveViewer module.ResolveViewer
	resolveToken  module.ResolveSessionToken
}

// NewBase builds a handler base from explicit resolver functions.
func NewBase(resolveViewer module.ResolveViewer, resolveToken module.ResolveSessionToken) Base {
	return Base{
		resolveViewer: resolveViewer,
		resolveToken:  resolveToken,
	}
}

// NewTestBase builds a handler base with no-op resolvers suitable for tests
// that do not exercise viewer or session resolution.
func NewTestBase() Base {
	return Base{
		resolveViewer: func(*http.Request) module.Viewer { return module.Viewer{} },
		resolveToken:  func(*http.Request) string { return "" },
	}
}

// ResolveRequestViewer resolves app chrome viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.resolveViewer == nil {
		return module.Viewer{}
	}
	return b.resolveViewer(r)
}

// RequestContext returns the request context enriched with the session token
// so downstream backend calls forward the browser session.
func (b Base) RequestContext(r *http.Request) context.Context {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	if r == nil || b.resolveToken == nil {
		return ctx
	}
	token := b.resolveToken(r)
	if token == "" {
		return ctx
	}
	return authctx.WithSessionToken(ctx, token)
}

// WriteError renders a module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, &b)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, &b)
}

// WritePage renders a full module page (HTMX-aware) with the given title,
// header, layout, and content fragment.
func (b Base) WritePage(
	w http.ResponseWriter,
	r *http.Request,
	title string,
	statusCode int,
	header *webtemplates.AppMainHeader,
	layout webtemplates.AppMainLayoutOptions,
	fragment templ.Component,
) {
	if err := pagerender.WriteModulePage(w, r, &b, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Header:     header,
		Layout:     layout,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}
