// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/auditgate/portal/internal/web/module"
	flashnotice "github.com/auditgate/portal/internal/web/platform/flash"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

// RequestResolver resolves viewer state from a request. This decouples
// platform rendering from the module-layer handler types.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
}

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Header     *webtemplates.AppMainHeader
	Layout     webtemplates.AppMainLayoutOptions
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared app-shell rendering
// contracts. HTMX requests receive only the main content region.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		main := webtemplates.AppMainContentWithLayout(page.Header, page.Layout)
		if err := main.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		_, _ = w.Write(buf.Bytes())
		return nil
	}

	viewer := module.Viewer{}
	if resolver != nil {
		viewer = resolver.ResolveRequestViewer(r)
	}
	toast := resolveFlashToast(w, r)
	layout := webtemplates.AppLayoutWithMainHeaderAndLayout(page.Title, viewer, page.Header, page.Layout, toast)
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	return &webtemplates.AppToast{
		Kind:    string(notice.Kind),
		Message: notice.Message,
	}
}

// WritePublicPage writes a public (unauthenticated) page.
func WritePublicPage(w http.ResponseWriter, r *http.Request, title string, statusCode int, body templ.Component) {
	if w == nil {
		return
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if body == nil {
		body = emptyComponent{}
	}
	toast := resolveFlashToast(w, r)
	ctx := templ.WithChildren(httpx.RequestContext(r), body)
	var buf bytes.Buffer
	if err := webtemplates.PublicLayout(title, toast).Render(ctx, &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}
