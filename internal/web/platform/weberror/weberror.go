// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/auditgate/portal/internal/web/module"
	apperrors "github.com/auditgate/portal/internal/web/platform/errors"
	"github.com/auditgate/portal/internal/web/platform/httpx"
	webtemplates "github.com/auditgate/portal/internal/web/templates"
)

// ViewerResolver resolves viewer chrome state from a request.
type ViewerResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
}

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe error message.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if message := strings.TrimSpace(err.Error()); message != "" {
		return message
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes an app-shell error response for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, resolver ViewerResolver) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	fragment := webtemplates.AppErrorState(statusCode)
	ctx := httpx.RequestContext(r)

	if httpx.IsHTMXRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		content := webtemplates.AppMainContentWithLayout(nil, webtemplates.AppMainLayoutOptions{})
		if err := content.Render(templ.WithChildren(ctx, fragment), w); err != nil {
			http.Error(w, PublicMessage(err), statusCode)
		}
		return
	}

	viewer := module.Viewer{}
	if resolver != nil {
		viewer = resolver.ResolveRequestViewer(r)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	title := webtemplates.AppErrorPageTitle(statusCode)
	layout := webtemplates.AppLayoutWithMainHeaderAndLayout(title, viewer, nil, webtemplates.AppMainLayoutOptions{}, nil)
	if err := layout.Render(templ.WithChildren(ctx, fragment), w); err != nil {
		http.Error(w, PublicMessage(err), statusCode)
	}
}

// WriteModuleError writes a module-safe error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, resolver ViewerResolver) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, resolver)
		return
	}
	http.Error(w, PublicMessage(err), statusCode)
}
