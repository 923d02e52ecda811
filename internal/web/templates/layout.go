// Package templates renders the portal's HTML. Components are plain Go
// implementations of the templ contract so fragments compose for both
// full-page and HTMX responses.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	module "github.com/auditgate/portal/internal/web/module"
	"github.com/auditgate/portal/internal/web/routepath"
)

// AppToast is a one-time notice rendered at the top of a page.
type AppToast struct {
	Kind    string
	Message string
}

// AppMainHeader describes the heading block above module content.
type AppMainHeader struct {
	Title    string
	Subtitle string
}

// AppMainLayoutOptions tunes the main content container.
type AppMainLayoutOptions struct {
	Wide bool
}

func esc(value string) string {
	return html.EscapeString(value)
}

func write(w io.Writer, chunks ...string) error {
	for _, chunk := range chunks {
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
	}
	return nil
}

func renderChildren(ctx context.Context, w io.Writer) error {
	children := templ.GetChildren(ctx)
	if children == nil {
		return nil
	}
	return children.Render(ctx, w)
}

// AppMainContentWithLayout renders the main content region used by HTMX
// fragment swaps: header block plus the child fragment, no document shell.
func AppMainContentWithLayout(header *AppMainHeader, layout AppMainLayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "app-main"
		if layout.Wide {
			class += " app-main-wide"
		}
		if err := write(w, `<main id="app-main" class="`+class+`">`); err != nil {
			return err
		}
		if header != nil {
			if err := write(w, `<header class="app-main-header"><h1>`, esc(header.Title), `</h1>`); err != nil {
				return err
			}
			if header.Subtitle != "" {
				if err := write(w, `<p class="app-main-subtitle">`, esc(header.Subtitle), `</p>`); err != nil {
					return err
				}
			}
			if err := write(w, `</header>`); err != nil {
				return err
			}
		}
		if err := renderChildren(ctx, w); err != nil {
			return err
		}
		return write(w, `</main>`)
	})
}

// AppLayoutWithMainHeaderAndLayout renders the full authenticated document:
// chrome, navigation, optional toast, and the main content region.
func AppLayoutWithMainHeaderAndLayout(title string, viewer module.Viewer, header *AppMainHeader, layout AppMainLayoutOptions, toast *AppToast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeDocumentHead(w, title); err != nil {
			return err
		}
		if err := writeAppNav(w, viewer); err != nil {
			return err
		}
		if toast != nil {
			if err := ToastFragment(*toast).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := AppMainContentWithLayout(header, layout).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `</body></html>`)
	})
}

// PublicLayout renders the unauthenticated document shell.
func PublicLayout(title string, toast *AppToast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeDocumentHead(w, title); err != nil {
			return err
		}
		if toast != nil {
			if err := ToastFragment(*toast).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := write(w, `<main class="public-main">`); err != nil {
			return err
		}
		if err := renderChildren(ctx, w); err != nil {
			return err
		}
		return write(w, `</main></body></html>`)
	})
}

// ToastFragment renders a one-time notice.
func ToastFragment(toast AppToast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		kind := strings.TrimSpace(toast.Kind)
		if kind == "" {
			kind = "info"
		}
		return write(w,
			`<div class="toast toast-`, esc(kind), `" role="status">`,
			esc(toast.Message),
			`</div>`,
		)
	})
}

func writeDocumentHead(w io.Writer, title string) error {
	return write(w,
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1">`,
		`<title>`, esc(title), `</title>`,
		`<link rel="stylesheet" href="/static/app.css">`,
		`<script src="/static/htmx.min.js" defer></script>`,
		`</head><body hx-boost="true">`,
	)
}

func writeAppNav(w io.Writer, viewer module.Viewer) error {
	name := strings.TrimSpace(viewer.DisplayName)
	if name == "" {
		name = strings.TrimSpace(viewer.Email)
	}
	if err := write(w,
		`<nav class="app-nav">`,
		`<a class="app-nav-brand" href="`, routepath.AppDashboard, `">AuditGate</a>`,
		`<a href="`, routepath.AppAudits, `">Audits</a>`,
	); err != nil {
		return err
	}
	if name != "" {
		role := ""
		if viewer.IsAuditor {
			role = ` <span class="app-nav-role">auditor</span>`
		}
		if err := write(w, `<span class="app-nav-user">`, esc(name), role, `</span>`); err != nil {
			return err
		}
	}
	if err := write(w,
		`<form method="post" action="`, routepath.AppSessionRefresh, `" hx-post="`, routepath.AppSessionRefresh, `">`,
		`<button type="submit">Refresh</button></form>`,
	); err != nil {
		return err
	}
	return write(w, `</nav>`)
}

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int) string {
	if statusCode == 404 {
		return "Page not found"
	}
	return "Something went wrong"
}

// AppErrorState renders the in-shell error fragment.
func AppErrorState(statusCode int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		heading := "Something went wrong"
		message := "An unexpected error occurred. Try again in a moment."
		if statusCode == 404 {
			heading = "Page not found"
			message = "The page you are looking for does not exist."
		}
		return write(w,
			`<section class="error-state">`,
			`<h2>`, esc(heading), `</h2>`,
			`<p>`, esc(message), `</p>`,
			fmt.Sprintf(`<p class="error-code">%d</p>`, statusCode),
			`<a href="`, routepath.AppDashboard, `">Back to dashboard</a>`,
			`</section>`,
		)
	})
}
