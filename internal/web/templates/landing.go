package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/web/routepath"
)

// LandingPage renders the public marketing page with the waitlist form.
func LandingPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			`<section class="hero">`,
			`<h1>Security audits with an AI co-pilot</h1>`,
			`<p>AuditGate pairs automated execution-flow analysis with human auditors so findings ship faster.</p>`,
			`<a class="hero-login" href="`, routepath.Login, `">Auditor sign in</a>`,
			`</section>`,
			`<section class="waitlist">`,
			`<h2>Join the waitlist</h2>`,
			`<form method="post" action="`, routepath.Waitlist, `" hx-post="`, routepath.Waitlist, `">`,
			`<input type="email" name="email" placeholder="you@example.com" required>`,
			`<button type="submit">Request access</button>`,
			`</form>`,
			`</section>`,
		)
	})
}

// ErrorPage renders the standalone error screen with a human-readable cause.
func ErrorPage(cause string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if cause == "" {
			cause = "Something went wrong."
		}
		return write(w,
			`<section class="error-page">`,
			`<h1>We hit a problem</h1>`,
			`<p>`, esc(cause), `</p>`,
			`<a href="`, routepath.Root, `">Back to the home page</a>`,
			`</section>`,
		)
	})
}
