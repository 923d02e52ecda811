package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/audit"
)

// StatusBadge renders an audit status pill.
func StatusBadge(status audit.ReportStatus) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := "badge badge-status-" + strings.ToLower(string(status))
		return write(w, `<span class="`, class, `">`, esc(status.Label()), `</span>`)
	})
}

// SeverityBadge renders a finding severity pill.
func SeverityBadge(severity audit.Severity) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		severity = audit.ParseSeverity(string(severity))
		return write(w,
			`<span class="badge badge-severity-`, string(severity), `">`,
			esc(strings.ToUpper(string(severity)[:1])+string(severity)[1:]),
			`</span>`,
		)
	})
}

// MitigationBadge renders a finding mitigation-status pill.
func MitigationBadge(status audit.FindingStatus) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := "badge badge-mitigation-" + strings.ToLower(string(status))
		return write(w, `<span class="`, class, `">`, esc(status.Label()), `</span>`)
	})
}

// ProgressBar renders the scan progress indicator.
func ProgressBar(value int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if value < 0 {
			value = 0
		}
		if value > 100 {
			value = 100
		}
		return write(w,
			`<div class="progress" role="progressbar" aria-valuenow="`, fmt.Sprintf("%d", value), `">`,
			fmt.Sprintf(`<div class="progress-fill" style="width:%d%%"></div>`, value),
			fmt.Sprintf(`<span class="progress-label">%d%%</span>`, value),
			`</div>`,
		)
	})
}
