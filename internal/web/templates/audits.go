package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/audit"
)

// AuditRowView is one row in an audit table.
type AuditRowView struct {
	URL          string
	RepoName     string
	ClientName   string
	Status       audit.ReportStatus
	CreatedLabel string
	FindingCount int
	Paid         bool
}

// AuditTabView is one status filter tab above the audit list.
type AuditTabView struct {
	Label  string
	URL    string
	Count  int
	Active bool
}

// AuditListView drives the audit list screen.
type AuditListView struct {
	Tabs []AuditTabView
	Rows []AuditRowView
}

// AuditsPage renders the audit list with its status filter tabs.
func AuditsPage(view AuditListView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<nav class="tabs">`); err != nil {
			return err
		}
		for _, tab := range view.Tabs {
			class := "tab"
			if tab.Active {
				class += " tab-active"
			}
			if err := write(w,
				`<a class="`, class, `" href="`, tab.URL, `">`,
				esc(tab.Label), fmt.Sprintf(` <span class="tab-count">%d</span>`, tab.Count),
				`</a>`,
			); err != nil {
				return err
			}
		}
		if err := write(w, `</nav>`); err != nil {
			return err
		}
		if len(view.Rows) == 0 {
			return write(w, `<p class="empty-state">No audits match this filter.</p>`)
		}
		return auditTable(ctx, w, view.Rows)
	})
}

func auditTable(ctx context.Context, w io.Writer, rows []AuditRowView) error {
	if err := write(w,
		`<table class="audit-table"><thead><tr>`,
		`<th>Repository</th><th>Client</th><th>Status</th><th>Findings</th><th>Created</th>`,
		`</tr></thead><tbody>`,
	); err != nil {
		return err
	}
	for _, row := range rows {
		if err := write(w,
			`<tr><td><a href="`, row.URL, `">`, esc(row.RepoName), `</a></td>`,
			`<td>`, esc(row.ClientName), `</td><td>`,
		); err != nil {
			return err
		}
		if err := StatusBadge(row.Status).Render(ctx, w); err != nil {
			return err
		}
		paid := ""
		if row.Paid {
			paid = ` <span class="badge badge-paid">Paid</span>`
		}
		if err := write(w,
			paid, `</td>`,
			fmt.Sprintf(`<td>%d</td>`, row.FindingCount),
			`<td>`, esc(row.CreatedLabel), `</td></tr>`,
		); err != nil {
			return err
		}
	}
	return write(w, `</tbody></table>`)
}
