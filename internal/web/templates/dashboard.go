package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/web/routepath"
)

// DashboardView aggregates the session's audits for the overview screen.
type DashboardView struct {
	TotalAudits    int
	QueuedCount    int
	InReviewCount  int
	CompletedCount int
	HighCount      int
	MediumCount    int
	LowCount       int
	Recent         []AuditRowView
}

// DashboardPage renders the authenticated overview.
func DashboardPage(view DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<section class="stats">`,
			statCard("Audits", view.TotalAudits),
			statCard("In queue", view.QueuedCount),
			statCard("In review", view.InReviewCount),
			statCard("Completed", view.CompletedCount),
			`</section>`,
			`<section class="stats stats-severity">`,
			statCard("High findings", view.HighCount),
			statCard("Medium findings", view.MediumCount),
			statCard("Low findings", view.LowCount),
			`</section>`,
		); err != nil {
			return err
		}
		if len(view.Recent) == 0 {
			return write(w, `<p class="empty-state">No audits yet. New engagements appear here as soon as a repository is queued.</p>`)
		}
		if err := write(w, `<section class="recent"><h2>Recent audits</h2>`); err != nil {
			return err
		}
		if err := auditTable(ctx, w, view.Recent); err != nil {
			return err
		}
		return write(w, `<a href="`, routepath.AppAudits, `">All audits</a></section>`)
	})
}

func statCard(label string, value int) string {
	return `<div class="stat-card"><span class="stat-value">` +
		fmt.Sprintf("%d", value) +
		`</span><span class="stat-label">` + esc(label) + `</span></div>`
}
