package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/audit"
)

// FindingView is one finding card on the report screen.
type FindingView struct {
	ID              int64
	Title           string
	Severity        audit.Severity
	Explanation     string
	Recommendation  string
	DevComment      string
	AuditorResponse string
	Status          audit.FindingStatus
	UpdateURL       string
	DeleteURL       string
}

// ReportView drives the report editor screen.
type ReportView struct {
	ReportID     int64
	RepoName     string
	ClientName   string
	Status       audit.ReportStatus
	CreatedLabel string
	HighCount    int
	MediumCount  int
	LowCount     int

	Summary    string
	SummaryURL string

	Findings         []FindingView
	CreateFindingURL string
	SubmitURL        string
	Editable         bool
}

// ReportPage renders the report with summary and findings editing.
func ReportPage(view ReportView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := reportHeaderSection(ctx, w, view); err != nil {
			return err
		}
		if err := summarySection(w, view); err != nil {
			return err
		}
		if err := findingsSection(ctx, w, view); err != nil {
			return err
		}
		if view.Editable {
			return submitSection(w, view)
		}
		return nil
	})
}

func reportHeaderSection(ctx context.Context, w io.Writer, view ReportView) error {
	if err := write(w,
		`<section class="report-meta">`,
		`<p class="report-client">`, esc(view.ClientName), `</p>`,
	); err != nil {
		return err
	}
	if err := StatusBadge(view.Status).Render(ctx, w); err != nil {
		return err
	}
	return write(w,
		`<p class="report-created">Created `, esc(view.CreatedLabel), `</p>`,
		fmt.Sprintf(`<p class="report-tally">%d high / %d medium / %d low</p>`, view.HighCount, view.MediumCount, view.LowCount),
		`</section>`,
	)
}

func summarySection(w io.Writer, view ReportView) error {
	if err := write(w, `<section class="summary"><h2>Executive summary</h2>`); err != nil {
		return err
	}
	if !view.Editable {
		if view.Summary == "" {
			return write(w, `<p class="empty-state">No summary yet.</p></section>`)
		}
		return write(w, `<p>`, esc(view.Summary), `</p></section>`)
	}
	return write(w,
		`<form method="post" action="`, view.SummaryURL, `" hx-post="`, view.SummaryURL, `">`,
		`<textarea name="summary" rows="6">`, esc(view.Summary), `</textarea>`,
		`<button type="submit">Save summary</button></form></section>`,
	)
}

func findingsSection(ctx context.Context, w io.Writer, view ReportView) error {
	if err := write(w, `<section class="findings"><h2>Findings</h2>`); err != nil {
		return err
	}
	if len(view.Findings) == 0 {
		if err := write(w, `<p class="empty-state">No findings recorded.</p>`); err != nil {
			return err
		}
	}
	for _, finding := range view.Findings {
		if err := findingCard(ctx, w, finding, view.Editable); err != nil {
			return err
		}
	}
	if view.Editable {
		if err := newFindingForm(w, view.CreateFindingURL); err != nil {
			return err
		}
	}
	return write(w, `</section>`)
}

func findingCard(ctx context.Context, w io.Writer, finding FindingView, editable bool) error {
	if err := write(w, fmt.Sprintf(`<article class="finding" id="finding-%d">`, finding.ID)); err != nil {
		return err
	}
	if err := write(w, `<header><h3>`, esc(finding.Title), `</h3>`); err != nil {
		return err
	}
	if err := SeverityBadge(finding.Severity).Render(ctx, w); err != nil {
		return err
	}
	if err := MitigationBadge(finding.Status).Render(ctx, w); err != nil {
		return err
	}
	if err := write(w, `</header>`); err != nil {
		return err
	}
	if finding.DevComment != "" {
		if err := write(w, `<blockquote class="dev-comment">`, esc(finding.DevComment), `</blockquote>`); err != nil {
			return err
		}
	}
	if !editable {
		return write(w,
			`<p>`, esc(finding.Explanation), `</p>`,
			`<p class="finding-recommendation">`, esc(finding.Recommendation), `</p>`,
			`</article>`,
		)
	}
	if err := write(w,
		`<form method="post" action="`, finding.UpdateURL, `" hx-post="`, finding.UpdateURL, `">`,
		`<input type="text" name="title" value="`, esc(finding.Title), `" required>`,
		severitySelect(finding.Severity),
		`<textarea name="explanation" rows="4">`, esc(finding.Explanation), `</textarea>`,
		`<textarea name="recommendation" rows="3">`, esc(finding.Recommendation), `</textarea>`,
		`<textarea name="auditor_response" rows="2" placeholder="Response to developer">`, esc(finding.AuditorResponse), `</textarea>`,
		mitigationSelect(finding.Status),
		`<button type="submit">Save finding</button></form>`,
		`<a class="finding-delete" href="`, finding.DeleteURL, `" hx-get="`, finding.DeleteURL, `" hx-target="#modal">Delete</a>`,
		`</article>`,
	); err != nil {
		return err
	}
	return nil
}

func newFindingForm(w io.Writer, createURL string) error {
	return write(w,
		`<details class="finding-new"><summary>Add finding</summary>`,
		`<form method="post" action="`, createURL, `" hx-post="`, createURL, `">`,
		`<input type="text" name="title" placeholder="Title" required>`,
		severitySelect(audit.SeverityMedium),
		`<textarea name="explanation" rows="4" placeholder="Explanation"></textarea>`,
		`<textarea name="recommendation" rows="3" placeholder="Recommendation"></textarea>`,
		`<button type="submit">Create finding</button></form></details>`,
	)
}

func severitySelect(selected audit.Severity) string {
	out := `<select name="severity">`
	for _, severity := range []audit.Severity{audit.SeverityLow, audit.SeverityMedium, audit.SeverityHigh} {
		attr := ""
		if severity == selected {
			attr = ` selected`
		}
		out += `<option value="` + string(severity) + `"` + attr + `>` + string(severity) + `</option>`
	}
	return out + `</select>`
}

func mitigationSelect(selected audit.FindingStatus) string {
	out := `<select name="status">`
	for _, status := range []audit.FindingStatus{audit.FindingNotMitigated, audit.FindingPartiallyMitigated, audit.FindingMitigationConfirmed} {
		attr := ""
		if status == selected {
			attr = ` selected`
		}
		out += `<option value="` + string(status) + `"` + attr + `>` + esc(status.Label()) + `</option>`
	}
	return out + `</select>`
}

func submitSection(w io.Writer, view ReportView) error {
	return write(w,
		`<section class="report-submit"><h2>Hand back to developer</h2>`,
		`<a class="submit-remediation" href="`, view.SubmitURL, `?status=`, string(audit.StatusNeedDevRemediation), `" hx-get="`, view.SubmitURL, `?status=`, string(audit.StatusNeedDevRemediation), `" hx-target="#modal">Request remediation</a>`,
		`<a class="submit-complete" href="`, view.SubmitURL, `?status=`, string(audit.StatusDevRemediated), `" hx-get="`, view.SubmitURL, `?status=`, string(audit.StatusDevRemediated), `" hx-target="#modal">Mark remediated</a>`,
		`<div id="modal"></div>`,
		`</section>`,
	)
}

// ConfirmDialog renders a confirmation step before a destructive or
// status-changing action. The form posts to confirmURL; cancel links back.
func ConfirmDialog(prompt, confirmURL, cancelURL string, hidden map[string]string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := write(w,
			`<div class="confirm-dialog" role="alertdialog">`,
			`<p>`, esc(prompt), `</p>`,
			`<form method="post" action="`, confirmURL, `" hx-post="`, confirmURL, `">`,
		); err != nil {
			return err
		}
		for name, value := range hidden {
			if err := write(w, `<input type="hidden" name="`, esc(name), `" value="`, esc(value), `">`); err != nil {
				return err
			}
		}
		return write(w,
			`<button type="submit">Confirm</button>`,
			`<a class="confirm-cancel" href="`, cancelURL, `">Cancel</a>`,
			`</form></div>`,
		)
	})
}
