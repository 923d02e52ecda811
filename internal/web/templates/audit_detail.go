package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/auditgate/portal/internal/audit"
)

// FlowRowView is one selectable flow on the audit detail screen.
type FlowRowView struct {
	Name          string
	FilePath      string
	Kind          audit.FlowKind
	Selected      bool
	FunctionNames []string
}

// FunctionOptionView is one catalog entry in the custom-flow form.
type FunctionOptionView struct {
	Signature string
	Name      string
	FilePath  string
}

// FlowSelectionView is the slice of the detail screen served alone on HTMX
// swaps: the filterable flow list and the custom-flow form. It carries no
// report-derived fields, so fragment renders never need the report.
type FlowSelectionView struct {
	FilterKind  string
	FilterQuery string
	Flows       []FlowRowView

	SelectedCount   int
	FunctionsLoaded bool
	Functions       []FunctionOptionView

	ToggleURL    string
	FlowsURL     string
	FunctionsURL string
}

// AuditDetailView drives the flow-selection screen for a queued audit.
type AuditDetailView struct {
	AuditID         int64
	RepoName        string
	InScopeFiles    []string
	OutOfScopeFiles []string

	FlowSelectionView

	ScanRequested    bool
	ScanAcknowledged bool
	Progress         int

	ScanURL     string
	ProgressURL string
	SelfURL     string
}

// AuditDetailPage renders the full flow-selection screen.
func AuditDetailPage(view AuditDetailView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := scopeSection(w, view); err != nil {
			return err
		}
		if view.ScanRequested || view.ScanAcknowledged {
			return ScanProgressFragment(view.ProgressURL, view.Progress, view.ScanAcknowledged).Render(ctx, w)
		}
		if err := flowFilterForm(w, view); err != nil {
			return err
		}
		if err := FlowListFragment(view.FlowSelectionView).Render(ctx, w); err != nil {
			return err
		}
		if err := customFlowSection(w, view.FlowSelectionView); err != nil {
			return err
		}
		return scanForm(w, view)
	})
}

func scopeSection(w io.Writer, view AuditDetailView) error {
	if err := write(w,
		`<section class="scope">`,
		fmt.Sprintf(`<p>%d files in scope, %d excluded.</p>`, len(view.InScopeFiles), len(view.OutOfScopeFiles)),
		`<details><summary>Scope details</summary><ul class="scope-files">`,
	); err != nil {
		return err
	}
	for _, file := range view.InScopeFiles {
		if err := write(w, `<li>`, esc(file), `</li>`); err != nil {
			return err
		}
	}
	for _, file := range view.OutOfScopeFiles {
		if err := write(w, `<li class="scope-excluded">`, esc(file), ` (out of scope)</li>`); err != nil {
			return err
		}
	}
	return write(w, `</ul></details></section>`)
}

func flowFilterForm(w io.Writer, view AuditDetailView) error {
	kinds := []string{"all", "custom", "test"}
	if err := write(w,
		`<form class="flow-filter" method="get" action="`, view.SelfURL, `" hx-get="`, view.SelfURL, `" hx-target="#flow-list">`,
		`<select name="kind">`,
	); err != nil {
		return err
	}
	for _, kind := range kinds {
		selected := ""
		if kind == view.FilterKind {
			selected = ` selected`
		}
		label := strings.ToUpper(kind[:1]) + kind[1:]
		if err := write(w, `<option value="`, kind, `"`, selected, `>`, esc(label), `</option>`); err != nil {
			return err
		}
	}
	return write(w,
		`</select>`,
		`<input type="search" name="q" value="`, esc(view.FilterQuery), `" placeholder="Search flows, files, functions">`,
		`<button type="submit">Filter</button></form>`,
	)
}

// FlowListFragment renders the filterable flow list. Served alone for HTMX
// filter and toggle swaps.
func FlowListFragment(view FlowSelectionView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := write(w, `<div id="flow-list" class="flow-list">`); err != nil {
			return err
		}
		if len(view.Flows) == 0 {
			if err := write(w, `<p class="empty-state">No flows match.</p>`); err != nil {
				return err
			}
		}
		for _, flow := range view.Flows {
			checked := ""
			if flow.Selected {
				checked = ` checked`
			}
			if err := write(w,
				`<label class="flow-row flow-`, string(flow.Kind), `">`,
				`<form method="post" action="`, view.ToggleURL, `" hx-post="`, view.ToggleURL, `" hx-target="#flow-list">`,
				`<input type="hidden" name="kind" value="`, esc(view.FilterKind), `">`,
				`<input type="hidden" name="q" value="`, esc(view.FilterQuery), `">`,
				`<input type="checkbox" name="flow" value="`, esc(flow.Name), `" onchange="this.form.requestSubmit()"`, checked, `>`,
				`<span class="flow-name">`, esc(flow.Name), `</span>`,
				`<span class="badge badge-flow-`, string(flow.Kind), `">`, string(flow.Kind), `</span>`,
			); err != nil {
				return err
			}
			if flow.FilePath != "" {
				if err := write(w, `<span class="flow-file">`, esc(flow.FilePath), `</span>`); err != nil {
					return err
				}
			}
			if len(flow.FunctionNames) > 0 {
				if err := write(w, `<span class="flow-functions">`, esc(strings.Join(flow.FunctionNames, " → ")), `</span>`); err != nil {
					return err
				}
			}
			if err := write(w, `</form></label>`); err != nil {
				return err
			}
		}
		return write(w,
			fmt.Sprintf(`<p class="flow-selected-count">%d selected</p>`, view.SelectedCount),
			`</div>`,
		)
	})
}

func customFlowSection(w io.Writer, view FlowSelectionView) error {
	if err := write(w, `<section class="custom-flow"><h2>New custom flow</h2>`); err != nil {
		return err
	}
	if !view.FunctionsLoaded {
		if err := write(w,
			`<button hx-get="`, view.FunctionsURL, `" hx-target="#function-catalog">Load functions</button>`,
			`<div id="function-catalog"></div>`,
		); err != nil {
			return err
		}
		return write(w, `</section>`)
	}
	if err := write(w, `<div id="function-catalog">`); err != nil {
		return err
	}
	if err := functionCatalog(w, view); err != nil {
		return err
	}
	return write(w, `</div></section>`)
}

// FunctionCatalogFragment renders the lazily loaded custom-flow form.
func FunctionCatalogFragment(view FlowSelectionView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return functionCatalog(w, view)
	})
}

func functionCatalog(w io.Writer, view FlowSelectionView) error {
	if err := write(w,
		`<form method="post" action="`, view.FlowsURL, `" hx-post="`, view.FlowsURL, `">`,
		`<input type="text" name="name" placeholder="Flow name" required>`,
		`<ul class="function-catalog">`,
	); err != nil {
		return err
	}
	for _, fn := range view.Functions {
		if err := write(w,
			`<li><label><input type="checkbox" name="signature" value="`, esc(fn.Signature), `">`,
			`<span>`, esc(fn.Name), `</span><span class="function-file">`, esc(fn.FilePath), `</span>`,
			`</label></li>`,
		); err != nil {
			return err
		}
	}
	return write(w, `</ul><button type="submit">Create flow</button></form>`)
}

func scanForm(w io.Writer, view AuditDetailView) error {
	return write(w,
		`<form class="scan-form" method="post" action="`, view.ScanURL, `" hx-post="`, view.ScanURL, `">`,
		`<button type="submit" class="scan-start">Start AI scan</button>`,
		`</form>`,
	)
}

// ScanFailedFragment replaces the progress indicator when the submission
// fails. The selection survives, so the retry link leads straight back.
func ScanFailedFragment(detailURL, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if message == "" {
			message = "The scan request failed."
		}
		return write(w,
			`<section id="scan-progress" class="scan-progress scan-failed">`,
			`<p>`, esc(message), `</p>`,
			`<a href="`, detailURL, `" hx-get="`, detailURL, `" hx-target="body">Back to flow selection</a>`,
			`</section>`,
		)
	})
}

// ScanProgressFragment renders the simulated progress indicator. The page
// polls the progress route until the submission resolves.
func ScanProgressFragment(progressURL string, progress int, done bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		poll := ""
		if !done {
			poll = ` hx-get="` + progressURL + `" hx-trigger="every 1s" hx-swap="outerHTML"`
		}
		if err := write(w, `<section id="scan-progress" class="scan-progress"`, poll, `>`); err != nil {
			return err
		}
		if err := ProgressBar(progress).Render(ctx, w); err != nil {
			return err
		}
		label := "Submitting scan request…"
		if done {
			label = "Scan requested. The audit moves to AI review."
		}
		return write(w, `<p>`, esc(label), `</p></section>`)
	})
}
