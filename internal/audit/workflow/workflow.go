// Package workflow drives one queued audit through flow selection and scan
// submission. The state machine is explicit and rendering-free so the
// transitions can be tested without any HTTP concern.
package workflow

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/auditgate/portal/internal/audit"
)

// Phase is the client-perceived stage of a queued audit.
type Phase string

const (
	PhaseNotLoaded        Phase = "NOT_LOADED"
	PhaseScopeLoaded      Phase = "SCOPE_LOADED"
	PhaseFlowSelection    Phase = "FLOW_SELECTION"
	PhaseScanRequested    Phase = "SCAN_REQUESTED"
	PhaseScanAcknowledged Phase = "SCAN_ACKNOWLEDGED"
)

var (
	ErrEmptySelection = errors.New("select at least one flow before starting a scan")
	ErrUnknownFlow    = errors.New("flow is not part of this audit")
	ErrNotSelecting   = errors.New("flow selection is not open")
)

// KindFilter narrows the flow list by variant. Filtering is a view concern
// only and never touches the selection set.
type KindFilter string

const (
	FilterAll    KindFilter = "all"
	FilterTest   KindFilter = "test"
	FilterCustom KindFilter = "custom"
)

// ParseKindFilter normalizes a query value; anything unknown means all.
func ParseKindFilter(raw string) KindFilter {
	switch KindFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case FilterTest:
		return FilterTest
	case FilterCustom:
		return FilterCustom
	default:
		return FilterAll
	}
}

// progressStep is how far the simulated indicator advances per second while a
// scan submission is in flight. The value shown is never a measurement of
// real analysis progress; it holds at 90 until the submission resolves and
// only then jumps to 100.
const (
	progressStep = 5
	progressCap  = 90
)

// Workflow holds the per-audit selection state. Safe for concurrent use by
// request handlers.
type Workflow struct {
	mu sync.Mutex

	auditID      int64
	repositoryID int64

	phase     Phase
	scope     audit.Scope
	flows     []audit.Flow
	selection map[string]bool

	functions       []audit.FlowFunction
	functionsLoaded bool

	scanStarted time.Time
}

// New starts an empty workflow for one audit.
func New(auditID, repositoryID int64) *Workflow {
	return &Workflow{
		auditID:      auditID,
		repositoryID: repositoryID,
		phase:        PhaseNotLoaded,
		selection:    make(map[string]bool),
	}
}

func (w *Workflow) AuditID() int64      { return w.auditID }
func (w *Workflow) RepositoryID() int64 { return w.repositoryID }

// Phase returns the current stage.
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Load records the fetched scope and flow list. Selection opens as soon as
// flows are available; reloading after custom-flow creation preserves the
// existing selection.
func (w *Workflow) Load(scope audit.Scope, flows []audit.Flow) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scope = scope
	w.flows = flows
	switch w.phase {
	case PhaseNotLoaded, PhaseScopeLoaded:
		if len(flows) > 0 {
			w.phase = PhaseFlowSelection
		} else {
			w.phase = PhaseScopeLoaded
		}
	case PhaseFlowSelection:
		// re-fetch while selecting keeps the phase
	}
}

// Scope returns the in/out file partition loaded for the audit.
func (w *Workflow) Scope() audit.Scope {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scope
}

// Flows returns the full normalized flow list in backend order.
func (w *Workflow) Flows() []audit.Flow {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]audit.Flow(nil), w.flows...)
}

// Toggle flips a flow in or out of the selection set, keyed by name, and
// reports whether the flow is selected afterwards.
func (w *Workflow) Toggle(name string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseFlowSelection {
		return false, ErrNotSelecting
	}
	if !w.hasFlow(name) {
		return false, ErrUnknownFlow
	}
	if w.selection[name] {
		delete(w.selection, name)
		return false, nil
	}
	w.selection[name] = true
	return true, nil
}

// IsSelected reports membership in the selection set.
func (w *Workflow) IsSelected(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection[name]
}

// Selected returns the selected flow names in sorted order.
func (w *Workflow) Selected() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.selection))
	for name := range w.selection {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectedCount returns the size of the selection set.
func (w *Workflow) SelectedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.selection)
}

// PartitionSelection splits the selection by flow kind for the scan request:
// custom flows contribute their numeric ids, test flows their names. A custom
// flow without a backend-assigned id contributes nothing.
func (w *Workflow) PartitionSelection() (flowIDs []int64, testNames []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	flowIDs = []int64{}
	testNames = []string{}
	for _, flow := range w.flows {
		if !w.selection[flow.Name] {
			continue
		}
		switch flow.Kind {
		case audit.FlowCustom:
			if flow.ID == 0 {
				continue
			}
			flowIDs = append(flowIDs, flow.ID)
		case audit.FlowTest:
			testNames = append(testNames, flow.Name)
		}
	}
	return flowIDs, testNames
}

// BeginScan moves into SCAN_REQUESTED and starts the simulated progress
// clock. The selection must be non-empty; nothing is sent from here, the
// caller performs the actual submission.
func (w *Workflow) BeginScan(now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseFlowSelection {
		return ErrNotSelecting
	}
	if len(w.selection) == 0 {
		return ErrEmptySelection
	}
	w.phase = PhaseScanRequested
	w.scanStarted = now
	return nil
}

// AcknowledgeScan records a successful submission response.
func (w *Workflow) AcknowledgeScan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseScanRequested {
		w.phase = PhaseScanAcknowledged
	}
}

// RevertToSelection undoes a failed submission. The selection set survives
// untouched so the auditor can retry.
func (w *Workflow) RevertToSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseScanRequested {
		w.phase = PhaseFlowSelection
		w.scanStarted = time.Time{}
	}
}

// Progress returns the simulated indicator value for the given instant:
// zero before a scan starts, stepped and capped while the submission is in
// flight, and 100 once acknowledged.
func (w *Workflow) Progress(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.phase {
	case PhaseScanAcknowledged:
		return 100
	case PhaseScanRequested:
		elapsed := int(now.Sub(w.scanStarted).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}
		value := elapsed * progressStep
		if value > progressCap {
			return progressCap
		}
		return value
	default:
		return 0
	}
}

// SetFunctions stores the lazily fetched function catalog. Fetched at most
// once per audit-screen lifetime.
func (w *Workflow) SetFunctions(functions []audit.FlowFunction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.functions = functions
	w.functionsLoaded = true
}

// FunctionsLoaded reports whether the catalog has been fetched already.
func (w *Workflow) FunctionsLoaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.functionsLoaded
}

// Functions returns the cached catalog.
func (w *Workflow) Functions() []audit.FlowFunction {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]audit.FlowFunction(nil), w.functions...)
}

// Filter narrows the flow list by kind and free-text query. The query
// matches flow name, file path, and contained function names,
// case-insensitively. The selection set is never consulted or changed.
func (w *Workflow) Filter(kind KindFilter, query string) []audit.Flow {
	w.mu.Lock()
	defer w.mu.Unlock()
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]audit.Flow, 0, len(w.flows))
	for _, flow := range w.flows {
		if kind == FilterTest && flow.Kind != audit.FlowTest {
			continue
		}
		if kind == FilterCustom && flow.Kind != audit.FlowCustom {
			continue
		}
		if query != "" && !flowMatches(flow, query) {
			continue
		}
		matched = append(matched, flow)
	}
	return matched
}

func flowMatches(flow audit.Flow, query string) bool {
	if strings.Contains(strings.ToLower(flow.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(flow.FilePath), query) {
		return true
	}
	for _, fn := range flow.Functions {
		if strings.Contains(strings.ToLower(fn.Name), query) {
			return true
		}
	}
	return false
}

func (w *Workflow) hasFlow(name string) bool {
	for _, flow := range w.flows {
		if flow.Name == name {
			return true
		}
	}
	return false
}
