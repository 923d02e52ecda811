package editor

import "sync"

// Registry keeps one editor per report so successive requests mutate the
// same shadow instead of reloading the report wholesale.
type Registry struct {
	mu      sync.Mutex
	editors map[int64]*Editor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{editors: make(map[int64]*Editor)}
}

// Lookup returns the editor for a report if one exists.
func (r *Registry) Lookup(reportID int64) (*Editor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[reportID]
	return e, ok
}

// Store registers a freshly fetched report's editor, replacing any stale
// shadow from an earlier visit.
func (r *Registry) Store(reportID int64, e *Editor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editors[reportID] = e
}

// Drop forgets a report's editor.
func (r *Registry) Drop(reportID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.editors, reportID)
}
