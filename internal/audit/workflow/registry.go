package workflow

import "sync"

// Registry keeps one workflow per audit for the lifetime of the process.
// Browser requests for the same audit share the same state.
type Registry struct {
	mu        sync.Mutex
	workflows map[int64]*Workflow
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{workflows: make(map[int64]*Workflow)}
}

// Obtain returns the workflow for an audit, creating it on first use. A
// stored workflow whose repository changed is replaced, not reused.
func (r *Registry) Obtain(auditID, repositoryID int64) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.workflows[auditID]; ok && w.RepositoryID() == repositoryID {
		return w
	}
	w := New(auditID, repositoryID)
	r.workflows[auditID] = w
	return w
}

// Lookup returns the workflow for an audit if one exists.
func (r *Registry) Lookup(auditID int64) (*Workflow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workflows[auditID]
	return w, ok
}

// Drop forgets an audit's workflow.
func (r *Registry) Drop(auditID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workflows, auditID)
}
