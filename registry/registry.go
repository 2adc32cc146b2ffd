package registry

import (
	"slices"
	"sync"
	"time"

	"qythex.dev/core/notifier"
)

// Registry owns the repositories and workflows served by the dashboard.
// All methods are safe for concurrent use and return copies.
type Registry struct {
	mu sync.Mutex

	repos      []Repository
	workflows  []Workflow
	stats      Stats
	compliance Compliance
	connection Connection

	// ids are never reused, even if the collection shrinks
	nextId int

	events  []Event
	lastSeq int64

	n   *notifier.Notifier
	now func() time.Time
}

type Option func(*Registry)

// WithNotifier wakes n after every mutation.
func WithNotifier(n *notifier.Notifier) Option {
	return func(r *Registry) {
		r.n = n
	}
}

func withClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(seed Seed, opts ...Option) *Registry {
	r := &Registry{
		repos:      slices.Clone(seed.Repositories),
		workflows:  slices.Clone(seed.Workflows),
		stats:      seed.Stats,
		compliance: seed.Compliance.clone(),
		connection: seed.Connection,
		nextId:     1,
		now:        time.Now,
	}

	for _, w := range r.workflows {
		if w.Id >= r.nextId {
			r.nextId = w.Id + 1
		}
	}

	for _, o := range opts {
		o(r)
	}

	return r
}

func (r *Registry) ListRepositories() []Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]Repository, 0, len(r.repos)), r.repos...)
}

// ListWorkflows returns workflows in insertion order.
func (r *Registry) ListWorkflows() []Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]Workflow, 0, len(r.workflows)), r.workflows...)
}

var requiredFields = []string{"name", "repo", "trigger"}

func (r *Registry) CreateWorkflow(in WorkflowInput) (Workflow, error) {
	for _, f := range requiredFields {
		if _, ok := in[f]; !ok {
			return Workflow{}, &ValidationError{Field: f}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	w := Workflow{
		Id:       r.nextId,
		Name:     in["name"],
		Repo:     in["repo"],
		Trigger:  in["trigger"],
		Status:   StatusCreated,
		LastRun:  LastRunNever,
		Duration: DurationZero,
	}
	r.nextId++
	r.workflows = append(r.workflows, w)
	r.record(EventWorkflowCreated, w)

	return w, nil
}

// RunWorkflow moves a workflow to running. Nothing is executed, and
// running an already running workflow leaves it unchanged.
func (r *Registry) RunWorkflow(id int) (Workflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.workflows, func(w Workflow) bool {
		return w.Id == id
	})
	if i < 0 {
		return Workflow{}, &NotFoundError{Id: id}
	}

	r.workflows[i].Status = StatusRunning
	r.workflows[i].LastRun = LastRunJustNow
	w := r.workflows[i]
	r.record(EventWorkflowRun, w)

	return w, nil
}

func (r *Registry) Stats() Stats {
	return r.stats
}

func (r *Registry) Compliance() Compliance {
	return r.compliance.clone()
}

// Connect pretends to link a GitHub account. The credentials are not
// inspected.
func (r *Registry) Connect(credentials any) Connection {
	return r.connection
}

func (c Compliance) clone() Compliance {
	c.ComplianceFrameworks = slices.Clone(c.ComplianceFrameworks)
	c.SecurityIssues = slices.Clone(c.SecurityIssues)
	return c
}
