package registry

type EventKind string

const (
	EventWorkflowCreated EventKind = "workflow.created"
	EventWorkflowRun     EventKind = "workflow.run"
)

const eventPageSize = 100

// Event records one mutation of the registry. Seq is strictly
// increasing and starts at 1.
type Event struct {
	Seq      int64     `json:"seq"`
	Kind     EventKind `json:"kind"`
	Created  int64     `json:"created"` // unix nanos
	Workflow Workflow  `json:"workflow"`
}

// must be called with r.mu held
func (r *Registry) record(kind EventKind, w Workflow) {
	r.lastSeq++
	r.events = append(r.events, Event{
		Seq:      r.lastSeq,
		Kind:     kind,
		Created:  r.now().UnixNano(),
		Workflow: w,
	})

	if r.n != nil {
		r.n.Notify(r.lastSeq)
	}
}

// Events returns up to one page of events with Seq greater than cursor,
// oldest first.
func (r *Registry) Events(cursor int64) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	// seq == index+1
	start := max(cursor, 0)
	if start >= int64(len(r.events)) {
		return nil
	}

	end := min(start+eventPageSize, int64(len(r.events)))
	out := make([]Event, end-start)
	copy(out, r.events[start:end])
	return out
}
