// ABOUTME: Mark-phase worklist that payloads report their edges into
// ABOUTME: Tracer collects Gc edges and flags edges from foreign heaps

package gc

// edge is a pending visit. Seeds of the root set have no parent.
type edge struct {
	from   ObjectID
	to     ObjectID
	parent bool
}

// Tracer is the worklist handed to Trace implementations.
type Tracer[T any] struct {
	owner   owner[T]
	current ObjectID
	inside  bool
	work    []edge
	err     *ContractError
}

// NewTracer returns a detached Tracer that accepts edges from any heap.
// It is meant for unit-testing Trace implementations; see Edges.
func NewTracer[T any]() *Tracer[T] {
	return &Tracer[T]{}
}

// Trace records an outgoing edge of the object currently being traced.
// Nil edges are ignored.
func (t *Tracer[T]) Trace(g Gc[T]) {
	if g.IsNil() {
		return
	}
	if t.owner != nil && g.heap != t.owner {
		if t.err == nil {
			t.err = &ContractError{Err: ErrForeignEdge, From: t.current, HasFrom: t.inside, To: g.id}
		}
		return
	}
	t.work = append(t.work, edge{from: t.current, to: g.id, parent: t.inside})
}

// Edges returns the targets of all pending edges in push order.
func (t *Tracer[T]) Edges() []ObjectID {
	ids := make([]ObjectID, len(t.work))
	for i, e := range t.work {
		ids[i] = e.to
	}
	return ids
}

// Len returns the number of pending edges.
func (t *Tracer[T]) Len() int {
	return len(t.work)
}

func (t *Tracer[T]) seed(id ObjectID) {
	t.work = append(t.work, edge{to: id})
}

func (t *Tracer[T]) pop() (edge, bool) {
	n := len(t.work)
	if n == 0 {
		return edge{}, false
	}
	e := t.work[n-1]
	t.work = t.work[:n-1]
	return e, true
}

// at positions the tracer on the object whose edges are reported next.
func (t *Tracer[T]) at(id ObjectID) {
	t.current = id
	t.inside = true
}
