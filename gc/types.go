// ABOUTME: Core data types for the collected heap
// ABOUTME: Defines ObjectID, the Trace capability and per-object headers

package gc

// ObjectID identifies an object within a single Heap. IDs are assigned in
// allocation order starting at 0 and are never reused.
type ObjectID uint64

// Trace is the capability every payload stored in a Heap must provide.
// Trace reports each Gc edge the payload directly holds by passing it to
// t.Trace. It must not allocate on the heap or rebind Gc fields while it
// runs.
type Trace[T any] interface {
	Trace(t *Tracer[T])
}

// Sizer is optionally implemented by payloads that want a weight other
// than 1 in heap snapshots.
type Sizer interface {
	Size() uint64
}

// Labeler is optionally implemented by payloads that want a type label
// other than their Go type name in heap snapshots.
type Labeler interface {
	Label() string
}

// header is the table entry for one object.
type header[T any] struct {
	marked bool
	// aliased is set once a Gc has been handed out for the object. An
	// object that was never aliased cannot be the target of any edge.
	aliased bool
	// roots counts the live Root handles for the object.
	roots   int
	payload T
}

// owner is the table lookup that handles resolve through.
type owner[T any] interface {
	lookup(id ObjectID) (*header[T], bool)
}
