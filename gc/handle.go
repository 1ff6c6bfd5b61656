// ABOUTME: Owning (Root) and observing (Gc) handles onto heap objects
// ABOUTME: Roots feed the root registry; Gc values encode graph edges

package gc

import "fmt"

// Root is an owning handle. While at least one unreleased Root refers to
// an object, the object is a member of the root set.
//
// Go has no destructors, so a Root must be released explicitly; a Root
// that is dropped without Release keeps its object alive for the lifetime
// of the Heap.
type Root[T any] struct {
	heap owner[T]
	id   ObjectID
	hdr  *header[T]
}

// ID returns the identity of the rooted object.
func (r *Root[T]) ID() ObjectID {
	return r.id
}

// Value returns the payload. It panics with ErrReleased after Release.
func (r *Root[T]) Value() T {
	if r.hdr == nil {
		panic(fmt.Errorf("gc: object %d: %w", r.id, ErrReleased))
	}
	return r.hdr.payload
}

// Released reports whether Release or IntoGc has been called.
func (r *Root[T]) Released() bool {
	return r.hdr == nil
}

// AsGc returns an observing alias while keeping this Root alive.
func (r *Root[T]) AsGc() Gc[T] {
	if r.hdr == nil {
		panic(fmt.Errorf("gc: object %d: %w", r.id, ErrReleased))
	}
	r.hdr.aliased = true
	return Gc[T]{heap: r.heap, id: r.id}
}

// IntoGc converts the Root into an observing alias and gives up its
// ownership unit. The Gc stays resolvable only while the object remains
// reachable through another Root or an edge from a rooted object.
func (r *Root[T]) IntoGc() Gc[T] {
	g := r.AsGc()
	r.Release()
	return g
}

// Clone returns a second owning handle onto the same object.
func (r *Root[T]) Clone() *Root[T] {
	if r.hdr == nil {
		panic(fmt.Errorf("gc: object %d: %w", r.id, ErrReleased))
	}
	r.hdr.roots++
	return &Root[T]{heap: r.heap, id: r.id, hdr: r.hdr}
}

// Release gives up the handle's ownership unit. Calling it more than once
// is a no-op.
func (r *Root[T]) Release() {
	if r.hdr == nil {
		return
	}
	r.hdr.roots--
	r.hdr = nil
}

// Gc is a non-owning handle used inside payloads to express edges. The
// zero value is a nil edge. A Gc alone does not keep its target alive.
type Gc[T any] struct {
	heap owner[T]
	id   ObjectID
}

// ID returns the identity of the target object.
func (g Gc[T]) ID() ObjectID {
	return g.id
}

// IsNil reports whether g is the zero Gc.
func (g Gc[T]) IsNil() bool {
	return g.heap == nil
}

// Alive reports whether the target is still present in its heap.
func (g Gc[T]) Alive() bool {
	if g.heap == nil {
		return false
	}
	_, ok := g.heap.lookup(g.id)
	return ok
}

// Get resolves the target, returning ErrReclaimed if it has been swept and
// ErrNilHandle for the zero Gc.
func (g Gc[T]) Get() (T, error) {
	var zero T
	if g.heap == nil {
		return zero, ErrNilHandle
	}
	hdr, ok := g.heap.lookup(g.id)
	if !ok {
		return zero, fmt.Errorf("gc: object %d: %w", g.id, ErrReclaimed)
	}
	return hdr.payload, nil
}

// MustGet resolves the target and panics if it cannot. Reaching the panic
// means some payload's Trace failed to report an edge, or the Gc outlived
// everything that kept its target reachable.
func (g Gc[T]) MustGet() T {
	v, err := g.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Root promotes the observed object back to a rooted one.
func (g Gc[T]) Root() (*Root[T], error) {
	if g.heap == nil {
		return nil, ErrNilHandle
	}
	hdr, ok := g.heap.lookup(g.id)
	if !ok {
		return nil, fmt.Errorf("gc: object %d: %w", g.id, ErrReclaimed)
	}
	hdr.roots++
	return &Root[T]{heap: g.heap, id: g.id, hdr: hdr}, nil
}
