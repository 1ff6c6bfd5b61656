// ABOUTME: Heap owns the object table and runs mark-and-sweep collections
// ABOUTME: Allocation assigns monotonic IDs and triggers collection every threshold allocations

package gc

import (
	"fmt"
	"log/slog"
	"time"
)

// Heap is a single-threaded, stop-the-world, mark-and-sweep collected
// store of T values. Embedding it in a multi-threaded host requires
// external synchronization.
type Heap[T Trace[T]] struct {
	objects   map[ObjectID]*header[T]
	nextID    ObjectID
	threshold uint64
	opts      options
	stats     Stats
}

// New creates an empty heap that collects automatically every threshold
// allocations.
func New[T Trace[T]](threshold int, opts ...Option) (*Heap[T], error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Heap[T]{
		objects:   make(map[ObjectID]*header[T]),
		threshold: uint64(threshold),
		opts:      o,
	}, nil
}

// MustNew is like New but panics on an invalid threshold.
func MustNew[T Trace[T]](threshold int, opts ...Option) *Heap[T] {
	h, err := New[T](threshold, opts...)
	if err != nil {
		panic(err)
	}
	return h
}

func (h *Heap[T]) lookup(id ObjectID) (*header[T], bool) {
	hdr, ok := h.objects[id]
	return hdr, ok
}

// Allocate stores payload and returns a Root for it. When the new ID is a
// multiple of the threshold a full collection runs before the insert.
func (h *Heap[T]) Allocate(payload T) *Root[T] {
	id := h.nextID
	h.nextID++

	if uint64(id)%h.threshold == 0 {
		if _, err := h.collect(TriggerThreshold, true); err != nil {
			panic(err)
		}
	}

	hdr := &header[T]{roots: 1, payload: payload}
	h.objects[id] = hdr
	h.stats.Allocations++
	if h.opts.metrics != nil {
		h.opts.metrics.ObserveAllocation()
	}

	return &Root[T]{heap: h, id: id, hdr: hdr}
}

// Collect runs a full collection and returns the number of objects
// reclaimed. It panics with a *ContractError if marking finds an edge
// that no longer resolves; use CollectChecked to receive it instead.
func (h *Heap[T]) Collect() int {
	n, err := h.collect(TriggerExplicit, true)
	if err != nil {
		panic(err)
	}
	return n
}

// CollectChecked runs a full collection. If marking finds a contract
// violation it returns the *ContractError and leaves every object that
// survived the pre-pass in place.
func (h *Heap[T]) CollectChecked() (int, error) {
	return h.collect(TriggerExplicit, false)
}

// ObjectCount returns the number of objects in the table.
func (h *Heap[T]) ObjectCount() int {
	return len(h.objects)
}

// RootCount returns the number of objects held by at least one Root.
func (h *Heap[T]) RootCount() int {
	n := 0
	for _, hdr := range h.objects {
		if hdr.roots > 0 {
			n++
		}
	}
	return n
}

// Contains reports whether id is still in the table.
func (h *Heap[T]) Contains(id ObjectID) bool {
	_, ok := h.objects[id]
	return ok
}

// Threshold returns the number of allocations between automatic collections.
func (h *Heap[T]) Threshold() int {
	return int(h.threshold)
}

// Stats returns a copy of the heap's counters.
func (h *Heap[T]) Stats() Stats {
	s := h.stats
	s.Live = len(h.objects)
	s.Rooted = h.RootCount()
	return s
}

func (h *Heap[T]) collect(trigger Trigger, fatal bool) (int, error) {
	h.stats.Collections++
	if trigger == TriggerThreshold {
		h.stats.AutoCollections++
	}
	if len(h.objects) == 0 {
		h.stats.LastReclaimed = 0
		h.stats.LastDuration = 0
		h.observe(trigger, 0, 0)
		return 0, nil
	}

	start := time.Now()
	starting := len(h.objects)

	pruned := 0
	if h.opts.prepass {
		pruned = h.prune()
		h.stats.PrepassReclaimed += uint64(pruned)
	}

	if err := h.mark(h.rootSet()); err != nil {
		h.clearMarks()
		h.stats.Violations++
		h.stats.Reclaimed += uint64(pruned)
		h.stats.LastReclaimed = pruned
		h.opts.logger.Error("collection aborted",
			"trigger", string(trigger),
			"error", err,
			"fatal", fatal)
		if h.opts.metrics != nil {
			h.opts.metrics.ObserveViolation(err)
		}
		return pruned, err
	}
	h.sweep()

	reclaimed := starting - len(h.objects)
	elapsed := time.Since(start)
	h.stats.Reclaimed += uint64(reclaimed)
	h.stats.LastReclaimed = reclaimed
	h.stats.LastDuration = elapsed

	h.opts.logger.Debug("collection finished",
		"trigger", string(trigger),
		"reclaimed", reclaimed,
		"prepass", pruned,
		"live", len(h.objects),
		"duration", elapsed)
	h.observe(trigger, reclaimed, elapsed)

	return reclaimed, nil
}

func (h *Heap[T]) observe(trigger Trigger, reclaimed int, d time.Duration) {
	if h.opts.metrics != nil {
		h.opts.metrics.ObserveCollection(trigger, reclaimed, len(h.objects), d)
	}
}

// prune drops objects that have no Root and were never aliased. Nothing
// can hold an edge to such an object, so no tracing is needed. Removing
// one never makes another eligible, so a single pass reaches the fixed
// point.
func (h *Heap[T]) prune() int {
	n := 0
	for id, hdr := range h.objects {
		if hdr.roots == 0 && !hdr.aliased {
			delete(h.objects, id)
			n++
		}
	}
	return n
}

// rootSet returns every object held by at least one Root.
func (h *Heap[T]) rootSet() []ObjectID {
	roots := make([]ObjectID, 0, len(h.objects))
	for id, hdr := range h.objects {
		if hdr.roots > 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

func (h *Heap[T]) mark(roots []ObjectID) error {
	t := &Tracer[T]{owner: h, work: make([]edge, 0, len(roots))}
	for _, id := range roots {
		t.seed(id)
	}

	for {
		e, ok := t.pop()
		if !ok {
			return nil
		}
		hdr, ok := h.objects[e.to]
		if !ok {
			if !e.parent {
				return &ContractError{Err: ErrRootSetCorrupted, To: e.to}
			}
			return &ContractError{Err: ErrDanglingEdge, From: e.from, HasFrom: true, To: e.to}
		}
		if hdr.marked {
			continue
		}
		hdr.marked = true

		t.at(e.to)
		hdr.payload.Trace(t)
		if t.err != nil {
			return t.err
		}
	}
}

// sweep removes every unmarked object and clears the marks of survivors.
func (h *Heap[T]) sweep() {
	for id, hdr := range h.objects {
		if !hdr.marked {
			delete(h.objects, id)
			continue
		}
		hdr.marked = false
	}
}

func (h *Heap[T]) clearMarks() {
	for _, hdr := range h.objects {
		hdr.marked = false
	}
}

// LogValue lets a Heap be passed directly as a slog attribute value.
func (h *Heap[T]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("live", len(h.objects)),
		slog.Uint64("next_id", uint64(h.nextID)),
		slog.Int("threshold", int(h.threshold)))
}
