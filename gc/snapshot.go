// ABOUTME: Exports the live heap as an analysis graph
// ABOUTME: Backs paths-to-roots and retained-size queries on a running heap

package gc

import (
	"fmt"

	"github.com/prateek/tracegc/graph"
)

// Snapshot captures every object in the table, its traced edges and the
// current root set. It does not collect and leaves mark bits untouched.
func (h *Heap[T]) Snapshot() *graph.MemGraph {
	g := graph.NewMemGraph()
	roots := make([]graph.ObjID, 0)

	t := NewTracer[T]()
	for id, hdr := range h.objects {
		t.work = t.work[:0]
		t.at(id)
		hdr.payload.Trace(t)

		obj := &graph.Object{
			ID:   graph.ObjID(id),
			Type: label(hdr.payload),
			Size: 1,
			Ptrs: make([]graph.ObjID, 0, len(t.work)),
		}
		if s, ok := any(hdr.payload).(Sizer); ok {
			obj.Size = s.Size()
		}
		for _, e := range t.work {
			obj.Ptrs = append(obj.Ptrs, graph.ObjID(e.to))
		}
		g.AddObject(obj)

		if hdr.roots > 0 {
			roots = append(roots, graph.ObjID(id))
		}
	}
	g.SetRoots(graph.Roots{IDs: roots})
	return g
}

// PathsToRoots returns up to maxPaths chains of references that keep id
// alive, target first and rooted object last.
func (h *Heap[T]) PathsToRoots(id ObjectID, maxPaths int) [][]ObjectID {
	paths := graph.PathsToRoots(h.Snapshot(), graph.ObjID(id), maxPaths)
	out := make([][]ObjectID, len(paths))
	for i, p := range paths {
		ids := make([]ObjectID, len(p.IDs))
		for j, v := range p.IDs {
			ids[j] = ObjectID(v)
		}
		out[i] = ids
	}
	return out
}

// Retained maps every reachable object to the total snapshot weight that
// would become garbage if it alone stopped being reachable.
func (h *Heap[T]) Retained() map[ObjectID]uint64 {
	sizes := graph.RetainedSize(h.Snapshot())
	out := make(map[ObjectID]uint64, len(sizes))
	for id, size := range sizes {
		out[ObjectID(id)] = size
	}
	return out
}

func label(v any) string {
	if l, ok := v.(Labeler); ok {
		return l.Label()
	}
	return fmt.Sprintf("%T", v)
}
