// ABOUTME: Graph interface and in-memory implementation
// ABOUTME: Stores the objects and roots captured from a heap snapshot

package graph

import "sort"

// Graph is a read-mostly object graph.
type Graph interface {
	// AddObject adds or replaces an object
	AddObject(obj *Object)

	// GetObject returns the object with the given ID or nil
	GetObject(id ObjID) *Object

	// NumObjects returns the total number of objects
	NumObjects() int

	// ForEachObject calls fn for every object in ascending ID order
	ForEachObject(fn func(*Object))

	// SetRoots replaces the root set
	SetRoots(roots Roots)

	// GetRoots returns the root set
	GetRoots() Roots
}

// MemGraph is the in-memory Graph produced by heap snapshots.
type MemGraph struct {
	objects map[ObjID]*Object
	order   []ObjID
	sorted  bool
	roots   Roots
}

// NewMemGraph creates an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		objects: make(map[ObjID]*Object),
		sorted:  true,
	}
}

// AddObject adds obj, replacing any object with the same ID.
func (g *MemGraph) AddObject(obj *Object) {
	if _, exists := g.objects[obj.ID]; !exists {
		g.order = append(g.order, obj.ID)
		g.sorted = false
	}
	g.objects[obj.ID] = obj
}

// GetObject returns the object with the given ID or nil.
func (g *MemGraph) GetObject(id ObjID) *Object {
	return g.objects[id]
}

// NumObjects returns the total number of objects.
func (g *MemGraph) NumObjects() int {
	return len(g.objects)
}

// ForEachObject visits objects in ascending ID order so that analyses
// built on top of it are deterministic.
func (g *MemGraph) ForEachObject(fn func(*Object)) {
	if !g.sorted {
		sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
		g.sorted = true
	}
	for _, id := range g.order {
		fn(g.objects[id])
	}
}

// SetRoots replaces the root set.
func (g *MemGraph) SetRoots(roots Roots) {
	g.roots = roots
}

// GetRoots returns the root set.
func (g *MemGraph) GetRoots() Roots {
	return g.roots
}
