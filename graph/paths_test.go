// ABOUTME: Tests for the paths-to-roots search
// ABOUTME: Validates BFS ordering, cycle handling and path limits

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsToRoots(t *testing.T) {
	// 1 (root) -> 2 -> 3
	//               -> 4
	g := NewMemGraph()
	g.AddObject(&Object{ID: 1, Type: "root", Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 2, Type: "middle", Ptrs: []ObjID{3, 4}})
	g.AddObject(&Object{ID: 3, Type: "leaf1"})
	g.AddObject(&Object{ID: 4, Type: "leaf2"})
	g.SetRoots(Roots{IDs: []ObjID{1}})

	tests := []struct {
		name     string
		from     ObjID
		maxPaths int
		want     []Path
	}{
		{name: "root itself", from: 1, maxPaths: 5, want: []Path{{IDs: []ObjID{1}}}},
		{name: "one hop", from: 2, maxPaths: 5, want: []Path{{IDs: []ObjID{2, 1}}}},
		{name: "two hops", from: 3, maxPaths: 5, want: []Path{{IDs: []ObjID{3, 2, 1}}}},
		{name: "sibling leaf", from: 4, maxPaths: 5, want: []Path{{IDs: []ObjID{4, 2, 1}}}},
		{name: "zero limit", from: 4, maxPaths: 0, want: nil},
		{name: "missing object", from: 99, maxPaths: 5, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathsToRoots(g, tt.from, tt.maxPaths))
		})
	}
}

func TestPathsWithCycles(t *testing.T) {
	// 0 (root) -> 1 -> 2 -> 1
	g := NewMemGraph()
	g.AddObject(&Object{ID: 0, Ptrs: []ObjID{1}})
	g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 2, Ptrs: []ObjID{1, 2}})
	g.SetRoots(Roots{IDs: []ObjID{0}})

	assert.Equal(t, []Path{{IDs: []ObjID{2, 1, 0}}}, PathsToRoots(g, 2, 5))
}

func TestPathsUnreachableCycle(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 0})
	g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 2, Ptrs: []ObjID{1}})
	g.SetRoots(Roots{IDs: []ObjID{0}})

	assert.Empty(t, PathsToRoots(g, 1, 5))
}

func TestPathsMultipleRoots(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 1, Ptrs: []ObjID{4}})
	g.AddObject(&Object{ID: 2, Ptrs: []ObjID{4}})
	g.AddObject(&Object{ID: 3, Ptrs: []ObjID{4}})
	g.AddObject(&Object{ID: 4})
	g.SetRoots(Roots{IDs: []ObjID{1, 2, 3}})

	all := PathsToRoots(g, 4, 5)
	assert.ElementsMatch(t, []Path{
		{IDs: []ObjID{4, 1}},
		{IDs: []ObjID{4, 2}},
		{IDs: []ObjID{4, 3}},
	}, all)

	assert.Len(t, PathsToRoots(g, 4, 2), 2)
}
