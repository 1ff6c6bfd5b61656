// ABOUTME: Tests for the snapshot graph data structures
// ABOUTME: Validates object storage, ordering and root handling

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemGraphBasics(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 0, Type: "root", Size: 10, Ptrs: []ObjID{1}})
	g.AddObject(&Object{ID: 1, Type: "child", Size: 20})

	obj := g.GetObject(0)
	require.NotNil(t, obj)
	assert.Equal(t, "root", obj.Type)
	assert.Equal(t, 2, g.NumObjects())
	assert.Nil(t, g.GetObject(999))

	g.SetRoots(Roots{IDs: []ObjID{0}})
	assert.Equal(t, []ObjID{0}, g.GetRoots().IDs)
}

func TestMemGraphReplacesDuplicateID(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 1, Type: "first"})
	g.AddObject(&Object{ID: 1, Type: "duplicate"})

	require.Equal(t, 1, g.NumObjects())
	assert.Equal(t, "duplicate", g.GetObject(1).Type)

	count := 0
	g.ForEachObject(func(*Object) { count++ })
	assert.Equal(t, 1, count)
}

func TestForEachObjectIsOrdered(t *testing.T) {
	g := NewMemGraph()
	for _, id := range []ObjID{7, 3, 0, 12, 5} {
		g.AddObject(&Object{ID: id})
	}

	var seen []ObjID
	g.ForEachObject(func(obj *Object) { seen = append(seen, obj.ID) })
	assert.Equal(t, []ObjID{0, 3, 5, 7, 12}, seen)

	g.AddObject(&Object{ID: 1})
	seen = seen[:0]
	g.ForEachObject(func(obj *Object) { seen = append(seen, obj.ID) })
	assert.Equal(t, []ObjID{0, 1, 3, 5, 7, 12}, seen)
}

func TestReachable(t *testing.T) {
	// 0 (root) -> 1 -> 2 -> 1
	// 3 -> 4 (garbage cycle 3 <-> 4)
	g := NewMemGraph()
	g.AddObject(&Object{ID: 0, Ptrs: []ObjID{1}})
	g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 2, Ptrs: []ObjID{1, 99}})
	g.AddObject(&Object{ID: 3, Ptrs: []ObjID{4}})
	g.AddObject(&Object{ID: 4, Ptrs: []ObjID{3}})
	g.SetRoots(Roots{IDs: []ObjID{0, 42}})

	live := Reachable(g)
	assert.Equal(t, map[ObjID]bool{0: true, 1: true, 2: true}, live)
	assert.Equal(t, []ObjID{3, 4}, Unreachable(g))
}

func TestBuildReverseEdges(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 0, Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 2})

	reverse := BuildReverseEdges(g)
	assert.Equal(t, []ObjID{0, 1}, reverse[2])
	assert.Empty(t, reverse[0])
}
