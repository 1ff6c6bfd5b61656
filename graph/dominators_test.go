// ABOUTME: Tests for immediate dominators and dominator tree utilities
// ABOUTME: Covers chains, diamonds, cycles, multiple roots and large graphs

package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominators(t *testing.T) {
	tests := []struct {
		name     string
		graph    func() Graph
		expected map[ObjID]ObjID
	}{
		{
			name: "simple linear chain",
			graph: func() Graph {
				g := NewMemGraph()
				g.AddObject(&Object{ID: 0})
				g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2}})
				g.AddObject(&Object{ID: 2, Ptrs: []ObjID{3}})
				g.AddObject(&Object{ID: 3})
				g.SetRoots(Roots{IDs: []ObjID{1}})
				return g
			},
			expected: map[ObjID]ObjID{1: SuperRoot, 2: 1, 3: 2},
		},
		{
			name: "diamond pattern",
			graph: func() Graph {
				g := NewMemGraph()
				g.AddObject(&Object{ID: 0, Ptrs: []ObjID{1, 2}})
				g.AddObject(&Object{ID: 1, Ptrs: []ObjID{3}})
				g.AddObject(&Object{ID: 2, Ptrs: []ObjID{3}})
				g.AddObject(&Object{ID: 3})
				g.SetRoots(Roots{IDs: []ObjID{0}})
				return g
			},
			expected: map[ObjID]ObjID{0: SuperRoot, 1: 0, 2: 0, 3: 0},
		},
		{
			name: "multiple paths",
			graph: func() Graph {
				g := NewMemGraph()
				g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2, 3}})
				g.AddObject(&Object{ID: 2, Ptrs: []ObjID{4}})
				g.AddObject(&Object{ID: 3, Ptrs: []ObjID{4, 5}})
				g.AddObject(&Object{ID: 4, Ptrs: []ObjID{6}})
				g.AddObject(&Object{ID: 5, Ptrs: []ObjID{6}})
				g.AddObject(&Object{ID: 6})
				g.SetRoots(Roots{IDs: []ObjID{1}})
				return g
			},
			expected: map[ObjID]ObjID{1: SuperRoot, 2: 1, 3: 1, 4: 1, 5: 3, 6: 1},
		},
		{
			name: "back edge",
			graph: func() Graph {
				g := NewMemGraph()
				g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2}})
				g.AddObject(&Object{ID: 2, Ptrs: []ObjID{3}})
				g.AddObject(&Object{ID: 3, Ptrs: []ObjID{4}})
				g.AddObject(&Object{ID: 4, Ptrs: []ObjID{2, 5}})
				g.AddObject(&Object{ID: 5})
				g.SetRoots(Roots{IDs: []ObjID{1}})
				return g
			},
			expected: map[ObjID]ObjID{1: SuperRoot, 2: 1, 3: 2, 4: 3, 5: 4},
		},
		{
			name: "shared by two roots",
			graph: func() Graph {
				g := NewMemGraph()
				g.AddObject(&Object{ID: 1, Ptrs: []ObjID{3}})
				g.AddObject(&Object{ID: 2, Ptrs: []ObjID{3}})
				g.AddObject(&Object{ID: 3})
				g.SetRoots(Roots{IDs: []ObjID{1, 2}})
				return g
			},
			expected: map[ObjID]ObjID{1: SuperRoot, 2: SuperRoot, 3: SuperRoot},
		},
		{
			name: "no roots",
			graph: func() Graph {
				g := NewMemGraph()
				g.AddObject(&Object{ID: 0, Ptrs: []ObjID{1}})
				g.AddObject(&Object{ID: 1, Ptrs: []ObjID{0}})
				return g
			},
			expected: map[ObjID]ObjID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dominators(tt.graph()))
		})
	}
}

func TestDominatorTree(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 1, Ptrs: []ObjID{2, 3}})
	g.AddObject(&Object{ID: 2, Ptrs: []ObjID{4}})
	g.AddObject(&Object{ID: 3, Ptrs: []ObjID{4, 5}})
	g.AddObject(&Object{ID: 4})
	g.AddObject(&Object{ID: 5})
	g.SetRoots(Roots{IDs: []ObjID{1}})

	idom := Dominators(g)
	tree := DominatorTree(idom)

	expected := map[ObjID][]ObjID{
		SuperRoot: {1},
		1:         {2, 3, 4},
		2:         {},
		3:         {5},
		4:         {},
		5:         {},
	}
	require.Len(t, tree, len(expected))
	for parent, want := range expected {
		assert.ElementsMatch(t, want, tree[parent], "children of %d", parent)
	}

	depth := DominatorDepth(tree)
	assert.Equal(t, 0, depth[SuperRoot])
	assert.Equal(t, 1, depth[1])
	assert.Equal(t, 3, depth[5])

	assert.Equal(t, []ObjID{5, 3, 1, SuperRoot}, DominatorPath(idom, 5))
	assert.Equal(t, []ObjID{42, SuperRoot}, DominatorPath(idom, 42))

	assert.True(t, IsDominated(idom, 5, 3))
	assert.True(t, IsDominated(idom, 5, 1))
	assert.True(t, IsDominated(idom, 4, 4))
	assert.True(t, IsDominated(idom, 4, SuperRoot))
	assert.False(t, IsDominated(idom, 4, 2))
	assert.False(t, IsDominated(idom, 42, 1))
}

func TestDominatorsLargeGraph(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large graph in short mode")
	}

	// Complete 10-ary tree with parent back edges; every node is
	// dominated by its tree parent.
	const n = 50000
	g := NewMemGraph()
	for i := 1; i <= n; i++ {
		obj := &Object{ID: ObjID(i)}
		if i > 1 {
			obj.Ptrs = append(obj.Ptrs, ObjID((i-2)/10+1))
		}
		for j := 1; j <= 10; j++ {
			if child := (i-1)*10 + j + 1; child <= n {
				obj.Ptrs = append(obj.Ptrs, ObjID(child))
			}
		}
		g.AddObject(obj)
	}
	g.SetRoots(Roots{IDs: []ObjID{1}})

	idom := Dominators(g)
	require.Len(t, idom, n)
	for i := 2; i <= n; i++ {
		want := ObjID((i-2)/10 + 1)
		if idom[ObjID(i)] != want {
			t.Fatalf("node %d: dominator = %d, want %d", i, idom[ObjID(i)], want)
		}
	}
}

func BenchmarkDominators(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			g := NewMemGraph()
			for i := 1; i <= n; i++ {
				obj := &Object{ID: ObjID(i)}
				if i > 1 {
					obj.Ptrs = append(obj.Ptrs, ObjID(i/2))
				}
				if i*2 <= n {
					obj.Ptrs = append(obj.Ptrs, ObjID(i*2))
				}
				if i*2+1 <= n {
					obj.Ptrs = append(obj.Ptrs, ObjID(i*2+1))
				}
				g.AddObject(obj)
			}
			g.SetRoots(Roots{IDs: []ObjID{1}})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = Dominators(g)
			}
		})
	}
}
