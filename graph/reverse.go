// ABOUTME: Builds reverse edges and reachability sets for traversal
// ABOUTME: Maps objects to their referrers and computes the live closure

package graph

// ReverseEdges maps each object to the objects that point to it.
type ReverseEdges map[ObjID][]ObjID

// BuildReverseEdges creates the referrer map. Edges to objects missing
// from the graph are kept so dangling references stay visible.
func BuildReverseEdges(g Graph) ReverseEdges {
	reverse := make(ReverseEdges)

	g.ForEachObject(func(obj *Object) {
		for _, target := range obj.Ptrs {
			reverse[target] = append(reverse[target], obj.ID)
		}
	})

	return reverse
}

// Reachable returns the transitive closure of the root set. Roots and
// edges that name objects absent from the graph are ignored.
func Reachable(g Graph) map[ObjID]bool {
	seen := make(map[ObjID]bool)
	var stack []ObjID
	for _, id := range g.GetRoots().IDs {
		stack = append(stack, id)
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		obj := g.GetObject(id)
		if obj == nil {
			continue
		}
		seen[id] = true
		for _, p := range obj.Ptrs {
			if !seen[p] {
				stack = append(stack, p)
			}
		}
	}

	return seen
}

// Unreachable returns the IDs of objects outside the live closure, in
// ascending order.
func Unreachable(g Graph) []ObjID {
	live := Reachable(g)
	var dead []ObjID
	g.ForEachObject(func(obj *Object) {
		if !live[obj.ID] {
			dead = append(dead, obj.ID)
		}
	})
	return dead
}
