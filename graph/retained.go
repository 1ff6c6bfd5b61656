// ABOUTME: Calculates retained sizes using the dominator tree
// ABOUTME: The retained size of X is what a collection would free if X lost its roots

package graph

// RetainedSize computes the retained size of every reachable object: its
// own size plus the sizes of all objects it dominates. With the default
// snapshot weight of 1 this is the number of objects a collection would
// reclaim if the object stopped being reachable.
func RetainedSize(g Graph) map[ObjID]uint64 {
	tree := DominatorTree(Dominators(g))
	retained := make(map[ObjID]uint64, len(tree))
	accumulate(g, tree, SuperRoot, retained)
	delete(retained, SuperRoot)
	return retained
}

// RetainedSizeSubsets computes retained sizes only for targetIDs. IDs that
// are unreachable or absent are left out of the result.
func RetainedSizeSubsets(g Graph, targetIDs []ObjID) map[ObjID]uint64 {
	result := make(map[ObjID]uint64)
	if len(targetIDs) == 0 {
		return result
	}

	tree := DominatorTree(Dominators(g))
	computed := make(map[ObjID]uint64)
	for _, id := range targetIDs {
		if id == SuperRoot {
			continue
		}
		if _, reachable := tree[id]; !reachable {
			continue
		}
		result[id] = accumulate(g, tree, id, computed)
	}
	return result
}

// accumulate fills sizes for the subtree under node in post order.
func accumulate(g Graph, tree map[ObjID][]ObjID, node ObjID, sizes map[ObjID]uint64) uint64 {
	if size, ok := sizes[node]; ok {
		return size
	}

	type frame struct {
		id   ObjID
		next int
	}
	stack := []frame{{id: node}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := tree[top.id]
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			if _, done := sizes[child]; !done {
				stack = append(stack, frame{id: child})
			}
			continue
		}

		var size uint64
		if obj := g.GetObject(top.id); obj != nil {
			size = obj.Size
		}
		for _, child := range children {
			size += sizes[child]
		}
		sizes[top.id] = size
		stack = stack[:len(stack)-1]
	}
	return sizes[node]
}
