// ABOUTME: Utility functions for working with dominator trees
// ABOUTME: Depths, dominator chains and dominance queries

package graph

// DominatorDepth computes the depth of each node in the dominator tree.
// SuperRoot has depth 0 and roots have depth 1.
func DominatorDepth(tree map[ObjID][]ObjID) map[ObjID]int {
	depth := map[ObjID]int{SuperRoot: 0}
	queue := []ObjID{SuperRoot}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range tree[node] {
			depth[child] = depth[node] + 1
			queue = append(queue, child)
		}
	}
	return depth
}

// DominatorPath returns the chain of dominators from node up to SuperRoot,
// node first. Nodes missing from idom yield just [node, SuperRoot].
func DominatorPath(idom map[ObjID]ObjID, node ObjID) []ObjID {
	path := []ObjID{node}
	for current := node; current != SuperRoot; {
		dom, ok := idom[current]
		if !ok {
			dom = SuperRoot
		}
		path = append(path, dom)
		current = dom
	}
	return path
}

// IsDominated reports whether every path from the root set to node goes
// through dominator. A node dominates itself.
func IsDominated(idom map[ObjID]ObjID, node, dominator ObjID) bool {
	if node == dominator || dominator == SuperRoot {
		return true
	}
	for current := node; ; {
		dom, ok := idom[current]
		if !ok || dom == SuperRoot {
			return false
		}
		if dom == dominator {
			return true
		}
		current = dom
	}
}
