// ABOUTME: BFS search for the chains of references keeping an object alive
// ABOUTME: Returns up to K shortest paths from an object to the root set

package graph

// Path is a chain of references from a target back to a root.
type Path struct {
	IDs []ObjID // Target first, root last
}

// PathsToRoots answers "why is this object still alive" by walking
// referrers breadth-first until it reaches rooted objects. At most
// maxPaths paths are returned; a path never visits the same object twice.
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 || g.GetObject(from) == nil {
		return nil
	}

	rootSet := make(map[ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rootSet[id] = true
	}
	if rootSet[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	reverse := BuildReverseEdges(g)

	type searchNode struct {
		id   ObjID
		path []ObjID
	}

	var result []Path
	queue := []searchNode{{id: from, path: []ObjID{from}}}

	for len(queue) > 0 && len(result) < maxPaths {
		node := queue[0]
		queue = queue[1:]

		for _, referrer := range reverse[node.id] {
			if contains(node.path, referrer) {
				continue
			}

			next := make([]ObjID, len(node.path)+1)
			copy(next, node.path)
			next[len(node.path)] = referrer

			if rootSet[referrer] {
				result = append(result, Path{IDs: next})
				if len(result) >= maxPaths {
					break
				}
				continue
			}
			queue = append(queue, searchNode{id: referrer, path: next})
		}
	}

	return result
}

func contains(ids []ObjID, id ObjID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
