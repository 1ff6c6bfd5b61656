// ABOUTME: Computes immediate dominators of the snapshot graph
// ABOUTME: Iterative Cooper-Harvey-Kennedy algorithm over reverse postorder

package graph

// Dominators computes the immediate dominator of every object reachable
// from the root set. Roots are dominated by SuperRoot, which itself is
// left out of the result. An object X dominates Y when every path from
// the root set to Y passes through X, so releasing X's only Root would
// make Y collectable.
func Dominators(g Graph) map[ObjID]ObjID {
	roots := g.GetRoots().IDs
	successors := func(id ObjID) []ObjID {
		if id == SuperRoot {
			return roots
		}
		if obj := g.GetObject(id); obj != nil {
			return obj.Ptrs
		}
		return nil
	}

	// Number reachable nodes in postorder with an explicit stack.
	type frame struct {
		id   ObjID
		next int
	}
	index := make(map[ObjID]int)
	visited := map[ObjID]bool{SuperRoot: true}
	var post []ObjID
	stack := []frame{{id: SuperRoot}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succ := successors(top.id)
		if top.next < len(succ) {
			w := succ[top.next]
			top.next++
			if !visited[w] && g.GetObject(w) != nil {
				visited[w] = true
				stack = append(stack, frame{id: w})
			}
			continue
		}
		index[top.id] = len(post)
		post = append(post, top.id)
		stack = stack[:len(stack)-1]
	}

	n := len(post)
	preds := make([][]int, n)
	for i, id := range post {
		for _, w := range successors(id) {
			if j, ok := index[w]; ok {
				preds[j] = append(preds[j], i)
			}
		}
	}

	idom := make([]int, n)
	for i := range idom {
		idom[i] = -1
	}
	start := n - 1
	idom[start] = start

	intersect := func(a, b int) int {
		for a != b {
			for a < b {
				a = idom[a]
			}
			for b < a {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for i := start - 1; i >= 0; i-- {
			candidate := -1
			for _, p := range preds[i] {
				if idom[p] == -1 {
					continue
				}
				if candidate == -1 {
					candidate = p
				} else {
					candidate = intersect(p, candidate)
				}
			}
			if candidate != -1 && idom[i] != candidate {
				idom[i] = candidate
				changed = true
			}
		}
	}

	result := make(map[ObjID]ObjID, n-1)
	for i := 0; i < start; i++ {
		result[post[i]] = post[idom[i]]
	}
	return result
}

// DominatorTree inverts the immediate-dominator map into a tree keyed by
// dominator. Every node, including SuperRoot, gets an entry.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := make(map[ObjID][]ObjID, len(idom)+1)
	tree[SuperRoot] = []ObjID{}
	for node := range idom {
		if _, ok := tree[node]; !ok {
			tree[node] = []ObjID{}
		}
	}
	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}
	return tree
}
