package reactive

// collectAffected walks dependent edges transitively from root using an
// explicit stack instead of recursion. The returned slice excludes root;
// its discovery order is the deterministic tie-break between independent
// nodes in the evaluation order.
func collectAffected(root *Node) []*Node {
	stack := make([]*Node, 0, 32)
	stack = append(stack, root)

	affected := make([]*Node, 0, 32)
	visited := make(map[*Node]bool, 32)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			continue
		}
		visited[current] = true

		if current != root {
			affected = append(affected, current)
		}

		for i := len(current.dependents) - 1; i >= 0; i-- {
			dep := current.dependents[i]
			if !visited[dep] {
				stack = append(stack, dep)
			}
		}
	}

	return affected
}

// topoOrder produces a linear evaluation order over the affected set such
// that every node appears after all of its own dependencies that are also in
// the set (Kahn's algorithm on the induced subgraph). Leftover nodes mean
// the subgraph contains a cycle.
func topoOrder(root *Node, affected []*Node) ([]*Node, error) {
	inSet := make(map[*Node]bool, len(affected))
	for _, n := range affected {
		inSet[n] = true
	}

	indegree := make(map[*Node]int, len(affected))
	for _, n := range affected {
		for _, dep := range n.Dependencies() {
			if inSet[dep] {
				indegree[n]++
			}
		}
	}

	queue := make([]*Node, 0, len(affected))
	for _, n := range affected {
		if indegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]*Node, 0, len(affected))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, d := range n.dependents {
			if !inSet[d] {
				continue
			}
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) != len(affected) {
		for _, n := range affected {
			if indegree[n] > 0 {
				return nil, &CyclicDependencyError{Node: n}
			}
		}
		return nil, &CyclicDependencyError{Node: root}
	}
	return order, nil
}

// propagateFrom runs one propagation wave rooted at a freshly mutated node:
// collect the affected set, order it, mark everything dirty, then recompute
// each node exactly once. The dirty marks land before the walk so that an
// abort partway through leaves every downstream node dirty and retryable.
func (g *Graph) propagateFrom(root *Node) error {
	affected := collectAffected(root)
	if len(affected) == 0 {
		return nil
	}

	order, err := topoOrder(root, affected)
	if err != nil {
		return err
	}

	for _, n := range affected {
		n.dirty = true
	}

	for _, n := range order {
		// resolveDirty rather than a bare recompute: a dependency outside
		// the affected set may never have been computed at all.
		if _, err := g.resolveDirty(n, nil); err != nil {
			return err
		}
	}
	return nil
}
