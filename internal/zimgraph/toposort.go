package zimgraph

// topoSort runs cycle detection (DFS, reporting the first back edge's
// full path) followed by Kahn's algorithm with declaration-order
// tie-breaks, per SPEC_FULL.md §4.2 steps 1–2.
func (b *builder) topoSort() ([]*ModuleInstance, error) {
	if path := b.findCycle(); path != nil {
		names := make([]string, len(path))
		for i, idx := range path {
			names[i] = b.modules[idx].Name
		}
		return nil, &CycleError{Path: names}
	}
	return b.kahn(), nil
}

const (
	white = iota
	gray
	black
)

func (b *builder) findCycle() []int {
	n := len(b.modules)
	color := make([]int, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	var cyclePath []int
	var visit func(u int) bool
	visit = func(u int) bool {
		color[u] = gray
		for _, v := range b.outEdges[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if visit(v) {
					return true
				}
			case gray:
				// Back edge found: reconstruct u -> ... -> v -> u.
				path := []int{v}
				cur := u
				for cur != v && cur != -1 {
					path = append([]int{cur}, path...)
					cur = parent[cur]
				}
				cyclePath = path
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := 0; i < n; i++ {
		if color[i] == white {
			if visit(i) {
				return cyclePath
			}
		}
	}
	return nil
}

// kahn computes a topological order. Among all zero-in-degree nodes
// available at each step, the one with the smallest declaration index
// is chosen, making the order deterministic and independent of map
// iteration order.
func (b *builder) kahn() []*ModuleInstance {
	n := len(b.modules)
	indegree := make([]int, n)
	for _, edges := range b.outEdges {
		for _, v := range edges {
			indegree[v]++
		}
	}

	done := make([]bool, n)
	order := make([]*ModuleInstance, 0, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if done[i] || indegree[i] > 0 {
				continue
			}
			if next == -1 {
				next = i
			}
		}
		if next == -1 {
			// Unreachable if findCycle ran first and found nothing;
			// guards against a future bug in cycle detection.
			break
		}
		done[next] = true
		order = append(order, b.modules[next])
		for _, v := range b.outEdges[next] {
			indegree[v]--
		}
	}
	return order
}
