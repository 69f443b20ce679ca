package dag

import "sort"

// TopologicalOrder returns task IDs with every predecessor before its
// successors, using Kahn's algorithm over in-degree counts. Ties are
// broken alphabetically for deterministic output. If edges form a cycle
// it returns a *CycleError naming the implicated tasks; no partial
// order is returned in that case.
func (g *Graph) TopologicalOrder() ([]string, error) {
	inDegree := make(map[string]int, len(g.tasks))
	for id := range g.tasks {
		inDegree[id] = len(g.pred[id])
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.tasks))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var freed []string
		for _, e := range g.succ[id] {
			inDegree[e.Succ]--
			if inDegree[e.Succ] == 0 {
				freed = append(freed, e.Succ)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}

	if len(order) != len(g.tasks) {
		return nil, &CycleError{TaskIDs: g.cycleMembers(inDegree)}
	}
	return order, nil
}

// cycleMembers reconstructs a cycle path from the nodes Kahn's
// algorithm could not order. It walks predecessor edges iteratively
// within the leftover set until a node repeats; the slice between the
// two sightings is a genuine cycle. Falls back to the sorted leftover
// set if reconstruction fails, so the error always names at least one
// implicated task.
func (g *Graph) cycleMembers(inDegree map[string]int) []string {
	leftover := make(map[string]bool)
	for id, deg := range inDegree {
		if deg > 0 {
			leftover[id] = true
		}
	}
	if len(leftover) == 0 {
		return nil
	}

	// Deterministic entry point into the leftover subgraph.
	start := ""
	for id := range leftover {
		if start == "" || id < start {
			start = id
		}
	}

	visitedAt := map[string]int{}
	var path []string
	cur := start
	for {
		if at, seen := visitedAt[cur]; seen {
			// The walk followed predecessor edges, so the slice is in
			// reverse dependency order; flip it before returning.
			cycle := append(path[at:], cur)
			for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
				cycle[i], cycle[j] = cycle[j], cycle[i]
			}
			return cycle
		}
		visitedAt[cur] = len(path)
		path = append(path, cur)

		next := ""
		for _, e := range g.pred[cur] {
			if leftover[e.Pred] && (next == "" || e.Pred < next) {
				next = e.Pred
			}
		}
		if next == "" {
			// Dead end; report the leftover set instead.
			ids := make([]string, 0, len(leftover))
			for id := range leftover {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			return ids
		}
		cur = next
	}
}
