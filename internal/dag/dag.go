// Package dag models a project's task dependency graph with typed
// precedence edges and provides cycle-safe topological ordering for the
// schedulers. Edges carry a dependency type — finish-to-start or
// start-to-start — and an optional lag measured in working days.
package dag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycle is returned when the dependency edges contain a cycle.
var ErrCycle = errors.New("circular dependency")

// ErrDuplicateTask is returned when two tasks share an ID.
var ErrDuplicateTask = errors.New("duplicate task id")

// DepType classifies a precedence edge.
type DepType string

const (
	// FS (finish-to-start): the successor cannot start before the
	// predecessor finishes, plus one working day.
	FS DepType = "FS"
	// SS (start-to-start): the successor cannot start before the
	// predecessor starts. Same-day floor, no added day.
	SS DepType = "SS"
)

// Task is a single schedulable work item within one project.
type Task struct {
	ID           string
	Title        string
	Trade        string
	Priority     int
	DurationDays int // working days, must be positive
}

// Edge is a directed precedence constraint from Pred to Succ. LagDays is
// an additional working-day offset applied after the FS/SS constraint.
type Edge struct {
	Pred    string
	Succ    string
	Type    DepType
	LagDays int
}

// Graph is the in-memory dependency graph for one project. Adjacency is
// kept in both directions: successors keyed by predecessor for the
// backward scheduler, predecessors keyed by successor for the forward
// scheduler.
type Graph struct {
	tasks map[string]*Task
	order []string // task IDs in input order, for deterministic iteration
	succ  map[string][]Edge
	pred  map[string][]Edge

	// dropped records edges whose predecessor or successor ID was not
	// present in the task set. These are data-quality conditions, not
	// errors; callers surface them as diagnostics.
	dropped []Edge
}

// Build constructs a Graph from a task list and its precedence edges.
// Edges referencing unknown task IDs are dropped and recorded rather
// than failing the build. Returns ErrDuplicateTask if two tasks share
// an ID. Cycles are not detected here; they surface from
// TopologicalOrder before any dates are assigned.
func Build(tasks []Task, edges []Edge) (*Graph, error) {
	g := &Graph{
		tasks: make(map[string]*Task, len(tasks)),
		succ:  make(map[string][]Edge),
		pred:  make(map[string][]Edge),
	}

	for i := range tasks {
		t := tasks[i]
		if _, exists := g.tasks[t.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, t.ID)
		}
		g.tasks[t.ID] = &t
		g.order = append(g.order, t.ID)
	}

	seen := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		if _, ok := g.tasks[e.Pred]; !ok {
			g.dropped = append(g.dropped, e)
			continue
		}
		if _, ok := g.tasks[e.Succ]; !ok {
			g.dropped = append(g.dropped, e)
			continue
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		g.succ[e.Pred] = append(g.succ[e.Pred], e)
		g.pred[e.Succ] = append(g.pred[e.Succ], e)
	}

	// Sort adjacency for deterministic traversal.
	for id := range g.succ {
		sortEdges(g.succ[id], func(e Edge) string { return e.Succ })
	}
	for id := range g.pred {
		sortEdges(g.pred[id], func(e Edge) string { return e.Pred })
	}

	return g, nil
}

// Task returns the task with the given ID, or nil if not present.
func (g *Graph) Task(id string) *Task {
	return g.tasks[id]
}

// Tasks returns all task IDs sorted alphabetically.
func (g *Graph) Tasks() []string {
	ids := make([]string, 0, len(g.tasks))
	for id := range g.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Predecessors returns the edges constraining the given task, keyed by
// its predecessors. The slice is shared; callers must not mutate it.
func (g *Graph) Predecessors(id string) []Edge {
	return g.pred[id]
}

// Successors returns the edges the given task imposes on its
// successors. The slice is shared; callers must not mutate it.
func (g *Graph) Successors(id string) []Edge {
	return g.succ[id]
}

// Dropped returns the edges discarded during Build because they
// referenced task IDs outside the task set.
func (g *Graph) Dropped() []Edge {
	return g.dropped
}

// CycleError reports a circular dependency. TaskIDs holds the cycle
// members in dependency order when the cycle could be reconstructed, or
// the unorderable remainder of the graph otherwise. At least one
// implicated task ID is always present.
type CycleError struct {
	TaskIDs []string
}

// Error returns a human-readable description naming the cycle members.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency involving: %s", strings.Join(e.TaskIDs, " -> "))
}

// Unwrap returns ErrCycle for use with errors.Is.
func (e *CycleError) Unwrap() error {
	return ErrCycle
}

func sortEdges(edges []Edge, key func(Edge) string) {
	sort.Slice(edges, func(i, j int) bool {
		if a, b := key(edges[i]), key(edges[j]); a != b {
			return a < b
		}
		return edges[i].Type < edges[j].Type
	})
}
