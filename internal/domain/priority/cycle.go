package priority

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/taskrank-api/internal/domain"
)

// ErrCircularDependency is the kind wrapped by every CycleError.
var ErrCircularDependency = errors.New("circular dependencies detected")

// CycleError rejects a batch whose dependency graph contains cycles. Each
// cycle ends by repeating its first node, e.g. [A B C A].
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Cycles) == 0 {
		return ErrCircularDependency.Error()
	}
	rendered := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		rendered[i] = strings.Join(c, " -> ")
	}
	return fmt.Sprintf("%s: %s", ErrCircularDependency, strings.Join(rendered, "; "))
}

func (e *CycleError) Unwrap() error { return ErrCircularDependency }

// node traversal states
const (
	unvisited uint8 = iota
	onStack
	settled
)

// dependencyGraph maps each task id to the ids it depends on. order keeps the
// first-seen position of every task so traversal follows batch order.
type dependencyGraph struct {
	order []string
	edges map[string][]string
}

func buildGraph(tasks []domain.Task) dependencyGraph {
	g := dependencyGraph{
		order: make([]string, 0, len(tasks)),
		edges: make(map[string][]string, len(tasks)),
	}
	for i, t := range tasks {
		id := t.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		if _, exists := g.edges[id]; !exists {
			g.order = append(g.order, id)
		}
		g.edges[id] = append([]string{}, t.Dependencies...)
	}
	return g
}

// frame is one level of the explicit DFS stack.
type frame struct {
	node string
	next int
}

// DetectCycles reports dependency cycles in tasks.
//
// A task without an ID is keyed by its position in the slice. Traversal
// starts from every unvisited task in batch order and stops at the first
// cycle found from that root, so overlapping cycles reachable from one root
// yield a single report. The result is empty when the graph is acyclic.
//
// All traversal state is local to the call.
func DetectCycles(tasks []domain.Task) [][]string {
	g := buildGraph(tasks)
	state := make(map[string]uint8, len(g.edges))

	var cycles [][]string
	for _, root := range g.order {
		if state[root] != unvisited {
			continue
		}
		if cycle := g.firstCycleFrom(root, state); cycle != nil {
			cycles = append(cycles, cycle)
		}
	}
	return cycles
}

// firstCycleFrom runs an iterative depth-first search from root. When a cycle
// is found the remaining path is settled before returning, so later roots
// treat those nodes as visited rather than as part of their own stack.
func (g dependencyGraph) firstCycleFrom(root string, state map[string]uint8) []string {
	var path []string
	position := make(map[string]int)

	push := func(n string) {
		state[n] = onStack
		position[n] = len(path)
		path = append(path, n)
	}

	push(root)
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := g.edges[top.node]

		if top.next < len(neighbors) {
			nb := neighbors[top.next]
			top.next++

			switch state[nb] {
			case unvisited:
				push(nb)
				stack = append(stack, frame{node: nb})
			case onStack:
				start := position[nb]
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				for _, n := range path {
					state[n] = settled
				}
				return append(cycle, nb)
			}
			continue
		}

		state[top.node] = settled
		delete(position, top.node)
		path = path[:len(path)-1]
		stack = stack[:len(stack)-1]
	}
	return nil
}

// ValidateAcyclic returns a *CycleError if tasks contain any dependency
// cycle.
func ValidateAcyclic(tasks []domain.Task) error {
	if cycles := DetectCycles(tasks); len(cycles) > 0 {
		return &CycleError{Cycles: cycles}
	}
	return nil
}
