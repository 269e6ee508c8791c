package dag

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// has not been registered with [DAG.AddNode]. Edges may only connect
	// existing nodes.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// has not been registered with [DAG.AddNode].
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is the sentinel wrapped by [CycleError]. Use
	// errors.Is(err, ErrGraphHasCycle) to detect cycle failures without
	// caring about the offending edge.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// CycleError reports an edge whose insertion would create a directed cycle,
// or a graph handed to [DAG.TopologicalSort] that already contains one.
// From and To name the offending pair when known.
type CycleError struct {
	From string
	To   string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if e.From == "" && e.To == "" {
		return "graph contains a cycle"
	}
	return fmt.Sprintf("edge %s -> %s would create a cycle", e.From, e.To)
}

// Unwrap returns ErrGraphHasCycle for errors.Is compatibility.
func (e *CycleError) Unwrap() error { return ErrGraphHasCycle }

// edgeKey identifies a directed edge for deduplication.
type edgeKey struct{ from, to string }

// DAG is a directed acyclic graph over opaque string identifiers. It stays
// acyclic by construction: AddEdge refuses any edge that would close a cycle
// and leaves the graph untouched when it fails.
//
// Node and edge insertion order is recorded so that [DAG.TopologicalSort]
// is deterministic: identical insertion sequences produce identical output.
//
// The zero value is not usable - use New. DAG is not safe for concurrent
// use without external synchronization.
type DAG struct {
	order   []string            // node IDs in first-insertion order
	succ    map[string][]string // nodeID -> successors in edge-insertion order
	edgeSet map[edgeKey]struct{}
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		succ:    make(map[string][]string),
		edgeSet: make(map[edgeKey]struct{}),
	}
}

// AddNode registers a node with no outgoing edges. Adding an ID that is
// already present is a no-op: existing edges are preserved and the node
// keeps its original position in the insertion order.
func (d *DAG) AddNode(id string) {
	if _, exists := d.succ[id]; exists {
		return
	}
	d.succ[id] = nil
	d.order = append(d.order, id)
}

// HasNode reports whether the node has been registered.
func (d *DAG) HasNode(id string) bool {
	_, ok := d.succ[id]
	return ok
}

// HasEdge reports whether the directed edge from -> to exists.
func (d *DAG) HasEdge(from, to string) bool {
	_, ok := d.edgeSet[edgeKey{from, to}]
	return ok
}

// AddEdge inserts the directed edge from -> to, meaning "from must appear
// before to in any linearization". Both endpoints must already exist:
// missing nodes fail with ErrUnknownSourceNode or ErrUnknownTargetNode.
// Inserting an edge that is already present succeeds as a no-op.
//
// The cycle check runs before any mutation: if to can already reach from,
// committing the edge would close a cycle, so AddEdge fails with a
// *CycleError naming the pair and the graph is left exactly as it was.
func (d *DAG) AddEdge(from, to string) error {
	if _, ok := d.succ[from]; !ok {
		return fmt.Errorf("edge %s -> %s: %w", from, to, ErrUnknownSourceNode)
	}
	if _, ok := d.succ[to]; !ok {
		return fmt.Errorf("edge %s -> %s: %w", from, to, ErrUnknownTargetNode)
	}
	key := edgeKey{from, to}
	if _, ok := d.edgeSet[key]; ok {
		return nil
	}
	if d.reaches(to, from) {
		return &CycleError{From: from, To: to}
	}
	d.edgeSet[key] = struct{}{}
	d.succ[from] = append(d.succ[from], to)
	return nil
}

// reaches reports whether target is reachable from start by following
// directed edges. A node always reaches itself, which makes self-edges
// register as cycles.
func (d *DAG) reaches(start, target string) bool {
	if start == target {
		return true
	}
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range d.succ[id] {
			if next == target {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// Nodes returns all node IDs in first-insertion order.
// The returned slice is a copy and may be modified freely.
func (d *DAG) Nodes() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Children returns the successors of the node in edge-insertion order.
// The returned slice should not be modified - use it as a read-only view.
// Returns nil if the node has no successors or does not exist.
func (d *DAG) Children(id string) []string { return d.succ[id] }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of distinct edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edgeSet) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node does not exist.
func (d *DAG) InDegree(id string) int {
	n := 0
	for key := range d.edgeSet {
		if key.to == id {
			n++
		}
	}
	return n
}

// TopologicalSort returns a linearization of the graph: every node exactly
// once, with each edge's source strictly before its target.
//
// It runs Kahn's algorithm with a FIFO queue. The queue is seeded with the
// zero-in-degree nodes in first-insertion order, and nodes that become
// ready are enqueued in edge-insertion order, so the chosen order among
// equally valid ones is deterministic.
//
// If fewer nodes come out than went in, the graph contains a cycle and the
// call fails with a *CycleError. That cannot happen for graphs built
// through [DAG.AddEdge], which rejects cycles up front, but the check keeps
// the sort correct for any graph handed to it.
func (d *DAG) TopologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(d.order))
	for _, id := range d.order {
		inDegree[id] = 0
	}
	for _, targets := range d.succ {
		for _, to := range targets {
			inDegree[to]++
		}
	}

	queue := make([]string, 0, len(d.order))
	for _, id := range d.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(d.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)
		for _, next := range d.succ[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(d.order) {
		return nil, &CycleError{}
	}
	return sorted, nil
}
