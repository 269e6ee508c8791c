// Package dag provides a directed acyclic graph (DAG) for accumulating
// ordering constraints over opaque string identifiers.
//
// # Overview
//
// Envmerge expresses channel priority as a set of ordering constraints:
// each environment file contributes a chain "this channel before that one".
// This package accumulates those chains as directed edges and linearizes
// them into a single total order, or proves that no such order exists.
//
// The graph stays acyclic by construction. [DAG.AddEdge] checks - before
// mutating anything - whether the new edge would close a cycle, and rejects
// it with a [CycleError] if so. A failed call leaves the graph exactly as
// it was, so callers never observe partial mutations.
//
// # Basic Usage
//
// Create a graph with [New], register nodes with [DAG.AddNode] (idempotent),
// connect them with [DAG.AddEdge], and linearize with [DAG.TopologicalSort]:
//
//	g := dag.New()
//	g.AddNode("conda-forge")
//	g.AddNode("defaults")
//	if err := g.AddEdge("conda-forge", "defaults"); err != nil {
//	    return err
//	}
//	order, err := g.TopologicalSort()
//
// # Determinism
//
// When several orders satisfy the constraints, the sort breaks ties by node
// insertion order using a FIFO queue. Repeated runs over identical input
// therefore produce identical output.
package dag
