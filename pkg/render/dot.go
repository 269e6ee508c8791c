// Package render converts channel priority graphs to Graphviz DOT and SVG.
//
// The DOT output is plain text suitable for piping into any Graphviz
// toolchain; [SVG] renders it in-process via goccy/go-graphviz. Nodes are
// emitted in insertion order and edges in a stable order, so identical
// graphs produce identical documents.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/condakit/envmerge/pkg/dag"
)

// ToDOT converts a channel priority DAG to Graphviz DOT format.
// Each edge reads "this channel takes priority over that one".
func ToDOT(g *dag.DAG) string {
	var buf bytes.Buffer
	buf.WriteString("digraph channels {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	buf.WriteString("\n")
	for _, from := range g.Nodes() {
		for _, to := range g.Children(from) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT document to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
