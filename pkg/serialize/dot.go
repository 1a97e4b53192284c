package serialize

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/cakeflow/cake/pkg/dst"
)

// ToDOT renders g's transform/edge/sink structure as a Graphviz DOT digraph,
// purely for human inspection of the DAG shape — it carries no values and
// is never consumed by the core.
func ToDOT(g *dst.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cake {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [fontname=\"monospace\", fontsize=11, style=filled, fillcolor=white];\n\n")

	for _, idx := range g.TransformIds() {
		t, ok := g.Descriptor(idx)
		if !ok {
			continue
		}
		shape := "box"
		if t.IsConstant() {
			shape = "ellipse"
		}
		fmt.Fprintf(&buf, "  t%d [label=%q, shape=%s];\n", idx, fmt.Sprintf("%d: %s", idx, t.Name), shape)
	}
	buf.WriteString("\n")

	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  t%d -> t%d [label=\"%d→%d\"];\n",
			e.Output.Transform, e.Input.Transform, e.Output.Output, e.Input.Input)
	}
	buf.WriteString("\n")

	for _, id := range g.OutputIds() {
		o, ok := g.ResolveOutput(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  sink%d [label=\"out %d\", shape=doublecircle];\n", id, id)
		fmt.Fprintf(&buf, "  t%d -> sink%d [label=\"%d\"];\n", o.Transform, id, o.Output)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders g's DOT representation to an SVG document using
// Graphviz, requiring the graphviz C library to be available at runtime.
func RenderSVG(g *dst.Graph) ([]byte, error) {
	dot := ToDOT(g)

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("serialize: init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("serialize: parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("serialize: render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
