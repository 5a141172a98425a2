// Package structure renders the generation tree of a plan (building
// at the root, floors below, element groups as leaves) as a Graphviz
// diagram. Useful for inspecting what a seed produced without
// reading the raw document.
package structure

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/facade/pkg/plan"
)

// ToDOT converts a plan's generation tree to Graphviz DOT format.
// The result renders with [RenderSVG] or [RenderPNG].
func ToDOT(p *plan.Plan) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n\n")

	name := p.Name
	if name == "" {
		name = "building"
	}
	fmt.Fprintf(&buf, "  root [label=\"%s\\nseed %d\", fillcolor=lightyellow];\n", name, p.Seed)

	for _, f := range p.Floors {
		floorID := fmt.Sprintf("floor%d", f.Index)
		fmt.Fprintf(&buf, "  %s [label=\"floor %d\\n%d vertices\"];\n",
			floorID, f.Index, len(f.Vertices))
		fmt.Fprintf(&buf, "  root -> %s;\n", floorID)

		writeGroup(&buf, floorID, "doors", len(f.Doors), f.DroppedDoors)
		writeGroup(&buf, floorID, "windows", len(f.Windows), f.DroppedWindows)
		writeGroup(&buf, floorID, "corners", len(f.Corners), 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeGroup(buf *bytes.Buffer, floorID, kind string, count, dropped int) {
	id := floorID + "_" + kind
	label := fmt.Sprintf("%s: %d", kind, count)
	if dropped > 0 {
		label += fmt.Sprintf("\\n(%d dropped)", dropped)
	}
	fill := "white"
	if dropped > 0 {
		fill = "mistyrose"
	}
	fmt.Fprintf(buf, "  %s [label=%q, fillcolor=%s, fontsize=10];\n", id, label, fill)
	fmt.Fprintf(buf, "  %s -> %s;\n", floorID, id)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
