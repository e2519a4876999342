package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lineagemap/pkg/dag"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the person id and lifespan to labels.
	// When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts an indexed family to Graphviz DOT. Persons are boxes,
// unions are points, and stub persons have dashed grey outlines.
func ToDOT(g *tree.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.DAG().Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(g, n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.DAG().Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *tree.Graph, n dag.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	parts := []string{label, "id: " + n.ID}
	if p, ok := g.Person(n.ID); ok {
		if span := p.Lifespan(); span != "" {
			parts = append(parts, span)
		}
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(g *tree.Graph, n dag.Node, detailed bool) []string {
	if n.IsUnion() {
		return []string{"shape=point", "width=0.08", `label=""`}
	}
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, n, detailed))}
	if n.Stub {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag so the diagram scales like
// the tree SVG: origin at zero, width and height matching the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
