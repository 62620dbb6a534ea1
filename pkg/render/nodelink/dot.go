package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/loops"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node identifier and depth to each label.
	// When false, only the node name is shown.
	Detailed bool
	// Loops lists confirmed loops whose nodes and edges are highlighted.
	Loops []loops.Loop
}

// ToDOT converts a tree and its linkages to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Tree edges are solid and point from parent to child. Linkage edges are
// dashed and point from source to destination. Each depth is pinned to its
// own rank.
func ToDOT(g *hierarchy.Graph, l *linkage.Linkages, opts Options) string {
	hot := make(map[hierarchy.Node]bool)
	hotEdges := make(map[[2]hierarchy.Node]bool)
	for _, lp := range opts.Loops {
		for i, n := range lp {
			hot[n] = true
			if i > 0 {
				hotEdges[[2]hierarchy.Node{lp[i-1], n}] = true
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for d := hierarchy.HomeDepth; d <= hierarchy.LeafDepth; d++ {
		level := g.NodesAt(d)
		if len(level) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  { rank=same;\n")
		for _, n := range level {
			fmt.Fprintf(&buf, "    %q [%s];\n", dotID(g, n), strings.Join(fmtAttrs(g, n, opts.Detailed, hot[n]), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, parent := range g.Nodes() {
		for _, child := range g.Children(parent) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", dotID(g, parent), dotID(g, child))
		}
	}

	if l != nil && l.Len() > 0 {
		buf.WriteString("\n")
		for _, dst := range l.Destinations() {
			for _, e := range l.Sources(dst) {
				attrs := []string{"style=dashed", "color=steelblue"}
				// Loops walk destination to source.
				if hotEdges[[2]hierarchy.Node{dst, e.From}] || hotEdges[[2]hierarchy.Node{e.From, dst}] {
					attrs = []string{"style=dashed", "color=crimson", "penwidth=2"}
				}
				fmt.Fprintf(&buf, "  %q -> %q [%s];\n", dotID(g, e.From), dotID(g, dst), strings.Join(attrs, ", "))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotID(g *hierarchy.Graph, n hierarchy.Node) string {
	if id, ok := g.ID(n); ok {
		return id
	}
	return n.String()
}

func fmtAttrs(g *hierarchy.Graph, n hierarchy.Node, detailed, hot bool) []string {
	label := n.Name
	if detailed {
		label = fmt.Sprintf("%s\n%s · depth %d", n.Name, dotID(g, n), n.Depth)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if hot {
		attrs = append(attrs, "fillcolor=mistyrose", "color=crimson", "penwidth=2")
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

// normalizeViewBox replaces the root tag so the SVG scales from a zero origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
