// Package nodelink renders a knowledge tree and its linkages as a node-link
// diagram.
//
// # Overview
//
// The diagram is a debugging aid: it shows the tree with one rank per depth,
// the linkage overlay as dashed edges, and the members of confirmed loops in
// red. It does not take part in validation.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, links, nodelink.Options{Loops: found})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source that can be rendered in process via
// [RenderSVG] or saved and processed with external Graphviz tools. Nodes are
// keyed by their tree identifier ("3.2"), so names that repeat across depths
// stay distinct.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
