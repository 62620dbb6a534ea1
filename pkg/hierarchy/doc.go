// Package hierarchy builds the strict four-level knowledge tree that
// linkages are layered on.
//
// # Overview
//
// A knowledge tree is defined by a table whose first four columns name the
// node at depths 1 (home depth, the roots) through 4 (the leaves). Each row
// describes one root-to-leaf chain. [Build] folds the rows into a [Graph]
// holding two views of the same edges:
//
//   - down edges: each node's ordered, duplicate-free children (depth+1)
//   - up edges: each non-root node's single parent (depth-1)
//
// Node identity is the pair (name, depth). The same name may appear at two
// depths and names two different nodes.
//
// # Identifiers
//
// Each node is given a synthetic identifier "{depth}.{sequence}" the first
// time it is seen, with the sequence counting from 1 per depth in row order.
// Identifiers exist for humans and for the serial-form linkage table; the
// graph itself is keyed by [Node].
//
// # Usage
//
//	t, _ := table.ReadFile("rawData.csv")
//	g, err := hierarchy.Build(t)
//	if err != nil {
//	    return err // fewer than four columns
//	}
//	for _, child := range g.Children(hierarchy.Node{Name: "Algebra", Depth: 2}) {
//	    id, _ := g.ID(child)
//	    fmt.Println(id, child)
//	}
//
// # Tree Violations
//
// The input is expected to be a tree. When a node is listed under two
// different parents, the last parent in discovery order is kept and the
// earlier ones are recorded as [Conflict] values for the report.
//
// # Concurrency
//
// A Graph is immutable once Build returns and is safe for concurrent reads.
package hierarchy
