package hierarchy

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/table"
)

const (
	// Levels is the fixed number of depths in a knowledge tree.
	Levels = 4

	// HomeDepth is the root level. Traversals stop here.
	HomeDepth = 1

	// LeafDepth is the deepest level.
	LeafDepth = Levels
)

// Node is a position in the tree, identified by name and depth together.
type Node struct {
	Name  string
	Depth int
}

// String renders the node as "name (depth d)".
func (n Node) String() string {
	return fmt.Sprintf("%s (depth %d)", n.Name, n.Depth)
}

// IsRoot reports whether the node sits at home depth.
func (n Node) IsRoot() bool { return n.Depth == HomeDepth }

// Conflict records a node listed under more than one parent. Kept is the
// parent retained in the up edges, which is the last one listed.
type Conflict struct {
	Child   Node
	Kept    Node
	Ignored Node
}

// down is a node's entry in the down-edge view.
type down struct {
	id       string
	children []Node
}

// up is a non-root node's entry in the up-edge view.
type up struct {
	id     string
	parent Node
}

// Graph holds the down and up edges of a knowledge tree.
//
// The zero value is not usable; use [Build].
type Graph struct {
	down      map[Node]*down
	up        map[Node]*up
	byID      map[string]Node
	order     []Node
	edges     int
	conflicts []Conflict
}

// Build folds tree-definition rows into a Graph. The first [Levels] header
// fields map to depths 1..4 in column order; further columns are ignored.
// A table with fewer than four columns is a MALFORMED_INPUT error.
func Build(t *table.Table) (*Graph, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tree table is nil")
	}
	if len(t.Fields) < Levels {
		return nil, errors.New(errors.ErrCodeMalformedInput,
			"%s: tree table needs %d depth columns, found %d", t.Name, Levels, len(t.Fields))
	}

	g := &Graph{
		down: make(map[Node]*down),
		up:   make(map[Node]*up),
		byID: make(map[string]Node),
	}
	var seq [Levels]int

	for _, row := range t.Rows {
		if row.Len() < Levels {
			return nil, errors.Malformed(t.Name, row.Line, "expected %d depth values, found %d", Levels, row.Len())
		}
		for i := 0; i < Levels; i++ {
			from := Node{Name: row.At(i), Depth: i + 1}
			entry, ok := g.down[from]
			if !ok {
				seq[i]++
				entry = &down{id: strconv.Itoa(i+1) + "." + strconv.Itoa(seq[i])}
				g.down[from] = entry
				g.byID[entry.id] = from
				g.order = append(g.order, from)
			}
			if i == Levels-1 {
				continue
			}
			to := Node{Name: row.At(i + 1), Depth: i + 2}
			if !slices.Contains(entry.children, to) {
				entry.children = append(entry.children, to)
				g.edges++
			}
		}
	}

	g.invert()
	return g, nil
}

// invert derives the up edges from the down edges in discovery order. A
// child listed under several parents ends up under the last one; every
// earlier parent is recorded as a conflict against it.
func (g *Graph) invert() {
	var contested []Node
	displaced := make(map[Node][]Node)
	for _, parent := range g.order {
		for _, child := range g.down[parent].children {
			existing, ok := g.up[child]
			if !ok {
				g.up[child] = &up{id: g.down[child].id, parent: parent}
				continue
			}
			if _, seen := displaced[child]; !seen {
				contested = append(contested, child)
			}
			displaced[child] = append(displaced[child], existing.parent)
			existing.parent = parent
		}
	}
	for _, child := range contested {
		kept := g.up[child].parent
		for _, p := range displaced[child] {
			g.conflicts = append(g.conflicts, Conflict{Child: child, Kept: kept, Ignored: p})
		}
	}
}

// Has reports whether n is a node of the tree.
func (g *Graph) Has(n Node) bool {
	_, ok := g.down[n]
	return ok
}

// ID returns the synthetic identifier of n.
func (g *Graph) ID(n Node) (string, bool) {
	if e, ok := g.down[n]; ok {
		return e.id, true
	}
	return "", false
}

// Lookup resolves a synthetic identifier to its node.
func (g *Graph) Lookup(id string) (Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Children returns the structural children of n in first-seen order.
// The returned slice must not be modified.
func (g *Graph) Children(n Node) []Node {
	if e, ok := g.down[n]; ok {
		return e.children
	}
	return nil
}

// Parent returns the structural parent of n. Roots and unknown nodes have none.
func (g *Graph) Parent(n Node) (Node, bool) {
	if e, ok := g.up[n]; ok {
		return e.parent, true
	}
	return Node{}, false
}

// Nodes returns every node in discovery order.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.order...)
}

// NodesAt returns the nodes at depth d in discovery order.
func (g *Graph) NodesAt(d int) []Node {
	var out []Node
	for _, n := range g.order {
		if n.Depth == d {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// EdgeCount returns the number of distinct parent-child edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Conflicts returns the tree violations found while inverting.
func (g *Graph) Conflicts() []Conflict {
	return append([]Conflict(nil), g.conflicts...)
}
