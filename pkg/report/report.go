package report

import (
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/loops"
)

// Report is the assembled outcome of one validation run.
type Report struct {
	Method         linkage.Method `json:"method"`
	InvalidNodes   []Pair         `json:"invalid_nodes"`
	InvalidWeights []Pair         `json:"invalid_weights"`
	Loops          []Loop         `json:"loops"`
	Reviews        []Review       `json:"reviews,omitempty"`
	Conflicts      []Conflict     `json:"conflicts,omitempty"`
}

// Pair is a rejected linkage record in (from, to, weight) order.
type Pair struct {
	Line   int    `json:"line"`
	Depth  string `json:"depth,omitempty"`
	From   string `json:"from"`
	To     string `json:"to"`
	Weight string `json:"weight"`
}

// Node is a tree node with its identifier.
type Node struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
	ID    string `json:"id"`
}

// Loop is a confirmed loop as its ordered node sequence.
type Loop struct {
	Nodes []Node `json:"nodes"`
}

// Review is a revisit flagged for manual confirmation.
type Review struct {
	Nodes     []Node `json:"nodes"`
	Status    string `json:"status"`
	Alternate string `json:"alternate"`
}

// Conflict is a tree row that gave an existing node another parent.
type Conflict struct {
	Child   Node `json:"child"`
	Kept    Node `json:"kept"`
	Ignored Node `json:"ignored"`
}

// Counts summarises a report.
type Counts struct {
	InvalidNodes   int
	InvalidWeights int
	Loops          int
	Reviews        int
}

// Assemble builds a report from an ingestion result and detector findings.
// Loops are deduplicated here, keeping discovery order. findings and g may
// be nil when detection did not run.
func Assemble(res *linkage.Result, findings *loops.Findings, g *hierarchy.Graph) *Report {
	r := &Report{
		Method:         res.Method,
		InvalidNodes:   pairs(res.InvalidNodes),
		InvalidWeights: pairs(res.InvalidWeights),
		Loops:          []Loop{},
	}
	if findings != nil {
		for _, l := range loops.Dedupe(findings.Loops) {
			r.Loops = append(r.Loops, Loop{Nodes: nodes(g, l)})
		}
		for _, rv := range findings.Reviews {
			r.Reviews = append(r.Reviews, Review{
				Nodes:     nodes(g, rv.Slice),
				Status:    rv.Status.String(),
				Alternate: rv.Alternate.String(),
			})
		}
	}
	if g != nil {
		for _, c := range g.Conflicts() {
			r.Conflicts = append(r.Conflicts, Conflict{
				Child:   node(g, c.Child),
				Kept:    node(g, c.Kept),
				Ignored: node(g, c.Ignored),
			})
		}
	}
	return r
}

// Clean reports whether the run found nothing to fix.
func (r *Report) Clean() bool {
	return len(r.InvalidNodes) == 0 && len(r.InvalidWeights) == 0 && len(r.Loops) == 0
}

// NeedsReview reports whether the review section is present.
func (r *Report) NeedsReview() bool {
	return len(r.Reviews) > 0 || len(r.Conflicts) > 0
}

// Counts returns the section sizes.
func (r *Report) Counts() Counts {
	return Counts{
		InvalidNodes:   len(r.InvalidNodes),
		InvalidWeights: len(r.InvalidWeights),
		Loops:          len(r.Loops),
		Reviews:        len(r.Reviews) + len(r.Conflicts),
	}
}

func pairs(recs []linkage.Record) []Pair {
	out := make([]Pair, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Pair{Line: rec.Line, Depth: rec.Depth, From: rec.From, To: rec.To, Weight: rec.Weight})
	}
	return out
}

func nodes(g *hierarchy.Graph, ns []hierarchy.Node) []Node {
	out := make([]Node, 0, len(ns))
	for _, n := range ns {
		out = append(out, node(g, n))
	}
	return out
}

func node(g *hierarchy.Graph, n hierarchy.Node) Node {
	out := Node{Name: n.Name, Depth: n.Depth}
	if g != nil {
		out.ID, _ = g.ID(n)
	}
	return out
}

// String renders the node as it appears in the text report.
func (n Node) String() string {
	s := hierarchy.Node{Name: n.Name, Depth: n.Depth}.String()
	if n.ID != "" {
		s += " [" + n.ID + "]"
	}
	return s
}
