package linkage

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/table"
)

// TableHeader is the header of the persisted resolved-form table.
var TableHeader = []string{"node_depth", "from_node", "to_node", "weight"}

// ValidWeight reports whether w lies in (0, 1].
func ValidWeight(w float64) bool {
	return w > 0 && w <= 1
}

// Record is a raw linkage row, kept verbatim for reporting.
type Record struct {
	Line   int
	Depth  string // resolved form only
	From   string
	To     string
	Weight string
}

// Edge is one auxiliary edge into a destination node.
type Edge struct {
	From  hierarchy.Node
	Depth int // depth of the destination
}

// Linkages maps destination nodes to their incoming edges, in input order.
type Linkages struct {
	order   []hierarchy.Node
	sources map[hierarchy.Node][]Edge
	edges   int
}

func newLinkages() *Linkages {
	return &Linkages{sources: make(map[hierarchy.Node][]Edge)}
}

func (l *Linkages) add(to hierarchy.Node, e Edge) {
	if _, ok := l.sources[to]; !ok {
		l.order = append(l.order, to)
	}
	l.sources[to] = append(l.sources[to], e)
	l.edges++
}

// Sources returns the edges pointing at dst. The returned slice must not be
// modified.
func (l *Linkages) Sources(dst hierarchy.Node) []Edge {
	return l.sources[dst]
}

// IsDestination reports whether any linkage points at n.
func (l *Linkages) IsDestination(n hierarchy.Node) bool {
	_, ok := l.sources[n]
	return ok
}

// Destinations returns the destination nodes in first-seen order.
func (l *Linkages) Destinations() []hierarchy.Node {
	return slices.Clone(l.order)
}

// Nodes returns every node touched by a linkage: destinations first, then
// sources that are not destinations, each in first-seen order.
func (l *Linkages) Nodes() []hierarchy.Node {
	seen := make(map[hierarchy.Node]bool, len(l.order))
	out := make([]hierarchy.Node, 0, len(l.order))
	for _, n := range l.order {
		seen[n] = true
		out = append(out, n)
	}
	for _, dst := range l.order {
		for _, e := range l.sources[dst] {
			if !seen[e.From] {
				seen[e.From] = true
				out = append(out, e.From)
			}
		}
	}
	return out
}

// Len returns the number of edges.
func (l *Linkages) Len() int { return l.edges }

// Resolved is a serial-form record after identifier resolution.
type Resolved struct {
	From   hierarchy.Node
	To     hierarchy.Node
	Weight string
}

// Result is the outcome of one ingestion pass.
type Result struct {
	Method         Method
	Linkages       *Linkages
	InvalidNodes   []Record
	InvalidWeights []Record
	Resolved       []Resolved // serial form only
}

// Ingest runs the variant selected by m.
func Ingest(m Method, t *table.Table, g *hierarchy.Graph) (*Result, error) {
	switch m {
	case MethodSerial:
		return IngestSerial(t, g)
	case MethodResolved:
		return IngestResolved(t, g)
	}
	return nil, errors.New(errors.ErrCodeInvalidMethod, "unknown linkage method %q", m)
}

// IngestSerial ingests a (from_id, to_id, weight) table.
func IngestSerial(t *table.Table, g *hierarchy.Graph) (*Result, error) {
	if err := checkShape(t, g, MethodSerial); err != nil {
		return nil, err
	}
	res := &Result{Method: MethodSerial, Linkages: newLinkages()}

	for _, row := range t.Rows {
		rec := Record{Line: row.Line, From: row.At(0), To: row.At(1), Weight: row.At(2)}
		w, err := parseWeight(t.Name, rec)
		if err != nil {
			return nil, err
		}
		if !ValidWeight(w) {
			res.InvalidWeights = append(res.InvalidWeights, rec)
			continue
		}

		from, okFrom := g.Lookup(rec.From)
		to, okTo := g.Lookup(rec.To)
		if !okFrom || !okTo {
			res.InvalidNodes = append(res.InvalidNodes, rec)
			continue
		}

		res.Linkages.add(to, Edge{From: from, Depth: to.Depth})
		res.Resolved = append(res.Resolved, Resolved{From: from, To: to, Weight: rec.Weight})
	}
	return res, nil
}

// IngestResolved ingests a (node_depth, from_node, to_node, weight) table.
// Weight and node checks are independent, so one record may be listed as
// both an invalid weight and an invalid node.
func IngestResolved(t *table.Table, g *hierarchy.Graph) (*Result, error) {
	if err := checkShape(t, g, MethodResolved); err != nil {
		return nil, err
	}
	res := &Result{Method: MethodResolved, Linkages: newLinkages()}

	for _, row := range t.Rows {
		rec := Record{Line: row.Line, Depth: row.At(0), From: row.At(1), To: row.At(2), Weight: row.At(3)}
		depth, err := strconv.Atoi(strings.TrimSpace(rec.Depth))
		if err != nil {
			return nil, errors.Malformed(t.Name, rec.Line, "depth %q is not an integer", rec.Depth)
		}
		w, err := parseWeight(t.Name, rec)
		if err != nil {
			return nil, err
		}

		valid := true
		if !ValidWeight(w) {
			res.InvalidWeights = append(res.InvalidWeights, rec)
			valid = false
		}
		from := hierarchy.Node{Name: rec.From, Depth: depth}
		to := hierarchy.Node{Name: rec.To, Depth: depth}
		if !g.Has(from) || !g.Has(to) {
			res.InvalidNodes = append(res.InvalidNodes, rec)
			valid = false
		}
		if !valid {
			continue
		}

		res.Linkages.add(to, Edge{From: from, Depth: depth})
	}
	return res, nil
}

// TableRows returns the persisted table rows: one per resolved linkage,
// grouped by destination in Linkages order.
func (r *Result) TableRows() [][]string {
	byDst := make(map[hierarchy.Node][]Resolved)
	for _, rv := range r.Resolved {
		byDst[rv.To] = append(byDst[rv.To], rv)
	}
	rows := make([][]string, 0, len(r.Resolved))
	for _, dst := range r.Linkages.Destinations() {
		for _, rv := range byDst[dst] {
			rows = append(rows, []string{strconv.Itoa(dst.Depth), rv.From.Name, dst.Name, rv.Weight})
		}
	}
	return rows
}

// WriteTable writes the persisted resolved-form table, header included.
func (r *Result) WriteTable(w io.Writer) error {
	return table.Write(w, TableHeader, r.TableRows())
}

func checkShape(t *table.Table, g *hierarchy.Graph, m Method) error {
	if t == nil || g == nil {
		return errors.New(errors.ErrCodeInvalidInput, "linkage table and tree are required")
	}
	if len(t.Fields) != m.Columns() {
		return errors.New(errors.ErrCodeMalformedInput,
			"%s: %s linkage table needs %d columns, found %d", t.Name, m, m.Columns(), len(t.Fields))
	}
	return nil
}

func parseWeight(source string, rec Record) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(rec.Weight), 64)
	if err != nil {
		return 0, errors.Malformed(source, rec.Line, "weight %q is not a number", rec.Weight)
	}
	return w, nil
}
