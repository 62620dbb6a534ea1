package hierarchy

import (
	"strings"
	"testing"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/table"
)

const sampleTree = `Strand,Topic,Subtopic,Content
Number,Algebra,Linear,Slope
Number,Algebra,Linear,Intercept
Number,Algebra,Quadratic,Roots
Number,Ratio,Linear,Scale
Space,Shape,Angles,Slope
`

func mustTable(t *testing.T, csv string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(csv), "tree.csv")
	if err != nil {
		t.Fatalf("table.Read() error: %v", err)
	}
	return tbl
}

func mustBuild(t *testing.T, csv string) *Graph {
	t.Helper()
	g, err := Build(mustTable(t, csv))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestBuildIDs(t *testing.T) {
	g := mustBuild(t, sampleTree)

	tests := []struct {
		node Node
		want string
	}{
		{Node{"Number", 1}, "1.1"},
		{Node{"Space", 1}, "1.2"},
		{Node{"Algebra", 2}, "2.1"},
		{Node{"Ratio", 2}, "2.2"},
		{Node{"Shape", 2}, "2.3"},
		{Node{"Linear", 3}, "3.1"},
		{Node{"Quadratic", 3}, "3.2"},
		{Node{"Angles", 3}, "3.3"},
		{Node{"Slope", 4}, "4.1"},
		{Node{"Intercept", 4}, "4.2"},
		{Node{"Roots", 4}, "4.3"},
		{Node{"Scale", 4}, "4.4"},
	}

	for _, tt := range tests {
		got, ok := g.ID(tt.node)
		if !ok {
			t.Errorf("ID(%v) not found", tt.node)
			continue
		}
		if got != tt.want {
			t.Errorf("ID(%v) = %q, want %q", tt.node, got, tt.want)
		}
		back, ok := g.Lookup(tt.want)
		if !ok || back != tt.node {
			t.Errorf("Lookup(%q) = %v, %v, want %v", tt.want, back, ok, tt.node)
		}
	}

	if g.Len() != len(tests) {
		t.Errorf("Len() = %d, want %d", g.Len(), len(tests))
	}
}

func TestBuildChildrenOrderAndDedup(t *testing.T) {
	g := mustBuild(t, sampleTree)

	children := g.Children(Node{"Algebra", 2})
	want := []Node{{"Linear", 3}, {"Quadratic", 3}}
	if len(children) != len(want) {
		t.Fatalf("Children(Algebra) = %v, want %v", children, want)
	}
	for i := range want {
		if children[i] != want[i] {
			t.Errorf("Children(Algebra)[%d] = %v, want %v", i, children[i], want[i])
		}
	}

	if got := g.Children(Node{"Slope", 4}); len(got) != 0 {
		t.Errorf("leaf has children: %v", got)
	}
	if got := g.Children(Node{"Nope", 2}); got != nil {
		t.Errorf("unknown node has children: %v", got)
	}
}

func TestBuildSameNameDifferentDepth(t *testing.T) {
	g := mustBuild(t, "a,b,c,d\nX,X,X,X\n")

	for d := 1; d <= Levels; d++ {
		if !g.Has(Node{"X", d}) {
			t.Errorf("Has(X@%d) = false", d)
		}
	}
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
	if p, ok := g.Parent(Node{"X", 3}); !ok || p != (Node{"X", 2}) {
		t.Errorf("Parent(X@3) = %v, %v", p, ok)
	}
}

func TestParents(t *testing.T) {
	g := mustBuild(t, sampleTree)

	for _, n := range g.Nodes() {
		p, ok := g.Parent(n)
		if n.IsRoot() {
			if ok {
				t.Errorf("root %v has parent %v", n, p)
			}
			continue
		}
		if !ok {
			t.Errorf("Parent(%v) missing", n)
			continue
		}
		if p.Depth != n.Depth-1 {
			t.Errorf("Parent(%v) depth = %d, want %d", n, p.Depth, n.Depth-1)
		}
	}
}

func TestConflicts(t *testing.T) {
	// Linear@3 is listed under Algebra and Ratio; Slope@4 under Linear and Angles.
	g := mustBuild(t, sampleTree)

	conflicts := g.Conflicts()
	want := []Conflict{
		{Child: Node{"Linear", 3}, Kept: Node{"Ratio", 2}, Ignored: Node{"Algebra", 2}},
		{Child: Node{"Slope", 4}, Kept: Node{"Angles", 3}, Ignored: Node{"Linear", 3}},
	}
	if len(conflicts) != len(want) {
		t.Fatalf("Conflicts() = %+v, want %+v", conflicts, want)
	}
	for i := range want {
		if conflicts[i] != want[i] {
			t.Errorf("Conflicts()[%d] = %+v, want %+v", i, conflicts[i], want[i])
		}
	}
	if p, _ := g.Parent(Node{"Linear", 3}); p != (Node{"Ratio", 2}) {
		t.Errorf("Parent(Linear) = %v, want Ratio", p)
	}
}

func TestConflictLastParentWins(t *testing.T) {
	g := mustBuild(t, "a,b,c,d\nR,P1,X,L1\nR,P2,X,L2\nR,P3,X,L3\n")

	if p, _ := g.Parent(Node{"X", 3}); p != (Node{"P3", 2}) {
		t.Errorf("Parent(X@3) = %v, want P3 (depth 2)", p)
	}
	want := []Conflict{
		{Child: Node{"X", 3}, Kept: Node{"P3", 2}, Ignored: Node{"P1", 2}},
		{Child: Node{"X", 3}, Kept: Node{"P3", 2}, Ignored: Node{"P2", 2}},
	}
	got := g.Conflicts()
	if len(got) != len(want) {
		t.Fatalf("Conflicts() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Conflicts()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	// The children of X are merged regardless of which parent wins.
	if n := len(g.Children(Node{"X", 3})); n != 3 {
		t.Errorf("len(Children(X@3)) = %d, want 3", n)
	}
}

func TestEdgeCount(t *testing.T) {
	g := mustBuild(t, "a,b,c,d\nR,A,B,C\nR,A,B,D\n")
	if got := g.EdgeCount(); got != 4 {
		t.Errorf("EdgeCount() = %d, want 4", got)
	}
	if got := len(g.NodesAt(4)); got != 2 {
		t.Errorf("len(NodesAt(4)) = %d, want 2", got)
	}
}

func TestBuildMalformed(t *testing.T) {
	_, err := Build(mustTable(t, "a,b,c\n1,2,3\n"))
	if !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("Build() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInput)
	}

	_, err = Build(nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Build(nil) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestBuildExtraColumnsIgnored(t *testing.T) {
	g := mustBuild(t, "a,b,c,d,year\nR,A,B,C,7\n")
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
	if g.Has(Node{"7", 5}) {
		t.Error("fifth column should not produce nodes")
	}
}

func TestNodeString(t *testing.T) {
	if got := (Node{"Slope", 4}).String(); got != "Slope (depth 4)" {
		t.Errorf("String() = %q", got)
	}
}
