package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/loops"
	"github.com/matzehuels/treelink/pkg/table"
)

const tree = `strand,topic,subtopic,content
Number,Algebra,Linear,Slope
Number,Algebra,Linear,Intercept
`

func fixture(t *testing.T, links string) (*hierarchy.Graph, *linkage.Result) {
	t.Helper()
	tt, err := table.Read(strings.NewReader(tree), "tree.csv")
	if err != nil {
		t.Fatalf("table.Read() error: %v", err)
	}
	g, err := hierarchy.Build(tt)
	if err != nil {
		t.Fatalf("hierarchy.Build() error: %v", err)
	}
	lt, err := table.Read(strings.NewReader(links), "links.csv")
	if err != nil {
		t.Fatalf("table.Read() error: %v", err)
	}
	res, err := linkage.IngestSerial(lt, g)
	if err != nil {
		t.Fatalf("linkage.IngestSerial() error: %v", err)
	}
	return g, res
}

func n(name string) hierarchy.Node { return hierarchy.Node{Name: name, Depth: 4} }

var rule100 = strings.Repeat("-", 100)

func TestWriteTextFindings(t *testing.T) {
	g, res := fixture(t, "from_id,to_id,weight\n4.1,4.2,0.5\n4.2,9.9,0.5\n4.1,4.2,1.5\n")
	f := &loops.Findings{Loops: []loops.Loop{
		{n("Slope"), n("Intercept"), n("Slope")},
		{n("Intercept"), n("Slope"), n("Intercept")},
	}}
	r := Assemble(res, f, g)

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}

	want := strings.Join([]string{
		"Method: conversion for serial to string.",
		rule100,
		"1 pairs of nodes were not found in the tree.",
		"from_node   to_node     weight",
		"4.2         9.9         0.5",
		rule100,
		"1 weightings were unreasonable.",
		"from_node   to_node     weight",
		"4.1         4.2         1.5",
		rule100,
		"1 loops were found.",
		"Loop 1:",
		"       Slope (depth 4) [4.1]",
		"       Intercept (depth 4) [4.2]",
		"       Slope (depth 4) [4.1]",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteText() =\n%s\nwant\n%s", got, want)
	}
	if r.Clean() {
		t.Error("Clean() = true, want false")
	}
}

func TestWriteTextClean(t *testing.T) {
	g, res := fixture(t, "from_id,to_id,weight\n4.1,4.2,0.5\n")
	r := Assemble(res, &loops.Findings{}, g)

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}

	want := strings.Join([]string{
		"Method: conversion for serial to string.",
		rule100,
		"All nodes seem to be valid.",
		rule100,
		"All weightings seem to be valid.",
		rule100,
		"There does not seem to be loops.",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteText() =\n%s\nwant\n%s", got, want)
	}
	if !r.Clean() {
		t.Error("Clean() = false, want true")
	}
	if r.NeedsReview() {
		t.Error("NeedsReview() = true, want false")
	}
}

func TestWriteTextReview(t *testing.T) {
	g, res := fixture(t, "from_id,to_id,weight\n")
	f := &loops.Findings{Reviews: []loops.Review{{
		Slice:     []hierarchy.Node{n("Slope"), n("Intercept")},
		Status:    loops.Terminate,
		Alternate: loops.HasLoop,
	}}}
	r := Assemble(res, f, g)

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"1 revisits need manual review.",
		"Review 1: classified terminate, alternate reading gives loop",
		"       Slope (depth 4) [4.1]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WriteText() missing %q in:\n%s", want, got)
		}
	}
	// Reviews do not make a run dirty.
	if !r.Clean() {
		t.Error("Clean() = false, want true")
	}
}

func TestAssembleConflicts(t *testing.T) {
	tt, err := table.Read(strings.NewReader("a,b,c,d\nN,Algebra,Linear,Slope\nN,Ratio,Linear,Speed\n"), "tree.csv")
	if err != nil {
		t.Fatalf("table.Read() error: %v", err)
	}
	g, err := hierarchy.Build(tt)
	if err != nil {
		t.Fatalf("hierarchy.Build() error: %v", err)
	}
	res := &linkage.Result{Method: linkage.MethodResolved}
	r := Assemble(res, nil, g)

	if len(r.Conflicts) != 1 {
		t.Fatalf("Conflicts = %v, want 1", r.Conflicts)
	}
	c := r.Conflicts[0]
	if c.Child.Name != "Linear" || c.Kept.Name != "Ratio" || c.Ignored.Name != "Algebra" {
		t.Errorf("Conflict = %+v, want Linear kept under Ratio", c)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	want := "       Linear (depth 3) [3.1] kept under Ratio (depth 2) [2.2], ignored Algebra (depth 2) [2.1]"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("WriteText() missing %q in:\n%s", want, buf.String())
	}
	if !strings.HasPrefix(buf.String(), "Method: check validity of node names.\n") {
		t.Errorf("WriteText() banner = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
}

func TestCounts(t *testing.T) {
	g, res := fixture(t, "from_id,to_id,weight\n4.2,9.9,0.5\n4.1,4.2,0\n4.1,4.2,2\n")
	r := Assemble(res, nil, g)
	got := r.Counts()
	want := Counts{InvalidNodes: 1, InvalidWeights: 2}
	if got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g, res := fixture(t, "from_id,to_id,weight\n4.2,9.9,0.5\n")
	f := &loops.Findings{Loops: []loops.Loop{{n("Slope"), n("Intercept"), n("Slope")}}}
	r := Assemble(res, f, g)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Method != r.Method {
		t.Errorf("Method = %q, want %q", got.Method, r.Method)
	}
	if got.Counts() != r.Counts() {
		t.Errorf("Counts() = %+v, want %+v", got.Counts(), r.Counts())
	}
	if got.Loops[0].Nodes[1].ID != "4.2" {
		t.Errorf("Loops[0].Nodes[1].ID = %q, want 4.2", got.Loops[0].Nodes[1].ID)
	}

	var a, b bytes.Buffer
	if err := WriteText(&a, r); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(&b, got); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("text differs after JSON round trip:\n%s\nvs\n%s", a.String(), b.String())
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON() error = nil, want error")
	}
}
