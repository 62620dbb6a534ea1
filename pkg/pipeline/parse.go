package pipeline

import (
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/table"
)

// Inputs holds both parsed tables of a run.
type Inputs struct {
	Tree    *table.Table
	Linkage *table.Table
}

// ReadInputs parses the tree and linkage tables named by opts.
func ReadInputs(opts Options) (*Inputs, error) {
	tree, err := table.ReadFile(opts.TreePath)
	if err != nil {
		return nil, err
	}
	links, err := table.ReadFile(opts.LinkagePath)
	if err != nil {
		return nil, err
	}
	return &Inputs{Tree: tree, Linkage: links}, nil
}

// Load parses both tables, builds the hierarchy, and ingests the linkages
// without detection or caching, for library callers that drive detection
// themselves.
func Load(opts Options) (*hierarchy.Graph, *linkage.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	in, err := ReadInputs(opts)
	if err != nil {
		return nil, nil, err
	}
	g, err := hierarchy.Build(in.Tree)
	if err != nil {
		return nil, nil, err
	}
	res, err := linkage.Ingest(opts.Method, in.Linkage, g)
	if err != nil {
		return nil, nil, err
	}
	return g, res, nil
}
