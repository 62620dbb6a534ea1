// Package pkg provides the core libraries for treelink linkage validation.
//
// # Overview
//
// Treelink checks a table of weighted links between the nodes of a fixed-depth
// tree. Every node has exactly one parent, but links may connect any two
// nodes, so tree edges and links together can form loops. The pkg directory
// is organized bottom-up:
//
//  1. [table] - CSV reading with row numbers and content digests
//  2. [hierarchy] - The tree as a node graph with synthetic ids
//  3. [linkage] - Link ingestion for serial and resolved tables
//  4. [loops] - Loop classification, detection, and deduplication
//  5. [report] - Report assembly and text/JSON output
//  6. [render/nodelink] - DOT and SVG node-link diagrams
//  7. [pipeline] - Orchestration (read → detect → render) with caching
//
// # Architecture
//
// The typical data flow through treelink:
//
//	tree.csv              linkage.csv
//	    ↓                      ↓
//	[hierarchy].Build    [linkage].Ingest (bad nodes, bad weights)
//	          ↘              ↙
//	          [loops].Detect
//	                ↓
//	        [report].Assemble
//	                ↓
//	 report text, converted table, JSON, DOT, SVG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/treelink/pkg/hierarchy"
//	    "github.com/matzehuels/treelink/pkg/linkage"
//	    "github.com/matzehuels/treelink/pkg/loops"
//	    "github.com/matzehuels/treelink/pkg/report"
//	    "github.com/matzehuels/treelink/pkg/table"
//	)
//
//	tree, _ := table.ReadFile("tree.csv")
//	links, _ := table.ReadFile("links.csv")
//
//	g, _ := hierarchy.Build(tree)
//	res, _ := linkage.Ingest(linkage.MethodSerial, links, g)
//	found, _ := loops.Detect(ctx, g, res.Linkages)
//
//	rep := report.Assemble(res, found, g)
//	report.WriteText(os.Stdout, rep)
//
// # Supporting Packages
//
// [errors] defines the structured error codes used across packages.
// [cache] stores reports and graphs keyed by input digests.
// [observability] exposes hooks for metrics without a backend dependency.
// [buildinfo] carries version information set at link time.
//
// [table]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/table
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/hierarchy
// [linkage]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/linkage
// [loops]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/loops
// [report]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/report
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treelink/pkg/buildinfo
package pkg
