// Package pipeline provides the validation pipeline for treelink.
//
// This package implements the complete load → detect → report pipeline used
// by every CLI command. By centralizing this logic, the validate and graph
// commands share caching, logging, and stage accounting.
//
// # Architecture
//
// The pipeline runs six stages in order, checking for cancellation between
// them:
//
//  1. read: Parse the tree and linkage tables
//  2. build: Fold the tree table into a hierarchy graph
//  3. ingest: Validate linkages against the hierarchy
//  4. detect: Search the hierarchy plus linkages for loops
//  5. assemble: Deduplicate loops and build the report
//  6. render: Produce the requested artifacts
//
// The report and every artifact are cached by a key derived from the
// content of both tables and the run options, so rerunning on unchanged
// inputs skips stages 2 to 6.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    TreePath:    "tree.csv",
//	    LinkagePath: "links.csv",
//	    Method:      linkage.MethodSerial,
//	    Formats:     []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = pipeline.WriteArtifacts("out", result.Artifacts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/report"
)

// Stage names, in execution order.
const (
	StageRead     = "read"
	StageBuild    = "build"
	StageIngest   = "ingest"
	StageDetect   = "detect"
	StageAssemble = "assemble"
	StageRender   = "render"
)

// Format constants for optional output formats. The text report is always
// produced.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported optional formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Artifact file names.
const (
	FileReport = "node_validation_report.txt"
	FileTable  = "converted_to_str.csv"
	FileJSON   = "node_validation_report.json"
	FileDOT    = "linkage_graph.dot"
	FileSVG    = "linkage_graph.svg"
)

// formatFiles maps optional formats to their artifact file name.
var formatFiles = map[string]string{
	FormatJSON: FileJSON,
	FormatDOT:  FileDOT,
	FormatSVG:  FileSVG,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one validation run.
type Options struct {
	// Input options
	TreePath    string         `json:"tree"`
	LinkagePath string         `json:"linkage"`
	Method      linkage.Method `json:"method"`

	// Detection options
	MaxSteps int `json:"max_steps,omitempty"` // zero means unbounded

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // include ids in graph labels

	// Refresh ignores cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID tags every log line of the run.
	RunID string

	// Report is the assembled validation report.
	Report *report.Report

	// Graph and Linkages are nil when the run was served from cache.
	Graph    *hierarchy.Graph
	Linkages *linkage.Linkages

	// Artifacts contains rendered outputs keyed by file name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which outputs came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes     int `json:"nodes"`
	TreeEdges int `json:"tree_edges"`
	Linkages  int `json:"linkages"`
	Seeds     int `json:"seeds"`
	Steps     int `json:"steps"`

	Stages []StageTime   `json:"-"`
	Total  time.Duration `json:"-"`
}

// StageTime is the wall time of one stage.
type StageTime struct {
	Stage    string
	Duration time.Duration
}

// CacheInfo tracks cache hits for a run.
type CacheInfo struct {
	Key       string // report cache key
	ReportHit bool   // whether the report came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateCSVPath(o.TreePath); err != nil {
		return errors.New(errors.ErrCodeInvalidPath, "tree table: %s", errors.UserMessage(err))
	}
	if err := errors.ValidateCSVPath(o.LinkagePath); err != nil {
		return errors.New(errors.ErrCodeInvalidPath, "linkage table: %s", errors.UserMessage(err))
	}
	m, err := linkage.ParseMethod(string(o.Method))
	if err != nil {
		return err
	}
	o.Method = m
	if o.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_steps must not be negative, got %d", o.MaxSteps)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	slices.Sort(o.Formats)
	o.Formats = slices.Compact(o.Formats)

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Wants reports whether an optional format was requested.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}

// NeedsGraph reports whether any requested format renders the graph.
func (o *Options) NeedsGraph() bool {
	return o.Wants(FormatDOT) || o.Wants(FormatSVG)
}

// ArtifactNames lists the artifact file names a run with these options
// produces, in a stable order.
func (o *Options) ArtifactNames() []string {
	names := []string{FileReport}
	if o.Method == linkage.MethodSerial {
		names = append(names, FileTable)
	}
	for _, f := range o.Formats {
		names = append(names, formatFiles[f])
	}
	return names
}
