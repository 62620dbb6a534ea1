package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/loops"
	"github.com/matzehuels/treelink/pkg/render/nodelink"
	"github.com/matzehuels/treelink/pkg/report"
)

// RenderReport produces the report artifacts: the text report always and
// the JSON report when requested.
func RenderReport(rep *report.Report, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var text bytes.Buffer
	if err := report.WriteText(&text, rep); err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}
	artifacts[FileReport] = text.Bytes()

	if opts.Wants(FormatJSON) {
		var js bytes.Buffer
		if err := report.WriteJSON(&js, rep); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		artifacts[FileJSON] = js.Bytes()
	}
	return artifacts, nil
}

// RenderTable produces the persisted linkage table for serial-form runs.
// It returns nil for other methods.
func RenderTable(res *linkage.Result) ([]byte, error) {
	if res.Method != linkage.MethodSerial {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := res.WriteTable(&buf); err != nil {
		return nil, fmt.Errorf("render table: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderGraph produces the requested graph artifacts, keyed by file name.
func RenderGraph(ctx context.Context, g *hierarchy.Graph, l *linkage.Linkages, found []loops.Loop, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	if !opts.NeedsGraph() {
		return artifacts, nil
	}

	dot := nodelink.ToDOT(g, l, nodelink.Options{Detailed: opts.Detailed, Loops: found})
	if opts.Wants(FormatDOT) {
		artifacts[FileDOT] = []byte(dot)
	}
	if opts.Wants(FormatSVG) {
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		artifacts[FileSVG] = svg
	}
	return artifacts, nil
}

// WriteArtifacts writes each artifact into dir, creating it if needed, and
// returns the written paths in name order.
func WriteArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output dir %s", dir)
	}

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, artifacts[name], 0644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
