package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/treelink/pkg/cache"
	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/loops"
	"github.com/matzehuels/treelink/pkg/observability"
	"github.com/matzehuels/treelink/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRun is the cache payload for a report.
type cachedRun struct {
	Report *report.Report `json:"report"`
	Table  []byte         `json:"table,omitempty"`
	Stats  Stats          `json:"stats"`
}

// Execute runs the complete read → detect → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Read
	var in *Inputs
	err := r.stage(ctx, StageRead, result, func() (err error) {
		in, err = ReadInputs(opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("read inputs",
		"tree_rows", len(in.Tree.Rows),
		"linkage_rows", len(in.Linkage.Rows))

	key := r.Keyer.ReportKey(in.Tree.Digest, in.Linkage.Digest, cache.ReportKeyOpts{
		Method:   string(opts.Method),
		MaxSteps: opts.MaxSteps,
	})
	result.CacheInfo.Key = key

	if !opts.Refresh {
		if ok, err := r.fromCache(ctx, key, opts, result); err != nil {
			return nil, err
		} else if ok {
			result.Stats.Total = time.Since(start)
			logger.Info("served from cache", "key", key[:16])
			r.emitFindings(ctx, result)
			return result, nil
		}
	}

	// Stage 2: Build
	var g *hierarchy.Graph
	err = r.stage(ctx, StageBuild, result, func() (err error) {
		g, err = hierarchy.Build(in.Tree)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Nodes = g.Len()
	result.Stats.TreeEdges = g.EdgeCount()
	logger.Info("built hierarchy",
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"conflicts", len(g.Conflicts()))

	// Stage 3: Ingest
	var ing *linkage.Result
	err = r.stage(ctx, StageIngest, result, func() (err error) {
		ing, err = linkage.Ingest(opts.Method, in.Linkage, g)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Linkages = ing.Linkages
	result.Stats.Linkages = ing.Linkages.Len()
	logger.Info("ingested linkages",
		"method", opts.Method,
		"valid", ing.Linkages.Len(),
		"invalid_nodes", len(ing.InvalidNodes),
		"invalid_weights", len(ing.InvalidWeights))

	// Stage 4: Detect
	var found *loops.Findings
	err = r.stage(ctx, StageDetect, result, func() (err error) {
		found, err = loops.Detect(ctx, g, ing.Linkages, loops.WithMaxSteps(opts.MaxSteps))
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.Seeds = found.Seeds
	result.Stats.Steps = found.Steps
	logger.Info("searched for loops",
		"seeds", found.Seeds,
		"steps", found.Steps,
		"raw_loops", len(found.Loops))

	// Stage 5: Assemble
	var tableData []byte
	err = r.stage(ctx, StageAssemble, result, func() (err error) {
		result.Report = report.Assemble(ing, found, g)
		tableData, err = RenderTable(ing)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Stage 6: Render
	err = r.stage(ctx, StageRender, result, func() error {
		artifacts, err := RenderReport(result.Report, opts)
		if err != nil {
			return err
		}
		graphs, err := RenderGraph(ctx, g, ing.Linkages, loops.Dedupe(found.Loops), opts)
		if err != nil {
			return err
		}
		for name, data := range graphs {
			artifacts[name] = data
		}
		if tableData != nil {
			artifacts[FileTable] = tableData
		}
		result.Artifacts = artifacts
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("rendered outputs", "artifacts", len(result.Artifacts))

	r.store(ctx, key, opts, result, tableData)
	result.Stats.Total = time.Since(start)
	r.emitFindings(ctx, result)
	return result, nil
}

// stage runs fn as a named stage: it checks for cancellation first, records
// the stage duration, and reports start and completion to the hooks.
func (r *Runner) stage(ctx context.Context, name string, result *Result, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCancelled, err, "before %s", name)
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)

	start := time.Now()
	err := fn()
	d := time.Since(start)

	result.Stats.Stages = append(result.Stats.Stages, StageTime{Stage: name, Duration: d})
	hooks.OnStageComplete(ctx, name, d, err)
	return err
}

// fromCache fills result from the cache. It reports false when the report
// or any requested graph artifact is missing.
func (r *Runner) fromCache(ctx context.Context, key string, opts Options, result *Result) (bool, error) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, "report")
		return false, nil
	}
	var run cachedRun
	if err := json.Unmarshal(data, &run); err != nil || run.Report == nil {
		hooks.OnCacheMiss(ctx, "report")
		return false, nil
	}

	graphs := make(map[string][]byte)
	for _, format := range []string{FormatDOT, FormatSVG} {
		if !opts.Wants(format) {
			continue
		}
		akey := r.Keyer.ArtifactKey(key, cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed})
		art, hit, err := r.Cache.Get(ctx, akey)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			return false, nil
		}
		hooks.OnCacheHit(ctx, "artifact")
		graphs[formatFiles[format]] = art
	}
	hooks.OnCacheHit(ctx, "report")

	artifacts, err := RenderReport(run.Report, opts)
	if err != nil {
		return false, err
	}
	for name, art := range graphs {
		artifacts[name] = art
	}
	if len(run.Table) > 0 {
		artifacts[FileTable] = run.Table
	}

	run.Stats.Stages = result.Stats.Stages
	result.Stats = run.Stats
	result.Report = run.Report
	result.Artifacts = artifacts
	result.CacheInfo.ReportHit = true
	return true, nil
}

// store writes the report and graph artifacts to the cache. Failures are
// logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key string, opts Options, result *Result, tableData []byte) {
	hooks := observability.Cache()

	data, err := json.Marshal(cachedRun{Report: result.Report, Table: tableData, Stats: result.Stats})
	if err != nil {
		r.Logger.Debug("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLReport); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
		return
	}
	hooks.OnCacheSet(ctx, "report", len(data))

	for _, format := range []string{FormatDOT, FormatSVG} {
		art, ok := result.Artifacts[formatFiles[format]]
		if !ok {
			continue
		}
		akey := r.Keyer.ArtifactKey(key, cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed})
		if err := r.Cache.Set(ctx, akey, art, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(art))
		}
	}
}

func (r *Runner) emitFindings(ctx context.Context, result *Result) {
	c := result.Report.Counts()
	observability.Pipeline().OnFindings(ctx, observability.Findings{
		Method:         string(result.Report.Method),
		InvalidNodes:   c.InvalidNodes,
		InvalidWeights: c.InvalidWeights,
		Loops:          c.Loops,
		Reviews:        c.Reviews,
		Seeds:          result.Stats.Seeds,
		Steps:          result.Stats.Steps,
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
