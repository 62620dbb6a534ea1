package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/observability"
)

// promHooks records pipeline and cache events in a private Prometheus
// registry, written out with --metrics-file.
type promHooks struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	findings      *prometheus.GaugeVec
	detectSteps   prometheus.Gauge
	cacheOps      *prometheus.CounterVec
	cacheBytes    prometheus.Counter
}

var (
	_ observability.PipelineHooks = (*promHooks)(nil)
	_ observability.CacheHooks    = (*promHooks)(nil)
)

func newPromHooks() *promHooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &promHooks{
		registry: reg,
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treelink_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"stage"},
		),
		stageErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treelink_stage_errors_total",
				Help: "Pipeline stages that failed, by error code",
			},
			[]string{"stage", "code"},
		),
		findings: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "treelink_findings",
				Help: "Findings of the last validation run, by kind",
			},
			[]string{"method", "kind"},
		),
		detectSteps: f.NewGauge(prometheus.GaugeOpts{
			Name: "treelink_detect_steps",
			Help: "Search steps taken by the last loop detection",
		}),
		cacheOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treelink_cache_operations_total",
				Help: "Result cache operations",
			},
			[]string{"op"},
		),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "treelink_cache_bytes_written_total",
			Help: "Bytes written to the result cache",
		}),
	}
}

func (h *promHooks) OnStageStart(context.Context, string) {}

func (h *promHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues(stage, string(errors.GetCode(err))).Inc()
	}
}

func (h *promHooks) OnFindings(_ context.Context, f observability.Findings) {
	h.findings.WithLabelValues(f.Method, "invalid_nodes").Set(float64(f.InvalidNodes))
	h.findings.WithLabelValues(f.Method, "invalid_weights").Set(float64(f.InvalidWeights))
	h.findings.WithLabelValues(f.Method, "loops").Set(float64(f.Loops))
	h.findings.WithLabelValues(f.Method, "reviews").Set(float64(f.Reviews))
	h.findings.WithLabelValues(f.Method, "seeds").Set(float64(f.Seeds))
	h.detectSteps.Set(float64(f.Steps))
}

func (h *promHooks) OnCacheHit(context.Context, string)  { h.cacheOps.WithLabelValues("hit").Inc() }
func (h *promHooks) OnCacheMiss(context.Context, string) { h.cacheOps.WithLabelValues("miss").Inc() }

func (h *promHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.cacheOps.WithLabelValues("set").Inc()
	h.cacheBytes.Add(float64(size))
}

// enableMetrics registers Prometheus hooks when --metrics-file is set.
func (c *CLI) enableMetrics() {
	if c.metricsFile == "" || c.metrics != nil {
		return
	}
	c.metrics = newPromHooks()
	observability.SetPipelineHooks(c.metrics)
	observability.SetCacheHooks(c.metrics)
}

// flushMetrics writes the registry in text exposition format.
func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.metricsFile, c.metrics.registry); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write metrics file %s", c.metricsFile)
	}
	c.Logger.Debug("wrote metrics", "file", c.metricsFile)
	return nil
}
