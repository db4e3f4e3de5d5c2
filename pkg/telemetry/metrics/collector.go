package metrics

import (
	"time"

	"cbml-lang/cbml/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus registry for one cbml process and records
// check and watch activity into it.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	checkMetrics *CheckMetrics
	watchMetrics *WatchMetrics
}

// NewCollector creates a collector with the given configuration. If registry
// is nil a fresh registry is created. Empty namespace, subsystem and buckets
// fall back to the config defaults.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordCheck("document", time.Since(start), codes)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	return &Collector{
		config:       cfg,
		registry:     registry,
		checkMetrics: NewCheckMetrics(cfg, registry),
		watchMetrics: NewWatchMetrics(cfg, registry),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordCheck records one checked file. kind is "document" or "schema";
// codes lists the diagnostic code of every reported error.
func (c *Collector) RecordCheck(kind string, duration time.Duration, codes []string) {
	if !c.Enabled() {
		return
	}
	c.checkMetrics.RecordFile(kind, duration, codes)
}

// RecordReadError records a file that could not be read at all.
func (c *Collector) RecordReadError(kind string) {
	if !c.Enabled() {
		return
	}
	c.checkMetrics.filesTotal.WithLabelValues(kind, ResultUnreadable).Inc()
}

// RecordWatchEvent records a file system event seen by the watcher.
func (c *Collector) RecordWatchEvent(op string) {
	if !c.Enabled() {
		return
	}
	c.watchMetrics.eventsTotal.WithLabelValues(op).Inc()
}

// RecordWatchRun records one debounced re-check triggered by the watcher.
func (c *Collector) RecordWatchRun(files int, failed bool) {
	if !c.Enabled() {
		return
	}
	c.watchMetrics.RecordRun(files, failed)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
