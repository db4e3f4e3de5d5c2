package metrics

import (
	"cbml-lang/cbml/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks the watch command.
//
// Metrics:
//   - cbml_checker_watch_events_total: File system events by operation
//   - cbml_checker_watch_runs_total: Debounced re-check runs by result
//   - cbml_checker_watch_files: Files checked in the latest run
//   - cbml_checker_watch_last_run_timestamp_seconds: Unix time of the latest run
type WatchMetrics struct {
	eventsTotal *prometheus.CounterVec
	runsTotal   *prometheus.CounterVec
	files       prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of file system events seen by the watcher",
			},
			[]string{"op"},
		),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_runs_total",
				Help:      "Total number of re-check runs triggered by the watcher",
			},
			[]string{"result"},
		),

		files: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_files",
				Help:      "Number of files checked in the latest watch run",
			},
		),

		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_last_run_timestamp_seconds",
				Help:      "Unix timestamp of the latest watch run",
			},
		),
	}

	registry.MustRegister(
		wm.eventsTotal,
		wm.runsTotal,
		wm.files,
		wm.lastRun,
	)

	return wm
}

// RecordRun records one completed re-check run.
func (wm *WatchMetrics) RecordRun(files int, failed bool) {
	result := ResultOK
	if failed {
		result = ResultError
	}
	wm.runsTotal.WithLabelValues(result).Inc()
	wm.files.Set(float64(files))
	wm.lastRun.SetToCurrentTime()
}
