package metrics

import (
	"time"

	"cbml-lang/cbml/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for files_checked_total.
const (
	ResultOK         = "ok"
	ResultError      = "error"
	ResultUnreadable = "unreadable"
)

// CheckMetrics tracks metrics related to file checks.
//
// Metrics:
//   - cbml_checker_files_checked_total: Checked files by kind and result
//   - cbml_checker_diagnostics_total: Reported diagnostics by code
//   - cbml_checker_check_duration_seconds: Time spent checking one file
type CheckMetrics struct {
	filesTotal       *prometheus.CounterVec
	diagnosticsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

// NewCheckMetrics creates and registers check metrics with the provided registry.
func NewCheckMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CheckMetrics {
	cm := &CheckMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_checked_total",
				Help:      "Total number of checked CBML files",
			},
			[]string{"kind", "result"},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of reported diagnostics by error code",
			},
			[]string{"code"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "check_duration_seconds",
				Help:      "Duration of checking one file in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		cm.filesTotal,
		cm.diagnosticsTotal,
		cm.duration,
	)

	return cm
}

// RecordFile records the outcome of checking one file.
func (cm *CheckMetrics) RecordFile(kind string, duration time.Duration, codes []string) {
	result := ResultOK
	if len(codes) > 0 {
		result = ResultError
	}

	cm.filesTotal.WithLabelValues(kind, result).Inc()
	cm.duration.WithLabelValues(kind).Observe(duration.Seconds())
	for _, code := range codes {
		cm.diagnosticsTotal.WithLabelValues(code).Inc()
	}
}
