// Package telemetry groups the observability packages of the cbml tool.
//
// # Components
//
//   - logging: structured logging over log/slog with run and file context
//   - metrics: Prometheus counters and histograms for check and watch runs
//   - health: liveness and readiness probes for the watch command
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "console"})
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	ctx := logging.WithRunID(ctx, logging.NewRunID())
//	logger.InfoContext(ctx, "check finished", "files", 12)
//	collector.RecordCheck("document", time.Since(start), codes)
//
// Logs go to stderr so that check reports on stdout stay machine-readable.
// Metrics are written to a textfile after a run or served over HTTP while
// watching.
package telemetry
