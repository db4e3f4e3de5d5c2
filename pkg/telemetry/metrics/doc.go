// Package metrics provides Prometheus metrics for the cbml checker.
//
// # Metrics
//
//   - files_checked_total{kind,result}: checked documents and schemas
//   - diagnostics_total{code}: reported diagnostics by error code
//   - check_duration_seconds{kind}: time spent on one file
//   - watch_events_total, watch_runs_total, watch_files and
//     watch_last_run_timestamp_seconds for the watch command
//
// All names carry the configured namespace and subsystem, cbml_checker_ by
// default.
//
// # Export
//
// A one-shot `cbml check` writes the registry to a textfile for the
// node_exporter textfile collector (Collector.WriteTextfile). The long-running
// `cbml watch` can also serve it over HTTP (Collector.Handler).
package metrics
