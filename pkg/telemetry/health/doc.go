// Package health provides liveness and readiness probes for long-running
// cbml commands.
//
// The watch command registers checks for its file watcher and its first
// check run, and serves the probes next to /metrics:
//
//	checker := health.New(time.Second)
//	checker.RegisterCheck("watcher", func(ctx context.Context) error { ... })
//	health.Register(mux, checker, health.NewVersionInfo(Version, GitCommit, BuildDate))
//
// /healthz answers 200 while the process runs. /readyz answers 200 once
// every check passes and 503 before that. Diagnostics in checked files do
// not make the process unready; a run that cannot execute does.
package health
