package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"cbml-lang/cbml/pkg/cli"
	"cbml-lang/cbml/pkg/telemetry/health"
	"cbml-lang/cbml/pkg/watch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-check CBML files whenever they change",
	Long: `Check CBML files, then watch them and check again after every change.

Every run re-checks all files below the given paths, so editing a schema
re-validates the documents that import it. Press Ctrl+C to stop.

When --metrics-addr (or telemetry.metrics.address) is set, an HTTP server
runs on that address while watching:

  /metrics   Prometheus metrics
  /healthz   liveness probe
  /readyz    readiness probe (ready once the first run finished and files are watched)
  /version   build information`,
	Example: `  cbml watch configs/
  cbml watch . --debounce 250ms --metrics-addr :9464`,
	RunE: runWatch,
}

var watchFlags struct {
	format      string
	debounce    time.Duration
	metricsAddr string
	metricsOut  string
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.format, "format", "f", "", "output format: text, json, github (default from config)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before re-checking (default from config)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health probes on this address")
	watchCmd.Flags().StringVar(&watchFlags.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile after every run")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a := state()

	format, err := outputFormat(a, watchFlags.format)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	debounce := a.cfg.Watch.Debounce
	if watchFlags.debounce > 0 {
		debounce = watchFlags.debounce
	}
	addr := watchFlags.metricsAddr
	if addr == "" {
		addr = a.cfg.Telemetry.Metrics.Address
	}

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd, "watch"))
	defer stop()

	c := newChecker(a)
	formatter := cli.NewFormatter(format)
	probes := newWatchProbes()
	run := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			a.logger.InfoContext(ctx, "change detected", "files", changed)
		}
		err := checkOnce(ctx, a, c, paths, formatter, cmd.OutOrStdout())
		probes.finishRun(err)
		return err
	}

	if err := run(ctx, nil); err != nil {
		return cli.NewCommandError("watch", err)
	}

	w, err := watch.New(&watch.Config{
		Paths:      paths,
		Debounce:   debounce,
		Extensions: a.cfg.Watch.Extensions,
		SkipHidden: true,
		OnEvent:    a.metrics.RecordWatchEvent,
	}, a.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer w.Stop()

	if addr != "" {
		srv := serveTelemetry(ctx, a, addr, probes.checker)
		defer shutdownTelemetry(a, srv)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes (Ctrl+C to stop)...")
	probes.watching.Store(true)
	if err := w.Watch(ctx, run); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// checkOnce re-collects the files below paths, checks them and prints the
// report.
func checkOnce(ctx context.Context, a *app, c *checker, paths []string, formatter cli.Formatter, out io.Writer) error {
	files, err := collectFiles(paths, a.cfg.Check.Exclude)
	if err != nil {
		return err
	}
	report := c.checkFiles(ctx, files, nil)
	a.metrics.RecordWatchRun(len(files), report.Failed())
	if err := formatter.FormatTo(out, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return writeMetrics(ctx, a, watchFlags.metricsOut)
}

// watchProbes backs the readiness checks of a running watch.
type watchProbes struct {
	checker  *health.Checker
	watching atomic.Bool

	mu      sync.Mutex
	ran     bool
	lastErr error
}

func newWatchProbes() *watchProbes {
	p := &watchProbes{checker: health.New(time.Second)}
	p.checker.RegisterCheck("watcher", func(context.Context) error {
		if !p.watching.Load() {
			return errors.New("file watcher not started")
		}
		return nil
	})
	p.checker.RegisterCheck("last_run", func(context.Context) error {
		p.mu.Lock()
		defer p.mu.Unlock()
		if !p.ran {
			return errors.New("initial check has not finished")
		}
		return p.lastErr
	})
	return p
}

func (p *watchProbes) finishRun(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ran = true
	p.lastErr = err
}

// serveTelemetry starts an HTTP server on addr exposing the probes and, when
// metrics are enabled, /metrics.
func serveTelemetry(ctx context.Context, a *app, addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	if a.metrics.Enabled() {
		mux.Handle("/metrics", a.metrics.Handler())
	}
	health.Register(mux, checker, health.NewVersionInfo(Version, GitCommit, BuildDate))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.InfoContext(ctx, "serving telemetry", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.ErrorContext(ctx, "telemetry server failed", "error", err)
		}
	}()
	return srv
}

func shutdownTelemetry(a *app, srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry server shutdown failed", "error", err)
	}
}
