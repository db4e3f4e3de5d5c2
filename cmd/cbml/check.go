package main

import (
	"context"
	"fmt"

	"cbml-lang/cbml/pkg/cli"
	"cbml-lang/cbml/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check CBML documents and schema files",
	Long: `Check CBML documents and schema files for errors.

Paths may be files or directories. Directories are searched recursively for
*.cbml files, skipping directories listed in check.exclude. Every diagnostic
is printed with its code, location and a source excerpt.

Exit codes:
  0  all files are valid
  1  at least one diagnostic was reported
  2  configuration or usage error`,
	Example: `  # Check the current directory
  cbml check

  # Check one document and its schema import
  cbml check app.cbml

  # JSON output with two lines of context
  cbml check configs/ --format json --context 2`,
	RunE: runCheck,
}

var checkFlags struct {
	format     string
	context    int
	baseDir    string
	metricsOut string
	progress   bool
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.format, "format", "f", "", "output format: text, json, github (default from config)")
	checkCmd.Flags().IntVar(&checkFlags.context, "context", -1, "source lines shown around each diagnostic (default from config)")
	checkCmd.Flags().StringVar(&checkFlags.baseDir, "base-dir", "", "directory relative schema imports resolve against (default: the document's directory)")
	checkCmd.Flags().StringVar(&checkFlags.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile after the run")
	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show progress on stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	a := state()

	format, err := outputFormat(a, checkFlags.format)
	if err != nil {
		return err
	}

	c := newChecker(a)
	if checkFlags.baseDir != "" {
		c.baseDir = checkFlags.baseDir
	}
	if checkFlags.context >= 0 {
		c.contextLines = checkFlags.context
	}

	files, err := collectFiles(args, a.cfg.Check.Exclude)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	ctx := commandContext(cmd, "check")
	a.logger.DebugContext(ctx, "checking files", "count", len(files))

	var progress cli.ProgressReporter = cli.NopProgress{}
	if checkFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
	}
	report := c.checkFiles(ctx, files, progress)

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError("check", fmt.Errorf("failed to write report: %w", err))
	}

	if err := writeMetrics(ctx, a, checkFlags.metricsOut); err != nil {
		return cli.NewCommandError("check", err)
	}

	if report.Failed() {
		return cli.NewCommandError("check", cli.ErrValidationFailed)
	}
	return nil
}

// commandContext tags the command's context with a run id and the command
// name for logging.
func commandContext(cmd *cobra.Command, name string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithCommand(logging.WithRunID(ctx, logging.NewRunID()), name)
}

// outputFormat resolves the --format flag against the configured default.
func outputFormat(a *app, flag string) (cli.OutputFormat, error) {
	if flag == "" {
		flag = a.cfg.Output.Format
	}
	return cli.ParseOutputFormat(flag)
}

// writeMetrics writes the metrics textfile named by the flag or config.
func writeMetrics(ctx context.Context, a *app, path string) error {
	if path == "" {
		path = a.cfg.Telemetry.Metrics.Textfile
	}
	if path == "" || !a.metrics.Enabled() {
		return nil
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	a.logger.DebugContext(ctx, "metrics written", "path", path)
	return nil
}
