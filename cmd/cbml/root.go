package main

import (
	"fmt"
	"os"

	"cbml-lang/cbml/pkg/cli"
	"cbml-lang/cbml/pkg/config"
	"cbml-lang/cbml/pkg/telemetry/logging"
	"cbml-lang/cbml/pkg/telemetry/metrics"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "cbml",
	Short: "cbml - check and export CBML configuration files",
	Long: `cbml validates CBML documents against their schema files and reports
every problem with a stable diagnostic code.

  - Documents (*.cbml) assign values to declared fields
  - Schemas (*.def.cbml) declare fields, structs, enums and unions
  - A document imports its schema with a leading use "path.def.cbml"

Configuration is read from .cbml.yaml in the working directory when present,
and can be overridden with CBML_* environment variables.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default .cbml.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, text, json")
}

// setup loads configuration, applies global flags and builds the logger and
// metrics collector.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	current = &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
	}
	logger.Debug("configuration loaded", "config", cfgFile, "output", cfg.Output.Format)
	return nil
}

// state returns the loaded application state, falling back to defaults when
// a command runs without the root pre-run (as in tests).
func state() *app {
	if current == nil {
		cfg := config.Default()
		current = &app{
			cfg:     cfg,
			logger:  logging.Discard(),
			metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		}
	}
	return current
}
