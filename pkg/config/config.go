package config

import "time"

// Config is the root configuration structure for the cbml tools.
// It is read from a .cbml.yaml file and controls checking, output,
// watch mode and telemetry.
type Config struct {
	// Check contains settings for loading and validating CBML files.
	Check CheckConfig `yaml:"check"`

	// Output controls how diagnostics are printed.
	Output OutputConfig `yaml:"output"`

	// Watch contains settings for the watch command.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CheckConfig contains settings for loading and validating CBML files.
type CheckConfig struct {
	// BaseDir is the directory `use` paths are resolved against.
	// Empty means the directory of the checked document.
	// Default: ""
	BaseDir string `yaml:"base_dir"`

	// MaxFileSize is the largest file, in bytes, the checker will read.
	// Default: 8388608 (8MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// ContextLines is the number of source lines printed around a diagnostic.
	// Default: 1
	ContextLines int `yaml:"context_lines"`

	// Exclude lists glob patterns (matched against base names) skipped when
	// walking directories.
	// Default: [".git", "node_modules"]
	Exclude []string `yaml:"exclude"`
}

// OutputConfig controls how diagnostics are printed.
type OutputConfig struct {
	// Format is the diagnostic output format.
	// Options: "text", "json", "github"
	// Default: "text"
	Format string `yaml:"format"`

	// Color enables ANSI colors in text output.
	// Default: false
	Color bool `yaml:"color"`
}

// WatchConfig contains settings for the watch command.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// re-checking.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file suffixes that trigger a re-check.
	// Default: [".cbml"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "cbml"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "checker"
	Subsystem string `yaml:"subsystem"`

	// Textfile is a path the collected metrics are written to, in the
	// Prometheus text exposition format, when a command finishes. Empty
	// disables the write.
	Textfile string `yaml:"textfile"`

	// Address serves /metrics over HTTP while the watch command runs.
	// Format: "host:port". Empty disables the endpoint.
	Address string `yaml:"address"`

	// DurationBuckets defines histogram buckets for check duration (seconds).
	// Default: exponential from 100µs
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
