package config

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no path is given.
const DefaultFileName = ".cbml.yaml"

// Default values for configuration fields.
const (
	// Check defaults
	DefaultMaxFileSize  = int64(8 << 20) // 8MB
	DefaultContextLines = 1

	// Output defaults
	DefaultOutputFormat = "text"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "warn"
	DefaultLoggingFormat    = "console"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "cbml"
	DefaultMetricsSubsystem = "checker"
)

// DefaultWatchExtensions are the suffixes that trigger a re-check.
var DefaultWatchExtensions = []string{".cbml"}

// DefaultExclude are the directory names skipped when walking.
var DefaultExclude = []string{".git", "node_modules"}

// DefaultDurationBuckets covers 100µs to roughly 1.6s; a single file check
// is usually well under a millisecond.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(0.0001, 2, 15)

// ApplyDefaults fills every unset field of cfg with its default value.
// Values already present in cfg are left untouched.
func ApplyDefaults(cfg *Config) {
	// Check defaults
	if cfg.Check.MaxFileSize == 0 {
		cfg.Check.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Check.ContextLines == 0 {
		cfg.Check.ContextLines = DefaultContextLines
	}
	if cfg.Check.Exclude == nil {
		cfg.Check.Exclude = append([]string(nil), DefaultExclude...)
	}

	// Output defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
