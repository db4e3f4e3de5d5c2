package config

import (
	"fmt"
	"net"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "output.format").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validOutputFormats = []string{"text", "json", "github"}
	validLogLevels     = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats    = []string{"json", "text", "console"}
)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateCheck(&cfg.Check)...)
	errs = append(errs, validateOutput(&cfg.Output)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateCheck(cfg *CheckConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxFileSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "check.max_file_size",
			Message: "max file size must be positive",
		})
	}
	if cfg.ContextLines < 0 {
		errs = append(errs, FieldError{
			Field:   "check.context_lines",
			Message: "context lines must be non-negative",
		})
	}
	for i, pattern := range cfg.Exclude {
		if strings.TrimSpace(pattern) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("check.exclude[%d]", i),
				Message: "pattern cannot be empty",
			})
		}
	}

	return errs
}

func validateOutput(cfg *OutputConfig) []FieldError {
	if !contains(validOutputFormats, cfg.Format) {
		return []FieldError{{
			Field:   "output.format",
			Message: fmt.Sprintf("invalid format %q (must be one of: %s)", cfg.Format, strings.Join(validOutputFormats, ", ")),
		}}
	}
	return nil
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce <= 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be positive",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	if !contains(validLogLevels, strings.ToLower(cfg.Logging.Level)) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be one of: debug, info, warn, error)", cfg.Logging.Level),
		})
	}
	if !contains(validLogFormats, strings.ToLower(cfg.Logging.Format)) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be one of: %s)", cfg.Logging.Format, strings.Join(validLogFormats, ", ")),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Namespace == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: "namespace is required when metrics are enabled",
			})
		}
		for i := 1; i < len(cfg.Metrics.DurationBuckets); i++ {
			if cfg.Metrics.DurationBuckets[i] <= cfg.Metrics.DurationBuckets[i-1] {
				errs = append(errs, FieldError{
					Field:   "telemetry.metrics.duration_buckets",
					Message: "buckets must be in strictly increasing order",
				})
				break
			}
		}
		if cfg.Metrics.Address != "" {
			if _, _, err := net.SplitHostPort(cfg.Metrics.Address); err != nil {
				errs = append(errs, FieldError{
					Field:   "telemetry.metrics.address",
					Message: fmt.Sprintf("invalid address %q: %v", cfg.Metrics.Address, err),
				})
			}
		}
	} else {
		if cfg.Metrics.Textfile != "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.textfile",
				Message: "textfile requires metrics to be enabled",
			})
		}
		if cfg.Metrics.Address != "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.address",
				Message: "address requires metrics to be enabled",
			})
		}
	}

	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
