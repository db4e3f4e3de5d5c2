// Package config provides configuration management for the cbml tools.
//
// This package handles loading and validating the .cbml.yaml file with
// environment variable overrides. Every field has a default, so a missing
// configuration file is not an error.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("ci.cbml.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("ci.cbml.yaml")
//
//  3. The command line lookup, falling back to defaults:
//     cfg, err := config.Load("")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CBML_SECTION_FIELD:
//
//   - CBML_OUTPUT_FORMAT overrides output.format
//   - CBML_WATCH_DEBOUNCE overrides watch.debounce
//   - CBML_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// List values (check.exclude, watch.extensions) are comma separated.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// Command line flags are applied by the caller after loading.
//
// # Validation
//
// Validation errors include field paths:
//
//	configuration validation failed with 2 errors:
//	  - output.format: invalid format "xml" (must be one of: text, json)
//	  - watch.debounce: debounce must be positive
//
// # Example Configuration
//
//	check:
//	  base_dir: "schemas"
//	  context_lines: 2
//
//	output:
//	  format: "json"
//
//	watch:
//	  debounce: "250ms"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	  metrics:
//	    textfile: "/var/lib/node_exporter/cbml.prom"
package config
