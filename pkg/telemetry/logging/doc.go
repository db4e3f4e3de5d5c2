// Package logging provides structured logging for the cbml command line tools.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware logging with run ids, command names and file paths
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx := logging.WithRunID(ctx, logging.NewRunID())
//	ctx = logging.WithFile(ctx, "package.cbml")
//	logger.InfoContext(ctx, "checked", "diagnostics", 0)
//
// Logs go to stderr by default so that diagnostics and exported values on
// stdout remain machine readable.
package logging
