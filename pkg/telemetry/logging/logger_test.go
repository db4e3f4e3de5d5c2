package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid JSON config",
			config: Config{Level: "info", Format: "json"},
		},
		{
			name:   "valid text config",
			config: Config{Level: "debug", Format: "text"},
		},
		{
			name:   "valid console config",
			config: Config{Level: "warn", Format: "console"},
		},
		{
			name:   "empty config uses defaults",
			config: Config{},
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{"debug level logs debug", "debug", func(l *Logger, msg string) { l.Debug(msg) }, true},
		{"info level filters debug", "info", func(l *Logger, msg string) { l.Debug(msg) }, false},
		{"info level logs info", "info", func(l *Logger, msg string) { l.Info(msg) }, true},
		{"warn level filters info", "warn", func(l *Logger, msg string) { l.Info(msg) }, false},
		{"warn level logs warn", "warn", func(l *Logger, msg string) { l.Warn(msg) }, true},
		{"error level filters warn", "error", func(l *Logger, msg string) { l.Warn(msg) }, false},
		{"error level logs error", "error", func(l *Logger, msg string) { l.Error(msg) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			testMsg := "test message"
			tt.logMethod(logger, testMsg)

			hasLog := strings.Contains(buf.String(), testMsg)
			if hasLog != tt.wantLog {
				t.Errorf("Log filtering failed: got log=%v, want log=%v, output=%s",
					hasLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger, err := New(Config{Level: "warn", Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger.Enabled(slog.LevelInfo) {
		t.Error("Enabled(info) = true at warn level")
	}
	if !logger.Enabled(slog.LevelError) {
		t.Error("Enabled(error) = false at warn level")
	}
	if Discard().Enabled(slog.LevelError) {
		t.Error("Discard().Enabled(error) = true")
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.With("schema", "package.def.cbml", "fields", 7).Info("schema loaded")

	output := buf.String()
	for _, field := range []string{"schema", "package.def.cbml", "fields", "7", "schema loaded"} {
		if !strings.Contains(output, field) {
			t.Errorf("Expected field %q not found in output: %s", field, output)
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	ctx := WithRunID(context.Background(), "run-456")
	ctx = WithCommand(ctx, "check")
	ctx = WithFile(ctx, "package.cbml")

	logger.WithContext(ctx).Info("test message")

	output := buf.String()
	for _, field := range []string{"run_id", "run-456", "command", "check", "file", "package.cbml"} {
		if !strings.Contains(output, field) {
			t.Errorf("Expected field %q not found in output: %s", field, output)
		}
	}

	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("WithContext(empty) should return the receiver")
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	ctx := WithRunID(context.Background(), "run-789")

	tests := []struct {
		name   string
		method func()
		level  string
	}{
		{"DebugContext", func() { logger.DebugContext(ctx, "debug message") }, "DEBUG"},
		{"InfoContext", func() { logger.InfoContext(ctx, "info message") }, "INFO"},
		{"WarnContext", func() { logger.WarnContext(ctx, "warn message") }, "WARN"},
		{"ErrorContext", func() { logger.ErrorContext(ctx, "error message") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.method()

			output := buf.String()
			if !strings.Contains(output, "run-789") {
				t.Errorf("Context run_id not found in %s output: %s", tt.name, output)
			}
			if !strings.Contains(output, tt.level) {
				t.Errorf("Level %s not found in output: %s", tt.level, output)
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	tests := []struct {
		format   string
		wantTime bool
	}{
		{"json", true},
		{"text", true},
		{"console", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: "info", Format: tt.format, Writer: buf})
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			logger.Info("test message", "key", "value")

			output := buf.String()
			if !strings.Contains(output, "test message") {
				t.Errorf("Message not found in %s output: %s", tt.format, output)
			}
			if got := strings.Contains(output, "time"); got != tt.wantTime {
				t.Errorf("time present = %v, want %v in %s", got, tt.wantTime, output)
			}
		})
	}
}

func TestLogger_AddSource(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", AddSource: true, Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("test message")

	if !strings.Contains(buf.String(), "source") {
		t.Errorf("Source field not found in output: %s", buf.String())
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false", s)
		}
	}
	if ValidLevel("trace") {
		t.Error("ValidLevel(trace) = true")
	}
	for _, s := range []string{"json", "text", "console", ""} {
		if !ValidFormat(s) {
			t.Errorf("ValidFormat(%q) = false", s)
		}
	}
	if ValidFormat("xml") {
		t.Error("ValidFormat(xml) = true")
	}
}
