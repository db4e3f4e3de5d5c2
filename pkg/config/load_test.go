package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
check:
  base_dir: "schemas"
  context_lines: 2

output:
  format: "json"

watch:
  debounce: "250ms"
  extensions: [".cbml", ".def.cbml"]

telemetry:
  logging:
    level: "debug"
    format: "text"
  metrics:
    textfile: "out.prom"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Check.BaseDir != "schemas" {
		t.Errorf("expected base dir %q, got %q", "schemas", cfg.Check.BaseDir)
	}
	if cfg.Check.ContextLines != 2 {
		t.Errorf("expected context lines 2, got %d", cfg.Check.ContextLines)
	}
	if cfg.Check.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("expected default max file size, got %d", cfg.Check.MaxFileSize)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected output format %q, got %q", "json", cfg.Output.Format)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce %v, got %v", 250*time.Millisecond, cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("expected 2 extensions, got %v", cfg.Watch.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics enabled when the key is absent")
	}
	if cfg.Telemetry.Metrics.Textfile != "out.prom" {
		t.Errorf("expected textfile %q, got %q", "out.prom", cfg.Telemetry.Metrics.Textfile)
	}
}

func TestLoadConfig_MetricsDisabled(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  metrics:\n    enabled: false\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be disabled")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"invalid yaml", "output: [unclosed", "failed to parse"},
		{"invalid format", "output:\n  format: xml\n", "output.format"},
		{"negative debounce", "watch:\n  debounce: -1s\n", "watch.debounce"},
		{"bad extension", "watch:\n  extensions: [cbml]\n", "watch.extensions[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "output:\n  format: text\n")

	t.Setenv("CBML_OUTPUT_FORMAT", "json")
	t.Setenv("CBML_CHECK_CONTEXT_LINES", "4")
	t.Setenv("CBML_WATCH_DEBOUNCE", "2s")
	t.Setenv("CBML_WATCH_EXTENSIONS", ".cbml, .def.cbml")
	t.Setenv("CBML_TELEMETRY_LOGGING_LEVEL", "error")
	t.Setenv("CBML_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("CBML_CHECK_MAX_FILE_SIZE", "not-a-number")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("expected output format %q, got %q", "json", cfg.Output.Format)
	}
	if cfg.Check.ContextLines != 4 {
		t.Errorf("expected context lines 4, got %d", cfg.Check.ContextLines)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if got := cfg.Watch.Extensions; len(got) != 2 || got[1] != ".def.cbml" {
		t.Errorf("expected extensions [.cbml .def.cbml], got %v", got)
	}
	if cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("expected logging level %q, got %q", "error", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by env")
	}
	if cfg.Check.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("unparsable override should be ignored, got %d", cfg.Check.MaxFileSize)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("CBML_OUTPUT_FORMAT", "xml")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected override validation error, got %v", err)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults, got error: %v", err)
	}
	if cfg.Output.Format != DefaultOutputFormat {
		t.Errorf("expected output format %q, got %q", DefaultOutputFormat, cfg.Output.Format)
	}
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("output:\n  format: json\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected output format %q, got %q", "json", cfg.Output.Format)
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
