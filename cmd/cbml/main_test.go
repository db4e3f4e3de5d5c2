package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"cbml-lang/cbml/pkg/config"
	"cbml-lang/cbml/pkg/telemetry/logging"
	"cbml-lang/cbml/pkg/telemetry/metrics"

	"github.com/spf13/cobra"
)

const testSchema = `name: string
port: number default 8080
tags: [string]
`

const testDocument = `use "app.def.cbml"

name = "web"
port = default
tags = ["a", "b"]
`

const testInvalidDocument = `use "app.def.cbml"

name = 42
port = 80
tags = []
`

// writeFiles creates files under a temp directory and returns its path.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// useTestApp installs default configuration with a silent logger for the
// duration of the test.
func useTestApp(t *testing.T, modify ...func(*config.Config)) *app {
	t.Helper()
	cfg := config.Default()
	for _, m := range modify {
		m(cfg)
	}
	current = &app{
		cfg:     cfg,
		logger:  logging.Discard(),
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
	}
	t.Cleanup(func() { current = nil })
	return current
}

// testCommand returns a command whose output goes to the returned buffers.
func testCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}
