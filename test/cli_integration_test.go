//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const schemaSource = `/// Service name.
name: string
port: number default 8080
mode: Mode default plain(true)

enum Mode {
    plain(bool)
    tls({ cert: string })
}
`

const documentSource = `use "service.def.cbml"

name = "api"
port = default
mode = tls({ cert = "/etc/cert.pem" })
`

// TestCheckPipeline checks a valid tree, breaks it, and checks again.
func TestCheckPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "service.def.cbml"), schemaSource)
	docPath := filepath.Join(tmpDir, "service.cbml")
	writeFile(t, docPath, documentSource)

	binaryPath := buildCBMLBinary(t)

	t.Log("Step 1: Checking valid files...")
	output, code := run(t, binaryPath, "check", tmpDir)
	if code != 0 {
		t.Fatalf("check failed with exit code %d\nOutput: %s", code, output)
	}
	if !strings.Contains(output, "2 file(s) checked, 0 failed") {
		t.Errorf("expected success summary, got: %s", output)
	}

	t.Log("Step 2: Checking a type error...")
	writeFile(t, docPath, strings.Replace(documentSource, `"api"`, "42", 1))
	output, code = run(t, binaryPath, "check", tmpDir)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1\nOutput: %s", code, output)
	}
	if !strings.Contains(output, "error[0004]") {
		t.Errorf("expected mismatched types diagnostic, got: %s", output)
	}

	t.Log("Step 3: JSON output...")
	cmd := exec.Command(binaryPath, "check", docPath, "--format", "json")
	stdout, err := cmd.Output()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("json check: err = %v, want exit code 1", err)
	}

	var report struct {
		Files []struct {
			File        string `json:"file"`
			Diagnostics []struct {
				Code string `json:"code"`
				Line int    `json:"line"`
			} `json:"diagnostics"`
		} `json:"files"`
		Summary struct {
			Files  int `json:"files"`
			Failed int `json:"failed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(stdout, &report); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, stdout)
	}
	if report.Summary.Files != 1 || report.Summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 file, 1 failed", report.Summary)
	}
	if len(report.Files) != 1 || len(report.Files[0].Diagnostics) == 0 {
		t.Fatalf("missing diagnostics: %s", stdout)
	}
	if d := report.Files[0].Diagnostics[0]; d.Code != "0004" || d.Line != 3 {
		t.Errorf("diagnostic = %+v, want code 0004 on line 3", d)
	}
}

// TestExportPipeline exports a document as JSON and YAML.
func TestExportPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "service.def.cbml"), schemaSource)
	docPath := filepath.Join(tmpDir, "service.cbml")
	writeFile(t, docPath, documentSource)

	binaryPath := buildCBMLBinary(t)

	stdout, err := exec.Command(binaryPath, "export", docPath).Output()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var value map[string]any
	if err := json.Unmarshal(stdout, &value); err != nil {
		t.Fatalf("failed to parse export: %v\nOutput: %s", err, stdout)
	}
	if value["name"] != "api" || value["port"] != float64(8080) {
		t.Errorf("export = %v, want name api and default port 8080", value)
	}
	mode, ok := value["mode"].(map[string]any)
	if !ok || mode["tls"] == nil {
		t.Errorf("mode = %v, want tls variant", value["mode"])
	}

	outPath := filepath.Join(tmpDir, "service.yaml")
	output, code := run(t, binaryPath, "export", docPath, "--format", "yaml", "-o", outPath)
	if code != 0 {
		t.Fatalf("yaml export failed with exit code %d\nOutput: %s", code, output)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("yaml output not written: %v", err)
	}
	if !bytes.Contains(data, []byte("name: api")) {
		t.Errorf("yaml output missing name: %s", data)
	}
}

// TestConfigFile checks that .cbml.yaml and env overrides are honoured.
func TestConfigFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "service.def.cbml"), schemaSource)
	writeFile(t, filepath.Join(tmpDir, ".cbml.yaml"), "output:\n  format: json\n")

	binaryPath := buildCBMLBinary(t)
	absBinary, err := filepath.Abs(binaryPath)
	if err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(absBinary, "check")
	cmd.Dir = tmpDir
	stdout, err := cmd.Output()
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(stdout), []byte("{")) {
		t.Errorf("expected JSON output from config file, got: %s", stdout)
	}

	cmd = exec.Command(absBinary, "check")
	cmd.Dir = tmpDir
	cmd.Env = append(os.Environ(), "CBML_OUTPUT_FORMAT=text")
	stdout, err = cmd.Output()
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !bytes.Contains(stdout, []byte("1 file(s) checked")) {
		t.Errorf("expected text output from env override, got: %s", stdout)
	}

	writeFile(t, filepath.Join(tmpDir, ".cbml.yaml"), "output:\n  format: xml\n")
	cmd = exec.Command(absBinary, "check")
	cmd.Dir = tmpDir
	output, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 2 {
		t.Errorf("invalid config: err = %v, want exit code 2\nOutput: %s", err, output)
	}
}

// TestWatchMetrics starts watch with a telemetry endpoint, edits a file and
// stops it with SIGINT.
func TestWatchMetrics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "service.def.cbml"), schemaSource)
	docPath := filepath.Join(tmpDir, "service.cbml")
	writeFile(t, docPath, documentSource)

	binaryPath := buildCBMLBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "watch", tmpDir,
		"--debounce", "50ms",
		"--metrics-addr", "127.0.0.1:19464")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	if !waitForHealthy("http://127.0.0.1:19464/metrics", 10*time.Second) {
		t.Fatalf("metrics endpoint not ready\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	if !waitForHealthy("http://127.0.0.1:19464/readyz", 10*time.Second) {
		t.Fatalf("watch never became ready\nStderr: %s", stderr.String())
	}

	writeFile(t, docPath, strings.Replace(documentSource, `"api"`, "42", 1))

	deadline := time.Now().Add(10 * time.Second)
	var body string
	for time.Now().Before(deadline) {
		body = fetch(t, "http://127.0.0.1:19464/metrics")
		if strings.Contains(body, `cbml_checker_diagnostics_total{code="0004"}`) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !strings.Contains(body, `cbml_checker_diagnostics_total{code="0004"}`) {
		t.Errorf("re-check not reflected in metrics:\n%s", body)
	}
	if !strings.Contains(body, "cbml_checker_watch_runs_total") {
		t.Errorf("metrics missing watch_runs_total:\n%s", body)
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Errorf("failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected shutdown error: %v\nStderr: %s", err, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Error("watch did not shut down within 5 seconds")
	}
}

// TestCommandVersionOutput tests the version command
func TestCommandVersionOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildCBMLBinary(t)

	output, code := run(t, binaryPath, "version")
	if code != 0 {
		t.Fatalf("version command failed with exit code %d\nOutput: %s", code, output)
	}
	if !strings.Contains(output, "cbml") {
		t.Errorf("version output should contain 'cbml', got: %s", output)
	}
}

// Helper functions

// buildCBMLBinary builds the cbml binary for testing
func buildCBMLBinary(t *testing.T) string {
	t.Helper()

	binaryPath := "../bin/cbml"
	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	t.Log("Building cbml binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/cbml")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build cbml: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

// run executes the binary and returns its combined output and exit code.
func run(t *testing.T, binary string, args ...string) (string, int) {
	t.Helper()

	output, err := exec.Command(binary, args...).CombinedOutput()
	if err == nil {
		return string(output), 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(output), exitErr.ExitCode()
	}
	t.Fatalf("failed to run %s: %v", binary, err)
	return "", -1
}

// waitForHealthy waits for an endpoint to return 200
func waitForHealthy(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func fetch(t *testing.T, url string) string {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return string(body)
}

// writeFile creates a test file
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}
