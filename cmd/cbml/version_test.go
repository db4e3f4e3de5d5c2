package main

import (
	"runtime"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"cbml-lang/cbml/pkg/telemetry/health"
)

func setVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
		versionJSON = false
	})
	Version, GitCommit, BuildDate = version, commit, date
}

func TestVersionText(t *testing.T) {
	setVersion(t, "0.1.0-test", "abc123", "2026-10-18")

	cmd, stdout, _ := testCommand()
	if err := runVersion(cmd, nil); err != nil {
		t.Fatalf("runVersion() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"cbml 0.1.0-test\n",
		"commit:  abc123",
		"built:   2026-10-18",
		"go:      " + runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	setVersion(t, "1.2.3", "deadbeef", "2026-10-18")
	versionJSON = true

	cmd, stdout, _ := testCommand()
	if err := runVersion(cmd, nil); err != nil {
		t.Fatalf("runVersion() error = %v", err)
	}

	var got health.VersionInfo
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	want := health.NewVersionInfo("1.2.3", "deadbeef", "2026-10-18")
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestVersionRejectsArgs(t *testing.T) {
	if err := versionCmd.Args(versionCmd, []string{"extra"}); err == nil {
		t.Error("version should reject positional arguments")
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	want := []string{"check", "completion", "export", "tokens", "version", "watch"}

	got := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}
