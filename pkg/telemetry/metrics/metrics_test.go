package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cbml-lang/cbml/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "metrics",
		DurationBuckets: []float64{0.001, 0.01, 0.1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_NewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if collector.Registry() == nil {
		t.Fatal("expected a registry to be created")
	}
	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("got namespace %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("got subsystem %q, want %q", cfg.Subsystem, config.DefaultMetricsSubsystem)
	}
}

func TestCollector_RecordCheck(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCheck("document", time.Millisecond, nil)
	collector.RecordCheck("document", time.Millisecond, []string{"0004", "0004", "0015"})
	collector.RecordCheck("schema", time.Millisecond, []string{"0002"})

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"document ok", testutil.ToFloat64(collector.checkMetrics.filesTotal.WithLabelValues("document", ResultOK)), 1},
		{"document error", testutil.ToFloat64(collector.checkMetrics.filesTotal.WithLabelValues("document", ResultError)), 1},
		{"schema error", testutil.ToFloat64(collector.checkMetrics.filesTotal.WithLabelValues("schema", ResultError)), 1},
		{"code 0004", testutil.ToFloat64(collector.checkMetrics.diagnosticsTotal.WithLabelValues("0004")), 2},
		{"code 0015", testutil.ToFloat64(collector.checkMetrics.diagnosticsTotal.WithLabelValues("0015")), 1},
		{"code 0002", testutil.ToFloat64(collector.checkMetrics.diagnosticsTotal.WithLabelValues("0002")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := testutil.CollectAndCount(collector.checkMetrics.duration); got != 2 {
		t.Errorf("duration series: got %d, want 2", got)
	}
}

func TestCollector_RecordReadError(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordReadError("document")

	got := testutil.ToFloat64(collector.checkMetrics.filesTotal.WithLabelValues("document", ResultUnreadable))
	if got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestCollector_WatchMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordWatchEvent("WRITE")
	collector.RecordWatchEvent("WRITE")
	collector.RecordWatchRun(3, false)
	collector.RecordWatchRun(2, true)

	if got := testutil.ToFloat64(collector.watchMetrics.eventsTotal.WithLabelValues("WRITE")); got != 2 {
		t.Errorf("events: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.runsTotal.WithLabelValues(ResultOK)); got != 1 {
		t.Errorf("ok runs: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.runsTotal.WithLabelValues(ResultError)); got != 1 {
		t.Errorf("failed runs: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.files); got != 2 {
		t.Errorf("files: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.lastRun); got <= 0 {
		t.Errorf("last run timestamp: got %v, want > 0", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordCheck("document", time.Millisecond, []string{"0004"})
	collector.RecordReadError("document")
	collector.RecordWatchEvent("CREATE")
	collector.RecordWatchRun(1, false)

	if got := testutil.ToFloat64(collector.checkMetrics.diagnosticsTotal.WithLabelValues("0004")); got != 0 {
		t.Errorf("disabled collector recorded %v diagnostics", got)
	}

	var nilCollector *Collector
	nilCollector.RecordCheck("document", time.Millisecond, nil)
	if nilCollector.Enabled() {
		t.Error("nil collector reports enabled")
	}
}

func TestCollector_WriteTextfile(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordCheck("document", time.Millisecond, []string{"0003"})

	path := filepath.Join(t.TempDir(), "cbml.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	for _, want := range []string{
		`test_metrics_files_checked_total{kind="document",result="error"} 1`,
		`test_metrics_diagnostics_total{code="0003"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}

func TestCollector_WriteTextfile_BadPath(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	path := filepath.Join(t.TempDir(), "missing", "cbml.prom")
	if err := collector.WriteTextfile(path); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordWatchEvent("WRITE")

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("got status %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "test_metrics_watch_events_total") {
		t.Errorf("handler output missing watch events:\n%s", body)
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				collector.RecordCheck("document", time.Microsecond, nil)
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	count := testutil.ToFloat64(collector.checkMetrics.filesTotal.WithLabelValues("document", ResultOK))
	if count != 1000 {
		t.Errorf("Expected 1000 checks, got %f", count)
	}
}
