package cli

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestLineProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	p.Begin(3)
	p.FileDone("a.cbml", 0)
	p.FileDone("b.cbml", 1)
	p.FileDone("c.cbml", 4)
	p.End()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	want := []string{
		"[1/3] a.cbml: ok",
		"[2/3] b.cbml: 1 diagnostic",
		"[3/3] c.cbml: 4 diagnostics",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.HasPrefix(lines[3], "checked 3 files, 2 failed in ") {
		t.Errorf("summary = %q", lines[3])
	}
}

func TestLineProgress_Abort(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	p.Begin(5)
	p.FileDone("a.cbml", 0)
	p.Abort(errors.New("context canceled"))

	if got, want := buf.String(), "stopped after 1 of 5 files: context canceled"; !strings.Contains(got, want) {
		t.Errorf("output %q does not contain %q", got, want)
	}
}

func TestLineProgress_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)
	p.Begin(0)
	p.End()
	if buf.Len() != 0 {
		t.Errorf("got %q, want no output", buf.String())
	}
}

func TestLineProgress_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)
	p.Begin(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				p.FileDone("x.cbml", j%2)
			}
		}()
	}
	wg.Wait()
	p.End()

	if !strings.Contains(buf.String(), "[100/100]") {
		t.Error("missing final counter")
	}
	if !strings.Contains(buf.String(), "checked 100 files, 50 failed") {
		t.Errorf("summary missing in %q", buf.String()[buf.Len()-60:])
	}
}

func TestNewProgressReporter_NilWriter(t *testing.T) {
	if p := NewProgressReporter(nil); p.w == nil {
		t.Error("nil writer should default to stderr")
	}
}

func TestNopProgress(t *testing.T) {
	var p ProgressReporter = NopProgress{}
	p.Begin(3)
	p.FileDone("a.cbml", 2)
	p.Abort(errors.New("ignored"))
	p.End()
}
