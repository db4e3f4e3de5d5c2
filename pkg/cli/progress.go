package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ProgressReporter receives one event per checked file.
type ProgressReporter interface {
	Begin(files int)
	FileDone(path string, diagnostics int)
	Abort(err error)
	End()
}

// LineProgress prints one line per file:
//
//	[2/5] config/app.cbml: 3 diagnostics
type LineProgress struct {
	mu      sync.Mutex
	w       io.Writer
	total   int
	done    int
	failed  int
	started time.Time
}

// NewProgressReporter returns a LineProgress writing to w, or to
// os.Stderr when w is nil.
func NewProgressReporter(w io.Writer) *LineProgress {
	if w == nil {
		w = os.Stderr
	}
	return &LineProgress{w: w}
}

// Begin resets the counters for a run over files.
func (p *LineProgress) Begin(files int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = files
	p.done = 0
	p.failed = 0
	p.started = time.Now()
}

// FileDone records a finished file.
func (p *LineProgress) FileDone(path string, diagnostics int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	status := "ok"
	if diagnostics > 0 {
		p.failed++
		status = fmt.Sprintf("%d diagnostics", diagnostics)
		if diagnostics == 1 {
			status = "1 diagnostic"
		}
	}
	fmt.Fprintf(p.w, "[%d/%d] %s: %s\n", p.done, p.total, path, status)
}

// Abort reports why the run stopped early.
func (p *LineProgress) Abort(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "stopped after %d of %d files: %v\n", p.done, p.total, err)
}

// End prints the closing tally.
func (p *LineProgress) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total == 0 {
		return
	}
	fmt.Fprintf(p.w, "checked %d files, %d failed in %s\n",
		p.done, p.failed, time.Since(p.started).Round(time.Millisecond))
}

// NopProgress discards all events.
type NopProgress struct{}

func (NopProgress) Begin(int)            {}
func (NopProgress) FileDone(string, int) {}
func (NopProgress) Abort(error)          {}
func (NopProgress) End()                 {}
