package cli

import (
	"fmt"
	"strings"

	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
)

// Diagnostic is the printable form of one CBML error. Line and column
// numbers are 1-based.
type Diagnostic struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	File      string `json:"file"`
	Line      uint   `json:"line"`
	Column    uint   `json:"column"`
	EndLine   uint   `json:"end_line"`
	EndColumn uint   `json:"end_column"`
	Note      string `json:"note,omitempty"`
	Help      string `json:"help,omitempty"`
	Context   string `json:"-"`
}

// NewDiagnostic converts a CBML error.
func NewDiagnostic(err *cbmlErrors.Error) Diagnostic {
	return Diagnostic{
		Code:      err.Code.String(),
		Title:     err.Code.Title(),
		Message:   err.Message,
		File:      err.FilePath,
		Line:      err.Span.Start.Line + 1,
		Column:    err.Span.Start.Column + 1,
		EndLine:   err.Span.End.Line + 1,
		EndColumn: err.Span.End.Column + 1,
		Note:      err.Note,
		Help:      err.Help,
		Context:   err.Context,
	}
}

// FileReport holds the diagnostics of one checked file.
type FileReport struct {
	File        string       `json:"file"`
	Kind        string       `json:"kind"`
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// SourceFunc returns the text of a file involved in a check.
type SourceFunc func(path string) (string, bool)

// NewFileReport builds a report for one file. When source is non-nil and
// contextLines is not negative, each diagnostic carries a rendered excerpt.
func NewFileReport(path, kind string, errs *cbmlErrors.ErrorList, source SourceFunc, contextLines int) FileReport {
	report := FileReport{File: path, Kind: kind, Valid: true}
	if errs == nil || !errs.HasErrors() {
		return report
	}
	report.Valid = false
	for _, e := range errs.Errors {
		if source != nil && contextLines >= 0 && e.Context == "" {
			if src, ok := source(e.FilePath); ok && src != "" {
				cbmlErrors.WithContext(e, src, contextLines)
			}
		}
		report.Diagnostics = append(report.Diagnostics, NewDiagnostic(e))
	}
	return report
}

// Summary counts files and diagnostics across a report.
type Summary struct {
	Files       int `json:"files"`
	Failed      int `json:"failed"`
	Diagnostics int `json:"diagnostics"`
}

// Report is the result of a check run. Color enables ANSI colors in String.
type Report struct {
	Files   []FileReport `json:"files"`
	Summary Summary      `json:"summary"`
	Color   bool         `json:"-"`
}

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
)

func paint(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + ansiReset
}

// Add appends a file report and updates the summary.
func (r *Report) Add(fr FileReport) {
	r.Files = append(r.Files, fr)
	r.Summary.Files++
	r.Summary.Diagnostics += len(fr.Diagnostics)
	if !fr.Valid {
		r.Summary.Failed++
	}
}

// Failed reports whether any file has diagnostics.
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}

// String renders the report the way TextFormatter prints it.
func (r *Report) String() string {
	var sb strings.Builder

	for _, fr := range r.Files {
		if fr.Valid {
			sb.WriteString(fmt.Sprintf("%s %s\n", paint(r.Color, ansiGreen, "✓"), fr.File))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", paint(r.Color, ansiRed, "✗"), fr.File))
		for _, d := range fr.Diagnostics {
			sb.WriteString(d.render(r.Color))
		}
	}

	sb.WriteString(fmt.Sprintf("\n%d file(s) checked, %d failed, %d error(s)",
		r.Summary.Files, r.Summary.Failed, r.Summary.Diagnostics))
	return sb.String()
}

// String renders one diagnostic with its excerpt, note and help.
func (d Diagnostic) String() string {
	return d.render(false)
}

func (d Diagnostic) render(color bool) string {
	var sb strings.Builder

	header := paint(color, ansiRed+ansiBold, fmt.Sprintf("error[%s]", d.Code))
	sb.WriteString(fmt.Sprintf("%s: %s\n", header, d.Message))
	if d.File != "" {
		sb.WriteString(fmt.Sprintf("  --> %s:%d:%d\n", d.File, d.Line, d.Column))
	} else {
		sb.WriteString(fmt.Sprintf("  --> %d:%d\n", d.Line, d.Column))
	}
	if d.Context != "" {
		sb.WriteString(d.Context)
	}
	if d.Note != "" {
		sb.WriteString(fmt.Sprintf("  = note: %s\n", d.Note))
	}
	if d.Help != "" {
		sb.WriteString(fmt.Sprintf("  = help: %s\n", d.Help))
	}
	return sb.String()
}
