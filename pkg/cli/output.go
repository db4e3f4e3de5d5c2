package cli

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatGitHub prints GitHub Actions workflow annotations.
	FormatGitHub OutputFormat = "github"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON, FormatGitHub:
		return OutputFormat(s), nil
	}
	return "", NewConfigError("format", fmt.Sprintf("unsupported output format %q (want text, json or github)", s))
}

// Formatter formats command output.
type Formatter interface {
	Format(data any) ([]byte, error)
	FormatTo(w io.Writer, data any) error
}

// TextFormatter formats output as plain text using the value's String
// method when it has one.
type TextFormatter struct{}

// Format converts data to text format.
func (f *TextFormatter) Format(data any) ([]byte, error) {
	return []byte(fmt.Sprintf("%v\n", data)), nil
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data any) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// GitHubFormatter prints one ::error workflow command per diagnostic of a
// *Report followed by the summary line. Other values print as text.
type GitHubFormatter struct{}

// Format converts data to workflow commands.
func (f *GitHubFormatter) Format(data any) ([]byte, error) {
	var sb strings.Builder
	if err := f.FormatTo(&sb, data); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// FormatTo writes workflow commands for data to w.
func (f *GitHubFormatter) FormatTo(w io.Writer, data any) error {
	report, ok := data.(*Report)
	if !ok {
		return (&TextFormatter{}).FormatTo(w, data)
	}
	for _, fr := range report.Files {
		for _, d := range fr.Diagnostics {
			file := d.File
			if file == "" {
				file = fr.File
			}
			_, err := fmt.Fprintf(w, "::error file=%s,line=%d,col=%d,endLine=%d,endColumn=%d,title=%s::%s\n",
				escapeProperty(file), d.Line, d.Column, d.EndLine, d.EndColumn,
				escapeProperty(d.Code+" "+d.Title), escapeData(d.Message))
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d file(s) checked, %d failed, %d error(s)\n",
		report.Summary.Files, report.Summary.Failed, report.Summary.Diagnostics)
	return err
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatGitHub:
		return &GitHubFormatter{}
	default:
		return &TextFormatter{}
	}
}
