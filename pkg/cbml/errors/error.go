package errors

import (
	"fmt"
	"sort"
	"strings"

	"cbml-lang/cbml/pkg/cbml/ast"
)

// Error is a diagnostic with a stable code, a source span and optional
// note and help lines. It is produced by every stage of the pipeline.
type Error struct {
	FilePath string   // File the diagnostic belongs to
	Message  string   // Human-readable message
	Span     ast.Span // Source range
	Note     string   // Additional explanation (optional)
	Help     string   // Suggested fix (optional)
	Code     Code     // Stable diagnostic code
	Context  string   // Rendered source excerpt (optional, filled by callers)
}

// Error implements the error interface.
// It returns a formatted message with location, context, note and help.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("error[%s]: %s\n", e.Code, e.Message))
	sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location()))

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}
	if e.Note != "" {
		sb.WriteString(fmt.Sprintf("  = note: %s\n", e.Note))
	}
	if e.Help != "" {
		sb.WriteString(fmt.Sprintf("  = help: %s\n", e.Help))
	}

	return sb.String()
}

// Location returns "file:line:column" using 1-based numbers.
func (e *Error) Location() string {
	if e.FilePath == "" {
		return e.Span.Start.String()
	}
	return fmt.Sprintf("%s:%s", e.FilePath, e.Span.Start)
}

// WithNote sets the note and returns e.
func (e *Error) WithNote(note string) *Error {
	e.Note = note
	return e
}

// WithHelp sets the help line and returns e.
func (e *Error) WithHelp(help string) *Error {
	e.Help = help
	return e
}

// ErrorList accumulates diagnostics instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list. Nil errors are ignored.
func (el *ErrorList) Add(err *Error) {
	if err == nil {
		return
	}
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(code Code, filePath, message string, span ast.Span) {
	el.Add(&Error{
		Code:     code,
		FilePath: filePath,
		Message:  message,
		Span:     span,
	})
}

// Merge appends all errors of other.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for _, err := range el.Errors {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByCode returns all errors with the given code.
func (el *ErrorList) ByCode(code Code) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Code == code {
			result = append(result, err)
		}
	}
	return result
}

// HasCode returns true if the list contains at least one error with the given code.
func (el *ErrorList) HasCode(code Code) bool {
	for _, err := range el.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Sort orders the errors by file and position, keeping the relative order
// of errors that start at the same place.
func (el *ErrorList) Sort() {
	sort.SliceStable(el.Errors, func(i, j int) bool {
		a, b := el.Errors[i], el.Errors[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Span.Start.Offset < b.Span.Start.Offset
	})
}
