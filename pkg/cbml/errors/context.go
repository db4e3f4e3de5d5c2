package errors

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"cbml-lang/cbml/pkg/cbml/ast"
)

// RenderContext extracts the lines surrounding span from src and returns
// them with line numbers, marking the first line of the span with "->" and
// underlining the spanned columns.
func RenderContext(src string, span ast.Span, contextLines int) string {
	lines := strings.Split(src, "\n")
	errorLine := int(span.Start.Line)
	if errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		line := strings.TrimRight(lines[i], "\r")
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, line))

		if i == errorLine {
			col := int(span.Start.Column)
			length := 1
			if span.End.Line == span.Start.Line && span.End.Column > span.Start.Column {
				length = int(span.End.Column - span.Start.Column)
			}
			if rest := utf8.RuneCountInString(line) - col; rest > 0 && length > rest {
				length = rest
			}
			sb.WriteString(fmt.Sprintf("   %s | %s%s\n",
				strings.Repeat(" ", width), strings.Repeat(" ", col), strings.Repeat("^", length)))
		}
	}

	return sb.String()
}

// WithContext fills err.Context from the given source text.
func WithContext(err *Error, src string, contextLines int) *Error {
	err.Context = RenderContext(src, err.Span, contextLines)
	return err
}

// AddContextToError reads the error's file and fills its context with two
// lines before and after. Unreadable files leave the error unchanged.
func AddContextToError(err *Error) *Error {
	if err.FilePath == "" {
		return err
	}
	data, readErr := os.ReadFile(err.FilePath)
	if readErr != nil {
		return err
	}
	return WithContext(err, string(data), 2)
}
