package ast

import "fmt"

// Position is a zero-based location in a source file. Offset counts
// characters (runes), not bytes.
type Position struct {
	Line   uint // Line number (0-based)
	Column uint // Column number (0-based)
	Offset uint // Character offset from the start of the file
}

// String returns a human-readable, 1-based "line:column" form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a half-open range [Start, End) over character offsets.
// Every token, statement, literal and diagnostic carries one.
type Span struct {
	Start Position
	End   Position
}

// NewSpan creates a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// String returns "line:column-line:column".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Len returns the number of characters covered by the span.
func (s Span) Len() uint {
	if s.End.Offset < s.Start.Offset {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

// IsZero returns true if the span is uninitialized.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Contains reports whether the character offset lies within the span.
func (s Span) Contains(offset uint) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	out := s
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}
