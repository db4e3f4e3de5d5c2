package ast

import (
	"strconv"
	"strings"
)

// ScopeID identifies where a declaration or assignment lives: the chain of
// enclosing field, struct and enum names. The zero value is the file root.
//
// A ScopeID is an immutable value. Push returns a new ScopeID and never
// modifies the receiver, so scopes can be threaded through recursive walks
// without an explicit push/pop discipline.
type ScopeID struct {
	segments []string
}

// RootScope is the scope of top-level declarations.
var RootScope = ScopeID{}

// NewScope builds a scope from its segments.
func NewScope(segments ...string) ScopeID {
	if len(segments) == 0 {
		return RootScope
	}
	return ScopeID{segments: append([]string(nil), segments...)}
}

// Push returns the child scope named segment.
func (s ScopeID) Push(segment string) ScopeID {
	next := make([]string, len(s.segments)+1)
	copy(next, s.segments)
	next[len(s.segments)] = segment
	return ScopeID{segments: next}
}

// PushIndex returns the child scope for the i-th array element.
func (s ScopeID) PushIndex(i int) ScopeID {
	return s.Push(IndexSegment(i))
}

// IndexSegment is the scope segment used for array elements. It cannot
// collide with a field name since identifiers never contain brackets.
func IndexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// IsIndexSegment reports whether segment was produced by IndexSegment.
func IsIndexSegment(segment string) bool {
	return strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]")
}

// Segments returns a copy of the scope's segments.
func (s ScopeID) Segments() []string {
	return append([]string(nil), s.segments...)
}

// Depth returns the number of segments.
func (s ScopeID) Depth() int {
	return len(s.segments)
}

// IsRoot reports whether s is the file root.
func (s ScopeID) IsRoot() bool {
	return len(s.segments) == 0
}

// Parent returns the enclosing scope. The parent of the root is the root.
func (s ScopeID) Parent() ScopeID {
	if len(s.segments) <= 1 {
		return RootScope
	}
	return ScopeID{segments: s.segments[:len(s.segments)-1]}
}

// Last returns the innermost segment, or "" for the root.
func (s ScopeID) Last() string {
	if len(s.segments) == 0 {
		return ""
	}
	return s.segments[len(s.segments)-1]
}

// Equal reports whether two scopes have the same segments.
func (s ScopeID) Equal(other ScopeID) bool {
	if len(s.segments) != len(other.segments) {
		return false
	}
	for i := range s.segments {
		if s.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key. Segments are separated by a
// control character that cannot appear in an identifier.
func (s ScopeID) Key() string {
	return strings.Join(s.segments, "\x1f")
}

// String renders the scope as "::a::b"; the root renders as "".
func (s ScopeID) String() string {
	if len(s.segments) == 0 {
		return ""
	}
	return "::" + strings.Join(s.segments, "::")
}
