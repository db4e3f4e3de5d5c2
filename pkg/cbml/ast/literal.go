package ast

import (
	"strconv"
	"strings"
)

// LiteralKind identifies the shape of a literal value.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota + 1
	LiteralNumber
	LiteralBoolean
	LiteralArray
	LiteralStruct
	LiteralEnumField
	LiteralNone
	LiteralTodo
	LiteralDefault
)

var literalKindNames = map[LiteralKind]string{
	LiteralString:    "string",
	LiteralNumber:    "number",
	LiteralBoolean:   "bool",
	LiteralArray:     "array",
	LiteralStruct:    "struct",
	LiteralEnumField: "enum field",
	LiteralNone:      "none",
	LiteralTodo:      "todo",
	LiteralDefault:   "default",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Literal is a value expression. Only the fields relevant to Kind are set.
type Literal struct {
	Kind LiteralKind
	Span Span

	Str  string  // LiteralString
	Num  float64 // LiteralNumber
	Bool bool    // LiteralBoolean

	Elems  []*Literal     // LiteralArray
	Fields []*StructField // LiteralStruct, in assignment order

	Variant string   // LiteralEnumField tag
	Inner   *Literal // LiteralEnumField payload
}

// StructField is one `name = value` pair inside a struct literal.
type StructField struct {
	Name     string
	NameSpan Span
	Value    *Literal
	Span     Span
}

// IsScalar reports whether the literal is a string, number or boolean.
func (l *Literal) IsScalar() bool {
	switch l.Kind {
	case LiteralString, LiteralNumber, LiteralBoolean:
		return true
	}
	return false
}

// Field returns the struct member named name.
func (l *Literal) Field(name string) (*StructField, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// String renders the literal in source form.
func (l *Literal) String() string {
	var sb strings.Builder
	l.write(&sb)
	return sb.String()
}

func (l *Literal) write(sb *strings.Builder) {
	switch l.Kind {
	case LiteralString:
		sb.WriteString(QuoteString(l.Str))
	case LiteralNumber:
		sb.WriteString(FormatNumber(l.Num))
	case LiteralBoolean:
		sb.WriteString(strconv.FormatBool(l.Bool))
	case LiteralArray:
		sb.WriteByte('[')
		for i, e := range l.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case LiteralStruct:
		if len(l.Fields) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, f := range l.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(" = ")
			f.Value.write(sb)
		}
		sb.WriteString(" }")
	case LiteralEnumField:
		sb.WriteString(l.Variant)
		sb.WriteByte('(')
		if l.Inner != nil {
			l.Inner.write(sb)
		}
		sb.WriteByte(')')
	case LiteralNone:
		sb.WriteString("none")
	case LiteralTodo:
		sb.WriteString("todo")
	case LiteralDefault:
		sb.WriteString("default")
	}
}

// FormatNumber renders a number the way it would be written in a document.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// QuoteString renders s as a CBML string literal.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
