package ast

import "strings"

// TypeSignKind identifies the syntactic form of a type annotation.
type TypeSignKind uint8

const (
	TypeSignString TypeSignKind = iota + 1
	TypeSignNumber
	TypeSignBoolean
	TypeSignAny
	TypeSignArray
	TypeSignStruct
	TypeSignUnion
	TypeSignOptional
	TypeSignEnum
	TypeSignCustom
)

// TypeSign is a type as written in a schema file. Custom names are resolved
// to concrete types by the schema resolver.
type TypeSign struct {
	Kind TypeSignKind
	Span Span

	Inner    *TypeSign      // Array, Optional
	Fields   []*FieldDecl   // Struct
	Allowed  []*Literal     // Union
	Variants []*EnumVariant // Enum
	Name     string         // Custom
}

// FieldDecl declares one field: `name: type (default literal)?`.
type FieldDecl struct {
	Name     string
	NameSpan Span
	Type     *TypeSign
	Default  *Literal
	Doc      string
	Span     Span
}

// EnumVariant is one `name(type)` member of an enum.
type EnumVariant struct {
	Name     string
	NameSpan Span
	Type     *TypeSign
	Doc      string
	Span     Span
}

// String renders the type annotation in source form.
func (t *TypeSign) String() string {
	switch t.Kind {
	case TypeSignString:
		return "string"
	case TypeSignNumber:
		return "number"
	case TypeSignBoolean:
		return "bool"
	case TypeSignAny:
		return "any"
	case TypeSignArray:
		return "[" + t.Inner.String() + "]"
	case TypeSignOptional:
		return "?" + t.Inner.String()
	case TypeSignCustom:
		return t.Name
	case TypeSignUnion:
		parts := make([]string, len(t.Allowed))
		for i, l := range t.Allowed {
			parts[i] = l.String()
		}
		return strings.Join(parts, " | ")
	case TypeSignStruct:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name + ": " + f.Type.String()
		}
		if len(parts) == 0 {
			return "{}"
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case TypeSignEnum:
		parts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			parts[i] = v.Name + "(" + v.Type.String() + ")"
		}
		return "enum { " + strings.Join(parts, ", ") + " }"
	}
	return "<invalid>"
}
