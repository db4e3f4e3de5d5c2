package types

import (
	"slices"
	"strings"
)

// Kind identifies a resolved type.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindAny
	KindArray
	KindUnion
	KindOptional
	KindStruct
	KindEnum
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindNumber:   "number",
	KindBool:     "bool",
	KindAny:      "any",
	KindArray:    "array",
	KindUnion:    "union",
	KindOptional: "optional",
	KindStruct:   "struct",
	KindEnum:     "enum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Type is a resolved schema type. Types are immutable once built.
type Type struct {
	Kind Kind

	Inner   *Type   // KindArray, KindOptional
	Fields  []Field // KindStruct members or KindEnum variants
	Allowed []Value // KindUnion

	// Name is the declared name of a named struct, enum or union. It is
	// informational and ignored by Equal.
	Name string
}

// Field is a named member of a struct or a variant of an enum.
type Field struct {
	Name string
	Type *Type
}

var (
	String = &Type{Kind: KindString}
	Number = &Type{Kind: KindNumber}
	Bool   = &Type{Kind: KindBool}
	Any    = &Type{Kind: KindAny}
)

// Array returns the type of arrays of inner.
func Array(inner *Type) *Type {
	return &Type{Kind: KindArray, Inner: inner}
}

// Optional returns the type that accepts none or inner.
func Optional(inner *Type) *Type {
	return &Type{Kind: KindOptional, Inner: inner}
}

// Struct returns a struct type with the given members.
func Struct(fields ...Field) *Type {
	return &Type{Kind: KindStruct, Fields: fields}
}

// Enum returns an enum type with the given variants.
func Enum(variants ...Field) *Type {
	return &Type{Kind: KindEnum, Fields: variants}
}

// Union returns a type that accepts exactly the given values.
func Union(allowed ...Value) *Type {
	return &Type{Kind: KindUnion, Allowed: allowed}
}

// Named returns a copy of t carrying a declared name.
func Named(name string, t *Type) *Type {
	c := *t
	c.Name = name
	return &c
}

// Field returns the struct member or enum variant called name.
func (t *Type) Field(name string) (*Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// FieldNames returns the member or variant names in declaration order.
func (t *Type) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Allows reports whether v is one of the values of a union type.
func (t *Type) Allows(v Value) bool {
	return slices.ContainsFunc(t.Allowed, v.Equal)
}

// Equal reports whether a and b are structurally equal. Any is equal to
// every type. Struct members and enum variants compare by name regardless
// of order; union values compare as sets.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == KindAny || b.Kind == KindAny {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindArray, KindOptional:
		return Equal(a.Inner, b.Inner)

	case KindUnion:
		for _, v := range a.Allowed {
			if !b.Allows(v) {
				return false
			}
		}
		for _, v := range b.Allowed {
			if !a.Allows(v) {
				return false
			}
		}
		return true

	case KindStruct, KindEnum:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for _, f := range a.Fields {
			other, ok := b.Field(f.Name)
			if !ok || !Equal(f.Type, other) {
				return false
			}
		}
		return true
	}

	return true
}

// String renders the type in schema syntax.
func (t *Type) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Type) write(sb *strings.Builder) {
	switch t.Kind {
	case KindArray:
		sb.WriteByte('[')
		t.Inner.write(sb)
		sb.WriteByte(']')
	case KindOptional:
		sb.WriteByte('?')
		t.Inner.write(sb)
	case KindUnion:
		for i, v := range t.Allowed {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(v.String())
		}
	case KindStruct:
		if len(t.Fields) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			f.Type.write(sb)
		}
		sb.WriteString(" }")
	case KindEnum:
		sb.WriteString("enum { ")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteByte('(')
			f.Type.write(sb)
			sb.WriteByte(')')
		}
		sb.WriteString(" }")
	default:
		sb.WriteString(t.Kind.String())
	}
}
