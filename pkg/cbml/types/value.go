package types

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"cbml-lang/cbml/pkg/cbml/ast"
)

// ValueKind identifies a resolved value.
type ValueKind uint8

const (
	ValueString ValueKind = iota + 1
	ValueNumber
	ValueBoolean
	ValueNone
	ValueArray
	ValueStruct
	ValueEnumField
)

// Value is a resolved document value. Only the fields relevant to Kind
// are set.
type Value struct {
	Kind ValueKind

	Str  string
	Num  float64
	Bool bool

	Elems   []Value
	Fields  map[string]Value
	Variant string
	Inner   *Value
}

// StringValue returns a string value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue returns a number value.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// NoneValue returns the none value.
func NoneValue() Value { return Value{Kind: ValueNone} }

// ArrayValue returns an array value.
func ArrayValue(elems ...Value) Value { return Value{Kind: ValueArray, Elems: elems} }

// StructValue returns a struct value.
func StructValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{Kind: ValueStruct, Fields: fields}
}

// EnumValue returns an enum field value `variant(inner)`.
func EnumValue(variant string, inner Value) Value {
	return Value{Kind: ValueEnumField, Variant: variant, Inner: &inner}
}

// Equal reports whether v and other are deeply equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case ValueString:
		return v.Str == other.Str
	case ValueNumber:
		return v.Num == other.Num
	case ValueBoolean:
		return v.Bool == other.Bool
	case ValueNone:
		return true
	case ValueArray:
		return slices.EqualFunc(v.Elems, other.Elems, Value.Equal)
	case ValueStruct:
		return maps.EqualFunc(v.Fields, other.Fields, Value.Equal)
	case ValueEnumField:
		if v.Variant != other.Variant {
			return false
		}
		if v.Inner == nil || other.Inner == nil {
			return v.Inner == other.Inner
		}
		return v.Inner.Equal(*other.Inner)
	}
	return false
}

// Field returns the struct member called name.
func (v Value) Field(name string) (Value, bool) {
	f, ok := v.Fields[name]
	return f, ok
}

// Interface converts the value to plain Go values: string, float64, bool,
// nil, []any and map[string]any. An enum field becomes a single-entry map
// from the variant name to its payload.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return v.Num
	case ValueBoolean:
		return v.Bool
	case ValueArray:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = e.Interface()
		}
		return out
	case ValueStruct:
		out := make(map[string]any, len(v.Fields))
		for k, f := range v.Fields {
			out[k] = f.Interface()
		}
		return out
	case ValueEnumField:
		var inner any
		if v.Inner != nil {
			inner = v.Inner.Interface()
		}
		return map[string]any{v.Variant: inner}
	}
	return nil
}

// String renders the value in document syntax. Struct members are sorted
// by name.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.Kind {
	case ValueString:
		sb.WriteString(ast.QuoteString(v.Str))
	case ValueNumber:
		sb.WriteString(ast.FormatNumber(v.Num))
	case ValueBoolean:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case ValueNone:
		sb.WriteString("none")
	case ValueArray:
		sb.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case ValueStruct:
		if len(v.Fields) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, k := range slices.Sorted(maps.Keys(v.Fields)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(" = ")
			v.Fields[k].write(sb)
		}
		sb.WriteString(" }")
	case ValueEnumField:
		sb.WriteString(v.Variant)
		sb.WriteByte('(')
		if v.Inner != nil {
			v.Inner.write(sb)
		}
		sb.WriteByte(')')
	}
}
