package types

import "cbml-lang/cbml/pkg/cbml/ast"

// Match reports whether a literal conforms to t.
//
// `todo` and `default` match every type; whether a `default` can actually
// be resolved is checked by the caller. `none` only matches optional types,
// `any`, and unions that list none.
func Match(t *Type, lit *ast.Literal) bool {
	return match(t, lit, false)
}

// MatchKnown is Match with struct member sets left unchecked: members the
// type does not declare and members the literal omits are ignored. Every
// member present on both sides must still match.
func MatchKnown(t *Type, lit *ast.Literal) bool {
	return match(t, lit, true)
}

func match(t *Type, lit *ast.Literal, known bool) bool {
	if t == nil || lit == nil {
		return false
	}
	if lit.Kind == ast.LiteralTodo || lit.Kind == ast.LiteralDefault {
		return true
	}

	switch t.Kind {
	case KindAny:
		return true
	case KindString:
		return lit.Kind == ast.LiteralString
	case KindNumber:
		return lit.Kind == ast.LiteralNumber
	case KindBool:
		return lit.Kind == ast.LiteralBoolean

	case KindArray:
		if lit.Kind != ast.LiteralArray {
			return false
		}
		for _, e := range lit.Elems {
			if !match(t.Inner, e, known) {
				return false
			}
		}
		return true

	case KindOptional:
		return lit.Kind == ast.LiteralNone || match(t.Inner, lit, known)

	case KindUnion:
		return t.Allows(FromLiteral(lit))

	case KindStruct:
		if lit.Kind != ast.LiteralStruct {
			return false
		}
		if !known && len(lit.Fields) != len(t.Fields) {
			return false
		}
		for _, f := range t.Fields {
			member, ok := lit.Field(f.Name)
			if !ok {
				if known {
					continue
				}
				return false
			}
			if !match(f.Type, member.Value, known) {
				return false
			}
		}
		return true

	case KindEnum:
		if lit.Kind != ast.LiteralEnumField {
			return false
		}
		variant, ok := t.Field(lit.Variant)
		return ok && match(variant, lit.Inner, known)
	}

	return false
}

// FromLiteral converts a literal to a value. `todo` becomes none, and so
// does `default`, which has no value of its own; see FromLiteralFunc.
func FromLiteral(lit *ast.Literal) Value {
	return FromLiteralFunc(lit, nil)
}

// FromLiteralFunc converts a literal to a value, asking defaults for the
// value of each `default` literal. A nil defaults, or one that reports no
// value, turns `default` into none.
func FromLiteralFunc(lit *ast.Literal, defaults func(*ast.Literal) (Value, bool)) Value {
	switch lit.Kind {
	case ast.LiteralString:
		return StringValue(lit.Str)
	case ast.LiteralNumber:
		return NumberValue(lit.Num)
	case ast.LiteralBoolean:
		return BoolValue(lit.Bool)

	case ast.LiteralArray:
		elems := make([]Value, len(lit.Elems))
		for i, e := range lit.Elems {
			elems[i] = FromLiteralFunc(e, defaults)
		}
		return ArrayValue(elems...)

	case ast.LiteralStruct:
		fields := make(map[string]Value, len(lit.Fields))
		for _, f := range lit.Fields {
			if _, dup := fields[f.Name]; dup {
				continue
			}
			fields[f.Name] = FromLiteralFunc(f.Value, defaults)
		}
		return StructValue(fields)

	case ast.LiteralEnumField:
		return EnumValue(lit.Variant, FromLiteralFunc(lit.Inner, defaults))

	case ast.LiteralDefault:
		if defaults != nil {
			if v, ok := defaults(lit); ok {
				return v
			}
		}
	}

	return NoneValue()
}
