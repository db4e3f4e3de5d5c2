package errors

import (
	"fmt"
	"strings"

	"cbml-lang/cbml/pkg/cbml/ast"
)

// Code is a stable diagnostic code. Tooling (quick fixes, CI filters)
// matches on codes, never on messages.
type Code uint16

const (
	CodeUncategorized        Code = 0
	CodeCannotOpenFile       Code = 1
	CodeUnknownType          Code = 2
	CodeUnknownField         Code = 3
	CodeMismatchedTypes      Code = 4
	CodeDuplicateUnionValue  Code = 5
	CodeUseDeclaredTwice     Code = 6
	CodeNotAllowedHere       Code = 7
	CodeDuplicateAssignment  Code = 8
	CodeDuplicateName        Code = 9
	CodeFieldAlreadyAssigned Code = 10
	CodeNoDefaultValue       Code = 11
	CodeKindNotAllowedUnion  Code = 12
	CodeDefaultOutsideField  Code = 13
	CodeUnrecognizedToken    Code = 14
	CodeUnassignedFields     Code = 15
	CodeSchemaHasErrors      Code = 16
	CodeDefinitionInDocument Code = 17
)

var codeTitles = map[Code]string{
	CodeUncategorized:        "uncategorized",
	CodeCannotOpenFile:       "cannot open file",
	CodeUnknownType:          "unknown type",
	CodeUnknownField:         "unknown field",
	CodeMismatchedTypes:      "mismatched types",
	CodeDuplicateUnionValue:  "duplicate union value",
	CodeUseDeclaredTwice:     "use declared more than once",
	CodeNotAllowedHere:       "statement not allowed here",
	CodeDuplicateAssignment:  "duplicate field assignment",
	CodeDuplicateName:        "duplicate name",
	CodeFieldAlreadyAssigned: "field already assigned",
	CodeNoDefaultValue:       "field has no default value",
	CodeKindNotAllowedUnion:  "kind not allowed in union",
	CodeDefaultOutsideField:  "default outside a field",
	CodeUnrecognizedToken:    "unrecognized token",
	CodeUnassignedFields:     "unassigned fields",
	CodeSchemaHasErrors:      "schema has errors",
	CodeDefinitionInDocument: "definition in document",
}

// String returns the zero-padded form used in output, e.g. "0004".
func (c Code) String() string {
	return fmt.Sprintf("%04d", uint16(c))
}

// Title returns a short description of the code.
func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return codeTitles[CodeUncategorized]
}

func newError(code Code, file string, span ast.Span, format string, args ...any) *Error {
	return &Error{
		Code:     code,
		FilePath: file,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Uncategorized reports a problem that has no dedicated code.
func Uncategorized(file string, span ast.Span, format string, args ...any) *Error {
	return newError(CodeUncategorized, file, span, format, args...)
}

// CannotOpenFile reports a file that could not be read or has the wrong kind.
func CannotOpenFile(file string, span ast.Span, path string, cause error) *Error {
	return newError(CodeCannotOpenFile, file, span, "cannot open file %q: %v", path, cause)
}

// UnknownType reports a reference to a type that is not declared.
func UnknownType(file string, span ast.Span, name string) *Error {
	return newError(CodeUnknownType, file, span, "cannot find type `%s` in this schema", name)
}

// UnknownField reports an assignment to a field the schema does not declare.
func UnknownField(file string, span ast.Span, name string) *Error {
	return newError(CodeUnknownField, file, span, "unknown field `%s`", name)
}

// MismatchedTypes reports a value whose shape does not match the declared type.
func MismatchedTypes(file string, span ast.Span, expected, found string) *Error {
	return newError(CodeMismatchedTypes, file, span, "mismatched types: expected `%s`, found `%s`", expected, found).
		WithNote(fmt.Sprintf("expected type `%s`", expected))
}

// DuplicateUnionValue reports a value listed twice in a union.
func DuplicateUnionValue(file string, span ast.Span, value string) *Error {
	return newError(CodeDuplicateUnionValue, file, span, "duplicate union value `%s`", value)
}

// UseDeclaredTwice reports a second `use` statement.
func UseDeclaredTwice(file string, span ast.Span) *Error {
	return newError(CodeUseDeclaredTwice, file, span, "`use` may only be declared once").
		WithHelp("remove this `use` statement")
}

// NotAllowedHere reports a statement that is not allowed in its scope.
func NotAllowedHere(file string, span ast.Span, message string) *Error {
	return newError(CodeNotAllowedHere, file, span, "%s", message)
}

// DuplicateAssignment reports a field assigned more than once in a scope.
func DuplicateAssignment(file string, span ast.Span, name string) *Error {
	return newError(CodeDuplicateAssignment, file, span, "field `%s` is assigned more than once", name).
		WithHelp("remove the duplicate assignment")
}

// DuplicateName reports a type or field declared twice in the same scope.
func DuplicateName(file string, span ast.Span, kind, name string) *Error {
	return newError(CodeDuplicateName, file, span, "the %s `%s` is defined multiple times", kind, name)
}

// FieldAlreadyAssigned reports a duplicate member inside one struct literal.
func FieldAlreadyAssigned(file string, span ast.Span, name string) *Error {
	return newError(CodeFieldAlreadyAssigned, file, span, "field `%s` is already assigned in this struct", name)
}

// NoDefaultValue reports `default` used for a field that declares none.
func NoDefaultValue(file string, span ast.Span, name string) *Error {
	return newError(CodeNoDefaultValue, file, span, "field `%s` has no default value", name).
		WithHelp(fmt.Sprintf("declare one in the schema: `%s: <type> default <value>`", name))
}

// KindNotAllowedInUnion reports a non-scalar literal inside a union.
func KindNotAllowedInUnion(file string, span ast.Span, kind string) *Error {
	return newError(CodeKindNotAllowedUnion, file, span, "%s values are not allowed in a union", kind).
		WithNote("unions may only contain strings, numbers, booleans and `none`")
}

// DefaultOutsideField reports `default` (or `todo`) where no field declaration applies.
func DefaultOutsideField(file string, span ast.Span, keyword string) *Error {
	return newError(CodeDefaultOutsideField, file, span, "`%s` can only be used as the value of a declared field", keyword)
}

// UnrecognizedToken reports a token that does not fit the grammar.
func UnrecognizedToken(file string, span ast.Span, found, expected string) *Error {
	if expected == "" {
		return newError(CodeUnrecognizedToken, file, span, "unexpected %s", found)
	}
	return newError(CodeUnrecognizedToken, file, span, "unexpected %s, expected %s", found, expected)
}

// UnassignedFields reports required top-level fields that were never assigned.
func UnassignedFields(file string, span ast.Span, names []string) *Error {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return newError(CodeUnassignedFields, file, span, "missing fields: %s", strings.Join(quoted, ", ")).
		WithHelp("assign every field declared in the schema")
}

// SchemaHasErrors reports an imported schema file that failed its own checks.
func SchemaHasErrors(file string, span ast.Span, schemaPath string, count int) *Error {
	return newError(CodeSchemaHasErrors, file, span, "schema file %q has %d error(s)", schemaPath, count).
		WithNote("type checks are skipped until the schema is fixed")
}

// DefinitionInDocument reports a field or type definition inside a document.
func DefinitionInDocument(file string, span ast.Span) *Error {
	return newError(CodeDefinitionInDocument, file, span, "field and type definitions are not allowed here").
		WithHelp("move them to the schema (.def.cbml) file")
}
