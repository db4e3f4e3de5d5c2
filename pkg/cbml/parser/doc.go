// Package parser builds CBML statement trees from lexer tokens.
//
// The parser is a hand-written recursive descent parser. Newlines end
// statements; inside brackets, blank lines are ignored and entries may be
// separated by commas or newlines.
//
// # Grammar
//
//	stmt       := use | assignment | field_def | struct_def | enum_def | union_def
//	use        := "use" STRING
//	assignment := IDENT "=" literal
//	field_def  := IDENT ":" type_sign ("default" literal)?
//	struct_def := "struct" IDENT "{" field_def* "}"
//	enum_def   := "enum" IDENT "{" (IDENT "(" type_sign ")")* "}"
//	union_def  := "union" "(" type_sign ")" IDENT "=" literal ("|" literal)*
//
//	type_sign  := "?" type_sign | "[" type_sign "]" | "{" field_def* "}"
//	            | "enum" "{" ... "}" | "string" | "number" | "bool" | "any"
//	            | IDENT | literal ("|" literal)*
//
//	literal    := STRING | NUMBER | "true" | "false" | "none" | "todo" | "default"
//	            | "[" literal* "]" | "{" (IDENT "=" literal)* "}"
//	            | IDENT "(" literal ")"
//
// # Basic Usage
//
//	stmts, errs := parser.ParseSource("config.cbml", src)
//	if errs.HasErrors() {
//	    fmt.Println(errs)
//	}
//
// # Error Recovery
//
// A syntax error is recorded with code 0014; the parser then skips the
// offending token and everything up to the next newline outside brackets,
// and continues with the following statement. A struct literal that
// assigns the same member twice is reported with code 0010 and the second
// assignment is dropped.
//
// The parser only builds the tree. Scopes are computed by the schema
// resolver and the document validator while walking it.
package parser
