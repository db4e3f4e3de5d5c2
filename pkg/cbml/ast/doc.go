// Package ast provides the syntax tree of CBML documents and schema files.
//
// The tree is produced once per parse by package parser and is read-only
// afterwards. Every node carries a Span so that diagnostics can point at
// the exact source range.
//
// # Core Types
//
// Stmt: top-level statement (UseStmt, AssignStmt, FieldDefStmt,
// StructDefStmt, EnumDefStmt, UnionDefStmt)
//
// Literal: value expression (string, number, bool, array, struct, enum
// field, none, todo, default)
//
// TypeSign: type annotation as written in a schema file
//
// ScopeID: chain of enclosing field/struct/enum names that qualifies a
// declaration or assignment
//
// Position, Span: zero-based source locations
//
// # Traversal
//
// Walk dispatches statements to a Visitor; Inspect visits nested literals:
//
//	ast.Inspect(assign.Value, func(l *ast.Literal) bool {
//	    if l.Kind == ast.LiteralDefault {
//	        fmt.Println("default at", l.Span)
//	    }
//	    return true
//	})
package ast
