package lexer

import (
	"fmt"

	"cbml-lang/cbml/pkg/cbml/ast"
)

// Kind identifies a token type.
type Kind uint

const (
	EOF Kind = iota + 1
	Invalid

	// Literals and names
	String
	Number
	Identifier

	// Punctuation
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Pipe      // |
	Question  // ?
	Assign    // =
	NewLine   // \n

	// Keywords
	True
	False
	None
	Any
	Struct
	Union
	Todo
	Use
	Default
	Enum
	StringType
	NumberType
	BoolType

	// Comments
	LineComment
	BlockComment
	DocComment
)

var kindNames = map[Kind]string{
	EOF:          "end of file",
	Invalid:      "invalid character",
	String:       "string",
	Number:       "number",
	Identifier:   "identifier",
	LParen:       "`(`",
	RParen:       "`)`",
	LBracket:     "`[`",
	RBracket:     "`]`",
	LBrace:       "`{`",
	RBrace:       "`}`",
	Comma:        "`,`",
	Colon:        "`:`",
	Pipe:         "`|`",
	Question:     "`?`",
	Assign:       "`=`",
	NewLine:      "newline",
	True:         "`true`",
	False:        "`false`",
	None:         "`none`",
	Any:          "`any`",
	Struct:       "`struct`",
	Union:        "`union`",
	Todo:         "`todo`",
	Use:          "`use`",
	Default:      "`default`",
	Enum:         "`enum`",
	StringType:   "`string`",
	NumberType:   "`number`",
	BoolType:     "`bool`",
	LineComment:  "comment",
	BlockComment: "block comment",
	DocComment:   "doc comment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint(k))
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"true":    True,
	"false":   False,
	"none":    None,
	"any":     Any,
	"struct":  Struct,
	"union":   Union,
	"todo":    Todo,
	"use":     Use,
	"default": Default,
	"enum":    Enum,
	"string":  StringType,
	"number":  NumberType,
	"bool":    BoolType,
}

// LookupKeyword returns the keyword kind for ident, or Identifier.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}

var punctuation = map[rune]Kind{
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
	',': Comma,
	':': Colon,
	'|': Pipe,
	'?': Question,
	'=': Assign,
}

// Token is a lexical unit with its source span.
//
// Text holds the identifier name, the decoded string value, the comment
// body, or the offending character of an Invalid token. Number holds the
// value of Number tokens.
type Token struct {
	Kind   Kind
	Text   string
	Number float64
	Span   ast.Span
}

// Is reports whether the token has the given kind. Payloads are ignored.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// IsComment reports whether the token is any kind of comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment || t.Kind == DocComment
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("identifier `%s`", t.Text)
	case String:
		return fmt.Sprintf("string %s", ast.QuoteString(t.Text))
	case Number:
		return fmt.Sprintf("number `%s`", ast.FormatNumber(t.Number))
	case Invalid:
		return fmt.Sprintf("invalid character %q", t.Text)
	}
	return t.Kind.String()
}
