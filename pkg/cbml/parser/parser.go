package parser

import (
	"strings"

	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/lexer"
)

// Parser builds statements from a token stream using recursive descent.
// It records every syntax error and resynchronises at the next line.
type Parser struct {
	file   string
	tokens []lexer.Token
	pos    int

	// nesting counts the brackets opened and not yet closed. Recovery uses
	// it to find the end of a multi-line statement.
	nesting int

	// doc collects `///` comments until a declaration claims them.
	doc []string

	errors *cbmlErrors.ErrorList
}

// New creates a parser over tokens produced by the lexer. Line and block
// comments are dropped; doc comments are kept for attachment.
func New(file string, tokens []lexer.Token) *Parser {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == lexer.LineComment || tok.Kind == lexer.BlockComment {
			continue
		}
		filtered = append(filtered, tok)
	}
	if len(filtered) == 0 || filtered[len(filtered)-1].Kind != lexer.EOF {
		var end ast.Position
		if len(filtered) > 0 {
			end = filtered[len(filtered)-1].Span.End
		}
		filtered = append(filtered, lexer.Token{Kind: lexer.EOF, Span: ast.NewSpan(end, end)})
	}

	return &Parser{
		file:   file,
		tokens: filtered,
		errors: cbmlErrors.NewErrorList(),
	}
}

// Parse parses tokens into top-level statements.
func Parse(file string, tokens []lexer.Token) ([]ast.Stmt, *cbmlErrors.ErrorList) {
	return New(file, tokens).Parse()
}

// ParseSource lexes and parses src. When lexing fails no statements are
// returned, only the lexical errors.
func ParseSource(file, src string) ([]ast.Stmt, *cbmlErrors.ErrorList) {
	tokens, errs := lexer.Tokenize(file, src)
	if errs.HasErrors() {
		return nil, errs
	}
	return Parse(file, tokens)
}

// Parse runs the parser to the end of the token stream.
func (p *Parser) Parse() ([]ast.Stmt, *cbmlErrors.ErrorList) {
	var stmts []ast.Stmt

	for {
		p.skipNewlines()
		if p.at(lexer.EOF) {
			break
		}

		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
		attachDoc(stmt, p.trailingDoc())

		if !p.expectLineEnd() {
			p.synchronize()
		}
	}

	return stmts, p.errors
}

// Errors returns the syntax errors recorded so far.
func (p *Parser) Errors() *cbmlErrors.ErrorList {
	return p.errors
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) at(kind lexer.Kind) bool {
	return p.peek().Is(kind)
}

// advance consumes the current token. EOF is never consumed.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Kind == lexer.EOF {
		return tok
	}
	p.pos++

	switch tok.Kind {
	case lexer.LParen, lexer.LBracket, lexer.LBrace:
		p.nesting++
	case lexer.RParen, lexer.RBracket, lexer.RBrace:
		if p.nesting > 0 {
			p.nesting--
		}
	}
	return tok
}

// expect consumes a token of the given kind or records an error.
func (p *Parser) expect(kind lexer.Kind, expected string) (lexer.Token, bool) {
	if !p.at(kind) {
		p.errorExpected(expected)
		return p.peek(), false
	}
	return p.advance(), true
}

// skipNewlines skips blank lines and collects doc comments.
func (p *Parser) skipNewlines() {
	for {
		switch tok := p.peek(); tok.Kind {
		case lexer.NewLine:
			p.advance()
		case lexer.DocComment:
			p.doc = append(p.doc, tok.Text)
			p.advance()
		default:
			return
		}
	}
}

// takeDoc returns the pending doc comment and clears it.
func (p *Parser) takeDoc() string {
	doc := strings.Join(p.doc, "\n")
	p.doc = p.doc[:0]
	return doc
}

// trailingDoc consumes a doc comment closing the current line, as in
// `port: number /// listen port`.
func (p *Parser) trailingDoc() string {
	if !p.at(lexer.DocComment) {
		return ""
	}
	return p.advance().Text
}

// joinDoc appends a trailing doc comment to a leading one.
func joinDoc(leading, trailing string) string {
	switch {
	case trailing == "":
		return leading
	case leading == "":
		return trailing
	}
	return leading + "\n" + trailing
}

func attachDoc(stmt ast.Stmt, doc string) {
	if doc == "" {
		return
	}
	switch s := stmt.(type) {
	case *ast.FieldDefStmt:
		s.Field.Doc = joinDoc(s.Field.Doc, doc)
	case *ast.StructDefStmt:
		s.Doc = joinDoc(s.Doc, doc)
	case *ast.EnumDefStmt:
		s.Doc = joinDoc(s.Doc, doc)
	case *ast.UnionDefStmt:
		s.Doc = joinDoc(s.Doc, doc)
	}
}

// expectLineEnd checks that a statement is followed by a newline or the
// end of the file.
func (p *Parser) expectLineEnd() bool {
	switch p.peek().Kind {
	case lexer.NewLine, lexer.EOF, lexer.DocComment:
		return true
	}
	p.errorExpected("newline")
	return false
}

// synchronize skips the offending token and everything up to the next
// newline that is not inside brackets.
func (p *Parser) synchronize() {
	for {
		tok := p.peek()
		if tok.Kind == lexer.EOF {
			break
		}
		if tok.Kind == lexer.NewLine && p.nesting == 0 {
			break
		}
		p.advance()
	}
	p.nesting = 0
	p.doc = p.doc[:0]
}

func (p *Parser) errorExpected(expected string) {
	tok := p.peek()
	p.errors.Add(cbmlErrors.UnrecognizedToken(p.file, tok.Span, tok.String(), expected))
}

// parseSeq parses items separated by commas or newlines up to the closing
// token, which it consumes and returns. Blank lines and a trailing comma
// are allowed.
func (p *Parser) parseSeq(closing lexer.Kind, item func() bool) (lexer.Token, bool) {
	for {
		p.skipNewlines()
		if p.at(closing) {
			return p.advance(), true
		}
		if !item() {
			return lexer.Token{}, false
		}

		switch p.peek().Kind {
		case lexer.Comma:
			p.advance()
		case lexer.NewLine, lexer.DocComment, closing:
		default:
			p.errorExpected("`,` or " + closing.String())
			return lexer.Token{}, false
		}
	}
}
