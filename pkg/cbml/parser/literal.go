package parser

import (
	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/lexer"
)

var keywordLiterals = map[lexer.Kind]ast.LiteralKind{
	lexer.None:    ast.LiteralNone,
	lexer.Todo:    ast.LiteralTodo,
	lexer.Default: ast.LiteralDefault,
}

// parseLiteral parses a value.
func (p *Parser) parseLiteral() *ast.Literal {
	tok := p.peek()

	if kind, ok := keywordLiterals[tok.Kind]; ok {
		p.advance()
		return &ast.Literal{Kind: kind, Span: tok.Span}
	}

	switch tok.Kind {
	case lexer.String:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralString, Span: tok.Span, Str: tok.Text}
	case lexer.Number:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralNumber, Span: tok.Span, Num: tok.Number}
	case lexer.True, lexer.False:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralBoolean, Span: tok.Span, Bool: tok.Kind == lexer.True}
	case lexer.LBracket:
		return p.parseArrayLiteral()
	case lexer.LBrace:
		return p.parseStructLiteral()
	case lexer.Identifier:
		if p.peekAt(1).Is(lexer.LParen) {
			return p.parseEnumFieldLiteral()
		}
	}

	p.errorExpected("a value")
	return nil
}

// parseArrayLiteral parses `[v1, v2, ...]`.
func (p *Parser) parseArrayLiteral() *ast.Literal {
	start := p.advance()

	lit := &ast.Literal{Kind: ast.LiteralArray}
	end, ok := p.parseSeq(lexer.RBracket, func() bool {
		elem := p.parseLiteral()
		if elem == nil {
			return false
		}
		lit.Elems = append(lit.Elems, elem)
		return true
	})
	if !ok {
		return nil
	}

	lit.Span = start.Span.Join(end.Span)
	return lit
}

// parseStructLiteral parses `{ k = v, ... }`. A member assigned twice is
// reported and the later assignment dropped.
func (p *Parser) parseStructLiteral() *ast.Literal {
	start := p.advance()

	lit := &ast.Literal{Kind: ast.LiteralStruct}
	end, ok := p.parseSeq(lexer.RBrace, func() bool {
		name, ok := p.expect(lexer.Identifier, "a field name")
		if !ok {
			return false
		}
		if _, ok := p.expect(lexer.Assign, "`=`"); !ok {
			return false
		}
		value := p.parseLiteral()
		if value == nil {
			return false
		}

		if _, dup := lit.Field(name.Text); dup {
			p.errors.Add(cbmlErrors.FieldAlreadyAssigned(p.file, name.Span, name.Text))
			return true
		}
		lit.Fields = append(lit.Fields, &ast.StructField{
			Name:     name.Text,
			NameSpan: name.Span,
			Value:    value,
			Span:     name.Span.Join(value.Span),
		})
		return true
	})
	if !ok {
		return nil
	}

	lit.Span = start.Span.Join(end.Span)
	return lit
}

// parseEnumFieldLiteral parses `Variant(value)`.
func (p *Parser) parseEnumFieldLiteral() *ast.Literal {
	name := p.advance()
	p.advance() // (

	p.skipNewlines()
	inner := p.parseLiteral()
	if inner == nil {
		return nil
	}
	p.skipNewlines()

	end, ok := p.expect(lexer.RParen, "`)`")
	if !ok {
		return nil
	}
	return &ast.Literal{
		Kind:    ast.LiteralEnumField,
		Span:    name.Span.Join(end.Span),
		Variant: name.Text,
		Inner:   inner,
	}
}
