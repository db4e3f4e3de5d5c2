package parser

import (
	"cbml-lang/cbml/pkg/cbml/ast"
	"cbml-lang/cbml/pkg/cbml/lexer"
)

var simpleTypes = map[lexer.Kind]ast.TypeSignKind{
	lexer.StringType: ast.TypeSignString,
	lexer.NumberType: ast.TypeSignNumber,
	lexer.BoolType:   ast.TypeSignBoolean,
	lexer.Any:        ast.TypeSignAny,
}

// parseTypeSign parses a type annotation.
func (p *Parser) parseTypeSign() *ast.TypeSign {
	tok := p.peek()

	if kind, ok := simpleTypes[tok.Kind]; ok {
		p.advance()
		return &ast.TypeSign{Kind: kind, Span: tok.Span}
	}

	switch tok.Kind {
	case lexer.Question:
		p.advance()
		inner := p.parseTypeSign()
		if inner == nil {
			return nil
		}
		return &ast.TypeSign{Kind: ast.TypeSignOptional, Span: tok.Span.Join(inner.Span), Inner: inner}

	case lexer.LBracket:
		p.advance()
		inner := p.parseTypeSign()
		if inner == nil {
			return nil
		}
		end, ok := p.expect(lexer.RBracket, "`]`")
		if !ok {
			return nil
		}
		return &ast.TypeSign{Kind: ast.TypeSignArray, Span: tok.Span.Join(end.Span), Inner: inner}

	case lexer.LBrace:
		fields, end, ok := p.parseStructBody()
		if !ok {
			return nil
		}
		return &ast.TypeSign{Kind: ast.TypeSignStruct, Span: tok.Span.Join(end.Span), Fields: fields}

	case lexer.Enum:
		p.advance()
		variants, end, ok := p.parseEnumBody()
		if !ok {
			return nil
		}
		return &ast.TypeSign{Kind: ast.TypeSignEnum, Span: tok.Span.Join(end.Span), Variants: variants}

	case lexer.Identifier:
		p.advance()
		return &ast.TypeSign{Kind: ast.TypeSignCustom, Span: tok.Span, Name: tok.Text}

	case lexer.String, lexer.Number, lexer.True, lexer.False, lexer.None:
		allowed := p.parseUnionValues()
		if allowed == nil {
			return nil
		}
		return &ast.TypeSign{
			Kind:    ast.TypeSignUnion,
			Span:    allowed[0].Span.Join(allowed[len(allowed)-1].Span),
			Allowed: allowed,
		}
	}

	p.errorExpected("a type")
	return nil
}

// parseUnionValues parses `v1 | v2 | ...`. A line may end after `|`.
// Members are parsed as general literals; the schema resolver rejects the
// kinds a union cannot hold.
func (p *Parser) parseUnionValues() []*ast.Literal {
	first := p.parseLiteral()
	if first == nil {
		return nil
	}
	values := []*ast.Literal{first}

	for p.at(lexer.Pipe) {
		p.advance()
		for p.at(lexer.NewLine) {
			p.advance()
		}
		v := p.parseLiteral()
		if v == nil {
			return nil
		}
		values = append(values, v)
	}
	return values
}
