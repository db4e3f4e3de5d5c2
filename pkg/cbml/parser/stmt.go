package parser

import (
	"cbml-lang/cbml/pkg/cbml/ast"
	"cbml-lang/cbml/pkg/cbml/lexer"
)

// parseStatement dispatches on the first token of a statement.
func (p *Parser) parseStatement() ast.Stmt {
	doc := p.takeDoc()

	switch tok := p.peek(); tok.Kind {
	case lexer.Use:
		return p.parseUse()
	case lexer.Struct:
		return p.parseStructDef(doc)
	case lexer.Enum:
		return p.parseEnumDef(doc)
	case lexer.Union:
		return p.parseUnionDef(doc)
	case lexer.Identifier:
		switch p.peekAt(1).Kind {
		case lexer.Assign:
			return p.parseAssign()
		case lexer.Colon:
			field := p.parseFieldDecl(doc)
			if field == nil {
				return nil
			}
			return &ast.FieldDefStmt{Field: field}
		}
		p.advance()
		p.errorExpected("`=` or `:`")
		return nil
	}

	p.errorExpected("a statement")
	return nil
}

// parseUse parses `use "path"`.
func (p *Parser) parseUse() ast.Stmt {
	kw := p.advance()
	path, ok := p.expect(lexer.String, "a file path string")
	if !ok {
		return nil
	}
	return &ast.UseStmt{
		Path:     path.Text,
		PathSpan: path.Span,
		Sp:       kw.Span.Join(path.Span),
	}
}

// parseAssign parses `name = literal`.
func (p *Parser) parseAssign() ast.Stmt {
	name := p.advance()
	p.advance() // =

	value := p.parseLiteral()
	if value == nil {
		return nil
	}
	return &ast.AssignStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Value:    value,
		Sp:       name.Span.Join(value.Span),
	}
}

// parseFieldDecl parses `name: type (default literal)?`.
func (p *Parser) parseFieldDecl(doc string) *ast.FieldDecl {
	name, ok := p.expect(lexer.Identifier, "a field name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.Colon, "`:`"); !ok {
		return nil
	}

	typ := p.parseTypeSign()
	if typ == nil {
		return nil
	}

	field := &ast.FieldDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Type:     typ,
		Doc:      doc,
		Span:     name.Span.Join(typ.Span),
	}

	if p.at(lexer.Default) {
		p.advance()
		def := p.parseLiteral()
		if def == nil {
			return nil
		}
		field.Default = def
		field.Span = field.Span.Join(def.Span)
	}

	return field
}

// parseStructDef parses `struct Name { field_def* }`.
func (p *Parser) parseStructDef(doc string) ast.Stmt {
	kw := p.advance()
	name, ok := p.expect(lexer.Identifier, "a struct name")
	if !ok {
		return nil
	}

	fields, end, ok := p.parseStructBody()
	if !ok {
		return nil
	}
	return &ast.StructDefStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Fields:   fields,
		Doc:      doc,
		Sp:       kw.Span.Join(end.Span),
	}
}

// parseEnumDef parses `enum Name { variant(type)* }`.
func (p *Parser) parseEnumDef(doc string) ast.Stmt {
	kw := p.advance()
	name, ok := p.expect(lexer.Identifier, "an enum name")
	if !ok {
		return nil
	}

	variants, end, ok := p.parseEnumBody()
	if !ok {
		return nil
	}
	return &ast.EnumDefStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Variants: variants,
		Doc:      doc,
		Sp:       kw.Span.Join(end.Span),
	}
}

// parseUnionDef parses `union (base) Name = v1 | v2 | ...`.
func (p *Parser) parseUnionDef(doc string) ast.Stmt {
	kw := p.advance()
	if _, ok := p.expect(lexer.LParen, "`(`"); !ok {
		return nil
	}
	base := p.parseTypeSign()
	if base == nil {
		return nil
	}
	if _, ok := p.expect(lexer.RParen, "`)`"); !ok {
		return nil
	}

	name, ok := p.expect(lexer.Identifier, "a union name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.Assign, "`=`"); !ok {
		return nil
	}

	allowed := p.parseUnionValues()
	if allowed == nil {
		return nil
	}
	return &ast.UnionDefStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Base:     base,
		Allowed:  allowed,
		Doc:      doc,
		Sp:       kw.Span.Join(allowed[len(allowed)-1].Span),
	}
}

// parseStructBody parses `{ field_def* }` and returns the closing brace.
func (p *Parser) parseStructBody() ([]*ast.FieldDecl, lexer.Token, bool) {
	if _, ok := p.expect(lexer.LBrace, "`{`"); !ok {
		return nil, lexer.Token{}, false
	}

	var fields []*ast.FieldDecl
	end, ok := p.parseSeq(lexer.RBrace, func() bool {
		field := p.parseFieldDecl(p.takeDoc())
		if field == nil {
			return false
		}
		field.Doc = joinDoc(field.Doc, p.trailingDoc())
		fields = append(fields, field)
		return true
	})
	return fields, end, ok
}

// parseEnumBody parses `{ variant(type)* }` and returns the closing brace.
func (p *Parser) parseEnumBody() ([]*ast.EnumVariant, lexer.Token, bool) {
	if _, ok := p.expect(lexer.LBrace, "`{`"); !ok {
		return nil, lexer.Token{}, false
	}

	var variants []*ast.EnumVariant
	end, ok := p.parseSeq(lexer.RBrace, func() bool {
		doc := p.takeDoc()
		name, ok := p.expect(lexer.Identifier, "a variant name")
		if !ok {
			return false
		}
		if _, ok := p.expect(lexer.LParen, "`(`"); !ok {
			return false
		}
		typ := p.parseTypeSign()
		if typ == nil {
			return false
		}
		rparen, ok := p.expect(lexer.RParen, "`)`")
		if !ok {
			return false
		}

		variants = append(variants, &ast.EnumVariant{
			Name:     name.Text,
			NameSpan: name.Span,
			Type:     typ,
			Doc:      joinDoc(doc, p.trailingDoc()),
			Span:     name.Span.Join(rparen.Span),
		})
		return true
	})
	return variants, end, ok
}
