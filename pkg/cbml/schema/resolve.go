package schema

import (
	"fmt"
	"slices"

	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/types"
)

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// namedType is a struct, enum or union declaration and its resolution.
type namedType struct {
	name  string
	kind  string
	stmt  ast.Stmt
	state resolveState
	typ   *types.Type
}

// collector is the first pass: it gathers named types and top-level
// field declarations and rejects statements a schema cannot hold.
type collector struct {
	f      *File
	fields []*ast.FieldDecl
}

func (c *collector) VisitUse(s *ast.UseStmt) error {
	c.f.errors.Add(cbmlErrors.NotAllowedHere(c.f.path, s.Span(), "`use` is not allowed in a schema file"))
	return nil
}

func (c *collector) VisitAssign(s *ast.AssignStmt) error {
	c.f.errors.Add(cbmlErrors.NotAllowedHere(c.f.path, s.Span(), "type definitions cannot be assigned a value here").
		WithHelp("move assignments to a .cbml document"))
	return nil
}

func (c *collector) VisitFieldDef(s *ast.FieldDefStmt) error {
	c.fields = append(c.fields, s.Field)
	return nil
}

func (c *collector) VisitStructDef(s *ast.StructDefStmt) error {
	c.declare(s.Name, "struct", s.NameSpan, s)
	return nil
}

func (c *collector) VisitEnumDef(s *ast.EnumDefStmt) error {
	c.declare(s.Name, "enum", s.NameSpan, s)
	return nil
}

func (c *collector) VisitUnionDef(s *ast.UnionDefStmt) error {
	c.declare(s.Name, "union", s.NameSpan, s)
	return nil
}

func (c *collector) declare(name, kind string, span ast.Span, stmt ast.Stmt) {
	if _, exists := c.f.named[name]; exists {
		c.f.errors.Add(cbmlErrors.DuplicateName(c.f.path, span, "type", name))
		return
	}
	c.f.named[name] = &namedType{name: name, kind: kind, stmt: stmt}
	c.f.namedOrder = append(c.f.namedOrder, name)
}

// resolve runs both passes over the parsed statements.
func (f *File) resolve() {
	c := &collector{f: f}
	_ = ast.Walk(f.stmts, c)

	// Named types are resolved even when unused so their errors surface.
	for _, name := range f.namedOrder {
		f.resolveNamed(name, f.named[name].stmt.Span())
	}

	for _, decl := range c.fields {
		if def := f.declareField(decl, ast.RootScope); def != nil {
			f.topLevel = append(f.topLevel, def.Name)
		}
	}
}

// resolveNamed returns the type declared as name, resolving it on first
// use. A type that refers to itself is reported and resolved as any.
func (f *File) resolveNamed(name string, ref ast.Span) *types.Type {
	nt, ok := f.named[name]
	if !ok {
		err := cbmlErrors.UnknownType(f.path, ref, name)
		if help := cbmlErrors.SuggestName(name, f.namedOrder); help != "" {
			err.WithHelp(help)
		}
		f.errors.Add(err)
		return types.Any
	}

	switch nt.state {
	case resolved:
		return nt.typ
	case resolving:
		f.errors.Add(cbmlErrors.UnknownType(f.path, ref, name).
			WithNote(fmt.Sprintf("recursive type `%s` cannot be represented", name)))
		return types.Any
	}

	nt.state = resolving
	nt.typ = types.Named(name, f.resolveDecl(nt))
	nt.state = resolved
	return nt.typ
}

func (f *File) resolveDecl(nt *namedType) *types.Type {
	scope := TypeScope(nt.name)

	switch s := nt.stmt.(type) {
	case *ast.StructDefStmt:
		return types.Struct(f.declareFields(s.Fields, scope)...)
	case *ast.EnumDefStmt:
		return types.Enum(f.declareVariants(s.Variants, scope)...)
	case *ast.UnionDefStmt:
		base := f.resolveSign(s.Base, scope)
		return types.Union(f.unionValues(base, s.Allowed)...)
	}
	return types.Any
}

// resolveSign resolves a type annotation. Members of an anonymous struct
// or enum are registered in members.
func (f *File) resolveSign(ts *ast.TypeSign, members ast.ScopeID) *types.Type {
	switch ts.Kind {
	case ast.TypeSignString:
		return types.String
	case ast.TypeSignNumber:
		return types.Number
	case ast.TypeSignBoolean:
		return types.Bool
	case ast.TypeSignAny:
		return types.Any
	case ast.TypeSignArray:
		return types.Array(f.resolveSign(ts.Inner, members))
	case ast.TypeSignOptional:
		return types.Optional(f.resolveSign(ts.Inner, members))
	case ast.TypeSignStruct:
		return types.Struct(f.declareFields(ts.Fields, members)...)
	case ast.TypeSignEnum:
		return types.Enum(f.declareVariants(ts.Variants, members)...)
	case ast.TypeSignUnion:
		return types.Union(f.unionValues(nil, ts.Allowed)...)
	case ast.TypeSignCustom:
		return f.resolveNamed(ts.Name, ts.Span)
	}
	return types.Any
}

func (f *File) declareFields(decls []*ast.FieldDecl, scope ast.ScopeID) []types.Field {
	var fields []types.Field
	for _, decl := range decls {
		if def := f.declareField(decl, scope); def != nil {
			fields = append(fields, types.Field{Name: def.Name, Type: def.Type})
		}
	}
	return fields
}

// declareField resolves and registers one field declaration. It returns
// nil when the name is already taken in scope.
func (f *File) declareField(decl *ast.FieldDecl, scope ast.ScopeID) *FieldDef {
	if _, exists := f.Lookup(decl.Name, scope); exists {
		f.errors.Add(cbmlErrors.DuplicateName(f.path, decl.NameSpan, "field", decl.Name))
		return nil
	}

	own := scope.Push(decl.Name)
	def := &FieldDef{
		Name:     decl.Name,
		Type:     f.resolveSign(decl.Type, own),
		Default:  decl.Default,
		Span:     decl.Span,
		NameSpan: decl.NameSpan,
		Scope:    scope,
		Doc:      decl.Doc,
	}
	def.Members, def.HasMembers = f.membersOf(decl.Type, own)
	f.register(def)

	if decl.Default != nil {
		f.checkDefault(def)
	}
	return def
}

func (f *File) declareVariants(variants []*ast.EnumVariant, scope ast.ScopeID) []types.Field {
	var fields []types.Field
	for _, v := range variants {
		if _, exists := f.Lookup(v.Name, scope); exists {
			f.errors.Add(cbmlErrors.DuplicateName(f.path, v.NameSpan, "variant", v.Name))
			continue
		}

		own := scope.Push(v.Name)
		def := &FieldDef{
			Name:     v.Name,
			Type:     f.resolveSign(v.Type, own),
			Span:     v.Span,
			NameSpan: v.NameSpan,
			Scope:    scope,
			Doc:      v.Doc,
		}
		def.Members, def.HasMembers = f.membersOf(v.Type, own)
		f.register(def)

		fields = append(fields, types.Field{Name: def.Name, Type: def.Type})
	}
	return fields
}

func (f *File) register(def *FieldDef) {
	f.fields[keyOf(def.Name, def.Scope)] = def
	f.order = append(f.order, def)
}

// membersOf finds where the members of a field's aggregate type live.
// Arrays and optionals are looked through.
func (f *File) membersOf(ts *ast.TypeSign, own ast.ScopeID) (ast.ScopeID, bool) {
	for ts.Kind == ast.TypeSignArray || ts.Kind == ast.TypeSignOptional {
		ts = ts.Inner
	}

	switch ts.Kind {
	case ast.TypeSignStruct, ast.TypeSignEnum:
		return own, true
	case ast.TypeSignCustom:
		if nt, ok := f.named[ts.Name]; ok && nt.kind != "union" {
			return TypeScope(ts.Name), true
		}
	}
	return ast.RootScope, false
}

// checkDefault type-checks a field's default value.
func (f *File) checkDefault(def *FieldDef) {
	valid := true
	ast.Inspect(def.Default, func(lit *ast.Literal) bool {
		if lit.Kind == ast.LiteralDefault || lit.Kind == ast.LiteralTodo {
			f.errors.Add(cbmlErrors.DefaultOutsideField(f.path, lit.Span, lit.Kind.String()).
				WithNote("a default value must be a concrete literal"))
			valid = false
		}
		return true
	})

	if valid && !types.Match(def.Type, def.Default) {
		f.errors.Add(cbmlErrors.MismatchedTypes(f.path, def.Default.Span, def.Type.String(), def.Default.String()))
	}
}

// unionValues checks union members and converts them to values. A nil
// base accepts every scalar.
func (f *File) unionValues(base *types.Type, allowed []*ast.Literal) []types.Value {
	var values []types.Value
	for _, lit := range allowed {
		if !lit.IsScalar() && lit.Kind != ast.LiteralNone {
			f.errors.Add(cbmlErrors.KindNotAllowedInUnion(f.path, lit.Span, lit.Kind.String()))
			continue
		}
		if base != nil && !types.Match(base, lit) {
			f.errors.Add(cbmlErrors.MismatchedTypes(f.path, lit.Span, base.String(), lit.String()))
			continue
		}

		v := types.FromLiteral(lit)
		if slices.ContainsFunc(values, v.Equal) {
			f.errors.Add(cbmlErrors.DuplicateUnionValue(f.path, lit.Span, v.String()))
			continue
		}
		values = append(values, v)
	}
	return values
}
