package ast

// Stmt is a top-level statement of a CBML file.
type Stmt interface {
	// Span returns the source range of the whole statement.
	Span() Span
	stmtNode()
}

// UseStmt imports a schema file: `use "path"`.
type UseStmt struct {
	Path     string
	PathSpan Span
	Sp       Span
}

// AssignStmt assigns a value to a field: `name = literal`.
type AssignStmt struct {
	Name     string
	NameSpan Span
	Value    *Literal
	Sp       Span
}

// FieldDefStmt declares a top-level field: `name: type (default literal)?`.
type FieldDefStmt struct {
	Field *FieldDecl
}

// StructDefStmt declares a named struct type.
type StructDefStmt struct {
	Name     string
	NameSpan Span
	Fields   []*FieldDecl
	Doc      string
	Sp       Span
}

// EnumDefStmt declares a named enum type.
type EnumDefStmt struct {
	Name     string
	NameSpan Span
	Variants []*EnumVariant
	Doc      string
	Sp       Span
}

// UnionDefStmt declares a named union: `union (base) Name = v1 | v2 | ...`.
type UnionDefStmt struct {
	Name     string
	NameSpan Span
	Base     *TypeSign
	Allowed  []*Literal
	Doc      string
	Sp       Span
}

func (s *UseStmt) Span() Span       { return s.Sp }
func (s *AssignStmt) Span() Span    { return s.Sp }
func (s *FieldDefStmt) Span() Span  { return s.Field.Span }
func (s *StructDefStmt) Span() Span { return s.Sp }
func (s *EnumDefStmt) Span() Span   { return s.Sp }
func (s *UnionDefStmt) Span() Span  { return s.Sp }

func (*UseStmt) stmtNode()       {}
func (*AssignStmt) stmtNode()    {}
func (*FieldDefStmt) stmtNode()  {}
func (*StructDefStmt) stmtNode() {}
func (*EnumDefStmt) stmtNode()   {}
func (*UnionDefStmt) stmtNode()  {}
