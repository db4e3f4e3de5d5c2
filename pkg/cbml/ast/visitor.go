package ast

// Visitor receives the top-level statements of a file in source order.
// Implement this interface to perform operations on statements (schema
// collection, document validation, analysis, etc.).
type Visitor interface {
	VisitUse(*UseStmt) error
	VisitAssign(*AssignStmt) error
	VisitFieldDef(*FieldDefStmt) error
	VisitStructDef(*StructDefStmt) error
	VisitEnumDef(*EnumDefStmt) error
	VisitUnionDef(*UnionDefStmt) error
}

// Walk calls the visitor for each statement. It returns the first error
// encountered, or nil if traversal completes.
func Walk(stmts []Stmt, visitor Visitor) error {
	for _, stmt := range stmts {
		var err error
		switch s := stmt.(type) {
		case *UseStmt:
			err = visitor.VisitUse(s)
		case *AssignStmt:
			err = visitor.VisitAssign(s)
		case *FieldDefStmt:
			err = visitor.VisitFieldDef(s)
		case *StructDefStmt:
			err = visitor.VisitStructDef(s)
		case *EnumDefStmt:
			err = visitor.VisitEnumDef(s)
		case *UnionDefStmt:
			err = visitor.VisitUnionDef(s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Inspect traverses a literal depth-first. It calls fn for the literal and,
// if fn returns true, for each nested literal (array elements, struct field
// values, enum payloads).
func Inspect(lit *Literal, fn func(*Literal) bool) {
	if lit == nil || !fn(lit) {
		return
	}
	switch lit.Kind {
	case LiteralArray:
		for _, e := range lit.Elems {
			Inspect(e, fn)
		}
	case LiteralStruct:
		for _, f := range lit.Fields {
			Inspect(f.Value, fn)
		}
	case LiteralEnumField:
		Inspect(lit.Inner, fn)
	}
}
