package document

import (
	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
)

// walker records assignments and rejects statements that do not belong in
// a document.
type walker struct {
	d *File

	started     bool // a statement has been visited
	use         *ast.UseStmt
	useRejected bool
}

func (w *walker) VisitUse(s *ast.UseStmt) error {
	switch {
	case w.use != nil:
		w.d.stmtErrs.Add(cbmlErrors.UseDeclaredTwice(w.d.path, s.Span()))
		w.useRejected = true
	case w.started:
		w.d.stmtErrs.Add(cbmlErrors.NotAllowedHere(w.d.path, s.Span(), "`use` must be the first statement of the file").
			WithHelp("move this `use` to the top of the file"))
		w.use = s
		w.useRejected = true
	default:
		w.use = s
	}
	w.started = true
	return nil
}

func (w *walker) VisitAssign(s *ast.AssignStmt) error {
	w.d.record(s.Name, s.NameSpan, s.Span(), s.Value, ast.RootScope)
	w.started = true
	return nil
}

func (w *walker) VisitFieldDef(s *ast.FieldDefStmt) error {
	return w.definition(s)
}

func (w *walker) VisitStructDef(s *ast.StructDefStmt) error {
	return w.definition(s)
}

func (w *walker) VisitEnumDef(s *ast.EnumDefStmt) error {
	return w.definition(s)
}

func (w *walker) VisitUnionDef(s *ast.UnionDefStmt) error {
	return w.definition(s)
}

func (w *walker) definition(s ast.Stmt) error {
	w.d.stmtErrs.Add(cbmlErrors.DefinitionInDocument(w.d.path, s.Span()))
	w.started = true
	return nil
}

// record adds an assignment and the assignments nested in its value.
// Struct members live in the scope of the field that holds them, array
// elements add an index segment and enum payloads add the variant name.
func (d *File) record(name string, nameSpan, span ast.Span, value *ast.Literal, scope ast.ScopeID) {
	d.assigns = append(d.assigns, &FieldAssign{
		Name:     name,
		Value:    value,
		Span:     span,
		NameSpan: nameSpan,
		Scope:    scope,
		ID:       len(d.assigns),
	})
	d.recordNested(value, scope.Push(name))
}

func (d *File) recordNested(lit *ast.Literal, scope ast.ScopeID) {
	switch lit.Kind {
	case ast.LiteralStruct:
		for _, f := range lit.Fields {
			d.record(f.Name, f.NameSpan, f.Span, f.Value, scope)
		}
	case ast.LiteralArray:
		for i, e := range lit.Elems {
			d.rejectDefault(e)
			d.recordNested(e, scope.PushIndex(i))
		}
	case ast.LiteralEnumField:
		d.rejectDefault(lit.Inner)
		d.recordNested(lit.Inner, scope.Push(lit.Variant))
	}
}

// rejectDefault reports `default` where no field declaration applies.
func (d *File) rejectDefault(lit *ast.Literal) {
	if lit.Kind == ast.LiteralDefault {
		d.stmtErrs.Add(cbmlErrors.DefaultOutsideField(d.path, lit.Span, "default"))
	}
}
