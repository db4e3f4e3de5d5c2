package document

import (
	"slices"

	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/schema"
	"cbml-lang/cbml/pkg/cbml/types"
)

// check runs the duplicate, unassigned and type checks. Nothing runs when
// the import failed or the schema has errors; without any import only the
// duplicate check applies.
func (d *File) check() {
	if d.importErrs.HasErrors() {
		return
	}

	d.checkDuplicates()

	if d.schema == nil {
		for _, a := range d.assigns {
			if a.Value.Kind == ast.LiteralDefault {
				d.checkErrs.Add(cbmlErrors.DefaultOutsideField(d.path, a.Value.Span, "default").
					WithNote("the document has no schema to take a default value from"))
			}
		}
		return
	}

	d.checkUnassigned()
	d.checkTypes()
}

// checkDuplicates reports every assignment after the first to the same
// name in the same scope.
func (d *File) checkDuplicates() {
	type key struct{ name, scope string }
	seen := make(map[key]bool, len(d.assigns))

	for _, a := range d.assigns {
		k := key{a.Name, a.Scope.Key()}
		if seen[k] {
			d.checkErrs.Add(cbmlErrors.DuplicateAssignment(d.path, a.NameSpan, a.Name))
			continue
		}
		seen[k] = true
	}
}

// checkUnassigned reports the schema's top-level fields that the document
// never assigns, in one diagnostic at the end of the file.
func (d *File) checkUnassigned() {
	var missing []string
	for _, name := range d.schema.TopLevelFields() {
		if _, ok := d.Assignment(name, ast.RootScope); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		d.checkErrs.Add(cbmlErrors.UnassignedFields(d.path, eofSpan(d.src), missing))
	}
}

// checkTypes looks up every assignment in the schema. Root assignments are
// matched structurally against their declared type; nested ones are only
// checked for existence, since a mismatch below the root is already part
// of the root's mismatch. A root literal whose only fault is a member
// reported as unknown gets no mismatch of its own.
func (d *File) checkTypes() {
	resolved := make([]schema.Resolution, len(d.assigns))
	unknownUnder := make(map[string]bool)
	for i, a := range d.assigns {
		resolved[i] = d.schema.Resolve(a.Scope, a.Name)
		if resolved[i].Status == schema.NotFound && !a.Scope.IsRoot() {
			unknownUnder[a.Scope.Segments()[0]] = true
		}
	}

	for i, a := range d.assigns {
		res := resolved[i]

		switch res.Status {
		case schema.NotFound:
			err := cbmlErrors.UnknownField(d.path, a.NameSpan, a.Name)
			if help := cbmlErrors.SuggestFieldName(a.Name, d.memberNames(res.Scope)); help != "" {
				err.WithHelp(help)
			}
			d.checkErrs.Add(err)

		case schema.Found:
			d.checkAssign(a, res.Field, unknownUnder[a.Name])

		case schema.Opaque:
			if a.Value.Kind == ast.LiteralDefault {
				d.checkErrs.Add(cbmlErrors.DefaultOutsideField(d.path, a.Value.Span, "default"))
			}
		}
	}
}

func (d *File) checkAssign(a *FieldAssign, def *schema.FieldDef, hasUnknown bool) {
	if a.Value.Kind == ast.LiteralDefault {
		if def.Default == nil {
			d.checkErrs.Add(cbmlErrors.NoDefaultValue(d.path, a.Value.Span, a.Name))
			return
		}
		d.defaults[a.Value] = types.FromLiteral(def.Default)
		return
	}

	if !a.Scope.IsRoot() || types.Match(def.Type, a.Value) {
		return
	}
	if hasUnknown && types.MatchKnown(def.Type, a.Value) {
		return
	}
	d.checkErrs.Add(cbmlErrors.MismatchedTypes(d.path, a.Value.Span, def.Type.String(), a.Value.String()))
}

func (d *File) memberNames(scope ast.ScopeID) []string {
	var names []string
	for _, def := range d.schema.FieldsIn(scope) {
		names = append(names, def.Name)
	}
	slices.Sort(names)
	return names
}
