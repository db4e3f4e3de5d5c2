package schema

import (
	"errors"
	"os"
	"strings"

	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/parser"
	"cbml-lang/cbml/pkg/cbml/types"
)

// Extension is the mandatory suffix of schema files.
const Extension = ".def.cbml"

// ErrNotSchemaFile is the cause reported for files without the schema suffix.
var ErrNotSchemaFile = errors.New("schema files must end in " + Extension)

// FieldDef is a declared field, struct member or enum variant.
type FieldDef struct {
	Name     string
	Type     *types.Type
	Default  *ast.Literal // nil when the field declares no default
	Span     ast.Span     // whole declaration
	NameSpan ast.Span
	Scope    ast.ScopeID // scope the field is declared in
	Doc      string

	// Members is the scope holding the members of the field's struct or
	// enum type. It is only meaningful when HasMembers is set.
	Members    ast.ScopeID
	HasMembers bool
}

// File is a resolved schema file: a table of field declarations keyed by
// name and scope, plus the named types declared in it.
type File struct {
	path  string
	src   string
	stmts []ast.Stmt

	fields   map[fieldKey]*FieldDef
	order    []*FieldDef
	topLevel []string

	named      map[string]*namedType
	namedOrder []string

	errors *cbmlErrors.ErrorList
}

type fieldKey struct {
	name  string
	scope string
}

func keyOf(name string, scope ast.ScopeID) fieldKey {
	return fieldKey{name: name, scope: scope.Key()}
}

// ReadFunc reads a file from disk.
type ReadFunc func(path string) ([]byte, error)

// Load reads and resolves the schema file at path. Read failures are
// reported as diagnostics on the returned file.
func Load(path string) *File {
	return LoadWith(path, os.ReadFile)
}

// LoadWith is Load with a custom file reader.
func LoadWith(path string, read ReadFunc) *File {
	if !IsSchemaPath(path) {
		return failed(path, ErrNotSchemaFile)
	}
	data, err := read(path)
	if err != nil {
		return failed(path, err)
	}
	return Parse(path, string(data))
}

// Parse resolves schema source text. path is used for diagnostics and must
// carry the schema suffix.
func Parse(path, src string) *File {
	if !IsSchemaPath(path) {
		return failed(path, ErrNotSchemaFile)
	}

	f := newFile(path)
	f.src = src
	stmts, errs := parser.ParseSource(path, src)
	f.errors.Merge(errs)
	f.stmts = stmts

	f.resolve()
	return f
}

// IsSchemaPath reports whether path names a schema file.
func IsSchemaPath(path string) bool {
	return strings.HasSuffix(path, Extension)
}

func newFile(path string) *File {
	return &File{
		path:   path,
		fields: make(map[fieldKey]*FieldDef),
		named:  make(map[string]*namedType),
		errors: cbmlErrors.NewErrorList(),
	}
}

func failed(path string, cause error) *File {
	f := newFile(path)
	f.errors.Add(cbmlErrors.CannotOpenFile(path, ast.Span{}, path, cause))
	return f
}

// Path returns the schema file path.
func (f *File) Path() string {
	return f.path
}

// Source returns the schema text, or "" when it could not be read.
func (f *File) Source() string {
	return f.src
}

// Statements returns the parsed statements.
func (f *File) Statements() []ast.Stmt {
	return f.stmts
}

// Errors returns every diagnostic of the schema file.
func (f *File) Errors() *cbmlErrors.ErrorList {
	return f.errors
}

// HasErrors reports whether the schema has any diagnostic.
func (f *File) HasErrors() bool {
	return f.errors.HasErrors()
}

// Lookup returns the field declared as name in scope.
func (f *File) Lookup(name string, scope ast.ScopeID) (*FieldDef, bool) {
	def, ok := f.fields[keyOf(name, scope)]
	return def, ok
}

// TopLevelFields returns the names of the root fields in declaration order.
func (f *File) TopLevelFields() []string {
	return append([]string(nil), f.topLevel...)
}

// Fields returns every field declaration in registration order.
func (f *File) Fields() []*FieldDef {
	return append([]*FieldDef(nil), f.order...)
}

// FieldsIn returns the fields declared directly in scope.
func (f *File) FieldsIn(scope ast.ScopeID) []*FieldDef {
	var out []*FieldDef
	for _, def := range f.order {
		if def.Scope.Equal(scope) {
			out = append(out, def)
		}
	}
	return out
}

// Type returns the named struct, enum or union type called name.
func (f *File) Type(name string) (*types.Type, bool) {
	nt, ok := f.named[name]
	if !ok || nt.typ == nil {
		return nil, false
	}
	return nt.typ, true
}

// TypeNames returns the declared type names in declaration order.
func (f *File) TypeNames() []string {
	return append([]string(nil), f.namedOrder...)
}

// TypeScope is the scope holding the members of the named type name.
func TypeScope(name string) ast.ScopeID {
	return ast.NewScope("<" + name + ">")
}

// ResolveStatus is the outcome of Resolve.
type ResolveStatus uint8

const (
	// Found means a declaration exists for the assignment.
	Found ResolveStatus = iota + 1
	// NotFound means the enclosing type is a known struct or enum without
	// such a member.
	NotFound
	// Opaque means the enclosing type does not declare members (any,
	// scalars, unions, unknown parents), so nothing can be said.
	Opaque
)

// Resolution is the result of resolving an assignment path.
type Resolution struct {
	Status ResolveStatus
	Field  *FieldDef   // set when Status is Found
	Scope  ast.ScopeID // the member scope that was searched
}

// Resolve finds the declaration for an assignment to name inside the
// document scope. Document scopes are chains of field names, enum variant
// names and array index segments; each is followed through the Members
// links of the schema.
func (f *File) Resolve(scope ast.ScopeID, name string) Resolution {
	members := ast.RootScope
	var owner *FieldDef

	for _, seg := range scope.Segments() {
		if ast.IsIndexSegment(seg) {
			if owner == nil || !hasElements(owner.Type) {
				return Resolution{Status: Opaque}
			}
			continue
		}
		if owner != nil {
			if !owner.HasMembers {
				return Resolution{Status: Opaque}
			}
			members = owner.Members
		}
		def, ok := f.Lookup(seg, members)
		if !ok {
			return Resolution{Status: Opaque}
		}
		owner = def
	}

	if owner != nil {
		if !owner.HasMembers {
			return Resolution{Status: Opaque}
		}
		members = owner.Members
	}
	if def, ok := f.Lookup(name, members); ok {
		return Resolution{Status: Found, Field: def, Scope: members}
	}
	return Resolution{Status: NotFound, Scope: members}
}

// hasElements reports whether t is an array, possibly optional or any.
func hasElements(t *types.Type) bool {
	for t != nil {
		switch t.Kind {
		case types.KindArray, types.KindAny:
			return true
		case types.KindOptional:
			t = t.Inner
		default:
			return false
		}
	}
	return false
}
