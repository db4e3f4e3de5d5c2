package document

import (
	"errors"
	"os"
	"path/filepath"

	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/parser"
	"cbml-lang/cbml/pkg/cbml/schema"
	"cbml-lang/cbml/pkg/cbml/types"
)

// ErrSchemaAsDocument is reported when a schema file is opened as a document.
var ErrSchemaAsDocument = errors.New("schema files are checked on their own, not as documents")

// ErrImportCycle is reported when a document imports itself.
var ErrImportCycle = errors.New("import cycle")

// FieldAssign is one assignment, at the root or inside a struct, array or
// enum field literal.
type FieldAssign struct {
	Name     string
	Value    *ast.Literal
	Span     ast.Span // name through value
	NameSpan ast.Span
	Scope    ast.ScopeID
	ID       int // increases in source order, unique per document
}

// Options configures document loading.
type Options struct {
	// BaseDir resolves relative `use` paths. Empty means the working
	// directory.
	BaseDir string

	// ReadFile reads documents and schemas. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

func (o Options) read(path string) ([]byte, error) {
	if o.ReadFile != nil {
		return o.ReadFile(path)
	}
	return os.ReadFile(path)
}

// File is a validated document.
type File struct {
	path  string
	src   string
	stmts []ast.Stmt

	use        *ast.UseStmt
	schema     *schema.File
	schemaPath string

	assigns  []*FieldAssign
	defaults map[*ast.Literal]types.Value

	parseErrs  *cbmlErrors.ErrorList // lexical and syntax
	stmtErrs   *cbmlErrors.ErrorList // statement placement
	importErrs *cbmlErrors.ErrorList
	checkErrs  *cbmlErrors.ErrorList
}

// Load reads and validates the document at path.
func Load(path string, opts Options) *File {
	data, err := opts.read(path)
	if err != nil {
		d := newFile(path, "")
		d.parseErrs.Add(cbmlErrors.CannotOpenFile(path, ast.Span{}, path, err))
		return d
	}
	return Parse(path, string(data), opts)
}

// Parse validates document source text.
//
// The document is parsed, its statements are walked, the schema named by
// `use` is loaded, and, if the schema itself is free of errors, every
// assignment is checked against it.
func Parse(path, src string, opts Options) *File {
	d := newFile(path, src)

	if schema.IsSchemaPath(path) {
		d.parseErrs.Add(cbmlErrors.CannotOpenFile(path, ast.Span{}, path, ErrSchemaAsDocument))
		return d
	}

	stmts, errs := parser.ParseSource(path, src)
	d.parseErrs.Merge(errs)
	d.stmts = stmts

	w := &walker{d: d}
	_ = ast.Walk(stmts, w)

	if w.use != nil && !w.useRejected {
		d.loadSchema(w.use, opts)
	}

	d.check()
	return d
}

func newFile(path, src string) *File {
	return &File{
		path:       path,
		src:        src,
		defaults:   make(map[*ast.Literal]types.Value),
		parseErrs:  cbmlErrors.NewErrorList(),
		stmtErrs:   cbmlErrors.NewErrorList(),
		importErrs: cbmlErrors.NewErrorList(),
		checkErrs:  cbmlErrors.NewErrorList(),
	}
}

// loadSchema resolves the imported schema file.
func (d *File) loadSchema(use *ast.UseStmt, opts Options) {
	path := use.Path
	if !filepath.IsAbs(path) && opts.BaseDir != "" {
		path = filepath.Join(opts.BaseDir, path)
	}
	d.use = use
	d.schemaPath = path

	if sameFile(path, d.path) {
		d.importErrs.Add(cbmlErrors.CannotOpenFile(d.path, use.PathSpan, use.Path, ErrImportCycle).
			WithNote("a document cannot import itself"))
		return
	}
	if !schema.IsSchemaPath(path) {
		d.importErrs.Add(cbmlErrors.CannotOpenFile(d.path, use.PathSpan, use.Path, schema.ErrNotSchemaFile))
		return
	}

	data, err := opts.read(path)
	if err != nil {
		d.importErrs.Add(cbmlErrors.CannotOpenFile(d.path, use.PathSpan, use.Path, err))
		return
	}

	d.schema = schema.Parse(path, string(data))
	if d.schema.HasErrors() {
		d.importErrs.Add(cbmlErrors.SchemaHasErrors(d.path, use.Span(), path, d.schema.Errors().Count()))
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Path returns the document path.
func (d *File) Path() string {
	return d.path
}

// Source returns the document text.
func (d *File) Source() string {
	return d.src
}

// Statements returns the parsed statements.
func (d *File) Statements() []ast.Stmt {
	return d.stmts
}

// Schema returns the imported schema, or nil when there is none or it
// could not be read. A schema with errors is still returned.
func (d *File) Schema() *schema.File {
	return d.schema
}

// SchemaPath returns the resolved path of the imported schema.
func (d *File) SchemaPath() string {
	return d.schemaPath
}

// Assignments returns every recorded assignment in source order.
func (d *File) Assignments() []*FieldAssign {
	return append([]*FieldAssign(nil), d.assigns...)
}

// Assignment returns the first assignment to name in scope.
func (d *File) Assignment(name string, scope ast.ScopeID) (*FieldAssign, bool) {
	for _, a := range d.assigns {
		if a.Name == name && a.Scope.Equal(scope) {
			return a, true
		}
	}
	return nil, false
}

// Errors returns all diagnostics: lexical and syntax errors first, then
// statement placement, import and check errors.
func (d *File) Errors() *cbmlErrors.ErrorList {
	all := cbmlErrors.NewErrorList()
	all.Merge(d.parseErrs)
	all.Merge(d.stmtErrs)
	all.Merge(d.importErrs)
	all.Merge(d.checkErrs)
	return all
}

// HasErrors reports whether the document has any diagnostic.
func (d *File) HasErrors() bool {
	return d.parseErrs.HasErrors() || d.stmtErrs.HasErrors() ||
		d.importErrs.HasErrors() || d.checkErrs.HasErrors()
}

// ToValue converts the root assignments into a struct value. Later
// assignments to an already assigned name are ignored, `default` takes the
// schema's default value and `todo` becomes none.
func (d *File) ToValue() types.Value {
	fields := make(map[string]types.Value)
	for _, a := range d.assigns {
		if !a.Scope.IsRoot() {
			continue
		}
		if _, dup := fields[a.Name]; dup {
			continue
		}
		fields[a.Name] = types.FromLiteralFunc(a.Value, d.defaultFor)
	}
	return types.StructValue(fields)
}

func (d *File) defaultFor(lit *ast.Literal) (types.Value, bool) {
	v, ok := d.defaults[lit]
	return v, ok
}

// eofSpan is the empty span at the start of the last line.
func eofSpan(src string) ast.Span {
	var pos ast.Position
	var offset uint
	for _, r := range src {
		offset++
		if r == '\n' {
			pos.Line++
			pos.Offset = offset
		}
	}
	return ast.NewSpan(pos, pos)
}
