package cbml

import (
	"path/filepath"
	"strings"

	"cbml-lang/cbml/pkg/cbml/document"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cbml/schema"
	"cbml-lang/cbml/pkg/cbml/types"
)

// Extension is the suffix of CBML documents. Schema files end in
// schema.Extension.
const Extension = ".cbml"

// FileKind distinguishes documents from schema files.
type FileKind string

const (
	KindDocument FileKind = "document"
	KindSchema   FileKind = "schema"
)

// Result is the outcome of checking one file.
type Result struct {
	Path     string
	Kind     FileKind
	Document *document.File // set for documents
	Schema   *schema.File   // the file itself for schemas, the import for documents
	Errors   *cbmlErrors.ErrorList
}

// OK reports whether the file has no diagnostics.
func (r *Result) OK() bool {
	return !r.Errors.HasErrors()
}

// Source returns the text of the checked file.
func (r *Result) Source() string {
	switch {
	case r.Document != nil:
		return r.Document.Source()
	case r.Schema != nil:
		return r.Schema.Source()
	}
	return ""
}

// SourceOf returns the text of path if it is the checked file or its
// imported schema.
func (r *Result) SourceOf(path string) (string, bool) {
	if path == r.Path {
		return r.Source(), true
	}
	if r.Schema != nil && path == r.Schema.Path() {
		return r.Schema.Source(), true
	}
	return "", false
}

// IsCBMLPath reports whether path names a CBML document or schema.
func IsCBMLPath(path string) bool {
	return strings.HasSuffix(path, Extension)
}

// KindOf returns the kind of file path names by its suffix.
func KindOf(path string) FileKind {
	if schema.IsSchemaPath(path) {
		return KindSchema
	}
	return KindDocument
}

// Check validates a document or schema file, chosen by its suffix.
func Check(path string, opts document.Options) *Result {
	if KindOf(path) == KindSchema {
		var f *schema.File
		if opts.ReadFile != nil {
			f = schema.LoadWith(path, opts.ReadFile)
		} else {
			f = schema.Load(path)
		}
		return &Result{Path: path, Kind: KindSchema, Schema: f, Errors: f.Errors()}
	}

	d := document.Load(path, opts)
	return &Result{Path: path, Kind: KindDocument, Document: d, Schema: d.Schema(), Errors: d.Errors()}
}

// LoadSchema loads a schema file and returns its diagnostics as an error.
func LoadSchema(path string) (*schema.File, error) {
	f := schema.Load(path)
	return f, f.Errors().ToError()
}

// LoadDocument loads a document, resolving relative imports against its
// directory, and returns its diagnostics as an error.
func LoadDocument(path string) (*document.File, error) {
	d := document.Load(path, document.Options{BaseDir: filepath.Dir(path)})
	return d, d.Errors().ToError()
}

// Decode loads a document and returns its value tree.
func Decode(path string) (types.Value, error) {
	d, err := LoadDocument(path)
	if err != nil {
		return types.Value{}, err
	}
	return d.ToValue(), nil
}
