// Package cbml is the entry point of the CBML toolchain: a statically
// typed configuration language with companion schema files.
//
// A schema (`*.def.cbml`) declares fields and types:
//
//	struct Dependency {
//	    name: string
//	    version: ?string
//	}
//
//	name: string
//	version: string default "0.1.0"
//	deps: [Dependency]
//
// A document (`*.cbml`) imports a schema with `use` and assigns the fields:
//
//	use "package.def.cbml"
//
//	name = "cbml"
//	version = default
//	deps = [
//	    { name = "json", version = "1.0" }
//	    { name = "yaml", version = none }
//	]
//
// The pipeline is lexer → parser → schema resolver → document validator.
// Each stage lives in its own package; this package wires them together.
//
// # Basic Usage
//
//	value, err := cbml.Decode("package.cbml")
//	if err != nil {
//	    log.Fatal(err) // every diagnostic of the file
//	}
//	fmt.Println(value)
//
// Check returns the full result, including diagnostics, for either kind of
// file:
//
//	res := cbml.Check("package.cbml", document.Options{})
//	for _, e := range res.Errors.Errors {
//	    fmt.Print(e)
//	}
//
// # Diagnostic Codes
//
// Every diagnostic carries a stable four-digit code; see package errors
// for the table.
package cbml
