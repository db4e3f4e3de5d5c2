// Package document validates CBML documents (`*.cbml`) against the schema
// they import.
//
// A document is a list of assignments, optionally preceded by one `use`
// statement naming a schema file:
//
//	use "package.def.cbml"
//
//	pkg = {
//	    name = "cbml"
//	    version = "1.0"
//	}
//
// Validation accumulates diagnostics. Placement problems (a misplaced or
// repeated `use`, type definitions inside a document) are always reported.
// The checks against the schema (duplicate assignments, unassigned fields,
// unknown fields and type mismatches) only run when the schema loaded
// without errors; a broken schema is reported once with code 0016 instead.
//
// Every assignment, including the members of struct literals, is recorded
// with its scope. Array elements add an index segment to the scope and enum
// payloads add the variant name, so members of different elements never
// collide.
package document
