// Package errors provides the diagnostics produced by the CBML toolchain.
//
// Every diagnostic carries the file path, a zero-based source span, a
// stable numeric code, and optional note and help lines.
//
// # Codes
//
//	0000 uncategorized              0009 duplicate type or field name
//	0001 cannot open file           0010 field already assigned in a struct literal
//	0002 unknown type reference     0011 field has no default value
//	0003 unknown field              0012 kind not allowed inside a union
//	0004 mismatched types           0013 `default` outside a field declaration
//	0005 duplicate union value      0014 unrecognized token
//	0006 `use` declared twice       0015 required fields left unassigned
//	0007 statement not allowed      0016 imported schema has errors
//	0008 duplicate assignment       0017 definition inside a document
//
// # Basic Usage
//
// Accumulate diagnostics instead of stopping at the first one:
//
//	errs := errors.NewErrorList()
//	errs.Add(errors.UnknownField(path, span, "nmae").
//	    WithHelp(errors.SuggestName("nmae", []string{"name", "version"})))
//	if errs.HasErrors() {
//	    return errs.ToError()
//	}
//
// # Error Format
//
//	error[0003]: unknown field `nmae`
//	  --> config.cbml:3:5
//	  |
//	->  3 |     nmae = "x"
//	      |     ^^^^
//	  |
//	  = help: did you mean `name`?
package errors
