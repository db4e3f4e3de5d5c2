// Package schema resolves CBML schema files (`*.def.cbml`) into a table of
// typed field declarations.
//
// A schema declares top-level fields, named structs, enums and unions:
//
//	struct Package {
//	    name: string
//	    version: string default "0.1.0"
//	}
//
//	enum Source {
//	    git(string)
//	    path(string)
//	}
//
//	union (string) Channel = "stable" | "beta" | "nightly"
//
//	pkg: Package
//	source: ?Source
//	channel: Channel default "stable"
//
// Resolution runs in two passes. The first collects named types, so a field
// may refer to a type declared further down the file; the second resolves
// top-level fields. Every declaration is registered under its scope: the
// members of an anonymous struct or enum live in the scope of the field
// that declares it, and the members of a named type live in TypeScope(name).
// Two fields with the same name never collide when their scopes differ.
//
// Diagnostics are accumulated. An unknown type name is reported (0002) and
// resolved as any so checking can continue.
package schema
