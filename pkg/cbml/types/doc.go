// Package types holds the resolved type and value trees of CBML and the
// structural matching between them.
//
// A Type is what a schema type annotation resolves to; a Value is what a
// document literal resolves to. Match decides whether a literal conforms
// to a type:
//
//	string, number, bool  the literal kind matches
//	any                   always
//	[T]                   an array whose elements all match T
//	?T                    none, or a literal matching T
//	union                 the literal's value is one of the allowed values
//	struct                a struct literal with exactly the same member
//	                      names, each matching its member type
//	enum                  an enum field literal naming a declared variant
//	                      whose payload matches the variant type
//
// Equal compares types structurally; any is equal to every type.
package types
