// cbml checks, inspects and exports CBML configuration files.
//
// CBML documents (*.cbml) assign values to fields declared in schema files
// (*.def.cbml). The cbml command validates both kinds and reports every
// diagnostic with its stable code.
//
// Usage:
//
//	# Check every CBML file below the current directory
//	cbml check .
//
//	# JSON diagnostics for CI
//	cbml check configs/ --format json
//
//	# Print the value tree of a valid document
//	cbml export app.cbml --format yaml
//
//	# Dump the token stream of a file
//	cbml tokens app.cbml
//
//	# Re-check on every change
//	cbml watch configs/
package main

import "os"

func main() {
	os.Exit(Execute())
}
