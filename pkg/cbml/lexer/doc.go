// Package lexer converts CBML source text into a token stream.
//
// The scanner is an explicit state machine over runes. It tracks the line,
// column and character offset of every token, decodes string escapes
// (including `\u{HEX}`), and reads numbers in decimal, hexadecimal (`0xFF`)
// and binary (`0b1010`) notation.
//
// # Basic Usage
//
//	tokens, errs := lexer.Tokenize("config.cbml", src)
//	if errs.HasErrors() {
//	    fmt.Println(errs)
//	    return
//	}
//	for _, tok := range tokens {
//	    fmt.Println(tok.Span, tok)
//	}
//
// # Error Handling
//
// Lexical errors do not stop the scanner. An invalid character is reported
// with code 0014 and skipped, a malformed numeral is reported and dropped,
// and a bad escape is reported while the rest of the string is still read.
// The returned token slice always ends with an EOF token. A token stream
// that came with errors should not be handed to the parser.
//
// Newlines are tokens: they terminate statements. Comments are tokens too;
// the parser discards line and block comments and attaches doc comments
// (`///`) to the declaration that follows them.
package lexer
