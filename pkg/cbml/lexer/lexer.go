package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"cbml-lang/cbml/pkg/cbml/ast"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
)

// state is the scanner mode. Every mode is explicit; the scanner never
// backtracks.
type state uint8

const (
	stateInitial state = iota
	stateIdentifier
	stateNumber
	stateBinaryNumber
	stateHexNumber
	stateString
	stateLineComment
	stateDocComment
	stateBlockComment
)

// Lexer converts source text into tokens. A Lexer is single-use.
type Lexer struct {
	file string
	src  []rune
	i    int
	pos  ast.Position

	state   state
	start   ast.Position // position of the first character of the current token
	buf     strings.Builder
	seenDot bool

	tokens []Token
	errors *cbmlErrors.ErrorList
}

// New creates a lexer for the given file path and source text.
func New(file, src string) *Lexer {
	return &Lexer{
		file:   file,
		src:    []rune(src),
		errors: cbmlErrors.NewErrorList(),
	}
}

// Tokenize scans src and returns every token, ending with EOF, together
// with the lexical errors found. Scanning continues after an error so all
// lexical problems of a file are reported at once; callers should not
// parse a token stream that came with errors.
func Tokenize(file, src string) ([]Token, *cbmlErrors.ErrorList) {
	return New(file, src).Tokenize()
}

// Tokenize runs the lexer to completion.
func (l *Lexer) Tokenize() ([]Token, *cbmlErrors.ErrorList) {
	for {
		r, ok := l.peek()

		switch l.state {
		case stateInitial:
			if !ok {
				l.tokens = append(l.tokens, Token{Kind: EOF, Span: ast.NewSpan(l.pos, l.pos)})
				return l.tokens, l.errors
			}
			l.lexInitial(r)

		case stateIdentifier:
			if ok && isIdentChar(r) {
				l.consume()
				continue
			}
			l.finishIdentifier()

		case stateNumber:
			if ok && l.lexNumberRune(r) {
				continue
			}
			l.finishDecimal()

		case stateHexNumber, stateBinaryNumber:
			// Letters and digits are collected so that a malformed numeral is
			// reported as a whole instead of being split into tokens.
			if ok && isIdentChar(r) {
				l.consume()
				continue
			}
			if l.state == stateHexNumber {
				l.finishRadix(16)
			} else {
				l.finishRadix(2)
			}

		case stateString:
			if !ok {
				l.errorf(cbmlErrors.CodeUncategorized, l.start, "unterminated string literal")
				l.reset()
				continue
			}
			switch r {
			case '"':
				l.advance()
				l.emit(String, l.buf.String())
			case '\\':
				l.lexEscape()
			default:
				l.consume()
			}

		case stateLineComment, stateDocComment:
			// The newline is not part of the comment; it is lexed again in
			// the initial state.
			if !ok || r == '\n' {
				if l.state == stateDocComment {
					l.emit(DocComment, strings.TrimSpace(l.buf.String()))
				} else {
					l.emit(LineComment, strings.TrimSpace(l.buf.String()))
				}
				continue
			}
			l.consume()

		case stateBlockComment:
			if !ok {
				l.errorf(cbmlErrors.CodeUncategorized, l.start, "unterminated block comment")
				l.reset()
				continue
			}
			if r == '*' && l.peekAt(1) == '/' {
				l.advance()
				l.advance()
				l.emit(BlockComment, strings.TrimSpace(l.buf.String()))
				continue
			}
			l.consume()
		}
	}
}

// lexInitial handles one character in the initial state.
func (l *Lexer) lexInitial(r rune) {
	l.start = l.pos
	l.buf.Reset()

	switch {
	case r == ' ' || r == '\t' || r == '\r':
		l.advance()

	case r == '\n':
		l.advance()
		l.emit(NewLine, "")

	case r == '"':
		l.advance()
		l.state = stateString

	case isDigit(r) || r == '+' || r == '-':
		l.consume()
		l.seenDot = false
		l.state = stateNumber

	case r == '/':
		l.advance()
		switch l.peekAt(0) {
		case '/':
			l.advance()
			if l.peekAt(0) == '/' {
				l.advance()
				l.state = stateDocComment
			} else {
				l.state = stateLineComment
			}
		case '*':
			l.advance()
			l.state = stateBlockComment
		default:
			l.invalid(r)
		}

	case isIdentStart(r):
		l.consume()
		l.state = stateIdentifier

	default:
		if kind, ok := punctuation[r]; ok {
			l.advance()
			l.emit(kind, "")
			return
		}
		l.advance()
		l.invalid(r)
	}
}

// lexNumberRune consumes r as part of a decimal numeral and reports whether
// the numeral continues.
func (l *Lexer) lexNumberRune(r rune) bool {
	switch {
	case isDigit(r):
		l.consume()
		return true

	case r == '.':
		if l.seenDot {
			l.advance()
			l.skipNumeral()
			l.errorf(cbmlErrors.CodeUncategorized, l.start, "invalid number format: more than one `.`")
			l.reset()
			return true
		}
		l.seenDot = true
		l.consume()
		return true

	case (r == 'x' || r == 'b') && isZeroPrefix(l.buf.String()):
		l.consume()
		if r == 'x' {
			l.state = stateHexNumber
		} else {
			l.state = stateBinaryNumber
		}
		return true

	case isIdentStart(r):
		// Trailing letters make the numeral malformed; keep them so the
		// whole thing is reported.
		l.consume()
		return true
	}
	return false
}

func (l *Lexer) finishDecimal() {
	text := l.buf.String()
	if !isDecimalNumeral(text) {
		l.errorf(cbmlErrors.CodeUncategorized, l.start, "invalid number `%s`: expected decimal digits with at most one `.`", text)
		l.reset()
		return
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.errorf(cbmlErrors.CodeUncategorized, l.start, "invalid number `%s`: %v", text, unwrapNumError(err))
		l.reset()
		return
	}
	l.emitNumber(v)
}

func (l *Lexer) finishRadix(base int) {
	text := l.buf.String()
	negative := strings.HasPrefix(text, "-")
	digits := strings.TrimLeft(text, "+-")
	digits = digits[min(2, len(digits)):] // strip 0x / 0b

	if digits == "" {
		l.errorf(cbmlErrors.CodeUncategorized, l.start, "invalid number `%s`: missing digits", text)
		l.reset()
		return
	}

	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		l.errorf(cbmlErrors.CodeUncategorized, l.start, "invalid number `%s`: %v", text, unwrapNumError(err))
		l.reset()
		return
	}

	v := float64(u)
	if negative {
		v = -v
	}
	l.emitNumber(v)
}

// skipNumeral consumes the rest of a malformed numeral.
func (l *Lexer) skipNumeral() {
	for {
		r, ok := l.peek()
		if !ok || !(isIdentChar(r) || r == '.') {
			return
		}
		l.advance()
	}
}

// lexEscape decodes one escape sequence inside a string. The leading
// backslash has not been consumed yet.
func (l *Lexer) lexEscape() {
	escStart := l.pos
	l.advance()

	r, ok := l.peek()
	if !ok {
		return
	}

	switch r {
	case 'n':
		l.buf.WriteRune('\n')
	case 'r':
		l.buf.WriteRune('\r')
	case 't':
		l.buf.WriteRune('\t')
	case '\\':
		l.buf.WriteRune('\\')
	case '"':
		l.buf.WriteRune('"')
	case '0':
		l.buf.WriteRune(0)
	case 'u':
		l.advance()
		l.lexUnicodeEscape(escStart)
		return
	default:
		l.advance()
		l.errorf(cbmlErrors.CodeUncategorized, escStart, "unknown escape sequence `\\%c`", r)
		return
	}
	l.advance()
}

// lexUnicodeEscape decodes `{HEX}` after `\u`.
func (l *Lexer) lexUnicodeEscape(escStart ast.Position) {
	if l.peekAt(0) != '{' {
		l.errorf(cbmlErrors.CodeUncategorized, escStart, "invalid unicode escape: expected `{` after `\\u`")
		return
	}
	l.advance()

	var hex strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isHexDigit(r) {
			break
		}
		hex.WriteRune(r)
		l.advance()
	}

	if l.peekAt(0) != '}' {
		l.errorf(cbmlErrors.CodeUncategorized, escStart, "unterminated unicode escape: expected `}`")
		return
	}
	l.advance()

	digits := hex.String()
	if len(digits) == 0 || len(digits) > 10 {
		l.errorf(cbmlErrors.CodeUncategorized, escStart, "invalid unicode escape `\\u{%s}`: expected 1 to 10 hex digits", digits)
		return
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil || v > unicode.MaxRune || !utf8.ValidRune(rune(v)) {
		l.errorf(cbmlErrors.CodeUncategorized, escStart, "invalid unicode escape `\\u{%s}`: not a unicode scalar value", digits)
		return
	}
	l.buf.WriteRune(rune(v))
}

func (l *Lexer) finishIdentifier() {
	text := l.buf.String()
	l.emit(LookupKeyword(text), text)
}

// invalid records an invalid character. The character has already been
// consumed, so scanning resumes right after it.
func (l *Lexer) invalid(r rune) {
	span := ast.NewSpan(l.start, l.pos)
	l.tokens = append(l.tokens, Token{Kind: Invalid, Text: string(r), Span: span})
	l.errors.Add(cbmlErrors.UnrecognizedToken(l.file, span, fmt.Sprintf("character %q", r), ""))
	l.reset()
}

func (l *Lexer) emit(kind Kind, text string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Span: ast.NewSpan(l.start, l.pos)})
	l.reset()
}

func (l *Lexer) emitNumber(v float64) {
	l.tokens = append(l.tokens, Token{Kind: Number, Text: l.buf.String(), Number: v, Span: ast.NewSpan(l.start, l.pos)})
	l.reset()
}

func (l *Lexer) errorf(code cbmlErrors.Code, from ast.Position, format string, args ...any) {
	l.errors.AddError(code, l.file, fmt.Sprintf(format, args...), ast.NewSpan(from, l.pos))
}

// reset returns to the initial state.
func (l *Lexer) reset() {
	l.state = stateInitial
	l.buf.Reset()
	l.seenDot = false
}

func (l *Lexer) peek() (rune, bool) {
	if l.i >= len(l.src) {
		return 0, false
	}
	return l.src[l.i], true
}

// peekAt returns the rune n positions ahead, or -1 past the end.
func (l *Lexer) peekAt(n int) rune {
	if l.i+n >= len(l.src) {
		return -1
	}
	return l.src[l.i+n]
}

// advance consumes one character and updates the running position.
func (l *Lexer) advance() rune {
	r := l.src[l.i]
	l.i++
	l.pos.Offset++
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 0
	} else {
		l.pos.Column++
	}
	return r
}

// consume advances and appends the character to the token buffer.
func (l *Lexer) consume() {
	l.buf.WriteRune(l.advance())
}

func unwrapNumError(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		return numErr.Err
	}
	return err
}

// isDecimalNumeral reports whether s is [+-]?digits(.digits)?. ParseFloat
// alone would also take exponents, underscores and inf.
func isDecimalNumeral(s string) bool {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	intPart, frac, hasDot := strings.Cut(s, ".")
	if !allDigits(intPart) {
		return false
	}
	return !hasDot || allDigits(frac)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isZeroPrefix(s string) bool {
	return s == "0" || s == "-0" || s == "+0"
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
