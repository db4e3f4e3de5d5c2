package lexer

import (
	"strings"
	"testing"

	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
)

// kinds returns the token kinds without the trailing EOF.
func kinds(tokens []Token) []Kind {
	var out []Kind
	for _, tok := range tokens {
		if tok.Kind == EOF {
			break
		}
		out = append(out, tok.Kind)
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"123", 123},
		{"-123", -123},
		{"+7", 7},
		{"0.123", 0.123},
		{"-0.123", -0.123},
		{"0xFF", 255},
		{"0xff", 255},
		{"-0xFF", -255},
		{"0b1010", 10},
		{"-0b1010", -10},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := Tokenize("test.cbml", tt.input)
			if errs.HasErrors() {
				t.Fatalf("Tokenize() errors: %v", errs)
			}
			if len(tokens) != 2 {
				t.Fatalf("len(tokens) = %d, want 2 (number + EOF)", len(tokens))
			}
			if tokens[0].Kind != Number {
				t.Fatalf("Kind = %v, want %v", tokens[0].Kind, Number)
			}
			if tokens[0].Number != tt.want {
				t.Errorf("Number = %v, want %v", tokens[0].Number, tt.want)
			}
		})
	}
}

func TestTokenize_InvalidNumbers(t *testing.T) {
	tests := []string{
		"1.2.3",
		"0x",
		"0xZZ",
		"0b102",
		"12abc",
		"-",
		"-inf",
		"+Infinity",
		"1e5",
		"1_000",
		"1.",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens, errs := Tokenize("test.cbml", input)
			if errs.Count() != 1 {
				t.Fatalf("got %d errors, want 1: %v", errs.Count(), errs)
			}
			for _, tok := range tokens {
				if tok.Kind == Number {
					t.Errorf("malformed numeral produced a Number token %v", tok)
				}
			}
			if errs.Errors[0].Span.Start.Offset != 0 {
				t.Errorf("error starts at offset %d, want 0", errs.Errors[0].Span.Start.Offset)
			}
		})
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `"hello"`, "hello"},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"all simple escapes", `"\r\t\\\"\0"`, "\r\t\\\"\x00"},
		{"unicode escapes", `"\u{48}\u{49}"`, "HI"},
		{"wide unicode", `"\u{1F600}"`, "\U0001F600"},
		{"raw newline", "\"line1\nline2\"", "line1\nline2"},
		{"empty", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Tokenize("test.cbml", tt.input)
			if errs.HasErrors() {
				t.Fatalf("Tokenize() errors: %v", errs)
			}
			if tokens[0].Kind != String {
				t.Fatalf("Kind = %v, want %v", tokens[0].Kind, String)
			}
			if tokens[0].Text != tt.want {
				t.Errorf("Text = %q, want %q", tokens[0].Text, tt.want)
			}
		})
	}
}

func TestTokenize_NewlineEscapeLength(t *testing.T) {
	tokens, _ := Tokenize("test.cbml", `"a\nb"`)
	if got := len([]rune(tokens[0].Text)); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
}

func TestTokenize_StringErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unterminated unicode escape", `"\u{48"`, "unterminated unicode escape"},
		{"unicode escape at end of input", `"\u{`, "unterminated unicode escape"},
		{"missing brace", `"\u48"`, "expected `{`"},
		{"bad code point", `"\u{D800}"`, "not a unicode scalar value"},
		{"too many digits", `"\u{00000000041}"`, "1 to 10 hex digits"},
		{"unknown escape", `"\q"`, "unknown escape"},
		{"unterminated string", `"abc`, "unterminated string literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Tokenize("test.cbml", tt.input)
			if !errs.HasErrors() {
				t.Fatal("expected an error, got none")
			}
			found := false
			for _, err := range errs.Errors {
				if strings.Contains(err.Message, tt.message) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", errs, tt.message)
			}
		})
	}
}

func TestTokenize_Keywords(t *testing.T) {
	input := "true false none any struct union todo use default enum string number bool name"
	want := []Kind{True, False, None, Any, Struct, Union, Todo, Use, Default, Enum, StringType, NumberType, BoolType, Identifier}

	tokens, errs := Tokenize("test.cbml", input)
	if errs.HasErrors() {
		t.Fatalf("Tokenize() errors: %v", errs)
	}
	if got := kinds(tokens); !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if tokens[len(tokens)-2].Text != "name" {
		t.Errorf("identifier text = %q, want %q", tokens[len(tokens)-2].Text, "name")
	}
}

func TestTokenize_Punctuation(t *testing.T) {
	tokens, errs := Tokenize("test.cbml", "( ) [ ] { } , : | ? =\n")
	if errs.HasErrors() {
		t.Fatalf("Tokenize() errors: %v", errs)
	}
	want := []Kind{LParen, RParen, LBracket, RBracket, LBrace, RBrace, Comma, Colon, Pipe, Question, Assign, NewLine}
	if got := kinds(tokens); !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenize_Comments(t *testing.T) {
	input := "// line\n/// doc text\n/* block\n comment */ name"
	tokens, errs := Tokenize("test.cbml", input)
	if errs.HasErrors() {
		t.Fatalf("Tokenize() errors: %v", errs)
	}

	want := []Kind{LineComment, NewLine, DocComment, NewLine, BlockComment, Identifier}
	if got := kinds(tokens); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if tokens[2].Text != "doc text" {
		t.Errorf("doc comment = %q, want %q", tokens[2].Text, "doc text")
	}
	if tokens[4].Text != "block\n comment" {
		t.Errorf("block comment = %q, want %q", tokens[4].Text, "block\n comment")
	}
}

func TestTokenize_CommentErrors(t *testing.T) {
	if _, errs := Tokenize("test.cbml", "/* never closed"); !errs.HasErrors() {
		t.Error("unterminated block comment: expected an error")
	}
	if _, errs := Tokenize("test.cbml", "a / b"); !errs.HasCode(cbmlErrors.CodeUnrecognizedToken) {
		t.Errorf("lone slash: got %v, want code %s", errs, cbmlErrors.CodeUnrecognizedToken)
	}
}

func TestTokenize_InvalidCharacterRecovers(t *testing.T) {
	tokens, errs := Tokenize("test.cbml", "a = 1 @ # b = 2")
	if errs.Count() != 2 {
		t.Fatalf("got %d errors, want 2: %v", errs.Count(), errs)
	}
	for _, err := range errs.Errors {
		if err.Code != cbmlErrors.CodeUnrecognizedToken {
			t.Errorf("Code = %s, want %s", err.Code, cbmlErrors.CodeUnrecognizedToken)
		}
	}

	// Scanning continues past the invalid characters.
	want := []Kind{Identifier, Assign, Number, Invalid, Invalid, Identifier, Assign, Number}
	if got := kinds(tokens); !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens, errs := Tokenize("test.cbml", "name = \"x\"\n  age = 10")
	if errs.HasErrors() {
		t.Fatalf("Tokenize() errors: %v", errs)
	}

	tests := []struct {
		index             int
		line, col, offset uint
		endCol, endOffset uint
	}{
		{0, 0, 0, 0, 4, 4},    // name
		{2, 0, 7, 7, 10, 10},  // "x"
		{3, 0, 10, 10, 0, 11}, // newline ends at the start of the next line
		{4, 1, 2, 13, 5, 16},  // age
		{6, 1, 8, 19, 10, 21}, // 10
	}

	for _, tt := range tests {
		tok := tokens[tt.index]
		start := tok.Span.Start
		if start.Line != tt.line || start.Column != tt.col || start.Offset != tt.offset {
			t.Errorf("token %d (%v) start = %d:%d@%d, want %d:%d@%d",
				tt.index, tok, start.Line, start.Column, start.Offset, tt.line, tt.col, tt.offset)
		}
		end := tok.Span.End
		if end.Column != tt.endCol || end.Offset != tt.endOffset {
			t.Errorf("token %d (%v) end = col %d@%d, want col %d@%d",
				tt.index, tok, end.Column, end.Offset, tt.endCol, tt.endOffset)
		}
	}
}

func TestTokenize_CarriageReturnIsWhitespace(t *testing.T) {
	tokens, errs := Tokenize("test.cbml", "a = 1\r\nb = 2\r\n")
	if errs.HasErrors() {
		t.Fatalf("Tokenize() errors: %v", errs)
	}
	want := []Kind{Identifier, Assign, Number, NewLine, Identifier, Assign, Number, NewLine}
	if got := kinds(tokens); !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	for _, input := range []string{"", "name", "// comment", "0x1F", "@"} {
		tokens, _ := Tokenize("test.cbml", input)
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
			t.Errorf("Tokenize(%q) does not end with EOF: %v", input, tokens)
		}
	}
}

func TestToken_Is(t *testing.T) {
	a := Token{Kind: Identifier, Text: "a"}
	b := Token{Kind: Identifier, Text: "b"}
	if !a.Is(b.Kind) {
		t.Error("Is() should compare kinds only")
	}
	if a.Is(String) {
		t.Error("Is(String) = true for an identifier")
	}
}

func BenchmarkTokenize(b *testing.B) {
	src := strings.Repeat("pkg = { name = \"cbml\", version = \"1.0\", tags = [0xFF, 0b1010, -1.5] }\n", 200)
	b.ReportAllocs()
	for b.Loop() {
		Tokenize("bench.cbml", src)
	}
}
