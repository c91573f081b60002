package lexer

import (
	"testing"

	"github.com/skx/source-compiler/token"
)

// Trivial test of the parsing of numbers. A leading '-' is always its
// own MINUS token, never folded into the literal - negative numbers
// are a parser concern (unary minus), not a lexer one.
func TestParseNumbers(t *testing.T) {
	input := `3 43 -17 -3 3.5 -3.5`

	tests := []struct {
		expectedKind token.Kind
	}{
		{token.INT},
		{token.INT},
		{token.MINUS},
		{token.INT},
		{token.MINUS},
		{token.INT},
		{token.FLOAT},
		{token.MINUS},
		{token.FLOAT},
		{token.EOF},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
	}
}

// No-whitespace subtraction must lex as two adjacent operands with a
// MINUS between them, not a single negative literal (this is what a
// folding lexer gets wrong: "5-3" would otherwise lex as INT(5),
// INT(-3), which fails to parse as a binary expression).
func TestSubtractionWithoutWhitespace(t *testing.T) {
	l := New(`5-3`)

	want := []token.Kind{token.INT, token.MINUS, token.INT, token.EOF}
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, k, tok.Kind)
		}
	}
}

// Trivial test of the parsing of operators.
func TestParseOperators(t *testing.T) {
	input := `+ - * / % == != <= >= < > && || ! = += -= ++ -- ->`

	tests := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NE, token.LE, token.GE, token.LT, token.GT,
		token.AND, token.OR, token.NOT, token.ASSIGN,
		token.PLUS_EQ, token.MINUS_EQ, token.INC, token.DEC, token.ARROW,
		token.EOF,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, want, tok.Kind)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	l := New(`if foo while func function`)

	want := []token.Kind{token.IF, token.IDENT, token.WHILE, token.FUNCTION, token.FUNCTION, token.EOF}
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, k, tok.Kind)
		}
	}
}

func TestStrings(t *testing.T) {
	l := New(`"hello\nworld" "a\"b"`)

	tok := l.NextToken()
	if tok.Kind != token.STRING || tok.StrVal != "hello\nworld" {
		t.Fatalf("unexpected string token: %#v", tok)
	}

	tok = l.NextToken()
	if tok.Kind != token.STRING || tok.StrVal != `a"b` {
		t.Fatalf("unexpected string token: %#v", tok)
	}
}

func TestComments(t *testing.T) {
	l := New("1 // a line comment\n2 /* a\nblock comment */ 3")

	want := []token.Kind{token.INT, token.INT, token.INT, token.EOF}
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, k, tok.Kind)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, err := Tokens("1 /* oops")
	if err == nil {
		t.Fatalf("expected an error for an unterminated block comment, got tokens=%v", toks)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokens(`"oops`)
	if err == nil {
		t.Fatalf("expected an error for an unterminated string")
	}
}

func TestUnknownCharacter(t *testing.T) {
	_, err := Tokens("1 $ 2")
	if err == nil {
		t.Fatalf("expected an error for an unknown character")
	}
}

func TestLineTracking(t *testing.T) {
	toks, err := Tokens("1\n2\n3")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Line != 1 || toks[1].Line != 2 || toks[2].Line != 3 {
		t.Fatalf("line tracking wrong: %+v", toks)
	}
}
