package scanner

import (
	"testing"

	"tinylox/token"
)

func scanAll(source string) []token.Token {
	s := New(source)
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){}!= == <= >= < > + - * /")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.Plus, token.Minus, token.Star, token.Slash,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll("123 45.67")
	if toks[0].Kind != token.Number || toks[0].Lexeme != "123" {
		t.Errorf("got %v, want NUMBER 123", toks[0])
	}
	if toks[1].Kind != token.Number || toks[1].Lexeme != "45.67" {
		t.Errorf("got %v, want NUMBER 45.67", toks[1])
	}
}

func TestScanStrings(t *testing.T) {
	toks := scanAll(`"hello world"`)
	if toks[0].Kind != token.String {
		t.Fatalf("got %v, want STRING", toks[0])
	}
	if toks[0].Lexeme != `"hello world"` {
		t.Errorf("lexeme = %q, want the quoted source slice", toks[0].Lexeme)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(`"oops`)
	if toks[0].Kind != token.Error {
		t.Fatalf("got %v, want Error", toks[0])
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("and or true false nil foo_bar")
	want := []token.Kind{token.And, token.Or, token.True, token.False, token.Nil, token.Identifier, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll("1 // this is a comment\n2")
	if toks[0].Lexeme != "1" || toks[1].Lexeme != "2" {
		t.Fatalf("got %v, want [1 2 EOF]", toks)
	}
	if toks[1].Line != 2 {
		t.Errorf("second number line = %d, want 2", toks[1].Line)
	}
}

func TestScanLineCounting(t *testing.T) {
	toks := scanAll("1\n2\n3")
	for i, want := range []int{1, 2, 3} {
		if toks[i].Line != want {
			t.Errorf("token %d line = %d, want %d", i, toks[i].Line, want)
		}
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	if toks[0].Kind != token.Error {
		t.Fatalf("got %v, want Error", toks[0])
	}
}

func TestScanLexemeReconstructsSource(t *testing.T) {
	// Round-trip property: concatenating lexemes (with the separating
	// whitespace re-inserted) reconstructs the source modulo comments.
	source := "1 + 2 * 3"
	toks := scanAll(source)
	var rebuilt string
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += tok.Lexeme
	}
	if rebuilt != source {
		t.Errorf("rebuilt = %q, want %q", rebuilt, source)
	}
}
