// Package token defines the lexical token kinds produced by the scanner
// and consumed by the compiler's Pratt parser.
package token

import "fmt"

// Kind classifies a lexeme recognized by the scanner.
type Kind int

const (
	// single-char punctuation
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// one-or-two-char operators
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	// sentinels
	Error
	EOF
)

var names = map[Kind]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";", Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "and", Class: "class", Else: "else", False: "false", For: "for", Fun: "fun",
	If: "if", Nil: "nil", Or: "or", Print: "print", Return: "return", Super: "super",
	This: "this", True: "true", Var: "var", While: "while",
	Error: "ERROR", EOF: "EOF",
}

// String renders the kind's canonical name, mostly for error messages and
// disassembly.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifiers to their keyword kind. Any identifier
// lexeme not present here is a plain Identifier token.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False, "for": For,
	"fun": Fun, "if": If, "nil": Nil, "or": Or, "print": Print, "return": Return,
	"super": Super, "this": This, "true": True, "var": Var, "while": While,
}

// Token is a zero-copy view into the source: a kind, a slice of the
// original source text, and the 1-based line it started on. A Token is
// only valid for as long as the source string it was scanned from is kept
// alive by the caller.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// New constructs a Token, so call sites don't need to spell out field names
// for the common case.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s %q line %d}", t.Kind, t.Lexeme, t.Line)
}
