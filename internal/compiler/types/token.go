package types

import "strings"

// TokenClass names a terminal in a grammar. The lexer and grammar packages
// depend only on this interface, never on a concrete enumeration, so the
// concrete Pascal-like terminal set lives entirely in internal/compiler/lang.
//
// Grounded on internal/ictiobus/types.TokenClass (teacher).
type TokenClass interface {
	// ID returns the lower-cased identifier used as the terminal's name in
	// grammar rules and predict-table cells.
	ID() string

	// Human returns a human-readable name for use in error messages.
	Human() string
}

type simpleTokenClass string

func (c simpleTokenClass) ID() string    { return strings.ToLower(string(c)) }
func (c simpleTokenClass) Human() string { return string(c) }

// NewTokenClass returns a TokenClass whose ID is the lower-cased form of s
// and whose Human name is s unmodified.
func NewTokenClass(s string) TokenClass {
	return simpleTokenClass(s)
}

// TokenClassEqual reports whether two token classes name the same terminal.
func TokenClassEqual(a, b TokenClass) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}

// Token is a lexeme read from source text, tagged with the TokenClass it was
// matched as and the position information needed for diagnostics.
//
// Grounded on internal/ictiobus/types.Token (teacher) and
// original_source/transpiler/base.py's Token (tag, value, pos).
type Token struct {
	class      TokenClass
	lexeme     string
	byteOffset int
	line       int
}

// NewToken builds a Token. byteOffset is the 0-indexed byte offset of the
// lexeme's first byte in the source buffer; line is the 1-indexed source
// line it starts on.
func NewToken(class TokenClass, lexeme string, byteOffset, line int) Token {
	return Token{class: class, lexeme: lexeme, byteOffset: byteOffset, line: line}
}

func (t Token) Class() TokenClass  { return t.class }
func (t Token) Lexeme() string     { return t.lexeme }
func (t Token) ByteOffset() int    { return t.byteOffset }
func (t Token) Line() int          { return t.line }
func (t Token) String() string     { return t.lexeme + " " + t.class.Human() }

// EOIClass is the TokenClass of the synthetic end-of-input token every
// lexer-produced stream ends with.
var EOIClass TokenClass = simpleTokenClass("$")

// EOIToken is a ready-made end-of-input token for the given line, used by
// the lexer when it reaches the end of the input buffer.
func EOIToken(line int) Token {
	return NewToken(EOIClass, "", -1, line)
}
