// Package lex turns source text into a finite, forward-only stream of
// tokens. The concrete terminal set and lexer rules for this language live
// in internal/compiler/lang; this package only knows how to combine a rule
// set into one alternation and drive it over a buffer.
//
// Grounded on original_source/transpiler/lexer.py's single-regex-alternation
// design, reworked into the teacher's pull-based TokenStream shape
// (internal/ictiobus/lex) since a recursive-descent-free parser must not
// require random access into the stream.
package lex

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/wrenfield/transpas/internal/cerrors"
	"github.com/wrenfield/transpas/internal/compiler/types"
)

// Rule pairs a token class with the regular expression that recognizes it.
// Patterns are combined in the order given: earlier rules take priority
// over later ones when more than one would match at a position, which is
// how keyword/literal-type rules are kept from being swallowed by the
// identifier rule.
type Rule struct {
	Class   types.TokenClass
	Pattern string
}

// Lexer holds a compiled rule set ready to scan any number of source
// buffers. It is safe for concurrent use since scanning never mutates it.
type Lexer struct {
	rules    []Rule
	combined *regexp.Regexp
	// group2rule maps the index of a named subexpression (as returned by
	// combined.SubexpNames()) to the index of the Rule that produced it.
	group2rule []int
}

// New compiles rules into a Lexer. It fails only if the combined pattern is
// not a valid regular expression.
func New(rules []Rule) (*Lexer, error) {
	var b strings.Builder
	b.WriteString("(?i)^(?:")
	for i, r := range rules {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString("(?P<g")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(">")
		b.WriteString(r.Pattern)
		b.WriteString(")")
	}
	b.WriteString(")")

	combined, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}

	names := combined.SubexpNames()
	group2rule := make([]int, len(names))
	for i, name := range names {
		group2rule[i] = -1
		if name == "" {
			continue
		}
		idx, convErr := strconv.Atoi(strings.TrimPrefix(name, "g"))
		if convErr == nil {
			group2rule[i] = idx
		}
	}

	return &Lexer{rules: rules, combined: combined, group2rule: group2rule}, nil
}

// Lex scans source into a TokenStream terminated by an EOI token. Source is
// first normalized to Unicode NFC so that visually identical identifiers
// compare equal regardless of input encoding quirks.
//
// Two comment forms are recognized and elided before any token is yielded:
// line comments introduced by "//" running to end of line, and block
// comments delimited by a single matched "{" ... "}" pair (nesting is not
// supported; the first "}" closes). An opening "{" with no matching "}"
// before the end of the buffer is reported at the opening brace's line.
func (lx *Lexer) Lex(source string) (*TokenStream, error) {
	source = norm.NFC.String(source)

	var toks []types.Token
	pos := 0
	line := 1

	for {
		for {
			advanced := false

			for pos < len(source) {
				r, size := utf8.DecodeRuneInString(source[pos:])
				if r == ' ' || r == '\t' || r == '\r' {
					pos += size
					advanced = true
					continue
				}
				if r == '\n' {
					pos += size
					line++
					advanced = true
					continue
				}
				break
			}

			if strings.HasPrefix(source[pos:], "//") {
				if nl := strings.IndexByte(source[pos:], '\n'); nl == -1 {
					pos = len(source)
				} else {
					pos += nl
				}
				advanced = true
			} else if pos < len(source) && source[pos] == '{' {
				openLine := line
				rest := source[pos+1:]
				idx := strings.IndexByte(rest, '}')
				if idx == -1 {
					return nil, cerrors.UnterminatedComment(openLine)
				}
				body := rest[:idx]
				line += strings.Count(body, "\n")
				pos += 1 + idx + 1
				advanced = true
			}

			if !advanced {
				break
			}
		}

		if pos >= len(source) {
			break
		}

		lexeme, ruleIdx, ok := lx.matchAt(source[pos:])
		if !ok || lexeme == "" {
			r, _ := utf8.DecodeRuneInString(source[pos:])
			return nil, cerrors.UnexpectedChar(r, line)
		}

		toks = append(toks, types.NewToken(lx.rules[ruleIdx].Class, lexeme, pos, line))
		line += strings.Count(lexeme, "\n")
		pos += len(lexeme)
	}

	toks = append(toks, types.EOIToken(line))
	return newTokenStream(toks), nil
}

// matchAt finds the rule matching at the very start of s and returns the
// matched lexeme and the index of the rule that matched.
func (lx *Lexer) matchAt(s string) (lexeme string, ruleIdx int, ok bool) {
	loc := lx.combined.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", 0, false
	}
	for i, idx := range lx.group2rule {
		if idx == -1 {
			continue
		}
		if loc[2*i] != -1 {
			return s[loc[0]:loc[1]], idx, true
		}
	}
	return "", 0, false
}

// TokenStream is a forward-only, pull-based view over an already-scanned
// token slice. It deliberately exposes no random access - Next/Peek/HasNext
// only - so parser code cannot accidentally depend on rewinding the stream;
// the only way to restart is to call Lex again.
type TokenStream struct {
	toks []types.Token
	pos  int
}

func newTokenStream(toks []types.Token) *TokenStream {
	return &TokenStream{toks: toks}
}

// Peek returns the current token without advancing.
func (s *TokenStream) Peek() types.Token {
	return s.toks[s.pos]
}

// Next returns the current token and advances the stream by one, unless
// already positioned on the terminal EOI token, which repeats forever.
func (s *TokenStream) Next() types.Token {
	t := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

// HasNext reports whether the stream has not yet reached its EOI token.
func (s *TokenStream) HasNext() bool {
	return s.toks[s.pos].Class() != types.EOIClass
}

// Line returns the line of the token the stream is currently positioned on.
func (s *TokenStream) Line() int {
	return s.toks[s.pos].Line()
}
