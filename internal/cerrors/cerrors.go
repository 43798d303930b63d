// Package cerrors defines the error taxonomy shared by every stage of the
// transpas pipeline: lexer, grammar construction, parser, and semantic
// analyzer all raise the same *Error type, tagged with a Kind so callers can
// distinguish classes of failure without string-matching messages.
package cerrors

import "fmt"

// Kind identifies which pipeline stage raised an Error.
type Kind int

const (
	// KindLexer is raised when the scanner cannot progress at the current
	// offset (UnexpectedToken) or hits an unterminated block comment.
	KindLexer Kind = iota

	// KindGrammar is raised at parser-generator construction time when the
	// grammar is not LL(1).
	KindGrammar

	// KindSyntax is raised by the parser when the lookahead cannot be
	// reduced under the current non-terminal.
	KindSyntax

	// KindSemantic is raised by the semantic analyzer on a declaration,
	// scoping, or typing violation.
	KindSemantic

	// KindNotImplemented is raised for a recognized but unsupported
	// construct (compound assignment operators).
	KindNotImplemented
)

func (k Kind) String() string {
	switch k {
	case KindLexer:
		return "LexerError"
	case KindGrammar:
		return "GrammarError"
	case KindSyntax:
		return "SyntaxError"
	case KindSemantic:
		return "SemanticError"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Error"
	}
}

// Error is the single error type raised by every transpas pipeline stage.
// Its Error() string follows the stable, tested format from the spec:
//
//	"<message> at line <N>"
//	"<message> at line <N> (<path>:<N>)"
//
// Messages that are not inherently about a line (construction-time grammar
// errors) omit the "at line N" suffix.
type Error struct {
	kind    Kind
	base    string // the leading "<lexeme>" / "<char>" portion
	reason  string // optional " - <reason>" suffix content, empty if unused
	line    int
	hasLine bool
	path    string
	wrapped error
}

// Kind returns the pipeline stage that raised this error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Line returns the 1-indexed source line associated with this error, and
// whether one was set at all.
func (e *Error) Line() (int, bool) {
	return e.line, e.hasLine
}

func (e *Error) Error() string {
	msg := e.base
	if e.hasLine {
		msg = fmt.Sprintf("%s at line %d", msg, e.line)
	}
	if e.reason != "" {
		msg = fmt.Sprintf("%s - %s", msg, e.reason)
	}
	if e.path != "" && e.hasLine {
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.path, e.line)
	}
	return msg
}

// Unwrap allows errors.Is/errors.As to see through to a wrapped cause.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// WithPath returns a copy of e with the given source path attached, used when
// translating a named file rather than an in-memory string.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.path = path
	return &cp
}

func newErr(kind Kind, base string, line int, hasLine bool, reason string) *Error {
	return &Error{
		kind:    kind,
		base:    base,
		reason:  reason,
		line:    line,
		hasLine: hasLine,
	}
}

// Lexer builds a KindLexer error naming the offending text at the given
// line, e.g. Lexer("%", 4) -> "% at line 4".
func Lexer(text string, line int) *Error {
	return newErr(KindLexer, text, line, true, "")
}

// UnterminatedComment builds a KindLexer error for a `{` comment opener that
// is never closed, reported at the opening brace's line.
func UnterminatedComment(line int) *Error {
	return newErr(KindLexer, "{", line, true, "")
}

// UnexpectedChar builds a KindLexer error for a rune that no lexer rule
// matches.
func UnexpectedChar(ch rune, line int) *Error {
	return newErr(KindLexer, string(ch), line, true, "")
}

// Grammar builds a KindGrammar error. Grammar errors are raised at
// construction time, before any token has been read, so they carry no line.
func Grammar(format string, args ...interface{}) *Error {
	return newErr(KindGrammar, fmt.Sprintf(format, args...), 0, false, "")
}

// Syntax builds a KindSyntax error at the given line, naming the unexpected
// token text and what was expected instead.
func Syntax(text string, line int, format string, args ...interface{}) *Error {
	reason := fmt.Sprintf(format, args...)
	return newErr(KindSyntax, text, line, true, reason)
}

// UnexpectedEOI builds the specific KindSyntax error raised when the parser
// runs out of tokens before reducing head to EOI: "unexpected end of input at
// line N", using the last consumed token's line.
func UnexpectedEOI(lastLine int) *Error {
	return newErr(KindSyntax, "unexpected end of input", lastLine, true, "")
}

// Semantic builds a KindSemantic error of the form
// "<lexeme> at line <N> - <reason>".
func Semantic(lexeme string, line int, reason string) *Error {
	return newErr(KindSemantic, lexeme, line, true, reason)
}

// NotImplemented builds a KindNotImplemented error naming the unsupported
// operator and the line it was used on.
func NotImplemented(operator string, line int) *Error {
	return newErr(KindNotImplemented, operator, line, true, "compound assignment is not yet implemented")
}
