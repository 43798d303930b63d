package cerrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenfield/transpas/internal/cerrors"
)

func TestSemantic_ErrorFormat(t *testing.T) {
	err := cerrors.Semantic("i", 3, "loop iterator cannot be reassigned")
	assert.Equal(t, "i at line 3 - loop iterator cannot be reassigned", err.Error())
	assert.Equal(t, cerrors.KindSemantic, err.Kind())

	line, ok := err.Line()
	assert.True(t, ok)
	assert.Equal(t, 3, line)
}

func TestSyntax_ErrorFormatWithoutReason(t *testing.T) {
	err := cerrors.Syntax("begin", 10, "")
	assert.Equal(t, "begin at line 10", err.Error())
}

func TestGrammar_ErrorHasNoLine(t *testing.T) {
	err := cerrors.Grammar("grammar is not LL(1): %s", "FIRST/FOLLOW conflict")
	assert.Equal(t, "grammar is not LL(1): FIRST/FOLLOW conflict", err.Error())

	_, ok := err.Line()
	assert.False(t, ok)
}

func TestWithPath_AppendsPathAndLine(t *testing.T) {
	err := cerrors.Lexer("$", 5).WithPath("prog.pas")
	assert.Equal(t, "$ at line 5 (prog.pas:5)", err.Error())
}

func TestWithPath_DoesNotMutateOriginal(t *testing.T) {
	base := cerrors.Lexer("$", 5)
	tagged := base.WithPath("prog.pas")

	assert.Equal(t, "$ at line 5", base.Error())
	assert.Equal(t, "$ at line 5 (prog.pas:5)", tagged.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "LexerError", cerrors.KindLexer.String())
	assert.Equal(t, "GrammarError", cerrors.KindGrammar.String())
	assert.Equal(t, "SyntaxError", cerrors.KindSyntax.String())
	assert.Equal(t, "SemanticError", cerrors.KindSemantic.String())
	assert.Equal(t, "NotImplemented", cerrors.KindNotImplemented.String())
}

func TestNotImplemented_ErrorFormat(t *testing.T) {
	err := cerrors.NotImplemented("+=", 7)
	assert.Equal(t, "+= at line 7 - compound assignment is not yet implemented", err.Error())
	assert.Equal(t, cerrors.KindNotImplemented, err.Kind())
}

func TestUnexpectedEOI_ErrorFormat(t *testing.T) {
	err := cerrors.UnexpectedEOI(12)
	assert.Equal(t, "unexpected end of input at line 12", err.Error())
}

func TestError_IsAnError(t *testing.T) {
	var target *cerrors.Error
	err := error(cerrors.Semantic("x", 1, "undefined"))
	assert.True(t, errors.As(err, &target))
}
