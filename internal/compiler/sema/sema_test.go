package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfield/transpas/internal/cerrors"
	"github.com/wrenfield/transpas/internal/compiler/lang"
	"github.com/wrenfield/transpas/internal/compiler/lex"
	"github.com/wrenfield/transpas/internal/compiler/parse"
	"github.com/wrenfield/transpas/internal/compiler/sema"
	"github.com/wrenfield/transpas/internal/compiler/types"
)

func parseSrc(t *testing.T, src string) *types.ParseTree {
	t.Helper()

	lexer, err := lex.New(lang.Rules())
	require.NoError(t, err)

	stream, err := lexer.Lex(src)
	require.NoError(t, err)

	parser, err := parse.New(lang.Grammar())
	require.NoError(t, err)

	tree, err := parser.Parse(stream)
	require.NoError(t, err)

	return tree
}

func semanticErr(t *testing.T, src string) *cerrors.Error {
	t.Helper()

	err := sema.Analyze(parseSrc(t, src))
	require.Error(t, err)
	cerr, ok := err.(*cerrors.Error)
	require.True(t, ok, "expected a *cerrors.Error, got %T", err)
	return cerr
}

func TestAnalyze_ValidProgram(t *testing.T) {
	src := `var g: integer := 1; begin var a: integer := g; var b: real := a; end.`
	assert.NoError(t, sema.Analyze(parseSrc(t, src)))
}

func TestAnalyze_UndeclaredVariable(t *testing.T) {
	src := `begin a := 1; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_Redeclaration(t *testing.T) {
	src := `begin var a: integer := 1; var a: real := 2.0; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
	assert.Equal(t, "a at line 1 - variable is already defined", cerr.Error())
}

func TestAnalyze_IntegerDivisionForbidden(t *testing.T) {
	src := `begin var a: integer := 10; var b: integer := a / 2; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_RealAssignedToInteger(t *testing.T) {
	src := `begin var c: real := 10.0; var b: integer := c; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_IntegerWidensToReal(t *testing.T) {
	src := `begin var a: integer := 10; var r: real := a; end.`
	assert.NoError(t, sema.Analyze(parseSrc(t, src)))
}

func TestAnalyze_LoopIteratorMustBeNumericOrCharOrBoolean(t *testing.T) {
	src := `begin for var s: string := 1 to 10 do print(s); end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_LoopIteratorReassignmentRejected(t *testing.T) {
	src := `begin for var i: integer := 1 to 10 do i := i + 1; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_LoopIteratorOutOfScopeAfterLoop(t *testing.T) {
	src := `begin for var i: integer := 1 to 10 do print(i); i := 12; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_WhileConditionMustBeBoolean(t *testing.T) {
	src := `begin var n: integer := 1; while n do n := n + 1; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_BooleanExpression(t *testing.T) {
	src := `begin var a: boolean := true and false or not true; end.`
	assert.NoError(t, sema.Analyze(parseSrc(t, src)))
}

func TestAnalyze_IfScopeIsolated(t *testing.T) {
	src := `begin var n: integer := 1; if n > 0 then begin var inner: integer := 2; end inner := 3; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}

func TestAnalyze_RepeatUntilConditionMustBeBoolean(t *testing.T) {
	src := `begin var n: integer := 0; repeat n := n + 1; until n; end.`
	cerr := semanticErr(t, src)
	assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
}
