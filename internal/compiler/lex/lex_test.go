package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenfield/transpas/internal/compiler/types"
)

func testRules() []Rule {
	return []Rule{
		{Class: types.NewTokenClass("VAR"), Pattern: `\bvar\b`},
		{Class: types.NewTokenClass("BEGIN"), Pattern: `\bbegin\b`},
		{Class: types.NewTokenClass("END"), Pattern: `\bend\b`},
		{Class: types.NewTokenClass("ASSIGN"), Pattern: `:=`},
		{Class: types.NewTokenClass("COLON"), Pattern: `:`},
		{Class: types.NewTokenClass("SEMI"), Pattern: `;`},
		{Class: types.NewTokenClass("DOT"), Pattern: `\.`},
		{Class: types.NewTokenClass("NUMBER_INT"), Pattern: `[0-9]+`},
		{Class: types.NewTokenClass("ID"), Pattern: `[_a-zA-Z]\w*`},
	}
}

func Test_Lex_basicProgram(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}

	stream, err := lx.Lex("begin var a := 10; end.")
	if !assert.NoError(t, err) {
		return
	}

	var got []string
	for stream.HasNext() {
		got = append(got, stream.Next().Lexeme())
	}
	assert.Equal(t, []string{"begin", "var", "a", ":=", "10", ";", "end", "."}, got)
}

func Test_Lex_keywordBoundary(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}

	stream, err := lx.Lex("variable")
	if !assert.NoError(t, err) {
		return
	}
	tok := stream.Next()
	assert.Equal(t, "ID", tok.Class().ID())
	assert.Equal(t, "variable", tok.Lexeme())
}

func Test_Lex_lineComment(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}
	stream, err := lx.Lex("var // this is a var\na")
	if !assert.NoError(t, err) {
		return
	}
	first := stream.Next()
	assert.Equal(t, "VAR", first.Class().ID())
	second := stream.Next()
	assert.Equal(t, "ID", second.Class().ID())
	assert.Equal(t, 2, second.Line())
}

func Test_Lex_blockComment(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}
	stream, err := lx.Lex("var { a block\ncomment } a")
	if !assert.NoError(t, err) {
		return
	}
	first := stream.Next()
	assert.Equal(t, "VAR", first.Class().ID())
	second := stream.Next()
	assert.Equal(t, "ID", second.Class().ID())
	assert.Equal(t, 2, second.Line())
}

func Test_Lex_unterminatedBlockComment(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}
	_, err = lx.Lex("var { never closed")
	if !assert.Error(t, err) {
		return
	}
	assert.Equal(t, "{ at line 1", err.Error())
}

func Test_Lex_unexpectedChar(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}
	_, err = lx.Lex("a % b")
	if !assert.Error(t, err) {
		return
	}
	assert.Equal(t, "% at line 1", err.Error())
}

func Test_Lex_endsWithEOI(t *testing.T) {
	lx, err := New(testRules())
	if !assert.NoError(t, err) {
		return
	}
	stream, err := lx.Lex("a")
	if !assert.NoError(t, err) {
		return
	}
	stream.Next()
	assert.False(t, stream.HasNext())
	assert.Equal(t, types.EOIClass, stream.Peek().Class())
}
