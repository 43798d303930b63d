package transpas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenfield/transpas"
	"github.com/wrenfield/transpas/internal/cerrors"
)

// Seed scenarios from spec.md §8.

func TestTranspile_TypesHappyPath(t *testing.T) {
	src := `begin var a: integer := 10; var r: real := a; end.`

	out, err := transpas.Transpile(src)
	assert.NoError(t, err)
	assert.Contains(t, out, "int a = 10;")
	assert.Contains(t, out, "double r = a;")
}

func TestTranspile_TypeError(t *testing.T) {
	src := `begin var c: real := 10.0; var b: integer := c; end.`

	_, err := transpas.Transpile(src)
	if assert.Error(t, err) {
		cerr, ok := err.(*cerrors.Error)
		if assert.True(t, ok, "expected a *cerrors.Error") {
			assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
		}
	}
}

func TestTranspile_ForLoopIteratorImmutability(t *testing.T) {
	src := `begin for var i: integer := 1 to 10 do i := i + 1; i := 12; end.`

	_, err := transpas.Transpile(src)
	if assert.Error(t, err) {
		cerr, ok := err.(*cerrors.Error)
		if assert.True(t, ok, "expected a *cerrors.Error") {
			assert.Equal(t, cerrors.KindSemantic, cerr.Kind())
		}
	}
}

func TestTranspile_GlobalAndMainSplit(t *testing.T) {
	src := `var g1: boolean := true and false or true; begin var a: integer := 1; a := 2; end.`

	out, err := transpas.Transpile(src)
	assert.NoError(t, err)
	assert.Contains(t, out, "static bool g1 = true && false || true;")
	assert.Contains(t, out, "int a = 1;")
	assert.Contains(t, out, "a = 2;")
}

func TestTranspile_Downto(t *testing.T) {
	src := `begin for var i: integer := 10 downto 3 do print(i); end.`

	out, err := transpas.Transpile(src)
	assert.NoError(t, err)
	assert.Contains(t, out, "for (int i = 10; i >= 3; i--)")
}

func TestTranspile_Pure(t *testing.T) {
	src := `begin var a: integer := 10; var r: real := a; end.`

	first, err := transpas.Transpile(src)
	assert.NoError(t, err)

	second, err := transpas.Transpile(src)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
