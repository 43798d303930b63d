package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenfield/transpas/internal/compiler/lang"
	"github.com/wrenfield/transpas/internal/compiler/types"
)

func TestDefaultNameTable_Calls(t *testing.T) {
	nt := lang.DefaultNameTable()

	assert.Equal(t, "Console.Write", nt.Call("print"))
	assert.Equal(t, "Console.WriteLine", nt.Call("println"))
	assert.Equal(t, "Console.WriteLine", nt.Call("writeln"))
	assert.Equal(t, "Sqrt", nt.Call("sqrt"))

	// case-insensitive, since the lexer's identifier rule is too
	assert.Equal(t, "Console.Write", nt.Call("Print"))

	// unknown calls pass through unchanged
	assert.Equal(t, "myProc", nt.Call("myProc"))
}

func TestDefaultNameTable_Types(t *testing.T) {
	nt := lang.DefaultNameTable()

	assert.Equal(t, "int", nt.Type(types.Integer))
	assert.Equal(t, "double", nt.Type(types.Real))
	assert.Equal(t, "bool", nt.Type(types.Boolean))
	assert.Equal(t, "char", nt.Type(types.Char))
	assert.Equal(t, "string", nt.Type(types.String))
}
