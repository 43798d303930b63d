package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenfield/transpas/internal/compiler/types"
)

func TestVarTypeFromKeyword_CaseInsensitive(t *testing.T) {
	vt, ok := types.VarTypeFromKeyword("Integer")
	assert.True(t, ok)
	assert.Equal(t, types.Integer, vt)

	vt, ok = types.VarTypeFromKeyword("BOOLEAN")
	assert.True(t, ok)
	assert.Equal(t, types.Boolean, vt)

	_, ok = types.VarTypeFromKeyword("notatype")
	assert.False(t, ok)
}

func TestVarType_IsNumeric(t *testing.T) {
	assert.True(t, types.Integer.IsNumeric())
	assert.True(t, types.Real.IsNumeric())
	assert.False(t, types.Boolean.IsNumeric())
	assert.False(t, types.Char.IsNumeric())
	assert.False(t, types.String.IsNumeric())
}
