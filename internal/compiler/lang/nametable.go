package lang

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wrenfield/transpas/internal/compiler/types"
)

// NameTable maps source-language built-in call names and operators to their
// target-library spellings. codegen consults it once per identifier call
// and once per operator token; everything not present falls back to the
// source spelling unchanged.
//
// Grounded on original_source/transpiler/code_generator.py's SHARP_TOKENS
// lookup (a bare dict literal in the retrieved snapshot, with no entries
// surviving in the retrieval pack) and SharpVarType.type_to_sharp. Loading
// it from TOML instead of a hardcoded map is this package's own addition,
// wiring BurntSushi/toml the way it is used elsewhere in the pack for
// static configuration.
type NameTable struct {
	Calls     map[string]string `toml:"calls"`
	Operators map[string]string `toml:"operators"`
	Types     map[string]string `toml:"types"`
}

// DefaultNameTable is the built-in mapping used when no TOML override is
// loaded: the handful of Pascal-standard library calls this translator
// recognizes, mapped onto their .NET equivalents, plus the VarType ->
// target-type-keyword table code_generator.py's SharpVarType encodes.
func DefaultNameTable() *NameTable {
	return &NameTable{
		Calls: map[string]string{
			"print":   "Console.Write",
			"println": "Console.WriteLine",
			"writeln": "Console.WriteLine",
			"write":   "Console.Write",
			"readln":  "Console.ReadLine",
			"read":    "Console.Read",
			"sqrt":    "Sqrt",
			"abs":     "Abs",
			"round":   "Round",
			"trunc":   "Truncate",
			"length":  "Length",
		},
		Operators: map[string]string{
			Eq.ID():  "==",
			Ne.ID():  "!=",
			Le.ID():  "<=",
			Lt.ID():  "<",
			Ge.ID():  ">=",
			Gt.ID():  ">",
			Plus.ID():  "+",
			Minus.ID(): "-",
			Star.ID():  "*",
			Slash.ID(): "/",
			And.ID(): "&&",
			Or.ID():  "||",
			Not.ID(): "!",
			Xor.ID(): "^",
		},
		Types: map[string]string{
			types.Integer.String(): "int",
			types.Real.String():    "double",
			types.Boolean.String(): "bool",
			types.Char.String():    "char",
			types.String.String():  "string",
		},
	}
}

// LoadNameTable reads a TOML name table from path, falling back to
// DefaultNameTable's entries for any key the file does not override.
func LoadNameTable(path string) (*NameTable, error) {
	nt := DefaultNameTable()
	var override NameTable
	if _, err := toml.DecodeFile(path, &override); err != nil {
		return nil, fmt.Errorf("loading name table from %s: %w", path, err)
	}
	for k, v := range override.Calls {
		nt.Calls[k] = v
	}
	for k, v := range override.Operators {
		nt.Operators[k] = v
	}
	for k, v := range override.Types {
		nt.Types[k] = v
	}
	return nt, nil
}

// Call returns the target spelling for a built-in call name, or name itself
// if this table has no entry for it (sema does not check call names, so an
// unknown name is passed through unchanged, not reported). Lookup is
// case-insensitive since the
// lexer's identifier rule is too.
func (nt *NameTable) Call(name string) string {
	if v, ok := nt.Calls[strings.ToLower(name)]; ok {
		return v
	}
	return name
}

// Operator returns the target spelling for an operator terminal ID.
func (nt *NameTable) Operator(terminalID string) string {
	if v, ok := nt.Operators[terminalID]; ok {
		return v
	}
	return terminalID
}

// Type returns the target type keyword for a VarType.
func (nt *NameTable) Type(t types.VarType) string {
	if v, ok := nt.Types[t.String()]; ok {
		return v
	}
	return t.String()
}
