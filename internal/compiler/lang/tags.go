// Package lang is the concrete definition of this translator's source
// language: its terminal set, lexer rules, grammar, and the default
// target-library name table. Everything in internal/compiler/{lex,grammar,
// parse,sema,codegen} is generic over types.TokenClass and symbol names;
// this package is the one place that says what those names actually are.
//
// Grounded on original_source/transpiler/base.py's Tag enum for the
// terminal set and original_source/transpiler/settings.py's LEXER_RULES for
// pattern choice and ordering, extended with the boolean connectives
// (and/or/not/xor), downto, and compound-assignment operators spec.md
// requires that the retrieved base.py/settings.py snapshot only partially
// covers.
package lang

import "github.com/wrenfield/transpas/internal/compiler/types"

// Keywords.
var (
	Var       = types.NewTokenClass("VAR")
	Begin     = types.NewTokenClass("BEGIN")
	End       = types.NewTokenClass("END")
	If        = types.NewTokenClass("IF")
	Then      = types.NewTokenClass("THEN")
	Else      = types.NewTokenClass("ELSE")
	Case      = types.NewTokenClass("CASE")
	Of        = types.NewTokenClass("OF")
	For       = types.NewTokenClass("FOR")
	While     = types.NewTokenClass("WHILE")
	Repeat    = types.NewTokenClass("REPEAT")
	Until     = types.NewTokenClass("UNTIL")
	Do        = types.NewTokenClass("DO")
	To        = types.NewTokenClass("TO")
	Downto    = types.NewTokenClass("DOWNTO")
	Procedure = types.NewTokenClass("PROCEDURE")
	Function  = types.NewTokenClass("FUNCTION")
	Array     = types.NewTokenClass("ARRAY")
)

// Declared types.
var (
	IntegerType = types.NewTokenClass("INTEGER")
	RealType    = types.NewTokenClass("REAL")
	BooleanType = types.NewTokenClass("BOOLEAN")
	CharType    = types.NewTokenClass("CHAR")
	StringType  = types.NewTokenClass("STRING")
)

// Boolean literals and connectives.
var (
	True = types.NewTokenClass("TRUE")
	False = types.NewTokenClass("FALSE")
	And  = types.NewTokenClass("AND")
	Or   = types.NewTokenClass("OR")
	Not  = types.NewTokenClass("NOT")
	Xor  = types.NewTokenClass("XOR")
)

// Assignment operators. Only Assign is implemented by the semantic
// analyzer; the compound forms are recognized by the lexer and grammar but
// raise cerrors.NotImplemented when reached.
var (
	Assign      = types.NewTokenClass(":=")
	PlusAssign  = types.NewTokenClass("+=")
	MinusAssign = types.NewTokenClass("-=")
	StarAssign  = types.NewTokenClass("*=")
	SlashAssign = types.NewTokenClass("/=")
	Range       = types.NewTokenClass("..")
)

// Comparisons.
var (
	Eq = types.NewTokenClass("=")
	Ne = types.NewTokenClass("<>")
	Le = types.NewTokenClass("<=")
	Lt = types.NewTokenClass("<")
	Ge = types.NewTokenClass(">=")
	Gt = types.NewTokenClass(">")
)

// Arithmetic operators.
var (
	Plus  = types.NewTokenClass("+")
	Minus = types.NewTokenClass("-")
	Star  = types.NewTokenClass("*")
	Slash = types.NewTokenClass("/")
)

// Punctuation.
var (
	LParen   = types.NewTokenClass("(")
	RParen   = types.NewTokenClass(")")
	LBracket = types.NewTokenClass("[")
	RBracket = types.NewTokenClass("]")
	Semi     = types.NewTokenClass(";")
	Colon    = types.NewTokenClass(":")
	Comma    = types.NewTokenClass(",")
	Dot      = types.NewTokenClass(".")
)

// General literals.
var (
	ID          = types.NewTokenClass("ID")
	NumberInt   = types.NewTokenClass("NUMBER_INT")
	NumberFloat = types.NewTokenClass("NUMBER_FLOAT")
	StringLit   = types.NewTokenClass("STRINGLIT")
)

// typeKeywords maps a declared-type keyword's terminal ID to the VarType it
// names.
var typeKeywords = map[string]types.VarType{
	IntegerType.ID(): types.Integer,
	RealType.ID():    types.Real,
	BooleanType.ID(): types.Boolean,
	CharType.ID():    types.Char,
	StringType.ID():  types.String,
}

// VarTypeOf returns the VarType a declared-type keyword terminal names.
func VarTypeOf(terminalID string) (types.VarType, bool) {
	t, ok := typeKeywords[terminalID]
	return t, ok
}
