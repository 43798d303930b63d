// Package transpas translates a small Pascal-like source language into C#.
//
// The pipeline is lex -> parse (against lang.Grammar()) -> sema.Analyze ->
// codegen.Generate, matching the four-pass front end described by
// SPEC_FULL.md §4. Grounded on the teacher's own top-level engine.go, which
// exposes a single constructor wiring its sub-packages together rather than
// making callers assemble the pipeline themselves.
package transpas

import (
	"github.com/wrenfield/transpas/internal/cerrors"
	"github.com/wrenfield/transpas/internal/compiler/codegen"
	"github.com/wrenfield/transpas/internal/compiler/lang"
	"github.com/wrenfield/transpas/internal/compiler/lex"
	"github.com/wrenfield/transpas/internal/compiler/parse"
	"github.com/wrenfield/transpas/internal/compiler/sema"
)

// Translator runs the full lex/parse/sema/codegen pipeline over source
// text. It is safe for concurrent use: every pass takes sole ownership of
// its own input and produces a single output value, with no shared mutable
// state between calls (see SPEC_FULL.md §5).
type Translator struct {
	lexer *lex.Lexer
	names *lang.NameTable
}

// New builds a Translator. names supplies the built-in call, operator, and
// type spellings codegen uses; pass nil to use lang.DefaultNameTable().
func New(names *lang.NameTable) (*Translator, error) {
	lexer, err := lex.New(lang.Rules())
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = lang.DefaultNameTable()
	}
	return &Translator{lexer: lexer, names: names}, nil
}

// Transpile lexes, parses, type-checks, and translates source into its C#
// equivalent. The first error encountered by any pass aborts the pipeline
// and is returned as a *cerrors.Error.
func Transpile(source string) (string, error) {
	t, err := New(nil)
	if err != nil {
		return "", err
	}
	return t.Transpile(source)
}

// Transpile runs t's pipeline over source.
func (t *Translator) Transpile(source string) (string, error) {
	stream, err := t.lexer.Lex(source)
	if err != nil {
		return "", err
	}

	parser, err := parse.New(lang.Grammar())
	if err != nil {
		return "", err
	}

	tree, err := parser.Parse(stream)
	if err != nil {
		return "", err
	}

	if err := sema.Analyze(tree); err != nil {
		return "", err
	}

	return codegen.Generate(tree, t.names), nil
}

// Kind re-exports cerrors.Kind so callers can classify a failed
// Transpile's error without importing internal/cerrors directly.
type Kind = cerrors.Kind
