// Package parse implements the non-recursive, table-driven LL(1) predictive
// parser: it drives a token stream against a compiled grammar table and
// produces a parse tree, or fails with a syntax error at the first
// lookahead the table has no entry for.
//
// Grounded on internal/ictiobus/parse/ll1.go's dual-stack (symbol stack +
// parse-tree-node stack) algorithm, adapted to this package's
// grammar.Table/types.Node shapes.
package parse

import (
	"github.com/wrenfield/transpas/internal/cerrors"
	"github.com/wrenfield/transpas/internal/compiler/grammar"
	"github.com/wrenfield/transpas/internal/compiler/types"
)

// TokenStream is the pull-based interface the parser consumes. lex.TokenStream
// satisfies it; it is declared separately here so parse does not need to
// import lex.
type TokenStream interface {
	Peek() types.Token
	Next() types.Token
	HasNext() bool
}

// Parser drives a token stream against a compiled LL(1) grammar table.
type Parser struct {
	g     *grammar.Grammar
	table *grammar.Table
}

// New compiles g and returns a Parser ready to parse token streams against
// it. It fails with a KindGrammar error if g is not LL(1).
func New(g *grammar.Grammar) (*Parser, error) {
	table, err := g.Compile()
	if err != nil {
		return nil, err
	}
	return &Parser{g: g, table: table}, nil
}

// Parse consumes stream to completion and returns the parse tree rooted at
// the grammar's start symbol. The work stack (of symbol names) is seeded
// [start, EOI], matching spec.md §4.3; EOI is a sentinel never attached to
// any node.
func (p *Parser) Parse(stream TokenStream) (*types.ParseTree, error) {
	start := p.table.Start
	root := types.NewNode(types.NonTerminal(start))

	symStack := []string{start, grammar.EOI}
	nodeStack := []*types.Node{root, nil}

	lookahead := stream.Peek()
	lastLine := lookahead.Line()

	for {
		head := symStack[len(symStack)-1]
		node := nodeStack[len(nodeStack)-1]

		if head == grammar.EOI {
			if lookahead.Class().ID() == grammar.EOI {
				return &types.ParseTree{Root: root}, nil
			}
			return nil, cerrors.Syntax(lookahead.Lexeme(), lookahead.Line(), "expected end of input")
		}

		if p.g.IsTerminal(head) {
			if lookahead.Class().ID() == head {
				tok := stream.Next()
				node.Tok = &tok
				lastLine = tok.Line()
				symStack = symStack[:len(symStack)-1]
				nodeStack = nodeStack[:len(nodeStack)-1]
				lookahead = stream.Peek()
				continue
			}
			if lookahead.Class().ID() == grammar.EOI {
				return nil, cerrors.UnexpectedEOI(lastLine)
			}
			return nil, cerrors.Syntax(lookahead.Lexeme(), lookahead.Line(),
				"expected %s", head)
		}

		// head is a non-terminal: consult the predict table.
		rule, ok := p.table.Lookup(head, lookahead.Class().ID())
		if !ok {
			if lookahead.Class().ID() == grammar.EOI {
				return nil, cerrors.UnexpectedEOI(lastLine)
			}
			return nil, cerrors.Syntax(lookahead.Lexeme(), lookahead.Line(),
				"unexpected token while parsing %s", head)
		}

		symStack = symStack[:len(symStack)-1]
		nodeStack = nodeStack[:len(nodeStack)-1]

		var children []*types.Node
		for _, name := range rule.Chain {
			if name == grammar.Lambda {
				continue
			}
			var sym types.Symbol
			if p.g.IsTerminal(name) {
				sym = types.Terminal(name)
			} else {
				sym = types.NonTerminal(name)
			}
			child := types.NewNode(sym)
			node.AddChild(child)
			children = append(children, child)
		}

		for i := len(children) - 1; i >= 0; i-- {
			symStack = append(symStack, children[i].Sym.Name())
			nodeStack = append(nodeStack, children[i])
		}
	}
}
