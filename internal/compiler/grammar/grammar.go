// Package grammar computes FIRST, FOLLOW, and an LL(1) predict table from an
// ordered list of context-free rules, and rejects grammars that are not
// LL(1).
//
// Grounded on internal/ictiobus/grammar/grammar_test.go (teacher) for the
// Rule/Production/AddTerm/AddRule/Validate API shape - the real grammar.go
// implementation file was not present in the retrieval pack, so the test
// file's usage is taken as the contract being reimplemented against, with
// FIRST/FOLLOW/predict-table construction authored directly from spec.md
// §4.2's fixed-point definitions.
package grammar

import (
	"fmt"

	"github.com/wrenfield/transpas/internal/cerrors"
	"github.com/wrenfield/transpas/internal/compiler/types"
	"github.com/wrenfield/transpas/internal/util"
)

// Lambda is the symbol name used in a Production to denote the empty
// production, matching types.LambdaSymbol's display name.
const Lambda = "λ"

// EOI is the symbol name used for the end-of-input terminal in FOLLOW sets
// and predict-table columns.
const EOI = "$"

// Production is one alternative right-hand side of a rule: an ordered chain
// of symbol names. A production of exactly [Lambda] denotes the empty
// production.
type Production []string

func (p Production) String() string {
	if len(p) == 0 || (len(p) == 1 && p[0] == Lambda) {
		return Lambda
	}
	out := ""
	for i, s := range p {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

// IsEpsilon reports whether p is the empty production.
func (p Production) IsEpsilon() bool {
	return len(p) == 0 || (len(p) == 1 && p[0] == Lambda)
}

// Rule is every alternative right-hand side registered for one
// non-terminal, in the order AddRule was called.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// NormalizedRule is one alternative flattened out of a Rule: a single
// (head, chain) pair. Two normalized rules are equal iff both the head and
// the chain match exactly.
type NormalizedRule struct {
	Head  string
	Chain Production
}

func (r NormalizedRule) String() string {
	return fmt.Sprintf("%s -> %s", r.Head, r.Chain)
}

// Equal reports whether r and o name the same head and an identical chain.
func (r NormalizedRule) Equal(o NormalizedRule) bool {
	if r.Head != o.Head || len(r.Chain) != len(o.Chain) {
		return false
	}
	for i := range r.Chain {
		if r.Chain[i] != o.Chain[i] {
			return false
		}
	}
	return true
}

// Grammar is an ordered list of rules plus the set of terminals it was
// built against. The zero value is ready to use.
type Grammar struct {
	order     []string
	rules     map[string]*Rule
	terminals map[string]types.TokenClass
	start     string
}

// AddTerm registers a terminal by the name it will be referenced by in
// productions (normally a TokenClass's ID()).
func (g *Grammar) AddTerm(name string, class types.TokenClass) {
	if g.terminals == nil {
		g.terminals = map[string]types.TokenClass{}
	}
	g.terminals[name] = class
}

// AddRule appends prod as one more alternative for nonterm, creating the
// rule on first use. The first non-terminal ever added becomes the
// grammar's start symbol unless SetStart overrides it.
func (g *Grammar) AddRule(nonterm string, prod Production) {
	if g.rules == nil {
		g.rules = map[string]*Rule{}
	}
	r, ok := g.rules[nonterm]
	if !ok {
		r = &Rule{NonTerminal: nonterm}
		g.rules[nonterm] = r
		g.order = append(g.order, nonterm)
		if g.start == "" {
			g.start = nonterm
		}
	}
	r.Productions = append(r.Productions, prod)
}

// SetStart overrides the default (first-rule-added) start symbol.
func (g *Grammar) SetStart(nonterm string) {
	g.start = nonterm
}

// StartSymbol returns the grammar's designated start non-terminal.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// IsTerminal reports whether name was registered with AddTerm.
func (g *Grammar) IsTerminal(name string) bool {
	_, ok := g.terminals[name]
	return ok
}

// IsNonTerminal reports whether name has at least one rule.
func (g *Grammar) IsNonTerminal(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Rule returns the rule registered for nonterm, if any.
func (g *Grammar) Rule(nonterm string) (Rule, bool) {
	r, ok := g.rules[nonterm]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// NonTerminals returns every non-terminal with at least one rule, in the
// order their first production was added.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Validate checks structural well-formedness: the grammar has at least one
// terminal and one rule, and every symbol named in every production is
// either a known terminal, a known non-terminal, or the lambda marker.
func (g *Grammar) Validate() error {
	if len(g.terminals) == 0 {
		return cerrors.Grammar("grammar has no terminals")
	}
	if len(g.rules) == 0 {
		return cerrors.Grammar("grammar has no rules")
	}
	for _, nonterm := range g.order {
		r := g.rules[nonterm]
		for _, prod := range r.Productions {
			if prod.IsEpsilon() {
				continue
			}
			for _, sym := range prod {
				if sym == EOI {
					continue
				}
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					return cerrors.Grammar("rule %s -> %s references unknown symbol %q", nonterm, prod, sym)
				}
			}
		}
	}
	return nil
}

// Table is the output of Compile: the FIRST and FOLLOW sets of every
// non-terminal and the LL(1) predict table built from them.
type Table struct {
	First   map[string]util.StringSet
	Follow  map[string]util.StringSet
	Predict map[string]map[string]NormalizedRule
	Start   string
}

// Lookup returns the production to apply when nonterm is on top of the
// parser's stack and terminal is the lookahead.
func (t *Table) Lookup(nonterm, terminal string) (NormalizedRule, bool) {
	col, ok := t.Predict[nonterm]
	if !ok {
		return NormalizedRule{}, false
	}
	rule, ok := col[terminal]
	return rule, ok
}

// Compile validates g, then computes FIRST, FOLLOW, and the predict table.
// It returns a *cerrors.Error (KindGrammar) if the grammar is not LL(1): two
// alternatives of a rule would occupy the same [non-terminal][terminal] cell,
// even when the two alternatives are spelled identically.
func (g *Grammar) Compile() (*Table, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	first := g.computeFirst()
	follow := g.computeFollow(first)

	predict := map[string]map[string]NormalizedRule{}
	for _, nonterm := range g.order {
		predict[nonterm] = map[string]NormalizedRule{}
		owner := map[string]int{}
		r := g.rules[nonterm]
		for alt, prod := range r.Productions {
			normalized := NormalizedRule{Head: nonterm, Chain: prod}
			s := g.firstOfChain(prod, first)

			for _, t := range s.Elements() {
				if t == Lambda {
					continue
				}
				if err := insert(predict[nonterm], owner, alt, t, normalized); err != nil {
					return nil, err
				}
			}
			if s.Has(Lambda) {
				for _, f := range follow[nonterm].Elements() {
					if err := insert(predict[nonterm], owner, alt, f, normalized); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return &Table{First: first, Follow: follow, Predict: predict, Start: g.start}, nil
}

// insert places rule in col[terminal]. owner records which alternative (by
// its index alt in the rule) filled each cell, so that a second alternative
// landing in an occupied cell is a collision even if its chain is equal to
// the first one's, while one alternative reaching a cell twice is not.
func insert(col map[string]NormalizedRule, owner map[string]int, alt int, terminal string, rule NormalizedRule) error {
	existing, occupied := col[terminal]
	if occupied && owner[terminal] != alt {
		return cerrors.Grammar("grammar is not LL(1): [%s][%s] has colliding productions %q and %q",
			rule.Head, terminal, existing, rule)
	}
	col[terminal] = rule
	owner[terminal] = alt
	return nil
}

// computeFirst computes FIRST(N) for every non-terminal N by fixed-point
// iteration, per spec.md §4.2: FIRST(ε)={λ}; FIRST(t·β)={t} for a terminal
// t; FIRST(A·β) = (FIRST(A)∖{λ}) ∪ (if λ∈FIRST(A) then FIRST(β) else ∅).
func (g *Grammar) computeFirst() map[string]util.StringSet {
	first := map[string]util.StringSet{}
	for _, nonterm := range g.order {
		first[nonterm] = util.NewStringSet()
	}

	for changed := true; changed; {
		changed = false
		for _, nonterm := range g.order {
			r := g.rules[nonterm]
			for _, prod := range r.Productions {
				s := g.firstOfChain(prod, first)
				before := first[nonterm].Len()
				first[nonterm].AddAll(s)
				if first[nonterm].Len() != before {
					changed = true
				}
			}
		}
	}
	return first
}

// firstOfChain computes FIRST over a whole production, given an
// (possibly still-converging) FIRST table for non-terminals.
func (g *Grammar) firstOfChain(chain Production, first map[string]util.StringSet) util.StringSet {
	result := util.NewStringSet()
	if chain.IsEpsilon() {
		result.Add(Lambda)
		return result
	}

	for _, sym := range chain {
		var symFirst util.StringSet
		switch {
		case sym == EOI:
			symFirst = util.NewStringSet()
			symFirst.Add(EOI)
		case g.IsTerminal(sym):
			symFirst = util.NewStringSet()
			symFirst.Add(sym)
		default:
			symFirst = first[sym]
		}

		hasLambda := symFirst.Has(Lambda)
		for _, t := range symFirst.Elements() {
			if t != Lambda {
				result.Add(t)
			}
		}
		if !hasLambda {
			return result
		}
	}
	// every symbol in the chain could derive λ
	result.Add(Lambda)
	return result
}

// computeFollow computes FOLLOW(N) for every non-terminal N by fixed-point
// iteration, per spec.md §4.2.
func (g *Grammar) computeFollow(first map[string]util.StringSet) map[string]util.StringSet {
	follow := map[string]util.StringSet{}
	for _, nonterm := range g.order {
		follow[nonterm] = util.NewStringSet()
	}
	follow[g.start].Add(EOI)

	for changed := true; changed; {
		changed = false
		for _, nonterm := range g.order {
			r := g.rules[nonterm]
			for _, prod := range r.Productions {
				for i, sym := range prod {
					if sym == Lambda || !g.IsNonTerminal(sym) {
						continue
					}
					rest := prod[i+1:]
					restFirst := g.firstOfChain(rest, first)

					before := follow[sym].Len()
					for _, t := range restFirst.Elements() {
						if t != Lambda {
							follow[sym].Add(t)
						}
					}
					if restFirst.Has(Lambda) {
						follow[sym].AddAll(follow[nonterm])
					}
					if follow[sym].Len() != before {
						changed = true
					}
				}
			}
		}
	}
	return follow
}
