package lang

import "github.com/wrenfield/transpas/internal/compiler/lex"

// Rules returns the lexer rule list for this language, in priority order.
// Order matters: keyword and literal-type rules precede the identifier
// rule so that e.g. "integer" is tagged as the integer-type terminal, not
// as an identifier, and NUMBER_FLOAT precedes NUMBER_INT so "1.5" lexes as
// one float token rather than an int followed by a dot.
//
// Grounded on original_source/transpiler/settings.py's LEXER_RULES list and
// ordering; extended with downto, the boolean connectives, and the
// single-token string literal this package uses in place of the original's
// three-token quote/id/quote encoding.
func Rules() []lex.Rule {
	return []lex.Rule{
		// declared types
		{Class: IntegerType, Pattern: `\binteger\b`},
		{Class: RealType, Pattern: `\breal\b`},
		{Class: BooleanType, Pattern: `\bboolean\b`},
		{Class: CharType, Pattern: `\bchar\b`},
		{Class: StringType, Pattern: `\bstring\b`},
		{Class: Array, Pattern: `\barray\b`},

		// comparisons (longest-prefix forms before their prefixes)
		{Class: Ne, Pattern: `<>`},
		{Class: Le, Pattern: `<=`},
		{Class: Ge, Pattern: `>=`},
		{Class: Eq, Pattern: `=`},
		{Class: Lt, Pattern: `<`},
		{Class: Gt, Pattern: `>`},

		// assignment / range (longest-prefix forms first)
		{Class: Assign, Pattern: `:=`},
		{Class: PlusAssign, Pattern: `\+=`},
		{Class: MinusAssign, Pattern: `-=`},
		{Class: StarAssign, Pattern: `\*=`},
		{Class: SlashAssign, Pattern: `/=`},
		{Class: Range, Pattern: `\.\.`},

		// arithmetic
		{Class: Plus, Pattern: `\+`},
		{Class: Minus, Pattern: `-`},
		{Class: Star, Pattern: `\*`},
		{Class: Slash, Pattern: `/`},

		// boolean literals and connectives
		{Class: True, Pattern: `\btrue\b`},
		{Class: False, Pattern: `\bfalse\b`},
		{Class: And, Pattern: `\band\b`},
		{Class: Or, Pattern: `\bor\b`},
		{Class: Xor, Pattern: `\bxor\b`},
		{Class: Not, Pattern: `\bnot\b`},

		// other keywords (downto before to: both are word-anchored so order
		// between them doesn't actually matter, but this reads naturally)
		{Class: Var, Pattern: `\bvar\b`},
		{Class: If, Pattern: `\bif\b`},
		{Class: Then, Pattern: `\bthen\b`},
		{Class: Else, Pattern: `\belse\b`},
		{Class: Case, Pattern: `\bcase\b`},
		{Class: Of, Pattern: `\bof\b`},
		{Class: For, Pattern: `\bfor\b`},
		{Class: While, Pattern: `\bwhile\b`},
		{Class: Repeat, Pattern: `\brepeat\b`},
		{Class: Until, Pattern: `\buntil\b`},
		{Class: Downto, Pattern: `\bdownto\b`},
		{Class: Do, Pattern: `\bdo\b`},
		{Class: To, Pattern: `\bto\b`},
		{Class: Begin, Pattern: `\bbegin\b`},
		{Class: End, Pattern: `\bend\b`},
		{Class: Procedure, Pattern: `\bprocedure\b`},
		{Class: Function, Pattern: `\bfunction\b`},

		// general
		{Class: StringLit, Pattern: `'[^']*'`},
		{Class: ID, Pattern: `[_a-zA-Z]\w*`},
		{Class: NumberFloat, Pattern: `[0-9]+\.[0-9]+`},
		{Class: NumberInt, Pattern: `[0-9]+`},
		{Class: LParen, Pattern: `\(`},
		{Class: RParen, Pattern: `\)`},
		{Class: LBracket, Pattern: `\[`},
		{Class: RBracket, Pattern: `\]`},
		{Class: Semi, Pattern: `;`},
		{Class: Colon, Pattern: `:`},
		{Class: Comma, Pattern: `,`},
		{Class: Dot, Pattern: `\.`},
	}
}
