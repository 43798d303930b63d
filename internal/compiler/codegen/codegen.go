// Package codegen implements the syntax-directed emission pass: given a
// parse tree that has already passed sema.Analyze, it walks the same tree
// shapes and produces a target-language program.
//
// Grounded on original_source/transpiler/code_generator.py's two-buffer
// split (globals/main) and its mapping table (SharpVarType.type_to_sharp,
// SHARP_TOKENS, main_template), but restructured from the original's
// single flat pre-order token scan driven by a dozen boolean flags into a
// direct recursive descent over the real parse tree this package's parser
// already builds - the structural leaf-classification tricks sema.go needs
// for the original's exec()-based boolean check have no equivalent need
// here, since codegen only re-spells tokens sema has already validated.
package codegen

import (
	"strings"

	"github.com/wrenfield/transpas/internal/compiler/lang"
	"github.com/wrenfield/transpas/internal/compiler/types"
)

// Generate walks tree (the output of a parser built over lang.Grammar(),
// already accepted by sema.Analyze) and returns the translated program
// text. nt supplies the built-in call, operator, and type name spellings;
// pass lang.DefaultNameTable() for the stock mapping.
func Generate(tree *types.ParseTree, nt *lang.NameTable) string {
	g := &generator{nt: nt, scopes: []map[string]types.VarType{{}}}
	root := tree.Root
	g.globalDecls(root.Children[0])
	g.stmtList(root.Children[2])
	return g.assemble()
}

type generator struct {
	nt      *lang.NameTable
	scopes  []map[string]types.VarType
	globals strings.Builder
	main    strings.Builder
	depth   int
}

func (g *generator) pushScope() { g.scopes = append(g.scopes, map[string]types.VarType{}) }
func (g *generator) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

func (g *generator) declare(name string, t types.VarType) {
	g.scopes[len(g.scopes)-1][name] = t
}

func (g *generator) lookup(name string) types.VarType {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if t, ok := g.scopes[i][name]; ok {
			return t
		}
	}
	return types.String // unreachable once sema.Analyze has accepted the tree
}

func headName(n *types.Node) string {
	if n.Tok != nil {
		return n.Tok.Class().ID()
	}
	return n.Sym.Name()
}

func (g *generator) indent() {
	g.main.WriteString(strings.Repeat(" ", 8+4*g.depth))
}

func declVarType(n *types.Node) (string, types.VarType) {
	name := n.Children[1].Tok.Lexeme()
	vtype, _ := types.VarTypeFromKeyword(n.Children[3].Children[0].Tok.Lexeme())
	return name, vtype
}

// --- declarations ---------------------------------------------------------

func (g *generator) globalDecls(n *types.Node) {
	for len(n.Children) > 0 {
		g.globalVarDecl(n.Children[0])
		n = n.Children[1]
	}
}

func (g *generator) globalVarDecl(n *types.Node) {
	name, vtype := declVarType(n)
	g.declare(name, vtype)
	g.globals.WriteString("        static " + g.nt.Type(vtype) + " " + name)
	if optAssign := n.Children[4]; len(optAssign.Children) > 0 {
		g.globals.WriteString(" = " + g.expr(optAssign.Children[1], vtype))
	}
	g.globals.WriteString(";\n")
}

func (g *generator) localVarDecl(n *types.Node) {
	name, vtype := declVarType(n)
	g.declare(name, vtype)
	g.indent()
	g.main.WriteString(g.nt.Type(vtype) + " " + name)
	if optAssign := n.Children[4]; len(optAssign.Children) > 0 {
		g.main.WriteString(" = " + g.expr(optAssign.Children[1], vtype))
	}
	g.main.WriteString(";\n")
}

// --- statements -------------------------------------------------------

func (g *generator) stmtList(n *types.Node) {
	for len(n.Children) > 0 {
		g.stmt(n.Children[0])
		n = n.Children[1]
	}
}

func (g *generator) stmt(n *types.Node) {
	head := n.Children[0]
	switch headName(head) {
	case lang.NTVarDecl:
		g.localVarDecl(head)
	case lang.ID.ID():
		g.assignOrCall(head, n.Children[1])
	case lang.If.ID():
		g.ifStmt(n)
	case lang.NTForStmt:
		g.forStmt(head)
	case lang.NTWhileStmt:
		g.whileStmt(head)
	case lang.NTRepeatStmt:
		g.repeatStmt(head)
	case lang.Begin.ID():
		g.compound(n.Children[1])
	}
}

func (g *generator) bodyStmt(n *types.Node) {
	head := n.Children[0]
	switch headName(head) {
	case lang.NTVarDecl:
		g.localVarDecl(head)
	case lang.ID.ID():
		g.assignOrCall(head, n.Children[1])
	case lang.If.ID():
		g.ifBodyStmt(n)
	case lang.NTForStmt:
		g.forStmt(head)
	case lang.NTWhileStmt:
		g.whileStmt(head)
	case lang.NTRepeatStmt:
		g.repeatStmt(head)
	case lang.Begin.ID():
		g.compound(n.Children[1])
	}
}

func (g *generator) compound(stmtList *types.Node) {
	g.indent()
	g.main.WriteString("{\n")
	g.pushScope()
	g.depth++
	g.stmtList(stmtList)
	g.depth--
	g.popScope()
	g.indent()
	g.main.WriteString("}\n")
}

// bodyAsBlock emits a for/while/if body: braces only when the source body
// itself is a begin...end block, per the mapping table's begin/end -> {/}
// row - an inlined single-statement body stays inline.
func (g *generator) bodyAsBlock(body *types.Node) {
	g.pushScope()
	if headName(body.Children[0]) == lang.Begin.ID() {
		g.bodyStmt(body)
	} else {
		g.depth++
		g.bodyStmt(body)
		g.depth--
	}
	g.popScope()
}

func (g *generator) assignOrCall(idLeaf, tail *types.Node) {
	name := idLeaf.Tok.Lexeme()
	head := tail.Children[0]
	g.indent()
	if headName(head) == lang.NTAssignOp {
		target := g.lookup(name)
		g.main.WriteString(name + " = " + g.expr(tail.Children[1], target) + ";\n")
		return
	}
	g.main.WriteString(g.nt.Call(name) + "(" + g.argList(tail.Children[1]) + ");\n")
}

func (g *generator) ifStmt(n *types.Node) {
	cond, body, tail := n.Children[1], n.Children[3], n.Children[4]
	g.indent()
	g.main.WriteString("if (" + g.expr(cond, types.Boolean) + ")\n")
	g.bodyAsBlock(body)
	if len(tail.Children) == 0 {
		return
	}
	g.indent()
	g.main.WriteString("else\n")
	g.bodyAsBlock(tail.Children[1])
}

func (g *generator) ifBodyStmt(n *types.Node) {
	cond, thenBody, elseBody := n.Children[1], n.Children[3], n.Children[5]
	g.indent()
	g.main.WriteString("if (" + g.expr(cond, types.Boolean) + ")\n")
	g.bodyAsBlock(thenBody)
	g.indent()
	g.main.WriteString("else\n")
	g.bodyAsBlock(elseBody)
}

func (g *generator) forStmt(n *types.Node) {
	idLeaf := n.Children[2]
	typeNode := n.Children[4]
	startExpr := n.Children[6]
	dirNode := n.Children[7]
	endExpr := n.Children[8]
	body := n.Children[10]

	name := idLeaf.Tok.Lexeme()
	vtype, _ := types.VarTypeFromKeyword(typeNode.Children[0].Tok.Lexeme())
	downto := headName(dirNode.Children[0]) == lang.Downto.ID()

	cmp, step := "<=", name+"++"
	if downto {
		cmp, step = ">=", name+"--"
	}

	init := g.nt.Type(vtype) + " " + name + " = " + g.expr(startExpr, vtype)
	cond := name + " " + cmp + " " + g.expr(endExpr, vtype)

	g.indent()
	g.main.WriteString("for (" + init + "; " + cond + "; " + step + ")\n")

	g.pushScope()
	g.declare(name, vtype)
	if headName(body.Children[0]) == lang.Begin.ID() {
		g.bodyStmt(body)
	} else {
		g.depth++
		g.bodyStmt(body)
		g.depth--
	}
	g.popScope()
}

func (g *generator) whileStmt(n *types.Node) {
	g.indent()
	g.main.WriteString("while (" + g.expr(n.Children[1], types.Boolean) + ")\n")
	g.bodyAsBlock(n.Children[3])
}

func (g *generator) repeatStmt(n *types.Node) {
	stmtList, untilExpr := n.Children[1], n.Children[3]
	g.indent()
	g.main.WriteString("do\n")
	g.indent()
	g.main.WriteString("{\n")
	g.pushScope()
	g.depth++
	g.stmtList(stmtList)
	g.depth--
	g.popScope()
	g.indent()
	g.main.WriteString("} while (" + g.expr(untilExpr, types.Boolean) + ");\n")
}

// --- expressions --------------------------------------------------------
//
// target carries the quoting context a quoted-literal leaf should use
// (char vs string); it is the declared type of the variable this expression
// is being declared or assigned to. Comparison operands inherit the
// enclosing target (Boolean in an if/while/until condition), so a quoted
// literal compared against a char variable there is emitted in string form,
// not as a char literal. Call arguments have no single
// meaningful target, so they default to string context, matching the
// original's own is_char_declaration default.

func (g *generator) argList(n *types.Node) string {
	if len(n.Children) == 0 {
		return ""
	}
	parts := []string{g.expr(n.Children[0], types.String)}
	tail := n.Children[1]
	for len(tail.Children) > 0 {
		parts = append(parts, g.expr(tail.Children[1], types.String))
		tail = tail.Children[2]
	}
	return strings.Join(parts, ", ")
}

func (g *generator) expr(n *types.Node, target types.VarType) string {
	return g.boolTerm(n.Children[0], target) + g.orTail(n.Children[1], target)
}

func (g *generator) orTail(n *types.Node, target types.VarType) string {
	if len(n.Children) == 0 {
		return ""
	}
	op := g.nt.Operator(n.Children[0].Tok.Class().ID())
	right := g.boolTerm(n.Children[1], target)
	return " " + op + " " + right + g.orTail(n.Children[2], target)
}

func (g *generator) boolTerm(n *types.Node, target types.VarType) string {
	return g.boolFactor(n.Children[0], target) + g.andTail(n.Children[1], target)
}

func (g *generator) andTail(n *types.Node, target types.VarType) string {
	if len(n.Children) == 0 {
		return ""
	}
	op := g.nt.Operator(n.Children[0].Tok.Class().ID())
	right := g.boolFactor(n.Children[1], target)
	return " " + op + " " + right + g.andTail(n.Children[2], target)
}

func (g *generator) boolFactor(n *types.Node, target types.VarType) string {
	if len(n.Children) == 2 {
		op := g.nt.Operator(n.Children[0].Tok.Class().ID())
		return op + g.boolFactor(n.Children[1], target)
	}
	return g.comparison(n.Children[0], target)
}

func (g *generator) comparison(n *types.Node, target types.VarType) string {
	return g.arith(n.Children[0], target) + g.relTail(n.Children[1], target)
}

func (g *generator) relTail(n *types.Node, target types.VarType) string {
	if len(n.Children) == 0 {
		return ""
	}
	op := g.nt.Operator(n.Children[0].Children[0].Tok.Class().ID())
	right := g.arith(n.Children[1], target)
	return " " + op + " " + right
}

func (g *generator) arith(n *types.Node, target types.VarType) string {
	return g.term(n.Children[0], target) + g.arithTail(n.Children[1], target)
}

func (g *generator) arithTail(n *types.Node, target types.VarType) string {
	if len(n.Children) == 0 {
		return ""
	}
	op := g.nt.Operator(n.Children[0].Tok.Class().ID())
	right := g.term(n.Children[1], target)
	return " " + op + " " + right + g.arithTail(n.Children[2], target)
}

func (g *generator) term(n *types.Node, target types.VarType) string {
	return g.unary(n.Children[0], target) + g.termTail(n.Children[1], target)
}

func (g *generator) termTail(n *types.Node, target types.VarType) string {
	if len(n.Children) == 0 {
		return ""
	}
	op := g.nt.Operator(n.Children[0].Tok.Class().ID())
	right := g.unary(n.Children[1], target)
	return " " + op + " " + right + g.termTail(n.Children[2], target)
}

func (g *generator) unary(n *types.Node, target types.VarType) string {
	if len(n.Children) == 2 {
		return n.Children[0].Tok.Lexeme() + g.unary(n.Children[1], target)
	}
	return g.primary(n.Children[0], target)
}

func (g *generator) primary(n *types.Node, target types.VarType) string {
	child := n.Children[0]
	switch headName(child) {
	case lang.NumberInt.ID(), lang.NumberFloat.ID():
		return child.Tok.Lexeme()
	case lang.StringLit.ID():
		lex := child.Tok.Lexeme()
		body := lex[1 : len(lex)-1]
		if target == types.Char {
			return "'" + body + "'"
		}
		return "\"" + body + "\""
	case lang.True.ID(), lang.False.ID():
		return strings.ToLower(child.Tok.Lexeme())
	case lang.LParen.ID():
		return "(" + g.expr(n.Children[1], target) + ")"
	case lang.ID.ID():
		name := child.Tok.Lexeme()
		tail := n.Children[1]
		if len(tail.Children) > 0 {
			return g.nt.Call(name) + "(" + g.argList(tail.Children[1]) + ")"
		}
		return name
	}
	return ""
}

// --- assembly -------------------------------------------------------------

func (g *generator) assemble() string {
	var b strings.Builder
	b.WriteString("using System;\n")
	b.WriteString("using static System.Math;\n")
	b.WriteString("\nnamespace Transpiler\n{\n")
	b.WriteString("    internal class Program\n    {\n")
	b.WriteString(g.globals.String())
	b.WriteString("\n        public static void Main(string[] args)\n")
	b.WriteString("        {\n")
	b.WriteString(g.main.String())
	b.WriteString("        }\n")
	b.WriteString("    }\n}\n")
	return b.String()
}
