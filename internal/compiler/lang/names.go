package lang

// Non-terminal names used by Grammar() and consumed by sema and codegen
// when walking the resulting parse tree. Keeping them as exported string
// constants (rather than an opaque enum) lets sema/codegen switch on
// node.Sym.Name() directly without importing lang's grammar-construction
// code.
//
// Stmt/BodyStmt split: the naive "if Expr then Stmt [else Stmt]" grammar
// that directly mirrors spec.md §6's prose is not LL(1) - it is the
// classic dangling-else construction, and FOLLOW(IfTail) ends up
// containing "else" regardless of how the optional-else tail is factored,
// which collides with IfTail's own "else ..." alternative (spec.md §4.2's
// LL(1) check would reject it at construction time). This grammar instead
// requires an if/for/while body that is itself an if-without-else to be
// wrapped in begin...end; the then-arm of an if with both branches present
// (BodyStmt's own if production) and the do-arm of for/while always draw
// from BodyStmt, which has no optional-else production at all, so the
// ambiguity never arises. A bodyless if is only ever a direct element of a
// statement list (Stmt), never a nested body.
const (
	NTProgram     = "Program"
	NTGlobalDecls = "GlobalDecls"
	NTVarDecl     = "VarDecl"
	NTOptAssign   = "OptAssign"
	NTType        = "Type"

	NTStmtList = "StmtList"
	NTStmt     = "Stmt"
	NTBodyStmt = "BodyStmt"
	NTIfTail   = "IfTail"

	NTAssignTail  = "AssignTail"
	NTAssignOp    = "AssignOp"
	NTArgList     = "ArgList"
	NTArgListTail = "ArgListTail"

	NTForStmt    = "ForStmt"
	NTForDir     = "ForDir"
	NTWhileStmt  = "WhileStmt"
	NTRepeatStmt = "RepeatStmt"

	NTExpr       = "Expr"
	NTOrTail     = "OrTail"
	NTBoolTerm   = "BoolTerm"
	NTAndTail    = "AndTail"
	NTBoolFactor = "BoolFactor"
	NTComparison = "Comparison"
	NTRelTail    = "RelTail"
	NTRelOp      = "RelOp"
	NTArith      = "Arith"
	NTArithTail  = "ArithTail"
	NTTerm       = "Term"
	NTTermTail   = "TermTail"
	NTUnary      = "Unary"
	NTPrimary    = "Primary"

	NTPrimaryTail = "PrimaryTail"
)
