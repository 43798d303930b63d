package types

// Node is a single node of a ParseTree. It owns its children in
// left-to-right order and holds a non-owning back reference to its parent,
// per spec.md's design note: the tree's lifetime owns all nodes, so the
// parent pointer never needs independent cleanup.
//
// Grounded on internal/ictiobus/types/tree.go (teacher) and
// original_source/transpiler/tree.py's Node/ParseTree.
type Node struct {
	Sym      Symbol
	Tok      *Token // set only on leaves (Sym.IsTerminal() || Sym.IsSpecial())
	Parent   *Node
	Children []*Node
}

// NewNode creates a detached node for the given symbol.
func NewNode(sym Symbol) *Node {
	return &Node{Sym: sym}
}

// NewLeaf creates a detached leaf node carrying the given token.
func NewLeaf(sym Symbol, tok Token) *Node {
	return &Node{Sym: sym, Tok: &tok}
}

// AddChild appends child to n's children and sets child's parent to n.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// IsLeaf returns whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns every leaf in the subtree rooted at n, in depth-first,
// left-to-right order - the order spec.md's invariants require tokens to
// appear in when the tree is traversed.
func (n *Node) Leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.IsLeaf() {
			out = append(out, cur)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Walk visits n and every descendant in depth-first, left-to-right (pre-)
// order, calling visit on each. visit may return false to stop descending
// into the current node's children, without stopping the overall walk.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// ParseTree is a rooted ordered tree produced by the parser. It exists as a
// thin wrapper around the root Node mainly so that callers have a single,
// clearly-named type to pass around instead of a bare *Node.
type ParseTree struct {
	Root *Node
}
