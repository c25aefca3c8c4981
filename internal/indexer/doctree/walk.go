package doctree

// Action tells Walk how to proceed after visiting a node.
type Action int

const (
	Continue Action = iota
	SkipChildren
)

// Visitor is called once per node in depth-first pre-order.
type Visitor interface {
	Visit(n *Node) Action
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(n *Node) Action

func (f VisitorFunc) Visit(n *Node) Action { return f(n) }

// Walk visits root and its descendants. It never modifies the tree.
func Walk(root *Node, v Visitor) {
	if root == nil {
		return
	}
	if v.Visit(root) == SkipChildren {
		return
	}
	for _, c := range root.Children {
		Walk(c, v)
	}
}
