package core

// Node is one element in the tree. Children are stored by pointer so that a
// node keeps its identity when its parent's child list grows.
type Node struct {
	Payload  Payload
	Children []*Node
	// Show is false for a node that is logically removed but keeps its slot.
	Show bool
	// Group marks a non-rendering anchor for a conditional or repeated run.
	Group  bool
	Events Events
}

// NewRoot returns a root node for a viewport of the given size.
func NewRoot(width, height float64) *Node {
	return &Node{Payload: Root{Width: width, Height: height}, Show: true}
}

func newNode(p Payload) *Node {
	return &Node{Payload: p, Show: true}
}

// Len returns the number of child slots, shown or hidden.
func (n *Node) Len() int {
	return len(n.Children)
}

// Child returns the child at index i, or nil if there is none.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Path follows a sequence of child indices from n. It returns nil if any
// index is out of range.
func (n *Node) Path(indices ...int) *Node {
	cur := n
	for _, i := range indices {
		if cur = cur.Child(i); cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants in declaration order, pre-order.
// index is the node's position in its parent (0 for the starting node) and
// depth is its distance from the starting node. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(n *Node, index, depth int) bool) {
	walk(n, 0, 0, false, fn)
}

// WalkVisible is Walk restricted to shown nodes. A hidden node is not
// visited and neither is its subtree.
func WalkVisible(n *Node, fn func(n *Node, index, depth int) bool) {
	walk(n, 0, 0, true, fn)
}

func walk(n *Node, index, depth int, visibleOnly bool, fn func(*Node, int, int) bool) {
	if n == nil || (visibleOnly && !n.Show) {
		return
	}
	if !fn(n, index, depth) {
		return
	}
	for i, c := range n.Children {
		walk(c, i, depth+1, visibleOnly, fn)
	}
}
