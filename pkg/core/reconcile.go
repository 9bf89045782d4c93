package core

import "github.com/go-drift/uicore/pkg/errors"

// ElementIn shows the child at index with payload p and returns it.
//
// If index addresses an existing slot the node is reused: its payload is
// overwritten and it is shown. If index equals the number of children a new
// node is appended. Any other index panics with *errors.ContractError.
func ElementIn(parent *Node, p Payload, index int) *Node {
	return slot(parent, p, index, "core.ElementIn")
}

// ElementOut is ElementIn followed by hiding the node. It is used when a
// conditional's guard is false, so the slot survives for later reuse.
func ElementOut(parent *Node, p Payload, index int) *Node {
	n := slot(parent, p, index, "core.ElementOut")
	n.Show = false
	return n
}

// BeginGroup shows a Group anchor at index and returns it. The items of the
// run are added to the returned node starting at index 0.
func BeginGroup(parent *Node, index int) *Node {
	n := slot(parent, Group{}, index, "core.BeginGroup")
	n.Group = true
	return n
}

// EndGroup hides every child of group from index from onward. Call it after
// populating the run with the number of items shown this frame; surplus
// nodes from a longer previous frame stay allocated but hidden.
func EndGroup(group *Node, from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(group.Children); i++ {
		group.Children[i].Show = false
	}
}

func slot(parent *Node, p Payload, index int, op string) *Node {
	switch n := len(parent.Children); {
	case index >= 0 && index < n:
		c := parent.Children[index]
		c.Payload = p
		c.Show = true
		return c
	case index == n:
		c := newNode(p)
		parent.Children = append(parent.Children, c)
		return c
	default:
		panic(&errors.ContractError{Op: op, Index: index, Len: n})
	}
}
