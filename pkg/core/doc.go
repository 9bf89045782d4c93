// Package core provides the element tree and the positional reconciler that
// generated update functions drive every frame.
//
// An update function redescribes a component's visual tree by visiting every
// declared child position in order and calling one reconciler operation per
// position:
//
//	func update(c *component.Cell[Counter], root *core.Node) {
//	    c.Borrow(func(v *Counter) {
//	        if v.visible {
//	            n := core.ElementIn(root, core.Rect{Color: v.color, Bounds: v.bounds}, 0)
//	            core.HandleEvent(n, c, core.PointerClick, &v.onClick)
//	        } else {
//	            core.ElementOut(root, core.Rect{Color: v.color, Bounds: v.bounds}, 0)
//	        }
//	        g := core.BeginGroup(root, 1)
//	        for i, label := range v.labels.All() {
//	            core.ElementIn(g, core.Text{Content: label}, i)
//	        }
//	        core.EndGroup(g, v.labels.Len())
//	    })
//	}
//
// # Positional Identity
//
// Nodes have no key. A node is identified by its index within its parent
// during the current pass, so the same sequence of calls across frames
// reaches the same *Node values and only their payload and Show flag change.
// A conditional occupies its index whether or not it is shown, and a
// repeated block occupies exactly one index as a group anchor whose items
// are renumbered from 0 every frame.
//
// Hidden nodes (Show == false) keep their slot and subtree so they can be
// shown again without re-creation. Render backends must treat them as
// present-but-invisible.
//
// # Contract Violations
//
// Visiting an index past the end of the child list means the update function
// skipped a declaration. The reconciler panics with *errors.ContractError;
// this is a bug in the caller, not a runtime condition.
package core
