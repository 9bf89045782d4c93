package core

import (
	"testing"

	"github.com/go-drift/uicore/pkg/errors"
	"github.com/go-drift/uicore/pkg/graphics"
)

func rect(c graphics.Color, x, y, w, h float64) Rect {
	return Rect{Color: c, Bounds: graphics.BoundsPx(x, y, w, h)}
}

func expectContractPanic(t *testing.T, index, length int, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		cerr, ok := r.(*errors.ContractError)
		if !ok {
			t.Fatalf("panic value = %v (%T), want *errors.ContractError", r, r)
		}
		if cerr.Index != index || cerr.Len != length {
			t.Errorf("ContractError{Index: %d, Len: %d}, want {%d, %d}", cerr.Index, cerr.Len, index, length)
		}
	}()
	fn()
}

func TestElementIn_CreateThenReuse(t *testing.T) {
	root := NewRoot(100, 100)
	a := ElementIn(root, Text{Content: "a"}, 0)
	b := ElementIn(root, Text{Content: "b"}, 1)

	if root.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", root.Len())
	}

	a2 := ElementIn(root, Text{Content: "a2"}, 0)
	b2 := ElementIn(root, Text{Content: "b2"}, 1)
	if a2 != a || b2 != b {
		t.Error("revisiting the same indices should reuse the same nodes")
	}
	if got := a.Payload.(Text).Content; got != "a2" {
		t.Errorf("payload = %q, want a2", got)
	}
	if root.Len() != 2 {
		t.Errorf("Len() = %d after reuse, want 2", root.Len())
	}
}

func TestPositionalStability(t *testing.T) {
	root := NewRoot(100, 100)
	frame := func(showFirst bool, c graphics.Color) []*Node {
		var n0 *Node
		if showFirst {
			n0 = ElementIn(root, rect(c, 0, 0, 10, 10), 0)
		} else {
			n0 = ElementOut(root, rect(c, 0, 0, 10, 10), 0)
		}
		n1 := ElementIn(root, Text{Content: "label"}, 1)
		g := BeginGroup(root, 2)
		ElementIn(g, Text{Content: "x"}, 0)
		EndGroup(g, 1)
		return []*Node{n0, n1, g, g.Child(0)}
	}

	first := frame(true, graphics.ColorRed)
	second := frame(false, graphics.ColorBlue)
	third := frame(true, graphics.ColorGreen)

	for i := range first {
		if first[i] != second[i] || second[i] != third[i] {
			t.Errorf("node %d was reallocated across frames", i)
		}
	}
}

func TestHideThenShow(t *testing.T) {
	root := NewRoot(100, 100)
	n := ElementOut(root, Text{Content: "hidden"}, 0)
	if n.Show {
		t.Error("ElementOut should hide the node")
	}

	n2 := ElementIn(root, Text{Content: "shown"}, 0)
	if n2 != n {
		t.Error("ElementIn should reuse the hidden slot")
	}
	if !n.Show {
		t.Error("ElementIn should show the node")
	}
	if got := n.Payload.(Text).Content; got != "shown" {
		t.Errorf("payload = %q, want shown", got)
	}
	if root.Len() != 1 {
		t.Errorf("Len() = %d, want 1", root.Len())
	}
}

func TestHiddenSubtreeIsRetained(t *testing.T) {
	root := NewRoot(100, 100)
	span := ElementIn(root, Span{}, 0)
	text := ElementIn(span, Text{Content: "keep"}, 0)

	ElementOut(root, Span{}, 0)

	if span.Child(0) != text {
		t.Error("hiding a node must not drop its children")
	}
	if !text.Show {
		t.Error("hiding a parent must not change its children's Show flag")
	}
}

func TestOutOfOrderIndexPanics(t *testing.T) {
	for _, existing := range []int{0, 1, 3} {
		for _, skip := range []int{1, 2, 10} {
			root := NewRoot(0, 0)
			for i := range existing {
				ElementIn(root, Group{}, i)
			}
			index := existing + skip
			expectContractPanic(t, index, existing, func() { ElementIn(root, Group{}, index) })
			expectContractPanic(t, index, existing, func() { ElementOut(root, Group{}, index) })
			expectContractPanic(t, index, existing, func() { BeginGroup(root, index) })
			if root.Len() != existing {
				t.Errorf("failed call changed Len() to %d, want %d", root.Len(), existing)
			}
		}
	}
}

func TestNegativeIndexPanics(t *testing.T) {
	root := NewRoot(0, 0)
	expectContractPanic(t, -1, 0, func() { ElementIn(root, Group{}, -1) })
}

func TestContractErrorOp(t *testing.T) {
	root := NewRoot(0, 0)
	defer func() {
		cerr := recover().(*errors.ContractError)
		if cerr.Op != "core.BeginGroup" {
			t.Errorf("Op = %q, want core.BeginGroup", cerr.Op)
		}
	}()
	BeginGroup(root, 5)
}

func TestBeginGroup(t *testing.T) {
	root := NewRoot(0, 0)
	ElementIn(root, Text{Content: "before"}, 0)
	g := BeginGroup(root, 1)
	if !g.Group || !g.Show {
		t.Errorf("group = %+v, want Group and Show", g)
	}
	if g.Payload.Kind() != KindGroup {
		t.Errorf("Kind() = %s, want group", g.Payload.Kind())
	}
	if BeginGroup(root, 1) != g {
		t.Error("BeginGroup should reuse the anchor")
	}
}

func TestGroupShrinkHidesTail(t *testing.T) {
	tests := []struct {
		name string
		n, m int
	}{
		{"shrink to zero", 4, 0},
		{"shrink by one", 4, 3},
		{"shrink by half", 6, 3},
		{"no shrink", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot(0, 0)
			g := BeginGroup(root, 0)
			for i := range tt.n {
				ElementIn(g, Text{Content: "item"}, i)
			}
			EndGroup(g, tt.m)

			if g.Len() != tt.n {
				t.Fatalf("Len() = %d, want %d", g.Len(), tt.n)
			}
			for i := range tt.n {
				want := i < tt.m
				if g.Child(i).Show != want {
					t.Errorf("child %d Show = %v, want %v", i, g.Child(i).Show, want)
				}
			}
		})
	}
}

func TestRepeaterAcrossFrames(t *testing.T) {
	root := NewRoot(0, 0)
	render := func(items ...string) *Node {
		g := BeginGroup(root, 0)
		for i, s := range items {
			ElementIn(g, Text{Content: s}, i)
		}
		EndGroup(g, len(items))
		return g
	}

	g := render("a", "b", "c")
	third := g.Child(2)

	render("x")
	if g.Len() != 3 {
		t.Fatalf("Len() = %d after shrink, want 3", g.Len())
	}
	if g.Child(0).Payload.(Text).Content != "x" || !g.Child(0).Show {
		t.Errorf("child 0 = %+v, want shown x", g.Child(0))
	}
	if g.Child(1).Show || g.Child(2).Show {
		t.Error("surplus children should be hidden")
	}

	render("p", "q", "r", "s")
	if g.Child(2) != third {
		t.Error("growing again should reuse the hidden slot")
	}
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
	for i := range 4 {
		if !g.Child(i).Show {
			t.Errorf("child %d should be shown", i)
		}
	}
}

func TestEndGroupPastEnd(t *testing.T) {
	g := &Node{Group: true, Show: true}
	ElementIn(g, Group{}, 0)
	EndGroup(g, 5)
	EndGroup(g, -1)
	if g.Child(0).Show {
		t.Error("EndGroup(-1) should hide every child")
	}
}

// Frame 1 shows a rect at index 0, frame 2 hides it, frame 3 shows it again
// with a different color.
func TestConditionalRectScenario(t *testing.T) {
	root := NewRoot(100, 100)
	update := func(cond bool, c graphics.Color) {
		p := rect(c, 0, 0, 10, 10)
		if cond {
			ElementIn(root, p, 0)
		} else {
			ElementOut(root, p, 0)
		}
	}

	update(true, graphics.ColorRed)
	if !root.Children[0].Show {
		t.Fatal("frame 1: child should be shown")
	}
	node := root.Children[0]

	update(false, graphics.ColorRed)
	if root.Len() != 1 {
		t.Fatalf("frame 2: Len() = %d, want 1", root.Len())
	}
	if root.Children[0].Show {
		t.Error("frame 2: child should be hidden")
	}

	update(true, graphics.ColorBlue)
	if root.Children[0] != node {
		t.Error("frame 3: node should be the same object")
	}
	if !node.Show {
		t.Error("frame 3: child should be shown")
	}
	if got := node.Payload.(Rect).Color; got != graphics.ColorBlue {
		t.Errorf("frame 3: color = %s, want blue", got)
	}
}

func TestWalk(t *testing.T) {
	root := NewRoot(0, 0)
	ElementIn(root, Text{Content: "a"}, 0)
	span := ElementOut(root, Span{}, 1)
	ElementIn(span, Text{Content: "b"}, 0)
	ElementIn(root, Text{Content: "c"}, 2)

	var all, visible []string
	Walk(root, func(n *Node, index, depth int) bool {
		all = append(all, n.Payload.Kind().String())
		return true
	})
	WalkVisible(root, func(n *Node, index, depth int) bool {
		visible = append(visible, n.Payload.Kind().String())
		return true
	})

	wantAll := []string{"root", "text", "span", "text", "text"}
	wantVisible := []string{"root", "text", "text"}
	if len(all) != len(wantAll) || len(visible) != len(wantVisible) {
		t.Fatalf("Walk = %v, WalkVisible = %v", all, visible)
	}
	for i := range wantAll {
		if all[i] != wantAll[i] {
			t.Errorf("Walk[%d] = %s, want %s", i, all[i], wantAll[i])
		}
	}
}

func TestWalkSkipChildren(t *testing.T) {
	root := NewRoot(0, 0)
	g := BeginGroup(root, 0)
	ElementIn(g, Text{}, 0)

	visits := 0
	Walk(root, func(n *Node, index, depth int) bool {
		visits++
		return !n.Group
	})
	if visits != 2 {
		t.Errorf("visits = %d, want 2", visits)
	}
}

func TestPath(t *testing.T) {
	root := NewRoot(0, 0)
	g := BeginGroup(root, 0)
	leaf := ElementIn(g, Text{}, 0)
	if root.Path(0, 0) != leaf {
		t.Error("Path(0, 0) should reach the leaf")
	}
	if root.Path() != root {
		t.Error("empty Path should return the receiver")
	}
	if root.Path(0, 1) != nil || root.Path(3) != nil {
		t.Error("out-of-range Path should return nil")
	}
}

func TestBounds(t *testing.T) {
	if b, ok := Bounds(Root{Width: 10, Height: 20}); !ok || b != (graphics.PxBounds{Width: 10, Height: 20}) {
		t.Errorf("Bounds(Root) = %+v, %v", b, ok)
	}
	if b, ok := Bounds(rect(0, 1, 2, 3, 4)); !ok || b != (graphics.PxBounds{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("Bounds(Rect) = %+v, %v", b, ok)
	}
	for _, p := range []Payload{Group{}, Span{}, Text{}} {
		if _, ok := Bounds(p); ok {
			t.Errorf("Bounds(%s) should not establish bounds", p.Kind())
		}
	}
}
