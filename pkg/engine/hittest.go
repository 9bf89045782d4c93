package engine

import (
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// HitTest returns the path of visible nodes under (x, y), from root to the
// topmost node. Later siblings are above earlier ones. It returns nil if the
// point is outside the root.
//
// Root and Rect nodes are hit inside their bounds and Text nodes inside
// their measured extent. Group and Span nodes have no area of their own;
// they are on the path only when one of their descendants is hit.
func HitTest(root *core.Node, x, y float64) []*core.Node {
	path := hitNode(root, x, y, 0, 0, defaultTextStyle)
	// Reverse leaf-first into root-first.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// hitNode returns the hit path leaf-first. ox and oy are the origin
// established by enclosing Rects and Spans.
func hitNode(n *core.Node, x, y, ox, oy float64, style textStyle) []*core.Node {
	if n == nil || !n.Show {
		return nil
	}
	self := false
	switch p := n.Payload.(type) {
	case core.Root:
		self = graphics.PxBounds{Width: p.Width, Height: p.Height}.Contains(x, y)
		if !self {
			return nil
		}
	case core.Rect:
		b := p.Bounds.ToPx().Translate(ox, oy)
		self = b.Contains(x, y)
		ox, oy = b.X, b.Y
	case core.Span:
		ox += p.X.ToPx()
		oy += p.Y.ToPx()
		style = textStyle{color: p.Color, maxWidth: p.MaxWidth}
	case core.Text:
		m := graphics.MeasureWrapped(p.Content, style.maxWidth)
		self = graphics.PxBounds{X: ox, Y: oy, Width: m.Width, Height: m.Height}.Contains(x, y)
	}

	for i := len(n.Children) - 1; i >= 0; i-- {
		if path := hitNode(n.Children[i], x, y, ox, oy, style); path != nil {
			return append(path, n)
		}
	}
	if self {
		return []*core.Node{n}
	}
	return nil
}

// handlerFor returns the deepest node on path with a handler for kind.
func handlerFor(path []*core.Node, kind core.EventKind) *core.Node {
	for i := len(path) - 1; i >= 0; i-- {
		if _, ok := path[i].Events.Get(kind); ok {
			return path[i]
		}
	}
	return nil
}
