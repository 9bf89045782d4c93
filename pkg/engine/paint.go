package engine

import (
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// textStyle is inherited from the nearest enclosing Span.
type textStyle struct {
	color    graphics.Color
	maxWidth float64
}

var defaultTextStyle = textStyle{color: graphics.ColorBlack}

// Render records the visible part of the tree into a display list.
func Render(root *core.Node) *graphics.DisplayList {
	var rec graphics.PictureRecorder
	var w, h float64
	if r, ok := root.Payload.(core.Root); ok {
		w, h = r.Width, r.Height
	}
	Paint(root, rec.BeginRecording(w, h))
	return rec.EndRecording()
}

// Paint walks the visible tree in declaration order and issues drawing
// commands. Rect and Span origins accumulate: a Rect's x and y are relative
// to the enclosing Rect or Span, while its width and height are its own.
// Hidden nodes and their subtrees are skipped.
func Paint(root *core.Node, canvas graphics.Canvas) {
	paintNode(root, canvas, defaultTextStyle)
}

func paintNode(n *core.Node, canvas graphics.Canvas, style textStyle) {
	if !n.Show {
		return
	}
	switch p := n.Payload.(type) {
	case core.Rect:
		b := p.Bounds.ToPx()
		translate(canvas, b.X, b.Y)
		canvas.DrawRect(graphics.PxBounds{Width: b.Width, Height: b.Height}, p.Color)
		paintChildren(n, canvas, style)
		translate(canvas, -b.X, -b.Y)
	case core.Span:
		x, y := p.X.ToPx(), p.Y.ToPx()
		translate(canvas, x, y)
		paintChildren(n, canvas, textStyle{color: p.Color, maxWidth: p.MaxWidth})
		translate(canvas, -x, -y)
	case core.Text:
		canvas.DrawText(p.Content, 0, 0, style.maxWidth, style.color)
		paintChildren(n, canvas, style)
	default:
		paintChildren(n, canvas, style)
	}
}

func paintChildren(n *core.Node, canvas graphics.Canvas, style textStyle) {
	for _, c := range n.Children {
		paintNode(c, canvas, style)
	}
}

func translate(canvas graphics.Canvas, dx, dy float64) {
	if dx != 0 || dy != 0 {
		canvas.Translate(dx, dy)
	}
}
