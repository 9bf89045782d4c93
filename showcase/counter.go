package showcase

import (
	"fmt"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/component"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// Counter is a row of buttons. Clicking a button adds its step to the total;
// hovering highlights the row.
type Counter struct {
	Steps []int
	Total int
	Hover bool

	OnStep  []callback.Callback[Counter]
	OnEnter callback.Callback[Counter]
	OnLeave callback.Callback[Counter]
}

// NewCounter returns a Counter with buttons for each step.
func NewCounter(steps ...int) Counter {
	c := Counter{Steps: steps}
	for _, step := range steps {
		c.OnStep = append(c.OnStep, callback.FromNative(func(c *Counter) { c.Total += step }))
	}
	c.OnEnter = callback.FromNative(func(c *Counter) { c.Hover = true })
	c.OnLeave = callback.FromNative(func(c *Counter) { c.Hover = false })
	return c
}

var (
	counterRow     = graphics.MustParseColor("whitesmoke")
	counterRowLit  = graphics.MustParseColor("lightyellow")
	counterButton  = graphics.MustParseColor("seagreen")
	counterCaption = graphics.MustParseColor("black")
)

// Button geometry within the row.
const (
	counterButtonWidth = 60
	counterButtonGap   = 10
)

// UpdateCounter redescribes a Counter: a row Rect at index 0 holding one
// button per step, and a caption Span at index 1.
func UpdateCounter(c *component.Cell[Counter], root *core.Node) {
	c.Borrow(func(s *Counter) {
		color := counterRow
		if s.Hover {
			color = counterRowLit
		}
		width := float64(len(s.Steps))*(counterButtonWidth+counterButtonGap) + counterButtonGap
		row := core.ElementIn(root, core.Rect{Color: color, Bounds: graphics.BoundsPx(20, 20, width, 60)}, 0)
		core.HandleEvent(row, c, core.PointerEnter, &s.OnEnter)
		core.HandleEvent(row, c, core.PointerLeave, &s.OnLeave)
		{
			group := core.BeginGroup(row, 0)
			for i, step := range core.IterOf(s.Steps...).All() {
				x := counterButtonGap + float64(i)*(counterButtonWidth+counterButtonGap)
				btn := core.ElementIn(group, core.Rect{Color: counterButton, Bounds: graphics.BoundsPx(x, 10, counterButtonWidth, 40)}, i)
				core.HandleEvent(btn, c, core.PointerClick, &s.OnStep[i])
				label := core.ElementIn(btn, core.Span{X: graphics.Px(8), Y: graphics.Px(12), Color: graphics.ColorWhite}, 0)
				core.ElementIn(label, core.Text{Content: fmt.Sprintf("+%d", step)}, 0)
			}
			core.EndGroup(group, len(s.Steps))
		}
		caption := core.ElementIn(root, core.Span{X: graphics.Px(20), Y: graphics.Px(100), Color: counterCaption}, 1)
		core.ElementIn(caption, core.Text{Content: fmt.Sprintf("total %d", s.Total)}, 0)
	})
}
