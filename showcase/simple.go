// Package showcase holds example components whose update functions are
// written by hand in the form the code generator emits, so the runtime can
// be exercised without the DSL toolchain.
package showcase

import (
	"strconv"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/component"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// Simple is a card that can be toggled by clicking it or its status line.
// Each toggle also nudges the card 4px to the right.
type Simple struct {
	X, Y       graphics.Length
	Show       bool
	Strings    core.Iterable[string]
	Text       string
	ToggleShow callback.Callback[Simple]

	// State counts update passes, starting from 420.
	State int
}

// NewSimple returns a Simple with the default props: a visible card at
// (100, 100) with two list items.
func NewSimple() Simple {
	return Simple{
		X:          graphics.Px(100),
		Y:          graphics.Px(100),
		Show:       true,
		Strings:    core.IterOf("string1", "string2"),
		Text:       "O, she hath misused me past the endurance of a block",
		ToggleShow: callback.FromNative((*Simple).toggleShow),
	}
}

func (s *Simple) OnInit() {
	s.State = 420
}

func (s *Simple) OnUpdate() {
	s.State++
}

func (s *Simple) toggleShow() {
	s.Show = !s.Show
	s.X = graphics.Px(s.X.ToPx() + 4)
}

var (
	simpleCard   = graphics.MustParseColor("cornflowerblue")
	simpleStatus = graphics.MustParseColor("#333")
)

// UpdateSimple redescribes a Simple:
//
//	root
//	├─ 0: rect (if Show), click toggles
//	│    └─ 0: span
//	│         └─ 0: text Text
//	├─ 1: text "state N", click toggles
//	└─ 2: group
//	     └─ i: span at y = 220 + 16i
//	          └─ 0: text Strings[i]
func UpdateSimple(c *component.Cell[Simple], root *core.Node) {
	c.Borrow(func(s *Simple) {
		{
			e := core.Rect{
				Color:  simpleCard,
				Bounds: graphics.Bounds{X: s.X, Y: s.Y, Width: graphics.Px(200), Height: graphics.Px(100)},
			}
			var parent *core.Node
			if s.Show {
				parent = core.ElementIn(root, e, 0)
			} else {
				parent = core.ElementOut(root, e, 0)
			}
			core.HandleEvent(parent, c, core.PointerClick, &s.ToggleShow)
			{
				parent := core.ElementIn(parent, core.Span{MaxWidth: 180, X: graphics.Px(10), Y: graphics.Px(10), Color: graphics.ColorWhite}, 0)
				core.ElementIn(parent, core.Text{Content: s.Text}, 0)
			}
		}
		{
			e := core.ElementIn(root, core.Text{Content: "state " + strconv.Itoa(s.State)}, 1)
			core.HandleEvent(e, c, core.PointerClick, &s.ToggleShow)
		}
		{
			group := core.BeginGroup(root, 2)
			n := 0
			for i, item := range s.Strings.All() {
				parent := core.ElementIn(group, core.Span{Y: graphics.Px(220 + 16*float64(i)), Color: simpleStatus}, i)
				core.ElementIn(parent, core.Text{Content: item}, 0)
				n++
			}
			core.EndGroup(group, n)
		}
	})
}
