package engine

import (
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// Runner is the component-independent surface of an App, for hosts and
// tools that drive apps of different component types.
type Runner interface {
	Inspectable
	Frame() *graphics.DisplayList
	NeedsFrame() bool
	RequestFrame()
	Resize(width, height float64)
	HandlePointer(ev PointerEvent) int
	Click(x, y float64) int
	Root() *core.Node
}

var _ Runner = (*App[struct{}])(nil)
