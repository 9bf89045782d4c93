package engine

import (
	"fmt"
	"slices"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/errors"
)

// PointerPhase describes the type of pointer event.
type PointerPhase int

const (
	// PointerPhaseDown indicates the pointer was pressed.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove indicates the pointer moved.
	PointerPhaseMove
	// PointerPhaseUp indicates the pointer was released.
	PointerPhaseUp
	// PointerPhaseCancel indicates the pointer left the window or the
	// gesture was interrupted.
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is a pointer input in logical pixels.
type PointerEvent struct {
	Phase PointerPhase
	X     float64
	Y     float64
}

// HandlePointer routes a pointer event to bound callbacks.
//
// Press, release and move go to the topmost node under the pointer that has
// a handler for that kind. A click fires on release when the topmost click
// handler under the pointer is the one that was under it at press time.
// Enter and leave fire on every node that joins or leaves the hit path,
// like DOM mouseenter and mouseleave.
//
// Handlers run after the tree lock is released, in this order: leave, enter,
// the phase's own event, click. Any handler that runs requests a frame.
// It returns the number of handlers invoked.
func (a *App[C]) HandlePointer(ev PointerEvent) int {
	defer errors.ReportAndRepanic("engine.HandlePointer")

	calls := a.routePointer(ev)
	for _, b := range calls {
		b.Call()
	}
	if len(calls) > 0 {
		a.RequestFrame()
	}
	return len(calls)
}

// routePointer updates hover and press state and collects the handlers to
// invoke, in order.
func (a *App[C]) routePointer(ev PointerEvent) []callback.BoundCallback {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()

	var path []*core.Node
	if ev.Phase != PointerPhaseCancel {
		path = HitTest(a.root, ev.X, ev.Y)
	}

	var calls []callback.BoundCallback
	queue := func(n *core.Node, kind core.EventKind) {
		if n == nil {
			return
		}
		if b, ok := n.Events.Get(kind); ok {
			calls = append(calls, b)
		}
	}

	for i := len(a.hovered) - 1; i >= 0; i-- {
		if !slices.Contains(path, a.hovered[i]) {
			queue(a.hovered[i], core.PointerLeave)
		}
	}
	for _, n := range path {
		if !slices.Contains(a.hovered, n) {
			queue(n, core.PointerEnter)
		}
	}
	a.hovered = path

	switch ev.Phase {
	case PointerPhaseDown:
		queue(handlerFor(path, core.PointerPress), core.PointerPress)
		a.pressed = handlerFor(path, core.PointerClick)
	case PointerPhaseMove:
		queue(handlerFor(path, core.PointerMove), core.PointerMove)
	case PointerPhaseUp:
		queue(handlerFor(path, core.PointerRelease), core.PointerRelease)
		if target := handlerFor(path, core.PointerClick); target != nil && target == a.pressed {
			queue(target, core.PointerClick)
		}
		a.pressed = nil
	case PointerPhaseCancel:
		a.pressed = nil
	}
	return calls
}

// Click sends a press and release at (x, y) and returns the number of
// handlers invoked.
func (a *App[C]) Click(x, y float64) int {
	n := a.HandlePointer(PointerEvent{Phase: PointerPhaseDown, X: x, Y: y})
	return n + a.HandlePointer(PointerEvent{Phase: PointerPhaseUp, X: x, Y: y})
}
