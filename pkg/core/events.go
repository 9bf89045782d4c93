package core

import (
	"fmt"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/component"
	"github.com/go-drift/uicore/pkg/errors"
)

// EventKind enumerates the pointer events a node can bind a handler for.
type EventKind uint8

const (
	PointerClick EventKind = iota
	PointerPress
	PointerRelease
	PointerMove
	PointerEnter
	PointerLeave

	numEventKinds
)

// EventKinds lists every event kind in declaration order.
var EventKinds = [numEventKinds]EventKind{
	PointerClick, PointerPress, PointerRelease, PointerMove, PointerEnter, PointerLeave,
}

func (k EventKind) String() string {
	switch k {
	case PointerClick:
		return "pointer_click"
	case PointerPress:
		return "pointer_press"
	case PointerRelease:
		return "pointer_release"
	case PointerMove:
		return "pointer_move"
	case PointerEnter:
		return "pointer_enter"
	case PointerLeave:
		return "pointer_leave"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// DOMName returns the DOM event type a web backend listens for.
func (k EventKind) DOMName() string {
	switch k {
	case PointerClick:
		return "click"
	case PointerPress:
		return "mousedown"
	case PointerRelease:
		return "mouseup"
	case PointerMove:
		return "mousemove"
	case PointerEnter:
		return "mouseenter"
	case PointerLeave:
		return "mouseleave"
	default:
		return ""
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	for _, k := range EventKinds {
		if k.String() == s || k.DOMName() == s {
			return k, true
		}
	}
	return 0, false
}

// Events is a node's table of bound handlers, one optional slot per kind.
// The zero value has no handlers.
type Events struct {
	slots [numEventKinds]callback.BoundCallback
}

// Get returns the handler bound for kind.
func (e *Events) Get(kind EventKind) (callback.BoundCallback, bool) {
	if kind >= numEventKinds {
		return callback.BoundCallback{}, false
	}
	b := e.slots[kind]
	return b, !b.IsZero()
}

// Set binds b for kind, replacing any previous handler.
func (e *Events) Set(kind EventKind, b callback.BoundCallback) {
	checkKind("core.Events.Set", kind)
	e.slots[kind] = b
}

// Clear removes the handler for kind.
func (e *Events) Clear(kind EventKind) {
	checkKind("core.Events.Clear", kind)
	e.slots[kind] = callback.BoundCallback{}
}

// checkKind panics with *errors.ContractError for a kind outside EventKinds.
func checkKind(op string, kind EventKind) {
	if kind >= numEventKinds {
		panic(&errors.ContractError{Op: op, Index: int(kind), Len: int(numEventKinds)})
	}
}

// Len returns the number of bound handlers.
func (e *Events) Len() int {
	n := 0
	for _, b := range e.slots {
		if !b.IsZero() {
			n++
		}
	}
	return n
}

// Each calls fn for every bound handler in EventKinds order.
func (e *Events) Each(fn func(kind EventKind, b callback.BoundCallback)) {
	for i, b := range e.slots {
		if !b.IsZero() {
			fn(EventKind(i), b)
		}
	}
}

// HandleEvent binds cb to cell for the given event kind on n, or clears the
// slot when cb is nil.
//
// If the slot already holds a binding with the same identity for the same
// component it is left untouched, so an unchanged handler costs no
// allocation. Empty callbacks never compare equal and are always rebound.
func HandleEvent[C any](n *Node, cell *component.Cell[C], kind EventKind, cb *callback.Callback[C]) {
	checkKind("core.HandleEvent", kind)
	if cb == nil {
		n.Events.Clear(kind)
		return
	}
	if cur, ok := n.Events.Get(kind); ok && cur.IsBoundTo(cell) && cur.ID().Equal(cb.ID()) {
		return
	}
	n.Events.Set(kind, cb.Bind(cell))
}
