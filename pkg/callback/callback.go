// Package callback implements event callbacks that stay bound to a live
// component instance across frames.
//
// A Callback is declared once per component property or event slot and is
// cheap to copy: copies share one underlying slot. Binding it to a component
// produces a type-erased BoundCallback that element nodes store and render
// backends invoke. BoundCallbacks compare by identity, so a backend can tell
// whether a node's handler changed since the previous frame without calling
// either handler.
package callback

import (
	"fmt"

	"github.com/go-drift/uicore/pkg/component"
	"github.com/go-drift/uicore/pkg/hostabi"
)

// Kind identifies which variant a callback holds.
type Kind uint8

const (
	// KindEmpty is a callback that does nothing.
	KindEmpty Kind = iota
	// KindHostAbi is a callback that invokes a foreign function.
	KindHostAbi
	// KindNative is a callback that runs a Go closure against the component.
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindHostAbi:
		return "HostAbi"
	case KindNative:
		return "Native"
	default:
		return "Empty"
	}
}

// payload is the dispatchable content of a callback slot.
type payload[C any] struct {
	kind Kind
	abi  hostabi.HostAbi
	fn   func(*C)
}

// slot is shared by every copy of a Callback. p is nil while the payload is
// taken out for dispatch.
type slot[C any] struct {
	p *payload[C]
}

// take removes the payload from the slot. The slot reads as Empty until
// put is called.
func (s *slot[C]) take() *payload[C] {
	p := s.p
	s.p = nil
	return p
}

func (s *slot[C]) put(p *payload[C]) {
	s.p = p
}

// Callback is an invocable value for component type C. The zero value is an
// Empty callback.
type Callback[C any] struct {
	s *slot[C]
}

// Empty returns a callback that does nothing when invoked.
func Empty[C any]() Callback[C] {
	return Callback[C]{}
}

// FromNative wraps fn, which receives exclusive access to the component.
// Every call to FromNative creates a new identity, even for the same fn.
func FromNative[C any](fn func(c *C)) Callback[C] {
	if fn == nil {
		return Callback[C]{}
	}
	return Callback[C]{s: &slot[C]{p: &payload[C]{kind: KindNative, fn: fn}}}
}

// FromAbi wraps a foreign function. Its identity is abi.ID().
func FromAbi[C any](abi hostabi.HostAbi) Callback[C] {
	if abi == nil {
		return Callback[C]{}
	}
	return Callback[C]{s: &slot[C]{p: &payload[C]{kind: KindHostAbi, abi: abi}}}
}

// Clone returns a copy sharing the same underlying slot.
func (c Callback[C]) Clone() Callback[C] {
	return c
}

// Kind reports the variant currently in the slot. A slot whose payload is
// taken for dispatch reports KindEmpty.
func (c Callback[C]) Kind() Kind {
	if c.s == nil || c.s.p == nil {
		return KindEmpty
	}
	return c.s.p.kind
}

// IsEmpty reports whether invoking the callback would do nothing.
func (c Callback[C]) IsEmpty() bool {
	return c.Kind() == KindEmpty
}

// ID returns the callback's identity.
func (c Callback[C]) ID() ID {
	if c.s == nil {
		return ID{}
	}
	p := c.s.take()
	defer c.s.put(p)
	return idOf(p)
}

// Equal reports whether c and other resolve to the same function. Empty
// callbacks are never equal to anything, including other Empty callbacks.
func (c Callback[C]) Equal(other Callback[C]) bool {
	return c.ID().Equal(other.ID())
}

// Bind pairs the callback with a component instance.
func (c Callback[C]) Bind(cell *component.Cell[C]) BoundCallback {
	return newBound[C](c, cell)
}

// String implements fmt.Stringer.
func (c Callback[C]) String() string {
	return fmt.Sprintf("Callback(%s)", c.ID())
}

// call dispatches against cell. The payload is out of the slot while it
// runs, so a native closure that re-enters this same callback sees Empty
// instead of recursing.
func (c Callback[C]) call(cell *component.Cell[C]) {
	if c.s == nil {
		return
	}
	p := c.s.take()
	defer c.s.put(p)
	if p == nil {
		return
	}
	switch p.kind {
	case KindHostAbi:
		p.abi.Call()
	case KindNative:
		cell.BorrowMut(p.fn)
	}
}

func idOf[C any](p *payload[C]) ID {
	if p == nil {
		return ID{}
	}
	switch p.kind {
	case KindHostAbi:
		return ID{Kind: KindHostAbi, Host: p.abi.ID()}
	case KindNative:
		return ID{Kind: KindNative, native: p}
	default:
		return ID{}
	}
}

// ID is the comparable identity of a callback: the foreign id for HostAbi
// callbacks, the closure allocation for Native ones.
type ID struct {
	Kind Kind
	Host uintptr
	// native is the *payload[C] allocation; comparing it compares the
	// dynamic type and the pointer.
	native any
}

// Equal reports whether two identities refer to the same function. It is
// false whenever either side is Empty.
func (id ID) Equal(other ID) bool {
	if id.Kind == KindEmpty || other.Kind == KindEmpty {
		return false
	}
	return id == other
}

// String implements fmt.Stringer.
func (id ID) String() string {
	switch id.Kind {
	case KindHostAbi:
		return fmt.Sprintf("HostAbi(%d)", id.Host)
	case KindNative:
		return fmt.Sprintf("Native(%p)", id.native)
	default:
		return "Empty"
	}
}
