package callback

import (
	"fmt"

	"github.com/go-drift/uicore/pkg/component"
)

// boundImpl is the type-erased callback + component pair.
type boundImpl interface {
	call()
	clone() boundImpl
	id() ID
	component() any
	String() string
}

type boundTo[C any] struct {
	callback Callback[C]
	cell     *component.Cell[C]
}

func (b *boundTo[C]) call() {
	b.callback.call(b.cell)
}

func (b *boundTo[C]) clone() boundImpl {
	return &boundTo[C]{callback: b.callback.Clone(), cell: b.cell}
}

func (b *boundTo[C]) id() ID {
	return b.callback.ID()
}

func (b *boundTo[C]) component() any {
	return b.cell
}

func (b *boundTo[C]) String() string {
	return fmt.Sprintf("%s -> %T", b.callback, b.cell)
}

// bound is the outer box: one pointer-sized object per bound value, which
// is what a Handle names when it crosses the host boundary.
type bound struct {
	impl   boundImpl
	handle Handle
}

// BoundCallback is a Callback paired with the component instance it runs
// against. The zero value is unbound and does nothing when called.
type BoundCallback struct {
	b *bound
}

func newBound[C any](c Callback[C], cell *component.Cell[C]) BoundCallback {
	return BoundCallback{b: &bound{impl: &boundTo[C]{callback: c.Clone(), cell: cell}}}
}

// Call invokes the callback against its bound component.
func (bc BoundCallback) Call() {
	if bc.b == nil {
		return
	}
	bc.b.impl.call()
}

// Clone returns an independent BoundCallback sharing the same callback slot
// and component. The clone has its own handle.
func (bc BoundCallback) Clone() BoundCallback {
	if bc.b == nil {
		return BoundCallback{}
	}
	return BoundCallback{b: &bound{impl: bc.b.impl.clone()}}
}

// ID returns the identity of the underlying callback.
func (bc BoundCallback) ID() ID {
	if bc.b == nil {
		return ID{}
	}
	return bc.b.impl.id()
}

// Equal compares identity, not behavior. Empty callbacks never compare
// equal, so an absent handler is never mistaken for an unchanged one.
func (bc BoundCallback) Equal(other BoundCallback) bool {
	return bc.ID().Equal(other.ID())
}

// IsBoundTo reports whether bc runs against the given component handle.
func (bc BoundCallback) IsBoundTo(cell any) bool {
	if bc.b == nil {
		return false
	}
	return bc.b.impl.component() == cell
}

// IsZero reports whether bc is unbound (never created, or given up by Leak).
func (bc BoundCallback) IsZero() bool {
	return bc.b == nil
}

// String implements fmt.Stringer.
func (bc BoundCallback) String() string {
	if bc.b == nil {
		return "BoundCallback(unbound)"
	}
	return fmt.Sprintf("BoundCallback(%s)", bc.b.impl)
}
