// Package component provides the shared handle through which update
// functions and bound callbacks reach a live component instance.
//
// A *Cell is the strong handle: every BoundCallback and the embedding hold
// the same pointer. Access goes through Borrow (shared) and BorrowMut
// (exclusive), which are checked at runtime. Conflicting access panics with
// *errors.BorrowError; it is never queued or retried.
package component

import (
	"fmt"
	"sync/atomic"

	"github.com/outrigdev/goid"

	"github.com/go-drift/uicore/pkg/errors"
)

// mutBorrowed marks an outstanding exclusive borrow in Cell.state.
const mutBorrowed = -1

// Cell holds a component value behind runtime-checked interior mutability.
type Cell[C any] struct {
	value C
	// state is 0 when free, >0 for that many shared borrows, mutBorrowed for
	// one exclusive borrow.
	state  atomic.Int32
	holder atomic.Uint64
}

// New wraps v in a Cell.
func New[C any](v C) *Cell[C] {
	return &Cell[C]{value: v}
}

// Borrow runs fn with shared access to the component. It panics if the
// component is mutably borrowed.
func (c *Cell[C]) Borrow(fn func(v *C)) {
	for {
		s := c.state.Load()
		if s == mutBorrowed {
			panic(c.conflict(false, s))
		}
		if c.state.CompareAndSwap(s, s+1) {
			break
		}
	}
	if c.state.Load() == 1 {
		c.holder.Store(goid.Get())
	}
	defer c.state.Add(-1)
	fn(&c.value)
}

// BorrowMut runs fn with exclusive access to the component. It panics if any
// borrow is outstanding, including one held further up the same call stack.
func (c *Cell[C]) BorrowMut(fn func(v *C)) {
	if !c.state.CompareAndSwap(0, mutBorrowed) {
		panic(c.conflict(true, c.state.Load()))
	}
	c.holder.Store(goid.Get())
	defer c.state.Store(0)
	fn(&c.value)
}

// IsBorrowed reports whether any borrow is outstanding.
func (c *Cell[C]) IsBorrowed() bool {
	return c.state.Load() != 0
}

func (c *Cell[C]) conflict(mutable bool, state int32) *errors.BorrowError {
	held := "shared"
	if state == mutBorrowed {
		held = "mutably"
	}
	return &errors.BorrowError{
		Type:            typeName[C](),
		Mutable:         mutable,
		Held:            held,
		HolderGoroutine: c.holder.Load(),
		CallerGoroutine: goid.Get(),
	}
}

func typeName[C any]() string {
	var zero C
	return fmt.Sprintf("%T", zero)
}
