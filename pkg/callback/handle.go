package callback

import (
	"sync"

	"github.com/go-drift/uicore/pkg/errors"
)

// Handle is a raw, integer-sized token standing for a leaked BoundCallback.
// It is what a host runtime stores in its own listener table.
//
// Ownership moves with the token: after Leak the handle is the sole owner,
// and exactly one Restore must eventually take ownership back. A handle that
// is never restored keeps its callback and component alive for the rest of
// the process. Restoring a handle twice, or restoring a value that Leak did
// not produce, panics with *errors.HandleError.
type Handle uintptr

// handleTable maps leaked handles to their bound values. Handle numbers are
// assigned once per bound value and never reused.
type handleTable struct {
	mu     sync.Mutex
	leaked map[Handle]*bound
	next   Handle
}

var handles = &handleTable{leaked: make(map[Handle]*bound)}

// assign gives b its handle number if it does not have one yet.
// Caller holds t.mu.
func (t *handleTable) assign(b *bound) Handle {
	if b.handle == 0 {
		t.next++
		b.handle = t.next
	}
	return b.handle
}

// Leak gives up bc's ownership and returns the handle that now owns the
// value. bc is left unbound. Leaking an unbound value returns 0.
//
// Leaking the same value again after a Restore returns the same handle.
func (bc *BoundCallback) Leak() Handle {
	b := bc.b
	if b == nil {
		return 0
	}
	bc.b = nil

	handles.mu.Lock()
	defer handles.mu.Unlock()
	h := handles.assign(b)
	if _, dup := handles.leaked[h]; dup {
		panic(&errors.HandleError{Op: "callback.Leak", Handle: uintptr(h), Reason: "is already leaked"})
	}
	handles.leaked[h] = b
	return h
}

// Restore takes ownership back from a leaked handle.
func Restore(h Handle) BoundCallback {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	b, ok := handles.leaked[h]
	if !ok {
		panic(&errors.HandleError{Op: "callback.Restore", Handle: uintptr(h), Reason: "is not leaked"})
	}
	delete(handles.leaked, h)
	return BoundCallback{b: b}
}

// Ptr returns bc together with the handle it will have when leaked. The
// caller keeps ownership; the handle can be given to a host runtime before
// the value is leaked to it.
func (bc BoundCallback) Ptr() (BoundCallback, Handle) {
	if bc.b == nil {
		return bc, 0
	}
	handles.mu.Lock()
	defer handles.mu.Unlock()
	return bc, handles.assign(bc.b)
}

// Dispatch is the entry point a host runtime calls with a handle from its
// listener table. It restores the value, invokes it, and leaks it again, so
// the host's handle stays valid afterwards. The handle is re-leaked even if
// the callback panics.
func Dispatch(h Handle) {
	bc := Restore(h)
	defer bc.Leak()
	bc.Call()
}

// Outstanding returns the number of handles currently leaked.
func Outstanding() int {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	return len(handles.leaked)
}
