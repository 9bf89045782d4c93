// Package hostabi defines the capability a callback uses to invoke a function
// that lives on the far side of an embedding boundary, such as a function
// value held by a JavaScript engine.
//
// Each embedding target supplies one implementation. Pure native embeddings
// have no foreign functions and use NoAbi; hosts with a scripting runtime wrap
// the runtime's object handles in Foreign.
package hostabi

import (
	"errors"
	"fmt"
)

// HostAbi is a function owned by the host runtime.
type HostAbi interface {
	// Call invokes the foreign function. Behavior is undefined if the
	// underlying foreign object has already been released.
	Call()

	// ID returns an identity that is stable for the process lifetime.
	// Equal ids imply equal foreign functions.
	ID() uintptr
}

// Handle indexes an object in a host runtime's object table.
// The zero Handle refers to no object.
type Handle uintptr

// Bridge is the interface to the host runtime's object table.
// It is implemented by the embedding (a wasm import shim, a cgo shim, or
// MemoryBridge for in-process hosts).
type Bridge interface {
	// IsFunction reports whether the object is callable.
	IsFunction(h Handle) bool

	// CallFunction invokes a callable object with no arguments.
	CallFunction(h Handle)

	// DropObject releases the host's reference to the object.
	DropObject(h Handle)
}

// Standard errors for host boundary operations.
var (
	// ErrNotFunction indicates the host object is not callable.
	ErrNotFunction = errors.New("host object is not a function")

	// ErrBridgeUnavailable indicates no bridge was supplied.
	ErrBridgeUnavailable = errors.New("host bridge unavailable")
)

// NoAbi is the HostAbi for targets without foreign callbacks. A callback can
// never legitimately hold one, so both methods panic.
type NoAbi struct{}

// Call panics: this target has no foreign callbacks.
func (NoAbi) Call() {
	panic("hostabi: unreachable: NoAbi.Call on a target with no foreign callbacks")
}

// ID panics: this target has no foreign callbacks.
func (NoAbi) ID() uintptr {
	panic("hostabi: unreachable: NoAbi.ID on a target with no foreign callbacks")
}

// String implements fmt.Stringer.
func (NoAbi) String() string {
	return "NoAbi"
}

// Foreign wraps a callable object in a host runtime's object table.
type Foreign struct {
	bridge Bridge
	handle Handle
}

// FromHandle wraps h as a Foreign function. It returns ErrNotFunction if the
// host reports the object is not callable; the caller keeps ownership of h
// in that case.
func FromHandle(bridge Bridge, h Handle) (Foreign, error) {
	if bridge == nil {
		return Foreign{}, ErrBridgeUnavailable
	}
	if h == 0 || !bridge.IsFunction(h) {
		return Foreign{}, fmt.Errorf("handle %d: %w", h, ErrNotFunction)
	}
	return Foreign{bridge: bridge, handle: h}, nil
}

// Call invokes the foreign function through the bridge.
func (f Foreign) Call() {
	f.bridge.CallFunction(f.handle)
}

// ID returns the object table handle as the function identity.
func (f Foreign) ID() uintptr {
	return uintptr(f.handle)
}

// Handle returns the underlying object table handle.
func (f Foreign) Handle() Handle {
	return f.handle
}

// Release drops the host's reference to the function. The Foreign must not
// be called afterwards.
func (f Foreign) Release() {
	if f.bridge != nil && f.handle != 0 {
		f.bridge.DropObject(f.handle)
	}
}

// String implements fmt.Stringer.
func (f Foreign) String() string {
	return fmt.Sprintf("Foreign(%d)", f.handle)
}
