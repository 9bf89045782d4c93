// Package errors provides structured error handling for the uicore runtime.
//
// Two classes of failure exist. Recoverable failures (configuration, codec,
// host bridge) are returned as *UIError values. Programming errors in the
// update or dispatch path (skipped declaration index, conflicting component
// borrow, misused leak/restore handle) panic with one of the typed values in
// this package so recover sites can tell them apart.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindContract indicates a reconciler contract violation by an update function.
	KindContract
	// KindBorrow indicates a conflicting runtime borrow of a component.
	KindBorrow
	// KindHost indicates a host bridge or foreign handle failure.
	KindHost
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid project configuration.
	KindConfig
	// KindCodec indicates a host message that could not be encoded or decoded.
	KindCodec
)

func (k ErrorKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindBorrow:
		return "borrow"
	case KindHost:
		return "host"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindCodec:
		return "codec"
	default:
		return "unknown"
	}
}

// UIError represents a structured error in the uicore runtime.
type UIError struct {
	// Op is the operation that failed (e.g., "web.HandleMessage").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *UIError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ContractError is the panic value raised when an update function addresses
// a child index that skips past the end of the parent's child list.
type ContractError struct {
	// Op is the reconciler operation (e.g., "core.ElementIn").
	Op string
	// Index is the declaration index that was requested.
	Index int
	// Len is the parent's child count at the time of the call.
	Len int
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: index %d skips past %d children (declaration order violated)", e.Op, e.Index, e.Len)
}

// BorrowError is the panic value raised when a component is borrowed while a
// conflicting borrow is outstanding.
type BorrowError struct {
	// Type is the component type name.
	Type string
	// Mutable reports whether the rejected borrow was exclusive.
	Mutable bool
	// Held describes the outstanding borrow ("mutably" or "shared").
	Held string
	// HolderGoroutine is the goroutine that took the outstanding borrow.
	HolderGoroutine uint64
	// CallerGoroutine is the goroutine that attempted the rejected borrow.
	CallerGoroutine uint64
}

func (e *BorrowError) Error() string {
	want := "shared"
	if e.Mutable {
		want = "mutable"
	}
	where := "re-entrant"
	if e.HolderGoroutine != e.CallerGoroutine {
		where = fmt.Sprintf("concurrent, held by goroutine %d", e.HolderGoroutine)
	}
	return fmt.Sprintf("%s already borrowed %s: %s borrow rejected (%s)", e.Type, e.Held, want, where)
}

// HandleError is the panic value raised when the leak/restore pairing of a
// bound callback handle is broken: a restore without a matching leak, a
// second restore, or a second leak of a value that is already leaked.
type HandleError struct {
	// Op is the handle operation (e.g., "callback.Restore").
	Op string
	// Handle is the offending raw handle.
	Handle uintptr
	// Reason describes the broken pairing.
	Reason string
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("%s: handle %#x %s", e.Op, e.Handle, e.Reason)
}

// ErrorHandler receives errors reported by the uicore runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *UIError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
