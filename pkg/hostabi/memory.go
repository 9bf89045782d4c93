package hostabi

import (
	"sync"
)

// MemoryBridge is an in-process host object table. Objects of type func()
// are callable. Handles start at 1 and are never reused, so a stale handle
// is detected instead of aliasing a newer object.
type MemoryBridge struct {
	mu      sync.RWMutex
	objects map[Handle]any
	next    Handle
	calls   map[Handle]int
}

// NewMemoryBridge creates an empty object table.
func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		objects: make(map[Handle]any),
		calls:   make(map[Handle]int),
	}
}

// AddObject stores v and returns its handle.
func (b *MemoryBridge) AddObject(v any) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.objects[b.next] = v
	return b.next
}

// AddFunction stores fn and returns it wrapped as a Foreign.
func (b *MemoryBridge) AddFunction(fn func()) Foreign {
	return Foreign{bridge: b, handle: b.AddObject(fn)}
}

// Object returns the object stored under h.
func (b *MemoryBridge) Object(h Handle) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.objects[h]
	return v, ok
}

// IsFunction reports whether h holds a func().
func (b *MemoryBridge) IsFunction(h Handle) bool {
	v, ok := b.Object(h)
	if !ok {
		return false
	}
	_, ok = v.(func())
	return ok
}

// CallFunction invokes the func() stored under h. Calling a dropped or
// non-function handle is a no-op, matching a host that guards with a
// constructor check before calling.
func (b *MemoryBridge) CallFunction(h Handle) {
	b.mu.Lock()
	v := b.objects[h]
	fn, ok := v.(func())
	if ok {
		b.calls[h]++
	}
	b.mu.Unlock()
	if ok {
		fn()
	}
}

// DropObject removes h from the table.
func (b *MemoryBridge) DropObject(h Handle) {
	b.mu.Lock()
	delete(b.objects, h)
	b.mu.Unlock()
}

// Calls returns how many times h was invoked.
func (b *MemoryBridge) Calls(h Handle) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[h]
}

// Len returns the number of live objects.
func (b *MemoryBridge) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
