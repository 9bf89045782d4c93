// Package engine embeds a component in a native host: it pumps frames,
// records display lists from the element tree and routes pointer input to
// bound callbacks.
//
// A host owns one App per window. It calls Frame whenever NeedsFrame reports
// true and forwards pointer input through HandlePointer. Everything runs on
// the host's event-loop goroutine; Dispatch and RequestFrame may be called
// from any goroutine.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/component"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/errors"
	"github.com/go-drift/uicore/pkg/graphics"
	"github.com/go-drift/uicore/pkg/snapshot"
)

// UpdateFunc redescribes a component's tree under root. It is the shape of
// a generated update function.
type UpdateFunc[C any] func(c *component.Cell[C], root *core.Node)

// App is a running component instance with its persistent element tree.
type App[C any] struct {
	id     uuid.UUID
	cell   *component.Cell[C]
	update UpdateFunc[C]

	// frameLock guards the tree and pointer state.
	frameLock sync.Mutex
	root      *core.Node
	list      *graphics.DisplayList
	frames    uint64
	hovered   []*core.Node
	pressed   *core.Node

	pendingFrame  atomic.Bool
	dispatchMu    sync.Mutex
	dispatchQueue []func()

	trace *FrameTraceBuffer
}

// NewApp wraps value in a component cell, runs its OnInit hook and prepares
// an empty root of the given size. The first Frame builds the tree.
func NewApp[C any](value C, update UpdateFunc[C], width, height float64) *App[C] {
	cell := component.New(value)
	component.Init(cell)
	a := &App[C]{
		id:     uuid.New(),
		cell:   cell,
		update: update,
		root:   core.NewRoot(width, height),
		trace:  NewFrameTraceBuffer(0, 0),
	}
	a.pendingFrame.Store(true)
	return a
}

// ID identifies this app instance in diagnostics.
func (a *App[C]) ID() uuid.UUID {
	return a.id
}

// Component returns the shared component handle.
func (a *App[C]) Component() *component.Cell[C] {
	return a.cell
}

// Root returns the persistent root node. Callers must not mutate it while a
// frame is running.
func (a *App[C]) Root() *core.Node {
	return a.root
}

// DisplayList returns the list recorded by the most recent frame, or nil
// before the first frame.
func (a *App[C]) DisplayList() *graphics.DisplayList {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	return a.list
}

// Frames returns the number of completed frames.
func (a *App[C]) Frames() uint64 {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	return a.frames
}

// Dispatch schedules fn to run at the start of the next frame and is safe to
// call from any goroutine.
func (a *App[C]) Dispatch(fn func()) {
	a.dispatchMu.Lock()
	a.dispatchQueue = append(a.dispatchQueue, fn)
	a.dispatchMu.Unlock()
	a.RequestFrame()
}

func (a *App[C]) drainDispatchQueue() []func() {
	a.dispatchMu.Lock()
	defer a.dispatchMu.Unlock()
	q := a.dispatchQueue
	a.dispatchQueue = nil
	return q
}

// RequestFrame marks the tree as needing an update pass.
func (a *App[C]) RequestFrame() {
	a.pendingFrame.Store(true)
}

// NeedsFrame reports whether the host should call Frame.
func (a *App[C]) NeedsFrame() bool {
	if a.pendingFrame.Load() {
		return true
	}
	a.dispatchMu.Lock()
	defer a.dispatchMu.Unlock()
	return len(a.dispatchQueue) > 0
}

// Resize changes the viewport. The new size is visible to the next frame.
func (a *App[C]) Resize(width, height float64) {
	a.frameLock.Lock()
	a.root.Payload = core.Root{Width: width, Height: height}
	a.frameLock.Unlock()
	a.RequestFrame()
}

// Frame runs one update pass and records the resulting display list.
//
// Queued Dispatch callbacks run first, then the component's OnUpdate hook,
// then the update function. A panic during the pass is reported through
// the errors package and then re-raised to the host.
func (a *App[C]) Frame() *graphics.DisplayList {
	start := time.Now()
	for _, fn := range a.drainDispatchQueue() {
		fn()
	}
	dispatched := time.Since(start)

	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	defer errors.ReportAndRepanic("engine.Frame")

	a.pendingFrame.Store(false)

	updateStart := time.Now()
	component.Update(a.cell)
	a.update(a.cell, a.root)
	updated := time.Since(updateStart)

	paintStart := time.Now()
	a.list = Render(a.root)
	painted := time.Since(paintStart)

	a.frames++
	a.hovered = retainAttached(a.root, a.hovered)

	total := time.Since(start)
	stats := collectStats(a.root)
	a.trace.Add(FrameSample{
		Frame:     a.frames,
		Timestamp: start.UnixMilli(),
		FrameMs:   durationToMillis(total),
		Phases: FramePhaseTimings{
			DispatchMs: durationToMillis(dispatched),
			UpdateMs:   durationToMillis(updated),
			PaintMs:    durationToMillis(painted),
		},
		Counts: FrameCounts{
			Nodes:      stats.Nodes,
			Visible:    stats.Visible,
			Handlers:   stats.Handlers,
			DisplayOps: a.list.Len(),
		},
	}, total)
	return a.list
}

// Snapshot captures the current tree and the last display list.
func (a *App[C]) Snapshot() *snapshot.Snapshot {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	return snapshot.Capture(a.root, a.list)
}

// Timeline returns recent frame samples.
func (a *App[C]) Timeline() FrameTimeline {
	return a.trace.Snapshot()
}

// Stats summarizes the current tree.
func (a *App[C]) Stats() Stats {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	s := collectStats(a.root)
	s.App = a.id.String()
	s.Frames = a.frames
	return s
}

// Stats counts nodes and handlers in a tree.
type Stats struct {
	App           string `json:"app,omitempty"`
	Frames        uint64 `json:"frames"`
	Nodes         int    `json:"nodes"`
	Visible       int    `json:"visible"`
	Hidden        int    `json:"hidden"`
	Groups        int    `json:"groups"`
	Handlers      int    `json:"handlers"`
	LeakedHandles int    `json:"leakedHandles"`
}

func collectStats(root *core.Node) Stats {
	var s Stats
	core.Walk(root, func(n *core.Node, _, _ int) bool {
		s.Nodes++
		if n.Group {
			s.Groups++
		}
		s.Handlers += n.Events.Len()
		return true
	})
	core.WalkVisible(root, func(*core.Node, int, int) bool {
		s.Visible++
		return true
	})
	s.Hidden = s.Nodes - s.Visible
	s.LeakedHandles = callback.Outstanding()
	return s
}

// retainAttached drops hovered nodes that are no longer visible after an
// update pass, so a later pointer event does not fire leave on them.
func retainAttached(root *core.Node, nodes []*core.Node) []*core.Node {
	if len(nodes) == 0 {
		return nodes
	}
	visible := make(map[*core.Node]bool)
	core.WalkVisible(root, func(n *core.Node, _, _ int) bool {
		visible[n] = true
		return true
	})
	kept := nodes[:0]
	for _, n := range nodes {
		if visible[n] {
			kept = append(kept, n)
		}
	}
	return kept
}
