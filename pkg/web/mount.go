package web

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// listener is a registered DOM listener. The handle owns a leaked clone of
// the binding; id is kept to detect when the binding changes.
type listener struct {
	id     callback.ID
	handle callback.Handle
}

// mirror is the web-side counterpart of a core.Node.
type mirror struct {
	kind      core.PayloadKind
	node      Element
	attached  bool
	text      string
	styles    map[string]string
	listeners map[core.EventKind]listener
	children  []*mirror
}

func (m *mirror) child(i int) *mirror {
	if i == len(m.children) {
		m.children = append(m.children, &mirror{kind: core.KindGroup})
	}
	return m.children[i]
}

// Mount renders an element tree into a DOM container.
type Mount struct {
	ID uuid.UUID

	mu        sync.Mutex
	dom       DOM
	root      *mirror
	listeners int
	// handles maps each registered listener handle to the event it was
	// registered for.
	handles map[callback.Handle]core.EventKind
}

// NewMount prepares a mount rendering into container.
func NewMount(dom DOM, container Element) *Mount {
	return &Mount{
		ID:   uuid.New(),
		dom:  dom,
		root: &mirror{kind: core.KindRoot, node: container, attached: true},
	}
}

// Listeners returns the number of DOM listeners currently registered.
func (mt *Mount) Listeners() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.listeners
}

// Render brings the DOM in line with root. It must be called after the
// update pass that produced root has finished.
func (mt *Mount) Render(root *core.Node) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.syncListeners(root, mt.root)
	var last Element
	mt.renderChildren(root, mt.root, mt.root.node, &last)
}

// Unmount detaches every node from the container and restores every
// listener handle. The mount can be rendered again afterwards.
func (mt *Mount) Unmount() {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.releaseListeners(mt.root)
	for _, c := range mt.root.children {
		mt.release(c)
	}
	mt.root.children = nil
}

// renderChildren renders n's children into the DOM node parent. last is
// the most recently placed DOM sibling within parent, shared across any
// groups so that their items flow inline.
func (mt *Mount) renderChildren(n *core.Node, m *mirror, parent Element, last *Element) {
	for i, c := range n.Children {
		mt.renderNode(c, m.child(i), parent, last)
	}
}

func (mt *Mount) renderNode(n *core.Node, m *mirror, parent Element, last *Element) {
	kind := n.Payload.Kind()
	if kind == core.KindGroup || kind == core.KindRoot {
		if m.node != 0 {
			mt.release(m)
		}
		m.kind = kind
		if !n.Show {
			mt.detach(m)
			return
		}
		mt.renderChildren(n, m, parent, last)
		return
	}

	if m.kind != kind {
		mt.release(m)
		*m = mirror{kind: kind}
	}
	if m.node == 0 {
		m.node = mt.create(n.Payload)
		if t, ok := n.Payload.(core.Text); ok {
			m.text = t.Content
		}
	}

	if !n.Show {
		if m.attached {
			mt.dom.Remove(m.node)
			m.attached = false
		}
		return
	}

	if !m.attached {
		mt.insertAfter(parent, m.node, *last)
		m.attached = true
	}
	*last = m.node

	mt.apply(n.Payload, m)
	mt.syncListeners(n, m)

	var childLast Element
	mt.renderChildren(n, m, m.node, &childLast)
}

func (mt *Mount) create(p core.Payload) Element {
	switch p := p.(type) {
	case core.Text:
		return mt.dom.CreateText(p.Content)
	case core.Span:
		return mt.dom.CreateElement("span")
	default:
		return mt.dom.CreateElement("div")
	}
}

// insertAfter places node directly after last within parent, or first in
// parent when nothing has been placed yet.
func (mt *Mount) insertAfter(parent, node, last Element) {
	if last == 0 {
		mt.dom.InsertBefore(parent, node, mt.dom.FirstChild(parent))
		return
	}
	if sib := mt.dom.NextSibling(last); sib != 0 {
		mt.dom.InsertBefore(parent, node, sib)
		return
	}
	mt.dom.AppendChild(parent, node)
}

func (mt *Mount) apply(p core.Payload, m *mirror) {
	switch p := p.(type) {
	case core.Rect:
		mt.style(m, "position", "absolute")
		mt.style(m, "background", p.Color.CSS())
		mt.style(m, "width", p.Bounds.Width.CSS())
		mt.style(m, "height", p.Bounds.Height.CSS())
		mt.style(m, "left", p.Bounds.X.CSS())
		mt.style(m, "top", p.Bounds.Y.CSS())
	case core.Span:
		if p.MaxWidth > 0 {
			mt.style(m, "max-width", graphics.Px(p.MaxWidth).CSS())
		}
		mt.style(m, "color", p.Color.CSS())
		mt.style(m, "left", p.X.CSS())
		mt.style(m, "top", p.Y.CSS())
	case core.Text:
		if m.text != p.Content {
			mt.dom.SetText(m.node, p.Content)
			m.text = p.Content
		}
	}
}

func (mt *Mount) style(m *mirror, property, value string) {
	if m.styles == nil {
		m.styles = make(map[string]string)
	}
	if cur, ok := m.styles[property]; ok && cur == value {
		return
	}
	mt.dom.SetStyle(m.node, property, value)
	m.styles[property] = value
}

// syncListeners diffs n's event bindings against the listeners registered
// on m's DOM node.
func (mt *Mount) syncListeners(n *core.Node, m *mirror) {
	for _, kind := range core.EventKinds {
		b, bound := n.Events.Get(kind)
		cur, registered := m.listeners[kind]
		switch {
		case !bound && !registered:
		case !bound:
			mt.unlisten(m, kind, cur)
		case registered && cur.id.Equal(b.ID()):
		default:
			if registered {
				mt.unlisten(m, kind, cur)
			}
			mt.listen(m, kind, b)
		}
	}
}

func (mt *Mount) listen(m *mirror, kind core.EventKind, b callback.BoundCallback) {
	clone := b.Clone()
	id := clone.ID()
	h := clone.Leak()
	mt.dom.AddEventListener(m.node, kind.DOMName(), h)
	if m.listeners == nil {
		m.listeners = make(map[core.EventKind]listener)
	}
	m.listeners[kind] = listener{id: id, handle: h}
	if mt.handles == nil {
		mt.handles = make(map[callback.Handle]core.EventKind)
	}
	mt.handles[h] = kind
	mt.listeners++
}

func (mt *Mount) unlisten(m *mirror, kind core.EventKind, l listener) {
	mt.dom.RemoveEventListener(m.node, kind.DOMName(), l.handle)
	callback.Restore(l.handle)
	delete(m.listeners, kind)
	delete(mt.handles, l.handle)
	mt.listeners--
}

func (mt *Mount) releaseListeners(m *mirror) {
	for _, kind := range core.EventKinds {
		if l, ok := m.listeners[kind]; ok {
			mt.unlisten(m, kind, l)
		}
	}
}

// detach removes m's DOM nodes from the document, descending through groups
// whose items live in the enclosing element.
func (mt *Mount) detach(m *mirror) {
	if m.node != 0 {
		if m.attached {
			mt.dom.Remove(m.node)
			m.attached = false
		}
		return
	}
	for _, c := range m.children {
		mt.detach(c)
	}
}

// release detaches m and gives back every listener handle in its subtree.
func (mt *Mount) release(m *mirror) {
	mt.detach(m)
	if m.node != 0 {
		mt.releaseListeners(m)
	}
	for _, c := range m.children {
		mt.release(c)
	}
	m.node = 0
	m.children = nil
	m.styles = nil
	m.text = ""
}
