package web

import (
	"fmt"
	"html"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/go-drift/uicore/pkg/callback"
)

type memNode struct {
	tag       string // empty for text nodes
	text      string
	parent    Element
	children  []Element
	styles    map[string]string
	listeners map[string][]callback.Handle
}

// MemoryDOM is an in-process DOM. It records every mutation in an op log,
// which makes it the DOM of choice for tests and the command-line tool.
type MemoryDOM struct {
	mu    sync.Mutex
	nodes map[Element]*memNode
	next  Element
	body  Element
	ops   []string
}

// NewMemoryDOM creates a document with an empty body element.
func NewMemoryDOM() *MemoryDOM {
	d := &MemoryDOM{nodes: make(map[Element]*memNode)}
	d.body = d.alloc(&memNode{tag: "body"})
	return d
}

// Body returns the document body, the usual mount container.
func (d *MemoryDOM) Body() Element {
	return d.body
}

func (d *MemoryDOM) alloc(n *memNode) Element {
	d.next++
	d.nodes[d.next] = n
	return d.next
}

func (d *MemoryDOM) node(e Element) *memNode {
	n, ok := d.nodes[e]
	if !ok {
		panic(fmt.Sprintf("web: unknown DOM node #%d", e))
	}
	return n
}

func (d *MemoryDOM) record(format string, args ...any) {
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
}

// Ops returns the op log recorded since the last ResetOps.
func (d *MemoryDOM) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.ops)
}

// ResetOps clears the op log.
func (d *MemoryDOM) ResetOps() {
	d.mu.Lock()
	d.ops = nil
	d.mu.Unlock()
}

func (d *MemoryDOM) CreateElement(tag string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.alloc(&memNode{tag: tag})
	d.record("create #%d <%s>", e, tag)
	return e
}

func (d *MemoryDOM) CreateText(content string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.alloc(&memNode{text: content})
	d.record("create #%d %q", e, content)
	return e
}

func (d *MemoryDOM) InsertBefore(parent, node, ref Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unlink(node)
	p := d.node(parent)
	i := len(p.children)
	if ref != 0 {
		if j := slices.Index(p.children, ref); j >= 0 {
			i = j
		}
	}
	p.children = slices.Insert(p.children, i, node)
	d.node(node).parent = parent
	if ref == 0 {
		d.record("insert #%d into #%d", node, parent)
	} else {
		d.record("insert #%d into #%d before #%d", node, parent, ref)
	}
}

func (d *MemoryDOM) AppendChild(parent, child Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unlink(child)
	p := d.node(parent)
	p.children = append(p.children, child)
	d.node(child).parent = parent
	d.record("append #%d to #%d", child, parent)
}

func (d *MemoryDOM) FirstChild(parent Element) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p := d.node(parent); len(p.children) > 0 {
		return p.children[0]
	}
	return 0
}

func (d *MemoryDOM) NextSibling(node Element) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.node(node)
	if n.parent == 0 {
		return 0
	}
	siblings := d.node(n.parent).children
	if i := slices.Index(siblings, node); i >= 0 && i+1 < len(siblings) {
		return siblings[i+1]
	}
	return 0
}

func (d *MemoryDOM) Remove(node Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unlink(node)
	d.record("remove #%d", node)
}

// unlink detaches node from its parent. Caller holds d.mu.
func (d *MemoryDOM) unlink(node Element) {
	n := d.node(node)
	if n.parent == 0 {
		return
	}
	p := d.node(n.parent)
	if i := slices.Index(p.children, node); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = 0
}

func (d *MemoryDOM) SetText(node Element, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.node(node).text = content
	d.record("text #%d %q", node, content)
}

func (d *MemoryDOM) SetStyle(node Element, property, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.node(node)
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[property] = value
	d.record("style #%d %s=%s", node, property, value)
}

func (d *MemoryDOM) AddEventListener(node Element, event string, h callback.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.node(node)
	if n.listeners == nil {
		n.listeners = make(map[string][]callback.Handle)
	}
	n.listeners[event] = append(n.listeners[event], h)
	d.record("listen #%d %s", node, event)
}

func (d *MemoryDOM) RemoveEventListener(node Element, event string, h callback.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.node(node)
	if i := slices.Index(n.listeners[event], h); i >= 0 {
		n.listeners[event] = slices.Delete(n.listeners[event], i, i+1)
	}
	d.record("unlisten #%d %s", node, event)
}

// Listeners returns the handles registered on node for event.
func (d *MemoryDOM) Listeners(node Element, event string) []callback.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.node(node).listeners[event])
}

// Fire delivers event to node's listeners through DispatchEvent, the way
// the JavaScript runtime would. It returns the number of listeners invoked.
func (d *MemoryDOM) Fire(node Element, event string) int {
	hs := d.Listeners(node, event)
	for _, h := range hs {
		DispatchEvent(h)
	}
	return len(hs)
}

// Find returns the first attached node, in document order, whose text
// content or tag matches s, or zero.
func (d *MemoryDOM) Find(s string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	var found Element
	var walk func(e Element) bool
	walk = func(e Element) bool {
		n := d.nodes[e]
		if e != d.body && (n.tag == s || (n.tag == "" && n.text == s)) {
			found = e
			return true
		}
		for _, c := range n.children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(d.body)
	return found
}

// Parent returns node's parent, or zero if it is detached.
func (d *MemoryDOM) Parent(node Element) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.node(node).parent
}

// HTML serializes the subtree under node. Styles are written in property
// order so the output is stable.
func (d *MemoryDOM) HTML(node Element) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	d.writeHTML(&b, node)
	return b.String()
}

func (d *MemoryDOM) writeHTML(b *strings.Builder, e Element) {
	n := d.node(e)
	if n.tag == "" {
		b.WriteString(html.EscapeString(n.text))
		return
	}
	b.WriteString("<" + n.tag)
	if len(n.styles) > 0 {
		keys := make([]string, 0, len(n.styles))
		for k := range n.styles {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + n.styles[k]
		}
		fmt.Fprintf(b, " style=%q", strings.Join(parts, "; "))
	}
	b.WriteString(">")
	for _, c := range n.children {
		d.writeHTML(b, c)
	}
	b.WriteString("</" + n.tag + ">")
}
