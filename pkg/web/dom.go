// Package web renders element trees into a browser DOM through a narrow
// bridge and routes DOM events back to bound callbacks.
//
// A Mount keeps a mirror of the element tree holding the DOM node created
// for each element and the listener handle registered for each event. Each
// Render walks the finalized tree once: shown nodes are inserted after the
// last shown sibling, hidden nodes are detached but kept for reuse, and
// listeners are replaced only when the bound callback's identity changed.
//
// Listener handles cross the boundary with the leak/restore protocol from
// the callback package. The Mount leaks one clone per registered listener
// and restores it when the listener is replaced or the Mount is torn down.
package web

import "github.com/go-drift/uicore/pkg/callback"

// Element is a host reference to a DOM node. Zero means no node.
type Element uintptr

// DOM is the set of host operations a Mount needs. It mirrors the imports a
// JavaScript runtime provides to the module.
type DOM interface {
	CreateElement(tag string) Element
	CreateText(content string) Element
	// InsertBefore inserts node into parent before ref. A zero ref appends.
	InsertBefore(parent, node, ref Element)
	AppendChild(parent, child Element)
	FirstChild(parent Element) Element
	NextSibling(node Element) Element
	// Remove detaches node from its parent. The node stays valid.
	Remove(node Element)
	SetText(node Element, content string)
	SetStyle(node Element, property, value string)
	AddEventListener(node Element, event string, h callback.Handle)
	RemoveEventListener(node Element, event string, h callback.Handle)
}
