package core

import (
	"fmt"

	"github.com/go-drift/uicore/pkg/graphics"
)

// PayloadKind identifies the variant held by a node.
type PayloadKind uint8

const (
	KindRoot PayloadKind = iota
	KindGroup
	KindRect
	KindSpan
	KindText
)

func (k PayloadKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindGroup:
		return "group"
	case KindRect:
		return "rect"
	case KindSpan:
		return "span"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("PayloadKind(%d)", int(k))
	}
}

// Payload is the variant data carried by a node. The set of payloads is
// closed: Root, Group, Rect, Span and Text.
type Payload interface {
	Kind() PayloadKind
	payload()
}

// Root is the payload of a tree's root node: the viewport size in pixels.
type Root struct {
	Width  float64
	Height float64
}

// Group is the payload of a group anchor. It renders nothing itself.
type Group struct{}

// Rect is a filled rectangle positioned relative to its parent.
type Rect struct {
	Color  graphics.Color
	Bounds graphics.Bounds
}

// Span positions a run of text. Its children are usually Text nodes.
// A MaxWidth of zero means the text is not wrapped.
type Span struct {
	MaxWidth float64
	X        graphics.Length
	Y        graphics.Length
	Color    graphics.Color
}

// Text is literal text content.
type Text struct {
	Content string
}

func (Root) Kind() PayloadKind  { return KindRoot }
func (Group) Kind() PayloadKind { return KindGroup }
func (Rect) Kind() PayloadKind  { return KindRect }
func (Span) Kind() PayloadKind  { return KindSpan }
func (Text) Kind() PayloadKind  { return KindText }

func (Root) payload()  {}
func (Group) payload() {}
func (Rect) payload()  {}
func (Span) payload()  {}
func (Text) payload()  {}

// Bounds returns the pixel rectangle a payload establishes for itself and
// its children, relative to its parent. Only Root and Rect establish bounds;
// other payloads inherit their parent's.
func Bounds(p Payload) (graphics.PxBounds, bool) {
	switch p := p.(type) {
	case Root:
		return graphics.PxBounds{Width: p.Width, Height: p.Height}, true
	case Rect:
		return p.Bounds.ToPx(), true
	default:
		return graphics.PxBounds{}, false
	}
}
