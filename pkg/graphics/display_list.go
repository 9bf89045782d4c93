package graphics

import "fmt"

// Canvas receives drawing commands in absolute pixel coordinates.
type Canvas interface {
	Translate(dx, dy float64)
	DrawRect(bounds PxBounds, color Color)
	DrawText(text string, x, y, maxWidth float64, color Color)
}

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpTranslate OpKind = iota
	OpRect
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpTranslate:
		return "translate"
	case OpRect:
		return "rect"
	case OpText:
		return "text"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// DrawOp is a single recorded operation. Bounds is in pixels relative to the
// current translation; for text, Bounds.Width is the max width (0 means no limit)
// and Bounds.Height is unused.
type DrawOp struct {
	Kind   OpKind
	Bounds PxBounds
	Color  Color
	Text   string
}

func (op DrawOp) execute(canvas Canvas) {
	switch op.Kind {
	case OpTranslate:
		canvas.Translate(op.Bounds.X, op.Bounds.Y)
	case OpRect:
		canvas.DrawRect(op.Bounds, op.Color)
	case OpText:
		canvas.DrawText(op.Text, op.Bounds.X, op.Bounds.Y, op.Bounds.Width, op.Color)
	}
}

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops    []DrawOp
	width  float64
	height float64
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Ops returns a copy of the recorded operations.
func (d *DisplayList) Ops() []DrawOp {
	ops := make([]DrawOp, len(d.ops))
	copy(ops, d.ops)
	return ops
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() (width, height float64) {
	return d.width, d.height
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []DrawOp
	recording bool
	width     float64
	height    float64
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(width, height float64) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.width, r.height = width, height
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{width: r.width, height: r.height}
	}
	r.recording = false
	ops := make([]DrawOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{ops: ops, width: r.width, height: r.height}
}

func (r *PictureRecorder) append(op DrawOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type recordingCanvas struct {
	recorder *PictureRecorder
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(DrawOp{Kind: OpTranslate, Bounds: PxBounds{X: dx, Y: dy}})
}

func (c *recordingCanvas) DrawRect(bounds PxBounds, color Color) {
	c.recorder.append(DrawOp{Kind: OpRect, Bounds: bounds, Color: color})
}

func (c *recordingCanvas) DrawText(text string, x, y, maxWidth float64, color Color) {
	c.recorder.append(DrawOp{Kind: OpText, Bounds: PxBounds{X: x, Y: y, Width: maxWidth}, Color: color, Text: text})
}
