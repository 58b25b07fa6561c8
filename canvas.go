package render

import "image/color"

// PaintStyle selects between filling and stroking.
type PaintStyle int

const (
	// PaintFill fills the shape's interior.
	PaintFill PaintStyle = iota
	// PaintStroke strokes the shape's outline.
	PaintStroke
)

// Paint describes how a drawing operation renders.
type Paint struct {
	Color       color.Color
	Style       PaintStyle
	StrokeWidth float64
}

// Op is one recorded drawing operation. The set of operations is closed;
// backends replay a display list by switching on the concrete types.
type Op interface {
	isCanvasOp()
}

// SaveOp pushes the current transform and clip state.
type SaveOp struct{}

// RestoreOp pops the most recently saved state.
type RestoreOp struct{}

// TranslateOp shifts the current transform.
type TranslateOp struct {
	Dx, Dy float64
}

// TransformOp concatenates an affine transform onto the current transform.
type TransformOp struct {
	Matrix Matrix
}

// ClipRectOp intersects the current clip with a rectangle in the current
// coordinate space.
type ClipRectOp struct {
	Rect Rect
}

// DrawRectOp draws a rectangle.
type DrawRectOp struct {
	Rect  Rect
	Paint Paint
}

// DrawLineOp draws a line segment.
type DrawLineOp struct {
	From, To Offset
	Paint    Paint
}

// DrawDisplayListOp replays a previously recorded display list.
type DrawDisplayListOp struct {
	List *DisplayList
}

func (SaveOp) isCanvasOp()            {}
func (RestoreOp) isCanvasOp()         {}
func (TranslateOp) isCanvasOp()       {}
func (TransformOp) isCanvasOp()       {}
func (ClipRectOp) isCanvasOp()        {}
func (DrawRectOp) isCanvasOp()        {}
func (DrawLineOp) isCanvasOp()        {}
func (DrawDisplayListOp) isCanvasOp() {}

// DisplayList is an immutable recording of drawing operations produced by a
// Canvas. Rasterization happens elsewhere; the render tree only ever
// records.
type DisplayList struct {
	ops []Op
}

// Ops returns the recorded operations in order.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Empty returns true if nothing was recorded.
func (d *DisplayList) Empty() bool {
	return len(d.ops) == 0
}

// Canvas records drawing operations into a DisplayList. It mirrors the
// save/restore discipline of an immediate-mode canvas without doing any
// rasterization.
type Canvas struct {
	ops       []Op
	saveCount int
	finished  bool
}

// NewCanvas creates an empty recording canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) record(op Op) {
	if c.finished {
		panic("render: canvas used after Finish")
	}
	c.ops = append(c.ops, op)
}

// Save pushes the current transform and clip state.
func (c *Canvas) Save() {
	c.saveCount++
	c.record(SaveOp{})
}

// Restore pops the most recently saved state.
func (c *Canvas) Restore() {
	if c.saveCount == 0 {
		panic("render: canvas Restore without matching Save")
	}
	c.saveCount--
	c.record(RestoreOp{})
}

// Translate shifts the current transform by (dx, dy).
func (c *Canvas) Translate(dx, dy float64) {
	c.record(TranslateOp{Dx: dx, Dy: dy})
}

// Transform concatenates an affine transform onto the current transform.
func (c *Canvas) Transform(m Matrix) {
	c.record(TransformOp{Matrix: m})
}

// ClipRect intersects the current clip with rect.
func (c *Canvas) ClipRect(rect Rect) {
	c.record(ClipRectOp{Rect: rect})
}

// DrawRect draws a rectangle with the given paint.
func (c *Canvas) DrawRect(rect Rect, paint Paint) {
	c.record(DrawRectOp{Rect: rect, Paint: paint})
}

// DrawLine draws a line segment with the given paint.
func (c *Canvas) DrawLine(from, to Offset, paint Paint) {
	c.record(DrawLineOp{From: from, To: to, Paint: paint})
}

// DrawDisplayList replays a previously recorded display list at the
// current transform.
func (c *Canvas) DrawDisplayList(list *DisplayList) {
	if list == nil {
		return
	}
	c.record(DrawDisplayListOp{List: list})
}

// Finish seals the recording and returns the display list. The canvas must
// not be used afterwards.
func (c *Canvas) Finish() *DisplayList {
	if c.saveCount != 0 {
		panic("render: canvas Finish with unbalanced Save/Restore")
	}
	c.finished = true
	return &DisplayList{ops: c.ops}
}
