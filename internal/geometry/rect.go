package geometry

import "math"

// Rect represents a rectangle with position and dimensions.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromLTRB creates a Rect from left/top/right/bottom edge coordinates.
func RectFromLTRB(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// RectFromSize creates a Rect at origin with the given size.
func RectFromSize(size Size) Rect {
	return Rect{Width: size.Width, Height: size.Height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// TopLeft returns the position of the top-left corner.
func (r Rect) TopLeft() Offset {
	return Offset{Dx: r.X, Dy: r.Y}
}

// IsEmpty returns true if the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rectangle.
// The top and left edges are inclusive; bottom and right are exclusive.
func (r Rect) Contains(p Offset) bool {
	return p.Dx >= r.X && p.Dx < r.Right() && p.Dy >= r.Y && p.Dy < r.Bottom()
}

// Shift returns the rectangle translated by the given offset.
func (r Rect) Shift(o Offset) Rect {
	return Rect{X: r.X + o.Dx, Y: r.Y + o.Dy, Width: r.Width, Height: r.Height}
}

// Inset returns a new Rect inset by the given insets.
// The result never has negative dimensions.
func (r Rect) Inset(in Insets) Rect {
	w := math.Max(0, r.Width-in.Horizontal())
	h := math.Max(0, r.Height-in.Vertical())
	return Rect{X: r.X + in.Left, Y: r.Y + in.Top, Width: w, Height: h}
}

// Intersect returns the overlapping region of two rectangles.
// Returns an empty Rect if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.X, other.X)
	top := math.Max(r.Y, other.Y)
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return RectFromLTRB(left, top, right, bottom)
}

// Insets represents spacing on four sides of a rectangle.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// InsetsAll creates Insets with the same value on all sides.
func InsetsAll(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns the combined left and right insets.
func (in Insets) Horizontal() float64 {
	return in.Left + in.Right
}

// Vertical returns the combined top and bottom insets.
func (in Insets) Vertical() float64 {
	return in.Top + in.Bottom
}
