package geometry

import "math"

// Offset represents a 2D displacement or a point relative to some origin.
type Offset struct {
	Dx, Dy float64
}

// Add returns a new Offset translated by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{Dx: o.Dx + other.Dx, Dy: o.Dy + other.Dy}
}

// Sub returns a new Offset with other subtracted.
func (o Offset) Sub(other Offset) Offset {
	return Offset{Dx: o.Dx - other.Dx, Dy: o.Dy - other.Dy}
}

// Neg returns the offset pointing in the opposite direction.
func (o Offset) Neg() Offset {
	return Offset{Dx: -o.Dx, Dy: -o.Dy}
}

// Scale returns a new Offset with both components multiplied by factor.
func (o Offset) Scale(factor float64) Offset {
	return Offset{Dx: o.Dx * factor, Dy: o.Dy * factor}
}

// IsFinite returns true if both components are finite.
func (o Offset) IsFinite() bool {
	return !math.IsInf(o.Dx, 0) && !math.IsInf(o.Dy, 0) &&
		!math.IsNaN(o.Dx) && !math.IsNaN(o.Dy)
}

// Size represents a width/height pair.
type Size struct {
	Width, Height float64
}

// IsEmpty returns true if either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Contains returns true if the offset, interpreted as a point relative to
// the size's origin, falls inside the size. The top and left edges are
// inclusive; the bottom and right edges are exclusive.
func (s Size) Contains(o Offset) bool {
	return o.Dx >= 0 && o.Dx < s.Width && o.Dy >= 0 && o.Dy < s.Height
}

// IsFinite returns true if both dimensions are finite.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}
