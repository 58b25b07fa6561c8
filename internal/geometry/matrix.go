package geometry

import "math"

// Matrix is a 2D affine transform:
//
//	| XX XY X0 |
//	| YX YY Y0 |
//
// It maps a point p to (XX*p.x + XY*p.y + X0, YX*p.x + YY*p.y + Y0).
type Matrix struct {
	XX, YX, XY, YY, X0, Y0 float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// Translation returns a transform that translates by (dx, dy).
func Translation(dx, dy float64) Matrix {
	return Matrix{XX: 1, YY: 1, X0: dx, Y0: dy}
}

// Scaling returns a transform that scales by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{XX: sx, YY: sy}
}

// Rotation returns a transform that rotates by the given angle in radians.
func Rotation(angle float64) Matrix {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Matrix{XX: c, YX: s, XY: -s, YY: c}
}

// IsIdentity returns true if the transform has no effect.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation returns true if the transform only translates.
func (m Matrix) IsTranslation() bool {
	return m.XX == 1 && m.YX == 0 && m.XY == 0 && m.YY == 1
}

// Mul returns the composition m ∘ o: applying the result is equivalent to
// applying o first and then m.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		XX: m.XX*o.XX + m.XY*o.YX,
		YX: m.YX*o.XX + m.YY*o.YX,
		XY: m.XX*o.XY + m.XY*o.YY,
		YY: m.YX*o.XY + m.YY*o.YY,
		X0: m.XX*o.X0 + m.XY*o.Y0 + m.X0,
		Y0: m.YX*o.X0 + m.YY*o.Y0 + m.Y0,
	}
}

// Translated returns the transform with a translation applied in the local
// frame, i.e. m.Translated(dx, dy).Apply(p) == m.Apply(p + (dx, dy)).
func (m Matrix) Translated(dx, dy float64) Matrix {
	return m.Mul(Translation(dx, dy))
}

// Apply transforms the given point.
func (m Matrix) Apply(p Offset) Offset {
	return Offset{
		Dx: m.XX*p.Dx + m.XY*p.Dy + m.X0,
		Dy: m.YX*p.Dx + m.YY*p.Dy + m.Y0,
	}
}

// Determinant returns the determinant of the linear part of the transform.
func (m Matrix) Determinant() float64 {
	return m.XX*m.YY - m.XY*m.YX
}

// Invert returns the inverse transform. The second return value is false if
// the transform is singular (zero determinant), in which case the zero
// Matrix is returned.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) {
		return Matrix{}, false
	}
	return Matrix{
		XX: m.YY / det,
		XY: -m.XY / det,
		YX: -m.YX / det,
		YY: m.XX / det,
		X0: (m.XY*m.Y0 - m.YY*m.X0) / det,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) / det,
	}, true
}

// TransformRect returns the axis-aligned bounding box of the rectangle's
// four transformed corners.
func (m Matrix) TransformRect(r Rect) Rect {
	p1 := m.Apply(Offset{Dx: r.X, Dy: r.Y})
	p2 := m.Apply(Offset{Dx: r.Right(), Dy: r.Y})
	p3 := m.Apply(Offset{Dx: r.X, Dy: r.Bottom()})
	p4 := m.Apply(Offset{Dx: r.Right(), Dy: r.Bottom()})
	left := math.Min(math.Min(p1.Dx, p2.Dx), math.Min(p3.Dx, p4.Dx))
	top := math.Min(math.Min(p1.Dy, p2.Dy), math.Min(p3.Dy, p4.Dy))
	right := math.Max(math.Max(p1.Dx, p2.Dx), math.Max(p3.Dx, p4.Dx))
	bottom := math.Max(math.Max(p1.Dy, p2.Dy), math.Max(p3.Dy, p4.Dy))
	return RectFromLTRB(left, top, right, bottom)
}
