// geometry.go re-exports value types from internal/geometry.
// Any changes to internal/geometry types must be mirrored here.
package render

import "github.com/grindlemire/go-render/internal/geometry"

// Offset represents a 2D displacement or a point relative to some origin.
type Offset = geometry.Offset

// Size represents a width/height pair.
type Size = geometry.Size

// Rect represents a rectangle with position and dimensions.
type Rect = geometry.Rect

// Insets represents spacing on four sides of a rectangle.
type Insets = geometry.Insets

// Matrix is a 2D affine transform.
type Matrix = geometry.Matrix

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return geometry.NewRect(x, y, width, height)
}

// RectFromSize creates a Rect at origin with the given size.
func RectFromSize(size Size) Rect {
	return geometry.RectFromSize(size)
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return geometry.Identity()
}

// TranslationMatrix returns a transform that translates by (dx, dy).
func TranslationMatrix(dx, dy float64) Matrix {
	return geometry.Translation(dx, dy)
}

// InsetsAll creates Insets with the same value on all sides.
func InsetsAll(v float64) Insets {
	return geometry.InsetsAll(v)
}

func clamp(v, lo, hi float64) float64 {
	return geometry.Clamp(v, lo, hi)
}
