package render

import (
	"fmt"
	"math"
)

// Constraints is the abstract capability shared by every layout input type.
// A node's Layout receives a Constraints value whose concrete type matches
// the node's protocol (BoxConstraints for boxes, SliverConstraints for
// slivers).
type Constraints interface {
	// IsTight returns true if there is exactly one output that satisfies
	// the constraints.
	IsTight() bool

	// IsNormalized returns true if the constraints are internally
	// consistent (no inverted ranges, no negative extents).
	IsNormalized() bool
}

// Unbounded is the constraint value meaning "no maximum".
var Unbounded = math.Inf(1)

// BoxConstraints describes an immutable range of allowed sizes for a box.
// A size satisfies the constraints if each dimension falls within the
// corresponding [min, max] range. Compared structurally.
type BoxConstraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

var _ Constraints = BoxConstraints{}

// TightConstraints creates constraints satisfied only by the given size.
func TightConstraints(size Size) BoxConstraints {
	return BoxConstraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// TightConstraintsFor creates constraints tight on each axis where the
// given extent is non-negative and unconstrained elsewhere.
func TightConstraintsFor(width, height float64) BoxConstraints {
	c := BoxConstraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
	if width >= 0 {
		c.MinWidth = width
		c.MaxWidth = width
	}
	if height >= 0 {
		c.MinHeight = height
		c.MaxHeight = height
	}
	return c
}

// LooseConstraints creates constraints that forbid sizes larger than the
// given size but allow anything smaller.
func LooseConstraints(size Size) BoxConstraints {
	return BoxConstraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// ExpandConstraints creates constraints that require the biggest size
// available, i.e. both dimensions tight at infinity.
func ExpandConstraints() BoxConstraints {
	return BoxConstraints{
		MinWidth:  Unbounded,
		MaxWidth:  Unbounded,
		MinHeight: Unbounded,
		MaxHeight: Unbounded,
	}
}

// IsTight returns true if both dimensions admit exactly one value.
func (c BoxConstraints) IsTight() bool {
	return c.HasTightWidth() && c.HasTightHeight()
}

// IsNormalized returns true if the minimums do not exceed the maximums and
// nothing is negative.
func (c BoxConstraints) IsNormalized() bool {
	return c.MinWidth >= 0 && c.MinWidth <= c.MaxWidth &&
		c.MinHeight >= 0 && c.MinHeight <= c.MaxHeight
}

// HasTightWidth returns true if exactly one width satisfies the constraints.
func (c BoxConstraints) HasTightWidth() bool {
	return c.MinWidth >= c.MaxWidth
}

// HasTightHeight returns true if exactly one height satisfies the constraints.
func (c BoxConstraints) HasTightHeight() bool {
	return c.MinHeight >= c.MaxHeight
}

// HasBoundedWidth returns true if the maximum width is finite.
func (c BoxConstraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight returns true if the maximum height is finite.
func (c BoxConstraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// Smallest returns the smallest size satisfying the constraints.
func (c BoxConstraints) Smallest() Size {
	return Size{Width: c.ConstrainWidth(0), Height: c.ConstrainHeight(0)}
}

// Biggest returns the biggest size satisfying the constraints.
func (c BoxConstraints) Biggest() Size {
	return Size{Width: c.ConstrainWidth(Unbounded), Height: c.ConstrainHeight(Unbounded)}
}

// ConstrainWidth clamps a width into the allowed range.
func (c BoxConstraints) ConstrainWidth(width float64) float64 {
	return clamp(width, c.MinWidth, c.MaxWidth)
}

// ConstrainHeight clamps a height into the allowed range.
func (c BoxConstraints) ConstrainHeight(height float64) float64 {
	return clamp(height, c.MinHeight, c.MaxHeight)
}

// Constrain clamps a size into the allowed ranges, each axis independently.
func (c BoxConstraints) Constrain(size Size) Size {
	return Size{
		Width:  c.ConstrainWidth(size.Width),
		Height: c.ConstrainHeight(size.Height),
	}
}

// ConstrainDimensions clamps a width and height into the allowed ranges.
func (c BoxConstraints) ConstrainDimensions(width, height float64) Size {
	return Size{Width: c.ConstrainWidth(width), Height: c.ConstrainHeight(height)}
}

// ConstrainSizeAndAttemptToPreserveAspectRatio clamps a size into the
// allowed ranges while keeping the size's width/height ratio when possible.
// Axis corrections are applied in a fixed order (width overflow, height
// overflow, width underflow, height underflow) to break ties for sizes
// whose aspect ratio interacts with asymmetric bounds.
func (c BoxConstraints) ConstrainSizeAndAttemptToPreserveAspectRatio(size Size) Size {
	if c.IsTight() {
		return c.Smallest()
	}

	width := size.Width
	height := size.Height
	if width <= 0 || height <= 0 {
		return c.Constrain(size)
	}
	aspectRatio := width / height

	if width > c.MaxWidth {
		width = c.MaxWidth
		height = width / aspectRatio
	}
	if height > c.MaxHeight {
		height = c.MaxHeight
		width = height * aspectRatio
	}
	if width < c.MinWidth {
		width = c.MinWidth
		height = width / aspectRatio
	}
	if height < c.MinHeight {
		height = c.MinHeight
		width = height * aspectRatio
	}

	return Size{Width: c.ConstrainWidth(width), Height: c.ConstrainHeight(height)}
}

// Enforce tightens the constraints so they also satisfy other: each bound
// is clamped into other's range for the same axis.
func (c BoxConstraints) Enforce(other BoxConstraints) BoxConstraints {
	return BoxConstraints{
		MinWidth:  clamp(c.MinWidth, other.MinWidth, other.MaxWidth),
		MaxWidth:  clamp(c.MaxWidth, other.MinWidth, other.MaxWidth),
		MinHeight: clamp(c.MinHeight, other.MinHeight, other.MaxHeight),
		MaxHeight: clamp(c.MaxHeight, other.MinHeight, other.MaxHeight),
	}
}

// Loosen drops the minimums to zero while keeping the maximums.
func (c BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Tighten makes the constraints exact on each axis where the given extent
// is non-negative, clamped into the current range.
func (c BoxConstraints) Tighten(width, height float64) BoxConstraints {
	out := c
	if width >= 0 {
		w := clamp(width, c.MinWidth, c.MaxWidth)
		out.MinWidth = w
		out.MaxWidth = w
	}
	if height >= 0 {
		h := clamp(height, c.MinHeight, c.MaxHeight)
		out.MinHeight = h
		out.MaxHeight = h
	}
	return out
}

// Deflate subtracts the given insets from both bounds, floored at zero.
func (c BoxConstraints) Deflate(in Insets) BoxConstraints {
	horizontal := in.Horizontal()
	vertical := in.Vertical()
	minWidth := math.Max(0, c.MinWidth-horizontal)
	minHeight := math.Max(0, c.MinHeight-vertical)
	return BoxConstraints{
		MinWidth:  minWidth,
		MaxWidth:  math.Max(minWidth, c.MaxWidth-horizontal),
		MinHeight: minHeight,
		MaxHeight: math.Max(minHeight, c.MaxHeight-vertical),
	}
}

// IsSatisfiedBy returns true if the size fits within the constraints.
func (c BoxConstraints) IsSatisfiedBy(size Size) bool {
	return c.MinWidth <= size.Width && size.Width <= c.MaxWidth &&
		c.MinHeight <= size.Height && size.Height <= c.MaxHeight
}

func (c BoxConstraints) String() string {
	return fmt.Sprintf("BoxConstraints(w: %g..%g, h: %g..%g)",
		c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight)
}
