package render

import (
	"fmt"
	"math"
)

// SliverConstraints is the layout input for slivers: a description of the
// scroll state of the viewport as seen from one slot in its sliver chain.
// Compared structurally and usable as a map key.
type SliverConstraints struct {
	// AxisDirection is the direction in which the viewport's scroll offset
	// increases.
	AxisDirection AxisDirection

	// GrowthDirection is the direction in which this sliver chain grows
	// relative to AxisDirection.
	GrowthDirection GrowthDirection

	// UserScrollDirection is the direction the user is scrolling, adjusted
	// for GrowthDirection.
	UserScrollDirection ScrollDirection

	// ScrollOffset is how far past this sliver's leading edge the viewport
	// has already scrolled. Always non-negative.
	ScrollOffset float64

	// PrecedingScrollExtent is the scroll extent consumed by all slivers
	// before this one in the same chain.
	PrecedingScrollExtent float64

	// Overlap is how far the previous sliver's painted content intrudes
	// into this sliver's layout slot (e.g. a pinned header painting over
	// the content that follows it).
	Overlap float64

	// RemainingPaintExtent is the number of pixels remaining in the
	// viewport for this sliver and everything after it to paint into.
	RemainingPaintExtent float64

	// CrossAxisExtent is the extent available perpendicular to the main
	// axis.
	CrossAxisExtent float64

	// CrossAxisDirection is the direction in which cross-axis coordinates
	// increase.
	CrossAxisDirection AxisDirection

	// ViewportMainAxisExtent is the full main-axis extent of the viewport.
	ViewportMainAxisExtent float64

	// RemainingCacheExtent is like RemainingPaintExtent but for the cache
	// window, which extends beyond the visible region.
	RemainingCacheExtent float64

	// CacheOrigin is where the cache window starts relative to
	// ScrollOffset. Always in [-cacheExtent, 0].
	CacheOrigin float64
}

var _ Constraints = SliverConstraints{}

// Axis returns the viewport's main axis.
func (c SliverConstraints) Axis() Axis {
	return c.AxisDirection.Axis()
}

// NormalizedGrowthDirection returns the direction in which this sliver's
// content grows in absolute screen terms: the growth direction as if
// AxisDirection were down or right.
func (c SliverConstraints) NormalizedGrowthDirection() GrowthDirection {
	if c.AxisDirection.IsReversed() {
		if c.GrowthDirection == GrowthForward {
			return GrowthReverse
		}
		return GrowthForward
	}
	return c.GrowthDirection
}

// IsTight implements Constraints. Sliver constraints never fully determine
// the sliver's geometry.
func (c SliverConstraints) IsTight() bool {
	return false
}

// IsNormalized implements Constraints.
func (c SliverConstraints) IsNormalized() bool {
	return c.ScrollOffset >= 0 &&
		c.CrossAxisExtent >= 0 &&
		c.AxisDirection.Axis() != c.CrossAxisDirection.Axis() &&
		c.ViewportMainAxisExtent >= 0 &&
		c.RemainingPaintExtent >= 0
}

// AsBoxConstraints converts the sliver constraints into box constraints for
// a box child: tight across the cross axis, [minExtent, maxExtent] along
// the main axis.
func (c SliverConstraints) AsBoxConstraints(minExtent, maxExtent float64) BoxConstraints {
	return c.asBoxConstraints(minExtent, maxExtent, c.CrossAxisExtent)
}

func (c SliverConstraints) asBoxConstraints(minExtent, maxExtent, crossAxisExtent float64) BoxConstraints {
	if c.Axis() == Horizontal {
		return BoxConstraints{
			MinHeight: crossAxisExtent,
			MaxHeight: crossAxisExtent,
			MinWidth:  minExtent,
			MaxWidth:  maxExtent,
		}
	}
	return BoxConstraints{
		MinWidth:  crossAxisExtent,
		MaxWidth:  crossAxisExtent,
		MinHeight: minExtent,
		MaxHeight: maxExtent,
	}
}

// CalculatePaintOffset clamps the scroll-space interval [from, to] against
// the window currently visible to this sliver and returns the overlap
// length. The result is always in [0, RemainingPaintExtent].
func (c SliverConstraints) CalculatePaintOffset(from, to float64) float64 {
	if from > to {
		panic("render: CalculatePaintOffset called with from > to")
	}
	minOffset := c.ScrollOffset
	maxOffset := c.ScrollOffset + c.RemainingPaintExtent
	from = clamp(from, minOffset, maxOffset)
	to = clamp(to, minOffset, maxOffset)
	return to - from
}

// CalculateCacheOffset is the cache-window analog of CalculatePaintOffset:
// it clamps [from, to] against the (larger) cache window.
func (c SliverConstraints) CalculateCacheOffset(from, to float64) float64 {
	if from > to {
		panic("render: CalculateCacheOffset called with from > to")
	}
	minOffset := c.ScrollOffset + c.CacheOrigin
	maxOffset := c.ScrollOffset + c.RemainingCacheExtent
	from = clamp(from, minOffset, maxOffset)
	to = clamp(to, minOffset, maxOffset)
	return to - from
}

func (c SliverConstraints) String() string {
	return fmt.Sprintf("SliverConstraints(%s-%s, scrollOffset: %g, remainingPaintExtent: %g, crossAxisExtent: %g)",
		c.AxisDirection, c.GrowthDirection, c.ScrollOffset, c.RemainingPaintExtent, c.CrossAxisExtent)
}

// SliverGeometry is the layout output of a sliver: how much scroll space it
// consumes, how much of the viewport it paints into, and how the viewport
// should treat the space. Produced fresh each layout pass, never mutated.
type SliverGeometry struct {
	// ScrollExtent is the amount of scroll space the sliver consumes.
	ScrollExtent float64

	// PaintOrigin is where the sliver starts painting relative to its
	// layout slot, in the axis direction. Usually zero; negative values
	// paint before the slot without affecting following slivers.
	PaintOrigin float64

	// PaintExtent is the amount of currently visible viewport the sliver
	// paints into.
	PaintExtent float64

	// LayoutExtent is the portion of PaintExtent the next sliver should be
	// positioned after. Must not exceed PaintExtent.
	LayoutExtent float64

	// MaxPaintExtent is the most the sliver could paint if given unlimited
	// room (used by shrink-wrapping viewports).
	MaxPaintExtent float64

	// MaxScrollObstructionExtent is the extent the sliver reserves when
	// pinned to the viewport's edge (e.g. a sticky header). Zero for
	// ordinary slivers.
	MaxScrollObstructionExtent float64

	// HitTestExtent is the extent over which the sliver accepts hits.
	HitTestExtent float64

	// Visible is true if the sliver currently paints anything.
	Visible bool

	// HasVisualOverflow is true if the sliver paints outside its layout
	// slot, requiring the viewport to clip.
	HasVisualOverflow bool

	// ScrollOffsetCorrection, when nonzero, aborts the current viewport
	// layout pass: the viewport applies the correction to its offset and
	// restarts. Zero means no correction requested.
	ScrollOffsetCorrection float64

	// CacheExtent is the portion of the cache window the sliver consumed.
	CacheExtent float64

	// CrossAxisExtent is the cross-axis space the sliver claimed, for
	// parents that divide the cross axis among children. Zero means the
	// sliver fills whatever it was given.
	CrossAxisExtent float64
}

// SliverGeometryFor returns a geometry with the conventional defaults
// derived from the three primary extents: layout, hit-test, and cache
// extents equal to the paint extent, visible when anything paints.
func SliverGeometryFor(scrollExtent, paintExtent, maxPaintExtent float64) SliverGeometry {
	return SliverGeometry{
		ScrollExtent:   scrollExtent,
		PaintExtent:    paintExtent,
		LayoutExtent:   paintExtent,
		MaxPaintExtent: maxPaintExtent,
		HitTestExtent:  paintExtent,
		Visible:        paintExtent > 0,
		CacheExtent:    paintExtent,
	}
}

// AssertValid panics if the geometry violates the sliver protocol.
func (g SliverGeometry) AssertValid() {
	switch {
	case g.ScrollExtent < 0 || math.IsNaN(g.ScrollExtent):
		panic(fmt.Sprintf("render: sliver geometry has invalid scrollExtent %g", g.ScrollExtent))
	case g.PaintExtent < 0 || math.IsNaN(g.PaintExtent):
		panic(fmt.Sprintf("render: sliver geometry has invalid paintExtent %g", g.PaintExtent))
	case g.LayoutExtent < 0 || math.IsNaN(g.LayoutExtent):
		panic(fmt.Sprintf("render: sliver geometry has invalid layoutExtent %g", g.LayoutExtent))
	case g.LayoutExtent > g.PaintExtent+geometryTolerance:
		panic(fmt.Sprintf("render: sliver geometry layoutExtent %g exceeds paintExtent %g",
			g.LayoutExtent, g.PaintExtent))
	case g.MaxPaintExtent < 0 || math.IsNaN(g.MaxPaintExtent):
		panic(fmt.Sprintf("render: sliver geometry has invalid maxPaintExtent %g", g.MaxPaintExtent))
	case g.MaxPaintExtent+geometryTolerance < g.PaintExtent:
		panic(fmt.Sprintf("render: sliver geometry maxPaintExtent %g is less than paintExtent %g",
			g.MaxPaintExtent, g.PaintExtent))
	case g.HitTestExtent < 0:
		panic(fmt.Sprintf("render: sliver geometry has invalid hitTestExtent %g", g.HitTestExtent))
	case math.IsNaN(g.ScrollOffsetCorrection):
		panic("render: sliver geometry has NaN scrollOffsetCorrection")
	}
}

// Slop for floating-point accumulation when validating extent relations.
const geometryTolerance = 1e-10
