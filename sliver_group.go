package render

import "math"

// SliverMainAxisGroup lays out a run of slivers one after another along
// the main axis, presenting them to the viewport as a single sliver.
type SliverMainAxisGroup struct {
	Sliver
	children ChildList[SliverNode]
}

// NewSliverMainAxisGroup creates a group containing children in order.
func NewSliverMainAxisGroup(children ...SliverNode) *SliverMainAxisGroup {
	g := &SliverMainAxisGroup{}
	g.Init(g)
	g.children.Init(g)
	for _, child := range children {
		g.children.Add(child)
	}
	return g
}

// Add appends a sliver at the end of the group.
func (g *SliverMainAxisGroup) Add(child SliverNode) { g.children.Add(child) }

// ChildCount returns the number of slivers in the group.
func (g *SliverMainAxisGroup) ChildCount() int { return g.children.ChildCount() }

// VisitChildren implements Object.
func (g *SliverMainAxisGroup) VisitChildren(visitor func(Object)) {
	g.children.VisitObjects(visitor)
}

// SetupParentData installs SliverPhysicalContainerParentData on children.
func (g *SliverMainAxisGroup) SetupParentData(child Object) {
	if _, ok := child.ParentData().(*SliverPhysicalContainerParentData); !ok {
		child.SetParentData(&SliverPhysicalContainerParentData{})
	}
}

// PerformLayout runs each child at its accumulated scroll offset, then
// pulls trailing children back so nothing paints past the group's own
// scrolled-out extent.
func (g *SliverMainAxisGroup) PerformLayout() {
	c := g.SliverConstraints()
	offset := 0.0
	maxPaintExtent := 0.0
	for child := g.children.FirstChild(); child != nil; child = g.children.ChildAfter(child) {
		beforeOffsetPaintExtent := c.CalculatePaintOffset(0, offset)
		childConstraints := c
		childConstraints.ScrollOffset = math.Max(0, c.ScrollOffset-offset)
		childConstraints.CacheOrigin = math.Min(0, c.CacheOrigin+offset)
		childConstraints.Overlap = math.Max(0, c.Overlap-beforeOffsetPaintExtent)
		childConstraints.RemainingPaintExtent = c.RemainingPaintExtent - beforeOffsetPaintExtent
		childConstraints.RemainingCacheExtent = c.RemainingCacheExtent - c.CalculateCacheOffset(0, offset)
		childConstraints.PrecedingScrollExtent = offset + c.PrecedingScrollExtent
		child.Layout(childConstraints, true)
		childGeometry := child.Geometry()
		if childGeometry.ScrollOffsetCorrection != 0 {
			g.SetGeometry(SliverGeometry{ScrollOffsetCorrection: childGeometry.ScrollOffsetCorrection})
			return
		}
		pd := child.ParentData().(*SliverPhysicalContainerParentData)
		switch c.Axis() {
		case Horizontal:
			pd.PaintOffset = Offset{Dx: beforeOffsetPaintExtent}
		default:
			pd.PaintOffset = Offset{Dy: beforeOffsetPaintExtent}
		}
		offset += childGeometry.ScrollExtent
		maxPaintExtent += childGeometry.MaxPaintExtent
	}

	totalScrollExtent := offset
	offset = 0
	for child := g.children.FirstChild(); child != nil; child = g.children.ChildAfter(child) {
		beforeOffsetPaintExtent := c.CalculatePaintOffset(0, offset)
		childGeometry := child.Geometry()
		remainingExtent := totalScrollExtent - c.ScrollOffset
		if childGeometry.PaintExtent > remainingExtent {
			paintCorrection := childGeometry.PaintExtent - remainingExtent
			pd := child.ParentData().(*SliverPhysicalContainerParentData)
			switch c.Axis() {
			case Horizontal:
				pd.PaintOffset = Offset{Dx: beforeOffsetPaintExtent - paintCorrection}
			default:
				pd.PaintOffset = Offset{Dy: beforeOffsetPaintExtent - paintCorrection}
			}
		}
		offset += childGeometry.ScrollExtent
	}

	paintExtent := c.CalculatePaintOffset(math.Min(c.ScrollOffset, 0), totalScrollExtent)
	cacheExtent := c.CalculateCacheOffset(math.Min(c.ScrollOffset, 0), totalScrollExtent)
	g.SetGeometry(SliverGeometry{
		ScrollExtent:      totalScrollExtent,
		PaintExtent:       paintExtent,
		LayoutExtent:      paintExtent,
		CacheExtent:       cacheExtent,
		MaxPaintExtent:    maxPaintExtent,
		HitTestExtent:     paintExtent,
		Visible:           paintExtent > 0,
		HasVisualOverflow: totalScrollExtent > c.RemainingPaintExtent || c.ScrollOffset > 0,
	})
}

// ChildMainAxisPosition reads the child's paint offset along the axis.
func (g *SliverMainAxisGroup) ChildMainAxisPosition(child Object) float64 {
	pd := child.ParentData().(*SliverPhysicalContainerParentData)
	switch g.SliverConstraints().Axis() {
	case Horizontal:
		return pd.PaintOffset.Dx
	default:
		return pd.PaintOffset.Dy
	}
}

// ChildScrollOffset sums the scroll extents of the siblings before child.
func (g *SliverMainAxisGroup) ChildScrollOffset(child Object) float64 {
	offset := 0.0
	for c := g.children.FirstChild(); c != nil; c = g.children.ChildAfter(c) {
		if Object(c) == child {
			return offset
		}
		offset += c.Geometry().ScrollExtent
	}
	return math.NaN()
}

// HitTestChildren tests children front to back.
func (g *SliverMainAxisGroup) HitTestChildren(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	for child := g.children.LastChild(); child != nil; child = g.children.ChildBefore(child) {
		hit := result.AddWithAxisOffset(
			Offset{},
			g.ChildMainAxisPosition(child),
			g.self.(SliverNode).ChildCrossAxisPosition(child),
			mainAxisPosition,
			crossAxisPosition,
			child.HitTest,
		)
		if hit {
			return true
		}
	}
	return false
}

// ApplyPaintTransform implements Object.
func (g *SliverMainAxisGroup) ApplyPaintTransform(child Object, transform *Matrix) {
	pd := child.ParentData().(*SliverPhysicalContainerParentData)
	pd.ApplyPaintTransform(transform)
}

// Paint draws visible children back to front.
func (g *SliverMainAxisGroup) Paint(context *PaintingContext, offset Offset) {
	for child := g.children.LastChild(); child != nil; child = g.children.ChildBefore(child) {
		if child.Geometry().Visible {
			pd := child.ParentData().(*SliverPhysicalContainerParentData)
			context.PaintChild(child, offset.Add(pd.PaintOffset))
		}
	}
}

// SliverCrossAxisGroup lays out slivers side by side across the cross
// axis, dividing the available cross axis extent between them. Children
// with a nonzero CrossAxisFlex in their parent data share whatever is
// left after the fixed-extent children take theirs.
type SliverCrossAxisGroup struct {
	Sliver
	children ChildList[SliverNode]
}

// NewSliverCrossAxisGroup creates a group containing children in order.
func NewSliverCrossAxisGroup(children ...SliverNode) *SliverCrossAxisGroup {
	g := &SliverCrossAxisGroup{}
	g.Init(g)
	g.children.Init(g)
	for _, child := range children {
		g.children.Add(child)
	}
	return g
}

// Add appends a sliver at the end of the group.
func (g *SliverCrossAxisGroup) Add(child SliverNode) { g.children.Add(child) }

// AddFlexed appends a sliver that takes flex shares of the leftover cross
// axis extent.
func (g *SliverCrossAxisGroup) AddFlexed(child SliverNode, flex int) {
	g.children.Add(child)
	child.ParentData().(*SliverPhysicalContainerParentData).CrossAxisFlex = flex
}

// ChildCount returns the number of slivers in the group.
func (g *SliverCrossAxisGroup) ChildCount() int { return g.children.ChildCount() }

// VisitChildren implements Object.
func (g *SliverCrossAxisGroup) VisitChildren(visitor func(Object)) {
	g.children.VisitObjects(visitor)
}

// SetupParentData installs SliverPhysicalContainerParentData on children.
func (g *SliverCrossAxisGroup) SetupParentData(child Object) {
	if _, ok := child.ParentData().(*SliverPhysicalContainerParentData); !ok {
		child.SetParentData(&SliverPhysicalContainerParentData{})
	}
}

func assertInExtent(extent float64) {
	if extent <= 0 {
		panic("render: cross axis group ran out of extent before laying out every child")
	}
}

// PerformLayout lays out fixed-extent children against the remaining cross
// axis extent, divides what is left between flexed children, then places
// everyone side by side.
func (g *SliverCrossAxisGroup) PerformLayout() {
	c := g.SliverConstraints()

	totalFlex := 0
	remainingExtent := c.CrossAxisExtent
	for child := g.children.FirstChild(); child != nil; child = g.children.ChildAfter(child) {
		pd := child.ParentData().(*SliverPhysicalContainerParentData)
		if pd.CrossAxisFlex == 0 {
			assertInExtent(remainingExtent)
			childConstraints := c
			childConstraints.CrossAxisExtent = remainingExtent
			child.Layout(childConstraints, true)
			remainingExtent = math.Max(0, remainingExtent-child.Geometry().CrossAxisExtent)
		} else {
			totalFlex += pd.CrossAxisFlex
		}
	}
	extentPerFlexValue := 0.0
	if totalFlex > 0 {
		extentPerFlexValue = remainingExtent / float64(totalFlex)
	}

	// The group's main axis extents are the maxima over its members. The
	// cross axis spans the whole constraint, so CrossAxisExtent stays zero.
	geometry := SliverGeometry{}
	for child := g.children.FirstChild(); child != nil; child = g.children.ChildAfter(child) {
		pd := child.ParentData().(*SliverPhysicalContainerParentData)
		if pd.CrossAxisFlex != 0 {
			childExtent := extentPerFlexValue * float64(pd.CrossAxisFlex)
			assertInExtent(childExtent)
			childConstraints := c
			childConstraints.CrossAxisExtent = childExtent
			child.Layout(childConstraints, true)
		}
		cg := child.Geometry()
		geometry.ScrollExtent = math.Max(geometry.ScrollExtent, cg.ScrollExtent)
		geometry.PaintExtent = math.Max(geometry.PaintExtent, cg.PaintExtent)
		geometry.LayoutExtent = math.Max(geometry.LayoutExtent, cg.LayoutExtent)
		geometry.MaxPaintExtent = math.Max(geometry.MaxPaintExtent, cg.MaxPaintExtent)
		geometry.HitTestExtent = math.Max(geometry.HitTestExtent, cg.HitTestExtent)
		geometry.CacheExtent = math.Max(geometry.CacheExtent, cg.CacheExtent)
		if cg.Visible {
			geometry.Visible = true
		}
		if cg.HasVisualOverflow {
			geometry.HasVisualOverflow = true
		}
	}
	g.SetGeometry(geometry)

	// Pull any child whose paint extent runs past the group's own visible
	// extent back inside it.
	offset := 0.0
	for child := g.children.FirstChild(); child != nil; child = g.children.ChildAfter(child) {
		pd := child.ParentData().(*SliverPhysicalContainerParentData)
		childGeometry := child.Geometry()
		remaining := geometry.ScrollExtent - c.ScrollOffset
		paintCorrection := 0.0
		if childGeometry.PaintExtent > remaining {
			paintCorrection = childGeometry.PaintExtent - remaining
		}
		childExtent := childGeometry.CrossAxisExtent
		if childExtent == 0 {
			childExtent = extentPerFlexValue * float64(pd.CrossAxisFlex)
		}
		switch c.Axis() {
		case Horizontal:
			pd.PaintOffset = Offset{Dx: -paintCorrection, Dy: offset}
		default:
			pd.PaintOffset = Offset{Dx: offset, Dy: -paintCorrection}
		}
		offset += childExtent
	}
}

// ChildCrossAxisPosition reads the child's paint offset across the axis.
func (g *SliverCrossAxisGroup) ChildCrossAxisPosition(child Object) float64 {
	pd := child.ParentData().(*SliverPhysicalContainerParentData)
	switch g.SliverConstraints().Axis() {
	case Horizontal:
		return pd.PaintOffset.Dy
	default:
		return pd.PaintOffset.Dx
	}
}

// ChildMainAxisPosition places every child at the group's leading edge.
func (g *SliverCrossAxisGroup) ChildMainAxisPosition(child Object) float64 { return 0 }

// HitTestChildren tests children front to back.
func (g *SliverCrossAxisGroup) HitTestChildren(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	for child := g.children.LastChild(); child != nil; child = g.children.ChildBefore(child) {
		hit := result.AddWithAxisOffset(
			Offset{},
			0,
			g.ChildCrossAxisPosition(child),
			mainAxisPosition,
			crossAxisPosition,
			child.HitTest,
		)
		if hit {
			return true
		}
	}
	return false
}

// ApplyPaintTransform implements Object.
func (g *SliverCrossAxisGroup) ApplyPaintTransform(child Object, transform *Matrix) {
	pd := child.ParentData().(*SliverPhysicalContainerParentData)
	pd.ApplyPaintTransform(transform)
}

// Paint draws visible children back to front.
func (g *SliverCrossAxisGroup) Paint(context *PaintingContext, offset Offset) {
	for child := g.children.LastChild(); child != nil; child = g.children.ChildBefore(child) {
		if child.Geometry().Visible {
			pd := child.ParentData().(*SliverPhysicalContainerParentData)
			context.PaintChild(child, offset.Add(pd.PaintOffset))
		}
	}
}
