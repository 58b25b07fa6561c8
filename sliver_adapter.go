package render

// SliverToBoxAdapter bridges a single box child into the sliver protocol.
// The child is laid out along the constraints' axis with unbounded main
// axis extent and positioned so the part before the scroll offset is
// clipped away by the viewport.
type SliverToBoxAdapter struct {
	Sliver
	child SingleChild[BoxNode]
}

// NewSliverToBoxAdapter creates an adapter wrapping child. A nil child is
// allowed; the sliver then occupies no scroll extent.
func NewSliverToBoxAdapter(child BoxNode) *SliverToBoxAdapter {
	a := &SliverToBoxAdapter{}
	a.Init(a)
	a.child.Init(a)
	if child != nil {
		a.child.SetChild(child)
	}
	return a
}

// Child returns the wrapped box child, or nil.
func (a *SliverToBoxAdapter) Child() BoxNode { return a.child.Child() }

// SetChild replaces the wrapped box child.
func (a *SliverToBoxAdapter) SetChild(child BoxNode) { a.child.SetChild(child) }

// VisitChildren implements Object.
func (a *SliverToBoxAdapter) VisitChildren(visitor func(Object)) {
	a.child.Visit(visitor)
}

// SetupParentData installs SliverPhysicalParentData on the child.
func (a *SliverToBoxAdapter) SetupParentData(child Object) {
	if _, ok := child.ParentData().(*SliverPhysicalParentData); !ok {
		child.SetParentData(&SliverPhysicalParentData{})
	}
}

// PerformLayout sizes the child along the axis and derives the sliver
// geometry from the child's main axis extent.
func (a *SliverToBoxAdapter) PerformLayout() {
	if !a.child.HasChild() {
		a.SetGeometry(SliverGeometry{})
		return
	}
	c := a.SliverConstraints()
	child := a.child.Child()
	child.Layout(c.AsBoxConstraints(0, Unbounded), true)
	var childExtent float64
	switch c.Axis() {
	case Horizontal:
		childExtent = child.Size().Width
	default:
		childExtent = child.Size().Height
	}
	paintedChildSize := c.CalculatePaintOffset(0, childExtent)
	cacheExtent := c.CalculateCacheOffset(0, childExtent)
	a.SetGeometry(SliverGeometry{
		ScrollExtent:      childExtent,
		PaintExtent:       paintedChildSize,
		LayoutExtent:      paintedChildSize,
		CacheExtent:       cacheExtent,
		MaxPaintExtent:    childExtent,
		HitTestExtent:     paintedChildSize,
		Visible:           paintedChildSize > 0,
		HasVisualOverflow: childExtent > c.RemainingPaintExtent || c.ScrollOffset > 0,
	})
	a.setChildParentData(child, c)
}

func (a *SliverToBoxAdapter) setChildParentData(child BoxNode, c SliverConstraints) {
	pd := child.ParentData().(*SliverPhysicalParentData)
	switch ApplyGrowthDirection(c.AxisDirection, c.GrowthDirection) {
	case Up:
		pd.PaintOffset = Offset{Dy: -(a.geometry.ScrollExtent - (a.geometry.PaintExtent + c.ScrollOffset))}
	case Right:
		pd.PaintOffset = Offset{Dx: -c.ScrollOffset}
	case Down:
		pd.PaintOffset = Offset{Dy: -c.ScrollOffset}
	case Left:
		pd.PaintOffset = Offset{Dx: -(a.geometry.ScrollExtent - (a.geometry.PaintExtent + c.ScrollOffset))}
	}
}

// ChildMainAxisPosition returns where the child's leading edge sits
// relative to the sliver's visible leading edge.
func (a *SliverToBoxAdapter) ChildMainAxisPosition(child Object) float64 {
	return -a.SliverConstraints().ScrollOffset
}

// ChildScrollOffset is zero: the box child starts at the sliver's own
// scroll offset.
func (a *SliverToBoxAdapter) ChildScrollOffset(child Object) float64 { return 0 }

// HitTestChildren forwards hits to the box child.
func (a *SliverToBoxAdapter) HitTestChildren(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	if !a.child.HasChild() {
		return false
	}
	boxResult := WrapHitTestResult(result.HitTestResult)
	return a.HitTestBoxChild(boxResult, a.child.Child(), mainAxisPosition, crossAxisPosition)
}

// ApplyPaintTransform implements Object.
func (a *SliverToBoxAdapter) ApplyPaintTransform(child Object, transform *Matrix) {
	pd := child.ParentData().(*SliverPhysicalParentData)
	pd.ApplyPaintTransform(transform)
}

// Paint draws the child at its computed paint offset.
func (a *SliverToBoxAdapter) Paint(context *PaintingContext, offset Offset) {
	if !a.child.HasChild() || !a.Geometry().Visible {
		return
	}
	pd := a.child.Child().ParentData().(*SliverPhysicalParentData)
	context.PaintChild(a.child.Child(), offset.Add(pd.PaintOffset))
}
