package render

import (
	"fmt"
	"math"
)

// DefaultCacheExtent is how far beyond the visible region slivers are
// laid out so content is ready before it scrolls into view.
const DefaultCacheExtent = 250.0

const maxLayoutCyclesPerChild = 10

// RevealedOffset pairs a scroll offset with where the revealed rect will
// sit once the viewport is scrolled there.
type RevealedOffset struct {
	Offset float64
	Rect   Rect
}

// viewportChildManager is the per-subclass half of the viewport protocol:
// how children are positioned, which bookkeeping layout feeds, and the
// order children are painted and hit tested in.
type viewportChildManager interface {
	paintOffsetOf(child SliverNode) Offset
	scrollOffsetOf(child SliverNode, scrollOffsetWithinChild float64) float64
	maxScrollObstructionExtentBefore(child SliverNode) float64
	updateChildLayoutOffset(child SliverNode, layoutOffset float64, growthDirection GrowthDirection)
	updateOutOfBandData(growthDirection GrowthDirection, childGeometry SliverGeometry)
	childrenInPaintOrder() []SliverNode
	childrenInHitTestOrder() []SliverNode
	computeChildMainAxisPosition(child SliverNode, parentMainAxisPosition float64) float64
}

// ViewportBase is the machinery shared by Viewport and
// ShrinkWrappingViewport: a box node that hosts slivers, feeds them
// SliverConstraints one after another, and translates between box and
// sliver coordinates.
type ViewportBase struct {
	Box
	children ChildList[SliverNode]

	axisDirection      AxisDirection
	crossAxisDirection AxisDirection
	offset             ViewportOffset
	cacheExtent        float64
	clip               bool

	clipRectLayer     *ClipRectLayer
	hasVisualOverflow bool
}

func (v *ViewportBase) initViewport(self Object, offset ViewportOffset) {
	v.Init(self)
	v.children.Init(self)
	v.axisDirection = Down
	v.crossAxisDirection = Right
	v.offset = offset
	v.cacheExtent = DefaultCacheExtent
	v.clip = true
}

// AxisDirection returns the direction scroll offsets increase in.
func (v *ViewportBase) AxisDirection() AxisDirection { return v.axisDirection }

// SetAxisDirection changes the main axis direction.
func (v *ViewportBase) SetAxisDirection(value AxisDirection) {
	if v.axisDirection == value {
		return
	}
	v.axisDirection = value
	v.MarkNeedsLayout()
}

// CrossAxisDirection returns the direction children fill the cross axis.
func (v *ViewportBase) CrossAxisDirection() AxisDirection { return v.crossAxisDirection }

// SetCrossAxisDirection changes the cross axis direction.
func (v *ViewportBase) SetCrossAxisDirection(value AxisDirection) {
	if v.crossAxisDirection == value {
		return
	}
	v.crossAxisDirection = value
	v.MarkNeedsLayout()
}

// Axis returns the viewport's main axis.
func (v *ViewportBase) Axis() Axis { return v.axisDirection.Axis() }

// Offset returns the scroll position this viewport follows.
func (v *ViewportBase) Offset() ViewportOffset { return v.offset }

// SetOffset swaps in a different scroll position.
func (v *ViewportBase) SetOffset(value ViewportOffset) {
	if v.offset == value {
		return
	}
	v.offset = value
	v.MarkNeedsLayout()
}

// CacheExtent returns how far beyond the visible region children are
// laid out.
func (v *ViewportBase) CacheExtent() float64 { return v.cacheExtent }

// SetCacheExtent changes the cache extent.
func (v *ViewportBase) SetCacheExtent(value float64) {
	if v.cacheExtent == value {
		return
	}
	v.cacheExtent = value
	v.MarkNeedsLayout()
}

// ChildCount returns the number of slivers hosted by the viewport.
func (v *ViewportBase) ChildCount() int { return v.children.ChildCount() }

// FirstChild returns the first hosted sliver, or nil.
func (v *ViewportBase) FirstChild() SliverNode { return v.children.FirstChild() }

// LastChild returns the last hosted sliver, or nil.
func (v *ViewportBase) LastChild() SliverNode { return v.children.LastChild() }

// ChildAfter returns the sliver following child, or nil.
func (v *ViewportBase) ChildAfter(child SliverNode) SliverNode { return v.children.ChildAfter(child) }

// ChildBefore returns the sliver preceding child, or nil.
func (v *ViewportBase) ChildBefore(child SliverNode) SliverNode {
	return v.children.ChildBefore(child)
}

// Add appends a sliver at the end of the viewport's child list.
func (v *ViewportBase) Add(child SliverNode) { v.children.Add(child) }

// Insert adds child after the given sibling; nil inserts at the front.
func (v *ViewportBase) Insert(child, after SliverNode) { v.children.Insert(child, after) }

// Remove drops child from the viewport.
func (v *ViewportBase) Remove(child SliverNode) { v.children.Remove(child) }

// RemoveAll drops every hosted sliver.
func (v *ViewportBase) RemoveAll() { v.children.RemoveAll() }

// VisitChildren implements Object.
func (v *ViewportBase) VisitChildren(visitor func(Object)) {
	v.children.VisitObjects(visitor)
}

func (v *ViewportBase) manager() viewportChildManager {
	return v.self.(viewportChildManager)
}

// layoutChildSequenceParams feeds one run of children through layout.
type layoutChildSequenceParams struct {
	child                SliverNode
	scrollOffset         float64
	overlap              float64
	layoutOffset         float64
	remainingPaintExtent float64
	mainAxisExtent       float64
	crossAxisExtent      float64
	growthDirection      GrowthDirection
	advance              func(SliverNode) SliverNode
	remainingCacheExtent float64
	cacheOrigin          float64
}

// layoutChildSequence lays out one run of slivers, feeding each the
// remaining extents left over by those before it. A nonzero return is a
// scroll offset correction: the whole layout must be abandoned, the
// offset shifted by the correction, and layout started over.
func (v *ViewportBase) layoutChildSequence(p layoutChildSequenceParams) float64 {
	if math.IsInf(p.scrollOffset, 0) || math.IsNaN(p.scrollOffset) || p.scrollOffset < 0 {
		panic(fmt.Sprintf("render: layoutChildSequence with scroll offset %v", p.scrollOffset))
	}
	mgr := v.manager()
	initialLayoutOffset := p.layoutOffset
	adjustedUserScrollDirection := ApplyGrowthDirectionToScrollDirection(v.offset.UserScrollDirection(), p.growthDirection)
	maxPaintOffset := p.layoutOffset + p.overlap
	precedingScrollExtent := 0.0

	scrollOffset := p.scrollOffset
	layoutOffset := p.layoutOffset
	remainingCacheExtent := p.remainingCacheExtent
	cacheOrigin := p.cacheOrigin

	for child := p.child; child != nil; child = p.advance(child) {
		sliverScrollOffset := math.Max(0, scrollOffset)
		correctedCacheOrigin := math.Max(cacheOrigin, -sliverScrollOffset)
		cacheExtentCorrection := cacheOrigin - correctedCacheOrigin

		child.Layout(SliverConstraints{
			AxisDirection:         v.axisDirection,
			GrowthDirection:       p.growthDirection,
			UserScrollDirection:   adjustedUserScrollDirection,
			ScrollOffset:          sliverScrollOffset,
			PrecedingScrollExtent: precedingScrollExtent,
			Overlap:               maxPaintOffset - layoutOffset,
			RemainingPaintExtent:  math.Max(0, p.remainingPaintExtent-layoutOffset+initialLayoutOffset),
			CrossAxisExtent:       p.crossAxisExtent,
			CrossAxisDirection:    v.crossAxisDirection,
			ViewportMainAxisExtent: p.mainAxisExtent,
			RemainingCacheExtent:  math.Max(0, remainingCacheExtent+cacheExtentCorrection),
			CacheOrigin:           correctedCacheOrigin,
		}, true)

		childGeometry := child.Geometry()
		if childGeometry.ScrollOffsetCorrection != 0 {
			return childGeometry.ScrollOffsetCorrection
		}

		effectiveLayoutOffset := layoutOffset + childGeometry.PaintOrigin
		if childGeometry.Visible || scrollOffset > 0 {
			mgr.updateChildLayoutOffset(child, effectiveLayoutOffset, p.growthDirection)
		} else {
			// Scrolled past this child; keep it ordered past the trailing
			// edge even though it has no layout extent.
			mgr.updateChildLayoutOffset(child, -scrollOffset+initialLayoutOffset, p.growthDirection)
		}

		maxPaintOffset = math.Max(effectiveLayoutOffset+childGeometry.PaintExtent, maxPaintOffset)
		scrollOffset -= childGeometry.ScrollExtent
		precedingScrollExtent += childGeometry.ScrollExtent
		layoutOffset += childGeometry.LayoutExtent
		if childGeometry.CacheExtent != 0 {
			remainingCacheExtent -= childGeometry.CacheExtent - cacheExtentCorrection
			cacheOrigin = math.Min(correctedCacheOrigin+childGeometry.CacheExtent, 0)
		}

		mgr.updateOutOfBandData(p.growthDirection, childGeometry)
	}
	return 0
}

func (v *ViewportBase) computeAbsolutePaintOffset(child SliverNode, layoutOffset float64, growthDirection GrowthDirection) Offset {
	switch ApplyGrowthDirection(v.axisDirection, growthDirection) {
	case Up:
		return Offset{Dy: v.Size().Height - (layoutOffset + child.Geometry().PaintExtent)}
	case Right:
		return Offset{Dx: layoutOffset}
	case Down:
		return Offset{Dy: layoutOffset}
	default:
		return Offset{Dx: v.Size().Width - (layoutOffset + child.Geometry().PaintExtent)}
	}
}

// Paint draws the hosted slivers in paint order, clipped to the viewport
// when any of them overflow it.
func (v *ViewportBase) Paint(context *PaintingContext, offset Offset) {
	if v.children.FirstChild() == nil {
		return
	}
	if v.hasVisualOverflow && v.clip {
		v.clipRectLayer = context.PushClipRect(
			v.NeedsCompositing(), offset, RectFromSize(v.Size()), v.paintContents, v.clipRectLayer)
	} else {
		v.clipRectLayer = nil
		v.paintContents(context, offset)
	}
}

func (v *ViewportBase) paintContents(context *PaintingContext, offset Offset) {
	mgr := v.manager()
	for _, child := range mgr.childrenInPaintOrder() {
		if child.Geometry().Visible {
			context.PaintChild(child, offset.Add(mgr.paintOffsetOf(child)))
		}
	}
}

// ApplyPaintTransform implements Object.
func (v *ViewportBase) ApplyPaintTransform(child Object, transform *Matrix) {
	childOffset := v.manager().paintOffsetOf(child.(SliverNode))
	*transform = transform.Translated(childOffset.Dx, childOffset.Dy)
}

// HitTestChildren converts the cartesian position into each child's
// main/cross coordinates and tests the children front to back.
func (v *ViewportBase) HitTestChildren(result *BoxHitTestResult, position Offset) bool {
	var mainAxisPosition, crossAxisPosition float64
	switch v.Axis() {
	case Horizontal:
		mainAxisPosition = position.Dx
		crossAxisPosition = position.Dy
	default:
		mainAxisPosition = position.Dy
		crossAxisPosition = position.Dx
	}
	mgr := v.manager()
	sliverResult := WrapSliverHitTestResult(result.HitTestResult)
	for _, child := range mgr.childrenInHitTestOrder() {
		if !child.Geometry().Visible {
			continue
		}
		transform := IdentityMatrix()
		v.self.ApplyPaintTransform(child, &transform)
		child := child
		hit := result.AddWithOutOfBandTransform(transform, func(result *BoxHitTestResult) bool {
			return child.HitTest(sliverResult,
				mgr.computeChildMainAxisPosition(child, mainAxisPosition),
				crossAxisPosition)
		})
		if hit {
			return true
		}
	}
	return false
}

// OffsetToReveal computes the scroll offset that lines target up with the
// viewport's leading edge (alignment 0), trailing edge (alignment 1), or
// anywhere in between. rect, when non-nil, is the part of target to
// reveal, in target's coordinate space.
func (v *ViewportBase) OffsetToReveal(target Object, alignment float64, rect *Rect) RevealedOffset {
	mgr := v.manager()
	leadingScrollOffset := 0.0

	child := target
	var pivot BoxNode
	_, onlySlivers := target.(SliverNode)
	for child.Parent() != v.self {
		parent := child.Parent()
		if parent == nil {
			panic("render: OffsetToReveal target is not a descendant of the viewport")
		}
		if b, ok := child.(BoxNode); ok {
			pivot = b
		}
		if s, ok := parent.(SliverNode); ok {
			leadingScrollOffset += s.ChildScrollOffset(child)
		} else {
			onlySlivers = false
			leadingScrollOffset = 0
		}
		child = parent
	}

	var rectLocal Rect
	var pivotExtent float64
	var growthDirection GrowthDirection

	switch {
	case pivot != nil:
		growthDirection = pivot.Parent().(SliverNode).sliver().SliverConstraints().GrowthDirection
		switch v.Axis() {
		case Horizontal:
			pivotExtent = pivot.Size().Width
		default:
			pivotExtent = pivot.Size().Height
		}
		if rect == nil {
			r := target.PaintBounds()
			rect = &r
		}
		rectLocal = target.GetTransformTo(pivot).TransformRect(*rect)
	case onlySlivers:
		targetSliver := target.(SliverNode)
		sc := targetSliver.sliver().SliverConstraints()
		growthDirection = sc.GrowthDirection
		pivotExtent = targetSliver.Geometry().ScrollExtent
		if rect == nil {
			var r Rect
			if sc.Axis() == Horizontal {
				r = NewRect(0, 0, targetSliver.Geometry().ScrollExtent, sc.CrossAxisExtent)
			} else {
				r = NewRect(0, 0, sc.CrossAxisExtent, targetSliver.Geometry().ScrollExtent)
			}
			rect = &r
		}
		rectLocal = *rect
	default:
		if rect == nil {
			panic("render: OffsetToReveal needs a rect for a non-box, non-sliver target")
		}
		return RevealedOffset{Offset: v.offset.Pixels(), Rect: *rect}
	}

	sliver := child.(SliverNode)

	switch ApplyGrowthDirection(v.axisDirection, growthDirection) {
	case Up:
		leadingScrollOffset += pivotExtent - rectLocal.Bottom()
	case Left:
		leadingScrollOffset += pivotExtent - rectLocal.Right()
	case Right:
		leadingScrollOffset += rectLocal.X
	case Down:
		leadingScrollOffset += rectLocal.Y
	}

	var targetMainAxisExtent float64
	switch v.Axis() {
	case Horizontal:
		targetMainAxisExtent = rectLocal.Width
	default:
		targetMainAxisExtent = rectLocal.Height
	}

	leadingScrollOffset = mgr.scrollOffsetOf(sliver, leadingScrollOffset)

	targetRect := target.GetTransformTo(v.self).TransformRect(*rect)
	extentOfPinnedSlivers := mgr.maxScrollObstructionExtentBefore(sliver)
	isPinned := sliver.Geometry().MaxScrollObstructionExtent > 0

	switch sliver.sliver().SliverConstraints().GrowthDirection {
	case GrowthForward:
		if isPinned && alignment <= 0 {
			return RevealedOffset{Offset: math.Inf(1), Rect: targetRect}
		}
		leadingScrollOffset -= extentOfPinnedSlivers
	case GrowthReverse:
		if isPinned && alignment >= 1 {
			return RevealedOffset{Offset: math.Inf(-1), Rect: targetRect}
		}
		leadingScrollOffset -= targetMainAxisExtent
	}

	var mainAxisExtentDifference float64
	switch v.Axis() {
	case Horizontal:
		mainAxisExtentDifference = v.Size().Width - extentOfPinnedSlivers - rectLocal.Width
	default:
		mainAxisExtentDifference = v.Size().Height - extentOfPinnedSlivers - rectLocal.Height
	}

	targetOffset := leadingScrollOffset - mainAxisExtentDifference*alignment
	offsetDifference := v.offset.Pixels() - targetOffset

	switch v.axisDirection {
	case Up:
		targetRect = targetRect.Shift(Offset{Dy: -offsetDifference})
	case Down:
		targetRect = targetRect.Shift(Offset{Dy: offsetDifference})
	case Left:
		targetRect = targetRect.Shift(Offset{Dx: -offsetDifference})
	case Right:
		targetRect = targetRect.Shift(Offset{Dx: offsetDifference})
	}

	return RevealedOffset{Offset: targetOffset, Rect: targetRect}
}

// Viewport hosts slivers around a center: children after the center grow
// forward with the axis direction, children before it grow in reverse.
// Its own size comes from its parent; the scroll position decides which
// part of the content shows.
type Viewport struct {
	ViewportBase

	anchor          float64
	center          SliverNode
	minScrollExtent float64
	maxScrollExtent float64
}

// ViewportOption configures a Viewport.
type ViewportOption func(*Viewport)

// WithAxisDirection sets the direction scroll offsets grow in.
func WithAxisDirection(value AxisDirection) ViewportOption {
	return func(v *Viewport) { v.axisDirection = value }
}

// WithCrossAxisDirection sets the direction children fill the cross axis.
func WithCrossAxisDirection(value AxisDirection) ViewportOption {
	return func(v *Viewport) { v.crossAxisDirection = value }
}

// WithAnchor sets where the zero scroll offset sits within the viewport,
// as a fraction of the main axis extent.
func WithAnchor(anchor float64) ViewportOption {
	return func(v *Viewport) { v.anchor = anchor }
}

// WithCacheExtent sets how far beyond the visible region children are
// laid out.
func WithCacheExtent(extent float64) ViewportOption {
	return func(v *Viewport) { v.cacheExtent = extent }
}

// WithClip controls whether overflowing children are clipped to the
// viewport's bounds.
func WithClip(clip bool) ViewportOption {
	return func(v *Viewport) { v.clip = clip }
}

// NewViewport creates a viewport following offset.
func NewViewport(offset ViewportOffset, opts ...ViewportOption) *Viewport {
	v := &Viewport{}
	v.initViewport(v, offset)
	for _, opt := range opts {
		opt(v)
	}
	if !v.crossAxisDirectionValid() {
		panic("render: viewport cross axis direction is not perpendicular to its axis")
	}
	return v
}

func (v *Viewport) crossAxisDirectionValid() bool {
	return v.axisDirection.Axis() != v.crossAxisDirection.Axis()
}

// Anchor returns the relative position of the zero scroll offset.
func (v *Viewport) Anchor() float64 { return v.anchor }

// SetAnchor changes the relative position of the zero scroll offset.
func (v *Viewport) SetAnchor(value float64) {
	if v.anchor == value {
		return
	}
	if value < 0 || value > 1 {
		panic("render: viewport anchor out of range")
	}
	v.anchor = value
	v.MarkNeedsLayout()
}

// Center returns the sliver the zero scroll offset is anchored to. When
// unset, layout uses the first child.
func (v *Viewport) Center() SliverNode {
	if v.center != nil {
		return v.center
	}
	return v.children.FirstChild()
}

// SetCenter anchors the zero scroll offset to a specific child.
func (v *Viewport) SetCenter(value SliverNode) {
	if v.center == value {
		return
	}
	v.center = value
	v.MarkNeedsLayout()
}

// MinScrollExtent returns the lower content bound from the last layout.
func (v *Viewport) MinScrollExtent() float64 { return v.minScrollExtent }

// MaxScrollExtent returns the upper content bound from the last layout.
func (v *Viewport) MaxScrollExtent() float64 { return v.maxScrollExtent }

// SetupParentData installs SliverPhysicalContainerParentData on children.
func (v *Viewport) SetupParentData(child Object) {
	if _, ok := child.ParentData().(*SliverPhysicalContainerParentData); !ok {
		child.SetParentData(&SliverPhysicalContainerParentData{})
	}
}

// SizedByParent is true: the viewport always fills its constraints.
func (v *Viewport) SizedByParent() bool { return true }

// PerformResize sizes the viewport to the biggest size allowed.
func (v *Viewport) PerformResize() {
	c := v.BoxConstraints()
	if !c.HasBoundedWidth() || !c.HasBoundedHeight() {
		panic("render: viewport given unbounded constraints")
	}
	v.SetSize(c.Biggest())
}

// PerformLayout runs the fixed-point negotiation with the scroll offset:
// lay the children out, apply any scroll offset correction they demand,
// and repeat until the offset accepts the content dimensions.
func (v *Viewport) PerformLayout() {
	mainAxisExtent, crossAxisExtent := v.mainAndCrossExtent()
	v.offset.ApplyViewportDimension(mainAxisExtent)

	center := v.Center()
	if center == nil {
		v.minScrollExtent = 0
		v.maxScrollExtent = 0
		v.hasVisualOverflow = false
		v.offset.ApplyContentDimensions(0, 0)
		return
	}
	if center.Parent() != Object(v) {
		panic("render: viewport center is not a child of the viewport")
	}

	centerOffsetAdjustment := center.CenterOffsetAdjustment()
	maxCycles := maxLayoutCyclesPerChild * v.children.ChildCount()
	for count := 0; ; count++ {
		if count >= maxCycles {
			panic("render: viewport layout failed to converge; a sliver keeps issuing scroll offset corrections")
		}
		correction := v.attemptLayout(mainAxisExtent, crossAxisExtent, v.offset.Pixels()+centerOffsetAdjustment)
		if correction != 0 {
			v.offset.CorrectBy(correction)
			continue
		}
		accepted := v.offset.ApplyContentDimensions(
			math.Min(0, v.minScrollExtent+mainAxisExtent*v.anchor),
			math.Max(0, v.maxScrollExtent-mainAxisExtent*(1-v.anchor)),
		)
		if accepted {
			break
		}
	}
}

func (v *Viewport) mainAndCrossExtent() (float64, float64) {
	switch v.Axis() {
	case Horizontal:
		return v.Size().Width, v.Size().Height
	default:
		return v.Size().Height, v.Size().Width
	}
}

func (v *Viewport) attemptLayout(mainAxisExtent, crossAxisExtent, correctedOffset float64) float64 {
	v.minScrollExtent = 0
	v.maxScrollExtent = 0
	v.hasVisualOverflow = false

	// centerOffset is where the zero scroll offset line sits, measured
	// from the viewport's leading edge.
	centerOffset := mainAxisExtent*v.anchor - correctedOffset
	reverseDirectionRemainingPaintExtent := clamp(centerOffset, 0, mainAxisExtent)
	forwardDirectionRemainingPaintExtent := clamp(mainAxisExtent-centerOffset, 0, mainAxisExtent)

	fullCacheExtent := mainAxisExtent + 2*v.cacheExtent
	centerCacheOffset := centerOffset + v.cacheExtent
	reverseDirectionRemainingCacheExtent := clamp(centerCacheOffset, 0, fullCacheExtent)
	forwardDirectionRemainingCacheExtent := clamp(fullCacheExtent-centerCacheOffset, 0, fullCacheExtent)

	center := v.Center()
	leadingNegativeChild := v.children.ChildBefore(center)

	if leadingNegativeChild != nil {
		result := v.layoutChildSequence(layoutChildSequenceParams{
			child:                leadingNegativeChild,
			scrollOffset:         math.Max(mainAxisExtent, centerOffset) - mainAxisExtent,
			overlap:              0,
			layoutOffset:         forwardDirectionRemainingPaintExtent,
			remainingPaintExtent: reverseDirectionRemainingPaintExtent,
			mainAxisExtent:       mainAxisExtent,
			crossAxisExtent:      crossAxisExtent,
			growthDirection:      GrowthReverse,
			advance:              v.children.ChildBefore,
			remainingCacheExtent: reverseDirectionRemainingCacheExtent,
			cacheOrigin:          clamp(mainAxisExtent-centerOffset, -v.cacheExtent, 0),
		})
		if result != 0 {
			return -result
		}
	}

	overlap := 0.0
	if leadingNegativeChild == nil {
		overlap = math.Min(0, -centerOffset)
	}
	layoutOffset := reverseDirectionRemainingPaintExtent
	if centerOffset >= mainAxisExtent {
		layoutOffset = centerOffset
	}
	return v.layoutChildSequence(layoutChildSequenceParams{
		child:                center,
		scrollOffset:         math.Max(0, -centerOffset),
		overlap:              overlap,
		layoutOffset:         layoutOffset,
		remainingPaintExtent: forwardDirectionRemainingPaintExtent,
		mainAxisExtent:       mainAxisExtent,
		crossAxisExtent:      crossAxisExtent,
		growthDirection:      GrowthForward,
		advance:              v.children.ChildAfter,
		remainingCacheExtent: forwardDirectionRemainingCacheExtent,
		cacheOrigin:          clamp(centerOffset, -v.cacheExtent, 0),
	})
}

func (v *Viewport) updateOutOfBandData(growthDirection GrowthDirection, childGeometry SliverGeometry) {
	switch growthDirection {
	case GrowthForward:
		v.maxScrollExtent += childGeometry.ScrollExtent
	case GrowthReverse:
		v.minScrollExtent -= childGeometry.ScrollExtent
	}
	if childGeometry.HasVisualOverflow {
		v.hasVisualOverflow = true
	}
}

func (v *Viewport) updateChildLayoutOffset(child SliverNode, layoutOffset float64, growthDirection GrowthDirection) {
	pd := child.ParentData().(*SliverPhysicalContainerParentData)
	pd.PaintOffset = v.computeAbsolutePaintOffset(child, layoutOffset, growthDirection)
}

func (v *Viewport) paintOffsetOf(child SliverNode) Offset {
	return child.ParentData().(*SliverPhysicalContainerParentData).PaintOffset
}

func (v *Viewport) scrollOffsetOf(child SliverNode, scrollOffsetWithinChild float64) float64 {
	center := v.Center()
	switch child.sliver().SliverConstraints().GrowthDirection {
	case GrowthReverse:
		scrollOffsetToChild := 0.0
		for current := v.children.ChildBefore(center); current != child; current = v.children.ChildBefore(current) {
			scrollOffsetToChild -= current.Geometry().ScrollExtent
		}
		return scrollOffsetToChild - scrollOffsetWithinChild
	default:
		scrollOffsetToChild := 0.0
		for current := center; current != child; current = v.children.ChildAfter(current) {
			scrollOffsetToChild += current.Geometry().ScrollExtent
		}
		return scrollOffsetToChild + scrollOffsetWithinChild
	}
}

func (v *Viewport) maxScrollObstructionExtentBefore(child SliverNode) float64 {
	center := v.Center()
	switch child.sliver().SliverConstraints().GrowthDirection {
	case GrowthReverse:
		pinnedExtent := 0.0
		for current := v.children.ChildBefore(center); current != child; current = v.children.ChildBefore(current) {
			pinnedExtent += current.Geometry().MaxScrollObstructionExtent
		}
		return pinnedExtent
	default:
		pinnedExtent := 0.0
		for current := center; current != child; current = v.children.ChildAfter(current) {
			pinnedExtent += current.Geometry().MaxScrollObstructionExtent
		}
		return pinnedExtent
	}
}

func (v *Viewport) computeChildMainAxisPosition(child SliverNode, parentMainAxisPosition float64) float64 {
	paintOffset := child.ParentData().(*SliverPhysicalContainerParentData).PaintOffset
	c := child.sliver().SliverConstraints()
	switch ApplyGrowthDirection(c.AxisDirection, c.GrowthDirection) {
	case Down:
		return parentMainAxisPosition - paintOffset.Dy
	case Right:
		return parentMainAxisPosition - paintOffset.Dx
	case Up:
		return child.Geometry().PaintExtent - (parentMainAxisPosition - paintOffset.Dy)
	default:
		return child.Geometry().PaintExtent - (parentMainAxisPosition - paintOffset.Dx)
	}
}

func (v *Viewport) childrenInPaintOrder() []SliverNode {
	var children []SliverNode
	if v.children.FirstChild() == nil {
		return children
	}
	center := v.Center()
	for child := v.children.FirstChild(); child != center; child = v.children.ChildAfter(child) {
		children = append(children, child)
	}
	for child := v.children.LastChild(); ; child = v.children.ChildBefore(child) {
		children = append(children, child)
		if child == center {
			return children
		}
	}
}

func (v *Viewport) childrenInHitTestOrder() []SliverNode {
	var children []SliverNode
	if v.children.FirstChild() == nil {
		return children
	}
	center := v.Center()
	for child := center; child != nil; child = v.children.ChildAfter(child) {
		children = append(children, child)
	}
	for child := v.children.ChildBefore(center); child != nil; child = v.children.ChildBefore(child) {
		children = append(children, child)
	}
	return children
}

// ShrinkWrappingViewport sizes itself to its content along the main axis
// instead of filling its constraints, capped by whatever bound the parent
// imposes. Scrolling engages once the content outgrows the cap.
type ShrinkWrappingViewport struct {
	ViewportBase

	maxScrollExtent  float64
	shrinkWrapExtent float64
}

// ShrinkWrapOption configures a ShrinkWrappingViewport.
type ShrinkWrapOption func(*ShrinkWrappingViewport)

// ShrinkWrapAxisDirection sets the direction scroll offsets grow in.
func ShrinkWrapAxisDirection(value AxisDirection) ShrinkWrapOption {
	return func(v *ShrinkWrappingViewport) { v.axisDirection = value }
}

// ShrinkWrapCrossAxisDirection sets the cross axis direction.
func ShrinkWrapCrossAxisDirection(value AxisDirection) ShrinkWrapOption {
	return func(v *ShrinkWrappingViewport) { v.crossAxisDirection = value }
}

// ShrinkWrapClip controls whether overflowing children are clipped.
func ShrinkWrapClip(clip bool) ShrinkWrapOption {
	return func(v *ShrinkWrappingViewport) { v.clip = clip }
}

// NewShrinkWrappingViewport creates a shrink-wrapping viewport following
// offset.
func NewShrinkWrappingViewport(offset ViewportOffset, opts ...ShrinkWrapOption) *ShrinkWrappingViewport {
	v := &ShrinkWrappingViewport{}
	v.initViewport(v, offset)
	for _, opt := range opts {
		opt(v)
	}
	if v.axisDirection.Axis() == v.crossAxisDirection.Axis() {
		panic("render: viewport cross axis direction is not perpendicular to its axis")
	}
	return v
}

// SetupParentData installs SliverLogicalContainerParentData on children.
func (v *ShrinkWrappingViewport) SetupParentData(child Object) {
	if _, ok := child.ParentData().(*SliverLogicalContainerParentData); !ok {
		child.SetParentData(&SliverLogicalContainerParentData{})
	}
}

// MaxScrollExtent returns the upper content bound from the last layout.
func (v *ShrinkWrappingViewport) MaxScrollExtent() float64 { return v.maxScrollExtent }

// PerformLayout measures the content's natural extent, shrinks the
// viewport to it within the given constraints, and re-negotiates with the
// scroll offset until both the viewport and content dimensions stand.
func (v *ShrinkWrappingViewport) PerformLayout() {
	c := v.BoxConstraints()
	if v.children.FirstChild() == nil {
		switch v.Axis() {
		case Horizontal:
			v.SetSize(Size{Width: c.MinWidth, Height: c.MaxHeight})
		default:
			v.SetSize(Size{Width: c.MaxWidth, Height: c.MinHeight})
		}
		v.offset.ApplyViewportDimension(0)
		v.maxScrollExtent = 0
		v.shrinkWrapExtent = 0
		v.hasVisualOverflow = false
		v.offset.ApplyContentDimensions(0, 0)
		return
	}

	var mainAxisExtent, crossAxisExtent float64
	switch v.Axis() {
	case Horizontal:
		mainAxisExtent = c.MaxWidth
		crossAxisExtent = c.MaxHeight
	default:
		mainAxisExtent = c.MaxHeight
		crossAxisExtent = c.MaxWidth
	}
	if math.IsInf(crossAxisExtent, 1) {
		panic("render: shrink-wrapping viewport needs a bounded cross axis")
	}

	var effectiveExtent float64
	maxCycles := maxLayoutCyclesPerChild * v.children.ChildCount()
	for count := 0; ; count++ {
		if count >= maxCycles {
			panic("render: viewport layout failed to converge; a sliver keeps issuing scroll offset corrections")
		}
		correction := v.attemptLayout(mainAxisExtent, crossAxisExtent, v.offset.Pixels())
		if correction != 0 {
			v.offset.CorrectBy(correction)
			continue
		}
		switch v.Axis() {
		case Horizontal:
			effectiveExtent = c.ConstrainWidth(v.shrinkWrapExtent)
		default:
			effectiveExtent = c.ConstrainHeight(v.shrinkWrapExtent)
		}
		acceptedViewport := v.offset.ApplyViewportDimension(effectiveExtent)
		acceptedContent := v.offset.ApplyContentDimensions(0, math.Max(0, v.maxScrollExtent-effectiveExtent))
		if acceptedViewport && acceptedContent {
			break
		}
	}
	switch v.Axis() {
	case Horizontal:
		v.SetSize(c.ConstrainDimensions(effectiveExtent, crossAxisExtent))
	default:
		v.SetSize(c.ConstrainDimensions(crossAxisExtent, effectiveExtent))
	}
}

func (v *ShrinkWrappingViewport) attemptLayout(mainAxisExtent, crossAxisExtent, correctedOffset float64) float64 {
	v.maxScrollExtent = 0
	v.shrinkWrapExtent = 0
	v.hasVisualOverflow = false
	return v.layoutChildSequence(layoutChildSequenceParams{
		child:                v.children.FirstChild(),
		scrollOffset:         math.Max(0, correctedOffset),
		overlap:              math.Min(0, correctedOffset),
		layoutOffset:         math.Max(0, -correctedOffset),
		remainingPaintExtent: mainAxisExtent + math.Min(0, correctedOffset),
		mainAxisExtent:       mainAxisExtent,
		crossAxisExtent:      crossAxisExtent,
		growthDirection:      GrowthForward,
		advance:              v.children.ChildAfter,
		remainingCacheExtent: mainAxisExtent + 2*v.cacheExtent,
		cacheOrigin:          -v.cacheExtent,
	})
}

func (v *ShrinkWrappingViewport) updateOutOfBandData(growthDirection GrowthDirection, childGeometry SliverGeometry) {
	if growthDirection != GrowthForward {
		panic("render: shrink-wrapping viewport children only grow forward")
	}
	v.maxScrollExtent += childGeometry.ScrollExtent
	if childGeometry.HasVisualOverflow {
		v.hasVisualOverflow = true
	}
	v.shrinkWrapExtent += childGeometry.MaxPaintExtent
}

func (v *ShrinkWrappingViewport) updateChildLayoutOffset(child SliverNode, layoutOffset float64, growthDirection GrowthDirection) {
	pd := child.ParentData().(*SliverLogicalContainerParentData)
	pd.LayoutOffset = layoutOffset
}

func (v *ShrinkWrappingViewport) paintOffsetOf(child SliverNode) Offset {
	pd := child.ParentData().(*SliverLogicalContainerParentData)
	return v.computeAbsolutePaintOffset(child, pd.LayoutOffset, GrowthForward)
}

func (v *ShrinkWrappingViewport) scrollOffsetOf(child SliverNode, scrollOffsetWithinChild float64) float64 {
	scrollOffsetToChild := 0.0
	for current := v.children.FirstChild(); current != child; current = v.children.ChildAfter(current) {
		scrollOffsetToChild += current.Geometry().ScrollExtent
	}
	return scrollOffsetToChild + scrollOffsetWithinChild
}

func (v *ShrinkWrappingViewport) maxScrollObstructionExtentBefore(child SliverNode) float64 {
	pinnedExtent := 0.0
	for current := v.children.FirstChild(); current != child; current = v.children.ChildAfter(current) {
		pinnedExtent += current.Geometry().MaxScrollObstructionExtent
	}
	return pinnedExtent
}

func (v *ShrinkWrappingViewport) computeChildMainAxisPosition(child SliverNode, parentMainAxisPosition float64) float64 {
	paintOffset := v.paintOffsetOf(child)
	switch ApplyGrowthDirection(v.axisDirection, GrowthForward) {
	case Down:
		return parentMainAxisPosition - paintOffset.Dy
	case Right:
		return parentMainAxisPosition - paintOffset.Dx
	case Up:
		return child.Geometry().PaintExtent - (parentMainAxisPosition - paintOffset.Dy)
	default:
		return child.Geometry().PaintExtent - (parentMainAxisPosition - paintOffset.Dx)
	}
}

func (v *ShrinkWrappingViewport) childrenInPaintOrder() []SliverNode {
	var children []SliverNode
	for child := v.children.LastChild(); child != nil; child = v.children.ChildBefore(child) {
		children = append(children, child)
	}
	return children
}

func (v *ShrinkWrappingViewport) childrenInHitTestOrder() []SliverNode {
	var children []SliverNode
	for child := v.children.FirstChild(); child != nil; child = v.children.ChildAfter(child) {
		children = append(children, child)
	}
	return children
}
