package render

import "math"

// SliverNode is a render object in the sliver protocol: it takes
// SliverConstraints and produces a SliverGeometry. Positions within a
// sliver are expressed as a main axis distance from the visible leading
// edge and a cross axis distance from the cross axis start.
type SliverNode interface {
	Object
	sliver() *Sliver

	Geometry() SliverGeometry
	HasGeometry() bool

	HitTest(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool
	HitTestSelf(mainAxisPosition, crossAxisPosition float64) bool
	HitTestChildren(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool

	// ChildMainAxisPosition returns the distance from this sliver's
	// visible leading edge to the child's visible leading edge.
	ChildMainAxisPosition(child Object) float64
	// ChildCrossAxisPosition returns the child's cross axis offset.
	ChildCrossAxisPosition(child Object) float64
	// ChildScrollOffset returns the scroll distance from this sliver's
	// zero scroll offset to the child's, or NaN when unknown.
	ChildScrollOffset(child Object) float64
	// CenterOffsetAdjustment shifts the viewport's zero scroll offset for
	// slivers that grow in both directions around an anchor.
	CenterOffsetAdjustment() float64
}

// Sliver is the embeddable base for sliver-protocol nodes.
type Sliver struct {
	Node
	geometry    SliverGeometry
	hasGeometry bool
}

func (s *Sliver) sliver() *Sliver { return s }

// Geometry returns the geometry set by the most recent layout. It panics
// if the node has not been laid out.
func (s *Sliver) Geometry() SliverGeometry {
	if !s.hasGeometry {
		panic("render: Geometry accessed before layout")
	}
	return s.geometry
}

// HasGeometry reports whether layout has set a geometry.
func (s *Sliver) HasGeometry() bool { return s.hasGeometry }

// SetGeometry records the node's geometry. Only legal during the node's
// own PerformLayout.
func (s *Sliver) SetGeometry(geometry SliverGeometry) {
	if !s.performingLayout && !s.performingResize {
		panic("render: SetGeometry outside PerformLayout")
	}
	geometry.AssertValid()
	s.geometry = geometry
	s.hasGeometry = true
}

// SliverConstraints returns the node's constraints in sliver form.
func (s *Sliver) SliverConstraints() SliverConstraints {
	return s.Node.Constraints().(SliverConstraints)
}

// PaintBounds covers the painted extent from the visible leading edge.
func (s *Sliver) PaintBounds() Rect {
	c := s.SliverConstraints()
	cross := s.geometry.CrossAxisExtent
	if cross == 0 {
		cross = c.CrossAxisExtent
	}
	switch c.Axis() {
	case Horizontal:
		return NewRect(0, 0, s.geometry.PaintExtent, cross)
	default:
		return NewRect(0, 0, cross, s.geometry.PaintExtent)
	}
}

// HitTest checks whether the position, given as main and cross axis
// distances from the sliver's visible leading edge, hits this sliver or a
// descendant.
func (s *Sliver) HitTest(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	if mainAxisPosition < 0 || mainAxisPosition >= s.Geometry().HitTestExtent {
		return false
	}
	c := s.SliverConstraints()
	if crossAxisPosition < 0 || crossAxisPosition >= c.CrossAxisExtent {
		return false
	}
	self := s.self.(SliverNode)
	if self.HitTestChildren(result, mainAxisPosition, crossAxisPosition) ||
		self.HitTestSelf(mainAxisPosition, crossAxisPosition) {
		result.Add(NewSliverHitTestEntry(self, mainAxisPosition, crossAxisPosition))
		return true
	}
	return false
}

// HitTestSelf reports whether the sliver itself absorbs hits.
func (s *Sliver) HitTestSelf(mainAxisPosition, crossAxisPosition float64) bool {
	return false
}

// HitTestChildren hit tests the sliver's children.
func (s *Sliver) HitTestChildren(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	return false
}

// ChildMainAxisPosition panics unless overridden by slivers with children.
func (s *Sliver) ChildMainAxisPosition(child Object) float64 {
	panic("render: ChildMainAxisPosition not implemented")
}

// ChildCrossAxisPosition places children at the cross axis start.
func (s *Sliver) ChildCrossAxisPosition(child Object) float64 { return 0 }

// ChildScrollOffset is unknown by default.
func (s *Sliver) ChildScrollOffset(child Object) float64 { return math.NaN() }

// CenterOffsetAdjustment is zero for slivers that only grow forward.
func (s *Sliver) CenterOffsetAdjustment() float64 { return 0 }

// rightWayUp reports whether the sliver's content is oriented the same
// way as its axis direction after applying the growth direction.
func (s *Sliver) rightWayUp() bool {
	c := s.SliverConstraints()
	switch ApplyGrowthDirection(c.AxisDirection, c.GrowthDirection) {
	case Up, Left:
		return false
	default:
		return true
	}
}

// HitTestBoxChild hit tests a box child of this sliver, translating the
// sliver's main/cross position into the child's cartesian space.
func (s *Sliver) HitTestBoxChild(result *BoxHitTestResult, child BoxNode, mainAxisPosition, crossAxisPosition float64) bool {
	self := s.self.(SliverNode)
	rightWayUp := s.rightWayUp()
	delta := self.ChildMainAxisPosition(child)
	crossAxisDelta := self.ChildCrossAxisPosition(child)
	absolutePosition := mainAxisPosition - delta
	absoluteCrossAxisPosition := crossAxisPosition - crossAxisDelta
	var paintOffset, transformedPosition Offset
	switch s.SliverConstraints().Axis() {
	case Horizontal:
		if !rightWayUp {
			absolutePosition = child.Size().Width - absolutePosition
			delta = s.Geometry().PaintExtent - child.Size().Width - delta
		}
		paintOffset = Offset{Dx: delta, Dy: crossAxisDelta}
		transformedPosition = Offset{Dx: absolutePosition, Dy: absoluteCrossAxisPosition}
	default:
		if !rightWayUp {
			absolutePosition = child.Size().Height - absolutePosition
			delta = s.Geometry().PaintExtent - child.Size().Height - delta
		}
		paintOffset = Offset{Dx: crossAxisDelta, Dy: delta}
		transformedPosition = Offset{Dx: absoluteCrossAxisPosition, Dy: absolutePosition}
	}
	return result.AddWithOutOfBandPosition(paintOffset, func(result *BoxHitTestResult) bool {
		return child.HitTest(result, transformedPosition)
	})
}

// ApplyPaintTransformForBoxChild folds into transform how a box child is
// positioned when painting, accounting for flipped growth.
func (s *Sliver) ApplyPaintTransformForBoxChild(child BoxNode, transform *Matrix) {
	self := s.self.(SliverNode)
	rightWayUp := s.rightWayUp()
	delta := self.ChildMainAxisPosition(child)
	crossAxisDelta := self.ChildCrossAxisPosition(child)
	switch s.SliverConstraints().Axis() {
	case Horizontal:
		if !rightWayUp {
			delta = s.Geometry().PaintExtent - child.Size().Width - delta
		}
		*transform = transform.Translated(delta, crossAxisDelta)
	default:
		if !rightWayUp {
			delta = s.Geometry().PaintExtent - child.Size().Height - delta
		}
		*transform = transform.Translated(crossAxisDelta, delta)
	}
}
