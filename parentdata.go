package render

// ParentData is opaque per-child storage owned by the parent node. The
// concrete type is chosen by the parent's SetupParentData and replaced
// wholesale when a child is adopted by a new kind of parent. Children never
// read their own parent data.
type ParentData interface {
	// Detach is called when the child is dropped from its parent.
	Detach()
}

// BaseParentData is the no-op ParentData embedded by concrete variants.
type BaseParentData struct{}

// Detach implements ParentData.
func (*BaseParentData) Detach() {}

// BoxParentData stores the child's paint offset within a box parent.
type BoxParentData struct {
	BaseParentData

	// Offset is where to paint the child relative to the parent's origin.
	Offset Offset
}

func (d *BoxParentData) boxParentData() *BoxParentData {
	return d
}

// ContainerParentData adds doubly-linked sibling pointers for children
// stored in a ChildList. C is the node interface of the siblings.
type ContainerParentData[C Object] struct {
	NextSibling     C
	PreviousSibling C
}

func (d *ContainerParentData[C]) links() *ContainerParentData[C] {
	return d
}

// ContainerBoxParentData is the parent data for box children held in a
// ChildList.
type ContainerBoxParentData struct {
	BoxParentData
	ContainerParentData[BoxNode]
}

// SliverPhysicalParentData positions a sliver child with an absolute paint
// offset from the parent's visible leading edge.
type SliverPhysicalParentData struct {
	BaseParentData

	// PaintOffset is where to paint the child relative to the parent.
	PaintOffset Offset

	// CrossAxisFlex is the child's share when a parent divides the cross
	// axis by flex weight. Zero means the child sizes itself.
	CrossAxisFlex int
}

// ApplyPaintTransform folds the paint offset into the given transform.
func (d *SliverPhysicalParentData) ApplyPaintTransform(t *Matrix) {
	*t = t.Translated(d.PaintOffset.Dx, d.PaintOffset.Dy)
}

// SliverPhysicalContainerParentData is SliverPhysicalParentData for sliver
// children held in a ChildList.
type SliverPhysicalContainerParentData struct {
	SliverPhysicalParentData
	ContainerParentData[SliverNode]
}

// SliverLogicalParentData positions a sliver child by its scroll-relative
// layout offset; the paint position is derived at paint time.
type SliverLogicalParentData struct {
	BaseParentData

	// LayoutOffset is the distance from the parent's zero scroll offset to
	// the child's nearest edge, in the axis direction.
	LayoutOffset float64
}

// SliverLogicalContainerParentData is SliverLogicalParentData for sliver
// children held in a ChildList.
type SliverLogicalContainerParentData struct {
	SliverLogicalParentData
	ContainerParentData[SliverNode]
}
