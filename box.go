package render

// BoxNode is a render object in the 2D cartesian box protocol: it takes
// BoxConstraints and produces a Size.
type BoxNode interface {
	Object
	box() *Box

	Size() Size
	HasSize() bool

	HitTest(result *BoxHitTestResult, position Offset) bool
	HitTestSelf(position Offset) bool
	HitTestChildren(result *BoxHitTestResult, position Offset) bool

	GetMinIntrinsicWidth(height float64) float64
	GetMaxIntrinsicWidth(height float64) float64
	GetMinIntrinsicHeight(width float64) float64
	GetMaxIntrinsicHeight(width float64) float64

	ComputeMinIntrinsicWidth(height float64) float64
	ComputeMaxIntrinsicWidth(height float64) float64
	ComputeMinIntrinsicHeight(width float64) float64
	ComputeMaxIntrinsicHeight(width float64) float64
}

type intrinsicDimension int

const (
	minWidth intrinsicDimension = iota
	maxWidth
	minHeight
	maxHeight
)

type intrinsicKey struct {
	dim intrinsicDimension
	arg float64
}

// Box is the embeddable base for box-protocol nodes. It stores the size
// set during layout and memoizes intrinsic queries until the next
// MarkNeedsLayout.
type Box struct {
	Node
	size             Size
	hasSize          bool
	cachedIntrinsics map[intrinsicKey]float64
}

func (b *Box) box() *Box { return b }

// Size returns the size set by the most recent layout. It panics if the
// node has not been laid out.
func (b *Box) Size() Size {
	if !b.hasSize {
		panic("render: Size accessed before layout")
	}
	return b.size
}

// HasSize reports whether layout has set a size.
func (b *Box) HasSize() bool { return b.hasSize }

// SetSize records the node's size. Only legal during the node's own
// PerformLayout or PerformResize.
func (b *Box) SetSize(size Size) {
	if !b.performingLayout && !b.performingResize {
		panic("render: SetSize outside PerformLayout or PerformResize")
	}
	if !size.IsFinite() {
		panic("render: SetSize with a non-finite size")
	}
	b.size = size
	b.hasSize = true
}

// BoxConstraints returns the node's constraints in box form.
func (b *Box) BoxConstraints() BoxConstraints {
	return b.Node.Constraints().(BoxConstraints)
}

// SetupParentData installs BoxParentData on children that do not already
// carry it.
func (b *Box) SetupParentData(child Object) {
	if _, ok := child.ParentData().(*BoxParentData); !ok {
		child.SetParentData(&BoxParentData{})
	}
}

// PerformResize sizes the node to the smallest size the constraints
// allow. SizedByParent nodes with different policies override this.
func (b *Box) PerformResize() {
	b.SetSize(b.BoxConstraints().Smallest())
}

// PaintBounds covers the node's size at its own origin.
func (b *Box) PaintBounds() Rect {
	return RectFromSize(b.Size())
}

// ApplyPaintTransform folds in the child's paint offset stored by the
// default box parent data.
func (b *Box) ApplyPaintTransform(child Object, transform *Matrix) {
	if pd, ok := child.ParentData().(interface{ boxParentData() *BoxParentData }); ok {
		offset := pd.boxParentData().Offset
		*transform = transform.Translated(offset.Dx, offset.Dy)
	}
}

// HitTest checks whether position, in this node's coordinate space, hits
// this node or a descendant, adding entries for everything hit. Children
// are consulted front to back before the node itself.
func (b *Box) HitTest(result *BoxHitTestResult, position Offset) bool {
	if !b.hasSize {
		panic("render: HitTest before layout")
	}
	if !b.size.Contains(position) {
		return false
	}
	self := b.self.(BoxNode)
	if self.HitTestChildren(result, position) || self.HitTestSelf(position) {
		result.Add(NewBoxHitTestEntry(self, position))
		return true
	}
	return false
}

// HitTestSelf reports whether this node itself absorbs hits at position.
func (b *Box) HitTestSelf(position Offset) bool { return false }

// HitTestChildren hit tests the node's children. Node types with children
// override this.
func (b *Box) HitTestChildren(result *BoxHitTestResult, position Offset) bool {
	return false
}

// LocalToGlobal maps point from this node's coordinate space into
// ancestor's, or the root's when ancestor is nil.
func (b *Box) LocalToGlobal(point Offset, ancestor Object) Offset {
	return b.GetTransformTo(ancestor).Apply(point)
}

// GlobalToLocal maps point from ancestor's coordinate space (the root's
// when ancestor is nil) into this node's. Degenerate transforms map
// everything to the origin.
func (b *Box) GlobalToLocal(point Offset, ancestor Object) Offset {
	inverse, ok := b.GetTransformTo(ancestor).Invert()
	if !ok {
		return Offset{}
	}
	return inverse.Apply(point)
}

func (b *Box) computeIntrinsic(dim intrinsicDimension, arg float64, compute func(float64) float64) float64 {
	key := intrinsicKey{dim: dim, arg: arg}
	if v, ok := b.cachedIntrinsics[key]; ok {
		return v
	}
	v := compute(arg)
	if b.cachedIntrinsics == nil {
		b.cachedIntrinsics = make(map[intrinsicKey]float64)
	}
	b.cachedIntrinsics[key] = v
	return v
}

func (b *Box) clearCachedIntrinsics() bool {
	if len(b.cachedIntrinsics) == 0 {
		return false
	}
	b.cachedIntrinsics = nil
	return true
}

// GetMinIntrinsicWidth returns the smallest width at which the node can
// paint correctly given unlimited height of height. Memoized.
func (b *Box) GetMinIntrinsicWidth(height float64) float64 {
	if height < 0 {
		panic("render: GetMinIntrinsicWidth with negative height")
	}
	return b.computeIntrinsic(minWidth, height, b.self.(BoxNode).ComputeMinIntrinsicWidth)
}

// GetMaxIntrinsicWidth returns the smallest width beyond which more width
// never reduces the preferred height. Memoized.
func (b *Box) GetMaxIntrinsicWidth(height float64) float64 {
	if height < 0 {
		panic("render: GetMaxIntrinsicWidth with negative height")
	}
	return b.computeIntrinsic(maxWidth, height, b.self.(BoxNode).ComputeMaxIntrinsicWidth)
}

// GetMinIntrinsicHeight is the height analogue of GetMinIntrinsicWidth.
func (b *Box) GetMinIntrinsicHeight(width float64) float64 {
	if width < 0 {
		panic("render: GetMinIntrinsicHeight with negative width")
	}
	return b.computeIntrinsic(minHeight, width, b.self.(BoxNode).ComputeMinIntrinsicHeight)
}

// GetMaxIntrinsicHeight is the height analogue of GetMaxIntrinsicWidth.
func (b *Box) GetMaxIntrinsicHeight(width float64) float64 {
	if width < 0 {
		panic("render: GetMaxIntrinsicHeight with negative width")
	}
	return b.computeIntrinsic(maxHeight, width, b.self.(BoxNode).ComputeMaxIntrinsicHeight)
}

// ComputeMinIntrinsicWidth is the uncached hook; nodes with content
// override it. Never call it directly, use GetMinIntrinsicWidth.
func (b *Box) ComputeMinIntrinsicWidth(height float64) float64 { return 0 }

// ComputeMaxIntrinsicWidth is the uncached hook for GetMaxIntrinsicWidth.
func (b *Box) ComputeMaxIntrinsicWidth(height float64) float64 { return 0 }

// ComputeMinIntrinsicHeight is the uncached hook for GetMinIntrinsicHeight.
func (b *Box) ComputeMinIntrinsicHeight(width float64) float64 { return 0 }

// ComputeMaxIntrinsicHeight is the uncached hook for GetMaxIntrinsicHeight.
func (b *Box) ComputeMaxIntrinsicHeight(width float64) float64 { return 0 }
