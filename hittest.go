package render

// HitTestEntry records one target on a hit path together with the transform
// from the hit test's root coordinate space into the target's local space.
type HitTestEntry interface {
	// Target returns the render object that was hit.
	Target() Object

	// Transform maps a point in the root hit-test coordinate space to the
	// target's local space.
	Transform() Matrix

	setTransform(Matrix)
}

// BoxHitTestEntry is a hit on a box target at a Cartesian local position.
type BoxHitTestEntry struct {
	target    BoxNode
	transform Matrix

	// LocalPosition is the hit position in the target's coordinate space.
	LocalPosition Offset
}

// NewBoxHitTestEntry creates an entry for a box hit at the given local
// position.
func NewBoxHitTestEntry(target BoxNode, localPosition Offset) *BoxHitTestEntry {
	return &BoxHitTestEntry{target: target, LocalPosition: localPosition}
}

// Target implements HitTestEntry.
func (e *BoxHitTestEntry) Target() Object { return e.target }

// Transform implements HitTestEntry.
func (e *BoxHitTestEntry) Transform() Matrix { return e.transform }

func (e *BoxHitTestEntry) setTransform(m Matrix) { e.transform = m }

// SliverHitTestEntry is a hit on a sliver target at a (main, cross) axis
// position.
type SliverHitTestEntry struct {
	target    SliverNode
	transform Matrix

	// MainAxisPosition is the distance from the sliver's visible leading
	// edge along the main axis.
	MainAxisPosition float64

	// CrossAxisPosition is the distance from the sliver's leading
	// cross-axis edge.
	CrossAxisPosition float64
}

// NewSliverHitTestEntry creates an entry for a sliver hit.
func NewSliverHitTestEntry(target SliverNode, mainAxisPosition, crossAxisPosition float64) *SliverHitTestEntry {
	return &SliverHitTestEntry{
		target:            target,
		MainAxisPosition:  mainAxisPosition,
		CrossAxisPosition: crossAxisPosition,
	}
}

// Target implements HitTestEntry.
func (e *SliverHitTestEntry) Target() Object { return e.target }

// Transform implements HitTestEntry.
func (e *SliverHitTestEntry) Transform() Matrix { return e.transform }

func (e *SliverHitTestEntry) setTransform(m Matrix) { e.transform = m }

// HitTestResult accumulates an ordered path of hit entries, innermost
// first, each stamped with the coordinate transform in effect when it was
// added. Box and sliver specializations wrap the same underlying result so
// one path can cross both coordinate systems.
type HitTestResult struct {
	path       []HitTestEntry
	transforms []Matrix
}

// NewHitTestResult creates an empty result whose transform stack starts at
// identity.
func NewHitTestResult() *HitTestResult {
	return &HitTestResult{transforms: []Matrix{IdentityMatrix()}}
}

// Path returns the accumulated entries, innermost target first.
func (r *HitTestResult) Path() []HitTestEntry {
	return r.path
}

// Add appends an entry, stamping it with the current transform.
func (r *HitTestResult) Add(entry HitTestEntry) {
	entry.setTransform(r.transforms[len(r.transforms)-1])
	r.path = append(r.path, entry)
}

// PushOffset records entry into a child coordinate space displaced by
// offset: a point p in the current space maps to p + offset in the child
// space. Callers therefore pass the negated paint offset of the child.
func (r *HitTestResult) PushOffset(offset Offset) {
	top := r.transforms[len(r.transforms)-1]
	r.transforms = append(r.transforms, TranslationMatrix(offset.Dx, offset.Dy).Mul(top))
}

// PushTransform records entry into a child coordinate space reached by the
// given transform, which must already map parent-local to child-local
// coordinates (i.e. the inverted paint transform).
func (r *HitTestResult) PushTransform(transform Matrix) {
	top := r.transforms[len(r.transforms)-1]
	r.transforms = append(r.transforms, transform.Mul(top))
}

// PopTransform undoes the most recent PushOffset or PushTransform.
func (r *HitTestResult) PopTransform() {
	if len(r.transforms) <= 1 {
		panic("render: PopTransform called more times than Push")
	}
	r.transforms = r.transforms[:len(r.transforms)-1]
}

// BoxHitTestResult is the Cartesian-coordinate view of a hit-test result.
type BoxHitTestResult struct {
	*HitTestResult
}

// NewBoxHitTestResult creates an empty box hit-test result.
func NewBoxHitTestResult() *BoxHitTestResult {
	return &BoxHitTestResult{HitTestResult: NewHitTestResult()}
}

// WrapHitTestResult views an existing result through the box protocol so
// box entries can extend a path started elsewhere.
func WrapHitTestResult(result *HitTestResult) *BoxHitTestResult {
	return &BoxHitTestResult{HitTestResult: result}
}

// BoxHitTest positions a hit test within one box's coordinate space.
type BoxHitTest func(result *BoxHitTestResult, position Offset) bool

// AddWithPaintOffset hit-tests a child painted at the given offset,
// translating the position into the child's space and recording the
// transform for entries added inside.
func (r *BoxHitTestResult) AddWithPaintOffset(offset Offset, position Offset, hitTest BoxHitTest) bool {
	transformed := position.Sub(offset)
	if offset == (Offset{}) {
		return hitTest(r, transformed)
	}
	r.PushOffset(offset.Neg())
	hit := hitTest(r, transformed)
	r.PopTransform()
	return hit
}

// AddWithPaintTransform hit-tests a child painted under the given
// child-to-parent transform. Returns false without testing when the
// transform cannot be inverted (degenerate geometry is not a hit).
func (r *BoxHitTestResult) AddWithPaintTransform(transform Matrix, position Offset, hitTest BoxHitTest) bool {
	if transform.IsIdentity() {
		return hitTest(r, position)
	}
	inverse, ok := transform.Invert()
	if !ok {
		return false
	}
	transformed := inverse.Apply(position)
	if transform.IsTranslation() {
		r.PushOffset(Offset{Dx: -transform.X0, Dy: -transform.Y0})
	} else {
		r.PushTransform(inverse)
	}
	hit := hitTest(r, transformed)
	r.PopTransform()
	return hit
}

// AddWithOutOfBandPosition hit-tests a child whose position was already
// transformed by the caller, recording only the coordinate-space change.
func (r *BoxHitTestResult) AddWithOutOfBandPosition(paintOffset Offset, hitTest func(*BoxHitTestResult) bool) bool {
	r.PushOffset(paintOffset.Neg())
	hit := hitTest(r)
	r.PopTransform()
	return hit
}

// AddWithOutOfBandTransform is AddWithOutOfBandPosition for a full
// child-to-parent paint transform. Returns false for singular transforms.
func (r *BoxHitTestResult) AddWithOutOfBandTransform(paintTransform Matrix, hitTest func(*BoxHitTestResult) bool) bool {
	inverse, ok := paintTransform.Invert()
	if !ok {
		return false
	}
	r.PushTransform(inverse)
	hit := hitTest(r)
	r.PopTransform()
	return hit
}

// SliverHitTestResult is the scroll-coordinate view of a hit-test result.
type SliverHitTestResult struct {
	*HitTestResult
}

// NewSliverHitTestResult creates an empty sliver hit-test result.
func NewSliverHitTestResult() *SliverHitTestResult {
	return &SliverHitTestResult{HitTestResult: NewHitTestResult()}
}

// WrapSliverHitTestResult views an existing result through the sliver
// protocol.
func WrapSliverHitTestResult(result *HitTestResult) *SliverHitTestResult {
	return &SliverHitTestResult{HitTestResult: result}
}

// SliverHitTest positions a hit test within one sliver's coordinate space.
type SliverHitTest func(result *SliverHitTestResult, mainAxisPosition, crossAxisPosition float64) bool

// AddWithAxisOffset hit-tests a child positioned further along the main and
// cross axes, recording the paint offset for entries added inside.
func (r *SliverHitTestResult) AddWithAxisOffset(paintOffset Offset, mainAxisOffset, crossAxisOffset, mainAxisPosition, crossAxisPosition float64, hitTest SliverHitTest) bool {
	pushed := paintOffset != (Offset{})
	if pushed {
		r.PushOffset(paintOffset.Neg())
	}
	hit := hitTest(r, mainAxisPosition-mainAxisOffset, crossAxisPosition-crossAxisOffset)
	if pushed {
		r.PopTransform()
	}
	return hit
}
