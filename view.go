package render

// View is the root of a render tree. It has a fixed configuration size,
// lays its child out tightly to it, and owns the root layer the
// compositor consumes.
type View struct {
	Box
	child         SingleChild[BoxNode]
	configuration Size
}

// NewView creates a root node sized to configuration.
func NewView(configuration Size, child BoxNode) *View {
	v := &View{configuration: configuration}
	v.Init(v)
	v.child.Init(v)
	if child != nil {
		v.child.SetChild(child)
	}
	return v
}

// Child returns the view's content, or nil.
func (v *View) Child() BoxNode { return v.child.Child() }

// SetChild replaces the view's content.
func (v *View) SetChild(child BoxNode) { v.child.SetChild(child) }

// Configuration returns the view's fixed size.
func (v *View) Configuration() Size { return v.configuration }

// SetConfiguration resizes the view, for example when the surface it
// renders into changes size.
func (v *View) SetConfiguration(size Size) {
	if v.configuration == size {
		return
	}
	v.configuration = size
	v.MarkNeedsLayout()
}

// VisitChildren implements Object.
func (v *View) VisitChildren(visitor func(Object)) {
	v.child.Visit(visitor)
}

// IsRepaintBoundary is true: the view owns the root retained layer.
func (v *View) IsRepaintBoundary() bool { return true }

// PrepareInitialFrame primes the dirty state so the first FlushLayout and
// FlushPaint produce a complete frame. Call once, after attaching the
// view to its owner.
func (v *View) PrepareInitialFrame() {
	if v.Owner() == nil {
		panic("render: PrepareInitialFrame before attaching the view")
	}
	if v.layer != nil {
		panic("render: PrepareInitialFrame called twice")
	}
	v.relayoutBoundary = v
	v.Owner().nodesNeedingLayout = append(v.Owner().nodesNeedingLayout, v)
	v.layer = NewOffsetLayer(Offset{})
	v.Owner().nodesNeedingPaint = append(v.Owner().nodesNeedingPaint, v)
	v.Owner().requestVisualUpdate()
}

// PerformLayout sizes the view to its configuration and lays the child
// out tightly to it.
func (v *View) PerformLayout() {
	v.SetSize(v.configuration)
	if v.child.HasChild() {
		v.child.Child().Layout(TightConstraints(v.configuration), false)
	}
}

// Paint draws the child.
func (v *View) Paint(context *PaintingContext, offset Offset) {
	if v.child.HasChild() {
		context.PaintChild(v.child.Child(), offset)
	}
}

// HitTest finds everything at position, in the view's coordinate space.
// The view itself terminates every path.
func (v *View) HitTest(result *BoxHitTestResult, position Offset) bool {
	if v.child.HasChild() {
		v.child.Child().HitTest(result, position)
	}
	result.Add(NewBoxHitTestEntry(v, position))
	return true
}

// CompositeFrame hands the retained layer tree from the last FlushPaint
// to a compositor. It panics if no frame has been painted yet.
func (v *View) CompositeFrame() *OffsetLayer {
	if v.layer == nil {
		panic("render: CompositeFrame before the first paint")
	}
	return v.layer
}

// Scene returns the root of the layer tree built by the last FlushPaint,
// or nil before the first frame.
func (v *View) Scene() *OffsetLayer { return v.layer }
