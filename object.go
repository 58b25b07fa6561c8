package render

import "sort"

// Object is one node of the render tree. Concrete nodes embed Node, call
// Init(self) at construction, and override the behavior hooks they need.
// Calls on the embedded Node route back through the outermost value so an
// overridden hook always wins.
type Object interface {
	node() *Node

	// Tree structure.
	Parent() Object
	Owner() *PipelineOwner
	Depth() int
	Attached() bool
	Attach(owner *PipelineOwner)
	Detach()
	VisitChildren(visitor func(Object))
	ParentData() ParentData
	SetParentData(data ParentData)
	Dispose()

	// Layout protocol.
	Layout(constraints Constraints, parentUsesSize bool)
	Constraints() Constraints
	MarkNeedsLayout()
	MarkNeedsPaint()
	MarkNeedsCompositingBitsUpdate()
	MarkNeedsCompositedLayerUpdate()
	NeedsCompositing() bool
	GetTransformTo(ancestor Object) Matrix

	// Behavior hooks with defaults on Node.
	SetupParentData(child Object)
	SizedByParent() bool
	PerformResize()
	PerformLayout()
	IsRepaintBoundary() bool
	AlwaysNeedsCompositing() bool
	Paint(context *PaintingContext, offset Offset)
	PaintBounds() Rect
	ApplyPaintTransform(child Object, transform *Matrix)
	UpdateCompositedLayer(oldLayer *OffsetLayer) *OffsetLayer
}

// intrinsicsCacher is implemented by nodes that memoize layout queries and
// must flush them before dirty propagation runs.
type intrinsicsCacher interface {
	clearCachedIntrinsics() bool
}

// Node is the embeddable base for render objects. It owns the dirty flags,
// the relayout boundary bookkeeping, and the retained layer for repaint
// boundaries.
type Node struct {
	self       Object
	parent     Object
	owner      *PipelineOwner
	depth      int
	parentData ParentData

	constraints      Constraints
	relayoutBoundary Object

	needsLayout                bool
	needsPaint                 bool
	needsCompositingBitsUpdate bool
	needsCompositedLayerUpdate bool
	needsCompositing           bool
	wasRepaintBoundary         bool

	doingThisLayoutWithCallback bool
	performingLayout            bool
	performingResize            bool

	layer    *OffsetLayer
	disposed bool
}

func (n *Node) node() *Node { return n }

// Init records the outermost value embedding this Node so hook calls
// dispatch to overrides. Constructors must call it before the node joins a
// tree.
func (n *Node) Init(self Object) {
	n.self = self
	n.needsLayout = true
	n.needsPaint = true
	n.needsCompositingBitsUpdate = true
	n.needsCompositing = self.IsRepaintBoundary() || self.AlwaysNeedsCompositing()
	n.wasRepaintBoundary = self.IsRepaintBoundary()
}

// Parent returns the parent object, or nil at the root.
func (n *Node) Parent() Object { return n.parent }

// Owner returns the pipeline owner this node is attached to, or nil.
func (n *Node) Owner() *PipelineOwner { return n.owner }

// Depth returns the node's depth; roots have depth zero. Depth only ever
// increases down the tree, parents process before children in every flush.
func (n *Node) Depth() int { return n.depth }

// Attached reports whether the node is connected to a pipeline owner.
func (n *Node) Attached() bool { return n.owner != nil }

// ParentData returns the slot written by this node's parent.
func (n *Node) ParentData() ParentData { return n.parentData }

// SetParentData replaces the parent data slot. Normally only parents call
// this, through SetupParentData.
func (n *Node) SetParentData(data ParentData) { n.parentData = data }

// Constraints returns the constraints from the most recent layout. It
// panics if the node has never been laid out.
func (n *Node) Constraints() Constraints {
	if n.constraints == nil {
		panic("render: Constraints accessed before layout")
	}
	return n.constraints
}

// NeedsCompositing reports whether this subtree requires its own
// compositing layer. Only valid after a compositing bits flush.
func (n *Node) NeedsCompositing() bool { return n.needsCompositing }

// Layer returns the retained compositing layer for repaint boundaries, or
// nil.
func (n *Node) Layer() *OffsetLayer { return n.layer }

func (n *Node) setLayer(l *OffsetLayer) { n.layer = l }

// Disposed reports whether Dispose has run.
func (n *Node) Disposed() bool { return n.disposed }

// Dispose releases resources. The node must already be detached and must
// not be used afterwards.
func (n *Node) Dispose() {
	if n.disposed {
		panic("render: Dispose called twice")
	}
	if n.owner != nil {
		panic("render: Dispose called on an attached node")
	}
	n.layer = nil
	n.disposed = true
}

// VisitChildren calls visitor for each child. Node has no children; nodes
// with children override this.
func (n *Node) VisitChildren(visitor func(Object)) {}

// SetupParentData gives child a fresh parent data slot if its current one
// is not already the kind this node writes. The default installs nothing.
func (n *Node) SetupParentData(child Object) {}

// SizedByParent reports whether the node's size depends only on its
// constraints. Such nodes compute size in PerformResize and their layout
// is skipped entirely when constraints repeat.
func (n *Node) SizedByParent() bool { return false }

// PerformResize computes the size of a SizedByParent node from its
// constraints alone.
func (n *Node) PerformResize() {}

// PerformLayout does the node's layout work. Every concrete node must
// override it.
func (n *Node) PerformLayout() {
	panic("render: PerformLayout not implemented")
}

// IsRepaintBoundary reports whether this node paints into its own retained
// layer, decoupling its repaints from its ancestors'.
func (n *Node) IsRepaintBoundary() bool { return false }

// AlwaysNeedsCompositing forces needsCompositing regardless of children.
func (n *Node) AlwaysNeedsCompositing() bool { return false }

// Paint draws the node. The default draws nothing.
func (n *Node) Paint(context *PaintingContext, offset Offset) {}

// PaintBounds estimates the region this node paints into, in its own
// coordinate space.
func (n *Node) PaintBounds() Rect { return Rect{} }

// ApplyPaintTransform folds into transform how this node positions child
// when painting. The default assumes the child paints at the parent's
// origin.
func (n *Node) ApplyPaintTransform(child Object, transform *Matrix) {}

// UpdateCompositedLayer creates or updates the retained layer for a
// repaint boundary. Boundaries with layer state beyond an offset override
// this.
func (n *Node) UpdateCompositedLayer(oldLayer *OffsetLayer) *OffsetLayer {
	if oldLayer != nil {
		return oldLayer
	}
	return NewOffsetLayer(Offset{})
}

// AdoptChild wires child into the tree under this node. Callers that
// manage child storage (SingleChild, ChildList) call this after updating
// their own links.
func (n *Node) AdoptChild(child Object) {
	if child == nil {
		panic("render: AdoptChild(nil)")
	}
	if n.owner != nil && n.owner.doingLayout && !n.owner.allowMutations {
		panic("render: tree mutated during layout outside InvokeLayoutCallback")
	}
	c := child.node()
	if c.self == nil {
		c.self = child
	}
	n.self.SetupParentData(child)
	n.MarkNeedsLayout()
	n.MarkNeedsCompositingBitsUpdate()
	c.parent = n.self
	if n.owner != nil {
		child.Attach(n.owner)
	}
	n.redepthChild(child)
}

// DropChild severs child from the tree.
func (n *Node) DropChild(child Object) {
	if child == nil {
		panic("render: DropChild(nil)")
	}
	if n.owner != nil && n.owner.doingLayout && !n.owner.allowMutations {
		panic("render: tree mutated during layout outside InvokeLayoutCallback")
	}
	c := child.node()
	if c.parent != n.self {
		panic("render: DropChild of a node with a different parent")
	}
	c.cleanRelayoutBoundary()
	if c.parentData != nil {
		c.parentData.Detach()
		c.parentData = nil
	}
	c.parent = nil
	if n.owner != nil {
		child.Detach()
	}
	n.MarkNeedsLayout()
	n.MarkNeedsCompositingBitsUpdate()
}

func (n *Node) redepthChild(child Object) {
	c := child.node()
	if c.depth <= n.depth {
		c.depth = n.depth + 1
		child.VisitChildren(c.redepthChild)
	}
}

// Attach connects the node and its subtree to owner, re-registering any
// dirty state with the owner's work lists.
func (n *Node) Attach(owner *PipelineOwner) {
	if n.owner != nil {
		panic("render: Attach called on an attached node")
	}
	n.owner = owner
	if n.needsLayout && n.relayoutBoundary != nil {
		// Re-enqueue through the dirty path so the boundary logic reruns.
		n.needsLayout = false
		n.MarkNeedsLayout()
	}
	if n.needsCompositingBitsUpdate {
		n.needsCompositingBitsUpdate = false
		n.MarkNeedsCompositingBitsUpdate()
	}
	if n.needsPaint && n.layer != nil {
		n.needsPaint = false
		n.MarkNeedsPaint()
	}
	if n.needsCompositedLayerUpdate {
		n.needsCompositedLayerUpdate = false
		n.MarkNeedsCompositedLayerUpdate()
	}
	n.self.VisitChildren(func(child Object) {
		child.Attach(owner)
	})
}

// Detach disconnects the node and its subtree from its owner. Dirty flags
// are kept so Attach can re-register them.
func (n *Node) Detach() {
	if n.owner == nil {
		panic("render: Detach called on a detached node")
	}
	n.owner = nil
	n.self.VisitChildren(func(child Object) {
		child.Detach()
	})
}

// Layout runs the layout protocol on this node: compute the relayout
// boundary, short-circuit when clean under identical constraints, and
// otherwise resize and lay out.
func (n *Node) Layout(constraints Constraints, parentUsesSize bool) {
	if constraints == nil {
		panic("render: Layout(nil constraints)")
	}
	if !constraints.IsNormalized() {
		panic("render: Layout with non-normalized constraints")
	}
	var relayoutBoundary Object
	if !parentUsesSize || n.self.SizedByParent() || constraints.IsTight() || n.parent == nil {
		relayoutBoundary = n.self
	} else {
		relayoutBoundary = n.parent.node().relayoutBoundary
	}
	if !n.needsLayout && constraints == n.constraints {
		if relayoutBoundary != n.relayoutBoundary {
			n.relayoutBoundary = relayoutBoundary
			n.self.VisitChildren(propagateRelayoutBoundaryToChild)
		}
		return
	}
	n.constraints = constraints
	if n.relayoutBoundary != nil && relayoutBoundary != n.relayoutBoundary {
		// The boundary moved; stale boundaries below must be recomputed.
		n.self.VisitChildren(cleanChildRelayoutBoundary)
	}
	n.relayoutBoundary = relayoutBoundary
	if n.self.SizedByParent() {
		n.performingResize = true
		n.self.PerformResize()
		n.performingResize = false
	}
	n.performingLayout = true
	n.self.PerformLayout()
	n.performingLayout = false
	n.needsLayout = false
	n.MarkNeedsPaint()
}

// layoutWithoutResize reruns PerformLayout for a relayout boundary whose
// constraints are unchanged. Only the layout flush calls this.
func (n *Node) layoutWithoutResize() {
	if n.relayoutBoundary != n.self {
		panic("render: layoutWithoutResize on a non-boundary node")
	}
	n.performingLayout = true
	n.self.PerformLayout()
	n.performingLayout = false
	n.needsLayout = false
	n.MarkNeedsPaint()
}

func propagateRelayoutBoundaryToChild(child Object) {
	child.node().propagateRelayoutBoundary()
}

func (n *Node) propagateRelayoutBoundary() {
	if n.relayoutBoundary == n.self {
		return
	}
	parentBoundary := n.parent.node().relayoutBoundary
	if parentBoundary == n.relayoutBoundary {
		return
	}
	n.relayoutBoundary = parentBoundary
	n.self.VisitChildren(propagateRelayoutBoundaryToChild)
}

func cleanChildRelayoutBoundary(child Object) {
	child.node().cleanRelayoutBoundary()
}

func (n *Node) cleanRelayoutBoundary() {
	if n.relayoutBoundary != n.self {
		n.relayoutBoundary = nil
		n.self.VisitChildren(cleanChildRelayoutBoundary)
	}
}

// MarkNeedsLayout records that this node needs layout and propagates the
// dirt to the nearest relayout boundary, which is what the owner actually
// revisits.
func (n *Node) MarkNeedsLayout() {
	if c, ok := n.self.(intrinsicsCacher); ok && c.clearCachedIntrinsics() && n.parent != nil {
		// A cached intrinsic went stale; the parent sized itself off it.
		n.markParentNeedsLayout()
		return
	}
	if n.needsLayout {
		return
	}
	if n.relayoutBoundary == nil {
		n.needsLayout = true
		if n.parent != nil {
			// The boundary will be recomputed when an ancestor lays out.
			n.markParentNeedsLayout()
		}
		return
	}
	if n.relayoutBoundary != n.self {
		n.markParentNeedsLayout()
		return
	}
	n.needsLayout = true
	if n.owner != nil {
		n.owner.nodesNeedingLayout = append(n.owner.nodesNeedingLayout, n.self)
		n.owner.requestVisualUpdate()
	}
}

func (n *Node) markParentNeedsLayout() {
	n.needsLayout = true
	if n.doingThisLayoutWithCallback {
		return
	}
	n.parent.MarkNeedsLayout()
}

// MarkNeedsPaint records that this node needs to repaint. The dirt settles
// on the nearest repaint boundary; everything below it repaints together.
func (n *Node) MarkNeedsPaint() {
	if n.needsPaint {
		return
	}
	n.needsPaint = true
	if n.self.IsRepaintBoundary() && n.wasRepaintBoundary {
		if n.owner != nil {
			n.owner.nodesNeedingPaint = append(n.owner.nodesNeedingPaint, n.self)
			n.owner.requestVisualUpdate()
		}
	} else if n.parent != nil {
		n.parent.MarkNeedsPaint()
	} else if n.owner != nil {
		// Root without a layer yet; whoever drives the pipeline repaints it.
		n.owner.requestVisualUpdate()
	}
}

// MarkNeedsCompositedLayerUpdate records that a repaint boundary's
// retained layer needs its properties refreshed without repainting its
// contents.
func (n *Node) MarkNeedsCompositedLayerUpdate() {
	if n.needsCompositedLayerUpdate || n.needsPaint {
		return
	}
	n.needsCompositedLayerUpdate = true
	if n.self.IsRepaintBoundary() && n.wasRepaintBoundary {
		if n.owner != nil {
			n.owner.nodesNeedingPaint = append(n.owner.nodesNeedingPaint, n.self)
			n.owner.requestVisualUpdate()
		}
	} else {
		n.MarkNeedsPaint()
	}
}

// MarkNeedsCompositingBitsUpdate records that needsCompositing may have
// changed for this node and its ancestors up to the nearest boundary pair.
func (n *Node) MarkNeedsCompositingBitsUpdate() {
	if n.needsCompositingBitsUpdate {
		return
	}
	n.needsCompositingBitsUpdate = true
	if n.parent != nil {
		p := n.parent.node()
		if p.needsCompositingBitsUpdate {
			return
		}
		// Stable repaint boundaries stop the walk: their contribution to
		// the ancestors' compositing bits never changes.
		if (!n.wasRepaintBoundary || !n.self.IsRepaintBoundary()) && !n.parent.IsRepaintBoundary() {
			n.parent.MarkNeedsCompositingBitsUpdate()
			return
		}
	}
	if n.owner != nil {
		n.owner.nodesNeedingCompositingBitsUpdate = append(n.owner.nodesNeedingCompositingBitsUpdate, n.self)
	}
}

func (n *Node) updateCompositingBits() {
	if !n.needsCompositingBitsUpdate {
		return
	}
	oldNeedsCompositing := n.needsCompositing
	n.needsCompositing = false
	n.self.VisitChildren(func(child Object) {
		c := child.node()
		c.updateCompositingBits()
		if c.needsCompositing {
			n.needsCompositing = true
		}
	})
	if n.self.IsRepaintBoundary() || n.self.AlwaysNeedsCompositing() {
		n.needsCompositing = true
	}
	if !n.self.IsRepaintBoundary() && n.wasRepaintBoundary {
		// Demoted boundary: drop the retained layer and repaint into the
		// new enclosing boundary.
		n.needsPaint = false
		n.needsCompositedLayerUpdate = false
		n.layer = nil
		n.MarkNeedsPaint()
	} else if oldNeedsCompositing != n.needsCompositing {
		n.MarkNeedsPaint()
	}
	n.needsCompositingBitsUpdate = false
}

func (n *Node) paintWithContext(context *PaintingContext, offset Offset) {
	if n.needsLayout {
		// A dirty descendant of a detached boundary; layout will repaint.
		return
	}
	n.needsPaint = false
	n.needsCompositedLayerUpdate = false
	n.wasRepaintBoundary = n.self.IsRepaintBoundary()
	n.self.Paint(context, offset)
}

// InvokeLayoutCallback runs callback with tree mutations permitted. Only
// legal during this node's own layout; the owner merges any nodes the
// callback dirties into the current flush.
func (n *Node) InvokeLayoutCallback(callback func(constraints Constraints)) {
	if !n.performingLayout && !n.performingResize {
		panic("render: InvokeLayoutCallback outside layout")
	}
	if n.doingThisLayoutWithCallback {
		panic("render: reentrant InvokeLayoutCallback")
	}
	n.doingThisLayoutWithCallback = true
	defer func() { n.doingThisLayoutWithCallback = false }()
	if n.owner != nil {
		n.owner.enableMutationsToDirtySubtrees(func() {
			callback(n.constraints)
		})
	} else {
		callback(n.constraints)
	}
}

// GetTransformTo returns the transform mapping this node's coordinate
// space into ancestor's. A nil ancestor means the root of this node's
// tree.
func (n *Node) GetTransformTo(ancestor Object) Matrix {
	if ancestor == nil {
		for a := n.self; a != nil; a = a.Parent() {
			ancestor = a
		}
	}
	var chain []Object
	found := false
	for node := n.self; node != nil; node = node.Parent() {
		chain = append(chain, node)
		if node == ancestor {
			found = true
			break
		}
	}
	if !found {
		panic("render: GetTransformTo of a non-ancestor")
	}
	m := IdentityMatrix()
	for i := len(chain) - 1; i > 0; i-- {
		chain[i].ApplyPaintTransform(chain[i-1], &m)
	}
	return m
}

func sortByDepth(nodes []Object) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Depth() < nodes[j].Depth()
	})
}
