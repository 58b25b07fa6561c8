package render

// PipelineOwner drives the rendering pipeline over one render tree. Each
// frame runs FlushLayout, FlushCompositingBits, then FlushPaint; each
// flush drains its dirty list in depth order so a node is processed at
// most once per phase.
type PipelineOwner struct {
	onNeedVisualUpdate func()
	rootNode           Object

	nodesNeedingLayout                []Object
	nodesNeedingCompositingBitsUpdate []Object
	nodesNeedingPaint                 []Object

	doingLayout           bool
	allowMutations        bool
	shouldMergeDirtyNodes bool
}

// PipelineOwnerOption configures a PipelineOwner.
type PipelineOwnerOption func(*PipelineOwner)

// WithOnNeedVisualUpdate registers a callback fired whenever the tree
// becomes dirty, so the embedder can schedule a frame.
func WithOnNeedVisualUpdate(fn func()) PipelineOwnerOption {
	return func(o *PipelineOwner) {
		o.onNeedVisualUpdate = fn
	}
}

// NewPipelineOwner creates a pipeline owner.
func NewPipelineOwner(opts ...PipelineOwnerOption) *PipelineOwner {
	o := &PipelineOwner{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RootNode returns the tree's root, or nil.
func (o *PipelineOwner) RootNode() Object { return o.rootNode }

// SetRootNode attaches root as the tree driven by this owner, detaching
// any previous root.
func (o *PipelineOwner) SetRootNode(root Object) {
	if o.rootNode == root {
		return
	}
	if o.rootNode != nil {
		o.rootNode.Detach()
	}
	o.rootNode = root
	if root != nil {
		root.Attach(o)
	}
}

func (o *PipelineOwner) requestVisualUpdate() {
	if o.onNeedVisualUpdate != nil {
		o.onNeedVisualUpdate()
	}
}

// FlushLayout lays out every dirty relayout boundary, parents before
// children. Layout of one node may dirty others; the loop runs until the
// list reaches a fixed point.
func (o *PipelineOwner) FlushLayout() {
	o.doingLayout = true
	defer func() { o.doingLayout = false }()
	for len(o.nodesNeedingLayout) > 0 {
		dirty := o.nodesNeedingLayout
		o.nodesNeedingLayout = nil
		sortByDepth(dirty)
		for i, obj := range dirty {
			if o.shouldMergeDirtyNodes {
				// A layout callback mutated the tree; fold the new dirty
				// nodes in with the rest of this batch and re-sort.
				o.shouldMergeDirtyNodes = false
				if len(o.nodesNeedingLayout) > 0 {
					o.nodesNeedingLayout = append(o.nodesNeedingLayout, dirty[i:]...)
					break
				}
			}
			n := obj.node()
			if n.needsLayout && n.owner == o {
				n.layoutWithoutResize()
			}
		}
		o.shouldMergeDirtyNodes = false
	}
}

func (o *PipelineOwner) enableMutationsToDirtySubtrees(fn func()) {
	if !o.doingLayout {
		panic("render: enableMutationsToDirtySubtrees outside FlushLayout")
	}
	prev := o.allowMutations
	o.allowMutations = true
	defer func() {
		o.allowMutations = prev
		o.shouldMergeDirtyNodes = true
	}()
	fn()
}

// FlushCompositingBits recomputes needsCompositing for every node marked
// since the last flush. Runs after layout and before paint.
func (o *PipelineOwner) FlushCompositingBits() {
	dirty := o.nodesNeedingCompositingBitsUpdate
	o.nodesNeedingCompositingBitsUpdate = nil
	sortByDepth(dirty)
	for _, obj := range dirty {
		n := obj.node()
		if n.needsCompositingBitsUpdate && n.owner == o {
			n.updateCompositingBits()
		}
	}
}

// FlushPaint repaints every dirty repaint boundary, parents before
// children so a repainting ancestor that reaches a still-dirty descendant
// boundary can skip it and reuse its retained layer.
func (o *PipelineOwner) FlushPaint() {
	dirty := o.nodesNeedingPaint
	o.nodesNeedingPaint = nil
	sortByDepth(dirty)
	for _, obj := range dirty {
		n := obj.node()
		if !(n.needsPaint || n.needsCompositedLayerUpdate) || n.owner != o {
			continue
		}
		if n.layer == nil {
			// Boundary never painted, or demoted; an ancestor repaint
			// will reach it.
			continue
		}
		if n.needsPaint {
			RepaintCompositedChild(obj)
		} else {
			updateLayerProperties(obj)
		}
	}
}
