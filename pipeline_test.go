package render

import "testing"

// testBox is a box with one optional child and counters for observing
// pipeline behavior.
type testBox struct {
	Box
	child SingleChild[BoxNode]

	boundary   bool // reported by IsRepaintBoundary
	looseChild bool // lay the child out loosened and size to it
	layouts    int
	paints     int
	onLayout   func()
}

func newTestBox() *testBox {
	b := &testBox{}
	b.Init(b)
	b.child.Init(b)
	return b
}

func (b *testBox) SetChild(child BoxNode) { b.child.SetChild(child) }

func (b *testBox) VisitChildren(visitor func(Object)) { b.child.Visit(visitor) }

func (b *testBox) IsRepaintBoundary() bool { return b.boundary }

func (b *testBox) PerformLayout() {
	b.layouts++
	if b.onLayout != nil {
		b.onLayout()
	}
	c := b.BoxConstraints()
	if !b.child.HasChild() {
		b.SetSize(c.Constrain(Size{Width: 50, Height: 50}))
		return
	}
	if b.looseChild {
		b.child.Child().Layout(c.Loosen(), true)
		b.SetSize(c.Constrain(b.child.Child().Size()))
		return
	}
	b.child.Child().Layout(c, false)
	b.SetSize(c.Biggest())
}

func (b *testBox) Paint(context *PaintingContext, offset Offset) {
	b.paints++
	if b.child.HasChild() {
		context.PaintChild(b.child.Child(), offset)
	}
}

// testPair hosts two children side by side under tight constraints, making
// each child its own relayout boundary.
type testPair struct {
	Box
	left, right SingleChild[BoxNode]
}

func newTestPair(left, right BoxNode) *testPair {
	p := &testPair{}
	p.Init(p)
	p.left.Init(p)
	p.right.Init(p)
	p.left.SetChild(left)
	p.right.SetChild(right)
	return p
}

func (p *testPair) VisitChildren(visitor func(Object)) {
	p.left.Visit(visitor)
	p.right.Visit(visitor)
}

func (p *testPair) PerformLayout() {
	c := p.BoxConstraints()
	half := TightConstraintsFor(c.MaxWidth/2, c.MaxHeight)
	p.left.Child().Layout(half, false)
	p.right.Child().Layout(half, false)
	p.right.Child().ParentData().(*BoxParentData).Offset = Offset{Dx: c.MaxWidth / 2}
	p.SetSize(c.Biggest())
}

func (p *testPair) Paint(context *PaintingContext, offset Offset) {
	context.PaintChild(p.left.Child(), offset)
	context.PaintChild(p.right.Child(), offset.Add(p.right.Child().ParentData().(*BoxParentData).Offset))
}

func pumpInitialFrame(owner *PipelineOwner, view *View) {
	owner.SetRootNode(view)
	view.PrepareInitialFrame()
	owner.FlushLayout()
	owner.FlushCompositingBits()
	owner.FlushPaint()
}

func TestRelayoutBoundaryPropagation(t *testing.T) {
	owner := NewPipelineOwner()
	a := newTestBox()
	b := newTestBox()
	c := newTestBox()
	a.looseChild = true
	b.looseChild = true
	a.SetChild(b)
	b.SetChild(c)
	view := NewView(Size{Width: 100, Height: 100}, a)
	pumpInitialFrame(owner, view)

	// The view lays a out tight, so a is a boundary; b and c are laid
	// out loose with parentUsesSize and resolve to a.
	if a.relayoutBoundary != Object(a) {
		t.Fatalf("a.relayoutBoundary = %v, want a", a.relayoutBoundary)
	}
	if b.relayoutBoundary != Object(a) || c.relayoutBoundary != Object(a) {
		t.Fatal("descendants did not inherit a as their relayout boundary")
	}

	c.MarkNeedsLayout()
	if !a.needsLayout || !b.needsLayout || !c.needsLayout {
		t.Fatal("dirt did not propagate up to the boundary")
	}
	if len(owner.nodesNeedingLayout) != 1 || owner.nodesNeedingLayout[0] != Object(a) {
		t.Fatalf("layout list = %v, want just a", owner.nodesNeedingLayout)
	}

	owner.FlushLayout()
	if a.layouts != 2 || b.layouts != 2 || c.layouts != 2 {
		t.Errorf("layout counts = %d/%d/%d, want 2/2/2", a.layouts, b.layouts, c.layouts)
	}
	if a.needsLayout || b.needsLayout || c.needsLayout {
		t.Error("flush left nodes dirty")
	}
}

func TestTightChildIsItsOwnRelayoutBoundary(t *testing.T) {
	owner := NewPipelineOwner()
	a := newTestBox()
	b := newTestBox()
	a.SetChild(b) // a passes its own tight constraints through
	view := NewView(Size{Width: 100, Height: 100}, a)
	pumpInitialFrame(owner, view)

	if b.relayoutBoundary != Object(b) {
		t.Fatal("tightly constrained child should be its own boundary")
	}

	b.MarkNeedsLayout()
	if len(owner.nodesNeedingLayout) != 1 || owner.nodesNeedingLayout[0] != Object(b) {
		t.Fatalf("layout list = %v, want just b", owner.nodesNeedingLayout)
	}
	owner.FlushLayout()
	if a.layouts != 1 {
		t.Errorf("a relaid out %d times, want 1; boundary should have isolated it", a.layouts)
	}
	if b.layouts != 2 {
		t.Errorf("b.layouts = %d, want 2", b.layouts)
	}
}

func TestLayoutShortCircuitsWhenClean(t *testing.T) {
	owner := NewPipelineOwner()
	a := newTestBox()
	view := NewView(Size{Width: 100, Height: 100}, a)
	pumpInitialFrame(owner, view)

	a.Layout(TightConstraints(Size{Width: 100, Height: 100}), false)
	if a.layouts != 1 {
		t.Errorf("clean node with identical constraints relaid out; layouts = %d", a.layouts)
	}

	a.Layout(TightConstraints(Size{Width: 80, Height: 100}), false)
	if a.layouts != 2 {
		t.Errorf("changed constraints did not relayout; layouts = %d", a.layouts)
	}
}

func TestFlushLayoutProcessesNodesDirtiedDuringCallback(t *testing.T) {
	owner := NewPipelineOwner()
	left := newTestBox()
	right := newTestBox()
	pair := newTestPair(left, right)
	view := NewView(Size{Width: 100, Height: 100}, pair)
	pumpInitialFrame(owner, view)

	if left.relayoutBoundary != Object(left) || right.relayoutBoundary != Object(right) {
		t.Fatal("pair children should be their own boundaries")
	}

	left.onLayout = func() {
		left.InvokeLayoutCallback(func(Constraints) {
			right.MarkNeedsLayout()
		})
	}
	left.MarkNeedsLayout()
	owner.FlushLayout()
	left.onLayout = nil

	if right.layouts != 2 {
		t.Errorf("right.layouts = %d, want 2; node dirtied mid-flush was not processed", right.layouts)
	}
	if right.needsLayout {
		t.Error("flush left right dirty")
	}
	if pair.node().needsLayout {
		t.Error("flush left pair dirty")
	}
}

func TestRepaintBoundaryIsolation(t *testing.T) {
	owner := NewPipelineOwner()
	outer := newTestBox()
	inner := newTestBox()
	leaf := newTestBox()
	outer.boundary = true
	inner.boundary = true
	outer.SetChild(inner)
	inner.SetChild(leaf)
	view := NewView(Size{Width: 100, Height: 100}, outer)
	pumpInitialFrame(owner, view)

	if outer.paints != 1 || inner.paints != 1 || leaf.paints != 1 {
		t.Fatalf("initial paint counts = %d/%d/%d, want 1/1/1", outer.paints, inner.paints, leaf.paints)
	}
	if !outer.NeedsCompositing() {
		t.Error("outer should need compositing: it paints a boundary child")
	}
	if inner.Layer() == nil {
		t.Fatal("repaint boundary has no retained layer after the first frame")
	}

	leaf.MarkNeedsPaint()
	if len(owner.nodesNeedingPaint) != 1 || owner.nodesNeedingPaint[0] != Object(inner) {
		t.Fatalf("paint list = %v, want just inner", owner.nodesNeedingPaint)
	}
	layer := inner.Layer()
	owner.FlushPaint()

	if outer.paints != 1 {
		t.Errorf("outer repainted; boundary did not isolate the dirty subtree")
	}
	if inner.paints != 2 || leaf.paints != 2 {
		t.Errorf("paint counts = %d/%d, want 2/2", inner.paints, leaf.paints)
	}
	if inner.Layer() != layer {
		t.Error("repaint replaced the retained layer instead of reusing it")
	}
}

func TestRepaintBoundaryDemotion(t *testing.T) {
	owner := NewPipelineOwner()
	outer := newTestBox()
	inner := newTestBox()
	outer.boundary = true
	inner.boundary = true
	outer.SetChild(inner)
	view := NewView(Size{Width: 100, Height: 100}, outer)
	pumpInitialFrame(owner, view)

	inner.boundary = false
	inner.MarkNeedsCompositingBitsUpdate()
	owner.FlushCompositingBits()

	if inner.Layer() != nil {
		t.Error("demoted boundary kept its retained layer")
	}
	if !inner.needsPaint {
		t.Error("demoted boundary was not marked for repaint")
	}

	owner.FlushPaint()
	if outer.paints != 2 {
		t.Errorf("outer.paints = %d, want 2; demoted child must repaint inside its parent", outer.paints)
	}
	if inner.paints != 2 {
		t.Errorf("inner.paints = %d, want 2", inner.paints)
	}
}

func TestCompositingBitsPropagateThroughPlainAncestors(t *testing.T) {
	owner := NewPipelineOwner()
	a := newTestBox()
	b := newTestBox()
	a.SetChild(b)
	view := NewView(Size{Width: 100, Height: 100}, a)
	pumpInitialFrame(owner, view)

	if a.NeedsCompositing() || b.NeedsCompositing() {
		t.Fatal("plain chain should not need compositing before a boundary arrives")
	}

	// Boundary status is fixed at construction, so set it before Init.
	leaf := &testBox{boundary: true}
	leaf.Init(leaf)
	leaf.child.Init(leaf)
	b.SetChild(leaf)

	owner.FlushLayout()
	owner.FlushCompositingBits()
	owner.FlushPaint()

	if !b.NeedsCompositing() {
		t.Error("parent of a new repaint boundary lost its compositing bit")
	}
	if !a.NeedsCompositing() {
		t.Error("grandparent of a new repaint boundary lost its compositing bit")
	}
	if leaf.Layer() == nil {
		t.Error("new repaint boundary has no retained layer after the frame")
	}
}

func TestAttachReregistersDirtyNodes(t *testing.T) {
	owner := NewPipelineOwner()
	a := newTestBox()
	b := newTestBox()
	a.looseChild = true
	a.SetChild(b)
	view := NewView(Size{Width: 100, Height: 100}, a)
	pumpInitialFrame(owner, view)

	owner.SetRootNode(nil)
	if view.Attached() {
		t.Fatal("view still attached after the root was cleared")
	}

	b.MarkNeedsLayout()
	if len(owner.nodesNeedingLayout) != 0 {
		t.Fatal("detached node registered work with the owner")
	}

	owner.SetRootNode(view)
	if len(owner.nodesNeedingLayout) != 1 || owner.nodesNeedingLayout[0] != Object(a) {
		t.Fatalf("layout list after reattach = %v, want just a", owner.nodesNeedingLayout)
	}
	owner.FlushLayout()
	if a.layouts != 2 || b.layouts != 2 {
		t.Errorf("layout counts = %d/%d, want 2/2", a.layouts, b.layouts)
	}
}

func TestAdoptChildRedepths(t *testing.T) {
	a := newTestBox()
	b := newTestBox()
	c := newTestBox()
	a.SetChild(b)
	b.SetChild(c)
	if a.Depth() != 0 || b.Depth() != 1 || c.Depth() != 2 {
		t.Fatalf("depths = %d/%d/%d, want 0/1/2", a.Depth(), b.Depth(), c.Depth())
	}

	root := newTestBox()
	root.SetChild(a)
	if a.Depth() != 1 || b.Depth() != 2 || c.Depth() != 3 {
		t.Errorf("depths after adoption = %d/%d/%d, want 1/2/3", a.Depth(), b.Depth(), c.Depth())
	}
}

func TestGetTransformTo(t *testing.T) {
	owner := NewPipelineOwner()
	leaf := NewSizedBox(Size{Width: 20, Height: 20})
	padding := NewPaddingBox(InsetsAll(8), leaf)
	view := NewView(Size{Width: 100, Height: 100}, padding)
	pumpInitialFrame(owner, view)

	got := leaf.GetTransformTo(view).Apply(Offset{Dx: 1, Dy: 2})
	if !offsetsClose(got, Offset{Dx: 9, Dy: 10}) {
		t.Errorf("leaf origin maps to %v in view space, want (9, 10)", got)
	}

	global := leaf.LocalToGlobal(Offset{}, view)
	if !offsetsClose(global, Offset{Dx: 8, Dy: 8}) {
		t.Errorf("LocalToGlobal = %v, want (8, 8)", global)
	}
	local := leaf.GlobalToLocal(Offset{Dx: 8, Dy: 8}, view)
	if !offsetsClose(local, Offset{}) {
		t.Errorf("GlobalToLocal = %v, want (0, 0)", local)
	}

	t.Run("non-ancestor panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		view.GetTransformTo(leaf)
	})
}

func TestEnableMutationsOutsideFlushPanics(t *testing.T) {
	owner := NewPipelineOwner()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	owner.enableMutationsToDirtySubtrees(func() {})
}
