package render

import (
	"image/color"
	"math"
	"testing"
)

// correctingSliver issues scroll offset corrections for its first few
// layouts, then settles into a fixed-extent sliver.
type correctingSliver struct {
	Sliver
	extent      float64
	corrections int
	correctBy   float64
	layouts     int
}

func newCorrectingSliver(extent float64, corrections int, correctBy float64) *correctingSliver {
	s := &correctingSliver{extent: extent, corrections: corrections, correctBy: correctBy}
	s.Init(s)
	return s
}

func (s *correctingSliver) PerformLayout() {
	s.layouts++
	if s.corrections > 0 {
		s.corrections--
		s.SetGeometry(SliverGeometry{ScrollOffsetCorrection: s.correctBy})
		return
	}
	c := s.SliverConstraints()
	paint := c.CalculatePaintOffset(0, s.extent)
	s.SetGeometry(SliverGeometry{
		ScrollExtent:   s.extent,
		PaintExtent:    paint,
		LayoutExtent:   paint,
		CacheExtent:    c.CalculateCacheOffset(0, s.extent),
		MaxPaintExtent: s.extent,
		HitTestExtent:  paint,
		Visible:        paint > 0,
	})
}

func scrollViewFixture(t *testing.T, pixels float64, heights ...float64) (*PipelineOwner, *ClampingViewportOffset, *Viewport, []*SliverToBoxAdapter) {
	t.Helper()
	owner := NewPipelineOwner()
	offset := NewClampingViewportOffset(pixels)
	vp := NewViewport(offset)
	var slivers []*SliverToBoxAdapter
	for _, h := range heights {
		s := NewSliverToBoxAdapter(NewSizedBox(Size{Width: 100, Height: h}))
		vp.Add(s)
		slivers = append(slivers, s)
	}
	view := NewView(Size{Width: 100, Height: 120}, vp)
	pumpInitialFrame(owner, view)
	return owner, offset, vp, slivers
}

func TestViewportLayout(t *testing.T) {
	owner, offset, vp, slivers := scrollViewFixture(t, 80, 100, 50, 200)

	if got := vp.Size(); got != (Size{Width: 100, Height: 120}) {
		t.Fatalf("viewport size = %v, want 100x120", got)
	}

	wantPaint := []float64{20, 50, 50}
	wantOffset := []float64{0, 20, 70}
	for i, s := range slivers {
		g := s.Geometry()
		if g.PaintExtent != wantPaint[i] {
			t.Errorf("sliver %d paintExtent = %g, want %g", i, g.PaintExtent, wantPaint[i])
		}
		pd := s.ParentData().(*SliverPhysicalContainerParentData)
		if pd.PaintOffset.Dy != wantOffset[i] {
			t.Errorf("sliver %d paint offset = %v, want Dy %g", i, pd.PaintOffset, wantOffset[i])
		}
		if g.ScrollOffsetCorrection != 0 {
			t.Errorf("sliver %d left a correction in its geometry", i)
		}
	}
	if g := slivers[0].Geometry(); !g.HasVisualOverflow {
		t.Error("partially scrolled-off sliver should report visual overflow")
	}

	if vp.MinScrollExtent() != 0 || vp.MaxScrollExtent() != 350 {
		t.Errorf("content extents = [%g, %g], want [0, 350]", vp.MinScrollExtent(), vp.MaxScrollExtent())
	}
	if offset.MaxScrollExtent() != 230 {
		t.Errorf("offset max scroll extent = %g, want 350 - 120 = 230", offset.MaxScrollExtent())
	}
	if offset.Pixels() != 80 {
		t.Errorf("pixels = %g, want 80 untouched", offset.Pixels())
	}

	// Jumping past the end clamps, and the next layout shows the tail.
	offset.JumpTo(240)
	if offset.Pixels() != 230 {
		t.Fatalf("pixels after overscrolled jump = %g, want 230", offset.Pixels())
	}
	vp.MarkNeedsLayout()
	owner.FlushLayout()

	if g := slivers[0].Geometry(); g.Visible || g.PaintExtent != 0 {
		t.Errorf("scrolled-off sliver geometry = %+v, want invisible with no paint extent", g)
	}
	if g := slivers[2].Geometry(); g.PaintExtent != 120 {
		t.Errorf("tail sliver paintExtent = %g, want 120", g.PaintExtent)
	}
	pd := slivers[2].ParentData().(*SliverPhysicalContainerParentData)
	if pd.PaintOffset.Dy != 0 {
		t.Errorf("tail sliver paint offset = %v, want Dy 0", pd.PaintOffset)
	}
}

func TestViewportEmpty(t *testing.T) {
	owner := NewPipelineOwner()
	offset := NewClampingViewportOffset(0)
	vp := NewViewport(offset)
	view := NewView(Size{Width: 100, Height: 120}, vp)
	pumpInitialFrame(owner, view)

	if got := vp.Size(); got != (Size{Width: 100, Height: 120}) {
		t.Errorf("empty viewport size = %v, want the full 100x120", got)
	}
	if offset.MaxScrollExtent() != 0 {
		t.Errorf("empty viewport max scroll extent = %g, want 0", offset.MaxScrollExtent())
	}
}

func TestViewportParallelAxesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewViewport(NewFixedViewportOffset(0), WithCrossAxisDirection(Up))
}

func TestViewportScrollOffsetCorrection(t *testing.T) {
	owner := NewPipelineOwner()
	offset := NewFixedViewportOffset(0)
	vp := NewViewport(offset)
	s := newCorrectingSliver(100, 1, 30)
	vp.Add(s)
	view := NewView(Size{Width: 100, Height: 120}, vp)
	pumpInitialFrame(owner, view)

	if offset.Pixels() != 30 {
		t.Errorf("pixels = %g, want the 30 unit correction applied", offset.Pixels())
	}
	if s.layouts != 2 {
		t.Errorf("sliver laid out %d times, want 2", s.layouts)
	}
	if got := s.Geometry().PaintExtent; got != 70 {
		t.Errorf("paintExtent = %g, want 100 - 30 = 70", got)
	}
}

func TestViewportCorrectionLoopPanics(t *testing.T) {
	owner := NewPipelineOwner()
	vp := NewViewport(NewFixedViewportOffset(0))
	vp.Add(newCorrectingSliver(100, math.MaxInt32, 30))
	view := NewView(Size{Width: 100, Height: 120}, vp)
	owner.SetRootNode(view)
	view.PrepareInitialFrame()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	owner.FlushLayout()
}

func TestViewportHitTestTransforms(t *testing.T) {
	owner := NewPipelineOwner()
	offset := NewClampingViewportOffset(80)
	vp := NewViewport(offset)
	heights := []float64{100, 50, 200}
	var boxes []*ColoredBox
	for _, h := range heights {
		box := NewColoredBox(color.White, NewSizedBox(Size{Width: 100, Height: h}))
		boxes = append(boxes, box)
		vp.Add(NewSliverToBoxAdapter(box))
	}
	view := NewView(Size{Width: 100, Height: 120}, vp)
	pumpInitialFrame(owner, view)

	// (50, 30) lands in the second sliver, 10 past its leading edge.
	result := NewBoxHitTestResult()
	if !view.HitTest(result, Offset{Dx: 50, Dy: 30}) {
		t.Fatal("expected hit")
	}
	entry := result.Path()[0].(*BoxHitTestEntry)
	if entry.Target() != Object(boxes[1]) {
		t.Fatalf("hit %v, want the second box", entry.Target())
	}
	if !offsetsClose(entry.LocalPosition, Offset{Dx: 50, Dy: 10}) {
		t.Errorf("local position = %v, want (50, 10)", entry.LocalPosition)
	}
	if got := entry.Transform().Apply(Offset{Dx: 50, Dy: 30}); !offsetsClose(got, Offset{Dx: 50, Dy: 10}) {
		t.Errorf("entry transform maps the hit to %v, want (50, 10)", got)
	}
	sliverEntry := result.Path()[1].(*SliverHitTestEntry)
	if sliverEntry.MainAxisPosition != 10 || sliverEntry.CrossAxisPosition != 50 {
		t.Errorf("sliver entry at (%g, %g), want (10, 50)",
			sliverEntry.MainAxisPosition, sliverEntry.CrossAxisPosition)
	}

	// (50, 10) lands in the first sliver, whose content is scrolled 80 up:
	// the box-local position accounts for the hidden part.
	result = NewBoxHitTestResult()
	if !view.HitTest(result, Offset{Dx: 50, Dy: 10}) {
		t.Fatal("expected hit")
	}
	entry = result.Path()[0].(*BoxHitTestEntry)
	if entry.Target() != Object(boxes[0]) {
		t.Fatalf("hit %v, want the first box", entry.Target())
	}
	if !offsetsClose(entry.LocalPosition, Offset{Dx: 50, Dy: 90}) {
		t.Errorf("local position = %v, want (50, 90)", entry.LocalPosition)
	}
}

func TestViewportOffsetToReveal(t *testing.T) {
	owner := NewPipelineOwner()
	offset := NewClampingViewportOffset(0)
	vp := NewViewport(offset)
	heights := []float64{100, 50, 200}
	var boxes []*ColoredBox
	for _, h := range heights {
		box := NewColoredBox(color.White, NewSizedBox(Size{Width: 100, Height: h}))
		boxes = append(boxes, box)
		vp.Add(NewSliverToBoxAdapter(box))
	}
	view := NewView(Size{Width: 100, Height: 120}, vp)
	pumpInitialFrame(owner, view)

	tests := map[string]struct {
		alignment  float64
		wantOffset float64
		wantTop    float64
	}{
		"leading edge":  {0, 100, 0},
		"trailing edge": {1, 30, 70},
		"centered":      {0.5, 65, 35},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			revealed := vp.OffsetToReveal(boxes[1], tt.alignment, nil)
			if revealed.Offset != tt.wantOffset {
				t.Errorf("offset = %g, want %g", revealed.Offset, tt.wantOffset)
			}
			if !offsetsClose(revealed.Rect.TopLeft(), (Offset{Dy: tt.wantTop})) {
				t.Errorf("rect = %v, want top at %g", revealed.Rect, tt.wantTop)
			}
		})
	}

	t.Run("non-descendant panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		vp.OffsetToReveal(NewSizedBox(Size{Width: 1, Height: 1}), 0, nil)
	})
}

func TestShrinkWrappingViewport(t *testing.T) {
	offset := NewFixedViewportOffset(0)
	sv := NewShrinkWrappingViewport(offset)
	first := NewSliverToBoxAdapter(NewSizedBox(Size{Width: 100, Height: 30}))
	second := NewSliverToBoxAdapter(NewSizedBox(Size{Width: 100, Height: 50}))
	sv.Add(first)
	sv.Add(second)

	sv.Layout(BoxConstraints{MaxWidth: 100, MaxHeight: 500}, true)

	if got := sv.Size(); got != (Size{Width: 100, Height: 80}) {
		t.Errorf("size = %v, want shrink-wrapped 100x80", got)
	}
	if sv.MaxScrollExtent() != 80 {
		t.Errorf("maxScrollExtent = %g, want 80", sv.MaxScrollExtent())
	}
	if g := first.Geometry(); g.PaintExtent != 30 {
		t.Errorf("first paintExtent = %g, want 30", g.PaintExtent)
	}
	if pd := second.ParentData().(*SliverLogicalContainerParentData); pd.LayoutOffset != 30 {
		t.Errorf("second layout offset = %g, want 30", pd.LayoutOffset)
	}
}

func TestShrinkWrappingViewportCapped(t *testing.T) {
	offset := NewClampingViewportOffset(0)
	sv := NewShrinkWrappingViewport(offset)
	sv.Add(NewSliverToBoxAdapter(NewSizedBox(Size{Width: 100, Height: 30})))
	second := NewSliverToBoxAdapter(NewSizedBox(Size{Width: 100, Height: 50}))
	sv.Add(second)

	sv.Layout(BoxConstraints{MaxWidth: 100, MaxHeight: 60}, true)

	if got := sv.Size(); got != (Size{Width: 100, Height: 60}) {
		t.Errorf("size = %v, want capped at 100x60", got)
	}
	if offset.MaxScrollExtent() != 20 {
		t.Errorf("offset max scroll extent = %g, want 80 - 60 = 20", offset.MaxScrollExtent())
	}
	if g := second.Geometry(); g.PaintExtent != 30 {
		t.Errorf("second paintExtent = %g, want the 30 that fits", g.PaintExtent)
	}
}

func TestShrinkWrappingViewportUnboundedCrossAxisPanics(t *testing.T) {
	sv := NewShrinkWrappingViewport(NewFixedViewportOffset(0))
	sv.Add(NewSliverToBoxAdapter(NewSizedBox(Size{Width: 100, Height: 30})))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	sv.Layout(BoxConstraints{MaxWidth: math.Inf(1), MaxHeight: 200}, true)
}
