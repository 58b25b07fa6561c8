package render

import (
	"image/color"
	"testing"
)

type countingIntrinsicsBox struct {
	Box
	computes int
}

func newCountingIntrinsicsBox() *countingIntrinsicsBox {
	b := &countingIntrinsicsBox{}
	b.Init(b)
	return b
}

func (b *countingIntrinsicsBox) ComputeMaxIntrinsicWidth(height float64) float64 {
	b.computes++
	return 42
}

func TestIntrinsicsMemoized(t *testing.T) {
	b := newCountingIntrinsicsBox()

	if got := b.GetMaxIntrinsicWidth(100); got != 42 {
		t.Fatalf("GetMaxIntrinsicWidth = %g, want 42", got)
	}
	b.GetMaxIntrinsicWidth(100)
	if b.computes != 1 {
		t.Errorf("computes = %d after repeated query, want 1", b.computes)
	}

	// A different argument is a different cache entry.
	b.GetMaxIntrinsicWidth(200)
	if b.computes != 2 {
		t.Errorf("computes = %d after new argument, want 2", b.computes)
	}

	b.MarkNeedsLayout()
	b.GetMaxIntrinsicWidth(100)
	if b.computes != 3 {
		t.Errorf("computes = %d after invalidation, want 3", b.computes)
	}
}

func TestIntrinsicsNegativeArgumentPanics(t *testing.T) {
	b := newCountingIntrinsicsBox()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	b.GetMaxIntrinsicWidth(-1)
}

func TestBoxHitTestBounds(t *testing.T) {
	box := NewColoredBox(color.White, NewSizedBox(Size{Width: 50, Height: 50}))
	box.Layout(LooseConstraints(Size{Width: 100, Height: 100}), false)

	tests := map[string]struct {
		position Offset
		hit      bool
	}{
		"inside":            {Offset{Dx: 10, Dy: 10}, true},
		"top left corner":   {Offset{Dx: 0, Dy: 0}, true},
		"right of box":      {Offset{Dx: 60, Dy: 10}, false},
		"below box":         {Offset{Dx: 10, Dy: 60}, false},
		"on trailing edge":  {Offset{Dx: 50, Dy: 10}, false},
		"negative position": {Offset{Dx: -1, Dy: 10}, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result := NewBoxHitTestResult()
			if got := box.HitTest(result, tt.position); got != tt.hit {
				t.Fatalf("HitTest(%v) = %v, want %v", tt.position, got, tt.hit)
			}
			if tt.hit && len(result.Path()) == 0 {
				t.Error("hit recorded no entries")
			}
			if !tt.hit && len(result.Path()) != 0 {
				t.Errorf("miss recorded entries: %v", result.Path())
			}
		})
	}
}

func TestHitTestBeforeLayoutPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewSizedBox(Size{Width: 10, Height: 10}).HitTest(NewBoxHitTestResult(), Offset{})
}

func TestSetSizeOutsideLayoutPanics(t *testing.T) {
	b := newTestBox()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	b.SetSize(Size{Width: 10, Height: 10})
}

func TestPaddingBoxLayoutAndIntrinsics(t *testing.T) {
	leaf := NewSizedBox(Size{Width: 20, Height: 30})
	padding := NewPaddingBox(Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}, leaf)
	padding.Layout(LooseConstraints(Size{Width: 100, Height: 100}), false)

	if got := padding.Size(); got != (Size{Width: 26, Height: 34}) {
		t.Errorf("size = %v, want 26x34", got)
	}
	if got := leaf.ParentData().(*BoxParentData).Offset; got != (Offset{Dx: 4, Dy: 1}) {
		t.Errorf("child offset = %v, want (4, 1)", got)
	}
	if got := padding.GetMaxIntrinsicWidth(34); got != 26 {
		t.Errorf("GetMaxIntrinsicWidth = %g, want 26", got)
	}
	if got := padding.GetMinIntrinsicHeight(26); got != 34 {
		t.Errorf("GetMinIntrinsicHeight = %g, want 34", got)
	}
}

func TestViewHitTestPath(t *testing.T) {
	owner := NewPipelineOwner()
	leaf := NewColoredBox(color.White, NewSizedBox(Size{Width: 20, Height: 20}))
	padding := NewPaddingBox(InsetsAll(10), leaf)
	view := NewView(Size{Width: 100, Height: 100}, padding)
	pumpInitialFrame(owner, view)

	result := NewBoxHitTestResult()
	if !view.HitTest(result, Offset{Dx: 15, Dy: 15}) {
		t.Fatal("expected hit inside the padded child")
	}

	// Innermost first, view always last.
	path := result.Path()
	if path[0].Target() != Object(leaf) {
		t.Errorf("path[0] = %T, want the colored box", path[0].Target())
	}
	if path[len(path)-1].Target() != Object(view) {
		t.Errorf("path tail = %T, want the view", path[len(path)-1].Target())
	}

	// The leaf entry's transform maps view coordinates into leaf space.
	entry := path[0].(*BoxHitTestEntry)
	if !offsetsClose(entry.LocalPosition, Offset{Dx: 5, Dy: 5}) {
		t.Errorf("leaf local position = %v, want (5, 5)", entry.LocalPosition)
	}
	got := entry.Transform().Apply(Offset{Dx: 15, Dy: 15})
	if !offsetsClose(got, Offset{Dx: 5, Dy: 5}) {
		t.Errorf("leaf transform maps (15, 15) to %v, want (5, 5)", got)
	}

	// A point in the padding band hits nothing but the view.
	result = NewBoxHitTestResult()
	if !view.HitTest(result, Offset{Dx: 5, Dy: 5}) {
		t.Fatal("view should report itself for any in-bounds point")
	}
	if len(result.Path()) != 1 || result.Path()[0].Target() != Object(view) {
		t.Errorf("padding band path = %v, want just the view", result.Path())
	}
}
