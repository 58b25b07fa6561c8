package render

import "testing"

func TestViewPrepareInitialFrame(t *testing.T) {
	owner := NewPipelineOwner()
	view := NewView(Size{Width: 100, Height: 100}, NewSizedBox(Size{Width: 50, Height: 50}))
	pumpInitialFrame(owner, view)

	if got := view.Size(); got != (Size{Width: 100, Height: 100}) {
		t.Errorf("view size = %v, want its configuration", got)
	}
	if view.Scene() == nil {
		t.Fatal("no retained scene after the first frame")
	}
	if view.CompositeFrame() != view.Scene() {
		t.Error("CompositeFrame should return the retained root layer")
	}

	t.Run("second prepare panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		view.PrepareInitialFrame()
	})
}

func TestViewPrepareDetachedPanics(t *testing.T) {
	view := NewView(Size{Width: 100, Height: 100}, nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	view.PrepareInitialFrame()
}

func TestViewConfigurationChange(t *testing.T) {
	owner := NewPipelineOwner()
	box := newTestBox()
	view := NewView(Size{Width: 100, Height: 100}, box)
	pumpInitialFrame(owner, view)

	view.SetConfiguration(Size{Width: 200, Height: 50})
	owner.FlushLayout()
	if got := view.Size(); got != (Size{Width: 200, Height: 50}) {
		t.Errorf("view size = %v, want the new configuration", got)
	}
	if got := box.Size(); got != (Size{Width: 200, Height: 50}) {
		t.Errorf("child size = %v, want the new configuration", got)
	}
}
