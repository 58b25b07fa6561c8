package raster

import (
	"image"
	"image/color"
	"testing"

	render "github.com/grindlemire/go-render"
)

func pump(owner *render.PipelineOwner, view *render.View) image.Image {
	owner.SetRootNode(view)
	view.PrepareInitialFrame()
	owner.FlushLayout()
	owner.FlushCompositingBits()
	owner.FlushPaint()
	return Rasterize(view.CompositeFrame(), 100, 100)
}

func pixelAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestRasterizePaintedBox(t *testing.T) {
	owner := render.NewPipelineOwner()
	box := render.NewColoredBox(red, render.NewSizedBox(render.Size{Width: 50, Height: 50}))
	padding := render.NewPaddingBox(render.InsetsAll(10), box)
	view := render.NewView(render.Size{Width: 100, Height: 100}, padding)
	img := pump(owner, view)

	if got := img.Bounds().Size(); got != (image.Point{X: 100, Y: 100}) {
		t.Fatalf("image size = %v, want 100x100", got)
	}

	tests := map[string]struct {
		x, y int
		want color.RGBA
	}{
		"inside fill":       {30, 30, red},
		"padding band":      {5, 5, white},
		"right of the fill": {95, 30, white},
		"below the fill":    {30, 95, white},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := pixelAt(img, tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRasterizeScrolledViewport(t *testing.T) {
	owner := render.NewPipelineOwner()
	offset := render.NewClampingViewportOffset(80)
	vp := render.NewViewport(offset)
	for _, c := range []color.RGBA{red, blue} {
		vp.Add(render.NewSliverToBoxAdapter(
			render.NewColoredBox(c, render.NewSizedBox(render.Size{Width: 60, Height: 100}))))
	}
	padding := render.NewPaddingBox(render.InsetsAll(20), vp)
	view := render.NewView(render.Size{Width: 100, Height: 100}, padding)
	img := pump(owner, view)

	// The 60x60 viewport sits at (20, 20), scrolled 80 into 200 units of
	// content: 20 units of red remain, then 40 of blue.
	tests := map[string]struct {
		x, y int
		want color.RGBA
	}{
		"remaining red":        {50, 30, red},
		"blue below it":        {50, 60, blue},
		"outside the viewport": {50, 85, white},
		"left margin":          {10, 50, white},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := pixelAt(img, tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRasterizeRepaintReusesScene(t *testing.T) {
	owner := render.NewPipelineOwner()
	box := render.NewColoredBox(red, render.NewSizedBox(render.Size{Width: 50, Height: 50}))
	view := render.NewView(render.Size{Width: 100, Height: 100}, box)
	img := pump(owner, view)
	if got := pixelAt(img, 25, 25); got != red {
		t.Fatalf("pixel (25, 25) = %v, want red", got)
	}

	box.SetColor(blue)
	owner.FlushLayout()
	owner.FlushCompositingBits()
	owner.FlushPaint()
	img = Rasterize(view.CompositeFrame(), 100, 100)
	if got := pixelAt(img, 25, 25); got != blue {
		t.Errorf("pixel (25, 25) after recolor = %v, want blue", got)
	}
}
