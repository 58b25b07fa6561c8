// Package raster replays a composited layer tree onto a fogleman/gg
// context, producing an image. It is one consumer of the render package's
// layer and display list output; the render tree itself never imports it.
package raster

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	render "github.com/grindlemire/go-render"
)

// Rasterize draws the layer tree rooted at root into a new width×height
// image with a white background.
func Rasterize(root render.Layer, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	w := &walker{dc: dc}
	w.layer(root, render.IdentityMatrix(), 1)
	return dc.Image()
}

// SavePNG rasterizes the layer tree and writes it to path.
func SavePNG(path string, root render.Layer, width, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	w := &walker{dc: dc}
	w.layer(root, render.IdentityMatrix(), 1)
	return dc.SavePNG(path)
}

// walker carries the state gg does not track for us: the accumulated
// layer transform and the stack of device-space clip rectangles. gg's
// Clip is not undone by Pop, so the stack is replayed from scratch
// whenever it shrinks.
type walker struct {
	dc    *gg.Context
	clips []render.Rect
}

func (w *walker) layer(l render.Layer, transform render.Matrix, alpha float64) {
	switch layer := l.(type) {
	case *render.TransformLayer:
		t := transform.
			Translated(layer.Offset.Dx, layer.Offset.Dy).
			Mul(layer.Transform)
		for _, child := range layer.Children() {
			w.layer(child, t, alpha)
		}
	case *render.OffsetLayer:
		t := transform.Translated(layer.Offset.Dx, layer.Offset.Dy)
		for _, child := range layer.Children() {
			w.layer(child, t, alpha)
		}
	case *render.ClipRectLayer:
		w.pushClip(transform.TransformRect(layer.ClipRect))
		for _, child := range layer.Children() {
			w.layer(child, transform, alpha)
		}
		w.popClip()
	case *render.OpacityLayer:
		childAlpha := alpha * float64(layer.Alpha) / 255
		for _, child := range layer.Children() {
			w.layer(child, transform, childAlpha)
		}
	case *render.ContainerLayer:
		for _, child := range layer.Children() {
			w.layer(child, transform, alpha)
		}
	case *render.PictureLayer:
		if layer.Picture() != nil {
			w.replay(layer.Picture(), transform, alpha)
		}
	}
}

func (w *walker) pushClip(deviceRect render.Rect) {
	w.clips = append(w.clips, deviceRect)
	w.reclip()
}

func (w *walker) popClip() {
	w.clips = w.clips[:len(w.clips)-1]
	w.reclip()
}

func (w *walker) reclip() {
	w.dc.ResetClip()
	for _, r := range w.clips {
		w.dc.Push()
		w.dc.Identity()
		w.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		w.dc.Clip()
		w.dc.Pop()
	}
}

type replayState struct {
	transform render.Matrix
	clipDepth int
}

func (w *walker) replay(list *render.DisplayList, transform render.Matrix, alpha float64) {
	m := transform
	baseClipDepth := len(w.clips)
	var stack []replayState
	for _, op := range list.Ops() {
		switch op := op.(type) {
		case render.SaveOp:
			stack = append(stack, replayState{transform: m, clipDepth: len(w.clips)})
		case render.RestoreOp:
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			m = s.transform
			if len(w.clips) != s.clipDepth {
				w.clips = w.clips[:s.clipDepth]
				w.reclip()
			}
		case render.TranslateOp:
			m = m.Translated(op.Dx, op.Dy)
		case render.TransformOp:
			m = m.Mul(op.Matrix)
		case render.ClipRectOp:
			w.pushClip(m.TransformRect(op.Rect))
		case render.DrawRectOp:
			w.drawRect(op, m, alpha)
		case render.DrawLineOp:
			w.drawLine(op, m, alpha)
		case render.DrawDisplayListOp:
			w.replay(op.List, m, alpha)
		}
	}
	// Unbalanced clips cannot escape the recording.
	if len(w.clips) != baseClipDepth {
		w.clips = w.clips[:baseClipDepth]
		w.reclip()
	}
}

func (w *walker) setPaint(p render.Paint, m render.Matrix, alpha float64) {
	r, g, b, a := p.Color.RGBA()
	af := float64(a) / 65535
	var rf, gf, bf float64
	if a > 0 {
		rf = float64(r) / float64(a)
		gf = float64(g) / float64(a)
		bf = float64(b) / float64(a)
	}
	w.dc.SetRGBA(rf, gf, bf, af*alpha)
	if p.Style == render.PaintStroke {
		width := p.StrokeWidth
		if width <= 0 {
			width = 1
		}
		w.dc.SetLineWidth(width * averageScale(m))
	}
}

func averageScale(m render.Matrix) float64 {
	sx := math.Hypot(m.XX, m.YX)
	sy := math.Hypot(m.XY, m.YY)
	return (sx + sy) / 2
}

func (w *walker) drawRect(op render.DrawRectOp, m render.Matrix, alpha float64) {
	w.setPaint(op.Paint, m, alpha)
	// Transform the corners so rotated and sheared rects stay exact.
	corners := [4]render.Offset{
		m.Apply(op.Rect.TopLeft()),
		m.Apply(render.Offset{Dx: op.Rect.Right(), Dy: op.Rect.Y}),
		m.Apply(render.Offset{Dx: op.Rect.Right(), Dy: op.Rect.Bottom()}),
		m.Apply(render.Offset{Dx: op.Rect.X, Dy: op.Rect.Bottom()}),
	}
	w.dc.MoveTo(corners[0].Dx, corners[0].Dy)
	for _, c := range corners[1:] {
		w.dc.LineTo(c.Dx, c.Dy)
	}
	w.dc.ClosePath()
	if op.Paint.Style == render.PaintStroke {
		w.dc.Stroke()
	} else {
		w.dc.Fill()
	}
}

func (w *walker) drawLine(op render.DrawLineOp, m render.Matrix, alpha float64) {
	paint := op.Paint
	paint.Style = render.PaintStroke
	w.setPaint(paint, m, alpha)
	from := m.Apply(op.From)
	to := m.Apply(op.To)
	w.dc.DrawLine(from.Dx, from.Dy, to.Dx, to.Dy)
	w.dc.Stroke()
}
