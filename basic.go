package render

import (
	"image/color"
	"math"
)

// SizedBox is a box with a preferred size, constrained to whatever its
// parent allows. It draws nothing.
type SizedBox struct {
	Box
	preferred Size
}

// NewSizedBox creates a box preferring the given size.
func NewSizedBox(preferred Size) *SizedBox {
	b := &SizedBox{preferred: preferred}
	b.Init(b)
	return b
}

// Preferred returns the size the box asks for.
func (b *SizedBox) Preferred() Size { return b.preferred }

// SetPreferred changes the size the box asks for.
func (b *SizedBox) SetPreferred(size Size) {
	if b.preferred == size {
		return
	}
	b.preferred = size
	b.MarkNeedsLayout()
}

// PerformLayout implements Object.
func (b *SizedBox) PerformLayout() {
	b.SetSize(b.BoxConstraints().Constrain(b.preferred))
}

// ComputeMinIntrinsicWidth implements BoxNode.
func (b *SizedBox) ComputeMinIntrinsicWidth(height float64) float64 { return b.preferred.Width }

// ComputeMaxIntrinsicWidth implements BoxNode.
func (b *SizedBox) ComputeMaxIntrinsicWidth(height float64) float64 { return b.preferred.Width }

// ComputeMinIntrinsicHeight implements BoxNode.
func (b *SizedBox) ComputeMinIntrinsicHeight(width float64) float64 { return b.preferred.Height }

// ComputeMaxIntrinsicHeight implements BoxNode.
func (b *SizedBox) ComputeMaxIntrinsicHeight(width float64) float64 { return b.preferred.Height }

// ColoredBox fills its bounds with a solid color behind an optional
// child. With a child it takes the child's size; without one it takes the
// smallest size allowed.
type ColoredBox struct {
	Box
	child SingleChild[BoxNode]
	color color.Color
}

// NewColoredBox creates a colored box. child may be nil.
func NewColoredBox(c color.Color, child BoxNode) *ColoredBox {
	b := &ColoredBox{color: c}
	b.Init(b)
	b.child.Init(b)
	if child != nil {
		b.child.SetChild(child)
	}
	return b
}

// Color returns the fill color.
func (b *ColoredBox) Color() color.Color { return b.color }

// SetColor changes the fill color. Only the paint phase reruns.
func (b *ColoredBox) SetColor(c color.Color) {
	if b.color == c {
		return
	}
	b.color = c
	b.MarkNeedsPaint()
}

// Child returns the wrapped child, or nil.
func (b *ColoredBox) Child() BoxNode { return b.child.Child() }

// SetChild replaces the wrapped child.
func (b *ColoredBox) SetChild(child BoxNode) { b.child.SetChild(child) }

// VisitChildren implements Object.
func (b *ColoredBox) VisitChildren(visitor func(Object)) {
	b.child.Visit(visitor)
}

// PerformLayout implements Object.
func (b *ColoredBox) PerformLayout() {
	c := b.BoxConstraints()
	if b.child.HasChild() {
		child := b.child.Child()
		child.Layout(c, true)
		b.SetSize(child.Size())
		return
	}
	b.SetSize(c.Smallest())
}

// ComputeMinIntrinsicWidth implements BoxNode.
func (b *ColoredBox) ComputeMinIntrinsicWidth(height float64) float64 {
	if b.child.HasChild() {
		return b.child.Child().GetMinIntrinsicWidth(height)
	}
	return 0
}

// ComputeMaxIntrinsicWidth implements BoxNode.
func (b *ColoredBox) ComputeMaxIntrinsicWidth(height float64) float64 {
	if b.child.HasChild() {
		return b.child.Child().GetMaxIntrinsicWidth(height)
	}
	return 0
}

// ComputeMinIntrinsicHeight implements BoxNode.
func (b *ColoredBox) ComputeMinIntrinsicHeight(width float64) float64 {
	if b.child.HasChild() {
		return b.child.Child().GetMinIntrinsicHeight(width)
	}
	return 0
}

// ComputeMaxIntrinsicHeight implements BoxNode.
func (b *ColoredBox) ComputeMaxIntrinsicHeight(width float64) float64 {
	if b.child.HasChild() {
		return b.child.Child().GetMaxIntrinsicHeight(width)
	}
	return 0
}

// HitTestSelf is true: the fill is opaque to hits.
func (b *ColoredBox) HitTestSelf(position Offset) bool { return true }

// HitTestChildren implements BoxNode.
func (b *ColoredBox) HitTestChildren(result *BoxHitTestResult, position Offset) bool {
	if !b.child.HasChild() {
		return false
	}
	return b.child.Child().HitTest(result, position)
}

// Paint implements Object.
func (b *ColoredBox) Paint(context *PaintingContext, offset Offset) {
	if !b.Size().IsEmpty() {
		context.Canvas().DrawRect(RectFromSize(b.Size()).Shift(offset), Paint{Color: b.color})
	}
	if b.child.HasChild() {
		context.PaintChild(b.child.Child(), offset)
	}
}

// PaddingBox insets its child on all four sides.
type PaddingBox struct {
	Box
	child   SingleChild[BoxNode]
	padding Insets
}

// NewPaddingBox creates a padded wrapper around child. child may be nil.
func NewPaddingBox(padding Insets, child BoxNode) *PaddingBox {
	b := &PaddingBox{padding: padding}
	b.Init(b)
	b.child.Init(b)
	if child != nil {
		b.child.SetChild(child)
	}
	return b
}

// Padding returns the insets applied around the child.
func (b *PaddingBox) Padding() Insets { return b.padding }

// SetPadding changes the insets.
func (b *PaddingBox) SetPadding(padding Insets) {
	if b.padding == padding {
		return
	}
	b.padding = padding
	b.MarkNeedsLayout()
}

// Child returns the wrapped child, or nil.
func (b *PaddingBox) Child() BoxNode { return b.child.Child() }

// SetChild replaces the wrapped child.
func (b *PaddingBox) SetChild(child BoxNode) { b.child.SetChild(child) }

// VisitChildren implements Object.
func (b *PaddingBox) VisitChildren(visitor func(Object)) {
	b.child.Visit(visitor)
}

// PerformLayout implements Object.
func (b *PaddingBox) PerformLayout() {
	c := b.BoxConstraints()
	if !b.child.HasChild() {
		b.SetSize(c.Constrain(Size{
			Width:  b.padding.Horizontal(),
			Height: b.padding.Vertical(),
		}))
		return
	}
	child := b.child.Child()
	child.Layout(c.Deflate(b.padding), true)
	pd := child.ParentData().(*BoxParentData)
	pd.Offset = Offset{Dx: b.padding.Left, Dy: b.padding.Top}
	b.SetSize(c.Constrain(Size{
		Width:  child.Size().Width + b.padding.Horizontal(),
		Height: child.Size().Height + b.padding.Vertical(),
	}))
}

// ComputeMinIntrinsicWidth implements BoxNode.
func (b *PaddingBox) ComputeMinIntrinsicWidth(height float64) float64 {
	if b.child.HasChild() {
		inner := math.Max(0, height-b.padding.Vertical())
		return b.child.Child().GetMinIntrinsicWidth(inner) + b.padding.Horizontal()
	}
	return b.padding.Horizontal()
}

// ComputeMaxIntrinsicWidth implements BoxNode.
func (b *PaddingBox) ComputeMaxIntrinsicWidth(height float64) float64 {
	if b.child.HasChild() {
		inner := math.Max(0, height-b.padding.Vertical())
		return b.child.Child().GetMaxIntrinsicWidth(inner) + b.padding.Horizontal()
	}
	return b.padding.Horizontal()
}

// ComputeMinIntrinsicHeight implements BoxNode.
func (b *PaddingBox) ComputeMinIntrinsicHeight(width float64) float64 {
	if b.child.HasChild() {
		inner := math.Max(0, width-b.padding.Horizontal())
		return b.child.Child().GetMinIntrinsicHeight(inner) + b.padding.Vertical()
	}
	return b.padding.Vertical()
}

// ComputeMaxIntrinsicHeight implements BoxNode.
func (b *PaddingBox) ComputeMaxIntrinsicHeight(width float64) float64 {
	if b.child.HasChild() {
		inner := math.Max(0, width-b.padding.Horizontal())
		return b.child.Child().GetMaxIntrinsicHeight(inner) + b.padding.Vertical()
	}
	return b.padding.Vertical()
}

// HitTestChildren implements BoxNode.
func (b *PaddingBox) HitTestChildren(result *BoxHitTestResult, position Offset) bool {
	if !b.child.HasChild() {
		return false
	}
	child := b.child.Child()
	pd := child.ParentData().(*BoxParentData)
	return result.AddWithPaintOffset(pd.Offset, position, func(result *BoxHitTestResult, transformed Offset) bool {
		return child.HitTest(result, transformed)
	})
}

// Paint implements Object.
func (b *PaddingBox) Paint(context *PaintingContext, offset Offset) {
	if b.child.HasChild() {
		child := b.child.Child()
		pd := child.ParentData().(*BoxParentData)
		context.PaintChild(child, offset.Add(pd.Offset))
	}
}
