package render

// PaintingContext wires a painting node to the layer tree being built. It
// records drawing into picture layers and splits recordings whenever a
// composited child is reached.
type PaintingContext struct {
	containerLayer  *ContainerLayer
	estimatedBounds Rect

	currentLayer *PictureLayer
	canvas       *Canvas
}

// NewPaintingContext creates a context appending into container, covering
// estimatedBounds.
func NewPaintingContext(container LayerContainer, estimatedBounds Rect) *PaintingContext {
	return &PaintingContext{
		containerLayer:  container.Container(),
		estimatedBounds: estimatedBounds,
	}
}

// EstimatedBounds returns the region this context is expected to cover.
func (pc *PaintingContext) EstimatedBounds() Rect { return pc.estimatedBounds }

// Canvas returns the recording canvas, starting a new picture layer if no
// recording is active. The canvas is only valid until the next composited
// child is painted.
func (pc *PaintingContext) Canvas() *Canvas {
	if pc.canvas == nil {
		pc.currentLayer = NewPictureLayer(pc.estimatedBounds)
		pc.containerLayer.Append(pc.currentLayer)
		pc.canvas = NewCanvas()
	}
	return pc.canvas
}

func (pc *PaintingContext) stopRecordingIfNeeded() {
	if pc.canvas == nil {
		return
	}
	pc.currentLayer.setPicture(pc.canvas.Finish())
	pc.currentLayer = nil
	pc.canvas = nil
}

func (pc *PaintingContext) appendLayer(layer Layer) {
	layer.base().Remove()
	pc.containerLayer.Append(layer)
}

// PaintChild paints child at offset. Repaint boundaries composite into
// their own retained layer; other children record directly into this
// context.
func (pc *PaintingContext) PaintChild(child Object, offset Offset) {
	n := child.node()
	if child.IsRepaintBoundary() {
		pc.stopRecordingIfNeeded()
		pc.compositeChild(child, offset)
	} else if n.wasRepaintBoundary {
		// Demoted boundary paints inline from now on.
		n.layer = nil
		n.paintWithContext(pc, offset)
	} else {
		n.paintWithContext(pc, offset)
	}
}

func (pc *PaintingContext) compositeChild(child Object, offset Offset) {
	n := child.node()
	if n.needsPaint || !n.wasRepaintBoundary {
		RepaintCompositedChild(child)
	} else if n.needsCompositedLayerUpdate {
		updateLayerProperties(child)
	}
	n.layer.Offset = offset
	pc.appendLayer(n.layer)
}

// RepaintCompositedChild repaints a repaint boundary into its retained
// layer, creating or refreshing the layer first.
func RepaintCompositedChild(child Object) {
	n := child.node()
	if !child.IsRepaintBoundary() {
		panic("render: RepaintCompositedChild on a non-boundary node")
	}
	n.layer = child.UpdateCompositedLayer(n.layer)
	n.needsCompositedLayerUpdate = false
	n.layer.RemoveAllChildren()
	ctx := NewPaintingContext(n.layer, child.PaintBounds())
	n.paintWithContext(ctx, Offset{})
	ctx.stopRecordingIfNeeded()
}

func updateLayerProperties(child Object) {
	n := child.node()
	if !child.IsRepaintBoundary() || n.layer == nil {
		panic("render: updateLayerProperties needs a painted boundary")
	}
	layer := child.UpdateCompositedLayer(n.layer)
	if layer != n.layer {
		panic("render: UpdateCompositedLayer must reuse the given layer")
	}
	n.needsCompositedLayerUpdate = false
}

// PaintingContextCallback paints content at the given offset.
type PaintingContextCallback func(context *PaintingContext, offset Offset)

// PushLayer stops the current recording, appends layer, and paints painter
// into a child context rooted at it. childPaintBounds bounds what painter
// draws, in the child context's space.
func (pc *PaintingContext) PushLayer(layer LayerContainer, painter PaintingContextCallback, offset Offset, childPaintBounds Rect) {
	container := layer.Container()
	if len(container.Children()) > 0 {
		container.RemoveAllChildren()
	}
	pc.stopRecordingIfNeeded()
	pc.appendLayer(layer)
	child := NewPaintingContext(layer, childPaintBounds)
	painter(child, offset)
	child.stopRecordingIfNeeded()
}

// PushClipRect paints painter clipped to clipRect (given in the caller's
// space, relative to offset). When needsCompositing is set the clip
// becomes its own layer, reusing oldLayer across frames; otherwise the
// clip is recorded inline and nil is returned.
func (pc *PaintingContext) PushClipRect(needsCompositing bool, offset Offset, clipRect Rect, painter PaintingContextCallback, oldLayer *ClipRectLayer) *ClipRectLayer {
	offsetClipRect := clipRect.Shift(offset)
	if needsCompositing {
		layer := oldLayer
		if layer == nil {
			layer = NewClipRectLayer(offsetClipRect)
		} else {
			layer.ClipRect = offsetClipRect
		}
		pc.PushLayer(layer, painter, offset, offsetClipRect)
		return layer
	}
	canvas := pc.Canvas()
	canvas.Save()
	canvas.ClipRect(offsetClipRect)
	painter(pc, offset)
	canvas.Restore()
	return nil
}

// PushTransform paints painter under an affine transform applied about
// offset. A singular transform collapses everything to a degenerate
// region, so painting is skipped entirely.
func (pc *PaintingContext) PushTransform(needsCompositing bool, offset Offset, transform Matrix, painter PaintingContextCallback, oldLayer *TransformLayer) *TransformLayer {
	if _, ok := transform.Invert(); !ok {
		return oldLayer
	}
	effective := TranslationMatrix(offset.Dx, offset.Dy).
		Mul(transform).
		Mul(TranslationMatrix(-offset.Dx, -offset.Dy))
	if needsCompositing {
		layer := oldLayer
		if layer == nil {
			layer = NewTransformLayer(effective)
		} else {
			layer.Transform = effective
		}
		inverse, _ := effective.Invert()
		pc.PushLayer(layer, painter, offset, inverse.TransformRect(pc.estimatedBounds))
		return layer
	}
	canvas := pc.Canvas()
	canvas.Save()
	canvas.Transform(effective)
	painter(pc, offset)
	canvas.Restore()
	return nil
}

// PushOpacity paints painter with alpha in [0, 255] modulating its
// opacity. Opacity always composites.
func (pc *PaintingContext) PushOpacity(offset Offset, alpha int, painter PaintingContextCallback, oldLayer *OpacityLayer) *OpacityLayer {
	layer := oldLayer
	if layer == nil {
		layer = NewOpacityLayer(alpha)
	} else {
		layer.Alpha = alpha
	}
	pc.PushLayer(layer, painter, offset, pc.estimatedBounds)
	return layer
}
