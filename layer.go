package render

// Layer is one node of the retained compositing tree assembled during
// painting. Layers subtrees behind repaint boundaries survive across
// frames and are reused when the boundary's content has not changed.
type Layer interface {
	base() *baseLayer
}

// LayerContainer is a layer that can hold child layers. PaintingContext
// push operations accept any container so callers can reuse their own
// retained layers.
type LayerContainer interface {
	Layer
	Container() *ContainerLayer
}

type baseLayer struct {
	parent *ContainerLayer
}

func (l *baseLayer) base() *baseLayer { return l }

// Parent returns the container this layer is attached to, or nil.
func (l *baseLayer) Parent() *ContainerLayer { return l.parent }

// Remove detaches this layer from its parent, if any.
func (l *baseLayer) Remove() {
	if l.parent != nil {
		l.parent.remove(l)
	}
}

// ContainerLayer holds an ordered list of child layers.
type ContainerLayer struct {
	baseLayer
	children []Layer
}

// NewContainerLayer creates an empty container layer.
func NewContainerLayer() *ContainerLayer {
	return &ContainerLayer{}
}

// Container returns the layer's own container.
func (l *ContainerLayer) Container() *ContainerLayer { return l }

// Children returns the child layers in paint order.
func (l *ContainerLayer) Children() []Layer {
	return l.children
}

// Append adds child as the last child of this container, detaching it from
// any previous parent first.
func (l *ContainerLayer) Append(child Layer) {
	b := child.base()
	if b.parent == l {
		// Re-appending moves the child to the end.
		l.remove(b)
	} else if b.parent != nil {
		b.parent.remove(b)
	}
	b.parent = l
	l.children = append(l.children, child)
}

// RemoveAllChildren detaches every child from this container.
func (l *ContainerLayer) RemoveAllChildren() {
	for _, child := range l.children {
		child.base().parent = nil
	}
	l.children = nil
}

func (l *ContainerLayer) remove(b *baseLayer) {
	for i, child := range l.children {
		if child.base() == b {
			l.children = append(l.children[:i], l.children[i+1:]...)
			b.parent = nil
			return
		}
	}
}

// OffsetLayer is a container whose children paint shifted by Offset. Every
// repaint boundary owns one.
type OffsetLayer struct {
	ContainerLayer
	Offset Offset
}

// NewOffsetLayer creates an offset layer at the given offset.
func NewOffsetLayer(offset Offset) *OffsetLayer {
	return &OffsetLayer{Offset: offset}
}

// ClipRectLayer clips its children to ClipRect, expressed in the parent's
// coordinate space.
type ClipRectLayer struct {
	ContainerLayer
	ClipRect Rect
}

// NewClipRectLayer creates a clip layer with the given clip rectangle.
func NewClipRectLayer(clipRect Rect) *ClipRectLayer {
	return &ClipRectLayer{ClipRect: clipRect}
}

// TransformLayer applies an arbitrary affine transform to its children, on
// top of the offset it inherits from OffsetLayer.
type TransformLayer struct {
	OffsetLayer
	Transform Matrix
}

// NewTransformLayer creates a transform layer.
func NewTransformLayer(transform Matrix) *TransformLayer {
	return &TransformLayer{Transform: transform}
}

// OpacityLayer modulates the opacity of its children. Alpha is in [0, 255].
type OpacityLayer struct {
	ContainerLayer
	Alpha int
}

// NewOpacityLayer creates an opacity layer with the given alpha.
func NewOpacityLayer(alpha int) *OpacityLayer {
	return &OpacityLayer{Alpha: alpha}
}

// PictureLayer is a leaf holding one recorded display list. CanvasBounds
// is a hint covering everything the recording may draw.
type PictureLayer struct {
	baseLayer
	CanvasBounds Rect
	picture      *DisplayList
}

// NewPictureLayer creates a picture layer covering canvasBounds.
func NewPictureLayer(canvasBounds Rect) *PictureLayer {
	return &PictureLayer{CanvasBounds: canvasBounds}
}

// Picture returns the recorded display list, or nil if recording has not
// finished.
func (l *PictureLayer) Picture() *DisplayList {
	return l.picture
}

func (l *PictureLayer) setPicture(p *DisplayList) {
	l.picture = p
}
