package render

// ViewportOffset determines which part of a viewport's content is
// visible. The viewport reads Pixels during layout and reports its
// dimensions back through the Apply methods; returning false from either
// makes the viewport lay out again so the offset can react, so an
// implementation must eventually accept or layout never settles.
type ViewportOffset interface {
	// Pixels is the number of logical pixels the content is scrolled by.
	Pixels() float64

	// ApplyViewportDimension reports the viewport's main axis extent.
	// Returns true if the layout that produced it can stand.
	ApplyViewportDimension(viewportDimension float64) bool

	// ApplyContentDimensions reports the scrollable range around the
	// zero offset. Returns true if the layout that produced it can stand.
	ApplyContentDimensions(minScrollExtent, maxScrollExtent float64) bool

	// CorrectBy shifts Pixels without notifying anyone. Only viewports
	// call this, mid-layout, to keep content stationary on screen while
	// the coordinate origin moves.
	CorrectBy(correction float64)

	// JumpTo sets Pixels outside of layout.
	JumpTo(pixels float64)

	// UserScrollDirection is the direction the user is currently
	// scrolling content in, if any.
	UserScrollDirection() ScrollDirection

	// AllowImplicitScrolling reports whether the position may be moved
	// by machinery other than the user, such as reveal-on-focus.
	AllowImplicitScrolling() bool
}

// FixedViewportOffset is a ViewportOffset pinned at a given position. It
// accepts whatever dimensions the viewport reports.
type FixedViewportOffset struct {
	pixels float64
}

// NewFixedViewportOffset creates an offset pinned at pixels.
func NewFixedViewportOffset(pixels float64) *FixedViewportOffset {
	return &FixedViewportOffset{pixels: pixels}
}

// Pixels implements ViewportOffset.
func (o *FixedViewportOffset) Pixels() float64 { return o.pixels }

// ApplyViewportDimension implements ViewportOffset.
func (o *FixedViewportOffset) ApplyViewportDimension(viewportDimension float64) bool { return true }

// ApplyContentDimensions implements ViewportOffset.
func (o *FixedViewportOffset) ApplyContentDimensions(minScrollExtent, maxScrollExtent float64) bool {
	return true
}

// CorrectBy implements ViewportOffset.
func (o *FixedViewportOffset) CorrectBy(correction float64) { o.pixels += correction }

// JumpTo implements ViewportOffset.
func (o *FixedViewportOffset) JumpTo(pixels float64) { o.pixels = pixels }

// UserScrollDirection implements ViewportOffset.
func (o *FixedViewportOffset) UserScrollDirection() ScrollDirection { return ScrollIdle }

// AllowImplicitScrolling implements ViewportOffset.
func (o *FixedViewportOffset) AllowImplicitScrolling() bool { return false }

// ClampingViewportOffset keeps its position within the content range the
// viewport reports. When the range shrinks under the current position it
// clamps and asks for one more layout pass.
type ClampingViewportOffset struct {
	pixels            float64
	minScrollExtent   float64
	maxScrollExtent   float64
	haveDimensions    bool
	viewportDimension float64
	direction         ScrollDirection
}

// NewClampingViewportOffset creates a clamping offset starting at pixels.
func NewClampingViewportOffset(pixels float64) *ClampingViewportOffset {
	return &ClampingViewportOffset{pixels: pixels}
}

// Pixels implements ViewportOffset.
func (o *ClampingViewportOffset) Pixels() float64 { return o.pixels }

// ViewportDimension returns the last reported main axis extent.
func (o *ClampingViewportOffset) ViewportDimension() float64 { return o.viewportDimension }

// MinScrollExtent returns the last accepted lower content bound.
func (o *ClampingViewportOffset) MinScrollExtent() float64 { return o.minScrollExtent }

// MaxScrollExtent returns the last accepted upper content bound.
func (o *ClampingViewportOffset) MaxScrollExtent() float64 { return o.maxScrollExtent }

// ApplyViewportDimension implements ViewportOffset.
func (o *ClampingViewportOffset) ApplyViewportDimension(viewportDimension float64) bool {
	if o.viewportDimension == viewportDimension {
		return true
	}
	o.viewportDimension = viewportDimension
	// Content dimensions must be revalidated against the new extent.
	o.haveDimensions = false
	return true
}

// ApplyContentDimensions implements ViewportOffset.
func (o *ClampingViewportOffset) ApplyContentDimensions(minScrollExtent, maxScrollExtent float64) bool {
	clamped := clamp(o.pixels, minScrollExtent, maxScrollExtent)
	changed := clamped != o.pixels
	o.pixels = clamped
	o.minScrollExtent = minScrollExtent
	o.maxScrollExtent = maxScrollExtent
	o.haveDimensions = true
	// A clamp moved the position, so the layout that used the old position
	// must run again. The next pass clamps to the same value and accepts.
	return !changed
}

// CorrectBy implements ViewportOffset.
func (o *ClampingViewportOffset) CorrectBy(correction float64) {
	o.pixels += correction
}

// JumpTo implements ViewportOffset.
func (o *ClampingViewportOffset) JumpTo(pixels float64) {
	target := pixels
	if o.haveDimensions {
		target = clamp(pixels, o.minScrollExtent, o.maxScrollExtent)
	}
	if target == o.pixels {
		return
	}
	if target < o.pixels {
		o.direction = ScrollForward
	} else {
		o.direction = ScrollReverse
	}
	o.pixels = target
}

// UserScrollDirection implements ViewportOffset.
func (o *ClampingViewportOffset) UserScrollDirection() ScrollDirection { return o.direction }

// AllowImplicitScrolling implements ViewportOffset.
func (o *ClampingViewportOffset) AllowImplicitScrolling() bool { return true }

// SettleScroll marks the offset idle again after a drag finishes.
func (o *ClampingViewportOffset) SettleScroll() { o.direction = ScrollIdle }
