package render

// Axis identifies one of the two layout axes.
type Axis int

const (
	// Horizontal is the axis along which text flows.
	Horizontal Axis = iota
	// Vertical is the axis along which pages scroll by default.
	Vertical
)

// Flip returns the other axis.
func (a Axis) Flip() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// AxisDirection identifies a direction along a layout axis: the direction in
// which coordinates increase.
type AxisDirection int

const (
	// Up means coordinates increase toward the top of the screen.
	Up AxisDirection = iota
	// Right means coordinates increase toward the right.
	Right
	// Down means coordinates increase toward the bottom.
	Down
	// Left means coordinates increase toward the left.
	Left
)

// Axis returns the axis the direction runs along.
func (d AxisDirection) Axis() Axis {
	switch d {
	case Left, Right:
		return Horizontal
	default:
		return Vertical
	}
}

// IsReversed returns true if the direction runs opposite the canvas
// coordinate order (up or left).
func (d AxisDirection) IsReversed() bool {
	return d == Up || d == Left
}

// Flip returns the opposite direction along the same axis.
func (d AxisDirection) Flip() AxisDirection {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d AxisDirection) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "left"
	}
}

// GrowthDirection specifies whether a sliver's content is ordered with or
// against its viewport's axis direction. Content on both sides of the
// scroll-zero anchor uses one chain per growth direction.
type GrowthDirection int

const (
	// GrowthForward orders content in the axis direction.
	GrowthForward GrowthDirection = iota
	// GrowthReverse orders content against the axis direction.
	GrowthReverse
)

func (g GrowthDirection) String() string {
	if g == GrowthForward {
		return "forward"
	}
	return "reverse"
}

// ApplyGrowthDirection resolves the effective axis direction of a sliver:
// a reverse growth direction flips the viewport's axis direction.
func ApplyGrowthDirection(axisDirection AxisDirection, growth GrowthDirection) AxisDirection {
	if growth == GrowthReverse {
		return axisDirection.Flip()
	}
	return axisDirection
}

// ScrollDirection indicates which way the user is currently scrolling,
// relative to the positive scroll offset axis.
type ScrollDirection int

const (
	// ScrollIdle means no scrolling is in progress.
	ScrollIdle ScrollDirection = iota
	// ScrollForward means the content is moving so earlier content becomes
	// visible (scroll offset decreasing).
	ScrollForward
	// ScrollReverse means later content is becoming visible.
	ScrollReverse
)

// Flip returns the opposite scroll direction; idle stays idle.
func (s ScrollDirection) Flip() ScrollDirection {
	switch s {
	case ScrollForward:
		return ScrollReverse
	case ScrollReverse:
		return ScrollForward
	default:
		return ScrollIdle
	}
}

func (s ScrollDirection) String() string {
	switch s {
	case ScrollForward:
		return "forward"
	case ScrollReverse:
		return "reverse"
	default:
		return "idle"
	}
}

// ApplyGrowthDirectionToScrollDirection resolves the scroll direction seen
// by a sliver laid out in the given growth direction.
func ApplyGrowthDirectionToScrollDirection(scroll ScrollDirection, growth GrowthDirection) ScrollDirection {
	if growth == GrowthReverse {
		return scroll.Flip()
	}
	return scroll
}
