package render

// SingleChild manages one optional child slot for a node. Embed it, call
// Init with the host after the host's own Init, and route VisitChildren
// through Visit. C must be an interface type, such as BoxNode.
type SingleChild[C Object] struct {
	host  Object
	child C
}

// Init records the node that owns the slot.
func (s *SingleChild[C]) Init(host Object) {
	s.host = host
}

// Child returns the current child; the zero value of C when empty.
func (s *SingleChild[C]) Child() C {
	return s.child
}

// HasChild reports whether the slot is filled.
func (s *SingleChild[C]) HasChild() bool {
	return any(s.child) != nil
}

// SetChild replaces the slot's occupant, dropping any previous child and
// adopting the new one. Pass the zero value of C to clear the slot.
func (s *SingleChild[C]) SetChild(child C) {
	if any(s.child) != nil {
		s.host.node().DropChild(s.child)
	}
	s.child = child
	if any(child) != nil {
		s.host.node().AdoptChild(child)
	}
}

// Visit calls visitor for the child, if any.
func (s *SingleChild[C]) Visit(visitor func(Object)) {
	if any(s.child) != nil {
		visitor(s.child)
	}
}
