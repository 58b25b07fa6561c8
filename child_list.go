package render

// childLinks is implemented by parent data carrying sibling pointers.
type childLinks[C Object] interface {
	links() *ContainerParentData[C]
}

// ChildList manages an ordered list of children linked through their
// parent data. Embed it, call Init with the host after the host's own
// Init, and route VisitChildren through VisitObjects. The host's
// SetupParentData must install parent data embedding
// ContainerParentData[C]. C must be an interface type.
type ChildList[C Object] struct {
	host        Object
	first, last C
	count       int
}

// Init records the node that owns the list.
func (l *ChildList[C]) Init(host Object) {
	l.host = host
}

func linksOf[C Object](child C) *ContainerParentData[C] {
	pd, ok := child.ParentData().(childLinks[C])
	if !ok {
		panic("render: child parent data lacks sibling links")
	}
	return pd.links()
}

// ChildCount returns the number of children.
func (l *ChildList[C]) ChildCount() int { return l.count }

// FirstChild returns the first child, or the zero value of C.
func (l *ChildList[C]) FirstChild() C { return l.first }

// LastChild returns the last child, or the zero value of C.
func (l *ChildList[C]) LastChild() C { return l.last }

// ChildAfter returns the child following child, or the zero value of C.
func (l *ChildList[C]) ChildAfter(child C) C {
	return linksOf(child).NextSibling
}

// ChildBefore returns the child preceding child, or the zero value of C.
func (l *ChildList[C]) ChildBefore(child C) C {
	return linksOf(child).PreviousSibling
}

// Insert adds child after the given sibling; a zero-valued after inserts
// at the front. The child is adopted by the host.
func (l *ChildList[C]) Insert(child C, after C) {
	l.host.node().AdoptChild(child)
	l.insertLinks(child, after)
}

// Add appends child at the end of the list.
func (l *ChildList[C]) Add(child C) {
	l.Insert(child, l.last)
}

func (l *ChildList[C]) insertLinks(child C, after C) {
	links := linksOf(child)
	if any(links.NextSibling) != nil || any(links.PreviousSibling) != nil {
		panic("render: inserting an already linked child")
	}
	l.count++
	if any(after) == nil {
		links.NextSibling = l.first
		if any(l.first) != nil {
			linksOf(l.first).PreviousSibling = child
		}
		l.first = child
		if any(l.last) == nil {
			l.last = child
		}
		return
	}
	afterLinks := linksOf(after)
	links.PreviousSibling = after
	links.NextSibling = afterLinks.NextSibling
	if any(afterLinks.NextSibling) != nil {
		linksOf(afterLinks.NextSibling).PreviousSibling = child
	} else {
		l.last = child
	}
	afterLinks.NextSibling = child
}

func (l *ChildList[C]) removeLinks(child C) {
	links := linksOf(child)
	var zero C
	if any(links.PreviousSibling) == nil {
		l.first = links.NextSibling
	} else {
		linksOf(links.PreviousSibling).NextSibling = links.NextSibling
	}
	if any(links.NextSibling) == nil {
		l.last = links.PreviousSibling
	} else {
		linksOf(links.NextSibling).PreviousSibling = links.PreviousSibling
	}
	links.PreviousSibling = zero
	links.NextSibling = zero
	l.count--
}

// Remove unlinks child and drops it from the host.
func (l *ChildList[C]) Remove(child C) {
	l.removeLinks(child)
	l.host.node().DropChild(child)
}

// RemoveAll drops every child.
func (l *ChildList[C]) RemoveAll() {
	var zero C
	child := l.first
	for any(child) != nil {
		links := linksOf(child)
		next := links.NextSibling
		links.PreviousSibling = zero
		links.NextSibling = zero
		l.host.node().DropChild(child)
		child = next
	}
	l.first = zero
	l.last = zero
	l.count = 0
}

// Move repositions child to follow after without re-adopting it.
func (l *ChildList[C]) Move(child C, after C) {
	if any(linksOf(child).PreviousSibling) == any(after) {
		return
	}
	l.removeLinks(child)
	l.insertLinks(child, after)
	l.host.MarkNeedsLayout()
}

// Visit calls visitor for each child in order.
func (l *ChildList[C]) Visit(visitor func(C)) {
	for child := l.first; any(child) != nil; child = linksOf(child).NextSibling {
		visitor(child)
	}
}

// VisitObjects adapts Visit for Object.VisitChildren.
func (l *ChildList[C]) VisitObjects(visitor func(Object)) {
	l.Visit(func(child C) { visitor(child) })
}
