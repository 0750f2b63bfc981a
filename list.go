package scanline

// listElem is one entry of a DisplayList. Elements are taken from and
// returned to the owning scene's pool; none survive past the frame that
// created them.
type listElem struct {
	node       *Node
	prev, next *listElem
}

func resetListElem(e *listElem) {
	*e = listElem{}
}

// DisplayList is an ordered, doubly-linked list of nodes used by the
// compositor. It supports two orderings: by screen position (the sweep
// source) and by depth (the per-line compositing order).
type DisplayList struct {
	head listElem // sentinel; head.next is the first element
	tail *listElem
	size int
	pool *Pool[listElem]
}

// newDisplayList creates an empty list that allocates from pool.
func newDisplayList(pool *Pool[listElem]) *DisplayList {
	l := &DisplayList{pool: pool}
	l.tail = &l.head
	return l
}

// Len returns the number of nodes in the list.
func (l *DisplayList) Len() int { return l.size }

// front returns the first element, or nil.
func (l *DisplayList) front() *listElem { return l.head.next }

// positionLess reports whether a's top edge comes before b's: lower y first,
// then lower x.
func positionLess(a, b *Node) bool {
	if a.globalBounds.Y != b.globalBounds.Y {
		return a.globalBounds.Y < b.globalBounds.Y
	}
	return a.globalBounds.X < b.globalBounds.X
}

// depthLess reports whether a was traversed before b, i.e. paints below it.
func depthLess(a, b *Node) bool {
	return a.depth < b.depth
}

// InsertByPosition inserts n keeping the list sorted by top y, then x. Nodes
// with equal keys keep insertion order.
func (l *DisplayList) InsertByPosition(n *Node) {
	l.insert(n, positionLess)
}

// InsertByDepth inserts n keeping the list sorted by ascending depth, so that
// iterating front to back visits nodes in paint order.
func (l *DisplayList) InsertByDepth(n *Node) {
	l.insert(n, depthLess)
}

// insert places n after the last element that does not sort after it.
// Scanning from the tail makes the common cases (traversal order for
// position, increasing depth for activation) O(1).
func (l *DisplayList) insert(n *Node, less func(a, b *Node) bool) {
	at := l.tail
	for at != &l.head && less(n, at.node) {
		at = at.prev
	}
	e := l.pool.Get()
	e.node = n
	e.prev = at
	e.next = at.next
	if at.next != nil {
		at.next.prev = e
	} else {
		l.tail = e
	}
	at.next = e
	l.size++
}

// PopFront removes and returns the first node, or nil when empty.
func (l *DisplayList) PopFront() *Node {
	e := l.head.next
	if e == nil {
		return nil
	}
	n := e.node
	l.Remove(e)
	return n
}

// Remove unlinks e and returns it to the pool. It returns the element that
// followed e.
func (l *DisplayList) Remove(e *listElem) *listElem {
	next := e.next
	e.prev.next = e.next
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	l.size--
	l.pool.Put(e)
	return next
}

// Nodes appends the list's nodes, in order, to dst.
func (l *DisplayList) Nodes(dst []*Node) []*Node {
	for e := l.head.next; e != nil; e = e.next {
		dst = append(dst, e.node)
	}
	return dst
}

// Recycle returns every element to the pool and empties the list.
func (l *DisplayList) Recycle() {
	for e := l.head.next; e != nil; {
		next := e.next
		l.pool.Put(e)
		e = next
	}
	l.head.next = nil
	l.tail = &l.head
	l.size = 0
}
