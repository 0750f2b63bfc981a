package scanline

// nodeIDCounter is a plain counter; scene mutation is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. Every node carries geometry, visibility,
// alpha and dirty state; what it looks like is delegated to its Drawable.
// Nodes without a Drawable are plain containers.
//
// Children are kept in a doubly-linked sibling list. Later siblings, and the
// descendants of a node, paint on top of earlier ones where they overlap.
type Node struct {
	// Identity
	ID       uint32
	Name     string
	UserData any

	// Drawable produces the node's pixels. Nil means the node draws nothing
	// itself but still positions its children.
	Drawable Drawable

	// OnUpdate is called by Update before the node's children are updated.
	OnUpdate func(dt float64)

	// Hierarchy
	parent     *Node
	firstChild *Node
	lastChild  *Node
	next       *Node
	prev       *Node

	// Geometry (local) and origin offset within the node.
	local            Rect
	originX, originY int

	visible bool
	alpha   float32
	dirty   bool

	// depth is scratch state assigned during a render pass.
	depth uint32

	globalBounds Rect // absolute bounds this frame
	cleanBounds  Rect // absolute bounds as of the last render
	renderBounds Rect // local part of the frame's render bounds
	orphanBounds Rect // last-rendered area of removed children, not yet erased

	filters []Filter

	// pool is the pool this node returns to on Recycle; nil for heap nodes.
	pool *Pool[Node]
}

// NewNode creates a heap-allocated node. Prefer Scene.NewNode, which reuses
// recycled nodes from the scene's pool.
func NewNode(name string, d Drawable) *Node {
	n := &Node{}
	n.resetFields()
	n.ID = nextNodeID()
	n.Name = name
	n.attach(d)
	return n
}

// fitDrawable sizes the node to its Drawable when the Drawable has an
// intrinsic size.
func (n *Node) fitDrawable() {
	if s, ok := n.Drawable.(Sizer); ok {
		n.SetSize(s.Size())
	}
}

// SetDrawable replaces the node's Drawable, resizing the node when d has an
// intrinsic size.
func (n *Node) SetDrawable(d Drawable) {
	n.attach(d)
	n.MarkDirty()
}

// attach installs d, binding it to n when it tracks its owner, and sizes n
// to fit it.
func (n *Node) attach(d Drawable) {
	if o, ok := n.Drawable.(ownedDrawable); ok {
		o.unbindNode(n)
	}
	n.Drawable = d
	if o, ok := d.(ownedDrawable); ok {
		o.bindNode(n)
	}
	n.fitDrawable()
}

// resetFields restores every field except the owning pool to its default.
// It does not touch children; Reset handles the subtree.
func (n *Node) resetFields() {
	if o, ok := n.Drawable.(ownedDrawable); ok {
		o.unbindNode(n)
	}
	pool := n.pool
	*n = Node{}
	n.pool = pool
	n.visible = true
	n.alpha = 1
	n.dirty = true
	n.local.Clear()
	n.globalBounds.Clear()
	n.cleanBounds.Clear()
	n.renderBounds.Clear()
	n.orphanBounds.Clear()
}

// Reset detaches the node, recycles all its children and restores its
// defaults. ID and Name are cleared too.
func (n *Node) Reset() {
	n.RemoveFromParent()
	n.RemoveAllChildren(true)
	n.resetFields()
}

// Recycle detaches the node from its parent, recycles its subtree, and
// returns it to the pool it came from. The node must not be used afterwards.
func (n *Node) Recycle() {
	n.RemoveFromParent()
	n.RemoveAllChildren(true)
	if n.pool != nil {
		n.pool.Put(n)
		return
	}
	n.resetFields()
}

// --- Tree manipulation ---

// AddChild appends child as the top-most child of n.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of n (cycle).
func (n *Node) AddChild(child *Node) {
	n.checkAttach(child)
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	child.next = nil
	child.prev = n.lastChild
	if n.lastChild != nil {
		n.lastChild.next = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child
	child.MarkDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildBefore inserts child directly below sibling, which must already be
// a child of n.
func (n *Node) AddChildBefore(child, sibling *Node) {
	if sibling == nil || sibling.parent != n {
		panic("scanline: sibling's parent is not this node")
	}
	if child == sibling {
		return
	}
	n.checkAttach(child)
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	child.next = sibling
	child.prev = sibling.prev
	if sibling.prev != nil {
		sibling.prev.next = child
	} else {
		n.firstChild = child
	}
	sibling.prev = child
	child.MarkDirty()
}

// Add inserts sibling directly after n in n's parent, so it paints on top of
// n. Panics if n has no parent.
func (n *Node) Add(sibling *Node) {
	p := n.parent
	if p == nil {
		panic("scanline: cannot add a sibling to a node without a parent")
	}
	if sibling == n {
		return
	}
	p.checkAttach(sibling)
	if sibling.parent != nil {
		sibling.parent.RemoveChild(sibling)
	}
	sibling.parent = p
	sibling.prev = n
	sibling.next = n.next
	if n.next != nil {
		n.next.prev = sibling
	} else {
		p.lastChild = sibling
	}
	n.next = sibling
	sibling.MarkDirty()
}

// RemoveChild detaches child from n. The child is not recycled.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		panic("scanline: child's parent is not this node")
	}
	n.unlink(child)
}

// RemoveChildByID detaches the first direct child with the given ID and
// returns it, or nil if there is none.
func (n *Node) RemoveChildByID(id uint32) *Node {
	child := n.Child(id)
	if child != nil {
		n.unlink(child)
	}
	return child
}

// RemoveAllChildren detaches every child. When recycle is true the children
// and their subtrees are returned to their pools.
func (n *Node) RemoveAllChildren(recycle bool) {
	if n.firstChild == nil {
		return
	}
	for c := n.firstChild; c != nil; {
		next := c.next
		n.queueErase(c)
		c.parent, c.next, c.prev = nil, nil, nil
		if recycle {
			c.Recycle()
		}
		c = next
	}
	n.firstChild, n.lastChild = nil, nil
	n.MarkDirty()
}

// RemoveFromParent detaches n from its parent. No-op without a parent.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.unlink(n)
	}
}

// unlink removes child from n's sibling list, repairing both directions and
// the first/last child pointers.
func (n *Node) unlink(child *Node) {
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.lastChild = child.prev
	}
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.firstChild = child.next
	}
	n.queueErase(child)
	child.parent, child.next, child.prev = nil, nil, nil
	n.MarkDirty()
}

// queueErase records the area last rendered by child's subtree on n, so the
// next frame erases it even though child is no longer traversed. Areas still
// queued inside the subtree move up to n as well.
func (n *Node) queueErase(child *Node) {
	walkSubtree(child, func(c *Node) {
		n.orphanBounds.Grow(c.cleanBounds)
		n.orphanBounds.Grow(c.orphanBounds)
		c.cleanBounds.Clear()
		c.orphanBounds.Clear()
	})
}

func (n *Node) checkAttach(child *Node) {
	if child == nil {
		panic("scanline: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scanline: adding child would create a cycle")
	}
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// HasParent reports whether n is attached to a parent.
func (n *Node) HasParent() bool { return n.parent != nil }

// FirstChild returns the bottom-most child.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the top-most child.
func (n *Node) LastChild() *Node { return n.lastChild }

// Next returns the next sibling (painted above n).
func (n *Node) Next() *Node { return n.next }

// Prev returns the previous sibling (painted below n).
func (n *Node) Prev() *Node { return n.prev }

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool { return n.firstChild != nil }

// NumChildren counts the direct children.
func (n *Node) NumChildren() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.next {
		count++
	}
	return count
}

// Child returns the first direct child with the given ID, or nil.
func (n *Node) Child(id uint32) *Node {
	for c := n.firstChild; c != nil; c = c.next {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindByName searches n's subtree depth-first for a node with the given name.
func (n *Node) FindByName(name string) *Node {
	for c := n.firstChild; c != nil; c = c.next {
		if c.Name == name {
			return c
		}
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Geometry ---

// X returns the local x position.
func (n *Node) X() int { return n.local.X }

// Y returns the local y position.
func (n *Node) Y() int { return n.local.Y }

// Width returns the node's width.
func (n *Node) Width() int { return n.local.Width }

// Height returns the node's height.
func (n *Node) Height() int { return n.local.Height }

// LocalBounds returns position and size relative to the parent's origin.
func (n *Node) LocalBounds() Rect { return n.local }

// SetX sets the local x position.
func (n *Node) SetX(x int) {
	n.local.SetPos(x, n.local.Y)
	n.MarkDirty()
}

// SetY sets the local y position.
func (n *Node) SetY(y int) {
	n.local.SetPos(n.local.X, y)
	n.MarkDirty()
}

// SetPos sets the local position.
func (n *Node) SetPos(x, y int) {
	n.local.SetPos(x, y)
	n.MarkDirty()
}

// SetWidth sets the width. Negative values are treated as zero.
func (n *Node) SetWidth(w int) {
	n.local.SetWidth(max(w, 0))
	n.MarkDirty()
}

// SetHeight sets the height. Negative values are treated as zero.
func (n *Node) SetHeight(h int) {
	n.local.SetHeight(max(h, 0))
	n.MarkDirty()
}

// SetSize sets width and height.
func (n *Node) SetSize(w, h int) {
	n.local.SetSize(max(w, 0), max(h, 0))
	n.MarkDirty()
}

// SetBounds sets position and size together.
func (n *Node) SetBounds(x, y, w, h int) {
	n.local.SetPosAndSize(x, y, max(w, 0), max(h, 0))
	n.MarkDirty()
}

// SetOrigin sets the point within the node that sits at its position. The
// default origin (0, 0) is the top-left corner.
func (n *Node) SetOrigin(ox, oy int) {
	n.originX, n.originY = ox, oy
	n.MarkDirty()
}

// Origin returns the node's origin offset.
func (n *Node) Origin() (int, int) { return n.originX, n.originY }

// GlobalPos recomputes globalBounds from the local geometry and the global
// position (px, py) of the parent's origin. It must run for every node each
// frame before any bounds comparison, since an ancestor may have moved.
func (n *Node) GlobalPos(px, py int) {
	n.globalBounds.SetPosAndSize(
		px+n.local.X-n.originX,
		py+n.local.Y-n.originY,
		n.local.Width,
		n.local.Height,
	)
}

// GlobalBounds returns the absolute bounds computed during the last pass.
func (n *Node) GlobalBounds() Rect { return n.globalBounds }

// CleanBounds returns the absolute bounds as of the last render.
func (n *Node) CleanBounds() Rect { return n.cleanBounds }

// RenderBounds returns the local part of the current frame's render bounds.
// Only valid between BeginRender and EndRender.
func (n *Node) RenderBounds() Rect { return n.renderBounds }

// GlobalToLocalX converts a global x coordinate into n's local space.
func (n *Node) GlobalToLocalX(x int) int { return x - n.globalBounds.X }

// GlobalToLocalY converts a global y coordinate into n's local space.
func (n *Node) GlobalToLocalY(y int) int { return y - n.globalBounds.Y }

// GlobalToLocal translates a global rect into n's local space.
func (n *Node) GlobalToLocal(r *Rect) {
	r.Translate(-n.globalBounds.X, -n.globalBounds.Y)
}

// childOrigin returns the global position children are placed relative to.
func (n *Node) childOrigin() (int, int) {
	return n.globalBounds.X + n.originX, n.globalBounds.Y + n.originY
}

// --- Appearance ---

// Visible reports the node's own visibility flag.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the node and its subtree.
func (n *Node) SetVisible(v bool) {
	if n.visible == v {
		return
	}
	n.visible = v
	n.MarkDirty()
}

// Alpha returns the node's alpha.
func (n *Node) Alpha() float32 { return n.alpha }

// SetAlpha sets the node's alpha, clamped to [0, 1]. A node with alpha 0 is
// treated as hidden.
func (n *Node) SetAlpha(a float32) {
	a = AlphaClamp(a)
	if n.alpha == a {
		return
	}
	n.alpha = a
	n.MarkDirty()
}

// MarkDirty flags the node for recompositing. Call it after changing the
// Drawable's appearance; the setters on Node call it automatically.
func (n *Node) MarkDirty() { n.dirty = true }

// IsDirty reports whether the node changed since the last render.
func (n *Node) IsDirty() bool { return n.dirty }

// Depth returns the paint order assigned during the last render pass.
func (n *Node) Depth() uint32 { return n.depth }

// shown reports whether the node itself should produce pixels.
func (n *Node) shown() bool { return n.visible && n.alpha > 0 }

// --- Filters ---

// AddFilter appends f to the node's filter chain. Filters run in the order
// they were added.
func (n *Node) AddFilter(f Filter) {
	if f == nil {
		return
	}
	n.filters = append(n.filters, f)
	n.MarkDirty()
}

// RemoveFilter removes f from the chain. Reports whether it was found.
func (n *Node) RemoveFilter(f Filter) bool {
	for i, cur := range n.filters {
		if cur == f {
			copy(n.filters[i:], n.filters[i+1:])
			n.filters[len(n.filters)-1] = nil
			n.filters = n.filters[:len(n.filters)-1]
			n.MarkDirty()
			return true
		}
	}
	return false
}

// ClearFilters removes every filter.
func (n *Node) ClearFilters() {
	if len(n.filters) == 0 {
		return
	}
	clear(n.filters)
	n.filters = n.filters[:0]
	n.MarkDirty()
}

// Filters returns the filter chain. The returned slice MUST NOT be mutated.
func (n *Node) Filters() []Filter { return n.filters }

// --- Update ---

// Update calls OnUpdate on n and then on each child, in paint order. A child
// may remove itself or its siblings while updating; removed nodes are not
// visited afterwards.
func (n *Node) Update(dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for c := n.firstChild; c != nil; {
		next := c.next
		c.Update(dt)
		if c.parent == n {
			next = c.next
		}
		c = next
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// walkSubtree calls fn for n and every descendant in pre-order.
func walkSubtree(n *Node, fn func(*Node)) {
	fn(n)
	for c := n.firstChild; c != nil; c = c.next {
		walkSubtree(c, fn)
	}
}
