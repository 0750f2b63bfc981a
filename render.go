package scanline

import "time"

// Render composites the scene into buf one line at a time and transfers the
// changed area to the display.
//
// Only the part of the display covered by nodes that changed since the last
// call (their old and new bounds) is recomposited. When nothing changed no
// row is transferred. Transfer errors do not stop the frame: the first one is
// returned after the last line.
func (s *Scene) Render(buf *LineBuffer) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.stats = FrameStats{}
	screen := buf.Rect()

	s.prepare(screen)

	if s.debug {
		s.stats.TraverseTime = time.Since(t0)
		t0 = time.Now()
	}

	render := s.dirtyBounds
	render.Clip(screen)
	s.renderBounds = render
	s.stats.RenderBounds = render

	if render.IsEmpty() {
		s.positions.Recycle()
		s.finishFrame(buf, t0)
		return nil
	}

	startTransfers := buf.Transfers()
	err := s.sweep(buf, render)
	s.stats.Transfers = buf.Transfers() - startTransfers

	s.finishFrame(buf, t0)
	return err
}

// prepare resets the frame state and traverses the tree, building the
// position list and the dirty bounds.
func (s *Scene) prepare(screen Rect) {
	root := s.root
	if !root.local.Equals(screen) {
		root.SetBounds(0, 0, screen.Width, screen.Height)
	}
	root.GlobalPos(0, 0)

	if root.dirty {
		s.dirtyBounds = screen
	} else {
		s.dirtyBounds.Clear()
	}
	s.dirtyBounds.Grow(root.orphanBounds)
	root.orphanBounds.Clear()

	forceDirty := root.dirty
	root.dirty = false
	s.depth = 0

	ox, oy := root.childOrigin()
	s.traverse(root.firstChild, forceDirty, false, ox, oy, screen)
}

// traverse walks a sibling list in pre-order. Each visited node has its
// global bounds recomputed; dirty nodes add their old and new bounds to the
// dirty area; visible on-screen nodes are numbered and queued by position.
// hidden is set below an invisible or transparent ancestor.
func (s *Scene) traverse(first *Node, forceDirty, hidden bool, px, py int, screen Rect) {
	for n := first; n != nil; n = n.next {
		if forceDirty {
			n.dirty = true
		}
		if !n.orphanBounds.IsEmpty() {
			s.dirtyBounds.Grow(n.orphanBounds)
			n.orphanBounds.Clear()
		}
		if !n.shown() && !n.dirty {
			continue
		}

		n.GlobalPos(px, py)
		dirty := n.dirty
		n.dirty = false

		if dirty {
			s.dirtyBounds.Grow(n.cleanBounds)
		}

		hide := hidden || !n.shown()
		switch {
		case hide:
			n.cleanBounds.Clear()
		case n.globalBounds.Overlaps(screen):
			s.depth++
			n.depth = s.depth
			if n.Drawable != nil {
				s.positions.InsertByPosition(n)
				s.stats.Nodes++
			}
			if dirty {
				s.dirtyBounds.Grow(n.globalBounds)
				n.cleanBounds = n.globalBounds
			}
		case dirty:
			n.cleanBounds.Clear()
		}

		if n.firstChild != nil {
			ox, oy := n.childOrigin()
			s.traverse(n.firstChild, dirty, hide, ox, oy, screen)
		}
	}
}

// sweep composites every line of render and flips each into buf.
func (s *Scene) sweep(buf *LineBuffer, render Rect) error {
	buf.SetRegion(render)
	var firstErr error
	for y := render.Y; y <= render.Y2; y++ {
		s.activate(y, render)
		s.beginLine(y)
		s.compositeLine(buf, y, render)
		if err := buf.Flip(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.stats.Lines++
	}
	for e := s.active.front(); e != nil; e = e.next {
		endRender(e.node)
	}
	s.active.Recycle()
	s.positions.Recycle()
	if err := buf.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// activate moves nodes whose top edge has been reached from the position
// list to the active list, starting their render.
func (s *Scene) activate(y int, render Rect) {
	for {
		e := s.positions.front()
		if e == nil || e.node.globalBounds.Y > y {
			return
		}
		n := e.node
		s.positions.Remove(e)

		n.renderBounds = n.globalBounds
		n.renderBounds.Clip(render)
		if n.renderBounds.IsEmpty() {
			continue
		}
		n.GlobalToLocal(&n.renderBounds)
		if r, ok := n.Drawable.(Resizer); ok {
			r.Resize(n.local.Width, n.local.Height)
		}
		n.Drawable.BeginRender(n.renderBounds)
		for _, f := range n.filters {
			f.BeginRender(n.renderBounds)
		}
		s.active.InsertByDepth(n)
	}
}

// beginLine retires active nodes that ended above y and starts line y on
// the rest.
func (s *Scene) beginLine(y int) {
	for e := s.active.front(); e != nil; {
		n := e.node
		if y > n.globalBounds.Y2 {
			endRender(n)
			e = s.active.Remove(e)
			continue
		}
		ly := n.GlobalToLocalY(y)
		n.Drawable.BeginLine(ly)
		for _, f := range n.filters {
			f.BeginLine(ly)
		}
		e = e.next
	}
}

// compositeLine fills the front row of buf for line y: background first,
// then each active node covering the column in depth order.
func (s *Scene) compositeLine(buf *LineBuffer, y int, render Rect) {
	for x := render.X; x <= render.X2; x++ {
		if s.debug && debugBorder(render, x, y) {
			buf.Pixel(s.debugColor, x)
			s.skipColumn(x, y)
			continue
		}
		buf.Pixel(s.background, x)
		for e := s.active.front(); e != nil; e = e.next {
			n := e.node
			if !n.globalBounds.ContainsX(x) {
				continue
			}
			lx, ly := n.GlobalToLocalX(x), n.GlobalToLocalY(y)
			c, a := n.Drawable.CalcPixel(lx, ly)
			a *= n.alpha
			for _, f := range n.filters {
				if a > 0 {
					c, a = f.FilterPixel(lx, ly, c, a)
				} else {
					f.SkipPixel(lx, ly)
				}
			}
			switch {
			case a >= 1:
				buf.Pixel(c, x)
			case a > 0:
				buf.Blend(c, a, x)
			}
		}
	}
}

// skipColumn advances the cursors of every active node covering x without
// producing output.
func (s *Scene) skipColumn(x, y int) {
	for e := s.active.front(); e != nil; e = e.next {
		n := e.node
		if !n.globalBounds.ContainsX(x) {
			continue
		}
		lx, ly := n.GlobalToLocalX(x), n.GlobalToLocalY(y)
		n.Drawable.SkipPixel(lx, ly)
		for _, f := range n.filters {
			f.SkipPixel(lx, ly)
		}
	}
}

// endRender finishes the frame for n and its filters.
func endRender(n *Node) {
	n.Drawable.EndRender()
	for _, f := range n.filters {
		f.EndRender()
	}
}

// finishFrame records timings, logs stats and flushes queued screenshots.
func (s *Scene) finishFrame(buf *LineBuffer, t0 time.Time) {
	if s.debug {
		s.stats.SweepTime = time.Since(t0)
		s.debugLog(s.stats)
	}
	s.flushScreenshots(buf)
}
