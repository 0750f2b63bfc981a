package scanline

// SceneOptions configures a Scene. The zero value is usable.
type SceneOptions struct {
	// NodePoolCapacity bounds how many recycled nodes the scene keeps.
	NodePoolCapacity int
	// ListPoolCapacity bounds how many recycled list elements the scene
	// keeps. It should be at least the number of visible nodes.
	ListPoolCapacity int
	// Background is the color behind every node.
	Background Color
	// DebugColor outlines the render bounds in debug mode. Zero selects
	// magenta.
	DebugColor Color
}

// Scene is the top-level object that owns the node tree, the pools the
// compositor allocates from, and the per-frame display lists.
type Scene struct {
	root  *Node
	debug bool

	background Color
	debugColor Color

	nodes *Pool[Node]
	elems *Pool[listElem]

	// Per-frame lists: nodes sorted by screen position, and the nodes
	// covering the current line sorted by depth.
	positions *DisplayList
	active    *DisplayList

	dirtyBounds  Rect
	renderBounds Rect
	depth        uint32
	stats        FrameStats

	tweens []*TweenGroup

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewScene creates a scene with default options.
func NewScene() *Scene {
	return NewSceneWithOptions(SceneOptions{})
}

// NewSceneWithOptions creates a scene with a pre-created root node. The root
// covers the whole display; its Drawable is never drawn, so use the
// background color instead.
func NewSceneWithOptions(opts SceneOptions) *Scene {
	s := &Scene{
		background:    opts.Background,
		debugColor:    opts.DebugColor,
		ScreenshotDir: "screenshots",
	}
	if s.debugColor == 0 {
		s.debugColor = ColorMagenta
	}
	s.nodes = NewPool(
		func() *Node {
			n := &Node{pool: s.nodes}
			n.resetFields()
			return n
		},
		(*Node).resetFields,
		opts.NodePoolCapacity,
	)
	s.elems = NewPool(nil, resetListElem, opts.ListPoolCapacity)
	s.positions = newDisplayList(s.elems)
	s.active = newDisplayList(s.elems)
	s.root = NewNode("root", nil)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// NewNode returns a node from the scene's pool. Recycle returns it.
func (s *Scene) NewNode(name string, d Drawable) *Node {
	n := s.nodes.Get()
	n.ID = nextNodeID()
	n.Name = name
	n.attach(d)
	return n
}

// NodePool returns the pool backing NewNode.
func (s *Scene) NodePool() *Pool[Node] { return s.nodes }

// ListPoolStats returns the counters of the pool the display lists allocate
// from. After the first few frames Allocs should stop growing.
func (s *Scene) ListPoolStats() PoolStats { return s.elems.Stats() }

// Background returns the background color.
func (s *Scene) Background() Color { return s.background }

// SetBackgroundColor changes the background color and forces a full redraw.
func (s *Scene) SetBackgroundColor(c Color) {
	if s.background == c {
		return
	}
	s.background = c
	s.root.MarkDirty()
}

// SetDebugColor sets the render-bounds outline color used in debug mode.
func (s *Scene) SetDebugColor(c Color) {
	s.debugColor = c
}

// RenderBounds returns the area recomposited by the last Render.
func (s *Scene) RenderBounds() Rect { return s.renderBounds }

// Stats returns the counters of the last Render.
func (s *Scene) Stats() FrameStats { return s.stats }

// Update runs the test runner, calls Update on the node tree and advances
// registered tweens by dt seconds.
func (s *Scene) Update(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.root.Update(dt)
	s.updateTweens(dt)
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are printed, the render bounds are outlined in the
// debug color, and per-frame stats are logged to stderr.
//
// The outline is composited into the display like any other pixel. It stays
// on screen until a later frame redraws that area, so a frame with smaller
// render bounds leaves the previous outline behind. Toggling debug mode
// redraws the whole display.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	s.root.MarkDirty()
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
