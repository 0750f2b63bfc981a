package scanline

// Drawable is the pull protocol between the compositor and a pixel producer.
//
// During a frame the compositor calls, in this order:
//
//	BeginRender(updateArea)                 once
//	BeginLine(ly)                           once per active line
//	CalcPixel | CalcMaskPixel | SkipPixel   once per active column
//	EndRender()                             once, after the last active line
//
// All coordinates are in the producer's local space: the node's global
// position has already been subtracted. Lines arrive in increasing order and,
// within a line, columns arrive in increasing order with no repeats, so a
// producer may keep incremental read cursors. SkipPixel is called for columns
// whose output is being discarded and must advance those cursors exactly like
// CalcPixel would.
type Drawable interface {
	// BeginRender starts a frame. updateArea is the part of the frame's
	// render bounds that overlaps the node, in local coordinates.
	BeginRender(updateArea Rect)
	// BeginLine prepares local line ly.
	BeginLine(ly int)
	// CalcPixel returns the color and alpha at local (lx, ly).
	CalcPixel(lx, ly int) (Color, float32)
	// CalcMaskPixel returns only the alpha at local (lx, ly), for use by
	// masking consumers.
	CalcMaskPixel(lx, ly int) float32
	// SkipPixel advances past local (lx, ly) without producing output.
	SkipPixel(lx, ly int)
	// EndRender finishes the frame.
	EndRender()
}

// NopDrawable implements Drawable with no output. Embed it to only override
// the hooks a producer needs.
type NopDrawable struct{}

func (NopDrawable) BeginRender(Rect) {}
func (NopDrawable) BeginLine(int) {}
func (NopDrawable) CalcPixel(int, int) (Color, float32) { return 0, 0 }
func (NopDrawable) CalcMaskPixel(int, int) float32 { return 1 }
func (NopDrawable) SkipPixel(int, int) {}
func (NopDrawable) EndRender() {}

// DrawableFunc adapts a stateless function to the Drawable interface. It is
// handy for procedural fills and tests.
type DrawableFunc func(lx, ly int) (Color, float32)

func (f DrawableFunc) BeginRender(Rect) {}
func (f DrawableFunc) BeginLine(int) {}
func (f DrawableFunc) CalcPixel(lx, ly int) (Color, float32) { return f(lx, ly) }
func (f DrawableFunc) SkipPixel(int, int) {}
func (f DrawableFunc) EndRender() {}

func (f DrawableFunc) CalcMaskPixel(lx, ly int) float32 {
	_, a := f(lx, ly)
	return a
}

// Sizer is implemented by drawables with an intrinsic size, such as sprites
// and text. NewNode sizes the node to match.
type Sizer interface {
	Size() (width, height int)
}

// Resizer is implemented by drawables whose output depends on their node's
// size, such as boxes and gradients. The compositor calls Resize before
// BeginRender.
type Resizer interface {
	Resize(width, height int)
}

// ownedDrawable is implemented by drawables that mark their node dirty when
// their own setters change the output. Node binds them as they are attached.
type ownedDrawable interface {
	bindNode(n *Node)
	unbindNode(n *Node)
}
