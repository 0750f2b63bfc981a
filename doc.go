// Package scanline is a retained-mode 2D compositor for small displays
// driven by microcontrollers.
//
// Scanline keeps a scene graph of nodes and turns it into pixels one display
// row at a time, so it never needs a full frame buffer. Only the part of the
// display that changed since the last frame is recomposited, and each row is
// handed to the display while the next one is being computed.
//
// # Quick start
//
// Wrap the display driver in a [Display], create a [LineBuffer] over it, and
// call [Scene.Render] whenever something may have changed:
//
//	disp := scanline.NewDisplayerDisplay(st7735Device)
//	buf := scanline.NewLineBuffer(disp)
//
//	scene := scanline.NewScene()
//	box := scene.NewNode("box", scanline.NewBox(scanline.ColorRed))
//	box.SetBounds(10, 10, 40, 20)
//	scene.Root().AddChild(box)
//
//	for {
//		scene.Update(dt)
//		if err := scene.Render(buf); err != nil {
//			log.Printf("render: %v", err)
//		}
//	}
//
// On a desktop, the ebitensim package runs the same scene in a window.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root];
// children are positioned relative to their parent, and later siblings paint
// over earlier ones. A node draws nothing by itself: its [Drawable] produces
// the pixels. Scanline ships [Box], [LinearGradient], [Sprite], [TileMap]
// and [Text]; anything implementing [Drawable] can be attached.
//
// Setters on Node mark it dirty. A drawable whose look changes without a
// setter being called must be followed by [Node.MarkDirty].
//
// # Pull rendering
//
// The compositor pulls pixels from drawables in strict order: lines top to
// bottom, columns left to right, each exactly once. This lets drawables keep
// incremental state (a gradient position, a read pointer into an image)
// instead of computing every pixel from scratch. See [Drawable] for the
// exact protocol. [Filter] values attached to a node post-process its pixels
// in the same order.
//
// # Displays
//
// [MemoryDisplay] renders into memory and is used for tests and screenshots.
// [DisplayerDisplay] adapts TinyGo drivers, [DrawerDisplay] adapts periph.io
// drivers, and [AsyncDisplay] moves transfers onto a goroutine.
package scanline
