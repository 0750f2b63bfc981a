package scanline

import "image"

// GID flag bits (same convention as Tiled TMX format).
const (
	TileFlipH    uint32 = 1 << 31 // horizontal flip
	TileFlipV    uint32 = 1 << 30 // vertical flip
	TileFlipD    uint32 = 1 << 29 // diagonal flip (transpose)
	tileFlagMask uint32 = TileFlipH | TileFlipV | TileFlipD
)

// AnimFrame describes a single frame in a tile animation sequence.
type AnimFrame struct {
	GID      uint32 // tile GID for this frame (no flag bits)
	Duration int    // milliseconds
}

// TileMap draws a grid of tiles taken from a single atlas page. Cells hold
// GIDs: zero is empty, other values index Regions after masking the flip
// flags. Tiles are pulled one pixel at a time, so only the cells crossing the
// update area are ever read.
type TileMap struct {
	node *Node

	// Tile dimensions in pixels.
	TileWidth  int
	TileHeight int

	data    []uint32 // row-major tile GIDs, len = cols * rows
	cols    int
	rows    int
	page    image.Image
	rgba    *image.RGBA
	regions []Region // indexed by GID (after masking flags)

	anims       map[uint32][]AnimFrame // base GID -> frames (nil if no animations)
	frame       map[uint32]uint32      // base GID -> GID currently shown
	animElapsed int                    // milliseconds

	// Line cursor set by BeginLine.
	row   int
	tileY int
}

// NewTileMap creates a tilemap and the node that draws it. The node is sized
// to cols*tileWidth x rows*tileHeight and advances tile animations on Update.
func NewTileMap(name string, tileWidth, tileHeight, cols, rows int, data []uint32, regions []Region, page image.Image) *TileMap {
	if tileWidth <= 0 || tileHeight <= 0 {
		panic("scanline: tile size must be positive")
	}
	if len(data) != cols*rows {
		panic("scanline: tilemap data does not match its dimensions")
	}
	m := &TileMap{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		data:       data,
		cols:       cols,
		rows:       rows,
		regions:    regions,
	}
	m.SetPage(page)
	m.node = NewNode(name, m)
	m.node.OnUpdate = m.update
	return m
}

// Node returns the scene graph node drawing this tilemap.
func (m *TileMap) Node() *Node { return m.node }

// Size returns the map size in pixels.
func (m *TileMap) Size() (int, int) {
	return m.cols * m.TileWidth, m.rows * m.TileHeight
}

// Dims returns the map size in tiles.
func (m *TileMap) Dims() (cols, rows int) { return m.cols, m.rows }

// SetPage replaces the atlas page the regions refer to.
func (m *TileMap) SetPage(page image.Image) {
	m.page = page
	m.rgba, _ = page.(*image.RGBA)
	if m.node != nil {
		m.node.MarkDirty()
	}
}

// Tile returns the GID at (col, row), or 0 when out of range.
func (m *TileMap) Tile(col, row int) uint32 {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return 0
	}
	return m.data[row*m.cols+col]
}

// SetTile updates a single cell. Out of range cells are ignored.
func (m *TileMap) SetTile(col, row int, gid uint32) {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return
	}
	i := row*m.cols + col
	if m.data[i] == gid {
		return
	}
	m.data[i] = gid
	m.node.MarkDirty()
}

// SetData replaces the entire tile grid and resizes the node to match.
func (m *TileMap) SetData(data []uint32, cols, rows int) {
	if len(data) != cols*rows {
		panic("scanline: tilemap data does not match its dimensions")
	}
	m.data = data
	m.cols = cols
	m.rows = rows
	m.node.SetSize(m.Size())
	m.node.MarkDirty()
}

// SetAnimations sets the animation definitions, keyed by base GID (no flag
// bits), and restarts the animation clock.
func (m *TileMap) SetAnimations(anims map[uint32][]AnimFrame) {
	m.anims = anims
	m.animElapsed = 0
	m.frame = make(map[uint32]uint32, len(anims))
	for gid, frames := range anims {
		if len(frames) > 0 {
			m.frame[gid] = frames[0].GID
		}
	}
	m.node.MarkDirty()
}

// update advances the animation clock and marks the node dirty when any
// animated tile changes frame.
func (m *TileMap) update(dt float64) {
	dtMs := int(dt * 1000)
	if dtMs <= 0 || len(m.anims) == 0 {
		return
	}
	m.animElapsed += dtMs

	changed := false
	for base, frames := range m.anims {
		gid, ok := currentFrame(frames, m.animElapsed)
		if !ok {
			continue
		}
		if m.frame[base] != gid {
			m.frame[base] = gid
			changed = true
		}
	}
	if changed {
		m.node.MarkDirty()
	}
}

// currentFrame picks the frame showing at elapsed milliseconds into a looping
// sequence.
func currentFrame(frames []AnimFrame, elapsed int) (uint32, bool) {
	total := 0
	for _, f := range frames {
		total += f.Duration
	}
	if total <= 0 {
		return 0, false
	}
	elapsed %= total
	acc := 0
	for _, f := range frames {
		acc += f.Duration
		if elapsed < acc {
			return f.GID, true
		}
	}
	return frames[0].GID, true
}

func (m *TileMap) BeginRender(Rect) {}
func (m *TileMap) SkipPixel(int, int) {}
func (m *TileMap) EndRender() {}

func (m *TileMap) BeginLine(ly int) {
	m.row = ly / m.TileHeight
	m.tileY = ly % m.TileHeight
}

// CalcPixel samples the tile under local (lx, ly) after undoing its flip
// flags. Empty cells and unknown GIDs are transparent.
func (m *TileMap) CalcPixel(lx, _ int) (Color, float32) {
	if m.page == nil || lx < 0 {
		return 0, 0
	}
	col := lx / m.TileWidth
	gid := m.Tile(col, m.row)
	if gid == 0 {
		return 0, 0
	}
	flags := gid & tileFlagMask
	id := gid &^ tileFlagMask
	if f, ok := m.frame[id]; ok {
		id = f
	}
	if int(id) >= len(m.regions) {
		return 0, 0
	}
	r := m.regions[id]

	// Tiled applies the diagonal flip first, then H, then V. Undo them in
	// reverse to find the source pixel.
	x, y := lx%m.TileWidth, m.tileY
	if flags&TileFlipV != 0 {
		y = m.TileHeight - 1 - y
	}
	if flags&TileFlipH != 0 {
		x = m.TileWidth - 1 - x
	}
	if flags&TileFlipD != 0 {
		x, y = y, x
	}
	if x >= r.Width || y >= r.Height {
		return 0, 0
	}
	return samplePage(m.page, m.rgba, r, x, y)
}

func (m *TileMap) CalcMaskPixel(lx, ly int) float32 {
	_, a := m.CalcPixel(lx, ly)
	return a
}
