package scanline

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log"
)

// Region describes a sub-rectangle within an atlas page.
type Region struct {
	Page      int    // index into Atlas.Pages
	X, Y      int    // top-left corner within the page
	Width     int    // width in the page (may differ from OriginalW if trimmed)
	Height    int    // height in the page (may differ from OriginalH if trimmed)
	OriginalW int    // untrimmed width as authored
	OriginalH int    // untrimmed height as authored
	OffsetX   int    // horizontal trim offset
	OffsetY   int    // vertical trim offset
	Rotated   bool   // stored 90 degrees clockwise in the page
	Name      string // frame name, empty for the placeholder
}

// Bounds returns the region's rectangle within its page.
func (r Region) Bounds() image.Rectangle {
	if r.Rotated {
		return image.Rect(r.X, r.Y, r.X+r.Height, r.Y+r.Width)
	}
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Atlas holds one or more page images and a map of named regions.
type Atlas struct {
	// Pages contains the page images indexed by page number.
	Pages   []image.Image
	regions map[string]Region
}

// Len returns the number of named regions.
func (a *Atlas) Len() int { return len(a.regions) }

// Has reports whether the atlas contains a region called name.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// Region returns the region for the given name. If the name doesn't exist,
// it logs a warning and returns a 1x1 placeholder on magentaPlaceholderPage.
func (a *Atlas) Region(name string) Region {
	if r, ok := a.regions[name]; ok {
		return r
	}
	log.Printf("scanline: atlas region %q not found, using magenta placeholder", name)
	return magentaRegion()
}

// Page returns the image backing r. The placeholder page resolves to a 1x1
// magenta image; unknown pages return nil.
func (a *Atlas) Page(r Region) image.Image {
	if r.Page == magentaPlaceholderPage {
		return ensureMagentaImage()
	}
	if r.Page < 0 || r.Page >= len(a.Pages) {
		return nil
	}
	return a.Pages[r.Page]
}

// Sprite creates a Sprite drawing the named region.
func (a *Atlas) Sprite(name string) *Sprite {
	r := a.Region(name)
	return NewSpriteRegion(a.Page(r), r)
}

// magenta placeholder singleton (no sync.Once; scene setup is single-threaded)
var magentaImage *image.RGBA

func ensureMagentaImage() *image.RGBA {
	if magentaImage == nil {
		magentaImage = image.NewRGBA(image.Rect(0, 0, 1, 1))
		magentaImage.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// magentaPlaceholderPage is a sentinel page index used for magenta placeholders.
const magentaPlaceholderPage = -1

func magentaRegion() Region {
	return Region{
		Page:      magentaPlaceholderPage,
		Width:     1,
		Height:    1,
		OriginalW: 1,
		OriginalH: 1,
	}
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []image.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("scanline: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]Region),
	}

	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("scanline: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("scanline: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(name, f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("scanline: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(name, f, i)
		}
	}
	return nil
}

// frameToRegion converts a frame. For rotated frames "frame" holds the size
// as stored in the page; Width and Height keep the authored orientation.
func frameToRegion(name string, f jsonFrame, page int) Region {
	w, h := f.Frame.W, f.Frame.H
	if f.Rotated {
		w, h = h, w
	}
	return Region{
		Page:      page,
		X:         f.Frame.X,
		Y:         f.Frame.Y,
		Width:     w,
		Height:    h,
		OriginalW: f.SourceSize.W,
		OriginalH: f.SourceSize.H,
		OffsetX:   f.SpriteSourceSize.X,
		OffsetY:   f.SpriteSourceSize.Y,
		Rotated:   f.Rotated,
		Name:      name,
	}
}
