// Package tiling builds the infinite scrolling world out of repeated images:
// tile layers that always cover the viewport, and sparse decorations.
package tiling

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

// Tile is one copy of a layer image.
type Tile struct {
	WorldX  float64
	ScreenX float64
}

// Layer repeats one image horizontally. Neighbouring tiles overlap by at
// least one pixel so no seam shows between them.
type Layer struct {
	name    string
	image   string
	depth   render.Depth
	overlap float64
	anchor  string
	yOffset float64
	scale   float64

	tileW, tileH float64
	y            float64
	offset       float64
	tiles        []Tile
	log          *log.Logger
}

// NewLayer creates a layer from config. Call Draw before use.
func NewLayer(cfg config.LayerConfig, logger *log.Logger) *Layer {
	logger = logging.OrDiscard(logger)

	depth, ok := render.ParseDepth(cfg.Depth)
	if !ok {
		logger.Warn("unknown layer depth, using background", "layer", cfg.Name, "depth", cfg.Depth)
		depth = render.DepthBackground
	}
	overlap := float64(cfg.Overlap)
	if overlap < 1 {
		logger.Warn("layer overlap below 1px, clamping", "layer", cfg.Name, "overlap", cfg.Overlap)
		overlap = 1
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Layer{
		name:    cfg.Name,
		image:   cfg.Image,
		depth:   depth,
		overlap: overlap,
		anchor:  cfg.Anchor,
		yOffset: cfg.Y,
		scale:   scale,
		log:     logger,
	}
}

// Draw populates the tiles for a viewport. A layer whose image is missing
// draws nothing and reports false.
func (l *Layer) Draw(cat render.Catalog, viewportW, groundLine float64) bool {
	l.tiles = l.tiles[:0]

	img, ok := cat.Lookup(l.image)
	if !ok {
		l.log.Warn("layer image missing, skipping layer", "layer", l.name, "image", l.image)
		return false
	}

	l.tileW = math.Round(img.W * l.scale)
	l.tileH = math.Round(img.H * l.scale)
	if l.tileW <= l.overlap {
		l.log.Error("layer tile narrower than its overlap, skipping layer",
			"layer", l.name, "width", l.tileW, "overlap", l.overlap)
		return false
	}

	l.y = l.yOffset
	if l.anchor == "ground" {
		l.y = groundLine + l.yOffset
	}

	step := l.Step()
	n := int(math.Ceil(viewportW/step)) + 2
	for i := 0; i < n; i++ {
		l.tiles = append(l.tiles, Tile{WorldX: float64(i) * step, ScreenX: float64(i) * step})
	}
	l.UpdatePosition(l.offset)
	return true
}

// Resize recomputes tile width and count for a new viewport.
func (l *Layer) Resize(cat render.Catalog, viewportW, groundLine float64) bool {
	return l.Draw(cat, viewportW, groundLine)
}

// UpdatePosition repositions the existing tiles for a scroll offset without
// allocating.
func (l *Layer) UpdatePosition(offset float64) {
	l.offset = offset
	if len(l.tiles) == 0 {
		return
	}
	step := l.Step()
	base := math.Floor(offset / step)
	for i := range l.tiles {
		wx := math.Round((base + float64(i)) * step)
		l.tiles[i].WorldX = wx
		l.tiles[i].ScreenX = wx - offset
	}
}

// Step is the distance between consecutive tile origins.
func (l *Layer) Step() float64 {
	return l.tileW - l.overlap
}

// Tiles returns the current tiles, left to right.
func (l *Layer) Tiles() []Tile {
	return l.tiles
}

// TileWidth returns the scaled image width.
func (l *Layer) TileWidth() float64 {
	return l.tileW
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Depth returns the draw depth of the layer.
func (l *Layer) Depth() render.Depth {
	return l.depth
}

// Sprites emits one sprite per tile.
func (l *Layer) Sprites(emit func(render.Sprite)) {
	for i, t := range l.tiles {
		emit(render.Sprite{
			ID:      fmt.Sprintf("layer/%s/%d", l.name, i),
			Image:   l.image,
			X:       t.ScreenX,
			Y:       l.y,
			W:       l.tileW,
			H:       l.tileH,
			Depth:   l.depth,
			Alpha:   1,
			Visible: true,
		})
	}
}
