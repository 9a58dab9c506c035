package tiling

import (
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

// Composition is the ordered stack of world layers: sky, background, ground,
// foreground. Entities and the player are drawn between ground and
// foreground by the session.
type Composition struct {
	layers      []*Layer
	decorations []*Decoration
	cat         render.Catalog
}

// NewComposition builds every configured layer and decoration.
func NewComposition(layers []config.LayerConfig, decos []config.DecorationConfig,
	cat render.Catalog, rng *rand.Rand, logger *log.Logger) *Composition {
	c := &Composition{cat: cat}
	for _, lc := range layers {
		c.layers = append(c.layers, NewLayer(lc, logger))
	}
	sort.SliceStable(c.layers, func(i, j int) bool {
		return c.layers[i].Depth() < c.layers[j].Depth()
	})
	for _, dc := range decos {
		c.decorations = append(c.decorations, NewDecoration(dc, rng, logger))
	}
	return c
}

// Draw populates every layer for the viewport.
func (c *Composition) Draw(viewportW, groundLine float64) {
	for _, l := range c.layers {
		l.Draw(c.cat, viewportW, groundLine)
	}
	for _, d := range c.decorations {
		d.Draw(c.cat, viewportW)
	}
}

// Resize redraws for a new viewport, keeping the current scroll offset.
func (c *Composition) Resize(viewportW, groundLine, offset float64) {
	c.Draw(viewportW, groundLine)
	c.UpdatePosition(offset)
}

// UpdatePosition forwards the camera offset to every layer.
func (c *Composition) UpdatePosition(offset float64) {
	for _, l := range c.layers {
		l.UpdatePosition(offset)
	}
	for _, d := range c.decorations {
		d.UpdatePosition(offset)
	}
}

// Advance animates the drifting decorations.
func (c *Composition) Advance(tick core.Tick) {
	for _, d := range c.decorations {
		d.Advance(tick)
	}
}

// Layers returns the tile layers back to front.
func (c *Composition) Layers() []*Layer {
	return c.layers
}

// Decorations returns the decoration layers.
func (c *Composition) Decorations() []*Decoration {
	return c.decorations
}

// Sprites emits every tile and decoration.
func (c *Composition) Sprites(emit func(render.Sprite)) {
	for _, l := range c.layers {
		l.Sprites(emit)
	}
	for _, d := range c.decorations {
		d.Sprites(emit)
	}
}
