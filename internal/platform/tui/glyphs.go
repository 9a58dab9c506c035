package tui

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

//go:embed assets/glyphs.yaml
var defaultGlyphsYAML []byte

// CellSize is how many world pixels one terminal cell covers.
type CellSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Glyph is the terminal stand-in for one image.
type Glyph struct {
	W       float64    `yaml:"w"`
	H       float64    `yaml:"h"`
	Color   string     `yaml:"color"`
	Pattern []string   `yaml:"pattern"`
	Frames  [][]string `yaml:"frames"`

	color   core.Color
	pattern [][]rune
	frames  [][][]rune
}

// GlyphSet maps image names to glyphs. It is the render.Catalog of the
// terminal platform.
type GlyphSet struct {
	Cell   CellSize         `yaml:"cell"`
	Glyphs map[string]Glyph `yaml:"glyphs"`
}

// DefaultGlyphs returns the embedded glyph set.
func DefaultGlyphs() *GlyphSet {
	gs, err := ParseGlyphs(defaultGlyphsYAML)
	if err != nil {
		panic(fmt.Sprintf("tui: embedded glyphs are invalid: %v", err))
	}
	return gs
}

// LoadGlyphs reads a glyph set from a YAML file.
func LoadGlyphs(path string) (*GlyphSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tui: read glyphs %s: %w", path, err)
	}
	return ParseGlyphs(data)
}

// ParseGlyphs decodes and checks a glyph set.
func ParseGlyphs(data []byte) (*GlyphSet, error) {
	var gs GlyphSet
	if err := yaml.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("tui: parse glyphs: %w", err)
	}
	if gs.Cell.W <= 0 || gs.Cell.H <= 0 {
		return nil, fmt.Errorf("tui: cell size must be positive, got %vx%v", gs.Cell.W, gs.Cell.H)
	}
	for name, g := range gs.Glyphs {
		if g.W <= 0 || g.H <= 0 {
			return nil, fmt.Errorf("tui: glyph %q: size must be positive", name)
		}
		c, ok := core.ParseColor(g.Color)
		if g.Color != "" && !ok {
			return nil, fmt.Errorf("tui: glyph %q: unknown color %q", name, g.Color)
		}
		g.color = c
		g.pattern = runes(g.Pattern)
		for _, f := range g.Frames {
			g.frames = append(g.frames, runes(f))
		}
		if len(g.pattern) == 0 && len(g.frames) == 0 {
			return nil, fmt.Errorf("tui: glyph %q has neither pattern nor frames", name)
		}
		gs.Glyphs[name] = g
	}
	return &gs, nil
}

func runes(lines []string) [][]rune {
	out := make([][]rune, len(lines))
	for i, l := range lines {
		out[i] = []rune(l)
	}
	return out
}

// Lookup implements render.Catalog.
func (gs *GlyphSet) Lookup(name string) (render.Image, bool) {
	g, ok := gs.Glyphs[name]
	if !ok {
		return render.Image{}, false
	}
	frames := len(g.frames)
	if frames == 0 {
		frames = 1
	}
	return render.Image{Name: name, W: g.W, H: g.H, Frames: frames}, true
}

// Viewport returns the world size that fills a terminal of cols x rows.
func (gs *GlyphSet) Viewport(cols, rows int) (w, h int) {
	return int(float64(cols) * gs.Cell.W), int(float64(rows) * gs.Cell.H)
}
