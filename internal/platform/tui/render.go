package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// minAlpha is the opacity below which a sprite is not drawn at all.
const minAlpha = 0.35

// Painter rasterizes a render.Scene into a character screen.
type Painter struct {
	glyphs *GlyphSet
	scene  *render.Scene
}

// NewPainter creates a painter over an empty scene.
func NewPainter(glyphs *GlyphSet) *Painter {
	return &Painter{glyphs: glyphs, scene: render.NewScene()}
}

// Apply folds one step's intents into the retained scene.
func (p *Painter) Apply(intents []render.Intent) {
	p.scene.Apply(intents)
}

// Scene returns the retained scene.
func (p *Painter) Scene() *render.Scene {
	return p.scene
}

// Paint clears the screen and draws every visible sprite back to front.
func (p *Painter) Paint(s *core.Screen) {
	s.Clear()
	for _, sp := range p.scene.Sorted() {
		p.draw(s, sp)
	}
}

// cells returns the cell box of a sprite. Boxes are bottom aligned so that
// everything standing on the ground line shares one row boundary.
func (p *Painter) cells(sp render.Sprite) (x0, y0, cols, rows int) {
	cw, ch := p.glyphs.Cell.W, p.glyphs.Cell.H
	cols = max(1, int(math.Round(sp.W/cw)))
	rows = max(1, int(math.Round(sp.H/ch)))
	x0 = int(math.Round(sp.X / cw))
	y0 = int(math.Round((sp.Y+sp.H)/ch)) - rows
	return x0, y0, cols, rows
}

func (p *Painter) draw(s *core.Screen, sp render.Sprite) {
	if sp.Alpha < minAlpha {
		return
	}
	g, ok := p.glyphs.Glyphs[sp.Image]
	if !ok {
		return
	}
	x0, y0, cols, rows := p.cells(sp)
	if x0 >= s.Width() || x0+cols <= 0 || y0 >= s.Height() || y0+rows <= 0 {
		return
	}

	if len(g.frames) > 0 {
		art := g.frames[sp.Frame%len(g.frames)]
		top := y0 + rows - len(art)
		for dy, line := range art {
			left := x0
			if sp.FlipX {
				line = mirror(line)
				left = x0 + cols - len(line)
			}
			for dx, r := range line {
				if r != ' ' {
					s.SetColored(left+dx, top+dy, r, g.color)
				}
			}
		}
		return
	}

	// Patterns are anchored to the sprite, so they scroll with it.
	for dy := 0; dy < rows; dy++ {
		line := g.pattern[dy%len(g.pattern)]
		if len(line) == 0 {
			continue
		}
		for dx := 0; dx < cols; dx++ {
			if r := line[dx%len(line)]; r != ' ' {
				s.SetColored(x0+dx, y0+dy, r, g.color)
			}
		}
	}
}

var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

func mirror(line []rune) []rune {
	out := make([]rune, len(line))
	for i, r := range line {
		if m, ok := mirrored[r]; ok {
			r = m
		}
		out[len(line)-1-i] = r
	}
	return out
}
