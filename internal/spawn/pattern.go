package spawn

import (
	"math/rand"

	"github.com/vovakirdan/fluffy-runner/internal/config"
)

// Point is a spawn position: x and the bottom edge y.
type Point struct {
	X, Y float64
}

// PatternTable picks the vertical placement rule for each spawn, either
// cycling through the table or choosing at random.
type PatternTable struct {
	patterns []config.PatternConfig
	random   bool
	next     int
}

// NewPatternTable creates a table. An empty table places on the ground.
func NewPatternTable(patterns []config.PatternConfig, order string) *PatternTable {
	if len(patterns) == 0 {
		patterns = []config.PatternConfig{{Name: "ground", Kind: "ground"}}
	}
	return &PatternTable{patterns: patterns, random: order == "random"}
}

// Next returns the pattern for the next spawn.
func (t *PatternTable) Next(rng *rand.Rand) config.PatternConfig {
	if t.random {
		return t.patterns[rng.Intn(len(t.patterns))]
	}
	p := t.patterns[t.next]
	t.next = (t.next + 1) % len(t.patterns)
	return p
}

// Reset restarts the cycle.
func (t *PatternTable) Reset() {
	t.next = 0
}

// Place expands a pattern at anchorX into spawn points.
func Place(p config.PatternConfig, anchorX, groundLine, viewportH float64, rng *rand.Rand) []Point {
	offset := between(rng, p.OffsetMin, p.OffsetMax)

	switch p.Kind {
	case "floating":
		return []Point{{X: anchorX, Y: groundLine - viewportH*p.HeightFraction - offset}}
	case "formation":
		count := p.Count
		if count < 1 {
			count = 1
		}
		base := groundLine - viewportH*p.HeightFraction - offset
		points := make([]Point, 0, count)
		for i := 0; i < count; i++ {
			jitter := 0.0
			if p.Jitter > 0 {
				jitter = (rng.Float64()*2 - 1) * p.Jitter
			}
			points = append(points, Point{X: anchorX + float64(i)*p.Spacing, Y: base + jitter})
		}
		return points
	default:
		return []Point{{X: anchorX, Y: groundLine - offset}}
	}
}
