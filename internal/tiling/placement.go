package tiling

import (
	"math"
	"math/rand"
)

// Placement is one position chosen by Place.
type Placement struct {
	X float64
	// BestEffort is set when no candidate met the spacing within the attempt
	// budget and the candidate with the most clearance was kept instead.
	BestEffort bool
}

// Place picks n positions in [0, span) that are at least minSpacing apart,
// measured around the wrap of a repeating span. Each position gets at most
// maxAttempts random candidates.
func Place(rng *rand.Rand, n int, span, minSpacing float64, maxAttempts int) []Placement {
	if n <= 0 || span <= 0 {
		return nil
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		bestX, bestClear := 0.0, -1.0
		accepted := false
		for a := 0; a < maxAttempts; a++ {
			x := rng.Float64() * span
			c := clearance(out, x, span)
			if c >= minSpacing {
				out = append(out, Placement{X: x})
				accepted = true
				break
			}
			if c > bestClear {
				bestX, bestClear = x, c
			}
		}
		if !accepted {
			out = append(out, Placement{X: bestX, BestEffort: true})
		}
	}
	return out
}

// clearance is the distance from x to the nearest placed position.
func clearance(placed []Placement, x, span float64) float64 {
	c := math.Inf(1)
	for _, p := range placed {
		d := math.Abs(p.X - x)
		if wrap := span - d; wrap < d {
			d = wrap
		}
		if d < c {
			c = d
		}
	}
	return c
}
