package tiling

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

type instance struct {
	baseX   float64
	y       float64
	image   string
	w, h    float64
	screenX float64
	hover
}

// hover is the per-instance drift state of an ambient decoration.
type hover struct {
	radius, orbit, orbitSpeed        float64
	wobble, wobblePhase, wobbleSpeed float64
	swayPhase                        float64
	glowPhase, glowSpeed             float64
	dx, dy                           float64
	alpha                            float64
}

// Decoration scatters a few images over a span that repeats forever.
type Decoration struct {
	cfg   config.DecorationConfig
	depth render.Depth
	rng   *rand.Rand
	log   *log.Logger

	span       float64
	viewportW  float64
	instances  []instance
	bestEffort int
}

// NewDecoration creates a decoration layer.
func NewDecoration(cfg config.DecorationConfig, rng *rand.Rand, logger *log.Logger) *Decoration {
	logger = logging.OrDiscard(logger)
	depth, ok := render.ParseDepth(cfg.Depth)
	if !ok {
		depth = render.DepthBackground
	}
	if cfg.SpanFactor < 1 {
		cfg.SpanFactor = 1
	}
	return &Decoration{cfg: cfg, depth: depth, rng: rng, log: logger}
}

// Draw places the instances for a viewport width. Variants whose image is
// missing are skipped.
func (d *Decoration) Draw(cat render.Catalog, viewportW float64) {
	d.viewportW = viewportW
	d.span = viewportW * d.cfg.SpanFactor
	d.instances = d.instances[:0]
	d.bestEffort = 0

	var variants []render.Image
	for _, name := range d.cfg.Images {
		img, ok := cat.Lookup(name)
		if !ok {
			d.log.Warn("decoration image missing, skipping variant", "decoration", d.cfg.Name, "image", name)
			continue
		}
		variants = append(variants, img)
	}
	if len(variants) == 0 {
		return
	}

	for _, p := range Place(d.rng, d.cfg.Count, d.span, d.cfg.MinSpacing, d.cfg.MaxAttempts) {
		if p.BestEffort {
			d.bestEffort++
		}
		img := variants[d.rng.Intn(len(variants))]
		in := instance{
			baseX: p.X,
			y:     d.cfg.YMin + d.rng.Float64()*(d.cfg.YMax-d.cfg.YMin),
			image: img.Name,
			w:     img.W,
			h:     img.H,
		}
		in.hover = d.newHover()
		d.instances = append(d.instances, in)
	}
	if d.bestEffort > 0 {
		d.log.Debug("decoration spacing not met for some instances",
			"decoration", d.cfg.Name, "count", d.bestEffort)
	}
}

// UpdatePosition wraps every instance into view for a scroll offset.
func (d *Decoration) UpdatePosition(offset float64) {
	if d.span <= 0 {
		return
	}
	for i := range d.instances {
		in := &d.instances[i]
		x := math.Mod(in.baseX-offset, d.span)
		if x < 0 {
			x += d.span
		}
		if x > d.viewportW {
			x -= d.span
		}
		in.screenX = x
	}
}

func (d *Decoration) newHover() hover {
	h := hover{alpha: 1}
	dc := d.cfg.Drift
	if dc == nil {
		return h
	}
	h.radius = between(d.rng, dc.RadiusMin, dc.RadiusMax)
	h.orbit = d.rng.Float64() * 2 * math.Pi
	h.orbitSpeed = between(d.rng, dc.OrbitSpeedMin, dc.OrbitSpeedMax)
	h.wobble = between(d.rng, dc.WobbleRadiusMin, dc.WobbleRadiusMax)
	h.wobblePhase = d.rng.Float64() * 2 * math.Pi
	h.wobbleSpeed = between(d.rng, dc.WobbleSpeedMin, dc.WobbleSpeedMax)
	h.swayPhase = d.rng.Float64() * 2 * math.Pi
	h.glowPhase = d.rng.Float64() * 2 * math.Pi
	h.glowSpeed = between(d.rng, dc.GlowSpeedMin, dc.GlowSpeedMax)
	h.settle(dc)
	return h
}

// settle recomputes the offset and glow from the current phases.
func (h *hover) settle(dc *config.DriftConfig) {
	h.dx = math.Cos(h.orbit)*h.radius + math.Cos(h.wobblePhase)*h.wobble + math.Cos(h.swayPhase)*dc.SwayX
	h.dy = math.Sin(h.orbit)*h.radius + math.Sin(h.wobblePhase)*h.wobble + math.Sin(h.swayPhase)*dc.SwayY
	// sin maps to [0, 1], then into [GlowMin, 1].
	h.alpha = dc.GlowMin + (1-dc.GlowMin)*(math.Sin(h.glowPhase)+1)/2
}

// Advance moves every drifting instance along its hover for one tick.
// Still decorations ignore it.
func (d *Decoration) Advance(tick core.Tick) {
	dc := d.cfg.Drift
	if dc == nil {
		return
	}
	for i := range d.instances {
		h := &d.instances[i].hover
		h.orbit = math.Mod(h.orbit+h.orbitSpeed*tick.Scale, 2*math.Pi)
		h.wobblePhase = math.Mod(h.wobblePhase+h.wobbleSpeed*tick.Scale, 2*math.Pi)
		h.swayPhase = math.Mod(h.swayPhase+dc.SwaySpeed*tick.Scale, 2*math.Pi)
		h.glowPhase = math.Mod(h.glowPhase+h.glowSpeed*tick.Scale, 2*math.Pi)
		h.settle(dc)
	}
}

// Reach is the farthest a drifting instance strays from its spot.
func (d *Decoration) Reach() float64 {
	dc := d.cfg.Drift
	if dc == nil {
		return 0
	}
	return dc.RadiusMax + dc.WobbleRadiusMax + math.Hypot(dc.SwayX, dc.SwayY)
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// BestEffort returns how many instances were placed without meeting the spacing.
func (d *Decoration) BestEffort() int {
	return d.bestEffort
}

// Len returns the number of placed instances.
func (d *Decoration) Len() int {
	return len(d.instances)
}

// Sprites emits one sprite per instance.
func (d *Decoration) Sprites(emit func(render.Sprite)) {
	for i, in := range d.instances {
		x := in.screenX + in.dx
		emit(render.Sprite{
			ID:      fmt.Sprintf("deco/%s/%d", d.cfg.Name, i),
			Image:   in.image,
			X:       x,
			Y:       in.y + in.dy,
			W:       in.w,
			H:       in.h,
			Depth:   d.depth,
			Alpha:   in.alpha,
			Visible: x+in.w > 0 && x < d.viewportW,
		})
	}
}
