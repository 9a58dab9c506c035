package world

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/fluffy-runner/internal/render"
	"github.com/vovakirdan/fluffy-runner/internal/sequence"
)

// particle is one cosmetic sprite driven by a timeline.
type particle struct {
	id       string
	image    string
	x, y     float64
	size     float64
	alpha    float64
	rotation float64
	done     bool
}

func (p *particle) sprite(worldToScreen func(float64) float64) render.Sprite {
	return render.Sprite{
		ID:       p.id,
		Image:    p.image,
		X:        worldToScreen(p.x - p.size/2),
		Y:        p.y - p.size/2,
		W:        p.size,
		H:        p.size,
		Depth:    render.DepthEffects,
		Rotation: p.rotation,
		Alpha:    p.alpha,
		Visible:  !p.done && p.alpha > 0,
	}
}

// effects spawns particles and keeps them until their timeline ends.
type effects struct {
	sched     *sequence.Scheduler
	particles []*particle
	next      uint64
}

func (fx *effects) add(image string, x, y, size float64) *particle {
	fx.next++
	p := &particle{
		id:    fmt.Sprintf("fx/%s/%d", image, fx.next),
		image: image,
		x:     x,
		y:     y,
		size:  size,
		alpha: 1,
	}
	fx.particles = append(fx.particles, p)
	return p
}

// explosion bursts n particles outward from (x, y).
func (fx *effects) explosion(x, y float64, n int, d time.Duration) {
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		dx, dy := math.Cos(angle)*60, math.Sin(angle)*60
		p := fx.add("particle", x, y, 8)
		fx.sched.Add(&sequence.Timeline{
			Duration: d,
			Ease:     sequence.EaseOutQuad,
			OnStep: func(t float64) {
				p.x = x + dx*t
				p.y = y + dy*t
				p.alpha = 1 - t
				p.rotation = angle + t*math.Pi
			},
			OnDone: func() { p.done = true },
		})
	}
}

// splatter grows and fades one blot where a hazard was defeated.
func (fx *effects) splatter(x, y float64, d time.Duration) {
	p := fx.add("splatter", x, y, 20)
	fx.sched.Add(&sequence.Timeline{
		Duration: d,
		Ease:     sequence.EaseOutQuad,
		OnStep: func(t float64) {
			p.size = 20 + 40*t
			p.alpha = 1 - t
		},
		OnDone: func() { p.done = true },
	})
}

// dust sends two puffs sideways from an attack landing.
func (fx *effects) dust(x, y float64, d time.Duration) {
	for _, dir := range []float64{-1, 1} {
		p := fx.add("dust", x, y-6, 12)
		fx.sched.Add(&sequence.Timeline{
			Duration: d,
			OnStep: func(t float64) {
				p.x = x + dir*30*t
				p.alpha = 1 - t
			},
			OnDone: func() { p.done = true },
		})
	}
}

// sweep drops finished particles.
func (fx *effects) sweep() {
	live := fx.particles[:0]
	for _, p := range fx.particles {
		if !p.done {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(fx.particles); i++ {
		fx.particles[i] = nil
	}
	fx.particles = live
}

func (fx *effects) clear() {
	fx.particles = nil
}

func (fx *effects) sprites(worldToScreen func(float64) float64, emit func(render.Sprite)) {
	for _, p := range fx.particles {
		emit(p.sprite(worldToScreen))
	}
}
