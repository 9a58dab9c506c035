// Package spawn creates, moves and retires the hazards and collectibles of
// the world. A generic Spawner owns the active list of one entity type.
package spawn

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

// Entity is anything a Spawner manages.
type Entity interface {
	ID() uint64
	Kind() event.Kind
	WorldX() float64
	Bounds() core.RectF
	Active() bool
	// Deactivate retires the entity. Only the first call reports true.
	Deactivate() bool
	Advance(tick core.Tick)
	// ShiftY moves the entity vertically, following the ground after a resize.
	ShiftY(dy float64)
	Sprite(worldToScreen func(float64) float64) render.Sprite
}

// IDs hands out entity ids unique within a session.
type IDs struct {
	next uint64
}

// Next returns a fresh id.
func (s *IDs) Next() uint64 {
	s.next++
	return s.next
}

// body holds what hazards and collectibles share: position, size, motion
// and animation.
type body struct {
	id     uint64
	kind   event.Kind
	image  string
	x, y   float64
	w, h   float64
	active bool

	motion  mover
	frames  int
	frameMS time.Duration
	elapsed time.Duration
}

func newBody(id uint64, kind event.Kind, cfg config.SpawnerConfig, x, y float64, rng *rand.Rand, speedScale float64) body {
	frames := cfg.Animation.Frames
	if frames < 1 {
		frames = 1
	}
	frameMS := time.Duration(cfg.Animation.FrameMS) * time.Millisecond
	if frameMS <= 0 {
		frameMS = time.Second
	}
	return body{
		id:      id,
		kind:    kind,
		image:   cfg.Image,
		x:       x,
		y:       y,
		w:       cfg.Size.W,
		h:       cfg.Size.H,
		active:  true,
		motion:  newMover(cfg.Motion, x, y, rng, speedScale),
		frames:  frames,
		frameMS: frameMS,
	}
}

func (b *body) ID() uint64            { return b.id }
func (b *body) Kind() event.Kind      { return b.kind }
func (b *body) WorldX() float64       { return b.x }
func (b *body) WorldY() float64       { return b.y }
func (b *body) Active() bool          { return b.active }
func (b *body) Bounds() core.RectF    { return core.RectAround(b.x, b.y, b.w, b.h) }
func (b *body) Facing() float64       { return b.motion.facing }
func (b *body) PatrolCenter() float64 { return b.motion.origin }

func (b *body) Deactivate() bool {
	if !b.active {
		return false
	}
	b.active = false
	return true
}

func (b *body) Advance(tick core.Tick) {
	if !b.active {
		return
	}
	b.motion.advance(&b.x, &b.y, tick.Scale)
	b.elapsed += tick.DT
}

func (b *body) ShiftY(dy float64) {
	b.y += dy
	b.motion.baseY += dy
}

func (b *body) Sprite(worldToScreen func(float64) float64) render.Sprite {
	r := b.Bounds()
	return render.Sprite{
		ID:       fmt.Sprintf("%s/%d", b.kind, b.id),
		Image:    b.image,
		Frame:    int(b.elapsed/b.frameMS) % b.frames,
		X:        worldToScreen(r.X),
		Y:        r.Y,
		W:        r.W,
		H:        r.H,
		Depth:    render.DepthEntities,
		Rotation: b.motion.rotation,
		FlipX:    b.motion.facing < 0,
		Alpha:    1,
		Visible:  b.active,
	}
}

// Hazard is lethal on body contact and can be destroyed by an attack.
type Hazard struct {
	body
}

// NewHazard creates an active hazard with its feet at (x, y).
func NewHazard(id uint64, kind event.Kind, cfg config.SpawnerConfig, x, y float64, rng *rand.Rand, speedScale float64) *Hazard {
	return &Hazard{body: newBody(id, kind, cfg, x, y, rng, speedScale)}
}

// Collectible adds to the score on body contact.
type Collectible struct {
	body
	value    int
	consumed bool
}

// NewCollectible creates an active collectible with its bottom at (x, y).
func NewCollectible(id uint64, cfg config.SpawnerConfig, x, y float64, value int, rng *rand.Rand) *Collectible {
	return &Collectible{body: newBody(id, event.KindCollectible, cfg, x, y, rng, 1), value: value}
}

// Collect consumes the collectible. Only the first call reports true.
func (c *Collectible) Collect() bool {
	if !c.Deactivate() {
		return false
	}
	c.consumed = true
	return true
}

// Consumed reports whether the collectible was collected rather than popped.
func (c *Collectible) Consumed() bool { return c.consumed }

// Value is the score awarded on collection.
func (c *Collectible) Value() int { return c.value }

// mover implements the motion kinds: patrol walks back and forth around an
// origin, bob oscillates vertically with a rotation swing, static does nothing.
type mover struct {
	cfg config.MotionConfig
	rng *rand.Rand

	speed  float64
	origin float64
	radius float64
	facing float64

	baseY      float64
	bobPhase   float64
	swingPhase float64
	rotation   float64
}

func newMover(cfg config.MotionConfig, x, y float64, rng *rand.Rand, speedScale float64) mover {
	m := mover{cfg: cfg, rng: rng, origin: x, baseY: y, facing: -1}
	switch cfg.Kind {
	case "patrol":
		m.speed = between(rng, cfg.SpeedMin, cfg.SpeedMax) * speedScale
		m.radius = between(rng, cfg.RadiusMin, cfg.RadiusMax)
		if rng.Intn(2) == 0 {
			m.facing = 1
		}
	case "bob":
		m.bobPhase = rng.Float64() * 2 * math.Pi
		m.swingPhase = rng.Float64() * 2 * math.Pi
	}
	return m
}

func (m *mover) advance(x, y *float64, scale float64) {
	switch m.cfg.Kind {
	case "patrol":
		*x += m.facing * m.speed * scale
		if math.Abs(*x-m.origin) >= m.radius {
			m.turn(*x)
			m.radius = between(m.rng, m.cfg.RadiusMin, m.cfg.RadiusMax)
		} else if m.rng.Float64() < m.cfg.TurnChance*scale {
			m.turn(*x)
		}
	case "bob":
		m.bobPhase += m.cfg.BobSpeed * scale
		m.swingPhase += m.cfg.SwingSpeed * scale
		*y = m.baseY + math.Sin(m.bobPhase)*m.cfg.BobAmplitude
		m.rotation = math.Sin(m.swingPhase) * m.cfg.SwingAmplitude
	}
}

// turn reverses direction and re-centres the patrol on the current position.
func (m *mover) turn(x float64) {
	m.facing = -m.facing
	m.origin = x
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
