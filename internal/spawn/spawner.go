package spawn

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

// Factory builds one entity at a spawn point.
type Factory[T Entity] func(at Point) T

// View is the part of the camera a spawner needs.
type View interface {
	ScreenToWorld(x float64) float64
	WorldToScreen(x float64) float64
	Offset() float64
}

// Viewport is the visible area in world pixels.
type Viewport struct {
	W, H       float64
	GroundLine float64
}

// Occupancy reports whether an active entity lies within radius of x.
type Occupancy interface {
	Near(x, radius float64) bool
}

type exclusion struct {
	occ    Occupancy
	radius float64
}

// Spawner creates entities of one type ahead of the camera and owns their
// active list. It is the only writer of that list.
type Spawner[T Entity] struct {
	kind     event.Kind
	cfg      config.SpawnerConfig
	interval time.Duration
	rng      *rand.Rand
	cat      render.Catalog
	log      *log.Logger
	factory  Factory[T]
	patterns *PatternTable

	exclusions []exclusion
	active     []T

	lastSpawn time.Duration
	lastX     float64
	spawned   bool
	warned    bool
}

// NewSpawner creates a spawner. cat may be nil to skip the image check.
func NewSpawner[T Entity](kind event.Kind, cfg config.SpawnerConfig, rng *rand.Rand, cat render.Catalog, logger *log.Logger, factory Factory[T]) *Spawner[T] {
	return &Spawner[T]{
		kind:     kind,
		cfg:      cfg,
		interval: cfg.Interval(),
		rng:      rng,
		cat:      cat,
		log:      logging.OrDiscard(logger),
		factory:  factory,
		patterns: NewPatternTable(cfg.Patterns, cfg.PatternOrder),
	}
}

// Exclude keeps spawns at least radius away from every entity in occ.
func (s *Spawner[T]) Exclude(occ Occupancy, radius float64) {
	if occ == nil || radius <= 0 {
		return
	}
	s.exclusions = append(s.exclusions, exclusion{occ: occ, radius: radius})
}

// Kind returns the entity type this spawner creates.
func (s *Spawner[T]) Kind() event.Kind { return s.kind }

// Interval returns the current spawn interval.
func (s *Spawner[T]) Interval() time.Duration { return s.interval }

// SetInterval changes the spawn interval, e.g. as difficulty rises.
func (s *Spawner[T]) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// TrySpawn attempts one spawn and returns the number of entities created.
// A spawn needs a running round, the interval to have elapsed since the last
// one, and a candidate far enough from the previous anchor, from every active
// entity of the same type and from every excluded type. The first spawn of a
// round only needs the distance checks.
func (s *Spawner[T]) TrySpawn(tick core.Tick, view View, vp Viewport) int {
	if !tick.Running() {
		return 0
	}
	if s.spawned && tick.Now-s.lastSpawn < s.interval {
		return 0
	}
	if !s.imageReady() {
		return 0
	}

	x := view.ScreenToWorld(vp.W + s.cfg.Margin)
	if s.cfg.Variation > 0 {
		x += s.rng.Float64() * s.cfg.Variation
	}
	if s.spawned && math.Abs(x-s.lastX) < s.cfg.MinDistance {
		return 0
	}
	if s.Near(x, s.cfg.MinDistance) {
		return 0
	}
	for _, ex := range s.exclusions {
		if ex.occ.Near(x, ex.radius) {
			return 0
		}
	}

	points := Place(s.patterns.Next(s.rng), x, vp.GroundLine, vp.H, s.rng)
	for _, p := range points {
		s.active = append(s.active, s.factory(p))
	}
	s.lastSpawn = tick.Now
	s.lastX = x
	s.spawned = true
	return len(points)
}

func (s *Spawner[T]) imageReady() bool {
	if s.cat == nil {
		return true
	}
	if _, ok := s.cat.Lookup(s.cfg.Image); ok {
		return true
	}
	if !s.warned {
		s.log.Warn("spawn image missing, not spawning", "kind", s.kind, "image", s.cfg.Image)
		s.warned = true
	}
	return false
}

// Advance moves the active entities when move is set, then drops every
// entity that was deactivated or whose right edge is left of cullBefore.
// It returns the number of entities dropped.
func (s *Spawner[T]) Advance(tick core.Tick, move bool, cullBefore float64) int {
	before := len(s.active)
	s.sweep(func(e T) bool {
		if move {
			e.Advance(tick)
		}
		if e.Bounds().Right() < cullBefore {
			e.Deactivate()
			return true
		}
		return false
	})
	return before - len(s.active)
}

// Resolve calls fn for every active entity in spawn order and removes those
// for which fn returns true, in the same pass.
func (s *Spawner[T]) Resolve(fn func(T) bool) {
	s.sweep(fn)
}

// Sweep is Resolve over the Entity interface, for callers that handle
// several spawner types alike.
func (s *Spawner[T]) Sweep(fn func(Entity) bool) {
	s.sweep(func(e T) bool { return fn(e) })
}

func (s *Spawner[T]) sweep(fn func(T) bool) {
	live := s.active[:0]
	for _, e := range s.active {
		if !e.Active() || fn(e) || !e.Active() {
			continue
		}
		live = append(live, e)
	}
	var zero T
	for i := len(live); i < len(s.active); i++ {
		s.active[i] = zero
	}
	s.active = live
}

// Near implements Occupancy over the active entities.
func (s *Spawner[T]) Near(x, radius float64) bool {
	for _, e := range s.active {
		if e.Active() && math.Abs(e.WorldX()-x) < radius {
			return true
		}
	}
	return false
}

// ShiftY moves every live entity vertically.
func (s *Spawner[T]) ShiftY(dy float64) {
	for _, e := range s.active {
		e.ShiftY(dy)
	}
}

// Active returns the live entities. The slice must not be modified.
func (s *Spawner[T]) Active() []T {
	return s.active
}

// Len returns the number of live entities.
func (s *Spawner[T]) Len() int {
	return len(s.active)
}

// Sprites emits the render description of every live entity.
func (s *Spawner[T]) Sprites(view View, emit func(render.Sprite)) {
	for _, e := range s.active {
		emit(e.Sprite(view.WorldToScreen))
	}
}

// Reset drops every entity and forgets the spawn history for a new round.
func (s *Spawner[T]) Reset() {
	for _, e := range s.active {
		e.Deactivate()
	}
	s.sweep(func(T) bool { return true })
	s.interval = s.cfg.Interval()
	s.lastSpawn = 0
	s.lastX = 0
	s.spawned = false
	s.warned = false
	s.patterns.Reset()
}
