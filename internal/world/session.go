// Package world wires the runner together. A Session owns the camera, the
// layer composition, the player, the spawners, the collision resolver and the
// score controller, and advances them in a fixed order once per tick.
package world

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/camera"
	"github.com/vovakirdan/fluffy-runner/internal/collision"
	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
	"github.com/vovakirdan/fluffy-runner/internal/player"
	"github.com/vovakirdan/fluffy-runner/internal/render"
	"github.com/vovakirdan/fluffy-runner/internal/score"
	"github.com/vovakirdan/fluffy-runner/internal/sequence"
	"github.com/vovakirdan/fluffy-runner/internal/spawn"
	"github.com/vovakirdan/fluffy-runner/internal/tiling"
)

// Options configure a new session.
type Options struct {
	Config  config.RunnerConfig
	Runtime core.RuntimeConfig
	Catalog render.Catalog
	KV      score.KV
	Logger  *log.Logger
}

// Session is one player's world.
type Session struct {
	cfg  config.RunnerConfig
	log  *log.Logger
	cat  render.Catalog
	rng  *rand.Rand
	seed int64

	bus   *event.Bus
	sched *sequence.Scheduler
	fx    effects

	viewW, viewH float64
	groundLine   float64
	clock        time.Duration
	halted       bool
	hudAlpha     float64

	player     *player.Character
	camera     *camera.Camera
	world      *tiling.Composition
	ids        spawn.IDs
	hazards    *spawn.Spawner[*spawn.Hazard]
	mines      *spawn.Spawner[*spawn.Hazard]
	items      *spawn.Spawner[*spawn.Collectible]
	resolver   *collision.Resolver
	score      *score.Controller
	difficulty *config.DifficultyManager
	speedScale float64

	tracker *render.Tracker
	intents []render.Intent
}

// New creates a session and starts its first round.
func New(opts Options) *Session {
	cfg := opts.Config.Validate()
	rt := opts.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	cat := opts.Catalog
	if cat == nil {
		cat = render.MapCatalog{}
	}

	s := &Session{
		cfg:        cfg,
		log:        logging.OrDiscard(opts.Logger),
		cat:        cat,
		seed:       rt.Seed,
		rng:        rand.New(rand.NewSource(rt.Seed)),
		bus:        event.NewBus(),
		sched:      sequence.NewScheduler(),
		viewW:      float64(rt.ScreenW),
		viewH:      float64(rt.ScreenH),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		speedScale: 1,
		tracker:    render.NewTracker(),
	}
	s.groundLine = s.viewH - cfg.World.GroundOffset
	s.fx.sched = s.sched

	s.player = player.New(cfg.Player, cfg.Camera.StartX, s.groundLine, s.bus, s.sched)
	s.camera = camera.New(s.player, cfg.Camera.StartX, cfg.Camera.FollowThreshold)
	s.world = tiling.NewComposition(cfg.Layers, cfg.Decorations, cat, s.rng, s.log)
	s.buildSpawners()
	s.resolver = collision.New(s.bus, s.hazards, s.mines, s.items)
	s.score = score.New(cfg.Score, opts.KV, s.bus, s.log)

	// The player reacts before the score controller ends the round.
	s.bus.Subscribe(s.handle)
	s.bus.Subscribe(s.score.Handle)

	s.world.Draw(s.viewW, s.groundLine)
	s.Reset()
	return s
}

type excluder interface {
	Exclude(occ spawn.Occupancy, radius float64)
}

func (s *Session) buildSpawners() {
	sc := s.cfg.Spawners
	s.hazards = spawn.NewSpawner(event.KindHazard, sc.Hazard, s.rng, s.cat, s.log, func(p spawn.Point) *spawn.Hazard {
		return spawn.NewHazard(s.ids.Next(), event.KindHazard, sc.Hazard, p.X, p.Y, s.rng, s.speedScale)
	})
	s.mines = spawn.NewSpawner(event.KindMine, sc.Mine, s.rng, s.cat, s.log, func(p spawn.Point) *spawn.Hazard {
		return spawn.NewHazard(s.ids.Next(), event.KindMine, sc.Mine, p.X, p.Y, s.rng, 1)
	})
	s.items = spawn.NewSpawner(event.KindCollectible, sc.Collectible, s.rng, s.cat, s.log, func(p spawn.Point) *spawn.Collectible {
		return spawn.NewCollectible(s.ids.Next(), sc.Collectible, p.X, p.Y, s.cfg.Score.Unit, s.rng)
	})

	occupancy := map[string]spawn.Occupancy{
		string(event.KindHazard):      s.hazards,
		string(event.KindMine):        s.mines,
		string(event.KindCollectible): s.items,
	}
	exclude := func(kind event.Kind, target excluder, rules []config.ExclusionConfig) {
		for _, ex := range rules {
			occ, ok := occupancy[ex.Kind]
			if !ok {
				s.log.Warn("unknown exclusion kind", "spawner", kind, "kind", ex.Kind)
				continue
			}
			target.Exclude(occ, ex.Radius)
		}
	}
	exclude(event.KindHazard, s.hazards, sc.Hazard.Exclusions)
	exclude(event.KindMine, s.mines, sc.Mine.Exclusions)
	exclude(event.KindCollectible, s.items, sc.Collectible.Exclusions)
}

// handle reacts to outcomes on behalf of the player and the effects.
func (s *Session) handle(e event.Event) {
	fx := s.cfg.Effects
	switch e := e.(type) {
	case event.PlayerKilled:
		s.player.Kill()
	case event.EntityDefeated:
		s.fx.splatter(e.X, e.Y, ms(fx.SplatterMS))
	case event.EntityPopped:
		s.fx.explosion(e.X, e.Y, fx.Particles, ms(fx.ExplosionMS))
	case event.FX:
		if e.Name == event.FXAttackLand {
			s.fx.dust(e.X, e.Y, ms(fx.DustMS))
		}
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Subscribe registers h for every event of the session.
func (s *Session) Subscribe(h event.Handler) {
	s.bus.Subscribe(h)
}

// Reset starts a new round: everything but the best score and the layout of
// the world is cleared, including pending sequences.
func (s *Session) Reset() {
	s.sched.Clear()
	s.fx.clear()
	s.clock = 0
	s.halted = false
	s.speedScale = 1

	s.camera.Reset()
	s.player.Reset(s.cfg.Camera.StartX, s.groundLine)
	s.hazards.Reset()
	s.mines.Reset()
	s.items.Reset()
	s.world.UpdatePosition(0)
	s.score.Reset()

	s.hudAlpha = 0
	s.sched.Add(&sequence.Timeline{
		Duration: ms(s.cfg.Effects.HUDFadeMS),
		OnStep:   func(p float64) { s.hudAlpha = p },
	})
	s.log.Debug("round started", "seed", s.seed)
}

// Step advances the session by dt with the key events gathered since the
// previous step.
func (s *Session) Step(input []core.KeyEvent, dt time.Duration) core.StepResult {
	for _, e := range input {
		if !e.Down {
			continue
		}
		switch e.Action {
		case core.ActionPause:
			s.score.TogglePause()
		case core.ActionRestart:
			s.Reset()
		}
	}
	if s.halted {
		return s.result()
	}

	round := s.score.Round()
	if round != core.RoundPaused {
		s.clock += dt
	}
	tick := core.NewTick(s.clock, dt, round, s.cfg.World.MaxFrameScale)

	// 1-2: input, then player physics and regions.
	for _, e := range input {
		if tick.Running() || !e.Down {
			s.player.HandleInput(e)
		}
	}
	s.player.SetLeftBound(s.camera.Offset() + s.cfg.Player.Body.W/2)
	s.player.Update(tick)
	if !s.check() {
		s.emit()
		return s.result()
	}

	// 3-4: camera, then layers.
	s.camera.Update(tick)
	s.world.UpdatePosition(s.camera.Offset())
	if round != core.RoundPaused {
		s.world.Advance(tick)
	}

	// 5: spawning and entity motion.
	s.applyDifficulty(tick)
	vp := spawn.Viewport{W: s.viewW, H: s.viewH, GroundLine: s.groundLine}
	s.hazards.TrySpawn(tick, s.camera, vp)
	s.mines.TrySpawn(tick, s.camera, vp)
	s.items.TrySpawn(tick, s.camera, vp)

	move := s.entitiesMove(round)
	cull := s.camera.Offset() - s.cfg.World.CullMargin
	s.hazards.Advance(tick, move, cull)
	s.mines.Advance(tick, move, cull)
	s.items.Advance(tick, move, cull)

	// 6-7: collisions; player and score react through the bus.
	s.resolver.Resolve(tick, s.player)

	// 8: sequences, then render intents.
	if round != core.RoundPaused {
		s.sched.Advance(dt)
		s.fx.sweep()
	}
	s.check()
	s.emit()
	return s.result()
}

func (s *Session) entitiesMove(round core.RoundState) bool {
	switch round {
	case core.RoundRunning:
		return true
	case core.RoundPaused:
		return s.cfg.Round.EntitiesMoveWhilePaused
	default:
		return s.cfg.Round.EntitiesMoveAfterOver
	}
}

func (s *Session) applyDifficulty(tick core.Tick) {
	if !tick.Running() || !s.difficulty.IsEnabled() {
		return
	}
	points, sc := s.score.Score(), s.cfg.Spawners
	s.hazards.SetInterval(s.difficulty.Interval(sc.Hazard.Interval(), points, s.clock))
	s.mines.SetInterval(s.difficulty.Interval(sc.Mine.Interval(), points, s.clock))
	s.items.SetInterval(s.difficulty.Interval(sc.Collectible.Interval(), points, s.clock))
	s.speedScale = s.difficulty.Speed(1, points, s.clock)
}

// check halts the session when its state stops being a number, so nothing
// downstream acts on it. It reports whether the state is sound.
func (s *Session) check() bool {
	if s.player.Valid() && core.Finite(s.camera.Offset()) {
		return true
	}
	s.halted = true
	s.log.Error("inconsistent world state, halting",
		"player_x", s.player.WorldX(), "player_y", s.player.WorldY(), "offset", s.camera.Offset())
	return false
}

func (s *Session) emit() {
	s.tracker.Begin()
	s.world.Sprites(s.tracker.Put)
	s.hazards.Sprites(s.camera, s.tracker.Put)
	s.mines.Sprites(s.camera, s.tracker.Put)
	s.items.Sprites(s.camera, s.tracker.Put)
	s.tracker.Put(s.player.Sprite(s.camera.WorldToScreen))
	s.fx.sprites(s.camera.WorldToScreen, s.tracker.Put)
	s.intents = s.tracker.End()
}

func (s *Session) result() core.StepResult {
	st := s.score.State()
	st.Halted = s.halted
	return core.StepResult{State: st}
}

// Resize adapts the session to a new viewport without restarting the round.
func (s *Session) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.viewW, s.viewH = float64(w), float64(h)
	ground := s.viewH - s.cfg.World.GroundOffset
	dy := ground - s.groundLine
	s.groundLine = ground

	s.player.SetGroundLine(ground)
	s.hazards.ShiftY(dy)
	s.mines.ShiftY(dy)
	s.items.ShiftY(dy)
	s.world.Resize(s.viewW, ground, s.camera.Offset())
	s.log.Debug("viewport resized", "w", w, "h", h, "ground", ground)
}

// Intents returns the render intents of the last step. The slice is reused
// by the next step.
func (s *Session) Intents() []render.Intent { return s.intents }

// State returns the externally visible round state.
func (s *Session) State() core.GameState { return s.result().State }

// Round returns the authoritative round state.
func (s *Session) Round() core.RoundState { return s.score.Round() }

// Clock returns the session clock, which stops while paused.
func (s *Session) Clock() time.Duration { return s.clock }

// HUDAlpha returns the opacity of the HUD entrance fade.
func (s *Session) HUDAlpha() float64 { return s.hudAlpha }

// Player returns the player character.
func (s *Session) Player() *player.Character { return s.player }

// Camera returns the camera.
func (s *Session) Camera() *camera.Camera { return s.camera }

// Composition returns the world layers.
func (s *Session) Composition() *tiling.Composition { return s.world }

// Hazards returns the hazard spawner.
func (s *Session) Hazards() *spawn.Spawner[*spawn.Hazard] { return s.hazards }

// Mines returns the mine spawner.
func (s *Session) Mines() *spawn.Spawner[*spawn.Hazard] { return s.mines }

// Collectibles returns the collectible spawner.
func (s *Session) Collectibles() *spawn.Spawner[*spawn.Collectible] { return s.items }

// GroundLine returns the y of the ground in world pixels.
func (s *Session) GroundLine() float64 { return s.groundLine }

// Viewport returns the viewport size in world pixels.
func (s *Session) Viewport() (w, h float64) { return s.viewW, s.viewH }

// Pending returns the number of running timed sequences.
func (s *Session) Pending() int { return s.sched.Len() }
