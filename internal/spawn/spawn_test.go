package spawn

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/render"
)

var (
	viewport = Viewport{W: 1280, H: 720, GroundLine: 570}
	catalog  = render.MapCatalog{
		"hazard":      {Name: "hazard", W: 50, H: 80, Frames: 2},
		"collectible": {Name: "collectible", W: 30, H: 30, Frames: 1},
		"mine":        {Name: "mine", W: 36, H: 36, Frames: 1},
	}
)

type fakeView struct{ offset float64 }

func (v *fakeView) ScreenToWorld(x float64) float64 { return x + v.offset }
func (v *fakeView) WorldToScreen(x float64) float64 { return x - v.offset }
func (v *fakeView) Offset() float64                 { return v.offset }

func at(now time.Duration) core.Tick {
	return core.NewTick(now, core.ReferenceFrame, core.RoundRunning, 3)
}

func hazardSpawner(cfg config.SpawnerConfig, cat render.Catalog) *Spawner[*Hazard] {
	rng := rand.New(rand.NewSource(1))
	ids := &IDs{}
	return NewSpawner(event.KindHazard, cfg, rng, cat, nil, func(p Point) *Hazard {
		return NewHazard(ids.Next(), event.KindHazard, cfg, p.X, p.Y, rng, 1)
	})
}

func collectibleSpawner(cfg config.SpawnerConfig) *Spawner[*Collectible] {
	rng := rand.New(rand.NewSource(2))
	ids := &IDs{}
	return NewSpawner(event.KindCollectible, cfg, rng, catalog, nil, func(p Point) *Collectible {
		return NewCollectible(ids.Next(), cfg, p.X, p.Y, 10, rng)
	})
}

func TestTwoAttemptsWithinIntervalSpawnOnce(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Spawners.Hazard
	require.Equal(t, 5000, cfg.IntervalMS)
	require.Equal(t, 1000.0, cfg.MinDistance)

	s := hazardSpawner(cfg, catalog)
	view := &fakeView{}

	assert.Equal(t, 1, s.TrySpawn(at(0), view, viewport), "first spawn of a round is immediate")
	assert.Equal(t, 0, s.TrySpawn(at(4000*time.Millisecond), view, viewport))
	assert.Equal(t, 1, s.Len())
}

func TestSpawnNeedsDistanceAfterInterval(t *testing.T) {
	s := hazardSpawner(config.DefaultRunnerConfig().Spawners.Hazard, catalog)
	view := &fakeView{}

	require.Equal(t, 1, s.TrySpawn(at(0), view, viewport))
	first := s.Active()[0].WorldX()
	assert.Equal(t, 1380.0, first, "candidate is one margin past the right edge")

	assert.Equal(t, 0, s.TrySpawn(at(6*time.Second), view, viewport), "same anchor is too close")

	view.offset = 999
	assert.Equal(t, 0, s.TrySpawn(at(7*time.Second), view, viewport))

	view.offset = 1000
	require.Equal(t, 1, s.TrySpawn(at(8*time.Second), view, viewport))
	assert.Equal(t, first+1000, s.Active()[1].WorldX())
}

func TestConsecutiveSpawnsKeepMinimumDistance(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Spawners.Mine
	rng := rand.New(rand.NewSource(7))
	ids := &IDs{}
	s := NewSpawner(event.KindMine, cfg, rng, catalog, nil, func(p Point) *Hazard {
		return NewHazard(ids.Next(), event.KindMine, cfg, p.X, p.Y, rng, 1)
	})
	view := &fakeView{}

	var xs []float64
	for i := 0; i < 20000; i++ {
		now := time.Duration(i) * core.ReferenceFrame
		view.offset = float64(i) * 5
		tick := at(now)
		if n := s.TrySpawn(tick, view, viewport); n > 0 {
			active := s.Active()
			xs = append(xs, active[len(active)-1].WorldX())
		}
		s.Advance(tick, true, view.offset-200)
		assert.LessOrEqual(t, s.Len(), 10, "entities behind the camera are culled")
	}

	require.Greater(t, len(xs), 20)
	for i := 1; i < len(xs); i++ {
		assert.GreaterOrEqual(t, math.Abs(xs[i]-xs[i-1]), cfg.MinDistance)
	}
}

func TestExclusionRadius(t *testing.T) {
	cfgs := config.DefaultRunnerConfig().Spawners
	hazards := hazardSpawner(cfgs.Hazard, catalog)
	items := collectibleSpawner(cfgs.Collectible)
	items.Exclude(hazards, 500)
	view := &fakeView{}

	require.Equal(t, 1, hazards.TrySpawn(at(0), view, viewport))
	assert.Equal(t, 0, items.TrySpawn(at(0), view, viewport), "hazard sits on the candidate")

	view.offset = 600
	assert.Equal(t, 5, items.TrySpawn(at(0), view, viewport), "first formation has five items")
}

func TestFormationLayout(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Spawners.Collectible
	items := collectibleSpawner(cfg)
	view := &fakeView{}

	require.Equal(t, 5, items.TrySpawn(at(0), view, viewport))
	base := viewport.GroundLine - viewport.H*0.15
	for i, c := range items.Active() {
		assert.Equal(t, 1380+float64(i)*150, c.WorldX())
		assert.InDelta(t, base, c.WorldY(), 15)
	}

	view.offset = 2000
	require.Equal(t, 4, items.TrySpawn(at(2*time.Second), view, viewport), "table cycles to the four-item row")
}

func TestMissingImageDeclines(t *testing.T) {
	s := hazardSpawner(config.DefaultRunnerConfig().Spawners.Hazard, render.MapCatalog{})
	view := &fakeView{}
	assert.Equal(t, 0, s.TrySpawn(at(0), view, viewport))
	assert.Equal(t, 0, s.TrySpawn(at(10*time.Second), view, viewport))
	assert.Zero(t, s.Len())
}

func TestNoSpawnUnlessRunning(t *testing.T) {
	s := hazardSpawner(config.DefaultRunnerConfig().Spawners.Hazard, catalog)
	view := &fakeView{}
	for _, round := range []core.RoundState{core.RoundPaused, core.RoundOver} {
		tick := core.Tick{Scale: 1, DT: core.ReferenceFrame, Round: round}
		assert.Equal(t, 0, s.TrySpawn(tick, view, viewport), round.String())
	}
}

func TestAdvanceCullsBehindCamera(t *testing.T) {
	s := hazardSpawner(config.DefaultRunnerConfig().Spawners.Hazard, catalog)
	view := &fakeView{}
	require.Equal(t, 1, s.TrySpawn(at(0), view, viewport))
	h := s.Active()[0]
	x := h.WorldX()

	assert.Zero(t, s.Advance(at(0), false, 0))
	assert.Equal(t, x, h.WorldX(), "frozen entities do not move")

	assert.Equal(t, 1, s.Advance(at(0), false, 3000))
	assert.Zero(t, s.Len())
	assert.False(t, h.Active())
}

func TestResolveRemovesInSamePass(t *testing.T) {
	s := hazardSpawner(config.DefaultRunnerConfig().Spawners.Hazard, catalog)
	view := &fakeView{}
	s.TrySpawn(at(0), view, viewport)
	view.offset = 1000
	s.TrySpawn(at(5*time.Second), view, viewport)
	require.Equal(t, 2, s.Len())

	var seen []uint64
	s.Resolve(func(h *Hazard) bool {
		seen = append(seen, h.ID())
		return h.ID() == 1 && h.Deactivate()
	})
	assert.Equal(t, []uint64{1, 2}, seen)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, uint64(2), s.Active()[0].ID())

	seen = nil
	s.Sweep(func(e Entity) bool {
		seen = append(seen, e.ID())
		return false
	})
	assert.Equal(t, []uint64{2}, seen)
}

func TestResetForgetsHistory(t *testing.T) {
	s := hazardSpawner(config.DefaultRunnerConfig().Spawners.Hazard, catalog)
	view := &fakeView{}
	require.Equal(t, 1, s.TrySpawn(at(0), view, viewport))
	h := s.Active()[0]

	s.SetInterval(time.Second)
	s.Reset()
	assert.Zero(t, s.Len())
	assert.False(t, h.Active())
	assert.Equal(t, 5*time.Second, s.Interval())
	assert.Equal(t, 1, s.TrySpawn(at(0), view, viewport))
}

func TestPatrolTurnsAround(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Spawners.Hazard
	rng := rand.New(rand.NewSource(3))
	h := NewHazard(1, event.KindHazard, cfg, 1000, 570, rng, 1)
	facing := h.Facing()
	assert.Equal(t, 1000.0, h.PatrolCenter())

	turned := false
	for i := 0; i < 2000; i++ {
		h.Advance(at(0))
		assert.Equal(t, 570.0, h.WorldY(), "patrol stays on the ground")
		assert.LessOrEqual(t, math.Abs(h.WorldX()-h.PatrolCenter()), cfg.Motion.RadiusMax+10)
		if h.Facing() != facing {
			turned = true
		}
	}
	assert.True(t, turned)
	assert.NotEqual(t, 1000.0, h.PatrolCenter(), "a turn re-centres the patrol")
}

func TestBobStaysWithinAmplitude(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Spawners.Collectible
	rng := rand.New(rand.NewSource(4))
	c := NewCollectible(1, cfg, 500, 300, 10, rng)

	for i := 0; i < 500; i++ {
		c.Advance(at(0))
		assert.Equal(t, 500.0, c.WorldX())
		assert.InDelta(t, 300, c.WorldY(), cfg.Motion.BobAmplitude+1e-9)
	}
}

func TestCollectAndDeactivateAreIdempotent(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Spawners.Collectible
	c := NewCollectible(1, cfg, 0, 0, 10, rand.New(rand.NewSource(1)))

	assert.True(t, c.Collect())
	assert.False(t, c.Collect())
	assert.False(t, c.Deactivate())
	assert.True(t, c.Consumed())
	assert.Equal(t, 10, c.Value())

	h := NewHazard(2, event.KindHazard, config.DefaultRunnerConfig().Spawners.Hazard, 0, 0, rand.New(rand.NewSource(1)), 1)
	assert.True(t, h.Deactivate())
	assert.False(t, h.Deactivate())
	assert.False(t, h.Sprite(func(x float64) float64 { return x }).Visible)
}

func TestPatternTableOrder(t *testing.T) {
	patterns := []config.PatternConfig{{Name: "a"}, {Name: "b"}}
	rng := rand.New(rand.NewSource(1))

	cycle := NewPatternTable(patterns, "cycle")
	var names []string
	for i := 0; i < 3; i++ {
		names = append(names, cycle.Next(rng).Name)
	}
	assert.Equal(t, []string{"a", "b", "a"}, names)
	cycle.Reset()
	assert.Equal(t, "a", cycle.Next(rng).Name)

	empty := NewPatternTable(nil, "")
	assert.Equal(t, "ground", empty.Next(rng).Kind)
}

func TestPlaceFloating(t *testing.T) {
	p := config.PatternConfig{Kind: "floating", HeightFraction: 0.5, OffsetMin: 10, OffsetMax: 10}
	pts := Place(p, 100, 570, 720, rand.New(rand.NewSource(1)))
	require.Len(t, pts, 1)
	assert.Equal(t, Point{X: 100, Y: 570 - 360 - 10}, pts[0])
}
