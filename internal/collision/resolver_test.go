package collision

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/spawn"
)

var running = core.NewTick(0, core.ReferenceFrame, core.RoundRunning, 3)

type fakePlayer struct {
	body     core.RectF
	strike   core.RectF
	striking bool
}

func (p *fakePlayer) Body() core.RectF                 { return p.body }
func (p *fakePlayer) AttackRegion() (core.RectF, bool) { return p.strike, p.striking }

type fakeSource struct {
	kind     event.Kind
	entities []spawn.Entity
}

func (s *fakeSource) Kind() event.Kind { return s.kind }

func (s *fakeSource) Sweep(fn func(spawn.Entity) bool) {
	live := s.entities[:0]
	for _, e := range s.entities {
		if !fn(e) {
			live = append(live, e)
		}
	}
	s.entities = live
}

func hazard(id uint64, kind event.Kind, x, y float64) *spawn.Hazard {
	cfg := config.DefaultRunnerConfig().Spawners.Hazard
	return spawn.NewHazard(id, kind, cfg, x, y, rand.New(rand.NewSource(1)), 1)
}

func newItem(id uint64, x, y float64) *spawn.Collectible {
	cfg := config.DefaultRunnerConfig().Spawners.Collectible
	return spawn.NewCollectible(id, cfg, x, y, 10, rand.New(rand.NewSource(1)))
}

func setup(sources ...Source) (*Resolver, *event.Recorder) {
	bus := event.NewBus()
	rec := &event.Recorder{}
	bus.Subscribe(rec.Record)
	return New(bus, sources...), rec
}

func fxNames(events []event.Event) []string {
	var names []string
	for _, e := range events {
		if fx, ok := e.(event.FX); ok {
			names = append(names, fx.Name)
		}
	}
	return names
}

// A hazard standing at x=100 on y=300 covers 75..125 x 220..300.
func TestAttackDefeatsHazardWithoutKilling(t *testing.T) {
	src := &fakeSource{kind: event.KindHazard, entities: []spawn.Entity{hazard(1, event.KindHazard, 100, 300)}}
	r, rec := setup(src)
	p := &fakePlayer{
		body:     core.RectAround(100, 300, 40, 60),
		strike:   core.NewRectF(90, 240, 70, 50),
		striking: true,
	}

	assert.Equal(t, 1, r.Resolve(running, p))
	assert.Empty(t, src.entities)

	events := rec.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, event.EntityDefeated{Kind: event.KindHazard, ID: 1, X: 100, Y: 260}, events[0])
	assert.Equal(t, []string{event.FXHitHazard}, fxNames(events))
}

func TestBodyContactWithHazardIsLethal(t *testing.T) {
	src := &fakeSource{kind: event.KindHazard, entities: []spawn.Entity{hazard(1, event.KindHazard, 100, 300)}}
	r, rec := setup(src)
	p := &fakePlayer{
		body:   core.RectAround(120, 300, 40, 60),
		strike: core.NewRectF(90, 240, 70, 50),
	}

	assert.Equal(t, 1, r.Resolve(running, p))
	events := rec.Drain()
	require.NotEmpty(t, events)
	killed, ok := events[0].(event.PlayerKilled)
	require.True(t, ok)
	assert.Equal(t, uint64(1), killed.ID)
	assert.Equal(t, []string{event.FXCollisionWithHazard}, fxNames(events))
}

func TestCollectibleAwardsValue(t *testing.T) {
	c := newItem(7, 100, 300)
	src := &fakeSource{kind: event.KindCollectible, entities: []spawn.Entity{c}}
	r, rec := setup(src)
	p := &fakePlayer{body: core.RectAround(100, 300, 40, 60)}

	assert.Equal(t, 1, r.Resolve(running, p))
	assert.True(t, c.Consumed())
	events := rec.Drain()
	assert.Equal(t, event.ItemCollected{ID: 7, X: 100, Y: 285, Value: 10}, events[0])
	assert.Equal(t, []string{event.FXCollectItem}, fxNames(events))
}

func TestAttackPopsMinesAndCollectibles(t *testing.T) {
	mines := &fakeSource{kind: event.KindMine, entities: []spawn.Entity{hazard(1, event.KindMine, 100, 300)}}
	items := &fakeSource{kind: event.KindCollectible, entities: []spawn.Entity{newItem(2, 110, 280)}}
	r, rec := setup(mines, items)
	p := &fakePlayer{
		body:     core.RectAround(100, 300, 40, 60),
		strike:   core.NewRectF(60, 200, 100, 100),
		striking: true,
	}

	assert.Equal(t, 2, r.Resolve(running, p))
	events := rec.Drain()
	assert.Equal(t, []string{event.FXCollectibleExplosion, event.FXCollectibleExplosion}, fxNames(events))
	for _, e := range events {
		_, killed := e.(event.PlayerKilled)
		assert.False(t, killed)
		_, collected := e.(event.ItemCollected)
		assert.False(t, collected, "popped items award nothing")
	}
}

func TestAtMostOneOutcomePerEntity(t *testing.T) {
	h := hazard(1, event.KindHazard, 100, 300)
	src := &fakeSource{kind: event.KindHazard, entities: []spawn.Entity{h}}
	r, rec := setup(src)
	p := &fakePlayer{
		body:     core.RectAround(100, 300, 40, 60),
		strike:   core.RectAround(100, 300, 40, 60),
		striking: true,
	}

	assert.Equal(t, 1, r.Resolve(running, p))
	assert.Zero(t, r.Resolve(running, p))

	// An entity retired elsewhere cannot produce an outcome
	other := &fakeSource{kind: event.KindHazard, entities: []spawn.Entity{h}}
	r.Add(other)
	assert.Zero(t, r.Resolve(running, p))
	assert.Len(t, rec.Drain(), 2)
}

func TestFirstLethalEndsEvaluation(t *testing.T) {
	hazards := &fakeSource{kind: event.KindHazard, entities: []spawn.Entity{
		hazard(1, event.KindHazard, 100, 300),
		hazard(2, event.KindHazard, 110, 300),
	}}
	items := &fakeSource{kind: event.KindCollectible, entities: []spawn.Entity{newItem(3, 100, 300)}}
	r, rec := setup(hazards, items)
	p := &fakePlayer{body: core.RectAround(100, 300, 40, 60)}

	assert.Equal(t, 1, r.Resolve(running, p))
	assert.Len(t, hazards.entities, 1)
	assert.Len(t, items.entities, 1)
	assert.Equal(t, []string{event.FXCollisionWithHazard}, fxNames(rec.Drain()))
}

func TestNoEvaluationUnlessRunning(t *testing.T) {
	src := &fakeSource{kind: event.KindHazard, entities: []spawn.Entity{hazard(1, event.KindHazard, 100, 300)}}
	r, rec := setup(src)
	p := &fakePlayer{body: core.RectAround(100, 300, 40, 60)}

	for _, round := range []core.RoundState{core.RoundPaused, core.RoundOver} {
		assert.Zero(t, r.Resolve(core.Tick{Scale: 1, Round: round}, p))
	}
	assert.Len(t, src.entities, 1)
	assert.Empty(t, rec.Drain())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "lethal", OutcomeLethal.String())
	assert.Equal(t, "none", Outcome(42).String())
}
