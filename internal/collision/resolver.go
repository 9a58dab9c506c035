// Package collision arbitrates contacts between the player and spawned
// entities. It reads the player's regions after the player has moved and
// publishes one outcome per touched entity.
package collision

import (
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/spawn"
)

// Player exposes the regions the resolver tests against.
type Player interface {
	Body() core.RectF
	AttackRegion() (core.RectF, bool)
}

// Source is a spawner seen through the Entity interface.
type Source interface {
	Kind() event.Kind
	Sweep(fn func(spawn.Entity) bool)
}

// Publisher receives outcome events.
type Publisher interface {
	Publish(event.Event)
}

// Outcome is what happened to one entity.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDefeated
	OutcomePopped
	OutcomeCollected
	OutcomeLethal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefeated:
		return "defeated"
	case OutcomePopped:
		return "popped"
	case OutcomeCollected:
		return "collected"
	case OutcomeLethal:
		return "lethal"
	default:
		return "none"
	}
}

// collectible is implemented by entities that award score on contact.
type collectible interface {
	Collect() bool
	Value() int
}

// Resolver checks every source against the player once per tick.
type Resolver struct {
	pub     Publisher
	sources []Source
}

// New creates a resolver over sources, evaluated in the given order.
func New(pub Publisher, sources ...Source) *Resolver {
	return &Resolver{pub: pub, sources: sources}
}

// Add appends a source.
func (r *Resolver) Add(s Source) {
	r.sources = append(r.sources, s)
}

// Resolve evaluates all sources and returns the number of outcomes. It does
// nothing unless the round is running, and stops at the first lethal
// outcome since the round ends with it.
func (r *Resolver) Resolve(tick core.Tick, p Player) int {
	if !tick.Running() || p == nil {
		return 0
	}
	body := p.Body()
	strike, striking := p.AttackRegion()

	count := 0
	lethal := false
	for _, src := range r.sources {
		if lethal {
			break
		}
		src.Sweep(func(e spawn.Entity) bool {
			if lethal {
				return false
			}
			o := classify(e, body, strike, striking)
			if o == OutcomeNone {
				return false
			}
			if !r.apply(e, o) {
				return false
			}
			if o == OutcomeLethal {
				lethal = true
			}
			count++
			return true
		})
	}
	return count
}

// classify picks the outcome for one entity: the attack region first, then
// the body. At most one outcome is returned.
func classify(e spawn.Entity, body, strike core.RectF, striking bool) Outcome {
	bounds := e.Bounds()
	if striking && strike.Intersects(bounds) {
		if e.Kind() == event.KindHazard {
			return OutcomeDefeated
		}
		return OutcomePopped
	}
	if !body.Intersects(bounds) {
		return OutcomeNone
	}
	if _, ok := e.(collectible); ok {
		return OutcomeCollected
	}
	return OutcomeLethal
}

// apply deactivates the entity and publishes the outcome. It reports false
// when the entity had already been retired.
func (r *Resolver) apply(e spawn.Entity, o Outcome) bool {
	var retired bool
	if c, ok := e.(collectible); ok && o == OutcomeCollected {
		retired = c.Collect()
	} else {
		retired = e.Deactivate()
	}
	if !retired {
		return false
	}

	x, y := e.Bounds().Center()
	switch o {
	case OutcomeDefeated:
		r.publish(event.EntityDefeated{Kind: e.Kind(), ID: e.ID(), X: x, Y: y})
		r.publish(event.FX{Name: event.FXHitHazard, X: x, Y: y})
	case OutcomePopped:
		r.publish(event.EntityPopped{Kind: e.Kind(), ID: e.ID(), X: x, Y: y})
		r.publish(event.FX{Name: event.FXCollectibleExplosion, X: x, Y: y})
	case OutcomeCollected:
		r.publish(event.ItemCollected{ID: e.ID(), X: x, Y: y, Value: e.(collectible).Value()})
		r.publish(event.FX{Name: event.FXCollectItem, X: x, Y: y})
	case OutcomeLethal:
		r.publish(event.PlayerKilled{Kind: e.Kind(), ID: e.ID(), X: x, Y: y})
		r.publish(event.FX{Name: event.FXCollisionWithHazard, X: x, Y: y})
	}
	return true
}

func (r *Resolver) publish(e event.Event) {
	if r.pub != nil {
		r.pub.Publish(e)
	}
}
