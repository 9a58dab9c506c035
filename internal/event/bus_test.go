package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(func(Event) { order = append(order, "first") })
	bus.Subscribe(func(Event) { order = append(order, "second") })

	bus.Publish(FX{Name: FXCollectItem})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBusQueuesNestedPublish(t *testing.T) {
	bus := NewBus()
	var seen []Event

	bus.Subscribe(func(e Event) {
		if _, ok := e.(PlayerKilled); ok {
			bus.Publish(FX{Name: FXCollisionWithHazard})
		}
	})
	bus.Subscribe(func(e Event) { seen = append(seen, e) })

	bus.Publish(PlayerKilled{Kind: KindHazard, ID: 7})

	// The nested FX must not overtake the event that caused it.
	if assert.Len(t, seen, 2) {
		assert.IsType(t, PlayerKilled{}, seen[0])
		assert.Equal(t, FX{Name: FXCollisionWithHazard}, seen[1])
	}
}

func TestRecorderDrain(t *testing.T) {
	bus := NewBus()
	rec := &Recorder{}
	bus.Publish(FX{Name: FXGameOver})
	bus.Subscribe(rec.Record)

	bus.Publish(ScoreChanged{Score: 10, Best: 10})
	bus.Publish(FX{Name: FXJump})

	got := rec.Drain()
	assert.Len(t, got, 2)
	assert.Empty(t, rec.Drain())
}

func TestRecorderSeesOnlyItsBus(t *testing.T) {
	a, b := NewBus(), NewBus()
	rec := &Recorder{}
	a.Subscribe(rec.Record)

	b.Publish(FX{Name: FXJump})
	assert.Empty(t, rec.Drain())

	a.Publish(FX{Name: FXJump})
	assert.Equal(t, []Event{FX{Name: FXJump}}, rec.Drain())
}
