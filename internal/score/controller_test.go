package score

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
)

type fakeKV struct {
	values map[string]string
	setErr error
	sets   int
}

func (f *fakeKV) Get(key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func newController(kv KV) (*Controller, *event.Recorder) {
	bus := event.NewBus()
	rec := &event.Recorder{}
	bus.Subscribe(rec.Record)
	c := New(config.DefaultRunnerConfig().Score, kv, bus, nil)
	bus.Subscribe(c.Handle)
	return c, rec
}

func TestCollectedItemScoresAndRaisesBest(t *testing.T) {
	kv := &fakeKV{values: map[string]string{"best_score": "20"}}
	c, rec := newController(kv)
	require.Equal(t, 20, c.Best())

	c.Handle(event.ItemCollected{ID: 1, Value: 10})
	assert.Equal(t, 10, c.Score())
	assert.Equal(t, 20, c.Best(), "best only moves when beaten")
	assert.Zero(t, kv.sets)

	c.Handle(event.ItemCollected{ID: 2, Value: 10})
	c.Handle(event.ItemCollected{ID: 3, Value: 10})
	assert.Equal(t, 30, c.Score())
	assert.Equal(t, 30, c.Best())
	assert.Equal(t, "30", kv.values["best_score"])

	var last event.ScoreChanged
	for _, e := range rec.Drain() {
		if sc, ok := e.(event.ScoreChanged); ok {
			last = sc
		}
	}
	assert.Equal(t, event.ScoreChanged{Score: 30, Best: 30}, last)
}

func TestZeroValueUsesUnit(t *testing.T) {
	c, _ := newController(nil)
	c.Handle(event.ItemCollected{ID: 1})
	assert.Equal(t, 10, c.Score())
}

func TestScoreAndBestNeverDecrease(t *testing.T) {
	c, _ := newController(&fakeKV{})
	prevScore, prevBest := 0, 0
	for i := 0; i < 50; i++ {
		switch i % 7 {
		case 3:
			c.Add(-5)
		case 5:
			c.TogglePause()
		default:
			c.Add(10)
		}
		assert.GreaterOrEqual(t, c.Score(), prevScore)
		assert.GreaterOrEqual(t, c.Best(), prevBest)
		assert.GreaterOrEqual(t, c.Best(), c.Score())
		prevScore, prevBest = c.Score(), c.Best()
	}
}

func TestPauseToggleAndOverIsTerminal(t *testing.T) {
	c, rec := newController(nil)
	assert.Equal(t, core.RoundRunning, c.Round())

	assert.True(t, c.TogglePause())
	assert.Equal(t, core.RoundPaused, c.Round())
	c.Add(10)
	assert.Zero(t, c.Score(), "no scoring while paused")
	assert.True(t, c.TogglePause())

	c.Handle(event.PlayerKilled{Kind: event.KindHazard, ID: 1})
	assert.Equal(t, core.RoundOver, c.Round())
	assert.True(t, c.State().GameOver)
	assert.False(t, c.TogglePause())
	c.End()
	c.Add(10)
	assert.Zero(t, c.Score())

	var changes []event.RoundChanged
	var gameOver int
	for _, e := range rec.Drain() {
		switch e := e.(type) {
		case event.RoundChanged:
			changes = append(changes, e)
		case event.FX:
			if e.Name == event.FXGameOver {
				gameOver++
			}
		}
	}
	assert.Equal(t, []event.RoundChanged{
		{From: core.RoundRunning, To: core.RoundPaused},
		{From: core.RoundPaused, To: core.RoundRunning},
		{From: core.RoundRunning, To: core.RoundOver},
	}, changes)
	assert.Equal(t, 1, gameOver)
}

func TestResetKeepsBest(t *testing.T) {
	c, _ := newController(nil)
	c.Add(40)
	c.End()
	c.Reset()

	assert.Equal(t, core.RoundRunning, c.Round())
	assert.Zero(t, c.Score())
	assert.Equal(t, 40, c.Best())
}

func TestPersistenceFailureKeepsBestInMemory(t *testing.T) {
	kv := &fakeKV{setErr: errors.New("disk full")}
	c, _ := newController(kv)
	c.Add(10)
	assert.Equal(t, 10, c.Best())
	assert.Equal(t, 1, kv.sets)
}

func TestMalformedStoredBestIgnored(t *testing.T) {
	c, _ := newController(&fakeKV{values: map[string]string{"best_score": "lots"}})
	assert.Zero(t, c.Best())
}
