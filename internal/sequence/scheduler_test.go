package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineCompletes(t *testing.T) {
	var steps []float64
	done := false
	tl := &Timeline{
		Duration: 100 * time.Millisecond,
		OnStep:   func(p float64) { steps = append(steps, p) },
		OnDone:   func() { done = true },
	}

	s := NewScheduler()
	s.Add(tl)
	for i := 0; i < 3; i++ {
		s.Advance(40 * time.Millisecond)
	}

	assert.True(t, done)
	assert.Equal(t, 0, s.Len())
	require.Len(t, steps, 3)
	assert.InDelta(t, 0.4, steps[0], 1e-9)
	assert.InDelta(t, 0.8, steps[1], 1e-9)
	assert.Equal(t, 1.0, steps[2])
}

func TestSchedulerClearCancelsPending(t *testing.T) {
	fired := false
	s := NewScheduler()
	s.Add(&Timeline{Duration: time.Second, OnDone: func() { fired = true }})
	s.Advance(100 * time.Millisecond)
	require.Equal(t, 1, s.Len())

	s.Clear()
	s.Advance(2 * time.Second)

	assert.False(t, fired, "a cleared sequence must never fire")
	assert.Equal(t, 0, s.Len())
}

func TestSequenceAddedDuringAdvanceRunsNextTick(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Add(Func(func(time.Duration) bool {
		s.Add(Func(func(time.Duration) bool {
			calls++
			return true
		}))
		return true
	}))

	s.Advance(time.Millisecond)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Len())

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestChainRunsStepsInOrder(t *testing.T) {
	var order []string
	c := NewChain(
		&Timeline{Duration: 50 * time.Millisecond, OnDone: func() { order = append(order, "a") }},
		&Timeline{Duration: 50 * time.Millisecond, OnDone: func() { order = append(order, "b") }},
	)

	assert.False(t, c.Advance(60*time.Millisecond))
	assert.Equal(t, []string{"a"}, order)
	assert.True(t, c.Advance(60*time.Millisecond))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestEasing(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutQuad(0))
	assert.Equal(t, 1.0, EaseOutQuad(1))
	assert.Greater(t, EaseOutQuad(0.5), 0.5)
	assert.Less(t, EaseInQuad(0.5), 0.5)
}
