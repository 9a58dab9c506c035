// Package sequence schedules timed, multi-step visual sequences (death
// trajectories, explosions, fades) against the session clock.
package sequence

import "time"

// Sequence is advanced once per tick until it reports done.
type Sequence interface {
	Advance(dt time.Duration) (done bool)
}

// Func adapts a function to Sequence.
type Func func(dt time.Duration) bool

// Advance calls f.
func (f Func) Advance(dt time.Duration) bool { return f(dt) }

// Scheduler owns every running sequence of a session.
type Scheduler struct {
	active []Sequence
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add starts s on the next Advance.
func (s *Scheduler) Add(seq Sequence) {
	s.active = append(s.active, seq)
}

// Advance steps every sequence by dt and drops the finished ones.
// Sequences added during Advance run from the next call.
func (s *Scheduler) Advance(dt time.Duration) {
	current := s.active
	s.active = nil

	kept := current[:0]
	for _, seq := range current {
		if !seq.Advance(dt) {
			kept = append(kept, seq)
		}
	}
	s.active = append(kept, s.active...)
}

// Clear cancels everything still running. Called on round restart.
func (s *Scheduler) Clear() {
	s.active = nil
}

// Len returns the number of running sequences.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Timeline is a fixed-duration sequence reporting eased progress.
type Timeline struct {
	Duration time.Duration
	Ease     func(float64) float64
	OnStep   func(progress float64)
	OnDone   func()

	elapsed time.Duration
}

// Advance implements Sequence.
func (t *Timeline) Advance(dt time.Duration) bool {
	t.elapsed += dt
	p := t.Progress()
	if t.OnStep != nil {
		t.OnStep(p)
	}
	if p < 1 {
		return false
	}
	if t.OnDone != nil {
		t.OnDone()
	}
	return true
}

// Progress returns the eased progress in [0, 1].
func (t *Timeline) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.Duration)
	if p > 1 {
		p = 1
	}
	if t.Ease != nil {
		return t.Ease(p)
	}
	return p
}

// Chain runs sequences one after another.
type Chain struct {
	steps []Sequence
}

// NewChain builds a chain of steps.
func NewChain(steps ...Sequence) *Chain {
	return &Chain{steps: steps}
}

// Advance implements Sequence.
func (c *Chain) Advance(dt time.Duration) bool {
	for len(c.steps) > 0 {
		if !c.steps[0].Advance(dt) {
			return false
		}
		c.steps = c.steps[1:]
		dt = 0
	}
	return true
}

// EaseOutQuad decelerates towards the end.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInQuad accelerates from rest.
func EaseInQuad(t float64) float64 {
	return t * t
}
