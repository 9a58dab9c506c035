package core

import "time"

// RuntimeConfig contains configuration passed to the session at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Viewport width in world pixels
	ScreenH  int   // Viewport height in world pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  1280,
		ScreenH:  720,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// RoundState is the single authoritative round flag. Every subsystem reads it
// from the Tick it is advanced with.
type RoundState int

const (
	RoundRunning RoundState = iota
	RoundPaused
	RoundOver
)

func (s RoundState) String() string {
	switch s {
	case RoundRunning:
		return "running"
	case RoundPaused:
		return "paused"
	case RoundOver:
		return "over"
	default:
		return "unknown"
	}
}

// ReferenceFrame is the frame duration that physics constants are tuned for.
const ReferenceFrame = time.Second / 60

// Tick is one simulation step.
type Tick struct {
	Now   time.Duration // session clock, frozen while paused
	DT    time.Duration // real time elapsed since the previous tick
	Scale float64       // DT relative to ReferenceFrame
	Round RoundState
}

// NewTick builds a tick for dt, clamping the scale factor to maxScale.
func NewTick(now, dt time.Duration, round RoundState, maxScale float64) Tick {
	scale := float64(dt) / float64(ReferenceFrame)
	if maxScale > 0 && scale > maxScale {
		scale = maxScale
	}
	if scale < 0 {
		scale = 0
	}
	return Tick{Now: now, DT: dt, Scale: scale, Round: round}
}

// Running reports whether gameplay (input, camera, spawning, collisions) is live.
func (t Tick) Running() bool {
	return t.Round == RoundRunning
}

// GameState is the externally visible state of a round.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score of the session
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the round is paused
	Halted   bool // Simulation froze after detecting inconsistent state
}

// StepResult is returned by Session.Step after each simulation tick.
type StepResult struct {
	State GameState
}
