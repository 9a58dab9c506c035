// Package tui runs the runner in a terminal with Bubble Tea: input mapping,
// the tick loop, painting the render scene into a character screen, the
// scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation step. Loop identifies the tick
// loop it belongs to, so a tick still in flight when a game is left cannot
// drive the next one.
type TickMsg struct {
	Loop uint64
	Time time.Time
}

var loops atomic.Uint64

// newLoop returns a fresh tick loop id.
func newLoop() uint64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}

// maxStep bounds the delta of one step after the program was stalled.
const maxStep = 100 * time.Millisecond

// frameDelta returns the time since the previous tick, falling back to the
// nominal interval for the first tick.
func frameDelta(prev, now time.Time, tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	if prev.IsZero() || !now.After(prev) {
		return time.Second / time.Duration(tickRate)
	}
	return min(now.Sub(prev), maxStep)
}
