package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fluffy-runner/internal/core"
)

// KeyMap defines the runner key bindings.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Attack  key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Attack, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Attack},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "space", "up", "w", "k"),
			key.WithHelp("space/↑", "jump"),
		),
		Attack: key.NewBinding(
			key.WithKeys("x", "j", "enter"),
			key.WithHelp("x/j", "attack"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action maps a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Attack):
		return core.ActionAttack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// DefaultHoldTimeout covers the usual terminal auto-repeat delay.
const DefaultHoldTimeout = 550 * time.Millisecond

// Holder turns the press-only key stream of a terminal into key-down and
// key-up events. A movement key stays held while auto-repeat keeps arriving
// and is released once none has arrived for the timeout. Other actions are
// released right after being pressed.
type Holder struct {
	timeout time.Duration
	held    map[core.Action]time.Time
	frame   core.InputFrame
}

// NewHolder creates a holder with the given release timeout.
func NewHolder(timeout time.Duration) *Holder {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &Holder{timeout: timeout, held: make(map[core.Action]time.Time)}
}

// Press records a key press at now.
func (h *Holder) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionNone, core.ActionQuit:
		return
	case core.ActionMoveLeft, core.ActionMoveRight:
		other := core.ActionMoveRight
		if a == core.ActionMoveRight {
			other = core.ActionMoveLeft
		}
		// Terminals only repeat the last key, so a new direction ends the old one.
		if _, ok := h.held[other]; ok {
			delete(h.held, other)
			h.frame.Add(core.Release(other))
		}
		if _, ok := h.held[a]; !ok {
			h.frame.Add(core.Press(a))
		}
		h.held[a] = now
	default:
		h.frame.Add(core.Press(a))
		h.frame.Add(core.Release(a))
	}
}

// Events returns the events gathered since the previous call, releasing every
// held key whose last repeat is older than the timeout at now.
func (h *Holder) Events(now time.Time) []core.KeyEvent {
	for _, a := range []core.Action{core.ActionMoveLeft, core.ActionMoveRight} {
		if at, ok := h.held[a]; ok && now.Sub(at) >= h.timeout {
			delete(h.held, a)
			h.frame.Add(core.Release(a))
		}
	}
	out := h.frame.Clone().Events
	h.frame.Clear()
	return out
}

// ReleaseAll lets go of every held key.
func (h *Holder) ReleaseAll() {
	for _, a := range []core.Action{core.ActionMoveLeft, core.ActionMoveRight} {
		if _, ok := h.held[a]; ok {
			delete(h.held, a)
			h.frame.Add(core.Release(a))
		}
	}
}

// Held reports whether a is currently held.
func (h *Holder) Held(a core.Action) bool {
	_, ok := h.held[a]
	return ok
}
