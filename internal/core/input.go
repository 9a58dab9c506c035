package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionJump             // Space, W, Up
	ActionAttack           // J, X
	ActionPause            // P, Escape
	ActionRestart          // R, after game over
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJump:
		return "Jump"
	case ActionAttack:
		return "Attack"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyEvent is a key-down or key-up for one action.
type KeyEvent struct {
	Action Action
	Down   bool
}

// Press returns a key-down event.
func Press(a Action) KeyEvent { return KeyEvent{Action: a, Down: true} }

// Release returns a key-up event.
func Release(a Action) KeyEvent { return KeyEvent{Action: a, Down: false} }

// InputFrame holds the key events delivered during one simulation tick, in
// arrival order. Order matters: a press followed by a release of the same key
// within a tick must leave the key released.
type InputFrame struct {
	Events []KeyEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Add appends a key event.
func (f *InputFrame) Add(e KeyEvent) {
	f.Events = append(f.Events, e)
}

// Set records a key-down for a.
func (f *InputFrame) Set(a Action) {
	f.Add(Press(a))
}

// Has returns true if a key-down for a arrived this frame.
func (f InputFrame) Has(a Action) bool {
	for _, e := range f.Events {
		if e.Action == a && e.Down {
			return true
		}
	}
	return false
}

// Clear resets the frame for the next tick, keeping the allocation.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Events: make([]KeyEvent, len(f.Events))}
	copy(clone.Events, f.Events)
	return clone
}
