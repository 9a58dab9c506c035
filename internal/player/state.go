// Package player implements the runner character: movement physics, the
// jump and attack hops, animation timing and the scripted death fall.
package player

// State is the movement state of the character.
type State int

const (
	Idle State = iota
	Run
	Jump
	Attack
	Falling
	Dead
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Run:
		return "run"
	case Jump:
		return "jump"
	case Attack:
		return "attack"
	case Falling:
		return "falling"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// transitions lists the states reachable from each state by player input or
// physics. Falling is entered only through Kill and is not listed.
var transitions = map[State][]State{
	Idle:    {Run, Jump, Attack},
	Run:     {Idle, Jump, Attack},
	Jump:    {Idle, Run},
	Attack:  {Idle, Run},
	Falling: {Dead},
	Dead:    nil,
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Grounded reports whether the state keeps the feet on the ground line.
func (s State) Grounded() bool {
	return s == Idle || s == Run
}
