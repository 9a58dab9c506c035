// Package render describes what the simulation wants drawn, as retained
// sprites diffed into create/update/destroy intents. It draws nothing itself.
package render

import "sort"

// Op is the kind of a render intent.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDestroy
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Depth orders the back-to-front draw passes.
type Depth int

const (
	DepthSky Depth = iota
	DepthBackground
	DepthGround
	DepthEntities
	DepthPlayer
	DepthForeground
	DepthEffects
)

// ParseDepth maps a config name to a Depth.
func ParseDepth(name string) (Depth, bool) {
	switch name {
	case "sky":
		return DepthSky, true
	case "background":
		return DepthBackground, true
	case "ground":
		return DepthGround, true
	case "foreground":
		return DepthForeground, true
	}
	return 0, false
}

// Sprite is one drawable in screen space. X/Y is the top-left corner.
type Sprite struct {
	ID       string
	Image    string
	Frame    int
	X, Y     float64
	W, H     float64
	Depth    Depth
	Rotation float64
	FlipX    bool
	Alpha    float64
	Visible  bool
}

// Intent is a change to the retained sprite set.
type Intent struct {
	Op     Op
	Sprite Sprite
}

// Tracker diffs successive frames of sprites into intents.
type Tracker struct {
	live  map[string]Sprite
	seen  map[string]bool
	frame []Intent
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		live: make(map[string]Sprite),
		seen: make(map[string]bool),
	}
}

// Begin starts a frame.
func (t *Tracker) Begin() {
	t.frame = t.frame[:0]
	clear(t.seen)
}

// Put declares a sprite present in the current frame.
func (t *Tracker) Put(s Sprite) {
	t.seen[s.ID] = true
	prev, ok := t.live[s.ID]
	switch {
	case !ok:
		t.frame = append(t.frame, Intent{Op: OpCreate, Sprite: s})
	case prev != s:
		t.frame = append(t.frame, Intent{Op: OpUpdate, Sprite: s})
	default:
		return
	}
	t.live[s.ID] = s
}

// End finishes the frame, destroying sprites that were not Put, and returns
// the intents of the frame. The slice is reused by the next Begin.
func (t *Tracker) End() []Intent {
	var gone []string
	for id := range t.live {
		if !t.seen[id] {
			gone = append(gone, id)
		}
	}
	sort.Strings(gone)
	for _, id := range gone {
		t.frame = append(t.frame, Intent{Op: OpDestroy, Sprite: t.live[id]})
		delete(t.live, id)
	}
	return t.frame
}

// Live returns the number of sprites currently alive.
func (t *Tracker) Live() int {
	return len(t.live)
}

// Scene is the retained sprite set on the consuming side.
type Scene struct {
	sprites map[string]Sprite
	order   map[string]int
	next    int
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{sprites: make(map[string]Sprite), order: make(map[string]int)}
}

// Apply folds intents into the scene.
func (s *Scene) Apply(intents []Intent) {
	for _, in := range intents {
		switch in.Op {
		case OpCreate:
			s.order[in.Sprite.ID] = s.next
			s.next++
			s.sprites[in.Sprite.ID] = in.Sprite
		case OpUpdate:
			if _, ok := s.sprites[in.Sprite.ID]; ok {
				s.sprites[in.Sprite.ID] = in.Sprite
			}
		case OpDestroy:
			delete(s.sprites, in.Sprite.ID)
			delete(s.order, in.Sprite.ID)
		}
	}
}

// Sorted returns the visible sprites back to front: by depth, then creation order.
func (s *Scene) Sorted() []Sprite {
	out := make([]Sprite, 0, len(s.sprites))
	for _, sp := range s.sprites {
		if sp.Visible {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return s.order[out[i].ID] < s.order[out[j].ID]
	})
	return out
}

// Len returns the number of sprites in the scene.
func (s *Scene) Len() int {
	return len(s.sprites)
}
