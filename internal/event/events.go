// Package event carries collision outcomes, score changes and effect triggers
// between the subsystems of a session without them referencing each other.
package event

import "github.com/vovakirdan/fluffy-runner/internal/core"

// Event is any message published on a Bus.
type Event interface {
	event()
}

// Kind names an entity type.
type Kind string

const (
	KindHazard      Kind = "hazard"
	KindCollectible Kind = "collectible"
	KindMine        Kind = "mine"
)

// EntityDefeated is published when the attack region destroys a hazard.
type EntityDefeated struct {
	Kind Kind
	ID   uint64
	X, Y float64
}

func (EntityDefeated) event() {}

// EntityPopped is published when the attack region bursts a collectible or mine.
type EntityPopped struct {
	Kind Kind
	ID   uint64
	X, Y float64
}

func (EntityPopped) event() {}

// ItemCollected is published when the player's body touches a collectible.
type ItemCollected struct {
	ID    uint64
	X, Y  float64
	Value int
}

func (ItemCollected) event() {}

// PlayerKilled is published on a lethal body collision.
type PlayerKilled struct {
	Kind Kind
	ID   uint64
	X, Y float64
}

func (PlayerKilled) event() {}

// ScoreChanged is published whenever the score or best score moves.
type ScoreChanged struct {
	Score int
	Best  int
}

func (ScoreChanged) event() {}

// RoundChanged is published on every round state transition.
type RoundChanged struct {
	From, To core.RoundState
}

func (RoundChanged) event() {}

// FX asks the audio/effects collaborator to play a named cue at a world point.
type FX struct {
	Name string
	X, Y float64
}

func (FX) event() {}

// Effect cue names.
const (
	FXHitHazard            = "hit-hazard"
	FXCollectibleExplosion = "collectible-explosion"
	FXCollectItem          = "collect-item"
	FXCollisionWithHazard  = "collision-with-hazard"
	FXJump                 = "jump"
	FXAttackLand           = "attack-land"
	FXGameOver             = "game-over"
)

// FXNames lists every cue the simulation can publish.
var FXNames = []string{
	FXHitHazard,
	FXCollectibleExplosion,
	FXCollectItem,
	FXCollisionWithHazard,
	FXJump,
	FXAttackLand,
	FXGameOver,
}
