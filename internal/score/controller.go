// Package score owns the round state and the score of a session. The best
// score is kept across rounds and persisted through a small key/value store.
package score

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
)

// KV persists string values by key.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Publisher receives score and round events.
type Publisher interface {
	Publish(event.Event)
}

// Controller is the single authority on the round state. Running and Paused
// toggle; Over is terminal until Reset.
type Controller struct {
	kv   KV
	pub  Publisher
	log  *log.Logger
	key  string
	unit int

	round core.RoundState
	score int
	best  int
}

// New creates a controller and loads the best score from kv. A nil kv keeps
// the best score in memory only.
func New(cfg config.ScoreConfig, kv KV, pub Publisher, logger *log.Logger) *Controller {
	c := &Controller{
		kv:   kv,
		pub:  pub,
		log:  logging.OrDiscard(logger),
		key:  cfg.BestKey,
		unit: cfg.Unit,
	}
	if c.key == "" {
		c.key = "best_score"
	}
	c.best = c.load()
	return c
}

func (c *Controller) load() int {
	if c.kv == nil {
		return 0
	}
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		c.log.Warn("cannot load best score", "key", c.key, "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	best, err := strconv.Atoi(raw)
	if err != nil || best < 0 {
		c.log.Warn("ignoring malformed best score", "key", c.key, "value", raw)
		return 0
	}
	return best
}

// Handle is an event.Handler: collected items score, a lethal hit ends the round.
func (c *Controller) Handle(e event.Event) {
	switch e := e.(type) {
	case event.ItemCollected:
		points := e.Value
		if points <= 0 {
			points = c.unit
		}
		c.Add(points)
	case event.PlayerKilled:
		c.End()
	}
}

// Add awards points while the round is running. Negative amounts are ignored
// so the score never decreases within a round.
func (c *Controller) Add(points int) {
	if c.round != core.RoundRunning || points <= 0 {
		return
	}
	c.score += points
	if c.score > c.best {
		c.best = c.score
		c.persist()
	}
	c.publish(event.ScoreChanged{Score: c.score, Best: c.best})
}

func (c *Controller) persist() {
	if c.kv == nil {
		return
	}
	if err := c.kv.Set(c.key, strconv.Itoa(c.best)); err != nil {
		c.log.Warn("cannot persist best score", "key", c.key, "best", c.best, "err", err)
	}
}

// TogglePause flips between Running and Paused and reports whether the
// state changed. It does nothing once the round is over.
func (c *Controller) TogglePause() bool {
	switch c.round {
	case core.RoundRunning:
		c.transition(core.RoundPaused)
	case core.RoundPaused:
		c.transition(core.RoundRunning)
	default:
		return false
	}
	return true
}

// End moves the round to Over. Calling it again is a no-op.
func (c *Controller) End() {
	if c.round == core.RoundOver {
		return
	}
	c.transition(core.RoundOver)
	c.publish(event.FX{Name: event.FXGameOver})
}

// Reset starts a new round. The best score is kept.
func (c *Controller) Reset() {
	c.score = 0
	if c.round != core.RoundRunning {
		c.transition(core.RoundRunning)
	}
	c.publish(event.ScoreChanged{Score: c.score, Best: c.best})
}

func (c *Controller) transition(to core.RoundState) {
	from := c.round
	c.round = to
	c.log.Debug("round state", "from", from, "to", to)
	c.publish(event.RoundChanged{From: from, To: to})
}

func (c *Controller) publish(e event.Event) {
	if c.pub != nil {
		c.pub.Publish(e)
	}
}

// Round returns the current round state.
func (c *Controller) Round() core.RoundState { return c.round }

// Score returns the score of the current round.
func (c *Controller) Score() int { return c.score }

// Best returns the best score of the session.
func (c *Controller) Best() int { return c.best }

// State returns the externally visible round state.
func (c *Controller) State() core.GameState {
	return core.GameState{
		Score:    c.score,
		Best:     c.best,
		GameOver: c.round == core.RoundOver,
		Paused:   c.round == core.RoundPaused,
	}
}
