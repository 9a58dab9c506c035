package player

import (
	"math"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/render"
	"github.com/vovakirdan/fluffy-runner/internal/sequence"
)

// Publisher receives effect cues from the character.
type Publisher interface {
	Publish(event.Event)
}

// Scheduler runs the death trajectory.
type Scheduler interface {
	Add(sequence.Sequence)
}

// Character is the player-controlled runner. Position is the bottom centre
// of the body (the feet) in world pixels.
type Character struct {
	cfg   config.PlayerConfig
	pub   Publisher
	sched Scheduler

	startX     float64
	groundLine float64
	leftBound  float64

	x, y     float64
	vy       float64
	facing   float64
	state    State
	rotation float64
	visible  bool
	gameOver bool

	leftHeld, rightHeld bool
	lastDir             float64

	anim   *animator
	attack attackClip
}

// New creates a character standing at startX on the ground line.
func New(cfg config.PlayerConfig, startX, groundLine float64, pub Publisher, sched Scheduler) *Character {
	c := &Character{
		cfg:   cfg,
		pub:   pub,
		sched: sched,
		anim:  newAnimator(cfg.Animation),
	}
	c.attack.cfg = cfg.Attack
	c.Reset(startX, groundLine)
	return c
}

// Reset places the character back at the start of a round.
func (c *Character) Reset(startX, groundLine float64) {
	c.startX = startX
	c.groundLine = groundLine
	c.leftBound = startX
	c.x = startX
	c.y = groundLine
	c.vy = 0
	c.facing = 1
	c.state = Idle
	c.rotation = 0
	c.visible = true
	c.gameOver = false
	c.leftHeld, c.rightHeld = false, false
	c.lastDir = 0
	c.anim.play(Idle)
	c.attack.start()
}

// HandleInput applies a key event. Events that are not legal in the current
// state are ignored.
func (c *Character) HandleInput(e core.KeyEvent) {
	if c.state == Falling || c.state == Dead {
		return
	}

	switch e.Action {
	case core.ActionMoveLeft:
		c.leftHeld = e.Down
		if e.Down {
			c.lastDir = -1
		}
	case core.ActionMoveRight:
		c.rightHeld = e.Down
		if e.Down {
			c.lastDir = 1
		}
	case core.ActionJump:
		if e.Down {
			c.startJump()
		}
	case core.ActionAttack:
		if e.Down {
			c.startAttack()
		}
	}
}

// direction returns the held horizontal direction; the most recent press
// wins when both are held.
func (c *Character) direction() float64 {
	switch {
	case c.leftHeld && c.rightHeld:
		return c.lastDir
	case c.leftHeld:
		return -1
	case c.rightHeld:
		return 1
	}
	return 0
}

func (c *Character) startJump() {
	if !c.state.Grounded() {
		return
	}
	c.state = Jump
	c.vy = c.cfg.Jump.Impulse
	c.anim.play(Jump)
	c.publish(event.FXJump)
}

func (c *Character) startAttack() {
	if !c.state.Grounded() {
		return
	}
	c.state = Attack
	c.vy = c.cfg.Attack.Impulse
	c.attack.start()
}

// Update advances physics and animation by one tick.
func (c *Character) Update(tick core.Tick) {
	if !tick.Running() {
		return
	}

	switch c.state {
	case Idle, Run:
		c.updateGround(tick)
	case Jump:
		c.updateJump(tick)
	case Attack:
		c.updateAttack(tick)
	}

	if bound := math.Max(c.startX, c.leftBound); c.x < bound {
		c.x = bound
	}
	c.anim.advance(tick.DT)
}

func (c *Character) updateGround(tick core.Tick) {
	dir := c.direction()
	if dir == 0 {
		c.state = Idle
		c.anim.play(Idle)
		return
	}
	c.facing = dir
	c.state = Run
	c.anim.play(Run)
	c.x += dir * c.cfg.Speed * tick.Scale
}

// integrate applies gravity and reports whether the feet reached the ground.
func (c *Character) integrate(g float64, scale float64) bool {
	c.vy += g * scale
	c.y += c.vy * scale

	if c.y < c.cfg.Ceiling {
		c.y = c.cfg.Ceiling
		if c.vy < 0 {
			c.vy = 0
		}
	}
	if c.y >= c.groundLine && c.vy >= 0 {
		c.y = c.groundLine
		c.vy = 0
		return true
	}
	return false
}

// drift is the forward speed of a hop, shrinking with vertical speed.
func drift(j config.JumpConfig, vy float64) float64 {
	if j.Impulse == 0 {
		return j.ForwardSpeed
	}
	progress := math.Abs(vy) / math.Abs(j.Impulse)
	return j.ForwardSpeed * (1 - progress*j.DriftDecay)
}

func (c *Character) updateJump(tick core.Tick) {
	c.x += c.facing * drift(c.cfg.Jump, c.vy) * tick.Scale
	if c.integrate(c.cfg.Jump.Gravity, tick.Scale) {
		c.settle()
	}
}

func (c *Character) updateAttack(tick core.Tick) {
	c.attack.advance(tick.DT)

	if c.attack.landed {
		if c.attack.lockExpired() {
			c.settle()
		}
		return
	}

	if c.vy < 0 {
		c.x += c.facing * drift(c.cfg.Attack.JumpConfig, c.vy) * tick.Scale
	}
	if c.integrate(c.cfg.Attack.Gravity, tick.Scale) {
		c.attack.land()
		c.publish(event.FXAttackLand)
	}
}

// settle returns to Run or Idle depending on held input.
func (c *Character) settle() {
	if dir := c.direction(); dir != 0 {
		c.facing = dir
		c.state = Run
	} else {
		c.state = Idle
	}
	c.anim.play(c.state)
}

func (c *Character) publish(name string) {
	if c.pub != nil {
		c.pub.Publish(event.FX{Name: name, X: c.x, Y: c.y})
	}
}

// SetLeftBound keeps the character right of x (the camera's left edge plus
// half a body). The world start is always a bound.
func (c *Character) SetLeftBound(x float64) {
	c.leftBound = x
}

// SetGroundLine moves the ground after a resize, carrying the character along.
func (c *Character) SetGroundLine(groundLine float64) {
	delta := groundLine - c.groundLine
	c.groundLine = groundLine
	c.y += delta
}

// WorldX implements camera.Target.
func (c *Character) WorldX() float64 { return c.x }

// WorldY returns the feet line.
func (c *Character) WorldY() float64 { return c.y }

// State returns the movement state.
func (c *Character) State() State { return c.state }

// Facing returns +1 when facing right, -1 when facing left.
func (c *Character) Facing() float64 { return c.facing }

// VerticalVelocity returns the current vertical speed (negative is up).
func (c *Character) VerticalVelocity() float64 { return c.vy }

// Locked reports whether the post-attack landing lock is in effect.
func (c *Character) Locked() bool {
	return c.state == Attack && c.attack.landed
}

// IsGameOver reports whether the death trajectory has finished.
func (c *Character) IsGameOver() bool { return c.gameOver }

// Visible reports whether the character is drawn.
func (c *Character) Visible() bool { return c.visible }

// Valid reports whether the position is finite.
func (c *Character) Valid() bool {
	return core.Finite(c.x) && core.Finite(c.y) && core.Finite(c.vy)
}

// Body returns the collision region of the body.
func (c *Character) Body() core.RectF {
	return core.RectAround(c.x, c.y, c.cfg.Body.W, c.cfg.Body.H)
}

// AttackRegion returns the strike region and whether it is currently live.
func (c *Character) AttackRegion() (core.RectF, bool) {
	hr := c.cfg.Attack.HitRegion
	top := c.y - c.cfg.Body.H + hr.OffsetY
	x := c.x + hr.OffsetX
	if c.facing < 0 {
		x = c.x - hr.OffsetX - hr.W
	}
	r := core.NewRectF(x, top, hr.W, hr.H)
	return r, c.state == Attack && c.attack.active()
}

// Sprite returns the render description of the character.
func (c *Character) Sprite(worldToScreen func(float64) float64) render.Sprite {
	image, frame := "player_idle", c.anim.frame()
	switch c.state {
	case Run:
		image = "player_run"
	case Jump:
		image = "player_jump"
	case Attack:
		image, frame = "player_attack", c.attack.frame()
	case Falling, Dead:
		image, frame = "player_fall", 0
	}
	body := c.Body()
	return render.Sprite{
		ID:       "player",
		Image:    image,
		Frame:    frame,
		X:        worldToScreen(body.X),
		Y:        body.Y,
		W:        body.W,
		H:        body.H,
		Depth:    render.DepthPlayer,
		Rotation: c.rotation,
		FlipX:    c.facing < 0,
		Alpha:    1,
		Visible:  c.visible,
	}
}
