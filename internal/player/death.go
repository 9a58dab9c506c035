package player

import (
	"time"

	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/sequence"
)

// Kill starts the death fall. Only collision outcomes call it; it is a no-op
// when the character is already falling or dead and reports whether it fired.
func (c *Character) Kill() bool {
	if c.state == Falling || c.state == Dead {
		return false
	}
	c.state = Falling
	c.vy = 0
	c.leftHeld, c.rightHeld = false, false
	c.attack.start()

	legs := c.deathLegs()
	if len(legs) == 0 || c.sched == nil {
		c.finishDeath()
		return true
	}
	legs = append(legs, sequence.Func(func(time.Duration) bool {
		c.finishDeath()
		return true
	}))
	c.sched.Add(sequence.NewChain(legs...))
	return true
}

// deathLegs turns the configured waypoints into parabolic arcs starting at
// the current position. Horizontal offsets are mirrored by facing.
func (c *Character) deathLegs() []sequence.Sequence {
	var legs []sequence.Sequence
	fromX, fromY, fromRot := c.x, c.y, c.rotation

	for _, wp := range c.cfg.Death.Waypoints {
		x0, y0, r0 := fromX, fromY, fromRot
		x1 := x0 + wp.DX*c.facing
		y1 := y0 + wp.DY
		r1 := wp.Rotation * c.facing
		arc := wp.Arc

		legs = append(legs, &sequence.Timeline{
			Duration: time.Duration(wp.DurationMS) * time.Millisecond,
			OnStep: func(p float64) {
				c.x = core.Lerp(x0, x1, p)
				c.y = core.Lerp(y0, y1, p) - arc*4*p*(1-p)
				c.rotation = core.Lerp(r0, r1, p)
			},
		})
		fromX, fromY, fromRot = x1, y1, r1
	}
	return legs
}

func (c *Character) finishDeath() {
	c.state = Dead
	c.visible = false
	c.gameOver = true
}
