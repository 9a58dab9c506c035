package player

import (
	"time"

	"github.com/vovakirdan/fluffy-runner/internal/config"
)

// clip is a looping frame animation.
type clip struct {
	frames   int
	frameDur time.Duration
}

func newClip(c config.ClipConfig) clip {
	cl := clip{frames: c.Frames, frameDur: time.Duration(c.FrameMS) * time.Millisecond}
	if cl.frames < 1 {
		cl.frames = 1
	}
	if cl.frameDur <= 0 {
		cl.frameDur = 100 * time.Millisecond
	}
	return cl
}

// animator plays one clip at a time and restarts when the clip changes.
type animator struct {
	clips   map[State]clip
	current State
	elapsed time.Duration
}

func newAnimator(cfg config.AnimationConfig) *animator {
	return &animator{
		clips: map[State]clip{
			Idle: newClip(cfg.Idle),
			Run:  newClip(cfg.Run),
			Jump: newClip(cfg.Jump),
		},
	}
}

func (a *animator) play(s State) {
	if s != a.current {
		a.current = s
		a.elapsed = 0
	}
}

func (a *animator) advance(dt time.Duration) {
	a.elapsed += dt
}

func (a *animator) frame() int {
	c, ok := a.clips[a.current]
	if !ok {
		return 0
	}
	return int(a.elapsed/c.frameDur) % c.frames
}

// attackClip tracks the non-looping attack animation. Frames 0..frames-2
// play while airborne, holding on frames-2; the last frame is shown after
// landing for the lock duration.
type attackClip struct {
	cfg      config.AttackConfig
	elapsed  time.Duration
	landed   bool
	lockLeft time.Duration
}

func (c *attackClip) start() {
	c.elapsed = 0
	c.landed = false
	c.lockLeft = 0
}

func (c *attackClip) advance(dt time.Duration) {
	if c.landed {
		c.lockLeft -= dt
		return
	}
	c.elapsed += dt
}

func (c *attackClip) land() {
	c.landed = true
	c.lockLeft = c.cfg.LockDuration()
}

// rawFrame is the frame index the clock points at, before holding.
func (c *attackClip) rawFrame() int {
	return int(c.elapsed / c.cfg.FrameDuration())
}

func (c *attackClip) frame() int {
	if c.landed {
		return c.cfg.Frames - 1
	}
	f := c.rawFrame()
	if hold := c.cfg.Frames - 2; f > hold {
		f = hold
	}
	return f
}

// active reports whether the hit region is live: airborne and on the strike frame.
func (c *attackClip) active() bool {
	return !c.landed && c.rawFrame() == c.cfg.ActiveFrame
}

func (c *attackClip) lockExpired() bool {
	return c.landed && c.lockLeft <= 0
}
