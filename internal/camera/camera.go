// Package camera maps between world and screen coordinates and follows the
// player once it passes a threshold.
package camera

import "github.com/vovakirdan/fluffy-runner/internal/core"

// Target is what the camera follows.
type Target interface {
	WorldX() float64
}

// Camera holds the horizontal scroll offset of the world.
type Camera struct {
	target          Target
	startX          float64
	followThreshold float64
	offset          float64
}

// New creates a camera following target. It starts scrolling once the target
// passes startX+followThreshold.
func New(target Target, startX, followThreshold float64) *Camera {
	return &Camera{
		target:          target,
		startX:          startX,
		followThreshold: followThreshold,
	}
}

// Update recomputes the scroll offset from the target. It only runs while the
// round is running, and the offset never moves backwards.
func (c *Camera) Update(tick core.Tick) {
	if !tick.Running() || c.target == nil {
		return
	}
	x := c.target.WorldX()
	if !core.Finite(x) {
		return
	}
	anchor := c.startX + c.followThreshold
	if x < anchor {
		return
	}
	if computed := x - anchor; computed > c.offset {
		c.offset = computed
	}
}

// Offset returns the current scroll offset.
func (c *Camera) Offset() float64 {
	return c.offset
}

// WorldToScreen converts a world x to a screen x.
func (c *Camera) WorldToScreen(x float64) float64 {
	return x - c.offset
}

// ScreenToWorld converts a screen x to a world x.
func (c *Camera) ScreenToWorld(x float64) float64 {
	return x + c.offset
}

// StartX returns the world x where rounds begin.
func (c *Camera) StartX() float64 {
	return c.startX
}

// Reset returns the camera to the start of the world.
func (c *Camera) Reset() {
	c.offset = 0
}
