package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/fluffy-runner/internal/core"
)

type point struct{ x float64 }

func (p *point) WorldX() float64 { return p.x }

var running = core.Tick{Scale: 1, Round: core.RoundRunning}

func TestCameraHoldsUntilThreshold(t *testing.T) {
	p := &point{x: 200}
	cam := New(p, 200, 300)

	for _, x := range []float64{200, 350, 499.9} {
		p.x = x
		cam.Update(running)
		assert.Equal(t, 0.0, cam.Offset(), "x=%v", x)
	}

	p.x = 520
	cam.Update(running)
	assert.Equal(t, 20.0, cam.Offset())
}

func TestCameraKeepsRunnerAtThresholdOnScreen(t *testing.T) {
	// Player starts at 200 and runs right at 5 px per tick for 100 ticks.
	p := &point{x: 200}
	cam := New(p, 200, 300)
	for i := 0; i < 100; i++ {
		p.x += 5
		cam.Update(running)
	}
	assert.Equal(t, 700.0, p.x)
	assert.Equal(t, 200.0, cam.Offset())
	assert.Equal(t, 500.0, cam.WorldToScreen(p.x))
}

func TestCameraMonotonic(t *testing.T) {
	p := &point{x: 200}
	cam := New(p, 200, 300)
	rng := rand.New(rand.NewSource(3))

	prev := cam.Offset()
	for i := 0; i < 2000; i++ {
		p.x += rng.Float64()*12 - 4 // mostly rightward, sometimes back
		cam.Update(running)
		assert.GreaterOrEqual(t, cam.Offset(), prev)
		prev = cam.Offset()
	}
}

func TestCameraFrozenUnlessRunning(t *testing.T) {
	p := &point{x: 1000}
	cam := New(p, 200, 300)

	cam.Update(core.Tick{Round: core.RoundPaused})
	assert.Equal(t, 0.0, cam.Offset())
	cam.Update(core.Tick{Round: core.RoundOver})
	assert.Equal(t, 0.0, cam.Offset())

	cam.Update(running)
	assert.Equal(t, 500.0, cam.Offset())

	p.x = math.NaN()
	cam.Update(running)
	assert.Equal(t, 500.0, cam.Offset(), "non-finite target must not move the camera")
}

func TestCameraConversionsRoundTrip(t *testing.T) {
	p := &point{x: 812.5}
	cam := New(p, 200, 300)
	cam.Update(running)

	assert.Equal(t, 312.5, cam.Offset())
	assert.Equal(t, 100.0, cam.ScreenToWorld(cam.WorldToScreen(100)))

	cam.Reset()
	assert.Equal(t, 0.0, cam.Offset())
}
