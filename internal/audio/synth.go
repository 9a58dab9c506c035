// Package audio turns effect cues published by a session into short
// synthesized sounds.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// note is one tone of a cue.
type note struct {
	freq     float64
	wave     Wave
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	// slide is added to the frequency linearly over the note.
	slide float64
}

// cue is a sequence of notes, optionally layered with a second voice.
type cue struct {
	notes []note
	layer []note
	gain  float64
}

var cues = map[string]cue{
	event.FXHitHazard: {
		notes: []note{{freq: 180, wave: Square, duration: 90 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, slide: -80}},
		layer: []note{{wave: Noise, duration: 60 * time.Millisecond, release: 50 * time.Millisecond}},
		gain:  0.5,
	},
	event.FXCollectibleExplosion: {
		notes: []note{{wave: Noise, duration: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 150 * time.Millisecond}},
		gain:  0.4,
	},
	event.FXCollectItem: {
		notes: []note{
			{freq: 987.77, wave: Square, duration: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 30 * time.Millisecond},
			{freq: 1318.51, wave: Square, duration: 160 * time.Millisecond, attack: 2 * time.Millisecond, release: 120 * time.Millisecond},
		},
		gain: 0.3,
	},
	event.FXCollisionWithHazard: {
		notes: []note{{freq: 220, wave: Saw, duration: 400 * time.Millisecond, attack: 5 * time.Millisecond, release: 250 * time.Millisecond, slide: -160}},
		gain:  0.5,
	},
	event.FXJump: {
		notes: []note{{freq: 330, wave: Sine, duration: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, slide: 330}},
		gain:  0.35,
	},
	event.FXAttackLand: {
		notes: []note{{freq: 90, wave: Sine, duration: 100 * time.Millisecond, release: 80 * time.Millisecond, slide: -40}},
		layer: []note{{wave: Noise, duration: 40 * time.Millisecond, release: 35 * time.Millisecond}},
		gain:  0.45,
	},
	event.FXGameOver: {
		notes: []note{
			{freq: 392, wave: Square, duration: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond},
			{freq: 311.13, wave: Square, duration: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond},
			{freq: 261.63, wave: Square, duration: 420 * time.Millisecond, attack: 5 * time.Millisecond, release: 300 * time.Millisecond},
		},
		gain: 0.3,
	},
}

// ErrUnknownCue is returned for a cue name the synth has no sound for.
var ErrUnknownCue = errors.New("audio: unknown cue")

// Synth renders cues into a mixer. Until Start succeeds, playing a cue is a
// no-op so a headless session never accumulates streamers.
type Synth struct {
	mu      sync.Mutex
	volume  float64
	mixer   *beep.Mixer
	rng     *rand.Rand
	log     *log.Logger
	started bool
}

// New creates a synth at the given master volume in [0, 1].
func New(volume float64, logger *log.Logger) *Synth {
	return &Synth{
		volume: math.Max(0, math.Min(1, volume)),
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(1)),
		log:    logging.OrDiscard(logger),
	}
}

// Start opens the default output device and begins draining the mixer.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.started = true
	return nil
}

// Close silences everything still playing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.started = false
}

// Handle plays FX events and ignores everything else. It can be subscribed
// to a session bus directly.
func (s *Synth) Handle(ev event.Event) {
	if fx, ok := ev.(event.FX); ok {
		s.Play(fx.Name)
	}
}

// Play queues the named cue. Unknown names are logged at debug level.
func (s *Synth) Play(name string) {
	st, err := s.Streamer(name)
	if err != nil {
		s.log.Debug("no sound for cue", "cue", name)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Streamer builds a fresh finite streamer for the named cue.
func (s *Synth) Streamer(name string) (beep.Streamer, error) {
	c, ok := cues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()
	rng := rand.New(rand.NewSource(seed))

	var st beep.Streamer = s.voice(c.notes, rng)
	if len(c.layer) > 0 {
		st = beep.Mix(st, volume(s.voice(c.layer, rng), 0.5))
	}
	return volume(st, c.gain*s.volume), nil
}

// Duration returns how long the named cue plays.
func Duration(name string) time.Duration {
	c, ok := cues[name]
	if !ok {
		return 0
	}
	var a, b time.Duration
	for _, n := range c.notes {
		a += n.duration
	}
	for _, n := range c.layer {
		b += n.duration
	}
	return max(a, b)
}

func (s *Synth) voice(notes []note, rng *rand.Rand) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, shape(newOscillator(n, rng), n))
	}
	return beep.Seq(parts...)
}

func volume(st beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(v)}
}

// oscillator produces one note worth of samples.
type oscillator struct {
	n     note
	rng   *rand.Rand
	phase float64
	pos   int
	total int
}

func newOscillator(n note, rng *rand.Rand) *oscillator {
	return &oscillator{n: n, rng: rng, total: SampleRate.N(n.duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	if o.pos >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.pos >= o.total {
			return i, true
		}
		var v float64
		switch o.n.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * o.phase)
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Saw:
			v = 2 * (o.phase - 0.5)
		case Noise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		freq := o.n.freq + o.n.slide*float64(o.pos)/float64(o.total)
		o.phase += freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a note in over attack and out over release.
type envelope struct {
	st      beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func shape(st beep.Streamer, n note) beep.Streamer {
	return &envelope{
		st:      st,
		attack:  SampleRate.N(n.attack),
		release: SampleRate.N(n.release),
		total:   SampleRate.N(n.duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.st.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.attack > 0 && e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			g = math.Min(g, float64(left)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.st.Err() }
