package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/fluffy-runner/internal/event"
)

func drain(t *testing.T, st beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := st.Stream(buf)
		for _, s := range buf[:n] {
			for _, v := range s {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestEveryCueHasAFiniteSound(t *testing.T) {
	s := New(1, nil)
	for _, name := range event.FXNames {
		st, err := s.Streamer(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		n, peak := drain(t, st)
		want := SampleRate.N(Duration(name))
		if n < want-8 || n > want+8 {
			t.Errorf("%s: streamed %d samples, want about %d", name, n, want)
		}
		if peak == 0 {
			t.Errorf("%s: silent", name)
		}
		if peak > 1 {
			t.Errorf("%s: peak %f clips", name, peak)
		}
		if st.Err() != nil {
			t.Errorf("%s: %v", name, st.Err())
		}
	}
}

func TestUnknownCue(t *testing.T) {
	s := New(1, nil)
	_, err := s.Streamer("nope")
	if !errors.Is(err, ErrUnknownCue) {
		t.Fatalf("expected ErrUnknownCue, got %v", err)
	}
	if Duration("nope") != 0 {
		t.Error("unknown cue should have no duration")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	s := New(0, nil)
	st, err := s.Streamer(event.FXJump)
	if err != nil {
		t.Fatal(err)
	}
	n, peak := drain(t, st)
	if n == 0 {
		t.Error("silent cue should still take its time")
	}
	if peak != 0 {
		t.Errorf("expected silence, peak %f", peak)
	}
}

func TestEnvelopeStartsAndEndsQuiet(t *testing.T) {
	n := note{freq: 440, wave: Square, duration: 0, attack: 0, release: 0}
	n.duration = 100e6
	n.attack = 10e6
	n.release = 10e6
	st := shape(newOscillator(n, nil), n)
	buf := make([][2]float64, SampleRate.N(n.duration))
	got, _ := st.Stream(buf)
	if got != len(buf) {
		t.Fatalf("streamed %d of %d", got, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silent, got %f", buf[0][0])
	}
	if v := buf[len(buf)-1][0]; v > 0.01 || v < -0.01 {
		t.Errorf("last sample should be near silent, got %f", v)
	}
	mid := buf[len(buf)/2][0]
	if mid != 1 && mid != -1 {
		t.Errorf("sustain should be full scale, got %f", mid)
	}
}

func TestPlayBeforeStartIsNoop(t *testing.T) {
	s := New(1, nil)
	s.Play(event.FXCollectItem)
	s.Play("nope")
	s.Handle(event.ScoreChanged{Score: 1})
	s.Handle(event.FX{Name: event.FXJump})
	if s.mixer.Len() != 0 {
		t.Errorf("mixer should be empty before Start, has %d", s.mixer.Len())
	}
	s.Close()
}
