package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fluffy-runner/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey('a'), core.ActionMoveLeft},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft},
		{runeKey('d'), core.ActionMoveRight},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{runeKey('x'), core.ActionAttack},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('z'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := km.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHolderKeepsMovementWhileRepeating(t *testing.T) {
	h := NewHolder(500 * time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(core.ActionMoveRight, t0)
	events := h.Events(t0)
	if len(events) != 1 || events[0] != core.Press(core.ActionMoveRight) {
		t.Fatalf("expected a single press, got %v", events)
	}

	// Auto-repeat keeps the key held without new events.
	for i := 1; i <= 10; i++ {
		now := t0.Add(time.Duration(i) * 100 * time.Millisecond)
		h.Press(core.ActionMoveRight, now)
		if ev := h.Events(now); len(ev) != 0 {
			t.Fatalf("repeat %d produced %v", i, ev)
		}
	}
	if !h.Held(core.ActionMoveRight) {
		t.Fatal("key should still be held")
	}

	last := t0.Add(time.Second)
	if ev := h.Events(last.Add(499 * time.Millisecond)); len(ev) != 0 {
		t.Fatalf("released too early: %v", ev)
	}
	ev := h.Events(last.Add(500 * time.Millisecond))
	if len(ev) != 1 || ev[0] != core.Release(core.ActionMoveRight) {
		t.Fatalf("expected a release, got %v", ev)
	}
	if h.Held(core.ActionMoveRight) {
		t.Error("key should be released")
	}
}

func TestHolderNewDirectionReleasesOld(t *testing.T) {
	h := NewHolder(time.Second)
	t0 := time.Unix(0, 0)
	h.Press(core.ActionMoveRight, t0)
	h.Events(t0)

	h.Press(core.ActionMoveLeft, t0.Add(10*time.Millisecond))
	ev := h.Events(t0.Add(10 * time.Millisecond))
	want := []core.KeyEvent{core.Release(core.ActionMoveRight), core.Press(core.ActionMoveLeft)}
	if len(ev) != len(want) {
		t.Fatalf("got %v, want %v", ev, want)
	}
	for i := range want {
		if ev[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, ev[i], want[i])
		}
	}
}

func TestHolderMomentaryActions(t *testing.T) {
	h := NewHolder(0)
	t0 := time.Unix(0, 0)
	h.Press(core.ActionJump, t0)
	h.Press(core.ActionQuit, t0)
	h.Press(core.ActionNone, t0)

	ev := h.Events(t0)
	if len(ev) != 2 || ev[0] != core.Press(core.ActionJump) || ev[1] != core.Release(core.ActionJump) {
		t.Fatalf("expected press and release of jump, got %v", ev)
	}
	if h.Held(core.ActionJump) {
		t.Error("jump should never be held")
	}
	if ev := h.Events(t0.Add(time.Hour)); len(ev) != 0 {
		t.Errorf("nothing should be pending, got %v", ev)
	}
}

func TestHolderReleaseAll(t *testing.T) {
	h := NewHolder(time.Second)
	t0 := time.Unix(0, 0)
	h.Press(core.ActionMoveLeft, t0)
	h.Events(t0)

	h.ReleaseAll()
	ev := h.Events(t0)
	if len(ev) != 1 || ev[0] != core.Release(core.ActionMoveLeft) {
		t.Fatalf("expected a release, got %v", ev)
	}
}

func TestFrameDelta(t *testing.T) {
	t0 := time.Unix(100, 0)
	if got := frameDelta(time.Time{}, t0, 50); got != 20*time.Millisecond {
		t.Errorf("first tick = %v, want 20ms", got)
	}
	if got := frameDelta(t0, t0.Add(30*time.Millisecond), 60); got != 30*time.Millisecond {
		t.Errorf("delta = %v, want 30ms", got)
	}
	if got := frameDelta(t0, t0.Add(5*time.Second), 60); got != maxStep {
		t.Errorf("stall = %v, want %v", got, maxStep)
	}
	if got := frameDelta(t0, t0.Add(-time.Second), 60); got != time.Second/60 {
		t.Errorf("clock going back = %v, want nominal", got)
	}
}
