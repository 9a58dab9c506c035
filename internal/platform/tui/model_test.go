package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/storage"
)

func newTestGame(t *testing.T, cfg config.RunnerConfig, store *storage.Store) GameModel {
	t.Helper()
	return NewGameModel(GameOptions{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Mode:    "normal",
		Player:  "tester",
		Store:   store,
	})
}

func tick(t *testing.T, m GameModel, at time.Time) GameModel {
	t.Helper()
	next, cmd := m.Update(TickMsg{Loop: m.loop, Time: at})
	if cmd == nil {
		t.Fatal("a live game keeps ticking")
	}
	return next.(GameModel)
}

func send(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelUsesTerminalSizedWorld(t *testing.T) {
	m := newTestGame(t, config.DefaultRunnerConfig(), nil)
	w, h := m.Session().Viewport()
	if w != 800 || h != 480 {
		t.Errorf("viewport = %vx%v, want 800x480", w, h)
	}
	if m.Session().GroundLine() != 330 {
		t.Errorf("ground line = %v, want 330", m.Session().GroundLine())
	}

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	w, h = m.Session().Viewport()
	if w != 1000 || h != 600 {
		t.Errorf("viewport after resize = %vx%v, want 1000x600", w, h)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := newTestGame(t, config.DefaultRunnerConfig(), nil)
	next, cmd := m.Update(TickMsg{Loop: m.loop + 1, Time: time.Now()})
	if cmd != nil {
		t.Error("a stale tick must not start another loop")
	}
	if next.(GameModel).Session().Clock() != 0 {
		t.Error("a stale tick must not advance the session")
	}
}

func TestGameModelMovesAndRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cfg := config.DefaultRunnerConfig()
	// A collectible on the start position, a mine a few steps ahead.
	cfg.Spawners.Collectible.Margin = -600
	cfg.Spawners.Collectible.Exclusions = nil
	cfg.Spawners.Collectible.Patterns = []config.PatternConfig{{Name: "single", Kind: "ground"}}
	cfg.Spawners.Mine.Margin = -500
	cfg.Spawners.Mine.Variation = 0
	cfg.Spawners.Mine.Exclusions = nil
	cfg.Spawners.Mine.Patterns = []config.PatternConfig{{Name: "ground", Kind: "ground"}}

	m := newTestGame(t, cfg, store)
	m = send(m, runeKey('d'))

	start := time.Now()
	for i := 1; i <= 30 && !m.State().GameOver; i++ {
		m = tick(t, m, start.Add(time.Duration(i)*core.ReferenceFrame))
	}
	if !m.State().GameOver {
		t.Fatal("running into the mine should end the round")
	}
	if m.State().Score != 10 {
		t.Errorf("score = %d, want 10", m.State().Score)
	}
	if m.holder.Held(core.ActionMoveRight) {
		t.Error("held keys are released when the round ends")
	}

	runs, err := store.TopScores("normal", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Score != 10 || runs[0].Player != "tester" {
		t.Fatalf("runs = %+v, want one run of 10 by tester", runs)
	}
	best, ok, err := store.KV("normal").Get("best_score")
	if err != nil || !ok || best != "10" {
		t.Errorf("best = %q %v %v, want 10", best, ok, err)
	}

	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("view should show the game over banner")
	}

	// Restart is accepted once the round is over.
	m = send(m, runeKey('r'))
	m = tick(t, m, start.Add(time.Second))
	if m.State().GameOver || m.State().Best != 10 {
		t.Errorf("after restart state = %+v", m.State())
	}
	if m.Session().Clock() >= time.Second {
		t.Errorf("clock = %v, the round should have started over", m.Session().Clock())
	}
}

func TestGameModelRestartOnlyAfterRound(t *testing.T) {
	m := newTestGame(t, config.DefaultRunnerConfig(), nil)
	m = send(m, runeKey('d'))
	start := time.Now()
	for i := 1; i <= 5; i++ {
		m = tick(t, m, start.Add(time.Duration(i)*core.ReferenceFrame))
	}
	x := m.Session().Player().WorldX()

	m = send(m, runeKey('r'))
	m = tick(t, m, start.Add(6*core.ReferenceFrame))
	if m.Session().Player().WorldX() <= x {
		t.Error("restart during a running round must be ignored")
	}
}

func TestGameModelBackOnlyWhenSuspended(t *testing.T) {
	m := newTestGame(t, config.DefaultRunnerConfig(), nil)
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc while running must not leave the game")
	}

	m = send(m, runeKey('p'))
	m = tick(t, m, time.Now())
	if !m.State().Paused {
		t.Fatal("p should pause")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused returns to the menu")
	}
	if m.View() != "" {
		t.Error("a game that was left renders nothing")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestGame(t, config.DefaultRunnerConfig(), nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
}
