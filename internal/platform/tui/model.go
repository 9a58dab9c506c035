package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fluffy-runner/internal/audio"
	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/event"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
	"github.com/vovakirdan/fluffy-runner/internal/score"
	"github.com/vovakirdan/fluffy-runner/internal/storage"
	"github.com/vovakirdan/fluffy-runner/internal/world"
)

// GameOptions configure one game screen.
type GameOptions struct {
	Config config.RunnerConfig
	// Runtime.ScreenW/ScreenH are terminal cells here; the model converts
	// them to world pixels through the glyph cell size.
	Runtime core.RuntimeConfig
	Mode    string // leaderboard bucket, usually the difficulty preset
	Player  string
	Store   *storage.Store // nil disables the leaderboard
	KV      score.KV       // nil falls back to the store's kv table, then memory
	Glyphs  *GlyphSet
	Synth   *audio.Synth
	Logger  *log.Logger
	Hold    time.Duration
}

// runRecorder saves finished rounds to the leaderboard.
type runRecorder struct {
	store   *storage.Store
	mode    string
	player  string
	session *world.Session
	log     *log.Logger
}

func (r *runRecorder) handle(ev event.Event) {
	rc, ok := ev.(event.RoundChanged)
	if !ok || rc.To != core.RoundOver {
		return
	}
	points := r.session.State().Score
	if r.store == nil || points <= 0 {
		return
	}
	if _, err := r.store.SaveRun(r.mode, r.player, points); err != nil {
		r.log.Warn("could not save run", "mode", r.mode, "score", points, "err", err)
	}
}

// GameModel is the Bubble Tea model that plays the runner.
type GameModel struct {
	opts    GameOptions
	session *world.Session
	screen  *core.Screen
	painter *Painter
	holder  *Holder
	keys    KeyMap
	log     *log.Logger
	loop    uint64

	lastTick   time.Time
	state      core.GameState
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the session and the terminal plumbing around it.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = 80, 24
	}
	if opts.Glyphs == nil {
		opts.Glyphs = DefaultGlyphs()
	}
	if opts.Mode == "" {
		opts.Mode = string(config.DifficultyNormal)
	}
	logger := logging.OrDiscard(opts.Logger)

	kv := opts.KV
	if kv == nil {
		if opts.Store != nil {
			kv = opts.Store.KV(opts.Mode)
		} else {
			kv = storage.NewMemoryKV()
		}
	}

	rt := opts.Runtime
	rt.ScreenW, rt.ScreenH = opts.Glyphs.Viewport(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	session := world.New(world.Options{
		Config:  opts.Config,
		Runtime: rt,
		Catalog: opts.Glyphs,
		KV:      kv,
		Logger:  logger,
	})

	rec := &runRecorder{store: opts.Store, mode: opts.Mode, player: opts.Player, session: session, log: logger}
	session.Subscribe(rec.handle)
	if opts.Synth != nil {
		session.Subscribe(opts.Synth.Handle)
	}

	return GameModel{
		opts:    opts,
		session: session,
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		painter: NewPainter(opts.Glyphs),
		holder:  NewHolder(opts.Hold),
		keys:    DefaultKeyMap(),
		log:     logger,
		loop:    newLoop(),
		state:   session.State(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.loop, m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back) && (m.state.GameOver || m.state.Paused || m.state.Halted):
		m.backToMenu = true
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.holder.Press(a, now)
	}
	return m, nil
}

// resize keeps the round and adapts the world to the new terminal size.
func (m *GameModel) resize(cols, rows int) {
	m.opts.Runtime.ScreenW = cols
	m.opts.Runtime.ScreenH = rows
	m.screen.Resize(cols, rows)
	w, h := m.opts.Glyphs.Viewport(cols, rows)
	m.session.Resize(w, h)
}

// handleTick advances the simulation by the real time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	dt := frameDelta(m.lastTick, now, m.opts.Runtime.TickRate)
	m.lastTick = now

	input := m.holder.Events(now)
	wasOver := m.state.GameOver
	for _, e := range input {
		if e.Action == core.ActionRestart && e.Down && !wasOver && !m.state.Halted {
			input = dropRestart(input)
			break
		}
	}

	res := m.session.Step(input, dt)
	m.state = res.State
	m.painter.Apply(m.session.Intents())
	if m.state.GameOver && !wasOver {
		m.holder.ReleaseAll()
	}

	return m, tickCmd(m.loop, m.opts.Runtime.TickRate)
}

// dropRestart removes restart presses. Restarting is offered once the round
// has ended or halted.
func dropRestart(in []core.KeyEvent) []core.KeyEvent {
	out := in[:0]
	for _, e := range in {
		if e.Action != core.ActionRestart {
			out = append(out, e)
		}
	}
	return out
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.paint()

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".fluffy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.Mode, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot skipped", "err", err)
	}
}

func (m *GameModel) paint() {
	m.painter.Paint(m.screen)
	drawHUD(m.screen, m.state, m.session.HUDAlpha())
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.paint()
	return RenderScreen(m.screen)
}

// Session exposes the simulation.
func (m GameModel) Session() *world.Session { return m.session }

// State returns the state after the last step.
func (m GameModel) State() core.GameState { return m.state }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// RunGame plays one game in the alternate screen until the player quits or
// goes back.
func RunGame(opts GameOptions) (backToMenu bool, err error) {
	p := tea.NewProgram(NewGameModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
