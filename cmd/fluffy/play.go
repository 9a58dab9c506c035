package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fluffy-runner/internal/audio"
	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/core"
	"github.com/vovakirdan/fluffy-runner/internal/platform/tui"
	"github.com/vovakirdan/fluffy-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagVolume     float64
	flagHold       time.Duration
	flagGlyphs     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the runner",
	Long: `Start the runner with the main menu.

Pick a difficulty in the menu, or pass --difficulty to jump straight into
a round. Leaving a round with Esc returns to the menu.

Controls:
  Left/Right/A/D  - Run
  Space/Up/W      - Jump
  X/J/Enter       - Attack
  P               - Pause
  R               - Restart (after game over)
  Esc             - Back to menu (paused or game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  fluffy play
  fluffy play --difficulty hard
  fluffy play --sound --volume 0.3
  fluffy play --config ./my-runner.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Start directly with a preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0-1)")
	playCmd.Flags().DurationVar(&flagHold, "hold", tui.DefaultHoldTimeout, "How long a movement key stays held without key repeat")
	playCmd.Flags().StringVar(&flagGlyphs, "glyphs", "", "Path to a custom glyph set YAML")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger("fluffy")
	defer closeLog()

	if _, _, err := loadRunner(flagConfig, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	glyphs := tui.DefaultGlyphs()
	if flagGlyphs != "" {
		g, err := tui.LoadGlyphs(flagGlyphs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		glyphs = g
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var synth *audio.Synth
	if flagSound {
		synth = audio.New(flagVolume, logger)
		if err := synth.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			synth = nil
		} else {
			defer synth.Close()
		}
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	player := "player"
	if u, err := user.Current(); err == nil && u.Username != "" {
		player = u.Username
	}

	play := func(preset config.DifficultyPreset) (bool, error) {
		runner, _, err := loadRunner(flagConfig, string(preset))
		if err != nil {
			return false, err
		}
		logger.Info("round started", "mode", preset, "seed", flagSeed)
		return tui.RunGame(tui.GameOptions{
			Config: runner,
			Runtime: core.RuntimeConfig{
				ScreenW:  width,
				ScreenH:  height,
				TickRate: flagFPS,
				Seed:     flagSeed,
			},
			Mode:   string(preset),
			Player: player,
			Store:  store,
			Glyphs: glyphs,
			Synth:  synth,
			Logger: logger,
			Hold:   flagHold,
		})
	}

	if flagDifficulty != "" {
		backToMenu, err := play(config.DifficultyPreset(flagDifficulty))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		if !backToMenu {
			return
		}
	}

	mode := string(config.DifficultyNormal)
	for {
		item, err := tui.RunMenu(width, height, bestScores(store))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		switch item.Choice {
		case tui.ChoicePlay:
			mode = string(item.Preset)
			backToMenu, err := play(item.Preset)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				os.Exit(1)
			}
			if !backToMenu {
				return
			}
		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, width, height, mode)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}
		default:
			return
		}
	}
}

// bestScores returns the leaderboard high score of every mode.
func bestScores(store *storage.Store) map[string]int {
	if store == nil {
		return nil
	}
	stats, err := store.ModeStats()
	if err != nil {
		return nil
	}
	best := make(map[string]int, len(stats))
	for mode, st := range stats {
		best[mode] = st.HighScore
	}
	return best
}
