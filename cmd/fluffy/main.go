// fluffy is a side-scrolling runner for the terminal.
//
// Usage:
//
//	fluffy play              - Start the menu and play
//	fluffy serve             - Start SSH server for remote play
//	fluffy scores [mode]     - Show high scores for a difficulty mode
//	fluffy config            - Print the default runner config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.fluffy/scores.db)
//	--log-file <path>    - Write logs to a file (default: ~/.fluffy/fluffy.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fluffy-runner/internal/config"
	"github.com/vovakirdan/fluffy-runner/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fluffy",
	Short: "Fluffy Runner - a side-scrolling runner in your terminal",
	Long: `Fluffy Runner is a side-scrolling runner played in the terminal.
Dodge hazards, collect stars and chain your score before the mines catch you.

Available commands:
  play     - Menu, game and leaderboard
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default runner config

Examples:
  fluffy play
  fluffy play --difficulty hard --sound
  fluffy serve --ssh :2222
  fluffy scores normal`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fluffy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.fluffy/fluffy.log", "Log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// openLogger returns the file logger selected by the global flags. The
// game owns the terminal, so nothing is logged to stderr while it runs.
func openLogger(prefix string) (*log.Logger, func()) {
	if flagLogFile == "" {
		return logging.Discard(), func() {}
	}
	f, err := logging.OpenFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logging.New(f, prefix, logging.ParseLevel(flagLogLevel)), func() { _ = f.Close() }
}

// loadRunner loads the runner config from path (or the usual search path)
// and applies the difficulty preset when one is given.
func loadRunner(path, difficulty string) (config.RunnerConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadRunner(path)
	if err != nil {
		return cfg, "", err
	}
	if difficulty == "" {
		return cfg, config.DifficultyNormal, nil
	}
	preset, ok := config.ParsePreset(difficulty)
	if !ok {
		return cfg, "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
	}
	config.ApplyRunnerPreset(&cfg, preset)
	return cfg, preset, nil
}
