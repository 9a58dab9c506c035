package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fluffy-runner/internal/config"
)

var (
	flagShowConfig string
	flagShowPreset string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the runner config",
	Long: `Print the runner config as YAML.

Without flags this is the built-in default, a good starting point for
~/.fluffy/configs/runner.yaml. With --config and --difficulty it prints the
config a round would actually use.

Examples:
  fluffy config > ~/.fluffy/configs/runner.yaml
  fluffy config --difficulty hard
  fluffy config --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagShowConfig, "config", "", "Path to custom runner config YAML")
	configCmd.Flags().StringVar(&flagShowPreset, "difficulty", "", "Apply a preset: easy, normal, hard, fixed")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagShowConfig == "" && flagShowPreset == "" {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}
	cfg, _, err := loadRunner(flagShowConfig, flagShowPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
