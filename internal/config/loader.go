package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const runnerFile = "runner.yaml"

// LoadRunner loads the runner configuration. Files only need to name the
// values they change; everything else keeps its default.
// Search order: customPath -> ~/.fluffy/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.Validate(), nil
	}

	if userCfgPath := userConfigPath(runnerFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.Validate(), nil
			}
			cfg = DefaultRunnerConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", runnerFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.Validate(), nil
		}
		cfg = DefaultRunnerConfig()
	}

	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.Validate(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fluffy", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Spawners.Hazard.IntervalMS = cfg.Spawners.Hazard.IntervalMS * 3 / 2
	case DifficultyHard:
		cfg.Spawners.Hazard.MinDistance *= 0.75
		cfg.Spawners.Mine.IntervalMS = cfg.Spawners.Mine.IntervalMS * 3 / 4
	}
}

// Validate returns a copy with values the simulation cannot run with replaced
// by safe ones.
func (c RunnerConfig) Validate() RunnerConfig {
	def := DefaultRunnerConfig()

	if c.World.GroundOffset <= 0 {
		c.World.GroundOffset = def.World.GroundOffset
	}
	if c.World.MaxFrameScale <= 0 {
		c.World.MaxFrameScale = def.World.MaxFrameScale
	}
	if c.World.CullMargin <= 0 {
		c.World.CullMargin = def.World.CullMargin
	}
	if c.Camera.FollowThreshold < 0 {
		c.Camera.FollowThreshold = 0
	}
	if c.Player.Speed <= 0 {
		c.Player = def.Player
	}
	if c.Player.Attack.FrameMS <= 0 || c.Player.Attack.Frames < 2 {
		c.Player.Attack = def.Player.Attack
	}
	c.Player.Attack.ActiveFrame = clampInt(c.Player.Attack.ActiveFrame, 0, c.Player.Attack.Frames-2)

	c.Spawners.Hazard = validSpawner(c.Spawners.Hazard, def.Spawners.Hazard)
	c.Spawners.Collectible = validSpawner(c.Spawners.Collectible, def.Spawners.Collectible)
	c.Spawners.Mine = validSpawner(c.Spawners.Mine, def.Spawners.Mine)

	if len(c.Layers) == 0 {
		c.Layers = def.Layers
	}
	for i := range c.Layers {
		if c.Layers[i].Overlap < 1 {
			c.Layers[i].Overlap = 1
		}
		if c.Layers[i].Scale <= 0 {
			c.Layers[i].Scale = 1
		}
	}
	if c.Decorations == nil {
		c.Decorations = def.Decorations
	}
	for i := range c.Decorations {
		if c.Decorations[i].MaxAttempts < 1 {
			c.Decorations[i].MaxAttempts = 1
		}
		if c.Decorations[i].SpanFactor < 1 {
			c.Decorations[i].SpanFactor = 1
		}
		if d := c.Decorations[i].Drift; d != nil {
			d.GlowMin = clampF(d.GlowMin, 0, 1)
		}
	}
	if c.Score.Unit <= 0 {
		c.Score.Unit = def.Score.Unit
	}
	if c.Score.BestKey == "" {
		c.Score.BestKey = def.Score.BestKey
	}
	if c.Effects.ExplosionMS <= 0 {
		c.Effects = def.Effects
	}
	if c.Difficulty.Progression.Type == "" {
		c.Difficulty = def.Difficulty
	}
	return c
}

func validSpawner(s, def SpawnerConfig) SpawnerConfig {
	if s.IntervalMS <= 0 || s.Image == "" {
		return def
	}
	if len(s.Patterns) == 0 {
		s.Patterns = def.Patterns
	}
	if s.Size.W <= 0 || s.Size.H <= 0 {
		s.Size = def.Size
	}
	if s.MinDistance < 0 {
		s.MinDistance = 0
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
