package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	def := DefaultRunnerConfig()

	if cfg.Camera != def.Camera {
		t.Errorf("camera = %+v, expected %+v", cfg.Camera, def.Camera)
	}
	if cfg.Player.Attack.LockMS != 700 || cfg.Player.Attack.ActiveFrame != 2 {
		t.Errorf("attack = %+v", cfg.Player.Attack)
	}
	if len(cfg.Spawners.Collectible.Patterns) != 5 {
		t.Errorf("expected 5 collectible patterns, got %d", len(cfg.Spawners.Collectible.Patterns))
	}
	if cfg.Spawners.Hazard.Interval() != 5*time.Second {
		t.Errorf("hazard interval = %v", cfg.Spawners.Hazard.Interval())
	}
	if len(cfg.Layers) != len(def.Layers) {
		t.Errorf("layers = %d, expected %d", len(cfg.Layers), len(def.Layers))
	}
}

func TestEmbeddedFirefliesDrift(t *testing.T) {
	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	var found *DecorationConfig
	for i := range cfg.Decorations {
		if cfg.Decorations[i].Name == "fireflies" {
			found = &cfg.Decorations[i]
		}
	}
	if found == nil {
		t.Fatal("fireflies decoration missing from embedded defaults")
	}
	if found.Drift == nil {
		t.Fatal("fireflies should drift")
	}
	if found.Drift.GlowMin != 0.4 || found.Drift.RadiusMax != 45 {
		t.Errorf("drift = %+v", *found.Drift)
	}
	if len(found.Images) != 3 {
		t.Errorf("images = %v", found.Images)
	}
}

func TestDriftGlowClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("decorations:\n  - { name: bugs, images: [firefly_1], count: 2, drift: { glow_min: 1.5 } }\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if len(cfg.Decorations) != 1 || cfg.Decorations[0].Drift == nil {
		t.Fatalf("decorations = %+v", cfg.Decorations)
	}
	if got := cfg.Decorations[0].Drift.GlowMin; got != 1 {
		t.Errorf("glow min = %v, expected 1", got)
	}
}

func TestLoadRunnerPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("camera:\n  follow_threshold: 120\nlayers:\n  - { name: only, depth: ground, image: grass, overlap: 0 }\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Camera.FollowThreshold != 120 {
		t.Errorf("follow threshold = %v, expected 120", cfg.Camera.FollowThreshold)
	}
	if cfg.Camera.StartX != 200 {
		t.Errorf("start x should keep its default, got %v", cfg.Camera.StartX)
	}
	if len(cfg.Layers) != 1 || cfg.Layers[0].Overlap != 1 {
		t.Errorf("overlap below 1 should clamp to 1, got %+v", cfg.Layers)
	}
	if cfg.Player.Speed != 5 {
		t.Errorf("player speed should keep its default, got %v", cfg.Player.Speed)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("camera: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyHard)
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard initial level = %v", cfg.Difficulty.InitialLevel)
	}
	if cfg.Spawners.Hazard.MinDistance != 750 {
		t.Errorf("hard hazard min distance = %v, expected 750", cfg.Spawners.Hazard.MinDistance)
	}

	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1, IntervalReduction: 0.4},
	})

	if got := d.Level(50, 0); got != 0.5 {
		t.Errorf("Level(50) = %v, expected 0.5", got)
	}
	if got := d.Level(1000, 0); got != 1 {
		t.Errorf("Level should clamp at 1, got %v", got)
	}
	if got := d.Speed(0.5, 100, 0); got != 1.0 {
		t.Errorf("Speed at max = %v, expected 1.0", got)
	}
	if got := d.Interval(5*time.Second, 100, 0); got != 3*time.Second {
		t.Errorf("Interval at max = %v, expected 3s", got)
	}

	fixed := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 0.3})
	if fixed.IsEnabled() {
		t.Error("disabled manager should report disabled")
	}
	if got := fixed.Level(10000, time.Hour); got != 0.3 {
		t.Errorf("disabled Level = %v, expected initial 0.3", got)
	}
}
