package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration. It mirrors
// defaults/runner.yaml and is only used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World:  WorldConfig{GroundOffset: 150, MaxFrameScale: 3, CullMargin: 200},
		Camera: CameraConfig{StartX: 200, FollowThreshold: 300},
		Player: PlayerConfig{
			Speed:   5,
			Body:    SizeConfig{W: 40, H: 60},
			Ceiling: 40,
			Jump:    JumpConfig{Impulse: -16, Gravity: 0.55, ForwardSpeed: 6, DriftDecay: 0.2},
			Attack: AttackConfig{
				JumpConfig:  JumpConfig{Impulse: -8, Gravity: 0.5, ForwardSpeed: 2, DriftDecay: 0.2},
				FrameMS:     80,
				Frames:      4,
				ActiveFrame: 2,
				LockMS:      700,
				HitRegion:   RegionConfig{OffsetX: 0, OffsetY: 10, W: 70, H: 50},
			},
			Animation: AnimationConfig{
				Idle: ClipConfig{Frames: 2, FrameMS: 500},
				Run:  ClipConfig{Frames: 4, FrameMS: 100},
				Jump: ClipConfig{Frames: 3, FrameMS: 150},
			},
			Death: DeathConfig{Waypoints: []WaypointConfig{
				{DX: -60, DY: -120, Rotation: -1.2, Arc: 40, DurationMS: 350},
				{DX: -140, DY: 600, Rotation: -3.1, Arc: 60, DurationMS: 900},
			}},
		},
		Spawners: SpawnersConfig{
			Hazard: SpawnerConfig{
				Image: "hazard", IntervalMS: 5000, MinDistance: 1000, Margin: 100,
				Size:         SizeConfig{W: 50, H: 80},
				PatternOrder: "cycle",
				Patterns:     []PatternConfig{{Name: "ground", Kind: "ground"}},
				Motion: MotionConfig{
					Kind: "patrol", SpeedMin: 0.2, SpeedMax: 0.6,
					RadiusMin: 80, RadiusMax: 200, TurnChance: 0.001,
				},
				Animation: ClipConfig{Frames: 2, FrameMS: 300},
			},
			Collectible: SpawnerConfig{
				Image: "collectible", IntervalMS: 2000, MinDistance: 200, Margin: 100,
				Size:         SizeConfig{W: 30, H: 30},
				Exclusions:   []ExclusionConfig{{Kind: "hazard", Radius: 500}},
				PatternOrder: "cycle",
				Patterns: []PatternConfig{
					{Name: "low-five", Kind: "formation", Count: 5, Spacing: 150, HeightFraction: 0.15, Jitter: 15},
					{Name: "mid-four", Kind: "formation", Count: 4, Spacing: 150, HeightFraction: 0.25, Jitter: 15},
					{Name: "mid-five", Kind: "formation", Count: 5, Spacing: 150, HeightFraction: 0.35, Jitter: 15},
					{Name: "high-four", Kind: "formation", Count: 4, Spacing: 150, HeightFraction: 0.45, Jitter: 15},
					{Name: "top-five", Kind: "formation", Count: 5, Spacing: 150, HeightFraction: 0.55, Jitter: 15},
				},
				Motion: MotionConfig{
					Kind: "bob", BobAmplitude: 3, BobSpeed: 0.03,
					SwingAmplitude: 0.5236, SwingSpeed: 0.02,
				},
				Animation: ClipConfig{Frames: 2, FrameMS: 400},
			},
			Mine: SpawnerConfig{
				Image: "mine", IntervalMS: 2500, MinDistance: 1200, Margin: 100, Variation: 800,
				Size:         SizeConfig{W: 36, H: 36},
				Exclusions:   []ExclusionConfig{{Kind: "hazard", Radius: 1000}},
				PatternOrder: "random",
				Patterns: []PatternConfig{
					{Name: "floating", Kind: "floating", OffsetMin: 50, OffsetMax: 250},
					{Name: "ground", Kind: "ground", OffsetMin: 10, OffsetMax: 30},
				},
				Motion:    MotionConfig{Kind: "bob", BobAmplitude: 5, BobSpeed: 0.02},
				Animation: ClipConfig{Frames: 1, FrameMS: 1000},
			},
		},
		Layers: []LayerConfig{
			{Name: "sky", Depth: "sky", Image: "sky", Overlap: 1, Anchor: "top", Scale: 1},
			{Name: "hills", Depth: "background", Image: "foliage", Overlap: 5, Anchor: "ground", Y: -80, Scale: 1},
			{Name: "grass", Depth: "ground", Image: "grass", Overlap: 5, Anchor: "ground", Scale: 1},
			{Name: "soil", Depth: "ground", Image: "soil", Overlap: 10, Anchor: "ground", Y: 20, Scale: 1},
			{Name: "crowns", Depth: "foreground", Image: "crowns", Overlap: 10, Anchor: "top", Scale: 1},
		},
		Decorations: []DecorationConfig{
			{
				Name: "garlands-back", Depth: "background",
				Images: []string{"garland_1", "garland_2", "garland_3", "garland_4"},
				Count:  6, MinSpacing: 180, MaxAttempts: 20, SpanFactor: 2, YMin: 40, YMax: 120,
			},
			{
				Name: "garlands-front", Depth: "foreground",
				Images: []string{"garland_5", "garland_6", "garland_7", "garland_8"},
				Count:  4, MinSpacing: 260, MaxAttempts: 20, SpanFactor: 2, YMin: -60, YMax: 20,
			},
			{
				Name: "fireflies", Depth: "background",
				Images: []string{"firefly_1", "firefly_2", "firefly_3"},
				Count:  40, MaxAttempts: 1, SpanFactor: 2, YMin: 20, YMax: 320,
				Drift: &DriftConfig{
					RadiusMin: 15, RadiusMax: 45, OrbitSpeedMin: 0.01, OrbitSpeedMax: 0.03,
					WobbleRadiusMin: 8, WobbleRadiusMax: 20, WobbleSpeedMin: 0.015, WobbleSpeedMax: 0.035,
					SwayX: 2, SwayY: 2, SwaySpeed: 0.01,
					GlowSpeedMin: 0.05, GlowSpeedMax: 0.12, GlowMin: 0.4,
				},
			},
		},
		Score:   ScoreConfig{Unit: 10, BestKey: "best_score"},
		Round:   RoundConfig{EntitiesMoveWhilePaused: false, EntitiesMoveAfterOver: true},
		Effects: EffectsConfig{ExplosionMS: 900, Particles: 12, SplatterMS: 600, DustMS: 400, HUDFadeMS: 300},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "score", MaxAt: 500},
			Scaling:      ScalingConfig{SpeedMultiplier: 1.0, IntervalReduction: 0.4},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML, for `fluffy config`.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
