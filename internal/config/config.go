// Package config provides YAML-based configuration loading and difficulty
// management for the runner.
package config

import "time"

// RunnerConfig contains all tunables of the runner simulation.
type RunnerConfig struct {
	World       WorldConfig        `yaml:"world"`
	Camera      CameraConfig       `yaml:"camera"`
	Player      PlayerConfig       `yaml:"player"`
	Spawners    SpawnersConfig     `yaml:"spawners"`
	Layers      []LayerConfig      `yaml:"layers"`
	Decorations []DecorationConfig `yaml:"decorations"`
	Score       ScoreConfig        `yaml:"score"`
	Round       RoundConfig        `yaml:"round"`
	Effects     EffectsConfig      `yaml:"effects"`
	Difficulty  DifficultyConfig   `yaml:"difficulty"`
}

// WorldConfig defines the ground line and frame pacing.
type WorldConfig struct {
	GroundOffset  float64 `yaml:"ground_offset"`   // px from viewport bottom up to the ground line
	MaxFrameScale float64 `yaml:"max_frame_scale"` // upper bound of the per-tick delta factor
	CullMargin    float64 `yaml:"cull_margin"`     // px behind the camera before entities are dropped
}

// CameraConfig defines when the camera starts following the player.
type CameraConfig struct {
	StartX          float64 `yaml:"start_x"`
	FollowThreshold float64 `yaml:"follow_threshold"`
}

// SizeConfig is a width/height pair in world pixels.
type SizeConfig struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PlayerConfig defines the player's movement, attack and death.
type PlayerConfig struct {
	Speed     float64         `yaml:"speed"`
	Body      SizeConfig      `yaml:"body"`
	Ceiling   float64         `yaml:"ceiling"`
	Jump      JumpConfig      `yaml:"jump"`
	Attack    AttackConfig    `yaml:"attack"`
	Animation AnimationConfig `yaml:"animation"`
	Death     DeathConfig     `yaml:"death"`
}

// JumpConfig defines a ballistic hop.
type JumpConfig struct {
	Impulse      float64 `yaml:"impulse"` // negative is upward
	Gravity      float64 `yaml:"gravity"`
	ForwardSpeed float64 `yaml:"forward_speed"`
	DriftDecay   float64 `yaml:"drift_decay"` // fraction of forward speed lost at full vertical speed
}

// AttackConfig defines the attack hop and its hit window.
type AttackConfig struct {
	JumpConfig  `yaml:",inline"`
	FrameMS     int          `yaml:"frame_ms"`
	Frames      int          `yaml:"frames"`
	ActiveFrame int          `yaml:"active_frame"`
	LockMS      int          `yaml:"lock_ms"`
	HitRegion   RegionConfig `yaml:"hit_region"`
}

// FrameDuration returns the duration of one attack animation frame.
func (a AttackConfig) FrameDuration() time.Duration {
	return time.Duration(a.FrameMS) * time.Millisecond
}

// LockDuration returns how long the landing commit locks the player.
func (a AttackConfig) LockDuration() time.Duration {
	return time.Duration(a.LockMS) * time.Millisecond
}

// RegionConfig places a rectangle relative to the player's feet.
// OffsetX is measured from the body centre along the facing direction,
// OffsetY from the top of the body downward.
type RegionConfig struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	W       float64 `yaml:"w"`
	H       float64 `yaml:"h"`
}

// ClipConfig describes one looping animation clip.
type ClipConfig struct {
	Frames  int `yaml:"frames"`
	FrameMS int `yaml:"frame_ms"`
}

// AnimationConfig holds the looping clips of the player.
type AnimationConfig struct {
	Idle ClipConfig `yaml:"idle"`
	Run  ClipConfig `yaml:"run"`
	Jump ClipConfig `yaml:"jump"`
}

// DeathConfig is the scripted trajectory played after a lethal hit.
type DeathConfig struct {
	Waypoints []WaypointConfig `yaml:"waypoints"`
}

// WaypointConfig is one leg of the death trajectory. DX is mirrored by facing.
type WaypointConfig struct {
	DX         float64 `yaml:"dx"`
	DY         float64 `yaml:"dy"`
	Rotation   float64 `yaml:"rotation"`
	Arc        float64 `yaml:"arc"`
	DurationMS int     `yaml:"duration_ms"`
}

// SpawnersConfig holds the three spawners of the world.
type SpawnersConfig struct {
	Hazard      SpawnerConfig `yaml:"hazard"`
	Collectible SpawnerConfig `yaml:"collectible"`
	Mine        SpawnerConfig `yaml:"mine"`
}

// SpawnerConfig defines cadence, placement and motion of one entity type.
type SpawnerConfig struct {
	Image        string            `yaml:"image"`
	IntervalMS   int               `yaml:"interval_ms"`
	MinDistance  float64           `yaml:"min_distance"`
	Margin       float64           `yaml:"margin"`
	Variation    float64           `yaml:"variation"`
	Size         SizeConfig        `yaml:"size"`
	Exclusions   []ExclusionConfig `yaml:"exclusions"`
	PatternOrder string            `yaml:"pattern_order"` // "cycle" or "random"
	Patterns     []PatternConfig   `yaml:"patterns"`
	Motion       MotionConfig      `yaml:"motion"`
	Animation    ClipConfig        `yaml:"animation"`
}

// Interval returns the base spawn interval.
func (s SpawnerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// ExclusionConfig keeps spawns away from another entity kind.
type ExclusionConfig struct {
	Kind   string  `yaml:"kind"`
	Radius float64 `yaml:"radius"`
}

// PatternConfig is one vertical placement rule.
type PatternConfig struct {
	Name           string  `yaml:"name"`
	Kind           string  `yaml:"kind"` // "ground", "floating" or "formation"
	Count          int     `yaml:"count"`
	Spacing        float64 `yaml:"spacing"`
	HeightFraction float64 `yaml:"height_fraction"` // of viewport height, above the ground line
	OffsetMin      float64 `yaml:"offset_min"`
	OffsetMax      float64 `yaml:"offset_max"`
	Jitter         float64 `yaml:"jitter"`
}

// MotionConfig defines how an entity moves once spawned.
type MotionConfig struct {
	Kind           string  `yaml:"kind"` // "patrol", "bob" or "static"
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedMax       float64 `yaml:"speed_max"`
	RadiusMin      float64 `yaml:"radius_min"`
	RadiusMax      float64 `yaml:"radius_max"`
	TurnChance     float64 `yaml:"turn_chance"`
	BobAmplitude   float64 `yaml:"bob_amplitude"`
	BobSpeed       float64 `yaml:"bob_speed"`
	SwingAmplitude float64 `yaml:"swing_amplitude"`
	SwingSpeed     float64 `yaml:"swing_speed"`
}

// LayerConfig defines one infinitely tiled layer.
type LayerConfig struct {
	Name    string  `yaml:"name"`
	Depth   string  `yaml:"depth"` // "sky", "background", "ground" or "foreground"
	Image   string  `yaml:"image"`
	Overlap int     `yaml:"overlap"`
	Anchor  string  `yaml:"anchor"` // "top" or "ground"
	Y       float64 `yaml:"y"`
	Scale   float64 `yaml:"scale"`
}

// DecorationConfig defines sparse decorations placed with minimum spacing.
type DecorationConfig struct {
	Name        string   `yaml:"name"`
	Depth       string   `yaml:"depth"`
	Images      []string `yaml:"images"`
	Count       int      `yaml:"count"`
	MinSpacing  float64  `yaml:"min_spacing"`
	MaxAttempts int      `yaml:"max_attempts"`
	SpanFactor  float64  `yaml:"span_factor"` // repeating span in viewport widths
	YMin        float64  `yaml:"y_min"`
	YMax        float64  `yaml:"y_max"`
	// Drift makes every instance hover around its spot and pulse; nil
	// decorations stay still.
	Drift *DriftConfig `yaml:"drift,omitempty"`
}

// DriftConfig defines the hover of ambient decorations. Each instance draws
// its own values from the ranges. Speeds are radians per reference frame.
type DriftConfig struct {
	RadiusMin       float64 `yaml:"radius_min"` // main orbit
	RadiusMax       float64 `yaml:"radius_max"`
	OrbitSpeedMin   float64 `yaml:"orbit_speed_min"`
	OrbitSpeedMax   float64 `yaml:"orbit_speed_max"`
	WobbleRadiusMin float64 `yaml:"wobble_radius_min"` // secondary loop on top of the orbit
	WobbleRadiusMax float64 `yaml:"wobble_radius_max"`
	WobbleSpeedMin  float64 `yaml:"wobble_speed_min"`
	WobbleSpeedMax  float64 `yaml:"wobble_speed_max"`
	SwayX           float64 `yaml:"sway_x"` // slow shared sway amplitude
	SwayY           float64 `yaml:"sway_y"`
	SwaySpeed       float64 `yaml:"sway_speed"`
	GlowSpeedMin    float64 `yaml:"glow_speed_min"`
	GlowSpeedMax    float64 `yaml:"glow_speed_max"`
	GlowMin         float64 `yaml:"glow_min"` // alpha at the dimmest point
}

// ScoreConfig defines scoring and best-score persistence.
type ScoreConfig struct {
	Unit    int    `yaml:"unit"`
	BestKey string `yaml:"best_key"`
}

// RoundConfig defines what keeps moving when gameplay is suspended.
type RoundConfig struct {
	EntitiesMoveWhilePaused bool `yaml:"entities_move_while_paused"`
	EntitiesMoveAfterOver   bool `yaml:"entities_move_after_over"`
}

// EffectsConfig defines cosmetic timed sequences.
type EffectsConfig struct {
	ExplosionMS int `yaml:"explosion_ms"`
	Particles   int `yaml:"particles"`
	SplatterMS  int `yaml:"splatter_ms"`
	DustMS      int `yaml:"dust_ms"`
	HUDFadeMS   int `yaml:"hud_fade_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to hazard speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction removed from spawn intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}
