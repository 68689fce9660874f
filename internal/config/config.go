// Package config provides YAML-based game configuration loading and
// difficulty management for the breaker platform.
package config

// BreakerConfig contains all configuration for the breaker game variants.
type BreakerConfig struct {
	Physics    BreakerPhysics   `yaml:"physics"`
	Paddle     BreakerPaddle    `yaml:"paddle"`
	Gameplay   BreakerGameplay  `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakerPhysics defines the motion and collision parameters. Distances are
// world pixels (10 per terminal cell), speeds are pixels per second.
type BreakerPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
	BallRadius   float64 `yaml:"ball_radius"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`

	// Launcher maps the paddle-top impact offset to the outgoing angle.
	MaxAngleDeg   float64 `yaml:"max_angle_deg"`
	CurveExponent float64 `yaml:"curve_exponent"`

	// Solver tuning.
	TravelFraction   float64 `yaml:"travel_fraction"`
	MaxTOIIterations int     `yaml:"max_toi_iterations"`
	Epsilon          float64 `yaml:"epsilon"`
}

// BreakerPaddle defines the paddle shape. Width is in terminal cells,
// CornerRadius in world pixels.
type BreakerPaddle struct {
	Width        int     `yaml:"width"`
	Height       float64 `yaml:"height"`
	CornerRadius float64 `yaml:"corner_radius"`
}

// BreakerGameplay defines scoring, lives, and power-up behavior.
type BreakerGameplay struct {
	Lives          int     `yaml:"lives"`
	BrickPoints    int     `yaml:"brick_points"`
	EnemyPoints    int     `yaml:"enemy_points"`
	BossPoints     int     `yaml:"boss_points"`
	SpeedUpEveryN  int     `yaml:"speed_up_every_n"` // Bricks per speed increment
	SpeedUpAmount  float64 `yaml:"speed_up_amount"`  // px/sec added per increment
	DropChance     float64 `yaml:"drop_chance"`      // Power-up drop probability per brick
	FireballTicks  int     `yaml:"fireball_ticks"`   // Fireball power-up duration
	WidePaddleMult float64 `yaml:"wide_paddle_mult"` // Paddle width multiplier while wide
	PowerUpTicks   int     `yaml:"powerup_ticks"`    // Generic timed power-up duration
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
	SpeedMultiplier       float64 `yaml:"speed_multiplier"`        // Added to ball speed at max difficulty
	PaddleShrink          int     `yaml:"paddle_shrink"`           // Paddle width cells removed at max difficulty
	EnemySpawnAccel       float64 `yaml:"enemy_spawn_accel"`       // Fraction cut from enemy spawn interval
	DropChanceAttenuation float64 `yaml:"drop_chance_attenuation"` // Fraction cut from power-up drops
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
