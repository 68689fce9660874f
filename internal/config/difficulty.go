package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// BallSpeed returns the current ball speed based on difficulty level.
func (d *DifficultyManager) BallSpeed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// PaddleWidth returns the current paddle width in cells based on difficulty.
func (d *DifficultyManager) PaddleWidth(baseWidth int, score int, ticks int) int {
	level := d.Level(score, ticks)
	shrink := int(level * float64(d.cfg.Scaling.PaddleShrink))
	result := baseWidth - shrink
	if result < 4 { // Minimum playable paddle
		result = 4
	}
	return result
}

// EnemySpawnInterval returns the ticks between enemy spawns based on difficulty.
func (d *DifficultyManager) EnemySpawnInterval(baseTicks int, score int, ticks int) int {
	level := d.Level(score, ticks)
	cut := int(level * d.cfg.Scaling.EnemySpawnAccel * float64(baseTicks))
	result := baseTicks - cut
	if result < 120 { // At most one spawn every 2 seconds
		result = 120
	}
	return result
}

// DropChance returns the power-up drop probability based on difficulty.
func (d *DifficultyManager) DropChance(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return clampF(base*(1.0-level*d.cfg.Scaling.DropChanceAttenuation), 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
