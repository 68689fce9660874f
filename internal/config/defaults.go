package config

import (
	_ "embed"
)

//go:embed defaults/breaker.yaml
var defaultBreakerYAML []byte

// DefaultBreakerConfig returns the default breaker configuration. Kept in sync
// with defaults/breaker.yaml; this is the fallback if the embed fails to parse.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Physics: BreakerPhysics{
			BallSpeed:        300, // 0.5 cells per tick at 60fps
			MaxBallSpeed:     900,
			BallRadius:       4,
			PaddleSpeed:      600,
			MaxAngleDeg:      75,
			CurveExponent:    1.0,
			TravelFraction:   0.5,
			MaxTOIIterations: 3,
			Epsilon:          0.001,
		},
		Paddle: BreakerPaddle{
			Width:        8,
			Height:       10,
			CornerRadius: 3,
		},
		Gameplay: BreakerGameplay{
			Lives:          3,
			BrickPoints:    10,
			EnemyPoints:    50,
			BossPoints:     500,
			SpeedUpEveryN:  10,
			SpeedUpAmount:  15,
			DropChance:     0.12,
			FireballTicks:  600, // 10 seconds
			WidePaddleMult: 1.5,
			PowerUpTicks:   900, // 15 seconds
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:       0.6,
				PaddleShrink:          2,
				EnemySpawnAccel:       0.5,
				DropChanceAttenuation: 0.25,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breaker", "breaker_endless":
		return defaultBreakerYAML
	default:
		return nil
	}
}
