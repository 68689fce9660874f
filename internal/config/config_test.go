package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultParses(t *testing.T) {
	var cfg BreakerConfig
	if err := yaml.Unmarshal(defaultBreakerYAML, &cfg); err != nil {
		t.Fatalf("embedded default YAML failed to parse: %v", err)
	}

	want := DefaultBreakerConfig()
	if cfg.Physics.BallSpeed != want.Physics.BallSpeed {
		t.Errorf("ball_speed = %v, want %v", cfg.Physics.BallSpeed, want.Physics.BallSpeed)
	}
	if cfg.Physics.MaxAngleDeg != want.Physics.MaxAngleDeg {
		t.Errorf("max_angle_deg = %v, want %v", cfg.Physics.MaxAngleDeg, want.Physics.MaxAngleDeg)
	}
	if cfg.Paddle.Width != want.Paddle.Width {
		t.Errorf("paddle width = %v, want %v", cfg.Paddle.Width, want.Paddle.Width)
	}
	if cfg.Gameplay.Lives != want.Gameplay.Lives {
		t.Errorf("lives = %v, want %v", cfg.Gameplay.Lives, want.Gameplay.Lives)
	}
	if !cfg.Difficulty.Enabled {
		t.Error("difficulty should be enabled by default")
	}
}

func TestLoadBreakerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("physics:\n  ball_speed: 123\npaddle:\n  width: 12\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreaker(path)
	if err != nil {
		t.Fatalf("LoadBreaker: %v", err)
	}
	if cfg.Physics.BallSpeed != 123 {
		t.Errorf("ball_speed = %v, want 123", cfg.Physics.BallSpeed)
	}
	if cfg.Paddle.Width != 12 {
		t.Errorf("paddle width = %v, want 12", cfg.Paddle.Width)
	}
}

func TestLoadBreakerMissingCustomPath(t *testing.T) {
	if _, err := LoadBreaker("/nonexistent/breaker.yaml"); err == nil {
		t.Error("expected error for missing custom config path")
	}
}

func TestApplyBreakerPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		width  int
	}{
		{DifficultyEasy, 5, 10},
		{DifficultyHard, 2, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBreakerConfig()
			ApplyBreakerPreset(&cfg, tt.preset)
			if cfg.Gameplay.Lives != tt.lives {
				t.Errorf("lives = %d, want %d", cfg.Gameplay.Lives, tt.lives)
			}
			if cfg.Paddle.Width != tt.width {
				t.Errorf("paddle width = %d, want %d", cfg.Paddle.Width, tt.width)
			}
			if !cfg.Difficulty.Enabled {
				t.Error("preset should keep difficulty enabled")
			}
		})
	}
}

func TestApplyBreakerPresetFixed(t *testing.T) {
	cfg := DefaultBreakerConfig()
	ApplyBreakerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable difficulty progression")
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if got := GetDefaultYAML("breaker"); len(got) == 0 {
		t.Error("breaker should have embedded defaults")
	}
	if got := GetDefaultYAML("breaker_endless"); len(got) == 0 {
		t.Error("breaker_endless should share the breaker defaults")
	}
	if got := GetDefaultYAML("unknown"); got != nil {
		t.Error("unknown game should have no defaults")
	}
}
