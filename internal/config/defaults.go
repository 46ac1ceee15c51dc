package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Bordered: true,
		},
		Snake: SnakeBody{
			InitialLength:      10,
			PowerupGrowth:      1,
			SuperPowerupGrowth: 15,
			BombShrink:         25,
			BoostSteps:         5,
		},
		Scoring: SnakeScoring{
			BombPenaltyEnabled: false,
			BombPenalty:        35,
		},
		Speed: SnakeSpeed{
			Preset: "medium",
		},
		Items: SnakeItems{
			Initial:              2,
			SpawnAttemptsPerCell: 8,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
