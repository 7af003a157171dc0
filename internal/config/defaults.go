package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Arena: ArenaConfig{
			Width:  20,
			Height: 20,
		},
		Timing: TimingConfig{
			SnakeSpeed:    0.12,
			FoodPeriodMin: 0.5,
			FoodPeriodMax: 3.5,
			TickRate:      60,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
