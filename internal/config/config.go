// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Arena  ArenaConfig  `yaml:"arena"`
	Timing TimingConfig `yaml:"timing"`
}

// ArenaConfig defines the playing field in grid cells.
type ArenaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the simulation clocks. Periods are in seconds.
type TimingConfig struct {
	SnakeSpeed    float64 `yaml:"snake_speed"`
	FoodPeriodMin float64 `yaml:"food_period_min"`
	FoodPeriodMax float64 `yaml:"food_period_max"`
	TickRate      int     `yaml:"tick_rate"`
}

// MinArenaSize is the smallest arena side that holds the start position.
const MinArenaSize = 4

// MaxTickRate caps the frame rate accepted from config and flags.
const MaxTickRate = 240

// Validate reports the first unusable value.
func (c SnakeConfig) Validate() error {
	if c.Arena.Width < MinArenaSize || c.Arena.Height < MinArenaSize {
		return fmt.Errorf("config: arena %dx%d is smaller than %dx%d",
			c.Arena.Width, c.Arena.Height, MinArenaSize, MinArenaSize)
	}
	if c.Timing.SnakeSpeed <= 0 {
		return errors.New("config: timing.snake_speed must be positive")
	}
	if c.Timing.FoodPeriodMin <= 0 {
		return errors.New("config: timing.food_period_min must be positive")
	}
	if c.Timing.FoodPeriodMax < c.Timing.FoodPeriodMin {
		return fmt.Errorf("config: timing.food_period_max %.2f is below food_period_min %.2f",
			c.Timing.FoodPeriodMax, c.Timing.FoodPeriodMin)
	}
	if c.Timing.TickRate < 1 || c.Timing.TickRate > MaxTickRate {
		return fmt.Errorf("config: timing.tick_rate %d outside [1, %d]", c.Timing.TickRate, MaxTickRate)
	}
	return nil
}

// SnakeSpeedDuration returns the movement tick period.
func (t TimingConfig) SnakeSpeedDuration() time.Duration {
	return seconds(t.SnakeSpeed)
}

// FoodPeriodRange returns the bounds the food spawn period is drawn from.
func (t TimingConfig) FoodPeriodRange() (lo, hi time.Duration) {
	return seconds(t.FoodPeriodMin), seconds(t.FoodPeriodMax)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted difficulty names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
}

// SnakeSpeedForPreset returns the movement period in seconds for a preset.
// Difficulty only ever changes this fixed period.
func SnakeSpeedForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 0.15, true
	case DifficultyNormal:
		return 0.12, true
	case DifficultyHard:
		return 0.08, true
	default:
		return 0, false
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Unknown or empty presets leave the config untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if speed, ok := SnakeSpeedForPreset(preset); ok {
		cfg.Timing.SnakeSpeed = speed
	}
}
