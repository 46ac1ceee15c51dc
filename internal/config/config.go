// Package config provides YAML-based snake configuration loading and
// speed preset management.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/engine"
)

// ErrInvalidConfig is returned when a loaded configuration cannot describe a run.
var ErrInvalidConfig = errors.New("invalid config")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid    SnakeGrid    `yaml:"grid"`
	Snake   SnakeBody    `yaml:"snake"`
	Scoring SnakeScoring `yaml:"scoring"`
	Speed   SnakeSpeed   `yaml:"speed"`
	Items   SnakeItems   `yaml:"items"`
}

// SnakeGrid defines the playfield. Zero width or height fits the terminal.
type SnakeGrid struct {
	Bordered bool `yaml:"bordered"`
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
}

// SnakeBody defines the snake and how items change it.
type SnakeBody struct {
	InitialLength      int `yaml:"initial_length"`
	PowerupGrowth      int `yaml:"powerup_growth"`
	SuperPowerupGrowth int `yaml:"super_powerup_growth"`
	BombShrink         int `yaml:"bomb_shrink"`
	BoostSteps         int `yaml:"boost_steps"` // cells advanced by one boost press
}

// SnakeScoring defines score changes beyond the one point per powerup.
type SnakeScoring struct {
	BombPenaltyEnabled bool `yaml:"bomb_penalty_enabled"`
	BombPenalty        int  `yaml:"bomb_penalty"`
}

// SnakeSpeed selects the speed preset.
type SnakeSpeed struct {
	Preset string `yaml:"preset"` // "fast", "medium" or "slow"
}

// SnakeItems defines item spawning.
type SnakeItems struct {
	Initial              int `yaml:"initial"`
	SpawnAttemptsPerCell int `yaml:"spawn_attempts_per_cell"`
}

// Validate checks the values the engine cannot recover from.
func (c SnakeConfig) Validate() error {
	var problems []string

	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		problems = append(problems, "grid size must not be negative")
	}
	if c.Grid.Width > engine.MaxWidth || c.Grid.Height > engine.MaxHeight {
		problems = append(problems, fmt.Sprintf("grid larger than %dx%d", engine.MaxWidth, engine.MaxHeight))
	}
	if c.Snake.InitialLength < 1 {
		problems = append(problems, "initial_length must be positive")
	}
	if c.Snake.PowerupGrowth < 1 {
		problems = append(problems, "powerup_growth must be positive")
	}
	if c.Snake.SuperPowerupGrowth < c.Snake.PowerupGrowth {
		problems = append(problems, "super_powerup_growth below powerup_growth")
	}
	if c.Snake.BombShrink < 0 || c.Scoring.BombPenalty < 0 {
		problems = append(problems, "bomb effects must not be negative")
	}
	if c.Snake.BoostSteps < 1 {
		problems = append(problems, "boost_steps must be positive")
	}
	if c.Items.Initial < 0 || c.Items.SpawnAttemptsPerCell < 0 {
		problems = append(problems, "item counts must not be negative")
	}
	if _, err := engine.ParsePreset(c.Speed.Preset); err != nil {
		problems = append(problems, fmt.Sprintf("unknown speed preset %q", c.Speed.Preset))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %v: %w", problems, ErrInvalidConfig)
	}
	return nil
}

// Rules returns the engine item rules.
func (c SnakeConfig) Rules() engine.Rules {
	return engine.Rules{
		NormalGrowth:         c.Snake.PowerupGrowth,
		SuperGrowth:          c.Snake.SuperPowerupGrowth,
		BombShrink:           c.Snake.BombShrink,
		BombPenaltyEnabled:   c.Scoring.BombPenaltyEnabled,
		BombPenalty:          c.Scoring.BombPenalty,
		InitialItems:         c.Items.Initial,
		SpawnAttemptsPerCell: c.Items.SpawnAttemptsPerCell,
	}
}

// EngineConfig builds the run configuration. Grid dimensions left at zero
// take the available width and height.
func (c SnakeConfig) EngineConfig(availW, availH int) engine.Config {
	w, h := c.Grid.Width, c.Grid.Height
	if w == 0 {
		w = availW
	}
	if h == 0 {
		h = availH
	}
	preset, err := engine.ParsePreset(c.Speed.Preset)
	if err != nil {
		preset = engine.PresetMedium
	}

	// Long snakes are shortened to fit small terminals
	length := c.Snake.InitialLength
	maxLen := w / 2
	if !c.Grid.Bordered {
		maxLen++
	}
	maxLen = min(maxLen, w*h/4)
	length = max(min(length, maxLen), 1)

	return engine.Config{
		Width:         w,
		Height:        h,
		Bordered:      c.Grid.Bordered,
		Preset:        preset,
		InitialLength: length,
		Rules:         c.Rules(),
	}
}
