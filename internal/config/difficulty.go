package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/engine"
)

// DifficultyPreset is a user-facing difficulty name. Besides the speed
// preset names, the classic easy/normal/hard names are accepted.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// SpeedPresetFor resolves a difficulty name to a speed preset.
func SpeedPresetFor(preset DifficultyPreset) (engine.Preset, error) {
	switch DifficultyPreset(strings.ToLower(string(preset))) {
	case DifficultyEasy:
		return engine.PresetSlow, nil
	case DifficultyNormal:
		return engine.PresetMedium, nil
	case DifficultyHard:
		return engine.PresetFast, nil
	}
	p, err := engine.ParsePreset(strings.ToLower(string(preset)))
	if err != nil {
		return "", fmt.Errorf("config: difficulty %q: %w", preset, ErrInvalidConfig)
	}
	return p, nil
}

// ApplySpeedPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config unchanged.
func ApplySpeedPreset(cfg *SnakeConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	p, err := SpeedPresetFor(preset)
	if err != nil {
		return err
	}
	cfg.Speed.Preset = string(p)
	return nil
}
