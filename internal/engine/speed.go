package engine

import (
	"fmt"
	"time"
)

// Preset names a base tick interval chosen once per run.
type Preset string

const (
	PresetFast   Preset = "fast"
	PresetMedium Preset = "medium"
	PresetSlow   Preset = "slow"
)

// MinInterval is the floor of the speed curve.
const MinInterval = 10 * time.Millisecond

// Per-level speed-up of the curve. Vertical moves get twice the interval and
// twice the step because terminal cells are about twice as tall as wide.
const (
	horizontalStep = 3 * time.Millisecond
	verticalStep   = 6 * time.Millisecond
)

// Presets lists the presets from fastest to slowest.
func Presets() []Preset {
	return []Preset{PresetFast, PresetMedium, PresetSlow}
}

// ParsePreset resolves a preset name. The empty string means medium.
func ParsePreset(name string) (Preset, error) {
	switch Preset(name) {
	case PresetFast, PresetMedium, PresetSlow:
		return Preset(name), nil
	case "":
		return PresetMedium, nil
	default:
		return "", fmt.Errorf("engine: unknown speed preset %q: %w", name, ErrConfiguration)
	}
}

// BaseInterval returns the horizontal tick interval at level 0.
// Unknown presets fall back to medium.
func (p Preset) BaseInterval() time.Duration {
	switch p {
	case PresetFast:
		return 40 * time.Millisecond
	case PresetSlow:
		return 90 * time.Millisecond
	default:
		return 60 * time.Millisecond
	}
}

// TickInterval maps a level and heading to the delay before the next tick.
func TickInterval(level int, h Heading, base time.Duration) time.Duration {
	level = max(level, 0)
	var d time.Duration
	if h.Vertical() {
		d = 2*base - time.Duration(level)*verticalStep
	} else {
		d = base - time.Duration(level)*horizontalStep
	}
	return max(d, MinInterval)
}
