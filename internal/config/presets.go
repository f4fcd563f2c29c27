package config

import (
	"fmt"
	"time"
)

// Preset names a set of constant gameplay values. Presets never change
// during a run.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty input means no preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "":
		return "", nil
	case PresetEasy, PresetNormal, PresetHard:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset overrides the obstacle values with the preset's constants.
// PresetNormal and the empty preset leave the config untouched.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Obstacles.Gap = 270
		cfg.Obstacles.Speed = 4
		cfg.Obstacles.SpawnPeriod = 3 * time.Second
	case PresetHard:
		cfg.Obstacles.Gap = 180
		cfg.Obstacles.Speed = 6
		cfg.Obstacles.SpawnPeriod = 2 * time.Second
	}
}
