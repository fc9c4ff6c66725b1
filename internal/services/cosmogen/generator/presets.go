package generator

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
)

// Preset defines a named configuration for universe generation.
type Preset string

const (
	// PresetDefault reproduces the classic run: 200 galaxies of 10-200 stars.
	PresetDefault Preset = "default"

	// PresetSmall creates a handful of sparse galaxies for quick runs.
	PresetSmall Preset = "small"

	// PresetEmpty creates one galaxy with every collection empty.
	PresetEmpty Preset = "empty"

	// PresetStress creates many dense galaxies for load testing.
	PresetStress Preset = "stress"
)

// ValidPresets lists every known preset in display order.
func ValidPresets() []Preset {
	return []Preset{PresetDefault, PresetSmall, PresetEmpty, PresetStress}
}

// ParsePreset resolves a preset name.
func ParsePreset(name string) (Preset, error) {
	p := Preset(strings.TrimSpace(strings.ToLower(name)))
	for _, known := range ValidPresets() {
		if p == known {
			return p, nil
		}
	}
	names := make([]string, 0, len(ValidPresets()))
	for _, known := range ValidPresets() {
		names = append(names, string(known))
	}
	return "", apperrors.New(apperrors.CodeUnknownPreset,
		fmt.Sprintf("unknown preset %q (valid presets: %s)", name, strings.Join(names, ", ")))
}

// baseConfig carries the attribute ranges shared by every preset.
func baseConfig() Config {
	return Config{
		Mass:            FloatRange{Min: 1e20, Max: 1e40},
		Temperature:     FloatRange{Min: 2, Max: 1e7},
		TailLength:      FloatRange{Min: 1e3, Max: 1e5},
		Minerals:        append([]string(nil), DefaultMinerals...),
		LifeProbability: 0.0005,
	}
}

// GetPresetConfig returns the configuration for a preset.
func GetPresetConfig(preset Preset) Config {
	cfg := baseConfig()
	switch preset {
	case PresetDefault:
		cfg.GalaxyCount = 200
		cfg.StarCount = Range{10, 200}
		cfg.PlanetCount = Range{0, 15}
		cfg.BlackHoleCount = Range{0, 3}
		cfg.NebulaCount = Range{0, 5}
		cfg.AsteroidCount = Range{50, 200}
		cfg.CometCount = Range{10, 50}

	case PresetSmall:
		cfg.GalaxyCount = 3
		cfg.StarCount = Range{2, 8}
		cfg.PlanetCount = Range{0, 4}
		cfg.BlackHoleCount = Range{0, 1}
		cfg.NebulaCount = Range{0, 2}
		cfg.AsteroidCount = Range{5, 10}
		cfg.CometCount = Range{1, 3}

	case PresetEmpty:
		cfg.GalaxyCount = 1

	case PresetStress:
		cfg.GalaxyCount = 1000
		cfg.StarCount = Range{100, 400}
		cfg.PlanetCount = Range{0, 20}
		cfg.BlackHoleCount = Range{1, 5}
		cfg.NebulaCount = Range{2, 10}
		cfg.AsteroidCount = Range{200, 500}
		cfg.CometCount = Range{50, 100}

	default:
		return GetPresetConfig(PresetDefault)
	}
	return cfg
}
