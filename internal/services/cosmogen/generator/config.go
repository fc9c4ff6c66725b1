package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
)

// MineralCount is the number of mineral names every composition covers.
const MineralCount = 8

// DefaultMinerals are the mineral names used by every preset.
var DefaultMinerals = []string{
	"Iron", "Silicon", "Magnesium", "Oxygen",
	"Carbon", "Nickel", "Sulfur", "Aluminum",
}

// Range is a closed integer range [Min, Max].
type Range struct {
	Min int
	Max int
}

// String formats the range as "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// FloatRange is a half-open float range [Min, Max).
type FloatRange struct {
	Min float64
	Max float64
}

// Config holds the generation parameters.
type Config struct {
	// Number of galaxies to generate
	GalaxyCount int

	// Per-star count
	PlanetCount Range

	// Per-galaxy counts
	StarCount      Range
	BlackHoleCount Range
	NebulaCount    Range
	AsteroidCount  Range
	CometCount     Range

	// Base attribute ranges; black holes, nebulae, asteroids and comets
	// scale the base mass draw.
	Mass        FloatRange
	Temperature FloatRange // Kelvin
	TailLength  FloatRange // km

	// Mineral names keyed in every composition, in draw order
	Minerals []string

	// Probability that a planet harbors life
	LifeProbability float64
}

// Validate rejects configurations that generation cannot honour.
func (c Config) Validate() error {
	if c.GalaxyCount < 0 {
		return invalid("galaxy count must not be negative", map[string]string{
			"galaxies": strconv.Itoa(c.GalaxyCount),
		})
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"stars", c.StarCount},
		{"planets", c.PlanetCount},
		{"black_holes", c.BlackHoleCount},
		{"nebulae", c.NebulaCount},
		{"asteroids", c.AsteroidCount},
		{"comets", c.CometCount},
	}
	for _, rr := range ranges {
		if rr.r.Min < 0 || rr.r.Max < 0 {
			return invalid("count range must not be negative", map[string]string{
				"field": rr.name,
				"range": rr.r.String(),
			})
		}
		if rr.r.Min > rr.r.Max {
			return invalid("count range min exceeds max", map[string]string{
				"field": rr.name,
				"range": rr.r.String(),
			})
		}
	}

	floats := []struct {
		name string
		r    FloatRange
	}{
		{"mass", c.Mass},
		{"temperature", c.Temperature},
		{"tail_length", c.TailLength},
	}
	for _, fr := range floats {
		if !finite(fr.r.Min) || !finite(fr.r.Max) || fr.r.Min > fr.r.Max {
			return invalid("attribute range is malformed", map[string]string{
				"field": fr.name,
				"min":   strconv.FormatFloat(fr.r.Min, 'g', -1, 64),
				"max":   strconv.FormatFloat(fr.r.Max, 'g', -1, 64),
			})
		}
	}

	if len(c.Minerals) != MineralCount {
		return invalid("mineral list has the wrong length", map[string]string{
			"got":  strconv.Itoa(len(c.Minerals)),
			"want": strconv.Itoa(MineralCount),
		})
	}
	seen := make(map[string]struct{}, len(c.Minerals))
	for _, name := range c.Minerals {
		if strings.TrimSpace(name) == "" {
			return invalid("mineral name is empty", nil)
		}
		if _, ok := seen[name]; ok {
			return invalid("mineral name is duplicated", map[string]string{"mineral": name})
		}
		seen[name] = struct{}{}
	}

	if math.IsNaN(c.LifeProbability) || c.LifeProbability < 0 || c.LifeProbability > 1 {
		return invalid("life probability must be within [0, 1]", map[string]string{
			"life_probability": strconv.FormatFloat(c.LifeProbability, 'g', -1, 64),
		})
	}
	return nil
}

func invalid(message string, metadata map[string]string) error {
	return apperrors.WithMetadata(apperrors.CodeConfigInvalid, message, metadata)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
