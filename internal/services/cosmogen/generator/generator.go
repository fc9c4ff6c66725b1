// Package generator builds a complete universe from a seeded random source.
//
// Draws happen in a fixed order so that a seed and a Config fully determine
// the output: per galaxy, the stars (each with its planets), then black
// holes, nebulae, asteroids and comets.
package generator

import (
	"context"
	"math/rand"

	"github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"
)

// Mass scaling applied to the base mass draw.
const (
	blackHoleMassFactor = 1e3
	nebulaMassDivisor   = 10.0
	nebulaTempDivisor   = 10.0
	asteroidMassDivisor = 1e3
	cometMassDivisor    = 1e6
)

// Generator orchestrates universe generation.
type Generator struct {
	config Config
	rng    *rand.Rand
}

// New creates a Generator drawing from rng. The config is validated up front
// so Generate cannot fail on input.
func New(cfg Config, rng *rand.Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewSeededRNG(1)
	}
	return &Generator{config: cfg, rng: rng}, nil
}

// Generate builds every galaxy. It only fails when ctx is cancelled.
func (g *Generator) Generate(ctx context.Context) (domain.Universe, error) {
	galaxies := make([]domain.Galaxy, 0, g.config.GalaxyCount)
	for i := 0; i < g.config.GalaxyCount; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Universe{}, err
		}
		galaxies = append(galaxies, g.galaxy(i))
	}
	return domain.Universe{Galaxies: galaxies}, nil
}

func (g *Generator) galaxy(gal int) domain.Galaxy {
	return domain.Galaxy{
		Code:       domain.GalaxyCode(gal),
		Stars:      g.stars(gal),
		BlackHoles: g.blackHoles(gal),
		Nebulae:    g.nebulae(gal),
		Asteroids:  g.asteroids(gal),
		Comets:     g.comets(gal),
	}
}

func (g *Generator) stars(gal int) []domain.Star {
	n := g.randomRange(g.config.StarCount)
	stars := make([]domain.Star, 0, n)
	for i := 0; i < n; i++ {
		s := domain.Star{
			Code:          domain.StarCode(gal, i),
			Mass:          g.mass(),
			Temperature:   g.temperature(),
			SpectralClass: domain.SpectralClasses[g.rng.Intn(len(domain.SpectralClasses))],
		}
		s.Planets = g.planets(gal, i)
		stars = append(stars, s)
	}
	return stars
}

func (g *Generator) planets(gal, star int) []domain.Planet {
	n := g.randomRange(g.config.PlanetCount)
	planets := make([]domain.Planet, 0, n)
	for i := 0; i < n; i++ {
		planets = append(planets, domain.Planet{
			Code:        domain.PlanetCode(gal, star, i),
			Mass:        g.mass(),
			Temperature: g.temperature(),
			HasLife:     g.chance(g.config.LifeProbability),
			Minerals:    g.composition(),
		})
	}
	return planets
}

func (g *Generator) blackHoles(gal int) []domain.BlackHole {
	n := g.randomRange(g.config.BlackHoleCount)
	out := make([]domain.BlackHole, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.BlackHole{
			Code: domain.BlackHoleCode(gal, i),
			Mass: g.mass() * blackHoleMassFactor,
			Spin: g.rng.Float64(),
		})
	}
	return out
}

func (g *Generator) nebulae(gal int) []domain.Nebula {
	n := g.randomRange(g.config.NebulaCount)
	out := make([]domain.Nebula, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Nebula{
			Code:        domain.NebulaCode(gal, i),
			Mass:        g.mass() / nebulaMassDivisor,
			Temperature: g.temperature() / nebulaTempDivisor,
			Composition: g.composition(),
		})
	}
	return out
}

func (g *Generator) asteroids(gal int) []domain.Asteroid {
	n := g.randomRange(g.config.AsteroidCount)
	out := make([]domain.Asteroid, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Asteroid{
			Code:        domain.AsteroidCode(gal, i),
			Mass:        g.mass() / asteroidMassDivisor,
			Composition: g.composition(),
		})
	}
	return out
}

func (g *Generator) comets(gal int) []domain.Comet {
	n := g.randomRange(g.config.CometCount)
	out := make([]domain.Comet, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Comet{
			Code:         domain.CometCode(gal, i),
			Mass:         g.mass() / cometMassDivisor,
			TailLengthKm: g.uniform(g.config.TailLength),
		})
	}
	return out
}

// composition draws one weight in (0, 1] per mineral and normalizes them.
func (g *Generator) composition() domain.Composition {
	weights := make([]float64, len(g.config.Minerals))
	var total float64
	for i := range weights {
		weights[i] = 1 - g.rng.Float64()
		total += weights[i]
	}
	c := make(domain.Composition, len(weights))
	for i, name := range g.config.Minerals {
		c[name] = weights[i] / total
	}
	return c
}

func (g *Generator) mass() float64 {
	return g.uniform(g.config.Mass)
}

func (g *Generator) temperature() float64 {
	return g.uniform(g.config.Temperature)
}

func (g *Generator) uniform(r FloatRange) float64 {
	return r.Min + (r.Max-r.Min)*g.rng.Float64()
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// randomRange returns a random number in [min, max].
func (g *Generator) randomRange(r Range) int {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}
