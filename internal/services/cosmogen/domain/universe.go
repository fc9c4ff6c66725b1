// Package domain defines the generated universe object graph.
//
// The graph is a strict ownership tree: a Universe owns Galaxies, a Galaxy
// owns its Stars, BlackHoles, Nebulae, Asteroids and Comets, and a Star owns
// its Planets. Every entity carries a Code derived only from its position in
// the tree.
package domain

import "fmt"

// SpectralClass is a Morgan–Keenan star class letter.
type SpectralClass string

const (
	SpectralO SpectralClass = "O"
	SpectralB SpectralClass = "B"
	SpectralA SpectralClass = "A"
	SpectralF SpectralClass = "F"
	SpectralG SpectralClass = "G"
	SpectralK SpectralClass = "K"
	SpectralM SpectralClass = "M"
)

// SpectralClasses lists every class, hottest first.
var SpectralClasses = []SpectralClass{
	SpectralO, SpectralB, SpectralA, SpectralF, SpectralG, SpectralK, SpectralM,
}

// Valid reports whether c is one of SpectralClasses.
func (c SpectralClass) Valid() bool {
	for _, known := range SpectralClasses {
		if c == known {
			return true
		}
	}
	return false
}

// Composition maps mineral names to fractional weights summing to 1.
type Composition map[string]float64

// Sum returns the total of all weights.
func (c Composition) Sum() float64 {
	var total float64
	for _, w := range c {
		total += w
	}
	return total
}

// Universe is the root of the generated graph.
type Universe struct {
	Galaxies []Galaxy
}

// Galaxy groups every object generated for one galaxy index.
type Galaxy struct {
	Code       string
	Stars      []Star
	BlackHoles []BlackHole
	Nebulae    []Nebula
	Asteroids  []Asteroid
	Comets     []Comet
}

// Star is a star and the planets orbiting it.
type Star struct {
	Code          string
	Mass          float64
	Temperature   float64 // Kelvin
	SpectralClass SpectralClass
	Planets       []Planet
}

// Planet orbits a Star.
type Planet struct {
	Code        string
	Mass        float64
	Temperature float64 // Kelvin
	HasLife     bool
	Minerals    Composition
}

// BlackHole is a galaxy-level black hole.
type BlackHole struct {
	Code string
	Mass float64
	Spin float64 // dimensionless, [0, 1)
}

// Nebula is a galaxy-level gas cloud.
type Nebula struct {
	Code        string
	Mass        float64
	Temperature float64
	Composition Composition
}

// Asteroid is a galaxy-level rocky body.
type Asteroid struct {
	Code        string
	Mass        float64
	Composition Composition
}

// Comet is a galaxy-level icy body.
type Comet struct {
	Code         string
	Mass         float64
	TailLengthKm float64
}

// GalaxyCode returns "G{gal}".
func GalaxyCode(gal int) string {
	return fmt.Sprintf("G%d", gal)
}

// StarCode returns "G{gal}-S{star}".
func StarCode(gal, star int) string {
	return fmt.Sprintf("G%d-S%d", gal, star)
}

// PlanetCode returns "G{gal}-S{star}-P{planet}".
func PlanetCode(gal, star, planet int) string {
	return fmt.Sprintf("G%d-S%d-P%d", gal, star, planet)
}

// BlackHoleCode returns "G{gal}-BH{index}".
func BlackHoleCode(gal, index int) string {
	return fmt.Sprintf("G%d-BH%d", gal, index)
}

// NebulaCode returns "G{gal}-N{index}".
func NebulaCode(gal, index int) string {
	return fmt.Sprintf("G%d-N%d", gal, index)
}

// AsteroidCode returns "G{gal}-A{index}".
func AsteroidCode(gal, index int) string {
	return fmt.Sprintf("G%d-A%d", gal, index)
}

// CometCode returns "G{gal}-C{index}".
func CometCode(gal, index int) string {
	return fmt.Sprintf("G%d-C%d", gal, index)
}
