package generator

import "math/rand"

// NewSeededRNG creates the random source threaded through every draw.
// The same seed always yields the same draw sequence.
func NewSeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
