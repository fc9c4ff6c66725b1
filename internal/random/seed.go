// Package random provides seed helpers for the universe generator.
//
// Runs are reproducible from their seed. A zero seed asks for a fresh one,
// drawn from crypto/rand so independent runs do not collide.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultSeed is the fixed seed used when none is configured.
const DefaultSeed int64 = 42

// NewSeed generates a random non-zero seed using crypto/rand.
func NewSeed() (int64, error) {
	return newSeedFrom(crand.Reader)
}

// Resolve returns seed unchanged unless it is zero, in which case a fresh
// seed is drawn. The boolean reports whether a fresh seed was drawn.
func Resolve(seed int64) (int64, bool, error) {
	if seed != 0 {
		return seed, false, nil
	}
	fresh, err := NewSeed()
	if err != nil {
		return 0, false, err
	}
	return fresh, true, nil
}

func newSeedFrom(r io.Reader) (int64, error) {
	var b [8]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		// Zero means "pick one for me", so it is never handed out.
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}
