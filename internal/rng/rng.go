// Package rng wraps math/rand/v2 with deterministic seeding for the
// stochastic parts of the landscape (erosion, noise impulses, random reveals).
package rng

import (
	"math"
	"math/rand/v2"
	"time"
)

type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// NewTime seeds from the wall clock.
func NewTime() *RNG {
	return New(time.Now().UnixNano())
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n); n <= 0 yields 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.r.Float64() < p
}

// Angle returns a uniform angle in [0, 2π).
func (r *RNG) Angle() float64 { return r.r.Float64() * 2 * math.Pi }
