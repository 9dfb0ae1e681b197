// Package rng provides the random primitives used by spawning and variance
// logic. A Source is always injected so runs can be reproduced from a seed.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source wraps a seeded PCG generator.
type Source struct {
	r    *rand.Rand
	seed uint64
}

// New creates a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewFromTime creates a Source seeded from the wall clock.
func NewFromTime() *Source {
	return New(uint64(time.Now().UnixNano()))
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Range returns a uniform value in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return s.r.Float64()*(hi-lo) + lo
}

// IntN returns a uniform int in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Choice returns a uniformly chosen element of items, or the zero value when
// items is empty.
func Choice[T any](s *Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.IntN(len(items))]
}
