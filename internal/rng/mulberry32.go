// Copyright © 2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rng provides the seedable, deterministic pseudo-random source
// used by the solver and region coordinator. It purposely does not use
// math/rand: that package's output sequence for a given seed is not part
// of Go's compatibility guarantee across releases, and the solver's
// determinism law (same seed, same world, forever) needs an algorithm
// whose bit pattern is fixed by this module, not by the Go toolchain
// version that happens to compile it.
package rng

// Source is a Mulberry32 generator: a 32-bit state, seedable, with a
// full 2^32 period and good statistical distribution for a generator
// this small. Mulberry32 over fancier generators because it is simple
// enough to audit by inspection, which matters for a determinism-
// critical dependency.
type Source struct {
	state uint32
}

// New returns a generator seeded with seed. Seed 0 is valid and
// deterministic, same as any other seed value.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// Uint32 returns the next pseudo-random 32-bit value and advances state.
func (s *Source) Uint32() uint32 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns a pseudo-random value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / (1 << 32)
}

// Intn returns a pseudo-random value in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(s.Uint32() % uint32(n))
}

// Bool returns true with the given probability p (0..1).
func (s *Source) Bool(p float64) bool {
	return s.Float64() < p
}

// Shuffle randomly permutes n elements in place using swap, via a
// Fisher-Yates pass driven by this generator, so the permutation is
// reproducible under a seed.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}

// Derive produces a new, independent seed deterministically from a
// parent seed and a discriminator (e.g. a region id's low bits), so
// concurrent solves across regions can each own a private Source while
// the whole run stays reproducible for a fixed parent seed.
func Derive(parentSeed uint32, discriminator uint64) uint32 {
	x := parentSeed ^ uint32(discriminator) ^ uint32(discriminator>>32)
	// one mulberry32 mix step to avoid simple XOR correlation between
	// siblings that differ only in the low bits of discriminator.
	x += 0x6D2B79F5
	z := x
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}
