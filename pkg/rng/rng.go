// Package rng provides seedable random streams for Monte Carlo runs.
//
// A Stream is not safe for concurrent use. Parallel work units derive their
// own stream with Split or DeriveSeed so that no two goroutines share state.
package rng

import "math/rand/v2"

// defaultSeed replaces a zero seed so that the zero value stays reproducible.
const defaultSeed int64 = 1

// Stream is a thin wrapper around math/rand/v2 with deterministic seeding.
type Stream struct {
	seed int64
	r    *rand.Rand
}

// New creates a deterministic stream using the provided seed. A zero seed
// selects a fixed default.
func New(seed int64) *Stream {
	if seed == 0 {
		seed = defaultSeed
	}
	return &Stream{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Stream) Float64() float64 { return s.r.Float64() }

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int { return s.r.IntN(n) }

// Spin returns +1 or -1 with equal probability.
func (s *Stream) Spin() int8 {
	if s.r.IntN(2) == 1 {
		return 1
	}
	return -1
}

// Split returns an independent stream identified by id. The parent is not
// advanced, so the same (seed, id) pair always yields the same child.
func (s *Stream) Split(id uint64) *Stream {
	return New(DeriveSeed(s.seed, id))
}

// Source exposes the underlying rand.Rand for advanced use.
func (s *Stream) Source() *rand.Rand { return s.r }

// FillSpins fills the buffer with unbiased +1/-1 values.
func FillSpins(r *rand.Rand, buf []int8) {
	for i := range buf {
		buf[i] = int8(2*r.IntN(2) - 1)
	}
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed
// using the SplitMix64 finalizer. The result is never zero.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return defaultSeed
	}
	return int64(x)
}
