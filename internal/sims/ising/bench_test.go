package ising

import (
	"testing"

	"ising-mc/pkg/rng"
)

// BenchmarkChainStep measures a single Metropolis proposal on a 64×64 lattice
// at the critical temperature.
func BenchmarkChainStep(b *testing.B) {
	lat, err := PrepareSystem(64, rng.New(1))
	if err != nil {
		b.Fatalf("PrepareSystem: %v", err)
	}
	chain, err := NewChain(lat, CriticalTemperature, rng.New(2))
	if err != nil {
		b.Fatalf("NewChain: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chain.Step()
	}
}

// BenchmarkMeasureEnergy measures the O(L²) recompute the running total avoids.
func BenchmarkMeasureEnergy(b *testing.B) {
	lat, err := PrepareSystem(64, rng.New(1))
	if err != nil {
		b.Fatalf("PrepareSystem: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MeasureEnergy(lat)
	}
}
