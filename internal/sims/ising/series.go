package ising

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Series is an ordered sequence of measurements from one run.
type Series []float64

// Mean returns the arithmetic mean, or NaN for an empty series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return stat.Mean(s, nil)
}

// MeanAbs returns the mean of absolute values, or NaN for an empty series.
func (s Series) MeanAbs() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	var total float64
	for _, v := range s {
		total += math.Abs(v)
	}
	return total / float64(len(s))
}

// SpecificHeat returns (⟨E²⟩ - ⟨E⟩²) / (T² L²) for a series of total energies
// sampled at temperature t on an L×L lattice.
func SpecificHeat(energies Series, t float64, l int) float64 {
	if len(energies) == 0 || t <= 0 || l <= 0 {
		return math.NaN()
	}
	_, variance := stat.PopMeanVariance(energies, nil)
	return variance / (t * t * float64(l*l))
}
