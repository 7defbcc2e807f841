// Package ising implements single-spin-flip Metropolis dynamics for the
// ferromagnetic nearest-neighbor Ising model (J = 1, no external field) on an
// L×L square lattice with periodic boundaries.
package ising

import (
	"math"

	"ising-mc/internal/core"
	"ising-mc/pkg/rng"
)

// CriticalTemperature is the exact transition temperature of the infinite
// square lattice, 2/ln(1+√2).
var CriticalTemperature = 2 / math.Log(1+math.Sqrt2)

// Lattice is an L×L grid of +1/-1 spins with periodic boundaries.
type Lattice struct {
	*core.SpinGrid
}

func newLattice(l int) *Lattice {
	return &Lattice{SpinGrid: core.NewSpinGrid(l, l)}
}

// PrepareSystem returns an L×L lattice where every spin is independently +1
// or -1 with equal probability.
func PrepareSystem(l int, r *rng.Stream) (*Lattice, error) {
	if l <= 0 {
		return nil, paramErr("L", l, ErrInvalidParameter)
	}
	lat := newLattice(l)
	lat.Randomize(r)
	return lat, nil
}

// NewUniform returns an ordered L×L lattice with every spin set to spin.
func NewUniform(l int, spin int8) (*Lattice, error) {
	if l <= 0 {
		return nil, paramErr("L", l, ErrInvalidParameter)
	}
	if spin != 1 && spin != -1 {
		return nil, paramErr("spin", spin, ErrInvalidSpin)
	}
	lat := newLattice(l)
	lat.Fill(spin)
	return lat, nil
}

// L returns the linear lattice size.
func (lat *Lattice) L() int { return lat.W }

// Sites returns L².
func (lat *Lattice) Sites() int { return lat.W * lat.H }

// Randomize redraws every spin from r.
func (lat *Lattice) Randomize(r *rng.Stream) {
	rng.FillSpins(r.Source(), lat.Cells())
}

// Valid reports whether every cell holds exactly +1 or -1.
func (lat *Lattice) Valid() bool {
	for _, s := range lat.Cells() {
		if s != 1 && s != -1 {
			return false
		}
	}
	return true
}

// Energy returns the interaction energy of site (i, j) with its four
// periodic neighbors: -s(i,j) * (sum of neighbor spins).
func Energy(lat *Lattice, i, j int) float64 {
	i, j = lat.Wrap(i, j)
	s := int(lat.Cells()[lat.Index(i, j)])
	return float64(-s * lat.NeighborSum(i, j))
}

// MeasureEnergy returns the total lattice energy. Every bond appears in two
// site energies, so the sum is halved.
func MeasureEnergy(lat *Lattice) float64 {
	l := lat.L()
	var e float64
	for i := 0; i < l; i++ {
		for j := 0; j < l; j++ {
			e += Energy(lat, i, j)
		}
	}
	return e / 2
}

// MeasureMagnetization returns the mean spin, a value in [-1, 1].
func MeasureMagnetization(lat *Lattice) float64 {
	return float64(lat.Sum()) / float64(lat.Sites())
}
