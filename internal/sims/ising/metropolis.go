package ising

import (
	"math"

	"ising-mc/pkg/rng"
)

// Observable selects what MetropolisLoop records at each sampling point.
type Observable int

const (
	// ObserveMagnetization records the mean spin.
	ObserveMagnetization Observable = iota
	// ObserveEnergy records the running total energy.
	ObserveEnergy
)

func (o Observable) String() string {
	switch o {
	case ObserveMagnetization:
		return "magnetization"
	case ObserveEnergy:
		return "energy"
	default:
		return "unknown"
	}
}

// RunParams configures one Metropolis run. Sweeps counts measurement steps and
// Equilibration counts the discarded steps before them; each step is a single
// spin-flip proposal.
type RunParams struct {
	Temperature   float64
	Sweeps        int
	Equilibration int
	FlipInterval  int
}

// ValidateTemperature rejects temperatures for which the Boltzmann factor
// exp(-dE/T) is undefined.
func ValidateTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return paramErr("T", t, ErrNonFinite)
	}
	if t <= 0 {
		return paramErr("T", t, ErrInvalidParameter)
	}
	return nil
}

// Validate checks the parameters before any simulation work is done.
func (p RunParams) Validate() error {
	if err := ValidateTemperature(p.Temperature); err != nil {
		return err
	}
	if p.Sweeps <= 0 {
		return paramErr("N_sweeps", p.Sweeps, ErrInvalidParameter)
	}
	if p.Equilibration < 0 {
		return paramErr("N_eq", p.Equilibration, ErrInvalidParameter)
	}
	if p.FlipInterval <= 0 {
		return paramErr("N_flips", p.FlipInterval, ErrInvalidParameter)
	}
	if p.SampleCount() == 0 {
		return paramErr("N_sweeps", p.Sweeps, ErrInvalidParameter)
	}
	return nil
}

// Steps returns the total number of proposals in a run.
func (p RunParams) Steps() int { return p.Equilibration + p.Sweeps }

// SampleCount returns the length of the series a run produces: the number of
// steps s in [Equilibration, Equilibration+Sweeps) with s divisible by
// FlipInterval.
func (p RunParams) SampleCount() int {
	if p.FlipInterval <= 0 || p.Sweeps <= 0 || p.Equilibration < 0 {
		return 0
	}
	f := p.FlipInterval
	multiplesBelow := func(x int) int { return (x + f - 1) / f }
	return multiplesBelow(p.Steps()) - multiplesBelow(p.Equilibration)
}

// Chain is a Metropolis Markov chain over one lattice. It keeps the total
// energy and spin sum up to date incrementally so that each proposal costs
// O(1). A Chain owns its lattice and stream and is not safe for concurrent use.
type Chain struct {
	lat *Lattice
	rng *rng.Stream

	temperature float64
	// boltzmann[k] holds exp(-4k/T); only dE = 4 and dE = 8 need it.
	boltzmann [3]float64

	energy  float64
	spinSum int

	proposed uint64
	accepted uint64
}

// NewChain seeds a chain from the current lattice state.
func NewChain(lat *Lattice, t float64, r *rng.Stream) (*Chain, error) {
	if lat == nil || lat.L() <= 0 {
		return nil, paramErr("lattice", lat, ErrInvalidParameter)
	}
	if r == nil {
		return nil, paramErr("rng", r, ErrInvalidParameter)
	}
	c := &Chain{lat: lat, rng: r}
	if err := c.SetTemperature(t); err != nil {
		return nil, err
	}
	c.Resync()
	return c, nil
}

// SetTemperature changes the temperature used by subsequent proposals.
func (c *Chain) SetTemperature(t float64) error {
	if err := ValidateTemperature(t); err != nil {
		return err
	}
	c.temperature = t
	c.boltzmann[0] = 1
	c.boltzmann[1] = math.Exp(-4 / t)
	c.boltzmann[2] = math.Exp(-8 / t)
	return nil
}

// Resync recomputes the running totals from the lattice. Call it after
// mutating the lattice outside the chain.
func (c *Chain) Resync() {
	c.energy = MeasureEnergy(c.lat)
	c.spinSum = c.lat.Sum()
}

// Step proposes one single-spin flip at a uniformly random site and applies
// the Metropolis criterion. It reports whether the flip was accepted.
func (c *Chain) Step() bool {
	l := c.lat.L()
	i := c.rng.IntN(l)
	j := c.rng.IntN(l)
	cells := c.lat.Cells()
	idx := i*l + j
	s := int(cells[idx])

	// Flipping negates the site energy -s*h, so dE = 2*s*h.
	dE := 2 * s * c.lat.NeighborSum(i, j)
	c.proposed++
	if dE > 0 && c.rng.Float64() >= c.boltzmann[dE/4] {
		return false
	}
	cells[idx] = int8(-s)
	c.energy += float64(dE)
	c.spinSum -= 2 * s
	c.accepted++
	return true
}

// Sweep performs L² proposals and returns how many were accepted.
func (c *Chain) Sweep() int {
	n := c.lat.Sites()
	accepted := 0
	for k := 0; k < n; k++ {
		if c.Step() {
			accepted++
		}
	}
	return accepted
}

// Lattice returns the lattice the chain mutates.
func (c *Chain) Lattice() *Lattice { return c.lat }

// Temperature returns the current temperature.
func (c *Chain) Temperature() float64 { return c.temperature }

// Energy returns the running total energy.
func (c *Chain) Energy() float64 { return c.energy }

// Magnetization returns the running mean spin.
func (c *Chain) Magnetization() float64 {
	return float64(c.spinSum) / float64(c.lat.Sites())
}

// Proposed returns the number of proposals made so far.
func (c *Chain) Proposed() uint64 { return c.proposed }

// Accepted returns the number of accepted flips so far.
func (c *Chain) Accepted() uint64 { return c.accepted }

// AcceptanceRate returns accepted/proposed, or 0 before the first proposal.
func (c *Chain) AcceptanceRate() float64 {
	if c.proposed == 0 {
		return 0
	}
	return float64(c.accepted) / float64(c.proposed)
}

func (c *Chain) observe(obs Observable) float64 {
	if obs == ObserveEnergy {
		return c.energy
	}
	return c.Magnetization()
}

// MetropolisLoop runs Equilibration+Sweeps single-flip proposals on lat at
// temperature p.Temperature and returns the samples taken every FlipInterval
// steps once equilibration is over. The running energy is seeded with
// MeasureEnergy. lat is mutated in place.
func MetropolisLoop(lat *Lattice, p RunParams, obs Observable, r *rng.Stream) (Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, err := NewChain(lat, p.Temperature, r)
	if err != nil {
		return nil, err
	}
	series := make(Series, 0, p.SampleCount())
	steps := p.Steps()
	for step := 0; step < steps; step++ {
		c.Step()
		if step >= p.Equilibration && step%p.FlipInterval == 0 {
			series = append(series, c.observe(obs))
		}
	}
	return series, nil
}
