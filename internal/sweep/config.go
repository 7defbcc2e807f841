package sweep

import (
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"ising-mc/internal/sims/ising"
)

// Statistic selects the per-bin scalar reduced from one Metropolis run.
type Statistic string

const (
	// Magnetization is the mean signed spin.
	Magnetization Statistic = "magnetization"
	// AbsMagnetization is the mean of |M| over the samples.
	AbsMagnetization Statistic = "abs_magnetization"
	// EnergyPerSite is the mean total energy divided by L².
	EnergyPerSite Statistic = "energy"
	// SpecificHeat is (⟨E²⟩ - ⟨E⟩²) / (T² L²).
	SpecificHeat Statistic = "specific_heat"
)

// Statistics lists the supported statistics.
func Statistics() []Statistic {
	return []Statistic{Magnetization, AbsMagnetization, EnergyPerSite, SpecificHeat}
}

// Observable returns the quantity the Metropolis loop must sample.
func (s Statistic) Observable() ising.Observable {
	switch s {
	case EnergyPerSite, SpecificHeat:
		return ising.ObserveEnergy
	default:
		return ising.ObserveMagnetization
	}
}

// Label returns a short axis label.
func (s Statistic) Label() string {
	switch s {
	case Magnetization:
		return "M"
	case AbsMagnetization:
		return "|M|"
	case EnergyPerSite:
		return "E/N"
	case SpecificHeat:
		return "C_V"
	default:
		return string(s)
	}
}

// LatticePolicy controls when a fresh random lattice is drawn.
type LatticePolicy string

const (
	// CarryLattice reuses one lattice per size across every temperature and
	// bin, in sweep order. Results at one temperature depend on the state left
	// by the previous one.
	CarryLattice LatticePolicy = "carry"
	// PerTemperature draws a fresh lattice for every (size, temperature);
	// bins continue the same chain.
	PerTemperature LatticePolicy = "temperature"
	// PerBin draws a fresh lattice for every bin.
	PerBin LatticePolicy = "bin"
)

// Config describes a temperature sweep over one or more lattice sizes.
type Config struct {
	Sizes []int

	TStart float64
	TStop  float64
	TStep  float64

	Sweeps        int
	Equilibration int
	FlipInterval  int
	Bins          int

	Seed      int64
	Workers   int
	Statistic Statistic
	Policy    LatticePolicy
}

// DefaultConfig returns the reference magnetization sweep: L=10, T in
// [1.5, 3.1) step 0.1, 10000 measurement steps after 1000 equilibration
// steps, sampling every 10, 10 bins.
func DefaultConfig() Config {
	return Config{
		Sizes:         []int{10},
		TStart:        1.5,
		TStop:         3.1,
		TStep:         0.1,
		Sweeps:        10000,
		Equilibration: 1000,
		FlipInterval:  10,
		Bins:          10,
		Seed:          1337,
		Workers:       runtime.NumCPU(),
		Statistic:     Magnetization,
		Policy:        PerTemperature,
	}
}

// MaxTemperatures bounds the number of points in a temperature range.
const MaxTemperatures = 100000

// Temperatures returns start, start+step, ... strictly below stop. A small
// tolerance keeps accumulated rounding from adding a point at stop.
func (c Config) Temperatures() []float64 {
	if c.TStep <= 0 || !(c.TStop > c.TStart) {
		return nil
	}
	limit := c.TStop - c.TStep*1e-9
	var temps []float64
	for k := 0; ; k++ {
		t := c.TStart + float64(k)*c.TStep
		if t >= limit {
			break
		}
		temps = append(temps, t)
	}
	return temps
}

// RunParams returns the per-bin Metropolis parameters at temperature t.
func (c Config) RunParams(t float64) ising.RunParams {
	return ising.RunParams{
		Temperature:   t,
		Sweeps:        c.Sweeps,
		Equilibration: c.Equilibration,
		FlipInterval:  c.FlipInterval,
	}
}

// Validate rejects the configuration before any simulation work starts.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.Wrap(ising.ErrInvalidParameter, "no lattice sizes")
	}
	for _, l := range c.Sizes {
		if l <= 0 {
			return errors.Wrapf(ising.ErrInvalidParameter, "lattice size %d", l)
		}
	}
	if c.Bins <= 0 {
		return errors.Wrapf(ising.ErrInvalidParameter, "N_bins=%d", c.Bins)
	}
	for _, v := range []float64{c.TStart, c.TStop, c.TStep} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ising.ErrNonFinite, "temperature range")
		}
	}
	if c.TStep <= 0 {
		return errors.Wrapf(ising.ErrInvalidParameter, "temperature step %g", c.TStep)
	}
	if n := (c.TStop - c.TStart) / c.TStep; n > MaxTemperatures {
		return errors.Wrapf(ising.ErrInvalidParameter, "temperature range [%g, %g) step %g exceeds %d points",
			c.TStart, c.TStop, c.TStep, MaxTemperatures)
	}
	temps := c.Temperatures()
	if len(temps) == 0 {
		return errors.Wrapf(ising.ErrInvalidParameter, "empty temperature range [%g, %g)", c.TStart, c.TStop)
	}
	for _, t := range temps {
		if err := c.RunParams(t).Validate(); err != nil {
			return errors.Wrap(err, "temperature sweep")
		}
	}
	switch c.Statistic {
	case Magnetization, AbsMagnetization, EnergyPerSite, SpecificHeat:
	default:
		return errors.Wrapf(ising.ErrInvalidParameter, "unknown statistic %q", c.Statistic)
	}
	switch c.Policy {
	case CarryLattice, PerTemperature, PerBin:
	default:
		return errors.Wrapf(ising.ErrInvalidParameter, "unknown lattice policy %q", c.Policy)
	}
	return nil
}

// ParseSizes parses a comma separated list of lattice sizes such as "10,20,30".
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		l, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "lattice size %q", part)
		}
		sizes = append(sizes, l)
	}
	if len(sizes) == 0 {
		return nil, errors.Wrapf(ising.ErrInvalidParameter, "no lattice sizes in %q", s)
	}
	return sizes, nil
}

// FromMap applies key=value overrides on top of c. Unknown keys are reported.
func (c Config) FromMap(kv map[string]string) (Config, error) {
	for key, v := range kv {
		var err error
		switch key {
		case "sizes", "l":
			c.Sizes, err = ParseSizes(v)
		case "tstart":
			c.TStart, err = strconv.ParseFloat(v, 64)
		case "tstop":
			c.TStop, err = strconv.ParseFloat(v, 64)
		case "tstep":
			c.TStep, err = strconv.ParseFloat(v, 64)
		case "sweeps":
			c.Sweeps, err = strconv.Atoi(v)
		case "eq":
			c.Equilibration, err = strconv.Atoi(v)
		case "flips":
			c.FlipInterval, err = strconv.Atoi(v)
		case "bins":
			c.Bins, err = strconv.Atoi(v)
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "workers":
			c.Workers, err = strconv.Atoi(v)
		case "stat":
			c.Statistic = Statistic(v)
		case "policy":
			c.Policy = LatticePolicy(v)
		default:
			err = errors.New("unknown key")
		}
		if err != nil {
			return c, errors.Wrapf(err, "override %s=%s", key, v)
		}
	}
	return c, nil
}
