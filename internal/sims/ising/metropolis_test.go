package ising

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/pkg/rng"
)

func TestMetropolisLoopSampleCount(t *testing.T) {
	lat, err := PrepareSystem(4, rng.New(1))
	require.NoError(t, err)

	p := RunParams{Temperature: 2.5, Sweeps: 5000, Equilibration: 500, FlipInterval: 5}
	series, err := MetropolisLoop(lat, p, ObserveMagnetization, rng.New(2))
	require.NoError(t, err)

	require.Len(t, series, 5000/5)
	assert.Equal(t, p.SampleCount(), len(series))
	for i, m := range series {
		if m < -1 || m > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, m)
		}
	}
	assert.True(t, lat.Valid())
}

func TestSampleCount(t *testing.T) {
	cases := []struct {
		name string
		p    RunParams
		want int
	}{
		{"reference", RunParams{Sweeps: 10000, Equilibration: 1000, FlipInterval: 10}, 1000},
		{"no equilibration", RunParams{Sweeps: 10, Equilibration: 0, FlipInterval: 3}, 4},
		{"unaligned equilibration", RunParams{Sweeps: 10, Equilibration: 7, FlipInterval: 5}, 2},
		{"every step", RunParams{Sweeps: 17, Equilibration: 4, FlipInterval: 1}, 17},
		{"window misses multiples", RunParams{Sweeps: 5, Equilibration: 3, FlipInterval: 10}, 0},
		{"invalid interval", RunParams{Sweeps: 5, FlipInterval: 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.SampleCount())
		})
	}
}

func TestRunParamsValidate(t *testing.T) {
	base := RunParams{Temperature: 2, Sweeps: 100, Equilibration: 10, FlipInterval: 5}
	require.NoError(t, base.Validate())

	cases := []struct {
		name  string
		edit  func(*RunParams)
		err   error
		field string
	}{
		{"zero temperature", func(p *RunParams) { p.Temperature = 0 }, ErrInvalidParameter, "T"},
		{"negative temperature", func(p *RunParams) { p.Temperature = -1 }, ErrInvalidParameter, "T"},
		{"NaN temperature", func(p *RunParams) { p.Temperature = math.NaN() }, ErrNonFinite, "T"},
		{"infinite temperature", func(p *RunParams) { p.Temperature = math.Inf(1) }, ErrNonFinite, "T"},
		{"zero sweeps", func(p *RunParams) { p.Sweeps = 0 }, ErrInvalidParameter, "N_sweeps"},
		{"negative equilibration", func(p *RunParams) { p.Equilibration = -1 }, ErrInvalidParameter, "N_eq"},
		{"zero interval", func(p *RunParams) { p.FlipInterval = 0 }, ErrInvalidParameter, "N_flips"},
		{"no samples", func(p *RunParams) { p.Sweeps, p.Equilibration, p.FlipInterval = 5, 3, 10 }, ErrInvalidParameter, "N_sweeps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.edit(&p)
			err := p.Validate()
			require.ErrorIs(t, err, tc.err)
			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.field, pe.Field)
		})
	}
}

func TestMetropolisLoopRejectsBeforeWork(t *testing.T) {
	lat, err := NewUniform(4, 1)
	require.NoError(t, err)
	before := append([]int8(nil), lat.Cells()...)

	_, err = MetropolisLoop(lat, RunParams{Temperature: 0, Sweeps: 10, FlipInterval: 1}, ObserveEnergy, rng.New(1))
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, before, lat.Cells(), "lattice must be untouched when validation fails")
}

func TestMetropolisLoopDeterministic(t *testing.T) {
	run := func() Series {
		lat, err := PrepareSystem(8, rng.New(9))
		require.NoError(t, err)
		s, err := MetropolisLoop(lat, RunParams{Temperature: 2.2, Sweeps: 2000, Equilibration: 100, FlipInterval: 10}, ObserveEnergy, rng.New(10))
		require.NoError(t, err)
		return s
	}
	assert.Equal(t, run(), run())
}

func TestMetropolisLoopEnergySeries(t *testing.T) {
	lat, err := PrepareSystem(6, rng.New(3))
	require.NoError(t, err)
	p := RunParams{Temperature: 3, Sweeps: 1000, Equilibration: 0, FlipInterval: 1000}
	series, err := MetropolisLoop(lat, p, ObserveEnergy, rng.New(4))
	require.NoError(t, err)
	require.Len(t, series, 1)
	// Bounds of the total energy on an L×L torus.
	assert.GreaterOrEqual(t, series[0], -2.0*36)
	assert.LessOrEqual(t, series[0], 2.0*36)
}

func TestChainIncrementalTotalsMatchRecompute(t *testing.T) {
	lat, err := PrepareSystem(12, rng.New(21))
	require.NoError(t, err)
	chain, err := NewChain(lat, 2.3, rng.New(22))
	require.NoError(t, err)

	for step := 1; step <= 50000; step++ {
		chain.Step()
		if step%997 == 0 {
			require.InDelta(t, MeasureEnergy(lat), chain.Energy(), 1e-9, "energy drift at step %d", step)
			require.InDelta(t, MeasureMagnetization(lat), chain.Magnetization(), 1e-12, "magnetization drift at step %d", step)
		}
	}
	assert.True(t, lat.Valid())
	assert.Equal(t, uint64(50000), chain.Proposed())
}

func TestChainTemperatureChangeKeepsTotals(t *testing.T) {
	lat, err := PrepareSystem(10, rng.New(31))
	require.NoError(t, err)
	chain, err := NewChain(lat, 1.5, rng.New(32))
	require.NoError(t, err)

	for _, temp := range []float64{1.5, 4, 0.5, 2.269} {
		require.NoError(t, chain.SetTemperature(temp))
		for k := 0; k < 20; k++ {
			chain.Sweep()
		}
		require.InDelta(t, MeasureEnergy(lat), chain.Energy(), 1e-9)
	}
	assert.ErrorIs(t, chain.SetTemperature(-1), ErrInvalidParameter)
	assert.Equal(t, 2.269, chain.Temperature(), "rejected temperature must not be applied")
}

func TestHighTemperatureDisorders(t *testing.T) {
	lat, err := NewUniform(16, 1)
	require.NoError(t, err)
	p := RunParams{Temperature: 1e6, Sweeps: 200000, Equilibration: 10000, FlipInterval: 100}
	series, err := MetropolisLoop(lat, p, ObserveMagnetization, rng.New(41))
	require.NoError(t, err)
	assert.InDelta(t, 0, series.Mean(), 0.05)

	chain, err := NewChain(lat, 1e6, rng.New(42))
	require.NoError(t, err)
	chain.Sweep()
	assert.Greater(t, chain.AcceptanceRate(), 0.99)
}

func TestLowTemperatureOrderedStaysOrdered(t *testing.T) {
	lat, err := NewUniform(8, 1)
	require.NoError(t, err)
	p := RunParams{Temperature: 0.1, Sweeps: 20000, Equilibration: 0, FlipInterval: 50}
	series, err := MetropolisLoop(lat, p, ObserveMagnetization, rng.New(51))
	require.NoError(t, err)
	for i, m := range series {
		if m != 1 {
			t.Fatalf("sample %d = %v, expected fully ordered lattice", i, m)
		}
	}
}

func TestLowTemperatureOnlyDownhillMoves(t *testing.T) {
	lat, err := PrepareSystem(16, rng.New(61))
	require.NoError(t, err)
	chain, err := NewChain(lat, 0.1, rng.New(62))
	require.NoError(t, err)

	start := chain.Energy()
	prev := start
	for step := 0; step < 100000; step++ {
		if chain.Step() {
			require.LessOrEqual(t, chain.Energy(), prev, "accepted uphill move at step %d", step)
		}
		prev = chain.Energy()
	}
	assert.Less(t, chain.Energy(), start)
	assert.Less(t, chain.Energy()/float64(lat.Sites()), -1.0, "quench should coarsen into aligned domains")
}

func TestNewChainValidation(t *testing.T) {
	lat, err := NewUniform(4, 1)
	require.NoError(t, err)

	_, err = NewChain(nil, 1, rng.New(1))
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewChain(lat, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewChain(lat, math.NaN(), rng.New(1))
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestObservableString(t *testing.T) {
	assert.Equal(t, "magnetization", ObserveMagnetization.String())
	assert.Equal(t, "energy", ObserveEnergy.String())
	assert.Equal(t, "unknown", Observable(9).String())
}
