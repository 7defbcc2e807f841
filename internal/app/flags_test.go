package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
	"ising-mc/internal/sims/ising"
)

func TestConfigBindAndSimParams(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-size", "32", "-temp", "1.75", "-seed", "9", "-steps", "100", "-tps", "10"}))

	assert.Equal(t, 32, cfg.Size)
	assert.Equal(t, 10, cfg.TPS)

	factory, ok := core.Lookup(cfg.Sim)
	require.True(t, ok)
	sim := factory(cfg.SimParams())
	w, ok := sim.(*ising.World)
	require.True(t, ok)
	got := w.Config()
	assert.Equal(t, 32, got.Size)
	assert.InDelta(t, 1.75, got.Temperature, 1e-12)
	assert.Equal(t, int64(9), got.Seed)
	assert.Equal(t, 100, got.StepsPerTick)
}
