package app

import (
	"flag"
	"strconv"
)

// Config holds the viewer's command-line parameters.
type Config struct {
	Sim         string
	Size        int
	Temperature float64
	Seed        int64
	Steps       int
	Scale       int
	TPS         int
	HUDWidth    int
}

// NewConfig returns the viewer defaults: a 128² lattice near Tc.
func NewConfig() *Config {
	return &Config{Sim: "ising", Size: 128, Temperature: 2.269, Seed: 42, Scale: 4, TPS: 30, HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Size, "size", c.Size, "lattice side length L")
	fs.Float64Var(&c.Temperature, "temp", c.Temperature, "temperature T (J/k_B)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Steps, "steps", c.Steps, "spin-flip proposals per tick (0 = one sweep, L²)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
}

// SimParams returns the overrides handed to the simulation factory.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"size":           strconv.Itoa(c.Size),
		"temperature":    strconv.FormatFloat(c.Temperature, 'g', -1, 64),
		"seed":           strconv.FormatInt(c.Seed, 10),
		"steps_per_tick": strconv.Itoa(c.Steps),
	}
}
