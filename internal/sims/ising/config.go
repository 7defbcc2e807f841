package ising

import (
	"math"
	"strconv"
)

// Config controls the live Ising world driven by the viewer.
type Config struct {
	Size        int
	Temperature float64
	Seed        int64

	// StepsPerTick is the number of single-flip proposals per Step call.
	// Zero means one full sweep (L² proposals).
	StepsPerTick int
}

// DefaultConfig returns a 128×128 lattice at the critical temperature.
func DefaultConfig() Config {
	return Config{
		Size:        128,
		Temperature: math.Round(CriticalTemperature*1000) / 1000,
		Seed:        1337,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	for _, key := range []string{"l", "size"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Size = parsed
			}
		}
	}
	for _, key := range []string{"t", "temperature"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && ValidateTemperature(parsed) == nil {
				c.Temperature = parsed
			}
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["steps_per_tick"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.StepsPerTick = parsed
		}
	}
	return c
}
