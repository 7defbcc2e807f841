package ising

import (
	"ising-mc/internal/core"
	"ising-mc/pkg/rng"
)

// World adapts a Metropolis chain to the core.Sim contract so a viewer can
// animate the lattice.
type World struct {
	cfg     Config
	lat     *Lattice
	chain   *Chain
	display []uint8
}

// New returns a World of the given size using the remaining defaults.
func New(size int) *World {
	cfg := DefaultConfig()
	cfg.Size = size
	return NewWithConfig(cfg)
}

// NewWithConfig returns a World configured from cfg. Invalid sizes and
// temperatures fall back to the defaults.
func NewWithConfig(cfg Config) *World {
	def := DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if ValidateTemperature(cfg.Temperature) != nil {
		cfg.Temperature = def.Temperature
	}
	if cfg.StepsPerTick < 0 {
		cfg.StepsPerTick = 0
	}
	w := &World{
		cfg:     cfg,
		lat:     newLattice(cfg.Size),
		display: make([]uint8, cfg.Size*cfg.Size),
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "ising" }

// Size reports the lattice dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Size, H: w.cfg.Size} }

// Cells exposes the display buffer: 1 for spin up, 0 for spin down.
func (w *World) Cells() []uint8 { return w.display }

// Lattice exposes the live lattice.
func (w *World) Lattice() *Lattice { return w.lat }

// Chain exposes the Metropolis chain driving the world.
func (w *World) Chain() *Chain { return w.chain }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset redraws a random lattice and records seed as the configured seed. A
// zero seed keeps the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.cfg.Seed = seed
	stream := rng.New(seed)
	w.lat.Randomize(stream)
	chain, err := NewChain(w.lat, w.cfg.Temperature, stream)
	if err != nil {
		// Size and temperature were validated in NewWithConfig.
		panic(err)
	}
	w.chain = chain
	w.refreshDisplay()
}

// Step advances the chain by StepsPerTick proposals.
func (w *World) Step() {
	n := w.cfg.StepsPerTick
	if n == 0 {
		n = w.lat.Sites()
	}
	for k := 0; k < n; k++ {
		w.chain.Step()
	}
	w.refreshDisplay()
}

func (w *World) refreshDisplay() {
	for i, s := range w.lat.Cells() {
		if s > 0 {
			w.display[i] = 1
			continue
		}
		w.display[i] = 0
	}
}

// Readings reports the live observables shown by the viewer overlay.
func (w *World) Readings() []core.Reading {
	return []core.Reading{
		{Label: "T", Value: w.chain.Temperature()},
		{Label: "Tc", Value: CriticalTemperature},
		{Label: "M", Value: w.chain.Magnetization()},
		{Label: "E/N", Value: w.chain.Energy() / float64(w.lat.Sites())},
		{Label: "accept", Value: w.chain.AcceptanceRate()},
	}
}

func init() {
	core.Register("ising", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
