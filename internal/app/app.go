//go:build ebiten

package app

import (
	"image/color"
	"time"

	"ising-mc/internal/core"
	"ising-mc/internal/render"
	"ising-mc/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface. Simulation
// ticks run on their own fixed clock, independent of the frame rate.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep

	upColor   color.Color
	downColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for sim using the viewer configuration.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		sim:       sim,
		painter:   render.NewGridPainter(size.W, size.H),
		overlay:   ui.NewOverlay(sim),
		hud:       ui.NewHUD(sim, cfg.HUDWidth),
		clock:     core.NewFixedStep(cfg.TPS),
		upColor:   render.SpinUpColor,
		downColor: render.SpinDownColor,
		scale:     scale,
		seed:      cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.overlay.Clear()
	g.tickOnce = false
}

// Update handles input and advances the simulation by the ticks due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.latticeWidth())

	ticks := g.clock.Due(time.Now())
	if g.paused {
		ticks = 0
	}
	if g.tickOnce {
		ticks = 1
		g.tickOnce = false
	}
	for i := 0; i < ticks; i++ {
		g.sim.Step()
		g.overlay.Record()
	}
	return nil
}

// Draw renders the lattice, the readout overlay and the control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.upColor, g.downColor, g.scale)
	g.overlay.Draw(screen, g.paused)
	g.hud.Draw(screen, g.latticeWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.latticeWidth() + g.hud.Width(), g.sim.Size().H * g.scale
}

func (g *Game) latticeWidth() int { return g.sim.Size().W * g.scale }
