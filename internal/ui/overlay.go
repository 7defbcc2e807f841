//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"ising-mc/internal/core"
	"ising-mc/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	traceWidth  = 160
	traceHeight = 48
)

// Overlay draws the live readings and a magnetization trace over the lattice.
// Tab toggles it.
type Overlay struct {
	sim     core.Sim
	visible bool
	trace   *History
	pixel   *ebiten.Image
}

// NewOverlay constructs a visible overlay for sim.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, visible: true, trace: NewHistory(traceWidth)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Record samples the magnetization reading after a simulation tick.
func (o *Overlay) Record() {
	if m, ok := o.reading("M"); ok {
		o.trace.Push(m)
	}
}

// Clear drops the trace, used after a reset.
func (o *Overlay) Clear() { o.trace.Clear() }

func (o *Overlay) reading(label string) (float64, bool) {
	p, ok := o.sim.(core.ReadingsProvider)
	if !ok {
		return 0, false
	}
	for _, r := range p.Readings() {
		if r.Label == label {
			return r.Value, true
		}
	}
	return 0, false
}

// Draw paints the readout box in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image, paused bool) {
	if !o.visible {
		return
	}
	p, ok := o.sim.(core.ReadingsProvider)
	if !ok {
		return
	}
	readings := p.Readings()
	lines := make([]string, 0, len(readings)+1)
	for _, r := range readings {
		lines = append(lines, fmt.Sprintf("%-7s %9.4f", r.Label, r.Value))
	}
	if paused {
		lines = append(lines, "paused")
	}

	const pad, lh = 6, 14
	boxH := pad*3 + len(lines)*lh + traceHeight
	vector.DrawFilledRect(screen, 4, 4, traceWidth+2*pad, float32(boxH), color.RGBA{A: 170}, false)

	face := basicfont.Face7x13
	for i, l := range lines {
		text.Draw(screen, l, face, 4+pad, 4+pad+(i+1)*lh-3, color.White)
	}
	top := 4 + pad*2 + len(lines)*lh
	render.Trace(screen, o.pixel, o.trace.Values(), 4+pad, top, traceWidth, traceHeight)
}
