//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"ising-mc/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the control panel to the right of the lattice. Each control
// has -/+ buttons; the keyboard adjusts the first float control with -/= and
// the first int control with [/].
type HUD struct {
	sim      core.Sim
	width    int
	title    string
	controls []control
	buttons  []buttonPair

	panel *ebiten.Image
	pixel *ebiten.Image
}

type buttonPair struct {
	top         int
	minus, plus image.Rectangle
}

// NewHUD constructs a HUD for sim with the given panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, controls: newControls(sim)}
	h.title = "Controls"
	if sim != nil && sim.Name() != "" {
		h.title = strings.ToUpper(sim.Name()[:1]) + sim.Name()[1:] + " controls"
	}
	h.buttons = make([]buttonPair, len(h.controls))
	for i := range h.buttons {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
		h.buttons[i] = buttonPair{top: top, minus: minus, plus: plus}
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes control values and applies mouse and keyboard input. The
// panel starts at offsetX on screen.
func (h *HUD) Update(offsetX int) {
	if h == nil || len(h.controls) == 0 {
		return
	}
	refresh(h.sim, h.controls)

	if i := h.firstOf(core.ParamTypeFloat); i >= 0 {
		h.keyAdjust(i, ebiten.KeyMinus, ebiten.KeyEqual)
		h.keyAdjust(i, ebiten.KeyNumpadSubtract, ebiten.KeyNumpadAdd)
	}
	if i := h.firstOf(core.ParamTypeInt); i >= 0 {
		h.keyAdjust(i, ebiten.KeyBracketLeft, ebiten.KeyBracketRight)
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := image.Pt(mx-offsetX, my)
	for i, b := range h.buttons {
		switch {
		case p.In(b.minus):
			h.controls[i].adjust(h.sim, -1)
			return
		case p.In(b.plus):
			h.controls[i].adjust(h.sim, 1)
			return
		}
	}
}

func (h *HUD) firstOf(t core.ParamType) int {
	for i, c := range h.controls {
		if c.def.Type == t {
			return i
		}
	}
	return -1
}

func (h *HUD) keyAdjust(i int, down, up ebiten.Key) {
	if inpututil.IsKeyJustPressed(down) {
		h.controls[i].adjust(h.sim, -1)
	}
	if inpututil.IsKeyJustPressed(up) {
		h.controls[i].adjust(h.sim, 1)
	}
}

// Draw paints the panel at offsetX, with the lattice height at scale.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+lineHeight, dimColor)
	}
	for i, c := range h.controls {
		b := h.buttons[i]
		y := b.top + labelBaseline
		text.Draw(h.panel, c.def.Label, face, panelPadding, y, labelColor)

		valueColor := labelColor
		if !c.known {
			valueColor = dimColor
		}
		w := text.BoundString(face, c.text).Dx()
		text.Draw(h.panel, c.text, face, b.minus.Min.X-buttonGap-w, y, valueColor)

		_, canDown := c.target(-1)
		_, canUp := c.target(1)
		h.drawButton(b.minus, "-", canDown)
		h.drawButton(b.plus, "+", canUp)
	}
	text.Draw(h.panel, "space pause  n step  r/s reset", face, panelPadding, height-panelPadding, dimColor)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = buttonOffColor, dimColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-bounds.Dx())/2
	y := r.Min.Y + (r.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

var (
	panelColor     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor       = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	buttonColor    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
