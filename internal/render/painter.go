//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads the spin buffer into a texture and draws it scaled.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a w×h grid.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, w*h*4),
	}
}

// Blit draws cells onto dst using the given spin colors and integer scale.
func (p *GridPainter) Blit(dst *ebiten.Image, cells []uint8, up, down color.Color, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	fillSpinRGBA(p.buf, cells, up, down)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(p.img, op)
}

// Trace draws a polyline of magnetization values into the rectangle at
// (x, y) with size w×h, one column per sample.
func Trace(dst *ebiten.Image, pixel *ebiten.Image, values []float64, x, y, w, h int) {
	if len(values) == 0 || w <= 0 || h <= 0 {
		return
	}
	start := 0
	if len(values) > w {
		start = len(values) - w
	}
	for i, m := range values[start:] {
		row := int(float64(h-1) * (1 - (m+1)/2))
		if row < 0 {
			row = 0
		}
		if row >= h {
			row = h - 1
		}
		c := magnetizationColor(m, SpinUpColor, SpinDownColor)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, 2)
		op.GeoM.Translate(float64(x+i), float64(y+row))
		op.ColorScale.ScaleWithColor(c)
		dst.DrawImage(pixel, op)
	}
}
