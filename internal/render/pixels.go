package render

import "image/color"

// Default spin colors: warm for up, cold for down.
var (
	SpinUpColor   = color.RGBA{R: 236, G: 112, B: 64, A: 255}
	SpinDownColor = color.RGBA{R: 32, G: 56, B: 120, A: 255}
)

// fillSpinRGBA converts a spin display buffer (1 up, 0 down) into RGBA pixels
// in buf, which must hold 4 bytes per cell.
func fillSpinRGBA(buf []byte, cells []uint8, up, down color.Color) {
	var pix [2][4]byte
	for k, c := range [2]color.Color{down, up} {
		r, g, b, a := c.RGBA()
		pix[k] = [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	}
	for i, c := range cells {
		p := &pix[0]
		if c != 0 {
			p = &pix[1]
		}
		copy(buf[i*4:i*4+4], p[:])
	}
}

// magnetizationColor blends the spin colors by the mean spin m in [-1, 1],
// giving the tint used for the magnetization trace.
func magnetizationColor(m float64, up, down color.RGBA) color.RGBA {
	if m > 1 {
		m = 1
	}
	if m < -1 {
		m = -1
	}
	w := (m + 1) / 2
	mix := func(a, b uint8) uint8 { return uint8(float64(b) + w*(float64(a)-float64(b)) + 0.5) }
	return color.RGBA{R: mix(up.R, down.R), G: mix(up.G, down.G), B: mix(up.B, down.B), A: 255}
}
