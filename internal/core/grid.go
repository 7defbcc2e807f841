package core

// SpinGrid stores a 2D grid of +1/-1 spins in row-major order. Row i, column
// j lives at index i*W + j.
type SpinGrid struct {
	W, H int
	data []int8
}

// NewSpinGrid allocates a grid with the given dimensions, every spin up.
func NewSpinGrid(w, h int) *SpinGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &SpinGrid{W: w, H: h, data: make([]int8, w*h)}
	g.Fill(1)
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *SpinGrid) Cells() []int8 { return g.data }

// Index returns the linear slice index for row i, column j.
func (g *SpinGrid) Index(i, j int) int { return i*g.W + j }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *SpinGrid) Wrap(i, j int) (int, int) {
	i = (i%g.H + g.H) % g.H
	j = (j%g.W + g.W) % g.W
	return i, j
}

// At returns the spin at (i, j) with periodic boundaries.
func (g *SpinGrid) At(i, j int) int8 {
	i, j = g.Wrap(i, j)
	return g.data[i*g.W+j]
}

// NeighborSum returns the sum of the four orthogonal neighbors of (i, j).
// Callers must pass in-range coordinates.
func (g *SpinGrid) NeighborSum(i, j int) int {
	up := i - 1
	if up < 0 {
		up = g.H - 1
	}
	down := i + 1
	if down == g.H {
		down = 0
	}
	left := j - 1
	if left < 0 {
		left = g.W - 1
	}
	right := j + 1
	if right == g.W {
		right = 0
	}
	row := i * g.W
	return int(g.data[up*g.W+j]) + int(g.data[down*g.W+j]) +
		int(g.data[row+left]) + int(g.data[row+right])
}

// Flip negates the spin at (i, j).
func (g *SpinGrid) Flip(i, j int) { g.data[i*g.W+j] = -g.data[i*g.W+j] }

// Fill sets every cell to v.
func (g *SpinGrid) Fill(v int8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Sum returns the total of all spins.
func (g *SpinGrid) Sum() int {
	total := 0
	for _, v := range g.data {
		total += int(v)
	}
	return total
}
