package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"ising-mc/internal/sweep"
)

// ASCIIPreview renders the curve means as a terminal chart, one series per
// lattice size.
func ASCIIPreview(res *sweep.Result, width, height int) string {
	var series [][]float64
	var sizes []string
	var first []sweep.Point
	for _, c := range res.Curves {
		if len(c.Points) == 0 {
			continue
		}
		ys := make([]float64, len(c.Points))
		for i, p := range c.Points {
			ys[i] = p.Mean
		}
		if first == nil {
			first = c.Points
		}
		series = append(series, ys)
		sizes = append(sizes, fmt.Sprintf("L=%d", c.Size))
	}
	if len(series) == 0 {
		return ""
	}
	caption := fmt.Sprintf("%s vs T  [%.3g, %.3g]  %v",
		res.Statistic.Label(), first[0].T, first[len(first)-1].T, sizes)
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
