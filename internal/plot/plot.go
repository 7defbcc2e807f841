// Package plot draws sweep curves with error bars.
package plot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"ising-mc/internal/sims/ising"
	"ising-mc/internal/sweep"
)

// errorPoints adapts a curve to plotter.XYer and plotter.YErrorer.
type errorPoints []sweep.Point

func (e errorPoints) Len() int                    { return len(e) }
func (e errorPoints) XY(i int) (float64, float64) { return e[i].T, e[i].Mean }

// YError reports a zero bar for a missing standard error.
func (e errorPoints) YError(i int) (float64, float64) {
	se := e[i].StdErr
	if math.IsNaN(se) || math.IsInf(se, 0) {
		se = 0
	}
	return se, se
}

// Options controls the output image.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	// HideCritical suppresses the dashed line at the analytic Tc.
	HideCritical bool
}

// DefaultOptions returns a 6x4 inch chart.
func DefaultOptions() Options {
	return Options{Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

// New builds the chart for res: one line with error bars per lattice size and
// a dashed red vertical line at the analytic critical temperature.
func New(res *sweep.Result, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s of the 2D Ising model", res.Statistic.Label())
	}
	p.X.Label.Text = "T"
	p.Y.Label.Text = res.Statistic.Label()
	p.Add(plotter.NewGrid())

	var lows, highs []float64
	for i, c := range res.Curves {
		if len(c.Points) == 0 {
			continue
		}
		pts := errorPoints(c.Points)
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "curve L=%d", c.Size)
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(i)

		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "error bars L=%d", c.Size)
		}
		bars.Color = plotutil.Color(i)

		p.Add(line, scatter, bars)
		p.Legend.Add(fmt.Sprintf("L=%d", c.Size), line, scatter)

		for k, pt := range c.Points {
			lo, hi := pts.YError(k)
			lows = append(lows, pt.Mean-lo)
			highs = append(highs, pt.Mean+hi)
		}
	}
	if len(lows) == 0 {
		return nil, errors.New("no points to plot")
	}

	if !opts.HideCritical {
		tc := ising.CriticalTemperature
		ref, err := plotter.NewLine(plotter.XYs{
			{X: tc, Y: floats.Min(lows)},
			{X: tc, Y: floats.Max(highs)},
		})
		if err != nil {
			return nil, errors.Wrap(err, "critical line")
		}
		ref.Color = color.RGBA{R: 220, A: 255}
		ref.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(ref)
		p.Legend.Add(fmt.Sprintf("Tc = %.4f", tc), ref)
	}
	p.Legend.Top = true
	return p, nil
}

// Save renders res to filename; the format follows the extension (.png,
// .svg, .pdf, ...).
func Save(filename string, res *sweep.Result, opts Options) error {
	p, err := New(res, opts)
	if err != nil {
		return err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if err := p.Save(opts.Width, opts.Height, filename); err != nil {
		return errors.Wrapf(err, "save %s", filename)
	}
	return nil
}
