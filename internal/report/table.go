// Package report formats sweep results for the console and for files.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ising-mc/internal/sims/ising"
	"ising-mc/internal/sweep"
)

func fmt6(x float64) string { return fmt.Sprintf("%10.6f", x) }

// WritePoint writes the per-temperature line: size, temperature, value of the
// last bin and [mean, stderr] over bins.
func WritePoint(w io.Writer, size int, p sweep.Point) error {
	_, err := fmt.Fprintf(w, "L=%-4d T=%.4f last=%s [%s, %s]\n",
		size, p.T, fmt6(p.LastBin), fmt6(p.Mean), fmt6(p.StdErr))
	return err
}

// WriteTable writes every curve of res as one fixed width table with a
// column pair (mean, stderr) per lattice size.
func WriteTable(w io.Writer, res *sweep.Result) error {
	if len(res.Curves) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}
	label := res.Statistic.Label()
	headers := []string{"T"}
	for _, c := range res.Curves {
		headers = append(headers, fmt.Sprintf("%s L=%d", label, c.Size), "stderr")
	}

	n := len(res.Curves[0].Points)
	rows := make([][]string, n)
	for i := range rows {
		row := []string{fmt.Sprintf("%.4f", res.Curves[0].Points[i].T)}
		for _, c := range res.Curves {
			if i < len(c.Points) {
				row = append(row, fmt6(c.Points[i].Mean), fmt6(c.Points[i].StdErr))
			} else {
				row = append(row, "", "")
			}
		}
		rows[i] = row
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	var b strings.Builder
	line := func() {
		b.WriteString("+")
		for _, wd := range widths {
			b.WriteString(strings.Repeat("-", wd+2) + "+")
		}
		b.WriteString("\n")
	}

	line()
	b.WriteString("|")
	for i, h := range headers {
		fmt.Fprintf(&b, " %-*s |", widths[i], h)
	}
	b.WriteString("\n")
	line()
	for _, row := range rows {
		b.WriteString("|")
		for j, cell := range row {
			fmt.Fprintf(&b, " %*s |", widths[j], cell)
		}
		b.WriteString("\n")
	}
	line()

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummary writes the analytic critical temperature followed by the
// estimate read off each curve.
func WriteSummary(w io.Writer, res *sweep.Result) error {
	if _, err := fmt.Fprintf(w, "Tc (analytic) = %.6f\n", ising.CriticalTemperature); err != nil {
		return err
	}
	for _, c := range res.Curves {
		tc, ok := c.CriticalEstimate(res.Statistic)
		var err error
		if ok {
			_, err = fmt.Fprintf(w, "Tc estimate L=%d: %.4f (%s)\n", c.Size, tc, res.Statistic)
		} else {
			_, err = fmt.Fprintf(w, "Tc estimate L=%d: n/a\n", c.Size)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "elapsed %s\n", res.Elapsed.Round(time.Millisecond))
	return err
}
