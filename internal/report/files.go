package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"ising-mc/internal/sweep"
)

var columns = []string{"L", "T", "mean", "stderr", "last"}

func ftoa(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

func records(res *sweep.Result) [][]string {
	out := [][]string{columns}
	for _, c := range res.Curves {
		for _, p := range c.Points {
			out = append(out, []string{
				strconv.Itoa(c.Size), ftoa(p.T), ftoa(p.Mean), ftoa(p.StdErr), ftoa(p.LastBin),
			})
		}
	}
	return out
}

// SaveCSV writes one row per (L, T) point with comma separated fields.
// An empty filename is a no-op.
func SaveCSV(filename string, res *sweep.Result) error {
	return saveDelimited(filename, ',', res)
}

// SaveTSV is SaveCSV with tab separated fields.
func SaveTSV(filename string, res *sweep.Result) error {
	return saveDelimited(filename, '\t', res)
}

func saveDelimited(filename string, comma rune, res *sweep.Result) error {
	if filename == "" {
		return nil
	}
	fp, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	w.Comma = comma
	if err := w.WriteAll(records(res)); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return fp.Close()
}

// SaveXLSX writes a Summary sheet with the sweep parameters and one sheet per
// lattice size holding T, mean, stderr and every bin value.
func SaveXLSX(filename string, cfg sweep.Config, res *sweep.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	params := [][2]any{
		{"statistic", string(res.Statistic)},
		{"policy", string(res.Policy)},
		{"T start", cfg.TStart},
		{"T stop", cfg.TStop},
		{"T step", cfg.TStep},
		{"N_sweeps", cfg.Sweeps},
		{"N_eq", cfg.Equilibration},
		{"N_flips", cfg.FlipInterval},
		{"N_bins", cfg.Bins},
		{"seed", cfg.Seed},
		{"elapsed [s]", res.Elapsed.Seconds()},
	}
	f.SetCellValue(summary, "A1", "Parameter")
	f.SetCellValue(summary, "B1", "Value")
	for i, kv := range params {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(summary, cell, kv[0])
		cell, _ = excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(summary, cell, kv[1])
	}

	for _, c := range res.Curves {
		sheet := "L=" + strconv.Itoa(c.Size)
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "add sheet %s", sheet)
		}
		headers := []string{"T", "mean", "stderr"}
		for b := 0; b < cfg.Bins; b++ {
			headers = append(headers, "bin "+strconv.Itoa(b+1))
		}
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for i, p := range c.Points {
			row := i + 2
			values := append([]float64{p.T, p.Mean, p.StdErr}, p.Bins...)
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return errors.Wrapf(err, "save %s", filename)
	}
	return nil
}
