package sweep

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"ising-mc/internal/sims/ising"
)

// Reduce turns the series of one bin into a single scalar. t and l are the
// run temperature and lattice size.
func (s Statistic) Reduce(series ising.Series, t float64, l int) float64 {
	switch s {
	case AbsMagnetization:
		return series.MeanAbs()
	case EnergyPerSite:
		return series.Mean() / float64(l*l)
	case SpecificHeat:
		return ising.SpecificHeat(series, t, l)
	default:
		return series.Mean()
	}
}

// Aggregate returns the mean of the bin values and its standard error,
// population standard deviation over sqrt(N_bins).
func Aggregate(bins []float64) (mean, stderr float64) {
	if len(bins) == 0 {
		return math.NaN(), math.NaN()
	}
	mean, std := stat.PopMeanStdDev(bins, nil)
	return mean, stat.StdErr(std, float64(len(bins)))
}
