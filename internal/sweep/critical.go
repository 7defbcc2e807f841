package sweep

import "math"

// CriticalEstimate locates the transition on a measured curve. For the
// specific heat it is the temperature of the peak; for magnetization the
// midpoint of the steepest fall of |mean|; for energy the midpoint of the
// steepest rise. ok is false when the curve is too short.
func (c Curve) CriticalEstimate(s Statistic) (t float64, ok bool) {
	pts := c.Points
	if s == SpecificHeat {
		best := -1
		for i, p := range pts {
			if math.IsNaN(p.Mean) {
				continue
			}
			if best < 0 || p.Mean > pts[best].Mean {
				best = i
			}
		}
		if best < 0 {
			return 0, false
		}
		return pts[best].T, true
	}

	if len(pts) < 2 {
		return 0, false
	}
	bestSlope := math.Inf(-1)
	for i := 1; i < len(pts); i++ {
		dT := pts[i].T - pts[i-1].T
		if dT <= 0 {
			continue
		}
		var slope float64
		switch s {
		case EnergyPerSite:
			slope = (pts[i].Mean - pts[i-1].Mean) / dT
		default:
			slope = (math.Abs(pts[i-1].Mean) - math.Abs(pts[i].Mean)) / dT
		}
		if math.IsNaN(slope) {
			continue
		}
		if slope > bestSlope {
			bestSlope = slope
			t = (pts[i].T + pts[i-1].T) / 2
			ok = true
		}
	}
	return t, ok
}
