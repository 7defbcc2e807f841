package ui

import (
	"math"
	"strconv"

	"ising-mc/internal/core"
)

// control is one adjustable parameter as shown on the HUD.
type control struct {
	def   core.ParameterControl
	value float64
	known bool
	text  string
}

func newControls(sim core.Sim) []control {
	provider, ok := sim.(core.ParameterControlsProvider)
	if !ok {
		return nil
	}
	defs := provider.ParameterControls()
	out := make([]control, len(defs))
	for i, d := range defs {
		out[i] = control{def: d, text: "--"}
	}
	return out
}

// refresh reads the current values from the simulation's parameter snapshot.
func refresh(sim core.Sim, controls []control) {
	provider, ok := sim.(core.ParameterProvider)
	if !ok {
		return
	}
	snap := provider.Parameters()
	for i := range controls {
		c := &controls[i]
		c.known = false
		c.text = "--"
		p, ok := snap.Lookup(c.def.Key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			continue
		}
		c.value, c.known = v, true
		c.text = formatValue(c.def, v)
	}
}

// target returns the value one step in direction dir, clamped to the control
// bounds, and whether it differs from the current value.
func (c *control) target(dir int) (float64, bool) {
	if !c.known || dir == 0 {
		return c.value, false
	}
	step := c.def.Step
	if step <= 0 {
		step = 1
		if c.def.Type == core.ParamTypeFloat {
			step = 0.05
		}
	}
	v := c.def.Clamp(c.value + float64(dir)*step)
	if c.def.Type == core.ParamTypeInt {
		v = math.Round(v)
	}
	return v, math.Abs(v-c.value) > 1e-9
}

// adjust moves the control one step through the simulation's setters.
func (c *control) adjust(sim core.Sim, dir int) bool {
	v, ok := c.target(dir)
	if !ok {
		return false
	}
	switch c.def.Type {
	case core.ParamTypeInt:
		s, ok := sim.(core.IntParameterSetter)
		if !ok || !s.SetIntParameter(c.def.Key, int(v)) {
			return false
		}
	case core.ParamTypeFloat:
		s, ok := sim.(core.FloatParameterSetter)
		if !ok || !s.SetFloatParameter(c.def.Key, v) {
			return false
		}
	default:
		return false
	}
	c.value = v
	c.text = formatValue(c.def, v)
	return true
}

func formatValue(def core.ParameterControl, v float64) string {
	if def.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case def.Step < 0.001:
		precision = 4
	case def.Step < 0.01:
		precision = 3
	case def.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
