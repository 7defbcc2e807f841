package ising

import (
	"strconv"

	"ising-mc/internal/core"
)

const (
	minViewerTemperature = 0.05
	maxViewerTemperature = 10.0
	maxStepsPerTick      = 1 << 22
)

// Parameters returns the current parameter snapshot for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("size", "Size", w.cfg.Size),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				floatParam("temperature", "Temperature", w.cfg.Temperature),
				intParam("steps_per_tick", "Flips per tick", w.stepsPerTick()),
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:    "temperature",
			Label:  "Temperature",
			Type:   core.ParamTypeFloat,
			Step:   0.05,
			Min:    minViewerTemperature,
			Max:    maxViewerTemperature,
			HasMin: true,
			HasMax: true,
		},
		{
			Key:    "steps_per_tick",
			Label:  "Flips per tick",
			Type:   core.ParamTypeInt,
			Step:   float64(w.cfg.Size),
			Min:    1,
			Max:    maxStepsPerTick,
			HasMin: true,
			HasMax: true,
		},
	}
}

// SetFloatParameter updates a floating point parameter, clamping to the
// control bounds. It reports whether key was recognized.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "temperature":
		if value < minViewerTemperature {
			value = minViewerTemperature
		}
		if value > maxViewerTemperature {
			value = maxViewerTemperature
		}
		if err := w.chain.SetTemperature(value); err != nil {
			return false
		}
		w.cfg.Temperature = value
		return true
	}
	return false
}

// SetIntParameter updates an integer parameter, clamping to the control
// bounds. It reports whether key was recognized.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "steps_per_tick":
		if value < 1 {
			value = 1
		}
		if value > maxStepsPerTick {
			value = maxStepsPerTick
		}
		w.cfg.StepsPerTick = value
		return true
	}
	return false
}

func (w *World) stepsPerTick() int {
	if w.cfg.StepsPerTick == 0 {
		return w.lat.Sites()
	}
	return w.cfg.StepsPerTick
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
