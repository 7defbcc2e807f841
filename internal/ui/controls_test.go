package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/sims/ising"
)

func TestControlsFollowWorld(t *testing.T) {
	w := ising.NewWithConfig(ising.Config{Size: 8, Temperature: 2, Seed: 3})
	ctrls := newControls(w)
	require.Len(t, ctrls, 2)
	refresh(w, ctrls)

	temp, flips := &ctrls[0], &ctrls[1]
	assert.True(t, temp.known)
	assert.Equal(t, "2.00", temp.text)
	assert.Equal(t, "64", flips.text)

	require.True(t, temp.adjust(w, 1))
	assert.InDelta(t, 2.05, w.Config().Temperature, 1e-9)
	assert.InDelta(t, 2.05, w.Chain().Temperature(), 1e-9)
	assert.Equal(t, "2.05", temp.text)

	require.True(t, flips.adjust(w, -1))
	assert.Equal(t, 56, w.Config().StepsPerTick)
}

func TestControlsClampAtBounds(t *testing.T) {
	w := ising.NewWithConfig(ising.Config{Size: 8, Temperature: 2, Seed: 3, StepsPerTick: 1})
	ctrls := newControls(w)
	refresh(w, ctrls)

	flips := &ctrls[1]
	_, moved := flips.target(-1)
	assert.False(t, moved)
	assert.False(t, flips.adjust(w, -1))
	assert.Equal(t, 1, w.Config().StepsPerTick)

	require.True(t, w.SetFloatParameter("temperature", 0.05))
	refresh(w, ctrls)
	assert.False(t, ctrls[0].adjust(w, -1))
}

func TestControlsUnknownBeforeRefresh(t *testing.T) {
	w := ising.New(8)
	ctrls := newControls(w)
	assert.Equal(t, "--", ctrls[0].text)
	assert.False(t, ctrls[0].adjust(w, 1))
}

func TestHistoryRing(t *testing.T) {
	h := NewHistory(3)
	assert.Empty(t, h.Values())
	h.Push(1)
	h.Push(2)
	assert.Equal(t, []float64{1, 2}, h.Values())
	h.Push(3)
	h.Push(4)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{2, 3, 4}, h.Values())
	h.Clear()
	assert.Zero(t, h.Len())
}
