package ising

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/pkg/rng"
)

func checkerboard(t *testing.T, l int) *Lattice {
	t.Helper()
	lat, err := NewUniform(l, 1)
	require.NoError(t, err)
	for i := 0; i < l; i++ {
		for j := 0; j < l; j++ {
			if (i+j)%2 == 1 {
				lat.Flip(i, j)
			}
		}
	}
	return lat
}

func TestPrepareSystemSpins(t *testing.T) {
	lat, err := PrepareSystem(32, rng.New(11))
	require.NoError(t, err)
	assert.Equal(t, 32, lat.L())
	assert.Len(t, lat.Cells(), 32*32)
	assert.True(t, lat.Valid(), "every spin must be +1 or -1")
}

func TestPrepareSystemUnbiased(t *testing.T) {
	lat, err := PrepareSystem(200, rng.New(5))
	require.NoError(t, err)
	assert.InDelta(t, 0, MeasureMagnetization(lat), 0.03)
}

func TestPrepareSystemRejectsSize(t *testing.T) {
	for _, l := range []int{0, -3} {
		_, err := PrepareSystem(l, rng.New(1))
		require.ErrorIs(t, err, ErrInvalidParameter)

		var pe *ParamError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "L", pe.Field)
	}
}

func TestNewUniformRejectsSpin(t *testing.T) {
	_, err := NewUniform(4, 0)
	assert.ErrorIs(t, err, ErrInvalidSpin)
	_, err = NewUniform(4, 2)
	assert.ErrorIs(t, err, ErrInvalidSpin)
}

func TestMeasureMagnetizationOrdered(t *testing.T) {
	up, err := NewUniform(6, 1)
	require.NoError(t, err)
	down, err := NewUniform(6, -1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, MeasureMagnetization(up))
	assert.Equal(t, -1.0, MeasureMagnetization(down))
	assert.Equal(t, 0.0, MeasureMagnetization(checkerboard(t, 6)))
}

func TestEnergyOrderedAndCheckerboard(t *testing.T) {
	const l = 8
	up, err := NewUniform(l, 1)
	require.NoError(t, err)
	assert.Equal(t, -4.0, Energy(up, 3, 5))
	assert.Equal(t, -2.0*l*l, MeasureEnergy(up))

	cb := checkerboard(t, l)
	assert.Equal(t, 4.0, Energy(cb, 0, 0))
	assert.Equal(t, 2.0*l*l, MeasureEnergy(cb))
}

func TestEnergyPeriodicNeighbors(t *testing.T) {
	lat, err := NewUniform(3, 1)
	require.NoError(t, err)
	lat.Flip(0, 0)

	assert.Equal(t, 4.0, Energy(lat, 0, 0), "flipped spin against four aligned neighbors")
	// (2,0) sees (0,0) through the top/bottom wrap.
	assert.Equal(t, -2.0, Energy(lat, 2, 0))
	// (0,2) sees (0,0) through the left/right wrap.
	assert.Equal(t, -2.0, Energy(lat, 0, 2))
	// Out-of-range coordinates wrap as well.
	assert.Equal(t, Energy(lat, 0, 0), Energy(lat, 3, -3))
}

func TestMeasureEnergyMatchesBondCount(t *testing.T) {
	lat, err := PrepareSystem(10, rng.New(77))
	require.NoError(t, err)

	// Count each right and down bond exactly once.
	var bonds float64
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			s := float64(lat.At(i, j))
			bonds -= s * float64(lat.At(i+1, j))
			bonds -= s * float64(lat.At(i, j+1))
		}
	}
	assert.Equal(t, bonds, MeasureEnergy(lat))
}

func TestCriticalTemperature(t *testing.T) {
	assert.InDelta(t, 2.269185, CriticalTemperature, 1e-6)
	assert.InDelta(t, 2/math.Log(1+math.Sqrt(2)), CriticalTemperature, 1e-15)
}
