package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/episim/internal/epi"
	"github.com/san-kum/episim/internal/models"
	"github.com/san-kum/episim/internal/sim"
)

func syntheticExponential(r float64, n int) *epi.Trajectory {
	traj := &epi.Trajectory{
		Times:  make([]float64, n),
		States: make([]epi.State, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i)
		traj.Times[i] = t
		traj.States[i] = epi.State{1.0, 1e-6 * math.Exp(r*t)}
	}
	return traj
}

func TestGrowthRateSynthetic(t *testing.T) {
	traj := syntheticExponential(0.25, 40)

	r, err := GrowthRate(traj, 1, 20)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r, 1e-9)
}

func TestGrowthRateSIR(t *testing.T) {
	// Early in an SIR epidemic with S ~ 1, I grows at beta - gamma.
	m, err := models.NewSIR(0.5, 1.0/3.0)
	require.NoError(t, err)

	traj, err := sim.Simulate(context.Background(), m, m.DefaultState(), 0, 40, 1)
	require.NoError(t, err)

	r, err := GrowthRate(traj, 1, 15)
	require.NoError(t, err)
	assert.InDelta(t, 0.5-1.0/3.0, r, 5e-3)
}

func TestGrowthRateErrors(t *testing.T) {
	traj := syntheticExponential(0.1, 5)

	_, err := GrowthRate(traj, 1, 1)
	assert.Error(t, err)

	_, err = GrowthRate(traj, 1, 10)
	assert.Error(t, err)

	// All-zero infected compartment cannot be fitted.
	zero := &epi.Trajectory{
		Times:  []float64{0, 1, 2},
		States: []epi.State{{1, 0}, {1, 0}, {1, 0}},
	}
	_, err = GrowthRate(zero, 1, 3)
	assert.Error(t, err)
}

func TestFindPeak(t *testing.T) {
	traj := &epi.Trajectory{
		Times:  []float64{0, 1, 2, 3},
		States: []epi.State{{0, 0.1}, {0, 0.4}, {0, 0.3}, {0, 0.05}},
	}

	peakT, peakV := FindPeak(traj, 1)
	assert.Equal(t, 1.0, peakT)
	assert.Equal(t, 0.4, peakV)
}

func TestHerdImmunityThreshold(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, HerdImmunityThreshold(1.5), 1e-12)
	assert.InDelta(t, 0.75, HerdImmunityThreshold(4), 1e-12)
	assert.Equal(t, 0.0, HerdImmunityThreshold(0.9))
	assert.Equal(t, 0.0, HerdImmunityThreshold(1.0))
}

func TestEffectiveR(t *testing.T) {
	// The infected curve peaks where R_eff crosses 1, i.e. S = 1/R0.
	assert.InDelta(t, 1.0, EffectiveR(1.5, 2.0/3.0), 1e-12)
}
