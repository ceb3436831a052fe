package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/episim/internal/epi"
)

// GrowthRate estimates the early exponential growth rate r of the
// infected compartment by least-squares fitting ln I(t) over the first
// window points. For SIR with S≈1 the theoretical value is beta-gamma.
func GrowthRate(traj *epi.Trajectory, infectedIdx, window int) (float64, error) {
	if window < 2 {
		return 0, fmt.Errorf("growth window must have at least 2 points, got %d", window)
	}
	if traj.Len() < window {
		return 0, fmt.Errorf("trajectory has %d points, window needs %d", traj.Len(), window)
	}

	ts := make([]float64, 0, window)
	logs := make([]float64, 0, window)
	for i := 0; i < window; i++ {
		v := traj.States[i][infectedIdx]
		if v <= 0 {
			continue
		}
		ts = append(ts, traj.Times[i])
		logs = append(logs, math.Log(v))
	}
	if len(ts) < 2 {
		return 0, fmt.Errorf("infected compartment not positive over the window")
	}

	_, slope := stat.LinearRegression(ts, logs, nil, false)
	return slope, nil
}

// FindPeak returns the time and value of the maximum of one compartment.
func FindPeak(traj *epi.Trajectory, idx int) (float64, float64) {
	peakT, peakV := 0.0, math.Inf(-1)
	for i, s := range traj.States {
		if idx < len(s) && s[idx] > peakV {
			peakV = s[idx]
			peakT = traj.Times[i]
		}
	}
	return peakT, peakV
}
