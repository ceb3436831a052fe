package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epi"
)

// Grid builds an evenly spaced time grid from t0 to tEnd inclusive.
func Grid(t0, tEnd, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %v", epi.ErrInvalidTimeGrid, dt)
	}
	if tEnd <= t0 {
		return nil, fmt.Errorf("%w: end %v must be after start %v", epi.ErrInvalidTimeGrid, tEnd, t0)
	}
	n := int(math.Floor((tEnd-t0)/dt+1e-9)) + 1
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = t0 + float64(i)*dt
	}
	return ts, nil
}

func validateGrid(grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: empty", epi.ErrInvalidTimeGrid)
	}
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			return fmt.Errorf("%w: not strictly increasing at index %d (%v -> %v)",
				epi.ErrInvalidTimeGrid, i, grid[i-1], grid[i])
		}
	}
	return nil
}
