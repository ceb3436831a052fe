package sim

import (
	"context"
	"sync"

	"github.com/san-kum/episim/internal/epi"
)

// Sweep solves the same scenario once per parameter value, fanning the
// runs out across goroutines. build must return a fresh system per value;
// solvers are never shared. Results are ordered like values; the first
// run error aborts the sweep.
func Sweep(ctx context.Context, values []float64, build func(v float64) (epi.System, epi.State, error), grid []float64, opts Options, integ func() epi.Integrator) ([]*epi.Trajectory, error) {
	results := make([]*epi.Trajectory, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()

			sys, x0, err := build(val)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = New(sys, integ()).Solve(ctx, x0, grid, opts)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
