package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epi"
	"github.com/san-kum/episim/internal/integrators"
)

type Options struct {
	// Tolerance is the local error tolerance for adaptive integrators.
	Tolerance float64
	// InitialStep seeds the internal step size; the integrator adjusts it.
	InitialStep float64
	// MinStep aborts the solve when the adaptive step shrinks below it.
	MinStep float64
	MaxStep float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:   1e-8,
		InitialStep: 0.1,
		MinStep:     1e-10,
		MaxStep:     10.0,
	}
}

// Solver integrates a compartmental system over a caller-supplied time
// grid. Internal sub-steps are solver-chosen; output states land exactly
// on the requested grid points. Not safe for concurrent use.
type Solver struct {
	sys       epi.System
	integ     epi.Integrator
	metrics   []epi.Metric
	observers []epi.Observer
}

func New(sys epi.System, integ epi.Integrator) *Solver {
	return &Solver{
		sys:       sys,
		integ:     integ,
		metrics:   make([]epi.Metric, 0),
		observers: make([]epi.Observer, 0),
	}
}

func (s *Solver) AddMetric(m epi.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o epi.Observer) { s.observers = append(s.observers, o) }

// Solve integrates from grid[0], where x0 holds, to the last grid point.
// The trajectory has one state per grid point, in grid order. On any
// failure no partial trajectory is returned.
func (s *Solver) Solve(ctx context.Context, x0 epi.State, grid []float64, opts Options) (*epi.Trajectory, error) {
	if err := s.validateState(x0); err != nil {
		return nil, err
	}
	if err := validateGrid(grid); err != nil {
		return nil, err
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	traj := &epi.Trajectory{
		Times:  make([]float64, 0, len(grid)),
		States: make([]epi.State, 0, len(grid)),
	}

	x := x0.Clone()
	s.record(traj, x, grid[0])

	dt := opts.InitialStep
	for i := 1; i < len(grid); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var err error
		x, dt, err = s.advance(x, grid[i-1], grid[i], dt, opts)
		if err != nil {
			return nil, &epi.SolveError{Step: i, Time: grid[i], Wrapped: err}
		}
		s.record(traj, x, grid[i])
	}

	return traj, nil
}

// Metrics returns the value of every attached metric after a solve.
func (s *Solver) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// advance integrates one grid interval, clamping each internal step so the
// last one lands exactly on target.
func (s *Solver) advance(x epi.State, t, target, dt float64, opts Options) (epi.State, float64, error) {
	adaptive, isAdaptive := s.integ.(epi.AdaptiveIntegrator)

	for t < target {
		remaining := target - t
		h := math.Min(dt, remaining)

		if isAdaptive {
			xNew, taken, next, err := adaptive.StepAdaptive(s.sys, x, t, h, opts.MinStep, opts.Tolerance)
			if err != nil {
				return nil, 0, err
			}
			x = xNew
			t += taken
			dt = math.Min(next, opts.MaxStep)
		} else {
			xNew, err := s.integ.Step(s.sys, x, t, h)
			if err != nil {
				return nil, 0, err
			}
			x = xNew
			t += h
		}

		if !x.IsValid() {
			return nil, 0, epi.ErrIntegration
		}
		// Absorb float residue so the loop terminates on the grid point.
		if target-t < 1e-12*math.Max(1, math.Abs(target)) {
			t = target
		}
	}

	return x, dt, nil
}

func (s *Solver) record(traj *epi.Trajectory, x epi.State, t float64) {
	traj.Times = append(traj.Times, t)
	traj.States = append(traj.States, x.Clone())

	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, o := range s.observers {
		o.OnStep(x, t)
	}
}

func (s *Solver) validateState(x0 epi.State) error {
	if len(x0) != s.sys.Dim() {
		return fmt.Errorf("%w: initial state has %d compartments, model needs %d",
			epi.ErrInvalidParameter, len(x0), s.sys.Dim())
	}
	if !x0.IsValid() {
		return fmt.Errorf("%w: initial state contains NaN/Inf", epi.ErrInvalidParameter)
	}
	for i, v := range x0 {
		if v < 0 {
			return fmt.Errorf("%w: compartment %s is negative (%v)",
				epi.ErrInvalidParameter, s.sys.Labels()[i], v)
		}
	}
	return nil
}

func validateOptions(opts Options) error {
	if opts.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive", epi.ErrInvalidParameter)
	}
	if opts.InitialStep <= 0 || opts.MinStep <= 0 || opts.MaxStep <= 0 {
		return fmt.Errorf("%w: step sizes must be positive", epi.ErrInvalidParameter)
	}
	return nil
}

// Simulate is the one-call surface: build the grid, solve with the default
// adaptive integrator, return the trajectory.
func Simulate(ctx context.Context, sys epi.System, x0 epi.State, t0, tEnd, dt float64) (*epi.Trajectory, error) {
	grid, err := Grid(t0, tEnd, dt)
	if err != nil {
		return nil, err
	}
	return New(sys, integrators.NewRK45()).Solve(ctx, x0, grid, DefaultOptions())
}
