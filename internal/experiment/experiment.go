package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/episim/internal/epi"
	"github.com/san-kum/episim/internal/sim"
)

type Config struct {
	Model      string
	Integrator string
	InitState  []float64
	TStart     float64
	TEnd       float64
	Interval   float64
	Tolerance  float64
	Params     map[string]float64
}

// Experiment runs one configured scenario and keeps the solver around so
// metric values can be read after the run.
type Experiment struct {
	cfg    Config
	solver *sim.Solver
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys epi.System, integ epi.Integrator, ms []epi.Metric) error {
	e.solver = sim.New(sys, integ)
	for _, m := range ms {
		e.solver.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*epi.Trajectory, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	grid, err := sim.Grid(e.cfg.TStart, e.cfg.TEnd, e.cfg.Interval)
	if err != nil {
		return nil, err
	}

	opts := sim.DefaultOptions()
	if e.cfg.Tolerance > 0 {
		opts.Tolerance = e.cfg.Tolerance
	}

	x0 := make(epi.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	return e.solver.Solve(ctx, x0, grid, opts)
}

func (e *Experiment) Metrics() map[string]float64 {
	if e.solver == nil {
		return nil
	}
	return e.solver.Metrics()
}
