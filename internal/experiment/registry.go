package experiment

import (
	"fmt"

	"github.com/san-kum/episim/internal/epi"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/models"
)

type Registry struct {
	models      map[string]func(params map[string]float64) (epi.System, error)
	integrators map[string]func() epi.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(map[string]float64) (epi.System, error)),
		integrators: make(map[string]func() epi.Integrator),
	}

	r.models["sir"] = func(p map[string]float64) (epi.System, error) {
		return models.NewSIR(p["beta"], p["gamma"])
	}
	r.models["seir"] = func(p map[string]float64) (epi.System, error) {
		return models.NewSEIR(p["beta"], p["sigma"], p["gamma"])
	}
	r.models["sis"] = func(p map[string]float64) (epi.System, error) {
		return models.NewSIS(p["beta"], p["gamma"])
	}
	r.models["sird"] = func(p map[string]float64) (epi.System, error) {
		return models.NewSIRD(p["beta"], p["gamma"], p["mu"])
	}

	r.integrators["euler"] = func() epi.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() epi.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() epi.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetModel(name string, params map[string]float64) (epi.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetIntegrator(name string) (epi.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics wires the standard epidemic summaries for a model,
// pointing each at the right compartment index.
func (r *Registry) DefaultMetrics(model string) []epi.Metric {
	infectedIdx := 1
	if model == "seir" {
		infectedIdx = 2
	}

	return []epi.Metric{
		metrics.NewConservationDrift(),
		metrics.NewPeakInfection(infectedIdx),
		metrics.NewAttackRate(0),
		metrics.NewDuration(infectedIdx, 1e-4),
	}
}
