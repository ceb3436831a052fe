package integrators

import "github.com/san-kum/episim/internal/epi"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys epi.System, x epi.State, t, dt float64) (epi.State, error) {
	dx := sys.Derive(x, t)
	if !dx.IsValid() {
		return nil, epi.ErrIntegration
	}
	result := make(epi.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result, nil
}
