package models

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epi"
)

// SEIR adds an exposed compartment: infected individuals are latent for
// 1/sigma days before becoming infectious.
// State: [S, E, I, R].
// Equations:
//
//	dS/dt = -beta*S*I
//	dE/dt =  beta*S*I - sigma*E
//	dI/dt =  sigma*E - gamma*I
//	dR/dt =  gamma*I
type SEIR struct {
	beta  float64
	sigma float64 // incubation rate (1/latent period)
	gamma float64
}

func NewSEIR(beta, sigma, gamma float64) (*SEIR, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"beta", beta}, {"sigma", sigma}, {"gamma", gamma}} {
		if err := checkRate(p.name, p.v); err != nil {
			return nil, err
		}
	}
	return &SEIR{beta: beta, sigma: sigma, gamma: gamma}, nil
}

func (m *SEIR) Dim() int         { return 4 }
func (m *SEIR) Labels() []string { return []string{"S", "E", "I", "R"} }

func (m *SEIR) Derive(x epi.State, _ float64) epi.State {
	inf := m.beta * x[0] * x[2]
	act := m.sigma * x[1]
	rec := m.gamma * x[2]
	return epi.State{-inf, inf - act, act - rec, rec}
}

func (m *SEIR) DefaultState() epi.State {
	return epi.State{1.0, 0.0, 1.27e-6, 0.0}
}

func (m *SEIR) R0() float64 {
	if m.gamma == 0 {
		return math.Inf(1)
	}
	return m.beta / m.gamma
}

func (m *SEIR) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.beta, "sigma": m.sigma, "gamma": m.gamma}
}

func (m *SEIR) SetParam(name string, value float64) error {
	if err := checkRate(name, value); err != nil {
		return err
	}
	switch name {
	case "beta":
		m.beta = value
	case "sigma":
		m.sigma = value
	case "gamma":
		m.gamma = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", epi.ErrInvalidParameter, name)
	}
	return nil
}
