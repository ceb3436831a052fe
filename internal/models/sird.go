package models

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epi"
)

// SIRD splits removals into recovered and dead. The sum of all four
// compartments is still conserved; D only accumulates.
// State: [S, I, R, D].
type SIRD struct {
	beta  float64
	gamma float64
	mu    float64 // infection fatality rate
}

func NewSIRD(beta, gamma, mu float64) (*SIRD, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"beta", beta}, {"gamma", gamma}, {"mu", mu}} {
		if err := checkRate(p.name, p.v); err != nil {
			return nil, err
		}
	}
	return &SIRD{beta: beta, gamma: gamma, mu: mu}, nil
}

func (m *SIRD) Dim() int         { return 4 }
func (m *SIRD) Labels() []string { return []string{"S", "I", "R", "D"} }

func (m *SIRD) Derive(x epi.State, _ float64) epi.State {
	inf := m.beta * x[0] * x[1]
	rec := m.gamma * x[1]
	die := m.mu * x[1]
	return epi.State{-inf, inf - rec - die, rec, die}
}

func (m *SIRD) DefaultState() epi.State {
	return epi.State{1.0, 1.27e-6, 0.0, 0.0}
}

// R0 is beta over the total removal rate gamma+mu.
func (m *SIRD) R0() float64 {
	if m.gamma+m.mu == 0 {
		return math.Inf(1)
	}
	return m.beta / (m.gamma + m.mu)
}

func (m *SIRD) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.beta, "gamma": m.gamma, "mu": m.mu}
}

func (m *SIRD) SetParam(name string, value float64) error {
	if err := checkRate(name, value); err != nil {
		return err
	}
	switch name {
	case "beta":
		m.beta = value
	case "gamma":
		m.gamma = value
	case "mu":
		m.mu = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", epi.ErrInvalidParameter, name)
	}
	return nil
}
