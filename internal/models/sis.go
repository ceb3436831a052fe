package models

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epi"
)

// SIS models diseases without lasting immunity: recovery returns
// individuals to the susceptible pool. For R0 > 1 the infected fraction
// approaches the endemic equilibrium 1 - 1/R0.
// State: [S, I].
type SIS struct {
	beta  float64
	gamma float64
}

func NewSIS(beta, gamma float64) (*SIS, error) {
	if err := checkRate("beta", beta); err != nil {
		return nil, err
	}
	if err := checkRate("gamma", gamma); err != nil {
		return nil, err
	}
	return &SIS{beta: beta, gamma: gamma}, nil
}

func (m *SIS) Dim() int         { return 2 }
func (m *SIS) Labels() []string { return []string{"S", "I"} }

func (m *SIS) Derive(x epi.State, _ float64) epi.State {
	inf := m.beta * x[0] * x[1]
	rec := m.gamma * x[1]
	return epi.State{rec - inf, inf - rec}
}

func (m *SIS) DefaultState() epi.State {
	return epi.State{1.0, 1.27e-6}
}

func (m *SIS) R0() float64 {
	if m.gamma == 0 {
		return math.Inf(1)
	}
	return m.beta / m.gamma
}

func (m *SIS) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.beta, "gamma": m.gamma}
}

func (m *SIS) SetParam(name string, value float64) error {
	if err := checkRate(name, value); err != nil {
		return err
	}
	switch name {
	case "beta":
		m.beta = value
	case "gamma":
		m.gamma = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", epi.ErrInvalidParameter, name)
	}
	return nil
}
