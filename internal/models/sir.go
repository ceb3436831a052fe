package models

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epi"
)

// SIR implements the Kermack-McKendrick SIR model.
// State: [S, I, R] as population fractions.
// Equations:
//
//	dS/dt = -beta*S*I
//	dI/dt =  beta*S*I - gamma*I
//	dR/dt =  gamma*I
type SIR struct {
	beta  float64 // transmission rate
	gamma float64 // recovery rate
}

// NewSIR constructs an SIR model. Both rates must be non-negative;
// gamma = 0 is allowed and means permanent infection.
func NewSIR(beta, gamma float64) (*SIR, error) {
	if err := checkRate("beta", beta); err != nil {
		return nil, err
	}
	if err := checkRate("gamma", gamma); err != nil {
		return nil, err
	}
	return &SIR{beta: beta, gamma: gamma}, nil
}

// DefaultSIR returns the model with beta=0.5, gamma=1/3, the textbook
// influenza-like configuration.
func DefaultSIR() *SIR {
	return &SIR{beta: 0.5, gamma: 1.0 / 3.0}
}

func (m *SIR) Dim() int         { return 3 }
func (m *SIR) Labels() []string { return []string{"S", "I", "R"} }

func (m *SIR) Derive(x epi.State, _ float64) epi.State {
	inf := m.beta * x[0] * x[1]
	rec := m.gamma * x[1]
	return epi.State{-inf, inf - rec, rec}
}

// DefaultState seeds a fully susceptible population with a trace infection
// (1.27e-6, roughly one case in a city of 790k).
func (m *SIR) DefaultState() epi.State {
	return epi.State{1.0, 1.27e-6, 0.0}
}

// R0 returns the basic reproduction number beta/gamma. It is +Inf when
// gamma is zero.
func (m *SIR) R0() float64 {
	if m.gamma == 0 {
		return math.Inf(1)
	}
	return m.beta / m.gamma
}

func (m *SIR) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.beta, "gamma": m.gamma}
}

func (m *SIR) SetParam(name string, value float64) error {
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

func checkRate(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", epi.ErrInvalidParameter, name, v)
	}
	return nil
}
