package models

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/episim/internal/epi"
)

func TestSIRDerive(t *testing.T) {
	m, err := NewSIR(0.5, 1.0/3.0)
	if err != nil {
		t.Fatal(err)
	}

	x := epi.State{0.9, 0.1, 0.0}
	dx := m.Derive(x, 0)

	wantDS := -0.5 * 0.9 * 0.1
	wantDR := (1.0 / 3.0) * 0.1
	wantDI := -wantDS - wantDR

	if math.Abs(dx[0]-wantDS) > 1e-15 {
		t.Errorf("dS = %v, want %v", dx[0], wantDS)
	}
	if math.Abs(dx[1]-wantDI) > 1e-15 {
		t.Errorf("dI = %v, want %v", dx[1], wantDI)
	}
	if math.Abs(dx[2]-wantDR) > 1e-15 {
		t.Errorf("dR = %v, want %v", dx[2], wantDR)
	}
}

func TestSIRDeriveSumZero(t *testing.T) {
	m := DefaultSIR()

	states := []epi.State{
		{1.0, 1.27e-6, 0},
		{0.5, 0.3, 0.2},
		{0.1, 0.05, 0.85},
	}

	for _, x := range states {
		dx := m.Derive(x, 0)
		sum := dx[0] + dx[1] + dx[2]
		if math.Abs(sum) > 1e-15 {
			t.Errorf("derivative sum should be 0 (closed model), got %v for state %v", sum, x)
		}
	}
}

func TestSIRInvalidParams(t *testing.T) {
	tests := []struct {
		name        string
		beta, gamma float64
	}{
		{"negative beta", -0.1, 0.3},
		{"negative gamma", 0.5, -0.3},
		{"nan beta", math.NaN(), 0.3},
		{"inf gamma", 0.5, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSIR(tt.beta, tt.gamma)
			if !errors.Is(err, epi.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestSIRZeroRecovery(t *testing.T) {
	// gamma = 0 is valid: permanent infection.
	m, err := NewSIR(0.5, 0)
	if err != nil {
		t.Fatalf("gamma=0 should be accepted: %v", err)
	}

	dx := m.Derive(epi.State{0.9, 0.1, 0}, 0)
	if dx[2] != 0 {
		t.Errorf("dR should be 0 with no recovery, got %v", dx[2])
	}
	if !math.IsInf(m.R0(), 1) {
		t.Errorf("R0 should be +Inf with gamma=0, got %v", m.R0())
	}
}

func TestSIRR0(t *testing.T) {
	m := DefaultSIR()
	if math.Abs(m.R0()-1.5) > 1e-12 {
		t.Errorf("R0 = %v, want 1.5", m.R0())
	}
}

func TestSIRSetParam(t *testing.T) {
	m := DefaultSIR()

	if err := m.SetParam("beta", 0.7); err != nil {
		t.Fatal(err)
	}
	if m.GetParams()["beta"] != 0.7 {
		t.Error("beta not updated")
	}

	if err := m.SetParam("beta", -1); !errors.Is(err, epi.ErrInvalidParameter) {
		t.Error("negative rate should be rejected")
	}
	if err := m.SetParam("bogus", 1); !errors.Is(err, epi.ErrInvalidParameter) {
		t.Error("unknown parameter should be rejected")
	}
}

func TestSIRDefaultState(t *testing.T) {
	m := DefaultSIR()
	x0 := m.DefaultState()

	if len(x0) != m.Dim() {
		t.Fatalf("default state has %d entries, model dim is %d", len(x0), m.Dim())
	}
	if x0[0] != 1.0 || x0[1] != 1.27e-6 || x0[2] != 0 {
		t.Errorf("unexpected default state: %v", x0)
	}
}
