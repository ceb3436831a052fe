package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/episim/internal/epi"
)

func TestConservationDrift(t *testing.T) {
	m := NewConservationDrift()

	m.Observe(epi.State{1.0, 0.0, 0.0}, 0)
	m.Observe(epi.State{0.7, 0.2, 0.1}, 1)
	m.Observe(epi.State{0.5, 0.3, 0.2}, 2)

	if m.Value() > 1e-15 {
		t.Errorf("conserved states should give ~0 drift, got %v", m.Value())
	}

	m.Observe(epi.State{0.5, 0.3, 0.3}, 3) // sum 1.1
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected drift 0.1, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear drift")
	}
}

func TestPeakInfection(t *testing.T) {
	m := NewPeakInfection(1)

	m.Observe(epi.State{0.9, 0.1, 0.0}, 0)
	m.Observe(epi.State{0.6, 0.3, 0.1}, 5)
	m.Observe(epi.State{0.4, 0.2, 0.4}, 10)

	if m.Value() != 0.3 {
		t.Errorf("expected peak 0.3, got %v", m.Value())
	}
	if m.PeakTime() != 5 {
		t.Errorf("expected peak time 5, got %v", m.PeakTime())
	}
}

func TestAttackRate(t *testing.T) {
	m := NewAttackRate(0)

	m.Observe(epi.State{1.0, 0.0, 0.0}, 0)
	m.Observe(epi.State{0.4, 0.1, 0.5}, 100)

	if math.Abs(m.Value()-0.6) > 1e-12 {
		t.Errorf("expected attack rate 0.6, got %v", m.Value())
	}
}

func TestDuration(t *testing.T) {
	m := NewDuration(1, 0.01)

	m.Observe(epi.State{1.0, 0.001, 0}, 0)
	m.Observe(epi.State{0.9, 0.05, 0.05}, 10)
	m.Observe(epi.State{0.5, 0.2, 0.3}, 30)
	m.Observe(epi.State{0.4, 0.005, 0.6}, 60)

	if m.Value() != 20 {
		t.Errorf("expected duration 20, got %v", m.Value())
	}
}

func TestDurationNeverAbove(t *testing.T) {
	m := NewDuration(1, 0.5)
	m.Observe(epi.State{1.0, 0.001, 0}, 0)

	if m.Value() != 0 {
		t.Errorf("expected 0 when threshold never reached, got %v", m.Value())
	}
}
