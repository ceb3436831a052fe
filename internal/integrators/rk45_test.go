package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/episim/internal/epi"
)

type badSystem struct{}

func (b *badSystem) Dim() int         { return 1 }
func (b *badSystem) Labels() []string { return []string{"x"} }

func (b *badSystem) Derive(x epi.State, t float64) epi.State {
	return epi.State{math.NaN()}
}

func TestRK45_Step(t *testing.T) {
	integ := NewRK45()
	sys := &decay{k: 1.0 / 3.0}

	x := epi.State{1.0}
	dt := 0.1

	for i := 0; i < 100; i++ {
		var err error
		x, err = integ.Step(sys, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_StepAdaptive(t *testing.T) {
	integ := NewRK45()
	sys := &decay{k: 0.5}
	x0 := epi.State{1.0}

	x, taken, next, err := integ.StepAdaptive(sys, x0, 0, 0.5, 1e-10, 1e-8)

	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if taken <= 0 || taken > 0.5 {
		t.Errorf("taken step out of range: %f", taken)
	}
	if next <= 0 {
		t.Errorf("StepAdaptive returned invalid next dt: %f", next)
	}

	// The accepted step must match the closed form to within tolerance.
	expected := math.Exp(-0.5 * taken)
	if math.Abs(x[0]-expected) > 1e-6 {
		t.Errorf("adaptive step inaccurate: got %.10f, expected %.10f", x[0], expected)
	}
}

func TestRK45_NonFiniteDerivative(t *testing.T) {
	integ := NewRK45()

	_, _, _, err := integ.StepAdaptive(&badSystem{}, epi.State{1.0}, 0, 0.1, 1e-10, 1e-8)
	if !errors.Is(err, epi.ErrIntegration) {
		t.Errorf("expected ErrIntegration, got %v", err)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	sys := &decay{k: 1.0}

	x4 := epi.State{1.0}
	x45 := epi.State{1.0}
	dt := 0.1

	for i := 0; i < 50; i++ {
		var err error
		x4, err = rk4.Step(sys, x4, float64(i)*dt, dt)
		if err != nil {
			t.Fatal(err)
		}
		x45, err = rk45.Step(sys, x45, float64(i)*dt, dt)
		if err != nil {
			t.Fatal(err)
		}
	}

	expected := math.Exp(-5.0)
	e4 := math.Abs(x4[0] - expected)
	e45 := math.Abs(x45[0] - expected)

	t.Logf("RK4 error: %e, RK45 error: %e", e4, e45)

	if e45 > 1e-6 {
		t.Errorf("RK45 error too large: %e", e45)
	}
}
