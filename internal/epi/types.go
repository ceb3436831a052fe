package epi

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total population across all compartments.
func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a compartmental ODE model. Derive must be pure: integrators
// evaluate it at arbitrary intermediate times and states between output
// points.
type System interface {
	Derive(x State, t float64) State
	Dim() int
	Labels() []string
}

// Configurable allows runtime parameter inspection and adjustment.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) (State, error)
}

// AdaptiveIntegrator refines its own internal step size until a local
// error tolerance is met. StepAdaptive reports both the step it actually
// took (<= dt) and a suggested size for the next one.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, minDt, tol float64) (xNew State, taken, next float64, err error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Trajectory is the solved state sequence over a time grid. Times is
// strictly increasing and len(Times) == len(States). A trajectory is
// produced fresh per solve and is read-only output.
type Trajectory struct {
	Times  []float64
	States []State
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) Final() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Series extracts one compartment as a flat slice, aligned with Times.
func (tr *Trajectory) Series(idx int) []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}

// Renderer consumes a trajectory for display. Implementations decide the
// medium (terminal plot, image file); the numerical core never renders.
type Renderer interface {
	Render(tr *Trajectory, labels []string) error
}
