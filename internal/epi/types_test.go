package epi

import (
	"errors"
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1.0, 0.5, 0.0}
	c := s.Clone()
	c[0] = 99

	if s[0] != 1.0 {
		t.Error("clone should not share backing array")
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{1, 2, 3}, true},
		{"empty", State{}, true},
		{"nan", State{1, math.NaN()}, false},
		{"inf", State{math.Inf(1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateSum(t *testing.T) {
	s := State{0.7, 0.2, 0.1}
	if math.Abs(s.Sum()-1.0) > 1e-15 {
		t.Errorf("expected sum 1.0, got %v", s.Sum())
	}
}

func TestTrajectorySeries(t *testing.T) {
	traj := &Trajectory{
		Times:  []float64{0, 1, 2},
		States: []State{{1, 0}, {0.9, 0.1}, {0.8, 0.2}},
	}

	s := traj.Series(1)
	if len(s) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(s))
	}
	if s[2] != 0.2 {
		t.Errorf("expected 0.2, got %v", s[2])
	}

	final := traj.Final()
	if final[0] != 0.8 {
		t.Errorf("expected final S 0.8, got %v", final[0])
	}
}

func TestTrajectoryFinalEmpty(t *testing.T) {
	traj := &Trajectory{}
	if traj.Final() != nil {
		t.Error("expected nil final state for empty trajectory")
	}
}

func TestSolveErrorUnwrap(t *testing.T) {
	err := &SolveError{Step: 3, Time: 2.5, Wrapped: ErrIntegration}

	if !errors.Is(err, ErrIntegration) {
		t.Error("SolveError should unwrap to ErrIntegration")
	}
	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}
}
