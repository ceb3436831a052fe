// Package epi provides core primitives for deterministic compartmental
// epidemic models.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of the governing ordinary differential equations (ODEs):
//
//   - [State]: vector of compartment values (e.g. S, I, R fractions)
//   - [System]: interface for compartmental ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical integrator interface
//   - [Trajectory]: the solved state sequence over a time grid
//   - [Renderer]: consumer that displays a trajectory
//
// # Example
//
//	model, _ := models.NewSIR(0.5, 1.0/3.0)
//	grid, _ := sim.Grid(0, 150, 1)
//	traj, _ := sim.New(model, integrators.NewRK45()).Solve(ctx, model.DefaultState(), grid, sim.DefaultOptions())
//
// # Thread Safety
//
// Solver instances are NOT thread-safe. For parameter sweeps across
// goroutines, use [sim.Sweep], which creates one solver per run.
package epi
