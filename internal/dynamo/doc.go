// Package dynamo provides core simulation primitives for the triple pendulum.
//
// The package defines the fundamental interfaces and types shared by the
// dynamics model, the integrators and the trajectory runner:
//
//   - [State]: state vector (theta1, omega1, theta2, omega2, theta3, omega3)
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: embedded integrator with local error estimation
//   - [Config]: tolerances and budgets for an adaptive run
//
// # Example
//
//	dyn := physics.NewTriplePendulum(params)
//	solver := integrators.NewSolver(integrators.NewRK45(), dynamo.DefaultConfig())
//	sol, err := solver.Solve(ctx, dyn, params.InitialState(), 0, params.SimTime)
//
// # Thread Safety
//
// Nothing in this package holds mutable state. Systems and integrators built
// on it are safe to share between goroutines as long as they keep that
// property.
package dynamo
