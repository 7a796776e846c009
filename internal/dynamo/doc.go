// Package dynamo provides the numeric primitives shared by the simulators.
//
// The package defines the fundamental interfaces and types for integrating
// scalar and vector ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: integrator that also proposes the next step size
//   - [Metric]: observer that reduces a trajectory to a single number
//   - [Grid]: evenly spaced sample points
//
// # Example
//
//	dyn := physics.NewBlackHole()
//	integ := integrators.NewRK4()
//	x := dynamo.State{10}
//	for i := 0; i < steps; i++ {
//		x = integ.Step(dyn, x, t, dt)
//		t += dt
//	}
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT thread-safe. Construct one
// per goroutine.
package dynamo
