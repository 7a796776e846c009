// Package physics provides the toy cosmology models behind the simulation
// panels.
//
// Both models implement [dynamo.Analytic]:
//
//   - [BlackHole]: exponential mass accretion, dM/dt = k·M
//   - [Inflation]: exponential growth of the universe scale factor
//
// BlackHole is also a [dynamo.System] so it can be integrated numerically
// and checked against its closed form.
//
//	bh := physics.NewBlackHole()
//	m := bh.Solve(dynamo.State{10}, 5)[0] // 10·e^{0.5}
package physics
