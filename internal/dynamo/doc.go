// Package dynamo provides the core primitives for molecular trajectory
// simulation.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: phase-space vector (positions then velocities)
//   - [System]: mechanical system with configuration-space accelerations
//   - [Integrator]: time-stepping scheme (deterministic or stochastic)
//   - [Metric]: per-trajectory scalar accumulator
//   - [Simulator]: orchestrates a single trajectory run
//
// # Example
//
//	sys := physics.NewBond(surface, mol)
//	integ := integrators.NewBBK(gamma, temp, seed)
//	sim := dynamo.New(sys, integ)
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and stochastic integrators carry
// private random state. For independent replicas use [Ensemble], which
// builds one simulator per goroutine.
package dynamo
