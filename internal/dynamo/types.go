package dynamo

import (
	"fmt"
	"math"
)

// State is a phase-space vector: position coordinates followed by the
// matching velocity coordinates (angstrom, angstrom/fs).
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

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is a mechanical system with configuration-space accelerations.
type System interface {
	// Accel returns the acceleration of each position coordinate in
	// angstrom/fs^2. x holds Dof() positions followed by Dof() velocities.
	Accel(x State, t float64) State
	Dof() int
}

// Hamiltonian systems report total energy for drift monitoring.
type Hamiltonian interface {
	Energy(x State) float64
}

// Thermal systems know the equilibrium velocity variance of each coordinate
// at temperature T (K); stochastic integrators use it to scale the random
// force.
type Thermal interface {
	VelocityVariance(temp float64) float64
}

// Integrator advances the state by one time step. Stochastic integrators
// carry their own random source and are not safe for concurrent use.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Metric accumulates a scalar summary over a trajectory.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is called on every step, before the state advances.
type Observer interface {
	OnStep(x State, t float64)
}

// Config holds the run parameters for a trajectory.
type Config struct {
	Dt            float64 // fs
	Duration      float64 // fs
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.2,
		Duration:      2000,
		ValidateState: true,
	}
}

// Result is a completed trajectory.
type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// SimError records where a run went wrong.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f fs): %s", e.Step, e.Time, e.Message)
}
