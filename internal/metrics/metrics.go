// Package metrics provides dynamo.Metric implementations for vibrational
// trajectories.
package metrics

import (
	"math"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/molecule"
)

// Temperature estimates the kinetic temperature of the bond coordinate from
// equipartition: <mu v^2> = kT for one degree of freedom.
type Temperature struct {
	mu      float64
	sum     float64
	samples int
}

func NewTemperature(mu float64) *Temperature {
	return &Temperature{mu: mu}
}

func (t *Temperature) Name() string { return "temperature" }

func (t *Temperature) Observe(x dynamo.State, _ float64) {
	if len(x) < 2 {
		return
	}
	v := x[1]
	t.sum += t.mu * v * v * molecule.KineticToEV / molecule.KB
	t.samples++
}

func (t *Temperature) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.sum / float64(t.samples)
}

func (t *Temperature) Reset() {
	t.sum = 0
	t.samples = 0
}

// MeanBond averages the bond length over the trajectory.
type MeanBond struct {
	sum     float64
	samples int
}

func NewMeanBond() *MeanBond { return &MeanBond{} }

func (m *MeanBond) Name() string { return "mean_bond" }

func (m *MeanBond) Observe(x dynamo.State, _ float64) {
	if len(x) < 1 {
		return
	}
	m.sum += x[0]
	m.samples++
}

func (m *MeanBond) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanBond) Reset() {
	m.sum = 0
	m.samples = 0
}

// Energy averages total energy using the system's Hamiltonian.
type Energy struct {
	sys     dynamo.Hamiltonian
	sum     float64
	samples int
}

func NewEnergy(sys dynamo.Hamiltonian) *Energy {
	return &Energy{sys: sys}
}

func (e *Energy) Name() string { return "mean_energy" }

func (e *Energy) Observe(x dynamo.State, _ float64) {
	e.sum += e.sys.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.samples = 0
}

// Stability reports the fraction of steps with the bond inside a cutoff;
// excursions past the cutoff count as dissociation events.
type Stability struct {
	cutoff     float64
	violations int
	samples    int
}

func NewStability(cutoff float64) *Stability {
	return &Stability{cutoff: cutoff}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x dynamo.State, _ float64) {
	s.samples++
	if len(x) < 1 {
		return
	}
	if math.Abs(x[0]) > s.cutoff {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
