// Package physics provides the mechanical systems driven by the simulator.
//
// The only coordinate in a diatomic's internal motion is the bond length,
// so every system here is one-dimensional: state vectors are {r, v}.
package physics

import (
	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/pes"
)

// Bond is a diatomic vibrating on a spline-fit potential energy surface.
type Bond struct {
	Surface *pes.Surface
	Mol     *molecule.Molecule
}

func NewBond(surface *pes.Surface, mol *molecule.Molecule) *Bond {
	return &Bond{Surface: surface, Mol: mol}
}

func (b *Bond) Dof() int { return 1 }

func (b *Bond) Accel(x dynamo.State, _ float64) dynamo.State {
	if len(x) < 1 {
		return dynamo.State{0}
	}
	a := molecule.ForceToAccel * b.Surface.Force(x[0]) / b.Mol.Mu()
	return dynamo.State{a}
}

// Energy is the total energy V(r) + mu*v^2/2 in eV.
func (b *Bond) Energy(x dynamo.State) float64 {
	if len(x) < 2 {
		return 0
	}
	r, v := x[0], x[1]
	return b.Surface.Energy(r) + 0.5*b.Mol.Mu()*v*v*molecule.KineticToEV
}

// VelocityVariance is the Maxwell-Boltzmann velocity variance of the bond
// coordinate at temperature T, (angstrom/fs)^2.
func (b *Bond) VelocityVariance(temp float64) float64 {
	s := molecule.ThermalSigmaV(b.Mol.Mu(), temp)
	return s * s
}

// Harmonic is a pure quadratic bond potential, used for validating the
// integrators and the spectral analysis against the analytic oscillator.
type Harmonic struct {
	K  float64 // eV/angstrom^2
	Mu float64 // amu
	Re float64 // angstrom
}

func (h *Harmonic) Dof() int { return 1 }

func (h *Harmonic) Accel(x dynamo.State, _ float64) dynamo.State {
	if len(x) < 1 {
		return dynamo.State{0}
	}
	a := -molecule.ForceToAccel * h.K * (x[0] - h.Re) / h.Mu
	return dynamo.State{a}
}

func (h *Harmonic) Energy(x dynamo.State) float64 {
	if len(x) < 2 {
		return 0
	}
	d, v := x[0]-h.Re, x[1]
	return 0.5*h.K*d*d + 0.5*h.Mu*v*v*molecule.KineticToEV
}

func (h *Harmonic) VelocityVariance(temp float64) float64 {
	s := molecule.ThermalSigmaV(h.Mu, temp)
	return s * s
}
