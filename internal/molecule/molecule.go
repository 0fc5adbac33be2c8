package molecule

import (
	"fmt"
	"math"
	"sort"
)

// Atomic masses in amu (most abundant isotope).
const (
	MassH  = 1.00782503
	MassC  = 12.0
	MassO  = 15.99491462
	MassF  = 18.99840316
	MassCl = 34.96885268
)

// Molecule describes a diatomic and the Morse parameters used to generate
// its reference potential energy samples. The Morse curve stands in for
// quantum-chemistry single-point energies; real scans can be loaded from
// CSV instead.
type Molecule struct {
	Name  string
	Atoms [2]string
	Mass1 float64 // amu
	Mass2 float64 // amu

	Re float64 // equilibrium bond length, angstrom
	De float64 // well depth, eV
	A  float64 // Morse width parameter, 1/angstrom
}

// Mu returns the reduced mass in amu.
func (m *Molecule) Mu() float64 {
	return m.Mass1 * m.Mass2 / (m.Mass1 + m.Mass2)
}

// MorseEnergy evaluates the reference Morse potential at bond length r,
// zero at the minimum.
func (m *Molecule) MorseEnergy(r float64) float64 {
	e := 1 - math.Exp(-m.A*(r-m.Re))
	return m.De * e * e
}

// MorseForce is the negative gradient of the Morse potential, eV/angstrom.
func (m *Molecule) MorseForce(r float64) float64 {
	ex := math.Exp(-m.A * (r - m.Re))
	return -2 * m.De * m.A * ex * (1 - ex)
}

// ForceConstant returns the analytic harmonic force constant 2*De*A^2 at the
// Morse minimum, eV/angstrom^2.
func (m *Molecule) ForceConstant() float64 {
	return 2 * m.De * m.A * m.A
}

// HarmonicWavenumber returns the harmonic vibrational frequency of the
// reference Morse curve in cm^-1.
func (m *Molecule) HarmonicWavenumber() float64 {
	omega := math.Sqrt(m.ForceConstant() * ForceToAccel / m.Mu())
	return Wavenumber(omega)
}

// Samples generates n reference energy samples on a bond-length grid
// bracketing the minimum, from the repulsive wall to past dissociation
// onset. n < 2 falls back to the default grid size.
func (m *Molecule) Samples(n int) (r, energy []float64) {
	if n < 2 {
		n = DefaultSamples
	}
	rmin := 0.55 * m.Re
	rmax := 2.6 * m.Re
	r = make([]float64, n)
	energy = make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = rmin + (rmax-rmin)*float64(i)/float64(n-1)
		energy[i] = m.MorseEnergy(r[i])
	}
	return r, energy
}

// DefaultSamples is the grid size used when none is requested.
const DefaultSamples = 48

var registry = map[string]*Molecule{
	"hf": {
		Name:  "hf",
		Atoms: [2]string{"H", "F"},
		Mass1: MassH, Mass2: MassF,
		Re: 0.9168, De: 6.12, A: 2.22,
	},
	"h2": {
		Name:  "h2",
		Atoms: [2]string{"H", "H"},
		Mass1: MassH, Mass2: MassH,
		Re: 0.7414, De: 4.75, A: 1.93,
	},
	"hcl": {
		Name:  "hcl",
		Atoms: [2]string{"H", "Cl"},
		Mass1: MassH, Mass2: MassCl,
		Re: 1.2746, De: 4.618, A: 1.869,
	},
	"co": {
		Name:  "co",
		Atoms: [2]string{"C", "O"},
		Mass1: MassC, Mass2: MassO,
		Re: 1.1283, De: 11.226, A: 2.299,
	},
}

// Get looks up a diatomic by name (case-sensitive, lower case).
func Get(name string) (*Molecule, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown molecule: %s (available: %v)", name, List())
	}
	return m, nil
}

// List returns the registered molecule names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
