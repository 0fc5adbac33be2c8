// Package pes fits and evaluates one-dimensional potential energy surfaces.
//
// A [Surface] is built from discrete bond-length/energy samples via a
// natural cubic smoothing spline and exposes the quantities vibrational
// simulations need: energy, force, equilibrium geometry, and the harmonic
// force constant at the minimum.
package pes

import (
	"fmt"
	"math"

	"github.com/san-kum/vibelab/internal/molecule"
)

// Surface is a spline-fit potential energy surface over a bond length.
type Surface struct {
	spline *Spline
}

// Fit builds a surface from energy samples. r is in angstrom, energy in eV,
// alpha is the smoothing parameter (0 interpolates).
func Fit(r, energy []float64, alpha float64) (*Surface, error) {
	sp, err := FitSpline(r, energy, alpha)
	if err != nil {
		return nil, err
	}
	return &Surface{spline: sp}, nil
}

// Energy evaluates the surface at bond length r, in eV.
func (s *Surface) Energy(r float64) float64 { return s.spline.At(r) }

// Force is the negative energy gradient at r, in eV/angstrom.
func (s *Surface) Force(r float64) float64 { return -s.spline.Deriv(r) }

// Curvature is the second derivative of the energy at r, eV/angstrom^2.
func (s *Surface) Curvature(r float64) float64 { return s.spline.Deriv2(r) }

// Domain returns the sampled bond-length range.
func (s *Surface) Domain() (lo, hi float64) { return s.spline.Domain() }

// Knots exposes the fitted values at the sample grid, for plotting.
func (s *Surface) Knots() (r, energy []float64) { return s.spline.Knots() }

const goldenRatio = 0.6180339887498949

// Equilibrium locates the bond length of the energy minimum inside the
// sampled range by golden-section search seeded at the lowest knot.
func (s *Surface) Equilibrium() (re, emin float64, err error) {
	knots, vals := s.spline.Knots()
	n := len(knots)
	best := 0
	for i := 1; i < n; i++ {
		if vals[i] < vals[best] {
			best = i
		}
	}
	if best == 0 || best == n-1 {
		return 0, 0, fmt.Errorf("pes: no interior minimum in sampled range [%g, %g]", knots[0], knots[n-1])
	}

	a, b := knots[best-1], knots[best+1]
	x1 := b - goldenRatio*(b-a)
	x2 := a + goldenRatio*(b-a)
	f1, f2 := s.Energy(x1), s.Energy(x2)
	for i := 0; i < 200 && b-a > 1e-12; i++ {
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - goldenRatio*(b-a)
			f1 = s.Energy(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + goldenRatio*(b-a)
			f2 = s.Energy(x2)
		}
	}
	re = (a + b) / 2
	return re, s.Energy(re), nil
}

// ForceConstant returns the curvature at the equilibrium bond length,
// eV/angstrom^2.
func (s *Surface) ForceConstant() (float64, error) {
	re, _, err := s.Equilibrium()
	if err != nil {
		return 0, err
	}
	k := s.Curvature(re)
	if k <= 0 {
		return 0, fmt.Errorf("pes: non-positive curvature %g at minimum", k)
	}
	return k, nil
}

// HarmonicWavenumber returns the harmonic vibrational frequency in cm^-1
// for a reduced mass mu in amu.
func (s *Surface) HarmonicWavenumber(mu float64) (float64, error) {
	k, err := s.ForceConstant()
	if err != nil {
		return 0, err
	}
	omega := math.Sqrt(k * molecule.ForceToAccel / mu)
	return molecule.Wavenumber(omega), nil
}
