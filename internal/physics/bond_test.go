package physics

import (
	"math"
	"testing"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/pes"
)

func hfBond(t *testing.T) *Bond {
	t.Helper()
	mol, err := molecule.Get("hf")
	if err != nil {
		t.Fatal(err)
	}
	r, energy := mol.Samples(0)
	surface, err := pes.Fit(r, energy, 0)
	if err != nil {
		t.Fatal(err)
	}
	return NewBond(surface, mol)
}

func TestBondAccelRestoring(t *testing.T) {
	b := hfBond(t)
	re := b.Mol.Re

	if a := b.Accel(dynamo.State{re - 0.1, 0}, 0); a[0] <= 0 {
		t.Errorf("compressed bond acceleration %.4f, want positive", a[0])
	}
	if a := b.Accel(dynamo.State{re + 0.1, 0}, 0); a[0] >= 0 {
		t.Errorf("stretched bond acceleration %.4f, want negative", a[0])
	}

	// Near the minimum the acceleration is near zero.
	a := b.Accel(dynamo.State{re, 0}, 0)
	if math.Abs(a[0]) > 0.05 {
		t.Errorf("acceleration at equilibrium %.4f, want ~0", a[0])
	}
}

func TestBondEnergy(t *testing.T) {
	b := hfBond(t)
	re := b.Mol.Re

	rest := b.Energy(dynamo.State{re, 0})
	moving := b.Energy(dynamo.State{re, 0.05})
	if moving <= rest {
		t.Error("kinetic energy did not raise the total")
	}

	wantKinetic := 0.5 * b.Mol.Mu() * 0.05 * 0.05 * molecule.KineticToEV
	if math.Abs((moving-rest)-wantKinetic) > 1e-9 {
		t.Errorf("kinetic part %.6f eV, want %.6f", moving-rest, wantKinetic)
	}
}

func TestBondVelocityVariance(t *testing.T) {
	b := hfBond(t)

	v2 := b.VelocityVariance(300)
	want := molecule.KB * 300 * molecule.ForceToAccel / b.Mol.Mu()
	if math.Abs(v2-want)/want > 1e-9 {
		t.Errorf("velocity variance %.6e, want %.6e", v2, want)
	}
	if b.VelocityVariance(600) <= v2 {
		t.Error("variance must grow with temperature")
	}
}

func TestHarmonicAnalytic(t *testing.T) {
	h := &Harmonic{K: 50, Mu: 2, Re: 1.5}

	if h.Dof() != 1 {
		t.Errorf("Dof = %d, want 1", h.Dof())
	}
	if a := h.Accel(dynamo.State{1.5, 0}, 0); a[0] != 0 {
		t.Errorf("acceleration at Re = %g, want 0", a[0])
	}

	// a = -K*c*(r-Re)/Mu
	a := h.Accel(dynamo.State{1.6, 0}, 0)
	want := -50 * molecule.ForceToAccel * 0.1 / 2
	if math.Abs(a[0]-want) > 1e-12 {
		t.Errorf("acceleration %.8f, want %.8f", a[0], want)
	}

	e := h.Energy(dynamo.State{1.6, 0})
	if math.Abs(e-0.5*50*0.01) > 1e-12 {
		t.Errorf("potential energy %.6f, want %.6f", e, 0.5*50*0.01)
	}
}
