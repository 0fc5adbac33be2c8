package pes_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/pes"
)

var _ = Describe("Surface", func() {
	var (
		hf      *molecule.Molecule
		surface *pes.Surface
	)

	BeforeEach(func() {
		var err error
		hf, err = molecule.Get("hf")
		Expect(err).NotTo(HaveOccurred())

		r, energy := hf.Samples(0)
		surface, err = pes.Fit(r, energy, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("interpolates the samples exactly with zero smoothing", func() {
		r, energy := hf.Samples(0)
		for i := range r {
			Expect(surface.Energy(r[i])).To(BeNumerically("~", energy[i], 1e-10))
		}
	})

	It("locates the equilibrium bond length", func() {
		re, emin, err := surface.Equilibrium()
		Expect(err).NotTo(HaveOccurred())
		Expect(re).To(BeNumerically("~", hf.Re, 5e-3))
		Expect(emin).To(BeNumerically("~", 0, 1e-4))
	})

	It("recovers the harmonic force constant", func() {
		k, err := surface.ForceConstant()
		Expect(err).NotTo(HaveOccurred())
		want := hf.ForceConstant()
		Expect(math.Abs(k-want) / want).To(BeNumerically("<", 0.03))
	})

	It("recovers the harmonic frequency", func() {
		wavenumber, err := surface.HarmonicWavenumber(hf.Mu())
		Expect(err).NotTo(HaveOccurred())
		want := hf.HarmonicWavenumber()
		Expect(math.Abs(wavenumber-want) / want).To(BeNumerically("<", 0.02))
	})

	It("is restoring around the minimum", func() {
		re, _, err := surface.Equilibrium()
		Expect(err).NotTo(HaveOccurred())
		Expect(surface.Force(re - 0.05)).To(BeNumerically(">", 0))
		Expect(surface.Force(re + 0.05)).To(BeNumerically("<", 0))
	})

	It("extrapolates linearly outside the sampled range", func() {
		lo, hi := surface.Domain()

		Expect(surface.Curvature(lo - 0.1)).To(BeZero())
		Expect(surface.Curvature(hi + 0.1)).To(BeZero())

		// Constant slope past the boundary.
		slope := (surface.Energy(hi+0.2) - surface.Energy(hi+0.1)) / 0.1
		boundary := surface.Force(hi)
		Expect(slope).To(BeNumerically("~", -boundary, 1e-8))
	})

	It("reports the sampled domain", func() {
		r, _ := hf.Samples(0)
		lo, hi := surface.Domain()
		Expect(lo).To(Equal(r[0]))
		Expect(hi).To(Equal(r[len(r)-1]))
	})

	Context("with smoothing", func() {
		It("damps noise while keeping the minimum in place", func() {
			r, energy := hf.Samples(0)
			noisy := make([]float64, len(energy))
			for i, e := range energy {
				// Deterministic perturbation, a few meV.
				noisy[i] = e + 0.002*math.Sin(37.0*float64(i))
			}

			smoothed, err := pes.Fit(r, noisy, 1e-5)
			Expect(err).NotTo(HaveOccurred())

			re, _, err := smoothed.Equilibrium()
			Expect(err).NotTo(HaveOccurred())
			Expect(re).To(BeNumerically("~", hf.Re, 0.03))
		})
	})

	Context("with bad input", func() {
		It("rejects too few samples", func() {
			_, err := pes.Fit([]float64{1, 2, 3}, []float64{1, 0, 1}, 0)
			Expect(err).To(HaveOccurred())
		})

		It("rejects mismatched lengths", func() {
			_, err := pes.Fit([]float64{1, 2, 3, 4}, []float64{1, 0, 1}, 0)
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-finite samples", func() {
			_, err := pes.Fit([]float64{1, 2, 3, 4}, []float64{1, math.NaN(), 1, 2}, 0)
			Expect(err).To(HaveOccurred())
		})

		It("rejects duplicate abscissae", func() {
			_, err := pes.Fit([]float64{1, 2, 2, 4}, []float64{1, 0, 0, 2}, 0)
			Expect(err).To(HaveOccurred())
		})

		It("rejects negative smoothing", func() {
			_, err := pes.Fit([]float64{1, 2, 3, 4}, []float64{1, 0, 1, 2}, -1)
			Expect(err).To(HaveOccurred())
		})

		It("reports a missing interior minimum", func() {
			// Monotone data has its lowest knot at the boundary.
			_, err := pes.Fit([]float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1}, 0)
			Expect(err).NotTo(HaveOccurred())
			s, _ := pes.Fit([]float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1}, 0)
			_, _, err = s.Equilibrium()
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with unsorted input", func() {
		It("sorts the samples internally", func() {
			r, energy := hf.Samples(0)
			rr := make([]float64, len(r))
			ee := make([]float64, len(energy))
			for i := range r {
				rr[i] = r[len(r)-1-i]
				ee[i] = energy[len(energy)-1-i]
			}
			s, err := pes.Fit(rr, ee, 0)
			Expect(err).NotTo(HaveOccurred())
			re, _, err := s.Equilibrium()
			Expect(err).NotTo(HaveOccurred())
			Expect(re).To(BeNumerically("~", hf.Re, 5e-3))
		})
	})
})
