package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/pes"
)

// Histogram bins samples into a normalized density over [lo, hi].
// Centers are bin midpoints; density integrates to 1 over the range.
type Histogram struct {
	Centers []float64
	Density []float64
	Width   float64
}

// NewHistogram builds a histogram with the given bin count. Samples outside
// [lo, hi] are dropped.
func NewHistogram(samples []float64, lo, hi float64, bins int) (*Histogram, error) {
	if bins < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 bins, got %d", bins)
	}
	if hi <= lo {
		return nil, fmt.Errorf("analysis: empty histogram range [%g, %g]", lo, hi)
	}

	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	kept := 0
	for _, s := range samples {
		if s < lo || s >= hi {
			continue
		}
		counts[int((s-lo)/width)]++
		kept++
	}
	if kept == 0 {
		return nil, fmt.Errorf("analysis: no samples inside [%g, %g]", lo, hi)
	}

	h := &Histogram{
		Centers: make([]float64, bins),
		Density: make([]float64, bins),
		Width:   width,
	}
	for i := 0; i < bins; i++ {
		h.Centers[i] = lo + (float64(i)+0.5)*width
		h.Density[i] = counts[i] / (float64(kept) * width)
	}
	return h, nil
}

// BoltzmannReference evaluates the normalized classical bond-length density
// exp(-V(r)/kT) on the histogram's bin centers.
func BoltzmannReference(surface *pes.Surface, temp float64, h *Histogram) []float64 {
	kT := molecule.KB * temp
	ref := make([]float64, len(h.Centers))
	sum := 0.0
	for i, r := range h.Centers {
		ref[i] = math.Exp(-surface.Energy(r) / kT)
		sum += ref[i] * h.Width
	}
	if sum > 0 {
		for i := range ref {
			ref[i] /= sum
		}
	}
	return ref
}

// TotalVariation is half the L1 distance between two densities on the same
// bin grid, in [0, 1].
func TotalVariation(p, q []float64, width float64) float64 {
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Abs(p[i]-q[i]) * width
	}
	return sum / 2
}

// Summary reports the mean and standard deviation of a sample set.
func Summary(samples []float64) (mean, stddev float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	mean = stat.Mean(samples, nil)
	stddev = math.Sqrt(stat.Variance(samples, nil))
	return mean, stddev
}
