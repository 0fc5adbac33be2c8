package analysis

// VACF computes the normalized velocity autocorrelation function
// C(j) = <v(i) v(i+j)> / <v^2> up to maxLag. maxLag <= 0 or beyond the
// series defaults to half the series length.
func VACF(v []float64, maxLag int) []float64 {
	n := len(v)
	if n == 0 {
		return nil
	}
	if maxLag <= 0 || maxLag > n/2 {
		maxLag = n / 2
	}
	if maxLag < 1 {
		maxLag = 1
	}

	c := make([]float64, maxLag)
	for lag := 0; lag < maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < n; i++ {
			sum += v[i] * v[i+lag]
		}
		c[lag] = sum / float64(n-lag)
	}

	if c[0] != 0 {
		norm := c[0]
		for i := range c {
			c[i] /= norm
		}
	}
	return c
}

// DominantWavenumber locates the strongest line in the spectrum of the
// velocity autocorrelation of v (sampled every dt fs) and returns it in
// cm^-1 along with the spectrum itself. The zero-frequency bin is skipped.
func DominantWavenumber(v []float64, dt float64) (float64, []float64) {
	c := VACF(v, 0)
	padded := PadPow2(c)
	spectrum := PowerSpectrum(padded)

	if len(spectrum) < 2 {
		return 0, spectrum
	}
	peak := 1
	for i := 2; i < len(spectrum); i++ {
		if spectrum[i] > spectrum[peak] {
			peak = i
		}
	}
	return BinWavenumber(peak, len(padded), dt), spectrum
}
