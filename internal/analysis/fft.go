package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/vibelab/internal/molecule"
)

// FFT computes the discrete Fourier transform of a power-of-two-length
// series by radix-2 recursion.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PadPow2 zero-pads data up to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the one-sided magnitude spectrum of data, which is
// zero-padded to a power of two first.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(PadPow2(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// BinWavenumber converts a one-sided spectrum bin index to cm^-1, given the
// padded series length n and the sampling interval dt in fs.
func BinWavenumber(bin, n int, dt float64) float64 {
	if n == 0 || dt <= 0 {
		return 0
	}
	freq := float64(bin) / (float64(n) * dt) // cycles/fs
	return freq / molecule.LightSpeed
}
