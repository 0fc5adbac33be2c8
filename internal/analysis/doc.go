// Package analysis provides trajectory and sampling analysis tools.
//
//   - [VACF] / [DominantWavenumber]: vibrational frequency from the
//     velocity autocorrelation spectrum
//   - [PowerSpectrum]: one-sided magnitude spectrum (radix-2 FFT)
//   - [NewHistogram] / [BoltzmannReference]: sampled bond-length density
//     against the classical Boltzmann distribution
//   - [Sweep]: mean bond length across a temperature range
package analysis
