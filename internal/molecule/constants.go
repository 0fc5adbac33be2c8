package molecule

import "math"

// Internal unit system: length in angstrom, time in femtoseconds, mass in
// atomic mass units, energy in electronvolts, temperature in kelvin.
const (
	// KB is the Boltzmann constant in eV/K.
	KB = 8.617333262e-5

	// ForceToAccel converts a force in eV/angstrom acting on a mass in amu
	// to an acceleration in angstrom/fs^2.
	ForceToAccel = 9.648533212e-3

	// KineticToEV converts amu*(angstrom/fs)^2 to eV.
	KineticToEV = 1.0 / ForceToAccel

	// LightSpeed in cm/fs, for spectroscopic wavenumbers.
	LightSpeed = 2.99792458e-5
)

// Wavenumber converts an angular frequency in rad/fs to cm^-1.
func Wavenumber(omega float64) float64 {
	return omega / (2 * math.Pi * LightSpeed)
}

// ThermalSigmaV is the standard deviation of the Maxwell-Boltzmann velocity
// distribution for a 1-D coordinate of reduced mass mu (amu) at temperature
// T (K), in angstrom/fs.
func ThermalSigmaV(mu, temp float64) float64 {
	if mu <= 0 || temp <= 0 {
		return 0
	}
	return math.Sqrt(KB * temp * ForceToAccel / mu)
}
