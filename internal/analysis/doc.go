// Package analysis provides diagnostics over solver output.
//
// The package covers both the iteration and the solution:
//
//   - [SpectralRadii]: per-sample spectral radius of a Jacobian bundle
//   - [ContractionRate]: geometric convergence factor from iteration history
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [PowerSpectrum]: one-sided magnitude spectrum of a solution column
//   - [PhasePortrait]: two-variable projection of a trajectory
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(r, y0, p, 0.01, 200, 16, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
//
// Everything here works in float64; diagnostics are not offered on the
// single-precision path.
package analysis
