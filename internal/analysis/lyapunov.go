package analysis

import (
	"math"

	"github.com/MoniFarsang/deer/internal/idae"
)

// LyapunovExponent estimates the largest Lyapunov exponent of an
// autonomous system using the trajectory separation method. A positive
// value indicates chaos.
//
// Algorithm:
// 1. Solve the system twice from states separated by d0
// 2. Measure the divergence after a short window
// 3. Renormalize the separation and repeat
// 4. lambda is the average of ln(sep/d0) per unit time
//
// Each window covers steps backward-Euler steps of size dt.
func LyapunovExponent(r idae.Residual[float64], y0, p []float64, dt float64, windows, steps int, d0 float64) (float64, error) {
	tpts := make([]float64, steps+1)
	for i := range tpts {
		tpts[i] = float64(i) * dt
	}

	xa := append([]float64(nil), y0...)
	xb := append([]float64(nil), y0...)
	xb[0] += d0

	sumLog := 0.0
	count := 0

	for w := 0; w < windows; w++ {
		ya, err := idae.Solve(r, xa, nil, p, tpts, nil)
		if err != nil {
			return 0, err
		}
		yb, err := idae.Solve(r, xb, nil, p, tpts, nil)
		if err != nil {
			return 0, err
		}

		ra := ya.Row(steps)
		rb := yb.Row(steps)
		sep := 0.0
		for i := range ra {
			diff := rb[i] - ra[i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)

		if sep > 0 && d0 > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		// Rescale the separation back to d0 before the next window; a
		// collapsed separation is reseeded along the first coordinate.
		copy(xa, ra)
		if sep > 0 {
			scale := d0 / sep
			for i := range xb {
				xb[i] = ra[i] + (rb[i]-ra[i])*scale
			}
		} else {
			copy(xb, ra)
			xb[0] += d0
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * float64(steps) * dt), nil
}
