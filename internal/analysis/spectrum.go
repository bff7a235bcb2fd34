package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of a uniformly
// sampled series. Bin k corresponds to frequency k/(n*dt).
func PowerSpectrum(series []float64) []float64 {
	spec := fft.FFTReal(series)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency of the strongest non-constant
// bin of a series sampled every dt, in cycles per time unit. Returns 0
// for series too short to carry one.
func DominantFrequency(series []float64, dt float64) float64 {
	if dt <= 0 || len(series) < 4 {
		return 0
	}
	ps := PowerSpectrum(series)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	return float64(best) / (float64(len(series)) * dt)
}
