package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/MoniFarsang/deer/internal/state"
)

// ErrEigen indicates a sample block whose eigendecomposition did not
// converge.
var ErrEigen = errors.New("analysis: eigendecomposition failed")

// SpectralRadii returns the per-sample spectral radius of a Jacobian
// bundle. Applied to the converged bundle of the fixed-point solver it
// measures how strongly each sample couples to its neighbors; radii larger
// than one mark the samples that amplify upstream perturbations.
func SpectralRadii(b *state.Blocks[float64]) ([]float64, error) {
	out := make([]float64, b.Len())
	for i := range out {
		m := mat.NewDense(b.Dim, b.Dim, b.Block(i))
		var eig mat.Eigen
		if ok := eig.Factorize(m, mat.EigenNone); !ok {
			return nil, fmt.Errorf("%w: sample %d", ErrEigen, i)
		}
		var radius float64
		for _, v := range eig.Values(nil) {
			if r := cmplx.Abs(v); r > radius {
				radius = r
			}
		}
		out[i] = radius
	}
	return out, nil
}

// MaxRadius returns the largest per-sample spectral radius of the bundle.
func MaxRadius(b *state.Blocks[float64]) (float64, error) {
	radii, err := SpectralRadii(b)
	if err != nil {
		return 0, err
	}
	var max float64
	for _, r := range radii {
		if r > max {
			max = r
		}
	}
	return max, nil
}
