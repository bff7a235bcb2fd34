package analysis

import (
	"fmt"

	"github.com/MoniFarsang/deer/internal/state"
)

// PhasePoint is one sample of a two-variable projection.
type PhasePoint struct {
	X, Y float64
}

// PhasePortrait projects a solved trajectory onto the coordinate pair
// (xi, yi) for phase-space plotting.
func PhasePortrait(y *state.Seq[float64], xi, yi int) ([]PhasePoint, error) {
	if xi < 0 || xi >= y.Dim || yi < 0 || yi >= y.Dim {
		return nil, fmt.Errorf("analysis: phase indices (%d, %d) out of range for dim %d", xi, yi, y.Dim)
	}
	pts := make([]PhasePoint, y.Len())
	for i := range pts {
		row := y.Row(i)
		pts[i] = PhasePoint{X: row[xi], Y: row[yi]}
	}
	return pts, nil
}
