package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/MoniFarsang/deer/internal/state"
)

const (
	// DefaultWidth and DefaultHeight size a chart for a standard terminal.
	DefaultWidth  = 78
	DefaultHeight = 10

	// maxColumns bounds how many state columns SolutionChart draws.
	maxColumns = 4
)

// SolutionChart renders each state column of a trajectory as its own chart,
// up to four columns. Column captions come from labels where provided and
// fall back to y0, y1, ...
func SolutionChart(y *state.Seq[float64], labels []string, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	cols := y.Dim
	if cols > maxColumns {
		cols = maxColumns
	}

	var b strings.Builder
	for c := 0; c < cols; c++ {
		series := make([]float64, y.Len())
		for i := range series {
			series[i] = y.Row(i)[c]
		}

		caption := fmt.Sprintf("y%d", c)
		if c < len(labels) && labels[c] != "" {
			caption = labels[c]
		}

		if c > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(plot(series, caption, width, height))
	}
	if y.Dim > cols {
		fmt.Fprintf(&b, "\n(%d more columns not shown)", y.Dim-cols)
	}
	return b.String()
}

// ConvergenceChart renders the update-norm history of a solve in log10, the
// only scale on which a geometric contraction reads as a line. Non-positive
// and non-finite deltas are skipped.
func ConvergenceChart(deltas []float64, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	series := make([]float64, 0, len(deltas))
	for _, d := range deltas {
		if d > 0 && !math.IsInf(d, 0) {
			series = append(series, math.Log10(d))
		}
	}
	return plot(series, "update size (log10)", width, height)
}

func plot(series []float64, caption string, width, height int) string {
	if len(series) < 2 {
		return fmt.Sprintf("(no data to chart: %s)", caption)
	}
	for _, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Sprintf("(non-finite data: %s)", caption)
		}
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Spinner returns the animation frame for an in-progress solve.
func Spinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return frames[frame%len(frames)]
}
