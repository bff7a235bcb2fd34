package analysis

import "math"

// History records the update norm of every solver iteration. It satisfies
// the solver's observer contract and is the input to [ContractionRate].
type History struct {
	Deltas []float64
}

func (h *History) OnIteration(iter int, delta float64) {
	h.Deltas = append(h.Deltas, delta)
}

// ContractionRate estimates the geometric factor by which the update norm
// shrinks per iteration, the mean ratio of successive deltas. Entries that
// are zero or not finite end the usable prefix: once an update underflows
// the ratio carries no information. Returns 0 when fewer than two usable
// deltas exist.
func ContractionRate(deltas []float64) float64 {
	var sum float64
	var count int
	for i := 1; i < len(deltas); i++ {
		prev, cur := deltas[i-1], deltas[i]
		if !(prev > 0) || !(cur > 0) || math.IsInf(cur, 0) || math.IsInf(prev, 0) {
			break
		}
		sum += math.Log(cur / prev)
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Exp(sum / float64(count))
}
