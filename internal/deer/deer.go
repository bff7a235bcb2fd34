package deer

import (
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

// Func is the nonlinear part of the recurrence, evaluated one sample at a
// time. ys holds the sample's value under each shift, x the external input
// row for the sample (nil when the system has no input), and p the function
// parameters.
type Func[T num.Float] interface {
	// Eval writes f(ys..., x; p) into dst.
	Eval(dst []T, ys [][]T, x, p []T)

	// Jac writes the Jacobian of f with respect to each shifted argument,
	// one row-major dim*dim block per shift. Every entry of every block
	// must be written; blocks are reused across iterations.
	Jac(jac [][]T, ys [][]T, x, p []T)

	// JVP writes the directional derivative of f with respect to (x, p)
	// along (dx, dp), holding the shifted arguments fixed.
	JVP(dst []T, ys [][]T, x, p, dx, dp []T)
}

// InvLin solves the sequence-wide linear system produced by linearizing the
// recurrence: jac holds one negated Jacobian bundle per shift.
type InvLin[T num.Float] interface {
	Solve(jac []*state.Blocks[T], rhs *state.Seq[T], p []T) (*state.Seq[T], error)

	// JVP propagates tangents of (rhs, p) through Solve with jac held
	// fixed, evaluated at the primal point (rhs, p).
	JVP(jac []*state.Blocks[T], rhs *state.Seq[T], p []T, drhs *state.Seq[T], dp []T) (*state.Seq[T], error)
}

// Shifter produces the time-shifted copies of the estimate that Func
// consumes. Returned sequences may alias y; the loop reads them only.
type Shifter[T num.Float] interface {
	Shift(y *state.Seq[T], p []T) []*state.Seq[T]
}

// System bundles the three collaborators with the number of shifts the
// recurrence depends on.
type System[T num.Float] struct {
	Func    Func[T]
	InvLin  InvLin[T]
	Shifter Shifter[T]
	Shifts  int
}

// Inputs carries the differentiable arguments of a solve. X may be nil for
// systems without an external signal; YInit is required and fixes the sample
// count and state dimension.
type Inputs[T num.Float] struct {
	Params       []T
	X            *state.Seq[T]
	InvLinParams []T
	ShiftParams  []T
	YInit        *state.Seq[T]
}

// Tangents mirrors Inputs with one directional perturbation per field. Nil
// fields mean zero. Perturbations of ShiftParams and YInit do not move the
// fixed point, so they are accepted and contribute nothing.
type Tangents[T num.Float] struct {
	Params       []T
	X            *state.Seq[T]
	InvLinParams []T
	ShiftParams  []T
	YInit        *state.Seq[T]
}

// Options controls a solve. A MaxIter at or below zero selects
// DefaultMaxIter. Clip enables the stability guard that bounds each new
// estimate and zeroes non-finite entries.
type Options struct {
	MaxIter  int
	Clip     bool
	Observer Observer
}

// Observer receives the infinity-norm update size after each iteration.
type Observer interface {
	OnIteration(iter int, delta float64)
}

// Result is the outcome of a solve. Jac holds the negated Jacobian bundles
// from the last executed iteration, which the tangent rule reuses. Converged
// reports whether Delta reached the precision tolerance; a budget-exhausted
// run still carries the last estimate.
type Result[T num.Float] struct {
	Y         *state.Seq[T]
	Jac       []*state.Blocks[T]
	Iters     int
	Delta     T
	Converged bool
}
