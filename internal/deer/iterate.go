package deer

import (
	"fmt"

	"github.com/MoniFarsang/deer/internal/linalg"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

const (
	// DefaultMaxIter bounds the loop when Options leaves MaxIter unset.
	DefaultMaxIter = 100

	// clipLimit bounds each entry of the next estimate under Options.Clip.
	clipLimit = 1e8

	// deltaInit seeds the update size above any tolerance so the loop
	// always runs at least once.
	deltaInit = 1e10

	evalMinChunk = 8
)

// Run drives the fixed-point iteration to convergence or budget exhaustion.
// Each iteration shifts the current estimate, linearizes Func per sample,
// assembles the first-order right-hand side, and asks InvLin for the next
// estimate over the whole sequence at once; the loop stops when the
// infinity-norm update falls to the precision tolerance of T.
//
// Budget exhaustion is not an error: the last estimate is returned with
// Converged false. The only loop failure is one reported by InvLin.
func Run[T num.Float](sys System[T], in Inputs[T], opt Options) (Result[T], error) {
	if err := validate(sys, in); err != nil {
		return Result[T]{}, err
	}

	n := in.YInit.Len()
	dim := in.YInit.Dim
	p := sys.Shifts
	tol := num.Tolerance[T]()
	maxIter := opt.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	yt := in.YInit.Clone()
	gts := make([]*state.Blocks[T], p)
	for k := range gts {
		gts[k] = state.NewBlocks[T](n, dim)
	}
	rhs := state.NewSeq[T](n, dim)

	delta := T(deltaInit)
	iters := 0
	for delta > tol && iters < maxIter {
		shifts := sys.Shifter.Shift(yt, in.ShiftParams)
		linearize(sys.Func, shifts, in.X, in.Params, gts, rhs, n, dim, p)

		ytNext, err := sys.InvLin.Solve(gts, rhs, in.InvLinParams)
		if err != nil {
			return Result[T]{}, &IterationError{Iter: iters + 1, Wrapped: err}
		}
		if opt.Clip {
			ytNext.Clip(clipLimit)
		}

		delta = ytNext.MaxAbsDiff(yt)
		yt = ytNext
		iters++
		if opt.Observer != nil {
			opt.Observer.OnIteration(iters, float64(delta))
		}
	}

	return Result[T]{
		Y:         yt,
		Jac:       gts,
		Iters:     iters,
		Delta:     delta,
		Converged: delta <= tol,
	}, nil
}

// Iterate is Run reduced to the solution sequence.
func Iterate[T num.Float](sys System[T], in Inputs[T], opt Options) (*state.Seq[T], error) {
	res, err := Run(sys, in, opt)
	if err != nil {
		return nil, err
	}
	return res.Y, nil
}

// linearize evaluates Func and its negated per-shift Jacobians sample by
// sample and assembles rhs = f + sum_k G_k*shift_k. Samples carry no
// dependency on each other, so the work maps over chunks of the sequence.
func linearize[T num.Float](f Func[T], shifts []*state.Seq[T], x *state.Seq[T], params []T,
	gts []*state.Blocks[T], rhs *state.Seq[T], n, dim, p int) {

	num.For(n, evalMinChunk, func(start, end int) {
		ys := make([][]T, p)
		jac := make([][]T, p)
		for i := start; i < end; i++ {
			for k := 0; k < p; k++ {
				ys[k] = shifts[k].Row(i)
				jac[k] = gts[k].Block(i)
			}
			var xrow []T
			if x != nil {
				xrow = x.Row(i)
			}
			out := rhs.Row(i)
			f.Eval(out, ys, xrow, params)
			f.Jac(jac, ys, xrow, params)
			for k := 0; k < p; k++ {
				blk := jac[k]
				for j := range blk {
					blk[j] = -blk[j]
				}
				linalg.MatVecAcc(out, blk, ys[k], dim)
			}
		}
	})
}

func validate[T num.Float](sys System[T], in Inputs[T]) error {
	if sys.Func == nil || sys.InvLin == nil || sys.Shifter == nil {
		return ErrNilCollaborator
	}
	if sys.Shifts < 1 {
		return ErrShiftCount
	}
	if in.YInit == nil {
		return ErrMissingInit
	}

	n := in.YInit.Len()
	dim := in.YInit.Dim
	if in.X != nil && in.X.Len() != n {
		return fmt.Errorf("%w: input has %d samples, initial guess has %d", ErrDimension, in.X.Len(), n)
	}

	shifts := sys.Shifter.Shift(in.YInit, in.ShiftParams)
	if len(shifts) != sys.Shifts {
		return fmt.Errorf("%w: shifter produced %d sequences, want %d", ErrShiftArity, len(shifts), sys.Shifts)
	}
	for k, s := range shifts {
		if s.Len() != n || s.Dim != dim {
			return fmt.Errorf("%w: shift %d is %dx%d, want %dx%d", ErrDimension, k, s.Len(), s.Dim, n, dim)
		}
	}
	return nil
}
