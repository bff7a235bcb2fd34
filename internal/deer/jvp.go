package deer

import (
	"fmt"

	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

// IterateJVP solves the system and propagates one directional perturbation
// of the inputs to the solution. The loop itself is never differentiated:
// at a fixed point, the implicit function theorem reduces the sensitivity of
// the solution to the sensitivity of the inverse linear operator applied to
// the perturbed residual, with the Jacobian bundles frozen at the solution.
//
// It returns the solution and its tangent. Callers that differentiate must
// use this entry point instead of tracing Run; unrolled iteration gradients
// are wrong once clipping engages and cost one linear solve per iteration.
func IterateJVP[T num.Float](sys System[T], in Inputs[T], tan Tangents[T], opt Options) (*state.Seq[T], *state.Seq[T], error) {
	if err := validateTangents(in, tan); err != nil {
		return nil, nil, err
	}
	res, err := Run(sys, in, opt)
	if err != nil {
		return nil, nil, err
	}

	n := res.Y.Len()
	dim := res.Y.Dim
	p := sys.Shifts

	dp := tan.Params
	if dp == nil && in.Params != nil {
		dp = make([]T, len(in.Params))
	}
	dx := tan.X
	if dx == nil && in.X != nil {
		dx = state.NewSeq[T](n, in.X.Dim)
	}
	dlp := tan.InvLinParams
	if dlp == nil && in.InvLinParams != nil {
		dlp = make([]T, len(in.InvLinParams))
	}

	// Directional derivative of f with respect to (x, params) at the
	// solution, holding the shifted arguments fixed.
	shifts := sys.Shifter.Shift(res.Y, in.ShiftParams)
	df := state.NewSeq[T](n, dim)
	num.For(n, evalMinChunk, func(start, end int) {
		ys := make([][]T, p)
		for i := start; i < end; i++ {
			for k := 0; k < p; k++ {
				ys[k] = shifts[k].Row(i)
			}
			var xrow, dxrow []T
			if in.X != nil {
				xrow = in.X.Row(i)
				dxrow = dx.Row(i)
			}
			sys.Func.JVP(df.Row(i), ys, xrow, in.Params, dxrow, dp)
		}
	})

	zero := state.NewSeq[T](n, dim)
	dy, err := sys.InvLin.JVP(res.Jac, zero, in.InvLinParams, df, dlp)
	if err != nil {
		return nil, nil, fmt.Errorf("deer: tangent solve: %w", err)
	}
	return res.Y, dy, nil
}

func validateTangents[T num.Float](in Inputs[T], tan Tangents[T]) error {
	if tan.Params != nil && len(tan.Params) != len(in.Params) {
		return fmt.Errorf("%w: params tangent has %d entries, want %d", ErrDimension, len(tan.Params), len(in.Params))
	}
	if tan.InvLinParams != nil && len(tan.InvLinParams) != len(in.InvLinParams) {
		return fmt.Errorf("%w: inverse-operator params tangent has %d entries, want %d",
			ErrDimension, len(tan.InvLinParams), len(in.InvLinParams))
	}
	if tan.ShiftParams != nil && len(tan.ShiftParams) != len(in.ShiftParams) {
		return fmt.Errorf("%w: shifter params tangent has %d entries, want %d",
			ErrDimension, len(tan.ShiftParams), len(in.ShiftParams))
	}
	if tan.X != nil {
		if in.X == nil {
			return fmt.Errorf("%w: input tangent supplied without an input", ErrDimension)
		}
		if tan.X.Len() != in.X.Len() || tan.X.Dim != in.X.Dim {
			return fmt.Errorf("%w: input tangent is %dx%d, want %dx%d",
				ErrDimension, tan.X.Len(), tan.X.Dim, in.X.Len(), in.X.Dim)
		}
	}
	if tan.YInit != nil && in.YInit != nil && (tan.YInit.Len() != in.YInit.Len() || tan.YInit.Dim != in.YInit.Dim) {
		return fmt.Errorf("%w: initial guess tangent is %dx%d, want %dx%d",
			ErrDimension, tan.YInit.Len(), tan.YInit.Dim, in.YInit.Len(), in.YInit.Dim)
	}
	return nil
}
