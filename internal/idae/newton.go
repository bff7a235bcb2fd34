package idae

import (
	"github.com/MoniFarsang/deer/internal/linalg"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

// runNewton marches the backward-Euler steps one at a time, solving each
// implicit equation f((y-prev)/dt, y, x_i; p) = 0 by Newton iteration
// seeded from the previous sample. It is the sequential baseline the
// parallel method is checked against.
func runNewton[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], p []T, tpts []T, cfg Newton[T]) (Report[T], error) {
	n := len(tpts)
	dim := r.Dim()

	maxIter := cfg.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultNewtonMaxIter
	}
	tol := cfg.Tol
	if tol <= 0 {
		tol = num.Tolerance[T]()
	}

	out := state.NewSeq[T](n, dim)
	copy(out.Row(0), y0)

	y := make([]T, dim)
	dydt := make([]T, dim)
	resid := make([]T, dim)
	jdot := make([]T, dim*dim)
	jy := make([]T, dim*dim)
	jac := make([]T, dim*dim)
	delta := make([]T, dim)

	report := Report[T]{Converged: true}
	for i := 1; i < n; i++ {
		dt := tpts[i] - tpts[i-1]
		prev := out.Row(i - 1)
		var xrow []T
		if x != nil {
			xrow = x.Row(i)
		}
		copy(y, prev)

		converged := false
		updates := 0
		var residNorm T
		for k := 0; k <= maxIter; k++ {
			for j := range dydt {
				dydt[j] = (y[j] - prev[j]) / dt
			}
			r.Eval(resid, dydt, y, xrow, p)
			residNorm = 0
			for _, v := range resid {
				if a := num.Abs(v); a > residNorm {
					residNorm = a
				}
			}
			if residNorm <= tol {
				converged = true
				updates = k
				break
			}
			if k == maxIter {
				break
			}

			r.Jac(jdot, jy, dydt, y, xrow, p)
			inv := 1 / dt
			for j := range jac {
				jac[j] = jdot[j]*inv + jy[j]
			}
			if err := linalg.Solve(delta, jac, resid, dim); err != nil {
				return Report[T]{}, &StepError{Step: i, Time: float64(tpts[i]), Wrapped: err}
			}
			for j := range y {
				y[j] -= delta[j]
			}
		}
		if !converged {
			return Report[T]{}, &StepError{Step: i, Time: float64(tpts[i]), Wrapped: ErrNewtonStalled}
		}

		copy(out.Row(i), y)
		if updates > report.Iters {
			report.Iters = updates
		}
		if residNorm > report.Delta {
			report.Delta = residNorm
		}
	}

	report.Y = out
	return report, nil
}
