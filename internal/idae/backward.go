package idae

import (
	"fmt"
	"sync"

	"github.com/MoniFarsang/deer/internal/linalg"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/scan"
	"github.com/MoniFarsang/deer/internal/state"
)

const invMinChunk = 4

// bwdShifter produces (y_i, y_{i-1}) with the first row repeated, the
// two-point stencil of backward Euler.
type bwdShifter[T num.Float] struct{}

func (bwdShifter[T]) Shift(y *state.Seq[T], _ []T) []*state.Seq[T] {
	dim := y.Dim
	ym1 := state.NewSeq[T](y.Len(), dim)
	copy(ym1.Data[:dim], y.Data[:dim])
	copy(ym1.Data[dim:], y.Data[:len(y.Data)-dim])
	return []*state.Seq[T]{y, ym1}
}

// bwdFunc adapts a Residual to the fixed-point contract: the packed input
// row is [dt | x...], the divided difference (y - ym1)/dt stands in for y',
// and the chain rule folds the dt dependence into the shift Jacobians.
type bwdFunc[T num.Float] struct {
	r   Residual[T]
	dim int
}

func (f *bwdFunc[T]) Eval(dst []T, ys [][]T, x, p []T) {
	dt := x[0]
	var xrow []T
	if len(x) > 1 {
		xrow = x[1:]
	}
	dydt := make([]T, f.dim)
	for j := range dydt {
		dydt[j] = (ys[0][j] - ys[1][j]) / dt
	}
	f.r.Eval(dst, dydt, ys[0], xrow, p)
}

func (f *bwdFunc[T]) Jac(jac [][]T, ys [][]T, x, p []T) {
	dt := x[0]
	var xrow []T
	if len(x) > 1 {
		xrow = x[1:]
	}
	dydt := make([]T, f.dim)
	for j := range dydt {
		dydt[j] = (ys[0][j] - ys[1][j]) / dt
	}

	// d f/d y_i = Jdot/dt + Jy and d f/d y_{i-1} = -Jdot/dt. jac[0]
	// doubles as the Jy scratch; the combine below reads and rewrites it
	// entry by entry.
	jdot := make([]T, f.dim*f.dim)
	f.r.Jac(jdot, jac[0], dydt, ys[0], xrow, p)
	inv := 1 / dt
	for i := range jdot {
		jac[0][i] += jdot[i] * inv
		jac[1][i] = -jdot[i] * inv
	}
}

func (f *bwdFunc[T]) JVP(dst []T, ys [][]T, x, p, dx, dp []T) {
	dt := x[0]
	var xrow, dxrow []T
	if len(x) > 1 {
		xrow = x[1:]
		dxrow = dx[1:]
	}
	dydt := make([]T, f.dim)
	for j := range dydt {
		dydt[j] = (ys[0][j] - ys[1][j]) / dt
	}

	f.r.JVP(dst, dydt, ys[0], xrow, p, dxrow, dp)

	// A moved step moves the divided difference by -(y - ym1)/dt^2.
	if ddt := dx[0]; ddt != 0 {
		jdot := make([]T, f.dim*f.dim)
		jy := make([]T, f.dim*f.dim)
		f.r.Jac(jdot, jy, dydt, ys[0], xrow, p)

		ddydt := make([]T, f.dim)
		scale := -ddt / (dt * dt)
		for j := range ddydt {
			ddydt[j] = (ys[0][j] - ys[1][j]) * scale
		}
		linalg.MatVecAcc(dst, jdot, ddydt, f.dim)
	}
}

// bwdInvLin solves the block-bidiagonal system M0_i y_i + M1_i y_{i-1} = z_i
// for samples 1..n-1 with row 0 pinned to y0 (the operator params). Each
// sample's M0 is inverted independently; the surviving recurrence
// y_i = A_i y_{i-1} + b_i then evolves from y0.
type bwdInvLin[T num.Float] struct {
	dim    int
	serial bool
}

func (l *bwdInvLin[T]) Solve(jac []*state.Blocks[T], rhs *state.Seq[T], p []T) (*state.Seq[T], error) {
	m0, m1 := jac[0], jac[1]
	dim := l.dim
	steps := rhs.Len() - 1

	a := state.NewBlocks[T](steps, dim)
	b := state.NewSeq[T](steps, dim)

	var (
		mu       sync.Mutex
		solveErr error
	)
	num.For(steps, invMinChunk, func(start, end int) {
		minv := make([]T, dim*dim)
		for i := start; i < end; i++ {
			if err := linalg.Inv(minv, m0.Block(i+1), dim); err != nil {
				mu.Lock()
				if solveErr == nil {
					solveErr = fmt.Errorf("sample %d: %w", i+1, err)
				}
				mu.Unlock()
				return
			}
			blk := a.Block(i)
			linalg.MatMul(blk, minv, m1.Block(i+1), dim)
			for j := range blk {
				blk[j] = -blk[j]
			}
			linalg.MatVec(b.Row(i), minv, rhs.Row(i+1), dim)
		}
	})
	if solveErr != nil {
		return nil, solveErr
	}

	if l.serial {
		return scan.EvolveSerial(a, b, p), nil
	}
	return scan.Evolve(a, b, p), nil
}

// JVP forwards to Solve: the operator is linear in both the right-hand side
// and the pinned initial row.
func (l *bwdInvLin[T]) JVP(jac []*state.Blocks[T], rhs *state.Seq[T], p []T, drhs *state.Seq[T], dp []T) (*state.Seq[T], error) {
	return l.Solve(jac, drhs, dp)
}
