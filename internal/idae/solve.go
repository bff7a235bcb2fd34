package idae

import (
	"fmt"

	"github.com/MoniFarsang/deer/internal/deer"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

// Report is the outcome of a solve. For the DEER method Iters and Delta
// describe the fixed-point loop and Jac carries the linearization bundles
// from its last iteration, one dim*dim block per time point per shift; for
// Newton they describe the worst step and Jac is nil.
type Report[T num.Float] struct {
	Y         *state.Seq[T]
	Jac       []*state.Blocks[T]
	Iters     int
	Delta     T
	Converged bool
}

// Run solves f(y', y, x; p) = 0 over tpts by backward Euler from the
// tentative initial condition y0. The returned sequence has one row per
// time point, row 0 equal to y0. Systems with algebraic rows keep whatever
// y0 supplies for those variables at row 0, consistent or not. A nil
// method selects DEER defaults.
func Run[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], p []T, tpts []T, m Method[T]) (Report[T], error) {
	if err := validate(r, y0, x, tpts); err != nil {
		return Report[T]{}, err
	}
	switch cfg := m.(type) {
	case nil:
		return runDEER(r, y0, x, p, tpts, DEER[T]{})
	case DEER[T]:
		return runDEER(r, y0, x, p, tpts, cfg)
	case Newton[T]:
		return runNewton(r, y0, x, p, tpts, cfg)
	default:
		return Report[T]{}, fmt.Errorf("idae: unknown method %T", m)
	}
}

// Solve is Run reduced to the trajectory.
func Solve[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], p []T, tpts []T, m Method[T]) (*state.Seq[T], error) {
	rep, err := Run(r, y0, x, p, tpts, m)
	if err != nil {
		return nil, err
	}
	return rep.Y, nil
}

// SolveJVP solves the system and propagates one directional perturbation of
// (y0, x, p, tpts) to the trajectory through the converged fixed point. Nil
// tangents mean zero. Only the DEER method carries a tangent rule.
func SolveJVP[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], p []T, tpts []T,
	dy0 []T, dx *state.Seq[T], dp []T, dtpts []T, m Method[T]) (*state.Seq[T], *state.Seq[T], error) {

	if err := validate(r, y0, x, tpts); err != nil {
		return nil, nil, err
	}
	var cfg DEER[T]
	switch c := m.(type) {
	case nil:
	case DEER[T]:
		cfg = c
	default:
		return nil, nil, ErrTangentUnsupported
	}
	if dtpts != nil && len(dtpts) != len(tpts) {
		return nil, nil, fmt.Errorf("%w: time tangent has %d entries, want %d", ErrDimension, len(dtpts), len(tpts))
	}
	if dy0 != nil && len(dy0) != len(y0) {
		return nil, nil, fmt.Errorf("%w: initial tangent has %d entries, want %d", ErrDimension, len(dy0), len(y0))
	}
	if dx != nil && x == nil {
		return nil, nil, fmt.Errorf("%w: input tangent supplied without an input", ErrDimension)
	}

	sys, in, opt := assemble(r, y0, x, p, tpts, cfg)

	// The packed input row is [dt | x...], so time and input tangents land
	// in the same tangent sequence: a moved grid moves the steps, with the
	// first-row duplication applied to the tangent as well.
	tan := deer.Tangents[T]{Params: dp, InvLinParams: dy0}
	if dx != nil || dtpts != nil {
		dxin := state.NewSeq[T](len(tpts), in.X.Dim)
		if dtpts != nil {
			writeSteps(dxin, dtpts)
		}
		if dx != nil {
			if dx.Len() != x.Len() || dx.Dim != x.Dim {
				return nil, nil, fmt.Errorf("%w: input tangent is %dx%d, want %dx%d",
					ErrDimension, dx.Len(), dx.Dim, x.Len(), x.Dim)
			}
			for i := 0; i < dx.Len(); i++ {
				copy(dxin.Row(i)[1:], dx.Row(i))
			}
		}
		tan.X = dxin
	}

	return deer.IterateJVP(sys, in, tan, opt)
}

func runDEER[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], p []T, tpts []T, cfg DEER[T]) (Report[T], error) {
	if cfg.YInit != nil && (cfg.YInit.Len() != len(tpts) || cfg.YInit.Dim != r.Dim()) {
		return Report[T]{}, fmt.Errorf("%w: initial guess is %dx%d, want %dx%d",
			ErrDimension, cfg.YInit.Len(), cfg.YInit.Dim, len(tpts), r.Dim())
	}

	sys, in, opt := assemble(r, y0, x, p, tpts, cfg)
	res, err := deer.Run(sys, in, opt)
	if err != nil {
		return Report[T]{}, err
	}
	return Report[T]{Y: res.Y, Jac: res.Jac, Iters: res.Iters, Delta: res.Delta, Converged: res.Converged}, nil
}

// assemble builds the fixed-point collaborators for the backward-Euler
// discretization: a two-shift system whose inverse operator pins row 0 to
// y0 and solves the block-bidiagonal remainder by affine recurrence.
func assemble[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], p []T, tpts []T, cfg DEER[T]) (deer.System[T], deer.Inputs[T], deer.Options) {
	n := len(tpts)
	dim := r.Dim()
	xdim := 0
	if x != nil {
		xdim = x.Dim
	}

	xin := state.NewSeq[T](n, 1+xdim)
	writeSteps(xin, tpts)
	if x != nil {
		for i := 0; i < n; i++ {
			copy(xin.Row(i)[1:], x.Row(i))
		}
	}

	yinit := cfg.YInit
	if yinit == nil {
		yinit = state.NewSeq[T](n, dim)
		for i := 0; i < n; i++ {
			copy(yinit.Row(i), y0)
		}
	}

	maxIter := cfg.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultDEERMaxIter
	}

	sys := deer.System[T]{
		Func:    &bwdFunc[T]{r: r, dim: dim},
		InvLin:  &bwdInvLin[T]{dim: dim, serial: cfg.MemoryEfficient},
		Shifter: bwdShifter[T]{},
		Shifts:  2,
	}
	in := deer.Inputs[T]{
		Params:       p,
		X:            xin,
		InvLinParams: y0,
		YInit:        yinit,
	}
	opt := deer.Options{MaxIter: maxIter, Clip: true, Observer: cfg.Observer}
	return sys, in, opt
}

// writeSteps fills column 0 of dst with consecutive differences of ts,
// duplicating the first difference so row 0 carries a finite step too.
func writeSteps[T num.Float](dst *state.Seq[T], ts []T) {
	n := dst.Len()
	for i := 0; i < n; i++ {
		k := i
		if k == 0 {
			k = 1
		}
		dst.Row(i)[0] = ts[k] - ts[k-1]
	}
}

func validate[T num.Float](r Residual[T], y0 []T, x *state.Seq[T], tpts []T) error {
	if r == nil {
		return ErrNilResidual
	}
	if len(tpts) < 2 {
		return ErrTooFewPoints
	}
	if len(y0) != r.Dim() {
		return fmt.Errorf("%w: y0 has %d entries, system width is %d", ErrDimension, len(y0), r.Dim())
	}
	if x != nil && x.Len() != len(tpts) {
		return fmt.Errorf("%w: input has %d samples, tpts has %d", ErrDimension, x.Len(), len(tpts))
	}
	return nil
}
