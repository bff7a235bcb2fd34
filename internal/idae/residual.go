package idae

import "github.com/MoniFarsang/deer/internal/num"

// Residual is an implicit differential-algebraic system f(y', y, x; p) = 0
// evaluated at a single time sample. x is the external input row at that
// sample, nil when the system has none. Rows of f with no y' dependence are
// algebraic constraints; the solver never needs the mass matrix to be
// invertible, only the combined backward-Euler Jacobian.
type Residual[T num.Float] interface {
	Dim() int

	// Eval writes f(dydt, y, x; p) into dst.
	Eval(dst []T, dydt, y, x, p []T)

	// Jac writes the Jacobians of f with respect to dydt and y as
	// row-major dim*dim blocks. Every entry must be written.
	Jac(jdot, jy []T, dydt, y, x, p []T)

	// JVP writes the directional derivative of f with respect to (x, p)
	// along (dx, dp), holding dydt and y fixed. Nil tangents mean zero.
	JVP(dst []T, dydt, y, x, p, dx, dp []T)
}

// NumJac adapts a plain residual evaluation into the full [Residual]
// contract with central-difference Jacobians and directional derivatives.
// Step zero selects a precision-appropriate default. Intended for quick
// experiments and for cross-checking hand-written Jacobians; analytic
// derivatives are both faster and more accurate.
type NumJac[T num.Float] struct {
	Width int
	Func  func(dst []T, dydt, y, x, p []T)
	Step  T
}

func (n NumJac[T]) Dim() int { return n.Width }

func (n NumJac[T]) Eval(dst []T, dydt, y, x, p []T) {
	n.Func(dst, dydt, y, x, p)
}

func (n NumJac[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	d := n.Width
	h := n.step()
	up := make([]T, d)
	dn := make([]T, d)
	pt := make([]T, d)

	copy(pt, dydt)
	for j := 0; j < d; j++ {
		orig := pt[j]
		pt[j] = orig + h
		n.Func(up, pt, y, x, p)
		pt[j] = orig - h
		n.Func(dn, pt, y, x, p)
		pt[j] = orig
		for i := 0; i < d; i++ {
			jdot[i*d+j] = (up[i] - dn[i]) / (2 * h)
		}
	}

	copy(pt, y)
	for j := 0; j < d; j++ {
		orig := pt[j]
		pt[j] = orig + h
		n.Func(up, dydt, pt, x, p)
		pt[j] = orig - h
		n.Func(dn, dydt, pt, x, p)
		pt[j] = orig
		for i := 0; i < d; i++ {
			jy[i*d+j] = (up[i] - dn[i]) / (2 * h)
		}
	}
}

func (n NumJac[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	d := n.Width
	h := n.step()
	up := make([]T, d)
	dn := make([]T, d)
	xUp := shiftAlong(x, dx, h)
	xDn := shiftAlong(x, dx, -h)
	pUp := shiftAlong(p, dp, h)
	pDn := shiftAlong(p, dp, -h)

	n.Func(up, dydt, y, xUp, pUp)
	n.Func(dn, dydt, y, xDn, pDn)
	for i := 0; i < d; i++ {
		dst[i] = (up[i] - dn[i]) / (2 * h)
	}
}

func (n NumJac[T]) step() T {
	if n.Step > 0 {
		return n.Step
	}
	return num.Step[T]()
}

func shiftAlong[T num.Float](base, dir []T, h T) []T {
	if dir == nil {
		return base
	}
	out := make([]T, len(base))
	for i := range base {
		out[i] = base[i] + h*dir[i]
	}
	return out
}
