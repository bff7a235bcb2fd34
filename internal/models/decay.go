package models

import "github.com/MoniFarsang/deer/internal/num"

// Decay is exponential relaxation toward zero with an optional forcing
// input: y' + k*y - u = 0. The rate k is p[0]; u is the first input
// column when one is supplied.
type Decay[T num.Float] struct{}

func (Decay[T]) Dim() int { return 1 }

func (Decay[T]) Eval(dst []T, dydt, y, x, p []T) {
	dst[0] = dydt[0] + p[0]*y[0]
	if len(x) > 0 {
		dst[0] -= x[0]
	}
}

func (Decay[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	jdot[0] = 1
	jy[0] = p[0]
}

func (Decay[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	var d T
	if dp != nil {
		d = dp[0] * y[0]
	}
	if len(dx) > 0 {
		d -= dx[0]
	}
	dst[0] = d
}
