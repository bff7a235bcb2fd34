package models

import "github.com/MoniFarsang/deer/internal/num"

// VanDerPol is the van der Pol relaxation oscillator in first-order form,
// v' = mu*(1-y^2)*v - y with y' = v and mu = p[0]. Large mu makes it stiff.
type VanDerPol[T num.Float] struct{}

func (VanDerPol[T]) Dim() int { return 2 }

func (VanDerPol[T]) Eval(dst []T, dydt, y, x, p []T) {
	mu := p[0]
	dst[0] = dydt[0] - y[1]
	dst[1] = dydt[1] - mu*(1-y[0]*y[0])*y[1] + y[0]
}

func (VanDerPol[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	mu := p[0]
	jdot[0], jdot[1] = 1, 0
	jdot[2], jdot[3] = 0, 1
	jy[0], jy[1] = 0, -1
	jy[2] = 2*mu*y[0]*y[1] + 1
	jy[3] = -mu * (1 - y[0]*y[0])
}

func (VanDerPol[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	dst[0] = 0
	dst[1] = 0
	if dp != nil {
		dst[1] = -dp[0] * (1 - y[0]*y[0]) * y[1]
	}
}
