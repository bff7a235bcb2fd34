package models

import "github.com/MoniFarsang/deer/internal/num"

// Lorenz is the three-variable convection model, the standard chaotic
// benchmark. Parameters are sigma = p[0], rho = p[1], beta = p[2].
type Lorenz[T num.Float] struct{}

func (Lorenz[T]) Dim() int { return 3 }

func (Lorenz[T]) Eval(dst []T, dydt, y, x, p []T) {
	sigma, rho, beta := p[0], p[1], p[2]
	dst[0] = dydt[0] - sigma*(y[1]-y[0])
	dst[1] = dydt[1] - y[0]*(rho-y[2]) + y[1]
	dst[2] = dydt[2] - y[0]*y[1] + beta*y[2]
}

func (Lorenz[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	sigma, rho, beta := p[0], p[1], p[2]
	for i := range jdot {
		jdot[i] = 0
	}
	jdot[0], jdot[4], jdot[8] = 1, 1, 1

	jy[0], jy[1], jy[2] = sigma, -sigma, 0
	jy[3], jy[4], jy[5] = y[2]-rho, 1, y[0]
	jy[6], jy[7], jy[8] = -y[1], -y[0], beta
}

func (Lorenz[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	dst[0], dst[1], dst[2] = 0, 0, 0
	if dp == nil {
		return
	}
	dst[0] = -dp[0] * (y[1] - y[0])
	dst[1] = -dp[1] * y[0]
	dst[2] = dp[2] * y[2]
}
