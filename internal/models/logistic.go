package models

import "github.com/MoniFarsang/deer/internal/num"

// Logistic is saturating growth y' - r*y*(1 - y/K) = 0 with growth rate
// r = p[0] and carrying capacity K = p[1].
type Logistic[T num.Float] struct{}

func (Logistic[T]) Dim() int { return 1 }

func (Logistic[T]) Eval(dst []T, dydt, y, x, p []T) {
	r, k := p[0], p[1]
	dst[0] = dydt[0] - r*y[0]*(1-y[0]/k)
}

func (Logistic[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	r, k := p[0], p[1]
	jdot[0] = 1
	jy[0] = -r * (1 - 2*y[0]/k)
}

func (Logistic[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	dst[0] = 0
	if dp == nil {
		return
	}
	r, k := p[0], p[1]
	dst[0] = dp[0]*(-y[0]*(1-y[0]/k)) + dp[1]*(-r*y[0]*y[0]/(k*k))
}
