package models

import "github.com/MoniFarsang/deer/internal/num"

// Robertson is the classic stiff reaction benchmark written as a DAE: two
// kinetic equations plus the mass-balance constraint y0 + y1 + y2 = 1. The
// third row has no derivative, so the system only makes sense for an
// implicit solver. Rates are k1 = p[0], k2 = p[1], k3 = p[2].
type Robertson[T num.Float] struct{}

func (Robertson[T]) Dim() int { return 3 }

func (Robertson[T]) Eval(dst []T, dydt, y, x, p []T) {
	k1, k2, k3 := p[0], p[1], p[2]
	dst[0] = dydt[0] + k1*y[0] - k2*y[1]*y[2]
	dst[1] = dydt[1] - k1*y[0] + k2*y[1]*y[2] + k3*y[1]*y[1]
	dst[2] = y[0] + y[1] + y[2] - 1
}

func (Robertson[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	k1, k2, k3 := p[0], p[1], p[2]
	for i := range jdot {
		jdot[i] = 0
	}
	jdot[0], jdot[4] = 1, 1

	jy[0], jy[1], jy[2] = k1, -k2*y[2], -k2*y[1]
	jy[3], jy[4], jy[5] = -k1, k2*y[2]+2*k3*y[1], k2*y[1]
	jy[6], jy[7], jy[8] = 1, 1, 1
}

func (Robertson[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	dst[0], dst[1], dst[2] = 0, 0, 0
	if dp == nil {
		return
	}
	dst[0] = dp[0]*y[0] - dp[1]*y[1]*y[2]
	dst[1] = -dp[0]*y[0] + dp[1]*y[1]*y[2] + dp[2]*y[1]*y[1]
}
