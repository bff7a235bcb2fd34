package models

import "github.com/MoniFarsang/deer/internal/num"

// Pendulum is a damped rigid pendulum with an optional drive torque:
// theta' - omega = 0 and omega' + (g/l)*sin(theta) + c*omega - tau = 0.
// Parameters are gravity g = p[0], length l = p[1], damping c = p[2];
// tau is the first input column when one is supplied.
type Pendulum[T num.Float] struct{}

func (Pendulum[T]) Dim() int { return 2 }

func (Pendulum[T]) Eval(dst []T, dydt, y, x, p []T) {
	g, l, c := p[0], p[1], p[2]
	dst[0] = dydt[0] - y[1]
	dst[1] = dydt[1] + g/l*num.Sin(y[0]) + c*y[1]
	if len(x) > 0 {
		dst[1] -= x[0]
	}
}

func (Pendulum[T]) Jac(jdot, jy []T, dydt, y, x, p []T) {
	g, l, c := p[0], p[1], p[2]
	jdot[0], jdot[1] = 1, 0
	jdot[2], jdot[3] = 0, 1
	jy[0], jy[1] = 0, -1
	jy[2] = g / l * num.Cos(y[0])
	jy[3] = c
}

func (Pendulum[T]) JVP(dst []T, dydt, y, x, p, dx, dp []T) {
	dst[0] = 0
	dst[1] = 0
	if dp != nil {
		g, l := p[0], p[1]
		s := num.Sin(y[0])
		dst[1] = dp[0]*s/l - dp[1]*g*s/(l*l) + dp[2]*y[1]
	}
	if len(dx) > 0 {
		dst[1] -= dx[0]
	}
}
