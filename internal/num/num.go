// Package num provides the scalar kernel shared by the solver packages:
// the working-precision constraint, precision-dependent tolerances, and
// small helpers for clamping and NaN handling.
//
// All numeric packages in this module are generic over [Float]; the
// convergence tolerance of the fixed-point iteration follows the working
// precision, so the constraint is limited to the two exact floating types.
package num

import "math"

// Float is the working precision of the solver kernels.
type Float interface {
	float32 | float64
}

// Tolerance returns the convergence tolerance for the working precision:
// 1e-4 in single precision, 1e-7 in double precision.
func Tolerance[T Float]() T {
	var z T
	if _, ok := any(z).(float32); ok {
		return T(1e-4)
	}
	return T(1e-7)
}

// Step returns the central-difference step matched to the working precision,
// used where derivatives are approximated numerically.
func Step[T Float]() T {
	var z T
	if _, ok := any(z).(float32); ok {
		return T(1e-3)
	}
	return T(1e-6)
}

// Abs returns |v|.
func Abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// IsNaN reports whether v is an IEEE not-a-number.
func IsNaN[T Float](v T) bool {
	return v != v
}

// Clamp limits v to [lo, hi].
func Clamp[T Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sin returns sin(v) in the working precision.
func Sin[T Float](v T) T {
	return T(math.Sin(float64(v)))
}

// Cos returns cos(v) in the working precision.
func Cos[T Float](v T) T {
	return T(math.Cos(float64(v)))
}
