// Package linalg implements the small dense kernels used per sample: matrix
// times vector, matrix times matrix, inversion, and a direct linear solve.
// Matrices are square, row-major, and typically the size of one system state,
// so everything runs in-cache without external storage.
package linalg

import (
	"errors"
	"math"

	"github.com/MoniFarsang/deer/internal/num"
)

var ErrSingular = errors.New("linalg: singular matrix")

// MatVec writes a*v into dst. dst must not alias v.
func MatVec[T num.Float](dst, a, v []T, n int) {
	for i := 0; i < n; i++ {
		var s T
		row := a[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			s += row[j] * v[j]
		}
		dst[i] = s
	}
}

// MatVecAcc adds a*v to dst. dst must not alias v.
func MatVecAcc[T num.Float](dst, a, v []T, n int) {
	for i := 0; i < n; i++ {
		var s T
		row := a[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			s += row[j] * v[j]
		}
		dst[i] += s
	}
}

// MatMul writes a*b into dst. dst must not alias a or b.
func MatMul[T num.Float](dst, a, b []T, n int) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s T
			for k := 0; k < n; k++ {
				s += a[i*n+k] * b[k*n+j]
			}
			dst[i*n+j] = s
		}
	}
}

// Inv writes the inverse of a into dst by Gauss-Jordan elimination with
// partial pivoting. a is left untouched; dst must not alias a.
func Inv[T num.Float](dst, a []T, n int) error {
	work := make([]T, n*n)
	copy(work, a)
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < n; i++ {
		dst[i*n+i] = 1
	}

	for k := 0; k < n; k++ {
		piv := k
		maxAbs := num.Abs(work[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := num.Abs(work[i*n+k]); v > maxAbs {
				maxAbs = v
				piv = i
			}
		}
		if maxAbs == 0 || num.IsNaN(maxAbs) || math.IsInf(float64(maxAbs), 0) {
			return ErrSingular
		}
		if piv != k {
			for j := 0; j < n; j++ {
				work[k*n+j], work[piv*n+j] = work[piv*n+j], work[k*n+j]
				dst[k*n+j], dst[piv*n+j] = dst[piv*n+j], dst[k*n+j]
			}
		}

		inv := 1 / work[k*n+k]
		for j := 0; j < n; j++ {
			work[k*n+j] *= inv
			dst[k*n+j] *= inv
		}
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			f := work[i*n+k]
			if f == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				work[i*n+j] -= f * work[k*n+j]
				dst[i*n+j] -= f * dst[k*n+j]
			}
		}
	}
	return nil
}

// Solve writes the solution of a*x = b into dst using Gaussian elimination
// with partial pivoting. a and b are left untouched.
func Solve[T num.Float](dst, a, b []T, n int) error {
	aa := make([]T, n*n)
	copy(aa, a)
	bb := make([]T, n)
	copy(bb, b)

	for k := 0; k < n; k++ {
		piv := k
		maxAbs := num.Abs(aa[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := num.Abs(aa[i*n+k]); v > maxAbs {
				maxAbs = v
				piv = i
			}
		}
		if maxAbs == 0 || num.IsNaN(maxAbs) || math.IsInf(float64(maxAbs), 0) {
			return ErrSingular
		}
		if piv != k {
			for j := k; j < n; j++ {
				aa[k*n+j], aa[piv*n+j] = aa[piv*n+j], aa[k*n+j]
			}
			bb[k], bb[piv] = bb[piv], bb[k]
		}

		pivot := aa[k*n+k]
		for i := k + 1; i < n; i++ {
			f := aa[i*n+k] / pivot
			if f == 0 {
				continue
			}
			aa[i*n+k] = 0
			for j := k + 1; j < n; j++ {
				aa[i*n+j] -= f * aa[k*n+j]
			}
			bb[i] -= f * bb[k]
		}
	}

	for i := n - 1; i >= 0; i-- {
		s := bb[i]
		for j := i + 1; j < n; j++ {
			s -= aa[i*n+j] * dst[j]
		}
		dst[i] = s / aa[i*n+i]
	}
	return nil
}
