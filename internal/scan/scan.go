// Package scan evolves the affine recurrence y_i = A_i*y_{i-1} + b_i across a
// whole sequence. Evolve uses a recursive pairwise reduction whose dependency
// depth grows with log(n) rather than n, so long sequences parallelize;
// EvolveSerial is the plain loop used when memory matters more than depth.
//
// Both return n+1 rows: the initial value followed by y_1..y_n.
package scan

import (
	"github.com/MoniFarsang/deer/internal/linalg"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

const minChunk = 16

// Evolve runs the recurrence by an inclusive scan over affine pairs. The
// composition of two steps is itself affine, (A2, b2)∘(A1, b1) =
// (A2*A1, A2*b1 + b2), so adjacent pairs combine independently and the
// reduced sequence of half the length scans recursively.
func Evolve[T num.Float](a *state.Blocks[T], b *state.Seq[T], y0 []T) *state.Seq[T] {
	m := b.Len()
	dim := b.Dim

	// Element 0 is the identity map carrying y0, so after the scan the
	// vector part of element i is exactly y_i.
	sa := state.NewBlocks[T](m+1, dim)
	sb := state.NewSeq[T](m+1, dim)
	eye := sa.Block(0)
	for i := 0; i < dim; i++ {
		eye[i*dim+i] = 1
	}
	copy(sb.Row(0), y0)
	copy(sa.Data[dim*dim:], a.Data)
	copy(sb.Data[dim:], b.Data)

	scanPairs(sa, sb)
	return sb
}

// EvolveSerial runs the recurrence one step at a time.
func EvolveSerial[T num.Float](a *state.Blocks[T], b *state.Seq[T], y0 []T) *state.Seq[T] {
	m := b.Len()
	dim := b.Dim

	out := state.NewSeq[T](m+1, dim)
	copy(out.Row(0), y0)
	for i := 0; i < m; i++ {
		row := out.Row(i + 1)
		copy(row, b.Row(i))
		linalg.MatVecAcc(row, a.Block(i), out.Row(i), dim)
	}
	return out
}

// scanPairs replaces each (a_i, b_i) with the inclusive composition of
// elements 0..i.
func scanPairs[T num.Float](a *state.Blocks[T], b *state.Seq[T]) {
	n := b.Len()
	if n < 2 {
		return
	}
	dim := b.Dim
	half := n / 2

	// Combine adjacent pairs, then scan the half-length sequence.
	ra := state.NewBlocks[T](half, dim)
	rb := state.NewSeq[T](half, dim)
	num.For(half, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			combine(ra.Block(i), rb.Row(i),
				a.Block(2*i), b.Row(2*i),
				a.Block(2*i+1), b.Row(2*i+1), dim)
		}
	})
	scanPairs(ra, rb)

	// Odd output positions are the scanned reductions directly; even
	// positions beyond the first compose the preceding reduction with the
	// original element. Element 0 is already its own prefix.
	num.For(half, minChunk, func(start, end int) {
		tmp := make([]T, dim*dim)
		vtmp := make([]T, dim)
		for i := start; i < end; i++ {
			if i > 0 {
				combine(tmp, vtmp, ra.Block(i-1), rb.Row(i-1),
					a.Block(2*i), b.Row(2*i), dim)
				copy(a.Block(2*i), tmp)
				copy(b.Row(2*i), vtmp)
			}
			copy(a.Block(2*i+1), ra.Block(i))
			copy(b.Row(2*i+1), rb.Row(i))
		}
	})
	if n%2 == 1 {
		tmp := make([]T, dim*dim)
		vtmp := make([]T, dim)
		combine(tmp, vtmp, ra.Block(half-1), rb.Row(half-1),
			a.Block(n-1), b.Row(n-1), dim)
		copy(a.Block(n-1), tmp)
		copy(b.Row(n-1), vtmp)
	}
}

// combine writes the composition of (a1, b1) then (a2, b2) into (dstA, dstB):
// dstA = a2*a1, dstB = a2*b1 + b2.
func combine[T num.Float](dstA, dstB, a1, b1, a2, b2 []T, dim int) {
	linalg.MatMul(dstA, a2, a1, dim)
	copy(dstB, b2)
	linalg.MatVecAcc(dstB, a2, b1, dim)
}
