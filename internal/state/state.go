// Package state holds the flat row-major containers the solver iterates on:
// a sequence of same-width samples and a matching sequence of square blocks.
package state

import (
	"math"

	"github.com/MoniFarsang/deer/internal/num"
)

// Seq is an n-by-dim matrix stored row-major. Row i is the sample at
// position i of the sequence.
type Seq[T num.Float] struct {
	Data []T
	Dim  int
}

func NewSeq[T num.Float](n, dim int) *Seq[T] {
	return &Seq[T]{Data: make([]T, n*dim), Dim: dim}
}

func (s *Seq[T]) Len() int {
	if s.Dim == 0 {
		return 0
	}
	return len(s.Data) / s.Dim
}

// Row returns the i-th sample as a view into the backing slice.
func (s *Seq[T]) Row(i int) []T {
	return s.Data[i*s.Dim : (i+1)*s.Dim]
}

func (s *Seq[T]) Clone() *Seq[T] {
	c := &Seq[T]{Data: make([]T, len(s.Data)), Dim: s.Dim}
	copy(c.Data, s.Data)
	return c
}

func (s *Seq[T]) CopyFrom(src *Seq[T]) {
	copy(s.Data, src.Data)
}

func (s *Seq[T]) Fill(v T) {
	for i := range s.Data {
		s.Data[i] = v
	}
}

func (s *Seq[T]) IsValid() bool {
	for _, v := range s.Data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest elementwise |s - other|. A NaN anywhere in
// the difference makes the result NaN, so callers comparing against a
// tolerance see the comparison fail and stop iterating.
func (s *Seq[T]) MaxAbsDiff(other *Seq[T]) T {
	var max T
	for i, v := range s.Data {
		d := v - other.Data[i]
		if num.IsNaN(d) {
			return T(math.NaN())
		}
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

// Clip bounds every element to [-limit, limit] and replaces NaN with zero.
func (s *Seq[T]) Clip(limit T) {
	for i, v := range s.Data {
		if num.IsNaN(v) {
			s.Data[i] = 0
			continue
		}
		s.Data[i] = num.Clamp(v, -limit, limit)
	}
}

// Blocks is a sequence of n square dim-by-dim matrices, each stored
// row-major, packed back to back.
type Blocks[T num.Float] struct {
	Data []T
	Dim  int
}

func NewBlocks[T num.Float](n, dim int) *Blocks[T] {
	return &Blocks[T]{Data: make([]T, n*dim*dim), Dim: dim}
}

func (b *Blocks[T]) Len() int {
	if b.Dim == 0 {
		return 0
	}
	return len(b.Data) / (b.Dim * b.Dim)
}

// Block returns the i-th matrix as a view into the backing slice.
func (b *Blocks[T]) Block(i int) []T {
	sz := b.Dim * b.Dim
	return b.Data[i*sz : (i+1)*sz]
}

func (b *Blocks[T]) Clone() *Blocks[T] {
	c := &Blocks[T]{Data: make([]T, len(b.Data)), Dim: b.Dim}
	copy(c.Data, b.Data)
	return c
}
