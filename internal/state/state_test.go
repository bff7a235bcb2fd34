package state

import (
	"math"
	"testing"
)

func TestSeqRowViews(t *testing.T) {
	s := NewSeq[float64](3, 2)
	for i := 0; i < 3; i++ {
		row := s.Row(i)
		row[0] = float64(i)
		row[1] = float64(i) * 10
	}

	want := []float64{0, 0, 1, 10, 2, 20}
	for i, v := range want {
		if s.Data[i] != v {
			t.Fatalf("Data[%d] = %g, want %g", i, s.Data[i], v)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestSeqCloneIsIndependent(t *testing.T) {
	s := NewSeq[float64](2, 2)
	s.Fill(1)
	c := s.Clone()
	c.Data[0] = 99

	if s.Data[0] != 1 {
		t.Error("mutating the clone changed the source")
	}
	if c.Dim != s.Dim || len(c.Data) != len(s.Data) {
		t.Error("clone shape differs from source")
	}
}

func TestMaxAbsDiff(t *testing.T) {
	a := &Seq[float64]{Data: []float64{1, 2, 3, 4}, Dim: 2}
	b := &Seq[float64]{Data: []float64{1, 2.5, 2, 4}, Dim: 2}

	if got := a.MaxAbsDiff(b); got != 1 {
		t.Errorf("MaxAbsDiff = %g, want 1", got)
	}
	if got := a.MaxAbsDiff(a); got != 0 {
		t.Errorf("MaxAbsDiff(self) = %g, want 0", got)
	}
}

func TestMaxAbsDiffPropagatesNaN(t *testing.T) {
	a := &Seq[float64]{Data: []float64{1, math.NaN()}, Dim: 2}
	b := &Seq[float64]{Data: []float64{1, 0}, Dim: 2}

	if got := a.MaxAbsDiff(b); !math.IsNaN(got) {
		t.Errorf("MaxAbsDiff with NaN operand = %g, want NaN", got)
	}
	// NaN must lose the tolerance comparison so iteration halts.
	if a.MaxAbsDiff(b) > 1e-7 {
		t.Error("NaN compared greater than tolerance")
	}
}

func TestClip(t *testing.T) {
	s := &Seq[float64]{Data: []float64{2e8, -3e8, 5, math.NaN()}, Dim: 2}
	s.Clip(1e8)

	want := []float64{1e8, -1e8, 5, 0}
	for i, v := range want {
		if s.Data[i] != v {
			t.Errorf("Data[%d] = %g after Clip, want %g", i, s.Data[i], v)
		}
	}
}

func TestIsValid(t *testing.T) {
	ok := &Seq[float64]{Data: []float64{1, -2, 0.5}, Dim: 3}
	if !ok.IsValid() {
		t.Error("finite sequence reported invalid")
	}

	bad := &Seq[float64]{Data: []float64{1, math.Inf(1)}, Dim: 2}
	if bad.IsValid() {
		t.Error("Inf sequence reported valid")
	}

	nan := &Seq[float32]{Data: []float32{float32(math.NaN())}, Dim: 1}
	if nan.IsValid() {
		t.Error("NaN sequence reported valid")
	}
}

func TestBlocks(t *testing.T) {
	b := NewBlocks[float64](2, 2)
	copy(b.Block(0), []float64{1, 2, 3, 4})
	copy(b.Block(1), []float64{5, 6, 7, 8})

	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if b.Block(1)[3] != 8 {
		t.Errorf("Block(1)[3] = %g, want 8", b.Block(1)[3])
	}

	c := b.Clone()
	c.Block(0)[0] = -1
	if b.Block(0)[0] != 1 {
		t.Error("mutating block clone changed the source")
	}
}
