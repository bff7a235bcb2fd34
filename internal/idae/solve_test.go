package idae_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MoniFarsang/deer/internal/idae"
	"github.com/MoniFarsang/deer/internal/linalg"
	"github.com/MoniFarsang/deer/internal/models"
	"github.com/MoniFarsang/deer/internal/state"
)

func grid(t0, t1 float64, n int) []float64 {
	ts := make([]float64, n)
	h := (t1 - t0) / float64(n-1)
	for i := range ts {
		ts[i] = t0 + float64(i)*h
	}
	ts[n-1] = t1
	return ts
}

func expectClose(a, b *state.Seq[float64], tol float64) {
	ExpectWithOffset(1, a.Len()).To(Equal(b.Len()))
	ExpectWithOffset(1, a.Dim).To(Equal(b.Dim))
	for i := range a.Data {
		ExpectWithOffset(1, a.Data[i]).To(BeNumerically("~", b.Data[i], tol))
	}
}

var _ = Describe("Solve", func() {
	Describe("with the parallel method", func() {
		It("reproduces unit-step linear decay exactly", func() {
			r, err := models.Build[float64]("decay")
			Expect(err).NotTo(HaveOccurred())

			rep, err := idae.Run(r, []float64{1}, nil, []float64{1}, []float64{0, 1, 2}, nil)
			Expect(err).NotTo(HaveOccurred())

			// A linear system is solved by the first sweep; the second
			// only confirms it. Every quantity here is a small power of
			// two, so the comparison can be exact.
			Expect(rep.Converged).To(BeTrue())
			Expect(rep.Iters).To(Equal(2))
			Expect(rep.Delta).To(BeZero())
			Expect(rep.Y.Row(0)[0]).To(Equal(1.0))
			Expect(rep.Y.Row(1)[0]).To(Equal(0.5))
			Expect(rep.Y.Row(2)[0]).To(Equal(0.25))
		})

		It("stays put when started from the solution", func() {
			r, err := models.Build[float64]("decay")
			Expect(err).NotTo(HaveOccurred())

			first, err := idae.Run(r, []float64{1}, nil, []float64{1}, []float64{0, 1, 2}, nil)
			Expect(err).NotTo(HaveOccurred())

			again, err := idae.Run(r, []float64{1}, nil, []float64{1}, []float64{0, 1, 2},
				idae.DEER[float64]{YInit: first.Y})
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Iters).To(Equal(1))
			Expect(again.Delta).To(BeZero())
			Expect(again.Y.Data).To(Equal(first.Y.Data))
		})

		It("agrees with Newton marching on the van der Pol oscillator", func() {
			r, err := models.Build[float64]("vanderpol")
			Expect(err).NotTo(HaveOccurred())

			y0 := []float64{2, 0}
			p := []float64{2}
			tpts := grid(0, 2, 65)

			par, err := idae.Run(r, y0, nil, p, tpts, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(par.Converged).To(BeTrue())

			seq, err := idae.Run(r, y0, nil, p, tpts, idae.Newton[float64]{})
			Expect(err).NotTo(HaveOccurred())

			expectClose(par.Y, seq.Y, 1e-5)
		})

		It("solves the robertson kinetics with its algebraic constraint", func() {
			r, err := models.Build[float64]("robertson")
			Expect(err).NotTo(HaveOccurred())
			info, err := models.Describe("robertson")
			Expect(err).NotTo(HaveOccurred())

			tpts := grid(0, 1, 101)
			par, err := idae.Run(r, info.Y0, nil, info.Defaults, tpts, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(par.Converged).To(BeTrue())

			for i := 1; i < par.Y.Len(); i++ {
				row := par.Y.Row(i)
				Expect(row[0] + row[1] + row[2]).To(BeNumerically("~", 1, 1e-5))
			}

			seq, err := idae.Run(r, info.Y0, nil, info.Defaults, tpts, idae.Newton[float64]{})
			Expect(err).NotTo(HaveOccurred())
			expectClose(par.Y, seq.Y, 1e-4)
		})

		It("matches the log-depth and sequential recurrence paths", func() {
			r, err := models.Build[float64]("vanderpol")
			Expect(err).NotTo(HaveOccurred())

			y0 := []float64{2, 0}
			p := []float64{2}
			tpts := grid(0, 2, 40)

			fast, err := idae.Solve(r, y0, nil, p, tpts, nil)
			Expect(err).NotTo(HaveOccurred())
			lean, err := idae.Solve(r, y0, nil, p, tpts, idae.DEER[float64]{MemoryEfficient: true})
			Expect(err).NotTo(HaveOccurred())

			expectClose(fast, lean, 1e-10)
		})

		It("carries the tolerance of the working precision", func() {
			r, err := models.Build[float32]("decay")
			Expect(err).NotTo(HaveOccurred())

			rep, err := idae.Run(r, []float32{1}, nil, []float32{1}, []float32{0, 1, 2}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Converged).To(BeTrue())
			Expect(rep.Y.Row(1)[0]).To(Equal(float32(0.5)))
			Expect(rep.Y.Row(2)[0]).To(Equal(float32(0.25)))
		})

		It("pins the first row to the initial state", func() {
			r, err := models.Build[float64]("pendulum")
			Expect(err).NotTo(HaveOccurred())

			tpts := grid(0, 1, 17)
			x := state.NewSeq[float64](17, 1)
			for i := 0; i < 17; i++ {
				x.Row(i)[0] = 0.4 * math.Sin(tpts[i])
			}

			y0 := []float64{0.5, 0}
			y, err := idae.Solve(r, y0, x, []float64{9.81, 1, 0.1}, tpts, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(y.Len()).To(Equal(17))
			Expect(y.Dim).To(Equal(2))
			Expect(y.Row(0)).To(Equal(y0))
		})
	})

	Describe("with Newton marching", func() {
		It("solves each linear step in a single update", func() {
			r, err := models.Build[float64]("decay")
			Expect(err).NotTo(HaveOccurred())

			rep, err := idae.Run(r, []float64{1}, nil, []float64{1}, []float64{0, 1, 2},
				idae.Newton[float64]{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Converged).To(BeTrue())
			Expect(rep.Iters).To(Equal(1))
			Expect(rep.Y.Row(1)[0]).To(Equal(0.5))
			Expect(rep.Y.Row(2)[0]).To(Equal(0.25))
		})

		It("reports a step error on a singular Jacobian", func() {
			flat := idae.NumJac[float64]{Width: 1, Func: func(dst []float64, dydt, y, x, p []float64) {
				dst[0] = -1
			}}

			_, err := idae.Solve(flat, []float64{0}, nil, nil, []float64{0, 0.5, 1},
				idae.Newton[float64]{})
			Expect(err).To(MatchError(linalg.ErrSingular))

			var step *idae.StepError
			Expect(errors.As(err, &step)).To(BeTrue())
			Expect(step.Step).To(Equal(1))
			Expect(step.Time).To(Equal(0.5))
		})

		It("reports a stall when no root exists", func() {
			noRoot := idae.NumJac[float64]{Width: 1, Func: func(dst []float64, dydt, y, x, p []float64) {
				dst[0] = y[0]*y[0] + 1
			}}

			_, err := idae.Solve(noRoot, []float64{0.5}, nil, nil, []float64{0, 1},
				idae.Newton[float64]{})
			Expect(err).To(MatchError(idae.ErrNewtonStalled))

			var step *idae.StepError
			Expect(errors.As(err, &step)).To(BeTrue())
			Expect(step.Step).To(Equal(1))
		})
	})

	Describe("input validation", func() {
		var decay idae.Residual[float64]

		BeforeEach(func() {
			var err error
			decay, err = models.Build[float64]("decay")
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a nil residual", func() {
			_, err := idae.Solve[float64](nil, []float64{1}, nil, nil, []float64{0, 1}, nil)
			Expect(err).To(MatchError(idae.ErrNilResidual))
		})

		It("rejects a single time point", func() {
			_, err := idae.Solve(decay, []float64{1}, nil, []float64{1}, []float64{0}, nil)
			Expect(err).To(MatchError(idae.ErrTooFewPoints))
		})

		It("rejects a mis-sized initial state", func() {
			_, err := idae.Solve(decay, []float64{1, 2}, nil, []float64{1}, []float64{0, 1}, nil)
			Expect(err).To(MatchError(idae.ErrDimension))
		})

		It("rejects an input sequence with the wrong sample count", func() {
			x := state.NewSeq[float64](3, 1)
			_, err := idae.Solve(decay, []float64{1}, x, []float64{1}, []float64{0, 1}, nil)
			Expect(err).To(MatchError(idae.ErrDimension))
		})

		It("rejects a mis-shaped initial guess", func() {
			bad := state.NewSeq[float64](5, 1)
			_, err := idae.Solve(decay, []float64{1}, nil, []float64{1}, []float64{0, 1},
				idae.DEER[float64]{YInit: bad})
			Expect(err).To(MatchError(idae.ErrDimension))
		})
	})
})
