package idae

import (
	"github.com/MoniFarsang/deer/internal/deer"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
)

const (
	// DefaultDEERMaxIter bounds the fixed-point loop of the DEER method.
	// Stiff systems can need thousands of sweeps before the whole
	// sequence settles, so the budget is far larger than the core
	// default.
	DefaultDEERMaxIter = 10000

	// DefaultNewtonMaxIter bounds each per-step Newton solve.
	DefaultNewtonMaxIter = 25
)

// Method selects how Solve computes the trajectory. The set is closed:
// [DEER] updates all samples simultaneously through the fixed-point engine,
// [Newton] marches one step at a time.
type Method[T num.Float] interface {
	method()
}

// DEER configures the parallel-in-time method. The zero value is the
// default configuration: initial guess broadcast from y0, DefaultDEERMaxIter
// iterations, the clip guard enabled, and the log-depth parallel recurrence
// solve. MemoryEfficient trades that for the constant-memory sequential
// solve. Tangent propagation through SolveJVP is available only with this
// method.
type DEER[T num.Float] struct {
	YInit           *state.Seq[T]
	MaxIter         int
	MemoryEfficient bool
	Observer        deer.Observer
}

func (DEER[T]) method() {}

// Newton configures sequential backward-Euler marching. Each step solves
// its implicit equation by undamped Newton iteration from the previous
// sample. Tol zero selects the working-precision tolerance. Unlike DEER,
// a step that stalls or hits a singular Jacobian is an error.
type Newton[T num.Float] struct {
	MaxIter int
	Tol     T
}

func (Newton[T]) method() {}
