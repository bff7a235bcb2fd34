// Package deer implements a parallel-in-time fixed-point solver for implicit
// recurrence equations of the form
//
//	L[y(r)] = f(y(r-s_1), ..., y(r-s_p), x(r); params)
//
// where L is a linear operator supplied through its inverse and f is a
// nonlinear function of the solution at p shifted offsets. Instead of
// marching through the sequence, every iteration linearizes f at the current
// estimate and updates all samples at once through the caller's inverse
// operator.
//
// The package defines the solver contract and the loop that drives it:
//
//   - [Func]: per-sample nonlinear function with Jacobian and tangent
//   - [InvLin]: sequence-wide inverse linear operator
//   - [Shifter]: produces the shifted views f depends on
//   - [System]: the three collaborators plus the shift count
//   - [Run], [Iterate]: the fixed-point loop
//   - [IterateJVP]: directional derivatives via the implicit function theorem
//
// # Convergence
//
// The loop stops when the infinity norm of the update falls to the working
// precision tolerance (1e-7 for float64, 1e-4 for float32) or the iteration
// budget runs out. Exhausting the budget is not an error; [Result] carries
// the last estimate, the update size, and a Converged flag.
//
// # Differentiation
//
// Run is deliberately opaque to differentiation. [IterateJVP] is the only
// supported path for tangents: it re-runs the loop, then applies one extra
// linearization at the solution. Two runs from identical inputs produce
// bit-identical results, which the rule depends on.
package deer
