// Package linprog is a small linear-programming front end: declare
// continuous variables (free or lower-bounded), add linear constraints, and
// maximize or minimize a linear objective.
//
// Programs are converted to the standard form
//
//	minimize cᵀx  s.t.  A·x = b, x ≥ 0
//
// and solved with gonum's simplex (gonum.org/v1/gonum/optimize/convex/lp):
//   - a lower-bounded variable v ≥ L becomes v = L + y, y ≥ 0;
//   - a free variable v becomes v = y⁺ − y⁻;
//   - ≤ rows get a slack column, ≥ rows a surplus column;
//   - rows are sign-normalized to b ≥ 0, empty rows and columns are removed.
//
// Errors:
//   - ErrInfeasible, ErrUnbounded: the program has no optimum;
//   - ErrUnknownVariable, ErrBadTerm: malformed input;
//   - any other simplex failure is wrapped as "linprog: simplex: ...".
//
// A Program is not safe for concurrent use; build one per solve.
package linprog
