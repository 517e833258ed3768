package linprog

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Program.
var (
	// ErrInfeasible indicates that no assignment satisfies every constraint.
	ErrInfeasible = errors.New("linprog: infeasible program")

	// ErrUnbounded indicates that the objective can be improved without limit.
	ErrUnbounded = errors.New("linprog: unbounded program")

	// ErrUnknownVariable indicates a Var not created by this Program.
	ErrUnknownVariable = errors.New("linprog: unknown variable")

	// ErrBadTerm indicates a NaN or infinite coefficient, bound or right-hand side.
	ErrBadTerm = errors.New("linprog: NaN or Inf coefficient")
)

// Relation is the comparison operator of a constraint.
type Relation int

const (
	// LessEqual encodes Σ coef·x ≤ rhs.
	LessEqual Relation = iota
	// GreaterEqual encodes Σ coef·x ≥ rhs.
	GreaterEqual
	// Equal encodes Σ coef·x = rhs.
	Equal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Var identifies a variable of one Program.
type Var int

// Term is coefficient·variable.
type Term struct {
	Var  Var
	Coef float64
}

// Solution is an optimal assignment.
type Solution struct {
	// Objective is the optimal objective value in the caller's sense
	// (the maximum for Maximize, the minimum for Minimize).
	Objective float64

	values []float64
}

// Value returns the optimal value of v (0 for foreign variables).
func (s Solution) Value(v Var) float64 {
	if int(v) < 0 || int(v) >= len(s.values) {
		return 0
	}

	return s.values[v]
}

// Values returns a copy of all variable values, indexed by Var.
func (s Solution) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// DefaultTolerance is the simplex pivot tolerance used unless overridden.
const DefaultTolerance = 1e-10

// Option configures a Program.
type Option func(*Program)

// WithTolerance sets the simplex tolerance. Values ≤ 0 keep the default.
func WithTolerance(tol float64) Option {
	return func(p *Program) {
		if tol > 0 {
			p.tol = tol
		}
	}
}
