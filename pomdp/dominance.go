package pomdp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/pomdp/linprog"
)

// FindWitness searches for a belief at which candidate beats every vector in
// accepted by more than the configured epsilon.
//
// With no accepted vectors the uniform belief is returned. Otherwise it
// solves
//
//	maximize δ
//	s.t.     Σ_s b[s]·(candidate[s] − a[s]) ≥ δ   for every a in accepted
//	         Σ_s b[s] = 1,  b ≥ 0
//
// and reports b when δ > Epsilon. δ ≤ Epsilon means the candidate is
// dominated; so does any failure of the linear program, which is logged
// at debug level rather than returned.
//
// Errors: ErrDimensionMismatch for an empty candidate or an accepted vector
// of a different length; ErrOptionViolation for invalid options.
//
// Complexity: one simplex solve over |S|+1 variables and |accepted|+1 rows.
func FindWitness(candidate []float64, accepted [][]float64, opts ...Option) ([]float64, bool, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, false, err
	}
	if len(candidate) == 0 {
		return nil, false, fmt.Errorf("%w: empty candidate", ErrDimensionMismatch)
	}
	for i, a := range accepted {
		if len(a) != len(candidate) {
			return nil, false, fmt.Errorf("%w: accepted %d has %d entries, want %d", ErrDimensionMismatch, i, len(a), len(candidate))
		}
	}
	belief, ok := findWitness(candidate, accepted, &o)

	return belief, ok, nil
}

// findWitness is FindWitness without option parsing or shape checks.
func findWitness(candidate []float64, accepted [][]float64, o *Options) ([]float64, bool) {
	n := len(candidate)
	if len(accepted) == 0 {
		uniform := make([]float64, n)
		for s := range uniform {
			uniform[s] = 1 / float64(n)
		}

		return uniform, true
	}

	p := linprog.New(linprog.WithTolerance(o.LPTolerance))
	b := make([]linprog.Var, n)
	for s := range b {
		// lower bound 0 is always finite
		b[s], _ = p.AddBoundedVariable(0)
	}
	delta := p.AddVariable()

	var (
		row     = make([]linprog.Term, n+1)
		simplex = make([]linprog.Term, n)
		err     error
	)
	for s := range b {
		simplex[s] = linprog.Term{Var: b[s], Coef: 1}
	}
	for _, a := range accepted {
		for s := range b {
			row[s] = linprog.Term{Var: b[s], Coef: candidate[s] - a[s]}
		}
		row[n] = linprog.Term{Var: delta, Coef: -1}
		if err = p.AddConstraint(row, linprog.GreaterEqual, 0); err != nil {
			o.Logger.Debug("pomdp: witness constraint rejected", "error", err)
			return nil, false
		}
	}
	if err = p.AddConstraint(simplex, linprog.Equal, 1); err != nil {
		o.Logger.Debug("pomdp: witness constraint rejected", "error", err)
		return nil, false
	}

	sol, err := p.Maximize([]linprog.Term{{Var: delta, Coef: 1}})
	if err != nil {
		o.Logger.Debug("pomdp: witness program failed", "accepted", len(accepted), "error", err)
		return nil, false
	}
	if !(sol.Objective > o.Epsilon) {
		return nil, false
	}

	belief := make([]float64, n)
	for s := range b {
		if v := sol.Value(b[s]); v > 0 {
			belief[s] = v
		}
	}
	sum := floats.Sum(belief)
	if !(sum > 0) {
		return nil, false
	}
	floats.Scale(1/sum, belief)

	return belief, true
}
