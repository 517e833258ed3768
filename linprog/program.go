package linprog

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrOverdetermined indicates more independent rows than standard-form
// columns after preprocessing; the simplex backend cannot take such input.
var ErrOverdetermined = errors.New("linprog: more constraints than columns")

type variable struct {
	bounded bool
	lower   float64
}

type constraint struct {
	terms []Term
	rel   Relation
	rhs   float64
}

// Program accumulates variables and constraints.
type Program struct {
	vars []variable
	rows []constraint
	tol  float64
}

// New returns an empty program.
func New(opts ...Option) *Program {
	p := &Program{tol: DefaultTolerance}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AddVariable adds a free continuous variable.
func (p *Program) AddVariable() Var {
	p.vars = append(p.vars, variable{})

	return Var(len(p.vars) - 1)
}

// AddBoundedVariable adds a continuous variable constrained to v ≥ lower.
func (p *Program) AddBoundedVariable(lower float64) (Var, error) {
	if !finite(lower) {
		return 0, fmt.Errorf("%w: lower bound %v", ErrBadTerm, lower)
	}
	p.vars = append(p.vars, variable{bounded: true, lower: lower})

	return Var(len(p.vars) - 1), nil
}

// AddConstraint adds Σ terms rel rhs. Terms naming the same variable add up.
func (p *Program) AddConstraint(terms []Term, rel Relation, rhs float64) error {
	if rel != LessEqual && rel != GreaterEqual && rel != Equal {
		return fmt.Errorf("%w: relation %v", ErrBadTerm, rel)
	}
	if !finite(rhs) {
		return fmt.Errorf("%w: right-hand side %v", ErrBadTerm, rhs)
	}
	if err := p.checkTerms(terms); err != nil {
		return err
	}
	p.rows = append(p.rows, constraint{terms: append([]Term(nil), terms...), rel: rel, rhs: rhs})

	return nil
}

// NumVariables returns the number of declared variables.
func (p *Program) NumVariables() int { return len(p.vars) }

// NumConstraints returns the number of declared constraints.
func (p *Program) NumConstraints() int { return len(p.rows) }

// Maximize solves max Σ objective subject to the declared constraints.
func (p *Program) Maximize(objective []Term) (Solution, error) {
	if err := p.checkTerms(objective); err != nil {
		return Solution{}, err
	}
	cost := make([]float64, len(p.vars))
	for _, t := range objective {
		cost[t.Var] -= t.Coef
	}
	sol, err := p.minimize(cost)
	if err != nil {
		return Solution{}, err
	}
	sol.Objective = -sol.Objective

	return sol, nil
}

// Minimize solves min Σ objective subject to the declared constraints.
func (p *Program) Minimize(objective []Term) (Solution, error) {
	if err := p.checkTerms(objective); err != nil {
		return Solution{}, err
	}
	cost := make([]float64, len(p.vars))
	for _, t := range objective {
		cost[t.Var] += t.Coef
	}

	return p.minimize(cost)
}

// minimize converts the program to standard form, solves it, and maps the
// standard-form optimum back onto the declared variables.
//
// Stages:
//  1. Column layout: one column per bounded variable, two per free variable,
//     one slack/surplus column per inequality.
//  2. Rows: shift bounded variables by their lower bound, sign-normalize rhs.
//  3. Drop all-zero rows (or fail as infeasible) and all-zero columns
//     (or fail as unbounded when their cost is negative).
//  4. lp.Simplex on the reduced problem.
//  5. Reconstruct x and evaluate the objective on it.
func (p *Program) minimize(cost []float64) (Solution, error) {
	var (
		nVar = len(p.vars)
		pos  = make([]int, nVar)
		nCol int
	)
	for i, v := range p.vars {
		pos[i] = nCol
		if v.bounded {
			nCol++
		} else {
			nCol += 2
		}
	}
	structural := nCol
	for _, r := range p.rows {
		if r.rel != Equal {
			nCol++
		}
	}

	// Stage 2: dense rows in standard form.
	var (
		rows   = make([][]float64, 0, len(p.rows))
		rhs    = make([]float64, 0, len(p.rows))
		slack = structural
	)
	for _, r := range p.rows {
		row := make([]float64, nCol)
		b := r.rhs
		for _, t := range r.terms {
			v := p.vars[t.Var]
			row[pos[t.Var]] += t.Coef
			if v.bounded {
				b -= t.Coef * v.lower
			} else {
				row[pos[t.Var]+1] -= t.Coef
			}
		}
		switch r.rel {
		case LessEqual:
			row[slack] = 1
			slack++
		case GreaterEqual:
			row[slack] = -1
			slack++
		}
		if b < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			b = -b
		}
		rows = append(rows, row)
		rhs = append(rhs, b)
	}

	c := make([]float64, nCol)
	for i, v := range p.vars {
		c[pos[i]] = cost[i]
		if !v.bounded {
			c[pos[i]+1] = -cost[i]
		}
	}

	// Stage 3: drop empty rows and columns.
	var (
		keptRows = make([][]float64, 0, len(rows))
		keptRHS  = make([]float64, 0, len(rows))
	)
	for i, row := range rows {
		if isZero(row) {
			if math.Abs(rhs[i]) > p.tol {
				return Solution{}, ErrInfeasible
			}
			continue
		}
		keptRows = append(keptRows, row)
		keptRHS = append(keptRHS, rhs[i])
	}
	var cols []int
	for j := 0; j < nCol; j++ {
		used := false
		for _, row := range keptRows {
			if row[j] != 0 {
				used = true
				break
			}
		}
		if used {
			cols = append(cols, j)
			continue
		}
		if c[j] < -p.tol {
			return Solution{}, ErrUnbounded
		}
	}

	y := make([]float64, nCol)
	if len(keptRows) > 0 {
		if len(keptRows) > len(cols) {
			return Solution{}, fmt.Errorf("%w: %d rows, %d columns", ErrOverdetermined, len(keptRows), len(cols))
		}
		data := make([]float64, 0, len(keptRows)*len(cols))
		for _, row := range keptRows {
			for _, j := range cols {
				data = append(data, row[j])
			}
		}
		reduced := make([]float64, len(cols))
		for k, j := range cols {
			reduced[k] = c[j]
		}

		// Stage 4.
		_, opt, err := lp.Simplex(reduced, mat.NewDense(len(keptRows), len(cols), data), keptRHS, p.tol, nil)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return Solution{}, ErrInfeasible
		case errors.Is(err, lp.ErrUnbounded):
			return Solution{}, ErrUnbounded
		case err != nil:
			return Solution{}, fmt.Errorf("linprog: simplex: %w", err)
		}
		for k, j := range cols {
			y[j] = opt[k]
		}
	}

	// Stage 5.
	var (
		values    = make([]float64, nVar)
		objective float64
	)
	for i, v := range p.vars {
		if v.bounded {
			values[i] = v.lower + y[pos[i]]
		} else {
			values[i] = y[pos[i]] - y[pos[i]+1]
		}
		objective += cost[i] * values[i]
	}

	return Solution{Objective: objective, values: values}, nil
}

func (p *Program) checkTerms(terms []Term) error {
	for _, t := range terms {
		if int(t.Var) < 0 || int(t.Var) >= len(p.vars) {
			return fmt.Errorf("%w: %d", ErrUnknownVariable, t.Var)
		}
		if !finite(t.Coef) {
			return fmt.Errorf("%w: coefficient %v", ErrBadTerm, t.Coef)
		}
	}

	return nil
}

func isZero(row []float64) bool {
	for _, x := range row {
		if x != 0 {
			return false
		}
	}

	return true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
