package pomdp

import (
	"fmt"

	"github.com/katalvlaran/pomdp/plan"
)

// CandidateSet is an index-aligned pair of plans and their alpha vectors:
// Alphas[i] is the value of Plans[i] from every state.
type CandidateSet struct {
	Plans  []*plan.Plan
	Alphas [][]float64
}

// Len returns the number of candidates.
func (c CandidateSet) Len() int { return len(c.Alphas) }

// check verifies index alignment and a common, non-zero vector length.
// It returns that length (0 for an empty set).
func (c CandidateSet) check() (int, error) {
	if len(c.Plans) != len(c.Alphas) {
		return 0, fmt.Errorf("%w: %d plans, %d alpha vectors", ErrDimensionMismatch, len(c.Plans), len(c.Alphas))
	}
	if len(c.Alphas) == 0 {
		return 0, nil
	}
	n := len(c.Alphas[0])
	if n == 0 {
		return 0, fmt.Errorf("%w: empty alpha vector", ErrDimensionMismatch)
	}
	for i, alpha := range c.Alphas {
		if len(alpha) != n {
			return 0, fmt.Errorf("%w: alpha %d has %d entries, want %d", ErrDimensionMismatch, i, len(alpha), n)
		}
		if c.Plans[i] == nil {
			return 0, fmt.Errorf("candidate %d: %w", i, plan.ErrNilPlan)
		}
	}

	return n, nil
}

// subset returns the candidates at the given ascending indices.
func (c CandidateSet) subset(idx []int) CandidateSet {
	out := CandidateSet{
		Plans:  make([]*plan.Plan, len(idx)),
		Alphas: make([][]float64, len(idx)),
	}
	for k, i := range idx {
		out.Plans[k] = c.Plans[i]
		out.Alphas[k] = c.Alphas[i]
	}

	return out
}
