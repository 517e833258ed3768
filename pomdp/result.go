package pomdp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/pomdp/model"
	"github.com/katalvlaran/pomdp/plan"
)

// beliefTolerance bounds |Σ b − 1| for a belief to be accepted.
const beliefTolerance = 1e-6

// Result is the solved value function: Alphas[i] is the value of executing
// Plans[i] from each state of States. The value at a belief is the maximum
// of the alpha vectors' dot products with it.
type Result struct {
	// Horizon is the requested number of decision steps.
	Horizon int

	// States fixes the index order of every alpha vector and belief.
	States []string

	// Plans are the undominated conditional plans.
	Plans []*plan.Plan

	// Alphas are index-aligned with Plans.
	Alphas [][]float64
}

func newResult(horizon int, d *model.Dense, set CandidateSet) *Result {
	return &Result{
		Horizon: horizon,
		States:  append([]string(nil), d.States()...),
		Plans:   set.Plans,
		Alphas:  set.Alphas,
	}
}

// Len returns the number of undominated plans.
func (r *Result) Len() int { return len(r.Plans) }

// Value returns max_i alpha_i · belief.
//
// Errors: ErrEmptyResult, ErrBadBelief.
func (r *Result) Value(belief []float64) (float64, error) {
	i, err := r.best(belief)
	if err != nil {
		return 0, err
	}

	return floats.Dot(r.Alphas[i], belief), nil
}

// BestPlan returns the plan achieving Value(belief); the lowest index wins
// exact ties.
//
// Errors: ErrEmptyResult, ErrBadBelief.
func (r *Result) BestPlan(belief []float64) (*plan.Plan, error) {
	i, err := r.best(belief)
	if err != nil {
		return nil, err
	}

	return r.Plans[i], nil
}

// Action returns the root action of BestPlan(belief), the action to execute
// now.
func (r *Result) Action(belief []float64) (string, error) {
	p, err := r.BestPlan(belief)
	if err != nil {
		return "", err
	}

	return p.Action, nil
}

// RootActions returns the root action of every plan, index-aligned with Plans.
func (r *Result) RootActions() []string {
	out := make([]string, len(r.Plans))
	for i, p := range r.Plans {
		out[i] = p.Action
	}

	return out
}

func (r *Result) best(belief []float64) (int, error) {
	if len(r.Alphas) == 0 {
		return 0, ErrEmptyResult
	}
	if err := checkBelief(belief, len(r.States)); err != nil {
		return 0, err
	}
	best, bestValue := 0, math.Inf(-1)
	for i, alpha := range r.Alphas {
		if v := floats.Dot(alpha, belief); v > bestValue {
			best, bestValue = i, v
		}
	}

	return best, nil
}

// BeliefFromMap converts a state→probability map into a belief vector
// ordered by states. States absent from probs get probability 0.
//
// Errors: ErrBadBelief for keys outside states, or for a result that is not
// a probability distribution.
func BeliefFromMap(states []string, probs map[string]float64) ([]float64, error) {
	index := make(map[string]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	belief := make([]float64, len(states))
	for s, p := range probs {
		i, ok := index[s]
		if !ok {
			return nil, fmt.Errorf("%w: unknown state %q", ErrBadBelief, s)
		}
		belief[i] = p
	}
	if err := checkBelief(belief, len(states)); err != nil {
		return nil, err
	}

	return belief, nil
}

func checkBelief(belief []float64, n int) error {
	if len(belief) != n {
		return fmt.Errorf("%w: %d entries for %d states", ErrBadBelief, len(belief), n)
	}
	var sum float64
	for s, p := range belief {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("%w: entry %d is %v", ErrBadBelief, s, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > beliefTolerance {
		return fmt.Errorf("%w: entries sum to %v", ErrBadBelief, sum)
	}

	return nil
}
