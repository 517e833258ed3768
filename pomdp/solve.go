package pomdp

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/pomdp/model"
	"github.com/katalvlaran/pomdp/plan"
)

// Solve computes the optimal horizon-step value function of m by exact
// dynamic programming over conditional plans. It is SolveContext with
// context.Background().
func Solve(horizon int, m model.Model, opts ...Option) (*Result, error) {
	return SolveContext(context.Background(), horizon, m, opts...)
}

// SolveContext computes the optimal horizon-step value function of m.
//
// Algorithm:
//  1. One leaf plan per action; alpha = reward row. Prune.
//  2. horizon−1 times: Expand, then Prune. An expansion that yields no
//     candidates leaves the current set in place and stops the rounds.
//  3. Return the surviving plans and alpha vectors, index-aligned.
//
// Because every depth-1 candidate is kept or replaced by a better one,
// a valid model always yields a non-empty result.
//
// Errors: ErrBadHorizon, ErrOptionViolation, model.Compile errors,
// model.Validate errors under WithStrictValidation, ErrTooManyCandidates,
// ctx.Err().
func SolveContext(ctx context.Context, horizon int, m model.Model, opts ...Option) (*Result, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if horizon < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadHorizon, horizon)
	}
	d, err := compile(m, &o)
	if err != nil {
		return nil, err
	}

	set := CandidateSet{
		Plans:  make([]*plan.Plan, d.NumActions()),
		Alphas: make([][]float64, d.NumActions()),
	}
	for a, action := range d.Actions() {
		set.Plans[a] = plan.Leaf(action)
		if set.Alphas[a], err = plan.Evaluate(set.Plans[a], d); err != nil {
			return nil, err
		}
	}
	if set, err = prune(ctx, set, &o); err != nil {
		return nil, err
	}
	o.Logger.Debug("pomdp: round done", "horizon", 1, "plans", set.Len())

	for h := 2; h <= horizon; h++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		next, err := expand(ctx, set, d, &o)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", h, err)
		}
		if next.Len() == 0 {
			o.Logger.Debug("pomdp: empty expansion, keeping previous set", "horizon", h)
			break
		}
		if set, err = prune(ctx, next, &o); err != nil {
			return nil, err
		}
		o.Logger.Debug("pomdp: round done", "horizon", h, "candidates", next.Len(), "plans", set.Len())
	}
	if set.Len() == 0 {
		return nil, ErrEmptyResult
	}

	return newResult(horizon, d, set), nil
}

// SolveExhaustive enumerates every action labeling of the full-width
// depth-horizon plan tree, evaluates each one, and prunes the lot. It returns
// the same value function as Solve at a cost of |A|^nodes evaluations, and
// serves as an independent cross-check on small models.
//
// Errors: those of Solve; ErrTooManyCandidates when the labeling count
// overflows int or exceeds MaxCandidates.
func SolveExhaustive(horizon int, m model.Model, opts ...Option) (*Result, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if horizon < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadHorizon, horizon)
	}
	d, err := compile(m, &o)
	if err != nil {
		return nil, err
	}

	actions := d.Actions()
	count, err := labelingCount(horizon, len(actions), d.NumObservations())
	if err != nil {
		return nil, err
	}
	if o.MaxCandidates > 0 && count > o.MaxCandidates {
		return nil, fmt.Errorf("%w: %d labelings exceed limit %d", ErrTooManyCandidates, count, o.MaxCandidates)
	}
	template, err := plan.Full(horizon, d.Observations(), actions[0])
	if err != nil {
		return nil, err
	}

	set := CandidateSet{
		Plans:  make([]*plan.Plan, 0, count),
		Alphas: make([][]float64, 0, count),
	}
	var evalErr error
	err = plan.EachConfiguration(template, actions, func(p *plan.Plan) bool {
		alpha, err := plan.Evaluate(p, d)
		if err != nil {
			evalErr = err
			return false
		}
		set.Plans = append(set.Plans, p)
		set.Alphas = append(set.Alphas, alpha)

		return true
	})
	if err == nil {
		err = evalErr
	}
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("pomdp: enumerated", "horizon", horizon, "candidates", set.Len())

	if set, err = prune(context.Background(), set, &o); err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, ErrEmptyResult
	}

	return newResult(horizon, d, set), nil
}

// labelingCount returns nA^nodes for the full depth-horizon tree with nO
// branches per node, checked for overflow before any tree is built.
func labelingCount(horizon, nA, nO int) (int, error) {
	nodes, layer := 0, 1
	for k := 0; k < horizon; k++ {
		if nodes > math.MaxInt-layer {
			return 0, fmt.Errorf("%w: depth-%d tree overflows int", ErrTooManyCandidates, horizon)
		}
		nodes += layer
		if k+1 < horizon {
			if layer > math.MaxInt/nO {
				return 0, fmt.Errorf("%w: depth-%d tree overflows int", ErrTooManyCandidates, horizon)
			}
			layer *= nO
		}
	}
	if nA == 1 {
		return 1, nil
	}
	count := 1
	for i := 0; i < nodes; i++ {
		if count > math.MaxInt/nA {
			return 0, fmt.Errorf("%w: %d^%d labelings overflow int", ErrTooManyCandidates, nA, nodes)
		}
		count *= nA
	}

	return count, nil
}

// compile prefetches m and, under StrictValidation, checks it is stochastic.
func compile(m model.Model, o *Options) (*model.Dense, error) {
	d, err := model.Compile(m)
	if err != nil {
		return nil, err
	}
	if o.StrictValidation {
		if err = model.Validate(d, model.DefaultStochasticEps); err != nil {
			return nil, err
		}
	}

	return d, nil
}
