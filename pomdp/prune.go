package pomdp

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"golang.org/x/sync/errgroup"
)

// Prune reduces set to the candidates whose alpha vectors are strictly
// maximal somewhere on the belief simplex.
//
// Algorithm (one-pass witness sweep):
//  1. Every candidate starts undecided; the accepted set is empty.
//  2. Take the lowest-index undecided candidate i and look for a witness
//     belief b against the accepted vectors (FindWitness).
//  3. No witness: reject i. Witness: among the undecided candidates
//     (i included) accept the one with the highest value at b, the lowest
//     index winning exact ties.
//  4. Repeat until nothing is undecided.
//
// Accepted candidates keep their original relative order. Plans and alpha
// slices are shared with set, not copied. With WithPointwiseFilter,
// candidates pointwise-dominated by another candidate are dropped before
// the sweep.
//
// Errors: ErrDimensionMismatch for a misaligned set, plan.ErrNilPlan for a
// nil plan, ErrOptionViolation for invalid options.
//
// Complexity: at most 2n witness programs for n candidates.
func Prune(set CandidateSet, opts ...Option) (CandidateSet, error) {
	o, err := resolve(opts)
	if err != nil {
		return CandidateSet{}, err
	}
	if _, err = set.check(); err != nil {
		return CandidateSet{}, err
	}

	return prune(context.Background(), set, &o)
}

func prune(ctx context.Context, set CandidateSet, o *Options) (CandidateSet, error) {
	idx := make([]int, set.Len())
	for i := range idx {
		idx[i] = i
	}
	if o.PointwiseFilter && len(idx) > 1 {
		var err error
		if idx, err = pointwiseFilter(ctx, set.Alphas, o.Workers); err != nil {
			return CandidateSet{}, err
		}
	}

	var (
		n         = len(idx)
		undecided = make([]bool, n)
		remaining = n
		accepted  = make([]bool, n)
		vectors   [][]float64
		first     int
	)
	for i := range undecided {
		undecided[i] = true
	}
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return CandidateSet{}, err
		}
		for !undecided[first] {
			first++
		}
		belief, ok := findWitness(set.Alphas[idx[first]], vectors, o)
		if !ok {
			undecided[first] = false
			remaining--
			continue
		}

		best, bestValue := first, floats.Dot(set.Alphas[idx[first]], belief)
		for k := first + 1; k < n; k++ {
			if !undecided[k] {
				continue
			}
			if v := floats.Dot(set.Alphas[idx[k]], belief); v > bestValue {
				best, bestValue = k, v
			}
		}
		undecided[best] = false
		accepted[best] = true
		remaining--
		vectors = append(vectors, set.Alphas[idx[best]])
	}

	keep := make([]int, 0, len(vectors))
	for k, ok := range accepted {
		if ok {
			keep = append(keep, idx[k])
		}
	}
	o.Logger.Debug("pomdp: pruned", "candidates", set.Len(), "filtered", n, "kept", len(keep))

	return set.subset(keep), nil
}

// pointwiseFilter returns, in ascending order, the indices of alphas that
// are not pointwise-dominated. j dominates i when alphas[j] ≥ alphas[i] in
// every entry and either exceeds it somewhere or j < i (exact duplicates
// keep their first occurrence).
func pointwiseFilter(ctx context.Context, alphas [][]float64, workers int) ([]int, error) {
	dominated := make([]bool, len(alphas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range alphas {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := range alphas {
				if j != i && dominates(alphas[j], alphas[i], j < i) {
					dominated[i] = true
					break
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keep := make([]int, 0, len(alphas))
	for i, d := range dominated {
		if !d {
			keep = append(keep, i)
		}
	}

	return keep, nil
}

// dominates reports a ≥ b everywhere, with a > b somewhere unless
// equalWins is set.
func dominates(a, b []float64, equalWins bool) bool {
	strict := false
	for s := range a {
		if a[s] < b[s] {
			return false
		}
		if a[s] > b[s] {
			strict = true
		}
	}

	return strict || equalWins
}
