package pomdp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pomdp/model"
	"github.com/katalvlaran/pomdp/plan"
)

// chunksPerWorker splits an expansion into enough pieces to balance uneven
// chunk costs across workers.
const chunksPerWorker = 4

// ExpansionSize returns actions · n^observations, the number of depth-(k+1)
// plans built from n depth-k plans.
//
// Errors: ErrTooManyCandidates if the product overflows int,
// ErrDimensionMismatch for negative arguments.
func ExpansionSize(actions, n, observations int) (int, error) {
	if actions < 0 || n < 0 || observations < 0 {
		return 0, fmt.Errorf("%w: negative size (%d, %d, %d)", ErrDimensionMismatch, actions, n, observations)
	}
	size := actions
	for k := 0; k < observations; k++ {
		if n != 0 && size > math.MaxInt/n {
			return 0, fmt.Errorf("%w: %d·%d^%d overflows int", ErrTooManyCandidates, actions, n, observations)
		}
		size *= n
	}

	return size, nil
}

// Expand builds every depth-(k+1) plan whose root executes one action of d
// and whose subplan after each observation is any plan of set.
//
// Output order is deterministic: actions in model order, then subplan
// assignments in mixed-radix order over d.Observations() with the last
// observation varying fastest. Each new alpha vector is computed by one
// backup over the children's known vectors (plan.Compose); subplans are
// deep clones, so no node is shared between roots.
//
// Candidates are built in parallel chunks bounded by Workers; ctx is
// checked before every chunk.
//
// Errors: those of CandidateSet validation and model.Compile,
// ErrDimensionMismatch if set's vectors do not have |S| entries,
// ErrTooManyCandidates, plan errors for malformed plans, ctx.Err().
//
// Complexity: O(|A|·n^|O| · (|S|² + |S|·|O| + clone cost)).
func Expand(ctx context.Context, set CandidateSet, m model.Model, opts ...Option) (CandidateSet, error) {
	o, err := resolve(opts)
	if err != nil {
		return CandidateSet{}, err
	}
	d, err := model.Compile(m)
	if err != nil {
		return CandidateSet{}, err
	}
	nS, err := set.check()
	if err != nil {
		return CandidateSet{}, err
	}
	if set.Len() > 0 && nS != d.NumStates() {
		return CandidateSet{}, fmt.Errorf("%w: alpha vectors have %d entries, model has %d states", ErrDimensionMismatch, nS, d.NumStates())
	}

	return expand(ctx, set, d, &o)
}

func expand(ctx context.Context, set CandidateSet, d *model.Dense, o *Options) (CandidateSet, error) {
	var (
		actions      = d.Actions()
		nO           = d.NumObservations()
		n            = set.Len()
		perAction, _ = ExpansionSize(1, n, nO)
	)
	total, err := ExpansionSize(len(actions), n, nO)
	if err != nil {
		return CandidateSet{}, err
	}
	if o.MaxCandidates > 0 && total > o.MaxCandidates {
		return CandidateSet{}, fmt.Errorf("%w: expansion of %d exceeds limit %d", ErrTooManyCandidates, total, o.MaxCandidates)
	}
	if total == 0 {
		return CandidateSet{}, nil
	}

	// Children are read concurrently below; fill every cache first.
	for i, p := range set.Plans {
		if _, err = plan.Evaluate(p, d); err != nil {
			return CandidateSet{}, fmt.Errorf("candidate %d: %w", i, err)
		}
	}

	out := CandidateSet{
		Plans:  make([]*plan.Plan, total),
		Alphas: make([][]float64, total),
	}
	dims := make([]int, nO)
	for k := range dims {
		dims[k] = n
	}

	workers := max(o.Workers, 1)
	chunk := max((total+workers*chunksPerWorker-1)/(workers*chunksPerWorker), 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < total; lo += chunk {
		lo, hi := lo, min(lo+chunk, total)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var (
				sub      = make([]int, nO)
				children = make([]*plan.Plan, nO)
			)
			for idx := lo; idx < hi; idx++ {
				combin.SubFor(sub, idx%perAction, dims)
				for k, j := range sub {
					children[k] = set.Plans[j]
				}
				root, err := plan.Compose(d, actions[idx/perAction], children)
				if err != nil {
					return err
				}
				out.Plans[idx] = root
				out.Alphas[idx], _ = root.Alpha()
			}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return CandidateSet{}, err
	}
	o.Logger.Debug("pomdp: expanded", "plans", n, "actions", len(actions), "observations", nO, "candidates", total)

	return out, nil
}
