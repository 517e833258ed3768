package plan

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/pomdp/model"
)

// Evaluate returns the alpha vector of p under d and caches it on every
// node it computes. Already cached nodes are reused as-is, so a subtree that
// appears several times in one evaluation is computed once.
//
// Algorithm:
//  1. Leaf: alpha[s] = R(s, a).
//  2. Internal: evaluate every child first, then apply Backup with the
//     children ordered by d.Observations().
//
// Missing model entries count as zero; they are never errors.
//
// Errors (all wrap ErrMalformedPlan):
//   - the node action is not in d.Actions() (also wraps model.ErrUnknownAction);
//   - an internal node lacks a subplan for some observation;
//   - a subplan is keyed by an observation outside d.Observations().
//
// The cache is keyed by nothing but the node: evaluating the same tree
// against a different model returns the first model's values.
//
// Complexity: O(nodes · |S| · (|S| + |O|)).
func Evaluate(p *Plan, d *model.Dense) ([]float64, error) {
	if p == nil {
		return nil, ErrNilPlan
	}
	if p.alpha != nil {
		return p.alpha, nil
	}
	a, ok := d.ActionIndex(p.Action)
	if !ok {
		return nil, fmt.Errorf("%w: action %q: %w", ErrMalformedPlan, p.Action, model.ErrUnknownAction)
	}
	if p.IsLeaf() {
		p.alpha = Backup(d, a, nil)
		return p.alpha, nil
	}

	for o := range p.Subplans {
		if _, known := d.ObservationIndex(o); !known {
			return nil, fmt.Errorf("%w: subplan under unknown observation %q", ErrMalformedPlan, o)
		}
	}
	observations := d.Observations()
	children := make([][]float64, len(observations))
	for i, o := range observations {
		child, ok := p.Subplan(o)
		if !ok {
			return nil, fmt.Errorf("%w: %q has no subplan for observation %q", ErrMalformedPlan, p.Action, o)
		}
		alpha, err := Evaluate(child, d)
		if err != nil {
			return nil, err
		}
		children[i] = alpha
	}
	p.alpha = Backup(d, a, children)

	return p.alpha, nil
}

// Backup performs one exact dynamic-programming step for action index a:
//
//	alpha[s] = R[a][s] + γ · Σ_{s'} T[a][s][s'] · Σ_o Z[a][s'][o] · children[o][s']
//
// children is indexed by observation; a nil children slice yields the leaf
// vector R[a], and a nil entry contributes zero for that observation.
// The returned slice is freshly allocated.
//
// Complexity: O(|S|² + |S|·|O|).
func Backup(d *model.Dense, a int, children [][]float64) []float64 {
	nS := d.NumStates()
	alpha := make([]float64, nS)
	copy(alpha, d.R[a])
	if children == nil {
		return alpha
	}

	// future[s'] = Σ_o Z[a][s'][o] · child_o[s'], shared by every source state.
	future := make([]float64, nS)
	var (
		sp, o int
		z     []float64
		acc   float64
	)
	for sp = 0; sp < nS; sp++ {
		z = d.Z[a][sp]
		acc = 0
		for o = range children {
			if children[o] == nil || z[o] == 0 {
				continue
			}
			acc += z[o] * children[o][sp]
		}
		future[sp] = acc
	}
	for s := 0; s < nS; s++ {
		alpha[s] += d.Gamma * floats.Dot(d.T[a][s], future)
	}

	return alpha
}

// Compose builds a new root plan executing action and following a deep
// clone of children[o] after the o-th observation of d. Every child must
// already carry an alpha vector (or be evaluable); the root's alpha vector
// is computed with Backup and attached at construction.
//
// Errors: ErrDimensionMismatch if len(children) != |O|, ErrNilPlan for a nil
// child, ErrMalformedPlan for an unknown action or an unevaluable child.
//
// Complexity: O(|S|² + |S|·|O|) plus the clone cost of the children.
func Compose(d *model.Dense, action string, children []*Plan) (*Plan, error) {
	a, ok := d.ActionIndex(action)
	if !ok {
		return nil, fmt.Errorf("%w: action %q: %w", ErrMalformedPlan, action, model.ErrUnknownAction)
	}
	observations := d.Observations()
	if len(children) != len(observations) {
		return nil, fmt.Errorf("%w: %d children for %d observations", ErrDimensionMismatch, len(children), len(observations))
	}

	alphas := make([][]float64, len(children))
	subplans := make(map[string]*Plan, len(children))
	for i, child := range children {
		if child == nil {
			return nil, ErrNilPlan
		}
		alpha, err := Evaluate(child, d)
		if err != nil {
			return nil, err
		}
		alphas[i] = alpha
		subplans[observations[i]] = child.Clone()
	}

	root := New(action, subplans)
	root.alpha = Backup(d, a, alphas)

	return root, nil
}

// Value returns the expected return of an alpha vector at a belief,
// i.e. their dot product.
func Value(alpha, belief []float64) (float64, error) {
	if len(alpha) != len(belief) {
		return 0, fmt.Errorf("%w: alpha has %d entries, belief %d", ErrDimensionMismatch, len(alpha), len(belief))
	}

	return floats.Dot(alpha, belief), nil
}
