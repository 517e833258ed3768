// Package pomdp solves finite-horizon partially observable Markov decision
// processes exactly, by dynamic programming over conditional plans.
//
// A depth-h conditional plan is a tree: its root executes an action, and
// after each possible observation the matching depth-(h−1) subplan takes
// over. The value of a plan from every state is its alpha vector; the
// optimal h-step value at a belief b is max_i alpha_i · b, a convex
// piecewise-linear function.
//
// Building blocks:
//
//	FindWitness   a linear program that looks for a belief where a candidate
//	              vector beats every accepted vector by more than Epsilon.
//	Prune         the one-pass witness sweep that keeps exactly the vectors
//	              forming the upper envelope.
//	Expand        the full cross product: one new root per action and per
//	              assignment of existing plans to observations,
//	              |A|·n^|O| candidates in all.
//	Solve         leaves, prune, then horizon−1 rounds of expand and prune.
//
// SolveExhaustive reaches the same value function by enumerating every
// action labeling of the full depth-h tree; it is exponential in the node
// count and meant for cross-checks on small models.
//
// Usage:
//
//	res, err := pomdp.Solve(3, m, pomdp.WithWorkers(4))
//	if err != nil {
//	    // ErrBadHorizon, model errors, ErrTooManyCandidates, ctx errors...
//	}
//	b, _ := pomdp.BeliefFromMap(res.States, map[string]float64{"hungry": 0.3, "sated": 0.7})
//	action, _ := res.Action(b)
//
// Options:
//
//	WithEpsilon(eps)        witness margin (default 1e-9)
//	WithLPTolerance(tol)    simplex tolerance (default 1e-10)
//	WithWorkers(n)          expansion parallelism (default GOMAXPROCS)
//	WithLogger(l)           debug logging (default: discard)
//	WithMaxCandidates(n)    cap on one expansion (default: none)
//	WithStrictValidation()  reject non-stochastic models
//	WithPointwiseFilter()   drop pointwise-dominated vectors before the sweep
//
// Concurrency: a call owns its candidate sets exclusively. Expansion fans
// out with errgroup; every child plan's alpha vector is cached before the
// fan-out, so workers only read shared trees.
//
// Complexity per round, n plans in: expansion O(|A|·n^|O|·|S|²), pruning
// O(m) linear programs over m expanded candidates.
package pomdp
