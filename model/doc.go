// Package model defines the read-only POMDP description consumed by the
// plan evaluator and the exact solver.
//
// What is a POMDP here?
//
//	A finite Partially Observable Markov Decision Process is the tuple
//	(S, A, O, T, R, Z, γ):
//	  • S, A, O: ordered identifier lists (states, actions, observations)
//	  • T(s, a): distribution over next states s'
//	  • R(s, a): immediate reward
//	  • Z(o, a, s'): probability of observing o after a lands in s'
//	  • γ: discount factor in [0, 1]
//
// The order of States() fixes the index of every alpha vector entry and every
// belief entry used by the rest of the module.
//
// Two representations are provided:
//   - Table: a map-backed Model with setters; absent entries read as 0.
//   - Dense: an index-aligned, prefetched copy produced by Compile. Solvers
//     compile once and then only touch flat slices in their hot loops.
//
// Validation policy:
//   - Compile performs structural checks (non-empty spaces, unique ids,
//     discount range, finite numbers, known transition targets).
//   - Validate additionally checks stochasticity (rows summing to 1). The
//     solver never requires it; callers opt in.
//
// Usage:
//
//	t := model.NewTable(states, actions, observations, 0.9)
//	_ = t.SetReward("hungry", "feed", -15)
//	_ = t.SetTransition("hungry", "feed", "sated", 1)
//	_ = t.SetObservation("crying", "feed", "hungry", 0.8)
//	d, err := model.Compile(t)
package model
