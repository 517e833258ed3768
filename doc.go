// Package pomdp is the root of an exact finite-horizon POMDP solver: given a
// partially observable Markov decision process and a horizon, it computes
// the optimal value function as a set of conditional plans and their alpha
// vectors.
//
// What is inside?
//
//	A small, pure-Go stack built bottom-up:
//		• Model contract: states, actions, observations, T, R, Z and γ
//		• Conditional plans: action trees with write-once alpha caches
//		• Exact evaluation: one-step backups over dense model tables
//		• Dominance: witness linear programs over the belief simplex
//		• Pruning, full plan-space expansion and the solver loop
//
// Packages:
//
//	model/    Model interface, map-backed Table, compiled Dense, Validate
//	plan/     Plan trees, Evaluate/Backup/Compose, relabeling enumerators
//	linprog/  general LP front end over gonum's simplex
//	pomdp/    FindWitness, Prune, Expand, Solve, SolveExhaustive, Result
//
// Quick example:
//
//	res, err := pomdp.Solve(3, m)
//	b, _ := pomdp.BeliefFromMap(res.States, map[string]float64{"hungry": 0.5, "sated": 0.5})
//	action, _ := res.Action(b)
//
//	go get github.com/katalvlaran/pomdp
package pomdp
