// Package plan implements conditional plans for finite-horizon POMDPs and
// their alpha vectors.
//
// A conditional plan is a tree:
//
//	          feed
//	        /      \
//	  crying        quiet
//	     |            |
//	  ignore        ignore
//
// The root action is executed first; after the environment emits an
// observation the agent follows the matching subplan. A plan of depth h
// covers h decision steps. Leaves carry no subplans.
//
// Alpha vectors:
//
//	For every state s, alpha[s] is the expected discounted return of running
//	the plan from s:
//
//	  alpha[s] = R(s, a) + γ · Σ_{s'} T(s, a, s') · Σ_o Z(o, a, s') · child_o[s']
//
//	Evaluate computes it recursively and memoizes the result on each node
//	(write-once cache). Compose builds a new root from already-evaluated
//	children and attaches the alpha vector at construction, which is how the
//	exact solver grows plans one step at a time.
//
// Relabeling:
//
//	Full builds a full-width tree template of a given depth; Configure
//	assigns actions to its nodes from a flat index list in breadth-first
//	order; EachConfiguration enumerates every labeling with a mixed-radix
//	generator. Configure always works on a fresh clone, so templates are
//	never mutated.
//
// Ownership: subplans are owned by exactly one parent. Sharing a plan under
// several parents goes through Clone (deep copy), never aliasing.
//
// Concurrency: a fully evaluated plan is immutable and safe for concurrent
// reads. Evaluate writes the cache of unevaluated nodes and must not run
// concurrently on the same tree.
package plan
