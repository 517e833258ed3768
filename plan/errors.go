package plan

import "errors"

// Sentinel errors for plan construction, evaluation and relabeling.
var (
	// ErrNilPlan indicates that a nil *Plan was passed where a plan is required.
	ErrNilPlan = errors.New("plan: plan is nil")

	// ErrMalformedPlan indicates a tree that violates the plan contract:
	// an action outside the model, a missing subplan for some observation,
	// or a subplan keyed by an unknown observation.
	ErrMalformedPlan = errors.New("plan: malformed plan")

	// ErrDimensionMismatch indicates vectors of different lengths, or a child
	// list whose length differs from the number of observations.
	ErrDimensionMismatch = errors.New("plan: dimension mismatch")

	// ErrBadDepth indicates a requested template depth below 1.
	ErrBadDepth = errors.New("plan: depth must be at least 1")

	// ErrNoActions indicates an empty action list for relabeling.
	ErrNoActions = errors.New("plan: no actions to assign")

	// ErrBadConfiguration indicates a configuration whose length differs from
	// the node count or that holds an out-of-range action index.
	ErrBadConfiguration = errors.New("plan: invalid configuration")

	// ErrTooManyConfigurations indicates that |actions|^nodes overflows int.
	ErrTooManyConfigurations = errors.New("plan: configuration space overflows int")
)
