package pomdp

import "errors"

// Sentinel errors returned by the solver and its building blocks.
var (
	// ErrBadHorizon indicates a horizon below 1.
	ErrBadHorizon = errors.New("pomdp: horizon must be at least 1")

	// ErrDimensionMismatch indicates vectors of different lengths, or a
	// candidate set whose plan and alpha slices are not index-aligned.
	ErrDimensionMismatch = errors.New("pomdp: dimension mismatch")

	// ErrBadBelief indicates a belief with NaN, infinite or negative entries,
	// entries that do not sum to 1, or unknown state identifiers.
	ErrBadBelief = errors.New("pomdp: invalid belief")

	// ErrEmptyResult indicates a query against a result that holds no plans.
	ErrEmptyResult = errors.New("pomdp: empty result")

	// ErrTooManyCandidates indicates an expansion or enumeration larger than
	// int can count, or larger than the configured MaxCandidates.
	ErrTooManyCandidates = errors.New("pomdp: too many candidates")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("pomdp: invalid option supplied")
)
