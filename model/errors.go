package model

import "errors"

// Sentinel errors returned by Table setters, Compile and Validate.
// Callers match them with errors.Is; context is added with %w wrapping.
var (
	// ErrNilModel indicates that a nil Model was passed to Compile or Validate.
	ErrNilModel = errors.New("model: model is nil")

	// ErrEmptySpace indicates an empty state, action or observation list.
	ErrEmptySpace = errors.New("model: empty state, action or observation space")

	// ErrDuplicateID indicates an empty or repeated identifier within one space.
	ErrDuplicateID = errors.New("model: empty or duplicate identifier")

	// ErrBadDiscount indicates a discount factor outside [0, 1] or non-finite.
	ErrBadDiscount = errors.New("model: discount must be finite and within [0, 1]")

	// ErrUnknownState indicates a reference to a state not listed in States().
	ErrUnknownState = errors.New("model: unknown state")

	// ErrUnknownAction indicates a reference to an action not listed in Actions().
	ErrUnknownAction = errors.New("model: unknown action")

	// ErrUnknownObservation indicates a reference to an observation not listed in Observations().
	ErrUnknownObservation = errors.New("model: unknown observation")

	// ErrBadValue indicates a NaN or ±Inf probability or reward.
	ErrBadValue = errors.New("model: NaN or Inf value")

	// ErrBadProbability indicates a probability outside [0, 1].
	ErrBadProbability = errors.New("model: probability outside [0, 1]")

	// ErrNotStochastic indicates a non-empty distribution that does not sum to 1.
	ErrNotStochastic = errors.New("model: distribution does not sum to 1")
)
