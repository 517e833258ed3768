package model

// Model is the POMDP data contract.
//
// Implementations must be safe for concurrent reads and must not change while
// a solver holds them. Missing entries are not errors: Transition may return
// nil or an empty map (probability 0 everywhere), Reward and Observation may
// return 0.
type Model interface {
	// States returns the ordered, unique state identifiers.
	States() []string
	// Actions returns the ordered, unique action identifiers.
	Actions() []string
	// Observations returns the ordered, unique observation identifiers.
	Observations() []string
	// Discount returns γ in [0, 1].
	Discount() float64
	// Transition returns the next-state distribution for (state, action).
	Transition(state, action string) map[string]float64
	// Reward returns the immediate reward for (state, action).
	Reward(state, action string) float64
	// Observation returns Z(observation | action, next).
	Observation(observation, action, next string) float64
}

// StateAction keys transition and reward tables.
type StateAction struct {
	State  string
	Action string
}

// ObservationKey keys the observation table: (o, a, s').
type ObservationKey struct {
	Observation string
	Action      string
	Next        string
}
