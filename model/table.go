package model

import (
	"fmt"
	"math"
)

// Table is a map-backed Model. The identifier lists are copied on
// construction; tables are filled through the Set* methods, which reject
// identifiers outside the declared spaces.
//
// A Table is not safe for concurrent mutation. Once filled it may be read by
// any number of goroutines.
type Table struct {
	states       []string
	actions      []string
	observations []string
	gamma        float64

	stateSet  map[string]struct{}
	actionSet map[string]struct{}
	obsSet    map[string]struct{}

	transitions  map[StateAction]map[string]float64
	rewards      map[StateAction]float64
	observationZ map[ObservationKey]float64
}

var _ Model = (*Table)(nil)

// NewTable returns an empty table over the given spaces.
// Identifier lists are checked lazily by Compile; duplicates are not rejected here.
func NewTable(states, actions, observations []string, gamma float64) *Table {
	t := &Table{
		states:       append([]string(nil), states...),
		actions:      append([]string(nil), actions...),
		observations: append([]string(nil), observations...),
		gamma:        gamma,
		stateSet:     toSet(states),
		actionSet:    toSet(actions),
		obsSet:       toSet(observations),
		transitions:  make(map[StateAction]map[string]float64),
		rewards:      make(map[StateAction]float64),
		observationZ: make(map[ObservationKey]float64),
	}

	return t
}

// States implements Model.
func (t *Table) States() []string { return t.states }

// Actions implements Model.
func (t *Table) Actions() []string { return t.actions }

// Observations implements Model.
func (t *Table) Observations() []string { return t.observations }

// Discount implements Model.
func (t *Table) Discount() float64 { return t.gamma }

// Transition implements Model. The returned map must not be modified.
func (t *Table) Transition(state, action string) map[string]float64 {
	return t.transitions[StateAction{State: state, Action: action}]
}

// Reward implements Model.
func (t *Table) Reward(state, action string) float64 {
	return t.rewards[StateAction{State: state, Action: action}]
}

// Observation implements Model.
func (t *Table) Observation(observation, action, next string) float64 {
	return t.observationZ[ObservationKey{Observation: observation, Action: action, Next: next}]
}

// SetTransition records T(next | state, action) = p, replacing any previous value.
func (t *Table) SetTransition(state, action, next string, p float64) error {
	if err := t.checkState(state); err != nil {
		return err
	}
	if err := t.checkAction(action); err != nil {
		return err
	}
	if err := t.checkState(next); err != nil {
		return err
	}
	if err := checkFinite(p); err != nil {
		return err
	}

	key := StateAction{State: state, Action: action}
	row, ok := t.transitions[key]
	if !ok {
		row = make(map[string]float64, len(t.states))
		t.transitions[key] = row
	}
	row[next] = p

	return nil
}

// SetReward records R(state, action) = r.
func (t *Table) SetReward(state, action string, r float64) error {
	if err := t.checkState(state); err != nil {
		return err
	}
	if err := t.checkAction(action); err != nil {
		return err
	}
	if err := checkFinite(r); err != nil {
		return err
	}
	t.rewards[StateAction{State: state, Action: action}] = r

	return nil
}

// SetObservation records Z(observation | action, next) = p.
func (t *Table) SetObservation(observation, action, next string, p float64) error {
	if _, ok := t.obsSet[observation]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObservation, observation)
	}
	if err := t.checkAction(action); err != nil {
		return err
	}
	if err := t.checkState(next); err != nil {
		return err
	}
	if err := checkFinite(p); err != nil {
		return err
	}
	t.observationZ[ObservationKey{Observation: observation, Action: action, Next: next}] = p

	return nil
}

func (t *Table) checkState(s string) error {
	if _, ok := t.stateSet[s]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, s)
	}

	return nil
}

func (t *Table) checkAction(a string) error {
	if _, ok := t.actionSet[a]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}

	return nil
}

func checkFinite(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ErrBadValue
	}

	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}
