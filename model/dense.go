package model

import (
	"fmt"
	"math"
)

// Dense is an index-aligned, prefetched copy of a Model.
//
// Layout (a = action index, s/s' = state index, o = observation index):
//   - R[a][s]     : immediate reward
//   - T[a][s][s'] : transition probability
//   - Z[a][s'][o] : observation probability
//
// Dense is immutable after Compile and safe for concurrent reads. It also
// satisfies Model, so a compiled model can be handed back to any consumer.
type Dense struct {
	Gamma float64

	R [][]float64
	T [][][]float64
	Z [][][]float64

	states       []string
	actions      []string
	observations []string

	stateIdx  map[string]int
	actionIdx map[string]int
	obsIdx    map[string]int
}

var _ Model = (*Dense)(nil)

// Compile validates the structure of m and prefetches it into a Dense.
// If m already is a *Dense it is returned unchanged.
//
// Stages:
//  1. Identifier spaces: non-empty, unique, non-empty strings.
//  2. Discount: finite, within [0, 1].
//  3. Rewards, transitions and observations copied into flat tables;
//     NaN/Inf rejected, transition targets must be known states.
//
// Errors: ErrNilModel, ErrEmptySpace, ErrDuplicateID, ErrBadDiscount,
// ErrUnknownState, ErrBadValue (wrapped with the offending identifiers).
//
// Complexity: O(|A|·|S|·(|S| + |O|)) time and memory.
func Compile(m Model) (*Dense, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if d, ok := m.(*Dense); ok {
		if d == nil {
			return nil, ErrNilModel
		}

		return d, nil
	}

	var (
		states       = append([]string(nil), m.States()...)
		actions      = append([]string(nil), m.Actions()...)
		observations = append([]string(nil), m.Observations()...)
		gamma        = m.Discount()
		err          error
	)

	d := &Dense{states: states, actions: actions, observations: observations, Gamma: gamma}
	if d.stateIdx, err = indexIDs("states", states); err != nil {
		return nil, err
	}
	if d.actionIdx, err = indexIDs("actions", actions); err != nil {
		return nil, err
	}
	if d.obsIdx, err = indexIDs("observations", observations); err != nil {
		return nil, err
	}
	if math.IsNaN(gamma) || gamma < 0 || gamma > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadDiscount, gamma)
	}

	nS, nA, nO := len(states), len(actions), len(observations)
	d.R = make([][]float64, nA)
	d.T = make([][][]float64, nA)
	d.Z = make([][][]float64, nA)

	var (
		a, s, sp, o int
		x           float64
	)
	for a = 0; a < nA; a++ {
		d.R[a] = make([]float64, nS)
		d.T[a] = make([][]float64, nS)
		d.Z[a] = make([][]float64, nS)
		for s = 0; s < nS; s++ {
			x = m.Reward(states[s], actions[a])
			if err = checkFinite(x); err != nil {
				return nil, fmt.Errorf("%w: reward(%q, %q)", err, states[s], actions[a])
			}
			d.R[a][s] = x

			d.T[a][s] = make([]float64, nS)
			for next, p := range m.Transition(states[s], actions[a]) {
				j, ok := d.stateIdx[next]
				if !ok {
					return nil, fmt.Errorf("%w: transition(%q, %q) -> %q", ErrUnknownState, states[s], actions[a], next)
				}
				if err = checkFinite(p); err != nil {
					return nil, fmt.Errorf("%w: transition(%q, %q) -> %q", err, states[s], actions[a], next)
				}
				d.T[a][s][j] = p
			}
		}
		for sp = 0; sp < nS; sp++ {
			d.Z[a][sp] = make([]float64, nO)
			for o = 0; o < nO; o++ {
				x = m.Observation(observations[o], actions[a], states[sp])
				if err = checkFinite(x); err != nil {
					return nil, fmt.Errorf("%w: observation(%q, %q, %q)", err, observations[o], actions[a], states[sp])
				}
				d.Z[a][sp][o] = x
			}
		}
	}

	return d, nil
}

// NumStates returns |S|.
func (d *Dense) NumStates() int { return len(d.states) }

// NumActions returns |A|.
func (d *Dense) NumActions() int { return len(d.actions) }

// NumObservations returns |O|.
func (d *Dense) NumObservations() int { return len(d.observations) }

// States implements Model. The slice is shared and must not be modified.
func (d *Dense) States() []string { return d.states }

// Actions implements Model. The slice is shared and must not be modified.
func (d *Dense) Actions() []string { return d.actions }

// Observations implements Model. The slice is shared and must not be modified.
func (d *Dense) Observations() []string { return d.observations }

// StateIndex returns the position of state in States.
func (d *Dense) StateIndex(state string) (int, bool) {
	i, ok := d.stateIdx[state]

	return i, ok
}

// ActionIndex returns the position of action in Actions.
func (d *Dense) ActionIndex(action string) (int, bool) {
	i, ok := d.actionIdx[action]

	return i, ok
}

// ObservationIndex returns the position of observation in Observations.
func (d *Dense) ObservationIndex(observation string) (int, bool) {
	i, ok := d.obsIdx[observation]

	return i, ok
}

// RewardRow returns R[a] for the named action (shared, do not modify).
func (d *Dense) RewardRow(action string) ([]float64, error) {
	a, ok := d.actionIdx[action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	return d.R[a], nil
}

// Discount implements Model.
func (d *Dense) Discount() float64 { return d.Gamma }

// Transition implements Model. It allocates a fresh map of non-zero entries.
func (d *Dense) Transition(state, action string) map[string]float64 {
	s, okS := d.stateIdx[state]
	a, okA := d.actionIdx[action]
	if !okS || !okA {
		return nil
	}
	out := make(map[string]float64)
	for sp, p := range d.T[a][s] {
		if p != 0 {
			out[d.states[sp]] = p
		}
	}

	return out
}

// Reward implements Model.
func (d *Dense) Reward(state, action string) float64 {
	s, okS := d.stateIdx[state]
	a, okA := d.actionIdx[action]
	if !okS || !okA {
		return 0
	}

	return d.R[a][s]
}

// Observation implements Model.
func (d *Dense) Observation(observation, action, next string) float64 {
	o, okO := d.obsIdx[observation]
	a, okA := d.actionIdx[action]
	sp, okS := d.stateIdx[next]
	if !okO || !okA || !okS {
		return 0
	}

	return d.Z[a][sp][o]
}

// indexIDs maps ids to positions, rejecting empty lists, empty and duplicate ids.
func indexIDs(space string, ids []string) (map[string]int, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySpace, space)
	}
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: %s[%d] is empty", ErrDuplicateID, space, i)
		}
		if _, dup := idx[id]; dup {
			return nil, fmt.Errorf("%w: %s contains %q twice", ErrDuplicateID, space, id)
		}
		idx[id] = i
	}

	return idx, nil
}
